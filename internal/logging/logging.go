// Package logging configures the shared logrus logger: JSON lines to
// stdout and to a dated file under the log directory, optionally mirrored
// to logstash.
package logging

import (
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"time"

	logrustash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/sirupsen/logrus"
)

// LogFilePrefix names the per-day log files: minitwit-api-logYYYYMMDD.log.
const LogFilePrefix = "minitwit-api-log"

// CurrentLogFile returns the file today's lines go to.
func CurrentLogFile(dir string) string {
	return filepath.Join(dir, fmt.Sprintf("%s%s.log", LogFilePrefix, time.Now().Format("20060102")))
}

// New builds the logger from the environment: LOG_LEVEL (default warn),
// LOG_DIR (default ./logs) and LOGSTASH_ADDR for the optional hook.
func New() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(levelFromEnv())

	writers := []io.Writer{os.Stdout}
	dir := os.Getenv("LOG_DIR")
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0o755); err == nil {
		file, err := os.OpenFile(CurrentLogFile(dir), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			writers = append(writers, file)
		}
	}
	logger.SetOutput(io.MultiWriter(writers...))

	if addr := os.Getenv("LOGSTASH_ADDR"); addr != "" {
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			logger.WithError(err).Warn("Could not connect to logstash, hook disabled")
		} else {
			hook := logrustash.New(conn, logrustash.DefaultFormatter(logrus.Fields{"type": "minitwit-api"}))
			logger.AddHook(hook)
		}
	}

	return logger
}

func levelFromEnv() logrus.Level {
	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return logrus.WarnLevel
	}
	return level
}
