package loghub

import "github.com/sirupsen/logrus"

// Hook mirrors warn-and-above log entries to the hub so clients watching
// the live stream see the same lines that land in the log file.
type Hook struct {
	hub       *Hub
	formatter logrus.Formatter
}

func NewHook(hub *Hub) *Hook {
	return &Hook{hub: hub, formatter: &logrus.JSONFormatter{}}
}

func (h *Hook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel, logrus.WarnLevel}
}

func (h *Hook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	h.hub.Broadcast(line)
	return nil
}
