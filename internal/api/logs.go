package api

import (
	"bufio"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/MiniTwit-FS/MiniTwit-FS/internal/loghub"
	"github.com/MiniTwit-FS/MiniTwit-FS/internal/logging"
)

// GetLogsHandler pages through one day's log file, newest lines first.
// ?date=YYYYMMDD selects the file (today by default), ?page= and ?pageSize=
// control the window.
func (api *API) GetLogsHandler(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "pageSize", 100)
	if page < 1 {
		page = 1
	}

	path := logging.CurrentLogFile(api.logDir)
	if date := r.URL.Query().Get("date"); date != "" {
		path = filepath.Join(api.logDir, logging.LogFilePrefix+date+".log")
	}

	lines, err := readLogPage(path, page, pageSize)
	if err != nil {
		api.metrics.BadRequests.WithLabelValues("logs").Inc()
		http.Error(w, "Error reading log file", http.StatusInternalServerError)
		return
	}

	api.metrics.SuccessfulRequests.WithLabelValues("logs").Inc()
	api.writeJSON(w, http.StatusOK, lines)
}

// GetLogFileNamesHandler lists the .log files available for paging.
func (api *API) GetLogFileNamesHandler(w http.ResponseWriter, r *http.Request) {
	matches, err := filepath.Glob(filepath.Join(api.logDir, "*.log"))
	if err != nil {
		http.Error(w, "Error retrieving log files", http.StatusInternalServerError)
		return
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	api.writeJSON(w, http.StatusOK, names)
}

// LogStreamHandler upgrades to a websocket and attaches the caller to the
// live log feed.
func (api *API) LogStreamHandler(w http.ResponseWriter, r *http.Request) {
	if err := loghub.ServeWS(api.hub, w, r); err != nil {
		api.logger.WithError(err).Warn("Websocket upgrade failed")
	}
}

func readLogPage(path string, page, pageSize int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// newest first
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}

	start := (page - 1) * pageSize
	if start >= len(lines) {
		return []string{}, nil
	}
	end := start + pageSize
	if end > len(lines) {
		end = len(lines)
	}
	return lines[start:end], nil
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
