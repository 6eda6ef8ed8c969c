package api

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
)

// LatestTracker persists the id of the last simulator action this instance
// processed, so the simulator can verify nothing was skipped. The value
// rides along as a ?latest= query parameter on every simulator request.
type LatestTracker struct {
	mu   sync.Mutex
	path string
}

// Update records the ?latest= parameter when present and parseable.
func (t *LatestTracker) Update(r *http.Request) {
	param := r.URL.Query().Get("latest")
	if param == "" {
		return
	}
	id, err := strconv.Atoi(param)
	if err != nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	_ = os.WriteFile(t.path, []byte(strconv.Itoa(id)), 0o644)
}

// Value returns the last recorded id, or -1 when none was ever seen.
func (t *LatestTracker) Value() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	content, err := os.ReadFile(t.path)
	if err != nil {
		return -1
	}
	id, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil {
		return -1
	}
	return id
}

func (api *API) GetLatestHandler(w http.ResponseWriter, r *http.Request) {
	api.latest.Update(r)
	api.writeJSON(w, http.StatusOK, map[string]int{"latest": api.latest.Value()})
}

// rowLimit reads the ?no= parameter, defaulting to 100 rows.
func rowLimit(r *http.Request) int {
	if number := r.URL.Query().Get("no"); number != "" {
		if n, err := strconv.Atoi(number); err == nil {
			return n
		}
	}
	return 100
}
