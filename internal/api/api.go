// Package api exposes the timeline core over HTTP. Transport concerns live
// here: routing, actor resolution, JSON encoding, metrics and request
// logging. The core packages never see a framework type.
package api

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/MiniTwit-FS/MiniTwit-FS/internal/apperr"
	"github.com/MiniTwit-FS/MiniTwit-FS/internal/loghub"
	"github.com/MiniTwit-FS/MiniTwit-FS/internal/store"
	"github.com/MiniTwit-FS/MiniTwit-FS/internal/timeline"
)

const sessionName = "minitwit-session"

type API struct {
	store    *store.Store
	composer *timeline.Composer
	logger   *logrus.Logger
	metrics  *Metrics
	sessions *sessions.CookieStore
	hub      *loghub.Hub
	latest   *LatestTracker
	logDir   string
	jwtKey   []byte
}

// Config carries the knobs main reads from the environment.
type Config struct {
	SessionKey string
	JWTSecret  string
	LogDir     string
	LatestPath string
}

func New(s *store.Store, logger *logrus.Logger, metrics *Metrics, hub *loghub.Hub, cfg Config) *API {
	if cfg.SessionKey == "" {
		cfg.SessionKey = "SESSION_KEY"
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.LogDir == "" {
		cfg.LogDir = "logs"
	}
	if cfg.LatestPath == "" {
		cfg.LatestPath = "latest_processed_sim_action_id.txt"
	}

	cookieStore := sessions.NewCookieStore([]byte(cfg.SessionKey))
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600 * 16, // 16 hours
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}

	return &API{
		store:    s,
		composer: timeline.New(s),
		logger:   logger,
		metrics:  metrics,
		sessions: cookieStore,
		hub:      hub,
		latest:   &LatestTracker{path: cfg.LatestPath},
		logDir:   cfg.LogDir,
		jwtKey:   []byte(cfg.JWTSecret),
	}
}

// Router wires every endpoint. Reads are public; writes require an actor
// (simulator credential, bearer token or session cookie).
func (api *API) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(api.requestLogging)

	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/latest", api.GetLatestHandler).Methods("GET")
	r.HandleFunc("/register", api.RegisterHandler).Methods("POST")
	r.HandleFunc("/login", api.LoginHandler).Methods("POST")
	r.HandleFunc("/logout", api.LogoutHandler).Methods("GET")
	r.HandleFunc("/msgs", api.GetAllMessagesHandler).Methods("GET")
	r.HandleFunc("/msgs/{username}", api.GetUserMessagesHandler).Methods("GET")
	r.HandleFunc("/msgs/{username}", api.PostMessageHandler).Methods("POST")
	r.HandleFunc("/fllws/{username}", api.GetFollowsHandler).Methods("GET")
	r.HandleFunc("/fllws/{username}", api.PostFollowHandler).Methods("POST")
	r.HandleFunc("/getUserDetails", api.GetUserDetailsHandler).Methods("GET")
	r.HandleFunc("/isfollowing", api.IsFollowingHandler).Methods("GET")
	r.HandleFunc("/drop/all", api.DropAllHandler).Methods("GET")
	r.HandleFunc("/logs", api.GetLogsHandler).Methods("GET")
	r.HandleFunc("/log-files-names", api.GetLogFileNamesHandler).Methods("GET")
	r.HandleFunc("/ws/logs", api.LogStreamHandler).Methods("GET")
	r.HandleFunc("/", api.TimelineHandler).Methods("GET")
	return r
}

func (api *API) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		api.logger.WithError(err).Error("Failed to encode response")
	}
}

// writeError maps the core taxonomy onto status codes: validation and
// conflict are 400, unknown user is 404, everything else is a 500.
func (api *API) writeError(w http.ResponseWriter, path string, err error) {
	status := http.StatusInternalServerError
	switch {
	case apperr.IsValidation(err), apperr.IsConflict(err):
		status = http.StatusBadRequest
	case apperr.IsNotFound(err):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		api.logger.WithError(err).WithField("path", path).Error("Request failed")
	} else {
		api.logger.WithField("path", path).Warn(err.Error())
	}
	api.metrics.BadRequests.WithLabelValues(path).Inc()
	api.writeJSON(w, status, map[string]interface{}{
		"status":    status,
		"error_msg": err.Error(),
	})
}
