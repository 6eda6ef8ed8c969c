package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// requestLogging tags every request with an id and reports its duration.
// Requests slower than 2 seconds are logged at warn.
func (api *API) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		next.ServeHTTP(w, r)

		duration := time.Since(start)
		fields := logrus.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"duration":   duration,
			"remote_ip":  r.RemoteAddr,
		}
		if duration > 2*time.Second {
			api.logger.WithFields(fields).Warn("Slow request detected")
		} else {
			api.logger.WithFields(fields).Info("Request completed quickly")
		}
	})
}

// simulatorAuth is the static basic credential the load simulator sends.
const simulatorAuth = "Basic c2ltdWxhdG9yOnN1cGVyX3NhZmUh"

func isSimulator(r *http.Request) bool {
	return r.Header.Get("Authorization") == simulatorAuth
}

// actorUsername resolves who is acting: the simulator credential may act as
// anyone, otherwise a bearer token, then the session cookie. Empty means
// anonymous.
func (api *API) actorUsername(r *http.Request) string {
	if username, err := api.usernameFromToken(r); err == nil && username != "" {
		return username
	}

	session, err := api.sessions.Get(r, sessionName)
	if err == nil {
		if username, ok := session.Values["username"].(string); ok {
			return username
		}
	}
	return ""
}

// authorizeActor decides whether the request may act as the path user.
func (api *API) authorizeActor(r *http.Request, username string) bool {
	if isSimulator(r) {
		return true
	}
	return api.actorUsername(r) == username
}
