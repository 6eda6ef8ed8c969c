package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/MiniTwit-FS/MiniTwit-FS/internal/apperr"
	"github.com/MiniTwit-FS/MiniTwit-FS/internal/models"
)

func toResponses(entries []models.TimelineEntry) []MessageResponse {
	out := make([]MessageResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, MessageResponse{
			Content: e.Text,
			PubDate: models.FormatPubDate(e.PubDate),
			User:    e.Username,
		})
	}
	return out
}

// GetAllMessagesHandler serves the public timeline.
func (api *API) GetAllMessagesHandler(w http.ResponseWriter, r *http.Request) {
	api.latest.Update(r)

	entries, err := api.composer.Global(rowLimit(r))
	if err != nil {
		api.writeError(w, "msgs", err)
		return
	}

	api.logger.WithField("message_count", len(entries)).Info("Messages retrieved successfully")
	api.metrics.SuccessfulRequests.WithLabelValues("msgs").Inc()
	api.writeJSON(w, http.StatusOK, toResponses(entries))
}

// GetUserMessagesHandler serves one user's own messages, never followees'.
func (api *API) GetUserMessagesHandler(w http.ResponseWriter, r *http.Request) {
	api.latest.Update(r)
	username := mux.Vars(r)["username"]

	entries, err := api.composer.User(username, rowLimit(r))
	if err != nil {
		api.writeError(w, "get_user_messages", err)
		return
	}

	api.logger.WithFields(logrus.Fields{
		"username":      username,
		"message_count": len(entries),
	}).Info("User messages retrieved successfully")
	api.metrics.SuccessfulRequests.WithLabelValues("get_user_messages").Inc()
	api.writeJSON(w, http.StatusOK, toResponses(entries))
}

// TimelineHandler serves the acting user's personal feed: own messages plus
// the ones from everyone they follow.
func (api *API) TimelineHandler(w http.ResponseWriter, r *http.Request) {
	api.latest.Update(r)

	username := api.actorUsername(r)
	if username == "" {
		// headers are how the simulator identifies the viewer
		username = r.Header.Get("Username")
	}
	if username == "" {
		api.metrics.BadRequests.WithLabelValues("timeline").Inc()
		http.Error(w, "You are not logged in", http.StatusUnauthorized)
		return
	}

	viewer, err := api.store.Users.ByUsername(username)
	if err != nil {
		api.writeError(w, "timeline", err)
		return
	}

	entries, err := api.composer.Personal(viewer.UserID, rowLimit(r))
	if err != nil {
		api.writeError(w, "timeline", err)
		return
	}

	api.metrics.SuccessfulRequests.WithLabelValues("timeline").Inc()
	api.writeJSON(w, http.StatusOK, toResponses(entries))
}

func (api *API) PostMessageHandler(w http.ResponseWriter, r *http.Request) {
	api.latest.Update(r)
	username := mux.Vars(r)["username"]

	if !api.authorizeActor(r, username) {
		api.metrics.BadRequests.WithLabelValues("tweet").Inc()
		http.Error(w, "You are not authorized to use this resource!", http.StatusForbidden)
		return
	}

	user, err := api.store.Users.ByUsername(username)
	if err != nil {
		api.writeError(w, "tweet", err)
		return
	}

	var req AddMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.writeError(w, "tweet", apperr.Validation("Invalid or missing content"))
		return
	}

	if _, err := api.store.Messages.Append(user.UserID, req.Content); err != nil {
		api.writeError(w, "tweet", err)
		return
	}

	api.logger.WithField("username", username).Info("Message posted successfully")
	api.metrics.MessagesSent.WithLabelValues("tweet").Inc()
	api.metrics.SuccessfulRequests.WithLabelValues("tweet").Inc()
	api.writeJSON(w, http.StatusNoContent, map[string]interface{}{
		"status": http.StatusNoContent,
		"res":    "",
	})
}
