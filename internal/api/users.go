package api

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/MiniTwit-FS/MiniTwit-FS/internal/auth"
)

func (api *API) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	api.latest.Update(r)

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.logger.WithError(err).Warn("Invalid request body received")
		api.metrics.BadRequests.WithLabelValues("register").Inc()
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	_, err := auth.Register(api.store.Users, req.Username, req.Email, req.Password, req.Password2)
	if err != nil {
		api.writeError(w, "register", err)
		return
	}

	api.logger.WithField("username", req.Username).Info("User registered successfully")
	api.metrics.SuccessfulRequests.WithLabelValues("register").Inc()
	api.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    http.StatusOK,
		"error_msg": "",
		"message":   "You were successfully registered and can login now",
	})
}

func (api *API) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.logger.WithError(err).Warn("Invalid request body received")
		api.metrics.BadRequests.WithLabelValues("login").Inc()
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := auth.Login(api.store.Users, req.Username, req.Password)
	if err != nil {
		api.writeError(w, "login", err)
		return
	}

	token, err := api.signToken(user.Username)
	if err != nil {
		api.writeError(w, "login", err)
		return
	}

	session, _ := api.sessions.Get(r, sessionName)
	session.Values["username"] = user.Username
	if err := session.Save(r, w); err != nil {
		api.logger.WithError(err).Error("Failed to save session")
	}

	api.logger.WithField("username", user.Username).Info("User logged in successfully")
	api.metrics.SuccessfulRequests.WithLabelValues("login").Inc()
	api.writeJSON(w, http.StatusOK, LoginResponse{Message: "You were logged in", Token: token})
}

func (api *API) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	session, _ := api.sessions.Get(r, sessionName)
	delete(session.Values, "username")
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		api.logger.WithError(err).Error("Failed to clear session")
	}

	api.metrics.SuccessfulRequests.WithLabelValues("logout").Inc()
	api.writeJSON(w, http.StatusOK, map[string]string{"message": "You were logged out"})
}

func (api *API) GetUserDetailsHandler(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		api.logger.Warn("Missing username query parameter")
		api.metrics.BadRequests.WithLabelValues("get_user_details").Inc()
		http.Error(w, "Missing username query parameter", http.StatusBadRequest)
		return
	}

	user, err := api.store.Users.ByUsername(username)
	if err != nil {
		api.writeError(w, "get_user_details", err)
		return
	}

	api.logger.WithFields(logrus.Fields{
		"userID":   user.UserID,
		"username": user.Username,
	}).Info("User details retrieved successfully")
	api.metrics.SuccessfulRequests.WithLabelValues("get_user_details").Inc()
	api.writeJSON(w, http.StatusOK, UserDetails{
		UserID:   user.UserID,
		Username: user.Username,
		Email:    user.Email,
	})
}

// DropAllHandler wipes the whole database. Administrative reset used by the
// test harness; requires the simulator credential.
func (api *API) DropAllHandler(w http.ResponseWriter, r *http.Request) {
	if !isSimulator(r) {
		api.metrics.BadRequests.WithLabelValues("drop_all").Inc()
		http.Error(w, "You are not authorized to use this resource!", http.StatusForbidden)
		return
	}

	if err := api.store.Reset(); err != nil {
		api.writeError(w, "drop_all", err)
		return
	}

	api.logger.Warn("All users, messages and followers have been cleared")
	api.writeJSON(w, http.StatusOK, map[string]string{"message": "All users have been cleared."})
}
