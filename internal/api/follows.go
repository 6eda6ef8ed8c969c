package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/MiniTwit-FS/MiniTwit-FS/internal/apperr"
)

// GetFollowsHandler lists the usernames the path user follows.
func (api *API) GetFollowsHandler(w http.ResponseWriter, r *http.Request) {
	api.latest.Update(r)
	username := mux.Vars(r)["username"]

	user, err := api.store.Users.ByUsername(username)
	if err != nil {
		api.writeError(w, "get_follower", err)
		return
	}

	names, err := api.store.Follows.FollowerNamesOf(user.UserID, rowLimit(r))
	if err != nil {
		api.writeError(w, "get_follower", err)
		return
	}

	api.logger.WithField("follower_count", len(names)).Info("Follows retrieved successfully")
	api.metrics.SuccessfulRequests.WithLabelValues("get_follower").Inc()
	api.writeJSON(w, http.StatusOK, map[string][]string{"follows": names})
}

// PostFollowHandler handles both follow and unfollow, selected by which
// field of the body is set.
func (api *API) PostFollowHandler(w http.ResponseWriter, r *http.Request) {
	api.latest.Update(r)
	username := mux.Vars(r)["username"]

	if !api.authorizeActor(r, username) {
		api.metrics.BadRequests.WithLabelValues("post_follower").Inc()
		http.Error(w, "You are not authorized to use this resource!", http.StatusForbidden)
		return
	}

	user, err := api.store.Users.ByUsername(username)
	if err != nil {
		api.writeError(w, "post_follower", err)
		return
	}

	var req FollowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.writeError(w, "post_follower", apperr.Validation("Invalid request body"))
		return
	}

	switch {
	case req.Follow != "":
		target, err := api.store.Users.ByUsername(req.Follow)
		if apperr.IsNotFound(err) {
			api.writeError(w, "post_follower", apperr.NotFound("The user you are trying to follow cannot be found"))
			return
		}
		if err != nil {
			api.writeError(w, "post_follower", err)
			return
		}

		if err := api.store.Follows.Follow(user.UserID, target.UserID); err != nil {
			api.writeError(w, "post_follower", err)
			return
		}

		api.logger.WithFields(logrus.Fields{
			"user":   username,
			"target": req.Follow,
		}).Info("User followed successfully")
		api.metrics.FollowRequests.WithLabelValues("follow").Inc()
		api.writeJSON(w, http.StatusNoContent, map[string]string{"message": "You are now following " + req.Follow})

	case req.Unfollow != "":
		target, err := api.store.Users.ByUsername(req.Unfollow)
		if apperr.IsNotFound(err) {
			api.writeError(w, "post_follower", apperr.NotFound("The user you are trying to unfollow cannot be found"))
			return
		}
		if err != nil {
			api.writeError(w, "post_follower", err)
			return
		}

		if err := api.store.Follows.Unfollow(user.UserID, target.UserID); err != nil {
			api.writeError(w, "post_follower", err)
			return
		}

		api.logger.WithFields(logrus.Fields{
			"user":   username,
			"target": req.Unfollow,
		}).Info("User unfollowed successfully")
		api.metrics.UnfollowRequests.WithLabelValues("unfollow").Inc()
		api.writeJSON(w, http.StatusNoContent, map[string]string{"message": "You are no longer following " + req.Unfollow})

	default:
		api.writeError(w, "post_follower", apperr.Validation("Request must name a user to follow or unfollow"))
	}
}

// IsFollowingHandler answers whether whoUsername follows whomUsername.
func (api *API) IsFollowingHandler(w http.ResponseWriter, r *http.Request) {
	whoUsername := r.URL.Query().Get("whoUsername")
	whomUsername := r.URL.Query().Get("whomUsername")

	who, err := api.store.Users.ByUsername(whoUsername)
	if err != nil {
		api.writeError(w, "get_following", err)
		return
	}
	whom, err := api.store.Users.ByUsername(whomUsername)
	if err != nil {
		api.writeError(w, "get_following", err)
		return
	}

	following, err := api.store.Follows.IsFollowing(who.UserID, whom.UserID)
	if err != nil {
		api.writeError(w, "get_following", err)
		return
	}

	api.logger.WithField("is_following", following).Info("Following status retrieved successfully")
	api.metrics.SuccessfulRequests.WithLabelValues("get_following").Inc()
	api.writeJSON(w, http.StatusOK, following)
}
