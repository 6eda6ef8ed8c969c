// Package auth holds password hashing and the registration/login
// validators. The validators keep no state of their own; everything they
// need lives in the user store.
package auth

import (
	"regexp"

	"github.com/MiniTwit-FS/MiniTwit-FS/internal/apperr"
	"github.com/MiniTwit-FS/MiniTwit-FS/internal/models"
	"github.com/MiniTwit-FS/MiniTwit-FS/internal/store"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Register validates the fields in order and creates the user. password2 is
// the optional confirmation field; when empty it is treated as not supplied
// and skipped. The rejection messages are part of the contract, clients
// display them as-is.
func Register(users *store.UserStore, username, email, password, password2 string) (*models.User, error) {
	if username == "" {
		return nil, apperr.Validation("You have to enter a username")
	}
	if email == "" || !emailPattern.MatchString(email) {
		return nil, apperr.Validation("You have to enter a valid email address")
	}
	if password == "" {
		return nil, apperr.Validation("You have to enter a password")
	}
	if password2 != "" && password != password2 {
		return nil, apperr.Validation("The two passwords do not match")
	}

	return users.Create(username, email, HashPassword(password))
}

// Login resolves the username first so that "no such user" and "wrong
// password" stay distinguishable outcomes.
func Login(users *store.UserStore, username, password string) (*models.User, error) {
	user, err := users.ByUsername(username)
	if apperr.IsNotFound(err) {
		return nil, apperr.NotFound("Invalid username")
	}
	if err != nil {
		return nil, err
	}

	if !CheckPasswordHash(password, user.PWHash) {
		return nil, apperr.Validation("Invalid password")
	}
	return user, nil
}
