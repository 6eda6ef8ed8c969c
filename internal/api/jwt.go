package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 16 * time.Hour

type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func (api *API) signToken(username string) (string, error) {
	c := &claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return tok.SignedString(api.jwtKey)
}

func (api *API) parseToken(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (interface{}, error) {
		return api.jwtKey, nil
	})
	if err != nil {
		return "", err
	}
	if c, ok := token.Claims.(*claims); ok && token.Valid {
		return c.Username, nil
	}
	return "", errors.New("invalid token")
}

func (api *API) usernameFromToken(r *http.Request) (string, error) {
	auth := r.Header.Get("Authorization")
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errors.New("no bearer token")
	}
	return api.parseToken(parts[1])
}
