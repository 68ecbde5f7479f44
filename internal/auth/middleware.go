package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/isdelr/taskdeck-be/internal/models"
	"github.com/rs/zerolog/log"
)

type contextKey string

const currentUserKey = contextKey("currentUser")

// UserFinder resolves a verified token's user id to a live user record.
type UserFinder interface {
	GetUserByID(id string) (models.User, error)
}

// Middleware creates a middleware for protecting routes. It extracts the
// bearer token from the Authorization header, verifies it, resolves the
// embedded user id against the store and attaches the user to the request
// context. Every rejection path produces an identical 401 response so a
// caller cannot tell which check failed.
func Middleware(tokens *TokenService, users UserFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := authenticate(tokens, users, r)
			if err != nil {
				log.Warn().Err(err).Str("path", r.URL.Path).Msg("Rejected unauthenticated request")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
				return
			}

			ctx := context.WithValue(r.Context(), currentUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func authenticate(tokens *TokenService, users UserFinder, r *http.Request) (models.User, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return models.User{}, models.ErrNoCredential
	}

	tokenStr, ok := strings.CutPrefix(header, "Bearer ")
	tokenStr = strings.TrimSpace(tokenStr)
	if !ok || tokenStr == "" {
		return models.User{}, models.ErrMalformedCredential
	}

	userID, err := tokens.Verify(tokenStr)
	if err != nil {
		return models.User{}, err
	}

	// A valid signature is not enough: the account must still exist.
	user, err := users.GetUserByID(userID)
	if err != nil {
		return models.User{}, models.ErrInvalidCredential
	}
	return user, nil
}

// CurrentUser returns the authenticated user attached by Middleware.
func CurrentUser(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(currentUserKey).(models.User)
	return user, ok
}
