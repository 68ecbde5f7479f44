package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/isdelr/taskdeck-be/internal/models"
)

// TokenLifetime is how long an issued token stays valid. There is no
// revocation or refresh: an unexpired token remains authoritative for its
// full lifetime, even after a password change.
const TokenLifetime = 7 * 24 * time.Hour

// Claims defines the JWT claims structure.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed identity tokens. The signing
// secret is injected at construction; the service never reads ambient
// process state, which keeps it substitutable in tests.
type TokenService struct {
	key []byte
}

// NewTokenService creates a TokenService signing with the given secret.
func NewTokenService(secret []byte) *TokenService {
	return &TokenService{key: secret}
}

// Issue creates a new signed token for the given user id, expiring
// TokenLifetime from now.
func (ts *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ts.key)
}

// Verify parses and validates a token string and returns the embedded user
// id. Tampered payloads, expired tokens and structurally malformed strings
// all come back as models.ErrInvalidCredential.
func (ts *TokenService) Verify(tokenStr string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return ts.key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", models.ErrInvalidCredential
	}
	return claims.UserID, nil
}
