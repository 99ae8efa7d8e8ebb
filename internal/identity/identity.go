// Package identity verifies bearer tokens and resolves them to the subject
// that owns the request.
package identity

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrMissingToken indicates the request carried no bearer token.
	ErrMissingToken = errors.New("identity: missing bearer token")
	// ErrInvalidToken indicates the token was rejected.
	ErrInvalidToken = errors.New("identity: invalid token")
)

// Identity is the verified owner of a request.
type Identity struct {
	Subject   string // external user ID
	SessionID string
	Email     string
}

// Verifier checks a bearer token and returns who it belongs to.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. It returns "" when the header is absent or malformed.
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// StaticVerifier accepts any non-empty token as the same identity. It backs
// single-user local mode.
type StaticVerifier struct {
	Identity Identity
}

// Verify implements Verifier.
func (s StaticVerifier) Verify(_ context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrMissingToken
	}
	return s.Identity, nil
}
