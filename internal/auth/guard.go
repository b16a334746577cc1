// Package auth holds the shared-secret check applied to every API request.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

const (
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// Guard compares the credential carried by a request against a fixed secret.
// The zero value rejects everything.
type Guard struct {
	secret []byte
}

// NewGuard returns a Guard for the given secret.
func NewGuard(secret string) Guard {
	return Guard{secret: []byte(secret)}
}

// IsAuthorized reports whether the Authorization header, with an optional
// "Bearer " prefix removed, equals the configured secret.
func (g Guard) IsAuthorized(h http.Header) bool {
	if len(g.secret) == 0 {
		return false
	}
	value := h.Get(AuthHeaderKey)
	if value == "" {
		return false
	}
	key := strings.TrimPrefix(value, BearerPrefix)
	return subtle.ConstantTimeCompare([]byte(key), g.secret) == 1
}
