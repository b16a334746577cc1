package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuard_IsAuthorized(t *testing.T) {
	guard := NewGuard("s3cr3t")

	tests := []struct {
		name   string
		header string
		want   bool
	}{
		{name: "bearer token matches", header: "Bearer s3cr3t", want: true},
		{name: "bare token matches", header: "s3cr3t", want: true},
		{name: "bearer token mismatch", header: "Bearer wrong", want: false},
		{name: "bare token mismatch", header: "wrong", want: false},
		{name: "missing header", header: "", want: false},
		{name: "lowercase scheme is not stripped", header: "bearer s3cr3t", want: false},
		{name: "prefix of secret", header: "Bearer s3cr", want: false},
		{name: "trailing whitespace", header: "Bearer s3cr3t ", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			if tt.header != "" {
				h.Set(AuthHeaderKey, tt.header)
			}
			assert.Equal(t, tt.want, guard.IsAuthorized(h))
		})
	}
}

func TestGuard_EmptySecretRejectsEverything(t *testing.T) {
	h := http.Header{}
	h.Set(AuthHeaderKey, "Bearer ")

	assert.False(t, NewGuard("").IsAuthorized(h))
	assert.False(t, Guard{}.IsAuthorized(http.Header{}))
}
