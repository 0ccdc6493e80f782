package auth

import (
	"net/http"
	"strings"
)

// RequireSession wraps a handler so it only serves requests carrying a valid
// admin session token.
type RequireSession struct {
	secret []byte
}

// NewRequireSession constructs the middleware.
func NewRequireSession(secret []byte) *RequireSession {
	return &RequireSession{secret: secret}
}

// Wrap guards next with the session check.
func (m *RequireSession) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if _, err := ParseSessionToken(token, m.secret); err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
