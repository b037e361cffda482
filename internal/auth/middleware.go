package auth

import (
	"context"
	"net/http"
)

type ctxKey struct{}

// WithSession stores s on ctx.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session placed by RequireSession, if any.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}

// SessionFromRequest reads and validates the session cookie.
func (m *Manager) SessionFromRequest(r *http.Request) (Session, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Session{}, false
	}
	return m.Lookup(cookie.Value)
}

// RequireSession rejects requests without a live session (401).
func (m *Manager) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := m.SessionFromRequest(r)
		if !ok {
			writeJSONError(w, http.StatusUnauthorized, `{"code":"UNAUTHORIZED","error":"Please log in."}`)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

// RequireAdmin rejects requests without an admin session (401/403).
func (m *Manager) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, _ := FromContext(r.Context())
		if !s.Admin {
			writeJSONError(w, http.StatusForbidden, `{"code":"FORBIDDEN","error":"Admin login required."}`)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func writeJSONError(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
