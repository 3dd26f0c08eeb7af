package server

import (
	"context"
	"net/http"
	"time"

	"github.com/tidyplan/todo-gateway/sessions"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeySession stores the resolved session record
	ContextKeySession ContextKey = "session"
)

// RequireSession validates the session cookie, runs a proactive token
// refresh when the credentials are near expiry, and threads the resolved
// record through the request context. Handlers never reach for ambient
// state; the record travels explicitly with the request.
func (s *Server) RequireSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			record, err := s.sessions.Get(cookie.Value)
			if err != nil || record == nil {
				http.Error(w, "Invalid session", http.StatusUnauthorized)
				return
			}

			// Check if the session itself has lapsed
			if record.SessionExpiresAt.Before(time.Now()) {
				_ = s.sessions.Delete(cookie.Value)
				s.ClearSessionCookie(w, r)
				http.Error(w, "Session expired", http.StatusUnauthorized)
				return
			}

			// Proactive refresh; soft-fails and leaves the record unchanged,
			// in which case the downstream 401 path takes over.
			s.tokens.EnsureValid(r.Context(), record)

			ctx := context.WithValue(r.Context(), ContextKeySession, record)
			next(w, r.WithContext(ctx))
		}
	}
}

// SessionFromContext returns the record placed by RequireSession.
func SessionFromContext(ctx context.Context) (*sessions.Record, bool) {
	record, ok := ctx.Value(ContextKeySession).(*sessions.Record)
	return record, ok
}
