package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tidyplan/todo-gateway/server/authflowrepo"
)

// isLocalReturnURL accepts only same-site return targets. A single leading
// slash is required; "//host" and "/\host" are scheme-relative redirects in
// browsers and must not pass.
func isLocalReturnURL(returnURL string) bool {
	if !strings.HasPrefix(returnURL, "/") {
		return false
	}
	return !strings.HasPrefix(returnURL, "//") && !strings.HasPrefix(returnURL, `/\`)
}

// LoginHandler starts the authorization code flow: it stores a fresh state
// parameter and redirects the browser to the provider's authorize endpoint.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		returnURL := r.URL.Query().Get("return_to")
		if !isLocalReturnURL(returnURL) {
			returnURL = "/"
		}

		state := generateRandomString(32)
		if err := s.flow.Upsert(state, &authflowrepo.AuthFlowState{
			ReturnURL: returnURL,
			CreatedAt: time.Now(),
		}); err != nil {
			log.Err(err).Msg("Failed to store auth flow state")
			http.Error(w, "Failed to start login", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, s.provider.AuthCodeURL(state), http.StatusFound)
	}
}

// LogoutHandler destroys the session record and clears the cookie.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err == nil && cookie.Value != "" {
			if record, getErr := s.sessions.Get(cookie.Value); getErr == nil {
				if revokeErr := s.tokens.Revoke(record); revokeErr != nil {
					log.Err(revokeErr).Msg("Logout: failed to delete session record")
				}
			}
		}
		s.ClearSessionCookie(w, r)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
