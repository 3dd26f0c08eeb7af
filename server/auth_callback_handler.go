package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// OAuthCallbackHandler receives the redirect back from the provider,
// exchanges the authorization code for tokens and establishes the session.
func (s *Server) OAuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Parse form to support both GET (query params) and POST (form_post response mode)
		// r.FormValue works for both query params and POST form data
		state := r.FormValue("state")
		code := r.FormValue("code")
		errorParam := r.FormValue("error")
		errorDesc := r.FormValue("error_description")

		// Check for authorization errors
		if errorParam != "" {
			http.Error(w, fmt.Sprintf("Authorization failed: %s - %s", errorParam, errorDesc), http.StatusBadRequest)
			return
		}

		if code == "" || state == "" {
			http.Error(w, "Missing code or state parameter", http.StatusBadRequest)
			return
		}

		flowState, err := s.flow.Get(state)
		if err != nil || flowState == nil {
			http.Error(w, "Invalid state parameter", http.StatusBadRequest)
			return
		}

		// Clean up state after use
		if err := s.flow.Delete(state); err != nil {
			http.Error(w, "Invalid state parameter", http.StatusInternalServerError)
			return
		}

		// Exchange the authorization code for tokens
		bundle, err := s.provider.ExchangeCode(r.Context(), code)
		if err != nil {
			log.Err(err).Msg("Token exchange failed")
			http.Error(w, "Token exchange failed", http.StatusBadGateway)
			return
		}

		// Build and store the session record. Identity fields come from the
		// ID token's claims via the lifecycle manager's update rule.
		record, err := s.tokens.NewRecord(bundle)
		if err != nil {
			log.Err(err).Msg("Failed to establish session record")
			http.Error(w, "Failed to establish session", http.StatusInternalServerError)
			return
		}

		maxAge := int(time.Until(record.SessionExpiresAt) / time.Second)
		s.SetSessionCookie(w, r, record.ID, maxAge)

		http.Redirect(w, r, flowState.ReturnURL, http.StatusSeeOther)
	}
}
