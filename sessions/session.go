// Package sessions defines the durable per-user session record holding the
// current credential and identity material, plus its storage interface.
package sessions

import "time"

// Record stores the token material, identity claims and timing metadata for
// one authenticated session. It is created when the authorization code
// exchange completes and mutated in place on every successful refresh.
//
// Ownership: a Record belongs to exactly one session. The lifecycle manager
// holds the only mutable reference; nothing else writes to it.
type Record struct {
	ID string `json:"id"` // Session identifier (UUID), also the cookie value

	// Identity
	Subject     string `json:"subject"`     // Stable user identifier; immutable once set
	DisplayName string `json:"displayName"` // Human-facing name, refreshed from ID token claims
	Email       string `json:"email"`       // Refreshed from ID token claims

	// Credentials. AccessToken and IdentityToken are always set together.
	// RefreshToken, once set, survives refreshes that do not return a new one;
	// it is the only field allowed to be absent in a stored record.
	AccessToken   string `json:"accessToken"`
	IdentityToken string `json:"identityToken"`
	RefreshToken  string `json:"refreshToken,omitempty"`

	// Token timing. Unix seconds; IssuedAt <= ExpiresAt always holds.
	// ExpiresAt is policy-derived (fixed window past IssuedAt), not the
	// provider-declared TTL.
	IssuedAt  int64 `json:"issuedAt"`
	ExpiresAt int64 `json:"expiresAt"`

	// Session management
	CreatedAt        time.Time `json:"createdAt"`        // When the session was established
	SessionExpiresAt time.Time `json:"sessionExpiresAt"` // When the session itself lapses, independent of token expiry
}

// Clone returns a deep copy. Repos hand out copies so that only the lifecycle
// manager's write path can change stored state.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	clone := *r
	return &clone
}
