package provider

// tokenResponse represents the response from the provider's token endpoint.
// This is the standard OAuth2 token endpoint response format as defined in RFC 6749.
// All fields are optional on the wire; the exchange client validates which ones
// are actually required before handing a bundle to the caller.
type tokenResponse struct {
	// AccessToken is the token used to access protected resources.
	// Usage: Include in Authorization header: "Bearer <access_token>"
	AccessToken *string `json:"access_token,omitempty"`

	// IdToken is the OpenID Connect ID token containing user identity information.
	// Only present when the "openid" scope was requested.
	IdToken *string `json:"id_token,omitempty"`

	// TokenType indicates how to use the access token (normally "bearer").
	TokenType string `json:"token_type,omitempty"`

	// ExpiresIn is the provider-declared lifetime in seconds of the access token.
	// Note: recorded for diagnostics only - session expiry is policy-derived,
	// not taken from this value.
	ExpiresIn int `json:"expires_in,omitempty"`

	// RefreshToken is an opaque token used to obtain new access tokens.
	// Providers may omit it on refresh responses; the previous value then
	// remains in force.
	RefreshToken *string `json:"refresh_token,omitempty"`
}

// TokenBundle is the validated result of a successful token exchange.
// AccessToken and IdentityToken are always present together; a provider
// response missing either never produces a bundle.
type TokenBundle struct {
	AccessToken   string
	IdentityToken string
	RefreshToken  string // empty when the provider omitted it
	ExpiresIn     int    // provider-declared TTL in seconds, informational
}
