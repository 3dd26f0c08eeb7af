// Package claims extracts identity claims from OIDC ID tokens.
//
// Decoding is deliberately unverified: tokens arrive directly from the
// provider's TLS-protected token endpoint, so transport trust stands in for
// signature verification. Do not use this package on tokens received from
// any other source.
package claims

import (
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"

	apperrors "github.com/tidyplan/todo-gateway/internal/errors"
)

// ClaimSet holds the identity claims extracted from an ID token payload.
// It is transient: used to populate or refresh a session record, never stored.
type ClaimSet struct {
	Subject    string // "sub" - stable user identifier
	Email      string // "email"
	GivenName  string // "given_name"
	FamilyName string // "family_name"
	ExpiresAt  int64  // "exp" - Unix seconds, as asserted by the provider
}

// Decode splits a compact JWT and parses its payload segment into a ClaimSet.
// The signature segment is ignored entirely.
func Decode(rawToken string) (*ClaimSet, error) {
	if strings.Count(rawToken, ".") != 2 {
		return nil, apperrors.Wrapf(apperrors.ErrMalformedToken, "expected three dot-separated segments")
	}

	token, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidPayload, "parse claims: %v", err)
	}

	mapClaims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidPayload, "unexpected claims type %T", token.Claims)
	}

	cs := &ClaimSet{
		Subject:    stringClaim(mapClaims, "sub"),
		Email:      stringClaim(mapClaims, "email"),
		GivenName:  stringClaim(mapClaims, "given_name"),
		FamilyName: stringClaim(mapClaims, "family_name"),
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		cs.ExpiresAt = exp.Unix()
	}
	return cs, nil
}

// DisplayName derives a human-facing name from the claim set. Returns false
// when the claims carry nothing usable, in which case the caller should keep
// whatever name it already has.
func (c *ClaimSet) DisplayName() (string, bool) {
	if c.GivenName != "" && c.FamilyName != "" {
		return c.GivenName + " " + c.FamilyName, true
	}
	if c.Email != "" {
		return c.Email, true
	}
	return "", false
}

func stringClaim(m jwtlib.MapClaims, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
