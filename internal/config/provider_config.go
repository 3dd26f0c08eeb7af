package config

import "strings"

// ProviderConfig describes the external identity provider the gateway
// authenticates against. Endpoints follow the fixed
// https://{domain}/oauth2/... layout unless an issuer URL is supplied,
// in which case OIDC discovery resolves them instead.
type ProviderConfig interface {
	GetProviderDomain() string
	GetProviderIssuerURL() string
	GetClientID() string
	GetClientSecret() string
	GetRedirectURI() string
	GetScopes() []string
}

type Provider struct{}

var _ ProviderConfig = Provider{}

func (Provider) GetProviderDomain() string {
	return GetEnv("PROVIDER_DOMAIN", "")
}

// GetProviderIssuerURL returns the OIDC issuer URL for endpoint discovery.
// Empty means discovery is disabled and the fixed endpoint layout is used.
func (Provider) GetProviderIssuerURL() string {
	return GetEnv("PROVIDER_ISSUER_URL", "")
}

func (Provider) GetClientID() string {
	return GetEnv("PROVIDER_CLIENT_ID", "")
}

func (Provider) GetClientSecret() string {
	return GetEnv("PROVIDER_CLIENT_SECRET", "")
}

func (Provider) GetRedirectURI() string {
	return GetEnv("PROVIDER_REDIRECT_URI", "http://localhost:8080/callback")
}

func (Provider) GetScopes() []string {
	scopes := GetEnv("PROVIDER_SCOPES", "openid email profile")
	return strings.Fields(scopes)
}
