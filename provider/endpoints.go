package provider

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/tidyplan/todo-gateway/internal/config"
)

// Endpoints holds the provider's resolved authorize and token URLs.
type Endpoints struct {
	AuthorizeURL string
	TokenURL     string
}

// FixedEndpoints derives endpoints from a provider domain using the
// conventional /oauth2/authorize and /oauth2/token layout.
func FixedEndpoints(domain string) Endpoints {
	base := "https://" + domain
	return Endpoints{
		AuthorizeURL: base + "/oauth2/authorize",
		TokenURL:     base + "/oauth2/token",
	}
}

// DiscoverEndpoints resolves endpoints from the issuer's OIDC discovery
// document (/.well-known/openid-configuration).
func DiscoverEndpoints(ctx context.Context, issuerURL string) (Endpoints, error) {
	oidcProvider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return Endpoints{}, fmt.Errorf("oidc discovery for %q: %w", issuerURL, err)
	}
	endpoint := oidcProvider.Endpoint()
	return Endpoints{
		AuthorizeURL: endpoint.AuthURL,
		TokenURL:     endpoint.TokenURL,
	}, nil
}

// ResolveEndpoints picks discovery when an issuer URL is configured and the
// fixed layout otherwise.
func ResolveEndpoints(ctx context.Context, cfg config.ProviderConfig) (Endpoints, error) {
	if issuerURL := cfg.GetProviderIssuerURL(); issuerURL != "" {
		return DiscoverEndpoints(ctx, issuerURL)
	}
	domain := cfg.GetProviderDomain()
	if domain == "" {
		return Endpoints{}, fmt.Errorf("provider configuration requires PROVIDER_DOMAIN or PROVIDER_ISSUER_URL")
	}
	return FixedEndpoints(domain), nil
}

// OAuth2Config builds the standard library oauth2 configuration used for
// authorize URL construction.
func (e Endpoints) OAuth2Config(cfg config.ProviderConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.GetClientID(),
		ClientSecret: cfg.GetClientSecret(),
		RedirectURL:  cfg.GetRedirectURI(),
		Scopes:       cfg.GetScopes(),
		Endpoint: oauth2.Endpoint{
			AuthURL:  e.AuthorizeURL,
			TokenURL: e.TokenURL,
		},
	}
}
