// Package provider implements the HTTP exchanges against the external
// identity provider's token endpoint: authorization code for tokens, and
// refresh token for tokens. Each call makes exactly one network attempt;
// retry policy belongs to the callers.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/tidyplan/todo-gateway/internal/config"
	apperrors "github.com/tidyplan/todo-gateway/internal/errors"
	"github.com/tidyplan/todo-gateway/internal/utils"
)

// UpstreamError captures a non-success response from the token endpoint.
// The body is kept for diagnostics but must not be trusted.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("token endpoint returned %d: %s", e.StatusCode, string(e.Body))
}

func (e *UpstreamError) Unwrap() error {
	return apperrors.ErrUpstreamRejected
}

// Client performs token exchanges against a single provider.
// It is stateless and safe for concurrent use.
type Client struct {
	httpClient *http.Client
	endpoints  Endpoints
	oauth2Cfg  *oauth2.Config
}

// NewClient resolves the provider endpoints and returns an exchange client.
func NewClient(ctx context.Context, cfg config.Config) (*Client, error) {
	endpoints, err := ResolveEndpoints(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("[provider.NewClient] %w", err)
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.GetExchangeTimeout()},
		endpoints:  endpoints,
		oauth2Cfg:  endpoints.OAuth2Config(cfg),
	}, nil
}

// NewClientWithEndpoints builds a client against explicit endpoints.
// Used by tests and by deployments that template endpoints directly.
func NewClientWithEndpoints(cfg config.ProviderConfig, endpoints Endpoints, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		endpoints:  endpoints,
		oauth2Cfg:  endpoints.OAuth2Config(cfg),
	}
}

// AuthCodeURL builds the provider authorize URL for the given state.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauth2Cfg.AuthCodeURL(state)
}

// ExchangeCode swaps an authorization code for a token bundle.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenBundle, error) {
	if code == "" {
		return nil, apperrors.Wrapf(apperrors.ErrMissingInput, "authorization code")
	}
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"client_id":     {c.oauth2Cfg.ClientID},
		"client_secret": {c.oauth2Cfg.ClientSecret},
		"code":          {code},
		"redirect_uri":  {c.oauth2Cfg.RedirectURL},
	}
	return c.postTokenEndpoint(ctx, form)
}

// ExchangeRefreshToken swaps a refresh token for a fresh token bundle.
func (c *Client) ExchangeRefreshToken(ctx context.Context, refreshToken string) (*TokenBundle, error) {
	if refreshToken == "" {
		return nil, apperrors.Wrapf(apperrors.ErrMissingInput, "refresh token")
	}
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"client_id":     {c.oauth2Cfg.ClientID},
		"client_secret": {c.oauth2Cfg.ClientSecret},
		"refresh_token": {refreshToken},
	}
	return c.postTokenEndpoint(ctx, form)
}

// postTokenEndpoint performs the single POST shared by both grant types and
// maps the response onto the exchange failure taxonomy.
func (c *Client) postTokenEndpoint(ctx context.Context, form url.Values) (*TokenBundle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoints.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token endpoint request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read token response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrUpstreamRejected, "decode token response: %v", err)
	}

	bundle := &TokenBundle{
		AccessToken:   utils.Value(tr.AccessToken),
		IdentityToken: utils.Value(tr.IdToken),
		RefreshToken:  utils.Value(tr.RefreshToken),
		ExpiresIn:     tr.ExpiresIn,
	}
	if bundle.AccessToken == "" || bundle.IdentityToken == "" {
		return nil, apperrors.Wrapf(apperrors.ErrIncompleteBundle, "access_token present: %t, id_token present: %t",
			bundle.AccessToken != "", bundle.IdentityToken != "")
	}
	return bundle, nil
}
