package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/tidyplan/todo-gateway/internal/errors"
	"github.com/tidyplan/todo-gateway/provider"
)

const (
	testClientID     = "test-client-1"
	testClientSecret = "test-secret-1"
	testRedirectURI  = "http://localhost:3000/callback"
)

// testProviderConfig is a fixed-value ProviderConfig for tests
type testProviderConfig struct{}

func (testProviderConfig) GetProviderDomain() string    { return "login.example.com" }
func (testProviderConfig) GetProviderIssuerURL() string { return "" }
func (testProviderConfig) GetClientID() string          { return testClientID }
func (testProviderConfig) GetClientSecret() string      { return testClientSecret }
func (testProviderConfig) GetRedirectURI() string       { return testRedirectURI }
func (testProviderConfig) GetScopes() []string          { return []string{"openid", "email", "profile"} }

// newTestClient builds an exchange client pointed at a fake token endpoint
func newTestClient(t *testing.T, handler http.HandlerFunc) (*provider.Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	endpoints := provider.Endpoints{
		AuthorizeURL: ts.URL + "/oauth2/authorize",
		TokenURL:     ts.URL + "/oauth2/token",
	}
	return provider.NewClientWithEndpoints(testProviderConfig{}, endpoints, ts.Client()), ts
}

func TestExchangeCodeSuccess(t *testing.T) {
	var gotForm map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		gotForm = map[string]string{
			"grant_type":    r.PostFormValue("grant_type"),
			"client_id":     r.PostFormValue("client_id"),
			"client_secret": r.PostFormValue("client_secret"),
			"code":          r.PostFormValue("code"),
			"redirect_uri":  r.PostFormValue("redirect_uri"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"A1","id_token":"I1","refresh_token":"R1","token_type":"bearer","expires_in":900}`))
	})

	bundle, err := client.ExchangeCode(context.Background(), "the-code")
	require.NoError(t, err)
	require.Equal(t, "A1", bundle.AccessToken)
	require.Equal(t, "I1", bundle.IdentityToken)
	require.Equal(t, "R1", bundle.RefreshToken)
	require.Equal(t, 900, bundle.ExpiresIn)

	require.Equal(t, map[string]string{
		"grant_type":    "authorization_code",
		"client_id":     testClientID,
		"client_secret": testClientSecret,
		"code":          "the-code",
		"redirect_uri":  testRedirectURI,
	}, gotForm)
}

func TestExchangeRefreshTokenSuccess(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "refresh_token", r.PostFormValue("grant_type"))
		require.Equal(t, "R1", r.PostFormValue("refresh_token"))
		require.Equal(t, testClientID, r.PostFormValue("client_id"))
		w.Write([]byte(`{"access_token":"A2","id_token":"I2"}`))
	})

	bundle, err := client.ExchangeRefreshToken(context.Background(), "R1")
	require.NoError(t, err)
	require.Equal(t, "A2", bundle.AccessToken)
	require.Equal(t, "I2", bundle.IdentityToken)
	require.Empty(t, bundle.RefreshToken, "refresh token absent from response stays empty in the bundle")
}

func TestExchangeMissingInputMakesNoNetworkCall(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	_, err := client.ExchangeCode(context.Background(), "")
	require.ErrorIs(t, err, apperrors.ErrMissingInput)

	_, err = client.ExchangeRefreshToken(context.Background(), "")
	require.ErrorIs(t, err, apperrors.ErrMissingInput)

	require.Zero(t, calls)
}

func TestExchangeUpstreamRejected(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	})

	_, err := client.ExchangeRefreshToken(context.Background(), "expired")
	require.ErrorIs(t, err, apperrors.ErrUpstreamRejected)

	var upstreamErr *provider.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	require.Equal(t, http.StatusBadRequest, upstreamErr.StatusCode)
	require.Contains(t, string(upstreamErr.Body), "invalid_grant")
}

func TestExchangeIncompleteBundle(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing id_token", `{"access_token":"A1"}`},
		{"missing access_token", `{"id_token":"I1"}`},
		{"missing both", `{"token_type":"bearer"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			})
			_, err := client.ExchangeRefreshToken(context.Background(), "R1")
			require.ErrorIs(t, err, apperrors.ErrIncompleteBundle)
		})
	}
}

func TestAuthCodeURL(t *testing.T) {
	endpoints := provider.FixedEndpoints("login.example.com")
	client := provider.NewClientWithEndpoints(testProviderConfig{}, endpoints, nil)

	authURL := client.AuthCodeURL("random-state-value")
	require.Contains(t, authURL, "https://login.example.com/oauth2/authorize?")
	require.Contains(t, authURL, "response_type=code")
	require.Contains(t, authURL, "client_id="+testClientID)
	require.Contains(t, authURL, "state=random-state-value")
	require.Contains(t, authURL, "scope=openid+email+profile")
}

func TestFixedEndpoints(t *testing.T) {
	endpoints := provider.FixedEndpoints("login.example.com")
	require.Equal(t, "https://login.example.com/oauth2/authorize", endpoints.AuthorizeURL)
	require.Equal(t, "https://login.example.com/oauth2/token", endpoints.TokenURL)
}
