// Package todos is the downstream todo API caller. Every request carries the
// session's bearer credential and is wrapped with one-shot refresh-and-retry
// on authentication failure.
package todos

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/tidyplan/todo-gateway/sessions"
)

// HTTPError captures an unexpected downstream status code and response body.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status code: %d, body: %s", e.StatusCode, string(e.Body))
}

// Refresher forces new token material onto the record, reporting whether the
// refresh actually produced anything new. Satisfied by *token.Manager.
type Refresher interface {
	ForceRefresh(ctx context.Context, record *sessions.Record) bool
}

// maxAuthRetries bounds the reactive-refresh path: a 401 triggers at most one
// refresh and one repeat call, never more, regardless of further 401s.
const maxAuthRetries = 1

// Client issues authenticated requests against the todo API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	refresher  Refresher
}

// NewClient creates a todo API client. httpClient may be nil, in which case
// http.DefaultClient is used.
func NewClient(baseURL string, httpClient *http.Client, refresher Refresher) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		refresher:  refresher,
	}
}

// Do performs one downstream request with the record's identity token as the
// bearer credential. On a 401 it forces a refresh and, if that produced new
// material, repeats the call exactly once with the updated token. Any other
// status is returned as-is; retry is scoped strictly to authentication
// failure.
//
// The record may be mutated once per invocation, on the refresh path only.
func (c *Client) Do(ctx context.Context, method, endpoint string, record *sessions.Record, body []byte) ([]byte, int, error) {
	urlStr, err := c.buildURL(endpoint)
	if err != nil {
		return nil, 0, err
	}

	data, status, err := c.execute(ctx, method, urlStr, record.IdentityToken, body)
	if err != nil {
		return nil, 0, err
	}

	retries := maxAuthRetries
	for status == http.StatusUnauthorized && retries > 0 {
		retries--
		if !c.refresher.ForceRefresh(ctx, record) {
			// Refresh failed: surface the original 401 unchanged.
			return data, status, nil
		}
		data, status, err = c.execute(ctx, method, urlStr, record.IdentityToken, body)
		if err != nil {
			return nil, 0, err
		}
	}
	return data, status, nil
}

// execute performs the low-level HTTP call.
func (c *Client) execute(ctx context.Context, method, urlStr, bearer string, body []byte) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, urlStr, reader)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", readErr)
	}
	return data, resp.StatusCode, nil
}

func (c *Client) buildURL(endpoint string) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	path, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint: %w", err)
	}
	return base.ResolveReference(path).String(), nil
}
