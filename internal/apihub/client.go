// Package apihub proxies the public-apis directory (api.publicapis.org).
// The responses are forwarded to the frontend as-is — this service adds
// nothing but the round-trip, so the client returns raw JSON rather than
// decoding into structs it would immediately re-encode.
package apihub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.publicapis.org"

// Client fetches from the public-apis directory.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New creates a Client against the real directory.
func New() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    defaultBaseURL,
	}
}

// NewWithBaseURL points the client at a test server.
func NewWithBaseURL(baseURL string) *Client {
	c := New()
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// Categories returns the raw JSON list of API categories.
func (c *Client) Categories(ctx context.Context) (json.RawMessage, error) {
	body, err := c.get(ctx, "/categories")
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch API categories: %w", err)
	}
	return body, nil
}

// Entries returns the raw JSON list of APIs in one category.
func (c *Client) Entries(ctx context.Context, category string) (json.RawMessage, error) {
	body, err := c.get(ctx, "/entries?category="+url.QueryEscape(category))
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch API entries: %w", err)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return json.RawMessage(body), nil
}
