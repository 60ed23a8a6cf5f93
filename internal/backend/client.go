// Package backend is the REST client for the LocaTrack API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"locatrack.io/locatrack/pkg/options"
)

// AuthProvider supplies the headers to attach to authenticated requests.
// It returns an empty map when no session is active. The session store is
// the only implementation; the client itself never holds credentials.
type AuthProvider func() map[string]string

// Client talks to the LocaTrack backend. All methods decode JSON bodies and
// translate non-2xx responses into *APIError.
type Client struct {
	baseURL    string
	httpClient *http.Client
	auth       AuthProvider
}

// New creates a backend client from the given options.
func New(opts *options.BackendOptions) *Client {
	return &Client{
		baseURL:    strings.TrimRight(opts.URL, "/"),
		httpClient: &http.Client{Timeout: opts.Timeout},
	}
}

// NewWithBaseURL creates a client against an explicit base URL, mainly for tests.
func NewWithBaseURL(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetAuthProvider installs the header hook used for bearer authentication.
func (c *Client) SetAuthProvider(auth AuthProvider) {
	c.auth = auth
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// get issues an authenticated GET against an /api path and decodes into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// post issues an authenticated POST with a JSON body and decodes into out.
func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	u := c.baseURL + "/api" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.auth != nil {
		for k, v := range c.auth() {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ConnectionError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}

	return nil
}
