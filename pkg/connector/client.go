// Package connector provides the shared contract for vendor API connectors:
// credential resolution, HTTP verb helpers with a vendor header hook, and a
// common error taxonomy.
package connector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// HeaderFunc builds vendor-specific request headers. Connectors override
// this to attach their auth scheme (bearer token, api-key header, etc).
type HeaderFunc func(ctx context.Context) (map[string]string, error)

// Client is the base HTTP client shared by all REST connectors. It is
// stateless apart from the underlying http.Client's connection pooling;
// connectors are instantiated per call in CLI and MCP context.
type Client struct {
	vendor  string
	baseURL string
	headers HeaderFunc
	http    *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the fixed per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHeaderFunc sets the vendor header hook.
func WithHeaderFunc(fn HeaderFunc) ClientOption {
	return func(c *Client) { c.headers = fn }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// NewClient creates a base client for a vendor API. Operator settings
// installed via Configure apply first; explicit options win over them.
func NewClient(vendor, baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		vendor:  vendor,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	if s := settingsFor(vendor); s.Timeout > 0 {
		c.http.Timeout = s.Timeout
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Vendor returns the vendor short name.
func (c *Client) Vendor() string { return c.vendor }

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Get performs a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post performs a POST request with a JSON body and decodes the response.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Delete performs a DELETE request. Response bodies are discarded.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// PostForm performs a POST with url-encoded form data and decodes the
// response. Used by OAuth token endpoints.
func (c *Client) PostForm(ctx context.Context, rawURL string, headers map[string]string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.send(req, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.headers != nil {
		headers, err := c.headers(ctx)
		if err != nil {
			return err
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
	}

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return NetworkError(c.vendor, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return NetworkError(c.vendor, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fromResponseBody(c.vendor, resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return NewError(c.vendor, TypeProvider, fmt.Sprintf("decoding response: %v", err))
	}
	return nil
}

// Credential resolves an API credential: the explicit value wins, then the
// named environment variable. A configured token_env redirects the lookup
// to an alternate variable. Returns an authentication error naming the
// variable when nothing is present.
func Credential(vendor, explicit, envVar string) (string, error) {
	if alt := settingsFor(vendor).TokenEnv; alt != "" {
		envVar = alt
	}
	return SecondaryCredential(vendor, explicit, envVar)
}

// SecondaryCredential resolves an additional credential for vendors that
// need more than one (client secrets, account IDs). The configured
// token_env redirect applies only to the primary credential.
func SecondaryCredential(vendor, explicit, envVar string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if v := os.Getenv(envVar); v != "" {
		return v, nil
	}
	return "", AuthError(vendor, fmt.Sprintf("missing credential: set %s or pass it explicitly", envVar))
}

// BaseURL resolves a vendor's API base URL: a configured base_url wins,
// then the environment variable override, then the vendor default.
func BaseURL(vendor, envVar, fallback string) string {
	if s := settingsFor(vendor); s.BaseURL != "" {
		return s.BaseURL
	}
	return BaseURLFromEnv(envVar, fallback)
}

// BaseURLFromEnv returns the override from envVar when set, else fallback.
// Tests and self-hosted deployments point connectors at alternate hosts
// this way.
func BaseURLFromEnv(envVar, fallback string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return fallback
}
