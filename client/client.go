// Package client is the Go SDK for the editorial magazine API: a single
// HTTP gateway that attaches the bearer token and normalizes errors, the
// auth service that owns the session lifecycle, and thin typed services for
// posts, categories, and comments.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/inkwellmag/inkwell/session"
)

// DefaultBaseURL is the local development backend assumed when no origin is
// configured.
const DefaultBaseURL = "http://localhost:8000"

// apiPrefix is the versioned path every endpoint lives under.
const apiPrefix = "/api/v1"

// Client is the single chokepoint for outbound requests. All resource
// services issue their calls through it, so auth attachment and error
// normalization happen in exactly one place.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      session.Store
	logger     *slog.Logger
	userAgent  string

	// onUnauthorized is installed by the auth service and invoked when a
	// request that carried the auth header comes back 401.
	onUnauthorized func()

	Auth       *AuthService
	Posts      *PostsService
	Categories *CategoriesService
	Comments   *CommentsService
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets the underlying http.Client. The default client has no
// timeout; callers who want one supply their own.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the structured logger for request diagnostics. If not
// set, the client is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New creates a client for the API at baseURL, reading and (via the auth
// service) writing the session in store. baseURL may be given with or
// without the /api/v1 suffix and with or without a trailing slash.
func New(baseURL string, store session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:    NormalizeBaseURL(baseURL),
		httpClient: &http.Client{},
		store:      store,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		userAgent:  "inkwell-go/" + Version,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Auth = newAuthService(c, store)
	c.Posts = &PostsService{client: c}
	c.Categories = &CategoriesService{client: c}
	c.Comments = &CommentsService{client: c}
	return c
}

// BaseURL returns the normalized base URL all paths are resolved against.
func (c *Client) BaseURL() string { return c.baseURL }

// NormalizeBaseURL strips trailing slashes and appends the versioned API
// prefix exactly once. Applying it to an already-normalized URL is a no-op.
func NormalizeBaseURL(raw string) string {
	if raw == "" {
		raw = DefaultBaseURL
	}
	u := strings.TrimRight(raw, "/")
	if !strings.HasSuffix(u, apiPrefix) {
		u += apiPrefix
	}
	return u
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do issues a single request attempt, with no retry or backoff, and decodes a
// success body into out (which may be nil for responses without a payload).
// Non-success statuses come back as *APIError; a request that never reached
// the server comes back as *ConnectivityError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	// Attach the bearer token only when one exists; an anonymous request
	// carries no Authorization header at all.
	authed := false
	if token := c.store.Read().AccessToken; token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
		authed = true
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "error", err)
		return &ConnectivityError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(resp.Body)
	c.logger.Debug("request", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if readErr != nil {
			raw = nil
		}
		apiErr := normalizeError(resp.StatusCode, raw)
		if apiErr.Status == http.StatusUnauthorized && authed && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if readErr != nil {
		return fmt.Errorf("reading response body: %w", readErr)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}
