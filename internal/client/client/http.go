package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/runnio/internal/common"
	"github.com/dmitrijs2005/runnio/internal/logging"
	"golang.org/x/time/rate"
)

const maxErrorBody = 1 << 20

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	base    http.RoundTripper
	timeout time.Duration
	limiter *rate.Limiter
	log     logging.Logger

	mu    sync.RWMutex
	token string
}

type Option func(*HTTPClient)

// WithTimeout bounds each request, including reading the response body.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

// WithRateLimit throttles outgoing requests to rps per second. rps <= 0
// disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *HTTPClient) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithTransport replaces the underlying round tripper (tests, proxies).
func WithTransport(rt http.RoundTripper) Option {
	return func(c *HTTPClient) { c.base = rt }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient builds a client for the API rooted at baseURL, e.g.
// "http://localhost:5000/api".
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q: missing host", baseURL)
	}

	c := &HTTPClient{
		baseURL: u,
		base:    http.DefaultTransport,
		timeout: 15 * time.Second,
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.http = &http.Client{
		Timeout:   c.timeout,
		Transport: &authTransport{base: c.base, token: c.currentToken},
	}
	return c, nil
}

// SetAuthHeader sets the bearer token sent with every subsequent request.
// An empty token removes the header.
func (c *HTTPClient) SetAuthHeader(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// AuthHeader returns the Authorization value the next request will carry,
// or "" when none.
func (c *HTTPClient) AuthHeader() string {
	if tok := c.currentToken(); tok != "" {
		return common.BearerPrefix + tok
	}
	return ""
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Close releases idle connections.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// Ping checks that the API answers its health endpoint.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

// do sends one JSON request. in is marshalled as the body when non-nil; a
// 2xx response body is decoded into out when out is non-nil.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
	}

	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "api request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "api request", "method", method, "path", path,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newAPIError(resp.StatusCode, b)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("decode response: empty body")
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// resourcePath joins fixed segments and escaped ids, e.g.
// resourcePath("events", id, "register"). Empty, "." and ".." segments are
// rejected since path cleaning would fold them into the parent resource.
func resourcePath(segments ...string) (string, error) {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		switch s {
		case "", ".", "..":
			return "", fmt.Errorf("%w: %q", ErrInvalidID, s)
		}
		escaped[i] = url.PathEscape(s)
	}
	return "/" + strings.Join(escaped, "/"), nil
}
