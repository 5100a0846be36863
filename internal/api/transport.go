package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/reel/internal/domain"
	"golang.org/x/net/publicsuffix"
)

const (
	defaultTimeout = 30 * time.Second

	// DefaultBasePath is used when no base URL is configured
	DefaultBasePath = "/api"
)

// Transport is the single HTTP entry point for the API. Every non-success
// response is returned as an error; callers only ever see validated data or
// a failure.
type Transport struct {
	baseURL    *url.URL
	httpClient *http.Client
	plugins    []Plugin
	logger     *slog.Logger
}

// Option configures a Transport
type Option func(*Transport)

// WithPlugins adds request plugins, consulted in order
func WithPlugins(plugins ...Plugin) Option {
	return func(t *Transport) {
		t.plugins = append(t.plugins, plugins...)
	}
}

// WithHTTPClient replaces the underlying HTTP client. A cookie jar is
// installed if the client has none.
func WithHTTPClient(c *http.Client) Option {
	return func(t *Transport) {
		t.httpClient = c
	}
}

// WithLogger sets the transport logger
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transport) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// ResolveBaseURL joins a base URL that may be a bare path (e.g. "/api")
// onto origin. Absolute base URLs are returned unchanged.
func ResolveBaseURL(origin, base string) (*url.URL, error) {
	if base == "" {
		base = DefaultBasePath
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	if u.IsAbs() {
		return u, nil
	}
	o, err := url.Parse(origin)
	if err != nil || !o.IsAbs() {
		return nil, fmt.Errorf("base URL %q is relative and origin %q is not absolute", base, origin)
	}
	return o.ResolveReference(u), nil
}

// NewTransport creates a transport rooted at baseURL
func NewTransport(baseURL *url.URL, opts ...Option) (*Transport, error) {
	t := &Transport{
		baseURL: baseURL,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.httpClient == nil {
		t.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if t.httpClient.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		t.httpClient.Jar = jar
	}
	return t, nil
}

// BaseURL returns the resolved base URL as a string
func (t *Transport) BaseURL() string {
	return strings.TrimRight(t.baseURL.String(), "/")
}

// Cookies returns the session cookies currently held for the base URL
func (t *Transport) Cookies() []*http.Cookie {
	return t.httpClient.Jar.Cookies(t.baseURL)
}

// SetCookies seeds the jar, e.g. with a session restored from disk
func (t *Transport) SetCookies(cookies []*http.Cookie) {
	t.httpClient.Jar.SetCookies(t.baseURL, cookies)
}

// endpoint joins an already escaped path onto the base URL path
func (t *Transport) endpoint(path string) string {
	return t.baseURL.JoinPath(path).String()
}

// Do sends a request and returns the raw body of a 2xx response. A non-nil
// body is JSON encoded.
func (t *Transport) Do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.endpoint(path), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	releases := make([]func(), 0, len(t.plugins))
	defer func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}()
	for _, p := range t.plugins {
		release, err := p.Acquire(ctx, req)
		if err != nil {
			t.logger.Warn("plugin rejected request", "plugin", p.Name(), "path", path, "error", err)
			return nil, err
		}
		releases = append(releases, release)
	}

	t.logger.Debug("api request", "method", method, "path", path, "requestID", req.Header.Get("X-Request-Id"))

	resp, err := t.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		t.logger.Error("api request failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &domain.StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
		t.logger.Error("api request error", "method", method, "path", path, "status", resp.StatusCode)
		if resp.StatusCode == http.StatusUnauthorized {
			statusErr.Err = domain.ErrUnauthenticated
		}
		return nil, statusErr
	}

	return respBody, nil
}

// isStatus reports whether err is a StatusError with the given code
func isStatus(err error, code int) bool {
	var statusErr *domain.StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == code
}
