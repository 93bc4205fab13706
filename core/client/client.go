package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/neyborhuud/huud-go/core/apierr"
	"github.com/neyborhuud/huud-go/core/logger"
	"github.com/neyborhuud/huud-go/core/sanitizer"
)

// ErrMissingBaseURL is returned when the client is constructed without an
// API base URL.
var ErrMissingBaseURL = errors.New("client requires a base URL")

// SessionManager is the slice of the session API the client needs: a
// token for outgoing requests and invalidation on fatal auth failure.
type SessionManager interface {
	Token() string
	Invalidate(ctx context.Context, reason string) error
}

// Client issues requests against the NeyborHuud API.
type Client struct {
	baseURL   string
	http      *http.Client
	sessions  SessionManager
	sanitizer *sanitizer.Sanitizer
	limiter   *rate.Limiter
	metrics   *Collector
	logger    *slog.Logger
}

// New creates a client for cfg.BaseURL.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		sanitizer: sanitizer.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	c.http.Timeout = timeout

	return c, nil
}

// Get issues a GET request with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, "")
}

// Post issues a POST request with a sanitized JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	payload, err := c.encodeBody(body)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, path, nil, payload, "application/json")
}

// Put issues a PUT request with a sanitized JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	payload, err := c.encodeBody(body)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPut, path, nil, payload, "application/json")
}

// Patch issues a PATCH request with a sanitized JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	payload, err := c.encodeBody(body)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPatch, path, nil, payload, "application/json")
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "")
}

// encodeBody marshals and sanitizes a JSON request body. Nil bodies send
// no payload.
func (c *Client) encodeBody(body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(c.sanitizer.CleanJSON(raw)), nil
}

// do performs the request and normalizes the outcome: a *Response for
// 2xx, a *apierr.Error for everything else.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, apierr.Network(err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path, query), body)
	if err != nil {
		return nil, apierr.Network(err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	// Some endpoints are public; a missing token is not an error here.
	if c.sessions != nil {
		if token := c.sessions.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	httpResp, err := c.http.Do(req)
	if err != nil {
		c.metrics.observe(method, 0, time.Since(start))
		netErr := apierr.Network(err)
		c.fail(ctx, method, path, netErr)
		return nil, netErr
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	c.metrics.observe(method, httpResp.StatusCode, time.Since(start))
	if err != nil {
		netErr := apierr.Network(err)
		c.fail(ctx, method, path, netErr)
		return nil, netErr
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		apiErr := apierr.FromResponse(httpResp.StatusCode, raw)
		c.fail(ctx, method, path, apiErr)
		return nil, apiErr
	}

	return parseResponse(raw), nil
}

// fail classifies a failed call, records it, and destroys the session on
// a fatal authentication outcome. A permissions-style 401 does not clear
// the session; that distinction lives in the classifier rules.
func (c *Client) fail(ctx context.Context, method, path string, err error) {
	kind := apierr.Classify(err)
	c.metrics.observeFailure(kind.String())

	if c.logger != nil {
		var status int
		var apiErr *apierr.Error
		if errors.As(err, &apiErr) {
			status = apiErr.Status
		}
		c.logger.WarnContext(ctx, "request failed",
			logger.Method(method),
			logger.Endpoint(path),
			logger.Status(status),
			logger.Kind(kind.String()),
			logger.Error(err),
		)
	}

	if kind.ClearsSession() && c.sessions != nil {
		_ = c.sessions.Invalidate(ctx, kind.String())
	}
}

// resolve joins a path to the base URL. Absolute URLs pass through for
// the rare endpoint hosted elsewhere.
func (c *Client) resolve(path string, query url.Values) string {
	full := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		full = c.baseURL + path
	}
	if len(query) > 0 {
		full += "?" + query.Encode()
	}
	return full
}
