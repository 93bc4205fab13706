package client

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/neyborhuud/huud-go/core/sanitizer"
)

// Config holds client configuration, loadable from the environment via
// core/config.
type Config struct {
	// BaseURL is the API root every relative path is joined to.
	BaseURL string `env:"HUUD_API_BASE_URL" envDefault:"https://neyborhuud-serverside.onrender.com/api/v1"`

	// Timeout bounds every request including body read.
	Timeout time.Duration `env:"HUUD_HTTP_TIMEOUT" envDefault:"30s"`
}

// Option is a functional option for configuring the client.
type Option func(*Client)

// WithSessions attaches the session manager used for bearer tokens and
// fatal-401 invalidation. Without it the client is unauthenticated.
func WithSessions(sm SessionManager) Option {
	return func(c *Client) {
		c.sessions = sm
	}
}

// WithHTTPClient replaces the underlying HTTP client. The configured
// timeout is applied to it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithSanitizer replaces the default payload sanitizer.
func WithSanitizer(s *sanitizer.Sanitizer) Option {
	return func(c *Client) {
		c.sanitizer = s
	}
}

// WithRateLimiter throttles outgoing requests. Nil disables throttling.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithMetrics attaches a Prometheus collector recording request counts,
// durations and failure kinds.
func WithMetrics(m *Collector) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithLogger sets the logger. Nil disables logging.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.logger = log
	}
}
