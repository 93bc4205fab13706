package session

import (
	"log/slog"
	"time"
)

// Config holds session manager configuration.
type Config struct {
	// InvalidateDelay is how long Invalidate waits before firing hooks,
	// giving the UI time to show the failure message before navigating.
	InvalidateDelay time.Duration

	logger *slog.Logger
	hooks  []func(reason string)
}

func defaultConfig() *Config {
	return &Config{
		InvalidateDelay: 2 * time.Second,
	}
}

// Option is a functional option for configuring the session manager.
type Option func(*Config)

// WithInvalidateDelay sets the delay between clearing a fatally invalid
// session and firing OnInvalidate hooks. Zero fires hooks immediately.
func WithInvalidateDelay(d time.Duration) Option {
	return func(c *Config) {
		c.InvalidateDelay = d
	}
}

// WithOnInvalidate registers a hook fired after a session is destroyed by
// Invalidate. The UI layer uses this to navigate to the login entry point.
func WithOnInvalidate(hook func(reason string)) Option {
	return func(c *Config) {
		if hook != nil {
			c.hooks = append(c.hooks, hook)
		}
	}
}

// WithLogger sets the logger. Nil disables logging.
func WithLogger(log *slog.Logger) Option {
	return func(c *Config) {
		c.logger = log
	}
}
