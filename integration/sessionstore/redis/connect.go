package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrEmptyConnectionURL is returned by Connect without a URL.
	ErrEmptyConnectionURL = errors.New("empty redis connection URL")
	// ErrFailedToParseURL is returned for malformed connection URLs.
	ErrFailedToParseURL = errors.New("failed to parse redis connection URL")
	// ErrNotReady is returned when redis does not answer pings within the
	// configured attempts.
	ErrNotReady = errors.New("redis did not become ready")
)

// Config is the Redis connection configuration.
type Config struct {
	ConnectionURL  string        `env:"HUUD_REDIS_URL,required"`
	RetryAttempts  int           `env:"HUUD_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"HUUD_REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"HUUD_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// Connect creates a Redis client from cfg and verifies connectivity with
// a ping, retrying up to RetryAttempts times.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}

	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseURL, err)
	}

	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	interval := cfg.RetryInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := redis.NewClient(opts)

	var pingErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if pingErr = client.Ping(ctx).Err(); pingErr == nil {
			return client, nil
		}
		select {
		case <-ctx.Done():
			client.Close()
			return nil, errors.Join(ErrNotReady, pingErr, ctx.Err())
		case <-time.After(interval):
		}
	}

	client.Close()
	return nil, errors.Join(ErrNotReady, pingErr)
}
