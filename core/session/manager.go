package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/neyborhuud/huud-go/core/logger"
)

// Manager owns the single active session for a client instance. It
// rehydrates from the store at construction, keeps the current session in
// memory behind a mutex, and mirrors every change back to the store.
type Manager struct {
	store  Store
	delay  time.Duration
	hooks  []func(reason string)
	logger *slog.Logger

	mu      sync.RWMutex
	current Session
}

// NewManager creates a manager backed by store and rehydrates any
// persisted session. A store with nothing persisted yields an anonymous
// manager, not an error.
func NewManager(ctx context.Context, store Store, opts ...Option) (*Manager, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	m := &Manager{
		store:  store,
		delay:  cfg.InvalidateDelay,
		hooks:  cfg.hooks,
		logger: cfg.logger,
	}

	sess, err := store.Load(ctx)
	switch {
	case err == nil:
		m.current = sess
	case errors.Is(err, ErrNotFound):
		// Anonymous start.
	default:
		return nil, err
	}

	return m, nil
}

// Current returns a copy of the active session. Anonymous sessions are
// the zero value.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Token returns the current access token, or empty when anonymous.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.AccessToken
}

// User returns the cached user profile from the current session.
func (m *Manager) User() User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.User
}

// IsAuthenticated reports whether an access token is present.
func (m *Manager) IsAuthenticated() bool {
	return m.Token() != ""
}

// Set replaces the active session and persists it. Called on successful
// login or registration.
func (m *Manager) Set(ctx context.Context, sess Session) error {
	if err := m.store.Save(ctx, sess); err != nil {
		return errors.Join(ErrSaveSession, err)
	}

	m.mu.Lock()
	m.current = sess
	m.mu.Unlock()
	return nil
}

// SetUser updates only the cached user profile, preserving tokens.
// Used after profile completion or settings changes.
func (m *Manager) SetUser(ctx context.Context, user User) error {
	m.mu.Lock()
	sess := m.current
	sess.User = user
	m.mu.Unlock()

	return m.Set(ctx, sess)
}

// Clear destroys the active session and its persisted copy. Explicit
// logout path; fires no hooks.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.current = Session{}
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		return errors.Join(ErrClearSession, err)
	}
	return nil
}

// Invalidate destroys the session in response to a fatal authentication
// failure, then fires OnInvalidate hooks after the configured delay so
// the failure message can be read before any navigation occurs.
func (m *Manager) Invalidate(ctx context.Context, reason string) error {
	if err := m.Clear(ctx); err != nil {
		return err
	}

	if m.logger != nil {
		m.logger.WarnContext(ctx, "session invalidated", logger.Kind(reason))
	}

	if len(m.hooks) == 0 {
		return nil
	}

	fire := func() {
		for _, hook := range m.hooks {
			hook(reason)
		}
	}
	if m.delay <= 0 {
		fire()
		return nil
	}
	time.AfterFunc(m.delay, fire)
	return nil
}
