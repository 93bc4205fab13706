package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/neyborhuud/huud-go/core/session"
)

// defaultKey is the hash holding the session fields.
const defaultKey = "huud:session"

// Hash fields, mirroring the storage names used by the other clients.
const (
	fieldAccessToken  = "neyborhuud_access_token"
	fieldRefreshToken = "neyborhuud_refresh_token"
	fieldUser         = "neyborhuud_user"
)

// StoreOption configures the store.
type StoreOption func(*Store)

// WithKey overrides the hash key, letting several logins share one Redis
// (one key per account or per device).
func WithKey(key string) StoreOption {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// Store is a session.Store backed by a Redis hash.
type Store struct {
	rdb *redis.Client
	key string
}

// NewStore creates a session store over rdb.
func NewStore(rdb *redis.Client, opts ...StoreOption) *Store {
	s := &Store{rdb: rdb, key: defaultKey}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load implements session.Store.
func (s *Store) Load(ctx context.Context) (session.Session, error) {
	fields, err := s.rdb.HGetAll(ctx, s.key).Result()
	if err != nil {
		return session.Session{}, fmt.Errorf("load session: %w", err)
	}
	if fields[fieldAccessToken] == "" {
		return session.Session{}, session.ErrNotFound
	}

	sess := session.Session{
		AccessToken:  fields[fieldAccessToken],
		RefreshToken: fields[fieldRefreshToken],
	}
	if raw := fields[fieldUser]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &sess.User); err != nil {
			return session.Session{}, fmt.Errorf("decode stored user: %w", err)
		}
	}
	return sess, nil
}

// Save implements session.Store.
func (s *Store) Save(ctx context.Context, sess session.Session) error {
	user, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.rdb.HSet(ctx, s.key,
		fieldAccessToken, sess.AccessToken,
		fieldRefreshToken, sess.RefreshToken,
		fieldUser, string(user),
	).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear implements session.Store.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
