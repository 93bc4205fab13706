package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/neyborhuud/huud-go/core/session"
)

// Storage keys shared with every other NeyborHuud client.
const (
	keyAccessToken  = "neyborhuud_access_token"
	keyRefreshToken = "neyborhuud_refresh_token"
	keyUser         = "neyborhuud_user"
)

// ErrEmptyPath is returned by Open without a database path.
var ErrEmptyPath = errors.New("sqlite session store requires a database path")

const schema = `
CREATE TABLE IF NOT EXISTS client_state (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
);`

// Option configures the store.
type Option func(*Store)

// WithEncryption seals stored values with ChaCha20-Poly1305. The key is
// derived from secret with SHA-256, so any non-empty passphrase works.
// A database written with one secret cannot be read with another.
func WithEncryption(secret string) Option {
	return func(s *Store) {
		s.sealer = newSealer(secret)
	}
}

// Store is a session.Store backed by a local SQLite file.
type Store struct {
	db     *sql.DB
	sealer *sealer
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists.
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}
	// SQLite allows one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent saves.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create session schema: %w", err)
	}

	s := &Store{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load implements session.Store.
func (s *Store) Load(ctx context.Context) (session.Session, error) {
	access, err := s.get(ctx, keyAccessToken)
	if err != nil {
		return session.Session{}, err
	}
	if len(access) == 0 {
		return session.Session{}, session.ErrNotFound
	}

	sess := session.Session{AccessToken: string(access)}

	if refresh, err := s.get(ctx, keyRefreshToken); err != nil {
		return session.Session{}, err
	} else if refresh != nil {
		sess.RefreshToken = string(refresh)
	}

	if raw, err := s.get(ctx, keyUser); err != nil {
		return session.Session{}, err
	} else if raw != nil {
		if err := json.Unmarshal(raw, &sess.User); err != nil {
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

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	rows := map[string][]byte{
		keyAccessToken:  []byte(sess.AccessToken),
		keyRefreshToken: []byte(sess.RefreshToken),
		keyUser:         user,
	}
	for key, value := range rows {
		sealed, err := s.seal(value)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO client_state (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			key, sealed,
		); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return tx.Commit()
}

// Clear implements session.Store.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM client_state WHERE key IN (?, ?, ?)`,
		keyAccessToken, keyRefreshToken, keyUser,
	)
	return err
}

// get returns the value for key, nil when absent.
func (s *Store) get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM client_state WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.open(value)
}

func (s *Store) seal(value []byte) ([]byte, error) {
	if s.sealer == nil {
		return value, nil
	}
	return s.sealer.seal(value)
}

func (s *Store) open(value []byte) ([]byte, error) {
	if s.sealer == nil {
		return value, nil
	}
	return s.sealer.open(value)
}
