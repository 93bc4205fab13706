package session

import "context"

// Store defines durable persistence for the single client session.
// Implementations must be safe for concurrent use. Load returns
// ErrNotFound when nothing is persisted.
type Store interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, sess Session) error
	Clear(ctx context.Context) error
}
