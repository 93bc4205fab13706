package mutation

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/neyborhuud/huud-go/core/cache"
	"github.com/neyborhuud/huud-go/core/logger"
)

var (
	// ErrNilCache is returned when the engine is constructed without a cache.
	ErrNilCache = errors.New("mutation engine requires a cache")
	// ErrNoOperation is returned when a mutation has no network operation.
	ErrNoOperation = errors.New("mutation has no network operation")
)

// Mutation describes one optimistic interaction.
type Mutation struct {
	// Entity is the primary cached view of the target (e.g. the
	// single-post entry). Mutations sharing an Entity are serialized.
	Entity cache.Key

	// Resources are additional resources whose cached views may contain
	// the entity (e.g. feed pages). They are snapshotted, rewritten by
	// Predict, and invalidated on success.
	Resources []string

	// Predict applies the expected post-state to every affected view.
	// It runs under the cache lock, after the snapshot is taken.
	Predict func(tx *cache.Tx)

	// Op performs the network call.
	Op func(ctx context.Context) error
}

// AppendMutation is the create-post variant: no pre-existing entity, no
// prediction up front. Append runs only after Op succeeds.
type AppendMutation struct {
	// Resources are the list views to prepend into and invalidate.
	Resources []string

	// Op performs the network call and returns the created entity.
	Op func(ctx context.Context) (any, error)

	// Append prepends the created entity into each list view.
	Append func(tx *cache.Tx, created any)
}

// Option configures the engine.
type Option func(*Engine)

// WithLogger sets the engine logger. Nil disables logging.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = log
	}
}

// WithRefetch registers a hook invoked in the background after a
// confirmed mutation, once per invalidated resource. Wire this to the
// data services' refetch path to reconcile with the server.
func WithRefetch(fn func(resource string)) Option {
	return func(e *Engine) {
		e.refetch = fn
	}
}

// Engine runs optimistic mutations against an injected cache.
type Engine struct {
	cache   *cache.Cache
	logger  *slog.Logger
	refetch func(resource string)

	mu     sync.Mutex
	entity map[cache.Key]*sync.Mutex
}

// NewEngine creates an engine bound to c.
func NewEngine(c *cache.Cache, opts ...Option) (*Engine, error) {
	if c == nil {
		return nil, ErrNilCache
	}
	e := &Engine{
		cache:  c,
		entity: make(map[cache.Key]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Run executes one mutation through its full lifecycle and returns the
// resolved intent. The returned error is the network operation's error,
// already past rollback, ready for classification.
func (e *Engine) Run(ctx context.Context, m Mutation) (*Intent, error) {
	intent := newIntent(m.Entity)
	if m.Op == nil {
		return intent, ErrNoOperation
	}

	// Serialize against other mutations on the same entity. Layered
	// triggers block here and then predict on the then-current value.
	lock := e.entityLock(m.Entity)
	lock.Lock()
	defer lock.Unlock()

	// A late fetch response must not clobber the prediction.
	e.cache.CancelInflight(m.Entity.Resource)
	for _, r := range m.Resources {
		e.cache.CancelInflight(r)
	}

	// Snapshot and predict atomically.
	e.cache.Mutate(func(tx *cache.Tx) {
		keys := []cache.Key{m.Entity}
		for _, r := range m.Resources {
			keys = append(keys, tx.Keys(r)...)
		}
		intent.predicted(tx.Snapshot(keys...))
		if m.Predict != nil {
			m.Predict(tx)
		}
	})

	if err := m.Op(ctx); err != nil {
		snaps := intent.rolledBack(err)
		e.cache.Restore(snaps)
		if e.logger != nil {
			e.logger.WarnContext(ctx, "mutation rolled back",
				logger.IntentID(intent.ID.String()),
				logger.Error(err),
			)
		}
		return intent, err
	}

	intent.confirmed()
	e.invalidate(m.Entity.Resource, m.Resources)
	return intent, nil
}

// RunAppend executes the create case: dispatch first, and only on success
// prepend the created entity to the affected list views. Failure needs no
// rollback because nothing was applied.
func (e *Engine) RunAppend(ctx context.Context, m AppendMutation) (any, error) {
	if m.Op == nil {
		return nil, ErrNoOperation
	}

	created, err := m.Op(ctx)
	if err != nil {
		return nil, err
	}

	if m.Append != nil {
		e.cache.Mutate(func(tx *cache.Tx) {
			m.Append(tx, created)
		})
	}
	e.invalidate("", m.Resources)
	return created, nil
}

// invalidate marks the entity and resource views stale and schedules
// background refetches.
func (e *Engine) invalidate(entityResource string, resources []string) {
	if entityResource != "" {
		e.cache.InvalidateResource(entityResource)
	}
	for _, r := range resources {
		e.cache.InvalidateResource(r)
	}

	if e.refetch == nil {
		return
	}
	all := resources
	if entityResource != "" {
		all = append([]string{entityResource}, resources...)
	}
	go func() {
		for _, r := range all {
			e.refetch(r)
		}
	}()
}

func (e *Engine) entityLock(key cache.Key) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.entity[key]
	if !ok {
		lock = &sync.Mutex{}
		e.entity[key] = lock
	}
	return lock
}
