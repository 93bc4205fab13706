package mutation

import (
	"sync"

	"github.com/google/uuid"

	"github.com/neyborhuud/huud-go/core/cache"
)

// State is a MutationIntent lifecycle phase. Transitions are strictly
// linear and never re-entered.
type State int

const (
	// StateCreated is the initial state before any cache write.
	StateCreated State = iota
	// StatePredicted means the optimistic delta has been applied and the
	// network call is pending.
	StatePredicted
	// StateConfirmed is terminal: the network call succeeded and the
	// affected views were marked stale for reconciliation.
	StateConfirmed
	// StateRolledBack is terminal: the network call failed and every
	// snapshot was restored verbatim.
	StateRolledBack
)

// String returns the lifecycle phase name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StatePredicted:
		return "predicted"
	case StateConfirmed:
		return "confirmed"
	case StateRolledBack:
		return "rolled_back"
	default:
		return "unknown"
	}
}

// Intent is the record of one optimistic mutation: its identity, the
// entity it targets, the snapshots it would restore, and where it is in
// its lifecycle.
type Intent struct {
	ID     uuid.UUID
	Entity cache.Key

	mu        sync.Mutex
	state     State
	snapshots []cache.Entry
	err       error
}

func newIntent(entity cache.Key) *Intent {
	return &Intent{
		ID:     uuid.New(),
		Entity: entity,
		state:  StateCreated,
	}
}

// State returns the current lifecycle phase.
func (i *Intent) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// Err returns the terminal error for rolled-back intents, nil otherwise.
func (i *Intent) Err() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.err
}

func (i *Intent) predicted(snapshots []cache.Entry) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.state = StatePredicted
	i.snapshots = snapshots
}

func (i *Intent) confirmed() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.state = StateConfirmed
	i.snapshots = nil
}

func (i *Intent) rolledBack(err error) []cache.Entry {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.state = StateRolledBack
	i.err = err
	snaps := i.snapshots
	i.snapshots = nil
	return snaps
}
