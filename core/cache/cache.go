package cache

import (
	"context"
	"sync"
	"time"
)

// Entry is a snapshot of one cached query result. Exists distinguishes an
// entry that held a value from a key that was absent when the snapshot
// was taken, so Restore can remove entries created after the snapshot.
type Entry struct {
	Key       Key
	Value     any
	Version   uint64
	Stale     bool
	UpdatedAt time.Time
	Exists    bool
}

type record struct {
	value     any
	version   uint64
	stale     bool
	updatedAt time.Time
}

// Cache is a keyed, versioned store of server-owned query results.
// All methods are safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	records map[Key]*record

	inflightSeq uint64
	inflight    map[string]map[uint64]context.CancelFunc
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		records:  make(map[Key]*record),
		inflight: make(map[string]map[uint64]context.CancelFunc),
	}
}

// Get returns the last-known value for key without blocking.
func (c *Cache) Get(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.records[key]
	if !ok {
		return nil, false
	}
	return rec.value, true
}

// GetEntry returns the full entry for key, including version and
// staleness metadata.
func (c *Cache) GetEntry(key Key) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.records[key]
	if !ok {
		return Entry{Key: key}, false
	}
	return entryOf(key, rec), true
}

// Set stores value under key, bumping the version and clearing staleness.
func (c *Cache) Set(key Key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(key, value)
}

// Update rewrites the value under key with fn. Absent keys are left
// untouched and Update reports false.
func (c *Cache) Update(key Key, fn func(value any) any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.update(key, fn)
}

// UpdateResource rewrites every cached entry of the given resource.
// fn receives each entry's key and value and returns the replacement.
func (c *Cache) UpdateResource(resource string, fn func(key Key, value any) any) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updateResource(resource, fn)
}

// Invalidate marks the entry stale so the next reader triggers a
// background refetch. The cached value stays readable until then.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rec, ok := c.records[key]; ok {
		rec.stale = true
	}
}

// InvalidateResource marks every entry of the resource stale.
func (c *Cache) InvalidateResource(resource string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, rec := range c.records {
		if key.Resource == resource {
			rec.stale = true
		}
	}
}

// Keys returns the keys of every cached entry for the resource.
func (c *Cache) Keys(resource string) []Key {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keys(resource)
}

// Remove deletes the entry outright.
func (c *Cache) Remove(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.records, key)
}

// Snapshot captures the current state of the given keys, including keys
// with no entry, so a later Restore reproduces the exact pre-mutation
// state.
func (c *Cache) Snapshot(keys ...Key) []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot(keys)
}

// Restore writes the snapshot back verbatim: existing entries get their
// captured values, entries captured as absent are deleted.
func (c *Cache) Restore(entries []Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.restore(entries)
}

// Tx is a transaction view over the cache held open by Mutate. All Tx
// operations run under the cache lock; do not retain a Tx after Mutate
// returns.
type Tx struct {
	c *Cache
}

// Mutate runs fn against a transaction view under the cache lock, making
// a snapshot-then-predict sequence atomic with respect to every other
// cache user.
func (c *Cache) Mutate(fn func(tx *Tx)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&Tx{c: c})
}

// Snapshot captures keys within the transaction.
func (tx *Tx) Snapshot(keys ...Key) []Entry { return tx.c.snapshot(keys) }

// Keys lists keys of a resource within the transaction.
func (tx *Tx) Keys(resource string) []Key { return tx.c.keys(resource) }

// Set stores a value within the transaction.
func (tx *Tx) Set(key Key, value any) { tx.c.set(key, value) }

// Update rewrites one entry within the transaction.
func (tx *Tx) Update(key Key, fn func(value any) any) bool { return tx.c.update(key, fn) }

// UpdateResource rewrites a resource's entries within the transaction.
func (tx *Tx) UpdateResource(resource string, fn func(key Key, value any) any) int {
	return tx.c.updateResource(resource, fn)
}

// Restore writes a snapshot back within the transaction.
func (tx *Tx) Restore(entries []Entry) { tx.c.restore(entries) }

// TrackInflight derives a cancellable context for a fetch against the
// resource and registers it for CancelInflight. The returned cancel must
// be called when the fetch finishes; it also deregisters.
func (c *Cache) TrackInflight(ctx context.Context, resource string) (context.Context, context.CancelFunc) {
	fetchCtx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	c.inflightSeq++
	id := c.inflightSeq
	if c.inflight[resource] == nil {
		c.inflight[resource] = make(map[uint64]context.CancelFunc)
	}
	c.inflight[resource][id] = cancel
	c.mu.Unlock()

	return fetchCtx, func() {
		c.mu.Lock()
		delete(c.inflight[resource], id)
		c.mu.Unlock()
		cancel()
	}
}

// CancelInflight cancels every tracked fetch for the resource. Run before
// snapshotting so a late response cannot overwrite the prediction.
func (c *Cache) CancelInflight(resource string) {
	c.mu.Lock()
	cancels := make([]context.CancelFunc, 0, len(c.inflight[resource]))
	for _, cancel := range c.inflight[resource] {
		cancels = append(cancels, cancel)
	}
	delete(c.inflight, resource)
	c.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

// Internal variants assume c.mu is held.

func (c *Cache) set(key Key, value any) {
	rec, ok := c.records[key]
	if !ok {
		rec = &record{}
		c.records[key] = rec
	}
	rec.value = value
	rec.version++
	rec.stale = false
	rec.updatedAt = time.Now()
}

func (c *Cache) update(key Key, fn func(value any) any) bool {
	rec, ok := c.records[key]
	if !ok {
		return false
	}
	rec.value = fn(rec.value)
	rec.version++
	rec.updatedAt = time.Now()
	return true
}

func (c *Cache) updateResource(resource string, fn func(key Key, value any) any) int {
	n := 0
	for key, rec := range c.records {
		if key.Resource != resource {
			continue
		}
		rec.value = fn(key, rec.value)
		rec.version++
		rec.updatedAt = time.Now()
		n++
	}
	return n
}

func (c *Cache) keys(resource string) []Key {
	var out []Key
	for key := range c.records {
		if key.Resource == resource {
			out = append(out, key)
		}
	}
	return out
}

func (c *Cache) snapshot(keys []Key) []Entry {
	out := make([]Entry, 0, len(keys))
	for _, key := range keys {
		rec, ok := c.records[key]
		if !ok {
			out = append(out, Entry{Key: key})
			continue
		}
		out = append(out, entryOf(key, rec))
	}
	return out
}

func (c *Cache) restore(entries []Entry) {
	for _, e := range entries {
		if !e.Exists {
			delete(c.records, e.Key)
			continue
		}
		rec, ok := c.records[e.Key]
		if !ok {
			rec = &record{}
			c.records[e.Key] = rec
		}
		rec.value = e.Value
		rec.version++
		rec.stale = e.Stale
		rec.updatedAt = time.Now()
	}
}

func entryOf(key Key, rec *record) Entry {
	return Entry{
		Key:       key,
		Value:     rec.value,
		Version:   rec.version,
		Stale:     rec.stale,
		UpdatedAt: rec.updatedAt,
		Exists:    true,
	}
}
