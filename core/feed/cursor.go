package feed

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

var (
	// ErrNoMorePages is returned by Next when the feed is exhausted.
	ErrNoMorePages = errors.New("feed: no more pages")
	// ErrNilFetch is returned by NewCursor without a fetch function.
	ErrNilFetch = errors.New("feed: fetch function is required")
)

// DefaultLimit is the page size used when no WithLimit option is given.
const DefaultLimit = 10

// Page is one fetched page of a listing.
type Page[T any] struct {
	Items   []T
	HasMore bool
}

// FetchFunc loads one page of items. Pages are numbered from 1.
type FetchFunc[T any] func(ctx context.Context, page, limit int) (Page[T], error)

// Option configures a Cursor.
type Option func(*options)

type options struct {
	limit int
}

// WithLimit sets the page size requested from the fetch function.
func WithLimit(limit int) Option {
	return func(o *options) {
		if limit > 0 {
			o.limit = limit
		}
	}
}

// Cursor walks a paginated listing one page at a time. It is safe for
// concurrent use: overlapping Next calls for the same page share one
// fetch, and every caller observes a consistent accumulated view.
type Cursor[T any] struct {
	fetch FetchFunc[T]
	id    func(T) string
	limit int

	group singleflight.Group

	mu      sync.Mutex
	page    int
	items   []T
	seen    map[string]struct{}
	hasMore bool
}

// NewCursor creates a cursor over fetch. The id function extracts a stable
// identifier per item; items whose identifier was already returned by an
// earlier page are dropped. A nil id disables deduplication.
func NewCursor[T any](fetch FetchFunc[T], id func(T) string, opts ...Option) (*Cursor[T], error) {
	if fetch == nil {
		return nil, ErrNilFetch
	}
	o := options{limit: DefaultLimit}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cursor[T]{
		fetch:   fetch,
		id:      id,
		limit:   o.limit,
		seen:    make(map[string]struct{}),
		hasMore: true,
	}, nil
}

// Next fetches the next page and returns the newly added items. Once the
// fetch reports no further pages, subsequent calls return ErrNoMorePages
// until Reset. Fetch errors do not advance the cursor, so the same page is
// retried on the next call.
func (c *Cursor[T]) Next(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	if !c.hasMore {
		c.mu.Unlock()
		return nil, ErrNoMorePages
	}
	page := c.page + 1
	c.mu.Unlock()

	fresh, err, _ := c.group.Do(strconv.Itoa(page), func() (any, error) {
		result, err := c.fetch(ctx, page, c.limit)
		if err != nil {
			return nil, err
		}
		return c.absorb(page, result), nil
	})
	if err != nil {
		return nil, err
	}
	return fresh.([]T), nil
}

// absorb merges one fetched page into the cursor state. A stale result for
// an already-consumed page contributes nothing.
func (c *Cursor[T]) absorb(page int, result Page[T]) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	if page != c.page+1 {
		return nil
	}
	c.page = page
	c.hasMore = result.HasMore

	fresh := make([]T, 0, len(result.Items))
	for _, item := range result.Items {
		if c.id != nil {
			key := c.id(item)
			if _, dup := c.seen[key]; dup {
				continue
			}
			c.seen[key] = struct{}{}
		}
		fresh = append(fresh, item)
	}
	c.items = append(c.items, fresh...)
	return fresh
}

// Items returns a copy of everything fetched so far, in feed order.
func (c *Cursor[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

// HasMore reports whether another page may be available.
func (c *Cursor[T]) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasMore
}

// Page returns the number of the last fetched page, zero before the first
// fetch.
func (c *Cursor[T]) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Reset discards all fetched items and restarts from the first page.
func (c *Cursor[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = 0
	c.items = nil
	c.seen = make(map[string]struct{})
	c.hasMore = true
}
