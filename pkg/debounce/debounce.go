// Package debounce delays execution until input settles.
//
// A Debouncer collapses a burst of calls into one: every Call resets the
// quiet-period timer, and only the function passed to the last call
// runs. Typical use is validating a username or email while the user is
// still typing:
//
//	d := debounce.New(500 * time.Millisecond)
//	defer d.Stop()
//	onKeystroke(func(value string) {
//		d.Call(func() { checkAvailability(value) })
//	})
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs the most recent function once calls have been quiet for
// the configured period. Safe for concurrent use.
type Debouncer struct {
	quiet time.Duration

	mu    sync.Mutex
	timer *time.Timer
	fn    func()
}

// New creates a Debouncer with the given quiet period. A non-positive
// period runs every call immediately.
func New(quiet time.Duration) *Debouncer {
	return &Debouncer{quiet: quiet}
}

// Call schedules fn to run after the quiet period, replacing any
// previously scheduled function. A nil fn only resets the timer.
func (d *Debouncer) Call(fn func()) {
	if d.quiet <= 0 {
		if fn != nil {
			fn()
		}
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.fn = fn
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.fn
	d.fn = nil
	d.timer = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Stop cancels any pending run. Calls after Stop schedule normally.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.fn = nil
}

// Flush runs any pending function immediately instead of waiting out the
// quiet period.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	fn := d.fn
	d.fn = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}
