package search

import (
	"sync"
	"time"
)

// Debouncer schedules search evaluations at the caller boundary. Each
// Submit cancels the previous pending evaluation before it fires, so at
// most one evaluation runs per settled query. The engine underneath has
// no timing dependency of its own.
type Debouncer struct {
	interval time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

// NewDebouncer creates a debouncer with the given settle interval.
// An interval of zero or less falls back to 300ms.
func NewDebouncer(interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = 300 * time.Millisecond
	}
	return &Debouncer{interval: interval}
}

// Submit schedules fn(query) after the settle interval, cancelling any
// previously scheduled evaluation that has not fired yet.
func (d *Debouncer) Submit(query string, fn func(query string)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, func() {
		fn(query)
	})
}

// Stop cancels any pending evaluation and rejects further submissions.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
