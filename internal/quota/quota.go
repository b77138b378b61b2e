// Package quota tracks per-source call budgets over rolling windows.
//
// The tracker is checked before any upstream request is issued. A denied
// call is never retried or waited on: the resolution pipeline treats it
// as an immediate skip to the next fallback tier.
package quota

import (
	"sync"
	"time"
)

// Limit defines one source's budget.
type Limit struct {
	// Max is the number of calls admitted per window.
	Max int
	// Window is the rolling window length.
	Window time.Duration
}

type windowState struct {
	count int
	start time.Time
}

// Tracker counts calls per upstream source. All methods are safe for
// concurrent use.
type Tracker struct {
	mu     sync.Mutex
	limits map[string]Limit
	states map[string]*windowState
	now    func() time.Time

	// Metrics
	totalAdmitted int64
	totalDenied   int64
}

// NewTracker creates a tracker with the given per-source limits.
// Sources without a configured limit are always admitted.
func NewTracker(limits map[string]Limit) *Tracker {
	cp := make(map[string]Limit, len(limits))
	for k, v := range limits {
		cp[k] = v
	}
	return &Tracker{
		limits: cp,
		states: make(map[string]*windowState),
		now:    time.Now,
	}
}

// CanCall reports whether a call to source would be admitted right now.
// It does not consume budget.
func (t *Tracker) CanCall(source string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	limit, ok := t.limits[source]
	if !ok {
		return true
	}
	st := t.state(source)
	t.rollWindow(st, limit)
	return st.count < limit.Max
}

// RecordCall consumes one unit of budget for source.
func (t *Tracker) RecordCall(source string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	limit, ok := t.limits[source]
	if !ok {
		return
	}
	st := t.state(source)
	t.rollWindow(st, limit)
	st.count++
}

// Admit atomically checks and consumes budget: it returns true and
// increments the counter only when the call is within quota.
func (t *Tracker) Admit(source string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	limit, ok := t.limits[source]
	if !ok {
		t.totalAdmitted++
		return true
	}
	st := t.state(source)
	t.rollWindow(st, limit)
	if st.count >= limit.Max {
		t.totalDenied++
		return false
	}
	st.count++
	t.totalAdmitted++
	return true
}

// Stats describes one source's current window.
type Stats struct {
	Source    string
	Used      int
	Limit     int
	Window    time.Duration
	ResetsIn  time.Duration
	Unlimited bool
}

// SourceStats returns a snapshot of the current window for source.
func (t *Tracker) SourceStats(source string) Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	limit, ok := t.limits[source]
	if !ok {
		return Stats{Source: source, Unlimited: true}
	}
	st := t.state(source)
	t.rollWindow(st, limit)

	resetsIn := time.Duration(0)
	if st.count > 0 {
		resetsIn = limit.Window - t.now().Sub(st.start)
	}
	return Stats{
		Source:   source,
		Used:     st.count,
		Limit:    limit.Max,
		Window:   limit.Window,
		ResetsIn: resetsIn,
	}
}

// Sources returns the configured source names.
func (t *Tracker) Sources() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.limits))
	for k := range t.limits {
		out = append(out, k)
	}
	return out
}

// state returns the window state for source, creating it if needed.
// Caller must hold the mutex.
func (t *Tracker) state(source string) *windowState {
	st, ok := t.states[source]
	if !ok {
		st = &windowState{start: t.now()}
		t.states[source] = st
	}
	return st
}

// rollWindow resets the counter exactly at the window boundary.
// Caller must hold the mutex.
func (t *Tracker) rollWindow(st *windowState, limit Limit) {
	now := t.now()
	if now.Sub(st.start) >= limit.Window {
		st.count = 0
		st.start = now
	}
}

// SetClock overrides the time source. Test hook.
func (t *Tracker) SetClock(now func() time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.now = now
}
