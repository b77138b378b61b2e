package quota

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestTracker(limit int, window time.Duration) (*Tracker, *time.Time) {
	tr := NewTracker(map[string]Limit{
		"esg-scores": {Max: limit, Window: window},
	})
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	tr.SetClock(func() time.Time { return now })
	return tr, &now
}

func TestDenyAfterLimit(t *testing.T) {
	tr, _ := newTestTracker(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, tr.CanCall("esg-scores"), "call %d should be admitted", i+1)
		tr.RecordCall("esg-scores")
	}
	assert.False(t, tr.CanCall("esg-scores"), "call beyond limit must be denied")
}

func TestWindowElapseReadmits(t *testing.T) {
	tr, now := newTestTracker(2, time.Minute)

	assert.True(t, tr.Admit("esg-scores"))
	assert.True(t, tr.Admit("esg-scores"))
	assert.False(t, tr.Admit("esg-scores"))

	*now = now.Add(time.Minute + time.Second)
	assert.True(t, tr.CanCall("esg-scores"), "new window should re-admit")
	assert.True(t, tr.Admit("esg-scores"))
}

func TestAdmitConsumesBudget(t *testing.T) {
	tr, _ := newTestTracker(1, time.Minute)

	assert.True(t, tr.Admit("esg-scores"))
	assert.False(t, tr.Admit("esg-scores"))
	assert.False(t, tr.CanCall("esg-scores"))
}

func TestUnknownSourceIsUnlimited(t *testing.T) {
	tr, _ := newTestTracker(1, time.Minute)

	for i := 0; i < 100; i++ {
		assert.True(t, tr.Admit("news"))
	}
	st := tr.SourceStats("news")
	assert.True(t, st.Unlimited)
}

func TestSourceStats(t *testing.T) {
	tr, now := newTestTracker(5, time.Minute)

	tr.Admit("esg-scores")
	tr.Admit("esg-scores")
	*now = now.Add(20 * time.Second)

	st := tr.SourceStats("esg-scores")
	assert.Equal(t, 2, st.Used)
	assert.Equal(t, 5, st.Limit)
	assert.Equal(t, 40*time.Second, st.ResetsIn)
}
