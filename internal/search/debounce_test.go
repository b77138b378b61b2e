package search

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerOnlyLastQueryFires(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var fired atomic.Int32
	var last atomic.Value

	for _, q := range []string{"A", "AA", "AAP", "AAPL"} {
		d.Submit(q, func(query string) {
			fired.Add(1)
			last.Store(query)
		})
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load(), "earlier submissions are cancelled")
	assert.Equal(t, "AAPL", last.Load())
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var fired atomic.Int32
	d.Submit("AAPL", func(string) { fired.Add(1) })
	d.Stop()

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())

	// Submissions after Stop are ignored.
	d.Submit("MSFT", func(string) { fired.Add(1) })
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}
