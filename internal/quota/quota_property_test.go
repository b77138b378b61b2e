package quota

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: no matter how many Admit calls arrive within a single window,
// the number of admitted calls never exceeds the configured limit, and
// once the window elapses the budget is fully available again.
func TestProperty_AdmissionsNeverExceedLimit(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("admissions bounded by limit per window", prop.ForAll(
		func(limit int, attempts int) bool {
			tr := NewTracker(map[string]Limit{
				"src": {Max: limit, Window: time.Minute},
			})
			now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
			tr.SetClock(func() time.Time { return now })

			admitted := 0
			for i := 0; i < attempts; i++ {
				if tr.Admit("src") {
					admitted++
				}
			}
			if admitted > limit {
				return false
			}
			if attempts >= limit && admitted != limit {
				return false
			}

			// Next window restores the full budget.
			now = now.Add(time.Minute)
			admitted = 0
			for i := 0; i < limit; i++ {
				if tr.Admit("src") {
					admitted++
				}
			}
			return admitted == limit
		},
		gen.IntRange(0, 50),
		gen.IntRange(0, 200),
	))

	properties.TestingRun(t)
}
