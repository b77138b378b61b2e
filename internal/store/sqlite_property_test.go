package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/rs/zerolog"
)

// Property: any payload written with a positive TTL reads back
// byte-identical before the TTL elapses, for any namespace and key.
func TestProperty_WriteThenReadRoundTrip(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("write then read returns identical payload", prop.ForAll(
		func(ns, key string, payload []byte) bool {
			if len(payload) == 0 {
				payload = []byte{0}
			}
			ctx := context.Background()
			s.Set(ctx, ns, key, payload, time.Hour)
			got, ok := s.Get(ctx, ns, key)
			if !ok {
				return false
			}
			if len(got) != len(payload) {
				return false
			}
			for i := range got {
				if got[i] != payload[i] {
					return false
				}
			}
			return true
		},
		gen.Identifier(),
		gen.Identifier(),
		gen.SliceOf(gen.UInt8()),
	))

	properties.TestingRun(t)
}
