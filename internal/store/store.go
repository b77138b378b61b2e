// Package store provides the key-value cache persistence layer.
//
// Every entry carries its write timestamp and TTL. Expiry is evaluated
// lazily on read; expired rows are only removed opportunistically on the
// next write to the same key or by an explicit Prune. Storage failures
// never surface to callers of Get/Set: they degrade to a cache miss and
// are reported through the logger.
package store

import (
	"context"
	"encoding/json"
	"time"
)

// Store is the key-value persistence contract. Keys are grouped into
// namespaces ("catalog", "esg", ...) so one logical cache can be cleared
// without touching the others.
type Store interface {
	// Get returns the payload for key, or ok=false when absent or expired.
	Get(ctx context.Context, namespace, key string) (payload []byte, ok bool)
	// Set writes payload with the given TTL, replacing any previous entry.
	Set(ctx context.Context, namespace, key string, payload []byte, ttl time.Duration)
	// Clear removes a single entry.
	Clear(ctx context.Context, namespace, key string)
	// ClearAll removes every entry in a namespace.
	ClearAll(ctx context.Context, namespace string)
	// Close releases underlying resources.
	Close() error
}

// GetJSON reads and unmarshals a cached value. A corrupt or unparseable
// payload is treated as absent, never as an error.
func GetJSON[T any](ctx context.Context, s Store, namespace, key string, out *T) bool {
	payload, ok := s.Get(ctx, namespace, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return false
	}
	return true
}

// SetJSON marshals and writes a value. Serialization failure degrades to
// a no-op, matching the Store contract.
func SetJSON[T any](ctx context.Context, s Store, namespace, key string, value T, ttl time.Duration) {
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	s.Set(ctx, namespace, key, payload, ttl)
}
