package store

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	payload   []byte
	writtenAt time.Time
	ttl       time.Duration
}

// MemoryStore is an in-memory Store used by tests and as a degraded
// fallback when the SQLite file cannot be opened.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func memKey(namespace, key string) string {
	return namespace + "\x00" + key
}

// Get returns the payload for key, or ok=false when absent or expired.
func (s *MemoryStore) Get(_ context.Context, namespace, key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[memKey(namespace, key)]
	if !ok {
		return nil, false
	}
	if s.now().Sub(e.writtenAt) >= e.ttl {
		return nil, false
	}
	return e.payload, true
}

// Set writes payload with the given TTL.
func (s *MemoryStore) Set(_ context.Context, namespace, key string, payload []byte, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[memKey(namespace, key)] = memoryEntry{
		payload:   payload,
		writtenAt: s.now(),
		ttl:       ttl,
	}
}

// Clear removes a single entry.
func (s *MemoryStore) Clear(_ context.Context, namespace, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, memKey(namespace, key))
}

// ClearAll removes every entry in a namespace.
func (s *MemoryStore) ClearAll(_ context.Context, namespace string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := namespace + "\x00"
	for k := range s.entries {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(s.entries, k)
		}
	}
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// SetClock overrides the time source for TTL evaluation. Test hook.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}
