package persistence

import (
	"context"
	"sync"

	"github.com/petrijr/draftflow/pkg/api"
)

// InMemoryStore is a simple, goroutine-safe api.Store backed by a map.
//
// With a quota set it behaves like browser local storage: a write that would
// push the total size of keys and values past the quota fails with
// ErrQuotaExceeded and leaves the store unchanged.
type InMemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	size   int
	quota  int
}

// Ensure InMemoryStore implements the interface.
var _ api.Store = (*InMemoryStore)(nil)

// NewInMemoryStore creates a new InMemoryStore without a quota.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{values: make(map[string]string)}
}

// NewInMemoryStoreWithQuota creates an InMemoryStore that rejects writes
// once len(key)+len(value) summed over all entries would exceed quota bytes.
func NewInMemoryStoreWithQuota(quota int) *InMemoryStore {
	s := NewInMemoryStore()
	s.quota = quota
	return s
}

func (s *InMemoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

func (s *InMemoryStore) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	size := s.size + len(key) + len(value)
	if old, ok := s.values[key]; ok {
		size -= len(key) + len(old)
	}
	if s.quota > 0 && size > s.quota {
		return ErrQuotaExceeded
	}

	s.values[key] = value
	s.size = size
	return nil
}

func (s *InMemoryStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.values[key]; ok {
		s.size -= len(key) + len(old)
		delete(s.values, key)
	}
	return nil
}

// Len returns the number of stored keys.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
