package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/petrijr/draftflow/internal/persistence"
	"github.com/petrijr/draftflow/pkg/api"
)

// ErrInjected is the error returned by FlakyStore when a failure is armed.
var ErrInjected = errors.New("injected store failure")

// FlakyStore wraps an in-memory store and fails reads or writes on demand.
// It also counts successful writes per key.
type FlakyStore struct {
	*persistence.InMemoryStore

	mu        sync.Mutex
	failSet   bool
	failGet   bool
	setCounts map[string]int
}

var _ api.Store = (*FlakyStore)(nil)

func NewFlakyStore() *FlakyStore {
	return &FlakyStore{
		InMemoryStore: persistence.NewInMemoryStore(),
		setCounts:     make(map[string]int),
	}
}

// FailWrites makes every subsequent Set fail while on is true.
func (s *FlakyStore) FailWrites(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSet = on
}

// FailReads makes every subsequent Get fail while on is true.
func (s *FlakyStore) FailReads(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failGet = on
}

// Sets returns how many writes to key succeeded.
func (s *FlakyStore) Sets(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setCounts[key]
}

func (s *FlakyStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	fail := s.failGet
	s.mu.Unlock()
	if fail {
		return "", ErrInjected
	}
	return s.InMemoryStore.Get(ctx, key)
}

func (s *FlakyStore) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet {
		return ErrInjected
	}
	if err := s.InMemoryStore.Set(ctx, key, value); err != nil {
		return err
	}
	s.setCounts[key]++
	return nil
}
