package memory

import (
	"context"
	"sync"

	"github.com/aretw0/dateq/pkg/domain"
)

// Store implements ports.ResultStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Result
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Result),
	}
}

// Save persists the result in memory.
func (s *Store) Save(ctx context.Context, key string, result *domain.Result) error {
	copied := copyResult(result)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = copied
	return nil
}

// Load retrieves the result from memory.
func (s *Store) Load(ctx context.Context, key string) (*domain.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.data[key]
	if !ok {
		return nil, domain.ErrResultNotFound
	}

	// Copy on read so the caller can't mutate stored state by pointer.
	return copyResult(result), nil
}

// Delete removes the result.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// List returns the stored cache keys.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}

// copyResult deep copies a result, similar to serialization.
func copyResult(r *domain.Result) *domain.Result {
	copied := *r
	copied.Digits = append(domain.DigitSequence(nil), r.Digits...)
	copied.Equations = append([]domain.Equation(nil), r.Equations...)
	return &copied
}
