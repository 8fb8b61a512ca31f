package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/flowant/pkg/domain"
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

func copyResult(r *domain.Result) *domain.Result {
	ret := *r
	ret.Best.Sequence = slices.Clone(r.Best.Sequence)
	ret.History = slices.Clone(r.History)
	return &ret
}

// Save persists the result in memory.
func (s *Store) Save(ctx context.Context, result *domain.Result) error {
	copied := copyResult(result)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[result.RunID] = copied
	return nil
}

// Load retrieves the result from memory.
func (s *Store) Load(ctx context.Context, runID string) (*domain.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.data[runID]
	if !ok {
		return nil, domain.ErrRunNotFound
	}

	// Copy on read so callers can't mutate stored results through the pointer.
	return copyResult(result), nil
}

// Delete removes the result.
func (s *Store) Delete(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, runID)
	return nil
}

// List returns stored run IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]string, 0, len(s.data))
	for id := range s.data {
		runs = append(runs, id)
	}
	slices.Sort(runs)
	return runs, nil
}
