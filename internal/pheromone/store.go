// Package pheromone holds the sparse trail intensities of an action graph.
package pheromone

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

// DefaultEpsilon is the magnitude below which an evaporated entry is dropped.
const DefaultEpsilon = 1e-4

// ErrInvalidRate is returned by Evaporate for a rate outside (0, 1).
var ErrInvalidRate = errors.New("evaporation rate must be in (0, 1)")

// Edge identifies an action graph edge by node ids.
type Edge struct {
	From int
	To   int
}

// Store maps action graph edges to pheromone intensity. Missing entries read as 0.
//
// Reads may run concurrently. Writes are expected from a single goroutine while no
// walker is reading, but the store stays consistent either way.
type Store struct {
	mu      sync.RWMutex
	values  map[Edge]float64
	epsilon float64
}

// New creates an empty store. A non-positive epsilon selects DefaultEpsilon.
func New(epsilon float64) *Store {
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	return &Store{
		values:  make(map[Edge]float64),
		epsilon: epsilon,
	}
}

// Accumulate adds amount to the intensity of from -> to, creating the entry if needed.
func (s *Store) Accumulate(from, to int, amount float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[Edge{From: from, To: to}] += amount
}

// Evaporate scales every intensity by (1 - rate) and drops entries whose magnitude
// falls below epsilon.
func (s *Store) Evaporate(rate float64) error {
	if !(rate > 0 && rate < 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidRate, rate)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	keep := 1 - rate
	for e, v := range s.values {
		v *= keep
		if math.Abs(v) < s.epsilon {
			delete(s.values, e)
			continue
		}
		s.values[e] = v
	}
	return nil
}

// Lookup returns the intensity of from -> to, or 0.
func (s *Store) Lookup(from, to int) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[Edge{From: from, To: to}]
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Snapshot returns a copy of every entry.
func (s *Store) Snapshot() map[Edge]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[Edge]float64, len(s.values))
	for e, v := range s.values {
		out[e] = v
	}
	return out
}
