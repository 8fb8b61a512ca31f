package colony

import (
	"fmt"
	"math"

	"github.com/aretw0/flowant/internal/actionspace"
	"github.com/aretw0/flowant/internal/pheromone"
)

// Selection names.
const (
	SelectionAdditive = "additive"
	SelectionClassic  = "classic"
)

// Selection turns pheromone intensity into the relative weight of an edge.
type Selection interface {
	Weight(graph *actionspace.Graph, store *pheromone.Store, from, to int) float64
}

// Additive weighs an edge as Base + τ. Base keeps unexplored edges selectable.
type Additive struct {
	Base float64
}

func (s Additive) Weight(_ *actionspace.Graph, store *pheromone.Store, from, to int) float64 {
	return s.Base + store.Lookup(from, to)
}

func (s Additive) Validate() error { return validateBase(s.Base) }

// Classic weighs an edge as (Base + τ)^Alpha · (1/cost)^Beta.
type Classic struct {
	Base  float64
	Alpha float64
	Beta  float64
}

func (s Classic) Weight(graph *actionspace.Graph, store *pheromone.Store, from, to int) float64 {
	tau := s.Base + store.Lookup(from, to)
	if tau <= 0 {
		return 0
	}
	return math.Pow(tau, s.Alpha) * math.Pow(1/graph.Weight(from, to), s.Beta)
}

func (s Classic) Validate() error { return validateBase(s.Base) }

// A non-positive base leaves unexplored edges with zero weight, so the first
// walk of every run would dead-end.
func validateBase(base float64) error {
	if !(base > 0) {
		return fmt.Errorf("pheromone base must be positive, got %v", base)
	}
	return nil
}

// NewSelection builds a policy by name.
func NewSelection(name string, base, alpha, beta float64) (Selection, error) {
	switch name {
	case "", SelectionAdditive:
		if err := validateBase(base); err != nil {
			return nil, err
		}
		return Additive{Base: base}, nil
	case SelectionClassic:
		if err := validateBase(base); err != nil {
			return nil, err
		}
		return Classic{Base: base, Alpha: alpha, Beta: beta}, nil
	default:
		return nil, fmt.Errorf("unknown selection policy %q", name)
	}
}
