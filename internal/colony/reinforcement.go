package colony

import (
	"fmt"
	"math"

	"github.com/aretw0/flowant/pkg/domain"
)

// Reinforcement decides how much pheromone each outcome of an iteration deposits.
type Reinforcement interface {
	// Deposits receives outcomes ranked by fitness, best first, and returns the amount
	// each one deposits on every edge of its route. Zero means no deposit.
	Deposits(ranked []domain.Outcome) []float64
}

// TopFraction reinforces the best max(1, ceil(Fraction·N)) successful outcomes of an
// iteration of N ants. With Normalize, amounts are min-max scaled over the successful
// outcomes of the iteration (1 when they all tie); otherwise the raw fitness is used.
type TopFraction struct {
	Fraction  float64
	Normalize bool
}

// Validate checks the fraction bounds.
func (r TopFraction) Validate() error {
	if !(r.Fraction > 0 && r.Fraction <= 1) {
		return fmt.Errorf("top fraction must be in (0, 1], got %v", r.Fraction)
	}
	return nil
}

func (r TopFraction) Deposits(ranked []domain.Outcome) []float64 {
	amounts := make([]float64, len(ranked))

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, o := range ranked {
		if o.Failed {
			continue
		}
		lo = math.Min(lo, o.Fitness)
		hi = math.Max(hi, o.Fitness)
	}

	k := max(1, int(math.Ceil(r.Fraction*float64(len(ranked)))))
	selected := 0
	for i, o := range ranked {
		if selected == k {
			break
		}
		if o.Failed {
			continue
		}
		selected++

		switch {
		case !r.Normalize:
			amounts[i] = o.Fitness
		case hi == lo:
			amounts[i] = 1
		default:
			amounts[i] = (o.Fitness - lo) / (hi - lo)
		}
	}
	return amounts
}
