package ports

import (
	"context"

	"github.com/aretw0/flowant/pkg/domain"
)

// FitnessOracle scores a candidate graph. Higher is better.
//
// The oracle is called concurrently when the colony runs with more than one worker,
// so implementations must be safe for concurrent use. The graph passed in is a private
// clone and may be read freely.
type FitnessOracle interface {
	Evaluate(ctx context.Context, g *domain.Graph) (float64, error)
}

// OracleFunc adapts a plain function to FitnessOracle.
type OracleFunc func(ctx context.Context, g *domain.Graph) (float64, error)

// Evaluate calls f.
func (f OracleFunc) Evaluate(ctx context.Context, g *domain.Graph) (float64, error) {
	return f(ctx, g)
}
