package fitness

import (
	"context"
	"fmt"

	"github.com/aretw0/flowant/pkg/domain"
	"github.com/aretw0/flowant/pkg/ports"
)

// Reachability scores the fraction of states reachable from the root.
// An empty graph scores 0.
func Reachability() ports.FitnessOracle {
	return ports.OracleFunc(func(ctx context.Context, g *domain.Graph) (float64, error) {
		if g.IsEmpty() {
			return 0, nil
		}
		return float64(len(g.Reachable(g.Root()))) / float64(g.NumNodes()), nil
	})
}

type pair struct{ from, to string }

func edgeSet(g *domain.Graph) map[pair]bool {
	set := make(map[pair]bool, g.NumEdges())
	for _, e := range g.Edges() {
		set[pair{e.From, e.To}] = true
	}
	return set
}

// Similarity scores the Jaccard index between the transitions of a candidate and those
// of a reference flow. Labels are ignored. Two graphs without edges are identical.
func Similarity(reference *domain.Graph) ports.FitnessOracle {
	want := edgeSet(reference)
	return ports.OracleFunc(func(ctx context.Context, g *domain.Graph) (float64, error) {
		got := edgeSet(g)
		if len(want) == 0 && len(got) == 0 {
			return 1, nil
		}

		shared := 0
		for p := range got {
			if want[p] {
				shared++
			}
		}
		return float64(shared) / float64(len(want)+len(got)-shared), nil
	})
}

// Weighted blends two oracles as alpha·a + (1−alpha)·b. alpha must be in [0, 1].
func Weighted(alpha float64, a, b ports.FitnessOracle) (ports.FitnessOracle, error) {
	if alpha < 0 || alpha > 1 {
		return nil, fmt.Errorf("weighted oracle: alpha must be in [0, 1], got %v", alpha)
	}
	return ports.OracleFunc(func(ctx context.Context, g *domain.Graph) (float64, error) {
		fa, err := a.Evaluate(ctx, g)
		if err != nil {
			return 0, err
		}
		fb, err := b.Evaluate(ctx, g)
		if err != nil {
			return 0, err
		}
		return alpha*fa + (1-alpha)*fb, nil
	}), nil
}
