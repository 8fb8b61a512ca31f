package colony_test

import (
	"math"
	"testing"

	"github.com/aretw0/flowant/internal/actionspace"
	"github.com/aretw0/flowant/internal/colony"
	"github.com/aretw0/flowant/internal/pheromone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestAnt_ExploitsPheromone(t *testing.T) {
	ag, err := actionspace.Build(chain(t))
	require.NoError(t, err)

	store := pheromone.New(0)
	store.Accumulate(actionspace.Start, 4, 100)

	ant := colony.NewAnt(0, ag, store, 1)
	ant.Reset()
	ant.Traverse(&scripted{floats: []float64{0.99, 0.5}, ints: []int{0}}, 0.5, colony.Additive{Base: 0.01})

	assert.Equal(t, []pheromone.Edge{{From: actionspace.Start, To: 4}}, ant.Route())
	assert.Equal(t, []string{"REMOVE_EDGE B C"}, tokens(ant))
}

func TestAnt_ResetForgetsRoute(t *testing.T) {
	ag, err := actionspace.Build(chain(t))
	require.NoError(t, err)

	ant := colony.NewAnt(0, ag, pheromone.New(0), 3)
	ant.Traverse(colony.NewSource(1, 1, 0), 0.5, colony.Additive{Base: 0.01})
	require.Len(t, ant.Route(), 3)

	ant.Reset()
	assert.Empty(t, ant.Route())
	assert.Empty(t, ant.Sequence())
}

func TestClassicSelection(t *testing.T) {
	ag, err := actionspace.Build(chain(t), actionspace.WithBaseWeight(2))
	require.NoError(t, err)
	store := pheromone.New(0)
	store.Accumulate(1, 2, 1)

	sel := colony.Classic{Base: 1, Alpha: 2, Beta: 1}
	// (1 + 1)^2 * (1/2)^1
	assert.InDelta(t, 2.0, sel.Weight(ag, store, 1, 2), 1e-12)
	// (1 + 0)^2 * (1/2)^1
	assert.InDelta(t, 0.5, sel.Weight(ag, store, 2, 1), 1e-12)

	_, err = colony.NewSelection("greedy", 1, 1, 1)
	assert.Error(t, err)
}

func TestNewSelection_RequiresPositiveBase(t *testing.T) {
	for _, name := range []string{colony.SelectionAdditive, colony.SelectionClassic} {
		for _, base := range []float64{0, -0.5, math.NaN()} {
			_, err := colony.NewSelection(name, base, 1, 1)
			require.Error(t, err, "%s base=%v", name, base)
			assert.Contains(t, err.Error(), "pheromone base")
		}
		_, err := colony.NewSelection(name, 0.01, 1, 1)
		assert.NoError(t, err)
	}
}

func TestProperty_WalkerRoute(t *testing.T) {
	g := reference(t)
	ag, err := actionspace.Build(g, actionspace.WithDistanceThreshold(3))
	require.NoError(t, err)

	rapid.Check(t, func(rt *rapid.T) {
		budget := rapid.IntRange(1, 12).Draw(rt, "budget")
		exploration := rapid.Float64Range(0, 1).Draw(rt, "exploration")
		seed := rapid.Uint64().Draw(rt, "seed")

		store := pheromone.New(0)
		for i := 0; i < 5; i++ {
			from := rapid.IntRange(0, ag.Len()).Draw(rt, "from")
			to := rapid.IntRange(1, ag.Len()).Draw(rt, "to")
			store.Accumulate(from, to, rapid.Float64Range(0, 10).Draw(rt, "amount"))
		}

		ant := colony.NewAnt(0, ag, store, budget)
		ant.Reset()
		ant.Traverse(colony.NewSource(seed, 1, 0), exploration, colony.Additive{Base: 0.01})

		route := ant.Route()
		assert.LessOrEqual(rt, len(route), budget)
		require.NotEmpty(rt, route)
		assert.Equal(rt, actionspace.Start, route[0].From)
		for i, e := range route {
			assert.True(rt, ag.HasEdge(e.From, e.To), "edge %v", e)
			assert.NotEqual(rt, actionspace.Start, e.To)
			if i > 0 {
				assert.Equal(rt, route[i-1].To, e.From)
			}
		}
		assert.Len(rt, ant.Sequence(), len(route))
	})
}

func tokens(ant *colony.Ant) []string {
	seq := ant.Sequence()
	out := make([]string, len(seq))
	for i, a := range seq {
		out[i] = a.String()
	}
	return out
}
