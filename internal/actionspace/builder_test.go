package actionspace_test

import (
	"fmt"
	"testing"

	"github.com/aretw0/flowant/internal/actionspace"
	"github.com/aretw0/flowant/pkg/domain"
	"github.com/aretw0/flowant/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func chain(t *testing.T) *domain.Graph {
	t.Helper()
	g, err := dsl.New("A").
		Add("A").Go("B", "next").
		Add("B").Go("C", "next").
		Add("C").
		Build()
	require.NoError(t, err)
	return g
}

func TestBuild_Chain(t *testing.T) {
	ag, err := actionspace.Build(chain(t))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"REMOVE_NODE B",
		"REMOVE_NODE C",
		"REMOVE_EDGE A B",
		"REMOVE_EDGE B C",
	}, ag.Tokens())

	assert.Equal(t, 5, ag.NumNodes())
	assert.Equal(t, 4*3+4, ag.NumEdges())
	assert.Equal(t, domain.ActionSpaceStats{Nodes: 3, Edges: 2, RemoveNode: 2, RemoveEdge: 2}, ag.Stats())
}

func TestBuild_DistanceThreshold(t *testing.T) {
	ag, err := actionspace.Build(chain(t), actionspace.WithDistanceThreshold(3))
	require.NoError(t, err)

	assert.Contains(t, ag.Tokens(), "ADD_EDGE A C next")
	assert.NotContains(t, ag.Tokens(), "ADD_EDGE C A next", "C cannot reach A")
	assert.Equal(t, 1, ag.CountByKind()[domain.ActionAddEdge])
}

func TestBuild_ExcludesGoBackLabels(t *testing.T) {
	g, err := dsl.New("A").
		Add("A").Go("B", "next").
		Add("B").Go("C", "이전 단계로").
		Add("C").
		Build()
	require.NoError(t, err)

	ag, err := actionspace.Build(g, actionspace.WithDistanceThreshold(3))
	require.NoError(t, err)
	for _, tok := range ag.Tokens() {
		assert.NotEqual(t, "ADD_EDGE A C 이전 단계로", tok)
	}

	ag, err = actionspace.Build(g, actionspace.WithDistanceThreshold(3), actionspace.WithExcludedLabels())
	require.NoError(t, err)
	assert.Contains(t, ag.Tokens(), "ADD_EDGE A C 이전 단계로")
}

func TestBuild_SkipsMultiLineLabels(t *testing.T) {
	g, err := dsl.New("A").
		Add("A").Go("B", "go").
		Add("B").Go("C", "line one\nline two").
		Add("C").
		Build()
	require.NoError(t, err)

	ag, err := actionspace.Build(g, actionspace.WithDistanceThreshold(3))
	require.NoError(t, err, "a pair without a usable label is skipped, not fatal")
	assert.Equal(t, 0, ag.CountByKind()[domain.ActionAddEdge])

	// An unreachable state still contributes its label to C.
	g.AddNode("X", "")
	require.NoError(t, g.AddEdge("X", "C", "Help"))
	require.NoError(t, g.AddEdge("B", "C", "Track\r\nmy order"))

	for seed := uint64(1); seed <= 20; seed++ {
		ag, err := actionspace.Build(g, actionspace.WithDistanceThreshold(3), actionspace.WithSeed(seed))
		require.NoError(t, err)
		assert.Contains(t, ag.Tokens(), "ADD_EDGE A C Help")
	}
}

func TestBuild_IgnoresUnreachableStates(t *testing.T) {
	g := chain(t)
	g.AddNode("orphan", "")
	require.NoError(t, g.AddEdge("orphan", "A", "jump"))

	ag, err := actionspace.Build(g)
	require.NoError(t, err)
	for _, tok := range ag.Tokens() {
		assert.NotContains(t, tok, "orphan")
	}
}

func TestBuild_EmptyActionSpace(t *testing.T) {
	_, err := actionspace.Build(domain.NewGraph("only"))
	assert.ErrorIs(t, err, domain.ErrEmptyActionSpace)

	_, err = actionspace.Build(domain.EmptyGraph())
	assert.ErrorIs(t, err, domain.ErrEmptyActionSpace)
}

func TestBuild_LabelDrawIsSeeded(t *testing.T) {
	g, err := dsl.New("A").
		Add("A").Go("B", "b1").Go("C", "c1").
		Add("B").Go("D", "x").
		Add("C").Go("D", "y").
		Add("D").
		Build()
	require.NoError(t, err)

	first, err := actionspace.Build(g, actionspace.WithDistanceThreshold(3), actionspace.WithSeed(7))
	require.NoError(t, err)
	second, err := actionspace.Build(g, actionspace.WithDistanceThreshold(3), actionspace.WithSeed(7))
	require.NoError(t, err)

	assert.Equal(t, first.Tokens(), second.Tokens())
}

func TestGraph_Topology(t *testing.T) {
	ag, err := actionspace.Build(chain(t))
	require.NoError(t, err)

	assert.True(t, ag.HasEdge(actionspace.Start, 1))
	assert.True(t, ag.HasEdge(1, 4))
	assert.False(t, ag.HasEdge(2, 2), "no self loops")
	assert.False(t, ag.HasEdge(3, actionspace.Start), "nothing returns to Start")
	assert.False(t, ag.HasEdge(1, 5))
	assert.Equal(t, []int{1, 2, 4}, ag.Successors(3))
	assert.Len(t, ag.Successors(actionspace.Start), 4)

	a, ok := ag.Action(3)
	require.True(t, ok)
	assert.Equal(t, domain.RemoveEdge("A", "B"), a)

	id, ok := ag.ID(a)
	require.True(t, ok)
	assert.Equal(t, 3, id)

	_, ok = ag.Action(actionspace.Start)
	assert.False(t, ok)
}

func TestProperty_BuilderTokensRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(2, 8).Draw(rt, "nodes")
		g := domain.NewGraph("s0")
		for i := 1; i < n; i++ {
			g.AddNode(fmt.Sprintf("s%d", i), "")
		}
		edges := rapid.IntRange(1, n*2).Draw(rt, "edges")
		for i := 0; i < edges; i++ {
			from := rapid.IntRange(0, n-1).Draw(rt, "from")
			to := rapid.IntRange(0, n-1).Draw(rt, "to")
			if from == to {
				continue
			}
			label := rapid.SampledFrom([]string{"yes", "no", "back", "이전단계", "처음으로"}).Draw(rt, "label")
			require.NoError(rt, g.AddEdge(fmt.Sprintf("s%d", from), fmt.Sprintf("s%d", to), label))
		}
		d := rapid.IntRange(1, 4).Draw(rt, "threshold")

		ag, err := actionspace.Build(g, actionspace.WithDistanceThreshold(d))
		if err != nil {
			require.ErrorIs(rt, err, domain.ErrEmptyActionSpace)
			return
		}

		seen := make(map[string]bool)
		for _, a := range ag.Actions() {
			tok := a.String()
			assert.False(rt, seen[tok], "duplicate action %q", tok)
			seen[tok] = true

			decoded, err := domain.ParseAction(tok)
			require.NoError(rt, err)
			assert.Equal(rt, a, decoded)

			switch a.Kind {
			case domain.ActionRemoveNode:
				assert.NotEqual(rt, g.Root(), a.Src)
			case domain.ActionRemoveEdge:
				assert.True(rt, g.HasEdge(a.Src, a.Dst))
			case domain.ActionAddEdge:
				assert.False(rt, g.HasEdge(a.Src, a.Dst))
				assert.NotEqual(rt, "이전단계", a.Label)
			}
		}
	})
}
