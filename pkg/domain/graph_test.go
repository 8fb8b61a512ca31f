package domain_test

import (
	"sync"
	"testing"

	"github.com/aretw0/flowant/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chain(t *testing.T) *domain.Graph {
	t.Helper()
	g := domain.NewGraph("A")
	g.AddNode("B", "second")
	g.AddNode("C", "third")
	require.NoError(t, g.AddEdge("A", "B", "next"))
	require.NoError(t, g.AddEdge("B", "C", "next"))
	return g
}

func TestGraph_Basics(t *testing.T) {
	g := chain(t)

	assert.Equal(t, "A", g.Root())
	assert.Equal(t, []string{"A", "B", "C"}, g.Nodes())
	assert.Equal(t, 3, g.NumNodes())
	assert.Equal(t, 2, g.NumEdges())
	assert.Equal(t, "second", g.Label("B"))
	assert.True(t, g.HasEdge("A", "B"))
	assert.False(t, g.HasEdge("B", "A"))
	assert.Equal(t, []string{"C"}, g.Successors("B"))
	assert.Equal(t, 2, g.ShortestPathLength("A", "C"))
	assert.Equal(t, -1, g.ShortestPathLength("C", "A"))
	assert.Equal(t, map[string]bool{"B": true, "C": true}, g.Reachable("B"))
}

func TestGraph_AddEdgeOverwritesLabel(t *testing.T) {
	g := chain(t)

	require.NoError(t, g.AddEdge("A", "B", "go"))

	label, ok := g.EdgeLabel("A", "B")
	require.True(t, ok)
	assert.Equal(t, "go", label)
	assert.Equal(t, 2, g.NumEdges())
}

func TestGraph_AddEdgeMissingEndpoint(t *testing.T) {
	g := chain(t)

	err := g.AddEdge("A", "Z", "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 2, g.NumEdges())
}

func TestGraph_RemoveNode(t *testing.T) {
	g := chain(t)

	require.NoError(t, g.RemoveNode("B"))
	assert.False(t, g.HasNode("B"))
	assert.Equal(t, 0, g.NumEdges())
	assert.Equal(t, []string{"A", "C"}, g.Nodes())

	assert.ErrorIs(t, g.RemoveNode("B"), domain.ErrNotFound)
	assert.ErrorIs(t, g.RemoveNode("A"), domain.ErrRootRemoval)
}

func TestGraph_IncomingLabels(t *testing.T) {
	g := domain.NewGraph("A")
	g.AddNode("B", "")
	g.AddNode("C", "")
	g.AddNode("D", "")
	require.NoError(t, g.AddEdge("A", "D", "yes"))
	require.NoError(t, g.AddEdge("B", "D", "no"))
	require.NoError(t, g.AddEdge("C", "D", "yes"))

	assert.Equal(t, []string{"no", "yes"}, g.IncomingLabels("D"))
	assert.Empty(t, g.IncomingLabels("A"))
}

func TestGraph_CloneIsCopyOnWrite(t *testing.T) {
	g := chain(t)
	clone := g.Clone()

	require.NoError(t, clone.RemoveEdge("A", "B"))
	require.NoError(t, clone.RemoveNode("C"))

	assert.True(t, g.HasEdge("A", "B"), "original must keep its edges")
	assert.True(t, g.HasNode("C"))
	assert.False(t, clone.HasEdge("A", "B"))

	// Mutating the original after cloning must not leak into the clone.
	g.AddNode("D", "")
	assert.False(t, clone.HasNode("D"))
}

func TestGraph_ConcurrentClones(t *testing.T) {
	g := chain(t)
	_ = g.Clone()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := g.Clone()
			_ = c.RemoveEdge("A", "B")
			_ = c.AddEdge("C", "A", "back")
		}()
	}
	wg.Wait()

	assert.Equal(t, []domain.Edge{
		{From: "A", To: "B", Label: "next"},
		{From: "B", To: "C", Label: "next"},
	}, g.Edges())
}

func TestEmptyGraph(t *testing.T) {
	g := domain.EmptyGraph()

	assert.True(t, g.IsEmpty())
	assert.Equal(t, "", g.Root())
	assert.Empty(t, g.Edges())
}
