package tests

import (
	"context"
	"testing"

	"github.com/aretw0/flowant/pkg/ports"
)

// GraphLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.GraphLoader.
// wantNodes lists node ids the loaded graph must contain.
func GraphLoaderContractTest(t *testing.T, loader ports.GraphLoader, wantNodes []string) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load_Success", func(t *testing.T) {
		g, err := loader.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error loading graph: %v", err)
		}
		if g.IsEmpty() {
			t.Fatal("expected a non-empty graph")
		}
		if !g.HasNode(g.Root()) {
			t.Errorf("root %q is not a node of the graph", g.Root())
		}
		for _, id := range wantNodes {
			if !g.HasNode(id) {
				t.Errorf("expected node %q in loaded graph", id)
			}
		}
	})

	t.Run("Load_EdgesHaveEndpoints", func(t *testing.T) {
		g, err := loader.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error loading graph: %v", err)
		}
		for _, e := range g.Edges() {
			if !g.HasNode(e.From) || !g.HasNode(e.To) {
				t.Errorf("edge %s -> %s has a missing endpoint", e.From, e.To)
			}
		}
	})

	t.Run("Load_Deterministic", func(t *testing.T) {
		first, err := loader.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error loading graph: %v", err)
		}
		second, err := loader.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error loading graph: %v", err)
		}
		a, b := first.Nodes(), second.Nodes()
		if len(a) != len(b) {
			t.Fatalf("node count differs between loads: %d vs %d", len(a), len(b))
		}
		for i := range a {
			if a[i] != b[i] {
				t.Errorf("node order differs at %d: %q vs %q", i, a[i], b[i])
			}
		}
		if first.NumEdges() != second.NumEdges() {
			t.Errorf("edge count differs between loads: %d vs %d", first.NumEdges(), second.NumEdges())
		}
	})
}
