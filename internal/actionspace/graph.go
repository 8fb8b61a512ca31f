package actionspace

import (
	"github.com/aretw0/flowant/pkg/domain"
)

// Start is the id of the synthetic entry node every walk begins at.
const Start = 0

// Graph is a complete directed graph over actions plus the Start node.
// Action ids run from 1 to Len() in emission order. It is immutable and safe
// for concurrent use.
type Graph struct {
	actions []domain.Action
	ids     map[string]int
	weight  float64
	stats   domain.ActionSpaceStats
}

func newGraph(actions []domain.Action, weight float64, stats domain.ActionSpaceStats) *Graph {
	ids := make(map[string]int, len(actions))
	for i, a := range actions {
		ids[a.String()] = i + 1
		switch a.Kind {
		case domain.ActionRemoveNode:
			stats.RemoveNode++
		case domain.ActionRemoveEdge:
			stats.RemoveEdge++
		case domain.ActionAddEdge:
			stats.AddEdge++
		}
	}
	return &Graph{
		actions: actions,
		ids:     ids,
		weight:  weight,
		stats:   stats,
	}
}

// Len returns the number of actions.
func (g *Graph) Len() int { return len(g.actions) }

// NumNodes returns the number of nodes, Start included.
func (g *Graph) NumNodes() int { return len(g.actions) + 1 }

// NumEdges returns N·(N−1) action-to-action edges plus N edges out of Start.
func (g *Graph) NumEdges() int {
	n := len(g.actions)
	return n*(n-1) + n
}

// Action returns the action behind node id.
func (g *Graph) Action(id int) (domain.Action, bool) {
	if id < 1 || id > len(g.actions) {
		return domain.Action{}, false
	}
	return g.actions[id-1], true
}

// Actions returns every action in emission order.
func (g *Graph) Actions() []domain.Action {
	return append([]domain.Action(nil), g.actions...)
}

// Tokens returns the canonical token of every action in emission order.
func (g *Graph) Tokens() []string {
	return domain.Tokens(g.actions)
}

// ID returns the node id of an action.
func (g *Graph) ID(a domain.Action) (int, bool) {
	id, ok := g.ids[a.String()]
	return id, ok
}

// HasEdge reports whether from -> to is an edge: any two distinct nodes, except
// that nothing leads back to Start.
func (g *Graph) HasEdge(from, to int) bool {
	if from == to || to == Start {
		return false
	}
	return from >= Start && from <= len(g.actions) && to >= 1 && to <= len(g.actions)
}

// Successors returns the targets of the outgoing edges of id.
func (g *Graph) Successors(id int) []int {
	if id < Start || id > len(g.actions) {
		return nil
	}
	out := make([]int, 0, len(g.actions))
	for to := 1; to <= len(g.actions); to++ {
		if to != id {
			out = append(out, to)
		}
	}
	return out
}

// Weight returns the static cost of an edge.
func (g *Graph) Weight(from, to int) float64 {
	return g.weight
}

// CountByKind returns the number of actions of each kind.
func (g *Graph) CountByKind() map[domain.ActionKind]int {
	return map[domain.ActionKind]int{
		domain.ActionRemoveNode: g.stats.RemoveNode,
		domain.ActionRemoveEdge: g.stats.RemoveEdge,
		domain.ActionAddEdge:    g.stats.AddEdge,
	}
}

// Stats summarizes the action space and the graph it was derived from.
func (g *Graph) Stats() domain.ActionSpaceStats {
	return g.stats
}
