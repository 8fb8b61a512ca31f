package colony

import (
	"math"

	"github.com/aretw0/flowant/internal/actionspace"
	"github.com/aretw0/flowant/internal/pheromone"
	"github.com/aretw0/flowant/pkg/domain"
)

// Ant walks the action graph once per iteration.
type Ant struct {
	id       int
	graph    *actionspace.Graph
	store    *pheromone.Store
	budget   int
	position int
	route    []pheromone.Edge
	weights  []float64
}

// NewAnt creates an ant positioned at Start.
func NewAnt(id int, graph *actionspace.Graph, store *pheromone.Store, budget int) *Ant {
	return &Ant{
		id:     id,
		graph:  graph,
		store:  store,
		budget: budget,
		route:  make([]pheromone.Edge, 0, budget),
	}
}

// ID returns the index of the ant within its colony.
func (a *Ant) ID() int { return a.id }

// Reset moves the ant back to Start and forgets its route.
func (a *Ant) Reset() {
	a.position = actionspace.Start
	a.route = a.route[:0]
}

// Traverse takes up to budget steps. With probability exploration a step picks a
// successor uniformly; otherwise it samples proportionally to sel's weights.
func (a *Ant) Traverse(src Source, exploration float64, sel Selection) {
	for len(a.route) < a.budget {
		next := a.graph.Successors(a.position)
		if len(next) == 0 {
			return
		}

		var pick int
		if src.Float64() < exploration {
			pick = src.IntN(len(next))
		} else {
			pick = a.sample(src, next, sel)
		}

		a.route = append(a.route, pheromone.Edge{From: a.position, To: next[pick]})
		a.position = next[pick]
	}
}

func (a *Ant) sample(src Source, next []int, sel Selection) int {
	if cap(a.weights) < len(next) {
		a.weights = make([]float64, len(next))
	}
	weights := a.weights[:len(next)]

	total := 0.0
	for i, to := range next {
		w := sel.Weight(a.graph, a.store, a.position, to)
		if w < 0 || math.IsNaN(w) {
			w = 0
		}
		weights[i] = w
		total += w
	}
	if total <= 0 || math.IsInf(total, 0) {
		return src.IntN(len(next))
	}

	x := src.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if x < acc {
			return i
		}
	}
	return len(next) - 1
}

// Route returns the edges traversed in the current iteration.
func (a *Ant) Route() []pheromone.Edge {
	return append([]pheromone.Edge(nil), a.route...)
}

// Sequence maps the route to the actions it visited, in order.
func (a *Ant) Sequence() []domain.Action {
	seq := make([]domain.Action, 0, len(a.route))
	for _, e := range a.route {
		if act, ok := a.graph.Action(e.To); ok {
			seq = append(seq, act)
		}
	}
	return seq
}
