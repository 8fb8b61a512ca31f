package actionspace

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/aretw0/flowant/pkg/domain"
)

// DefaultDistanceThreshold is the exclusive bound on the shortest path length between
// two states for which an AddEdge action is proposed.
const DefaultDistanceThreshold = 2

// DefaultGoBackLabels are button texts meaning "return to the previous step". They are
// never reused as the label of a new edge.
var DefaultGoBackLabels = []string{"이전 단계로", "이전단계"}

// Source draws label choices. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// Option configures Build.
type Option func(*builder)

type builder struct {
	threshold  int
	excluded   map[string]bool
	baseWeight float64
	rng        Source
	seed       uint64
}

// WithDistanceThreshold sets the path length bound for AddEdge proposals.
func WithDistanceThreshold(d int) Option {
	return func(b *builder) {
		b.threshold = d
	}
}

// WithExcludedLabels replaces the go-back denylist.
func WithExcludedLabels(labels ...string) Option {
	return func(b *builder) {
		b.excluded = make(map[string]bool, len(labels))
		for _, l := range labels {
			b.excluded[l] = true
		}
	}
}

// WithBaseWeight sets the static cost reported by every action graph edge.
func WithBaseWeight(w float64) Option {
	return func(b *builder) {
		b.baseWeight = w
	}
}

// WithSource sets the random source used to pick AddEdge labels.
func WithSource(src Source) Option {
	return func(b *builder) {
		b.rng = src
	}
}

// WithSeed makes label picks reproducible for the given seed. The seed is
// reported in the action space stats.
func WithSeed(seed uint64) Option {
	return func(b *builder) {
		b.rng = rand.New(rand.NewPCG(seed, labelStream))
		b.seed = seed
	}
}

const labelStream = 0x6c6162656c

// Build enumerates the legal actions of g and wraps them in an action graph.
//
// Only states reachable from the root are considered. RemoveNode actions come first
// (every reachable state but the root), followed by RemoveEdge and AddEdge actions for
// each ordered pair of distinct reachable states, in graph insertion order.
func Build(g *domain.Graph, opts ...Option) (*Graph, error) {
	b := &builder{
		threshold:  DefaultDistanceThreshold,
		baseWeight: 1,
	}
	WithExcludedLabels(DefaultGoBackLabels...)(b)
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewPCG(0, labelStream))
	}

	if g.IsEmpty() {
		return nil, fmt.Errorf("%w: graph has no nodes", domain.ErrEmptyActionSpace)
	}

	root := g.Root()
	fromRoot := g.Distances(root)
	reachable := make([]string, 0, len(fromRoot))
	for _, id := range g.Nodes() {
		if _, ok := fromRoot[id]; ok {
			reachable = append(reachable, id)
		}
	}

	var actions []domain.Action
	for _, id := range reachable {
		if id != root {
			actions = append(actions, domain.RemoveNode(id))
		}
	}

	for _, a := range reachable {
		dist := g.Distances(a)
		for _, bID := range reachable {
			if a == bID {
				continue
			}
			if g.HasEdge(a, bID) {
				actions = append(actions, domain.RemoveEdge(a, bID))
				continue
			}
			d, ok := dist[bID]
			if !ok || d >= b.threshold {
				continue
			}
			labels := b.eligibleLabels(g.IncomingLabels(bID))
			if len(labels) == 0 {
				continue
			}
			actions = append(actions, domain.AddEdge(a, bID, labels[b.rng.IntN(len(labels))]))
		}
	}

	if len(actions) == 0 {
		return nil, fmt.Errorf("%w: no legal edit from root %q", domain.ErrEmptyActionSpace, root)
	}

	for _, a := range actions {
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("build action space: %w", err)
		}
	}

	return newGraph(actions, b.baseWeight, domain.ActionSpaceStats{
		Nodes:     g.NumNodes(),
		Edges:     g.NumEdges(),
		LabelSeed: b.seed,
	}), nil
}

// eligibleLabels keeps the labels an AddEdge token can carry: non-empty, single
// line and not a go-back label.
func (b *builder) eligibleLabels(labels []string) []string {
	return slices.DeleteFunc(labels, func(l string) bool {
		return l == "" || b.excluded[l] || strings.ContainsAny(l, "\r\n")
	})
}
