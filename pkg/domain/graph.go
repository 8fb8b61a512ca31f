package domain

import (
	"fmt"
	"sort"
	"sync/atomic"
)

// Edge is a labelled transition between two dialogue states.
type Edge struct {
	From  string `json:"from" yaml:"from"`
	To    string `json:"to" yaml:"to"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// graphData is the backing store shared between clones.
// Once frozen it is never written again; writers copy it first.
type graphData struct {
	frozen atomic.Bool
	root   string
	order  []string
	labels map[string]string
	out    map[string]map[string]string
	in     map[string]map[string]string
}

func newGraphData(root string) *graphData {
	return &graphData{
		root:   root,
		labels: make(map[string]string),
		out:    make(map[string]map[string]string),
		in:     make(map[string]map[string]string),
	}
}

func (d *graphData) copy() *graphData {
	next := newGraphData(d.root)
	next.order = append(make([]string, 0, len(d.order)), d.order...)
	for k, v := range d.labels {
		next.labels[k] = v
	}
	for k, v := range d.out {
		next.out[k] = copyLabels(v)
	}
	for k, v := range d.in {
		next.in[k] = copyLabels(v)
	}
	return next
}

func copyLabels(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// Graph is a directed dialogue-flow graph: nodes are dialogue states, edges are
// labelled transitions. At most one edge exists per ordered pair of nodes.
//
// Clone is O(1). The backing data is shared until one of the handles mutates it,
// at which point that handle takes a private copy. A graph that is only read and
// cloned (the canonical graph of an optimization run) is safe for concurrent use.
type Graph struct {
	data *graphData
}

// NewGraph creates a graph containing only the root node.
func NewGraph(root string) *Graph {
	g := &Graph{data: newGraphData(root)}
	g.AddNode(root, "")
	return g
}

// EmptyGraph returns a graph with no nodes and no root.
func EmptyGraph() *Graph {
	return &Graph{data: newGraphData("")}
}

// Clone returns an independent handle on the same graph.
func (g *Graph) Clone() *Graph {
	g.data.frozen.Store(true)
	return &Graph{data: g.data}
}

func (g *Graph) mutable() *graphData {
	if g.data.frozen.Load() {
		g.data = g.data.copy()
	}
	return g.data
}

// Root returns the distinguished start state. It is empty only for an empty graph.
func (g *Graph) Root() string { return g.data.root }

// IsEmpty reports whether the graph has no nodes.
func (g *Graph) IsEmpty() bool { return len(g.data.order) == 0 }

// NumNodes returns the number of nodes.
func (g *Graph) NumNodes() int { return len(g.data.order) }

// NumEdges returns the number of edges.
func (g *Graph) NumEdges() int {
	n := 0
	for _, targets := range g.data.out {
		n += len(targets)
	}
	return n
}

// AddNode inserts a node, or updates the display label of an existing one.
func (g *Graph) AddNode(id, label string) {
	d := g.mutable()
	if _, ok := d.out[id]; !ok {
		d.order = append(d.order, id)
		d.out[id] = make(map[string]string)
		d.in[id] = make(map[string]string)
	}
	d.labels[id] = label
}

// HasNode reports whether id is a node of the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.data.out[id]
	return ok
}

// Label returns the display label of a node.
func (g *Graph) Label(id string) string { return g.data.labels[id] }

// Nodes returns node ids in insertion order.
func (g *Graph) Nodes() []string {
	return append(make([]string, 0, len(g.data.order)), g.data.order...)
}

// RemoveNode deletes a node and every incident edge.
func (g *Graph) RemoveNode(id string) error {
	if !g.HasNode(id) {
		return fmt.Errorf("%w: node %q", ErrNotFound, id)
	}
	if id == g.data.root {
		return fmt.Errorf("%w: %q", ErrRootRemoval, id)
	}

	d := g.mutable()
	for dst := range d.out[id] {
		delete(d.in[dst], id)
	}
	for src := range d.in[id] {
		delete(d.out[src], id)
	}
	delete(d.out, id)
	delete(d.in, id)
	delete(d.labels, id)

	for i, n := range d.order {
		if n == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return nil
}

// HasEdge reports whether the edge from -> to exists.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.data.out[from][to]
	return ok
}

// EdgeLabel returns the label of the edge from -> to and whether it exists.
func (g *Graph) EdgeLabel(from, to string) (string, bool) {
	label, ok := g.data.out[from][to]
	return label, ok
}

// AddEdge inserts the edge from -> to. Re-adding an existing edge replaces its
// label and is not an error. Both endpoints must exist.
func (g *Graph) AddEdge(from, to, label string) error {
	if !g.HasNode(from) {
		return fmt.Errorf("%w: node %q", ErrNotFound, from)
	}
	if !g.HasNode(to) {
		return fmt.Errorf("%w: node %q", ErrNotFound, to)
	}

	d := g.mutable()
	d.out[from][to] = label
	d.in[to][from] = label
	return nil
}

// RemoveEdge deletes the edge from -> to.
func (g *Graph) RemoveEdge(from, to string) error {
	if !g.HasEdge(from, to) {
		return fmt.Errorf("%w: edge %q -> %q", ErrNotFound, from, to)
	}

	d := g.mutable()
	delete(d.out[from], to)
	delete(d.in[to], from)
	return nil
}

// Successors returns the targets of the outgoing edges of id, sorted.
func (g *Graph) Successors(id string) []string {
	targets := make([]string, 0, len(g.data.out[id]))
	for to := range g.data.out[id] {
		targets = append(targets, to)
	}
	sort.Strings(targets)
	return targets
}

// Edges returns every edge, grouped by source in node insertion order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.NumEdges())
	for _, from := range g.data.order {
		for _, to := range g.Successors(from) {
			edges = append(edges, Edge{From: from, To: to, Label: g.data.out[from][to]})
		}
	}
	return edges
}

// IncomingLabels returns the distinct labels of the edges entering id, sorted.
func (g *Graph) IncomingLabels(id string) []string {
	seen := make(map[string]bool)
	labels := make([]string, 0, len(g.data.in[id]))
	for _, label := range g.data.in[id] {
		if !seen[label] {
			seen[label] = true
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)
	return labels
}

// Distances returns the hop count of the shortest path from `from` to every
// node reachable from it (including itself at 0).
func (g *Graph) Distances(from string) map[string]int {
	dist := make(map[string]int)
	if !g.HasNode(from) {
		return dist
	}

	dist[from] = 0
	queue := []string{from}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for next := range g.data.out[current] {
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = dist[current] + 1
			queue = append(queue, next)
		}
	}
	return dist
}

// Reachable reports the set of nodes reachable from `from`.
func (g *Graph) Reachable(from string) map[string]bool {
	reach := make(map[string]bool)
	for id := range g.Distances(from) {
		reach[id] = true
	}
	return reach
}

// ShortestPathLength returns the hop count of the shortest path a -> b, or -1.
func (g *Graph) ShortestPathLength(a, b string) int {
	if d, ok := g.Distances(a)[b]; ok {
		return d
	}
	return -1
}
