package dsl

import (
	"fmt"

	"github.com/aretw0/flowant/pkg/adapters/memory"
	"github.com/aretw0/flowant/pkg/domain"
)

// Builder manages the graph construction.
type Builder struct {
	root  string
	order []string
	nodes map[string]*NodeBuilder
}

// New creates a new graph builder whose flow starts at root.
func New(root string) *Builder {
	return &Builder{
		root:  root,
		nodes: make(map[string]*NodeBuilder),
	}
}

// Add creates a new node in the graph.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		id:      id,
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Build compiles the declared nodes into a graph.
// Nodes keep their declaration order; every transition target must be declared.
func (b *Builder) Build() (*domain.Graph, error) {
	rootNode, ok := b.nodes[b.root]
	if !ok {
		return nil, fmt.Errorf("root %q was never added: %w", b.root, domain.ErrNotFound)
	}

	g := domain.NewGraph(b.root)
	g.AddNode(b.root, rootNode.label)
	for _, id := range b.order {
		g.AddNode(id, b.nodes[id].label)
	}

	for _, id := range b.order {
		for _, tr := range b.nodes[id].transitions {
			if err := g.AddEdge(id, tr.to, tr.label); err != nil {
				return nil, fmt.Errorf("transition %s -> %s: %w", id, tr.to, err)
			}
		}
	}

	return g, nil
}

// Loader compiles the graph and wraps it in an in-memory loader.
func (b *Builder) Loader() (*memory.Loader, error) {
	g, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return memory.NewLoader(g), nil
}
