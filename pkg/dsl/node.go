package dsl

import (
	"github.com/aretw0/flowant/pkg/adapters/memory"
	"github.com/aretw0/flowant/pkg/domain"
)

type transition struct {
	to    string
	label string
}

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	id          string
	label       string
	transitions []transition
	builder     *Builder
}

// Text sets the display label of the node.
func (n *NodeBuilder) Text(label string) *NodeBuilder {
	n.label = label
	return n
}

// Go adds a transition to the target node, shown to the user as label.
// A second transition to the same target replaces the first.
func (n *NodeBuilder) Go(target, label string) *NodeBuilder {
	for i, tr := range n.transitions {
		if tr.to == target {
			n.transitions[i].label = label
			return n
		}
	}
	n.transitions = append(n.transitions, transition{to: target, label: label})
	return n
}

// Terminal marks the node as a terminal node (end of the flow).
func (n *NodeBuilder) Terminal() *NodeBuilder {
	n.transitions = nil
	return n
}

// Add continues the chain with another node of the same builder.
func (n *NodeBuilder) Add(id string) *NodeBuilder {
	return n.builder.Add(id)
}

// Build compiles the whole graph the node belongs to.
func (n *NodeBuilder) Build() (*domain.Graph, error) {
	return n.builder.Build()
}

// Loader wraps the compiled graph in an in-memory loader.
func (n *NodeBuilder) Loader() (*memory.Loader, error) {
	return n.builder.Loader()
}
