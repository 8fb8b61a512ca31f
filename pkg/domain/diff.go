package domain

// GraphDiff represents the structural changes between two graphs.
// It is designed to be serialized to JSON and to drive diagram overlays.
type GraphDiff struct {
	RemovedNodes []string `json:"removed_nodes,omitempty"`
	RemovedEdges []Edge   `json:"removed_edges,omitempty"`
	AddedEdges   []Edge   `json:"added_edges,omitempty"`
	// RelabeledEdges holds the new label of edges present in both graphs.
	RelabeledEdges []Edge `json:"relabeled_edges,omitempty"`
}

// Diff calculates the difference between oldGraph and newGraph.
// Edges incident to a removed node are reported as removed edges too.
func Diff(oldGraph, newGraph *Graph) *GraphDiff {
	diff := &GraphDiff{}

	for _, id := range oldGraph.Nodes() {
		if !newGraph.HasNode(id) {
			diff.RemovedNodes = append(diff.RemovedNodes, id)
		}
	}

	for _, e := range oldGraph.Edges() {
		label, ok := newGraph.EdgeLabel(e.From, e.To)
		switch {
		case !ok:
			diff.RemovedEdges = append(diff.RemovedEdges, e)
		case label != e.Label:
			diff.RelabeledEdges = append(diff.RelabeledEdges, Edge{From: e.From, To: e.To, Label: label})
		}
	}

	for _, e := range newGraph.Edges() {
		if !oldGraph.HasEdge(e.From, e.To) {
			diff.AddedEdges = append(diff.AddedEdges, e)
		}
	}

	return diff
}

// IsEmpty checks if the diff contains any change.
func (d *GraphDiff) IsEmpty() bool {
	return len(d.RemovedNodes) == 0 &&
		len(d.RemovedEdges) == 0 &&
		len(d.AddedEdges) == 0 &&
		len(d.RelabeledEdges) == 0
}
