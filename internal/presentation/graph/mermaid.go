package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/flowant/pkg/domain"
)

// GraphOverlay marks the edits of a candidate on the unedited flow.
type GraphOverlay struct {
	Diff *domain.GraphDiff
}

// GenerateMermaid produces a Mermaid flowchart of g.
// The root is drawn as a ((Circle)), dead ends as ([Stadium]) and other states as
// [Rectangle]. With an overlay, removed states and transitions are styled as removed
// and added transitions are drawn dotted.
func GenerateMermaid(g *domain.Graph, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var diff domain.GraphDiff
	if overlay != nil && overlay.Diff != nil {
		diff = *overlay.Diff
	}
	removedEdges := make(map[[2]string]bool, len(diff.RemovedEdges))
	for _, e := range diff.RemovedEdges {
		removedEdges[[2]string{e.From, e.To}] = true
	}

	for _, id := range g.Nodes() {
		safeID := sanitizeMermaidID(id)

		opener, closer := "[", "]"
		switch {
		case id == g.Root():
			opener, closer = "((", "))"
		case len(g.Successors(id)) == 0:
			opener, closer = "([", "])"
		}

		text := id
		if label := g.Label(id); label != "" {
			text = id + " <br/> " + escape(label)
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, text, closer))
	}

	// linkStyle needs the index of each link in declaration order.
	link := 0
	var removedLinks, addedLinks []int
	for _, e := range g.Edges() {
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", sanitizeMermaidID(e.From), arrow(e.Label, false), sanitizeMermaidID(e.To)))
		if removedEdges[[2]string{e.From, e.To}] {
			removedLinks = append(removedLinks, link)
		}
		link++
	}
	for _, e := range diff.AddedEdges {
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", sanitizeMermaidID(e.From), arrow(e.Label, true), sanitizeMermaidID(e.To)))
		addedLinks = append(addedLinks, link)
		link++
	}

	if overlay == nil {
		return sb.String()
	}

	sb.WriteString("\n    %% Overlay Styles\n")
	// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
	sb.WriteString("    classDef removed fill:#ffebee,stroke:#c62828,stroke-width:2px,stroke-dasharray:4,color:#000;\n")
	for _, id := range diff.RemovedNodes {
		sb.WriteString(fmt.Sprintf("    class %s removed;\n", sanitizeMermaidID(id)))
	}
	for _, i := range removedLinks {
		sb.WriteString(fmt.Sprintf("    linkStyle %d stroke:#c62828,stroke-width:2px,stroke-dasharray:4;\n", i))
	}
	for _, i := range addedLinks {
		sb.WriteString(fmt.Sprintf("    linkStyle %d stroke:#2e7d32,stroke-width:3px;\n", i))
	}

	return sb.String()
}

func arrow(label string, added bool) string {
	if label == "" {
		if added {
			return "-.->"
		}
		return "-->"
	}
	if added {
		return fmt.Sprintf("-. \"%s\" .->", escape(label))
	}
	return fmt.Sprintf("-- \"%s\" -->", escape(label))
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
