package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/flowant/pkg/domain"
)

// FormatFitness prints a fitness value, spelling out the score of failed candidates.
func FormatFitness(f float64) string {
	if f == domain.MinFitness {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", f)
}

// Markdown renders a run report.
func Markdown(result *domain.Result, diff *domain.GraphDiff) string {
	var sb strings.Builder

	title := "Optimization run"
	if result.Source != "" {
		title += " for " + result.Source
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "Run `%s`, seed `%d`, %d iterations", result.RunID, result.Seed, result.Iterations)
	if result.Interrupted {
		sb.WriteString(" (interrupted)")
	}
	sb.WriteString(".\n\n")

	sb.WriteString("| | Fitness |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Baseline | %s |\n", FormatFitness(result.Baseline))
	fmt.Fprintf(&sb, "| Best | %s |\n", FormatFitness(result.Best.Fitness))
	fmt.Fprintf(&sb, "| Improvement | %+.4f |\n\n", result.Improvement())

	sb.WriteString("## Edits\n\n")
	if result.Best.Failed || len(result.Best.Sequence) == 0 {
		sb.WriteString("No candidate could be evaluated.\n\n")
	} else {
		for i, tok := range result.Best.Tokens() {
			fmt.Fprintf(&sb, "%d. `%s`\n", i+1, tok)
		}
		sb.WriteString("\n")
	}

	if diff != nil && !diff.IsEmpty() {
		sb.WriteString("## Changes\n\n")
		for _, id := range diff.RemovedNodes {
			fmt.Fprintf(&sb, "- removed state `%s`\n", id)
		}
		for _, e := range diff.RemovedEdges {
			fmt.Fprintf(&sb, "- removed `%s → %s`\n", e.From, e.To)
		}
		for _, e := range diff.AddedEdges {
			fmt.Fprintf(&sb, "- added `%s → %s` (%q)\n", e.From, e.To, e.Label)
		}
		for _, e := range diff.RelabeledEdges {
			fmt.Fprintf(&sb, "- relabelled `%s → %s` as %q\n", e.From, e.To, e.Label)
		}
		sb.WriteString("\n")
	}

	s := result.ActionSpace
	sb.WriteString("## Action space\n\n")
	fmt.Fprintf(&sb, "%d states, %d transitions: %d node removals, %d edge removals, %d edge additions.\n",
		s.Nodes, s.Edges, s.RemoveNode, s.RemoveEdge, s.AddEdge)

	return sb.String()
}
