package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/flowant/internal/presentation/tui"
	"github.com/aretw0/flowant/pkg/domain"
)

// Report formats.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// report is the JSON shape of an optimize run.
type report struct {
	*domain.Result
	Tokens      []string          `json:"tokens"`
	Improvement float64           `json:"improvement"`
	Diff        *domain.GraphDiff `json:"diff,omitempty"`
}

// writeReport prints result in format. styled enables glamour for markdown.
func writeReport(w io.Writer, format string, result *domain.Result, diff *domain.GraphDiff, styled bool) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		tokens := result.Best.Tokens()
		if result.Best.Failed {
			tokens = []string{}
		}
		return enc.Encode(report{
			Result:      result,
			Tokens:      tokens,
			Improvement: result.Improvement(),
			Diff:        diff,
		})
	case FormatMarkdown:
		md := tui.Markdown(result, diff)
		if styled {
			rendered, err := tui.NewRenderer()(md)
			if err == nil {
				md = rendered
			}
		}
		_, err := io.WriteString(w, md)
		return err
	case FormatText, "":
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeText(w io.Writer, result *domain.Result) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Run:         %s\n", result.RunID)
	if result.Source != "" {
		fmt.Fprintf(&sb, "Flow:        %s\n", result.Source)
	}
	fmt.Fprintf(&sb, "Iterations:  %d\n", result.Iterations)
	fmt.Fprintf(&sb, "Baseline:    %s\n", tui.FormatFitness(result.Baseline))
	fmt.Fprintf(&sb, "Best:        %s\n", tui.FormatFitness(result.Best.Fitness))
	fmt.Fprintf(&sb, "Improvement: %+.4f\n", result.Improvement())
	if result.Interrupted {
		sb.WriteString("Status:      interrupted\n")
	}
	if !result.Best.Failed {
		sb.WriteString("Edits:\n")
		for _, tok := range result.Best.Tokens() {
			fmt.Fprintf(&sb, "  %s\n", tok)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
