package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aretw0/flowant"
	"github.com/aretw0/flowant/internal/actionspace"
	"github.com/aretw0/flowant/internal/colony"
	"github.com/aretw0/flowant/internal/presentation/graph"
	"github.com/aretw0/flowant/internal/validator"
	"github.com/aretw0/flowant/pkg/domain"
	"github.com/aretw0/flowant/pkg/fitness"
	"github.com/aretw0/flowant/pkg/ports"
)

// InspectOptions configures the read-only commands: actions, validate and graph.
type InspectOptions struct {
	Path       string
	Root       string
	ConfigPath string
	Format     string
	Debug      bool
	Stdout     io.Writer

	// Seed overrides the configured label seed of the actions command.
	Seed *uint64
}

func (o *InspectOptions) stdout() io.Writer {
	if o.Stdout == nil {
		return os.Stdout
	}
	return o.Stdout
}

func spaceOptions(cc colony.Config) []actionspace.Option {
	seed := cc.Seed
	if seed == 0 {
		seed = 1
	}
	return []actionspace.Option{
		actionspace.WithDistanceThreshold(cc.DistanceThreshold),
		actionspace.WithExcludedLabels(cc.GoBackLabels...),
		actionspace.WithBaseWeight(cc.BaseWeight),
		actionspace.WithSeed(seed),
	}
}

func (o *InspectOptions) colonyConfig() (colony.Config, error) {
	cfg, err := loadConfig(o.ConfigPath, Overrides{Seed: o.Seed})
	if err != nil {
		return colony.Config{}, err
	}
	return cfg.Colony()
}

// RunActions lists the edits the optimizer would consider for the flow.
func RunActions(ctx context.Context, opts InspectOptions) error {
	cc, err := opts.colonyConfig()
	if err != nil {
		return err
	}
	g, _, err := loadFlow(ctx, opts.Path, opts.Root)
	if err != nil {
		return err
	}

	optimizer, err := flowant.New(fitness.Reachability(), flowant.WithConfig(cc))
	if err != nil {
		return err
	}
	actions, stats, err := optimizer.ActionSpace(g)
	if err != nil {
		return err
	}

	w := opts.stdout()
	if opts.Format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Stats   domain.ActionSpaceStats `json:"stats"`
			Actions []string                `json:"actions"`
		}{stats, domain.Tokens(actions)})
	}

	for _, a := range actions {
		fmt.Fprintln(w, a)
	}
	fmt.Fprintf(w, "%d actions (%d remove node, %d remove edge, %d add edge), label seed %d\n",
		stats.Total(), stats.RemoveNode, stats.RemoveEdge, stats.AddEdge, stats.LabelSeed)
	return nil
}

// RunValidate checks that the flow can be optimized.
func RunValidate(ctx context.Context, opts InspectOptions) error {
	cc, err := opts.colonyConfig()
	if err != nil {
		return err
	}
	g, _, err := loadFlow(ctx, opts.Path, opts.Root)
	if err != nil {
		return err
	}
	return printValidation(opts.stdout(), opts.Format, g, spaceOptions(cc))
}

func printValidation(w io.Writer, format string, g *domain.Graph, opts []actionspace.Option) error {
	report := validator.Inspect(g, opts...)

	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		for _, issue := range report.Issues {
			fmt.Fprintln(w, issue)
		}
		if !report.HasErrors() {
			fmt.Fprintf(w, "✓ Flow is valid: %d states, %d transitions, %d actions.\n",
				report.Nodes, report.Edges, report.ActionSpace.Total())
		}
	}

	return validator.ValidateGraph(g, opts...)
}

// WatchValidate validates the flow and again after every change to its documents,
// until ctx is cancelled. Only directory flows can be watched.
func WatchValidate(ctx context.Context, opts InspectOptions) error {
	cc, err := opts.colonyConfig()
	if err != nil {
		return err
	}
	loader, err := openFlow(opts.Path, opts.Root)
	if err != nil {
		return err
	}
	watchable, ok := loader.(ports.Watchable)
	if !ok {
		return fmt.Errorf("%s cannot be watched: only flow directories support watch mode", opts.Path)
	}

	changes, err := watchable.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", opts.Path, err)
	}

	w := opts.stdout()
	logger := createLogger(opts.Debug)
	validate := func() {
		g, err := loader.Load(ctx)
		if err != nil {
			fmt.Fprintf(w, "✗ %v\n", err)
			return
		}
		if err := printValidation(w, opts.Format, g, spaceOptions(cc)); err != nil {
			fmt.Fprintf(w, "✗ %v\n", err)
		}
	}

	validate()
	printSystemMessage(w, "Watching '%s' for changes.", opts.Path)

	// Editors often write several files at once; settle before validating again.
	const settle = 200 * time.Millisecond
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Debug("Change detected", "event", event)
			pending = time.After(settle)
		case <-pending:
			pending = nil
			printSystemMessage(w, "Change detected, validating again.")
			validate()
		}
	}
}

// GraphOptions configures the graph command.
type GraphOptions struct {
	InspectOptions
	// Tokens, when set, are applied to the flow and drawn as an overlay.
	Tokens []string
}

// RunGraph prints a Mermaid diagram of the flow.
func RunGraph(ctx context.Context, opts GraphOptions) error {
	g, _, err := loadFlow(ctx, opts.Path, opts.Root)
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	if len(opts.Tokens) > 0 {
		seq, err := domain.ParseSequence(trimTokens(opts.Tokens))
		if err != nil {
			return err
		}
		edited, err := domain.Transform(g, seq)
		if err != nil {
			return err
		}
		overlay = &graph.GraphOverlay{Diff: domain.Diff(g, edited)}
	}

	_, err = io.WriteString(opts.stdout(), graph.GenerateMermaid(g, overlay))
	return err
}

func trimTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
