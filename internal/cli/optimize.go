package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aretw0/flowant"
	"github.com/aretw0/flowant/internal/presentation/graph"
	"github.com/aretw0/flowant/pkg/domain"
)

// OptimizeOptions configures the optimize command.
type OptimizeOptions struct {
	Path       string
	Root       string
	ConfigPath string
	Overrides  Overrides
	Format     string
	// MermaidOut, when set, receives a diagram of the flow with the best edits overlaid.
	MermaidOut string
	Debug      bool
	Quiet      bool
	// Stdout receives the report, Stderr progress messages. Both default to the process streams.
	Stdout io.Writer
	Stderr io.Writer
	// Styled renders markdown reports with glamour.
	Styled bool
}

func (o *OptimizeOptions) streams() (io.Writer, io.Writer) {
	stdout, stderr := o.Stdout, o.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return stdout, stderr
}

// RunOptimize searches the flow at opts.Path for the best edit sequence and prints the report.
// An interrupted run still reports the best candidate found so far.
func RunOptimize(ctx context.Context, opts OptimizeOptions) error {
	stdout, stderr := opts.streams()
	logger := createLogger(opts.Debug)

	cfg, err := loadConfig(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return err
	}
	colonyCfg, err := cfg.Colony()
	if err != nil {
		return err
	}

	g, _, err := loadFlow(ctx, opts.Path, opts.Root)
	if err != nil {
		return err
	}

	oracle, err := buildOracle(ctx, cfg.Fitness)
	if err != nil {
		return err
	}

	store, closeStore, err := buildStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("Failed to close store", "err", err)
		}
	}()

	var hooks domain.LifecycleHooks
	if opts.Debug {
		hooks = domain.MergeHooks(hooks, createDebugHooks(logger))
	}
	if !opts.Quiet {
		hooks = domain.MergeHooks(hooks, createProgressHooks(stderr))
	}

	optimizerOpts := []flowant.Option{
		flowant.WithConfig(colonyCfg),
		flowant.WithLogger(logger),
		flowant.WithLifecycleHooks(hooks),
	}
	if store != nil {
		optimizerOpts = append(optimizerOpts, flowant.WithStore(store))
	}
	optimizer, err := flowant.New(oracle, optimizerOpts...)
	if err != nil {
		return err
	}

	if !opts.Quiet {
		printSystemMessage(stderr, "Optimizing '%s' (%d nodes, %d edges).", filepath.Base(opts.Path), g.NumNodes(), g.NumEdges())
	}

	result, runErr := optimizer.Optimize(ctx, g, flowant.WithSourceName(filepath.Base(opts.Path)))
	if result == nil {
		return runErr
	}
	if runErr != nil && !isInterrupted(runErr) {
		// The run finished but the result could not be stored.
		logger.Error("Run finished with errors", "err", runErr)
	}

	_, diff, err := flowant.Apply(g, result)
	if err != nil {
		return fmt.Errorf("failed to apply best sequence: %w", err)
	}

	if err := writeReport(stdout, opts.Format, result, diff, opts.Styled); err != nil {
		return err
	}

	if opts.MermaidOut != "" {
		diagram := graph.GenerateMermaid(g, &graph.GraphOverlay{Diff: diff})
		if err := os.WriteFile(opts.MermaidOut, []byte(diagram), 0644); err != nil {
			return fmt.Errorf("failed to write diagram: %w", err)
		}
		if !opts.Quiet {
			printSystemMessage(stderr, "Diagram written to '%s'.", opts.MermaidOut)
		}
	}

	if result.Interrupted && !opts.Quiet {
		printSystemMessage(stderr, "Interrupted after %d iterations.", result.Iterations)
	}
	if isInterrupted(runErr) {
		return nil
	}
	return runErr
}
