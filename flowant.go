package flowant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/flowant/internal/actionspace"
	"github.com/aretw0/flowant/internal/colony"
	"github.com/aretw0/flowant/internal/logging"
	"github.com/aretw0/flowant/pkg/adapters/flowfile"
	loamAdapter "github.com/aretw0/flowant/pkg/adapters/loam"
	"github.com/aretw0/flowant/pkg/domain"
	"github.com/aretw0/flowant/pkg/ports"
	"github.com/aretw0/loam"
	"github.com/prometheus/client_golang/prometheus"
)

// Config holds the tunables of an optimization run.
type Config = colony.Config

// DefaultConfig returns the tunables used when nothing else is configured.
func DefaultConfig() Config {
	return colony.DefaultConfig()
}

// Optimizer is the high-level entry point for the Flowant library.
// It searches for edit sequences that improve a dialogue flow under a fitness oracle.
type Optimizer struct {
	oracle     ports.FitnessOracle
	cfg        Config
	logger     *slog.Logger
	hooks      domain.LifecycleHooks
	registerer prometheus.Registerer
	metrics    *colony.Metrics
	store      ports.ResultStore
}

// Option defines a functional option for configuring the Optimizer.
type Option func(*Optimizer)

// WithConfig replaces the default tunables.
func WithConfig(cfg Config) Option {
	return func(o *Optimizer) {
		o.cfg = cfg
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Optimizer) {
		o.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks for every run.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(o *Optimizer) {
		o.hooks = hooks
	}
}

// WithRegisterer exports run metrics to reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *Optimizer) {
		o.registerer = reg
	}
}

// WithStore persists every finished (or interrupted) run.
func WithStore(store ports.ResultStore) Option {
	return func(o *Optimizer) {
		o.store = store
	}
}

// New creates an Optimizer scoring candidates with oracle.
func New(oracle ports.FitnessOracle, opts ...Option) (*Optimizer, error) {
	if oracle == nil {
		return nil, fmt.Errorf("fitness oracle is required")
	}

	o := &Optimizer{
		oracle: oracle,
		cfg:    DefaultConfig(),
	}
	for _, opt := range opts {
		opt(o)
	}

	if err := o.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}

	metrics, err := colony.NewMetrics(o.registerer)
	if err != nil {
		return nil, err
	}
	o.metrics = metrics

	return o, nil
}

// Config returns the tunables of the optimizer.
func (o *Optimizer) Config() Config { return o.cfg }

type runOptions struct {
	runID  string
	source string
	hooks  domain.LifecycleHooks
}

// RunOption configures a single run.
type RunOption func(*runOptions)

// WithRunID sets the identifier of the run instead of a random UUID.
func WithRunID(id string) RunOption {
	return func(r *runOptions) {
		r.runID = id
	}
}

// WithSourceName records where the graph came from in the result.
func WithSourceName(name string) RunOption {
	return func(r *runOptions) {
		r.source = name
	}
}

// WithRunHooks adds hooks for this run only. They run after the optimizer's hooks.
func WithRunHooks(hooks domain.LifecycleHooks) RunOption {
	return func(r *runOptions) {
		r.hooks = hooks
	}
}

// Optimize searches the edit space of g.
//
// g is never modified. When ctx is cancelled the best candidate found so far is
// returned together with ctx.Err(). With a store configured the result is saved
// in both cases.
func (o *Optimizer) Optimize(ctx context.Context, g *domain.Graph, opts ...RunOption) (*domain.Result, error) {
	var ro runOptions
	for _, opt := range opts {
		opt(&ro)
	}

	c, err := colony.New(g, o.oracle, o.cfg,
		colony.WithLogger(o.logger),
		colony.WithLifecycleHooks(domain.MergeHooks(o.hooks, ro.hooks)),
		colony.WithMetrics(o.metrics),
		colony.WithRunID(ro.runID),
		colony.WithSourceName(ro.source),
	)
	if err != nil {
		return nil, err
	}

	result, runErr := c.Run(ctx)
	if result != nil && o.store != nil {
		// The run context may be the reason we stopped; saving must still happen.
		if err := o.store.Save(context.WithoutCancel(ctx), result); err != nil {
			o.logger.Error("failed to save result", "run_id", result.RunID, "err", err)
			return result, errors.Join(runErr, fmt.Errorf("failed to save result: %w", err))
		}
	}
	return result, runErr
}

// OptimizeFrom loads the graph with loader and optimizes it.
func (o *Optimizer) OptimizeFrom(ctx context.Context, loader ports.GraphLoader, opts ...RunOption) (*domain.Result, error) {
	g, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load graph: %w", err)
	}
	return o.Optimize(ctx, g, opts...)
}

// ActionSpace lists the edits the optimizer would consider for g, in action-id order.
// AddEdge labels are drawn the way a run draws them: a zero Seed picks a time
// based one, and stats.LabelSeed reports the seed used. Configuring that seed
// makes Optimize propose the same labels.
func (o *Optimizer) ActionSpace(g *domain.Graph) ([]domain.Action, domain.ActionSpaceStats, error) {
	seed := colony.ResolveSeed(o.cfg.Seed)
	space, err := actionspace.Build(g,
		actionspace.WithDistanceThreshold(o.cfg.DistanceThreshold),
		actionspace.WithExcludedLabels(o.cfg.GoBackLabels...),
		actionspace.WithBaseWeight(o.cfg.BaseWeight),
		actionspace.WithSeed(seed),
	)
	if err != nil {
		return nil, domain.ActionSpaceStats{}, err
	}
	return space.Actions(), space.Stats(), nil
}

// Open returns a loader for path.
// A directory is read as a Loam repository whose entry document is root
// (default "start"); a file is read as a flow document.
func Open(path, root string) (ports.GraphLoader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	if !info.IsDir() {
		return flowfile.New(path), nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// The optimizer never writes the flow back, so the repository is opened read only.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	var opts []loamAdapter.Option
	if root != "" {
		opts = append(opts, loamAdapter.WithRoot(root))
	}
	typedRepo := loam.NewTypedRepository[loamAdapter.NodeMetadata](repo)
	return loamAdapter.New(typedRepo, opts...), nil
}

// Apply replays the best sequence of result on g and reports what changed.
// A result without a successful candidate leaves the graph as is.
func Apply(g *domain.Graph, result *domain.Result) (*domain.Graph, *domain.GraphDiff, error) {
	if result.Best.Failed {
		return g.Clone(), &domain.GraphDiff{}, nil
	}
	improved, err := domain.Transform(g, result.Best.Sequence)
	if err != nil {
		return nil, nil, err
	}
	return improved, domain.Diff(g, improved), nil
}
