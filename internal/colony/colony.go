package colony

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/aretw0/flowant/internal/actionspace"
	"github.com/aretw0/flowant/internal/logging"
	"github.com/aretw0/flowant/internal/pheromone"
	"github.com/aretw0/flowant/pkg/domain"
	"github.com/aretw0/flowant/pkg/fitness"
	"github.com/aretw0/flowant/pkg/ports"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Colony searches the edit space of one canonical graph.
type Colony struct {
	cfg       Config
	canonical *domain.Graph
	oracle    ports.FitnessOracle
	actions   *actionspace.Graph
	store     *pheromone.Store
	sources   SourceFactory
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
	metrics   *Metrics
	runID     string
	source    string
}

// Option configures a Colony.
type Option func(*Colony)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Colony) {
		c.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Colony) {
		c.hooks = hooks
	}
}

// WithMetrics records progress on m.
func WithMetrics(m *Metrics) Option {
	return func(c *Colony) {
		c.metrics = m
	}
}

// WithSourceFactory overrides how ants get their randomness.
func WithSourceFactory(f SourceFactory) Option {
	return func(c *Colony) {
		c.sources = f
	}
}

// WithRunID sets the run identifier instead of a random UUID.
func WithRunID(id string) Option {
	return func(c *Colony) {
		c.runID = id
	}
}

// WithSourceName records where the canonical graph came from.
func WithSourceName(name string) Option {
	return func(c *Colony) {
		c.source = name
	}
}

// ResolveSeed returns seed, or a time based seed when seed is 0.
func ResolveSeed(seed uint64) uint64 {
	if seed == 0 {
		return uint64(time.Now().UnixNano())
	}
	return seed
}

// New validates cfg, snapshots g and derives its action space.
// The oracle is wrapped in fitness.Guard with cfg.OracleTimeout.
func New(g *domain.Graph, oracle ports.FitnessOracle, cfg Config, opts ...Option) (*Colony, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid colony config: %w", err)
	}
	if oracle == nil {
		return nil, fmt.Errorf("fitness oracle is required")
	}
	cfg.Seed = ResolveSeed(cfg.Seed)

	c := &Colony{
		cfg:       cfg,
		canonical: g.Clone(),
		oracle:    fitness.Guard(oracle, cfg.OracleTimeout),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	if c.sources == nil {
		c.sources = SeededSources(cfg.Seed)
	}
	if c.runID == "" {
		c.runID = uuid.NewString()
	}
	c.logger = c.logger.With("run_id", c.runID)

	actions, err := actionspace.Build(c.canonical,
		actionspace.WithDistanceThreshold(cfg.DistanceThreshold),
		actionspace.WithExcludedLabels(cfg.GoBackLabels...),
		actionspace.WithBaseWeight(cfg.BaseWeight),
		actionspace.WithSeed(cfg.Seed),
	)
	if err != nil {
		return nil, err
	}
	c.actions = actions
	c.store = pheromone.New(cfg.Epsilon)

	return c, nil
}

// RunID returns the identifier of the run.
func (c *Colony) RunID() string { return c.runID }

// Actions returns the action graph the colony searches.
func (c *Colony) Actions() *actionspace.Graph { return c.actions }

// Pheromones returns the pheromone store. It is meant for inspection between runs.
func (c *Colony) Pheromones() *pheromone.Store { return c.store }

type evaluation struct {
	outcome  domain.Outcome
	route    []pheromone.Edge
	duration time.Duration
}

// Run executes the configured iterations and returns the best candidate found.
//
// Cancelling ctx stops the run between iterations; the partial result is returned
// together with ctx.Err().
func (c *Colony) Run(ctx context.Context) (*domain.Result, error) {
	result := &domain.Result{
		RunID:       c.runID,
		Source:      c.source,
		Seed:        c.cfg.Seed,
		Best:        domain.Outcome{Fitness: domain.MinFitness, Failed: true},
		ActionSpace: c.actions.Stats(),
		StartedAt:   time.Now(),
	}

	baseline, err := c.oracle.Evaluate(ctx, c.canonical.Clone())
	if err != nil {
		c.logger.Warn("baseline evaluation failed", "err", err)
	}
	result.Baseline = baseline

	c.logger.Info("colony started",
		"actions", c.actions.Len(),
		"ants", c.cfg.Ants,
		"iterations", c.cfg.Iterations,
		"seed", c.cfg.Seed,
		"baseline", baseline,
	)

	ants := make([]*Ant, c.cfg.Ants)
	for i := range ants {
		ants[i] = NewAnt(i, c.actions, c.store, c.cfg.Budget)
	}

	stale := 0
	for iter := 1; iter <= c.cfg.Iterations; iter++ {
		if err := ctx.Err(); err != nil {
			return c.finish(result, true), err
		}

		if c.hooks.OnIterationStart != nil {
			c.hooks.OnIterationStart(ctx, c.iterationEvent(domain.EventIterationStart, iter, result.Best.Fitness))
		}

		evals := c.runIteration(ctx, iter, ants)
		if err := ctx.Err(); err != nil {
			// Candidates of an interrupted iteration were scored against a dead context.
			return c.finish(result, true), err
		}

		improved, stat, err := c.update(ctx, iter, evals, result)
		if err != nil {
			return c.finish(result, false), err
		}
		result.History = append(result.History, stat)
		result.Iterations = iter

		if c.hooks.OnIterationEnd != nil {
			ev := c.iterationEvent(domain.EventIterationEnd, iter, stat.BestFitness)
			ev.IterationBest = stat.IterationBest
			ev.Failures = stat.Failures
			ev.PheromoneEntries = stat.PheromoneEntries
			c.hooks.OnIterationEnd(ctx, ev)
		}

		c.logger.Debug("iteration complete",
			"iteration", iter,
			"best_fitness", stat.BestFitness,
			"iteration_best", stat.IterationBest,
			"mean_fitness", stat.MeanFitness,
			"failures", stat.Failures,
			"pheromone_entries", stat.PheromoneEntries,
		)

		if improved {
			stale = 0
		} else {
			stale++
		}
		if c.cfg.Patience > 0 && stale >= c.cfg.Patience {
			c.logger.Info("no improvement, stopping early", "iteration", iter, "patience", c.cfg.Patience)
			break
		}
	}

	return c.finish(result, false), nil
}

func (c *Colony) finish(result *domain.Result, interrupted bool) *domain.Result {
	result.Interrupted = interrupted
	result.FinishedAt = time.Now()
	c.logger.Info("colony finished",
		"iterations", result.Iterations,
		"best_fitness", result.Best.Fitness,
		"best_sequence", result.Best.Tokens(),
		"interrupted", interrupted,
	)
	return result
}

func (c *Colony) iterationEvent(t domain.EventType, iter int, best float64) *domain.IterationEvent {
	return &domain.IterationEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      t,
			RunID:     c.runID,
		},
		Iteration:   iter,
		BestFitness: best,
	}
}

// runIteration walks and evaluates every ant. Ants only read the pheromone store here.
func (c *Colony) runIteration(ctx context.Context, iter int, ants []*Ant) []evaluation {
	evals := make([]evaluation, len(ants))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Workers)
	for i, ant := range ants {
		g.Go(func() error {
			evals[i] = c.evaluate(gctx, iter, ant)
			return nil
		})
	}
	_ = g.Wait()

	return evals
}

func (c *Colony) evaluate(ctx context.Context, iter int, ant *Ant) (ev evaluation) {
	started := time.Now()
	ev.outcome = domain.Outcome{
		Iteration: iter,
		Ant:       ant.ID(),
		Fitness:   domain.MinFitness,
	}

	defer func() {
		if p := recover(); p != nil {
			ev.outcome.Fitness = domain.MinFitness
			ev.outcome.Failed = true
			ev.outcome.Err = fmt.Errorf("ant %d panicked: %v", ant.ID(), p)
			ev.outcome.Error = ev.outcome.Err.Error()
			c.logger.Error("ant evaluation panicked", "iteration", iter, "ant", ant.ID(), "err", ev.outcome.Err)
		}
		ev.duration = time.Since(started)
	}()

	ant.Reset()
	ant.Traverse(c.sources(iter, ant.ID()), c.cfg.Exploration, c.cfg.Selection)
	ev.route = ant.Route()
	ev.outcome.Sequence = ant.Sequence()

	candidate, err := domain.Transform(c.canonical, ev.outcome.Sequence)
	if err != nil {
		ev.outcome.Failed = true
		ev.outcome.Err = err
		ev.outcome.Error = err.Error()
		c.logger.Debug("candidate rejected", "iteration", iter, "ant", ant.ID(), "err", err)
		return ev
	}

	oracleStart := time.Now()
	f, err := c.oracle.Evaluate(ctx, candidate)
	c.metrics.observeOracle(time.Since(oracleStart))
	if err != nil {
		ev.outcome.Failed = true
		ev.outcome.Err = err
		ev.outcome.Error = err.Error()
		c.logger.Warn("fitness oracle failed", "iteration", iter, "ant", ant.ID(), "err", err)
		return ev
	}

	ev.outcome.Fitness = f
	return ev
}

// rank orders evaluations best first. Failures go last; ties keep ant order.
func rank(evals []evaluation) []evaluation {
	ranked := append([]evaluation(nil), evals...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].outcome, ranked[j].outcome
		if a.Failed != b.Failed {
			return !a.Failed
		}
		return a.Fitness > b.Fitness
	})
	return ranked
}

// update is the single-writer phase of an iteration: best-so-far, deposits, evaporation.
func (c *Colony) update(ctx context.Context, iter int, evals []evaluation, result *domain.Result) (bool, domain.IterationStat, error) {
	stat := domain.IterationStat{Iteration: iter, IterationBest: domain.MinFitness}

	sum, ok := 0.0, 0
	for _, ev := range evals {
		c.metrics.observeEvaluation(ev.outcome.Failed)
		if c.hooks.OnAntEvaluated != nil {
			c.hooks.OnAntEvaluated(ctx, c.antEvent(domain.EventAntEvaluated, ev))
		}
		if ev.outcome.Failed {
			stat.Failures++
			continue
		}
		sum += ev.outcome.Fitness
		ok++
	}
	if ok > 0 {
		stat.MeanFitness = sum / float64(ok)
	}

	ranked := rank(evals)
	improved := false
	if top := ranked[0].outcome; !top.Failed {
		stat.IterationBest = top.Fitness
		if result.Best.Failed || top.Fitness > result.Best.Fitness {
			result.Best = top
			improved = true
			c.logger.Info("best improved", "iteration", iter, "ant", top.Ant, "fitness", top.Fitness, "sequence", top.Tokens())
			if c.hooks.OnBestImproved != nil {
				c.hooks.OnBestImproved(ctx, c.antEvent(domain.EventBestImproved, ranked[0]))
			}
		}
	}

	outcomes := make([]domain.Outcome, len(ranked))
	for i, ev := range ranked {
		outcomes[i] = ev.outcome
	}
	for i, amount := range c.cfg.Reinforcement.Deposits(outcomes) {
		if amount == 0 || ranked[i].outcome.Failed {
			continue
		}
		for _, e := range ranked[i].route {
			c.store.Accumulate(e.From, e.To, amount)
		}
	}

	if err := c.store.Evaporate(c.cfg.Evaporation); err != nil {
		return false, stat, err
	}

	stat.BestFitness = result.Best.Fitness
	stat.PheromoneEntries = c.store.Len()
	c.metrics.observeIteration(stat.BestFitness, stat.PheromoneEntries)

	return improved, stat, nil
}

func (c *Colony) antEvent(t domain.EventType, ev evaluation) *domain.AntEvent {
	return &domain.AntEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      t,
			RunID:     c.runID,
		},
		Iteration: ev.outcome.Iteration,
		Ant:       ev.outcome.Ant,
		Tokens:    ev.outcome.Tokens(),
		Fitness:   ev.outcome.Fitness,
		Failed:    ev.outcome.Failed,
		Err:       ev.outcome.Err,
		Duration:  ev.duration,
	}
}
