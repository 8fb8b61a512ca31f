package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/flowant/internal/config"
	"github.com/aretw0/flowant/pkg/adapters/memory"
	"github.com/aretw0/flowant/pkg/adapters/redis"
	"github.com/aretw0/flowant/pkg/fitness"
	"github.com/aretw0/flowant/pkg/ports"
)

// Overrides holds the command line flags that take precedence over the config file.
// Nil fields were not set.
type Overrides struct {
	Ants       *int
	Iterations *int
	Budget     *int
	Workers    *int
	Patience   *int
	Seed       *uint64
	Fitness    *string
	Reference  *string
	StoreKind  *string
	StoreAddr  *string
}

func (o Overrides) apply(cfg *config.Config) {
	setIf(&cfg.Ants, o.Ants)
	setIf(&cfg.Iterations, o.Iterations)
	setIf(&cfg.Budget, o.Budget)
	setIf(&cfg.Workers, o.Workers)
	setIf(&cfg.Patience, o.Patience)
	setIf(&cfg.Seed, o.Seed)
	setIf(&cfg.Fitness.Kind, o.Fitness)
	setIf(&cfg.Fitness.Reference, o.Reference)
	setIf(&cfg.Store.Kind, o.StoreKind)
	setIf(&cfg.Store.Address, o.StoreAddr)

	// A reference on its own implies comparing against it.
	if o.Reference != nil && o.Fitness == nil && cfg.Fitness.Kind == config.FitnessReachability {
		cfg.Fitness.Kind = config.FitnessSimilarity
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// loadConfig reads path (or the defaults) and applies the flag overrides.
func loadConfig(path string, o Overrides) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	o.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// buildOracle creates the fitness oracle selected by f.
func buildOracle(ctx context.Context, f config.Fitness) (ports.FitnessOracle, error) {
	switch f.Kind {
	case config.FitnessReachability:
		return fitness.Reachability(), nil
	case config.FitnessSimilarity, config.FitnessWeighted:
		reference, _, err := loadFlow(ctx, f.Reference, "")
		if err != nil {
			return nil, fmt.Errorf("reference flow: %w", err)
		}
		similarity := fitness.Similarity(reference)
		if f.Kind == config.FitnessSimilarity {
			return similarity, nil
		}
		return fitness.Weighted(f.Alpha, fitness.Reachability(), similarity)
	default:
		return nil, fmt.Errorf("unknown fitness kind %q", f.Kind)
	}
}

// buildStore creates the result store selected by cfg. A nil store means
// results are not kept. The returned close function is never nil.
func buildStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.ResultStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Kind {
	case config.StoreNone:
		return nil, noop, nil
	case config.StoreMemory:
		return memory.NewStore(), noop, nil
	case config.StoreRedis:
		ttl, err := cfg.StoreTTL()
		if err != nil {
			return nil, noop, err
		}
		opts := []redis.Option{redis.WithTTL(ttl)}
		if cfg.Store.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Store.Prefix))
		}
		store := redis.New(cfg.Store.Address, cfg.Store.Password, cfg.Store.DB, opts...)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, noop, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Store.Address, err)
		}
		logger.Info("Connected to Redis", "address", cfg.Store.Address, "ttl", ttl)
		return store, store.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown store kind %q", cfg.Store.Kind)
	}
}
