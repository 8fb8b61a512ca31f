package fitness

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/aretw0/flowant/pkg/domain"
	"github.com/aretw0/flowant/pkg/ports"
)

// Guard wraps an oracle so that every failure mode surfaces as domain.ErrOracleFailure:
// returned errors, panics, non-finite scores and, when timeout > 0, calls that outlive
// the timeout. A timed out call keeps running in the background; its result is dropped.
func Guard(oracle ports.FitnessOracle, timeout time.Duration) ports.FitnessOracle {
	return ports.OracleFunc(func(ctx context.Context, g *domain.Graph) (float64, error) {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		type reply struct {
			fitness float64
			err     error
		}
		done := make(chan reply, 1)

		go func() {
			var r reply
			defer func() {
				if p := recover(); p != nil {
					r = reply{err: fmt.Errorf("%w: panic: %v", domain.ErrOracleFailure, p)}
				}
				done <- r
			}()
			r.fitness, r.err = oracle.Evaluate(ctx, g)
		}()

		select {
		case <-ctx.Done():
			return domain.MinFitness, fmt.Errorf("%w: %w", domain.ErrOracleFailure, ctx.Err())
		case r := <-done:
			switch {
			case r.err != nil:
				if errors.Is(r.err, domain.ErrOracleFailure) {
					return domain.MinFitness, r.err
				}
				return domain.MinFitness, fmt.Errorf("%w: %w", domain.ErrOracleFailure, r.err)
			case math.IsNaN(r.fitness) || math.IsInf(r.fitness, 0):
				return domain.MinFitness, fmt.Errorf("%w: non-finite fitness %v", domain.ErrOracleFailure, r.fitness)
			}
			return r.fitness, nil
		}
	})
}
