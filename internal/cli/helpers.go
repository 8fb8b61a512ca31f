package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/flowant/internal/logging"
	"github.com/aretw0/flowant/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from the report on Stdout).
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

func createInfoLogger() *slog.Logger {
	return logging.New(slog.LevelInfo)
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnIterationStart: func(ctx context.Context, e *domain.IterationEvent) {
			logger.Debug("Iteration Start", "iteration", e.Iteration)
		},
		OnAntEvaluated: func(ctx context.Context, e *domain.AntEvent) {
			if e.Failed {
				logger.Debug("Ant Failed", "iteration", e.Iteration, "ant", e.Ant, "tokens", e.Tokens, "err", e.Err)
				return
			}
			logger.Debug("Ant Evaluated", "iteration", e.Iteration, "ant", e.Ant, "fitness", e.Fitness, "duration", e.Duration)
		},
		OnIterationEnd: func(ctx context.Context, e *domain.IterationEvent) {
			logger.Debug("Iteration End",
				"iteration", e.Iteration,
				"best", e.BestFitness,
				"iteration_best", e.IterationBest,
				"failures", e.Failures,
				"pheromone_entries", e.PheromoneEntries,
			)
		},
	}
}

// createProgressHooks announces every improvement of the best candidate.
func createProgressHooks(w io.Writer) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnBestImproved: func(ctx context.Context, e *domain.AntEvent) {
			printSystemMessage(w, "Iteration %d: best fitness %.4f (%d edits)", e.Iteration, e.Fitness, len(e.Tokens))
		},
	}
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}

func handleExecutionError(err error) error {
	if err == nil {
		return nil
	}
	if isInterrupted(err) {
		return nil // Exit 0 for interruptions
	}
	return err
}
