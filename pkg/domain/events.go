package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventIterationStart EventType = "iteration_start"
	EventIterationEnd   EventType = "iteration_end"
	EventAntEvaluated   EventType = "ant_evaluated"
	EventBestImproved   EventType = "best_improved"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id"`
}

// IterationEvent marks the boundary of a colony iteration.
type IterationEvent struct {
	EventBase
	Iteration        int     `json:"iteration"`
	BestFitness      float64 `json:"best_fitness"`
	IterationBest    float64 `json:"iteration_best"`
	Failures         int     `json:"failures"`
	PheromoneEntries int     `json:"pheromone_entries"`
}

// AntEvent reports the evaluation of a single candidate.
type AntEvent struct {
	EventBase
	Iteration int           `json:"iteration"`
	Ant       int           `json:"ant"`
	Tokens    []string      `json:"tokens"`
	Fitness   float64       `json:"fitness"`
	Failed    bool          `json:"failed,omitempty"`
	Err       error         `json:"-"`
	Duration  time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for optimizer observability.
// Hooks run on the coordinating goroutine, never concurrently with each other.
type LifecycleHooks struct {
	OnIterationStart func(context.Context, *IterationEvent)
	OnAntEvaluated   func(context.Context, *AntEvent)
	OnIterationEnd   func(context.Context, *IterationEvent)
	OnBestImproved   func(context.Context, *AntEvent)
}

// MergeHooks combines several hook sets; each callback runs in argument order.
func MergeHooks(sets ...LifecycleHooks) LifecycleHooks {
	var merged LifecycleHooks
	for _, h := range sets {
		merged.OnIterationStart = thenCall(merged.OnIterationStart, h.OnIterationStart)
		merged.OnAntEvaluated = thenCall(merged.OnAntEvaluated, h.OnAntEvaluated)
		merged.OnIterationEnd = thenCall(merged.OnIterationEnd, h.OnIterationEnd)
		merged.OnBestImproved = thenCall(merged.OnBestImproved, h.OnBestImproved)
	}
	return merged
}

func thenCall[E any](first, second func(context.Context, E)) func(context.Context, E) {
	if first == nil {
		return second
	}
	if second == nil {
		return first
	}
	return func(ctx context.Context, e E) {
		first(ctx, e)
		second(ctx, e)
	}
}
