package domain

import (
	"math"
	"time"
)

// MinFitness is the score of a candidate that could not be evaluated.
// It orders below every finite fitness value.
const MinFitness = -math.MaxFloat64

// Outcome is the evaluated route of one ant.
type Outcome struct {
	Iteration int      `json:"iteration"`
	Ant       int      `json:"ant"`
	Sequence  []Action `json:"sequence"`
	Fitness   float64  `json:"fitness"`
	Failed    bool     `json:"failed,omitempty"`
	Err       error    `json:"-"`
	Error     string   `json:"error,omitempty"`
}

// Tokens returns the canonical encoding of the outcome's sequence.
func (o Outcome) Tokens() []string {
	return Tokens(o.Sequence)
}

// IterationStat summarizes one colony iteration.
type IterationStat struct {
	Iteration        int     `json:"iteration"`
	BestFitness      float64 `json:"best_fitness"`
	IterationBest    float64 `json:"iteration_best"`
	MeanFitness      float64 `json:"mean_fitness"`
	Failures         int     `json:"failures"`
	PheromoneEntries int     `json:"pheromone_entries"`
}

// ActionSpaceStats counts the legal actions of a graph by kind.
type ActionSpaceStats struct {
	Nodes      int    `json:"nodes"`
	Edges      int    `json:"edges"`
	RemoveNode int    `json:"remove_node"`
	RemoveEdge int    `json:"remove_edge"`
	AddEdge    int    `json:"add_edge"`
	// LabelSeed drew the AddEdge labels. The same seed yields the same labels.
	LabelSeed  uint64 `json:"label_seed,omitempty"`
}

// Total returns the number of actions.
func (s ActionSpaceStats) Total() int {
	return s.RemoveNode + s.RemoveEdge + s.AddEdge
}

// Result is the record of a completed (or interrupted) optimization run.
type Result struct {
	RunID       string           `json:"run_id"`
	Source      string           `json:"source,omitempty"`
	Seed        uint64           `json:"seed"`
	Best        Outcome          `json:"best"`
	Baseline    float64          `json:"baseline"`
	Iterations  int              `json:"iterations"`
	Interrupted bool             `json:"interrupted,omitempty"`
	History     []IterationStat  `json:"history"`
	ActionSpace ActionSpaceStats `json:"action_space"`
	StartedAt   time.Time        `json:"started_at"`
	FinishedAt  time.Time        `json:"finished_at"`
}

// Improvement returns how much the best candidate beats the unmodified graph.
func (r *Result) Improvement() float64 {
	if r.Best.Failed || r.Best.Fitness == MinFitness {
		return 0
	}
	return r.Best.Fitness - r.Baseline
}
