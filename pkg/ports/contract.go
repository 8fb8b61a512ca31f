package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/flowant/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractResult(runID string) *domain.Result {
	started := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	return &domain.Result{
		RunID: runID,
		Best: domain.Outcome{
			Iteration: 3,
			Ant:       1,
			Sequence:  []domain.Action{domain.RemoveEdge("a", "b"), domain.AddEdge("a", "c", "skip ahead")},
			Fitness:   0.75,
		},
		Baseline:   0.5,
		Iterations: 3,
		History: []domain.IterationStat{
			{Iteration: 1, BestFitness: 0.6, IterationBest: 0.6, MeanFitness: 0.4, PheromoneEntries: 2},
		},
		ActionSpace: domain.ActionSpaceStats{Nodes: 3, Edges: 2, RemoveNode: 2, RemoveEdge: 2, AddEdge: 1},
		StartedAt:   started,
		FinishedAt:  started.Add(time.Second),
	}
}

// RunResultStoreContract runs a suite of tests to verify that a ResultStore implementation
// adheres to the defined interface contract.
func RunResultStoreContract(t *testing.T, store ResultStore) {
	ctx := context.Background()
	runID := "contract-test-run-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		result := contractResult(runID)

		err := store.Save(ctx, result)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, result.RunID, loaded.RunID)
		assert.Equal(t, result.Best.Sequence, loaded.Best.Sequence)
		assert.Equal(t, result.Best.Fitness, loaded.Best.Fitness)
		assert.Equal(t, result.History, loaded.History)
		assert.Equal(t, result.ActionSpace, loaded.ActionSpace)
		assert.True(t, result.StartedAt.Equal(loaded.StartedAt))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, contractResult(runID))
		require.NoError(t, err)

		err = store.Delete(ctx, runID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "Load after Delete should return ErrRunNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := runID + "-1"
		id2 := runID + "-2"
		_ = store.Save(ctx, contractResult(id1))
		_ = store.Save(ctx, contractResult(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		runs, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, runs, id1)
		assert.Contains(t, runs, id2)
	})
}
