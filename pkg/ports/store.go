package ports

import (
	"context"

	"github.com/aretw0/flowant/pkg/domain"
)

// ResultStore defines the interface for persisting optimization results.
type ResultStore interface {
	// Save persists the result under its RunID.
	Save(ctx context.Context, result *domain.Result) error

	// Load retrieves the result of a run.
	// Returns domain.ErrRunNotFound if the run does not exist.
	Load(ctx context.Context, runID string) (*domain.Result, error)

	// Delete removes the result of a run.
	Delete(ctx context.Context, runID string) error

	// List returns the IDs of all stored runs.
	List(ctx context.Context) ([]string, error)
}
