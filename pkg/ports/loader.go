package ports

import (
	"context"

	"github.com/aretw0/flowant/pkg/domain"
)

// GraphLoader defines how a dialogue flow is read from its source.
// This allows the storage layer (flow files, Loam, memory) to be decoupled.
type GraphLoader interface {
	// Load builds the canonical graph. The returned graph is owned by the caller.
	Load(ctx context.Context) (*domain.Graph, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// This is used by the validator's watch mode to re-check a flow on every edit.
type Watchable interface {
	// Watch returns a channel that receives the id of each changed document.
	Watch(ctx context.Context) (<-chan string, error)
}
