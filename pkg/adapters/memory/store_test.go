package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/flowant/pkg/adapters/memory"
	"github.com/aretw0/flowant/pkg/domain"
	"github.com/aretw0/flowant/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunResultStoreContract(t, store)
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	result := &domain.Result{
		RunID: "run-1",
		Best:  domain.Outcome{Sequence: []domain.Action{domain.RemoveNode("b")}},
	}
	require.NoError(t, store.Save(ctx, result))

	result.Best.Sequence[0] = domain.RemoveNode("mutated")

	loaded, err := store.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RemoveNode("b"), loaded.Best.Sequence[0])
}
