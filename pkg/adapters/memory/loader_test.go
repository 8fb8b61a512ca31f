package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/flowant/pkg/adapters/memory"
	"github.com/aretw0/flowant/pkg/domain"
	contract "github.com/aretw0/flowant/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryLoader_Contract(t *testing.T) {
	g := domain.NewGraph("start")
	g.AddNode("end", "Goodbye")
	require.NoError(t, g.AddEdge("start", "end", "bye"))

	loader := memory.NewLoader(g)

	contract.GraphLoaderContractTest(t, loader, []string{"start", "end"})
}

func TestInMemoryLoader_ReturnsClones(t *testing.T) {
	g := domain.NewGraph("start")
	g.AddNode("end", "")
	require.NoError(t, g.AddEdge("start", "end", "bye"))

	loader := memory.NewLoader(g)
	first, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, first.RemoveNode("end"))

	second, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, second.HasNode("end"))
}
