package colony

import (
	"context"
	"testing"

	"github.com/aretw0/flowant/pkg/domain"
	"github.com/aretw0/flowant/pkg/fitness"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	g := domain.NewGraph("A")
	g.AddNode("B", "")
	require.NoError(t, g.AddEdge("A", "B", "go"))

	cfg := DefaultConfig()
	cfg.Ants = 3
	cfg.Iterations = 4
	cfg.Seed = 1

	c, err := New(g, fitness.Reachability(), cfg, WithMetrics(m))
	require.NoError(t, err)
	_, err = c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4.0, testutil.ToFloat64(m.iterations))
	total := testutil.ToFloat64(m.evaluations.WithLabelValues("ok")) +
		testutil.ToFloat64(m.evaluations.WithLabelValues("failed"))
	assert.Equal(t, 12.0, total)
	assert.Equal(t, float64(c.Pheromones().Len()), testutil.ToFloat64(m.pheromones))
}

func TestMetrics_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewMetrics(reg)
	require.NoError(t, err)
	second, err := NewMetrics(reg)
	require.NoError(t, err)

	second.observeIteration(0.5, 2)
	assert.Equal(t, 1.0, testutil.ToFloat64(first.iterations))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	m, err := NewMetrics(nil)
	require.NoError(t, err)
	assert.Nil(t, m)

	m.observeIteration(1, 1)
	m.observeEvaluation(true)
	m.observeOracle(0)
}
