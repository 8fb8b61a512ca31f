package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/flowant/internal/colony"
	"github.com/aretw0/flowant/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	cc, err := cfg.Colony()
	require.NoError(t, err)
	assert.Equal(t, 10, cc.Ants)
	assert.Equal(t, 50, cc.Iterations)
	assert.Equal(t, 5, cc.Budget)
	assert.Equal(t, 2, cc.DistanceThreshold)
	assert.Equal(t, 0.4, cc.Evaporation)
	assert.Equal(t, colony.Additive{Base: 0.01}, cc.Selection)
	assert.Equal(t, colony.TopFraction{Fraction: 0.1, Normalize: true}, cc.Reinforcement)
	assert.Equal(t, []string{"이전 단계로", "이전단계"}, cc.GoBackLabels)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "flowant.yaml", `
ants: 20
selection: classic
alpha: 2
beta: 1
oracle_timeout: 250ms
reinforcement:
  top_fraction: 1
  normalize: false
go_back_labels: ["back"]
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Ants)
	assert.Equal(t, 50, cfg.Iterations, "unset fields keep their defaults")

	cc, err := cfg.Colony()
	require.NoError(t, err)
	assert.Equal(t, colony.Classic{Base: 0.01, Alpha: 2, Beta: 1}, cc.Selection)
	assert.Equal(t, colony.TopFraction{Fraction: 1, Normalize: false}, cc.Reinforcement)
	assert.Equal(t, 250*time.Millisecond, cc.OracleTimeout)
	assert.Equal(t, []string{"back"}, cc.GoBackLabels)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "flowant.json", `{
		"iterations": 7,
		"fitness": {"kind": "similarity", "reference": "ref.json"},
		"store": {"kind": "redis", "address": "localhost:6379", "ttl": "1h"}
	}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Iterations)
	assert.Equal(t, config.FitnessSimilarity, cfg.Fitness.Kind)

	ttl, err := cfg.StoreTTL()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, ttl)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad evaporation", "evaporation: 1.5", "evaporation"},
		{"bad selection", "selection: greedy", "greedy"},
		{"zero pheromone base", "pheromone_base: 0", "pheromone base"},
		{"negative pheromone base", "selection: classic\npheromone_base: -1", "pheromone base"},
		{"bad timeout", "oracle_timeout: soon", "oracle timeout"},
		{"missing reference", "fitness: {kind: similarity}", "reference"},
		{"redis without address", "store: {kind: redis}", "address"},
		{"unknown store", "store: {kind: s3}", "s3"},
		{"broken yaml", "ants: [", "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, "flowant.yaml", tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
