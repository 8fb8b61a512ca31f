package colony_test

import (
	"testing"

	"github.com/aretw0/flowant/internal/colony"
	"github.com/aretw0/flowant/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestTopFraction_Deposits(t *testing.T) {
	ranked := []domain.Outcome{
		{Ant: 2, Fitness: 0.9},
		{Ant: 0, Fitness: 0.5},
		{Ant: 3, Fitness: 0.1},
		{Ant: 1, Fitness: domain.MinFitness, Failed: true},
	}

	tests := []struct {
		name   string
		policy colony.TopFraction
		want   []float64
	}{
		{"best only", colony.TopFraction{Fraction: 0.1, Normalize: true}, []float64{1, 0, 0, 0}},
		{"half normalized", colony.TopFraction{Fraction: 0.5, Normalize: true}, []float64{1, 0.5, 0, 0}},
		{"all raw", colony.TopFraction{Fraction: 1}, []float64{0.9, 0.5, 0.1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.policy.Deposits(ranked)
			assert.InDeltaSlice(t, tt.want, got, 1e-12)
		})
	}
}

func TestTopFraction_TiesAndFailures(t *testing.T) {
	p := colony.TopFraction{Fraction: 1, Normalize: true}

	assert.Equal(t, []float64{1, 1}, p.Deposits([]domain.Outcome{{Fitness: 0.3}, {Fitness: 0.3}}))
	assert.Equal(t, []float64{0}, p.Deposits([]domain.Outcome{{Fitness: domain.MinFitness, Failed: true}}))
}

func TestTopFraction_Validate(t *testing.T) {
	assert.NoError(t, colony.TopFraction{Fraction: 1}.Validate())
	assert.Error(t, colony.TopFraction{Fraction: 0}.Validate())
	assert.Error(t, colony.TopFraction{Fraction: 1.2}.Validate())
}
