package domain_test

import (
	"context"
	"testing"

	"github.com/aretw0/flowant/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestMergeHooks(t *testing.T) {
	var calls []string
	first := domain.LifecycleHooks{
		OnIterationStart: func(context.Context, *domain.IterationEvent) { calls = append(calls, "first") },
	}
	second := domain.LifecycleHooks{
		OnIterationStart: func(context.Context, *domain.IterationEvent) { calls = append(calls, "second") },
		OnBestImproved:   func(context.Context, *domain.AntEvent) { calls = append(calls, "best") },
	}

	merged := domain.MergeHooks(first, domain.LifecycleHooks{}, second)

	merged.OnIterationStart(context.Background(), &domain.IterationEvent{})
	merged.OnBestImproved(context.Background(), &domain.AntEvent{})

	assert.Equal(t, []string{"first", "second", "best"}, calls)
	assert.Nil(t, merged.OnAntEvaluated)
	assert.Nil(t, merged.OnIterationEnd)
}
