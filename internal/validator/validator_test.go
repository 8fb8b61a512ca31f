package validator

import (
	"errors"
	"testing"

	"github.com/aretw0/flowant/internal/actionspace"
	"github.com/aretw0/flowant/pkg/domain"
	"github.com/aretw0/flowant/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGraph(t *testing.T) {
	// start -> a -> b (end), orphan unreachable
	g, err := dsl.New("start").
		Add("start").Go("a", "next").
		Add("a").Go("b", "").
		Add("b").Terminal().
		Add("orphan").Go("start", "restart").
		Build()
	require.NoError(t, err)

	assert.NoError(t, ValidateGraph(g))

	report := Inspect(g)
	assert.Equal(t, "start", report.Root)
	assert.Equal(t, 4, report.Nodes)
	assert.Equal(t, 3, report.Edges)
	assert.Equal(t, []string{"orphan"}, report.Unreachable)
	assert.Equal(t, []string{"b"}, report.DeadEnds)
	assert.Equal(t, 4, report.ActionSpace.Total())
	assert.False(t, report.HasErrors())
	assert.Equal(t, []Issue{
		{Severity: SeverityWarning, NodeID: "orphan", Message: "unreachable from root"},
		{Severity: SeverityWarning, NodeID: "a", Message: "transition to b has no label"},
	}, report.Issues)
}

func TestValidateGraph_EmptyActionSpace(t *testing.T) {
	err := ValidateGraph(domain.NewGraph("alone"))
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Issues, 1)
	assert.Equal(t, "alone", verr.Issues[0].NodeID)
	assert.Contains(t, err.Error(), "found 1 errors")
}

func TestValidateGraph_EmptyGraph(t *testing.T) {
	report := Inspect(domain.EmptyGraph())
	assert.True(t, report.HasErrors())
	assert.Error(t, ValidateGraph(domain.EmptyGraph()))
}

func TestInspect_UsesBuilderOptions(t *testing.T) {
	g, err := dsl.New("a").
		Add("a").Go("b", "next").
		Add("b").Go("c", "next").
		Add("c").Terminal().
		Build()
	require.NoError(t, err)

	assert.Equal(t, 0, Inspect(g).ActionSpace.AddEdge)
	assert.Equal(t, 1, Inspect(g, actionspace.WithDistanceThreshold(3)).ActionSpace.AddEdge)
}
