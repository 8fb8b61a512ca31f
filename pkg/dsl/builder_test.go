package dsl

import (
	"context"
	"testing"

	"github.com/aretw0/flowant/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_SimpleFlow(t *testing.T) {
	b := New("start")

	b.Add("start").
		Text("Hello!").
		Go("ask", "continue")

	b.Add("ask").
		Text("What do you need?").
		Go("end", "nothing").
		Go("start", "이전 단계로")

	b.Add("end").
		Text("Goodbye!").
		Terminal()

	g, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "start", g.Root())
	assert.Equal(t, []string{"start", "ask", "end"}, g.Nodes())
	assert.Equal(t, "What do you need?", g.Label("ask"))
	assert.Equal(t, []domain.Edge{
		{From: "start", To: "ask", Label: "continue"},
		{From: "ask", To: "end", Label: "nothing"},
		{From: "ask", To: "start", Label: "이전 단계로"},
	}, g.Edges())
}

func TestBuilder_RootDeclaredLater(t *testing.T) {
	g, err := New("b").
		Add("a").Go("b", "x").
		Add("b").Go("a", "y").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "b", g.Root())
	assert.Equal(t, []string{"b", "a"}, g.Nodes())
}

func TestBuilder_GoReplacesLabel(t *testing.T) {
	g, err := New("a").
		Add("a").Go("b", "first").Go("b", "second").
		Add("b").
		Build()
	require.NoError(t, err)

	label, ok := g.EdgeLabel("a", "b")
	require.True(t, ok)
	assert.Equal(t, "second", label)
	assert.Equal(t, 1, g.NumEdges())
}

func TestBuilder_Errors(t *testing.T) {
	_, err := New("missing").Add("a").Build()
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = New("a").Add("a").Go("ghost", "boo").Build()
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBuilder_Loader(t *testing.T) {
	loader, err := New("a").Add("a").Go("b", "x").Add("b").Loader()
	require.NoError(t, err)

	g, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, g.HasEdge("a", "b"))
}
