package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

// build returns a graph with nodes 1..n and the given untyped edges.
func build(t *testing.T, n int, edges [][2]int) *Graph {
	t.Helper()
	g := New()
	for i := 1; i <= n; i++ {
		_, err := g.AddNode(NodeID(i))
		require.NoError(t, err)
	}
	for _, e := range edges {
		_, err := g.AddEdgeByID(NodeID(e[0]), NodeID(e[1]), Untyped)
		require.NoError(t, err)
	}
	return g
}

func TestAddNode(t *testing.T) {
	g := New()
	n, err := g.AddNode(7)
	require.NoError(t, err)
	assert.Equal(t, NodeID(7), n.ID())
	assert.Equal(t, "n7", n.String())

	_, err = g.AddNode(7)
	assert.True(t, xerrors.Is(err, ErrDuplicateNode), "got %v", err)

	// NewNode continues after the largest id seen.
	assert.Equal(t, NodeID(8), g.NewNode().ID())
	assert.Equal(t, NodeID(9), g.NewNode().ID())
	assert.Equal(t, 3, g.NumNodes())
}

func TestGetNodeMissing(t *testing.T) {
	g := build(t, 2, nil)
	_, err := g.GetNode(3)
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, ErrNodeNotFound))
	assert.Contains(t, err.Error(), "n3")

	_, err = g.AddEdgeByID(1, 42, Untyped)
	assert.True(t, xerrors.Is(err, ErrNodeNotFound))
	assert.Equal(t, 0, g.NumEdges())
}

func TestAddEdgeReportsNew(t *testing.T) {
	g := build(t, 2, nil)
	a, _ := g.GetNode(1)
	b, _ := g.GetNode(2)

	assert.True(t, g.AddEdge(a, b, 1))
	assert.False(t, g.AddEdge(a, b, 1), "same (src, dst, kind) twice")
	assert.True(t, g.AddEdge(a, b, 2), "other kind is another edge")
	assert.True(t, g.AddEdge(b, a, 1), "reverse direction is another edge")

	assert.Equal(t, 3, g.NumEdges())
	assert.Len(t, a.OutEdges(), 2)
	assert.Len(t, a.InEdges(), 1)
	assert.Len(t, b.InEdges(), 2)
	assert.True(t, g.HasEdge(a, b, 2))
	assert.False(t, g.HasEdge(b, a, 2))

	e := a.OutEdges()[0]
	assert.Same(t, a, e.Src())
	assert.Same(t, b, e.Dst())
	assert.Equal(t, Kind(1), e.Kind())
}

func TestNodesOrdered(t *testing.T) {
	g := New()
	for _, id := range []NodeID{5, 1, 3} {
		_, err := g.AddNode(id)
		require.NoError(t, err)
	}
	var ids []NodeID
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID())
	}
	assert.Equal(t, []NodeID{1, 3, 5}, ids)
}

func TestEdgeString(t *testing.T) {
	g := build(t, 2, [][2]int{{1, 2}})
	assert.Equal(t, "n1 -> n2", g.Edges()[0].String())
}
