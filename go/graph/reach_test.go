package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

func node(t *testing.T, g *Graph, id NodeID) *Node {
	t.Helper()
	n, err := g.GetNode(id)
	require.NoError(t, err)
	return n
}

func TestReachability(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		edges    [][2]int
		src, dst NodeID
		want     []string
	}{
		{
			name:  "two routes",
			n:     3,
			edges: [][2]int{{1, 2}, {2, 3}, {1, 3}},
			src:   1,
			dst:   3,
			want:  []string{"START->1->2->3->END", "START->1->3->END"},
		},
		{
			name:  "self query",
			n:     2,
			edges: [][2]int{{1, 2}, {2, 1}},
			src:   1,
			dst:   1,
			want:  []string{"START->1->END"},
		},
		{
			name:  "unreachable",
			n:     3,
			edges: [][2]int{{1, 2}, {3, 1}},
			src:   1,
			dst:   3,
			want:  []string{},
		},
		{
			name:  "self loop and cycle",
			n:     4,
			edges: [][2]int{{1, 1}, {1, 2}, {2, 3}, {3, 1}, {3, 4}, {2, 4}},
			src:   1,
			dst:   4,
			want:  []string{"START->1->2->3->4->END", "START->1->2->4->END"},
		},
		{
			name:  "target is not expanded",
			n:     3,
			edges: [][2]int{{1, 2}, {2, 3}, {3, 2}},
			src:   1,
			dst:   2,
			want:  []string{"START->1->2->END"},
		},
		{
			name:  "diamonds",
			n:     5,
			edges: [][2]int{{1, 2}, {1, 3}, {2, 4}, {3, 4}, {4, 5}, {2, 5}},
			src:   1,
			dst:   5,
			want:  []string{"START->1->2->4->5->END", "START->1->2->5->END", "START->1->3->4->5->END"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, tt.n, tt.edges)
			e := NewPathEnumerator()
			e.Reachability(node(t, g, tt.src), node(t, g, tt.dst))
			assert.Equal(t, tt.want, e.Paths())
			assert.Empty(t, e.path, "path prefix restored")
			assert.Empty(t, e.visited, "visited set restored")
		})
	}
}

func TestReachabilityAccumulates(t *testing.T) {
	g := build(t, 4, [][2]int{{1, 2}, {2, 3}, {1, 3}, {3, 4}})
	e := NewPathEnumerator()
	e.Reachability(node(t, g, 1), node(t, g, 3))
	require.Equal(t, 2, e.Len())

	e.Reachability(node(t, g, 3), node(t, g, 4))
	assert.Equal(t, 3, e.Len())
	assert.True(t, e.Has("START->3->4->END"))

	// Repeating a query adds nothing new.
	e.Reachability(node(t, g, 1), node(t, g, 3))
	assert.Equal(t, 3, e.Len())

	e.Reset()
	assert.Equal(t, 0, e.Len())
	assert.Empty(t, e.Paths())
}

func TestReachabilityIgnoresKind(t *testing.T) {
	g := build(t, 3, nil)
	g.AddEdge(node(t, g, 1), node(t, g, 2), 3)
	g.AddEdge(node(t, g, 1), node(t, g, 2), 4)
	g.AddEdge(node(t, g, 2), node(t, g, 3), 1)

	paths, err := g.Reachability(1, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"START->1->2->3->END"}, paths)
}

func TestGraphReachabilityMissingNode(t *testing.T) {
	g := build(t, 2, [][2]int{{1, 2}})
	_, err := g.Reachability(1, 9)
	assert.True(t, xerrors.Is(err, ErrNodeNotFound))
	_, err = g.Reachability(9, 1)
	assert.True(t, xerrors.Is(err, ErrNodeNotFound))
}

func TestReachabilityCompleteGraph(t *testing.T) {
	// In the complete digraph on n nodes the simple paths from a to b
	// number sum_{k=0}^{n-2} (n-2)!/(n-2-k)!.
	const n = 6
	var edges [][2]int
	for i := 1; i <= n; i++ {
		for j := 1; j <= n; j++ {
			if i != j {
				edges = append(edges, [2]int{i, j})
			}
		}
	}
	g := build(t, n, edges)
	paths, err := g.Reachability(1, n)
	require.NoError(t, err)

	want := 0
	perm := 1
	for k := 0; k <= n-2; k++ {
		want += perm
		perm *= n - 2 - k
	}
	assert.Len(t, paths, want)
	for _, p := range paths {
		assert.True(t, strings.HasPrefix(p, "START->1->"), p)
		assert.True(t, strings.HasSuffix(p, "->6->END"), p)
	}
}
