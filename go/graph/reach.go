package graph

// This file enumerates every simple path between two nodes by
// depth-first search with backtracking.

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

// A PathEnumerator collects the simple paths found by Reachability.
// Results accumulate across calls until Reset.
//
// The enumerator never mutates the graph, so distinct enumerators may
// query the same graph concurrently as long as nobody adds edges.
type PathEnumerator struct {
	path    []NodeID       // current DFS prefix
	visited map[*Node]bool // nodes on path; kept in lockstep with path
	paths   map[string]struct{}
}

func NewPathEnumerator() *PathEnumerator {
	return &PathEnumerator{
		visited: make(map[*Node]bool),
		paths:   make(map[string]struct{}),
	}
}

// Reachability adds to the result set every simple path from src to dst,
// formatted as "START->1->2->END". A query with src == dst yields the
// single path through src alone.
//
// Edge kinds are ignored. Worst-case cost is exponential in the size of
// the graph.
func (e *PathEnumerator) Reachability(src, dst *Node) {
	e.path = append(e.path, src.id)
	e.visited[src] = true
	defer e.pop(src)

	if src == dst {
		e.paths[formatPath(e.path)] = struct{}{}
		return
	}
	for _, edge := range src.out {
		if !e.visited[edge.dst] {
			e.Reachability(edge.dst, dst)
		}
	}
}

func (e *PathEnumerator) pop(n *Node) {
	e.path = e.path[:len(e.path)-1]
	delete(e.visited, n)
}

// Paths returns the accumulated paths in lexical order.
func (e *PathEnumerator) Paths() []string {
	paths := make([]string, 0, len(e.paths))
	for p := range e.paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Has reports whether path has been found.
func (e *PathEnumerator) Has(path string) bool {
	_, ok := e.paths[path]
	return ok
}

func (e *PathEnumerator) Len() int { return len(e.paths) }

// Reset discards the accumulated paths.
func (e *PathEnumerator) Reset() {
	e.paths = make(map[string]struct{})
}

func formatPath(ids []NodeID) string {
	var sb strings.Builder
	sb.WriteString("START->")
	for _, id := range ids {
		sb.WriteString(strconv.Itoa(int(id)))
		sb.WriteString("->")
	}
	sb.WriteString("END")
	return sb.String()
}

// Reachability enumerates the simple paths from src to dst on a fresh
// PathEnumerator and returns them in lexical order.
func (g *Graph) Reachability(src, dst NodeID) ([]string, error) {
	s, err := g.GetNode(src)
	if err != nil {
		return nil, xerrors.Errorf("reachability source: %w", err)
	}
	d, err := g.GetNode(dst)
	if err != nil {
		return nil, xerrors.Errorf("reachability destination: %w", err)
	}
	e := NewPathEnumerator()
	e.Reachability(s, d)
	return e.Paths(), nil
}
