package graph

import (
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

const propNodes = 6

// randomGraph decodes each code c into the edge c/propNodes -> c%propNodes
// over the nodes 0..propNodes-1.
func randomGraph(codes []int) *Graph {
	g := New()
	for i := 0; i < propNodes; i++ {
		g.NewNode()
	}
	for _, c := range codes {
		g.AddEdgeByID(NodeID(c/propNodes), NodeID(c%propNodes), Untyped)
	}
	return g
}

// allSimplePaths grows partial paths breadth first; it shares no code
// with PathEnumerator.
func allSimplePaths(src, dst *Node) map[string]bool {
	found := make(map[string]bool)
	queue := [][]*Node{{src}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		last := p[len(p)-1]
		if last == dst {
			parts := []string{"START"}
			for _, n := range p {
				parts = append(parts, strconv.Itoa(int(n.ID())))
			}
			found[strings.Join(append(parts, "END"), "->")] = true
			continue
		}
	next:
		for _, e := range last.OutEdges() {
			for _, n := range p {
				if n == e.Dst() {
					continue next
				}
			}
			ext := append(append([]*Node{}, p...), e.Dst())
			queue = append(queue, ext)
		}
	}
	return found
}

func TestReachabilityProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	edgeCodes := gen.SliceOf(gen.IntRange(0, propNodes*propNodes-1))
	nodeID := gen.IntRange(0, propNodes-1)

	properties.Property("every path is simple and follows edges", prop.ForAll(
		func(codes []int, src, dst int) bool {
			g := randomGraph(codes)
			s, _ := g.GetNode(NodeID(src))
			d, _ := g.GetNode(NodeID(dst))
			e := NewPathEnumerator()
			e.Reachability(s, d)
			for _, p := range e.Paths() {
				fields := strings.Split(p, "->")
				if fields[0] != "START" || fields[len(fields)-1] != "END" {
					return false
				}
				ids := fields[1 : len(fields)-1]
				seen := make(map[string]bool)
				for i, id := range ids {
					if seen[id] {
						return false
					}
					seen[id] = true
					if i == 0 {
						continue
					}
					a, _ := strconv.Atoi(ids[i-1])
					b, _ := strconv.Atoi(id)
					an, _ := g.GetNode(NodeID(a))
					bn, _ := g.GetNode(NodeID(b))
					if !g.HasEdge(an, bn, Untyped) {
						return false
					}
				}
				if ids[0] != strconv.Itoa(src) || ids[len(ids)-1] != strconv.Itoa(dst) {
					return false
				}
			}
			return true
		},
		edgeCodes, nodeID, nodeID,
	))

	properties.Property("every simple path is found exactly once", prop.ForAll(
		func(codes []int, src, dst int) bool {
			g := randomGraph(codes)
			s, _ := g.GetNode(NodeID(src))
			d, _ := g.GetNode(NodeID(dst))
			e := NewPathEnumerator()
			e.Reachability(s, d)
			want := allSimplePaths(s, d)
			if e.Len() != len(want) {
				return false
			}
			for p := range want {
				if !e.Has(p) {
					return false
				}
			}
			return len(e.path) == 0 && len(e.visited) == 0
		},
		edgeCodes, nodeID, nodeID,
	))

	properties.Property("a self query yields the single-node path", prop.ForAll(
		func(codes []int, n int) bool {
			g := randomGraph(codes)
			x, _ := g.GetNode(NodeID(n))
			e := NewPathEnumerator()
			e.Reachability(x, x)
			paths := e.Paths()
			return len(paths) == 1 && paths[0] == "START->"+strconv.Itoa(n)+"->END"
		},
		edgeCodes, nodeID,
	))

	properties.TestingRun(t)
}
