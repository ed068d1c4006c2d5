package pointer

import (
	"sort"

	"github.com/april1989/origin-graph-tools/go/graph"
	algo "github.com/twmb/algoimpl/go/graph"
)

// CopyCycles returns the strongly connected components of the COPY
// subgraph that contain more than one node. Every node of such a cycle
// ends up with the same points-to set. Each component is sorted and the
// components are ordered by their smallest id.
func CopyCycles(cg *CGraph) [][]graph.NodeID {
	g := algo.New(algo.Directed)
	nodes := make(map[graph.NodeID]algo.Node)
	for _, n := range cg.g.Nodes() {
		an := g.MakeNode()
		*an.Value = n.ID()
		nodes[n.ID()] = an
	}
	for _, e := range cg.g.Edges() {
		if e.Kind() != CopyEdge || e.Src() == e.Dst() {
			continue
		}
		if err := g.MakeEdge(nodes[e.Src().ID()], nodes[e.Dst().ID()]); err != nil {
			panic(err) // both endpoints were made above
		}
	}

	var cycles [][]graph.NodeID
	for _, scc := range g.StronglyConnectedComponents() {
		if len(scc) < 2 {
			continue
		}
		ids := make([]graph.NodeID, len(scc))
		for i, an := range scc {
			ids[i] = (*an.Value).(graph.NodeID)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		cycles = append(cycles, ids)
	}
	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
	return cycles
}

// KindCounts returns the number of edges of each kind.
func KindCounts(cg *CGraph) map[graph.Kind]int {
	counts := make(map[graph.Kind]int)
	for _, e := range cg.g.Edges() {
		counts[e.Kind()]++
	}
	return counts
}
