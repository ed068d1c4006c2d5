// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pointer

// This file defines a worklist solver for the inclusion constraints of a
// CGraph. LOAD and STORE rules add COPY edges while the graph is being
// traversed; the solver stops when the worklist runs dry.

import (
	"fmt"

	"github.com/april1989/origin-graph-tools/go/graph"
	log "github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// Stats counts the work done by one SolveWorklist run.
type Stats struct {
	InitialEdges int // edges before solving
	FinalEdges   int // edges after solving
	NewCopyEdges int // COPY edges materialised by LOAD/STORE
	Pops         int // nodes taken from the worklist
}

// SolveWorklist computes the points-to set of every node by propagating
// along the constraint edges until a fixed point:
//
//	o -ADDR->  p   pts(p) = pts(p) ∪ {o}
//	p -COPY->  q   pts(q) = pts(q) ∪ pts(p)
//	p -LOAD->  q   for each o ∈ pts(p): add o -COPY-> q
//	p -STORE-> q   for each o ∈ pts(q): add p -COPY-> o
//
// Edges of any other kind are ignored. Points-to sets and the edge set
// only grow; a node is requeued whenever its set grows or a COPY edge
// leaving it is added.
//
// A queued id or a points-to member that is not a node of the graph
// stops the solver with an error wrapping graph.ErrNodeNotFound; the
// sets computed so far are left in place.
func (cg *CGraph) SolveWorklist() error {
	cg.stats = Stats{InitialEdges: cg.g.NumEdges()}
	if cg.log != nil {
		fmt.Fprintf(cg.log, "\n\n==== Solving constraints\n\n")
	}

	for _, e := range cg.g.Edges() {
		cg.PushIntoWorklist(e.Src().ID())
	}

	for {
		id, ok := cg.PopFromWorklist()
		if !ok {
			break // empty worklist
		}
		n, err := cg.g.GetNode(id)
		if err != nil {
			cg.stats.FinalEdges = cg.g.NumEdges()
			return xerrors.Errorf("pointer: worklist: %w", err)
		}
		cg.stats.Pops++
		if cg.log != nil {
			fmt.Fprintf(cg.log, "\tnode %s\n", n)
		}

		for _, e := range n.OutEdges() {
			if err := cg.solveEdge(n, e); err != nil {
				cg.stats.FinalEdges = cg.g.NumEdges()
				return err
			}
		}

		if cg.log != nil {
			fmt.Fprintf(cg.log, "\t\tpts(%s) = %s\n", n, cg.PointsTo(n))
		}
		if cg.afterPop != nil {
			cg.afterPop(id)
		}
	}

	cg.stats.FinalEdges = cg.g.NumEdges()
	if cg.log != nil {
		fmt.Fprintf(cg.log, "Solver done\n")
	}
	log.Debugf("pointer: solved %d edges (+%d copy) in %d steps",
		cg.stats.InitialEdges, cg.stats.NewCopyEdges, cg.stats.Pops)
	return nil
}

// solveEdge applies the rule of e, an out-edge of n.
func (cg *CGraph) solveEdge(n *graph.Node, e *graph.Edge) error {
	dst := e.Dst()
	switch e.Kind() {
	case AddrEdge:
		if cg.AddPts(dst, n) {
			cg.ptsChanged(dst)
		}

	case CopyEdge:
		if cg.UnionPts(dst, n) {
			cg.ptsChanged(dst)
		}

	case LoadEdge:
		for _, id := range cg.GetPts(n) {
			o, err := cg.objNode(n, id)
			if err != nil {
				return err
			}
			if cg.addCopyEdge(o, dst) {
				cg.PushIntoWorklist(o.ID())
			}
		}

	case StoreEdge:
		for _, id := range cg.GetPts(dst) {
			o, err := cg.objNode(dst, id)
			if err != nil {
				return err
			}
			if cg.addCopyEdge(n, o) {
				cg.PushIntoWorklist(n.ID())
			}
		}

	default:
		// Not a constraint; leave it alone.
	}
	return nil
}

// ptsChanged requeues n and every node whose STORE edge reads pts(n).
func (cg *CGraph) ptsChanged(n *graph.Node) {
	cg.PushIntoWorklist(n.ID())
	for _, e := range n.InEdges() {
		if e.Kind() == StoreEdge {
			cg.PushIntoWorklist(e.Src().ID())
		}
	}
}

func (cg *CGraph) addCopyEdge(src, dst *graph.Node) bool {
	if !cg.g.AddEdge(src, dst, CopyEdge) {
		return false
	}
	cg.derived = append(cg.derived, cg.g.Edges()[cg.g.NumEdges()-1])
	cg.stats.NewCopyEdges++
	if cg.log != nil {
		fmt.Fprintf(cg.log, "\t\tnew edge %s -COPY-> %s\n", src, dst)
	}
	return true
}

// objNode returns the node of id, a member of pts(p).
func (cg *CGraph) objNode(p *graph.Node, id graph.NodeID) (*graph.Node, error) {
	o, err := cg.g.GetNode(id)
	if err != nil {
		return nil, xerrors.Errorf("pointer: pts(%s): %w", p, err)
	}
	return o, nil
}
