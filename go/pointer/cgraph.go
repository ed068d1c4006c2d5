// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pointer

// This file defines the constraint graph: a graph.Graph whose edges are
// tagged ADDR, COPY, LOAD or STORE, plus the per-node points-to sets and
// the solver worklist.

import (
	"fmt"
	"io"
	"strings"

	"github.com/april1989/origin-graph-tools/go/graph"
	"golang.org/x/tools/container/intsets"
	"golang.org/x/xerrors"
)

// Constraint edge kinds. An edge src -k-> dst reads as "dst <-k- src":
//
//	o -ADDR->  p   p = &o     pts(p) ⊇ {o}
//	p -COPY->  q   q = p      pts(q) ⊇ pts(p)
//	p -LOAD->  q   q = *p     ∀o ∈ pts(p): o -COPY-> q
//	p -STORE-> q   *q = p     ∀o ∈ pts(q): p -COPY-> o
const (
	AddrEdge graph.Kind = iota + 1
	CopyEdge
	LoadEdge
	StoreEdge
)

var kindNames = map[graph.Kind]string{
	AddrEdge:  "ADDR",
	CopyEdge:  "COPY",
	LoadEdge:  "LOAD",
	StoreEdge: "STORE",
}

// KindString returns the name of a constraint edge kind.
func KindString(k graph.Kind) string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("KIND(%d)", int(k))
}

// ParseKind maps "addr", "copy", "load" or "store" (any case) to its kind.
func ParseKind(s string) (graph.Kind, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return graph.Untyped, xerrors.Errorf("unknown constraint kind %q", s)
}

// EdgeString formats a constraint edge as "n1 -COPY-> n2".
func EdgeString(e *graph.Edge) string {
	return fmt.Sprintf("%s -%s-> %s", e.Src(), KindString(e.Kind()), e.Dst())
}

// nodeset is a set of node ids.
type nodeset struct {
	intsets.Sparse
}

func (ns *nodeset) add(n graph.NodeID) bool {
	return ns.Sparse.Insert(int(n))
}

func (ns *nodeset) addAll(y *nodeset) bool {
	return ns.UnionWith(&y.Sparse)
}

func (ns *nodeset) ids() []graph.NodeID {
	var space [50]int
	elems := ns.AppendTo(space[:0])
	ids := make([]graph.NodeID, len(elems))
	for i, x := range elems {
		ids[i] = graph.NodeID(x)
	}
	return ids
}

// worklist is a FIFO queue of node ids. Duplicates are allowed: a node
// queued twice is processed twice.
type worklist struct {
	items []graph.NodeID
	head  int
}

func (w *worklist) push(id graph.NodeID) {
	w.items = append(w.items, id)
}

func (w *worklist) pop() (graph.NodeID, bool) {
	if w.head == len(w.items) {
		return 0, false
	}
	id := w.items[w.head]
	w.head++
	if w.head == len(w.items) {
		w.items = w.items[:0]
		w.head = 0
	}
	return id, true
}

func (w *worklist) empty() bool { return w.head == len(w.items) }

func (w *worklist) len() int { return len(w.items) - w.head }

// A CGraph is a constraint graph. The solver mutates it in place:
// points-to sets grow and derived COPY edges are added.
type CGraph struct {
	g        *graph.Graph
	pts      map[graph.NodeID]*nodeset
	work     worklist
	derived  []*graph.Edge // COPY edges added by the solver, in insertion order
	log      io.Writer
	stats    Stats
	afterPop func(id graph.NodeID) // test hook, called after each node is processed
}

func NewCGraph() *CGraph {
	return &CGraph{
		g:   graph.New(),
		pts: make(map[graph.NodeID]*nodeset),
	}
}

// Graph returns the underlying graph.
func (cg *CGraph) Graph() *graph.Graph { return cg.g }

func (cg *CGraph) AddNode(id graph.NodeID) (*graph.Node, error) {
	return cg.g.AddNode(id)
}

func (cg *CGraph) NewNode() *graph.Node { return cg.g.NewNode() }

func (cg *CGraph) GetNode(id graph.NodeID) (*graph.Node, error) {
	return cg.g.GetNode(id)
}

// AddEdge inserts src -kind-> dst and reports whether it is new.
func (cg *CGraph) AddEdge(src, dst *graph.Node, kind graph.Kind) bool {
	return cg.g.AddEdge(src, dst, kind)
}

func (cg *CGraph) Edges() []*graph.Edge { return cg.g.Edges() }

// DerivedEdges returns the COPY edges materialised by LOAD and STORE
// rules during solving.
func (cg *CGraph) DerivedEdges() []*graph.Edge { return cg.derived }

func (cg *CGraph) ptsOf(n graph.NodeID) *nodeset {
	ns, ok := cg.pts[n]
	if !ok {
		ns = new(nodeset)
		cg.pts[n] = ns
	}
	return ns
}

// AddPts adds obj to pts(n) and reports whether the set grew.
func (cg *CGraph) AddPts(n, obj *graph.Node) bool {
	return cg.ptsOf(n.ID()).add(obj.ID())
}

// UnionPts adds pts(src) to pts(dst) and reports whether pts(dst) grew.
func (cg *CGraph) UnionPts(dst, src *graph.Node) bool {
	s, ok := cg.pts[src.ID()]
	if !ok || s.IsEmpty() {
		return false
	}
	return cg.ptsOf(dst.ID()).addAll(s)
}

// GetPts returns the ids in pts(n), in increasing order.
func (cg *CGraph) GetPts(n *graph.Node) []graph.NodeID {
	ns, ok := cg.pts[n.ID()]
	if !ok {
		return nil
	}
	return ns.ids()
}

// PointsTo returns a view of pts(n). It reflects later changes.
func (cg *CGraph) PointsTo(n *graph.Node) PointsToSet {
	return PointsToSet{cg.ptsOf(n.ID())}
}

func (cg *CGraph) PushIntoWorklist(id graph.NodeID) { cg.work.push(id) }

// PopFromWorklist removes the oldest queued id; ok is false if the
// worklist is empty.
func (cg *CGraph) PopFromWorklist() (id graph.NodeID, ok bool) { return cg.work.pop() }

func (cg *CGraph) WorklistEmpty() bool { return cg.work.empty() }

// SetLog directs the solver trace to w; nil disables it.
func (cg *CGraph) SetLog(w io.Writer) { cg.log = w }

// Stats returns counters of the last SolveWorklist run.
func (cg *CGraph) Stats() Stats { return cg.stats }
