// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pointer

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/april1989/origin-graph-tools/go/graph"
	log "github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// A Config formulates a points-to problem for Analyze. It is only usable
// for a single invocation of Analyze and must not be reused.
type Config struct {
	// Graph is the constraint graph to solve. Analyze mutates it in
	// place: points-to sets grow and derived COPY edges are added.
	Graph *CGraph

	// The client populates Queries with the nodes of interest. The
	// analysis populates the corresponding Result.Queries entries.
	Queries map[graph.NodeID]struct{}

	// If Log is non-nil, log messages are written to it.
	// Logging is extremely verbose.
	Log io.Writer

	// DoPerformance reports timing and solver counters through logrus.
	DoPerformance bool
}

// AddQuery adds id to Config.Queries.
func (c *Config) AddQuery(id graph.NodeID) {
	if c.Queries == nil {
		c.Queries = make(map[graph.NodeID]struct{})
	}
	c.Queries[id] = struct{}{}
}

// A Result contains the results of a points-to analysis.
type Result struct {
	Queries map[graph.NodeID]Pointer // pts(n) for each n in Config.Queries
	Stats   Stats
	Elapsed time.Duration

	cg *CGraph
}

// Analyze runs the worklist solver on config.Graph.
func Analyze(config *Config) (*Result, error) {
	if config.Graph == nil {
		return nil, xerrors.New("pointer: no constraint graph")
	}
	cg := config.Graph
	for id := range config.Queries {
		if !cg.g.HasNode(id) {
			return nil, xerrors.Errorf("pointer: query n%d: %w", id, graph.ErrNodeNotFound)
		}
	}

	cg.SetLog(config.Log)
	defer cg.SetLog(nil)

	start := time.Now()
	if err := cg.SolveWorklist(); err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	result := &Result{
		Queries: make(map[graph.NodeID]Pointer, len(config.Queries)),
		Stats:   cg.Stats(),
		Elapsed: elapsed,
		cg:      cg,
	}
	for id := range config.Queries {
		result.Queries[id] = Pointer{cg, id}
	}

	if config.DoPerformance {
		log.WithFields(log.Fields{
			"nodes":   cg.g.NumNodes(),
			"edges":   result.Stats.FinalEdges,
			"derived": result.Stats.NewCopyEdges,
			"steps":   result.Stats.Pops,
		}).Infof("Done  -- PTA solved in %s", elapsed)
	}
	return result, nil
}

// Pointer returns the pointer for node id.
func (r *Result) Pointer(id graph.NodeID) (Pointer, error) {
	if !r.cg.g.HasNode(id) {
		return Pointer{}, xerrors.Errorf("n%d: %w", id, graph.ErrNodeNotFound)
	}
	return Pointer{r.cg, id}, nil
}

// Dump writes "pts(nX) = [...]" for every node with a non-empty
// points-to set, in id order.
func (r *Result) Dump(w io.Writer) {
	ids := make([]graph.NodeID, 0, len(r.cg.pts))
	for id, ns := range r.cg.pts {
		if !ns.IsEmpty() {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		fmt.Fprintf(w, "pts(n%d) = %s\n", id, PointsToSet{r.cg.pts[id]})
	}
}

// A Pointer is a variable node of a solved constraint graph.
type Pointer struct {
	cg *CGraph
	n  graph.NodeID
}

func (p Pointer) String() string {
	return fmt.Sprintf("n%d", p.n)
}

func (p Pointer) ID() graph.NodeID { return p.n }

// PointsTo returns the points-to set of this pointer.
func (p Pointer) PointsTo() PointsToSet {
	if p.cg == nil {
		return PointsToSet{}
	}
	return PointsToSet{p.cg.pts[p.n]}
}

// MayAlias reports whether the receiver pointer may alias
// the argument pointer.
func (p Pointer) MayAlias(q Pointer) bool {
	return p.PointsTo().Intersects(q.PointsTo())
}

// A PointsToSet is a set of object nodes.
type PointsToSet struct {
	pts *nodeset // may be nil
}

func (s PointsToSet) String() string {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, id := range s.IDs() {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "n%d", id)
	}
	buf.WriteByte(']')
	return buf.String()
}

// IDs returns the members in increasing order.
func (s PointsToSet) IDs() []graph.NodeID {
	if s.pts == nil {
		return nil
	}
	return s.pts.ids()
}

func (s PointsToSet) Has(id graph.NodeID) bool {
	return s.pts != nil && s.pts.Has(int(id))
}

func (s PointsToSet) Len() int {
	if s.pts == nil {
		return 0
	}
	return s.pts.Len()
}

// Intersects reports whether this points-to set and the
// argument points-to set contain common members.
func (s PointsToSet) Intersects(y PointsToSet) bool {
	if s.pts == nil || y.pts == nil {
		return false
	}
	return s.pts.Intersects(&y.pts.Sparse)
}
