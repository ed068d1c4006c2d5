// Package graph defines the directed graph shared by the reachability
// queries and the points-to solver.
//
// A Graph owns its nodes and edges. Nodes hold their incident edges by
// pointer; an edge is never stored twice. Edges carry an opaque Kind tag:
// plain reachability graphs use Untyped, constraint graphs define their
// own kinds on top of it (see package pointer).
package graph

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/xerrors"
)

var (
	// ErrNodeNotFound is returned when an id does not name a node of the graph.
	ErrNodeNotFound = errors.New("node not found")
	// ErrDuplicateNode is returned by AddNode when the id is already taken.
	ErrDuplicateNode = errors.New("duplicate node")
)

// NodeID identifies a node. IDs are unique and stable for the lifetime of a graph.
type NodeID int

// Kind tags an edge. The zero value is Untyped.
type Kind int

const Untyped Kind = 0

// A Node is a vertex of a Graph.
type Node struct {
	id  NodeID
	out []*Edge
	in  []*Edge
}

func (n *Node) ID() NodeID { return n.id }

// OutEdges returns the edges leaving n, in insertion order.
// The slice is owned by the graph and must not be modified.
func (n *Node) OutEdges() []*Edge { return n.out }

// InEdges returns the edges entering n, in insertion order.
func (n *Node) InEdges() []*Edge { return n.in }

func (n *Node) String() string {
	return fmt.Sprintf("n%d", n.id)
}

// An Edge is a directed connection src -> dst tagged with a kind.
type Edge struct {
	src, dst *Node
	kind     Kind
}

func (e *Edge) Src() *Node { return e.src }
func (e *Edge) Dst() *Node { return e.dst }
func (e *Edge) Kind() Kind { return e.kind }

func (e *Edge) String() string {
	if e.kind == Untyped {
		return fmt.Sprintf("%s -> %s", e.src, e.dst)
	}
	return fmt.Sprintf("%s -%d-> %s", e.src, e.kind, e.dst)
}

type edgeKey struct {
	src, dst NodeID
	kind     Kind
}

// A Graph is a directed multigraph with at most one edge per (src, dst, kind).
// It is not safe for concurrent mutation.
type Graph struct {
	nodes  map[NodeID]*Node
	edges  []*Edge
	index  map[edgeKey]*Edge
	nextID NodeID
}

func New() *Graph {
	return &Graph{
		nodes: make(map[NodeID]*Node),
		index: make(map[edgeKey]*Edge),
	}
}

// AddNode creates the node with the given id.
func (g *Graph) AddNode(id NodeID) (*Node, error) {
	if _, ok := g.nodes[id]; ok {
		return nil, xerrors.Errorf("add n%d: %w", id, ErrDuplicateNode)
	}
	n := &Node{id: id}
	g.nodes[id] = n
	if id >= g.nextID {
		g.nextID = id + 1
	}
	return n, nil
}

// NewNode creates a node with the next unused id.
func (g *Graph) NewNode() *Node {
	n := &Node{id: g.nextID}
	g.nodes[n.id] = n
	g.nextID++
	return n
}

// GetNode returns the node with the given id, or an error wrapping
// ErrNodeNotFound.
func (g *Graph) GetNode(id NodeID) (*Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, xerrors.Errorf("n%d: %w", id, ErrNodeNotFound)
	}
	return n, nil
}

func (g *Graph) HasNode(id NodeID) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns all nodes ordered by id.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].id < nodes[j].id })
	return nodes
}

// Edges returns all edges in insertion order.
// The slice is owned by the graph and grows as edges are added.
func (g *Graph) Edges() []*Edge { return g.edges }

func (g *Graph) NumNodes() int { return len(g.nodes) }
func (g *Graph) NumEdges() int { return len(g.edges) }

// AddEdge inserts src -kind-> dst and reports whether the edge is new.
// Adding an edge that is already present is a no-op returning false.
func (g *Graph) AddEdge(src, dst *Node, kind Kind) bool {
	key := edgeKey{src.id, dst.id, kind}
	if _, ok := g.index[key]; ok {
		return false
	}
	e := &Edge{src: src, dst: dst, kind: kind}
	g.index[key] = e
	g.edges = append(g.edges, e)
	src.out = append(src.out, e)
	dst.in = append(dst.in, e)
	return true
}

// AddEdgeByID is AddEdge for node ids; both nodes must exist.
func (g *Graph) AddEdgeByID(src, dst NodeID, kind Kind) (bool, error) {
	s, err := g.GetNode(src)
	if err != nil {
		return false, xerrors.Errorf("edge source: %w", err)
	}
	d, err := g.GetNode(dst)
	if err != nil {
		return false, xerrors.Errorf("edge destination: %w", err)
	}
	return g.AddEdge(s, d, kind), nil
}

func (g *Graph) HasEdge(src, dst *Node, kind Kind) bool {
	_, ok := g.index[edgeKey{src.id, dst.id, kind}]
	return ok
}
