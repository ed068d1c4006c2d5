package graphfile

/*
	input is a graph .yml file -> nodes, edges and reachability queries

	nodes: [1, 2, 3]                  # optional; edge endpoints are created on demand
	edges:
	  - {src: 1, dst: 2}              # untyped edge, for reachability
	  - {src: 4, dst: 1, kind: addr}  # constraint edge: addr, copy, load or store
	queries:
	  - {src: 1, dst: 3}
*/

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/april1989/origin-graph-tools/go/graph"
	"github.com/april1989/origin-graph-tools/go/pointer"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"
)

type File struct {
	Nodes   []int   `yaml:"nodes"`
	Edges   []Edge  `yaml:"edges"`
	Queries []Query `yaml:"queries"`
}

type Edge struct {
	Src  int    `yaml:"src"`
	Dst  int    `yaml:"dst"`
	Kind string `yaml:"kind,omitempty"`
}

type Query struct {
	Src int `yaml:"src"`
	Dst int `yaml:"dst"`
}

// Decode reads a graph description.
func Decode(r io.Reader) (*File, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, xerrors.Errorf("read graph: %w", err)
	}
	f := &File{}
	if err := yaml.UnmarshalStrict(data, f); err != nil {
		return nil, xerrors.Errorf("yml decode: %w", err)
	}
	return f, nil
}

// Load decodes the graph description at path.
func Load(path string) (*File, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	f, err := Decode(fd)
	if err != nil {
		return nil, xerrors.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Graph builds the reachability graph. Edge kinds are kept when they name
// a constraint kind and are otherwise rejected; an empty kind is Untyped.
func (f *File) Graph() (*graph.Graph, error) {
	g := graph.New()
	if err := f.populate(g, false); err != nil {
		return nil, err
	}
	return g, nil
}

// CGraph builds the constraint graph. Every edge must carry a kind.
func (f *File) CGraph() (*pointer.CGraph, error) {
	cg := pointer.NewCGraph()
	if err := f.populate(cg.Graph(), true); err != nil {
		return nil, err
	}
	return cg, nil
}

func (f *File) populate(g *graph.Graph, needKind bool) error {
	for _, id := range f.Nodes {
		if _, err := g.AddNode(graph.NodeID(id)); err != nil {
			return err
		}
	}
	for i, e := range f.Edges {
		kind := graph.Untyped
		if e.Kind != "" {
			k, err := pointer.ParseKind(e.Kind)
			if err != nil {
				return xerrors.Errorf("edge #%d: %w", i, err)
			}
			kind = k
		} else if needKind {
			return xerrors.Errorf("edge #%d (%d -> %d): missing kind", i, e.Src, e.Dst)
		}
		src, err := ensureNode(g, graph.NodeID(e.Src))
		if err != nil {
			return xerrors.Errorf("edge #%d: %w", i, err)
		}
		dst, err := ensureNode(g, graph.NodeID(e.Dst))
		if err != nil {
			return xerrors.Errorf("edge #%d: %w", i, err)
		}
		g.AddEdge(src, dst, kind)
	}
	for i, q := range f.Queries {
		if !g.HasNode(graph.NodeID(q.Src)) || !g.HasNode(graph.NodeID(q.Dst)) {
			return xerrors.Errorf("query #%d (%d -> %d): %w", i, q.Src, q.Dst, graph.ErrNodeNotFound)
		}
	}
	return nil
}

// ensureNode returns node id, creating it if the graph lacks it.
func ensureNode(g *graph.Graph, id graph.NodeID) (*graph.Node, error) {
	if g.HasNode(id) {
		return g.GetNode(id)
	}
	return g.AddNode(id)
}
