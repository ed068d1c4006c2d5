package graphfile

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/april1989/origin-graph-tools/go/graph"
	"golang.org/x/xerrors"
)

// Expectations are the results a graph file promises, written as comments:
//
//	# @pointsto 3 = 1 2
//	# @path START->1->3->END
//
// An empty right-hand side ("# @pointsto 5 =") expects an empty set.
type Expectations struct {
	PointsTo map[graph.NodeID][]graph.NodeID
	Paths    []string
}

// ReadExpectations scans r for @pointsto and @path comments.
func ReadExpectations(r io.Reader) (*Expectations, error) {
	exp := &Expectations{PointsTo: make(map[graph.NodeID][]graph.NodeID)}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(text, "#") {
			continue
		}
		text = strings.TrimSpace(strings.TrimPrefix(text, "#"))
		if t := strings.TrimPrefix(text, "@path "); t != text {
			exp.Paths = append(exp.Paths, strings.TrimSpace(t))
			continue
		}
		if t := strings.TrimPrefix(text, "@pointsto "); t != text {
			sets := strings.SplitN(t, "=", 2)
			if len(sets) != 2 {
				return nil, xerrors.Errorf("line %d: want \"@pointsto n = o...\"", line)
			}
			lhs, err := strconv.Atoi(strings.TrimSpace(sets[0]))
			if err != nil {
				return nil, xerrors.Errorf("line %d: %w", line, err)
			}
			ids := []graph.NodeID{}
			for _, f := range strings.Fields(sets[1]) {
				o, err := strconv.Atoi(f)
				if err != nil {
					return nil, xerrors.Errorf("line %d: %w", line, err)
				}
				ids = append(ids, graph.NodeID(o))
			}
			exp.PointsTo[graph.NodeID(lhs)] = ids
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return exp, nil
}
