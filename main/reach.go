package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/april1989/origin-graph-tools/flags"
	"github.com/april1989/origin-graph-tools/go/graph"
	"github.com/april1989/origin-graph-tools/graphfile"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

var reachCommand = cli.Command{
	Name:      "reach",
	Usage:     "print every simple path of each src:dst query",
	ArgsUsage: "FILE",
	Flags: []cli.Flag{
		cli.StringSliceFlag{Name: "query, q", Usage: "Add the query `SRC:DST` to those of the file; repeat with one spelling, -q or --query."},
		cli.BoolFlag{Name: "parallel", Usage: "Run the queries in parallel, one enumerator each."},
	},
	Action: runReach,
}

type query struct {
	src, dst graph.NodeID
}

func (q query) String() string {
	return fmt.Sprintf("n%d -> n%d", q.src, q.dst)
}

func parseQuery(s string) (query, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return query{}, xerrors.Errorf("query %q: want SRC:DST", s)
	}
	src, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return query{}, xerrors.Errorf("query %q: %w", s, err)
	}
	dst, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return query{}, xerrors.Errorf("query %q: %w", s, err)
	}
	return query{graph.NodeID(src), graph.NodeID(dst)}, nil
}

func runReach(c *cli.Context) error {
	flags.ParseFlags(c)
	path, err := graphArg(c)
	if err != nil {
		return err
	}
	f, err := graphfile.Load(path)
	if err != nil {
		return err
	}
	g, err := f.Graph()
	if err != nil {
		return xerrors.Errorf("%s: %w", path, err)
	}

	var queries []query
	for _, q := range f.Queries {
		queries = append(queries, query{graph.NodeID(q.Src), graph.NodeID(q.Dst)})
	}
	for _, s := range c.StringSlice("query") {
		q, err := parseQuery(s)
		if err != nil {
			return err
		}
		queries = append(queries, q)
	}
	if len(queries) == 0 {
		return cli.NewExitError("reach: no queries in file or on the command line", 2)
	}
	log.Debugf("reach: %d nodes, %d edges, %d queries", g.NumNodes(), g.NumEdges(), len(queries))

	results, err := reachAll(context.Background(), g, queries, flags.DoParallel)
	if err != nil {
		return err
	}
	w := c.App.Writer
	for i, q := range queries {
		fmt.Fprintf(w, "%s: %d paths\n", au.Bold(q), au.Cyan(len(results[i])))
		for _, p := range results[i] {
			fmt.Fprintf(w, "  %s\n", au.Green(p))
		}
	}
	return nil
}

// reachAll answers every query on its own PathEnumerator. The graph is
// only read, so with parallel set the queries share it across goroutines.
func reachAll(ctx context.Context, g *graph.Graph, queries []query, parallel bool) ([][]string, error) {
	results := make([][]string, len(queries))
	if !parallel {
		for i, q := range queries {
			paths, err := g.Reachability(q.src, q.dst)
			if err != nil {
				return nil, xerrors.Errorf("query %s: %w", q, err)
			}
			results[i] = paths
		}
		return results, nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		i, q := i, q
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			paths, err := g.Reachability(q.src, q.dst)
			if err != nil {
				return xerrors.Errorf("query %s: %w", q, err)
			}
			results[i] = paths
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
