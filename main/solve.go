package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/april1989/origin-graph-tools/flags"
	"github.com/april1989/origin-graph-tools/go/graph"
	"github.com/april1989/origin-graph-tools/go/pointer"
	"github.com/april1989/origin-graph-tools/graphfile"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"golang.org/x/xerrors"
)

var solveCommand = cli.Command{
	Name:      "solve",
	Usage:     "solve the points-to constraints of FILE and print the points-to sets",
	ArgsUsage: "FILE",
	Flags: []cli.Flag{
		cli.IntSliceFlag{Name: "query, q", Usage: "Only print pts(`ID`); repeatable."},
	},
	Action: runSolve,
}

var statsCommand = cli.Command{
	Name:      "stats",
	Usage:     "print edge counts per kind and the COPY cycles of FILE",
	ArgsUsage: "FILE",
	Flags: []cli.Flag{
		cli.BoolFlag{Name: "solve", Usage: "Solve first, so derived COPY edges are counted."},
	},
	Action: runStats,
}

func loadCGraph(c *cli.Context) (*pointer.CGraph, error) {
	path, err := graphArg(c)
	if err != nil {
		return nil, err
	}
	f, err := graphfile.Load(path)
	if err != nil {
		return nil, err
	}
	cg, err := f.CGraph()
	if err != nil {
		return nil, xerrors.Errorf("%s: %w", path, err)
	}
	return cg, nil
}

func runSolve(c *cli.Context) error {
	flags.ParseFlags(c)
	cg, err := loadCGraph(c)
	if err != nil {
		return err
	}

	config := &pointer.Config{
		Graph:         cg,
		DoPerformance: flags.DoPerformance,
	}
	if flags.DoLog {
		logfile, err := os.Create(flags.LogFile)
		if err != nil {
			return xerrors.Errorf("solver log: %w", err)
		}
		defer logfile.Close()
		config.Log = logfile
	}
	for _, id := range c.IntSlice("query") {
		config.AddQuery(graph.NodeID(id))
	}

	result, err := pointer.Analyze(config)
	if err != nil {
		return err
	}

	w := c.App.Writer
	if len(config.Queries) == 0 {
		result.Dump(w)
	} else {
		ids := make([]graph.NodeID, 0, len(result.Queries))
		for id := range result.Queries {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for _, id := range ids {
			p := result.Queries[id]
			fmt.Fprintf(w, "pts(%s) = %s\n", au.Magenta(p), p.PointsTo())
		}
	}

	if derived := cg.DerivedEdges(); len(derived) > 0 {
		fmt.Fprintf(w, "%s\n", au.Bold(fmt.Sprintf("derived %d COPY edges:", len(derived))))
		for _, e := range derived {
			fmt.Fprintf(w, "  %s\n", pointer.EdgeString(e))
		}
	}
	return nil
}

func runStats(c *cli.Context) error {
	flags.ParseFlags(c)
	cg, err := loadCGraph(c)
	if err != nil {
		return err
	}
	if c.Bool("solve") {
		if err := cg.SolveWorklist(); err != nil {
			return err
		}
		log.Debugf("stats: solved in %d steps", cg.Stats().Pops)
	}

	w := c.App.Writer
	counts := pointer.KindCounts(cg)
	fmt.Fprintf(w, "nodes: %d\nedges: %d\n", cg.Graph().NumNodes(), cg.Graph().NumEdges())
	for _, k := range []graph.Kind{pointer.AddrEdge, pointer.CopyEdge, pointer.LoadEdge, pointer.StoreEdge} {
		fmt.Fprintf(w, "  %-5s %d\n", pointer.KindString(k), counts[k])
	}

	cycles := pointer.CopyCycles(cg)
	fmt.Fprintf(w, "copy cycles: %d\n", len(cycles))
	for _, cyc := range cycles {
		fmt.Fprintf(w, "  %s\n", au.Yellow(fmt.Sprint(cyc)))
	}
	return nil
}
