package main

import (
	"fmt"
	"os"

	"github.com/april1989/origin-graph-tools/flags"
	"github.com/logrusorgru/aurora"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var au aurora.Aurora = aurora.NewAurora(true)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "origin-graph"
	app.Usage = "enumerate simple paths and solve points-to constraints on a graph file"
	app.Flags = flags.Global()
	app.Before = func(c *cli.Context) error {
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
		})
		flags.ParseFlags(c)
		if flags.Debug {
			log.SetLevel(log.DebugLevel)
		}
		if flags.NoColor {
			au = aurora.NewAurora(false)
		}
		return nil
	}
	app.Commands = []cli.Command{
		reachCommand,
		solveCommand,
		statsCommand,
	}
	return app
}

// graphArg returns the single FILE argument of a command.
func graphArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", cli.NewExitError(fmt.Sprintf("%s: expected exactly one graph file", c.Command.Name), 2)
	}
	return c.Args().First(), nil
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
