package flags

import (
	"github.com/urfave/cli"
)

//user
var DoLog = false      //write the verbose solver trace
var LogFile = ""       //where the trace goes; empty -> stderr
var Debug = false      //log.Debug messages
var NoColor = false    //plain terminal output
var DoParallel = false //run the reachability queries of one file in parallel

//my use
var DoPerformance = true //report solver counters and timing

// Global returns the app-level flags.
func Global() []cli.Flag {
	return []cli.Flag{
		cli.BoolFlag{Name: "debug", Usage: "Prints log.Debug messages."},
		cli.StringFlag{Name: "log", Usage: "Write the verbose solver trace to `FILE`."},
		cli.BoolFlag{Name: "no-color", Usage: "Disable colored output."},
		cli.BoolFlag{Name: "no-performance", Usage: "Do not report solver counters and timing."},
	}
}

// ParseFlags analyzes all flags from the app context
func ParseFlags(c *cli.Context) {
	if c.GlobalBool("debug") {
		Debug = true
	}
	if path := c.GlobalString("log"); path != "" {
		DoLog = true
		LogFile = path
	}
	if c.GlobalBool("no-color") {
		NoColor = true
	}
	if c.GlobalBool("no-performance") {
		DoPerformance = false
	}
	if c.Bool("parallel") {
		DoParallel = true
	}
}
