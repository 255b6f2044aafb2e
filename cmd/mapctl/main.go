// Command mapctl inspects and edits map files without opening the editor.
//
//	mapctl info level.json
//	mapctl new -width 40 -height 20 level.yaml
//	mapctl resize -width 64 -height 32 -o bigger.json level.json
//	mapctl shift -dir left -wrap level.json
//	mapctl run fill.tengo level.json
//	mapctl convert level.json level.yaml
//	mapctl catalog -dir assets/tilesets -o tilesets.yaml
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/milk9111/tiledit/logger"
)

type command struct {
	usage string
	run   func(args []string, out io.Writer) error
}

var commands = map[string]command{
	"info":    {usage: "info MAP", run: cmdInfo},
	"new":     {usage: "new [-width W] [-height H] [-layers N] MAP", run: cmdNew},
	"resize":  {usage: "resize [-width W] [-height H] [-layers N] [-o OUT] MAP", run: cmdResize},
	"shift":   {usage: "shift -dir left|right|up|down [-n COUNT] [-wrap] [-layer L] [-o OUT] MAP", run: cmdShift},
	"run":     {usage: "run [-timeout D] [-o OUT] SCRIPT MAP", run: cmdRun},
	"convert": {usage: "convert IN OUT", run: cmdConvert},
	"catalog": {usage: "catalog -dir DIR [-o FILE]", run: cmdCatalog},
}

var errUsage = errors.New("usage")

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: mapctl [-v] COMMAND [ARGS]")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  mapctl %s\n", commands[name].usage)
	}
}

// run dispatches one command line.
func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	return cmd.run(args[1:], out)
}

func main() {
	verbose := flag.Bool("v", false, "Log debug output to stderr")
	flag.Usage = func() { usage(os.Stderr) }
	flag.Parse()

	level := "warn"
	if *verbose {
		level = "debug"
	}
	if err := logger.InitWithFileConfig(level, logger.FileConfig{}, true); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(flag.Args(), os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			if err != errUsage {
				fmt.Fprintln(os.Stderr, err)
			}
			usage(os.Stderr)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "mapctl:", err)
		os.Exit(1)
	}
}
