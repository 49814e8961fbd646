// Package cli parses the pathviz command line.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/pathviz/maze"
	"github.com/katalvlaran/pathviz/playback"
	"github.com/katalvlaran/pathviz/search"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Command names.
const (
	CommandRun   = "run"
	CommandServe = "serve"
)

// Command is a parsed invocation. Empty selector strings mean "not given";
// the scenario file or the environment then decides.
type Command struct {
	Name      string
	EnvFile   string
	LogLevel  string
	LogFormat string

	// run
	Scenario  string
	Algorithm string
	Maze      string
	Speed     string
	Seed      int64
	Buildings float64
	Animate   bool

	// serve
	Addr string
}

const usage = `
pathviz - grid pathfinding visualizer.

Usage:
  pathviz run   [options]   Run one search and print the grid.
  pathviz serve [options]   Serve the HTTP API.

Options:
`

// Parse processes command-line arguments. It returns the Command, a boolean
// indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Command, bool, error) {
	if len(args) == 0 {
		fmt.Fprint(output, usage)
		return nil, true, nil
	}
	cmd := &Command{Name: args[0]}
	switch cmd.Name {
	case CommandRun, CommandServe:
	case "-h", "-help", "--help", "help":
		fmt.Fprint(output, usage)
		return nil, true, nil
	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q", cmd.Name)}
	}

	flagSet := flag.NewFlagSet("pathviz "+cmd.Name, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, usage)
		flagSet.PrintDefaults()
	}

	flagSet.StringVar(&cmd.EnvFile, "env", "", "Path to a .env file. Defaults to ./.env when present.")
	flagSet.StringVar(&cmd.LogLevel, "log-level", "", "Override the logging level: 'debug', 'info', 'warn', 'error'.")
	flagSet.StringVar(&cmd.LogFormat, "log-format", "", "Override the log format: 'text' or 'json'.")
	switch cmd.Name {
	case CommandRun:
		flagSet.StringVar(&cmd.Scenario, "scenario", "", "Path to an HCL scenario file.")
		flagSet.StringVar(&cmd.Algorithm, "algorithm", "", "Search algorithm: DIJKSTRA or A_STAR.")
		flagSet.StringVar(&cmd.Maze, "maze", "", "Maze: NONE, BINARY_TREE, RECURSIVE_DIVISION or BUILDINGS.")
		flagSet.StringVar(&cmd.Speed, "speed", "", "Animation speed: slow, medium or fast.")
		flagSet.Int64Var(&cmd.Seed, "seed", 0, "Maze seed. 0 uses the configured or a random seed.")
		flagSet.Float64Var(&cmd.Buildings, "buildings", 0, "Extra wall density in [0, 1].")
		flagSet.BoolVar(&cmd.Animate, "animate", false, "Animate the run in the terminal.")
	case CommandServe:
		flagSet.StringVar(&cmd.Addr, "addr", "", "Listen address. Overrides PATHVIZ_ADDR.")
	}

	if err := flagSet.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected argument %q", flagSet.Arg(0))}
	}

	if err := cmd.validate(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return cmd, false, nil
}

// validate checks selector spellings early so typos fail before any work.
func (c *Command) validate() error {
	if c.LogFormat != "" {
		c.LogFormat = strings.ToLower(c.LogFormat)
		if c.LogFormat != "text" && c.LogFormat != "json" {
			return errors.New("invalid log-format: must be 'text' or 'json'")
		}
	}
	if c.LogLevel != "" {
		c.LogLevel = strings.ToLower(c.LogLevel)
		switch c.LogLevel {
		case "debug", "info", "warn", "error":
		default:
			return errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
		}
	}
	if c.Algorithm != "" {
		if _, err := search.ParseAlgorithm(c.Algorithm); err != nil {
			return err
		}
	}
	if c.Maze != "" {
		if _, err := maze.ParseKind(c.Maze); err != nil {
			return err
		}
	}
	if c.Speed != "" {
		if _, err := playback.ParseSpeed(c.Speed); err != nil {
			return err
		}
	}
	if c.Buildings < 0 || c.Buildings > 1 {
		return fmt.Errorf("invalid buildings: %v not in [0, 1]", c.Buildings)
	}
	return nil
}
