package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/pathviz/internal/api"
	"github.com/katalvlaran/pathviz/internal/cli"
	"github.com/katalvlaran/pathviz/internal/config"
	"github.com/katalvlaran/pathviz/internal/ctxlog"
	"github.com/katalvlaran/pathviz/internal/pipeline"
	"github.com/katalvlaran/pathviz/internal/scenario"
	"github.com/katalvlaran/pathviz/maze"
	"github.com/katalvlaran/pathviz/playback"
	"github.com/katalvlaran/pathviz/search"
)

// frameInterval is how often -animate redraws the terminal.
const frameInterval = 40 * time.Millisecond

// main is the entrypoint for the pathviz application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, logW io.Writer, args []string) error {
	cmd, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	var cfg config.Config
	if cmd.EnvFile != "" {
		cfg, err = config.Load(cmd.EnvFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if cmd.LogLevel != "" {
		cfg.LogLevel = cmd.LogLevel
	}
	if cmd.LogFormat != "" {
		cfg.LogFormat = cmd.LogFormat
	}

	logger, err := ctxlog.New(logW, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}
	ctx = ctxlog.WithLogger(ctx, logger)

	switch cmd.Name {
	case cli.CommandServe:
		return serve(ctx, cfg, cmd)
	default:
		return runOnce(ctx, outW, cfg, cmd)
	}
}

// serve runs the HTTP API until ctx is cancelled.
func serve(ctx context.Context, cfg config.Config, cmd *cli.Command) error {
	gin.SetMode(cfg.GinMode)
	addr := cfg.Addr
	if cmd.Addr != "" {
		addr = cmd.Addr
	}

	runs := api.NewRunsController(api.RunsConfig{
		Rows:   cfg.Rows,
		Cols:   cfg.Cols,
		Timing: cfg.Timing,
		Seed:   cfg.RunSeed,
	})
	router := api.NewRouter(api.Config{
		Addr:        addr,
		BaseURL:     "/api",
		Controllers: []api.Controller{runs},
		Logger:      ctxlog.FromContext(ctx),
	})
	return router.Run(ctx)
}

// runOnce executes one visualization and prints the result, animated when
// asked.
func runOnce(ctx context.Context, outW io.Writer, cfg config.Config, cmd *cli.Command) error {
	logger := ctxlog.FromContext(ctx)

	req, err := buildRequest(ctx, cfg, cmd)
	if err != nil {
		return err
	}

	out, err := pipeline.Execute(ctx, req)
	if err != nil {
		return err
	}
	logger.Info("Run finished",
		"algorithm", req.Algorithm,
		"maze", req.Maze,
		"seed", req.Seed,
		"events", len(out.Events),
		"duration", playback.Duration(out.Events))

	if cmd.Animate {
		if err := animate(ctx, outW, out, playback.RealClock{}); err != nil {
			return err
		}
	} else {
		fmt.Fprint(outW, out.Search.Grid)
	}

	sr := out.Search
	fmt.Fprintf(outW, "algorithm=%s maze=%s found=%t visited=%d path=%d\n",
		sr.Algorithm, req.Maze, sr.Found, sr.NodesVisited(), sr.PathLength())
	return nil
}

// buildRequest merges the scenario file, the environment and the flags,
// flags winning.
func buildRequest(ctx context.Context, cfg config.Config, cmd *cli.Command) (pipeline.Request, error) {
	req := pipeline.Request{
		Algorithm: search.Dijkstra,
		Maze:      maze.None,
		Timing:    cfg.Timing,
	}

	if cmd.Scenario != "" {
		sc, err := scenario.Load(ctx, cmd.Scenario)
		if err != nil {
			return pipeline.Request{}, err
		}
		req.Grid = sc.Grid
		req.Algorithm = sc.Algorithm
		req.Maze = sc.Maze
		req.Seed = sc.Seed
		req.Buildings = sc.Buildings
		req.Timing.Speed = sc.Speed
	} else {
		g, err := cfg.Grid()
		if err != nil {
			return pipeline.Request{}, err
		}
		req.Grid = g
	}

	var err error
	if cmd.Algorithm != "" {
		if req.Algorithm, err = search.ParseAlgorithm(cmd.Algorithm); err != nil {
			return pipeline.Request{}, err
		}
	}
	if cmd.Maze != "" {
		if req.Maze, err = maze.ParseKind(cmd.Maze); err != nil {
			return pipeline.Request{}, err
		}
	}
	if cmd.Speed != "" {
		if req.Timing.Speed, err = playback.ParseSpeed(cmd.Speed); err != nil {
			return pipeline.Request{}, err
		}
	}
	if cmd.Buildings != 0 {
		req.Buildings = cmd.Buildings
	}
	switch {
	case cmd.Seed != 0:
		req.Seed = cmd.Seed
	case req.Seed == 0:
		req.Seed = cfg.RunSeed()
	}
	return req, nil
}

// animate plays out's timeline onto a copy of its base grid, redrawing the
// terminal every frameInterval and once more at the end.
func animate(ctx context.Context, w io.Writer, out *pipeline.Outcome, clock playback.Clock) error {
	g := out.Base.Clone()
	sched := playback.New(clock, playback.WithLogger(ctxlog.FromContext(ctx)))
	done := make(chan struct{})

	_, err := sched.Schedule(out.Events,
		func(e playback.Event) { _ = g.Apply(e.Pos, e.Patch) },
		func() { close(done) },
	)
	if err != nil {
		return err
	}

	draw := func() { fmt.Fprint(w, "\033[H\033[2J", g) }
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			sched.Do(func() { sched.Stop() })
			return ctx.Err()
		case <-ticker.C:
			sched.Do(draw)
		case <-done:
			sched.Do(draw)
			return nil
		}
	}
}
