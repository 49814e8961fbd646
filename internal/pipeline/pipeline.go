// Package pipeline runs one full visualization: optional maze, optional
// random buildings, then the search, and builds the combined timeline.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/internal/ctxlog"
	"github.com/katalvlaran/pathviz/maze"
	"github.com/katalvlaran/pathviz/playback"
	"github.com/katalvlaran/pathviz/search"
)

// ErrNilGrid indicates a request without a grid.
var ErrNilGrid = errors.New("pipeline: grid is nil")

// Request describes one run. Grid is not modified.
type Request struct {
	Grid      *gridgraph.Grid
	Maze      maze.Kind        // None keeps the grid's own walls; Buildings means None plus Buildings
	Buildings float64          // extra wall density, 0 for none
	Algorithm search.Algorithm
	Seed      int64
	Timing    playback.Timing
}

// Outcome is everything a renderer needs to replay the run.
//
// Base is the grid the timeline starts from: the input with run state
// cleared, and with its walls cleared when a maze was generated. Applying
// Events in order to a copy of Base reproduces Search.Grid's walls and
// flags.
type Outcome struct {
	Base      *gridgraph.Grid
	Maze      *maze.Result // nil when Maze is None
	Buildings *maze.Result // nil when Buildings is 0
	Search    *search.Result
	Events    []playback.Event
}

// Execute runs the request.
//
// Timeline: maze walls at MazeDelay steps, then building walls all at
// once, then traversal and path events. Each phase starts one of its own
// steps after the previous phase ends.
func Execute(ctx context.Context, req Request) (*Outcome, error) {
	if req.Grid == nil {
		return nil, ErrNilGrid
	}
	if err := req.Timing.Validate(); err != nil {
		return nil, err
	}
	if req.Maze == maze.Buildings {
		req.Maze = maze.None
		if req.Buildings == 0 {
			req.Buildings = maze.DefaultDensity
		}
	}
	logger := ctxlog.FromContext(ctx)
	rng := rand.New(rand.NewSource(req.Seed))

	base := req.Grid.Clone()
	base.ResetRun()
	work := base
	out := &Outcome{}

	if req.Maze != maze.None {
		res, err := maze.Generate(req.Grid, req.Maze, maze.WithRand(rng))
		if err != nil {
			return nil, fmt.Errorf("pipeline: maze: %w", err)
		}
		base = req.Grid.Clone()
		base.ResetAll()
		work = res.Grid
		out.Maze = res
		out.Events = playback.FromMaze(res, req.Timing)
		logger.Debug("Maze generated", "kind", req.Maze, "walls", len(res.Placements))
	}

	if req.Buildings > 0 {
		res, err := maze.Scatter(work, req.Buildings, maze.WithRand(rng))
		if err != nil {
			return nil, fmt.Errorf("pipeline: buildings: %w", err)
		}
		work = res.Grid
		out.Buildings = res
		instant := req.Timing
		instant.MazeDelay = 0
		out.Events = playback.Concat(out.Events, req.Timing.Step(req.Timing.MazeDelay), playback.FromMaze(res, instant))
		logger.Debug("Buildings added", "density", req.Buildings, "walls", len(res.Placements))
	}

	sr, err := search.Run(work, req.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("pipeline: search: %w", err)
	}
	out.Search = sr
	out.Events = playback.Concat(out.Events, req.Timing.Step(req.Timing.TraversalDelay), playback.FromSearch(sr, req.Timing))
	out.Base = base

	logger.Debug("Search finished",
		"algorithm", req.Algorithm,
		"found", sr.Found,
		"nodes_visited", sr.NodesVisited(),
		"path_length", sr.PathLength(),
		"events", len(out.Events))

	return out, nil
}
