// Package scenario loads a complete visualizer setup (grid, walls, maze,
// algorithm, speed) from an HCL file.
//
// Example:
//
//	grid {
//	  rows  = 11
//	  cols  = 15
//	  start = [1, 1]
//	  end   = [9, 13]
//	  walls = [[2, 3], [4, 5]]
//	}
//	maze      = "RECURSIVE_DIVISION"
//	algorithm = "A_STAR"
//	seed      = 7
//	speed     = "fast"
//
// A grid block may give `layout` (rows of S, E, # and .) instead of the
// dimensions. Without a grid block the 39×49 default grid is used.
//
// Expressions may use `default.rows`, `default.cols` and the functions
// range, concat and min/max, so a wall line can be written as
//
//	walls = [for c in range(0, 12) : [5, c]]
package scenario

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/internal/ctxlog"
	"github.com/katalvlaran/pathviz/maze"
	"github.com/katalvlaran/pathviz/playback"
	"github.com/katalvlaran/pathviz/search"
)

// ErrInvalid wraps every semantic error in a scenario file.
var ErrInvalid = errors.New("scenario: invalid")

// Scenario is a decoded, validated setup.
type Scenario struct {
	Grid      *gridgraph.Grid
	Maze      maze.Kind
	Algorithm search.Algorithm
	Seed      int64   // 0 means unset
	Speed     playback.Speed
	Buildings float64 // wall density; 0 adds none
}

// hclFile is the top-level structure of a scenario file for decoding.
type hclFile struct {
	Grid      *hclGrid `hcl:"grid,block"`
	Maze      *string  `hcl:"maze,optional"`
	Algorithm *string  `hcl:"algorithm,optional"`
	Seed      *int64   `hcl:"seed,optional"`
	Speed     *string  `hcl:"speed,optional"`
	Buildings *float64 `hcl:"buildings,optional"`
}

type hclGrid struct {
	Rows   *int     `hcl:"rows,optional"`
	Cols   *int     `hcl:"cols,optional"`
	Start  []int    `hcl:"start,optional"`
	End    []int    `hcl:"end,optional"`
	Walls  [][]int  `hcl:"walls,optional"`
	Layout []string `hcl:"layout,optional"`
}

// Load parses the scenario file at path.
func Load(ctx context.Context, path string) (*Scenario, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading scenario", "path", path)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	sc, err := Parse(src, path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Scenario loaded", "path", path,
		"rows", sc.Grid.Rows(), "cols", sc.Grid.Cols(),
		"maze", sc.Maze, "algorithm", sc.Algorithm, "speed", sc.Speed)
	return sc, nil
}

// Parse decodes HCL source; filename is used in diagnostics only.
func Parse(src []byte, filename string) (*Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var raw hclFile
	diags = gohcl.DecodeBody(file.Body, evalContext(), &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	sc := &Scenario{Maze: maze.None, Algorithm: search.Dijkstra, Speed: playback.Medium}
	var err error

	if sc.Grid, err = raw.Grid.build(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, filename, err)
	}
	if raw.Maze != nil {
		if sc.Maze, err = maze.ParseKind(*raw.Maze); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, filename, err)
		}
	}
	if raw.Algorithm != nil {
		if sc.Algorithm, err = search.ParseAlgorithm(*raw.Algorithm); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, filename, err)
		}
	}
	if raw.Speed != nil {
		if sc.Speed, err = playback.ParseSpeed(*raw.Speed); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, filename, err)
		}
	}
	if raw.Seed != nil {
		sc.Seed = *raw.Seed
	}
	if raw.Buildings != nil {
		if *raw.Buildings < 0 || *raw.Buildings > 1 {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, filename, maze.ErrBadDensity)
		}
		sc.Buildings = *raw.Buildings
	}
	return sc, nil
}

// evalContext exposes the default grid size and a few list helpers to
// scenario expressions.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"default": cty.ObjectVal(map[string]cty.Value{
				"rows": cty.NumberIntVal(gridgraph.DefaultRows),
				"cols": cty.NumberIntVal(gridgraph.DefaultCols),
			}),
		},
		Functions: map[string]function.Function{
			"range":  stdlib.RangeFunc,
			"concat": stdlib.ConcatFunc,
			"min":    stdlib.MinFunc,
			"max":    stdlib.MaxFunc,
		},
	}
}

// build turns the grid block into a Grid; a nil block means the default grid.
func (b *hclGrid) build() (*gridgraph.Grid, error) {
	if b == nil {
		return gridgraph.NewDefault(), nil
	}

	var (
		g   *gridgraph.Grid
		err error
	)
	if len(b.Layout) > 0 {
		if b.Rows != nil || b.Cols != nil || b.Start != nil || b.End != nil {
			return nil, errors.New("layout excludes rows, cols, start and end")
		}
		g, err = gridgraph.FromLayout(b.Layout)
	} else {
		rows, cols := gridgraph.DefaultRows, gridgraph.DefaultCols
		if b.Rows != nil {
			rows = *b.Rows
		}
		if b.Cols != nil {
			cols = *b.Cols
		}
		start := gridgraph.Pos{Row: 1, Col: 1}
		end := gridgraph.Pos{Row: rows - 2, Col: cols - 2}
		if b.Start != nil {
			if start, err = toPos("start", b.Start); err != nil {
				return nil, err
			}
		}
		if b.End != nil {
			if end, err = toPos("end", b.End); err != nil {
				return nil, err
			}
		}
		g, err = gridgraph.New(rows, cols, start, end)
	}
	if err != nil {
		return nil, err
	}

	for i, w := range b.Walls {
		p, err := toPos(fmt.Sprintf("walls[%d]", i), w)
		if err != nil {
			return nil, err
		}
		if _, err := g.SetWall(p, true); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func toPos(name string, v []int) (gridgraph.Pos, error) {
	if len(v) != 2 {
		return gridgraph.Pos{}, fmt.Errorf("%s must be [row, col], got %v", name, v)
	}
	return gridgraph.Pos{Row: v[0], Col: v[1]}, nil
}
