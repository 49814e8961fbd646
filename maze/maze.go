// SPDX-License-Identifier: MIT

package maze

import (
	"fmt"

	"github.com/katalvlaran/pathviz/gridgraph"
)

// Generate builds a maze of the given kind on a copy of g.
//
// Mazes start from a cleared copy (walls and run state removed, start and
// end kept). Buildings starts from a copy with run state cleared and keeps
// existing walls. g itself is never modified.
//
// Errors: ErrUnknownKind, ErrNilGrid, ErrGridTooSmall (BinaryTree and
// RecursiveDivision need at least MinChamber rows and columns).
//
// Complexity: O(R×C) time and memory for every kind.
func Generate(g *gridgraph.Grid, kind Kind, opts ...Option) (*Result, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	if g == nil {
		return nil, ErrNilGrid
	}
	o := newOptions(opts...)

	switch kind {
	case None:
		c := newCanvas(g, true)
		return c.result(None), nil
	case Buildings:
		return buildings(g, o), nil
	}

	if g.Rows() < MinChamber || g.Cols() < MinChamber {
		return nil, fmt.Errorf("%w: %dx%d, need at least %dx%d",
			ErrGridTooSmall, g.Rows(), g.Cols(), MinChamber, MinChamber)
	}
	c := newCanvas(g, true)
	if kind == BinaryTree {
		binaryTree(c, o)
	} else {
		recursiveDivision(c, o)
	}
	return c.result(kind), nil
}

// Scatter scatters walls over g with the given probability per open tile.
// Start, end and existing walls are left as they are.
// Returns ErrNilGrid or ErrBadDensity.
func Scatter(g *gridgraph.Grid, density float64, opts ...Option) (*Result, error) {
	if density < 0 || density > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrBadDensity, density)
	}
	return Generate(g, Buildings, append(opts, WithDensity(density))...)
}

// canvas is the working copy a generator paints on, recording every wall in
// the order it is placed.
type canvas struct {
	g          *gridgraph.Grid
	placements []Placement
}

// newCanvas clones g and clears run state; clear also drops every wall.
func newCanvas(g *gridgraph.Grid, clear bool) *canvas {
	w := g.Clone()
	if clear {
		w.ResetAll()
	} else {
		w.ResetRun()
	}
	return &canvas{g: w, placements: []Placement{}}
}

// wall paints p as a wall and records it. Endpoints, existing walls and
// off-grid positions are ignored.
func (c *canvas) wall(p gridgraph.Pos) {
	changed, err := c.g.SetWall(p, true)
	if err != nil || !changed {
		return
	}
	c.placements = append(c.placements, Placement{Pos: p, Wall: true})
}

func (c *canvas) result(kind Kind) *Result {
	return &Result{Kind: kind, Placements: c.placements, Grid: c.g}
}
