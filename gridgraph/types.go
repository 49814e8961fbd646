// Package gridgraph defines core types, constants and sentinel errors
// for the grid model.
package gridgraph

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for gridgraph operations.
var (
	// ErrEmptyGrid indicates rows or cols is less than one.
	ErrEmptyGrid = errors.New("gridgraph: grid must have at least one row and one column")
	// ErrNonRectangular indicates layout rows of differing lengths.
	ErrNonRectangular = errors.New("gridgraph: all rows must have the same length")
	// ErrOutOfBounds indicates a position outside the grid.
	ErrOutOfBounds = errors.New("gridgraph: position out of bounds")
	// ErrSameStartEnd indicates start and end were requested on one tile.
	ErrSameStartEnd = errors.New("gridgraph: start and end must differ")
	// ErrOccupied indicates an endpoint was moved onto the other endpoint.
	ErrOccupied = errors.New("gridgraph: tile holds the other endpoint")
	// ErrBadLayout indicates a malformed textual layout.
	ErrBadLayout = errors.New("gridgraph: malformed layout")
	// ErrTooLarge indicates rows×cols above MaxTiles.
	ErrTooLarge = errors.New("gridgraph: grid too large")
)

// Reference configuration.
const (
	DefaultRows = 39
	DefaultCols = 49
)

// MaxTiles bounds rows×cols for every grid.
const MaxTiles = 1 << 20

// Infinity marks a tile whose distance has not been labelled by a search.
const Infinity = math.MaxInt

var (
	// DefaultStart is the start tile of the reference configuration.
	DefaultStart = Pos{Row: 1, Col: 1}
	// DefaultEnd is the end tile of the reference configuration.
	DefaultEnd = Pos{Row: DefaultRows - 2, Col: DefaultCols - 2}
)

// Pos is the immutable identity of a tile.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String renders p as "(row,col)".
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Manhattan returns |Δrow| + |Δcol| between a and b.
func Manhattan(a, b Pos) int {
	dr, dc := a.Row-b.Row, a.Col-b.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// offsets lists the 4-neighbourhood in a fixed order: up, right, down, left.
// Every traversal uses this order so results stay deterministic.
var offsets = [4]Pos{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}

// Tile is one grid cell. Pos never changes once the grid is built.
type Tile struct {
	Pos         Pos  `json:"pos"`
	IsStart     bool `json:"isStart"`
	IsEnd       bool `json:"isEnd"`
	IsWall      bool `json:"isWall"`
	IsTraversed bool `json:"isTraversed"`
	IsPath      bool `json:"isPath"`
	// Distance from the start in steps, Infinity when unlabelled.
	Distance int `json:"distance"`
	// Parent is meaningful only when HasParent is true.
	Parent    Pos  `json:"parent"`
	HasParent bool `json:"hasParent"`
}

// Patch is a partial tile update. Nil fields are left untouched.
type Patch struct {
	IsWall      *bool `json:"isWall,omitempty"`
	IsTraversed *bool `json:"isTraversed,omitempty"`
	IsPath      *bool `json:"isPath,omitempty"`
}

// WallPatch sets IsWall to v.
func WallPatch(v bool) Patch { return Patch{IsWall: &v} }

// TraversedPatch sets IsTraversed to v.
func TraversedPatch(v bool) Patch { return Patch{IsTraversed: &v} }

// PathPatch sets IsPath to v.
func PathPatch(v bool) Patch { return Patch{IsPath: &v} }

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.IsWall == nil && p.IsTraversed == nil && p.IsPath == nil
}
