// Package gridgraph provides the Grid arena: construction, endpoint moves,
// wall editing, run resets and patch application.
//
// Tiles live in one row-major slice; a Pos maps to index Row*cols + Col.
// The grid is not safe for concurrent use; callers that edit it from timer
// callbacks serialise access themselves (see playback.Scheduler.Do).
package gridgraph

import (
	"fmt"
	"strings"
)

// Grid is a rectangular arena of tiles with exactly one start and one end.
type Grid struct {
	rows, cols int
	tiles      []Tile
	start, end Pos
}

// New builds a rows×cols grid of open tiles with start and end flagged.
// Every tile begins untraversed, off-path, Distance=Infinity and parentless.
// Returns ErrEmptyGrid if rows or cols < 1, ErrTooLarge if rows×cols
// exceeds MaxTiles, ErrOutOfBounds if an endpoint lies outside,
// ErrSameStartEnd if start == end.
// Complexity: O(R×C).
func New(rows, cols int, start, end Pos) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, ErrEmptyGrid
	}
	if rows > MaxTiles/cols {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d tiles", ErrTooLarge, rows, cols, MaxTiles)
	}
	g := &Grid{rows: rows, cols: cols}
	if !g.InBounds(start) {
		return nil, fmt.Errorf("%w: start %s in %dx%d", ErrOutOfBounds, start, rows, cols)
	}
	if !g.InBounds(end) {
		return nil, fmt.Errorf("%w: end %s in %dx%d", ErrOutOfBounds, end, rows, cols)
	}
	if start == end {
		return nil, ErrSameStartEnd
	}

	g.tiles = make([]Tile, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.tiles[r*cols+c] = Tile{Pos: Pos{Row: r, Col: c}, Distance: Infinity}
		}
	}
	g.start, g.end = start, end
	g.at(start).IsStart = true
	g.at(end).IsEnd = true

	return g, nil
}

// NewDefault returns the 39×49 reference grid with start (1,1) and end (37,47).
func NewDefault() *Grid {
	g, err := New(DefaultRows, DefaultCols, DefaultStart, DefaultEnd)
	if err != nil {
		// Constants are valid by construction.
		panic(err)
	}
	return g
}

// FromLayout builds a grid from text rows: 'S' start, 'E' end, '#' wall,
// '.' open. Exactly one 'S' and one 'E' are required.
// Returns ErrEmptyGrid, ErrNonRectangular or ErrBadLayout.
func FromLayout(lines []string) (*Grid, error) {
	if len(lines) == 0 || len(lines[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	rows, cols := len(lines), len(lines[0])
	var starts, ends, walls []Pos
	for r, line := range lines {
		if len(line) != cols {
			return nil, ErrNonRectangular
		}
		for c, ch := range line {
			p := Pos{Row: r, Col: c}
			switch ch {
			case 'S':
				starts = append(starts, p)
			case 'E':
				ends = append(ends, p)
			case '#':
				walls = append(walls, p)
			case '.':
			default:
				return nil, fmt.Errorf("%w: rune %q at %s", ErrBadLayout, ch, p)
			}
		}
	}
	if len(starts) != 1 || len(ends) != 1 {
		return nil, fmt.Errorf("%w: want one S and one E, got %d and %d", ErrBadLayout, len(starts), len(ends))
	}

	g, err := New(rows, cols, starts[0], ends[0])
	if err != nil {
		return nil, err
	}
	for _, p := range walls {
		g.at(p).IsWall = true
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Len returns the number of tiles.
func (g *Grid) Len() int { return len(g.tiles) }

// Start returns the start position.
func (g *Grid) Start() Pos { return g.start }

// End returns the end position.
func (g *Grid) End() Pos { return g.end }

// InBounds reports whether p lies within the grid.
// Complexity: O(1).
func (g *Grid) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// Index maps p to its row-major index. p must be in bounds.
func (g *Grid) Index(p Pos) int {
	return p.Row*g.cols + p.Col
}

// Coordinate converts a row-major index back to a Pos.
func (g *Grid) Coordinate(idx int) Pos {
	return Pos{Row: idx / g.cols, Col: idx % g.cols}
}

func (g *Grid) at(p Pos) *Tile {
	return &g.tiles[g.Index(p)]
}

// Tile returns a copy of the tile at p and whether p was in bounds.
func (g *Grid) Tile(p Pos) (Tile, bool) {
	if !g.InBounds(p) {
		return Tile{}, false
	}
	return *g.at(p), true
}

// IsWall reports whether p is a wall. Off-grid positions count as walls.
func (g *Grid) IsWall(p Pos) bool {
	if !g.InBounds(p) {
		return true
	}
	return g.at(p).IsWall
}

// IsEndpoint reports whether p is the start or the end tile.
func (g *Grid) IsEndpoint(p Pos) bool {
	return p == g.start || p == g.end
}

// Neighbors returns the open 4-neighbours of p in the order up, right, down,
// left. Walls and off-grid cells are excluded.
// Complexity: O(1).
func (g *Grid) Neighbors(p Pos) []Pos {
	out := make([]Pos, 0, len(offsets))
	for _, d := range offsets {
		n := Pos{Row: p.Row + d.Row, Col: p.Col + d.Col}
		if g.InBounds(n) && !g.at(n).IsWall {
			out = append(out, n)
		}
	}
	return out
}

// Walls returns every wall position in row-major order.
func (g *Grid) Walls() []Pos {
	var out []Pos
	for i := range g.tiles {
		if g.tiles[i].IsWall {
			out = append(out, g.tiles[i].Pos)
		}
	}
	return out
}

// Tiles returns a copy of all tiles in row-major order.
func (g *Grid) Tiles() []Tile {
	out := make([]Tile, len(g.tiles))
	copy(out, g.tiles)
	return out
}

// Dirty reports whether any tile still carries state from a previous run.
// Complexity: O(R×C).
func (g *Grid) Dirty() bool {
	for i := range g.tiles {
		t := &g.tiles[i]
		if t.IsTraversed || t.IsPath || t.HasParent || t.Distance != Infinity {
			return true
		}
	}
	return false
}

// Clone returns an independent deep copy of g.
// Complexity: O(R×C).
func (g *Grid) Clone() *Grid {
	tiles := make([]Tile, len(g.tiles))
	copy(tiles, g.tiles)
	return &Grid{rows: g.rows, cols: g.cols, tiles: tiles, start: g.start, end: g.end}
}

// MoveStart relocates the start flag to p and clears any wall there.
// Returns ErrOutOfBounds or ErrOccupied (p is the end); g is unchanged then.
func (g *Grid) MoveStart(p Pos) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: start %s", ErrOutOfBounds, p)
	}
	if p == g.end {
		return fmt.Errorf("%w: start %s", ErrOccupied, p)
	}
	g.at(g.start).IsStart = false
	t := g.at(p)
	t.IsStart = true
	t.IsWall = false
	g.start = p
	return nil
}

// MoveEnd relocates the end flag to p and clears any wall there.
// Returns ErrOutOfBounds or ErrOccupied (p is the start); g is unchanged then.
func (g *Grid) MoveEnd(p Pos) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: end %s", ErrOutOfBounds, p)
	}
	if p == g.start {
		return fmt.Errorf("%w: end %s", ErrOccupied, p)
	}
	g.at(g.end).IsEnd = false
	t := g.at(p)
	t.IsEnd = true
	t.IsWall = false
	g.end = p
	return nil
}

// ToggleWall flips the wall flag at p and reports whether anything changed.
// Start and end are never repainted: that is a no-op returning false.
func (g *Grid) ToggleWall(p Pos) (bool, error) {
	if !g.InBounds(p) {
		return false, fmt.Errorf("%w: wall %s", ErrOutOfBounds, p)
	}
	if g.IsEndpoint(p) {
		return false, nil
	}
	t := g.at(p)
	t.IsWall = !t.IsWall
	return true, nil
}

// SetWall paints the wall flag at p to v and reports whether it changed.
// Start and end are left alone.
func (g *Grid) SetWall(p Pos, v bool) (bool, error) {
	if !g.InBounds(p) {
		return false, fmt.Errorf("%w: wall %s", ErrOutOfBounds, p)
	}
	if g.IsEndpoint(p) {
		return false, nil
	}
	t := g.at(p)
	if t.IsWall == v {
		return false, nil
	}
	t.IsWall = v
	return true, nil
}

// ResetRun clears traversal state on every tile, keeping walls and endpoints.
func (g *Grid) ResetRun() {
	for i := range g.tiles {
		t := &g.tiles[i]
		t.IsTraversed = false
		t.IsPath = false
		t.Distance = Infinity
		t.Parent = Pos{}
		t.HasParent = false
	}
}

// ResetAll is ResetRun plus clearing every wall.
func (g *Grid) ResetAll() {
	g.ResetRun()
	for i := range g.tiles {
		g.tiles[i].IsWall = false
	}
}

// SetLabel records a search label on p. hasParent=false marks a root.
// Used by the search engine when it writes its checkpoint grid.
func (g *Grid) SetLabel(p Pos, distance int, parent Pos, hasParent bool) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: label %s", ErrOutOfBounds, p)
	}
	t := g.at(p)
	t.Distance = distance
	t.Parent = parent
	t.HasParent = hasParent
	return nil
}

// Apply merges patch into the tile at p. A wall is never set on start or
// end; the rest of the patch still applies.
func (g *Grid) Apply(p Pos, patch Patch) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: patch %s", ErrOutOfBounds, p)
	}
	t := g.at(p)
	if patch.IsWall != nil && !g.IsEndpoint(p) {
		t.IsWall = *patch.IsWall
	}
	if patch.IsTraversed != nil {
		t.IsTraversed = *patch.IsTraversed
	}
	if patch.IsPath != nil {
		t.IsPath = *patch.IsPath
	}
	return nil
}

// String renders the grid one text row per grid row:
// S start, E end, # wall, * path, o traversed, . open.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.rows * (g.cols + 1))
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			sb.WriteByte(glyph(g.tiles[r*g.cols+c]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func glyph(t Tile) byte {
	switch {
	case t.IsStart:
		return 'S'
	case t.IsEnd:
		return 'E'
	case t.IsWall:
		return '#'
	case t.IsPath:
		return '*'
	case t.IsTraversed:
		return 'o'
	default:
		return '.'
	}
}
