// SPDX-License-Identifier: MIT

package maze

import (
	"math/rand"

	"github.com/katalvlaran/pathviz/gridgraph"
)

// chamber is an inclusive rectangle of interior cells. top and left are
// always odd.
type chamber struct {
	top, left, bottom, right int
}

func (ch chamber) height() int { return ch.bottom - ch.top + 1 }
func (ch chamber) width() int  { return ch.right - ch.left + 1 }

// divider holds the state of one recursive division run.
type divider struct {
	c         *canvas
	rng       *rand.Rand
	rows      int
	cols      int
	protected []gridgraph.Pos
}

// recursiveDivision encloses the grid and bisects the interior.
//
// Rules:
//   - Border walls come first: top row, bottom row, left column, right column.
//   - A chamber is split by a wall on an even line strictly inside it, with a
//     gap on an odd cell. Later walls lie on even lines too, so they never
//     cover an earlier gap.
//   - The wall runs across the longer side's axis: a tall chamber gets a
//     horizontal wall, a wide one a vertical wall, a square one either.
//   - Chambers whose shorter side is below MinChamber are left open.
//   - Start and end are never walled. A wall crossing one gets its gap there
//     (odd cell) or beside it (even cell) instead of a random gap.
//
// Complexity: O(R×C); each cell lies on at most one wall.
func recursiveDivision(c *canvas, o Options) {
	d := &divider{
		c:         c,
		rng:       o.rng,
		rows:      c.g.Rows(),
		cols:      c.g.Cols(),
		protected: []gridgraph.Pos{c.g.Start(), c.g.End()},
	}
	d.border()
	d.divide(chamber{top: 1, left: 1, bottom: d.rows - 2, right: d.cols - 2})
}

// border walls the outer ring, leaving protected cells open together with
// a border neighbour when they need one to reach the interior.
func (d *divider) border() {
	keep := make(map[gridgraph.Pos]bool)
	for _, p := range d.protected {
		if !d.onBorder(p) {
			continue
		}
		keep[p] = true
		if q, ok := d.borderExit(p); ok {
			keep[q] = true
		}
	}
	put := func(p gridgraph.Pos) {
		if !keep[p] {
			d.c.wall(p)
		}
	}

	for col := 0; col < d.cols; col++ {
		put(gridgraph.Pos{Row: 0, Col: col})
	}
	for col := 0; col < d.cols; col++ {
		put(gridgraph.Pos{Row: d.rows - 1, Col: col})
	}
	for r := 1; r < d.rows-1; r++ {
		put(gridgraph.Pos{Row: r, Col: 0})
	}
	for r := 1; r < d.rows-1; r++ {
		put(gridgraph.Pos{Row: r, Col: d.cols - 1})
	}
}

func (d *divider) onBorder(p gridgraph.Pos) bool {
	return p.Row == 0 || p.Row == d.rows-1 || p.Col == 0 || p.Col == d.cols-1
}

// safe reports whether the interior cell p can never lie on a dividing
// wall: its row is odd or the last interior row, and likewise its column.
func (d *divider) safe(p gridgraph.Pos) bool {
	if p.Row < 1 || p.Row > d.rows-2 || p.Col < 1 || p.Col > d.cols-2 {
		return false
	}
	rowOK := p.Row%2 == 1 || p.Row == d.rows-2
	colOK := p.Col%2 == 1 || p.Col == d.cols-2
	return rowOK && colOK
}

// borderExit returns an extra border cell to keep open beside the protected
// border cell p, or false when p already touches a safe interior cell.
func (d *divider) borderExit(p gridgraph.Pos) (gridgraph.Pos, bool) {
	for _, n := range d.c.g.Neighbors(p) {
		if d.safe(n) {
			return gridgraph.Pos{}, false
		}
	}
	for _, n := range d.c.g.Neighbors(p) {
		if !d.onBorder(n) {
			continue
		}
		for _, m := range d.c.g.Neighbors(n) {
			if d.safe(m) {
				return n, true
			}
		}
	}
	return gridgraph.Pos{}, false
}

// divide splits ch and recurses into both halves, top/left first.
func (d *divider) divide(ch chamber) {
	h, w := ch.height(), ch.width()
	if h < MinChamber || w < MinChamber {
		return
	}

	horizontal := w < h
	if w == h {
		horizontal = coin(d.rng)
	}

	if horizontal {
		r := pickStep(d.rng, ch.top+1, ch.bottom-1)
		d.line(r, ch.left, ch.right, true)
		d.divide(chamber{top: ch.top, left: ch.left, bottom: r - 1, right: ch.right})
		d.divide(chamber{top: r + 1, left: ch.left, bottom: ch.bottom, right: ch.right})
		return
	}

	col := pickStep(d.rng, ch.left+1, ch.right-1)
	d.line(col, ch.top, ch.bottom, false)
	d.divide(chamber{top: ch.top, left: ch.left, bottom: ch.bottom, right: col - 1})
	d.divide(chamber{top: ch.top, left: col + 1, bottom: ch.bottom, right: ch.right})
}

// line builds one wall at fixed coordinate at (a row when horizontal, else a
// column) spanning from lo to hi along the other axis.
func (d *divider) line(at, lo, hi int, horizontal bool) {
	pos := func(i int) gridgraph.Pos {
		if horizontal {
			return gridgraph.Pos{Row: at, Col: i}
		}
		return gridgraph.Pos{Row: i, Col: at}
	}

	gaps := make(map[int]bool)
	skip := make(map[int]bool)
	for _, p := range d.protected {
		i := p.Col
		if !horizontal {
			i = p.Row
		}
		if pos(i) != p || i < lo || i > hi {
			continue
		}
		skip[i] = true
		if i%2 == 1 {
			gaps[i] = true
			continue
		}
		// Even cell: the gap goes beside it on an odd cell.
		if i+1 <= hi {
			gaps[i+1] = true
		} else {
			gaps[i-1] = true
		}
	}
	if len(gaps) == 0 {
		gaps[pickStep(d.rng, lo, hi)] = true
	}

	for i := lo; i <= hi; i++ {
		if gaps[i] || skip[i] {
			continue
		}
		d.c.wall(pos(i))
	}
}
