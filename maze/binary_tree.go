// SPDX-License-Identifier: MIT

package maze

import "github.com/katalvlaran/pathviz/gridgraph"

// binaryTree carves a perfect maze.
//
// Layout:
//   - Rooms sit at every (odd row, odd col). Every other cell starts as wall.
//   - Each room opens the cell towards its south or east neighbour room,
//     chosen at random; when only one of them exists that one is used; the
//     bottom-right room (the sink) opens nothing.
//   - Following those links from any room reaches the sink, so all rooms
//     form one tree.
//   - A start or end on a non-room cell is opened and linked to a room.
//
// Walls are emitted row-major once the open set is known.
//
// Complexity: O(R×C).
func binaryTree(c *canvas, o Options) {
	g := c.g
	rows, cols := g.Rows(), g.Cols()
	open := make([]bool, g.Len())
	mark := func(r, col int) { open[r*cols+col] = true }

	for r := 1; r < rows; r += 2 {
		for col := 1; col < cols; col += 2 {
			mark(r, col)
			south := r+2 < rows
			east := col+2 < cols
			switch {
			case south && east:
				if coin(o.rng) {
					mark(r+1, col)
				} else {
					mark(r, col+1)
				}
			case south:
				mark(r+1, col)
			case east:
				mark(r, col+1)
			}
		}
	}

	for _, p := range []gridgraph.Pos{g.Start(), g.End()} {
		for _, q := range linkToRoom(p) {
			mark(q.Row, q.Col)
		}
	}

	for i, isOpen := range open {
		if !isOpen {
			c.wall(g.Coordinate(i))
		}
	}
}

// linkToRoom returns the cells to open so that p touches a room.
//
//   - (odd, odd):   p is a room already.
//   - (even, odd):  the room above or below is adjacent; open p.
//   - (odd, even):  the room left or right is adjacent; open p.
//   - (even, even): open p and the (odd, even) cell above it (below on
//     row 0), which sits beside a room.
//
// Requires rows, cols ≥ MinChamber.
func linkToRoom(p gridgraph.Pos) []gridgraph.Pos {
	rowOdd, colOdd := p.Row%2 == 1, p.Col%2 == 1
	if !rowOdd && !colOdd {
		r := p.Row - 1
		if r < 0 {
			r = p.Row + 1
		}
		return []gridgraph.Pos{p, {Row: r, Col: p.Col}}
	}
	return []gridgraph.Pos{p}
}
