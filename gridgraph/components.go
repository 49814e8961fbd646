package gridgraph

// ConnectedComponents finds all contiguous regions of open (non-wall) tiles
// under 4-connectivity. Each component is a slice of row-major indices in
// BFS discovery order; components are ordered by their first tile in
// row-major order.
//
// To convert an index back to a Pos, use Coordinate(idx).
//
// Time:   O(R·C·4).
// Memory: O(R·C) for visited flags and output.
func (g *Grid) ConnectedComponents() [][]int {
	seen := make([]bool, len(g.tiles))
	var comps [][]int

	for i := range g.tiles {
		if g.tiles[i].IsWall || seen[i] {
			continue
		}
		comps = append(comps, g.flood(i, seen))
	}
	return comps
}

// ReachableFrom counts open tiles connected to p, p included.
// Returns 0 when p is off-grid or a wall.
// Complexity: O(R·C·4).
func (g *Grid) ReachableFrom(p Pos) int {
	if !g.InBounds(p) || g.at(p).IsWall {
		return 0
	}
	seen := make([]bool, len(g.tiles))
	return len(g.flood(g.Index(p), seen))
}

// Connected reports whether a and b lie in the same open component.
func (g *Grid) Connected(a, b Pos) bool {
	if !g.InBounds(a) || !g.InBounds(b) || g.at(a).IsWall || g.at(b).IsWall {
		return false
	}
	seen := make([]bool, len(g.tiles))
	g.flood(g.Index(a), seen)
	return seen[g.Index(b)]
}

// flood runs a BFS from index i0 over open tiles, marking seen and
// returning the component.
func (g *Grid) flood(i0 int, seen []bool) []int {
	queue := []int{i0}
	seen[i0] = true
	for qi := 0; qi < len(queue); qi++ {
		u := g.Coordinate(queue[qi])
		for _, d := range offsets {
			v := Pos{Row: u.Row + d.Row, Col: u.Col + d.Col}
			if !g.InBounds(v) || g.at(v).IsWall {
				continue
			}
			vi := g.Index(v)
			if !seen[vi] {
				seen[vi] = true
				queue = append(queue, vi)
			}
		}
	}
	return queue
}
