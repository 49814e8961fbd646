// SPDX-License-Identifier: MIT

package maze

import "github.com/katalvlaran/pathviz/gridgraph"

// buildings walls each open, non-endpoint tile with probability o.density,
// visiting tiles row-major. Existing walls stay.
//
// Complexity: O(R×C).
func buildings(g *gridgraph.Grid, o Options) *Result {
	c := newCanvas(g, false)
	for i := 0; i < c.g.Len(); i++ {
		p := c.g.Coordinate(i)
		if c.g.IsWall(p) || c.g.IsEndpoint(p) {
			continue
		}
		if o.rng.Float64() < o.density {
			c.wall(p)
		}
	}
	return c.result(Buildings)
}
