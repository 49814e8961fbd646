// Package gridgraph holds the tile grid that every pathfinding run works on,
// and treats it as an implicit 4-connected graph.
//
// What:
//
//   - Grid is a fixed ROWS×COLS arena of Tile values addressed by Pos{Row, Col}.
//   - Exactly one start and one end tile exist at all times; neither is ever a wall.
//   - Search labels (Distance, Parent) are stored per tile; Parent is a Pos index,
//     never a pointer, so path reconstruction is an index walk.
//   - ConnectedComponents / ReachableFrom give reachability over open tiles.
//
// Why:
//
//   - The search engine and maze generator read a Grid and hand back a new
//     checkpoint (Clone + labels) instead of editing the caller's copy.
//   - The playback layer patches a display Grid tile by tile via Apply.
//
// Mutations:
//
//   - MoveStart / MoveEnd clear the old flag, set the new one and force IsWall=false.
//   - ToggleWall / SetWall never touch start or end; that case is a no-op, not an error.
//   - ResetRun clears run state (traversed, path, labels); ResetAll also clears walls.
//
// Complexity:
//
//   - Tile access, InBounds, Neighbors: O(1).
//   - ResetRun, ResetAll, Clone, Dirty:  O(R×C).
//   - ConnectedComponents, ReachableFrom: O(R×C×4), Memory: O(R×C).
//
// Errors:
//
//   - ErrEmptyGrid: rows or cols < 1.
//   - ErrNonRectangular: layout rows of differing lengths.
//   - ErrOutOfBounds: position outside the grid.
//   - ErrSameStartEnd: start and end requested on the same tile.
//   - ErrOccupied: moving an endpoint onto the other endpoint.
//   - ErrBadLayout: unknown rune or missing/duplicate endpoint in FromLayout.
package gridgraph
