// Package search provides the two shortest-path searches of the visualizer,
// Dijkstra and A*, over the open tiles of a gridgraph.Grid.
//
// What:
//
//   - Each tile is a vertex; edges join 4-neighbours (up, right, down, left)
//     that are both open, with unit weight.
//   - Dijkstra expands by distance from the start.
//   - A* expands by distance plus Manhattan distance to the end.
//   - Both record the order tiles are settled and rebuild the path from
//     parent links once the end is settled.
//
// Why:
//
//   - The traversal order drives the playback animation; the path is drawn
//     after it. The two algorithms differ only in how many tiles they touch.
//
// Determinism:
//
//	Frontier ties are broken by Manhattan distance to the end, then by the
//	order tiles entered the frontier. The same grid always yields the same
//	TraversalOrder and Path.
//
// Complexity:
//
//   - Time:   O(N log N) with a binary heap, N = rows×cols.
//   - Memory: O(N) for distances, parents and the heap.
//
// Errors:
//
//   - ErrNilGrid, ErrDirtyGrid, ErrUnknownAlgorithm.
//
// See: https://en.wikipedia.org/wiki/A*_search_algorithm
package search
