// Package pathviz is the core of a grid pathfinding visualizer: a grid of
// tiles, two shortest-path searches that record the order they explore in,
// two maze generators, and a scheduler that replays the result as timed
// tile updates.
//
// What is in here?
//
//	gridgraph/  the Grid: tiles, walls, endpoints, run flags, patches
//	search/     Dijkstra and A* over a Grid, traversal order + path
//	maze/       Binary Tree, Recursive Division and random buildings
//	playback/   timelines of tile events and a cancellable Scheduler
//
// Applications live under cmd/ and internal/:
//
//	cmd/pathviz          `pathviz run` prints or animates one run,
//	                     `pathviz serve` exposes the HTTP API
//	internal/pipeline    maze → buildings → search, one combined timeline
//	internal/api         gin routes: options, runs, SSE playback stream
//	internal/scenario    HCL scenario files
//	internal/config      PATHVIZ_* environment and .env loading
//	internal/ctxlog      slog logger carried in context.Context
//	internal/cli         flag parsing and exit codes
//
// Quick ASCII example (S start, E end, # wall, * path, o traversed):
//
//	S*#..
//	.*#..
//	.***E
//
// Every search is deterministic, and every maze is reproducible from its
// seed.
package pathviz
