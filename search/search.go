// Dijkstra and A* share one relaxation loop; only the priority key differs.
//
// Notes on implementation choices:
//
//   - Walls are never enqueued nor relaxed.
//   - We use a “lazy” decrease-key strategy: pushing duplicates into the heap
//     and ignoring stale entries once a tile is settled.
//   - The run stops the instant the end tile is settled; its neighbours are
//     never expanded.
//   - Ties on priority are broken by Manhattan distance to the end, then by
//     insertion order, so a fixed input always yields the same trace.

package search

import (
	"container/heap"

	"github.com/katalvlaran/pathviz/gridgraph"
)

// tile states during one run.
const (
	unvisited uint8 = iota
	frontier
	settled
)

// Run searches g from its start to its end tile with the given algorithm.
//
// Preconditions and validation (in order):
//  1. alg must be a known selector (ErrUnknownAlgorithm).
//  2. g must be non-nil (ErrNilGrid).
//  3. g must not carry a previous run (ErrDirtyGrid).
//
// An unreachable end is not an error: Found is false and Path is empty.
//
// Complexity:
//
//   - Time:  O(N log N), N = rows×cols (each tile has ≤ 4 edges).
//   - Space: O(N).
func Run(g *gridgraph.Grid, alg Algorithm, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if !alg.Valid() {
		return nil, ErrUnknownAlgorithm
	}
	if g == nil {
		return nil, ErrNilGrid
	}
	if g.Dirty() {
		return nil, ErrDirtyGrid
	}

	r := newRunner(g, alg, cfg)
	r.init()
	r.process()

	return r.result(), nil
}

// RunDijkstra runs Run(g, Dijkstra, opts...).
func RunDijkstra(g *gridgraph.Grid, opts ...Option) (*Result, error) {
	return Run(g, Dijkstra, opts...)
}

// RunAStar runs Run(g, AStar, opts...).
func RunAStar(g *gridgraph.Grid, opts ...Option) (*Result, error) {
	return Run(g, AStar, opts...)
}

// runner holds the mutable state for a single search.
type runner struct {
	g       *gridgraph.Grid
	alg     Algorithm
	options Options
	end     gridgraph.Pos
	dist    []int   // tile index → best known distance
	parent  []int   // tile index → parent index, -1 for none
	state   []uint8 // tile index → unvisited / frontier / settled
	pq      tilePQ  // lazy min-heap
	seq     uint64  // insertion counter for tie-breaks
	order   []gridgraph.Pos
	found   bool
}

func newRunner(g *gridgraph.Grid, alg Algorithm, cfg Options) *runner {
	n := g.Len()
	return &runner{
		g:       g,
		alg:     alg,
		options: cfg,
		end:     g.End(),
		dist:    make([]int, n),
		parent:  make([]int, n),
		state:   make([]uint8, n),
		pq:      make(tilePQ, 0, n),
		order:   make([]gridgraph.Pos, 0, n),
	}
}

// init sets every distance to Infinity and pushes the start with distance 0.
func (r *runner) init() {
	for i := range r.dist {
		r.dist[i] = gridgraph.Infinity
		r.parent[i] = -1
	}
	heap.Init(&r.pq)

	start := r.g.Start()
	si := r.g.Index(start)
	r.dist[si] = 0
	r.push(si, start, 0)
}

// heuristic is the Manhattan distance to the end tile.
func (r *runner) heuristic(p gridgraph.Pos) int {
	return gridgraph.Manhattan(p, r.end)
}

// push inserts tile idx into the frontier with distance d.
func (r *runner) push(idx int, p gridgraph.Pos, d int) {
	h := r.heuristic(p)
	prio := d
	if r.alg == AStar {
		prio = d + h
	}
	heap.Push(&r.pq, &tileItem{idx: idx, dist: d, priority: prio, h: h, seq: r.seq})
	r.seq++
	r.state[idx] = frontier
}

// process is the core loop: pop the minimum candidate, settle it, stop on
// the end tile, otherwise relax its open neighbours.
func (r *runner) process() {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*tileItem)
		u := item.idx

		// Stale entry for an already settled tile.
		if r.state[u] == settled || item.dist != r.dist[u] {
			continue
		}
		p := r.g.Coordinate(u)
		r.state[u] = settled
		r.order = append(r.order, p)
		r.options.OnSettle(p, r.dist[u])

		if p == r.end {
			r.found = true
			return
		}
		r.relax(u, p)
	}
}

// relax tries to improve every open neighbour of the settled tile u.
func (r *runner) relax(u int, p gridgraph.Pos) {
	newDist := r.dist[u] + 1
	if newDist > r.options.MaxDistance {
		return
	}
	for _, np := range r.g.Neighbors(p) {
		v := r.g.Index(np)
		if r.state[v] == settled {
			continue
		}
		// Strictly better only; equal distances keep the first parent.
		if newDist >= r.dist[v] {
			continue
		}
		r.dist[v] = newDist
		r.parent[v] = u
		r.push(v, np, newDist)
	}
}

// result assembles the immutable Result and its checkpoint grid.
func (r *runner) result() *Result {
	res := &Result{
		Algorithm:      r.alg,
		TraversalOrder: r.order,
		Path:           []gridgraph.Pos{},
		Found:          r.found,
	}
	if r.found {
		res.Path = r.path()
	}

	snap := r.g.Clone()
	for i, d := range r.dist {
		if d == gridgraph.Infinity {
			continue
		}
		p := snap.Coordinate(i)
		if r.parent[i] >= 0 {
			_ = snap.SetLabel(p, d, snap.Coordinate(r.parent[i]), true)
		} else {
			_ = snap.SetLabel(p, d, gridgraph.Pos{}, false)
		}
	}
	for _, p := range res.TraversalOrder {
		_ = snap.Apply(p, gridgraph.TraversedPatch(true))
	}
	for _, p := range res.Path {
		_ = snap.Apply(p, gridgraph.PathPatch(true))
	}
	res.Grid = snap

	return res
}

// path walks parent links from the end back to the start.
func (r *runner) path() []gridgraph.Pos {
	at := r.g.Index(r.end)
	n := r.dist[at] + 1
	out := make([]gridgraph.Pos, n)
	for i := n - 1; at >= 0; i-- {
		out[i] = r.g.Coordinate(at)
		at = r.parent[at]
	}
	return out
}
