package playback

import (
	"time"

	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/maze"
	"github.com/katalvlaran/pathviz/search"
)

// FromSearch turns a search result into its animation: one traversed event
// per settled tile at i·TraversalDelay, then one path event per path tile
// at n·TraversalDelay + j·PathDelay, all scaled by Speed.
//
// Complexity: O(|TraversalOrder| + |Path|).
func FromSearch(res *search.Result, t Timing) []Event {
	if res == nil {
		return nil
	}
	n := len(res.TraversalOrder)
	out := make([]Event, 0, n+len(res.Path))
	for i, p := range res.TraversalOrder {
		out = append(out, Event{
			Pos:    p,
			Patch:  gridgraph.TraversedPatch(true),
			FireAt: t.scale(t.TraversalDelay, i),
			Kind:   EventTraversed,
		})
	}
	base := t.scale(t.TraversalDelay, n)
	for j, p := range res.Path {
		out = append(out, Event{
			Pos:    p,
			Patch:  gridgraph.PathPatch(true),
			FireAt: base + t.scale(t.PathDelay, j),
			Kind:   EventPath,
		})
	}
	return out
}

// FromMaze turns maze placements into wall events at i·MazeDelay, scaled by
// Speed.
//
// Complexity: O(|Placements|).
func FromMaze(res *maze.Result, t Timing) []Event {
	if res == nil {
		return nil
	}
	out := make([]Event, len(res.Placements))
	for i, pl := range res.Placements {
		out[i] = Event{
			Pos:    pl.Pos,
			Patch:  gridgraph.WallPatch(pl.Wall),
			FireAt: t.scale(t.MazeDelay, i),
			Kind:   EventWall,
		}
	}
	return out
}

// Concat appends b after a, shifting b so its first event fires gap after
// the last event of a. Neither input is modified.
func Concat(a []Event, gap time.Duration, b []Event) []Event {
	out := make([]Event, 0, len(a)+len(b))
	out = append(out, a...)
	var shift time.Duration
	if len(a) > 0 {
		shift = a[len(a)-1].FireAt + gap
	}
	for _, e := range b {
		e.FireAt += shift
		out = append(out, e)
	}
	return out
}

// Duration returns the FireAt of the last event, or 0 for an empty list.
func Duration(events []Event) time.Duration {
	if len(events) == 0 {
		return 0
	}
	return events[len(events)-1].FireAt
}
