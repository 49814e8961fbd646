// Package search defines the algorithm selector, result type, options and
// sentinel errors for grid shortest-path searches.
//
// Options:
//
//	– MaxDistance: optional cap; tiles farther than this from the start are not settled.
//	– OnSettle:    callback invoked each time a tile is settled (visit order).
//
// Errors (sentinel):
//
//	– ErrNilGrid          if the grid pointer is nil.
//	– ErrDirtyGrid        if the grid still carries state from a previous run.
//	– ErrUnknownAlgorithm if the algorithm selector is not recognised.
//	– ErrBadMaxDistance   if MaxDistance < 0 (raised via panic in the option).
package search

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/pathviz/gridgraph"
)

// Sentinel errors returned by the search engine.
var (
	// ErrNilGrid indicates that a nil *gridgraph.Grid was passed.
	ErrNilGrid = errors.New("search: grid is nil")

	// ErrDirtyGrid indicates that the grid still holds traversal state;
	// call ResetRun before searching again.
	ErrDirtyGrid = errors.New("search: grid carries a previous run, call ResetRun first")

	// ErrUnknownAlgorithm indicates an unrecognised algorithm selector.
	ErrUnknownAlgorithm = errors.New("search: unknown algorithm")

	// ErrBadMaxDistance indicates that MaxDistance was set to a negative value.
	ErrBadMaxDistance = errors.New("search: MaxDistance must be non-negative")
)

// Algorithm selects the priority function of the shared search loop.
type Algorithm int

const (
	// Dijkstra orders the frontier by distance from the start.
	Dijkstra Algorithm = iota
	// AStar orders the frontier by distance plus Manhattan distance to the end.
	AStar
)

// Algorithms lists every supported selector in display order.
var Algorithms = []Algorithm{Dijkstra, AStar}

// String returns the wire name: DIJKSTRA or A_STAR.
func (a Algorithm) String() string {
	switch a {
	case Dijkstra:
		return "DIJKSTRA"
	case AStar:
		return "A_STAR"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// Label returns the human-readable name shown in selectors.
func (a Algorithm) Label() string {
	switch a {
	case Dijkstra:
		return "Dijkstra"
	case AStar:
		return "A-Star"
	default:
		return a.String()
	}
}

// Valid reports whether a is a known selector.
func (a Algorithm) Valid() bool {
	return a == Dijkstra || a == AStar
}

// ParseAlgorithm maps a wire name (case-insensitive; "ASTAR" and "A*" are
// accepted for A*) to an Algorithm. Returns ErrUnknownAlgorithm otherwise.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DIJKSTRA":
		return Dijkstra, nil
	case "A_STAR", "ASTAR", "A*", "A-STAR":
		return AStar, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Algorithm) UnmarshalText(b []byte) error {
	v, err := ParseAlgorithm(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Result is the outcome of one search. It is never modified after return.
//
//   - TraversalOrder: tiles in the order they were settled, start first.
//   - Path:           start → end inclusive; empty when the end is unreachable.
//   - Grid:           checkpoint copy of the input with labels, traversed and
//     path flags applied. The caller's grid is untouched.
type Result struct {
	Algorithm      Algorithm
	TraversalOrder []gridgraph.Pos
	Path           []gridgraph.Pos
	Found          bool
	Grid           *gridgraph.Grid
}

// NodesVisited returns |TraversalOrder|.
func (r *Result) NodesVisited() int { return len(r.TraversalOrder) }

// PathLength returns |Path| (tiles, start and end included).
func (r *Result) PathLength() int { return len(r.Path) }

// Options configures a search run.
//
// MaxDistance – tiles whose distance would exceed this are not relaxed.
//
//	Must be ≥ 0. Default is math.MaxInt (no cap).
//
// OnSettle    – called with each settled tile and its final distance.
type Options struct {
	MaxDistance int
	OnSettle    func(p gridgraph.Pos, distance int)
}

// Option represents a functional option for configuring a search.
type Option func(*Options)

// WithMaxDistance caps exploration at the given distance from the start.
// Panics on negative values.
func WithMaxDistance(max int) Option {
	if max < 0 {
		panic(ErrBadMaxDistance.Error())
	}
	return func(o *Options) {
		o.MaxDistance = max
	}
}

// WithOnSettle registers a callback run whenever a tile is settled.
// A nil fn is ignored.
func WithOnSettle(fn func(p gridgraph.Pos, distance int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnSettle = fn
		}
	}
}

// DefaultOptions returns Options with no distance cap and a no-op hook.
func DefaultOptions() Options {
	return Options{
		MaxDistance: math.MaxInt,
		OnSettle:    func(gridgraph.Pos, int) {},
	}
}
