package playback

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/katalvlaran/pathviz/gridgraph"
)

// Sentinel errors.
var (
	// ErrRunPending is returned by Schedule under PolicyReject while a run
	// has not yet completed or been cancelled.
	ErrRunPending = errors.New("playback: a run is already pending")

	// ErrUnknownSpeed indicates an unrecognised speed name.
	ErrUnknownSpeed = errors.New("playback: unknown speed")

	// ErrBadTiming indicates a negative delay or a non-positive speed.
	ErrBadTiming = errors.New("playback: invalid timing")
)

// EventKind tells a renderer which tile flag an event sets.
type EventKind int

const (
	// EventTraversed marks a tile settled by the search.
	EventTraversed EventKind = iota
	// EventPath marks a tile on the final path.
	EventPath
	// EventWall marks a wall placed by a maze generator.
	EventWall
)

// String returns "traversed", "path" or "wall".
func (k EventKind) String() string {
	switch k {
	case EventTraversed:
		return "traversed"
	case EventPath:
		return "path"
	case EventWall:
		return "wall"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k EventKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Event is one deferred tile update. FireAt is measured from the instant
// the run is scheduled.
type Event struct {
	Pos    gridgraph.Pos
	Patch  gridgraph.Patch
	FireAt time.Duration
	Kind   EventKind
}

// Speed multiplies every delay. Larger is slower.
type Speed float64

const (
	Slow   Speed = 2
	Medium Speed = 1
	Fast   Speed = 0.5
)

// Speeds lists the selectable speeds in display order.
var Speeds = []Speed{Slow, Medium, Fast}

// String returns "slow", "medium", "fast", or the raw factor.
func (s Speed) String() string {
	switch s {
	case Slow:
		return "slow"
	case Medium:
		return "medium"
	case Fast:
		return "fast"
	default:
		return fmt.Sprintf("x%g", float64(s))
	}
}

// ParseSpeed maps "slow", "medium" or "fast" (case-insensitive) to a Speed.
func ParseSpeed(s string) (Speed, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "slow":
		return Slow, nil
	case "medium", "":
		return Medium, nil
	case "fast":
		return Fast, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSpeed, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Speed) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Speed) UnmarshalText(b []byte) error {
	v, err := ParseSpeed(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Base delays between consecutive events at Medium speed.
const (
	DefaultTraversalDelay = 8 * time.Millisecond
	DefaultPathDelay      = 30 * time.Millisecond
	DefaultMazeDelay      = 8 * time.Millisecond
)

// Timing holds the per-event delays and the speed factor applied to them.
type Timing struct {
	TraversalDelay time.Duration
	PathDelay      time.Duration
	MazeDelay      time.Duration
	Speed          Speed
}

// DefaultTiming returns the reference delays at Medium speed.
func DefaultTiming() Timing {
	return Timing{
		TraversalDelay: DefaultTraversalDelay,
		PathDelay:      DefaultPathDelay,
		MazeDelay:      DefaultMazeDelay,
		Speed:          Medium,
	}
}

// Validate returns ErrBadTiming for negative delays or Speed ≤ 0.
func (t Timing) Validate() error {
	if t.TraversalDelay < 0 || t.PathDelay < 0 || t.MazeDelay < 0 {
		return fmt.Errorf("%w: negative delay", ErrBadTiming)
	}
	if t.Speed <= 0 {
		return fmt.Errorf("%w: speed %v", ErrBadTiming, float64(t.Speed))
	}
	return nil
}

// Step returns d scaled by Speed.
func (t Timing) Step(d time.Duration) time.Duration { return t.scale(d, 1) }

// scale applies the speed factor to n steps of d.
func (t Timing) scale(d time.Duration, n int) time.Duration {
	return time.Duration(float64(d) * float64(n) * float64(t.Speed))
}
