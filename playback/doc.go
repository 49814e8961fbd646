// Package playback turns search and maze results into timed tile updates
// and plays them back.
//
// What:
//
//   - FromSearch / FromMaze build ordered Event lists: traversed tiles at a
//     short step, then path tiles at a longer one, or maze walls.
//   - Scheduler fires one list at a time against a Clock, in order, and
//     signals completion once. Cancel stops a run logically; a new run
//     replaces (or, with PolicyReject, is refused by) a pending one.
//
// Why:
//
//	The search itself is instant. The animation is a separate concern, so
//	it is replayed from an immutable trace and never feeds back into the
//	algorithms.
//
// Clocks:
//
//   - RealClock uses time.AfterFunc; callbacks arrive on timer goroutines
//     and are serialised by the Scheduler.
//   - ManualClock only moves on Advance, which makes tests deterministic.
//
// Errors:
//
//   - ErrRunPending, ErrUnknownSpeed, ErrBadTiming.
package playback
