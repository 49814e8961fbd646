package playback

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Policy decides what Schedule does while another run is pending.
type Policy int

const (
	// PolicyReplace cancels the pending run and starts the new one.
	PolicyReplace Policy = iota
	// PolicyReject refuses the new run with ErrRunPending.
	PolicyReject
)

// Options configures a Scheduler.
type Options struct {
	Policy Policy
	Logger *slog.Logger
}

// Option mutates Options.
type Option func(*Options)

// WithPolicy sets the behaviour of Schedule while a run is pending.
// Panics on an unknown policy.
func WithPolicy(p Policy) Option {
	if p != PolicyReplace && p != PolicyReject {
		panic("playback: unknown policy")
	}
	return func(o *Options) { o.Policy = p }
}

// WithLogger traces run lifecycle at debug level. Panics if l is nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("playback: WithLogger(nil)")
	}
	return func(o *Options) { o.Logger = l }
}

// Handle identifies a scheduled run.
type Handle struct {
	ID  uuid.UUID
	gen uint64
}

// String returns the run id.
func (h Handle) String() string { return h.ID.String() }

// run is the state of one scheduled event list.
type run struct {
	handle     Handle
	events     []Event
	next       int
	started    time.Time
	timer      Timer
	onApply    func(Event)
	onComplete func()
}

// Scheduler plays event lists back against a Clock, one run at a time.
//
// Events fire strictly in list order, each at its FireAt offset from the
// moment Schedule was called. Only one timer is armed at any moment: the
// next one is armed when the previous event is taken, so callbacks never
// overtake each other even on a real clock.
//
// Callbacks run one at a time. They may call Schedule, Cancel, Stop and
// HasPendingRun, but not Do. Callers that edit shared state outside the
// callbacks wrap the edit in Do to serialise it with dispatch.
//
// An event is fired once the scheduler takes it off the list; Cancel
// invalidates every event not yet taken. Fired events are not undone.
type Scheduler struct {
	clock  Clock
	policy Policy
	log    *slog.Logger

	mu  sync.Mutex // guards gen and cur
	gen uint64
	cur *run

	dispatch sync.Mutex // held while a callback or Do body runs
}

// New returns a Scheduler on clock; a nil clock means RealClock.
func New(clock Clock, opts ...Option) *Scheduler {
	o := Options{Policy: PolicyReplace, Logger: slog.New(discardHandler{})}
	for _, opt := range opts {
		opt(&o)
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &Scheduler{clock: clock, policy: o.Policy, log: o.Logger}
}

// Schedule starts playing events. onApply receives every event in order;
// onComplete runs once after the last one, or on the first tick for an
// empty list. Either callback may be nil.
//
// Under PolicyReplace a pending run is cancelled first; under PolicyReject
// ErrRunPending is returned and nothing changes.
func (s *Scheduler) Schedule(events []Event, onApply func(Event), onComplete func()) (Handle, error) {
	if onApply == nil {
		onApply = func(Event) {}
	}
	if onComplete == nil {
		onComplete = func() {}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur != nil {
		if s.policy == PolicyReject {
			return Handle{}, ErrRunPending
		}
		s.cancelLocked("replaced")
	}

	s.gen++
	r := &run{
		handle:     Handle{ID: uuid.New(), gen: s.gen},
		events:     append([]Event(nil), events...),
		started:    s.clock.Now(),
		onApply:    onApply,
		onComplete: onComplete,
	}
	s.cur = r
	s.armLocked(r)
	s.log.Debug("playback run scheduled", "run", r.handle.ID, "events", len(r.events), "duration", Duration(r.events))

	return r.handle, nil
}

// Cancel invalidates the run h if it is still pending and reports whether
// it did. A cancelled run never calls onComplete.
//
// An event already taken by a concurrent dispatch may still apply after
// Cancel returns. Call Cancel inside Do, or from a callback, for a hard
// stop.
func (s *Scheduler) Cancel(h Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil || s.cur.handle.gen != h.gen {
		return false
	}
	s.cancelLocked("cancelled")
	return true
}

// Stop cancels whatever run is pending and reports whether there was one.
// The same caveat as Cancel applies.
func (s *Scheduler) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return false
	}
	s.cancelLocked("stopped")
	return true
}

// HasPendingRun reports whether a run has neither completed nor been
// cancelled.
func (s *Scheduler) HasPendingRun() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur != nil
}

// Do runs f while no callback is being dispatched.
func (s *Scheduler) Do(f func()) {
	s.dispatch.Lock()
	defer s.dispatch.Unlock()
	f()
}

// cancelLocked drops the current run; s.mu must be held.
func (s *Scheduler) cancelLocked(reason string) {
	r := s.cur
	if r.timer != nil {
		r.timer.Stop()
	}
	s.cur = nil
	s.log.Debug("playback run "+reason, "run", r.handle.ID, "fired", r.next, "events", len(r.events))
}

// armLocked arms the timer for r's next event; s.mu must be held.
func (s *Scheduler) armLocked(r *run) {
	var delay time.Duration
	if r.next < len(r.events) {
		delay = r.events[r.next].FireAt - s.clock.Now().Sub(r.started)
		if delay < 0 {
			delay = 0
		}
	}
	r.timer = s.clock.AfterFunc(delay, func() { s.fire(r) })
}

// fire takes r's next event, arms the following one and dispatches.
func (s *Scheduler) fire(r *run) {
	s.dispatch.Lock()
	defer s.dispatch.Unlock()

	s.mu.Lock()
	if s.cur != r {
		s.mu.Unlock()
		return
	}
	var (
		ev  Event
		has bool
	)
	if r.next < len(r.events) {
		ev, has = r.events[r.next], true
		r.next++
	}
	done := r.next >= len(r.events)
	if done {
		s.cur = nil
		s.log.Debug("playback run complete", "run", r.handle.ID, "events", len(r.events))
	} else {
		s.armLocked(r)
	}
	s.mu.Unlock()

	if has {
		r.onApply(ev)
	}
	if done {
		r.onComplete()
	}
}

// discardHandler drops every record.
type discardHandler struct{}

func (discardHandler) Enabled(_ context.Context, _ slog.Level) bool  { return false }
func (discardHandler) Handle(_ context.Context, _ slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler          { return d }
func (d discardHandler) WithGroup(string) slog.Handler               { return d }
