package playback_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/playback"
)

// recorder collects callbacks; it is only touched from dispatch.
type recorder struct {
	mu       sync.Mutex
	applied  []gridgraph.Pos
	complete int
}

func (r *recorder) apply(e playback.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applied = append(r.applied, e.Pos)
}

func (r *recorder) done() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.complete++
}

func (r *recorder) snapshot() ([]gridgraph.Pos, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]gridgraph.Pos(nil), r.applied...), r.complete
}

// line returns n wall events along row 0, step apart.
func line(n int, step time.Duration) []playback.Event {
	out := make([]playback.Event, n)
	for i := range out {
		out[i] = playback.Event{
			Pos:    gridgraph.Pos{Row: 0, Col: i},
			Patch:  gridgraph.WallPatch(true),
			FireAt: time.Duration(i) * step,
			Kind:   playback.EventWall,
		}
	}
	return out
}

func newManual() (*playback.ManualClock, *playback.Scheduler) {
	clk := playback.NewManualClock(time.Unix(0, 0))
	return clk, playback.New(clk)
}

// ------------------------------------------------------------------------
// 1. Ordering and timing
// ------------------------------------------------------------------------

func TestSchedule_FiresInOrderAtOffsets(t *testing.T) {
	clk, s := newManual()
	rec := &recorder{}

	_, err := s.Schedule(line(3, 8*time.Millisecond), rec.apply, rec.done)
	require.NoError(t, err)
	assert.True(t, s.HasPendingRun())

	clk.Advance(0)
	got, done := rec.snapshot()
	assert.Len(t, got, 1)
	assert.Equal(t, 0, done)

	clk.Advance(7 * time.Millisecond)
	got, _ = rec.snapshot()
	assert.Len(t, got, 1, "second event is due at 8ms")

	clk.Advance(time.Millisecond)
	got, _ = rec.snapshot()
	assert.Len(t, got, 2)

	clk.Advance(time.Second)
	got, done = rec.snapshot()
	assert.Equal(t, []gridgraph.Pos{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}, got)
	assert.Equal(t, 1, done)
	assert.False(t, s.HasPendingRun())
	assert.Equal(t, 0, clk.Pending(), "no timer left armed")
}

func TestSchedule_EqualOffsetsKeepListOrder(t *testing.T) {
	clk, s := newManual()
	rec := &recorder{}

	_, err := s.Schedule(line(20, 0), rec.apply, rec.done)
	require.NoError(t, err)
	clk.Advance(0)

	got, done := rec.snapshot()
	require.Len(t, got, 20)
	for i, p := range got {
		assert.Equal(t, i, p.Col)
	}
	assert.Equal(t, 1, done)
}

func TestSchedule_EmptyListCompletes(t *testing.T) {
	clk, s := newManual()
	rec := &recorder{}

	_, err := s.Schedule(nil, rec.apply, rec.done)
	require.NoError(t, err)
	assert.True(t, s.HasPendingRun())

	clk.Advance(0)
	got, done := rec.snapshot()
	assert.Empty(t, got)
	assert.Equal(t, 1, done)
	assert.False(t, s.HasPendingRun())
}

func TestSchedule_NilCallbacks(t *testing.T) {
	clk, s := newManual()
	_, err := s.Schedule(line(2, time.Millisecond), nil, nil)
	require.NoError(t, err)
	assert.NotPanics(t, func() { clk.Advance(time.Second) })
	assert.False(t, s.HasPendingRun())
}

// ------------------------------------------------------------------------
// 2. Cancellation and misuse policies
// ------------------------------------------------------------------------

func TestCancel_StopsRemainingEvents(t *testing.T) {
	clk, s := newManual()
	rec := &recorder{}

	h, err := s.Schedule(line(5, 10*time.Millisecond), rec.apply, rec.done)
	require.NoError(t, err)
	clk.Advance(15 * time.Millisecond)

	assert.True(t, s.Cancel(h))
	assert.False(t, s.Cancel(h), "second cancel is a no-op")
	assert.False(t, s.HasPendingRun())

	clk.Advance(time.Second)
	got, done := rec.snapshot()
	assert.Len(t, got, 2, "events fired before Cancel stay fired")
	assert.Equal(t, 0, done, "cancelled runs never complete")
}

func TestCancel_FromCallback(t *testing.T) {
	clk, s := newManual()
	rec := &recorder{}
	var h playback.Handle

	h, err := s.Schedule(line(5, time.Millisecond), func(e playback.Event) {
		rec.apply(e)
		if e.Pos.Col == 1 {
			s.Cancel(h)
		}
	}, rec.done)
	require.NoError(t, err)

	clk.Advance(time.Second)
	got, done := rec.snapshot()
	assert.Len(t, got, 2)
	assert.Equal(t, 0, done)
}

func TestCancel_StaleHandle(t *testing.T) {
	clk, s := newManual()
	old, err := s.Schedule(line(1, 0), nil, nil)
	require.NoError(t, err)
	clk.Advance(0)

	_, err = s.Schedule(line(3, time.Millisecond), nil, nil)
	require.NoError(t, err)
	assert.False(t, s.Cancel(old), "finished run must not cancel its successor")
	assert.True(t, s.HasPendingRun())
	assert.False(t, s.Cancel(playback.Handle{}))
}

func TestSchedule_ReplacePolicy(t *testing.T) {
	clk, s := newManual()
	first, second := &recorder{}, &recorder{}

	h1, err := s.Schedule(line(3, 10*time.Millisecond), first.apply, first.done)
	require.NoError(t, err)
	clk.Advance(0)

	h2, err := s.Schedule(line(2, 10*time.Millisecond), second.apply, second.done)
	require.NoError(t, err)
	assert.NotEqual(t, h1.ID, h2.ID)

	clk.Advance(time.Second)
	got1, done1 := first.snapshot()
	got2, done2 := second.snapshot()
	assert.Len(t, got1, 1)
	assert.Equal(t, 0, done1)
	assert.Len(t, got2, 2)
	assert.Equal(t, 1, done2)
}

func TestSchedule_RejectPolicy(t *testing.T) {
	clk := playback.NewManualClock(time.Unix(0, 0))
	s := playback.New(clk, playback.WithPolicy(playback.PolicyReject))
	rec := &recorder{}

	_, err := s.Schedule(line(2, time.Millisecond), rec.apply, rec.done)
	require.NoError(t, err)

	_, err = s.Schedule(line(2, time.Millisecond), nil, nil)
	assert.ErrorIs(t, err, playback.ErrRunPending)

	clk.Advance(time.Second)
	_, done := rec.snapshot()
	assert.Equal(t, 1, done, "rejected schedule leaves the pending run alone")

	_, err = s.Schedule(nil, nil, nil)
	assert.NoError(t, err, "accepted once the previous run completed")
}

func TestSchedule_ChainFromOnComplete(t *testing.T) {
	clk := playback.NewManualClock(time.Unix(0, 0))
	s := playback.New(clk, playback.WithPolicy(playback.PolicyReject))
	rec := &recorder{}

	_, err := s.Schedule(line(2, time.Millisecond), rec.apply, func() {
		_, err := s.Schedule(line(3, time.Millisecond), rec.apply, rec.done)
		assert.NoError(t, err)
	})
	require.NoError(t, err)

	clk.Advance(time.Second)
	got, done := rec.snapshot()
	assert.Len(t, got, 5)
	assert.Equal(t, 1, done)
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { playback.WithLogger(nil) })
	assert.Panics(t, func() { playback.WithPolicy(playback.Policy(9)) })
}

// ------------------------------------------------------------------------
// 3. Real clock
// ------------------------------------------------------------------------

func TestScheduler_RealClock(t *testing.T) {
	s := playback.New(nil)
	rec := &recorder{}
	finished := make(chan struct{})

	_, err := s.Schedule(line(50, 0), rec.apply, func() {
		rec.done()
		close(finished)
	})
	require.NoError(t, err)

	// Caller edits interleave with dispatch but never overlap it.
	for i := 0; i < 10; i++ {
		s.Do(func() {})
	}

	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("run did not complete")
	}
	got, done := rec.snapshot()
	require.Len(t, got, 50)
	for i, p := range got {
		assert.Equal(t, i, p.Col)
	}
	assert.Equal(t, 1, done)
}

func TestCancel_InsideDoIsFinal(t *testing.T) {
	s := playback.New(playback.RealClock{})
	rec := &recorder{}
	h, err := s.Schedule(line(1000, 200*time.Microsecond), rec.apply, rec.done)
	require.NoError(t, err)

	deadline := time.Now().Add(5 * time.Second)
	for {
		got, _ := rec.snapshot()
		if len(got) >= 5 {
			break
		}
		require.True(t, time.Now().Before(deadline), "run did not start")
		time.Sleep(100 * time.Microsecond)
	}

	var (
		cancelled bool
		atCancel  int
	)
	s.Do(func() {
		cancelled = s.Cancel(h)
		got, _ := rec.snapshot()
		atCancel = len(got)
	})
	require.True(t, cancelled)

	time.Sleep(20 * time.Millisecond)
	got, done := rec.snapshot()
	assert.Len(t, got, atCancel, "no event applies after a Cancel made inside Do")
	assert.Zero(t, done)
	assert.False(t, s.HasPendingRun())
}
