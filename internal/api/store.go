package api

import (
	"sync"

	"github.com/google/uuid"

	"github.com/katalvlaran/pathviz/playback"
)

// DefaultStoreSize is how many runs the in-memory store keeps.
const DefaultStoreSize = 256

// storedRun is a finished run kept for lookup and streaming.
type storedRun struct {
	response *RunResponse
	events   []playback.Event
}

// RunStore keeps the most recent runs in memory for the process lifetime.
// The oldest run is evicted once the store is full.
type RunStore struct {
	mu    sync.RWMutex
	max   int
	runs  map[uuid.UUID]*storedRun
	order []uuid.UUID
}

// NewRunStore returns a store holding at most max runs (DefaultStoreSize
// when max ≤ 0).
func NewRunStore(max int) *RunStore {
	if max <= 0 {
		max = DefaultStoreSize
	}
	return &RunStore{max: max, runs: make(map[uuid.UUID]*storedRun)}
}

// Put stores run under its response id.
func (s *RunStore) Put(run *storedRun) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := run.response.ID
	if _, ok := s.runs[id]; !ok {
		s.order = append(s.order, id)
	}
	s.runs[id] = run
	for len(s.order) > s.max {
		delete(s.runs, s.order[0])
		s.order = s.order[1:]
	}
}

// Get returns the run with id.
func (s *RunStore) Get(id uuid.UUID) (*storedRun, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	return r, ok
}

// Len returns the number of stored runs.
func (s *RunStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}
