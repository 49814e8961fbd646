package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/playback"
)

// RunRequest is the body of POST /runs. Zero Rows/Cols and nil endpoints
// fall back to the server defaults.
type RunRequest struct {
	Rows      int             `json:"rows" binding:"omitempty,min=3,max=500"`
	Cols      int             `json:"cols" binding:"omitempty,min=3,max=500"`
	Start     *gridgraph.Pos  `json:"start"`
	End       *gridgraph.Pos  `json:"end"`
	Walls     []gridgraph.Pos `json:"walls"`
	Algorithm string          `json:"algorithm" binding:"required"`
	Maze      string          `json:"maze"`
	Seed      int64           `json:"seed"`
	Buildings float64         `json:"buildings" binding:"gte=0,lte=1"`
	Speed     string          `json:"speed"`
}

// Option is one selectable value with its display name.
type Option struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// OptionsResponse lists the selectable algorithms, mazes and speeds.
type OptionsResponse struct {
	Algorithms []Option `json:"algorithms"`
	Mazes      []Option `json:"mazes"`
	Speeds     []Option `json:"speeds"`
}

// EventDTO is one timeline entry.
type EventDTO struct {
	Kind     string        `json:"kind"`
	Pos      gridgraph.Pos `json:"pos"`
	FireAtMs float64       `json:"fireAtMs"`
}

// RunResponse describes a stored run.
type RunResponse struct {
	ID           uuid.UUID       `json:"id"`
	Algorithm    string          `json:"algorithm"`
	Maze         string          `json:"maze"`
	Speed        string          `json:"speed"`
	Seed         int64           `json:"seed"`
	Rows         int             `json:"rows"`
	Cols         int             `json:"cols"`
	Start        gridgraph.Pos   `json:"start"`
	End          gridgraph.Pos   `json:"end"`
	Found        bool            `json:"found"`
	NodesVisited int             `json:"nodesVisited"`
	PathLength   int             `json:"pathLength"`
	BaseWalls    []gridgraph.Pos `json:"baseWalls"`
	Walls        []gridgraph.Pos `json:"walls"`
	Traversal    []gridgraph.Pos `json:"traversal"`
	Path         []gridgraph.Pos `json:"path"`
	Events       []EventDTO      `json:"events"`
	DurationMs   float64         `json:"durationMs"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// TileMessage is the payload of a "tile" stream event.
type TileMessage struct {
	Seq   int             `json:"seq"`
	Kind  string          `json:"kind"`
	Pos   gridgraph.Pos   `json:"pos"`
	Patch gridgraph.Patch `json:"patch"`
}

// CompleteMessage is the payload of the final "complete" stream event.
type CompleteMessage struct {
	ID           uuid.UUID `json:"id"`
	Found        bool      `json:"found"`
	NodesVisited int       `json:"nodesVisited"`
	PathLength   int       `json:"pathLength"`
}

func toEventDTOs(events []playback.Event) []EventDTO {
	out := make([]EventDTO, len(events))
	for i, e := range events {
		out[i] = EventDTO{
			Kind:     e.Kind.String(),
			Pos:      e.Pos,
			FireAtMs: millis(e.FireAt),
		}
	}
	return out
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// nonNil keeps empty lists as [] in JSON.
func nonNil(ps []gridgraph.Pos) []gridgraph.Pos {
	if ps == nil {
		return []gridgraph.Pos{}
	}
	return ps
}
