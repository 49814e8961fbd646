package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/internal/ctxlog"
	"github.com/katalvlaran/pathviz/internal/pipeline"
	"github.com/katalvlaran/pathviz/maze"
	"github.com/katalvlaran/pathviz/playback"
	"github.com/katalvlaran/pathviz/search"
)

// RunsConfig holds the defaults applied to incoming run requests.
type RunsConfig struct {
	Rows   int             // Grid rows when the request leaves them zero
	Cols   int             // Grid columns when the request leaves them zero
	Timing playback.Timing // Delays; the request may override Speed
	Seed   func() int64    // Seed source when the request leaves it zero
	Clock  playback.Clock  // Clock driving streams; nil means real time
	Store  *RunStore       // Nil means a new store of DefaultStoreSize
}

// RunsController creates runs, serves them back and streams their
// playback.
type RunsController struct {
	cfg   RunsConfig
	store *RunStore
}

// NewRunsController fills unset fields of cfg with the package defaults.
func NewRunsController(cfg RunsConfig) *RunsController {
	if cfg.Rows == 0 {
		cfg.Rows = gridgraph.DefaultRows
	}
	if cfg.Cols == 0 {
		cfg.Cols = gridgraph.DefaultCols
	}
	if cfg.Timing == (playback.Timing{}) {
		cfg.Timing = playback.DefaultTiming()
	}
	if cfg.Seed == nil {
		cfg.Seed = func() int64 { return time.Now().UnixNano() }
	}
	if cfg.Clock == nil {
		cfg.Clock = playback.RealClock{}
	}
	store := cfg.Store
	if store == nil {
		store = NewRunStore(DefaultStoreSize)
	}
	return &RunsController{cfg: cfg, store: store}
}

// RegisterPublic registers public routes.
func (rc *RunsController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/options", rc.options)
	runs := route.Group("/runs")
	{
		runs.POST("", rc.create)
		runs.GET("/:ID", rc.get)
		runs.GET("/:ID/stream", rc.stream)
	}
}

// options lists the selectable algorithms, mazes and speeds.
func (rc *RunsController) options(ctx *gin.Context) {
	var resp OptionsResponse
	for _, a := range search.Algorithms {
		resp.Algorithms = append(resp.Algorithms, Option{Name: a.Label(), Value: a.String()})
	}
	for _, k := range maze.Kinds {
		resp.Mazes = append(resp.Mazes, Option{Name: k.Label(), Value: k.String()})
	}
	resp.Mazes = append(resp.Mazes, Option{Name: maze.Buildings.Label(), Value: maze.Buildings.String()})
	for _, s := range playback.Speeds {
		resp.Speeds = append(resp.Speeds, Option{Name: s.String(), Value: float64(s)})
	}
	ctx.JSON(http.StatusOK, resp)
}

// create runs the requested visualization and stores it.
func (rc *RunsController) create(ctx *gin.Context) {
	var request RunRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := rc.pipelineRequest(request)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := pipeline.Execute(ctx.Request.Context(), req)
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	run := &storedRun{response: newRunResponse(req, out), events: out.Events}
	rc.store.Put(run)
	ctxlog.FromContext(ctx.Request.Context()).Info("Run created",
		"run", run.response.ID,
		"algorithm", req.Algorithm,
		"maze", req.Maze,
		"found", run.response.Found)

	ctx.JSON(http.StatusCreated, run.response)
}

// get returns a stored run.
func (rc *RunsController) get(ctx *gin.Context) {
	run, ok := rc.lookup(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, run.response)
}

// stream replays a stored run as Server-Sent Events: one "tile" event per
// timeline entry at its scheduled time, then a "complete" event. Playback
// stops when the client goes away.
func (rc *RunsController) stream(ctx *gin.Context) {
	run, ok := rc.lookup(ctx)
	if !ok {
		return
	}
	logger := ctxlog.FromContext(ctx.Request.Context())

	tiles := make(chan TileMessage, len(run.events))
	done := make(chan struct{})
	seq := 0
	sched := playback.New(rc.cfg.Clock, playback.WithLogger(logger))
	h, err := sched.Schedule(run.events,
		func(e playback.Event) {
			tiles <- TileMessage{Seq: seq, Kind: e.Kind.String(), Pos: e.Pos, Patch: e.Patch}
			seq++
		},
		func() { close(done) },
	)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer sched.Cancel(h)

	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("X-Accel-Buffering", "no")
	ctx.Status(http.StatusOK)

	send := func(event string, data any) {
		ctx.SSEvent(event, data)
		ctx.Writer.Flush()
	}
	for {
		select {
		case <-ctx.Request.Context().Done():
			logger.Debug("Stream client gone", "run", run.response.ID)
			return
		case m := <-tiles:
			send("tile", m)
		case <-done:
			// Every tile was queued before done closed.
			for len(tiles) > 0 {
				send("tile", <-tiles)
			}
			send("complete", CompleteMessage{
				ID:           run.response.ID,
				Found:        run.response.Found,
				NodesVisited: run.response.NodesVisited,
				PathLength:   run.response.PathLength,
			})
			return
		}
	}
}

// lookup resolves the :ID parameter, writing the error response itself.
func (rc *RunsController) lookup(ctx *gin.Context) (*storedRun, bool) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return nil, false
	}
	run, ok := rc.store.Get(ID)
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return nil, false
	}
	return run, true
}

// pipelineRequest builds the grid and selectors from request.
func (rc *RunsController) pipelineRequest(request RunRequest) (pipeline.Request, error) {
	rows, cols := request.Rows, request.Cols
	if rows == 0 {
		rows = rc.cfg.Rows
	}
	if cols == 0 {
		cols = rc.cfg.Cols
	}
	start := gridgraph.Pos{Row: 1, Col: 1}
	if request.Start != nil {
		start = *request.Start
	}
	end := gridgraph.Pos{Row: rows - 2, Col: cols - 2}
	if request.End != nil {
		end = *request.End
	}

	g, err := gridgraph.New(rows, cols, start, end)
	if err != nil {
		return pipeline.Request{}, err
	}
	for _, p := range request.Walls {
		if _, err := g.SetWall(p, true); err != nil {
			return pipeline.Request{}, err
		}
	}

	alg, err := search.ParseAlgorithm(request.Algorithm)
	if err != nil {
		return pipeline.Request{}, err
	}
	kind, err := maze.ParseKind(request.Maze)
	if err != nil {
		return pipeline.Request{}, err
	}

	timing := rc.cfg.Timing
	if request.Speed != "" {
		if timing.Speed, err = playback.ParseSpeed(request.Speed); err != nil {
			return pipeline.Request{}, err
		}
	}

	seed := request.Seed
	if seed == 0 {
		seed = rc.cfg.Seed()
	}

	return pipeline.Request{
		Grid:      g,
		Maze:      kind,
		Buildings: request.Buildings,
		Algorithm: alg,
		Seed:      seed,
		Timing:    timing,
	}, nil
}

func newRunResponse(req pipeline.Request, out *pipeline.Outcome) *RunResponse {
	sr := out.Search
	return &RunResponse{
		ID:           uuid.New(),
		Algorithm:    req.Algorithm.String(),
		Maze:         req.Maze.String(),
		Speed:        req.Timing.Speed.String(),
		Seed:         req.Seed,
		Rows:         sr.Grid.Rows(),
		Cols:         sr.Grid.Cols(),
		Start:        sr.Grid.Start(),
		End:          sr.Grid.End(),
		Found:        sr.Found,
		NodesVisited: sr.NodesVisited(),
		PathLength:   sr.PathLength(),
		BaseWalls:    nonNil(out.Base.Walls()),
		Walls:        nonNil(sr.Grid.Walls()),
		Traversal:    nonNil(sr.TraversalOrder),
		Path:         nonNil(sr.Path),
		Events:       toEventDTOs(out.Events),
		DurationMs:   millis(playback.Duration(out.Events)),
		CreatedAt:    time.Now().UTC(),
	}
}
