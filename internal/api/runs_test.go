package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathviz/internal/api"
	"github.com/katalvlaran/pathviz/playback"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// newServer mounts a runs controller with zero delays under /api/v1.
func newServer(t *testing.T) http.Handler {
	t.Helper()
	rc := api.NewRunsController(api.RunsConfig{
		Timing: playback.Timing{Speed: playback.Medium},
		Seed:   func() int64 { return 1 },
	})
	return api.NewRouter(api.Config{
		BaseURL:     "/api",
		Controllers: []api.Controller{rc},
	}).Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func createRun(t *testing.T, h http.Handler, body string) api.RunResponse {
	t.Helper()
	w := do(t, h, http.MethodPost, "/api/v1/runs", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp api.RunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

const openGrid = `{"rows":5,"cols":5,"start":{"row":0,"col":0},"end":{"row":4,"col":4},"algorithm":"DIJKSTRA"}`

// ---- 1. Options ----

func TestOptions(t *testing.T) {
	h := newServer(t)
	w := do(t, h, http.MethodGet, "/api/v1/options", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.OptionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Algorithms, 2)
	assert.Equal(t, "Dijkstra", resp.Algorithms[0].Name)
	assert.Equal(t, "A_STAR", resp.Algorithms[1].Value)
	require.Len(t, resp.Mazes, 4)
	assert.Equal(t, "NONE", resp.Mazes[0].Value)
	assert.Equal(t, "BUILDINGS", resp.Mazes[3].Value)
	assert.Len(t, resp.Speeds, 3)
}

// ---- 2. Create ----

func TestCreate_OpenGrid(t *testing.T) {
	resp := createRun(t, newServer(t), openGrid)

	assert.Equal(t, "DIJKSTRA", resp.Algorithm)
	assert.Equal(t, "NONE", resp.Maze)
	assert.True(t, resp.Found)
	assert.Equal(t, 25, resp.NodesVisited)
	assert.Equal(t, 9, resp.PathLength)
	assert.Len(t, resp.Traversal, 25)
	assert.Len(t, resp.Path, 9)
	assert.Len(t, resp.Events, 34)
	assert.Empty(t, resp.Walls)
	assert.Equal(t, "traversed", resp.Events[0].Kind)
	assert.Equal(t, "path", resp.Events[33].Kind)
	assert.Zero(t, resp.DurationMs)
}

func TestCreate_WallsAndDefaults(t *testing.T) {
	resp := createRun(t, newServer(t), `{"algorithm":"astar","walls":[{"row":2,"col":2},{"row":1,"col":1}]}`)

	assert.Equal(t, "A_STAR", resp.Algorithm)
	assert.Equal(t, 39, resp.Rows)
	assert.Equal(t, 49, resp.Cols)
	assert.Equal(t, 1, resp.Start.Row)
	assert.Equal(t, 47, resp.End.Col)
	// (1,1) is the start and is never walled.
	require.Len(t, resp.Walls, 1)
	assert.Equal(t, 2, resp.Walls[0].Row)
	assert.True(t, resp.Found)
}

func TestCreate_MazeIsReproducible(t *testing.T) {
	h := newServer(t)
	body := `{"algorithm":"A_STAR","maze":"RECURSIVE_DIVISION","seed":7}`
	a := createRun(t, h, body)
	b := createRun(t, h, body)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, int64(7), a.Seed)
	assert.Equal(t, "RECURSIVE_DIVISION", a.Maze)
	assert.Empty(t, a.BaseWalls)
	assert.NotEmpty(t, a.Walls)
	assert.Equal(t, a.Walls, b.Walls)
	assert.Equal(t, a.Traversal, b.Traversal)
	assert.True(t, a.Found)
	assert.Equal(t, "wall", a.Events[0].Kind)
}

func TestCreate_BuildingsSelector(t *testing.T) {
	resp := createRun(t, newServer(t), `{"algorithm":"DIJKSTRA","maze":"BUILDINGS","seed":3}`)
	assert.Equal(t, "BUILDINGS", resp.Maze)
	assert.NotEmpty(t, resp.Walls)
	assert.Empty(t, resp.BaseWalls)
}

func TestCreate_Rejects(t *testing.T) {
	h := newServer(t)
	cases := map[string]struct {
		body string
		code int
	}{
		"malformed":         {`{`, http.StatusBadRequest},
		"missing algorithm": {`{"rows":5,"cols":5}`, http.StatusBadRequest},
		"unknown algorithm": {`{"algorithm":"BFS"}`, http.StatusBadRequest},
		"unknown maze":      {`{"algorithm":"DIJKSTRA","maze":"PRIM"}`, http.StatusBadRequest},
		"unknown speed":     {`{"algorithm":"DIJKSTRA","speed":"warp"}`, http.StatusBadRequest},
		"too small":         {`{"algorithm":"DIJKSTRA","rows":2,"cols":5}`, http.StatusBadRequest},
		"density":           {`{"algorithm":"DIJKSTRA","buildings":1.5}`, http.StatusBadRequest},
		"wall off grid":     {`{"algorithm":"DIJKSTRA","walls":[{"row":99,"col":0}]}`, http.StatusBadRequest},
		"endpoint off grid": {`{"algorithm":"DIJKSTRA","rows":5,"cols":5,"end":{"row":5,"col":5}}`, http.StatusBadRequest},
		"same endpoints":    {`{"algorithm":"DIJKSTRA","start":{"row":1,"col":1},"end":{"row":1,"col":1}}`, http.StatusBadRequest},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/api/v1/runs", tc.body)
			assert.Equal(t, tc.code, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

// ---- 3. Lookup ----

func TestGet(t *testing.T) {
	h := newServer(t)
	created := createRun(t, h, openGrid)

	w := do(t, h, http.MethodGet, "/api/v1/runs/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	var got api.RunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Path, got.Path)

	w = do(t, h, http.MethodGet, "/api/v1/runs/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodGet, "/api/v1/runs/00000000-0000-0000-0000-000000000001", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ---- 4. Stream ----

func TestStream_PlaysEveryEventThenCompletes(t *testing.T) {
	h := newServer(t)
	created := createRun(t, h, openGrid)

	w := do(t, h, http.MethodGet, "/api/v1/runs/"+created.ID.String()+"/stream", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/event-stream")

	body := w.Body.String()
	assert.Equal(t, len(created.Events), strings.Count(body, "event:tile\n"))
	assert.Equal(t, 1, strings.Count(body, "event:complete\n"))
	assert.Greater(t, strings.LastIndex(body, "event:complete"), strings.LastIndex(body, "event:tile"))
	assert.Contains(t, body, `"isTraversed":true`)
	assert.Contains(t, body, `"isPath":true`)
	assert.Contains(t, body, `"nodesVisited":25`)
}

func TestStream_UnknownRun(t *testing.T) {
	w := do(t, newServer(t), http.MethodGet, "/api/v1/runs/00000000-0000-0000-0000-000000000001/stream", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
