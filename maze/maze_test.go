// SPDX-License-Identifier: MIT

package maze_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/maze"
)

// randomEndpoints returns a rows×cols grid with start and end placed
// uniformly at random (distinct).
func randomEndpoints(t *testing.T, rng *rand.Rand, rows, cols int) *gridgraph.Grid {
	t.Helper()
	start := gridgraph.Pos{Row: rng.Intn(rows), Col: rng.Intn(cols)}
	end := start
	for end == start {
		end = gridgraph.Pos{Row: rng.Intn(rows), Col: rng.Intn(cols)}
	}
	g, err := gridgraph.New(rows, cols, start, end)
	require.NoError(t, err)
	return g
}

// assertSingleRegion checks the invariants every maze must hold: endpoints
// open, one open region, and the placements replaying to the result grid.
func assertSingleRegion(t *testing.T, in *gridgraph.Grid, res *maze.Result, msg string) {
	t.Helper()
	out := res.Grid
	assert.False(t, out.IsWall(out.Start()), "%s: start walled", msg)
	assert.False(t, out.IsWall(out.End()), "%s: end walled", msg)
	assert.True(t, out.Connected(out.Start(), out.End()), "%s: endpoints disconnected\n%s", msg, out)
	assert.Len(t, out.ConnectedComponents(), 1, "%s: open cells split\n%s", msg, out)

	replay := in.Clone()
	replay.ResetAll()
	for _, p := range res.Placements {
		assert.True(t, p.Wall)
		changed, err := replay.SetWall(p.Pos, true)
		require.NoError(t, err)
		assert.True(t, changed, "%s: %s placed twice", msg, p.Pos)
	}
	assert.Equal(t, out.Walls(), replay.Walls(), msg)
}

// ------------------------------------------------------------------------
// 1. Validation
// ------------------------------------------------------------------------

func TestGenerate_Errors(t *testing.T) {
	_, err := maze.Generate(nil, maze.BinaryTree)
	assert.ErrorIs(t, err, maze.ErrNilGrid)

	g := gridgraph.NewDefault()
	_, err = maze.Generate(g, maze.Kind(42))
	assert.ErrorIs(t, err, maze.ErrUnknownKind)

	small, err := gridgraph.New(2, 9, gridgraph.Pos{Row: 0, Col: 0}, gridgraph.Pos{Row: 1, Col: 8})
	require.NoError(t, err)
	for _, k := range []maze.Kind{maze.BinaryTree, maze.RecursiveDivision} {
		_, err = maze.Generate(small, k)
		assert.ErrorIs(t, err, maze.ErrGridTooSmall, k.String())
	}
	// None and Buildings accept any grid.
	_, err = maze.Generate(small, maze.None)
	assert.NoError(t, err)
	_, err = maze.Generate(small, maze.Buildings)
	assert.NoError(t, err)
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { maze.WithRand(nil) })
	assert.Panics(t, func() { maze.WithDensity(-0.1) })
	assert.Panics(t, func() { maze.WithDensity(1.5) })
	assert.NotPanics(t, func() { maze.WithDensity(0) })
}

func TestBuildings_BadDensity(t *testing.T) {
	_, err := maze.Scatter(gridgraph.NewDefault(), 2)
	assert.ErrorIs(t, err, maze.ErrBadDensity)
}

func TestParseKind(t *testing.T) {
	cases := map[string]maze.Kind{
		"NONE":               maze.None,
		"":                   maze.None,
		"binary_tree":        maze.BinaryTree,
		"RECURSIVE_DIVISION": maze.RecursiveDivision,
		"Buildings":          maze.Buildings,
	}
	for in, want := range cases {
		got, err := maze.ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := maze.ParseKind("PRIM")
	assert.ErrorIs(t, err, maze.ErrUnknownKind)
}

// ------------------------------------------------------------------------
// 2. None
// ------------------------------------------------------------------------

func TestNone_ClearsGrid(t *testing.T) {
	g := gridgraph.NewDefault()
	_, _ = g.SetWall(gridgraph.Pos{Row: 3, Col: 3}, true)
	require.NoError(t, g.Apply(gridgraph.Pos{Row: 4, Col: 4}, gridgraph.TraversedPatch(true)))

	res, err := maze.Generate(g, maze.None)
	require.NoError(t, err)

	assert.Empty(t, res.Placements)
	assert.Empty(t, res.Grid.Walls())
	assert.False(t, res.Grid.Dirty())
	assert.Equal(t, g.Start(), res.Grid.Start())
	// Input untouched.
	assert.True(t, g.IsWall(gridgraph.Pos{Row: 3, Col: 3}))
}

// ------------------------------------------------------------------------
// 3. Binary tree
// ------------------------------------------------------------------------

func TestBinaryTree_DefaultGrid(t *testing.T) {
	g := gridgraph.NewDefault()
	for seed := int64(1); seed <= 40; seed++ {
		res, err := maze.Generate(g, maze.BinaryTree, maze.WithSeed(seed))
		require.NoError(t, err)
		assert.Equal(t, maze.BinaryTree, res.Kind)
		assertSingleRegion(t, g, res, "seed")

		// Rooms are never walled; placements are row-major.
		for r := 1; r < g.Rows(); r += 2 {
			for c := 1; c < g.Cols(); c += 2 {
				assert.False(t, res.Grid.IsWall(gridgraph.Pos{Row: r, Col: c}))
			}
		}
		for i := 1; i < len(res.Placements); i++ {
			assert.Less(t, g.Index(res.Placements[i-1].Pos), g.Index(res.Placements[i].Pos))
		}
	}
	assert.Empty(t, g.Walls(), "input must stay clear")
}

func TestBinaryTree_AnyEndpoints(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 200; trial++ {
		g := randomEndpoints(t, rng, 3+rng.Intn(12), 3+rng.Intn(12))
		res, err := maze.Generate(g, maze.BinaryTree, maze.WithRand(rng))
		require.NoError(t, err)
		assertSingleRegion(t, g, res, "binary tree")
	}
}

// ------------------------------------------------------------------------
// 4. Recursive division
// ------------------------------------------------------------------------

func TestRecursiveDivision_DefaultGrid(t *testing.T) {
	g := gridgraph.NewDefault()
	for seed := int64(1); seed <= 40; seed++ {
		res, err := maze.Generate(g, maze.RecursiveDivision, maze.WithSeed(seed))
		require.NoError(t, err)
		assertSingleRegion(t, g, res, "recursive division")

		// The border is closed and comes first, top row leading.
		for c := 0; c < g.Cols(); c++ {
			assert.Equal(t, gridgraph.Pos{Row: 0, Col: c}, res.Placements[c].Pos)
			assert.True(t, res.Grid.IsWall(gridgraph.Pos{Row: g.Rows() - 1, Col: c}))
		}
		for r := 0; r < g.Rows(); r++ {
			assert.True(t, res.Grid.IsWall(gridgraph.Pos{Row: r, Col: 0}))
			assert.True(t, res.Grid.IsWall(gridgraph.Pos{Row: r, Col: g.Cols() - 1}))
		}
		// Odd interior cells are never on a dividing wall.
		for r := 1; r < g.Rows()-1; r += 2 {
			for c := 1; c < g.Cols()-1; c += 2 {
				assert.False(t, res.Grid.IsWall(gridgraph.Pos{Row: r, Col: c}))
			}
		}
	}
}

func TestRecursiveDivision_AnyEndpoints(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	for trial := 0; trial < 300; trial++ {
		g := randomEndpoints(t, rng, 3+rng.Intn(14), 3+rng.Intn(14))
		res, err := maze.Generate(g, maze.RecursiveDivision, maze.WithRand(rng))
		require.NoError(t, err)
		assertSingleRegion(t, g, res, "recursive division")
	}
}

func TestRecursiveDivision_CornerEndpoints(t *testing.T) {
	g, err := gridgraph.New(3, 3, gridgraph.Pos{Row: 0, Col: 0}, gridgraph.Pos{Row: 2, Col: 2})
	require.NoError(t, err)

	res, err := maze.Generate(g, maze.RecursiveDivision)
	require.NoError(t, err)
	assert.Equal(t, "S.#\n#..\n##E\n", res.Grid.String())
}

// ------------------------------------------------------------------------
// 5. Buildings and determinism
// ------------------------------------------------------------------------

func TestBuildings_KeepsExistingWalls(t *testing.T) {
	g := gridgraph.NewDefault()
	wall := gridgraph.Pos{Row: 5, Col: 5}
	_, _ = g.SetWall(wall, true)

	res, err := maze.Scatter(g, 1)
	require.NoError(t, err)
	assert.Equal(t, g.Len()-3, len(res.Placements), "every open tile but the endpoints")
	assert.True(t, res.Grid.IsWall(wall))
	assert.False(t, res.Grid.IsWall(g.Start()))
	assert.False(t, res.Grid.IsWall(g.End()))

	res, err = maze.Scatter(g, 0)
	require.NoError(t, err)
	assert.Empty(t, res.Placements)
	assert.Equal(t, []gridgraph.Pos{wall}, res.Grid.Walls())
}

func TestBuildings_DefaultDensity(t *testing.T) {
	g := gridgraph.NewDefault()
	res, err := maze.Generate(g, maze.Buildings, maze.WithSeed(5))
	require.NoError(t, err)

	ratio := float64(len(res.Placements)) / float64(g.Len()-2)
	assert.InDelta(t, maze.DefaultDensity, ratio, 0.05)
}

func TestGenerate_Deterministic(t *testing.T) {
	g := gridgraph.NewDefault()
	for _, k := range []maze.Kind{maze.BinaryTree, maze.RecursiveDivision, maze.Buildings} {
		a, err := maze.Generate(g, k, maze.WithSeed(99))
		require.NoError(t, err)
		b, err := maze.Generate(g, k, maze.WithSeed(99))
		require.NoError(t, err)
		assert.Equal(t, a.Placements, b.Placements, k.String())

		// seed 0 maps to the package default.
		c, err := maze.Generate(g, k, maze.WithSeed(0))
		require.NoError(t, err)
		d, err := maze.Generate(g, k)
		require.NoError(t, err)
		assert.Equal(t, c.Placements, d.Placements, k.String())
	}
}
