package search_test

import (
	"fmt"

	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/search"
)

// ExampleRunAStar finds the way around a wall and prints the checkpoint grid.
func ExampleRunAStar() {
	g, _ := gridgraph.FromLayout([]string{
		"S.#..",
		"..#..",
		"....E",
	})
	res, err := search.RunAStar(g)
	if err != nil {
		panic(err)
	}
	fmt.Println("found:", res.Found, "path:", res.PathLength())
	fmt.Print(res.Grid)
	// Output:
	// found: true path: 7
	// S*#..
	// .*#..
	// .***E
}

// ExampleRun_unreachable shows that a sealed end is not an error.
func ExampleRun_unreachable() {
	g, _ := gridgraph.FromLayout([]string{
		"S#E",
	})
	res, _ := search.Run(g, search.Dijkstra)
	fmt.Println(res.Found, res.NodesVisited(), res.PathLength())
	// Output: false 1 0
}
