// SPDX-License-Identifier: MIT

package core_test

import (
	"fmt"

	"github.com/katalvlaran/xtalgraph/core"
)

// ExampleGraph links three observations and lists the neighbours of one.
func ExampleGraph() {
	g := core.NewGraph()
	_ = g.AddEdge("run_01", "run_02")
	_ = g.AddEdge("run_03", "run_01")

	nbs, _ := g.NeighborIDs("run_01")
	fmt.Println(nbs, g.EdgeCount())
	// Output: [run_02 run_03] 2
}
