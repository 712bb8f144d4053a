// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/xtalgraph/core"
)

// Components returns the connected components of g. Each component lists
// its vertices in BFS order from its smallest ID; components are ordered by
// their smallest ID. A cancelled context aborts with ctx.Err() and no
// partial result.
//
// Complexity: O(V + E).
func Components(g *core.Graph, opts ...Option) ([][]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	vertices := g.Vertices()
	visited := make(map[string]bool, len(vertices))
	var out [][]string
	for _, v := range vertices {
		if visited[v] {
			continue
		}
		comp, err := walk(o.Ctx, g, v, visited)
		if err != nil {
			return nil, err
		}
		out = append(out, comp)
	}

	return out, nil
}

// walk visits everything reachable from start that is not yet in visited
// and returns it in visit order. Neighbors are queued in ascending ID order.
func walk(ctx context.Context, g *core.Graph, start string, visited map[string]bool) ([]string, error) {
	visited[start] = true
	queue := []string{start}
	var order []string
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cur := queue[0]
		queue = queue[1:]
		order = append(order, cur)

		neighbors, err := g.NeighborIDs(cur)
		if err != nil {
			return nil, fmt.Errorf("%w: neighbors of %q: %v", ErrNeighbors, cur, err)
		}
		for _, nbr := range neighbors {
			if visited[nbr] {
				continue
			}
			visited[nbr] = true
			queue = append(queue, nbr)
		}
	}

	return order, nil
}
