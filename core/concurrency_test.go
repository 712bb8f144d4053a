// SPDX-License-Identifier: MIT

package core_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/xtalgraph/core"
)

// TestConcurrentAddEdge ensures that concurrent AddEdge calls are safe and
// all neighbors appear.
func TestConcurrentAddEdge(t *testing.T) {
	g := core.NewGraph()
	const num = 200
	var wg sync.WaitGroup
	wg.Add(num)
	for i := 0; i < num; i++ {
		go func(id int) {
			defer wg.Done()
			assert.NoError(t, g.AddEdge("X", fmt.Sprintf("V%d", id)))
		}(i)
	}
	wg.Wait()

	nbs, err := g.NeighborIDs("X")
	require.NoError(t, err)
	require.Len(t, nbs, num)
	require.Equal(t, num, g.EdgeCount())
}

// TestConcurrentReadersAndWriters mixes queries with inserts.
func TestConcurrentReadersAndWriters(t *testing.T) {
	g := core.NewGraph()
	const rounds = 100
	var wg sync.WaitGroup
	wg.Add(2 * rounds)
	for i := 0; i < rounds; i++ {
		go func(id int) {
			defer wg.Done()
			_ = g.AddEdge(fmt.Sprintf("L%d", id), fmt.Sprintf("R%d", id))
		}(i)
		go func() {
			defer wg.Done()
			for _, v := range g.Vertices() {
				_, _ = g.NeighborIDs(v)
			}
			_ = g.EdgeCount()
		}()
	}
	wg.Wait()
	require.Equal(t, rounds, g.EdgeCount())
	require.Equal(t, 2*rounds, g.VertexCount())
}
