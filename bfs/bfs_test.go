// SPDX-License-Identifier: MIT

package bfs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/xtalgraph/bfs"
	"github.com/katalvlaran/xtalgraph/core"
)

func buildGraph(t *testing.T, edges [][2]string, isolated ...string) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e[0], e[1]))
	}
	for _, v := range isolated {
		require.NoError(t, g.AddVertex(v))
	}

	return g
}

func TestComponents(t *testing.T) {
	g := buildGraph(t,
		[][2]string{{"d", "e"}, {"a", "c"}, {"c", "b"}, {"f", "e"}},
		"z", "g",
	)
	comps, err := bfs.Components(g)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "c", "b"}, {"d", "e", "f"}, {"g"}, {"z"}}, comps)
}

// TestComponents_BFSOrder covers a 4-cycle A–B–C–D–A plus a tail: the walk
// visits by distance, breaking ties by ID.
func TestComponents_BFSOrder(t *testing.T) {
	g := buildGraph(t, [][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}, {"D", "A"}, {"C", "E"}})
	comps, err := bfs.Components(g)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "B", "D", "C", "E"}}, comps)
}

func TestComponents_Errors(t *testing.T) {
	_, err := bfs.Components(nil)
	assert.ErrorIs(t, err, bfs.ErrGraphNil)

	_, err = bfs.Components(core.NewGraph(), bfs.WithContext(nil))
	assert.ErrorIs(t, err, bfs.ErrOptionViolation)
}

func TestComponents_Cancelled(t *testing.T) {
	g := buildGraph(t, [][2]string{{"a", "b"}}, "c")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	comps, err := bfs.Components(g, bfs.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, comps)
}

func TestComponents_Empty(t *testing.T) {
	comps, err := bfs.Components(core.NewGraph())
	require.NoError(t, err)
	assert.Empty(t, comps)
}
