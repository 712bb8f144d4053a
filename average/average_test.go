// SPDX-License-Identifier: MIT

package average_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/xtalgraph/average"
	"github.com/katalvlaran/xtalgraph/compat"
	"github.com/katalvlaran/xtalgraph/reindex"
	"github.com/katalvlaran/xtalgraph/unitcell"
)

// setCells holds coset sets keyed by ordered pair (lo, hi).
type setCells map[[2]int]reindex.CosetSet

func (s setCells) Cosets(i, j int) (reindex.CosetSet, bool) {
	if i > j {
		i, j = j, i
	}
	set, ok := s[[2]int{i, j}]

	return set, ok
}

func assertCell(t *testing.T, want, got unitcell.Cell) {
	t.Helper()
	w, g := want.Parameters(), got.Parameters()
	for i := range w {
		assert.InDelta(t, w[i], g[i], 1e-6, "parameter %d of %s vs %s", i, want, got)
	}
}

func TestAverage_Untransformed(t *testing.T) {
	cells := []unitcell.Cell{
		unitcell.MustNew(10, 20, 30, 90, 90, 90),
		unitcell.MustNew(10.2, 20.2, 30.2, 91, 89, 90),
	}
	got, err := average.Average([]int{0, 1}, cells, setCells{}, 0)
	require.NoError(t, err)
	assertCell(t, unitcell.MustNew(10.1, 20.1, 30.1, 90.5, 89.5, 90), got)

	// nil lookup averages as given
	got, err = average.Average([]int{1, 0}, cells, nil, 1)
	require.NoError(t, err)
	assertCell(t, unitcell.MustNew(10.1, 20.1, 30.1, 90.5, 89.5, 90), got)
}

func TestAverage_UsesCosetDirection(t *testing.T) {
	a := unitcell.MustNew(10, 20, 30, 90, 90, 90)
	b := unitcell.MustNew(20.2, 30.2, 10.2, 90, 90, 90)
	set, err := reindex.FindCosets(a, b, 0.1, 5)
	require.NoError(t, err)
	require.False(t, set.Empty())

	cells := []unitcell.Cell{a, b}
	lookup := setCells{{0, 1}: set}

	// ref 0: b is brought back into a's basis
	got, err := average.Average([]int{0, 1}, cells, lookup, 0)
	require.NoError(t, err)
	assertCell(t, unitcell.MustNew(10.1, 20.1, 30.1, 90, 90, 90), got)

	// ref 1: a is carried forward into b's basis
	got, err = average.Average([]int{0, 1}, cells, lookup, 1)
	require.NoError(t, err)
	assertCell(t, unitcell.MustNew(20.1, 30.1, 10.1, 90, 90, 90), got)
}

// TestAverage_ReferenceChange checks that moving the reference to a
// coset-related member transforms the average by that member's operator.
func TestAverage_ReferenceChange(t *testing.T) {
	cells := []unitcell.Cell{
		unitcell.MustNew(10, 20, 30, 90, 90, 90),
		unitcell.MustNew(20.3, 29.7, 10.1, 90, 90, 90),
		unitcell.MustNew(10.1, 20.2, 29.8, 90, 90, 90),
	}
	g, err := compat.Build(context.Background(), []string{"a", "b", "c"}, cells, 0.1, 5)
	require.NoError(t, err)
	groups, err := g.Groups(context.Background())
	require.NoError(t, err)
	require.Equal(t, [][]int{{0, 1, 2}}, groups)

	avg0, err := average.Average(groups[0], cells, g, 0)
	require.NoError(t, err)
	avg1, err := average.Average(groups[0], cells, g, 1)
	require.NoError(t, err)

	set, ok := g.Cosets(0, 1)
	require.True(t, ok)
	op, _ := set.Canonical()
	moved, err := op.Apply(avg0)
	require.NoError(t, err)
	assertCell(t, avg1, moved)
}

func TestAverage_OrderIndependent(t *testing.T) {
	cells := []unitcell.Cell{
		unitcell.MustNew(50, 60, 70, 90, 95, 90),
		unitcell.MustNew(50.5, 60.3, 69.1, 90, 95.5, 90),
		unitcell.MustNew(49.7, 59.9, 70.4, 90, 94.1, 90),
	}
	x, err := average.Average([]int{0, 1, 2}, cells, nil, 0)
	require.NoError(t, err)
	y, err := average.Average([]int{2, 0, 1}, cells, nil, 0)
	require.NoError(t, err)
	assertCell(t, x, y)
}

func TestAverage_Errors(t *testing.T) {
	cells := []unitcell.Cell{unitcell.MustNew(10, 10, 10, 90, 90, 90)}

	_, err := average.Average(nil, cells, nil, 0)
	assert.ErrorIs(t, err, average.ErrEmptyGroup)

	_, err = average.Average([]int{0}, cells, nil, 3)
	assert.ErrorIs(t, err, average.ErrReferenceNotMember)

	_, err = average.Average([]int{0, 4}, cells, nil, 0)
	assert.ErrorIs(t, err, average.ErrIndexOutOfRange)

	_, err = average.Mean(nil)
	assert.ErrorIs(t, err, average.ErrEmptyGroup)
}
