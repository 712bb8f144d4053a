// SPDX-License-Identifier: MIT

package symmetry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/xtalgraph/symmetry"
	"github.com/katalvlaran/xtalgraph/unitcell"
)

func TestSpaceGroups_Table(t *testing.T) {
	sgs := symmetry.SpaceGroups()
	require.Len(t, sgs, 65)

	seen := map[int]bool{}
	for i, sg := range sgs {
		assert.False(t, seen[sg.Number], "duplicate %d", sg.Number)
		seen[sg.Number] = true
		if i > 0 {
			assert.Greater(t, sg.Number, sgs[i-1].Number)
		}
		pg := sg.Lattice()
		assert.LessOrEqual(t, pg.Number, sg.Number, "%s", sg)

		// every spaced symbol must round-trip through its compact spelling
		back, err := symmetry.ParseSpaceGroup(sg.Symbol)
		require.NoError(t, err)
		assert.Equal(t, sg, back)
	}
}

func TestParseSpaceGroup(t *testing.T) {
	cases := []struct {
		in     string
		number int
		pg     string
	}{
		{"P 41 21 2", 92, "P422"},
		{"P41212", 92, "P422"},
		{"p43212", 96, "P422"},
		{"P4122", 91, "P422"},
		{"P 4 21 2", 90, "P422"},
		{"P21", 4, "P2"},
		{"P2", 3, "P2"},
		{"P 1 21 1", 4, "P2"},
		{"C2", 5, "C2"},
		{"C 1 2 1", 5, "C2"},
		{"I2", 5, "I2"},
		{"I 1 2 1", 5, "I2"},
		{"P212121", 19, "P222"},
		{"C2221", 20, "C222"},
		{"I212121", 24, "I222"},
		{"H3", 146, "R3"},
		{"H32", 155, "R32"},
		{"R 3 :H", 146, "R3"},
		{"P3121", 152, "P321"},
		{"P3112", 151, "P312"},
		{"P6122", 178, "P622"},
		{"P213", 198, "P23"},
		{"F4132", 210, "F432"},
		{"19", 19, "P222"},
		{"1", 1, "P1"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			sg, err := symmetry.ParseSpaceGroup(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.number, sg.Number)
			assert.Equal(t, tc.pg, sg.Lattice().Short)
		})
	}
}

func TestParseSpaceGroup_Unknown(t *testing.T) {
	for _, in := range []string{"", "P-1", "P21/c", "2", "Fm-3m", "300", "X1"} {
		_, err := symmetry.ParseSpaceGroup(in)
		assert.ErrorIs(t, err, symmetry.ErrUnknownSpaceGroup, in)
	}
}

func TestPointGroups_Catalogue(t *testing.T) {
	pgs := symmetry.PointGroups()
	require.Len(t, pgs, 24)
	for i := 1; i < len(pgs); i++ {
		assert.Greater(t, pgs[i].Number, pgs[i-1].Number)
	}

	pg, err := symmetry.PointGroupByNumber(89)
	require.NoError(t, err)
	assert.Equal(t, "P 4 2 2", pg.Symbol)
	assert.Equal(t, symmetry.Tetragonal, pg.System)
	assert.Equal(t, 8, pg.Order())

	_, err = symmetry.PointGroupByNumber(4)
	assert.ErrorIs(t, err, symmetry.ErrUnknownPointGroup)
}

func TestPointGroupFor(t *testing.T) {
	pg, err := symmetry.PointGroupFor(symmetry.Rot432, symmetry.CenteringF)
	require.NoError(t, err)
	assert.Equal(t, 209, pg.Number)

	pg, err = symmetry.PointGroupFor(symmetry.Rot2, symmetry.CenteringI)
	require.NoError(t, err)
	assert.Equal(t, "I2", pg.Short)
	assert.Equal(t, 5, pg.Number)

	_, err = symmetry.PointGroupFor(symmetry.Rot4, symmetry.CenteringF)
	assert.ErrorIs(t, err, symmetry.ErrUnknownPointGroup)
}

func TestSymmetry_SameClass(t *testing.T) {
	cell := unitcell.MustNew(50, 60, 70, 90, 95, 90)
	c2, _ := symmetry.ParseSpaceGroup("C2")
	i2, _ := symmetry.ParseSpaceGroup("I2")
	p21, _ := symmetry.ParseSpaceGroup("P21")

	a := symmetry.FromSpaceGroup(c2, cell)
	b := symmetry.FromSpaceGroup(i2, cell)
	c := symmetry.FromSpaceGroup(p21, cell)

	assert.True(t, a.SameClass(b))
	assert.False(t, a.SameClass(c))
	assert.True(t, a.Op.IsIdentity())
	assert.Equal(t, "C2 (50.00 60.00 70.00 90.00 95.00 90.00)", a.String())
}

func TestCrystalSystem_String(t *testing.T) {
	assert.Equal(t, "cubic", symmetry.Cubic.String())
	assert.Equal(t, "CrystalSystem(9)", symmetry.CrystalSystem(9).String())
}
