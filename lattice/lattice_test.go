// SPDX-License-Identifier: MIT

package lattice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/xtalgraph/cbop"
	"github.com/katalvlaran/xtalgraph/lattice"
	"github.com/katalvlaran/xtalgraph/matrix"
	"github.com/katalvlaran/xtalgraph/unitcell"
)

const maxDelta = 3.0

// primitiveOf applies num/den (rows over the conventional basis) to conv.
func primitiveOf(t *testing.T, conv unitcell.Cell, num matrix.IMat3, den int64) unitcell.Cell {
	t.Helper()
	op, err := cbop.New(num, matrix.IVec3{}, den)
	require.NoError(t, err)
	p, err := op.Apply(conv)
	require.NoError(t, err)

	return p
}

func pointGroupNumbers(a *lattice.Analysis) []int {
	out := make([]int, len(a.Settings))
	for i, s := range a.Settings {
		out[i] = s.PointGroup.Number
	}

	return out
}

func settingFor(t *testing.T, a *lattice.Analysis, short string) lattice.Setting {
	t.Helper()
	for _, s := range a.Settings {
		if s.PointGroup.Short == short {
			return s
		}
	}
	require.Failf(t, "setting not found", "%s not in %v", short, pointGroupNumbers(a))

	return lattice.Setting{}
}

func assertCell(t *testing.T, want [6]float64, got unitcell.Cell, delta float64) {
	t.Helper()
	p := got.Parameters()
	for i := range want {
		assert.InDelta(t, want[i], p[i], delta, "parameter %d of %s", i, got)
	}
}

// assertOpReproduces checks that the setting operator maps the input onto the setting cell.
func assertOpReproduces(t *testing.T, a *lattice.Analysis, s lattice.Setting) {
	t.Helper()
	got, err := s.Op.Apply(a.Input)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, unitcell.Distance(got, s.Cell), 1e-6)
}

func TestTwofolds_Cubic(t *testing.T) {
	c := unitcell.MustNew(10, 10, 10, 90, 90, 90)
	tw, err := lattice.Twofolds(c, maxDelta)
	require.NoError(t, err)
	require.Len(t, tw, 9)
	for _, f := range tw {
		assert.InDelta(t, 0.0, f.Delta, 1e-9)
		// metric invariance W·G·Wᵀ = G
		g := c.Metric()
		back := g.Congruent(f.W.Float())
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				assert.InDelta(t, g[i][j], back[i][j], 1e-9)
			}
		}
	}
}

func TestTwofolds_DistortionBound(t *testing.T) {
	// 4° away from orthogonal in β
	c := unitcell.MustNew(10, 12, 14, 90, 94, 90)
	tw, err := lattice.Twofolds(c, 3)
	require.NoError(t, err)
	assert.Len(t, tw, 1, "only the b twofold stays within 3°")

	tw, err = lattice.Twofolds(c, 5)
	require.NoError(t, err)
	assert.Len(t, tw, 3)
	assert.LessOrEqual(t, tw[0].Delta, tw[1].Delta)
}

func TestHolohedry_Orders(t *testing.T) {
	cases := []struct {
		name  string
		cell  unitcell.Cell
		order int
	}{
		{"cubic", unitcell.MustNew(10, 10, 10, 90, 90, 90), 24},
		{"tetragonal", unitcell.MustNew(10, 10, 20, 90, 90, 90), 8},
		{"orthorhombic", unitcell.MustNew(10, 12, 14, 90, 90, 90), 4},
		{"hexagonal", unitcell.MustNew(10, 10, 15, 90, 90, 120), 12},
		{"monoclinic", unitcell.MustNew(10, 12, 14, 90, 105, 90), 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			red, _, err := unitcell.Reduce(tc.cell)
			require.NoError(t, err)
			h, err := lattice.Holohedry(red, maxDelta)
			require.NoError(t, err)
			assert.Len(t, h, tc.order)
		})
	}
}

func TestClosure_RejectsShear(t *testing.T) {
	_, err := lattice.Closure([]matrix.IMat3{{{1, 1, 0}, {0, 1, 0}, {0, 0, 1}}})
	assert.ErrorIs(t, err, lattice.ErrNotCrystallographic)

	h, err := lattice.Closure([]matrix.IMat3{{{0, 1, 0}, {-1, 0, 0}, {0, 0, 1}}})
	require.NoError(t, err)
	assert.Len(t, h, 4)
	rot, err := lattice.Classify(h)
	require.NoError(t, err)
	assert.Equal(t, "4", rot)
}

func TestSubgroups_CubicClasses(t *testing.T) {
	c := unitcell.MustNew(10, 10, 10, 90, 90, 90)
	h, err := lattice.Holohedry(c, maxDelta)
	require.NoError(t, err)
	subs := lattice.Subgroups(h)
	require.Len(t, subs, 11)
	assert.Len(t, subs[0], 1)
	assert.Len(t, subs[len(subs)-1], 24)
	for i := 1; i < len(subs); i++ {
		assert.LessOrEqual(t, len(subs[i-1]), len(subs[i]))
	}
}

func TestAnalyze_CubicP(t *testing.T) {
	a, err := lattice.Analyze(unitcell.MustNew(10, 10, 10, 90, 90, 90), maxDelta)
	require.NoError(t, err)
	assert.Empty(t, a.Skipped)
	assert.ElementsMatch(t, []int{1, 3, 5, 146, 16, 21, 75, 155, 89, 195, 207}, pointGroupNumbers(a))

	s := settingFor(t, a, "P432")
	assertCell(t, [6]float64{10, 10, 10, 90, 90, 90}, s.Cell, 1e-6)
	assertOpReproduces(t, a, s)

	r := settingFor(t, a, "R3")
	assertCell(t, [6]float64{14.1421356, 14.1421356, 17.3205081, 90, 90, 120}, r.Cell, 1e-6)
}

func TestAnalyze_Tetragonal(t *testing.T) {
	a, err := lattice.Analyze(unitcell.MustNew(10, 10, 20, 90, 90, 90), maxDelta)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 3, 3, 5, 16, 21, 75, 89}, pointGroupNumbers(a))

	s := settingFor(t, a, "P422")
	assertCell(t, [6]float64{10, 10, 20, 90, 90, 90}, s.Cell, 1e-6)
	c222 := settingFor(t, a, "C222")
	assertCell(t, [6]float64{14.1421356, 14.1421356, 20, 90, 90, 90}, c222.Cell, 1e-6)
	assertOpReproduces(t, a, c222)
}

func TestAnalyze_BodyCentredCubic(t *testing.T) {
	conv := unitcell.MustNew(10, 10, 10, 90, 90, 90)
	p := primitiveOf(t, conv, matrix.IMat3{{-1, 1, 1}, {1, -1, 1}, {1, 1, -1}}, 2)
	assert.InDelta(t, 8.660254, p.A, 1e-6)
	assert.InDelta(t, 109.4712, p.Alpha, 1e-4)

	a, err := lattice.Analyze(p, maxDelta)
	require.NoError(t, err)
	assert.Len(t, a.Holohedry, 24)
	s := settingFor(t, a, "I432")
	assertCell(t, [6]float64{10, 10, 10, 90, 90, 90}, s.Cell, 1e-6)
	assertOpReproduces(t, a, s)
}

func TestAnalyze_FaceCentredCubic(t *testing.T) {
	conv := unitcell.MustNew(10, 10, 10, 90, 90, 90)
	p := primitiveOf(t, conv, matrix.IMat3{{0, 1, 1}, {1, 0, 1}, {1, 1, 0}}, 2)
	assert.InDelta(t, 7.0710678, p.A, 1e-6)
	assert.InDelta(t, 60.0, p.Gamma, 1e-6)

	a, err := lattice.Analyze(p, maxDelta)
	require.NoError(t, err)
	s := settingFor(t, a, "F432")
	assertCell(t, [6]float64{10, 10, 10, 90, 90, 90}, s.Cell, 1e-6)
	assert.InDelta(t, 4.0, s.Op.Det(), 1e-9)
}

func TestAnalyze_Rhombohedral(t *testing.T) {
	hex := unitcell.MustNew(10, 10, 30, 90, 90, 120)
	p := primitiveOf(t, hex, matrix.IMat3{{2, 1, 1}, {-1, 1, 1}, {-1, -2, 1}}, 3)

	a, err := lattice.Analyze(p, maxDelta)
	require.NoError(t, err)
	assert.Len(t, a.Holohedry, 6)
	assert.ElementsMatch(t, []int{1, 5, 146, 155}, pointGroupNumbers(a))

	s := settingFor(t, a, "R32")
	assertCell(t, [6]float64{10, 10, 30, 90, 90, 120}, s.Cell, 1e-6)
	assertOpReproduces(t, a, s)
}

func TestAnalyze_Hexagonal(t *testing.T) {
	a, err := lattice.Analyze(unitcell.MustNew(10, 10, 15, 90, 90, 120), maxDelta)
	require.NoError(t, err)
	s := settingFor(t, a, "P622")
	assertCell(t, [6]float64{10, 10, 15, 90, 90, 120}, s.Cell, 1e-6)
	settingFor(t, a, "P312")
	settingFor(t, a, "P321")
	settingFor(t, a, "P6")
	settingFor(t, a, "P3")
}

func TestAnalyze_MonoclinicC(t *testing.T) {
	conv := unitcell.MustNew(50, 60, 70, 90, 100, 90)
	p := primitiveOf(t, conv, matrix.IMat3{{1, 1, 0}, {-1, 1, 0}, {0, 0, 2}}, 2)

	a, err := lattice.Analyze(p, maxDelta)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 5}, pointGroupNumbers(a))

	s := settingFor(t, a, "C2")
	assert.False(t, s.Atypical)
	assert.InDelta(t, 60.0, s.Cell.B, 1e-6)
	assert.GreaterOrEqual(t, s.Cell.Beta, 90.0)
	assert.InDelta(t, 90.0, s.Cell.Alpha, 1e-6)
	assert.InDelta(t, 90.0, s.Cell.Gamma, 1e-6)
	assertOpReproduces(t, a, s)
}

func TestAnalyze_MonoclinicBetaFlip(t *testing.T) {
	a, err := lattice.Analyze(unitcell.MustNew(40, 50, 60, 90, 80, 90), maxDelta)
	require.NoError(t, err)
	s := settingFor(t, a, "P2")
	assert.InDelta(t, 100.0, s.Cell.Beta, 1e-6)
	assert.InDelta(t, 50.0, s.Cell.B, 1e-6)
}

func TestAnalyze_Triclinic(t *testing.T) {
	a, err := lattice.Analyze(unitcell.MustNew(10, 12, 14, 70, 110, 75), 1)
	require.NoError(t, err)
	require.Len(t, a.Settings, 1)
	assert.Equal(t, "P1", a.Settings[0].PointGroup.Short)
	assertCell(t, a.Reduced.Parameters(), a.Settings[0].Cell, 1e-9)
}

func TestAnalyze_MaxDeltaBounds(t *testing.T) {
	c := unitcell.MustNew(10, 10, 10, 90, 90, 90)
	for _, d := range []float64{-1, 90, 120} {
		_, err := lattice.Analyze(c, d)
		assert.ErrorIs(t, err, lattice.ErrMaxDelta)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	c := unitcell.MustNew(78.1, 78.3, 37.2, 90.2, 89.9, 90.1)
	first, err := lattice.Analyze(c, maxDelta)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := lattice.Analyze(c, maxDelta)
		require.NoError(t, err)
		assert.Equal(t, first.Settings, again.Settings)
	}
}
