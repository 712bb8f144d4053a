// SPDX-License-Identifier: MIT

package lattice

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/xtalgraph/matrix"
	"github.com/katalvlaran/xtalgraph/symmetry"
)

// ErrCentering indicates a conventional basis whose extra lattice points do
// not match any standard centering.
var ErrCentering = errors.New("lattice: unrecognised centering")

// twelfths is the common denominator of every centering translation.
const twelfths = 12

// centeringPattern lists the non-zero translations, in twelfths.
type centeringPattern struct {
	centering symmetry.Centering
	reverse   bool
	points    []matrix.IVec3
}

var centeringPatterns = []centeringPattern{
	{symmetry.CenteringP, false, nil},
	{symmetry.CenteringC, false, []matrix.IVec3{{6, 6, 0}}},
	{symmetry.CenteringA, false, []matrix.IVec3{{0, 6, 6}}},
	{symmetry.CenteringB, false, []matrix.IVec3{{6, 0, 6}}},
	{symmetry.CenteringI, false, []matrix.IVec3{{6, 6, 6}}},
	{symmetry.CenteringF, false, []matrix.IVec3{{0, 6, 6}, {6, 0, 6}, {6, 6, 0}}},
	{symmetry.CenteringR, false, []matrix.IVec3{{8, 4, 4}, {4, 8, 8}}},
	{symmetry.CenteringR, true, []matrix.IVec3{{4, 8, 4}, {8, 4, 8}}},
}

// detectCentering classifies the lattice points of the reduced lattice
// inside the cell spanned by the rows of b (det b in 1..4). A reduced-basis
// point x sits at fractional position x·adj(b)/det(b) of the new cell.
// reverse reports the reverse rhombohedral setting.
func detectCentering(b matrix.IMat3) (c symmetry.Centering, reverse bool, err error) {
	d := b.Det()
	if d < 1 || d > 4 {
		return "", false, fmt.Errorf("%w: determinant %d", ErrCentering, d)
	}
	adj := b.Adjugate()
	points := map[matrix.IVec3]bool{}
	for i := int64(0); i < d; i++ {
		for j := int64(0); j < d; j++ {
			for k := int64(0); k < d; k++ {
				y := matrix.IVec3{i, j, k}.Mul(adj)
				var t matrix.IVec3
				for n := 0; n < 3; n++ {
					t[n] = mod(y[n], d) * (twelfths / d)
				}
				if !t.IsZero() {
					points[t] = true
				}
			}
		}
	}
	for _, p := range centeringPatterns {
		if len(p.points) != len(points) {
			continue
		}
		match := true
		for _, q := range p.points {
			if !points[q] {
				match = false
				break
			}
		}
		if match {
			return p.centering, p.reverse, nil
		}
	}

	return "", false, fmt.Errorf("%w: basis %s", ErrCentering, b)
}

func mod(a, m int64) int64 {
	r := a % m
	if r < 0 {
		r += m
	}

	return r
}
