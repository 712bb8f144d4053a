// SPDX-License-Identifier: MIT

package lattice

import (
	"math"
	"sort"

	"github.com/katalvlaran/xtalgraph/matrix"
	"github.com/katalvlaran/xtalgraph/unitcell"
)

// lePageBound bounds the coefficients of axis and normal candidates.
const lePageBound = 2

// Twofold is an approximate lattice twofold rotation.
type Twofold struct {
	// W is the integer rotation (row-vector action).
	W matrix.IMat3
	// Axis is the direct-lattice axis u.
	Axis matrix.IVec3
	// Normal is the reciprocal-lattice normal h.
	Normal matrix.IVec3
	// Delta is the angle between u and h in degrees.
	Delta float64
}

// Twofolds returns every twofold of the reduced cell with δ ≤ maxDelta,
// ordered by ascending δ (ties in enumeration order).
// For each axis only the normal with the smallest δ is kept.
//
// Complexity: O(D²) with D = 49 primitive directions.
func Twofolds(reduced unitcell.Cell, maxDelta float64) ([]Twofold, error) {
	g := reduced.Metric()
	gInv, err := g.Inverse()
	if err != nil {
		return nil, err
	}
	dirs := primitiveDirections(lePageBound)

	var out []Twofold
	for _, u := range dirs {
		best := Twofold{Delta: math.Inf(1)}
		for _, h := range dirs {
			uh := u.Dot(h)
			if uh != 1 && uh != -1 && uh != 2 && uh != -2 {
				continue
			}
			d := lePageDelta(u, h, g, gInv)
			if d <= maxDelta && d < best.Delta {
				best = Twofold{W: twofoldMatrix(u, h, uh), Axis: u, Normal: h, Delta: d}
			}
		}
		if !math.IsInf(best.Delta, 1) {
			out = append(out, best)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Delta < out[j].Delta })

	return out, nil
}

// primitiveDirections lists primitive vectors with coefficients in [-k,k]
// whose first non-zero component is positive.
func primitiveDirections(k int64) []matrix.IVec3 {
	var out []matrix.IVec3
	for i := -k; i <= k; i++ {
		for j := -k; j <= k; j++ {
			for l := -k; l <= k; l++ {
				v := matrix.IVec3{i, j, l}
				if v.IsZero() || v.Primitive() != v {
					continue
				}
				out = append(out, v)
			}
		}
	}

	return out
}

// lePageDelta returns the angle in degrees between direct axis u and
// reciprocal normal h: cos δ = |u·h| / (|u|·|h*|).
func lePageDelta(u, h matrix.IVec3, g, gInv matrix.Mat3) float64 {
	uf, hf := u.Float(), h.Float()
	nu := math.Sqrt(uf.Mul(g).Dot(uf))
	nh := math.Sqrt(hf.Mul(gInv).Dot(hf))
	cos := math.Abs(float64(u.Dot(h))) / (nu * nh)
	if cos > 1 {
		cos = 1
	}

	return math.Acos(cos) * 180 / math.Pi
}

// twofoldMatrix returns W = 2·hᵀu/(u·h) − I.
func twofoldMatrix(u, h matrix.IVec3, uh int64) matrix.IMat3 {
	var w matrix.IMat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			w[i][j] = 2 * h[i] * u[j] / uh
			if i == j {
				w[i][j]--
			}
		}
	}

	return w
}

// twofoldDelta recovers u and h from a twofold W and returns its δ.
// u spans the rows of I+W and h its columns.
func twofoldDelta(w matrix.IMat3, g, gInv matrix.Mat3) float64 {
	s := addI(matrix.IIdentity3(), w)
	u := firstNonZero(s)
	h := firstNonZero(s.T())

	return lePageDelta(u, h, g, gInv)
}
