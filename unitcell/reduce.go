// SPDX-License-Identifier: MIT

package unitcell

import (
	"math"
	"sort"

	"github.com/katalvlaran/xtalgraph/matrix"
)

const (
	// maxReduceIter bounds the reduction loop; real cells converge in a handful of steps.
	maxReduceIter = 200

	// reduceEps is the relative improvement a step must achieve to be applied.
	reduceEps = 1e-9

	// zeroCosEps classifies a metric off-diagonal as zero relative to √(GᵢᵢGⱼⱼ).
	zeroCosEps = 1e-9
)

// Reduce returns a reduced (shortest-basis) setting of c and the unimodular
// operator M (det +1) such that reduced = c.TransformInt(M).
//
// Implementation:
//   - Stage 1: order basis vectors by length.
//   - Stage 2: pairwise size reduction bᵢ ← bᵢ − n·bⱼ while it strictly shortens bᵢ.
//   - Stage 3: three-term reduction bₖ ← bₖ ± bᵢ ± bⱼ while it strictly shortens bₖ.
//   - Stage 4: right-handedness, then sign normalisation so the off-diagonal metric
//     terms are either all positive or all non-positive (Niggli type I / II).
//
// Determinism: every step scans indices and sign choices in a fixed order.
// Complexity: O(maxReduceIter) with constant work per iteration.
func Reduce(c Cell) (Cell, matrix.IMat3, error) {
	if err := c.Validate(); err != nil {
		return Cell{}, matrix.IMat3{}, err
	}
	g0 := c.Metric()
	m := matrix.IIdentity3()

	for iter := 0; iter < maxReduceIter; iter++ {
		m = sortByLength(m, g0)
		if next, ok := sizeReduce(m, g0); ok {
			m = next
			continue
		}
		if next, ok := tripleReduce(m, g0); ok {
			m = next
			continue
		}
		break
	}
	if m.Det() < 0 {
		m = m.Neg()
	}
	m = normalizeSigns(m, g0)

	out, err := c.TransformInt(m)
	if err != nil {
		return Cell{}, matrix.IMat3{}, err
	}

	return out, m, nil
}

// sortByLength reorders the rows of m by ascending vector length (stable).
func sortByLength(m matrix.IMat3, g0 matrix.Mat3) matrix.IMat3 {
	idx := []int{0, 1, 2}
	lens := [3]float64{}
	for i := 0; i < 3; i++ {
		lens[i] = norm2(m.Row(i), g0)
	}
	sort.SliceStable(idx, func(x, y int) bool { return lens[idx[x]] < lens[idx[y]] })

	return matrix.FromRows(m.Row(idx[0]), m.Row(idx[1]), m.Row(idx[2]))
}

// sizeReduce applies the first strictly shortening bᵢ ← bᵢ − n·bⱼ.
func sizeReduce(m matrix.IMat3, g0 matrix.Mat3) (matrix.IMat3, bool) {
	g := g0.Congruent(m.Float())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == j {
				continue
			}
			if math.Abs(g[i][j]) <= 0.5*g[j][j]*(1+reduceEps) {
				continue
			}
			n := int64(math.Round(g[i][j] / g[j][j]))
			if n == 0 {
				continue
			}
			m[i] = m.Row(i).Add(m.Row(j).Scale(-n))

			return m, true
		}
	}

	return m, false
}

// tripleReduce tries bₖ ± bᵢ ± bⱼ for the longest vectors first.
func tripleReduce(m matrix.IMat3, g0 matrix.Mat3) (matrix.IMat3, bool) {
	signs := [4][2]int64{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	for k := 2; k >= 0; k-- {
		i, j := (k+1)%3, (k+2)%3
		if i > j {
			i, j = j, i
		}
		cur := norm2(m.Row(k), g0)
		for _, s := range signs {
			v := m.Row(k).Add(m.Row(i).Scale(s[0])).Add(m.Row(j).Scale(s[1]))
			if norm2(v, g0) < cur*(1-reduceEps) {
				m[k] = v

				return m, true
			}
		}
	}

	return m, false
}

// normalizeSigns flips pairs of basis vectors (keeping det) so that the
// off-diagonal metric entries are all > 0 when their product is positive,
// and all ≤ 0 otherwise.
func normalizeSigns(m matrix.IMat3, g0 matrix.Mat3) matrix.IMat3 {
	g := g0.Congruent(m.Float())
	s01 := signOf(g[0][1], g[0][0], g[1][1])
	s02 := signOf(g[0][2], g[0][0], g[2][2])
	s12 := signOf(g[1][2], g[1][1], g[2][2])
	acute := s01*s02*s12 > 0

	for _, s := range [4][3]int64{{1, 1, 1}, {-1, -1, 1}, {-1, 1, -1}, {1, -1, -1}} {
		p01, p02, p12 := s[0]*s[1]*s01, s[0]*s[2]*s02, s[1]*s[2]*s12
		ok := p01 > 0 && p02 > 0 && p12 > 0
		if !acute {
			ok = p01 <= 0 && p02 <= 0 && p12 <= 0
		}
		if ok {
			return matrix.FromRows(m.Row(0).Scale(s[0]), m.Row(1).Scale(s[1]), m.Row(2).Scale(s[2]))
		}
	}

	return m
}

func signOf(gij, gii, gjj float64) int64 {
	if math.Abs(gij) <= zeroCosEps*math.Sqrt(gii*gjj) {
		return 0
	}
	if gij > 0 {
		return 1
	}

	return -1
}

// norm2 returns the squared length of lattice vector v under metric g.
func norm2(v matrix.IVec3, g matrix.Mat3) float64 {
	f := v.Float()

	return f.Mul(g).Dot(f)
}

// Norm2 returns the squared length of the lattice vector with integer
// coordinates v in cell c.
func (c Cell) Norm2(v matrix.IVec3) float64 {
	return norm2(v, c.Metric())
}
