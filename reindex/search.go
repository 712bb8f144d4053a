// SPDX-License-Identifier: MIT

package reindex

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/xtalgraph/cbop"
	"github.com/katalvlaran/xtalgraph/matrix"
	"github.com/katalvlaran/xtalgraph/unitcell"
)

// FindCosets returns the operators mapping the basis of a onto a basis of b
// (b ≈ op.Apply(a)) within tolLength (relative) and tolAngle (degrees).
// An empty CosetSet means no relation was found; it is not an error.
//
// Stage 1: reduce both cells.
// Stage 2: forward search N·ra ≈ rb with 1 ≤ det N ≤ MaxDeterminant.
// Stage 3: if empty and MaxDeterminant ≥ 2, reverse search N'·rb ≈ ra with
// det N' ≥ 2 and invert.
// Stage 4: lift to input bases, T = Mb⁻¹·N·Ma, and group into cosets.
func FindCosets(a, b unitcell.Cell, tolLength, tolAngle float64, opts ...Option) (CosetSet, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return CosetSet{}, o.err
	}
	if !validTolerance(tolLength) || !validTolerance(tolAngle) {
		return CosetSet{}, fmt.Errorf("%w: length %v angle %v", ErrTolerance, tolLength, tolAngle)
	}

	ra, ma, err := unitcell.Reduce(a)
	if err != nil {
		return CosetSet{}, fmt.Errorf("reindex: first cell: %w", err)
	}
	rb, mb, err := unitcell.Reduce(b)
	if err != nil {
		return CosetSet{}, fmt.Errorf("reindex: second cell: %w", err)
	}
	// Reduction operators are unimodular, FromInt cannot fail here.
	opMa := cbop.MustFromInt(ma)
	opMbInv := cbop.MustFromInt(mb).Inverse()

	s := searcher{tolLength: tolLength, tolAngle: tolAngle, opts: o}
	var ops []cbop.Op
	for _, n := range s.search(ra, rb, 1, o.MaxDeterminant) {
		ops = append(ops, opMa.Then(cbop.MustFromInt(n)).Then(opMbInv))
	}
	if len(ops) == 0 && o.MaxDeterminant >= 2 {
		for _, n := range s.search(rb, ra, 2, o.MaxDeterminant) {
			ops = append(ops, opMa.Then(cbop.MustFromInt(n).Inverse()).Then(opMbInv))
		}
	}

	return newCosetSet(ops), nil
}

func validTolerance(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// searcher enumerates integer operators between two reduced cells.
type searcher struct {
	tolLength float64
	tolAngle  float64
	opts      Options
}

// candidate is a lattice vector with cached float form and length.
// misfit is set per slot.
type candidate struct {
	coef   matrix.IVec3
	vec    matrix.Vec3
	norm   float64
	l1     int64
	misfit int64
}

// misfitScale quantises relative length misfits so that vectors of equal
// length compare equal despite rounding.
const misfitScale = 1e6

// search returns operators N (rows over from's basis) with
// minDet ≤ det N ≤ maxDet and from.TransformInt(N) similar to to.
func (s searcher) search(from, to unitcell.Cell, minDet, maxDet int64) []matrix.IMat3 {
	g := from.Metric()
	target := to.Parameters()
	all := s.vectors(g)

	var slots [3][]candidate
	for t := 0; t < 3; t++ {
		for _, c := range all {
			if s.lengthOK(c.norm, target[t]) {
				c.misfit = int64(math.Round(math.Abs(c.norm-target[t]) / target[t] * misfitScale))
				slots[t] = append(slots[t], c)
			}
		}
		sortSlot(slots[t], t)
	}

	var out []matrix.IMat3
	for _, v0 := range slots[0] {
		for _, v1 := range slots[1] {
			if !s.angleOK(g, v0, v1, target[5]) {
				continue
			}
			for _, v2 := range slots[2] {
				if !s.angleOK(g, v0, v2, target[4]) || !s.angleOK(g, v1, v2, target[3]) {
					continue
				}
				n := matrix.FromRows(v0.coef, v1.coef, v2.coef)
				if d := n.Det(); d < minDet || d > maxDet {
					continue
				}
				got, err := from.TransformInt(n)
				if err != nil || !unitcell.Similar(got, to, s.tolLength, s.tolAngle) {
					continue
				}
				out = append(out, n)
				if len(out) >= s.opts.MaxOperators {
					return out
				}
			}
		}
	}

	return out
}

// vectors lists every non-zero coefficient vector within the bound.
func (s searcher) vectors(g matrix.Mat3) []candidate {
	k := s.opts.MaxCoefficient
	out := make([]candidate, 0, (2*k+1)*(2*k+1)*(2*k+1)-1)
	for i := -k; i <= k; i++ {
		for j := -k; j <= k; j++ {
			for l := -k; l <= k; l++ {
				coef := matrix.IVec3{i, j, l}
				if coef.IsZero() {
					continue
				}
				v := coef.Float()
				out = append(out, candidate{
					coef: coef,
					vec:  v,
					norm: math.Sqrt(v.Mul(g).Dot(v)),
					l1:   abs(i) + abs(j) + abs(l),
				})
			}
		}
	}

	return out
}

// sortSlot orders candidates for target axis t: length misfit ascending,
// then L1 norm ascending, then the t-th coefficient descending, then
// lexicographically descending. The first operator found is thus built from
// the best fitting vectors.
func sortSlot(cs []candidate, t int) {
	sort.SliceStable(cs, func(x, y int) bool {
		a, b := cs[x], cs[y]
		if a.misfit != b.misfit {
			return a.misfit < b.misfit
		}
		if a.l1 != b.l1 {
			return a.l1 < b.l1
		}
		if a.coef[t] != b.coef[t] {
			return a.coef[t] > b.coef[t]
		}
		for i := 0; i < 3; i++ {
			if a.coef[i] != b.coef[i] {
				return a.coef[i] > b.coef[i]
			}
		}

		return false
	})
}

func (s searcher) lengthOK(got, want float64) bool {
	return math.Abs(got-want) <= s.tolLength*math.Max(got, want)
}

func (s searcher) angleOK(g matrix.Mat3, u, v candidate, want float64) bool {
	cos := u.vec.Mul(g).Dot(v.vec) / (u.norm * v.norm)
	cos = math.Max(-1, math.Min(1, cos))
	got := math.Acos(cos) * 180 / math.Pi

	return math.Abs(got-want) <= s.tolAngle
}

func abs(x int64) int64 {
	if x < 0 {
		return -x
	}

	return x
}
