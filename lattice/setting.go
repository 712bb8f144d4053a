// SPDX-License-Identifier: MIT

package lattice

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/xtalgraph/cbop"
	"github.com/katalvlaran/xtalgraph/matrix"
	"github.com/katalvlaran/xtalgraph/symmetry"
	"github.com/katalvlaran/xtalgraph/unitcell"
)

// ErrNoSetting indicates that no conventional basis could be built for a
// rotation group, typically because the group elements are inconsistent
// with the metric.
var ErrNoSetting = errors.New("lattice: no conventional setting")

const (
	// shortBound bounds the coefficients of candidate basis vectors.
	shortBound = 3

	// monoclinicPlane is how many of the shortest in-plane vectors are
	// paired when choosing monoclinic a and c.
	monoclinicPlane = 12

	// betaTieDeg treats monoclinic β deviations closer than this as equal.
	betaTieDeg = 1e-6
)

// Setting is the conventional description of one rotation subgroup.
type Setting struct {
	PointGroup symmetry.PointGroup
	// Basis rows are the conventional basis vectors over the reduced basis.
	Basis matrix.IMat3
	// Op maps the source cell onto Cell: the reduced cell for Conventional,
	// the analysed input cell for Analyze.
	Op cbop.Op
	// Cell is the conventional cell.
	Cell unitcell.Cell
	// Order is the number of rotations in the subgroup.
	Order int
	// Delta is the largest Le Page angle among the subgroup's twofolds.
	Delta float64
	// Atypical marks the I-centred monoclinic fallback.
	Atypical bool
}

// shortVector is a lattice vector of the reduced cell.
type shortVector struct {
	coef matrix.IVec3
	norm float64
}

// frame caches the metric and short vectors of a reduced cell.
type frame struct {
	g     matrix.Mat3
	short []shortVector
}

func newFrame(reduced unitcell.Cell) *frame {
	f := &frame{g: reduced.Metric()}
	k := int64(shortBound)
	for i := -k; i <= k; i++ {
		for j := -k; j <= k; j++ {
			for l := -k; l <= k; l++ {
				v := matrix.IVec3{i, j, l}
				if v.IsZero() {
					continue
				}
				f.short = append(f.short, shortVector{coef: v, norm: f.norm(v)})
			}
		}
	}
	sort.SliceStable(f.short, func(x, y int) bool {
		a, b := f.short[x], f.short[y]
		if a.norm != b.norm {
			return a.norm < b.norm
		}
		for i := 0; i < 3; i++ {
			if a.coef[i] != b.coef[i] {
				return a.coef[i] > b.coef[i]
			}
		}
		return false
	})

	return f
}

func (f *frame) norm(v matrix.IVec3) float64 {
	x := v.Float()

	return math.Sqrt(x.Mul(f.g).Dot(x))
}

// angle returns the angle between u and v in degrees.
func (f *frame) angle(u, v matrix.IVec3) float64 {
	x, y := u.Float(), v.Float()
	cos := x.Mul(f.g).Dot(y) / (f.norm(u) * f.norm(v))

	return math.Acos(math.Max(-1, math.Min(1, cos))) * 180 / math.Pi
}

// perpendicular returns the shortest vectors x with x·s = 0, up to limit
// (limit ≤ 0 means all).
func (f *frame) perpendicular(s matrix.IMat3, limit int) []matrix.IVec3 {
	var out []matrix.IVec3
	for _, v := range f.short {
		if !v.coef.Mul(s).IsZero() {
			continue
		}
		out = append(out, v.coef)
		if limit > 0 && len(out) == limit {
			break
		}
	}

	return out
}

// Conventional derives the conventional setting of rotation group h over
// the reduced cell. Op and Delta are left for Analyze to fill in.
func Conventional(reduced unitcell.Cell, h []matrix.IMat3) (Setting, error) {
	rot, err := Classify(h)
	if err != nil {
		return Setting{}, err
	}
	f := newFrame(reduced)

	var (
		basis    matrix.IMat3
		cent     symmetry.Centering
		atypical bool
	)
	switch rot {
	case symmetry.Rot1:
		basis, cent = matrix.IIdentity3(), symmetry.CenteringP
	case symmetry.Rot2:
		basis, cent, atypical, err = f.monoclinic(h)
	case symmetry.Rot222:
		basis, cent, err = f.orthorhombic(h)
	case symmetry.Rot4, symmetry.Rot422:
		basis, cent, err = f.tetragonal(h)
	case symmetry.Rot3, rot32, symmetry.Rot6, symmetry.Rot622:
		basis, cent, err = f.hexagonal(h)
		if err == nil && rot == rot32 {
			rot = dihedralKind(h, basis.Row(0), cent)
		}
	case symmetry.Rot23, symmetry.Rot432:
		basis, cent, err = f.cubic(h, rot)
	}
	if err != nil {
		return Setting{}, fmt.Errorf("%s: %w", rot, err)
	}

	pg, err := symmetry.PointGroupFor(rot, cent)
	if err != nil {
		return Setting{}, fmt.Errorf("%w: %v", ErrNoSetting, err)
	}
	cell, err := reduced.TransformInt(basis)
	if err != nil {
		return Setting{}, fmt.Errorf("%w: %s: %v", ErrNoSetting, pg, err)
	}

	return Setting{
		PointGroup: pg,
		Basis:      basis,
		Op:         cbop.MustFromInt(basis),
		Cell:       cell,
		Order:      len(h),
		Atypical:   atypical,
	}, nil
}

// firstOfOrder returns the first element of h with the given rotation order.
func firstOfOrder(h []matrix.IMat3, n int) (matrix.IMat3, bool) {
	for _, w := range h {
		if rotationOrder(w) == n {
			return w, true
		}
	}

	return matrix.IMat3{}, false
}

// monoclinic puts b along the twofold and picks a, c from the shortest
// in-plane vectors: smallest index first (P, else C, else I as a fallback),
// then β closest to 90°, then the shortest pair; finally β ≥ 90 via -a,-b,c.
func (f *frame) monoclinic(h []matrix.IMat3) (matrix.IMat3, symmetry.Centering, bool, error) {
	w, _ := firstOfOrder(h, 2)
	u := axisOf(w)
	plane := f.perpendicular(addI(matrix.IIdentity3(), w), monoclinicPlane)

	var best *monoChoice
	for i, p := range plane {
		for j, q := range plane {
			if i == j {
				continue
			}
			b := u
			d := matrix.FromRows(p, b, q).Det()
			if d == 0 {
				continue
			}
			if d < 0 {
				b, d = b.Scale(-1), -d
			}
			if d > 2 {
				continue
			}
			basis := matrix.FromRows(p, b, q)
			cent := symmetry.CenteringP
			if d == 2 {
				c, _, err := detectCentering(basis)
				if err != nil || (c != symmetry.CenteringC && c != symmetry.CenteringI) {
					continue
				}
				cent = c
			}
			cand := &monoChoice{
				basis: basis,
				cent:  cent,
				det:   d,
				dev:   math.Abs(f.angle(p, q) - 90),
				size:  f.norm(p) + f.norm(q),
			}
			if cand.better(best) {
				best = cand
			}
		}
	}
	if best == nil {
		return matrix.IMat3{}, "", false, fmt.Errorf("%w: no monoclinic a/c pair", ErrNoSetting)
	}
	basis := best.basis
	if f.angle(basis.Row(0), basis.Row(2)) < 90 {
		basis[0], basis[1] = basis.Row(0).Scale(-1), basis.Row(1).Scale(-1)
	}

	return basis, best.cent, best.cent == symmetry.CenteringI, nil
}

// monoChoice is one monoclinic a/c candidate.
type monoChoice struct {
	basis matrix.IMat3
	cent  symmetry.Centering
	det   int64
	dev   float64
	size  float64
}

// better ranks by index, then C before I, then |β−90|, then a+c.
func (m *monoChoice) better(o *monoChoice) bool {
	if o == nil {
		return true
	}
	if m.det != o.det {
		return m.det < o.det
	}
	if mi, oi := m.cent == symmetry.CenteringI, o.cent == symmetry.CenteringI; mi != oi {
		return oi
	}
	if math.Abs(m.dev-o.dev) > betaTieDeg {
		return m.dev < o.dev
	}

	return m.size < o.size*(1-1e-9)
}

// orthorhombic uses the three twofold axes. P, I and F cells are ordered
// a ≤ b ≤ c; one-face centred cells are relabelled C with a ≤ b.
func (f *frame) orthorhombic(h []matrix.IMat3) (matrix.IMat3, symmetry.Centering, error) {
	var axes []matrix.IVec3
	for _, w := range h {
		if rotationOrder(w) == 2 {
			axes = append(axes, axisOf(w))
		}
	}
	if len(axes) != 3 {
		return matrix.IMat3{}, "", fmt.Errorf("%w: %d twofold axes", ErrNoSetting, len(axes))
	}
	basis := rightHanded(matrix.FromRows(axes[0], axes[1], axes[2]))
	cent, _, err := detectCentering(basis)
	if err != nil {
		return matrix.IMat3{}, "", err
	}

	unique := -1
	switch cent {
	case symmetry.CenteringA:
		unique = 0
	case symmetry.CenteringB:
		unique = 1
	case symmetry.CenteringC:
		unique = 2
	}
	if unique < 0 {
		f.sortByLength(axes)
		return rightHanded(matrix.FromRows(axes[0], axes[1], axes[2])), cent, nil
	}
	var face []matrix.IVec3
	for i, a := range axes {
		if i != unique {
			face = append(face, a)
		}
	}
	f.sortByLength(face)

	return rightHanded(matrix.FromRows(face[0], face[1], axes[unique])), symmetry.CenteringC, nil
}

// tetragonal puts c along the fourfold and a on the shortest perpendicular
// vector, b = a·W4.
func (f *frame) tetragonal(h []matrix.IMat3) (matrix.IMat3, symmetry.Centering, error) {
	w, _ := firstOfOrder(h, 4)
	c := axisOf(w)
	plane := f.perpendicular(orbitSum(w), 1)
	if len(plane) == 0 {
		return matrix.IMat3{}, "", fmt.Errorf("%w: no vector normal to the fourfold", ErrNoSetting)
	}
	a := plane[0]
	b := a.Mul(w)
	basis := matrix.FromRows(a, b, c)
	if basis.Det() < 0 {
		basis[1] = b.Scale(-1)
	}
	cent, _, err := detectCentering(basis)
	if err != nil {
		return matrix.IMat3{}, "", err
	}

	return basis, cent, nil
}

// hexagonal puts c along the threefold and a on the shortest perpendicular
// vector, b = a·W3 so that γ = 120°. Rhombohedral lattices come out in the
// obverse hexagonal setting.
func (f *frame) hexagonal(h []matrix.IMat3) (matrix.IMat3, symmetry.Centering, error) {
	w, _ := firstOfOrder(h, 3)
	c := axisOf(w)
	plane := f.perpendicular(orbitSum(w), 1)
	if len(plane) == 0 {
		return matrix.IMat3{}, "", fmt.Errorf("%w: no vector normal to the threefold", ErrNoSetting)
	}
	a := plane[0]
	basis := matrix.FromRows(a, a.Mul(w), c)
	if basis.Det() < 0 {
		basis[1] = a.Mul(w).Mul(w)
	}
	cent, reverse, err := detectCentering(basis)
	if err != nil {
		return matrix.IMat3{}, "", err
	}
	if reverse {
		basis[0], basis[1] = basis.Row(0).Scale(-1), basis.Row(1).Scale(-1)
	}

	return basis, cent, nil
}

// dihedralKind tells 321 (twofold along a) from 312.
func dihedralKind(h []matrix.IMat3, a matrix.IVec3, cent symmetry.Centering) string {
	if cent == symmetry.CenteringR {
		return symmetry.Rot321
	}
	for _, w := range h {
		if rotationOrder(w) == 2 && a.Mul(w) == a {
			return symmetry.Rot321
		}
	}

	return symmetry.Rot312
}

// cubic uses the three fourfold axes (432) or twofold axes (23).
func (f *frame) cubic(h []matrix.IMat3, rot string) (matrix.IMat3, symmetry.Centering, error) {
	n := 2
	if rot == symmetry.Rot432 {
		n = 4
	}
	var axes []matrix.IVec3
	for _, w := range h {
		if rotationOrder(w) != n {
			continue
		}
		ax := axisOf(w)
		dup := false
		for _, e := range axes {
			if e == ax {
				dup = true
				break
			}
		}
		if !dup {
			axes = append(axes, ax)
		}
	}
	if len(axes) != 3 {
		return matrix.IMat3{}, "", fmt.Errorf("%w: %d cube axes", ErrNoSetting, len(axes))
	}
	f.sortByLength(axes)
	basis := rightHanded(matrix.FromRows(axes[0], axes[1], axes[2]))
	cent, _, err := detectCentering(basis)
	if err != nil {
		return matrix.IMat3{}, "", err
	}

	return basis, cent, nil
}

func (f *frame) sortByLength(vs []matrix.IVec3) {
	sort.SliceStable(vs, func(i, j int) bool { return f.norm(vs[i]) < f.norm(vs[j]) })
}

// rightHanded negates the last row when det < 0.
func rightHanded(b matrix.IMat3) matrix.IMat3 {
	if b.Det() < 0 {
		b[2] = b.Row(2).Scale(-1)
	}

	return b
}
