// SPDX-License-Identifier: MIT

package lattice

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/xtalgraph/matrix"
	"github.com/katalvlaran/xtalgraph/symmetry"
	"github.com/katalvlaran/xtalgraph/unitcell"
)

// maxGroupOrder is the order of the largest proper crystallographic point group (432).
const maxGroupOrder = 24

// Sentinel errors for group construction and classification.
var (
	// ErrNotCrystallographic indicates generators whose closure is not a
	// proper crystallographic point group.
	ErrNotCrystallographic = errors.New("lattice: generators do not close to a crystallographic group")

	// ErrUnsupportedGroup indicates a group order outside {1,2,3,4,6,8,12,24}.
	ErrUnsupportedGroup = errors.New("lattice: unsupported rotation group")
)

// traceOrder maps the trace of a proper rotation to its order.
var traceOrder = map[int64]int{3: 1, -1: 2, 0: 3, 1: 4, 2: 6}

// rotationOrder returns n for an n-fold proper rotation (det 1, Wⁿ = I),
// 0 otherwise.
func rotationOrder(w matrix.IMat3) int {
	if w.Det() != 1 {
		return 0
	}
	n, ok := traceOrder[w.Trace()]
	if !ok {
		return 0
	}
	p := w
	for k := 1; k < n; k++ {
		p = p.Mul(w)
	}
	if p != matrix.IIdentity3() {
		return 0
	}

	return n
}

// Closure returns the group generated by gens, identity first, then in
// discovery order. It fails with ErrNotCrystallographic when an element is
// not a proper crystallographic rotation or the group exceeds 24 elements.
func Closure(gens []matrix.IMat3) ([]matrix.IMat3, error) {
	id := matrix.IIdentity3()
	elems := []matrix.IMat3{id}
	seen := map[matrix.IMat3]bool{id: true}
	for i := 0; i < len(elems); i++ {
		for _, g := range gens {
			p := elems[i].Mul(g)
			if seen[p] {
				continue
			}
			if rotationOrder(p) == 0 {
				return nil, fmt.Errorf("%w: element %s", ErrNotCrystallographic, p)
			}
			if len(elems) == maxGroupOrder {
				return nil, fmt.Errorf("%w: more than %d elements", ErrNotCrystallographic, maxGroupOrder)
			}
			seen[p] = true
			elems = append(elems, p)
		}
	}

	return elems, nil
}

// Holohedry returns the lattice rotation group of the reduced cell built from
// twofolds with δ ≤ maxDelta, added by ascending δ while closure succeeds.
func Holohedry(reduced unitcell.Cell, maxDelta float64) ([]matrix.IMat3, error) {
	tw, err := Twofolds(reduced, maxDelta)
	if err != nil {
		return nil, err
	}

	return holohedryOf(tw), nil
}

func holohedryOf(twofolds []Twofold) []matrix.IMat3 {
	group := []matrix.IMat3{matrix.IIdentity3()}
	var gens []matrix.IMat3
	for _, tw := range twofolds {
		if contains(group, tw.W) {
			continue
		}
		next, err := Closure(append(append([]matrix.IMat3(nil), gens...), tw.W))
		if err != nil {
			continue
		}
		gens = append(gens, tw.W)
		group = next
	}

	return group
}

// Subgroups returns the subgroups of g generated by at most two elements,
// one representative per conjugacy class under g, ordered by group order
// and then by discovery.
//
// Complexity: O(|g|³) closures in the worst case (|g| ≤ 24).
func Subgroups(g []matrix.IMat3) [][]matrix.IMat3 {
	type found struct {
		elems []matrix.IMat3
		index int
	}
	var subs []found
	known := map[string]bool{}

	add := func(gens ...matrix.IMat3) {
		h, err := Closure(gens)
		if err != nil {
			return
		}
		key := groupKey(h)
		if known[key] {
			return
		}
		// mark the whole conjugacy class
		for _, x := range g {
			xInv := x.Adjugate()
			conj := make([]matrix.IMat3, len(h))
			for i, e := range h {
				conj[i] = x.Mul(e).Mul(xInv)
			}
			known[groupKey(conj)] = true
		}
		subs = append(subs, found{elems: h, index: len(subs)})
	}

	for _, a := range g {
		add(a)
	}
	for i := range g {
		for j := i + 1; j < len(g); j++ {
			add(g[i], g[j])
		}
	}
	sort.SliceStable(subs, func(i, j int) bool {
		if len(subs[i].elems) != len(subs[j].elems) {
			return len(subs[i].elems) < len(subs[j].elems)
		}
		return subs[i].index < subs[j].index
	})

	out := make([][]matrix.IMat3, len(subs))
	for i, s := range subs {
		out[i] = s.elems
	}

	return out
}

// Classify names the rotation group h: 1, 2, 3, 4, 222, 32, 6, 422, 622, 23 or 432.
// The 312/321 distinction depends on the setting and is made by Conventional.
func Classify(h []matrix.IMat3) (string, error) {
	var has4, has6 bool
	for _, w := range h {
		switch rotationOrder(w) {
		case 4:
			has4 = true
		case 6:
			has6 = true
		}
	}
	switch len(h) {
	case 1:
		return symmetry.Rot1, nil
	case 2:
		return symmetry.Rot2, nil
	case 3:
		return symmetry.Rot3, nil
	case 4:
		if has4 {
			return symmetry.Rot4, nil
		}
		return symmetry.Rot222, nil
	case 6:
		if has6 {
			return symmetry.Rot6, nil
		}
		return rot32, nil
	case 8:
		return symmetry.Rot422, nil
	case 12:
		if has6 {
			return symmetry.Rot622, nil
		}
		return symmetry.Rot23, nil
	case 24:
		return symmetry.Rot432, nil
	}

	return "", fmt.Errorf("%w: order %d", ErrUnsupportedGroup, len(h))
}

// rot32 is the dihedral group of order 6 before its axes are fixed.
const rot32 = "32"

// groupKey is a canonical string for a set of rotations.
func groupKey(h []matrix.IMat3) string {
	s := append([]matrix.IMat3(nil), h...)
	sort.Slice(s, func(i, j int) bool { return lessIMat3(s[i], s[j]) })
	var sb strings.Builder
	for _, m := range s {
		sb.WriteString(m.String())
	}

	return sb.String()
}

func lessIMat3(a, b matrix.IMat3) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if a[i][j] != b[i][j] {
				return a[i][j] < b[i][j]
			}
		}
	}

	return false
}

func contains(h []matrix.IMat3, w matrix.IMat3) bool {
	for _, e := range h {
		if e == w {
			return true
		}
	}

	return false
}

// axisOf returns the primitive lattice vector along the rotation axis of w:
// the first non-zero row of I + W + … + W^(n−1).
func axisOf(w matrix.IMat3) matrix.IVec3 {
	return firstNonZero(orbitSum(w))
}

// orbitSum returns S = I + W + … + W^(n−1); x·S = 0 iff x lies in the
// plane rotated by w.
func orbitSum(w matrix.IMat3) matrix.IMat3 {
	n := rotationOrder(w)
	s := matrix.IIdentity3()
	p := matrix.IIdentity3()
	for k := 1; k < n; k++ {
		p = p.Mul(w)
		s = addI(s, p)
	}

	return s
}

func addI(a, b matrix.IMat3) matrix.IMat3 {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			a[i][j] += b[i][j]
		}
	}

	return a
}

func firstNonZero(m matrix.IMat3) matrix.IVec3 {
	for i := 0; i < 3; i++ {
		if r := m.Row(i); !r.IsZero() {
			return r.Primitive()
		}
	}

	return matrix.IVec3{}
}
