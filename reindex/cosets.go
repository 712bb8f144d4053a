// SPDX-License-Identifier: MIT

package reindex

import "github.com/katalvlaran/xtalgraph/cbop"

// CosetSet holds the operators found between two lattices, grouped into
// cosets. The zero value is the empty set: no known relation.
type CosetSet struct {
	cosets [][]cbop.Op
}

// newCosetSet groups ops, preserving their order, so that two operators
// share a coset iff they differ by an integral automorphism of the source
// lattice: T_r⁻¹·T_op integral.
func newCosetSet(ops []cbop.Op) CosetSet {
	var cosets [][]cbop.Op
	var invReps []cbop.Op
next:
	for _, op := range ops {
		for k, inv := range invReps {
			if op.Then(inv).IsIntegral() {
				cosets[k] = append(cosets[k], op)
				continue next
			}
		}
		cosets = append(cosets, []cbop.Op{op})
		invReps = append(invReps, op.Inverse())
	}

	return CosetSet{cosets: cosets}
}

// Empty reports whether no operator was found.
func (s CosetSet) Empty() bool {
	return len(s.cosets) == 0
}

// Len returns the number of cosets.
func (s CosetSet) Len() int {
	return len(s.cosets)
}

// Cosets returns a copy of the cosets in discovery order.
func (s CosetSet) Cosets() [][]cbop.Op {
	out := make([][]cbop.Op, len(s.cosets))
	for i, c := range s.cosets {
		out[i] = append([]cbop.Op(nil), c...)
	}

	return out
}

// Canonical returns the first operator of the first coset.
func (s CosetSet) Canonical() (cbop.Op, bool) {
	if s.Empty() {
		return cbop.Op{}, false
	}

	return s.cosets[0][0], true
}

// Combined returns one representative per coset.
func (s CosetSet) Combined() []cbop.Op {
	out := make([]cbop.Op, len(s.cosets))
	for i, c := range s.cosets {
		out[i] = c[0]
	}

	return out
}

// Operators returns every operator, flattened in coset order.
func (s CosetSet) Operators() []cbop.Op {
	var out []cbop.Op
	for _, c := range s.cosets {
		out = append(out, c...)
	}

	return out
}
