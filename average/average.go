// SPDX-License-Identifier: MIT

// Package average computes the consensus P1 cell of a compatible group.
//
// Every member cell is brought into the basis of a reference member with
// the canonical operator recorded for the pair, then the six parameters are
// averaged independently. Members with no recorded operator (similar pairs,
// or pairs linked only through other members) are averaged as given.
package average

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/xtalgraph/reindex"
	"github.com/katalvlaran/xtalgraph/unitcell"
)

// Sentinel errors for averaging.
var (
	// ErrEmptyGroup is returned for a group without members.
	ErrEmptyGroup = errors.New("average: empty group")

	// ErrReferenceNotMember is returned when ref is not in members.
	ErrReferenceNotMember = errors.New("average: reference is not a group member")

	// ErrIndexOutOfRange is returned for a member index outside cells.
	ErrIndexOutOfRange = errors.New("average: member index out of range")
)

// CosetLookup returns the operators recorded for a pair. The operators of
// the set map cells[min(i, j)] onto cells[max(i, j)]. *compat.Graph
// satisfies it.
type CosetLookup interface {
	Cosets(i, j int) (reindex.CosetSet, bool)
}

// Transformed returns cells[m] for every m in members, expressed in the
// basis of cells[ref]. When ref < j the pair's canonical operator maps ref
// onto j and its inverse is applied; when j < ref it is applied as is.
func Transformed(members []int, cells []unitcell.Cell, lookup CosetLookup, ref int) ([]unitcell.Cell, error) {
	if len(members) == 0 {
		return nil, ErrEmptyGroup
	}
	found := false
	for _, m := range members {
		if m < 0 || m >= len(cells) {
			return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, m, len(cells))
		}
		found = found || m == ref
	}
	if !found {
		return nil, fmt.Errorf("%w: %d", ErrReferenceNotMember, ref)
	}

	out := make([]unitcell.Cell, len(members))
	for k, j := range members {
		out[k] = cells[j]
		if j == ref || lookup == nil {
			continue
		}
		set, ok := lookup.Cosets(ref, j)
		if !ok {
			continue
		}
		op, ok := set.Canonical()
		if !ok {
			continue
		}
		if ref < j {
			op = op.Inverse()
		}
		c, err := op.Apply(cells[j])
		if err != nil {
			return nil, fmt.Errorf("average: member %d: %w", j, err)
		}
		out[k] = c
	}

	return out, nil
}

// Average returns the parameter-wise mean of the members in the basis of
// cells[ref].
//
// Complexity: O(len(members)).
func Average(members []int, cells []unitcell.Cell, lookup CosetLookup, ref int) (unitcell.Cell, error) {
	ts, err := Transformed(members, cells, lookup, ref)
	if err != nil {
		return unitcell.Cell{}, err
	}

	return Mean(ts)
}

// Mean returns the parameter-wise mean of cells.
func Mean(cells []unitcell.Cell) (unitcell.Cell, error) {
	if len(cells) == 0 {
		return unitcell.Cell{}, ErrEmptyGroup
	}
	var sum [6]float64
	for _, c := range cells {
		for i, v := range c.Parameters() {
			sum[i] += v
		}
	}
	n := float64(len(cells))
	for i := range sum {
		sum[i] /= n
	}
	c, err := unitcell.FromParameters(sum)
	if err != nil {
		return unitcell.Cell{}, fmt.Errorf("average: %w", err)
	}

	return c, nil
}
