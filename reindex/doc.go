// SPDX-License-Identifier: MIT

// Package reindex searches for change-of-basis operators relating two
// primitive lattices whose parameters differ only by choice of basis (or by
// a small supercell).
//
// FindCosets reduces both cells, then enumerates integer operators N over
// the reduced bases whose rows are short lattice vectors (coefficients
// bounded by MaxCoefficient) matching the target lengths and angles, with
// 1 ≤ det N ≤ MaxDeterminant. Surviving operators are lifted back to the
// input bases and grouped into cosets of the automorphism group of the
// first lattice.
//
// The enumeration order is fixed by the data alone (short vectors first,
// then alignment with the target axis, then lexicographic), so repeated
// calls return identical results in identical order.
//
// Complexity: O(K³) per call where K is the number of candidate vectors per
// axis, at most (2·MaxCoefficient+1)³−1.
package reindex
