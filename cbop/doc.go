// SPDX-License-Identifier: MIT

// Package cbop implements exact change-of-basis operators between lattice
// settings.
//
// An Op carries a rational 3×3 linear part and an origin shift, stored as
// integer numerators over one shared positive denominator:
//
//	M = Num / Den,   s = Shift / Den
//
// Row i of M is the i-th new basis vector written in the old basis, so a
// cell transforms as G' = M·G·Mᵀ (see unitcell.Cell.Transform). Operators
// are kept in lowest terms, which makes structural equality meaningful.
//
// Composition reads left to right: x.Then(y) applies x first, then y.
// Integral operators (Den == 1) are lattice automorphisms or sublattice
// maps; fractional ones arise as inverses of supercell operators.
package cbop
