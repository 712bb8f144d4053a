// SPDX-License-Identifier: MIT

// Package symmetry catalogues the lattice point groups used to classify
// macromolecular crystals and the chiral (Sohncke) space groups that map
// onto them.
//
// A PointGroup here is the reflection-intensity group with its lattice
// centering, e.g. P422 or C2. Enantiomorphic screw-axis variants collapse
// onto the same group: P41212 and P43212 both have point group P422 (89).
// Groups are identified by the number of their lowest space group, which
// doubles as the canonical sort key.
//
// Symmetry tags a point group with the conventional cell and the operator
// that produced it. Two Symmetry values describe the same class iff their
// point-group numbers are equal.
package symmetry
