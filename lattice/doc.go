// SPDX-License-Identifier: MIT

// Package lattice derives the metric symmetry of a primitive lattice and the
// conventional settings of every point group it supports.
//
// Pipeline (see Analyze):
//
//  1. Reduce the input cell (unitcell.Reduce).
//  2. Find approximate twofold axes with the Le Page criterion: a direct
//     axis u and a reciprocal normal h, both with small integer coefficients,
//     whose angle δ is at most maxDelta.
//  3. Build the holohedry by adding twofolds in order of increasing δ while
//     the generated rotation group stays a crystallographic point group.
//  4. Enumerate its subgroups up to conjugacy.
//  5. For each subgroup derive the conventional basis, centering and point
//     group, normalised to one "best" cell per crystal system.
//
// Rotations are integer matrices W acting on row vectors of lattice
// coordinates, x ↦ x·W; an exact symmetry satisfies W·G·Wᵀ = G.
//
// All enumeration orders are fixed, so Analyze is deterministic.
package lattice
