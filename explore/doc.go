// SPDX-License-Identifier: MIT

// Package explore turns the metric symmetry of an averaged cell into a
// ranked candidate list and counts how many group members agree with
// each candidate.
//
// Candidates come from lattice.Analyze: one conventional setting per
// rotation subgroup of the lattice holohedry within maxDelta. A point group
// may appear more than once (for example two inequivalent C2 axes of an
// orthorhombic lattice). Voting:
//
//   - a point group with a single setting receives one vote per member
//     whose observed lattice point group has the same number;
//   - a point group with several settings receives each matching member's
//     vote on the setting whose cell is nearest (unitcell.Distance) to the
//     member's observed cell, the earliest setting winning ties.
//
// Output is ordered by point-group number and is independent of the votes.
// The I-centred monoclinic fallback is kept and reported to the sink.
package explore
