// SPDX-License-Identifier: MIT

package explore

// Vote exposes the voting step so settings lattice.Analyze rarely yields can
// be fed directly.
var Vote = vote
