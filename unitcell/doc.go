// SPDX-License-Identifier: MIT

// Package unitcell models crystal unit cells (a, b, c, α, β, γ) and the
// operations the grouping pipeline needs on them:
//
//   - validation (finite, positive lengths, angles in (0°,180°), positive-definite metric)
//   - metric tensor round trips (Metric / FromMetric)
//   - basis changes (Transform: G' = M·G·Mᵀ, rows of M are the new basis vectors)
//   - tolerance-based similarity (Similar) and parameter distance (Distance)
//   - deterministic lattice reduction (Reduce) returning the unimodular operator used
//
// Similarity contract:
//
//	|Δa| ≤ tolLength·max(a₁,a₂) (same for b, c) and |Δα| ≤ tolAngle (same for β, γ).
//
// The predicate is symmetric in its two cells and has no side effects.
//
// Errors:
//
//	ErrNonFinite          – NaN or ±Inf parameter
//	ErrNonPositiveLength  – a, b or c ≤ 0
//	ErrAngleRange         – an angle outside (0°,180°)
//	ErrNotPhysical        – angles that do not close a 3D cell (metric not positive definite)
package unitcell
