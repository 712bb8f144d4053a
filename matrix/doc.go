// SPDX-License-Identifier: MIT

// Package matrix provides fixed-size 3×3 linear algebra for lattice work.
//
// Two flavours are offered:
//
//	Mat3 / Vec3   – float64 matrices for metric tensors and Cartesian frames
//	IMat3 / IVec3 – int64 matrices for change-of-basis and rotation operators
//
// Conventions:
//
//   - Vectors are row vectors when multiplied from the left: v.Mul(m) = v·m.
//   - Mat3.MulVec(v) is the column form m·v.
//   - All operations are value-typed and allocation-free; nothing is mutated
//     in place, so values are safe to share across goroutines.
//
// Errors:
//
//	ErrSingular – inversion of a matrix whose determinant is ~0.
package matrix
