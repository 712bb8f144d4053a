// SPDX-License-Identifier: MIT

package matrix

import "fmt"

// IVec3 is an integer 3-vector, typically lattice coordinates.
type IVec3 [3]int64

// IMat3 is a row-major integer 3×3 matrix.
// IMat3 is comparable and can be used directly as a map key.
type IMat3 [3][3]int64

// IIdentity3 returns the integer identity matrix.
func IIdentity3() IMat3 {
	return IMat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Mul returns the matrix product m·n.
func (m IMat3) Mul(n IMat3) IMat3 {
	var out IMat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j] + m[i][2]*n[2][j]
		}
	}

	return out
}

// T returns the transpose of m.
func (m IMat3) T() IMat3 {
	var out IMat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[j][i]
		}
	}

	return out
}

// Det returns the exact determinant of m.
func (m IMat3) Det() int64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Adjugate returns adj(m), so that m·adj(m) = det(m)·I.
// For unimodular m with det +1 the adjugate is the exact inverse.
func (m IMat3) Adjugate() IMat3 {
	var adj IMat3
	adj[0][0] = m[1][1]*m[2][2] - m[1][2]*m[2][1]
	adj[0][1] = m[0][2]*m[2][1] - m[0][1]*m[2][2]
	adj[0][2] = m[0][1]*m[1][2] - m[0][2]*m[1][1]
	adj[1][0] = m[1][2]*m[2][0] - m[1][0]*m[2][2]
	adj[1][1] = m[0][0]*m[2][2] - m[0][2]*m[2][0]
	adj[1][2] = m[0][2]*m[1][0] - m[0][0]*m[1][2]
	adj[2][0] = m[1][0]*m[2][1] - m[1][1]*m[2][0]
	adj[2][1] = m[0][1]*m[2][0] - m[0][0]*m[2][1]
	adj[2][2] = m[0][0]*m[1][1] - m[0][1]*m[1][0]

	return adj
}

// Trace returns the sum of the diagonal.
func (m IMat3) Trace() int64 {
	return m[0][0] + m[1][1] + m[2][2]
}

// Neg returns -m.
func (m IMat3) Neg() IMat3 {
	var out IMat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = -m[i][j]
		}
	}

	return out
}

// Scale returns k·m.
func (m IMat3) Scale(k int64) IMat3 {
	var out IMat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = k * m[i][j]
		}
	}

	return out
}

// Float converts m to a float matrix.
func (m IMat3) Float() Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = float64(m[i][j])
		}
	}

	return out
}

// Row returns row i as a vector.
func (m IMat3) Row(i int) IVec3 {
	return IVec3(m[i])
}

// FromRows assembles a matrix from three row vectors.
func FromRows(a, b, c IVec3) IMat3 {
	return IMat3{a, b, c}
}

// String renders m as three bracketed rows.
func (m IMat3) String() string {
	return fmt.Sprintf("[%d %d %d; %d %d %d; %d %d %d]",
		m[0][0], m[0][1], m[0][2], m[1][0], m[1][1], m[1][2], m[2][0], m[2][1], m[2][2])
}

// Mul returns the row product v·m.
func (v IVec3) Mul(m IMat3) IVec3 {
	var out IVec3
	for j := 0; j < 3; j++ {
		out[j] = v[0]*m[0][j] + v[1]*m[1][j] + v[2]*m[2][j]
	}

	return out
}

// Add returns v+w.
func (v IVec3) Add(w IVec3) IVec3 {
	return IVec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

// Scale returns k·v.
func (v IVec3) Scale(k int64) IVec3 {
	return IVec3{k * v[0], k * v[1], k * v[2]}
}

// Dot returns the integer dot product.
func (v IVec3) Dot(w IVec3) int64 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

// IsZero reports whether all components are zero.
func (v IVec3) IsZero() bool {
	return v[0] == 0 && v[1] == 0 && v[2] == 0
}

// Float converts v to a float vector.
func (v IVec3) Float() Vec3 {
	return Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}

// GCD returns the non-negative gcd of the components (0 for the zero vector).
func (v IVec3) GCD() int64 {
	return GCD(GCD(v[0], v[1]), v[2])
}

// Primitive divides v by the gcd of its components and flips the sign so the
// first non-zero component is positive. The zero vector is returned unchanged.
func (v IVec3) Primitive() IVec3 {
	g := v.GCD()
	if g == 0 {
		return v
	}
	out := IVec3{v[0] / g, v[1] / g, v[2] / g}
	for _, c := range out {
		if c > 0 {
			break
		}
		if c < 0 {
			return out.Scale(-1)
		}
	}

	return out
}

// GCD returns the non-negative greatest common divisor of a and b.
func GCD(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}

	return a
}
