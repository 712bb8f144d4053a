// SPDX-License-Identifier: MIT

package cbop

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/xtalgraph/matrix"
	"github.com/katalvlaran/xtalgraph/unitcell"
)

// Sentinel errors for operator construction.
var (
	// ErrZeroDenominator indicates a denominator of zero.
	ErrZeroDenominator = errors.New("cbop: denominator must be non-zero")

	// ErrSingular indicates a linear part with zero determinant.
	ErrSingular = errors.New("cbop: singular operator")
)

// Op is a rational change-of-basis operator with origin shift.
// The zero value is not valid; use Identity, FromInt or New.
type Op struct {
	num   matrix.IMat3
	shift matrix.IVec3
	den   int64
}

// Identity returns the identity operator.
func Identity() Op {
	return Op{num: matrix.IIdentity3(), den: 1}
}

// FromInt wraps an integer matrix with zero shift.
func FromInt(m matrix.IMat3) (Op, error) {
	return New(m, matrix.IVec3{}, 1)
}

// MustFromInt is FromInt for matrices known to be non-singular.
func MustFromInt(m matrix.IMat3) Op {
	op, err := FromInt(m)
	if err != nil {
		panic(err)
	}

	return op
}

// New builds num/den with origin shift shift/den, reduced to lowest terms.
func New(num matrix.IMat3, shift matrix.IVec3, den int64) (Op, error) {
	if den == 0 {
		return Op{}, ErrZeroDenominator
	}
	if num.Det() == 0 {
		return Op{}, fmt.Errorf("%w: %s", ErrSingular, num)
	}

	return normalize(num, shift, den), nil
}

// normalize makes den positive and divides out the common gcd.
func normalize(num matrix.IMat3, shift matrix.IVec3, den int64) Op {
	if den < 0 {
		num, shift, den = num.Neg(), shift.Scale(-1), -den
	}
	g := den
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			g = matrix.GCD(g, num[i][j])
		}
		g = matrix.GCD(g, shift[i])
	}
	if g > 1 {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				num[i][j] /= g
			}
			shift[i] /= g
		}
		den /= g
	}

	return Op{num: num, shift: shift, den: den}
}

// Then returns the operator that applies o first and next second.
// Linear part: next.M · o.M. Shift: o.s + next.s · o.M.
func (o Op) Then(next Op) Op {
	num := next.num.Mul(o.num)
	shift := o.shift.Scale(next.den).Add(next.shift.Mul(o.num))

	return normalize(num, shift, o.den*next.den)
}

// Inverse returns the operator undoing o.
// For M = N/d: M⁻¹ = d·adj(N)/det(N) and s' = −s·M⁻¹.
func (o Op) Inverse() Op {
	adj := o.num.Adjugate()
	det := o.num.Det()

	return normalize(adj.Scale(o.den), o.shift.Mul(adj).Scale(-1), det)
}

// Equal reports whether o and p are the same operator.
// Both are stored in lowest terms, so this is a structural comparison.
func (o Op) Equal(p Op) bool {
	return o == p
}

// IsIntegral reports whether o has an integer linear part and shift.
func (o Op) IsIntegral() bool {
	return o.den == 1
}

// IsIdentity reports whether o is the identity.
func (o Op) IsIdentity() bool {
	return o == Identity()
}

// Int returns the integer linear part when o is integral.
func (o Op) Int() (matrix.IMat3, bool) {
	if !o.IsIntegral() {
		return matrix.IMat3{}, false
	}

	return o.num, true
}

// Det returns the determinant of the linear part, i.e. the volume ratio
// new/old.
func (o Op) Det() float64 {
	d := float64(o.den)

	return float64(o.num.Det()) / (d * d * d)
}

// Matrix returns the linear part as floats.
func (o Op) Matrix() matrix.Mat3 {
	m := o.num.Float()
	d := float64(o.den)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] /= d
		}
	}

	return m
}

// Shift returns the origin shift as floats.
func (o Op) Shift() matrix.Vec3 {
	d := float64(o.den)

	return matrix.Vec3{float64(o.shift[0]) / d, float64(o.shift[1]) / d, float64(o.shift[2]) / d}
}

// Apply re-expresses c in the basis described by o.
func (o Op) Apply(c unitcell.Cell) (unitcell.Cell, error) {
	return c.Transform(o.Matrix())
}

// String renders o in basis-vector notation, e.g. "a+b,-b,2c" or
// "1/2a+1/2b,c,-a;1/2,0,0" when the shift is non-zero.
func (o Op) String() string {
	axes := [3]string{"a", "b", "c"}
	rows := make([]string, 3)
	for i := 0; i < 3; i++ {
		var sb strings.Builder
		for j := 0; j < 3; j++ {
			n := o.num[i][j]
			if n == 0 {
				continue
			}
			coef := fraction(n, o.den)
			switch {
			case coef == "1":
				coef = ""
			case coef == "-1":
				coef = "-"
			}
			if sb.Len() > 0 && n > 0 {
				sb.WriteByte('+')
			}
			sb.WriteString(coef)
			sb.WriteString(axes[j])
		}
		rows[i] = sb.String()
	}
	out := strings.Join(rows, ",")
	if !o.shift.IsZero() {
		out += ";" + fraction(o.shift[0], o.den) + "," + fraction(o.shift[1], o.den) + "," + fraction(o.shift[2], o.den)
	}

	return out
}

// fraction prints n/d in lowest terms.
func fraction(n, d int64) string {
	g := matrix.GCD(n, d)
	if g > 1 {
		n, d = n/g, d/g
	}
	if d == 1 {
		return fmt.Sprintf("%d", n)
	}

	return fmt.Sprintf("%d/%d", n, d)
}
