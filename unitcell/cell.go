// SPDX-License-Identifier: MIT

package unitcell

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/xtalgraph/matrix"
)

// Sentinel errors for cell validation.
var (
	// ErrNonFinite indicates a NaN or infinite parameter.
	ErrNonFinite = errors.New("unitcell: non-finite parameter")

	// ErrNonPositiveLength indicates a cell edge length ≤ 0.
	ErrNonPositiveLength = errors.New("unitcell: cell length must be > 0")

	// ErrAngleRange indicates a cell angle outside the open interval (0°,180°).
	ErrAngleRange = errors.New("unitcell: cell angle out of range")

	// ErrNotPhysical indicates parameters whose metric tensor is not positive definite.
	ErrNotPhysical = errors.New("unitcell: parameters do not describe a 3D lattice")
)

const (
	deg2rad = math.Pi / 180
	rad2deg = 180 / math.Pi
)

// Cell holds the six lattice parameters. Lengths are in Å, angles in degrees.
type Cell struct {
	A, B, C            float64
	Alpha, Beta, Gamma float64
}

// New builds a validated Cell.
func New(a, b, c, alpha, beta, gamma float64) (Cell, error) {
	cell := Cell{A: a, B: b, C: c, Alpha: alpha, Beta: beta, Gamma: gamma}
	if err := cell.Validate(); err != nil {
		return Cell{}, err
	}

	return cell, nil
}

// FromParameters builds a validated Cell from the (a,b,c,α,β,γ) array form.
func FromParameters(p [6]float64) (Cell, error) {
	return New(p[0], p[1], p[2], p[3], p[4], p[5])
}

// MustNew is New for literals known to be valid; it panics otherwise.
func MustNew(a, b, c, alpha, beta, gamma float64) Cell {
	cell, err := New(a, b, c, alpha, beta, gamma)
	if err != nil {
		panic(err)
	}

	return cell
}

// Parameters returns (a,b,c,α,β,γ).
func (c Cell) Parameters() [6]float64 {
	return [6]float64{c.A, c.B, c.C, c.Alpha, c.Beta, c.Gamma}
}

// Validate checks finiteness, ranges and that the angles close a 3D cell.
// Error priority: non-finite → lengths → angles → metric.
func (c Cell) Validate() error {
	p := c.Parameters()
	for i, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: parameter %d = %v", ErrNonFinite, i, v)
		}
	}
	for i := 0; i < 3; i++ {
		if p[i] <= 0 {
			return fmt.Errorf("%w: %v", ErrNonPositiveLength, p[i])
		}
	}
	for i := 3; i < 6; i++ {
		if p[i] <= 0 || p[i] >= 180 {
			return fmt.Errorf("%w: %v", ErrAngleRange, p[i])
		}
	}
	g := c.Metric()
	// leading principal minors of G must all be positive
	m2 := g[0][0]*g[1][1] - g[0][1]*g[1][0]
	if m2 <= 0 || g.Det() <= 0 {
		return fmt.Errorf("%w: %s", ErrNotPhysical, c)
	}

	return nil
}

// Metric returns the metric tensor G with G[i][j] = aᵢ·aⱼ.
func (c Cell) Metric() matrix.Mat3 {
	ca := math.Cos(c.Alpha * deg2rad)
	cb := math.Cos(c.Beta * deg2rad)
	cg := math.Cos(c.Gamma * deg2rad)

	return matrix.Mat3{
		{c.A * c.A, c.A * c.B * cg, c.A * c.C * cb},
		{c.A * c.B * cg, c.B * c.B, c.B * c.C * ca},
		{c.A * c.C * cb, c.B * c.C * ca, c.C * c.C},
	}
}

// FromMetric recovers cell parameters from a metric tensor.
// Returns ErrNotPhysical if g is not positive definite.
func FromMetric(g matrix.Mat3) (Cell, error) {
	if g[0][0] <= 0 || g[1][1] <= 0 || g[2][2] <= 0 || g.Det() <= 0 {
		return Cell{}, fmt.Errorf("%w: metric %s", ErrNotPhysical, g)
	}
	a := math.Sqrt(g[0][0])
	b := math.Sqrt(g[1][1])
	c := math.Sqrt(g[2][2])
	cell := Cell{
		A:     a,
		B:     b,
		C:     c,
		Alpha: acosDeg(g[1][2] / (b * c)),
		Beta:  acosDeg(g[0][2] / (a * c)),
		Gamma: acosDeg(g[0][1] / (a * b)),
	}

	return cell, cell.Validate()
}

// Volume returns the cell volume √det(G).
func (c Cell) Volume() float64 {
	d := c.Metric().Det()
	if d <= 0 {
		return 0
	}

	return math.Sqrt(d)
}

// ReciprocalMetric returns G⁻¹, the metric of the reciprocal lattice.
func (c Cell) ReciprocalMetric() (matrix.Mat3, error) {
	return c.Metric().Inverse()
}

// Transform re-expresses the cell in the basis whose vectors are the rows of m
// (each row written in the current basis). The new metric is m·G·mᵀ.
func (c Cell) Transform(m matrix.Mat3) (Cell, error) {
	return FromMetric(c.Metric().Congruent(m))
}

// TransformInt is Transform for an integer operator.
func (c Cell) TransformInt(m matrix.IMat3) (Cell, error) {
	return c.Transform(m.Float())
}

// Similar reports whether a and b agree within a relative length tolerance
// and an absolute angle tolerance (degrees). Symmetric in a and b.
func Similar(a, b Cell, tolLength, tolAngle float64) bool {
	pa, pb := a.Parameters(), b.Parameters()
	for i := 0; i < 3; i++ {
		if math.Abs(pa[i]-pb[i]) > tolLength*math.Max(pa[i], pb[i]) {
			return false
		}
	}
	for i := 3; i < 6; i++ {
		if math.Abs(pa[i]-pb[i]) > tolAngle {
			return false
		}
	}

	return true
}

// Distance returns Σ|pᵢ(a) − pᵢ(b)| over the six parameters.
func Distance(a, b Cell) float64 {
	pa, pb := a.Parameters(), b.Parameters()
	var s float64
	for i := range pa {
		s += math.Abs(pa[i] - pb[i])
	}

	return s
}

// String formats the cell with two decimals per parameter.
func (c Cell) String() string {
	return fmt.Sprintf("%.2f %.2f %.2f %.2f %.2f %.2f", c.A, c.B, c.C, c.Alpha, c.Beta, c.Gamma)
}

func acosDeg(x float64) float64 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return math.Acos(x) * rad2deg
}
