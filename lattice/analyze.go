// SPDX-License-Identifier: MIT

package lattice

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/xtalgraph/cbop"
	"github.com/katalvlaran/xtalgraph/matrix"
	"github.com/katalvlaran/xtalgraph/unitcell"
)

// MaxDeltaLimit is the exclusive upper bound accepted for maxDelta.
const MaxDeltaLimit = 90.0

// ErrMaxDelta indicates a maxDelta outside [0, 90).
var ErrMaxDelta = errors.New("lattice: max delta must be in [0, 90)")

// Analysis is the metric symmetry of one cell.
type Analysis struct {
	// Input is the analysed cell.
	Input unitcell.Cell
	// Reduced is Input in its reduced setting; Reduction maps Input onto it.
	Reduced   unitcell.Cell
	Reduction matrix.IMat3
	// Twofolds found within maxDelta, by ascending δ.
	Twofolds []Twofold
	// Holohedry is the lattice rotation group over the reduced basis.
	Holohedry []matrix.IMat3
	// Settings holds one conventional setting per subgroup class, ordered
	// by subgroup order and discovery.
	Settings []Setting
	// Skipped records subgroups for which no setting could be derived.
	Skipped []error
}

// Analyze reduces c, builds its holohedry within maxDelta and returns the
// conventional setting of every subgroup. Setting.Op maps c itself onto
// the setting's cell.
func Analyze(c unitcell.Cell, maxDelta float64) (*Analysis, error) {
	if math.IsNaN(maxDelta) || maxDelta < 0 || maxDelta >= MaxDeltaLimit {
		return nil, fmt.Errorf("%w: %v", ErrMaxDelta, maxDelta)
	}
	reduced, m, err := unitcell.Reduce(c)
	if err != nil {
		return nil, fmt.Errorf("lattice: %w", err)
	}
	tw, err := Twofolds(reduced, maxDelta)
	if err != nil {
		return nil, fmt.Errorf("lattice: %w", err)
	}
	g := reduced.Metric()
	gInv, err := g.Inverse()
	if err != nil {
		return nil, fmt.Errorf("lattice: %w", err)
	}

	a := &Analysis{
		Input:     c,
		Reduced:   reduced,
		Reduction: m,
		Twofolds:  tw,
		Holohedry: holohedryOf(tw),
	}
	holoDelta := maxTwofoldDelta(a.Holohedry, g, gInv)
	toReduced := cbop.MustFromInt(m)
	for _, h := range Subgroups(a.Holohedry) {
		s, err := Conventional(reduced, h)
		if err != nil {
			a.Skipped = append(a.Skipped, err)
			continue
		}
		s.Op = toReduced.Then(s.Op)
		s.Delta = maxTwofoldDelta(h, g, gInv)
		// a pure threefold carries no Le Page angle of its own
		if s.Delta == 0 && len(h) == 3 {
			s.Delta = holoDelta
		}
		a.Settings = append(a.Settings, s)
	}

	return a, nil
}

// maxTwofoldDelta returns the largest δ over the twofolds in h.
func maxTwofoldDelta(h []matrix.IMat3, g, gInv matrix.Mat3) float64 {
	var d float64
	for _, w := range h {
		if rotationOrder(w) == 2 {
			d = math.Max(d, twofoldDelta(w, g, gInv))
		}
	}

	return d
}
