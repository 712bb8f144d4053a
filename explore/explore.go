// SPDX-License-Identifier: MIT

package explore

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/xtalgraph/diag"
	"github.com/katalvlaran/xtalgraph/lattice"
	"github.com/katalvlaran/xtalgraph/symmetry"
	"github.com/katalvlaran/xtalgraph/unitcell"
)

// Member is what one observation reports about itself.
type Member struct {
	SpaceGroup symmetry.SpaceGroup
	Cell       unitcell.Cell
}

// Candidate is one possible symmetry of the averaged cell.
type Candidate struct {
	// Symmetry holds the point group, the conventional cell and the
	// operator from the averaged cell into it.
	Symmetry symmetry.Symmetry
	// Frequency is the number of members voting for this candidate.
	Frequency int
	// Delta is the largest Le Page angle (degrees) the setting needs.
	Delta float64
	// Atypical marks an I-centred monoclinic setting.
	Atypical bool
}

// String renders e.g. "P422 (78.10 78.10 37.20 90.00 90.00 90.00) x3".
func (c Candidate) String() string {
	return fmt.Sprintf("%s x%d", c.Symmetry, c.Frequency)
}

// Explore enumerates the candidate symmetries of avg within maxDelta
// degrees and votes them with members. Sum of frequencies never exceeds
// len(members).
func Explore(avg unitcell.Cell, members []Member, maxDelta float64, sink diag.Sink) ([]Candidate, error) {
	sink = diag.OrDiscard(sink)
	a, err := lattice.Analyze(avg, maxDelta)
	if err != nil {
		return nil, fmt.Errorf("explore: %w", err)
	}
	for _, e := range a.Skipped {
		diag.Warnf(sink, diag.CodeSettingSkipped, "", "%v", e)
	}

	return vote(a.Settings, members, sink), nil
}

// vote turns settings into candidates ordered by point-group number and
// counts member votes.
func vote(settings []lattice.Setting, members []Member, sink diag.Sink) []Candidate {
	// 1) one candidate per setting
	cands := make([]Candidate, 0, len(settings))
	for _, s := range settings {
		c := Candidate{
			Symmetry: symmetry.Symmetry{PointGroup: s.PointGroup, Cell: s.Cell, Op: s.Op},
			Delta:    s.Delta,
			Atypical: s.Atypical || s.PointGroup == symmetry.I2,
		}
		if c.Atypical {
			diag.Warnf(sink, diag.CodeAtypicalSetting, s.PointGroup.Short,
				"unexpected I-centred monoclinic setting %s kept", c.Symmetry)
		}
		cands = append(cands, c)
	}

	// 2) order by point-group number, then by discovery
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Symmetry.PointGroup.Number < cands[j].Symmetry.PointGroup.Number
	})

	// 3) votes
	byNumber := make(map[int][]int)
	for i, c := range cands {
		n := c.Symmetry.PointGroup.Number
		byNumber[n] = append(byNumber[n], i)
	}
	for _, m := range members {
		idx, ok := byNumber[m.SpaceGroup.Lattice().Number]
		if !ok {
			diag.Debugf(sink, diag.CodeUnknownSymmetry, m.SpaceGroup.Symbol,
				"observed point group %s not among candidates", m.SpaceGroup.Lattice().Short)
			continue
		}
		cands[nearest(cands, idx, m.Cell)].Frequency++
	}

	return cands
}

// nearest returns the index among idx whose cell is closest to cell.
func nearest(cands []Candidate, idx []int, cell unitcell.Cell) int {
	best := idx[0]
	if len(idx) == 1 {
		return best
	}
	bestD := unitcell.Distance(cands[best].Symmetry.Cell, cell)
	for _, i := range idx[1:] {
		if d := unitcell.Distance(cands[i].Symmetry.Cell, cell); d < bestD {
			best, bestD = i, d
		}
	}

	return best
}
