// SPDX-License-Identifier: MIT

package cluster

import (
	"github.com/katalvlaran/xtalgraph/explore"
	"github.com/katalvlaran/xtalgraph/symmetry"
)

// Report is the machine-readable form of a Result.
type Report struct {
	Groups      []GroupReport     `yaml:"groups" json:"groups"`
	Excluded    []ExclusionReport `yaml:"excluded,omitempty" json:"excluded,omitempty"`
	Recommended *SymmetryReport   `yaml:"recommended,omitempty" json:"recommended,omitempty"`
}

// GroupReport describes one group.
type GroupReport struct {
	Members    []string          `yaml:"members" json:"members"`
	Average    [6]float64        `yaml:"average_p1_cell" json:"average_p1_cell"`
	Candidates []CandidateReport `yaml:"candidates,omitempty" json:"candidates,omitempty"`
	Error      string            `yaml:"error,omitempty" json:"error,omitempty"`
}

// SymmetryReport describes a point group in a setting.
type SymmetryReport struct {
	PointGroup string     `yaml:"point_group" json:"point_group"`
	Number     int        `yaml:"number" json:"number"`
	Cell       [6]float64 `yaml:"cell" json:"cell"`
	Operator   string     `yaml:"operator" json:"operator"`
}

// CandidateReport is a SymmetryReport with its votes.
type CandidateReport struct {
	SymmetryReport `yaml:",inline"`
	Frequency      int     `yaml:"frequency" json:"frequency"`
	Delta          float64 `yaml:"max_delta" json:"max_delta"`
	Atypical       bool    `yaml:"atypical,omitempty" json:"atypical,omitempty"`
}

// ExclusionReport describes a rejected observation.
type ExclusionReport struct {
	Index  int    `yaml:"index" json:"index"`
	ID     string `yaml:"id" json:"id"`
	Reason string `yaml:"reason" json:"reason"`
	Error  string `yaml:"error" json:"error"`
}

func symmetryReport(s symmetry.Symmetry) SymmetryReport {
	return SymmetryReport{
		PointGroup: s.PointGroup.Short,
		Number:     s.PointGroup.Number,
		Cell:       s.Cell.Parameters(),
		Operator:   s.Op.String(),
	}
}

func candidateReport(c explore.Candidate) CandidateReport {
	return CandidateReport{
		SymmetryReport: symmetryReport(c.Symmetry),
		Frequency:      c.Frequency,
		Delta:          c.Delta,
		Atypical:       c.Atypical,
	}
}

// Report builds the machine-readable form of r. recommended, when non-nil,
// replaces the most-frequent recommendation.
func (r *Result) Report(recommended *symmetry.Symmetry) Report {
	rep := Report{Groups: make([]GroupReport, len(r.Groups))}
	for k, g := range r.Groups {
		gr := GroupReport{Members: g.IDs, Average: g.Average.Parameters()}
		if g.Err != nil {
			gr.Error = g.Err.Error()
		}
		for _, c := range g.Candidates {
			gr.Candidates = append(gr.Candidates, candidateReport(c))
		}
		rep.Groups[k] = gr
	}
	for _, e := range r.Excluded {
		rep.Excluded = append(rep.Excluded, ExclusionReport{Index: e.Index, ID: e.ID, Reason: e.Reason, Error: e.Err.Error()})
	}
	if recommended == nil {
		if s, ok := r.Recommend(); ok {
			recommended = &s
		}
	}
	if recommended != nil {
		sr := symmetryReport(*recommended)
		rep.Recommended = &sr
	}

	return rep
}
