// SPDX-License-Identifier: MIT

// Package store answers the questions a merging driver asks about grouped
// observations: which symmetry is most popular, which matches a reference,
// what can be chosen, and who is in the largest group.
//
// A Store is immutable after New and safe for concurrent readers. Group
// indices run from 0 (the largest group) to Len()-1; out-of-range indices
// yield "no result", never a panic.
package store

import (
	"sort"

	"github.com/katalvlaran/xtalgraph/explore"
	"github.com/katalvlaran/xtalgraph/symmetry"
	"github.com/katalvlaran/xtalgraph/unitcell"
)

// Group is one compatible group and its candidate symmetries.
type Group struct {
	// Members are observation identities in input order.
	Members []string
	// Average is the consensus P1 cell.
	Average unitcell.Cell
	// Candidates are ordered by point-group number.
	Candidates []explore.Candidate
}

// Store indexes groups by size.
type Store struct {
	groups []Group
}

// New copies groups and orders them by member count, descending; equal
// sizes keep their given order.
func New(groups []Group) *Store {
	gs := make([]Group, len(groups))
	for i, g := range groups {
		gs[i] = Group{
			Members:    append([]string(nil), g.Members...),
			Average:    g.Average,
			Candidates: append([]explore.Candidate(nil), g.Candidates...),
		}
	}
	sort.SliceStable(gs, func(i, j int) bool {
		return len(gs[i].Members) > len(gs[j].Members)
	})

	return &Store{groups: gs}
}

// Len returns the number of groups.
func (s *Store) Len() int {
	return len(s.groups)
}

// Group returns group g, or false when out of range.
func (s *Store) Group(g int) (Group, bool) {
	if g < 0 || g >= len(s.groups) {
		return Group{}, false
	}

	return s.groups[g], true
}

// Groups returns every group, largest first.
func (s *Store) Groups() []Group {
	return append([]Group(nil), s.groups...)
}

// MostFrequent returns the candidate with the most votes in group g.
// Ties go to the lower point-group number. When the winner is P1 and any
// other candidate has votes, that runner-up is returned instead. False when
// no candidate has a vote.
func (s *Store) MostFrequent(g int) (symmetry.Symmetry, bool) {
	grp, ok := s.Group(g)
	if !ok {
		return symmetry.Symmetry{}, false
	}
	var voted []explore.Candidate
	for _, c := range grp.Candidates {
		if c.Frequency > 0 {
			voted = append(voted, c)
		}
	}
	if len(voted) == 0 {
		return symmetry.Symmetry{}, false
	}
	sort.SliceStable(voted, func(i, j int) bool {
		return voted[i].Frequency > voted[j].Frequency
	})
	if len(voted) > 1 && voted[0].Symmetry.PointGroup.IsTriclinic() {
		return voted[1].Symmetry, true
	}

	return voted[0].Symmetry, true
}

// MatchingReference returns the candidate of group g sharing ref's point
// group; among several settings the one nearest ref.Cell wins, the first
// on ties. False when none matches.
func (s *Store) MatchingReference(g int, ref symmetry.Symmetry) (symmetry.Symmetry, bool) {
	grp, ok := s.Group(g)
	if !ok {
		return symmetry.Symmetry{}, false
	}
	var (
		best  symmetry.Symmetry
		bestD float64
		found bool
	)
	for _, c := range grp.Candidates {
		if !c.Symmetry.SameClass(ref) {
			continue
		}
		d := unitcell.Distance(c.Symmetry.Cell, ref.Cell)
		if !found || d < bestD {
			best, bestD, found = c.Symmetry, d, true
		}
	}

	return best, found
}

// Selectable returns a copy of the candidates of group g.
func (s *Store) Selectable(g int) []explore.Candidate {
	grp, ok := s.Group(g)
	if !ok {
		return nil
	}

	return append([]explore.Candidate(nil), grp.Candidates...)
}

// Reference returns the k-th candidate of group g as a Symmetry.
func (s *Store) Reference(g, k int) (symmetry.Symmetry, bool) {
	grp, ok := s.Group(g)
	if !ok || k < 0 || k >= len(grp.Candidates) {
		return symmetry.Symmetry{}, false
	}

	return grp.Candidates[k].Symmetry, true
}

// LargestGroupMembers returns the identities of group 0, or nil when the
// store is empty.
func (s *Store) LargestGroupMembers() []string {
	if len(s.groups) == 0 {
		return nil
	}

	return append([]string(nil), s.groups[0].Members...)
}
