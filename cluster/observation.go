// SPDX-License-Identifier: MIT

package cluster

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/katalvlaran/xtalgraph/explore"
	"github.com/katalvlaran/xtalgraph/symmetry"
	"github.com/katalvlaran/xtalgraph/unitcell"
)

// Exclusion reasons, also used as metric labels.
const (
	ReasonInvalid    = "invalid"
	ReasonCell       = "cell"
	ReasonSpaceGroup = "space_group"
	ReasonDuplicate  = "duplicate"
)

// Sentinel errors attached to exclusions.
var (
	// ErrInvalidObservation wraps struct validation failures.
	ErrInvalidObservation = errors.New("cluster: invalid observation")

	// ErrDuplicateID marks a repeated identity; the first one wins.
	ErrDuplicateID = errors.New("cluster: duplicate observation id")
)

var validate = validator.New()

// Observation is one measured dataset as supplied by the caller.
type Observation struct {
	// ID is an opaque identity, unique within a batch.
	ID string `yaml:"id" json:"id" validate:"required"`
	// P1Cell is the primitive cell a, b, c, α, β, γ.
	P1Cell [6]float64 `yaml:"p1_cell" json:"p1_cell" validate:"dive,gt=0"`
	// SpaceGroup is the observed space group, e.g. "P 41 21 2" or "96".
	SpaceGroup string `yaml:"space_group" json:"space_group" validate:"required"`
	// Cell is the conventional cell matching SpaceGroup.
	Cell [6]float64 `yaml:"cell" json:"cell" validate:"dive,gt=0"`
}

// Exclusion records an observation dropped at ingestion.
type Exclusion struct {
	// Index is the position in the input slice.
	Index  int
	ID     string
	Reason string
	Err    error
}

// accepted is an observation that passed ingestion.
type accepted struct {
	obs    Observation
	p1     unitcell.Cell
	member explore.Member
}

// ingest validates o and parses its cells and space group.
func ingest(o Observation) (accepted, string, error) {
	if err := validate.Struct(o); err != nil {
		return accepted{}, ReasonInvalid, fmt.Errorf("%w: %v", ErrInvalidObservation, err)
	}
	p1, err := unitcell.FromParameters(o.P1Cell)
	if err != nil {
		return accepted{}, ReasonCell, fmt.Errorf("p1 cell: %w", err)
	}
	cell, err := unitcell.FromParameters(o.Cell)
	if err != nil {
		return accepted{}, ReasonCell, fmt.Errorf("cell: %w", err)
	}
	sg, err := symmetry.ParseSpaceGroup(o.SpaceGroup)
	if err != nil {
		return accepted{}, ReasonSpaceGroup, err
	}

	return accepted{obs: o, p1: p1, member: explore.Member{SpaceGroup: sg, Cell: cell}}, "", nil
}
