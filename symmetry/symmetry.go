// SPDX-License-Identifier: MIT

package symmetry

import (
	"fmt"

	"github.com/katalvlaran/xtalgraph/cbop"
	"github.com/katalvlaran/xtalgraph/unitcell"
)

// Symmetry is a point group together with its conventional cell and the
// operator taking the source (averaged P1) cell into that setting.
type Symmetry struct {
	PointGroup PointGroup
	Cell       unitcell.Cell
	Op         cbop.Op
}

// SameClass reports whether s and o share the point-group number.
func (s Symmetry) SameClass(o Symmetry) bool {
	return s.PointGroup.Number == o.PointGroup.Number
}

// String renders e.g. "P422 (78.10 78.10 37.20 90.00 90.00 90.00)".
func (s Symmetry) String() string {
	return fmt.Sprintf("%s (%s)", s.PointGroup.Short, s.Cell)
}

// FromSpaceGroup builds the Symmetry an observation reports: the lattice
// point group of sg and the given conventional cell, with identity operator.
func FromSpaceGroup(sg SpaceGroup, cell unitcell.Cell) Symmetry {
	return Symmetry{PointGroup: sg.Lattice(), Cell: cell, Op: cbop.Identity()}
}
