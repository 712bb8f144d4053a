// SPDX-License-Identifier: MIT

package symmetry

import (
	"errors"
	"fmt"
)

// ErrUnknownPointGroup is returned when no catalogue entry matches.
var ErrUnknownPointGroup = errors.New("symmetry: unknown point group")

// CrystalSystem enumerates the seven crystal systems.
type CrystalSystem int

// Crystal systems in order of increasing symmetry.
const (
	Triclinic CrystalSystem = iota
	Monoclinic
	Orthorhombic
	Tetragonal
	Trigonal
	Hexagonal
	Cubic
)

var systemNames = [...]string{"triclinic", "monoclinic", "orthorhombic", "tetragonal", "trigonal", "hexagonal", "cubic"}

// String returns the lowercase system name.
func (s CrystalSystem) String() string {
	if s < 0 || int(s) >= len(systemNames) {
		return fmt.Sprintf("CrystalSystem(%d)", int(s))
	}

	return systemNames[s]
}

// Centering is a lattice centering letter.
type Centering string

// Centering types. R is the obverse rhombohedral centering of hexagonal axes.
const (
	CenteringP Centering = "P"
	CenteringA Centering = "A"
	CenteringB Centering = "B"
	CenteringC Centering = "C"
	CenteringI Centering = "I"
	CenteringF Centering = "F"
	CenteringR Centering = "R"
)

// Rotation groups (proper point groups) used as classification keys.
const (
	Rot1   = "1"
	Rot2   = "2"
	Rot222 = "222"
	Rot4   = "4"
	Rot422 = "422"
	Rot3   = "3"
	Rot312 = "312"
	Rot321 = "321"
	Rot6   = "6"
	Rot622 = "622"
	Rot23  = "23"
	Rot432 = "432"
)

// PointGroup is a centred reflection-intensity point group.
type PointGroup struct {
	// Number is the lowest space-group number with this point group.
	Number int
	// Symbol is the spaced Hermann–Mauguin form, e.g. "P 4 2 2".
	Symbol string
	// Short is the compact form, e.g. "P422".
	Short string
	// Centering of the conventional cell.
	Centering Centering
	// Rotation is the proper rotation group, e.g. "422" or "312".
	Rotation string
	// System is the crystal system.
	System CrystalSystem
}

// String returns the compact symbol.
func (p PointGroup) String() string {
	return p.Short
}

// IsTriclinic reports whether p is P1.
func (p PointGroup) IsTriclinic() bool {
	return p.System == Triclinic
}

// Order returns the number of proper rotations in p.
func (p PointGroup) Order() int {
	switch p.Rotation {
	case Rot1:
		return 1
	case Rot2:
		return 2
	case Rot3:
		return 3
	case Rot222, Rot4:
		return 4
	case Rot312, Rot321, Rot6:
		return 6
	case Rot422:
		return 8
	case Rot23, Rot622:
		return 12
	case Rot432:
		return 24
	}

	return 0
}

// catalogue lists the standard groups by ascending number.
var catalogue = []PointGroup{
	{1, "P 1", "P1", CenteringP, Rot1, Triclinic},
	{3, "P 1 2 1", "P2", CenteringP, Rot2, Monoclinic},
	{5, "C 1 2 1", "C2", CenteringC, Rot2, Monoclinic},
	{16, "P 2 2 2", "P222", CenteringP, Rot222, Orthorhombic},
	{21, "C 2 2 2", "C222", CenteringC, Rot222, Orthorhombic},
	{22, "F 2 2 2", "F222", CenteringF, Rot222, Orthorhombic},
	{23, "I 2 2 2", "I222", CenteringI, Rot222, Orthorhombic},
	{75, "P 4", "P4", CenteringP, Rot4, Tetragonal},
	{79, "I 4", "I4", CenteringI, Rot4, Tetragonal},
	{89, "P 4 2 2", "P422", CenteringP, Rot422, Tetragonal},
	{97, "I 4 2 2", "I422", CenteringI, Rot422, Tetragonal},
	{143, "P 3", "P3", CenteringP, Rot3, Trigonal},
	{146, "R 3", "R3", CenteringR, Rot3, Trigonal},
	{149, "P 3 1 2", "P312", CenteringP, Rot312, Trigonal},
	{150, "P 3 2 1", "P321", CenteringP, Rot321, Trigonal},
	{155, "R 3 2", "R32", CenteringR, Rot321, Trigonal},
	{168, "P 6", "P6", CenteringP, Rot6, Hexagonal},
	{177, "P 6 2 2", "P622", CenteringP, Rot622, Hexagonal},
	{195, "P 2 3", "P23", CenteringP, Rot23, Cubic},
	{196, "F 2 3", "F23", CenteringF, Rot23, Cubic},
	{197, "I 2 3", "I23", CenteringI, Rot23, Cubic},
	{207, "P 4 3 2", "P432", CenteringP, Rot432, Cubic},
	{209, "F 4 3 2", "F432", CenteringF, Rot432, Cubic},
	{211, "I 4 3 2", "I432", CenteringI, Rot432, Cubic},
}

// I2 is the body-centred monoclinic setting of C2 (same number). It only
// appears when a C-centred setting could not be reached.
var I2 = PointGroup{5, "I 1 2 1", "I2", CenteringI, Rot2, Monoclinic}

// PointGroups returns the standard catalogue ordered by number.
func PointGroups() []PointGroup {
	return append([]PointGroup(nil), catalogue...)
}

// PointGroupByNumber returns the standard group with the given number.
func PointGroupByNumber(n int) (PointGroup, error) {
	for _, p := range catalogue {
		if p.Number == n {
			return p, nil
		}
	}

	return PointGroup{}, fmt.Errorf("%w: number %d", ErrUnknownPointGroup, n)
}

// PointGroupFor returns the group with the given rotation group and
// centering. Monoclinic I yields I2.
func PointGroupFor(rotation string, c Centering) (PointGroup, error) {
	if rotation == Rot2 && c == CenteringI {
		return I2, nil
	}
	for _, p := range catalogue {
		if p.Rotation == rotation && p.Centering == c {
			return p, nil
		}
	}

	return PointGroup{}, fmt.Errorf("%w: %s%s", ErrUnknownPointGroup, c, rotation)
}
