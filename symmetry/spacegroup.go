// SPDX-License-Identifier: MIT

package symmetry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownSpaceGroup is returned for symbols that are not chiral space
// groups in a recognised setting.
var ErrUnknownSpaceGroup = errors.New("symmetry: unknown or non-chiral space group")

// SpaceGroup is one of the 65 Sohncke space groups.
type SpaceGroup struct {
	Number int
	// Symbol is the spaced Hermann–Mauguin form of the reference setting.
	Symbol string
	// PointGroup is the number of the lattice point group.
	PointGroup int
}

// String returns the spaced symbol.
func (s SpaceGroup) String() string {
	return s.Symbol
}

// Lattice returns the lattice point group. Monoclinic I settings map to I2.
func (s SpaceGroup) Lattice() PointGroup {
	if s.Number == I2.Number && strings.HasPrefix(s.Symbol, "I") {
		return I2
	}
	p, err := PointGroupByNumber(s.PointGroup)
	if err != nil {
		// table invariant: every PointGroup field names a catalogue entry
		panic(err)
	}

	return p
}

var spaceGroups = []SpaceGroup{
	{1, "P 1", 1},
	{3, "P 1 2 1", 3}, {4, "P 1 21 1", 3}, {5, "C 1 2 1", 5},
	{16, "P 2 2 2", 16}, {17, "P 2 2 21", 16}, {18, "P 21 21 2", 16}, {19, "P 21 21 21", 16},
	{20, "C 2 2 21", 21}, {21, "C 2 2 2", 21}, {22, "F 2 2 2", 22},
	{23, "I 2 2 2", 23}, {24, "I 21 21 21", 23},
	{75, "P 4", 75}, {76, "P 41", 75}, {77, "P 42", 75}, {78, "P 43", 75},
	{79, "I 4", 79}, {80, "I 41", 79},
	{89, "P 4 2 2", 89}, {90, "P 4 21 2", 89}, {91, "P 41 2 2", 89}, {92, "P 41 21 2", 89},
	{93, "P 42 2 2", 89}, {94, "P 42 21 2", 89}, {95, "P 43 2 2", 89}, {96, "P 43 21 2", 89},
	{97, "I 4 2 2", 97}, {98, "I 41 2 2", 97},
	{143, "P 3", 143}, {144, "P 31", 143}, {145, "P 32", 143}, {146, "R 3", 146},
	{149, "P 3 1 2", 149}, {150, "P 3 2 1", 150}, {151, "P 31 1 2", 149}, {152, "P 31 2 1", 150},
	{153, "P 32 1 2", 149}, {154, "P 32 2 1", 150}, {155, "R 3 2", 155},
	{168, "P 6", 168}, {169, "P 61", 168}, {170, "P 65", 168}, {171, "P 62", 168},
	{172, "P 64", 168}, {173, "P 63", 168},
	{177, "P 6 2 2", 177}, {178, "P 61 2 2", 177}, {179, "P 65 2 2", 177}, {180, "P 62 2 2", 177},
	{181, "P 64 2 2", 177}, {182, "P 63 2 2", 177},
	{195, "P 2 3", 195}, {196, "F 2 3", 196}, {197, "I 2 3", 197}, {198, "P 21 3", 195}, {199, "I 21 3", 197},
	{207, "P 4 3 2", 207}, {208, "P 42 3 2", 207}, {209, "F 4 3 2", 209}, {210, "F 41 3 2", 209},
	{211, "I 4 3 2", 211}, {212, "P 43 3 2", 207}, {213, "P 41 3 2", 207}, {214, "I 41 3 2", 211},
}

// i2 is the body-centred setting of space group 5.
var i2 = SpaceGroup{5, "I 1 2 1", 5}

// aliases maps compact non-reference spellings onto table entries.
var aliases = map[string]string{
	"P2":  "P121",
	"P21": "P1211",
	"C2":  "C121",
	"H3":  "R3",
	"H32": "R32",
}

var byCompact, byNumber = indexSpaceGroups()

func indexSpaceGroups() (map[string]SpaceGroup, map[int]SpaceGroup) {
	bc := make(map[string]SpaceGroup, len(spaceGroups)+2)
	bn := make(map[int]SpaceGroup, len(spaceGroups))
	for _, sg := range spaceGroups {
		bc[compact(sg.Symbol)] = sg
		bn[sg.Number] = sg
	}
	bc["I121"] = i2
	bc["I2"] = i2

	return bc, bn
}

// compact removes blanks and upper-cases the symbol.
func compact(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToUpper(s) {
		if r == ' ' || r == '_' || r == '\t' {
			continue
		}
		sb.WriteRune(r)
	}

	return sb.String()
}

// SpaceGroups returns the chiral space-group table ordered by number.
func SpaceGroups() []SpaceGroup {
	return append([]SpaceGroup(nil), spaceGroups...)
}

// SpaceGroupByNumber returns the chiral space group with number n.
func SpaceGroupByNumber(n int) (SpaceGroup, error) {
	sg, ok := byNumber[n]
	if !ok {
		return SpaceGroup{}, fmt.Errorf("%w: number %d", ErrUnknownSpaceGroup, n)
	}

	return sg, nil
}

// ParseSpaceGroup accepts a Hermann–Mauguin symbol with or without blanks
// ("P 41 21 2", "P41212"), short monoclinic forms ("P21", "C2", "I2"),
// hexagonal-axes rhombohedral forms ("H3", "R 3 :H"), or a number ("19").
func ParseSpaceGroup(s string) (SpaceGroup, error) {
	key := compact(s)
	key = strings.TrimSuffix(strings.TrimSuffix(key, ":H"), ":R")
	if key == "" {
		return SpaceGroup{}, fmt.Errorf("%w: empty symbol", ErrUnknownSpaceGroup)
	}
	if n, err := strconv.Atoi(key); err == nil {
		return SpaceGroupByNumber(n)
	}
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	sg, ok := byCompact[key]
	if !ok {
		return SpaceGroup{}, fmt.Errorf("%w: %q", ErrUnknownSpaceGroup, s)
	}

	return sg, nil
}
