/*
 * atomicdata.go, part of gostoich.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package stoich

import (
	"fmt"
	"sort"
)

type elementData struct {
	mass  float64 //standard atomic weight, amu
	group int     //IUPAC group, 0 for the f-block
}

//Standard atomic weights (conventional/abridged values), mass numbers of the
//longest-lived isotope for elements without a stable one.
//Read-only after initialization.
var elements = map[string]elementData{
	"H": {1.008, 1}, "He": {4.0026, 18},
	"Li": {6.94, 1}, "Be": {9.0122, 2}, "B": {10.81, 13}, "C": {12.011, 14},
	"N": {14.007, 15}, "O": {15.999, 16}, "F": {18.998, 17}, "Ne": {20.180, 18},
	"Na": {22.990, 1}, "Mg": {24.305, 2}, "Al": {26.982, 13}, "Si": {28.085, 14},
	"P": {30.974, 15}, "S": {32.06, 16}, "Cl": {35.45, 17}, "Ar": {39.948, 18},
	"K": {39.098, 1}, "Ca": {40.078, 2}, "Sc": {44.956, 3}, "Ti": {47.867, 4},
	"V": {50.942, 5}, "Cr": {51.996, 6}, "Mn": {54.938, 7}, "Fe": {55.845, 8},
	"Co": {58.933, 9}, "Ni": {58.693, 10}, "Cu": {63.546, 11}, "Zn": {65.38, 12},
	"Ga": {69.723, 13}, "Ge": {72.630, 14}, "As": {74.922, 15}, "Se": {78.971, 16},
	"Br": {79.904, 17}, "Kr": {83.798, 18},
	"Rb": {85.468, 1}, "Sr": {87.62, 2}, "Y": {88.906, 3}, "Zr": {91.224, 4},
	"Nb": {92.906, 5}, "Mo": {95.95, 6}, "Tc": {98, 7}, "Ru": {101.07, 8},
	"Rh": {102.91, 9}, "Pd": {106.42, 10}, "Ag": {107.87, 11}, "Cd": {112.41, 12},
	"In": {114.82, 13}, "Sn": {118.71, 14}, "Sb": {121.76, 15}, "Te": {127.60, 16},
	"I": {126.90, 17}, "Xe": {131.29, 18},
	"Cs": {132.91, 1}, "Ba": {137.33, 2}, "La": {138.91, 3}, "Ce": {140.12, 0},
	"Pr": {140.91, 0}, "Nd": {144.24, 0}, "Pm": {145, 0}, "Sm": {150.36, 0},
	"Eu": {151.96, 0}, "Gd": {157.25, 0}, "Tb": {158.93, 0}, "Dy": {162.50, 0},
	"Ho": {164.93, 0}, "Er": {167.26, 0}, "Tm": {168.93, 0}, "Yb": {173.05, 0},
	"Lu": {174.97, 3}, "Hf": {178.49, 4}, "Ta": {180.95, 5}, "W": {183.84, 6},
	"Re": {186.21, 7}, "Os": {190.23, 8}, "Ir": {192.22, 9}, "Pt": {195.08, 10},
	"Au": {196.97, 11}, "Hg": {200.59, 12}, "Tl": {204.38, 13}, "Pb": {207.2, 14},
	"Bi": {208.98, 15}, "Po": {209, 16}, "At": {210, 17}, "Rn": {222, 18},
	"Fr": {223, 1}, "Ra": {226, 2}, "Ac": {227, 3}, "Th": {232.04, 0},
	"Pa": {231.04, 0}, "U": {238.03, 0}, "Np": {237, 0}, "Pu": {244, 0},
	"Am": {243, 0}, "Cm": {247, 0}, "Bk": {247, 0}, "Cf": {251, 0},
	"Es": {252, 0}, "Fm": {257, 0}, "Md": {258, 0}, "No": {259, 0},
	"Lr": {266, 3},
}

//Group returns the IUPAC group of the element with symbol sym, or 0
//if sym is not an element or belongs to the f-block.
func Group(sym string) int {
	return elements[sym].group
}

//IsElement returns true if sym is the symbol of a known element.
func IsElement(sym string) bool {
	_, ok := elements[sym]
	return ok
}

// MassTable maps element symbols to atomic masses (amu).
// A MassTable is never modified after construction, so a single value can
// be shared by any number of concurrent calculations.
type MassTable struct {
	masses map[string]float64
}

var defaultMasses = func() *MassTable {
	m := make(map[string]float64, len(elements))
	for k, v := range elements {
		m[k] = v.mass
	}
	return &MassTable{masses: m}
}()

// DefaultMassTable returns the built-in table of standard atomic weights.
func DefaultMassTable() *MassTable {
	return defaultMasses
}

// NewMassTable builds a table from the given map, which is copied.
// Every symbol must be well formed and every mass positive.
func NewMassTable(masses map[string]float64) (*MassTable, error) {
	t := &MassTable{masses: make(map[string]float64, len(masses))}
	if err := t.fill(masses, "NewMassTable"); err != nil {
		return nil, err
	}
	return t, nil
}

// With returns a new table containing the masses of t, replaced or
// extended by overrides. t is not modified.
func (t *MassTable) With(overrides map[string]float64) (*MassTable, error) {
	n := &MassTable{masses: make(map[string]float64, len(t.masses)+len(overrides))}
	for k, v := range t.masses {
		n.masses[k] = v
	}
	if err := n.fill(overrides, "MassTable.With"); err != nil {
		return nil, err
	}
	return n, nil
}

func (t *MassTable) fill(masses map[string]float64, function string) error {
	for sym, mass := range masses {
		if !validSymbol(sym) {
			return newError(MalformedFormula, sym, function, "not an element symbol")
		}
		if !(mass > 0) {
			return newError(InvalidQuantity, sym, function, "atomic mass must be positive, got %g", mass)
		}
		t.masses[sym] = mass
	}
	return nil
}

// Mass returns the atomic mass of sym, or an UnknownElement error.
func (t *MassTable) Mass(sym string) (float64, error) {
	m, ok := t.masses[sym]
	if !ok {
		return 0, newError(UnknownElement, sym, "MassTable.Mass", "")
	}
	return m, nil
}

// Has returns true if the table contains sym.
func (t *MassTable) Has(sym string) bool {
	_, ok := t.masses[sym]
	return ok
}

// Len returns the number of elements in the table.
func (t *MassTable) Len() int {
	return len(t.masses)
}

// Symbols returns the symbols in the table, sorted alphabetically.
func (t *MassTable) Symbols() []string {
	ret := make([]string, 0, len(t.masses))
	for k := range t.masses {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

func (t *MassTable) String() string {
	return fmt.Sprintf("MassTable(%d elements)", len(t.masses))
}

//validSymbol checks the shape of an element symbol: one uppercase
//letter optionally followed by one lowercase letter.
func validSymbol(s string) bool {
	switch len(s) {
	case 1:
		return isUpper(s[0])
	case 2:
		return isUpper(s[0]) && isLower(s[1])
	}
	return false
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
