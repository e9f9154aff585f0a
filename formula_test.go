/*
 * formula_test.go, part of gostoich.
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
	"errors"
	"testing"
)

func TestParseFormula(Te *testing.T) {
	cases := []struct {
		in   string
		want Formula
	}{
		{"C6H12O6", Formula{{"C", 6}, {"H", 12}, {"O", 6}}},
		{"CH3COOH", Formula{{"C", 2}, {"H", 4}, {"O", 2}}},
		{"NaCl", Formula{{"Na", 1}, {"Cl", 1}}},
		{"O2", Formula{{"O", 2}}},
		{"Fe", Formula{{"Fe", 1}}},
		{"H2SO4", Formula{{"H", 2}, {"S", 1}, {"O", 4}}},
		{"Xx3Yy", Formula{{"Xx", 3}, {"Yy", 1}}}, //unknown symbols pass through
		{"C12H22O11", Formula{{"C", 12}, {"H", 22}, {"O", 11}}},
	}
	for _, c := range cases {
		f, err := ParseFormula(c.in)
		if err != nil {
			Te.Errorf("%s: unexpected error %v", c.in, err)
			continue
		}
		if len(f) != len(c.want) {
			Te.Errorf("%s: got %v, want %v", c.in, f, c.want)
			continue
		}
		for i := range f {
			if f[i] != c.want[i] {
				Te.Errorf("%s: element %d is %v, want %v", c.in, i, f[i], c.want[i])
			}
		}
	}
}

func TestParseFormulaErrors(Te *testing.T) {
	bad := []string{"", "6C", "h2o", "H2o2x", "C6 H12", "Ca(OH)2", "H0", "C-1", "Ñ", "H99999999999999999999"}
	for _, b := range bad {
		_, err := ParseFormula(b)
		if err == nil {
			Te.Errorf("%q: expected an error", b)
			continue
		}
		if !errors.Is(err, ErrMalformedFormula) {
			Te.Errorf("%q: expected a malformed formula error, got %v", b, err)
		}
		var serr *Error
		if !errors.As(err, &serr) || serr.Kind() != MalformedInput {
			Te.Errorf("%q: wrong error kind for %v", b, err)
		}
	}
}

func TestFormulaString(Te *testing.T) {
	for in, want := range map[string]string{
		"C2H4O1":  "C2H4O",
		"CH3COOH": "C2H4O2",
		"NaCl":    "NaCl",
		"H1":      "H",
	} {
		if got := MustParseFormula(in).String(); got != want {
			Te.Errorf("%s rendered as %s, want %s", in, got, want)
		}
	}
}

func TestFormulaHelpers(Te *testing.T) {
	f := MustParseFormula("C6H12O6")
	if f.Count("H") != 12 || f.Count("N") != 0 {
		Te.Errorf("wrong counts in %v", f)
	}
	if f.Atoms() != 24 {
		Te.Errorf("got %d atoms, want 24", f.Atoms())
	}
	r, g := f.Reduced()
	if g != 6 || r.String() != "CH2O" {
		Te.Errorf("reduced to %s by %d", r, g)
	}
	if !r.Scale(6).Equal(f) {
		Te.Errorf("scaling back gave %s", r.Scale(6))
	}
	if !MustParseFormula("OCH2").Equal(r) {
		Te.Errorf("Equal should not depend on order")
	}
	m := f.Map()
	if len(m) != 3 || m["O"] != 6 {
		Te.Errorf("bad map %v", m)
	}
	//The original must not change.
	if f.Count("C") != 6 {
		Te.Errorf("formula modified by Reduced/Scale")
	}
}

func TestGCD(Te *testing.T) {
	if gcd(12, 18) != 6 || gcd(-4, 6) != 2 || gcd(0, 5) != 5 {
		Te.Error("gcd is wrong")
	}
	if gcdAll([]int{6, 12, 9}) != 3 || gcdAll(nil) != 0 {
		Te.Error("gcdAll is wrong")
	}
}

func TestHill(Te *testing.T) {
	for in, want := range map[string]string{
		"OHC2H3":  "C2H4O",
		"ClNa":    "ClNa",
		"H2SO4":   "H2O4S",
		"NCOH4Br": "CH4BrNO",
	} {
		if got := MustParseFormula(in).Hill().String(); got != want {
			Te.Errorf("Hill order of %s is %s, want %s", in, got, want)
		}
	}
}
