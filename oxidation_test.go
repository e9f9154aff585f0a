/*
 * oxidation_test.go, part of gostoich.
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
	"math/big"
	"testing"
)

func TestSolveOxidationSulfuricAcid(Te *testing.T) {
	a, err := SolveOxidation(MustParseFormula("H2SO4"), map[string]int{"H": 1, "O": -2}, 0)
	if err != nil {
		Te.Fatal(err)
	}
	if a.Unknown != "S" || a.State("S").Cmp(big.NewRat(6, 1)) != 0 {
		Te.Errorf("S is %s, want +6", FormatState(a.State("S")))
	}
	if a.Balance().Sign() != 0 {
		Te.Errorf("unbalanced: %s", a.Balance())
	}
}

func TestAssignDefaults(Te *testing.T) {
	cases := []struct {
		formula string
		charge  int
		opts    OxidationOptions
		sym     string
		want    *big.Rat
	}{
		{"H2SO4", 0, OxidationOptions{}, "S", big.NewRat(6, 1)},
		{"O4SH2", 0, OxidationOptions{}, "S", big.NewRat(6, 1)},
		{"KMnO4", 0, OxidationOptions{}, "Mn", big.NewRat(7, 1)},
		{"Cr2O7", -2, OxidationOptions{}, "Cr", big.NewRat(6, 1)},
		{"NH4", 1, OxidationOptions{}, "N", big.NewRat(-3, 1)},
		{"Fe3O4", 0, OxidationOptions{}, "Fe", big.NewRat(8, 3)},
		{"NaCl", 0, OxidationOptions{}, "Cl", big.NewRat(-1, 1)},
		{"CaH2", 0, OxidationOptions{Hydrogen: HydrogenMetal}, "Ca", big.NewRat(2, 1)},
		{"NaH", 0, OxidationOptions{Hydrogen: HydrogenMetal}, "H", big.NewRat(-1, 1)},
		{"O2", 0, OxidationOptions{}, "O", big.NewRat(0, 1)},
		{"Fe", 3, OxidationOptions{}, "Fe", big.NewRat(3, 1)},
		{"O2", -2, OxidationOptions{}, "O", big.NewRat(-1, 1)},
		{"H2O2", 0, OxidationOptions{Known: map[string]int{"O": -1}}, "H", big.NewRat(1, 1)},
		{"OF2", 0, OxidationOptions{SolveFor: "O"}, "O", big.NewRat(2, 1)},
		{"C6H12O6", 0, OxidationOptions{}, "C", big.NewRat(0, 1)},
	}
	for _, c := range cases {
		a, err := SolveOxidationState(MustParseFormula(c.formula), c.charge, c.opts)
		if err != nil {
			Te.Errorf("%s(%d): %v", c.formula, c.charge, err)
			continue
		}
		if got := a.State(c.sym); got == nil || got.Cmp(c.want) != 0 {
			Te.Errorf("%s(%d): %s is %s, want %s", c.formula, c.charge, c.sym, FormatState(got), FormatState(c.want))
		}
		if a.Balance().Cmp(big.NewRat(int64(c.charge), 1)) != 0 {
			Te.Errorf("%s(%d): states add up to %s", c.formula, c.charge, a.Balance().RatString())
		}
	}
}

func TestAssignSources(Te *testing.T) {
	a, err := SolveOxidationState(MustParseFormula("KMnO4"), 0, OxidationOptions{})
	if err != nil {
		Te.Fatal(err)
	}
	want := map[string]string{"K": "group 1", "Mn": "solved", "O": "oxygen"}
	for k, v := range want {
		if a.Sources[k] != v {
			Te.Errorf("%s assigned by %q, want %q", k, a.Sources[k], v)
		}
	}
	if a.String() != "K:+1 Mn:+7 O:-2" {
		Te.Errorf("rendered as %q", a.String())
	}
}

func TestOxidationErrors(Te *testing.T) {
	_, err := SolveOxidationState(MustParseFormula("CuSO4"), 0, OxidationOptions{})
	if !errors.Is(err, &Error{Reason: MultipleUnknowns, Value: "Cu,S"}) {
		Te.Errorf("expected multiple unknowns Cu,S, got %v", err)
	}
	//OF2 with the default rules assigns both states, and they do not balance.
	_, err = SolveOxidationState(MustParseFormula("OF2"), 0, OxidationOptions{})
	if !errors.Is(err, ErrChargeImbalance) {
		Te.Errorf("expected a charge imbalance, got %v", err)
	}
	_, err = SolveOxidation(MustParseFormula("MgO"), map[string]int{"Mg": 2, "O": -2}, 1)
	if !errors.Is(err, ErrChargeImbalance) {
		Te.Errorf("expected a charge imbalance, got %v", err)
	}
	var serr *Error
	if errors.As(err, &serr) && serr.Kind() != Inconsistent {
		Te.Errorf("wrong kind %v", serr.Kind())
	}
	_, err = SolveOxidationState(MustParseFormula("H2O"), 0, OxidationOptions{Known: map[string]int{"N": 3}})
	if !errors.Is(err, ErrUnknownElement) {
		Te.Errorf("state for an absent element accepted: %v", err)
	}
	_, err = SolveOxidationState(MustParseFormula("H2O"), 0, OxidationOptions{Known: map[string]int{"O": -2}, SolveFor: "O"})
	if err == nil {
		Te.Errorf("element both given and solved for accepted")
	}
	if _, err := SolveOxidation(nil, nil, 0); !errors.Is(err, ErrMalformedFormula) {
		Te.Errorf("empty formula accepted: %v", err)
	}
	for _, f := range []Formula{{{"S", 0}, {"O", 4}}, {{"S", -1}, {"O", 4}}} {
		if _, err := SolveOxidation(f, map[string]int{"O": -2}, -2); !errors.Is(err, ErrInvalidQuantity) {
			Te.Errorf("%v: expected an invalid quantity, got %v", f, err)
		}
	}
	_, err = SolveOxidation(Formula{{"S", 1}, {"O", 2}, {"S", 1}, {"O", 2}}, map[string]int{"O": -2}, -2)
	if !errors.Is(err, ErrMalformedFormula) {
		Te.Errorf("repeated element accepted: %v", err)
	}
}

func TestCustomOxidationTable(Te *testing.T) {
	if _, err := NewOxidationTable([]OxidationRule{{Name: "bad", Kind: RuleGroup, Group: 19, State: 1}}); err == nil {
		Te.Error("group 19 accepted")
	}
	//Chlorine at -1 before everything else.
	rules := append([]OxidationRule{{Name: "chlorine", Kind: RuleFixed, Symbol: "Cl", State: -1}}, DefaultOxidationTable().Rules()...)
	t, err := NewOxidationTable(rules)
	if err != nil {
		Te.Fatal(err)
	}
	a, err := t.Assign(MustParseFormula("FeCl3"), 0, OxidationOptions{})
	if err != nil {
		Te.Fatal(err)
	}
	if a.State("Fe").Cmp(big.NewRat(3, 1)) != 0 || a.Sources["Cl"] != "chlorine" {
		Te.Errorf("got %s", a)
	}
	//The zero table knows nothing, so only one-element formulas with given states can be solved.
	if _, err := (OxidationTable{}).Assign(MustParseFormula("H2O"), 0, OxidationOptions{}); !errors.Is(err, ErrMultipleUnknowns) {
		Te.Errorf("expected multiple unknowns, got %v", err)
	}
}

func TestFormatState(Te *testing.T) {
	for r, want := range map[*big.Rat]string{big.NewRat(6, 1): "+6", big.NewRat(-2, 1): "-2", big.NewRat(0, 1): "0", big.NewRat(8, 3): "+8/3"} {
		if got := FormatState(r); got != want {
			Te.Errorf("got %s want %s", got, want)
		}
	}
}
