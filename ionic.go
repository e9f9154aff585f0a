/*
 * ionic.go, part of gostoich.
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
	"strconv"
	"strings"
)

// MaxIonCharge is the largest charge magnitude accepted for an ion.
const MaxIonCharge = 64

// Ion is a cation (Charge > 0) or an anion (Charge < 0). Symbol may be
// polyatomic, e.g. "NO3".
type Ion struct {
	Symbol string `json:"symbol" yaml:"symbol"`
	Charge int    `json:"charge" yaml:"charge"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
}

func (i Ion) String() string {
	switch {
	case i.Charge == 1:
		return i.Symbol + "+"
	case i.Charge == -1:
		return i.Symbol + "-"
	case i.Charge > 0:
		return fmt.Sprintf("%s%d+", i.Symbol, i.Charge)
	}
	return fmt.Sprintf("%s%d-", i.Symbol, -i.Charge)
}

// IonicFormula is the neutral compound formed by a cation and an anion.
type IonicFormula struct {
	Formula     string `json:"formula"`
	Cation      Ion    `json:"cation"`
	Anion       Ion    `json:"anion"`
	CationCount int    `json:"cation_count"`
	AnionCount  int    `json:"anion_count"`
	Name        string `json:"name,omitempty"`
	elements    Formula
}

// Ratio returns the number of cations and anions in the formula unit.
func (r *IonicFormula) Ratio() (int, int) {
	return r.CationCount, r.AnionCount
}

// Elements returns the formula unit as a flat element list, suitable for
// composition calculations.
func (r *IonicFormula) Elements() Formula {
	return append(Formula(nil), r.elements...)
}

func (r *IonicFormula) String() string {
	if r.Name != "" {
		return fmt.Sprintf("%s (%s)", r.Formula, r.Name)
	}
	return r.Formula
}

// ComposeIonic cross-multiplies the charges of cation and anion and reduces
// the counts by their gcd. A polyatomic ion is wrapped in parentheses
// only when its count is greater than 1, as in Ca(NO3)2, CaCl2, or Na2SO4.
func ComposeIonic(cation, anion Ion) (*IonicFormula, error) {
	const funcname = "ComposeIonic"
	if cation.Charge <= 0 {
		return nil, newError(InvalidCharge, cation.String(), funcname, "cation charge must be positive, got %d", cation.Charge)
	}
	if anion.Charge >= 0 {
		return nil, newError(InvalidCharge, anion.String(), funcname, "anion charge must be negative, got %d", anion.Charge)
	}
	if cation.Charge > MaxIonCharge || anion.Charge < -MaxIonCharge {
		return nil, newError(InvalidCharge, cation.String()+","+anion.String(), funcname, "charge magnitudes above %d are not supported", MaxIonCharge)
	}
	cf, err := ParseFormula(cation.Symbol)
	if err != nil {
		return nil, decorate(err, funcname)
	}
	af, err := ParseFormula(anion.Symbol)
	if err != nil {
		return nil, decorate(err, funcname)
	}
	ccount := -anion.Charge
	acount := cation.Charge
	g := gcd(ccount, acount)
	ccount /= g
	acount /= g
	ret := &IonicFormula{
		Formula:     renderIon(cation.Symbol, cf, ccount) + renderIon(anion.Symbol, af, acount),
		Cation:      cation,
		Anion:       anion,
		CationCount: ccount,
		AnionCount:  acount,
		elements:    mergeFormulas(cf.Scale(ccount), af.Scale(acount)),
	}
	if cation.Name != "" && anion.Name != "" {
		ret.Name = cation.Name + " " + anion.Name
	}
	return ret, nil
}

//renderIon writes symbol with its count as subscript, using parentheses if the
//ion has more than one atom and count is more than one.
func renderIon(symbol string, f Formula, count int) string {
	if count == 1 {
		return symbol
	}
	if len(f) > 1 || f[0].Count > 1 {
		return "(" + symbol + ")" + strconv.Itoa(count)
	}
	return symbol + strconv.Itoa(count)
}

func mergeFormulas(fs ...Formula) Formula {
	var ret Formula
	index := make(map[string]int)
	for _, f := range fs {
		for _, e := range f {
			if j, ok := index[e.Symbol]; ok {
				ret[j].Count += e.Count
				continue
			}
			index[e.Symbol] = len(ret)
			ret = append(ret, e)
		}
	}
	return ret
}

var ionCatalog = []Ion{
	{"H", 1, "hydrogen"},
	{"Li", 1, "lithium"},
	{"Na", 1, "sodium"},
	{"K", 1, "potassium"},
	{"Ag", 1, "silver"},
	{"NH4", 1, "ammonium"},
	{"H3O", 1, "hydronium"},
	{"Cu", 1, "copper(I)"},
	{"Mg", 2, "magnesium"},
	{"Ca", 2, "calcium"},
	{"Sr", 2, "strontium"},
	{"Ba", 2, "barium"},
	{"Zn", 2, "zinc"},
	{"Cu", 2, "copper(II)"},
	{"Fe", 2, "iron(II)"},
	{"Fe", 3, "iron(III)"},
	{"Hg2", 2, "mercury(I)"},
	{"Pb", 2, "lead(II)"},
	{"Al", 3, "aluminium"},
	{"F", -1, "fluoride"},
	{"Cl", -1, "chloride"},
	{"Br", -1, "bromide"},
	{"I", -1, "iodide"},
	{"O", -2, "oxide"},
	{"S", -2, "sulfide"},
	{"N", -3, "nitride"},
	{"OH", -1, "hydroxide"},
	{"CN", -1, "cyanide"},
	{"NO2", -1, "nitrite"},
	{"NO3", -1, "nitrate"},
	{"HCO3", -1, "hydrogen carbonate"},
	{"C2H3O2", -1, "acetate"},
	{"ClO3", -1, "chlorate"},
	{"ClO4", -1, "perchlorate"},
	{"MnO4", -1, "permanganate"},
	{"O2", -2, "peroxide"},
	{"CO3", -2, "carbonate"},
	{"SO3", -2, "sulfite"},
	{"SO4", -2, "sulfate"},
	{"CrO4", -2, "chromate"},
	{"Cr2O7", -2, "dichromate"},
	{"PO4", -3, "phosphate"},
}

// LookupIon finds a common ion by name, case-insensitively, e.g. "nitrate".
func LookupIon(name string) (Ion, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, i := range ionCatalog {
		if i.Name == name {
			return i, true
		}
	}
	return Ion{}, false
}

// Ions returns a copy of the catalog of common ions.
func Ions() []Ion {
	return append([]Ion(nil), ionCatalog...)
}

// ParseIon reads an ion given as SYMBOL:CHARGE ("Ca:+2", "NO3:-1", "SO4:2-",
// "Cl:-") or as the name of a catalog ion ("nitrate"). A symbol/charge pair
// that matches a catalog ion gets its name.
func ParseIon(s string) (Ion, error) {
	const funcname = "ParseIon"
	sym, ch, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		if i, ok := LookupIon(s); ok {
			return i, nil
		}
		return Ion{}, newError(UnknownIon, s, funcname, "")
	}
	if _, err := ParseFormula(sym); err != nil {
		return Ion{}, decorate(err, funcname)
	}
	charge, err := parseCharge(ch)
	if err != nil {
		return Ion{}, newError(InvalidCharge, s, funcname, "%s", err.Error())
	}
	ret := Ion{Symbol: sym, Charge: charge}
	for _, i := range ionCatalog {
		if i.Symbol == sym && i.Charge == charge {
			ret.Name = i.Name
			break
		}
	}
	return ret, nil
}

//parseCharge accepts "+2", "-1", "2+", "3-", "+" and "-".
func parseCharge(s string) (int, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "+":
		return 1, nil
	case "-":
		return -1, nil
	case "":
		return 0, fmt.Errorf("empty charge")
	}
	if last := s[len(s)-1]; last == '+' || last == '-' {
		s = string(last) + s[:len(s)-1]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad charge %q", s)
	}
	if n == 0 {
		return 0, fmt.Errorf("zero charge")
	}
	if n > MaxIonCharge || n < -MaxIonCharge {
		return 0, fmt.Errorf("charge %d out of range", n)
	}
	return n, nil
}
