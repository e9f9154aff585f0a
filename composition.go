/*
 * composition.go, part of gostoich.
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
	"strings"

	"gonum.org/v1/gonum/floats"
)

// ElementShare is the contribution of one element to a molar mass.
type ElementShare struct {
	Symbol     string  `json:"symbol"`
	Count      int     `json:"count"`
	AtomicMass float64 `json:"atomic_mass"`
	Mass       float64 `json:"mass"`
	Percent    float64 `json:"percent"`
}

// Composition is the molar mass of a formula and its percent composition
// by mass. Elements are in formula order.
type Composition struct {
	Formula   string         `json:"formula"`
	MolarMass float64        `json:"molar_mass"`
	Elements  []ElementShare `json:"elements"`
}

// Compose computes the molar mass and percent composition of f using
// the masses in t. It fails with UnknownElement if a symbol of f is not in t.
func (t *MassTable) Compose(f Formula) (*Composition, error) {
	const funcname = "MassTable.Compose"
	if len(f) == 0 {
		return nil, newError(MalformedFormula, "", funcname, "empty formula")
	}
	ret := &Composition{Formula: f.String(), Elements: make([]ElementShare, len(f))}
	masses := make([]float64, len(f))
	for i, e := range f {
		am, err := t.Mass(e.Symbol)
		if err != nil {
			return nil, decorate(err, funcname)
		}
		if e.Count <= 0 {
			return nil, newError(InvalidQuantity, e.String(), funcname, "element counts must be positive")
		}
		masses[i] = float64(e.Count) * am
		ret.Elements[i] = ElementShare{Symbol: e.Symbol, Count: e.Count, AtomicMass: am, Mass: masses[i]}
	}
	ret.MolarMass = floats.Sum(masses)
	for i := range ret.Elements {
		ret.Elements[i].Percent = 100 * masses[i] / ret.MolarMass
	}
	return ret, nil
}

// ComputeComposition is Compose with the default mass table.
func ComputeComposition(f Formula) (*Composition, error) {
	return defaultMasses.Compose(f)
}

// MolarMass returns only the molar mass of f.
func (t *MassTable) MolarMass(f Formula) (float64, error) {
	c, err := t.Compose(f)
	if err != nil {
		return 0, decorate(err, "MassTable.MolarMass")
	}
	return c.MolarMass, nil
}

// Percent returns the mass percent of sym, and false if sym is not in the composition.
func (c *Composition) Percent(sym string) (float64, bool) {
	for _, e := range c.Elements {
		if e.Symbol == sym {
			return e.Percent, true
		}
	}
	return 0, false
}

// PercentSum returns the sum of all the percentages, 100 up to rounding.
func (c *Composition) PercentSum() float64 {
	p := make([]float64, len(c.Elements))
	for i, e := range c.Elements {
		p[i] = e.Percent
	}
	return floats.Sum(p)
}

// ElementMasses returns the mass of each element in one mole of the
// compound, suitable as input for the empirical reducer.
func (c *Composition) ElementMasses() []ElementMass {
	ret := make([]ElementMass, len(c.Elements))
	for i, e := range c.Elements {
		ret[i] = ElementMass{Symbol: e.Symbol, Mass: e.Mass}
	}
	return ret
}

func (c *Composition) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %.3f g/mol", c.Formula, c.MolarMass)
	for _, e := range c.Elements {
		fmt.Fprintf(&b, "\n  %-2s %4d x %8.3f = %9.3f  %6.2f%%", e.Symbol, e.Count, e.AtomicMass, e.Mass, e.Percent)
	}
	return b.String()
}

// TableHeaders and TableRows let a Composition be printed as a table.
func (c *Composition) TableHeaders() []string {
	return []string{"Element", "Count", "Atomic mass", "Mass", "Percent"}
}

func (c *Composition) TableRows() [][]string {
	rows := make([][]string, 0, len(c.Elements)+1)
	for _, e := range c.Elements {
		rows = append(rows, []string{e.Symbol, fmt.Sprint(e.Count), fmt.Sprintf("%.3f", e.AtomicMass),
			fmt.Sprintf("%.3f", e.Mass), fmt.Sprintf("%.2f", e.Percent)})
	}
	rows = append(rows, []string{"Total", "", "", fmt.Sprintf("%.3f", c.MolarMass), "100.00"})
	return rows
}
