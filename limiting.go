/*
 * limiting.go, part of gostoich.
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
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

//Relative tolerance under which two mole/coefficient ratios are considered tied.
const tieTolerance = 1e-9

// Reactant is one reactant of a balanced equation. The amount is given
// either as Moles, or as Mass together with MolarMass. Moles takes precedence.
type Reactant struct {
	Label       string  `json:"label"`
	Coefficient int     `json:"coefficient"`
	Moles       float64 `json:"moles,omitempty"`
	Mass        float64 `json:"mass,omitempty"`
	MolarMass   float64 `json:"molar_mass,omitempty"`
}

// MoleCount returns the amount of the reactant in moles.
func (r Reactant) MoleCount() (float64, error) {
	const funcname = "Reactant.MoleCount"
	if r.Coefficient <= 0 {
		return 0, newError(InvalidQuantity, r.Label, funcname, "coefficient must be positive, got %d", r.Coefficient)
	}
	if r.Moles != 0 {
		if !(r.Moles > 0) || math.IsInf(r.Moles, 0) {
			return 0, newError(InvalidQuantity, r.Label, funcname, "moles must be positive, got %g", r.Moles)
		}
		return r.Moles, nil
	}
	if !(r.Mass > 0) || math.IsInf(r.Mass, 0) {
		return 0, newError(InvalidQuantity, r.Label, funcname, "a positive amount (moles or mass) is needed")
	}
	if !(r.MolarMass > 0) || math.IsInf(r.MolarMass, 0) {
		return 0, newError(InvalidQuantity, r.Label, funcname, "mass given without a positive molar mass")
	}
	return r.Mass / r.MolarMass, nil
}

// FillMolarMass returns r with its MolarMass computed from its Label, read as a
// formula, when the amount is given as a mass and the molar mass is missing.
// Otherwise r is returned unchanged.
func (t *MassTable) FillMolarMass(r Reactant) (Reactant, error) {
	if r.Moles != 0 || r.MolarMass != 0 || r.Mass == 0 {
		return r, nil
	}
	f, err := ParseFormula(r.Label)
	if err != nil {
		return r, decorate(err, "MassTable.FillMolarMass")
	}
	m, err := t.MolarMass(f)
	if err != nil {
		return r, decorate(err, "MassTable.FillMolarMass")
	}
	r.MolarMass = m
	return r, nil
}

// Product is one product of a balanced equation. MolarMass is optional, and
// only needed to get product masses.
type Product struct {
	Label       string  `json:"label"`
	Coefficient int     `json:"coefficient"`
	MolarMass   float64 `json:"molar_mass,omitempty"`
}

// ProductYield is the theoretical amount of a product.
type ProductYield struct {
	Label string  `json:"label"`
	Moles float64 `json:"moles"`
	Mass  float64 `json:"mass,omitempty"`
}

// LimitingResult is the outcome of a limiting reagent calculation.
// Limiting holds the indexes of every reactant with the minimum
// moles/coefficient ratio; more than one means a tie.
type LimitingResult struct {
	Labels   []string  `json:"labels"`
	Moles    []float64 `json:"moles"`
	Ratios   []float64 `json:"ratios"`
	Limiting []int     `json:"limiting"`
	Ratio    float64   `json:"ratio"`  //the limiting ratio: moles of "reaction" that can take place
	Excess   []float64 `json:"excess"` //moles left of each reactant, 0 for the limiting ones
}

// Ambiguous returns true if several reactants tie as limiting.
func (r *LimitingResult) Ambiguous() bool {
	return len(r.Limiting) > 1
}

// IsLimiting returns true if reactant i is (one of) the limiting reactants.
func (r *LimitingResult) IsLimiting(i int) bool {
	for _, v := range r.Limiting {
		if v == i {
			return true
		}
	}
	return false
}

// FindLimiting determines the limiting reactant: the one with the smallest
// moles/coefficient ratio. Every reactant within a relative 1e-9 of the
// minimum is reported. The excess of every other reactant is its supplied
// moles minus the limiting ratio times its coefficient.
func FindLimiting(reactants []Reactant) (*LimitingResult, error) {
	const funcname = "FindLimiting"
	if len(reactants) == 0 {
		return nil, newError(NotEnoughData, "", funcname, "no reactants given")
	}
	ret := &LimitingResult{
		Labels: make([]string, len(reactants)),
		Moles:  make([]float64, len(reactants)),
		Ratios: make([]float64, len(reactants)),
		Excess: make([]float64, len(reactants)),
	}
	for i, r := range reactants {
		n, err := r.MoleCount()
		if err != nil {
			if e, ok := err.(*Error); ok && e.Value == "" {
				e.Value = fmt.Sprintf("reactant %d", i)
			}
			return nil, decorate(err, funcname)
		}
		ret.Labels[i] = r.Label
		ret.Moles[i] = n
		ret.Ratios[i] = n / float64(r.Coefficient)
	}
	ret.Ratio = floats.Min(ret.Ratios)
	for i, r := range reactants {
		if ret.Ratios[i]-ret.Ratio <= tieTolerance*ret.Ratio {
			ret.Limiting = append(ret.Limiting, i)
			continue
		}
		ret.Excess[i] = ret.Moles[i] - ret.Ratio*float64(r.Coefficient)
	}
	return ret, nil
}

// Yield returns the theoretical yield of p given the limiting ratio.
func (r *LimitingResult) Yield(p Product) (ProductYield, error) {
	const funcname = "LimitingResult.Yield"
	if p.Coefficient <= 0 {
		return ProductYield{}, newError(InvalidQuantity, p.Label, funcname, "coefficient must be positive, got %d", p.Coefficient)
	}
	if p.MolarMass < 0 || math.IsNaN(p.MolarMass) || math.IsInf(p.MolarMass, 0) {
		return ProductYield{}, newError(InvalidQuantity, p.Label, funcname, "invalid molar mass %g", p.MolarMass)
	}
	y := ProductYield{Label: p.Label, Moles: r.Ratio * float64(p.Coefficient)}
	y.Mass = y.Moles * p.MolarMass
	return y, nil
}

// PercentYield returns 100*actual/theoretical.
func PercentYield(actual, theoretical float64) (float64, error) {
	if !(theoretical > 0) || math.IsInf(theoretical, 0) {
		return 0, newError(InvalidQuantity, fmt.Sprint(theoretical), "PercentYield", "theoretical yield must be positive")
	}
	if actual < 0 || math.IsNaN(actual) || math.IsInf(actual, 0) {
		return 0, newError(InvalidQuantity, fmt.Sprint(actual), "PercentYield", "actual yield must not be negative")
	}
	return 100 * actual / theoretical, nil
}

func (r *LimitingResult) String() string {
	var b strings.Builder
	lim := make([]string, len(r.Limiting))
	for i, v := range r.Limiting {
		lim[i] = r.label(v)
	}
	fmt.Fprintf(&b, "limiting: %s (ratio %.4g)", strings.Join(lim, ", "), r.Ratio)
	if r.Ambiguous() {
		b.WriteString(" [tie]")
	}
	for i := range r.Moles {
		fmt.Fprintf(&b, "\n  %-12s %10.4g mol  ratio %10.4g  excess %10.4g mol", r.label(i), r.Moles[i], r.Ratios[i], r.Excess[i])
	}
	return b.String()
}

func (r *LimitingResult) label(i int) string {
	if r.Labels[i] != "" {
		return r.Labels[i]
	}
	return fmt.Sprintf("#%d", i)
}
