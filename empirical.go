/*
 * empirical.go, part of gostoich.
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

const (
	// RatioTolerance is the largest distance from a whole number that a scaled
	// mole ratio may have to be accepted.
	RatioTolerance = 0.08
	// MaxMultiplier bounds the search for a common multiplier.
	MaxMultiplier = 6

	// MaxRatio is the largest mole ratio, relative to the scarcest element,
	// that Reduce accepts.
	MaxRatio = 1e6

	roundingLimit      = 0.1
	percentSlack       = 1.0
	molecularTolerance = 0.1
)

// ElementMass is the mass (or mass percent) of one element in a sample.
type ElementMass struct {
	Symbol string  `json:"symbol"`
	Mass   float64 `json:"mass"`
}

// MoleRatio is the number of moles of an element in a sample, and its
// ratio to the smallest mole number of the sample.
type MoleRatio struct {
	Symbol string  `json:"symbol"`
	Mass   float64 `json:"mass"`
	Moles  float64 `json:"moles"`
	Ratio  float64 `json:"ratio"`
}

// Reduction is the result of an empirical formula calculation.
type Reduction struct {
	Ratios     []MoleRatio `json:"ratios"`
	Multiplier int         `json:"multiplier"`
	Formula    Formula     `json:"formula"`
}

func (r *Reduction) String() string {
	var b strings.Builder
	b.WriteString(r.Formula.String())
	for _, v := range r.Ratios {
		fmt.Fprintf(&b, "\n  %-2s %10.4f g %10.4f mol  ratio %.3f", v.Symbol, v.Mass, v.Moles, v.Ratio)
	}
	if r.Multiplier > 1 {
		fmt.Fprintf(&b, "\n  ratios multiplied by %d", r.Multiplier)
	}
	return b.String()
}

// Reduce computes the empirical formula of a sample from the mass of each
// of its elements. Repeated symbols have their masses added.
//
// Mole numbers are divided by the smallest one, and the smallest multiplier
// in 1..MaxMultiplier that brings every ratio within RatioTolerance of a whole
// number is applied to all of them at once. If there is no such multiplier,
// a NonTerminating error is returned instead of a guess.
func (t *MassTable) Reduce(data []ElementMass) (*Reduction, error) {
	const funcname = "MassTable.Reduce"
	data, err := mergeMasses(data, funcname)
	if err != nil {
		return nil, err
	}
	if len(data) < 2 {
		return nil, newError(NotEnoughData, "", funcname, "at least 2 elements are needed, got %d", len(data))
	}
	moles := make([]float64, len(data))
	for i, d := range data {
		am, err := t.Mass(d.Symbol)
		if err != nil {
			return nil, decorate(err, funcname)
		}
		moles[i] = d.Mass / am
	}
	min := floats.Min(moles)
	ret := &Reduction{Ratios: make([]MoleRatio, len(data))}
	ratios := make([]float64, len(data))
	for i, d := range data {
		ratios[i] = moles[i] / min
		ret.Ratios[i] = MoleRatio{Symbol: d.Symbol, Mass: d.Mass, Moles: moles[i], Ratio: ratios[i]}
	}
	for i, r := range ratios {
		if !(r <= MaxRatio) {
			return nil, newError(InvalidQuantity, data[i].Symbol, funcname, "mole ratio %g is above %g", r, float64(MaxRatio))
		}
	}
	m, ok := commonMultiplier(ratios)
	if !ok {
		return nil, newError(NonTerminating, formatRatios(ret.Ratios), funcname,
			"no multiplier up to %d brings all ratios within %g of a whole number", MaxMultiplier, RatioTolerance)
	}
	counts := make([]int, len(ratios))
	for i, r := range ratios {
		scaled := r * float64(m)
		counts[i] = int(math.Round(scaled))
		if math.Abs(scaled-float64(counts[i])) > roundingLimit || counts[i] < 1 {
			return nil, newError(NonTerminating, formatRatios(ret.Ratios), funcname, "ratio %.3f does not round cleanly", scaled)
		}
	}
	g := gcdAll(counts)
	ret.Multiplier = m
	ret.Formula = make(Formula, len(data))
	for i, d := range data {
		ret.Formula[i] = ElementQuantity{Symbol: d.Symbol, Count: counts[i] / g}
	}
	return ret, nil
}

// ReduceToEmpirical is Reduce with the default mass table.
func ReduceToEmpirical(data []ElementMass) (*Reduction, error) {
	return defaultMasses.Reduce(data)
}

// ReducePercent is like Reduce, but takes mass percentages, which are
// taken as grams of a 100 g sample. The percentages must add up to 100 within 1.
func (t *MassTable) ReducePercent(data []ElementMass) (*Reduction, error) {
	const funcname = "MassTable.ReducePercent"
	p := make([]float64, len(data))
	for i, d := range data {
		p[i] = d.Mass
	}
	if sum := floats.Sum(p); len(data) >= 2 && math.Abs(sum-100) > percentSlack {
		return nil, newError(PercentTotal, fmt.Sprintf("%g", sum), funcname, "")
	}
	r, err := t.Reduce(data)
	if err != nil {
		return nil, decorate(err, funcname)
	}
	return r, nil
}

// MolecularFormula scales an empirical formula to match the given molar mass.
// It returns the molecular formula and the scale factor.
func (t *MassTable) MolecularFormula(empirical Formula, molarMass float64) (Formula, int, error) {
	const funcname = "MassTable.MolecularFormula"
	if !(molarMass > 0) || math.IsInf(molarMass, 0) {
		return nil, 0, newError(InvalidQuantity, fmt.Sprint(molarMass), funcname, "molar mass must be positive")
	}
	emass, err := t.MolarMass(empirical)
	if err != nil {
		return nil, 0, decorate(err, funcname)
	}
	q := molarMass / emass
	n := math.Round(q)
	if n < 1 || math.Abs(q-n) > molecularTolerance {
		return nil, 0, newError(MassMismatch, fmt.Sprint(molarMass), funcname,
			"%s weighs %.3f g/mol, quotient %.3f", empirical, emass, q)
	}
	return empirical.Scale(int(n)), int(n), nil
}

//commonMultiplier returns the smallest integer in 1..MaxMultiplier that
//brings every ratio within RatioTolerance of a whole number.
func commonMultiplier(ratios []float64) (int, bool) {
	for m := 1; m <= MaxMultiplier; m++ {
		ok := true
		for _, r := range ratios {
			s := r * float64(m)
			if math.Abs(s-math.Round(s)) > RatioTolerance {
				ok = false
				break
			}
		}
		if ok {
			return m, true
		}
	}
	return 0, false
}

//mergeMasses validates the masses and adds together repeated symbols,
//keeping the order of first appearance.
func mergeMasses(data []ElementMass, funcname string) ([]ElementMass, error) {
	ret := make([]ElementMass, 0, len(data))
	index := make(map[string]int, len(data))
	for _, d := range data {
		if !(d.Mass > 0) || math.IsInf(d.Mass, 0) {
			return nil, newError(InvalidQuantity, d.Symbol, funcname, "mass must be positive, got %g", d.Mass)
		}
		if j, ok := index[d.Symbol]; ok {
			ret[j].Mass += d.Mass
			continue
		}
		index[d.Symbol] = len(ret)
		ret = append(ret, d)
	}
	return ret, nil
}

func formatRatios(r []MoleRatio) string {
	s := make([]string, len(r))
	for i, v := range r {
		s[i] = fmt.Sprintf("%s:%.3f", v.Symbol, v.Ratio)
	}
	return strings.Join(s, " ")
}
