/*
 * args.go, part of gostoich.
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

package cli

import (
	"fmt"
	"strconv"
	"strings"

	stoich "github.com/rmera/gostoich"
)

// parseElementMass reads "SYM=MASS".
func parseElementMass(s string) (stoich.ElementMass, error) {
	sym, val, ok := strings.Cut(s, "=")
	if !ok || sym == "" {
		return stoich.ElementMass{}, fmt.Errorf("expected SYMBOL=MASS, got %q", s)
	}
	m, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return stoich.ElementMass{}, fmt.Errorf("bad mass in %q: %w", s, err)
	}
	return stoich.ElementMass{Symbol: sym, Mass: m}, nil
}

// parseKnown reads "SYM=STATE" pairs.
func parseKnown(pairs []string) (map[string]int, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	ret := make(map[string]int, len(pairs))
	for _, p := range pairs {
		sym, val, ok := strings.Cut(p, "=")
		if !ok || sym == "" {
			return nil, fmt.Errorf("expected SYMBOL=STATE, got %q", p)
		}
		st, err := strconv.Atoi(strings.TrimPrefix(val, "+"))
		if err != nil {
			return nil, fmt.Errorf("bad oxidation state in %q: %w", p, err)
		}
		ret[sym] = st
	}
	return ret, nil
}

// parseReactant reads "LABEL:COEF:AMOUNT". The amount is in moles, or in grams
// if it ends in "g". In that case the label must be a formula, unless a molar
// mass is given as a fourth field.
func parseReactant(s string) (stoich.Reactant, error) {
	f := strings.Split(s, ":")
	if len(f) < 3 || len(f) > 4 {
		return stoich.Reactant{}, fmt.Errorf("expected LABEL:COEF:AMOUNT[:MOLARMASS], got %q", s)
	}
	coef, err := strconv.Atoi(f[1])
	if err != nil {
		return stoich.Reactant{}, fmt.Errorf("bad coefficient in %q: %w", s, err)
	}
	r := stoich.Reactant{Label: f[0], Coefficient: coef}
	amount := f[2]
	grams := strings.HasSuffix(amount, "g")
	v, err := strconv.ParseFloat(strings.TrimSuffix(amount, "g"), 64)
	if err != nil {
		return stoich.Reactant{}, fmt.Errorf("bad amount in %q: %w", s, err)
	}
	if grams {
		r.Mass = v
	} else {
		r.Moles = v
	}
	if len(f) == 4 {
		if r.MolarMass, err = strconv.ParseFloat(f[3], 64); err != nil {
			return stoich.Reactant{}, fmt.Errorf("bad molar mass in %q: %w", s, err)
		}
	}
	return r, nil
}

// parseProduct reads "LABEL:COEF[:MOLARMASS]".
func parseProduct(s string) (stoich.Product, error) {
	f := strings.Split(s, ":")
	if len(f) < 2 || len(f) > 3 {
		return stoich.Product{}, fmt.Errorf("expected LABEL:COEF[:MOLARMASS], got %q", s)
	}
	coef, err := strconv.Atoi(f[1])
	if err != nil {
		return stoich.Product{}, fmt.Errorf("bad coefficient in %q: %w", s, err)
	}
	p := stoich.Product{Label: f[0], Coefficient: coef}
	if len(f) == 3 {
		if p.MolarMass, err = strconv.ParseFloat(f[2], 64); err != nil {
			return stoich.Product{}, fmt.Errorf("bad molar mass in %q: %w", s, err)
		}
	}
	return p, nil
}
