/*
 * format.go, part of gostoich.
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

package stoichjson

import (
	"fmt"
	"strconv"
	"strings"
)

//Plain-text and tabular renditions of the results, for terminals.

func (P *ParseResult) String() string {
	return fmt.Sprintf("%s (%d atoms)", P.Formula, P.Atoms)
}

func (P *ParseResult) TableHeaders() []string {
	return []string{"Element", "Count"}
}

func (P *ParseResult) TableRows() [][]string {
	rows := make([][]string, len(P.Elements))
	for i, e := range P.Elements {
		rows[i] = []string{e.Symbol, strconv.Itoa(e.Count)}
	}
	return rows
}

func (E *EmpiricalResult) String() string {
	s := fmt.Sprintf("Empirical formula: %s (multiplier %d)", E.Empirical, E.Multiplier)
	if E.Molecular != "" {
		s += fmt.Sprintf("\nMolecular formula: %s (%d x %s)", E.Molecular, E.Factor, E.Empirical)
	}
	return s
}

func (E *EmpiricalResult) TableHeaders() []string {
	return []string{"Element", "Mass", "Moles", "Ratio"}
}

func (E *EmpiricalResult) TableRows() [][]string {
	rows := make([][]string, len(E.Ratios))
	for i, r := range E.Ratios {
		rows[i] = []string{r.Symbol, fmt.Sprintf("%.4f", r.Mass), fmt.Sprintf("%.5f", r.Moles), fmt.Sprintf("%.4f", r.Ratio)}
	}
	return rows
}

func (O *OxidationResult) String() string {
	states := make([]string, len(O.States))
	for i, s := range O.States {
		states[i] = s.Symbol + ":" + s.State
	}
	return fmt.Sprintf("%s (charge %+d): %s", O.Formula, O.NetCharge, strings.Join(states, " "))
}

func (O *OxidationResult) TableHeaders() []string {
	return []string{"Element", "Count", "State", "Source"}
}

func (O *OxidationResult) TableRows() [][]string {
	rows := make([][]string, len(O.States))
	for i, s := range O.States {
		rows[i] = []string{s.Symbol, strconv.Itoa(s.Count), s.State, s.Source}
	}
	return rows
}

func (I *IonicResult) String() string {
	s := I.IonicFormula.String()
	if I.MolarMass > 0 {
		s += fmt.Sprintf(", %.3f g/mol", I.MolarMass)
	}
	return s
}

func (L *LimitingResult) String() string {
	s := L.LimitingResult.String()
	for _, p := range L.Products {
		s += fmt.Sprintf("\n%s: %.6g mol", p.Label, p.Moles)
		if p.Mass > 0 {
			s += fmt.Sprintf(", %.6g g", p.Mass)
		}
	}
	return s
}

func (L *LimitingResult) TableHeaders() []string {
	return []string{"Reactant", "Moles", "Moles/coef", "Excess", "Limiting"}
}

func (L *LimitingResult) TableRows() [][]string {
	rows := make([][]string, len(L.Labels))
	for i, l := range L.Labels {
		lim := ""
		if L.IsLimiting(i) {
			lim = "*"
		}
		if l == "" {
			l = fmt.Sprintf("#%d", i)
		}
		rows[i] = []string{l, fmt.Sprintf("%.6g", L.Moles[i]), fmt.Sprintf("%.6g", L.Ratios[i]), fmt.Sprintf("%.6g", L.Excess[i]), lim}
	}
	return rows
}
