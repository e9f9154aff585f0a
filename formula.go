/*
 * formula.go, part of gostoich.
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
	"strconv"
	"strings"
)

//Largest count accepted for a single element in a formula.
const maxCount = 1000000

// ElementQuantity is one element of a formula and the number of
// atoms of it.
type ElementQuantity struct {
	Symbol string `json:"symbol"`
	Count  int    `json:"count"`
}

// Formula is an ordered sequence of ElementQuantity with unique symbols.
// The order is the order in which each symbol first appeared.
type Formula []ElementQuantity

// ParseFormula tokenizes a formula such as "C6H12O6" or "CH3COOH".
// Each token is an uppercase letter, an optional lowercase letter, and an optional
// count (1 when absent). Repeated symbols are merged, summing their counts.
// Symbols are not checked against any data table.
// Parenthesized groups are not supported.
func ParseFormula(text string) (Formula, error) {
	const funcname = "ParseFormula"
	if text == "" {
		return nil, newError(MalformedFormula, text, funcname, "empty formula")
	}
	var f Formula
	index := make(map[string]int)
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case isUpper(c):
		case isDigit(c):
			return nil, newError(MalformedFormula, text, funcname, "count at position %d has no preceding element", i)
		case isLower(c):
			return nil, newError(MalformedFormula, text, funcname, "lowercase %q at position %d does not follow an uppercase letter", c, i)
		case c == '(' || c == ')':
			return nil, newError(MalformedFormula, text, funcname, "parenthesized groups are not supported")
		default:
			return nil, newError(MalformedFormula, text, funcname, "invalid character at position %d", i)
		}
		start := i
		i++
		if i < len(text) && isLower(text[i]) {
			i++
		}
		sym := text[start:i]
		dstart := i
		for i < len(text) && isDigit(text[i]) {
			i++
		}
		count := 1
		if i > dstart {
			var err error
			count, err = strconv.Atoi(text[dstart:i])
			if err != nil || count > maxCount {
				return nil, newError(MalformedFormula, text, funcname, "count %s for %s is too large", text[dstart:i], sym)
			}
			if count == 0 {
				return nil, newError(MalformedFormula, text, funcname, "zero count for %s", sym)
			}
		}
		if j, ok := index[sym]; ok {
			f[j].Count += count
			continue
		}
		index[sym] = len(f)
		f = append(f, ElementQuantity{Symbol: sym, Count: count})
	}
	return f, nil
}

// MustParseFormula is like ParseFormula but panics on error.
// It is meant for formulas known at compile time.
func MustParseFormula(text string) Formula {
	f, err := ParseFormula(text)
	if err != nil {
		panic(err.Error())
	}
	return f
}

// String renders the formula, omitting counts of 1, e.g. "C2H4O".
func (f Formula) String() string {
	var b strings.Builder
	for _, e := range f {
		b.WriteString(e.Symbol)
		if e.Count != 1 {
			b.WriteString(strconv.Itoa(e.Count))
		}
	}
	return b.String()
}

// Count returns the number of atoms of sym in the formula.
func (f Formula) Count(sym string) int {
	for _, e := range f {
		if e.Symbol == sym {
			return e.Count
		}
	}
	return 0
}

// Symbols returns the element symbols in formula order.
func (f Formula) Symbols() []string {
	ret := make([]string, len(f))
	for i, e := range f {
		ret[i] = e.Symbol
	}
	return ret
}

// Map returns the formula as a symbol -> count map.
func (f Formula) Map() map[string]int {
	ret := make(map[string]int, len(f))
	for _, e := range f {
		ret[e.Symbol] = e.Count
	}
	return ret
}

// Atoms returns the total number of atoms.
func (f Formula) Atoms() int {
	n := 0
	for _, e := range f {
		n += e.Count
	}
	return n
}

// Scale returns a new formula with every count multiplied by n.
func (f Formula) Scale(n int) Formula {
	ret := make(Formula, len(f))
	for i, e := range f {
		ret[i] = ElementQuantity{Symbol: e.Symbol, Count: e.Count * n}
	}
	return ret
}

// Equal reports whether f and g contain the same elements with the same counts,
// regardless of order.
func (f Formula) Equal(g Formula) bool {
	if len(f) != len(g) {
		return false
	}
	for _, e := range f {
		if g.Count(e.Symbol) != e.Count {
			return false
		}
	}
	return true
}

// Reduced returns the formula with all counts divided by their greatest
// common divisor, and that divisor.
func (f Formula) Reduced() (Formula, int) {
	counts := make([]int, len(f))
	for i, e := range f {
		counts[i] = e.Count
	}
	g := gcdAll(counts)
	if g <= 1 {
		return append(Formula(nil), f...), 1
	}
	ret := make(Formula, len(f))
	for i, e := range f {
		ret[i] = ElementQuantity{Symbol: e.Symbol, Count: e.Count / g}
	}
	return ret, g
}

// Hill returns a copy of f in Hill order: C first, H second, the rest
// alphabetically. Without carbon, every element goes alphabetically.
func (f Formula) Hill() Formula {
	ret := append(Formula(nil), f...)
	carbon := f.Count("C") > 0
	rank := func(sym string) int {
		switch {
		case carbon && sym == "C":
			return 0
		case carbon && sym == "H":
			return 1
		}
		return 2
	}
	sort.SliceStable(ret, func(i, j int) bool {
		ri, rj := rank(ret[i].Symbol), rank(ret[j].Symbol)
		if ri != rj {
			return ri < rj
		}
		return ret[i].Symbol < ret[j].Symbol
	})
	return ret
}

func (e ElementQuantity) String() string {
	return fmt.Sprintf("%s:%d", e.Symbol, e.Count)
}

//gcd returns the greatest common divisor of |a| and |b|.
func gcd(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

//gcdAll returns the gcd of all the numbers in n, 0 for an empty slice.
func gcdAll(n []int) int {
	g := 0
	for _, v := range n {
		g = gcd(g, v)
	}
	return g
}
