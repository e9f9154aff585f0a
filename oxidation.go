/*
 * oxidation.go, part of gostoich.
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
	"math/big"
	"sort"
	"strings"
)

// HydrogenMode tells the solver the oxidation state to use for hydrogen.
// The solver does not infer bonding context.
type HydrogenMode int

const (
	HydrogenNonmetal HydrogenMode = iota //+1, bonded to a nonmetal
	HydrogenMetal                        //-1, metal hydrides
)

// RuleKind identifies how an OxidationRule decides whether it applies.
type RuleKind int

const (
	RuleFreeElement RuleKind = iota //a single-element neutral species: 0
	RuleMonatomicIon                //a single atom with a charge: the charge
	RuleFixed                       //a given symbol in a compound: State
	RuleHydrogen                    //hydrogen in a compound: +1 or -1, see HydrogenMode
	RuleGroup                       //an element of a given group in a compound: State
)

// OxidationRule is one entry of an OxidationTable.
type OxidationRule struct {
	Name   string   `yaml:"name" json:"name"`
	Kind   RuleKind `yaml:"kind" json:"kind"`
	Symbol string   `yaml:"symbol,omitempty" json:"symbol,omitempty"`
	Group  int      `yaml:"group,omitempty" json:"group,omitempty"`
	State  int      `yaml:"state,omitempty" json:"state,omitempty"`
}

// OxidationTable is an ordered list of rules that assign default oxidation
// states, highest priority first. An element gets its state from the first
// rule that applies to it, whatever the order of the elements in the formula.
// The zero value has no rules.
type OxidationTable struct {
	rules []OxidationRule
}

var defaultRules = []OxidationRule{
	{Name: "free element", Kind: RuleFreeElement},
	{Name: "monatomic ion", Kind: RuleMonatomicIon},
	{Name: "fluorine", Kind: RuleFixed, Symbol: "F", State: -1},
	{Name: "oxygen", Kind: RuleFixed, Symbol: "O", State: -2},
	{Name: "hydrogen", Kind: RuleHydrogen, Symbol: "H"},
	{Name: "group 1", Kind: RuleGroup, Group: 1, State: 1},
	{Name: "group 2", Kind: RuleGroup, Group: 2, State: 2},
}

// DefaultOxidationTable returns the usual textbook rules: free element 0,
// monatomic ion its charge, F -1, O -2, H +1/-1, group 1 +1, group 2 +2.
// Peroxides, superoxides and OF2 need caller-supplied states.
func DefaultOxidationTable() OxidationTable {
	return OxidationTable{rules: defaultRules}
}

// NewOxidationTable returns a table with a copy of rules, in the given priority order.
func NewOxidationTable(rules []OxidationRule) (OxidationTable, error) {
	for _, r := range rules {
		switch r.Kind {
		case RuleFreeElement, RuleMonatomicIon:
		case RuleFixed, RuleHydrogen:
			if !validSymbol(r.Symbol) {
				return OxidationTable{}, newError(MalformedFormula, r.Symbol, "NewOxidationTable", "rule %q needs an element symbol", r.Name)
			}
		case RuleGroup:
			if r.Group < 1 || r.Group > 18 {
				return OxidationTable{}, newError(InvalidQuantity, fmt.Sprint(r.Group), "NewOxidationTable", "rule %q has no valid group", r.Name)
			}
		default:
			return OxidationTable{}, newError(MalformedFormula, fmt.Sprint(r.Kind), "NewOxidationTable", "rule %q has an unknown kind", r.Name)
		}
	}
	return OxidationTable{rules: append([]OxidationRule(nil), rules...)}, nil
}

// Rules returns a copy of the rules of the table.
func (t OxidationTable) Rules() []OxidationRule {
	return append([]OxidationRule(nil), t.rules...)
}

// OxidationOptions are the per-call inputs of OxidationTable.Assign.
type OxidationOptions struct {
	Known    map[string]int //caller-supplied states, they override every rule
	SolveFor string         //if not empty, this element is left unknown
	Hydrogen HydrogenMode
}

// OxidationAssignment holds the oxidation state of every element of a
// formula. The sum of state times count equals NetCharge exactly.
type OxidationAssignment struct {
	Formula   Formula
	NetCharge int
	States    map[string]*big.Rat
	Unknown   string            //the solved element, empty if all were known
	Sources   map[string]string //what assigned each state: a rule name, "given" or "solved"
}

// State returns the oxidation state of sym, or nil if sym is not in the formula.
func (a *OxidationAssignment) State(sym string) *big.Rat {
	s, ok := a.States[sym]
	if !ok {
		return nil
	}
	return new(big.Rat).Set(s)
}

// Balance returns the sum over all elements of state times count.
func (a *OxidationAssignment) Balance() *big.Rat {
	sum := new(big.Rat)
	for _, e := range a.Formula {
		term := new(big.Rat).Mul(a.States[e.Symbol], big.NewRat(int64(e.Count), 1))
		sum.Add(sum, term)
	}
	return sum
}

func (a *OxidationAssignment) String() string {
	s := make([]string, len(a.Formula))
	for i, e := range a.Formula {
		s[i] = e.Symbol + ":" + FormatState(a.States[e.Symbol])
	}
	return strings.Join(s, " ")
}

// FormatState renders an oxidation state with an explicit sign, e.g. "+6", "-2", "0" or "+8/3".
func FormatState(r *big.Rat) string {
	if r == nil {
		return "?"
	}
	s := r.RatString()
	if r.Sign() > 0 {
		s = "+" + s
	}
	return s
}

// SolveOxidation finds the oxidation state of the only element of f that
// is absent from known, so that the states balance netCharge. States in known
// for symbols that are not in f are ignored.
// If more than one element is unknown, it fails with MultipleUnknowns: the
// system is underdetermined. If all are known, the states are returned only
// if they balance the charge, otherwise it fails with ChargeImbalance.
func SolveOxidation(f Formula, known map[string]int, netCharge int) (*OxidationAssignment, error) {
	const funcname = "SolveOxidation"
	if len(f) == 0 {
		return nil, newError(MalformedFormula, "", funcname, "empty formula")
	}
	seen := make(map[string]bool, len(f))
	for _, e := range f {
		if e.Count <= 0 {
			return nil, newError(InvalidQuantity, e.String(), funcname, "element counts must be positive")
		}
		if seen[e.Symbol] {
			return nil, newError(MalformedFormula, e.Symbol, funcname, "repeated element")
		}
		seen[e.Symbol] = true
	}
	ret := &OxidationAssignment{
		Formula:   append(Formula(nil), f...),
		NetCharge: netCharge,
		States:    make(map[string]*big.Rat, len(f)),
		Sources:   make(map[string]string, len(f)),
	}
	var unknowns []string
	var unknownCount int
	var knownSum int64
	for _, e := range f {
		st, ok := known[e.Symbol]
		if !ok {
			unknowns = append(unknowns, e.Symbol)
			unknownCount = e.Count
			continue
		}
		knownSum += int64(st) * int64(e.Count)
		ret.States[e.Symbol] = big.NewRat(int64(st), 1)
		ret.Sources[e.Symbol] = "given"
	}
	switch len(unknowns) {
	case 0:
		if knownSum != int64(netCharge) {
			return nil, newError(ChargeImbalance, f.String(), funcname,
				"known states add up to %d, net charge is %d", knownSum, netCharge)
		}
	case 1:
		sym := unknowns[0]
		ret.Unknown = sym
		ret.States[sym] = big.NewRat(int64(netCharge)-knownSum, int64(unknownCount))
		ret.Sources[sym] = "solved"
	default:
		sort.Strings(unknowns)
		return nil, newError(MultipleUnknowns, strings.Join(unknowns, ","), funcname, "")
	}
	return ret, nil
}

// Assign fills in default states from the table, then solves for the element
// that remains unknown. Caller-supplied states come first, then the rules in
// table order.
func (t OxidationTable) Assign(f Formula, netCharge int, opts OxidationOptions) (*OxidationAssignment, error) {
	const funcname = "OxidationTable.Assign"
	for sym := range opts.Known {
		if f.Count(sym) == 0 {
			return nil, newError(UnknownElement, sym, funcname, "a state was given for an element not in %s", f)
		}
	}
	if opts.SolveFor != "" {
		if f.Count(opts.SolveFor) == 0 {
			return nil, newError(UnknownElement, opts.SolveFor, funcname, "cannot solve for an element not in %s", f)
		}
		if _, ok := opts.Known[opts.SolveFor]; ok {
			return nil, newError(MalformedFormula, opts.SolveFor, funcname, "element both given and solved for")
		}
	}
	known := make(map[string]int, len(f))
	sources := make(map[string]string, len(f))
	for _, e := range f {
		if st, ok := opts.Known[e.Symbol]; ok {
			known[e.Symbol] = st
			sources[e.Symbol] = "given"
			continue
		}
		if e.Symbol == opts.SolveFor {
			continue
		}
		if st, name, ok := t.apply(f, e, netCharge, opts.Hydrogen); ok {
			known[e.Symbol] = st
			sources[e.Symbol] = name
		}
	}
	ret, err := SolveOxidation(f, known, netCharge)
	if err != nil {
		return nil, decorate(err, funcname)
	}
	for k, v := range sources {
		ret.Sources[k] = v
	}
	return ret, nil
}

// SolveOxidationState is Assign with the default table.
func SolveOxidationState(f Formula, netCharge int, opts OxidationOptions) (*OxidationAssignment, error) {
	return DefaultOxidationTable().Assign(f, netCharge, opts)
}

//apply returns the state given to e by the first applicable rule, and that rule's name.
//Only the first two kinds of rule apply to single-element species, so that a
//species like O2(2-) is left for the solver.
func (t OxidationTable) apply(f Formula, e ElementQuantity, netCharge int, h HydrogenMode) (int, string, bool) {
	single := len(f) == 1
	for _, r := range t.rules {
		switch r.Kind {
		case RuleFreeElement:
			if single && netCharge == 0 {
				return 0, r.Name, true
			}
		case RuleMonatomicIon:
			if single && e.Count == 1 && netCharge != 0 {
				return netCharge, r.Name, true
			}
		case RuleFixed:
			if !single && e.Symbol == r.Symbol {
				return r.State, r.Name, true
			}
		case RuleHydrogen:
			if !single && e.Symbol == r.Symbol {
				if h == HydrogenMetal {
					return -1, r.Name, true
				}
				return 1, r.Name, true
			}
		case RuleGroup:
			//hydrogen is in group 1 but it is never an alkali metal.
			if !single && e.Symbol != "H" && Group(e.Symbol) == r.Group {
				return r.State, r.Name, true
			}
		}
	}
	return 0, "", false
}
