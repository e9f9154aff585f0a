/*
 * tables.go, part of gostoich.
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

/*Package tables reads and writes the data tables used by goStoich, atomic masses
and oxidation-state rules, as YAML files.

A mass table file looks like:

	extend: true   # start from the built-in standard atomic weights
	elements:
	  D: 2.014
	  H: 1.00794

An oxidation table file lists its rules in priority order, highest first:

	rules:
	  - {name: free element, kind: free-element}
	  - {name: monatomic ion, kind: monatomic-ion}
	  - {name: fluorine, kind: fixed, symbol: F, state: -1}
	  - {name: hydrogen, kind: hydrogen, symbol: H}
	  - {name: group 1, kind: group, group: 1, state: 1}
*/
package tables

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	stoich "github.com/rmera/gostoich"
)

type massFile struct {
	Extend   bool               `yaml:"extend"`
	Elements map[string]float64 `yaml:"elements"`
}

type ruleEntry struct {
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"`
	Symbol string `yaml:"symbol,omitempty"`
	Group  int    `yaml:"group,omitempty"`
	State  int    `yaml:"state,omitempty"`
}

type oxidationFile struct {
	Rules []ruleEntry `yaml:"rules"`
}

var kindNames = map[stoich.RuleKind]string{
	stoich.RuleFreeElement:  "free-element",
	stoich.RuleMonatomicIon: "monatomic-ion",
	stoich.RuleFixed:        "fixed",
	stoich.RuleHydrogen:     "hydrogen",
	stoich.RuleGroup:        "group",
}

func kindFromName(name string) (stoich.RuleKind, bool) {
	for k, v := range kindNames {
		if v == name {
			return k, true
		}
	}
	return 0, false
}

// ReadMassTable decodes a mass table from r. If the file sets extend, its
// elements are added to (or replace those in) the built-in table.
func ReadMassTable(r io.Reader) (*stoich.MassTable, error) {
	var f massFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, newError("", "ReadMassTable", "decoding YAML", err)
	}
	if len(f.Elements) == 0 && !f.Extend {
		return nil, newError("", "ReadMassTable", "no elements in table", nil)
	}
	var t *stoich.MassTable
	var err error
	if f.Extend {
		t, err = stoich.DefaultMassTable().With(f.Elements)
	} else {
		t, err = stoich.NewMassTable(f.Elements)
	}
	if err != nil {
		return nil, newError("", "ReadMassTable", "invalid table", err)
	}
	return t, nil
}

// LoadMassTable reads a mass table from the file name.
func LoadMassTable(name string) (*stoich.MassTable, error) {
	fin, err := os.Open(name)
	if err != nil {
		return nil, newError(name, "LoadMassTable", UnableToOpen, err)
	}
	defer fin.Close()
	t, err := ReadMassTable(fin)
	if err != nil {
		return nil, withFile(err, name, "LoadMassTable")
	}
	return t, nil
}

// WriteMassTable encodes t to w. The encoder sorts the elements alphabetically.
func WriteMassTable(w io.Writer, t *stoich.MassTable) error {
	f := massFile{Elements: make(map[string]float64, t.Len())}
	for _, sym := range t.Symbols() {
		f.Elements[sym], _ = t.Mass(sym)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&f); err != nil {
		return newError("", "WriteMassTable", "encoding YAML", err)
	}
	return enc.Close()
}

// ReadOxidationTable decodes a rule table from r.
func ReadOxidationTable(r io.Reader) (stoich.OxidationTable, error) {
	var f oxidationFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return stoich.OxidationTable{}, newError("", "ReadOxidationTable", "decoding YAML", err)
	}
	if len(f.Rules) == 0 {
		return stoich.OxidationTable{}, newError("", "ReadOxidationTable", "no rules in table", nil)
	}
	rules := make([]stoich.OxidationRule, len(f.Rules))
	for i, e := range f.Rules {
		k, ok := kindFromName(e.Kind)
		if !ok {
			return stoich.OxidationTable{}, newError("", "ReadOxidationTable", fmt.Sprintf("rule %d: unknown kind %q", i, e.Kind), nil)
		}
		rules[i] = stoich.OxidationRule{Name: e.Name, Kind: k, Symbol: e.Symbol, Group: e.Group, State: e.State}
	}
	t, err := stoich.NewOxidationTable(rules)
	if err != nil {
		return stoich.OxidationTable{}, newError("", "ReadOxidationTable", "invalid rule", err)
	}
	return t, nil
}

// LoadOxidationTable reads a rule table from the file name.
func LoadOxidationTable(name string) (stoich.OxidationTable, error) {
	fin, err := os.Open(name)
	if err != nil {
		return stoich.OxidationTable{}, newError(name, "LoadOxidationTable", UnableToOpen, err)
	}
	defer fin.Close()
	t, err := ReadOxidationTable(fin)
	if err != nil {
		return stoich.OxidationTable{}, withFile(err, name, "LoadOxidationTable")
	}
	return t, nil
}

// WriteOxidationTable encodes the rules of t to w.
func WriteOxidationTable(w io.Writer, t stoich.OxidationTable) error {
	var f oxidationFile
	for _, r := range t.Rules() {
		f.Rules = append(f.Rules, ruleEntry{Name: r.Name, Kind: kindNames[r.Kind], Symbol: r.Symbol, Group: r.Group, State: r.State})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&f); err != nil {
		return newError("", "WriteOxidationTable", "encoding YAML", err)
	}
	return enc.Close()
}

// RuleKinds returns the names accepted in the kind field of a rule.
func RuleKinds() []string {
	ret := make([]string, 0, len(kindNames))
	for _, v := range kindNames {
		ret = append(ret, v)
	}
	sort.Strings(ret)
	return ret
}
