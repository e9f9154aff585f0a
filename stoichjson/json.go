/*
 * json.go, part of gostoich.
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
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"strings"

	stoich "github.com/rmera/gostoich"
)

const (
	OpParse       = "parse"
	OpComposition = "composition"
	OpEmpirical   = "empirical"
	OpOxidation   = "oxidation"
	OpIonic       = "ionic"
	OpLimiting    = "limiting"
)

// Ops returns the names of the supported operations.
func Ops() []string {
	return []string{OpParse, OpComposition, OpEmpirical, OpOxidation, OpIonic, OpLimiting}
}

// Request is one calculation. Only the fields used by Op need to be set.
type Request struct {
	ID string `json:"id,omitempty"`
	Op string `json:"op"`

	Formula string `json:"formula,omitempty"` //parse, composition, oxidation

	Masses    []stoich.ElementMass `json:"masses,omitempty"`     //empirical
	Percent   bool                 `json:"percent,omitempty"`    //empirical: masses are percentages
	MolarMass float64              `json:"molar_mass,omitempty"` //empirical: also get the molecular formula

	NetCharge int            `json:"net_charge,omitempty"` //oxidation
	Known     map[string]int `json:"known,omitempty"`
	SolveFor  string         `json:"solve_for,omitempty"`
	Hydride   bool           `json:"hydride,omitempty"` //hydrogen at -1

	Cation *stoich.Ion `json:"cation,omitempty"` //ionic
	Anion  *stoich.Ion `json:"anion,omitempty"`

	Reactants []stoich.Reactant `json:"reactants,omitempty"` //limiting
	Products  []stoich.Product  `json:"products,omitempty"`
}

// Response carries the result of a Request, or its error.
type Response struct {
	ID     string      `json:"id,omitempty"`
	Op     string      `json:"op"`
	Result interface{} `json:"result,omitempty"`
	Error  *Error      `json:"error,omitempty"`
}

// Failed returns true if the response carries an error.
func (R *Response) Failed() bool {
	return R.Error != nil && R.Error.IsError
}

// Send marshals the response and writes it to out as a single line.
func (R *Response) Send(out io.Writer) *Error {
	enc := json.NewEncoder(out)
	if err := enc.Encode(R); err != nil {
		return NewError("postprocess", "Response.Send", err)
	}
	return nil
}

// An easily JSON-serializable error type.
type Error struct {
	deco          []string
	IsError       bool   //If this is false (no error) all the other fields will be at their zero-values.
	InRequest     bool   //Was it in decoding the request?
	InProcess     bool   //in the calculation itself?
	InPostProcess bool   //in preparing the output?
	Kind          string `json:",omitempty"` //the stoich error kind, if it comes from a calculation
	Reason        string `json:",omitempty"`
	Value         string `json:",omitempty"` //the offending value(s)
	Function      string //which go function gave the error
	Message       string //the error itself
}

// Error implements the error interface
func (J *Error) Error() string {
	return J.Message
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (J *Error) Decorate(dec string) []string {
	if dec == "" {
		return J.deco
	}
	J.deco = append(J.deco, dec)
	return J.deco
}

// Marshal serializes the error. Panics on failure.
func (J *Error) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - "))
	}
	return ret
}

// NewError takes an error and some additional info to create a json-marshal-able error.
// where is "request", "postprocess", or anything else for the calculation.
func NewError(where, function string, err error) *Error {
	jerr := new(Error)
	jerr.IsError = true
	switch where {
	case "request":
		jerr.InRequest = true
	case "postprocess":
		jerr.InPostProcess = true
	default:
		jerr.InProcess = true
	}
	jerr.Function = function
	jerr.Message = err.Error()
	var serr *stoich.Error
	if errors.As(err, &serr) {
		jerr.Kind = serr.Kind().String()
		jerr.Reason = serr.Reason
		jerr.Value = serr.Value
		if t := serr.Trace(); t != "" {
			jerr.Function = t
		}
	}
	return jerr
}

// DecodeRequest reads one non-blank line from stdin and decodes it into a Request.
// Read errors, including io.EOF when there is nothing left to read, are returned
// as they are. Decoding errors are returned as *Error.
func DecodeRequest(stdin *bufio.Reader) (*Request, error) {
	var line []byte
	for len(line) == 0 {
		l, err := stdin.ReadBytes('\n')
		line = bytes.TrimSpace(l)
		if err == io.EOF && len(line) == 0 {
			return nil, io.EOF
		}
		if err != nil && err != io.EOF {
			return nil, err
		}
	}
	return ParseRequest(line)
}

// ParseRequest decodes a single JSON request.
func ParseRequest(line []byte) (*Request, error) {
	ret := new(Request)
	if err := json.Unmarshal(line, ret); err != nil {
		return nil, NewError("request", "ParseRequest", err)
	}
	return ret, nil
}

// Evaluator evaluates requests against a fixed pair of tables.
type Evaluator struct {
	masses *stoich.MassTable
	rules  stoich.OxidationTable
}

// NewEvaluator returns an evaluator using the given tables. A nil mass table
// means the built-in one.
func NewEvaluator(masses *stoich.MassTable, rules stoich.OxidationTable) *Evaluator {
	if masses == nil {
		masses = stoich.DefaultMassTable()
	}
	return &Evaluator{masses: masses, rules: rules}
}

var defaultEvaluator = NewEvaluator(nil, stoich.DefaultOxidationTable())

// DefaultEvaluator returns the evaluator with the built-in tables.
func DefaultEvaluator() *Evaluator {
	return defaultEvaluator
}

// Evaluate evaluates req with the built-in tables.
func Evaluate(req *Request) *Response {
	return defaultEvaluator.Evaluate(req)
}

// Evaluate runs the calculation req asks for. It never fails: errors
// are returned inside the Response.
func (E *Evaluator) Evaluate(req *Request) *Response {
	ret := &Response{ID: req.ID, Op: req.Op}
	var res interface{}
	var err error
	switch req.Op {
	case OpParse:
		res, err = E.parse(req)
	case OpComposition:
		res, err = E.composition(req)
	case OpEmpirical:
		res, err = E.empirical(req)
	case OpOxidation:
		res, err = E.oxidation(req)
	case OpIonic:
		res, err = E.ionic(req)
	case OpLimiting:
		res, err = E.limiting(req)
	default:
		ret.Error = NewError("request", "Evaluator.Evaluate", &stoich.Error{Reason: stoich.UnknownOperation, Value: req.Op})
		return ret
	}
	if err != nil {
		ret.Error = NewError("process", "Evaluator.Evaluate", err)
		return ret
	}
	ret.Result = res
	return ret
}

// ParseResult is the result of a parse request.
type ParseResult struct {
	Formula  string         `json:"formula"`
	Elements stoich.Formula `json:"elements"`
	Atoms    int            `json:"atoms"`
}

func (E *Evaluator) parse(req *Request) (*ParseResult, error) {
	f, err := stoich.ParseFormula(req.Formula)
	if err != nil {
		return nil, err
	}
	return &ParseResult{Formula: f.String(), Elements: f, Atoms: f.Atoms()}, nil
}

func (E *Evaluator) composition(req *Request) (*stoich.Composition, error) {
	f, err := stoich.ParseFormula(req.Formula)
	if err != nil {
		return nil, err
	}
	return E.masses.Compose(f)
}

// EmpiricalResult is the result of an empirical request.
type EmpiricalResult struct {
	Empirical  string             `json:"empirical"`
	Ratios     []stoich.MoleRatio `json:"ratios"`
	Multiplier int                `json:"multiplier"`
	Molecular  string             `json:"molecular,omitempty"`
	Factor     int                `json:"factor,omitempty"`

	Reduction *stoich.Reduction `json:"-"`
}

func (E *Evaluator) empirical(req *Request) (*EmpiricalResult, error) {
	var r *stoich.Reduction
	var err error
	if req.Percent {
		r, err = E.masses.ReducePercent(req.Masses)
	} else {
		r, err = E.masses.Reduce(req.Masses)
	}
	if err != nil {
		return nil, err
	}
	ret := &EmpiricalResult{Empirical: r.Formula.String(), Ratios: r.Ratios, Multiplier: r.Multiplier, Reduction: r}
	if req.MolarMass != 0 {
		m, n, err := E.masses.MolecularFormula(r.Formula, req.MolarMass)
		if err != nil {
			return nil, err
		}
		ret.Molecular = m.String()
		ret.Factor = n
	}
	return ret, nil
}

// StateEntry is the oxidation state of one element.
type StateEntry struct {
	Symbol string  `json:"symbol"`
	Count  int     `json:"count"`
	State  string  `json:"state"` //exact, e.g. "+8/3"
	Value  float64 `json:"value"` //approximate
	Source string  `json:"source"`
}

// OxidationResult is the result of an oxidation request.
type OxidationResult struct {
	Formula   string       `json:"formula"`
	NetCharge int          `json:"net_charge"`
	Unknown   string       `json:"unknown,omitempty"`
	States    []StateEntry `json:"states"`
}

func (E *Evaluator) oxidation(req *Request) (*OxidationResult, error) {
	f, err := stoich.ParseFormula(req.Formula)
	if err != nil {
		return nil, err
	}
	opts := stoich.OxidationOptions{Known: req.Known, SolveFor: req.SolveFor}
	if req.Hydride {
		opts.Hydrogen = stoich.HydrogenMetal
	}
	a, err := E.rules.Assign(f, req.NetCharge, opts)
	if err != nil {
		return nil, err
	}
	return NewOxidationResult(a), nil
}

// NewOxidationResult converts an assignment to its serializable form.
func NewOxidationResult(a *stoich.OxidationAssignment) *OxidationResult {
	ret := &OxidationResult{Formula: a.Formula.String(), NetCharge: a.NetCharge, Unknown: a.Unknown}
	for _, e := range a.Formula {
		st := a.State(e.Symbol)
		ret.States = append(ret.States, StateEntry{
			Symbol: e.Symbol,
			Count:  e.Count,
			State:  stoich.FormatState(st),
			Value:  ratFloat(st),
			Source: a.Sources[e.Symbol],
		})
	}
	return ret
}

func ratFloat(r *big.Rat) float64 {
	f, _ := r.Float64()
	return f
}

// IonicResult is the result of an ionic request.
type IonicResult struct {
	*stoich.IonicFormula
	MolarMass float64 `json:"molar_mass,omitempty"`
}

func (E *Evaluator) ionic(req *Request) (*IonicResult, error) {
	if req.Cation == nil || req.Anion == nil {
		return nil, &stoich.Error{Reason: stoich.NotEnoughData, Message: "ionic requests need a cation and an anion"}
	}
	r, err := stoich.ComposeIonic(*req.Cation, *req.Anion)
	if err != nil {
		return nil, err
	}
	ret := &IonicResult{IonicFormula: r}
	//Unknown elements only cost the molar mass, not the formula.
	if m, err := E.masses.MolarMass(r.Elements()); err == nil {
		ret.MolarMass = m
	}
	return ret, nil
}

// LimitingResult is the result of a limiting request.
type LimitingResult struct {
	*stoich.LimitingResult
	Ambiguous bool                  `json:"ambiguous"`
	Products  []stoich.ProductYield `json:"products,omitempty"`
}

func (E *Evaluator) limiting(req *Request) (*LimitingResult, error) {
	reactants := make([]stoich.Reactant, len(req.Reactants))
	for i, r := range req.Reactants {
		var err error
		if reactants[i], err = E.masses.FillMolarMass(r); err != nil {
			return nil, err
		}
	}
	r, err := stoich.FindLimiting(reactants)
	if err != nil {
		return nil, err
	}
	ret := &LimitingResult{LimitingResult: r, Ambiguous: r.Ambiguous()}
	for _, p := range req.Products {
		if p.MolarMass == 0 {
			if f, err := stoich.ParseFormula(p.Label); err == nil {
				p.MolarMass, _ = E.masses.MolarMass(f)
			}
		}
		y, err := r.Yield(p)
		if err != nil {
			return nil, err
		}
		ret.Products = append(ret.Products, y)
	}
	return ret, nil
}
