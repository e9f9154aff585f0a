/*
 * json_test.go, part of gostoich.
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
	"io"
	"math"
	"strings"
	"testing"

	stoich "github.com/rmera/gostoich"
)

func TestEvaluateOps(Te *testing.T) {
	res := Evaluate(&Request{ID: "1", Op: OpComposition, Formula: "C6H12O6"})
	if res.Failed() || res.ID != "1" {
		Te.Fatalf("unexpected response %+v", res)
	}
	c := res.Result.(*stoich.Composition)
	if math.Abs(c.MolarMass-180.156) > 1e-6 {
		Te.Errorf("glucose molar mass %g", c.MolarMass)
	}

	res = Evaluate(&Request{Op: OpEmpirical, Masses: []stoich.ElementMass{{Symbol: "C", Mass: 40.0}, {Symbol: "H", Mass: 6.7}, {Symbol: "O", Mass: 53.3}}, Percent: true, MolarMass: 180.16})
	if res.Failed() {
		Te.Fatal(res.Error)
	}
	e := res.Result.(*EmpiricalResult)
	if e.Empirical != "CH2O" || e.Molecular != "C6H12O6" || e.Factor != 6 {
		Te.Errorf("empirical %+v", e)
	}

	res = Evaluate(&Request{Op: OpOxidation, Formula: "H2SO4"})
	if res.Failed() {
		Te.Fatal(res.Error)
	}
	o := res.Result.(*OxidationResult)
	if o.Unknown != "S" || o.States[1].Symbol != "S" || o.States[1].State != "+6" || o.States[1].Value != 6 {
		Te.Errorf("oxidation %+v", o)
	}

	res = Evaluate(&Request{Op: OpIonic, Cation: &stoich.Ion{Symbol: "Ca", Charge: 2}, Anion: &stoich.Ion{Symbol: "NO3", Charge: -1}})
	if res.Failed() {
		Te.Fatal(res.Error)
	}
	i := res.Result.(*IonicResult)
	if i.Formula != "Ca(NO3)2" || math.Abs(i.MolarMass-164.086) > 1e-6 {
		Te.Errorf("ionic %s %g", i.Formula, i.MolarMass)
	}

	res = Evaluate(&Request{Op: OpLimiting,
		Reactants: []stoich.Reactant{{Label: "A", Coefficient: 2, Moles: 3}, {Label: "B", Coefficient: 1, Moles: 5}},
		Products:  []stoich.Product{{Label: "P", Coefficient: 2, MolarMass: 10}}})
	if res.Failed() {
		Te.Fatal(res.Error)
	}
	l := res.Result.(*LimitingResult)
	if l.Ambiguous || len(l.Limiting) != 1 || l.Limiting[0] != 0 || math.Abs(l.Excess[1]-3.5) > 1e-12 {
		Te.Errorf("limiting %+v", l.LimitingResult)
	}
	if len(l.Products) != 1 || l.Products[0].Moles != 3 || l.Products[0].Mass != 30 {
		Te.Errorf("products %+v", l.Products)
	}
}

func TestEvaluateMassReactants(Te *testing.T) {
	//36.030 g of H2O is 2 mol and 31.998 g of O2 is 1 mol, so with coefficients 2 and 1 they tie.
	res := Evaluate(&Request{Op: OpLimiting,
		Reactants: []stoich.Reactant{{Label: "H2O", Coefficient: 2, Mass: 36.030}, {Label: "O2", Coefficient: 1, Mass: 31.998}},
		Products:  []stoich.Product{{Label: "H2O2", Coefficient: 2}}})
	if res.Failed() {
		Te.Fatal(res.Error)
	}
	l := res.Result.(*LimitingResult)
	if !l.Ambiguous {
		Te.Errorf("expected a tie, got %v", l.Limiting)
	}
	if math.Abs(l.Products[0].Mass-2*34.014) > 1e-9 {
		Te.Errorf("product mass %g", l.Products[0].Mass)
	}
}

func TestEvaluateErrors(Te *testing.T) {
	cases := []struct {
		req    Request
		kind   string
		reason string
		value  string
	}{
		{Request{Op: OpParse, Formula: "6C"}, "MalformedInput", stoich.MalformedFormula, "6C"},
		{Request{Op: OpComposition, Formula: "Xx2"}, "UnknownEntity", stoich.UnknownElement, "Xx"},
		{Request{Op: OpEmpirical, Masses: []stoich.ElementMass{{Symbol: "C", Mass: 12}}}, "InsufficientData", stoich.NotEnoughData, ""},
		{Request{Op: OpOxidation, Formula: "FeCr"}, "AmbiguousOrInconsistent", stoich.MultipleUnknowns, "Cr,Fe"},
		{Request{Op: OpIonic, Cation: &stoich.Ion{Symbol: "Na", Charge: -1}, Anion: &stoich.Ion{Symbol: "Cl", Charge: -1}}, "InvalidMagnitude", stoich.InvalidCharge, ""},
		{Request{Op: OpIonic, Cation: &stoich.Ion{Symbol: "Na", Charge: 1}}, "InsufficientData", stoich.NotEnoughData, ""},
		{Request{Op: OpLimiting, Reactants: []stoich.Reactant{{Label: "A", Coefficient: 0, Moles: 1}}}, "InvalidMagnitude", stoich.InvalidQuantity, "A"},
	}
	for _, c := range cases {
		res := Evaluate(&c.req)
		if !res.Failed() {
			Te.Errorf("%s: expected an error, got %+v", c.req.Op, res.Result)
			continue
		}
		if res.Error.Kind != c.kind || res.Error.Reason != c.reason || !res.Error.InProcess {
			Te.Errorf("%s: got %+v", c.req.Op, res.Error)
		}
		if c.value != "" && res.Error.Value != c.value {
			Te.Errorf("%s: value %q, want %q", c.req.Op, res.Error.Value, c.value)
		}
		if res.Result != nil {
			Te.Errorf("%s: result set together with an error", c.req.Op)
		}
	}
	res := Evaluate(&Request{Op: "balance"})
	if !res.Failed() || !res.Error.InRequest || res.Error.Kind != "UnknownEntity" || res.Error.Value != "balance" {
		Te.Errorf("unknown op: %+v", res.Error)
	}
}

func TestDecodeAndSend(Te *testing.T) {
	in := bufio.NewReader(strings.NewReader(`{"id":"a","op":"parse","formula":"H2O"}

{"id":"b","op":"oxidation","formula":"MnO4","net_charge":-1}
{"op":
`))
	var out bytes.Buffer
	for _, id := range []string{"a", "b"} {
		req, err := DecodeRequest(in)
		if err != nil {
			Te.Fatal(err)
		}
		if req.ID != id {
			Te.Errorf("read request %q, want %q", req.ID, id)
		}
		if err := Evaluate(req).Send(&out); err != nil {
			Te.Fatal(err)
		}
	}
	if _, err := DecodeRequest(in); err == nil {
		Te.Error("expected an error for a truncated request")
	} else if jerr, ok := err.(*Error); !ok || !jerr.InRequest {
		Te.Errorf("wrong error %v", err)
	}
	if _, err := DecodeRequest(in); err != io.EOF {
		Te.Errorf("expected io.EOF, got %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		Te.Fatalf("expected 2 lines of output, got %d", len(lines))
	}
	var r struct {
		ID     string
		Result OxidationResult
	}
	if err := json.Unmarshal([]byte(lines[1]), &r); err != nil {
		Te.Fatal(err)
	}
	if r.ID != "b" || r.Result.States[0].State != "+7" || r.Result.NetCharge != -1 {
		Te.Errorf("decoded %+v", r)
	}
}

func TestErrorMarshal(Te *testing.T) {
	_, err := stoich.ParseFormula("H2(O")
	jerr := NewError("process", "test", err)
	var back Error
	if err := json.Unmarshal(jerr.Marshal(), &back); err != nil {
		Te.Fatal(err)
	}
	if !back.IsError || back.Reason != stoich.MalformedFormula || back.Message != err.Error() {
		Te.Errorf("round trip gave %+v", back)
	}
	if len(jerr.Decorate("caller")) != 1 {
		Te.Error("decoration not kept")
	}
}
