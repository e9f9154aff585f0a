/*
 * compplot_test.go, part of gostoich.
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

package compplot

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	stoich "github.com/rmera/gostoich"
)

func TestCompositionChart(Te *testing.T) {
	c, err := stoich.ComputeComposition(stoich.MustParseFormula("C6H12O6"))
	if err != nil {
		Te.Fatal(err)
	}
	dir := Te.TempDir()
	for _, name := range []string{"glucose.png", "glucose.svg"} {
		filename := filepath.Join(dir, name)
		if err := SaveComposition(c, filename, Options{}); err != nil {
			Te.Fatal(err)
		}
		if fi, err := os.Stat(filename); err != nil || fi.Size() == 0 {
			Te.Errorf("%s was not written: %v", name, err)
		}
	}
	p, err := Composition(c, Options{Mass: true, Title: "Glucose"})
	if err != nil {
		Te.Fatal(err)
	}
	if p.Title.Text != "Glucose" || p.Y.Label.Text != "g/mol" {
		Te.Errorf("wrong labels %q %q", p.Title.Text, p.Y.Label.Text)
	}
	var b bytes.Buffer
	if err := Write(&b, p, "svg", Options{Width: 8, Height: 6}); err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(b.String(), "<svg") {
		Te.Error("svg output expected")
	}
}

func TestRatiosChart(Te *testing.T) {
	r, err := stoich.ReduceToEmpirical([]stoich.ElementMass{{Symbol: "Fe", Mass: 69.94}, {Symbol: "O", Mass: 30.06}})
	if err != nil {
		Te.Fatal(err)
	}
	p, err := Ratios(r, Options{})
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(p.Title.Text, "Fe2O3") {
		Te.Errorf("unexpected title %q", p.Title.Text)
	}
	if err := Save(p, filepath.Join(Te.TempDir(), "ratios.png"), Options{}); err != nil {
		Te.Error(err)
	}
}

func TestNothingToPlot(Te *testing.T) {
	if _, err := Composition(&stoich.Composition{}, Options{}); err == nil {
		Te.Error("expected an error for an empty composition")
	}
	if _, err := Ratios(nil, Options{}); err == nil {
		Te.Error("expected an error for a nil reduction")
	}
	if f := Format("out/Chart.SVG"); f != "svg" {
		Te.Errorf("Format gave %q", f)
	}
}
