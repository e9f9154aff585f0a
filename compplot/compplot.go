/*
 * compplot.go, part of gostoich.
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

/*Package compplot draws bar charts of the results of goStoich: the percent composition
(or the mass contribution) of each element of a formula, and the mole ratios
found when reducing mass data to an empirical formula. Charts can be saved in
any format gonum/plot supports (png, svg, pdf, eps, jpg, tif), chosen from the
file extension.*/
package compplot

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	stoich "github.com/rmera/gostoich"
)

// Options for the charts. Zero values get defaults.
type Options struct {
	Title  string
	Width  float64 //cm
	Height float64 //cm
	Mass   bool    //plot g/mol contributed by each element instead of percentages
}

const (
	defaultWidth  = 12.0
	defaultHeight = 9.0
)

func (o Options) size() (vg.Length, vg.Length) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return vg.Length(w) * vg.Centimeter, vg.Length(h) * vg.Centimeter
}

func basicPlot(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Element"
	p.Y.Label.Text = ylabel
	p.Y.Min = 0
	p.Add(plotter.NewGrid())
	return p
}

// bars adds one bar per value, each with its own color, and a label
// with the value on top.
func bars(p *plot.Plot, names []string, values []float64, format string) error {
	width := vg.Points(20)
	for i, v := range values {
		b, err := plotter.NewBarChart(plotter.Values{v}, width)
		if err != nil {
			return err
		}
		b.Color = plotutil.Color(i)
		b.LineStyle.Width = vg.Length(0)
		b.XMin = float64(i)
		p.Add(b)
	}
	xys := make(plotter.XYs, len(values))
	labels := make([]string, len(values))
	for i, v := range values {
		xys[i].X = float64(i)
		xys[i].Y = v
		labels[i] = fmt.Sprintf(format, v)
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return err
	}
	for i := range l.TextStyle {
		l.TextStyle[i].XAlign = -0.5 //centered
	}
	l.Offset.Y = vg.Points(2)
	p.Add(l)
	p.NominalX(names...)
	p.Y.Max *= 1.1 //room for the labels
	return nil
}

// Composition returns a bar chart with the percent (or, with opts.Mass,
// the mass) contributed by each element of c.
func Composition(c *stoich.Composition, opts Options) (*plot.Plot, error) {
	if c == nil || len(c.Elements) == 0 {
		return nil, fmt.Errorf("compplot: nothing to plot")
	}
	title := opts.Title
	if title == "" {
		title = fmt.Sprintf("%s (%.3f g/mol)", c.Formula, c.MolarMass)
	}
	ylabel, format := "Mass %", "%.2f%%"
	if opts.Mass {
		ylabel, format = "g/mol", "%.3f"
	}
	p := basicPlot(title, ylabel)
	names := make([]string, len(c.Elements))
	values := make([]float64, len(c.Elements))
	for i, e := range c.Elements {
		names[i] = e.Symbol
		values[i] = e.Percent
		if opts.Mass {
			values[i] = e.Mass
		}
	}
	if err := bars(p, names, values, format); err != nil {
		return nil, err
	}
	return p, nil
}

// Ratios returns a bar chart with the mole ratios of a reduction, each element
// relative to the one with the fewest moles.
func Ratios(r *stoich.Reduction, opts Options) (*plot.Plot, error) {
	if r == nil || len(r.Ratios) == 0 {
		return nil, fmt.Errorf("compplot: nothing to plot")
	}
	title := opts.Title
	if title == "" {
		title = fmt.Sprintf("Mole ratios, empirical formula %s", r.Formula)
	}
	p := basicPlot(title, "Mole ratio")
	names := make([]string, len(r.Ratios))
	values := make([]float64, len(r.Ratios))
	for i, v := range r.Ratios {
		names[i] = v.Symbol
		values[i] = v.Ratio
	}
	if err := bars(p, names, values, "%.3f"); err != nil {
		return nil, err
	}
	return p, nil
}

// Save writes p to filename. The format is taken from the extension.
func Save(p *plot.Plot, filename string, opts Options) error {
	w, h := opts.size()
	return p.Save(w, h, filename)
}

// Write writes p to out in the given format ("png", "svg", etc.).
func Write(out io.Writer, p *plot.Plot, format string, opts Options) error {
	w, h := opts.size()
	wt, err := p.WriterTo(w, h, strings.TrimPrefix(strings.ToLower(format), "."))
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(out)
	return err
}

// SaveComposition plots c and saves it to filename.
func SaveComposition(c *stoich.Composition, filename string, opts Options) error {
	p, err := Composition(c, opts)
	if err != nil {
		return err
	}
	return Save(p, filename, opts)
}

// Format returns the format of filename, from its extension.
func Format(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}
