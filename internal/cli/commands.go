/*
 * commands.go, part of gostoich.
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

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	stoich "github.com/rmera/gostoich"
	"github.com/rmera/gostoich/compplot"
	"github.com/rmera/gostoich/molfile"
	"github.com/rmera/gostoich/stoichjson"
)

// evaluate runs req through the evaluator of the context and prints the result.
// after, if not nil, gets the result before it is printed.
func evaluate(cmd *cobra.Command, req *stoichjson.Request, after func(*CLIContext, interface{}) error) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	res := cliCtx.Evaluator.Evaluate(req)
	if res.Failed() {
		cliCtx.Logger.Debug("calculation failed", zap.String("op", req.Op), zap.String("kind", res.Error.Kind),
			zap.String("reason", res.Error.Reason), zap.String("value", res.Error.Value), zap.String("trace", res.Error.Function))
		return res.Error
	}
	if after != nil {
		if err := after(cliCtx, res.Result); err != nil {
			return err
		}
	}
	return PrintResult(cmd, res.Result)
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse FORMULA",
		Short: "Parse a formula into its elements and counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return evaluate(cmd, &stoichjson.Request{Op: stoichjson.OpParse, Formula: args[0]}, nil)
		},
	}
}

func newMassCmd() *cobra.Command {
	var chart, structure string
	var massChart bool
	cmd := &cobra.Command{
		Use:   "mass [FORMULA]",
		Short: "Molar mass and percent composition",
		Example: `  stoich mass C6H12O6
  stoich mass -o table H2SO4 --chart h2so4.png
  stoich mass --from caffeine.xyz`,
		Args: func(cmd *cobra.Command, args []string) error {
			if structure != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &stoichjson.Request{Op: stoichjson.OpComposition}
			if structure != "" {
				f, err := molfile.Load(structure)
				if err != nil {
					return err
				}
				req.Formula = f.String()
			} else {
				req.Formula = args[0]
			}
			return evaluate(cmd, req, func(c *CLIContext, res interface{}) error {
				if chart == "" {
					return nil
				}
				opts := compplot.Options{Width: c.Config.Chart.Width, Height: c.Config.Chart.Height, Mass: massChart}
				if err := compplot.SaveComposition(res.(*stoich.Composition), chart, opts); err != nil {
					return err
				}
				c.Logger.Info("chart written", zap.String("file", chart))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&chart, "chart", "", "also save a bar chart of the composition (png, svg, pdf...)")
	cmd.Flags().BoolVar(&massChart, "chart-mass", false, "chart g/mol per element instead of percentages")
	cmd.Flags().StringVar(&structure, "from", "", "take the formula from a structure file (xyz, pdb)")
	return cmd
}

func newEmpiricalCmd() *cobra.Command {
	var percent bool
	var molarMass float64
	var chart string
	cmd := &cobra.Command{
		Use:   "empirical SYM=MASS...",
		Short: "Empirical (and molecular) formula from element masses",
		Example: `  stoich empirical C=2.4 H=0.4 O=3.2
  stoich empirical --percent --molar-mass 180.16 C=40.0 H=6.7 O=53.3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &stoichjson.Request{Op: stoichjson.OpEmpirical, Percent: percent, MolarMass: molarMass}
			for _, a := range args {
				em, err := parseElementMass(a)
				if err != nil {
					return err
				}
				req.Masses = append(req.Masses, em)
			}
			return evaluate(cmd, req, func(c *CLIContext, res interface{}) error {
				if chart == "" {
					return nil
				}
				p, err := compplot.Ratios(res.(*stoichjson.EmpiricalResult).Reduction, compplot.Options{})
				if err != nil {
					return err
				}
				return compplot.Save(p, chart, compplot.Options{Width: c.Config.Chart.Width, Height: c.Config.Chart.Height})
			})
		},
	}
	cmd.Flags().BoolVar(&percent, "percent", false, "the masses are percentages, which must add up to 100")
	cmd.Flags().Float64Var(&molarMass, "molar-mass", 0, "molar mass of the compound, to get its molecular formula")
	cmd.Flags().StringVar(&chart, "chart", "", "also save a bar chart of the mole ratios")
	return cmd
}

func newOxidationCmd() *cobra.Command {
	var charge int
	var known []string
	var solveFor string
	var hydride bool
	cmd := &cobra.Command{
		Use:   "oxidation FORMULA",
		Short: "Oxidation states of the elements of a species",
		Example: `  stoich oxidation H2SO4
  stoich oxidation MnO4 --charge -1
  stoich oxidation H2O2 --known O=-1
  stoich oxidation NaH --hydride`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseKnown(known)
			if err != nil {
				return err
			}
			req := &stoichjson.Request{Op: stoichjson.OpOxidation, Formula: args[0], NetCharge: charge,
				Known: k, SolveFor: solveFor, Hydride: hydride}
			return evaluate(cmd, req, nil)
		},
	}
	cmd.Flags().IntVar(&charge, "charge", 0, "net charge of the species")
	cmd.Flags().StringSliceVar(&known, "known", nil, "known oxidation states, as SYM=STATE (repeatable)")
	cmd.Flags().StringVar(&solveFor, "solve-for", "", "element to solve for, even if a default rule covers it")
	cmd.Flags().BoolVar(&hydride, "hydride", false, "hydrogen is bound to a metal (state -1)")
	return cmd
}

func newIonicCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ionic CATION ANION",
		Short: "Formula of the neutral compound of two ions",
		Long: `Ions are given as SYMBOL:CHARGE (e.g. Ca:+2, NO3:-1) or by name
(e.g. ammonium, sulfate). "stoich ions" lists the known names.`,
		Example: "  stoich ionic Ca:+2 nitrate",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cation, err := stoich.ParseIon(args[0])
			if err != nil {
				return err
			}
			anion, err := stoich.ParseIon(args[1])
			if err != nil {
				return err
			}
			return evaluate(cmd, &stoichjson.Request{Op: stoichjson.OpIonic, Cation: &cation, Anion: &anion}, nil)
		},
	}
}

type ionList []stoich.Ion

func (l ionList) String() string {
	s := ""
	for i, ion := range l {
		if i > 0 {
			s += "\n"
		}
		s += fmt.Sprintf("%-14s %s", ion.Name, ion)
	}
	return s
}

func (l ionList) TableHeaders() []string {
	return []string{"Name", "Symbol", "Charge"}
}

func (l ionList) TableRows() [][]string {
	rows := make([][]string, len(l))
	for i, ion := range l {
		rows[i] = []string{ion.Name, ion.Symbol, fmt.Sprintf("%+d", ion.Charge)}
	}
	return rows
}

func newIonsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ions",
		Short: "List the ions that can be given by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return PrintResult(cmd, ionList(stoich.Ions()))
		},
	}
}

func newLimitingCmd() *cobra.Command {
	var products []string
	cmd := &cobra.Command{
		Use:   "limiting LABEL:COEF:AMOUNT...",
		Short: "Limiting reagent, excess amounts and theoretical yields",
		Long: `Each reactant is LABEL:COEF:AMOUNT[:MOLARMASS]. The amount is in moles, or in grams
if it ends in "g". A mass without a molar mass needs the label to be a formula.`,
		Example: `  stoich limiting A:2:3 B:1:5
  stoich limiting H2:2:4.032g O2:1:16g --product H2O:2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &stoichjson.Request{Op: stoichjson.OpLimiting}
			for _, a := range args {
				r, err := parseReactant(a)
				if err != nil {
					return err
				}
				req.Reactants = append(req.Reactants, r)
			}
			for _, a := range products {
				p, err := parseProduct(a)
				if err != nil {
					return err
				}
				req.Products = append(req.Products, p)
			}
			return evaluate(cmd, req, nil)
		},
	}
	cmd.Flags().StringSliceVar(&products, "product", nil, "product as LABEL:COEF[:MOLARMASS], to get its theoretical yield (repeatable)")
	return cmd
}

type yieldResult struct {
	Actual      float64 `json:"actual"`
	Theoretical float64 `json:"theoretical"`
	Percent     float64 `json:"percent"`
}

func (y yieldResult) String() string {
	return fmt.Sprintf("%.2f%%", y.Percent)
}

func newYieldCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "yield ACTUAL THEORETICAL",
		Short:   "Percent yield",
		Example: "  stoich yield 15.2 18.0",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			actual, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return err
			}
			theoretical, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return err
			}
			p, err := stoich.PercentYield(actual, theoretical)
			if err != nil {
				return err
			}
			return PrintResult(cmd, yieldResult{actual, theoretical, p})
		},
	}
}
