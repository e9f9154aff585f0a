/*
 * batch.go, part of gostoich.
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

	"github.com/spf13/cobra"

	"github.com/rmera/gostoich/batch"
)

func newBatchCmd() *cobra.Command {
	var in, out string
	var workers int
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Evaluate JSON requests, one per line",
		Long: `batch reads JSON requests, one per line, and writes one JSON response per line,
in the same order. Requests look like

  {"id": "1", "op": "composition", "formula": "C6H12O6"}
  {"id": "2", "op": "oxidation", "formula": "MnO4", "net_charge": -1}

Compressed input (zstd or gzip) is detected automatically. The output is
compressed if its name ends in .zst or .gz.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if workers <= 0 {
				workers = cliCtx.Config.Workers
			}
			opts := batch.Options{Workers: workers, Evaluator: cliCtx.Evaluator, Logger: cliCtx.Logger.Named("batch")}
			var stats batch.Stats
			if in == "-" && out == "-" {
				stats, err = batch.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), opts)
			} else {
				stats, err = batch.RunFiles(cmd.Context(), in, out, opts)
			}
			if err != nil {
				return err
			}
			if stats.Failed > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d requests failed\n", stats.Failed, stats.Requests)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "-", "input file, - for stdin")
	cmd.Flags().StringVar(&out, "out", "-", "output file, - for stdout")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent evaluations (default from config)")
	return cmd
}
