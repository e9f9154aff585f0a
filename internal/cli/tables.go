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

package cli

import (
	"github.com/spf13/cobra"

	"github.com/rmera/gostoich/tables"
)

func newTablesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Print the data tables in use, as YAML",
		Long: `Print the atomic mass table or the oxidation rules in use, in the YAML
format that the mass_table and oxidation_table settings read. The output
is a starting point for custom tables.`,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "masses",
		Short: "Print the atomic mass table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			return tables.WriteMassTable(cmd.OutOrStdout(), cliCtx.Masses)
		},
	}, &cobra.Command{
		Use:   "rules",
		Short: "Print the default oxidation-state rules, highest priority first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			return tables.WriteOxidationTable(cmd.OutOrStdout(), cliCtx.Rules)
		},
	})
	return cmd
}
