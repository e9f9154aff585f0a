/*
 * root_test.go, part of gostoich.
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
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the command line with args, isolated from any config file
// of the user.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestNewRootCommand_Structure(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "stoich", cmd.Use)
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, name := range []string{"parse", "mass", "empirical", "oxidation", "ionic", "ions", "limiting", "yield", "batch", "tables"} {
		assert.True(t, names[name], "missing subcommand %s", name)
	}
	for _, flag := range []string{"config", "log-level", "output", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "missing flag %s", flag)
	}
}

func TestMass(t *testing.T) {
	out, _, err := run(t, "", "mass", "-o", "json", "C6H12O6")
	require.NoError(t, err)
	var c struct {
		Formula   string  `json:"formula"`
		MolarMass float64 `json:"molar_mass"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.Equal(t, "C6H12O6", c.Formula)
	assert.InDelta(t, 180.156, c.MolarMass, 1e-6)

	out, _, err = run(t, "", "mass", "-o", "table", "H2SO4")
	require.NoError(t, err)
	assert.Contains(t, out, "Percent")
	assert.Contains(t, out, "98.072")
}

func TestMassChart(t *testing.T) {
	chart := filepath.Join(t.TempDir(), "water.png")
	_, _, err := run(t, "", "mass", "H2O", "--chart", chart)
	require.NoError(t, err)
	fi, err := os.Stat(chart)
	require.NoError(t, err)
	assert.Positive(t, fi.Size())
}

func TestParseErrors(t *testing.T) {
	_, _, err := run(t, "", "parse", "6C")
	require.Error(t, err)
	assert.Equal(t, 2, ExitCode(err))

	_, _, err = run(t, "", "mass", "Xx2O")
	require.Error(t, err)
	assert.Equal(t, 3, ExitCode(err))

	_, _, err = run(t, "", "empirical", "C=12")
	require.Error(t, err)
	assert.Equal(t, 4, ExitCode(err))

	assert.Equal(t, 0, ExitCode(nil))
}

func TestOxidation(t *testing.T) {
	out, _, err := run(t, "", "oxidation", "MnO4", "--charge", "-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Mn:+7")
	assert.Contains(t, out, "O:-2")

	out, _, err = run(t, "", "oxidation", "-o", "table", "H2O2", "--known", "O=-1")
	require.NoError(t, err)
	assert.Contains(t, out, "+1")
	assert.Contains(t, out, "-1")

	_, _, err = run(t, "", "oxidation", "FeCr")
	require.Error(t, err)
	assert.Equal(t, 4, ExitCode(err))
}

func TestEmpirical(t *testing.T) {
	out, _, err := run(t, "", "empirical", "C=2.4", "H=0.4", "O=3.2")
	require.NoError(t, err)
	assert.Contains(t, out, "CH2O")

	out, _, err = run(t, "", "empirical", "--percent", "--molar-mass", "180.16", "C=40.0", "H=6.7", "O=53.3")
	require.NoError(t, err)
	assert.Contains(t, out, "C6H12O6")

	_, _, err = run(t, "", "empirical", "C:2.4")
	assert.Error(t, err)
}

func TestIonic(t *testing.T) {
	out, _, err := run(t, "", "ionic", "Ca:+2", "nitrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Ca(NO3)2")

	out, _, err = run(t, "", "ions", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "sulfate")

	_, _, err = run(t, "", "ionic", "Ca:+2", "unobtainate")
	require.Error(t, err)
	assert.Equal(t, 3, ExitCode(err))
}

func TestLimiting(t *testing.T) {
	out, _, err := run(t, "", "limiting", "-o", "json", "A:2:3", "B:1:5", "--product", "P:2:10")
	require.NoError(t, err)
	var r struct {
		Limiting []int                `json:"limiting"`
		Excess   []float64            `json:"excess"`
		Products []map[string]float64 `json:"products"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, []int{0}, r.Limiting)
	assert.InDelta(t, 3.5, r.Excess[1], 1e-12)
	require.Len(t, r.Products, 1)
	assert.Equal(t, 30.0, r.Products[0]["mass"])

	out, _, err = run(t, "", "limiting", "-o", "json", "H2:2:4.032g", "O2:1:16g")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, []int{1}, r.Limiting)
}

func TestYield(t *testing.T) {
	out, _, err := run(t, "", "yield", "15", "20")
	require.NoError(t, err)
	assert.Equal(t, "75.00%\n", out)

	_, _, err = run(t, "", "yield", "15", "0")
	assert.Error(t, err)
}

func TestBatch(t *testing.T) {
	in := `{"id":"1","op":"composition","formula":"NaCl"}
{"id":"2","op":"parse","formula":"6C"}
`
	out, errOut, err := run(t, in, "batch", "--workers", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"id":"1"`)
	assert.Contains(t, lines[1], `"MalformedInput"`)
	assert.Contains(t, errOut, "1 of 2 requests failed")
}

func TestConfigTables(t *testing.T) {
	dir := t.TempDir()
	masses := filepath.Join(dir, "masses.yaml")
	require.NoError(t, os.WriteFile(masses, []byte("extend: true\nelements:\n  D: 2.014\n"), 0o644))
	cfgFile := filepath.Join(dir, "stoich.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("output: json\nmass_table: "+masses+"\n"), 0o644))

	out, _, err := run(t, "", "--config", cfgFile, "mass", "D2O")
	require.NoError(t, err)
	var c struct {
		MolarMass float64 `json:"molar_mass"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.InDelta(t, 20.027, c.MolarMass, 1e-9)

	out, _, err = run(t, "", "--config", cfgFile, "tables", "masses")
	require.NoError(t, err)
	assert.Contains(t, out, "D: 2.014")

	_, _, err = run(t, "", "--config", filepath.Join(dir, "missing.yaml"), "parse", "H2O")
	assert.Error(t, err)
}

func TestTablesRules(t *testing.T) {
	out, _, err := run(t, "", "tables", "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "kind: free-element")
	assert.Contains(t, out, "symbol: O")
}

func TestFormatTable(t *testing.T) {
	s := FormatTable([]string{"A", "Long"}, [][]string{{"xyz", "1"}, {"w"}})
	assert.Equal(t, "A    Long\n---  ----\nxyz  1\nw    \n", s)
	assert.Empty(t, FormatTable(nil, nil))
}

func TestMassFromStructure(t *testing.T) {
	xyz := filepath.Join(t.TempDir(), "water.xyz")
	require.NoError(t, os.WriteFile(xyz, []byte("3\nwater\nO 0 0 0\nH 0.76 0.59 0\nH -0.76 0.59 0\n"), 0o644))
	out, _, err := run(t, "", "mass", "--from", xyz)
	require.NoError(t, err)
	assert.Contains(t, out, "H2O: 18.015 g/mol")

	_, _, err = run(t, "", "mass", "--from", xyz, "H2O")
	assert.Error(t, err)
}
