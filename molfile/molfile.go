/*
 * molfile.go, part of gostoich.
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

/*Package molfile obtains the formula of a molecule from a structure file, so the
molecular formula doesn't need to be typed by hand. XYZ and PDB files are supported.
Only the first frame (or model) is read, coordinates are ignored.

The formulas are returned in Hill order.*/
package molfile

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	stoich "github.com/rmera/gostoich"
)

// Load reads the formula from the file name, in the format given by its extension
// (.xyz or .pdb/.ent).
func Load(name string) (stoich.Formula, error) {
	var read func(io.Reader) (stoich.Formula, error)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xyz":
		read = ReadXYZ
	case ".pdb", ".ent":
		read = ReadPDB
	default:
		return nil, Error{"unknown file format", name, 0, []string{"Load"}}
	}
	fin, err := os.Open(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, 0, []string{"Load"}}
	}
	defer fin.Close()
	f, err := read(fin)
	if e, ok := err.(Error); ok {
		e.filename = name
		e.Decorate("Load")
		return nil, e
	}
	return f, err
}

// ReadXYZ reads the first frame of an XYZ file: the number of atoms, a comment line,
// and one line per atom, starting with its symbol.
func ReadXYZ(r io.Reader) (stoich.Formula, error) {
	const funcname = "ReadXYZ"
	in := bufio.NewScanner(r)
	if !in.Scan() {
		return nil, Error{"empty file", "", 1, []string{funcname}}
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(in.Text()))
	if err != nil || natoms <= 0 {
		return nil, Error{"first line must be the number of atoms", "", 1, []string{funcname}}
	}
	in.Scan() //comment
	c := newCounter()
	for i := 0; i < natoms; i++ {
		if !in.Scan() {
			return nil, Error{"file ends before all atoms were read", "", i + 3, []string{funcname}}
		}
		fields := strings.Fields(in.Text())
		if len(fields) < 4 {
			return nil, Error{"ill-formed atom line", "", i + 3, []string{funcname}}
		}
		if err := c.add(normalize(fields[0]), i+3); err != nil {
			return nil, err.withFunc(funcname)
		}
	}
	if err := in.Err(); err != nil {
		return nil, Error{err.Error(), "", 0, []string{funcname}}
	}
	return c.formula(), nil
}

// ReadPDB reads the ATOM and HETATM records of the first model of a PDB file.
// The element is taken from columns 77-78. If those are empty, it is guessed
// from the atom name, which only works for common elements.
func ReadPDB(r io.Reader) (stoich.Formula, error) {
	const funcname = "ReadPDB"
	in := bufio.NewScanner(r)
	c := newCounter()
	for line := 1; in.Scan(); line++ {
		l := in.Text()
		if strings.HasPrefix(l, "ENDMDL") {
			break
		}
		if !strings.HasPrefix(l, "ATOM") && !strings.HasPrefix(l, "HETATM") {
			continue
		}
		if len(l) < 16 {
			return nil, Error{"ill-formed atom record", "", line, []string{funcname}}
		}
		symbol := ""
		if len(l) >= 78 {
			symbol = normalize(strings.TrimSpace(l[76:78]))
		}
		if symbol == "" {
			var ok bool
			if symbol, ok = symbolFromName(strings.TrimSpace(l[12:16])); !ok {
				return nil, Error{"can't guess the element of atom " + strings.TrimSpace(l[12:16]), "", line, []string{funcname}}
			}
		}
		if err := c.add(symbol, line); err != nil {
			return nil, err.withFunc(funcname)
		}
	}
	if err := in.Err(); err != nil {
		return nil, Error{err.Error(), "", 0, []string{funcname}}
	}
	if c.empty() {
		return nil, Error{"no atoms found", "", 0, []string{funcname}}
	}
	return c.formula(), nil
}

// normalize turns "CL" or "cl" into "Cl".
func normalize(sym string) string {
	if sym == "" {
		return sym
	}
	return strings.ToUpper(sym[:1]) + strings.ToLower(sym[1:])
}

// symbolFromName guesses the element from a PDB atom name, mostly
// following AMBER names. Only common bio-elements are recognized.
func symbolFromName(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	upper := strings.ToUpper(name)
	switch upper {
	case "CU", "CO", "CL", "NA", "SE", "ZN", "FE", "MG", "MN":
		return normalize(upper), true
	}
	//Names such as 1HB2 start with a digit.
	name = strings.TrimLeft(upper, "0123456789")
	if name == "" {
		return "", false
	}
	switch name[0] {
	case 'H', 'C', 'N', 'O', 'P', 'S':
		return name[:1], true
	}
	return "", false
}

type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(sym string, line int) *Error {
	if !stoich.IsElement(sym) {
		return &Error{"unknown element " + strconv.Quote(sym), "", line, nil}
	}
	if c.counts[sym] == 0 {
		c.order = append(c.order, sym)
	}
	c.counts[sym]++
	return nil
}

func (c *counter) empty() bool {
	return len(c.order) == 0
}

func (c *counter) formula() stoich.Formula {
	f := make(stoich.Formula, len(c.order))
	for i, s := range c.order {
		f[i] = stoich.ElementQuantity{Symbol: s, Count: c.counts[s]}
	}
	return f.Hill()
}
