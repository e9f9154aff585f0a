/*
 * errors.go, part of gostoich.
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

package molfile

import "fmt"

const UnableToOpen = "unable to open file"

// Error is the error type of the package.
type Error struct {
	message  string
	filename string
	line     int //0 if not related to a line
	deco     []string
}

func (err Error) Error() string {
	s := "molfile: "
	if err.filename != "" {
		s += err.filename + ": "
	}
	if err.line > 0 {
		s += fmt.Sprintf("line %d: ", err.line)
	}
	return s + err.message
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

func (err *Error) withFunc(function string) Error {
	err.Decorate(function)
	return *err
}

// FileName returns the name of the file involved in the error, if any.
func (err Error) FileName() string {
	return err.filename
}

// Line returns the line of the file where the error was found, or 0.
func (err Error) Line() int {
	return err.line
}
