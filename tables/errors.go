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

package tables

import "fmt"

const (
	UnableToOpen = "Unable to open file"
)

//Error is the error type for the tables package. It fulfills the
//decoration contract of stoich.Error.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	cause    error
	deco     []string
}

func newError(filename, function, message string, cause error) *Error {
	return &Error{message: message, filename: filename, cause: cause, deco: []string{function}}
}

//withFile sets the file name of err, if it is an *Error, and decorates it.
func withFile(err error, filename, caller string) error {
	if e, ok := err.(*Error); ok {
		e.filename = filename
		e.Decorate(caller)
	}
	return err
}

func (err *Error) Error() string {
	s := "tables"
	if err.filename != "" {
		s += fmt.Sprintf(" file %s", err.filename)
	}
	s += " error: " + err.message
	if err.cause != nil {
		s += ": " + err.cause.Error()
	}
	return s
}

//Decorate Adds new information to the error
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the name of the file that caused the error, if any.
func (err *Error) FileName() string { return err.filename }

//Unwrap gives access to the underlying error, e.g. a *stoich.Error.
func (err *Error) Unwrap() error { return err.cause }
