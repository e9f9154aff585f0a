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

package stoich

import (
	"fmt"
	"strings"
)

// Kind classifies an Error. The caller decides how to present each kind;
// the core only reports it together with the offending value.
type Kind int

const (
	KindUnknown Kind = iota
	MalformedInput
	UnknownEntity
	InsufficientData
	Inconsistent
	InvalidMagnitude
)

func (k Kind) String() string {
	switch k {
	case MalformedInput:
		return "MalformedInput"
	case UnknownEntity:
		return "UnknownEntity"
	case InsufficientData:
		return "InsufficientData"
	case Inconsistent:
		return "AmbiguousOrInconsistent"
	case InvalidMagnitude:
		return "InvalidMagnitude"
	}
	return "Unknown"
}

// Reasons. Each one names a distinct failure and maps to exactly one Kind.
const (
	MalformedFormula = "malformed formula"
	UnknownElement   = "unknown element"
	NotEnoughData    = "insufficient data"
	NonTerminating   = "non-terminating ratio"
	MultipleUnknowns = "more than one unknown oxidation state"
	ChargeImbalance  = "charge imbalance"
	InvalidCharge    = "invalid ion charge"
	InvalidQuantity  = "invalid quantity"
	UnknownIon       = "unknown ion"
	PercentTotal     = "percentages do not add up to 100"
	MassMismatch     = "molar mass is not a multiple of the empirical formula mass"
	UnknownOperation = "unknown operation"
)

var reasonKind = map[string]Kind{
	MalformedFormula: MalformedInput,
	UnknownElement:   UnknownEntity,
	NotEnoughData:    InsufficientData,
	NonTerminating:   Inconsistent,
	MultipleUnknowns: Inconsistent,
	ChargeImbalance:  Inconsistent,
	InvalidCharge:    InvalidMagnitude,
	InvalidQuantity:  InvalidMagnitude,
	UnknownIon:       UnknownEntity,
	PercentTotal:     Inconsistent,
	MassMismatch:     Inconsistent,
	UnknownOperation: UnknownEntity,
}

// Sentinels for errors.Is. Only the reason is compared, so
// errors.Is(err, ErrUnknownElement) holds whatever the offending symbol was.
var (
	ErrMalformedFormula = &Error{Reason: MalformedFormula}
	ErrUnknownElement   = &Error{Reason: UnknownElement}
	ErrInsufficientData = &Error{Reason: NotEnoughData}
	ErrNonTerminating   = &Error{Reason: NonTerminating}
	ErrMultipleUnknowns = &Error{Reason: MultipleUnknowns}
	ErrChargeImbalance  = &Error{Reason: ChargeImbalance}
	ErrInvalidCharge    = &Error{Reason: InvalidCharge}
	ErrInvalidQuantity  = &Error{Reason: InvalidQuantity}
	ErrUnknownIon       = &Error{Reason: UnknownIon}
	ErrPercentTotal     = &Error{Reason: PercentTotal}
	ErrMassMismatch     = &Error{Reason: MassMismatch}
)

// Error is the only error type returned by this package.
// Decorate adds the name of each function the error passes through.
type Error struct {
	Reason  string //one of the reason constants
	Value   string //the offending value(s), or empty
	Message string //optional details
	deco    []string
}

func newError(reason, value, function string, format string, args ...interface{}) *Error {
	err := &Error{Reason: reason, Value: value}
	if format != "" {
		err.Message = fmt.Sprintf(format, args...)
	}
	if function != "" {
		err.deco = []string{function}
	}
	return err
}

// Kind returns the taxonomy class of the error.
func (err *Error) Kind() Kind {
	return reasonKind[err.Reason]
}

func (err *Error) Error() string {
	s := "stoich: " + err.Reason
	if err.Value != "" {
		s += fmt.Sprintf(" %q", err.Value)
	}
	if err.Message != "" {
		s += ": " + err.Message
	}
	return s
}

// Decorate adds dec to the decoration slice of the error and returns
// the resulting slice. An empty dec just returns the current slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Trace returns the decoration as a single string, innermost function first.
func (err *Error) Trace() string {
	return strings.Join(err.deco, " <- ")
}

// Is reports whether target is an *Error with the same reason.
// If target carries a Value, the values must also match.
func (err *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Reason != err.Reason {
		return false
	}
	return t.Value == "" || t.Value == err.Value
}

// decorate adds caller to err if err is an *Error, and returns err.
func decorate(err error, caller string) error {
	if e, ok := err.(*Error); ok {
		e.Decorate(caller)
	}
	return err
}
