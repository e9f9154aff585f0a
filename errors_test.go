/*
 * errors_test.go, part of gostoich.
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
	"errors"
	"fmt"
	"testing"
)

func TestErrorDecoration(Te *testing.T) {
	_, err := ReduceToEmpirical([]ElementMass{{"C", 12}, {"Xx", 1}})
	var serr *Error
	if !errors.As(err, &serr) {
		Te.Fatalf("not a *Error: %v", err)
	}
	if serr.Value != "Xx" || serr.Kind() != UnknownEntity {
		Te.Errorf("got %+v", serr)
	}
	if serr.Trace() != "MassTable.Mass <- MassTable.Reduce" {
		Te.Errorf("trace %q", serr.Trace())
	}
	if d := serr.Decorate(""); len(d) != 2 {
		Te.Errorf("empty decoration should not be added: %v", d)
	}
	//Wrapping keeps errors.Is working.
	wrapped := fmt.Errorf("sample 3: %w", err)
	if !errors.Is(wrapped, ErrUnknownElement) || errors.Is(wrapped, ErrMalformedFormula) {
		Te.Errorf("errors.Is broken for %v", wrapped)
	}
}

func TestKindNames(Te *testing.T) {
	for k, want := range map[Kind]string{MalformedInput: "MalformedInput", UnknownEntity: "UnknownEntity",
		InsufficientData: "InsufficientData", Inconsistent: "AmbiguousOrInconsistent", InvalidMagnitude: "InvalidMagnitude"} {
		if k.String() != want {
			Te.Errorf("%d: %s", k, k)
		}
	}
	for reason := range reasonKind {
		if (&Error{Reason: reason}).Kind() == KindUnknown {
			Te.Errorf("%s has no kind", reason)
		}
	}
}
