/*
 * doc.go, part of gostoich.
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

/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*Package stoich is the main package of the goStoich library. It provides the formula and
stoichiometry calculations behind introductory and analytical chemistry exercises.



	**goStoich Capabilities**


    Parses chemical formulas ("C6H12O6", "CH3COOH") into element counts, merging
	repeated symbols.

    Computes molar masses and percent composition by mass, with a built-in table of
	standard atomic weights, or any MassTable the user builds.

    Reduces elemental masses or mass percentages to an empirical formula, using an
	explicit, bounded search for a common multiplier (up to 6) instead of guessing,
	and scales empirical formulas to molecular formulas.

    Solves for the one unknown oxidation state of a formula under charge balance,
	with exact rational results (Fe3O4 gives Fe +8/3). Default states come from an
	ordered, immutable rule table that the caller passes in.

    Builds neutral ionic formulas from a cation and an anion by cross-multiplying
	the charges: Ca2+ and NO3- give Ca(NO3)2.

    Finds limiting reagents, excess amounts and theoretical yields. Ties are reported,
	not resolved arbitrarily.


All the functions are pure: there is no I/O and no package-level mutable state, so they can be
used from any number of goroutines. Every failure is returned as a *stoich.Error, which carries
a Kind, a Reason and the offending value. The sentinels ErrMalformedFormula, ErrUnknownElement
and so on can be used with errors.Is.

Nested or parenthesized groups in input formulas, and isotopic notation, are not supported.*/
package stoich
