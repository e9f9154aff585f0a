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

/*Package stoichjson is the JSON wire of goStoich. A presentation program (a web form,
a notebook, a plugin) sends one Request per line, naming one of the operations
"parse", "composition", "empirical", "oxidation", "ionic" and "limiting", and gets
back one Response per line, with either a result or a serializable Error.

Evaluation is stateless: the only data shared between requests are the immutable
tables an Evaluator is built with.*/
package stoichjson
