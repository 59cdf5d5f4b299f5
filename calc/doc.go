/*
 * doc.go, part of chemrun.
 *
 * Copyright 2026 Esteban Moreno <emoreno{at}tutanotaDOTcom>
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
 */

//Package calc configures and runs calculators. It provides the parameter
//set type with its merge/removal semantics, the calculator configuration
//passed to constructors, the external Gaussian calculator and the
//in-process Native calculator over an interatomic potential.
package calc
