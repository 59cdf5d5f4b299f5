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

/*Package chem is the core package of the chemrun library. It provides the
molecule value type shared by every calculator and recipe, atomic data,
physical constants, XYZ file reading and writing, process configuration and
the common error types.

	**chemrun capabilities**

    Declarative recipes (static, relax, frequency, transition state, IRC and
	quasi-IRC jobs) over two calculator families: external Gaussian-style
	programs that are parsed from their text logs, and in-process
	interatomic potentials whose results are read directly from memory.

    Deep-merging of per-job default calculator parameters with sparse user
	overrides, including explicit key removal.

    Managed, collision-free scratch directories for external calculations,
	with file staging in and retention of outputs.

    Summarization of raw calculator output into a uniform, serializable
	result schema, including harmonic vibrational analysis and ideal-gas
	thermochemistry for frequency jobs.

Coordinates are always in Angstrom and energies in eV. Matrices are gonum
dense matrices with one row per atom.
*/
package chem
