/*
 * interfaces.go, part of chemrun.
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

package chem

import "gonum.org/v1/gonum/mat"

// Results holds everything a calculator can report after one execution.
// Energy is in eV, forces in eV/Angstrom (N x 3), the Hessian in
// eV/Angstrom^2 (3N x 3N, mass-unweighted). Fields a calculator does not
// produce stay nil/zero; summarizers only copy what is present.
// JSON serialization goes through the shadow struct in jsonio.go.
type Results struct {
	Energy  float64
	Forces  *mat.Dense
	Hessian *mat.Dense
	Dipole  []float64
	Charges []float64
}

// Copy returns a deep copy of the results.
func (R *Results) Copy() *Results {
	if R == nil {
		return nil
	}
	n := &Results{Energy: R.Energy}
	if R.Forces != nil {
		n.Forces = mat.DenseCopyOf(R.Forces)
	}
	if R.Hessian != nil {
		n.Hessian = mat.DenseCopyOf(R.Hessian)
	}
	n.Dipole = append([]float64{}, R.Dipole...)
	n.Charges = append([]float64{}, R.Charges...)
	return n
}

// Calculator is the interface every calculator family implements. Execute
// blocks until the underlying program or potential has finished; dir is the
// working directory the runner prepared for this invocation. What a
// calculator exposes afterwards depends on its family: see LogProducer and
// Resulter.
type Calculator interface {

	//Label names the calculator, used for scratch directories
	//and error messages.
	Label() string

	//Execute runs the calculation for mol inside dir. It must not
	//return before the calculation has finished or failed.
	Execute(dir string, mol *Molecule) error
}

// LogProducer is implemented by calculators whose results live in a textual
// log file written during Execute (the Gaussian family). The summarizer for
// this family parses the returned file.
type LogProducer interface {
	Calculator

	//LogFile returns the name of the log file inside the working
	//directory, valid after Execute.
	LogFile() string
}

// Resulter is implemented by calculators that keep their results in memory
// (in-process potentials, the NewtonNet-style family). Results returns the
// outcome of the last Execute and fails if there is none.
type Resulter interface {
	Calculator

	Results() (*Results, error)
}
