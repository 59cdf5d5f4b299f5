/*
 * native.go, part of chemrun.
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

package calc

import (
	chem "github.com/emoreno/chemrun"
	"gonum.org/v1/gonum/mat"
)

// Potential is the black-box energy model behind the Native calculator: an
// interatomic potential (an ML model, a force field) evaluated in-process.
// Only the energy is required; derivatives are taken numerically when the
// model does not provide them itself.
type Potential interface {

	//Energy returns the potential energy in eV for the given elements
	//and N x 3 coordinates in Angstrom.
	Energy(symbols []string, coords *mat.Dense) (float64, error)
}

// HessianProvider is implemented by potentials that can do better than the
// finite-difference Hessian.
type HessianProvider interface {
	Potential
	Hessian(symbols []string, coords *mat.Dense) (*mat.Dense, error)
}

// NativeLabel names the in-process calculator family.
const NativeLabel = "native"

// Native evaluates a Potential in-process and keeps the results in memory;
// it writes no files and produces no log. It implements chem.Resulter.
type Native struct {
	pot         Potential
	config      Config
	wantHessian bool
	results     *chem.Results
}

// NewNative builds a Native calculator over pot. The parameter set is
// consulted for the "hessian" key: any value except Remove requests a
// Hessian evaluation alongside energy and forces.
func NewNative(pot Potential, config Config) (*Native, error) {
	if pot == nil {
		return nil, chem.NewError(chem.ErrConfiguration, NativeLabel, "",
			"no potential supplied")
	}
	if err := config.Validate(NativeLabel); err != nil {
		return nil, err
	}
	_, wantHessian := config.Params["hessian"]
	return &Native{pot: pot, config: config, wantHessian: wantHessian}, nil
}

func (N *Native) Label() string {
	return NativeLabel
}

// Execute evaluates the potential for mol. dir is accepted for interface
// compatibility and ignored: nothing is staged on disk.
func (N *Native) Execute(dir string, mol *chem.Molecule) error {
	N.results = nil
	energy, err := N.pot.Energy(mol.Symbols(), mol.Coords())
	if err != nil {
		return chem.NewError(chem.ErrCalculation, NativeLabel, "", err.Error())
	}
	forces, err := Forces(N.pot, mol.Symbols(), mol.Coords())
	if err != nil {
		return chem.NewError(chem.ErrCalculation, NativeLabel, "", err.Error())
	}
	res := &chem.Results{Energy: energy, Forces: forces}
	if N.wantHessian {
		res.Hessian, err = Hessian(N.pot, mol.Symbols(), mol.Coords())
		if err != nil {
			return chem.NewError(chem.ErrCalculation, NativeLabel, "", err.Error())
		}
	}
	N.results = res
	return nil
}

// Results returns the outcome of the last Execute.
func (N *Native) Results() (*chem.Results, error) {
	if N.results == nil {
		return nil, chem.NewError(chem.ErrCalculation, NativeLabel, "",
			"no results: calculator has not run")
	}
	return N.results, nil
}
