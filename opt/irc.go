/*
 * irc.go, part of chemrun.
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

package opt

import (
	"math"

	chem "github.com/emoreno/chemrun"
	"github.com/emoreno/chemrun/calc"
	"gonum.org/v1/gonum/mat"
)

// IRC direction labels.
const (
	Forward = "forward"
	Reverse = "reverse"
)

// IRCOptions controls IRC. Zero values mean the defaults.
type IRCOptions struct {
	StepSize float64 //initial displacement and descent step, in A. Default 0.1
	MaxSteps int     //default 100
	FMax     float64 //force norm below which descent stops, default 0.01 eV/A
}

func (o *IRCOptions) defaults() IRCOptions {
	d := IRCOptions{StepSize: 0.1, MaxSteps: 100, FMax: 0.01}
	if o == nil {
		return d
	}
	if o.StepSize > 0 {
		d.StepSize = o.StepSize
	}
	if o.MaxSteps > 0 {
		d.MaxSteps = o.MaxSteps
	}
	if o.FMax > 0 {
		d.FMax = o.FMax
	}
	return d
}

// IRCResult is the outcome of an IRC run.
type IRCResult struct {
	Mol       *chem.Molecule //endpoint geometry
	Res       *chem.Results  //energy and forces at the endpoint
	Path      Path           //TS first, endpoint last
	Direction string
}

//canonicalMode fixes the sign of an eigenvector so that its first component
//with magnitude above 1e-6 is positive. Eigensolvers return either sign; a
//fixed convention makes "forward" mean the same thing on every run.
func canonicalMode(v []float64) {
	for _, x := range v {
		if math.Abs(x) > 1e-6 {
			if x < 0 {
				for i := range v {
					v[i] = -v[i]
				}
			}
			return
		}
	}
}

//downhillMode returns the Cartesian displacement along the imaginary
//(most negative eigenvalue) normal mode of the mass-weighted Hessian, sign
//canonicalized and normalized to unit Cartesian length.
func downhillMode(mol *chem.Molecule, hess *mat.Dense) ([]float64, error) {
	n := mol.Len()
	dim := 3 * n
	masses := mol.Masses()
	sqm := make([]float64, dim)
	for a := 0; a < n; a++ {
		s := math.Sqrt(masses[a])
		sqm[3*a], sqm[3*a+1], sqm[3*a+2] = s, s, s
	}
	mw := mat.NewSymDense(dim, nil)
	for i := 0; i < dim; i++ {
		for j := i; j < dim; j++ {
			mw.SetSym(i, j, hess.At(i, j)/(sqm[i]*sqm[j]))
		}
	}
	var eig mat.EigenSym
	if !eig.Factorize(mw, true) {
		return nil, chem.NewError(chem.ErrCalculation, "irc", "", "Hessian eigendecomposition failed")
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	lowest := 0
	for i := 1; i < dim; i++ {
		if vals[i] < vals[lowest] {
			lowest = i
		}
	}
	//finite-difference noise leaves zero modes slightly off zero, so a true
	//imaginary mode must clear a small threshold
	if vals[lowest] >= -1e-3 {
		return nil, chem.NewError(chem.ErrStructure, "irc", "", "starting geometry has no imaginary mode")
	}
	//back to Cartesian displacement: dx_i = v_i / sqrt(m_i)
	mode := make([]float64, dim)
	var norm float64
	for i := 0; i < dim; i++ {
		mode[i] = vecs.At(i, lowest) / sqm[i]
		norm += mode[i] * mode[i]
	}
	norm = math.Sqrt(norm)
	for i := range mode {
		mode[i] /= norm
	}
	canonicalMode(mode)
	return mode, nil
}

// IRC follows the reaction path downhill from a transition state. The
// geometry is displaced along the imaginary normal mode of the mass-weighted
// Hessian ("forward" along the canonicalized mode, "reverse" against it),
// then relaxed by damped steepest descent, halving the step whenever the
// energy rises. It stops when the forces fall below FMax or after MaxSteps.
func IRC(pot calc.Potential, mol *chem.Molecule, direction string, o *IRCOptions) (*IRCResult, error) {
	op := o.defaults()
	if direction != Forward && direction != Reverse {
		return nil, chem.NewError(chem.ErrConfiguration, "irc", "", "direction must be \"forward\" or \"reverse\", got "+direction)
	}
	out := mol.Copy()
	symbols := out.Symbols()
	n := out.Len()

	hess, err := calc.Hessian(pot, symbols, out.Coords())
	if err != nil {
		return nil, errDecorate(err, "IRC")
	}
	mode, err := downhillMode(out, hess)
	if err != nil {
		return nil, errDecorate(err, "IRC")
	}
	sign := 1.0
	if direction == Reverse {
		sign = -1.0
	}
	startE, err := pot.Energy(symbols, out.Coords())
	if err != nil {
		return nil, chem.NewError(chem.ErrCalculation, "irc", "", err.Error())
	}
	path := Path{{Coords: mat.DenseCopyOf(out.Coords()), Energy: startE}}

	c := out.Coords()
	for a := 0; a < n; a++ {
		for j := 0; j < 3; j++ {
			c.Set(a, j, c.At(a, j)+sign*op.StepSize*mode[3*a+j])
		}
	}

	energy, err := pot.Energy(symbols, c)
	if err != nil {
		return nil, chem.NewError(chem.ErrCalculation, "irc", "", err.Error())
	}
	step := op.StepSize
	var forces *mat.Dense
	for i := 0; i < op.MaxSteps; i++ {
		path = append(path, Step{Coords: mat.DenseCopyOf(c), Energy: energy})
		forces, err = calc.Forces(pot, symbols, c)
		if err != nil {
			return nil, chem.NewError(chem.ErrCalculation, "irc", "", err.Error())
		}
		if chem.MaxForce(forces) <= op.FMax {
			break
		}
		//unit step along the forces, halved until the energy goes down
		fnorm := mat.Norm(forces, 2)
		trial := mat.NewDense(n, 3, nil)
		for {
			trial.Scale(step/fnorm, forces)
			trial.Add(trial, c)
			trialE, err := pot.Energy(symbols, trial)
			if err != nil {
				return nil, chem.NewError(chem.ErrCalculation, "irc", "", err.Error())
			}
			if trialE < energy || step < 1e-6 {
				energy = trialE
				break
			}
			step /= 2
		}
		c.Copy(trial)
		if step < 1e-6 {
			break
		}
	}
	if forces == nil {
		forces, err = calc.Forces(pot, symbols, c)
		if err != nil {
			return nil, chem.NewError(chem.ErrCalculation, "irc", "", err.Error())
		}
	}
	res := &chem.Results{Energy: energy, Forces: forces}
	return &IRCResult{Mol: out, Res: res, Path: path, Direction: direction}, nil
}

func errDecorate(err error, caller string) error {
	if d, ok := err.(chem.Error); ok {
		d.Decorate(caller)
		return d
	}
	return err
}
