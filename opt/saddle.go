/*
 * saddle.go, part of chemrun.
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

const (
	saddleStepCap = 0.2  //A, largest allowed displacement per Newton step
	saddleZeroEig = 1e-6 //eigenvalues below this are treated as zero modes
)

// SaddleOptions controls Saddle. Zero values mean the defaults.
type SaddleOptions struct {
	FMax     float64 //default 0.01 eV/A
	MaxSteps int     //default 100
}

func (o *SaddleOptions) defaults() SaddleOptions {
	d := SaddleOptions{FMax: 0.01, MaxSteps: 100}
	if o == nil {
		return d
	}
	if o.FMax > 0 {
		d.FMax = o.FMax
	}
	if o.MaxSteps > 0 {
		d.MaxSteps = o.MaxSteps
	}
	return d
}

// Saddle refines a transition-state guess by full Newton steps in the
// eigenbasis of the Hessian. Unlike a minimizer, Newton steps converge to
// the stationary point nearest the starting geometry whatever its index, so
// the guess must already be in the basin of the desired saddle. Zero modes
// (translations, rotations) are skipped and each step is capped at 0.2 A.
func Saddle(pot calc.Potential, mol *chem.Molecule, o *SaddleOptions) (*RelaxResult, error) {
	op := o.defaults()
	out := mol.Copy()
	symbols := out.Symbols()
	n := out.Len()
	dim := 3 * n
	path := Path{}

	for step := 0; step <= op.MaxSteps; step++ {
		grad, err := calc.Gradient(pot, symbols, out.Coords())
		if err != nil {
			return nil, chem.NewError(chem.ErrCalculation, "saddle", "", err.Error())
		}
		energy, err := pot.Energy(symbols, out.Coords())
		if err != nil {
			return nil, chem.NewError(chem.ErrCalculation, "saddle", "", err.Error())
		}
		path = append(path, Step{Coords: mat.DenseCopyOf(out.Coords()), Energy: energy})
		forces := mat.DenseCopyOf(grad)
		forces.Scale(-1, forces)
		if chem.MaxForce(forces) <= op.FMax {
			res := &chem.Results{Energy: energy, Forces: forces}
			return &RelaxResult{Mol: out, Res: res, Path: path, Converged: true}, nil
		}
		if step == op.MaxSteps {
			break
		}
		hess, err := calc.Hessian(pot, symbols, out.Coords())
		if err != nil {
			return nil, chem.NewError(chem.ErrCalculation, "saddle", "", err.Error())
		}
		var eig mat.EigenSym
		if !eig.Factorize(mat.NewSymDense(dim, hess.RawMatrix().Data), true) {
			return nil, chem.NewError(chem.ErrCalculation, "saddle", "", "Hessian eigendecomposition failed")
		}
		vals := eig.Values(nil)
		var vecs mat.Dense
		eig.VectorsTo(&vecs)

		//Newton step dx = -sum_i (v_i.g / lambda_i) v_i over non-zero modes.
		g := grad.RawMatrix().Data
		dx := make([]float64, dim)
		for i := 0; i < dim; i++ {
			if math.Abs(vals[i]) < saddleZeroEig {
				continue
			}
			var proj float64
			for k := 0; k < dim; k++ {
				proj += vecs.At(k, i) * g[k]
			}
			scale := proj / vals[i]
			for k := 0; k < dim; k++ {
				dx[k] -= scale * vecs.At(k, i)
			}
		}
		var maxComp float64
		for _, d := range dx {
			if a := math.Abs(d); a > maxComp {
				maxComp = a
			}
		}
		if maxComp > saddleStepCap {
			s := saddleStepCap / maxComp
			for k := range dx {
				dx[k] *= s
			}
		}
		c := out.Coords()
		for a := 0; a < n; a++ {
			for j := 0; j < 3; j++ {
				c.Set(a, j, c.At(a, j)+dx[3*a+j])
			}
		}
	}
	//not converged: report the last point anyway
	forces, err := calc.Forces(pot, symbols, out.Coords())
	if err != nil {
		return nil, chem.NewError(chem.ErrCalculation, "saddle", "", err.Error())
	}
	energy, err := pot.Energy(symbols, out.Coords())
	if err != nil {
		return nil, chem.NewError(chem.ErrCalculation, "saddle", "", err.Error())
	}
	res := &chem.Results{Energy: energy, Forces: forces}
	return &RelaxResult{Mol: out, Res: res, Path: path, Converged: false}, nil
}
