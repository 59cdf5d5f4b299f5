/*
 * findiff.go, part of chemrun.
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
	"gonum.org/v1/gonum/mat"
)

//Finite-difference steps in Angstrom. The gradient uses a small two-point
//central difference; the Hessian uses the four-point formula with a larger
//step to keep the subtractive noise down.
const (
	gradStep = 1e-4
	hessStep = 5e-3
)

//displaced returns a copy of coords with the flat coordinate index k moved
//by delta.
func displaced(coords *mat.Dense, k int, delta float64) *mat.Dense {
	d := mat.DenseCopyOf(coords)
	d.Set(k/3, k%3, d.At(k/3, k%3)+delta)
	return d
}

// Gradient computes the energy gradient of pot by central differences,
// returned as an N x 3 matrix in eV/Angstrom.
func Gradient(pot Potential, symbols []string, coords *mat.Dense) (*mat.Dense, error) {
	n, _ := coords.Dims()
	grad := mat.NewDense(n, 3, nil)
	for k := 0; k < 3*n; k++ {
		plus, err := pot.Energy(symbols, displaced(coords, k, gradStep))
		if err != nil {
			return nil, err
		}
		minus, err := pot.Energy(symbols, displaced(coords, k, -gradStep))
		if err != nil {
			return nil, err
		}
		grad.Set(k/3, k%3, (plus-minus)/(2*gradStep))
	}
	return grad, nil
}

// Forces is the negated Gradient.
func Forces(pot Potential, symbols []string, coords *mat.Dense) (*mat.Dense, error) {
	grad, err := Gradient(pot, symbols, coords)
	if err != nil {
		return nil, err
	}
	grad.Scale(-1, grad)
	return grad, nil
}

// Hessian computes the 3N x 3N second-derivative matrix of pot in
// eV/Angstrom^2. Potentials implementing HessianProvider are asked directly;
// otherwise the four-point central-difference formula is used and the result
// symmetrized.
func Hessian(pot Potential, symbols []string, coords *mat.Dense) (*mat.Dense, error) {
	if hp, ok := pot.(HessianProvider); ok {
		return hp.Hessian(symbols, coords)
	}
	n, _ := coords.Dims()
	dim := 3 * n
	hess := mat.NewDense(dim, dim, nil)
	h := hessStep
	e0, err := pot.Energy(symbols, coords)
	if err != nil {
		return nil, err
	}
	for i := 0; i < dim; i++ {
		//diagonal: (E+ - 2E0 + E-) / h^2
		plus, err := pot.Energy(symbols, displaced(coords, i, h))
		if err != nil {
			return nil, err
		}
		minus, err := pot.Energy(symbols, displaced(coords, i, -h))
		if err != nil {
			return nil, err
		}
		hess.Set(i, i, (plus-2*e0+minus)/(h*h))
		for j := 0; j < i; j++ {
			pp, err := pot.Energy(symbols, displaced(displaced(coords, i, h), j, h))
			if err != nil {
				return nil, err
			}
			pm, err := pot.Energy(symbols, displaced(displaced(coords, i, h), j, -h))
			if err != nil {
				return nil, err
			}
			mp, err := pot.Energy(symbols, displaced(displaced(coords, i, -h), j, h))
			if err != nil {
				return nil, err
			}
			mm, err := pot.Energy(symbols, displaced(displaced(coords, i, -h), j, -h))
			if err != nil {
				return nil, err
			}
			v := (pp - pm - mp + mm) / (4 * h * h)
			hess.Set(i, j, v)
			hess.Set(j, i, v)
		}
	}
	return hess, nil
}
