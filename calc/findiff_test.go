/*
 * findiff_test.go, part of chemrun.
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
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

//quadraticPot is an analytic quadratic form over the flat coordinates:
//E = sum_i d_i q_i^2 + c q_0 q_1. Its gradient and Hessian are known in
//closed form, which makes it a clean probe for the finite differences.
type quadraticPot struct {
	diag     []float64
	coupling float64
}

func (q quadraticPot) Energy(symbols []string, coords *mat.Dense) (float64, error) {
	n, _ := coords.Dims()
	var e float64
	for k := 0; k < 3*n; k++ {
		x := coords.At(k/3, k%3)
		e += q.diag[k] * x * x
	}
	e += q.coupling * coords.At(0, 0) * coords.At(0, 1)
	return e, nil
}

func (q quadraticPot) gradient(coords *mat.Dense) []float64 {
	n, _ := coords.Dims()
	g := make([]float64, 3*n)
	for k := range g {
		g[k] = 2 * q.diag[k] * coords.At(k/3, k%3)
	}
	g[0] += q.coupling * coords.At(0, 1)
	g[1] += q.coupling * coords.At(0, 0)
	return g
}

type failingPot struct{}

func (failingPot) Energy(symbols []string, coords *mat.Dense) (float64, error) {
	return 0, errors.New("model blew up")
}

//fixedHessianPot hands out a recognizable Hessian directly.
type fixedHessianPot struct{}

func (fixedHessianPot) Energy(symbols []string, coords *mat.Dense) (float64, error) {
	return 0, nil
}

func (fixedHessianPot) Hessian(symbols []string, coords *mat.Dense) (*mat.Dense, error) {
	h := mat.NewDense(6, 6, nil)
	h.Set(0, 0, 42)
	return h, nil
}

func testPoint() (quadraticPot, []string, *mat.Dense) {
	pot := quadraticPot{
		diag:     []float64{1, 2, 3, 0.5, 1.5, 2.5},
		coupling: 0.8,
	}
	symbols := []string{"H", "H"}
	coords := mat.NewDense(2, 3, []float64{0.3, -0.2, 0.5, -0.1, 0.4, 0.7})
	return pot, symbols, coords
}

func TestGradient(t *testing.T) {
	pot, symbols, coords := testPoint()
	grad, err := Gradient(pot, symbols, coords)
	if err != nil {
		t.Fatal(err)
	}
	want := pot.gradient(coords)
	for k := 0; k < 6; k++ {
		got := grad.At(k/3, k%3)
		if math.Abs(got-want[k]) > 1e-7 {
			t.Errorf("gradient component %d: got %v, want %v", k, got, want[k])
		}
	}
}

func TestForces(t *testing.T) {
	pot, symbols, coords := testPoint()
	grad, err := Gradient(pot, symbols, coords)
	if err != nil {
		t.Fatal(err)
	}
	forces, err := Forces(pot, symbols, coords)
	if err != nil {
		t.Fatal(err)
	}
	for k := 0; k < 6; k++ {
		if g, f := grad.At(k/3, k%3), forces.At(k/3, k%3); math.Abs(g+f) > 1e-12 {
			t.Errorf("component %d: force %v is not the negated gradient %v", k, f, g)
		}
	}
}

func TestHessian(t *testing.T) {
	pot, symbols, coords := testPoint()
	hess, err := Hessian(pot, symbols, coords)
	if err != nil {
		t.Fatal(err)
	}
	//central differences are exact on a quadratic, up to roundoff
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			var want float64
			switch {
			case i == j:
				want = 2 * pot.diag[i]
			case (i == 0 && j == 1) || (i == 1 && j == 0):
				want = pot.coupling
			}
			if got := hess.At(i, j); math.Abs(got-want) > 1e-6 {
				t.Errorf("hessian (%d,%d): got %v, want %v", i, j, got, want)
			}
			if got, sym := hess.At(i, j), hess.At(j, i); got != sym {
				t.Errorf("hessian not symmetric at (%d,%d): %v vs %v", i, j, got, sym)
			}
		}
	}
}

func TestHessianProviderPreferred(t *testing.T) {
	symbols := []string{"H", "H"}
	coords := mat.NewDense(2, 3, nil)
	hess, err := Hessian(fixedHessianPot{}, symbols, coords)
	if err != nil {
		t.Fatal(err)
	}
	if hess.At(0, 0) != 42 {
		t.Error("the potential's own Hessian was not used")
	}
}

func TestFindiffPropagatesErrors(t *testing.T) {
	symbols := []string{"H"}
	coords := mat.NewDense(1, 3, nil)
	if _, err := Gradient(failingPot{}, symbols, coords); err == nil {
		t.Error("Gradient swallowed the potential's error")
	}
	if _, err := Hessian(failingPot{}, symbols, coords); err == nil {
		t.Error("Hessian swallowed the potential's error")
	}
}
