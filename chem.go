/*
 * chem.go, part of chemrun.
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

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Molecule is the structure every recipe operates on: element symbols plus
// an N x 3 coordinate matrix in Angstrom, the total charge and spin
// multiplicity, and an optionally attached calculator. The coordinates are
// owned by the Molecule; recipes that move atoms work on a Copy and never
// touch the caller's matrix.
type Molecule struct {
	symbols    []string
	coords     *mat.Dense
	charge     int
	multi      int
	calculator Calculator
}

// NewMolecule builds a Molecule from symbols and a flat coordinate slice
// (x1, y1, z1, x2, ...). The multiplicity defaults to 1.
func NewMolecule(symbols []string, coords []float64) (*Molecule, error) {
	if len(coords) != 3*len(symbols) {
		return nil, fmt.Errorf("chem.NewMolecule: %d symbols but %d coordinates", len(symbols), len(coords))
	}
	for _, s := range symbols {
		if _, ok := symbolMass[s]; !ok {
			return nil, fmt.Errorf("chem.NewMolecule: unknown element %q", s)
		}
	}
	m := &Molecule{
		symbols: append([]string{}, symbols...),
		coords:  mat.NewDense(len(symbols), 3, append([]float64{}, coords...)),
		multi:   1,
	}
	return m, nil
}

// Len returns the number of atoms.
func (M *Molecule) Len() int {
	return len(M.symbols)
}

// Symbol returns the element symbol of atom i.
func (M *Molecule) Symbol(i int) string {
	return M.symbols[i]
}

// Symbols returns a copy of the element symbols.
func (M *Molecule) Symbols() []string {
	return append([]string{}, M.symbols...)
}

// Coords returns the coordinate matrix. The matrix is not copied; callers
// that need isolation must Copy the molecule first.
func (M *Molecule) Coords() *mat.Dense {
	return M.coords
}

// SetCoords replaces the coordinates of the molecule. It panics if the
// matrix has the wrong shape, as this is always a programming error.
func (M *Molecule) SetCoords(c *mat.Dense) {
	r, co := c.Dims()
	if r != M.Len() || co != 3 {
		panic(fmt.Sprintf("chem: SetCoords with %dx%d matrix on %d-atom molecule", r, co, M.Len()))
	}
	M.coords = c
}

// Charge gets the total charge.
func (M *Molecule) Charge() int {
	return M.charge
}

// SetCharge sets the total charge.
func (M *Molecule) SetCharge(q int) {
	M.charge = q
}

// Multi gets the spin multiplicity.
func (M *Molecule) Multi() int {
	return M.multi
}

// SetMulti sets the spin multiplicity.
func (M *Molecule) SetMulti(m int) {
	M.multi = m
}

// Calculator returns the attached calculator, nil if none is attached.
func (M *Molecule) Calculator() Calculator {
	return M.calculator
}

// SetCalculator attaches a calculator to the molecule.
func (M *Molecule) SetCalculator(c Calculator) {
	M.calculator = c
}

// Copy returns a deep copy of the molecule. The calculator reference is
// shared, not copied.
func (M *Molecule) Copy() *Molecule {
	n := &Molecule{
		symbols:    append([]string{}, M.symbols...),
		charge:     M.charge,
		multi:      M.multi,
		calculator: M.calculator,
	}
	n.coords = mat.DenseCopyOf(M.coords)
	return n
}

// Masses returns the atomic masses in amu, one per atom.
func (M *Molecule) Masses() []float64 {
	ms := make([]float64, M.Len())
	for i, s := range M.symbols {
		ms[i] = symbolMass[s]
	}
	return ms
}

// EqualGeom reports whether o has the same elements, in the same order, with
// every coordinate within tol of M's.
func (M *Molecule) EqualGeom(o *Molecule, tol float64) bool {
	if o == nil || M.Len() != o.Len() {
		return false
	}
	for i, s := range M.symbols {
		if o.symbols[i] != s {
			return false
		}
		for j := 0; j < 3; j++ {
			if math.Abs(M.coords.At(i, j)-o.coords.At(i, j)) > tol {
				return false
			}
		}
	}
	return true
}

// MaxForce returns the largest per-atom force norm of an N x 3 force matrix.
// It is the convergence measure used by the relaxation recipes.
func MaxForce(forces *mat.Dense) float64 {
	if forces == nil {
		return math.Inf(1)
	}
	r, _ := forces.Dims()
	var max float64
	for i := 0; i < r; i++ {
		n := math.Hypot(math.Hypot(forces.At(i, 0), forces.At(i, 1)), forces.At(i, 2))
		if n > max {
			max = n
		}
	}
	return max
}
