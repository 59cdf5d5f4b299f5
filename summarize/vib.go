/*
 * vib.go, part of chemrun.
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

package summarize

import (
	"math"
	"sort"

	chem "github.com/emoreno/chemrun"
	"gonum.org/v1/gonum/mat"
)

//converts sqrt(eV/(A^2 amu)) to a wavenumber in cm^-1
var freqFactor = math.Sqrt(chem.EV2J/(chem.AMU2Kg*1e-20)) / (2 * math.Pi * chem.CLight)

// Vib is the harmonic frequency block of a JobResult. RawFrequencies holds
// all 3N modes; Frequencies the true vibrations after removing translation
// and rotation, sorted ascending. Imaginary frequencies appear as negative
// wavenumbers and are also listed separately.
type Vib struct {
	RawFrequencies  []float64 `json:"raw_frequencies"`
	Frequencies     []float64 `json:"frequencies"`
	NImag           int       `json:"n_imag"`
	ImagFrequencies []float64 `json:"imag_frequencies,omitempty"`
	Symmetry        *Symmetry `json:"symmetry"`
}

// Frequencies computes harmonic frequencies from a Cartesian Hessian in
// eV/A^2. It mass-weights the Hessian, diagonalizes it, converts the
// eigenvalues to wavenumbers (negative for imaginary modes), and drops the
// 5 (linear) or 6 (nonlinear) modes of smallest magnitude as translations
// and rotations.
func Frequencies(mol *chem.Molecule, hessian *mat.Dense) (*Vib, error) {
	n := mol.Len()
	dim := 3 * n
	if r, c := hessian.Dims(); r != dim || c != dim {
		return nil, chem.NewError(chem.ErrStructure, "vib", "",
			"Hessian dimensions do not match the molecule")
	}
	masses := mol.Masses()
	sqm := make([]float64, dim)
	for a := 0; a < n; a++ {
		s := math.Sqrt(masses[a])
		sqm[3*a], sqm[3*a+1], sqm[3*a+2] = s, s, s
	}
	mw := mat.NewSymDense(dim, nil)
	for i := 0; i < dim; i++ {
		for j := i; j < dim; j++ {
			mw.SetSym(i, j, hessian.At(i, j)/(sqm[i]*sqm[j]))
		}
	}
	var eig mat.EigenSym
	if !eig.Factorize(mw, false) {
		return nil, chem.NewError(chem.ErrCalculation, "vib", "", "Hessian eigendecomposition failed")
	}
	vals := eig.Values(nil)

	raw := make([]float64, dim)
	for i, l := range vals {
		f := freqFactor * math.Sqrt(math.Abs(l))
		if l < 0 {
			f = -f
		}
		raw[i] = f
	}
	sort.Float64s(raw)

	sym, err := Analyze(mol)
	if err != nil {
		return nil, errAt(err, "Frequencies")
	}
	drop := 6
	if sym.Linear {
		drop = 5
	}
	if dim <= drop {
		return &Vib{RawFrequencies: raw, Frequencies: []float64{}, Symmetry: sym}, nil
	}

	//drop the modes closest to zero, keeping the rest in order
	type mode struct {
		freq float64
		pos  int
	}
	byMag := make([]mode, dim)
	for i, f := range raw {
		byMag[i] = mode{f, i}
	}
	sort.Slice(byMag, func(a, b int) bool {
		return math.Abs(byMag[a].freq) < math.Abs(byMag[b].freq)
	})
	dropped := make(map[int]bool, drop)
	for _, m := range byMag[:drop] {
		dropped[m.pos] = true
	}
	kept := make([]float64, 0, dim-drop)
	var imag []float64
	for i, f := range raw {
		if dropped[i] {
			continue
		}
		kept = append(kept, f)
		if f < 0 {
			imag = append(imag, f)
		}
	}
	return &Vib{
		RawFrequencies:  raw,
		Frequencies:     kept,
		NImag:           len(imag),
		ImagFrequencies: imag,
		Symmetry:        sym,
	}, nil
}

//ZPE is the zero-point energy in eV, summed over the real kept modes.
func (v *Vib) ZPE() float64 {
	var zpe float64
	for _, f := range v.Frequencies {
		if f > 0 {
			zpe += chem.InvCm2eV * f / 2
		}
	}
	return zpe
}

func errAt(err error, caller string) error {
	if d, ok := err.(chem.Error); ok {
		d.Decorate(caller)
		return d
	}
	return err
}
