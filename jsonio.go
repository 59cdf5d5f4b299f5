/*
 * jsonio.go, part of chemrun.
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
	"encoding/json"

	"gonum.org/v1/gonum/mat"
)

//jsonMolecule is the serializable shadow of Molecule. Coordinates travel
//as a flat row-major slice, the way NewMolecule takes them.
type jsonMolecule struct {
	Symbols      []string  `json:"symbols"`
	Coords       []float64 `json:"coords"`
	Charge       int       `json:"charge"`
	Multiplicity int       `json:"multiplicity"`
}

// MarshalJSON serializes the molecule's symbols, coordinates, charge and
// multiplicity. The attached calculator, if any, is not serialized.
func (M *Molecule) MarshalJSON() ([]byte, error) {
	flat := make([]float64, 3*M.Len())
	copy(flat, M.Coords().RawMatrix().Data)
	return json.Marshal(jsonMolecule{
		Symbols:      M.Symbols(),
		Coords:       flat,
		Charge:       M.Charge(),
		Multiplicity: M.Multi(),
	})
}

// UnmarshalJSON rebuilds a molecule serialized by MarshalJSON.
func (M *Molecule) UnmarshalJSON(data []byte) error {
	var j jsonMolecule
	if err := json.Unmarshal(data, &j); err != nil {
		return NewError(ErrStructure, "json", "", err.Error())
	}
	if len(j.Coords) != 3*len(j.Symbols) {
		return NewError(ErrStructure, "json", "", "coordinate count does not match symbol count")
	}
	n, err := NewMolecule(j.Symbols, j.Coords)
	if err != nil {
		return errDecorate(err, "UnmarshalJSON")
	}
	if j.Charge != 0 {
		n.SetCharge(j.Charge)
	}
	if j.Multiplicity != 0 {
		n.SetMulti(j.Multiplicity)
	}
	*M = *n
	return nil
}

//jsonResults is the serializable shadow of Results. Matrices travel as
//flat row-major slices with explicit dimensions, like jsonMolecule does
//for coordinates.
type jsonResults struct {
	Energy      float64   `json:"energy"`
	Forces      []float64 `json:"forces,omitempty"`
	ForceRows   int       `json:"force_rows,omitempty"`
	Hessian     []float64 `json:"hessian,omitempty"`
	HessianRows int       `json:"hessian_rows,omitempty"`
	Dipole      []float64 `json:"dipole,omitempty"`
	Charges     []float64 `json:"charges,omitempty"`
}

func flatten(m *mat.Dense) ([]float64, int) {
	if m == nil {
		return nil, 0
	}
	r, c := m.Dims()
	flat := make([]float64, r*c)
	for i := 0; i < r; i++ {
		copy(flat[i*c:(i+1)*c], m.RawRowView(i))
	}
	return flat, r
}

// MarshalJSON serializes the energy, the forces and Hessian matrices as
// flat slices, and the dipole and charge vectors.
func (R *Results) MarshalJSON() ([]byte, error) {
	j := jsonResults{Energy: R.Energy, Dipole: R.Dipole, Charges: R.Charges}
	j.Forces, j.ForceRows = flatten(R.Forces)
	j.Hessian, j.HessianRows = flatten(R.Hessian)
	return json.Marshal(j)
}

// UnmarshalJSON rebuilds results serialized by MarshalJSON.
func (R *Results) UnmarshalJSON(data []byte) error {
	var j jsonResults
	if err := json.Unmarshal(data, &j); err != nil {
		return NewError(ErrStructure, "json", "", err.Error())
	}
	n := Results{Energy: j.Energy, Dipole: j.Dipole, Charges: j.Charges}
	if len(j.Forces) > 0 {
		if j.ForceRows <= 0 || len(j.Forces)%j.ForceRows != 0 {
			return NewError(ErrStructure, "json", "", "force matrix dimensions do not match the data")
		}
		n.Forces = mat.NewDense(j.ForceRows, len(j.Forces)/j.ForceRows, j.Forces)
	}
	if len(j.Hessian) > 0 {
		if j.HessianRows <= 0 || len(j.Hessian)%j.HessianRows != 0 {
			return NewError(ErrStructure, "json", "", "Hessian dimensions do not match the data")
		}
		n.Hessian = mat.NewDense(j.HessianRows, len(j.Hessian)/j.HessianRows, j.Hessian)
	}
	*R = n
	return nil
}
