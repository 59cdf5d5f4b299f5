/*
 * thermo.go, part of chemrun.
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

	chem "github.com/emoreno/chemrun"
)

// Default conditions for thermochemistry.
const (
	DefaultTemperature = 298.15   //K
	DefaultPressure    = 101325.0 //Pa
)

// Thermo is the ideal-gas rigid-rotor harmonic-oscillator thermochemistry
// block of a frequency JobResult. All energies are in eV, the entropy in
// eV/K.
type Thermo struct {
	Temperature float64 `json:"temperature"`
	Pressure    float64 `json:"pressure"`
	Energy      float64 `json:"energy"`   //electronic energy, as given
	ZPE         float64 `json:"zpe"`
	Enthalpy    float64 `json:"enthalpy"`
	Entropy     float64 `json:"entropy"`
	Gibbs       float64 `json:"gibbs_energy"`
}

// IdealGasThermo evaluates RRHO thermochemistry for a molecule with the
// given vibration block and electronic energy. Imaginary modes are excluded
// from the vibrational sums. Non-positive temperature or pressure fall back
// to 298.15 K and 1 atm.
func IdealGasThermo(mol *chem.Molecule, vib *Vib, energy, temperature, pressure float64) (*Thermo, error) {
	if temperature <= 0 {
		temperature = DefaultTemperature
	}
	if pressure <= 0 {
		pressure = DefaultPressure
	}
	if vib == nil || vib.Symmetry == nil {
		return nil, chem.NewError(chem.ErrStructure, "thermo", "", "missing vibration block")
	}
	masses := mol.Masses()
	var mtot float64
	for _, m := range masses {
		mtot += m
	}
	kT := chem.KBeV * temperature

	//translation
	mKg := mtot * chem.AMU2Kg
	qTrans := math.Pow(2*math.Pi*mKg*chem.KB*temperature/(chem.Planck*chem.Planck), 1.5) *
		chem.KB * temperature / pressure
	sTrans := chem.KBeV * (math.Log(qTrans) + 2.5)
	eTrans := 1.5 * kT

	//rotation
	var sRot, eRot float64
	sigma := float64(vib.Symmetry.RotationNumber)
	if sigma < 1 {
		sigma = 1
	}
	moments := vib.Symmetry.Moments //amu A^2
	toSI := chem.AMU2Kg * 1e-20     //amu A^2 to kg m^2
	switch {
	case mol.Len() == 1:
		//atoms do not rotate
	case vib.Symmetry.Linear:
		i := moments[2] * toSI
		qRot := 8 * math.Pi * math.Pi * i * chem.KB * temperature / (sigma * chem.Planck * chem.Planck)
		sRot = chem.KBeV * (math.Log(qRot) + 1)
		eRot = kT
	default:
		ia, ib, ic := moments[0]*toSI, moments[1]*toSI, moments[2]*toSI
		pref := 8 * math.Pi * math.Pi * chem.KB * temperature / (chem.Planck * chem.Planck)
		qRot := math.Sqrt(math.Pi*ia*ib*ic) / sigma * math.Pow(pref, 1.5)
		sRot = chem.KBeV * (math.Log(qRot) + 1.5)
		eRot = 1.5 * kT
	}

	//vibration, real modes only
	var sVib, eVib float64
	for _, f := range vib.Frequencies {
		if f <= 0 {
			continue
		}
		hv := chem.InvCm2eV * f
		x := hv / kT
		eVib += hv / (math.Exp(x) - 1)
		sVib += chem.KBeV * (x/(math.Exp(x)-1) - math.Log(1-math.Exp(-x)))
	}

	//electronic
	sElec := chem.KBeV * math.Log(float64(mol.Multi()))

	zpe := vib.ZPE()
	enthalpy := energy + zpe + eTrans + eRot + eVib + kT
	entropy := sTrans + sRot + sVib + sElec
	return &Thermo{
		Temperature: temperature,
		Pressure:    pressure,
		Energy:      energy,
		ZPE:         zpe,
		Enthalpy:    enthalpy,
		Entropy:     entropy,
		Gibbs:       enthalpy - temperature*entropy,
	}, nil
}
