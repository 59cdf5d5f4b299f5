/*
 * models.go, part of chemrun.
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

package ffield

import (
	chem "github.com/emoreno/chemrun"
)

//Ready-made models for the canned molecules in the root package. Their
//equilibrium parameters are measured from the canned geometries, so those
//geometries are exact stationary points of the corresponding model. They
//are used by the test suites and work as small examples of model building.

// WaterModel is a two-bond, one-angle harmonic model of H2O whose minimum is
// exactly the canned "H2O" geometry.
func WaterModel() *ForceField {
	mol, err := chem.BuildMolecule("H2O")
	if err != nil {
		panic(err)
	}
	c := mol.Coords()
	r0 := Distance(c, 0, 1)
	theta0 := AngleBetween(c, 1, 0, 2)
	ff, err := New("water-harmonic", 3,
		Bond{I: 0, J: 1, K: 30.0, R0: r0},
		Bond{I: 0, J: 2, K: 30.0, R0: r0},
		Angle{I: 1, J: 0, K: 2, KTheta: 3.0, Theta0Rad: theta0},
	)
	if err != nil {
		panic(err)
	}
	return ff
}

// MethylModel is a model of the methyl radical whose planar canned "CH3"
// geometry is a first-order saddle point: the umbrella term has negative
// curvature there, between two pyramidal minima.
func MethylModel() *ForceField {
	mol, err := chem.BuildMolecule("CH3")
	if err != nil {
		panic(err)
	}
	c := mol.Coords()
	r0 := Distance(c, 0, 1)
	theta0 := AngleBetween(c, 1, 0, 2)
	ff, err := New("methyl-umbrella", 4,
		Bond{I: 0, J: 1, K: 28.0, R0: r0},
		Bond{I: 0, J: 2, K: 28.0, R0: r0},
		Bond{I: 0, J: 3, K: 28.0, R0: r0},
		Angle{I: 1, J: 0, K: 2, KTheta: 2.5, Theta0Rad: theta0},
		Angle{I: 2, J: 0, K: 3, KTheta: 2.5, Theta0Rad: theta0},
		Angle{I: 3, J: 0, K: 1, KTheta: 2.5, Theta0Rad: theta0},
		OutOfPlane{C: 0, P1: 1, P2: 2, P3: 3, K2: -4.0, K4: 40.0},
	)
	if err != nil {
		panic(err)
	}
	return ff
}

// HFDoubleWell is a diatomic with two minima of different depth along the
// bond, a textbook asymmetric reaction path: a short bond around R1, a long
// one around R2 and a barrier in between. The canned "HF" geometry sits near
// the short-bond well.
func HFDoubleWell() *ForceField {
	ff, err := New("hf-doublewell", 2,
		DoubleWell{I: 0, J: 1, A: 40.0, R1: 0.92, R2: 1.45, Tilt: -0.6},
	)
	if err != nil {
		panic(err)
	}
	return ff
}
