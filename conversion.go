/*
 * conversion.go, part of chemrun.
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

//This provides useful conversion factors and physical constants.

//Conversions
const (
	Deg2Rad = 0.0174533
	Rad2Deg = 1 / 0.0174533
	H2eV    = 27.211386245988 //Hartree to eV
	EV2H    = 1 / 27.211386245988
	A2Bohr  = 1.889725989
	Bohr2A  = 1 / 1.889725989
)

//Physical constants, SI unless noted.
const (
	KB       = 1.380649e-23      //Boltzmann constant, J/K
	KBeV     = 8.617333262e-5    //Boltzmann constant, eV/K
	Planck   = 6.62607015e-34    //Planck constant, J s
	PlanckeV = 4.135667696e-15   //Planck constant, eV s
	CLight   = 2.99792458e10     //speed of light, cm/s
	EV2J     = 1.602176634e-19   //eV to Joule
	AMU2Kg   = 1.66053906892e-27 //atomic mass unit to kg
	Atm2Pa   = 101325.0          //standard atmosphere, Pa
)

// InvCm2eV converts a wavenumber in cm^-1 to a photon energy in eV.
const InvCm2eV = PlanckeV * CLight
