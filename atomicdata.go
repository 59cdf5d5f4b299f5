/*
 * atomicdata.go, part of chemrun.
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

//A map for assigning mass (in amu) to elements.
//Note that just the common light elements plus a few
//metals are present.
var symbolMass = map[string]float64{
	"H":  1.008,
	"He": 4.0026,
	"Li": 6.94,
	"Be": 9.012,
	"B":  10.81,
	"C":  12.011,
	"N":  14.007,
	"O":  15.999,
	"F":  18.998,
	"Ne": 20.18,
	"Na": 22.99,
	"Mg": 24.30,
	"Si": 28.08,
	"P":  30.97,
	"S":  32.06,
	"Cl": 35.45,
	"Ar": 39.95,
	"K":  39.1,
	"Ca": 40.08,
	"Fe": 55.84,
	"Cu": 63.55,
	"Zn": 65.38,
	"Br": 79.904,
	"I":  126.90,
}

//A map for assigning atomic numbers to elements, behind the AtomicNumber
//and SymbolOf lookups.
var symbolNumber = map[string]int{
	"H":  1,
	"He": 2,
	"Li": 3,
	"Be": 4,
	"B":  5,
	"C":  6,
	"N":  7,
	"O":  8,
	"F":  9,
	"Ne": 10,
	"Na": 11,
	"Mg": 12,
	"Si": 14,
	"P":  15,
	"S":  16,
	"Cl": 17,
	"Ar": 18,
	"K":  19,
	"Ca": 20,
	"Fe": 26,
	"Cu": 29,
	"Zn": 30,
	"Br": 35,
	"I":  53,
}

// MassOf returns the mass of an element in amu, or 0 for unknown symbols.
func MassOf(symbol string) float64 {
	return symbolMass[symbol]
}

// AtomicNumber returns the atomic number of an element, or 0 for unknown
// symbols.
func AtomicNumber(symbol string) int {
	return symbolNumber[symbol]
}

var numberSymbol = func() map[int]string {
	m := make(map[int]string, len(symbolNumber))
	for s, z := range symbolNumber {
		m[z] = s
	}
	return m
}()

// SymbolOf returns the element symbol for an atomic number, or the empty
// string if the element is not known to the package.
func SymbolOf(z int) string {
	return numberSymbol[z]
}
