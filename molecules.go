/*
 * molecules.go, part of chemrun.
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

import "fmt"

//Canned gas-phase geometries for a few small molecules, in Angstrom. These
//are convenience starting structures for tests and examples, not optimized
//for any particular potential.
var cannedMolecules = map[string]struct {
	symbols []string
	coords  []float64
	multi   int
}{
	"H2O": {
		symbols: []string{"O", "H", "H"},
		coords: []float64{
			0.000000, 0.000000, 0.119262,
			0.000000, 0.763239, -0.477047,
			0.000000, -0.763239, -0.477047,
		},
		multi: 1,
	},
	//planar methyl radical, D3h
	"CH3": {
		symbols: []string{"C", "H", "H", "H"},
		coords: []float64{
			0.000000, 0.000000, 0.000000,
			1.079000, 0.000000, 0.000000,
			-0.539500, 0.934442, 0.000000,
			-0.539500, -0.934442, 0.000000,
		},
		multi: 2,
	},
	"HF": {
		symbols: []string{"H", "F"},
		coords: []float64{
			0.000000, 0.000000, 0.000000,
			0.000000, 0.000000, 0.916800,
		},
		multi: 1,
	},
	"CO2": {
		symbols: []string{"C", "O", "O"},
		coords: []float64{
			0.000000, 0.000000, 0.000000,
			0.000000, 0.000000, 1.162100,
			0.000000, 0.000000, -1.162100,
		},
		multi: 1,
	},
}

// BuildMolecule returns a fresh copy of one of the canned molecules: "H2O",
// "CH3", "HF" or "CO2".
func BuildMolecule(name string) (*Molecule, error) {
	c, ok := cannedMolecules[name]
	if !ok {
		return nil, fmt.Errorf("chem.BuildMolecule: no canned geometry for %q", name)
	}
	mol, err := NewMolecule(c.symbols, c.coords)
	if err != nil {
		return nil, err
	}
	mol.SetMulti(c.multi)
	return mol, nil
}
