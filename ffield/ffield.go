/*
 * ffield.go, part of chemrun.
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

//Package ffield provides analytic interatomic potentials assembled from
//additive geometric terms. A ForceField satisfies the calc.Potential
//interface and stands in for heavier in-process models (ML potentials)
//wherever the native calculator family is used. Models can be built in code
//or loaded from a YAML term list.
package ffield

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

// ForceField is a sum of terms over a fixed number of atoms.
type ForceField struct {
	name   string
	natoms int
	terms  []Term
}

// New builds a force field for natoms atoms. It fails if a term references
// an atom outside the molecule.
func New(name string, natoms int, terms ...Term) (*ForceField, error) {
	for _, t := range terms {
		if t.MaxAtom() >= natoms {
			return nil, fmt.Errorf("ffield %q: term references atom %d of a %d-atom model",
				name, t.MaxAtom(), natoms)
		}
	}
	return &ForceField{name: name, natoms: natoms, terms: terms}, nil
}

// Name returns the model name.
func (F *ForceField) Name() string {
	return F.name
}

// Energy returns the total energy in eV. The symbols are accepted for
// interface compatibility; term parameters already encode the atom types.
func (F *ForceField) Energy(symbols []string, coords *mat.Dense) (float64, error) {
	n, _ := coords.Dims()
	if n != F.natoms {
		return 0, fmt.Errorf("ffield %q: model has %d atoms, got coordinates for %d",
			F.name, F.natoms, n)
	}
	var e float64
	for _, t := range F.terms {
		e += t.Energy(coords)
	}
	return e, nil
}

//termSpec is the YAML form of a term. Fields are shared across types; which
//ones are read depends on Type. Angles are given in degrees in model files.
type termSpec struct {
	Type   string  `yaml:"type"`
	Atoms  []int   `yaml:"atoms"`
	K      float64 `yaml:"k"`
	R0     float64 `yaml:"r0"`
	De     float64 `yaml:"de"`
	A      float64 `yaml:"a"`
	Theta0 float64 `yaml:"theta0"`
	K2     float64 `yaml:"k2"`
	K4     float64 `yaml:"k4"`
	R1     float64 `yaml:"r1"`
	R2     float64 `yaml:"r2"`
	Tilt   float64 `yaml:"tilt"`
}

type modelSpec struct {
	Name   string     `yaml:"name"`
	Natoms int        `yaml:"natoms"`
	Terms  []termSpec `yaml:"terms"`
}

// LoadModel reads a force-field model from a YAML file (the file the
// Settings.ModelPath field points at).
func LoadModel(path string) (*ForceField, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ffield: %w", err)
	}
	var spec modelSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("ffield: bad model file %s: %w", path, err)
	}
	terms := make([]Term, 0, len(spec.Terms))
	for i, ts := range spec.Terms {
		t, err := termFromSpec(ts)
		if err != nil {
			return nil, fmt.Errorf("ffield: term %d of %s: %w", i, path, err)
		}
		terms = append(terms, t)
	}
	return New(spec.Name, spec.Natoms, terms...)
}
