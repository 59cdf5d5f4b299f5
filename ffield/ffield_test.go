/*
 * ffield_test.go, part of chemrun.
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
	"math"
	"os"
	"path/filepath"
	"testing"

	chem "github.com/emoreno/chemrun"
	"gonum.org/v1/gonum/mat"
)

func coords(vals ...float64) *mat.Dense {
	return mat.NewDense(len(vals)/3, 3, vals)
}

func TestGeometryHelpers(t *testing.T) {
	//right angle at the origin, unit arms
	c := coords(
		1, 0, 0,
		0, 0, 0,
		0, 1, 0,
		0, 0, 1,
	)
	if d := Distance(c, 0, 1); math.Abs(d-1) > 1e-12 {
		t.Errorf("Distance: got %v, want 1", d)
	}
	if a := AngleBetween(c, 0, 1, 2); math.Abs(a-math.Pi/2) > 1e-12 {
		t.Errorf("AngleBetween: got %v, want pi/2", a)
	}
	//atom 3 sits one Angstrom above the xy plane of atoms 0,1,2
	if d := PlaneDistance(c, 3, 1, 0, 2); math.Abs(math.Abs(d)-1) > 1e-12 {
		t.Errorf("PlaneDistance: got %v, want +-1", d)
	}
	//degenerate plane
	flat := coords(
		0, 0, 1,
		0, 0, 0,
		1, 0, 0,
		2, 0, 0,
	)
	if d := PlaneDistance(flat, 0, 1, 2, 3); d != 0 {
		t.Errorf("PlaneDistance on collinear plane atoms: got %v, want 0", d)
	}
}

func TestTermEnergies(t *testing.T) {
	c := coords(
		0, 0, 0,
		1.2, 0, 0,
	)
	b := Bond{I: 0, J: 1, K: 2.0, R0: 1.0}
	if e, want := b.Energy(c), 0.5*2.0*0.2*0.2; math.Abs(e-want) > 1e-12 {
		t.Errorf("Bond: got %v, want %v", e, want)
	}
	m := Morse{I: 0, J: 1, De: 4.0, A: 1.5, R0: 1.0}
	x := 1 - math.Exp(-1.5*0.2)
	if e, want := m.Energy(c), 4.0*x*x; math.Abs(e-want) > 1e-12 {
		t.Errorf("Morse: got %v, want %v", e, want)
	}
	dw := DoubleWell{I: 0, J: 1, A: 40, R1: 0.92, R2: 1.45, Tilt: -0.6}
	u, v := 1.2-0.92, 1.2-1.45
	if e, want := dw.Energy(c), 40*u*u*v*v-0.6*u; math.Abs(e-want) > 1e-12 {
		t.Errorf("DoubleWell: got %v, want %v", e, want)
	}
	c3 := coords(
		1, 0, 0,
		0, 0, 0,
		0, 1, 0,
	)
	a := Angle{I: 0, J: 1, K: 2, KTheta: 3.0, Theta0Rad: math.Pi / 3}
	dt := math.Pi/2 - math.Pi/3
	if e, want := a.Energy(c3), 0.5*3.0*dt*dt; math.Abs(e-want) > 1e-12 {
		t.Errorf("Angle: got %v, want %v", e, want)
	}
	c4 := coords(
		0, 0, 0.1,
		1, 0, 0,
		-0.5, 0.866, 0,
		-0.5, -0.866, 0,
	)
	oop := OutOfPlane{C: 0, P1: 1, P2: 2, P3: 3, K2: -4, K4: 40}
	if e, want := oop.Energy(c4), -4*0.01+40*1e-4; math.Abs(e-want) > 1e-9 {
		t.Errorf("OutOfPlane: got %v, want %v", e, want)
	}
}

func TestNewRejectsBadAtomIndex(t *testing.T) {
	_, err := New("broken", 2, Bond{I: 0, J: 2, K: 1, R0: 1})
	if err == nil {
		t.Error("expected an error for a term referencing atom 2 of a 2-atom model")
	}
}

func TestEnergyWrongAtomCount(t *testing.T) {
	ff := WaterModel()
	_, err := ff.Energy([]string{"H", "F"}, coords(0, 0, 0, 0, 0, 0.9))
	if err == nil {
		t.Error("expected an error for 2 atoms on a 3-atom model")
	}
}

//canned geometries are exact stationary points of the ready-made models.
func TestModelStationaryPoints(t *testing.T) {
	water, _ := chem.BuildMolecule("H2O")
	ff := WaterModel()
	e, err := ff.Energy(water.Symbols(), water.Coords())
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(e) > 1e-10 {
		t.Errorf("water model energy at its minimum: got %v, want 0", e)
	}
	bent := water.Copy()
	bent.Coords().Set(1, 1, bent.Coords().At(1, 1)+0.1)
	if eb, _ := ff.Energy(bent.Symbols(), bent.Coords()); eb <= e {
		t.Errorf("displaced water should be uphill: %v vs %v", eb, e)
	}

	methyl, _ := chem.BuildMolecule("CH3")
	um := MethylModel()
	ep, err := um.Energy(methyl.Symbols(), methyl.Coords())
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(ep) > 1e-10 {
		t.Errorf("planar methyl energy: got %v, want 0", ep)
	}
	//pushing the carbon out of plane goes downhill: the planar
	//arrangement is a saddle, not a minimum
	pyr := methyl.Copy()
	pyr.Coords().Set(0, 2, 0.05)
	if ed, _ := um.Energy(pyr.Symbols(), pyr.Coords()); ed >= ep {
		t.Errorf("pyramidalized methyl should be downhill: %v vs %v", ed, ep)
	}

	hf := HFDoubleWell()
	sym := []string{"H", "F"}
	short, _ := hf.Energy(sym, coords(0, 0, 0, 0, 0, 0.92))
	long, _ := hf.Energy(sym, coords(0, 0, 0, 0, 0, 1.45))
	mid, _ := hf.Energy(sym, coords(0, 0, 0, 0, 0, 1.131))
	if long >= short {
		t.Errorf("long-bond well should be deeper: %v vs %v", long, short)
	}
	if mid <= short || mid <= long {
		t.Errorf("no barrier between the wells: %v, %v, %v", short, mid, long)
	}
}

func TestLoadModel(t *testing.T) {
	model := `name: hf-doublewell
natoms: 2
terms:
  - type: doublewell
    atoms: [0, 1]
    a: 40.0
    r1: 0.92
    r2: 1.45
    tilt: -0.6
`
	path := filepath.Join(t.TempDir(), "model.yaml")
	if err := os.WriteFile(path, []byte(model), 0o644); err != nil {
		t.Fatal(err)
	}
	ff, err := LoadModel(path)
	if err != nil {
		t.Fatal(err)
	}
	if ff.Name() != "hf-doublewell" {
		t.Errorf("model name: got %q", ff.Name())
	}
	sym := []string{"H", "F"}
	c := coords(0, 0, 0, 0, 0, 1.2)
	got, err := ff.Energy(sym, c)
	if err != nil {
		t.Fatal(err)
	}
	want, err := HFDoubleWell().Energy(sym, c)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("loaded model disagrees with the built-in one: %v vs %v", got, want)
	}
}

func TestLoadModelErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadModel(filepath.Join(dir, "absent.yaml")); err == nil {
		t.Error("expected an error for a missing model file")
	}
	for name, text := range map[string]string{
		"notyaml.yaml": "{{{",
		"badterm.yaml": "name: x\nnatoms: 2\nterms:\n  - type: wobble\n    atoms: [0, 1]\n",
		"short.yaml":   "name: x\nnatoms: 2\nterms:\n  - type: bond\n    atoms: [0]\n",
		"range.yaml":   "name: x\nnatoms: 2\nterms:\n  - type: bond\n    atoms: [0, 5]\n    k: 1\n    r0: 1\n",
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadModel(path); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}
