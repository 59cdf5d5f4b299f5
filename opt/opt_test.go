/*
 * opt_test.go, part of chemrun.
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

package opt

import (
	"errors"
	"math"
	"testing"

	chem "github.com/emoreno/chemrun"
	"github.com/emoreno/chemrun/ffield"
)

//distorted water: bond lengths and angle pushed off the model minimum.
func bentWater(t *testing.T) *chem.Molecule {
	t.Helper()
	mol, err := chem.BuildMolecule("H2O")
	if err != nil {
		t.Fatal(err)
	}
	c := mol.Coords()
	c.Set(1, 1, c.At(1, 1)+0.15)
	c.Set(2, 2, c.At(2, 2)-0.1)
	return mol
}

func TestRelaxWater(t *testing.T) {
	ff := ffield.WaterModel()
	mol := bentWater(t)
	startE, err := ff.Energy(mol.Symbols(), mol.Coords())
	if err != nil {
		t.Fatal(err)
	}
	res, err := Relax(ff, mol, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Converged {
		t.Fatalf("relaxation did not converge, max force %v", chem.MaxForce(res.Res.Forces))
	}
	if res.Res.Energy >= startE {
		t.Errorf("energy did not go down: %v -> %v", startE, res.Res.Energy)
	}
	//the model minimum is the canned geometry, energy zero
	if math.Abs(res.Res.Energy) > 1e-4 {
		t.Errorf("expected energy near 0 at the minimum, got %v", res.Res.Energy)
	}
	if f := chem.MaxForce(res.Res.Forces); f > 0.01 {
		t.Errorf("forces too large after relaxation: %v", f)
	}
	if len(res.Path) < 2 {
		t.Errorf("expected a recorded path, got %d steps", len(res.Path))
	}
	//input molecule untouched
	if mol.EqualGeom(res.Mol, 1e-8) {
		t.Error("relaxation modified the input molecule")
	}
}

//an exhausted step budget is not an error: the optimizer's stopping point
//is returned and convergence is judged from the real forces there.
func TestRelaxIterationLimit(t *testing.T) {
	ff := ffield.WaterModel()
	mol := bentWater(t)
	res, err := Relax(ff, mol, &RelaxOptions{MaxSteps: 1})
	if err != nil {
		t.Fatal(err)
	}
	if res.Converged {
		t.Error("one step from a distorted geometry should not converge")
	}
	if res.Mol == nil || res.Res == nil || res.Res.Forces == nil {
		t.Fatalf("incomplete result after early stop: %+v", res)
	}
}

func TestRelaxAlreadyConverged(t *testing.T) {
	ff := ffield.WaterModel()
	mol, err := chem.BuildMolecule("H2O")
	if err != nil {
		t.Fatal(err)
	}
	res, err := Relax(ff, mol, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Converged {
		t.Error("starting at the minimum should converge")
	}
	if !mol.EqualGeom(res.Mol, 1e-3) {
		t.Error("geometry moved away from the minimum")
	}
}

func TestSaddleMethyl(t *testing.T) {
	ff := ffield.MethylModel()
	mol, err := chem.BuildMolecule("CH3")
	if err != nil {
		t.Fatal(err)
	}
	//push the carbon slightly out of plane: still in the saddle's basin
	c := mol.Coords()
	c.Set(0, 2, 0.05)
	res, err := Saddle(ff, mol, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Converged {
		t.Fatalf("saddle search did not converge, max force %v", chem.MaxForce(res.Res.Forces))
	}
	//the planar geometry is the saddle; the carbon should come back to z=0
	if z := math.Abs(res.Mol.Coords().At(0, 2)); z > 1e-3 {
		t.Errorf("carbon did not return to the plane: z=%v", z)
	}
}

func TestIRCDirections(t *testing.T) {
	ff := ffield.HFDoubleWell()
	mol, err := chem.BuildMolecule("HF")
	if err != nil {
		t.Fatal(err)
	}
	//move F to the barrier top of the double well
	mol.Coords().Set(1, 2, 1.131)

	fwd, err := IRC(ff, mol, Forward, nil)
	if err != nil {
		t.Fatal(err)
	}
	rev, err := IRC(ff, mol, Reverse, nil)
	if err != nil {
		t.Fatal(err)
	}
	rf := fwd.Mol.Coords().At(1, 2) - fwd.Mol.Coords().At(0, 2)
	rr := rev.Mol.Coords().At(1, 2) - rev.Mol.Coords().At(0, 2)
	if math.Abs(rf-rr) < 0.1 {
		t.Fatalf("forward and reverse ended in the same well: r=%v and r=%v", rf, rr)
	}
	for _, r := range []*IRCResult{fwd, rev} {
		top := r.Path[0].Energy
		end := r.Path[len(r.Path)-1].Energy
		if end >= top {
			t.Errorf("%s IRC did not go downhill: %v -> %v", r.Direction, top, end)
		}
	}
	//determinism: a second forward run lands in the same well
	fwd2, err := IRC(ff, mol, Forward, nil)
	if err != nil {
		t.Fatal(err)
	}
	rf2 := fwd2.Mol.Coords().At(1, 2) - fwd2.Mol.Coords().At(0, 2)
	if math.Abs(rf-rf2) > 1e-6 {
		t.Errorf("forward IRC is not deterministic: r=%v vs r=%v", rf, rf2)
	}
}

func TestIRCBadDirection(t *testing.T) {
	ff := ffield.HFDoubleWell()
	mol, err := chem.BuildMolecule("HF")
	if err != nil {
		t.Fatal(err)
	}
	_, err = IRC(ff, mol, "sideways", nil)
	if !errors.Is(err, chem.ErrConfiguration) {
		t.Errorf("expected a configuration error, got %v", err)
	}
}

func TestIRCNoImaginaryMode(t *testing.T) {
	ff := ffield.WaterModel()
	mol, err := chem.BuildMolecule("H2O")
	if err != nil {
		t.Fatal(err)
	}
	_, err = IRC(ff, mol, Forward, nil)
	if !errors.Is(err, chem.ErrStructure) {
		t.Errorf("expected a structure error at a minimum, got %v", err)
	}
}

func TestPathEnergies(t *testing.T) {
	p := Path{{Energy: 1.0}, {Energy: 0.5}, {Energy: 0.2}}
	es := p.Energies()
	if len(es) != 3 || es[0] != 1.0 || es[2] != 0.2 {
		t.Errorf("bad energy profile: %v", es)
	}
}
