/*
 * gaussian_test.go, part of chemrun.
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

package gaussian

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	chem "github.com/emoreno/chemrun"
	"github.com/emoreno/chemrun/calc"
)

//stubSettings makes the "Gaussian" command a cat of a canned log, so the
//whole pipeline runs without the real program.
func stubSettings(t *testing.T, fixture string) *chem.Settings {
	t.Helper()
	abs, err := filepath.Abs(filepath.Join("testdata", fixture))
	if err != nil {
		t.Fatal(err)
	}
	return &chem.Settings{
		GaussianCommand: "cat " + abs,
		ScratchDir:      t.TempDir(),
	}
}

func TestStaticJob(t *testing.T) {
	mol, err := chem.BuildMolecule("H2O")
	if err != nil {
		t.Fatal(err)
	}
	out, err := StaticJob(mol, 0, 1, &Options{Settings: stubSettings(t, "water_sp.log")})
	if err != nil {
		t.Fatal(err)
	}
	if out.NAtoms != 3 || out.Charge != 0 || out.SpinMultiplicity != 1 {
		t.Errorf("bad result header: %+v", out)
	}
	if out.Name != "Gaussian Static" {
		t.Errorf("job name %q", out.Name)
	}
	wantE := -76.4259871204 * chem.H2eV
	if math.Abs(out.Results.Energy-wantE) > 1e-6 {
		t.Errorf("energy %v, want %v", out.Results.Energy, wantE)
	}
	//single points return the input geometry untouched
	if !mol.EqualGeom(out.Atoms, 1e-8) {
		t.Error("static job moved the atoms")
	}
	if len(out.Results.Charges) != 3 {
		t.Errorf("charges not parsed: %v", out.Results.Charges)
	}
}

func TestRelaxJobMovesAtoms(t *testing.T) {
	mol, err := chem.BuildMolecule("H2O")
	if err != nil {
		t.Fatal(err)
	}
	out, err := RelaxJob(mol, 0, 1, false, &Options{Settings: stubSettings(t, "water_opt.log")})
	if err != nil {
		t.Fatal(err)
	}
	if out.Name != "Gaussian Relax" {
		t.Errorf("job name %q", out.Name)
	}
	//the optimized geometry from the log replaces the input one
	if mol.EqualGeom(out.Atoms, 1e-6) {
		t.Error("relax job did not update the geometry")
	}
	if got := out.Atoms.Coords().At(0, 2); math.Abs(got-0.117070) > 1e-6 {
		t.Errorf("final oxygen z %v, want 0.117070", got)
	}
	//last SCF energy wins
	wantE := -76.4260484128 * chem.H2eV
	if math.Abs(out.Results.Energy-wantE) > 1e-6 {
		t.Errorf("energy %v, want %v", out.Results.Energy, wantE)
	}
	if f := chem.MaxForce(out.Results.Forces); f > 0.01 {
		t.Errorf("final forces too large: %v", f)
	}
}

func TestRelaxJobFreqFlagShapesParams(t *testing.T) {
	//the freq key must be absent without the flag and a bare keyword with it
	var freqVal any = calc.Remove
	p := calc.Merge(calc.Params{"freq": freqVal, "opt": ""}, nil)
	if _, ok := p["freq"]; ok {
		t.Error("freq key present without the flag")
	}
	p = calc.Merge(calc.Params{"freq": "", "opt": ""}, nil)
	if v, ok := p["freq"]; !ok || v != "" {
		t.Error("freq keyword missing with the flag")
	}
}

func TestJobFailures(t *testing.T) {
	mol, err := chem.BuildMolecule("H2O")
	if err != nil {
		t.Fatal(err)
	}
	//a command that does not exist
	s := &chem.Settings{GaussianCommand: "/no/such/program", ScratchDir: t.TempDir()}
	if _, err := StaticJob(mol, 0, 1, &Options{Settings: s}); !errors.Is(err, chem.ErrCalculation) {
		t.Errorf("expected a calculation error for a bad command, got %v", err)
	}
	//a command that writes a truncated log
	abs, err := filepath.Abs(filepath.Join("testdata", "water_sp.log"))
	if err != nil {
		t.Fatal(err)
	}
	s = &chem.Settings{GaussianCommand: "head -c 400 " + abs, ScratchDir: t.TempDir()}
	if _, err := StaticJob(mol, 0, 1, &Options{Settings: s}); !errors.Is(err, chem.ErrParse) {
		t.Errorf("expected a parse error for a truncated log, got %v", err)
	}
	//nonsense multiplicity is rejected before anything runs
	if _, err := StaticJob(mol, 0, 0, nil); !errors.Is(err, chem.ErrConfiguration) {
		t.Errorf("expected a configuration error for multiplicity 0, got %v", err)
	}
	//non-molecule input
	if _, err := StaticJob("water", 0, 1, nil); !errors.Is(err, chem.ErrStructure) {
		t.Errorf("expected a structure error for a string input, got %v", err)
	}
}

func TestSwapsOverrideDefaults(t *testing.T) {
	mol, err := chem.BuildMolecule("H2O")
	if err != nil {
		t.Fatal(err)
	}
	out, err := StaticJob(mol, 0, 1, &Options{
		Settings: stubSettings(t, "water_sp.log"),
		XC:       "b3lyp",
		Basis:    "6-31g*",
		Swaps:    calc.Params{"pop": calc.Remove, "maxdisk": "32GB"},
		Fields:   map[string]any{"project": "umbrella"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Fields["project"] != "umbrella" {
		t.Errorf("additional fields not carried: %v", out.Fields)
	}
}
