/*
 * gaussian.go, part of chemrun.
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

//Package gaussian holds the single-shot recipes for the external Gaussian
//calculator: each job fetches a molecule, merges its parameter defaults
//with the caller's swaps, runs the program in a scratch directory, and
//summarizes the log into a JobResult.
package gaussian

import (
	"runtime"

	chem "github.com/emoreno/chemrun"
	"github.com/emoreno/chemrun/calc"
	"github.com/emoreno/chemrun/runner"
	"github.com/emoreno/chemrun/summarize"
)

// Options are the optional knobs shared by all Gaussian recipes. The zero
// value works: wb97x-d/def2-tzvp, no swaps, default settings.
type Options struct {
	XC        string      //exchange-correlation functional, default wb97x-d
	Basis     string      //basis set, default def2-tzvp
	Swaps     calc.Params //overrides merged onto the job defaults
	CopyFiles []string    //extra files placed in the scratch directory
	Settings  *chem.Settings
	Fields    map[string]any //caller metadata, stored verbatim in the result
}

func (o *Options) orDefault() *Options {
	d := &Options{XC: "wb97x-d", Basis: "def2-tzvp"}
	if o == nil {
		return d
	}
	out := *o
	if out.XC == "" {
		out.XC = d.XC
	}
	if out.Basis == "" {
		out.Basis = d.Basis
	}
	return &out
}

// StaticJob runs a single-point calculation. The input geometry is returned
// untouched in the result.
func StaticJob(input any, charge, multi int, o *Options) (*summarize.JobResult, error) {
	op := o.orDefault()
	defaults := calc.Params{
		"mem":         "16GB",
		"chk":         "Gaussian.chk",
		"nprocshared": runtime.NumCPU(),
		"xc":          op.XC,
		"basis":       op.Basis,
		"sp":          "",
		"scf":         []string{"maxcycle=250", "xqc"},
		"integral":    "ultrafine",
		"nosymmetry":  "",
		"pop":         "CM5",
		"gfinput":     "",
		"ioplist":     []string{"6/7=3", "2/9=2000"},
	}
	return baseJob(input, charge, multi, defaults, op, "Gaussian Static")
}

// RelaxJob runs a geometry optimization. With freq set, a harmonic
// frequency calculation is appended to the same input; its absence is
// expressed by removing the "freq" key so an override table shows the full
// parameter shape.
func RelaxJob(input any, charge, multi int, freq bool, o *Options) (*summarize.JobResult, error) {
	op := o.orDefault()
	var freqVal any = calc.Remove
	if freq {
		freqVal = ""
	}
	defaults := calc.Params{
		"mem":         "16GB",
		"chk":         "Gaussian.chk",
		"nprocshared": runtime.NumCPU(),
		"xc":          op.XC,
		"basis":       op.Basis,
		"opt":         "",
		"pop":         "CM5",
		"scf":         []string{"maxcycle=250", "xqc"},
		"integral":    "ultrafine",
		"nosymmetry":  "",
		"freq":        freqVal,
		"ioplist":     []string{"2/9=2000"},
	}
	return baseJob(input, charge, multi, defaults, op, "Gaussian Relax")
}

func baseJob(input any, charge, multi int, defaults calc.Params, op *Options, name string) (*summarize.JobResult, error) {
	mol, err := summarize.FetchMolecule(input)
	if err != nil {
		return nil, err
	}
	settings := op.Settings.OrDefault()
	config := calc.Config{
		Params: calc.Merge(defaults, op.Swaps),
		Charge: charge,
		Multi:  multi,
	}
	g, err := calc.NewGaussian(config, settings.GaussianCommand)
	if err != nil {
		return nil, err
	}
	job, err := runner.Run(g, mol, settings, op.CopyFiles...)
	if err != nil {
		return nil, err
	}
	result, err := summarize.Calculation(mol, g, job.Dir, name, op.Fields)
	if err != nil {
		//keep the directory so the offending log can be inspected
		return nil, err
	}
	job.Clean()
	result.Charge = charge
	result.SpinMultiplicity = multi
	result.Atoms.SetCharge(charge)
	result.Atoms.SetMulti(multi)
	return result, nil
}
