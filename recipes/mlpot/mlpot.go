/*
 * mlpot.go, part of chemrun.
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

//Package mlpot holds the recipes for in-process potentials: single points,
//relaxations, harmonic frequencies with thermochemistry, transition-state
//refinement and (quasi-)IRC path following. The potential is either given
//directly or loaded from Settings.ModelPath.
package mlpot

import (
	chem "github.com/emoreno/chemrun"
	"github.com/emoreno/chemrun/calc"
	"github.com/emoreno/chemrun/ffield"
	"github.com/emoreno/chemrun/opt"
	"github.com/emoreno/chemrun/runner"
	"github.com/emoreno/chemrun/summarize"
	"github.com/emoreno/chemrun/traj"
)

// Options are the shared optional knobs of the potential recipes. The zero
// value works when Settings carries a model path.
type Options struct {
	Potential calc.Potential //nil means load Settings.ModelPath
	Swaps     calc.Params    //extra calculator parameters

	FMax     float64 //relaxation force threshold, default 0.01 eV/A
	MaxSteps int     //optimizer iteration cap

	Temperature float64 //thermochemistry, default 298.15 K
	Pressure    float64 //thermochemistry, default 1 atm (Pa)

	TrajPath string //write the optimization/IRC path here when non-empty

	Settings *chem.Settings
	Fields   map[string]any
}

func (o *Options) orEmpty() *Options {
	if o == nil {
		return &Options{}
	}
	return o
}

//potential resolves the potential for a job: explicit one first, then the
//model file named in the settings.
func potential(o *Options) (calc.Potential, error) {
	if o.Potential != nil {
		return o.Potential, nil
	}
	s := o.Settings.OrDefault()
	if s.ModelPath == "" {
		return nil, chem.NewError(chem.ErrConfiguration, calc.NativeLabel, "",
			"no potential given and no model path configured")
	}
	ff, err := ffield.LoadModel(s.ModelPath)
	if err != nil {
		return nil, chem.NewError(chem.ErrConfiguration, calc.NativeLabel, s.ModelPath, err.Error())
	}
	return ff, nil
}

//result assembles the common JobResult envelope.
func result(mol *chem.Molecule, res *chem.Results, name string, o *Options) *summarize.JobResult {
	var fields map[string]any
	if o.Fields != nil {
		fields = make(map[string]any, len(o.Fields))
		for k, v := range o.Fields {
			fields[k] = v
		}
	}
	return &summarize.JobResult{
		Atoms:            mol,
		Results:          res,
		NAtoms:           mol.Len(),
		Charge:           mol.Charge(),
		SpinMultiplicity: mol.Multi(),
		Name:             name,
		Fields:           fields,
	}
}

//writePath dumps a recorded path as a compressed trajectory when the
//options ask for one.
func writePath(path opt.Path, symbols []string, o *Options) error {
	if o.TrajPath == "" || len(path) == 0 {
		return nil
	}
	w, err := traj.NewWriter(o.TrajPath, symbols)
	if err != nil {
		return err
	}
	for _, s := range path {
		if err := w.WNext(s.Coords, s.Energy); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}

// StaticJob evaluates energy and forces at the input geometry, which is
// returned untouched.
func StaticJob(input any, o *Options) (*summarize.JobResult, error) {
	op := o.orEmpty()
	mol, err := summarize.FetchMolecule(input)
	if err != nil {
		return nil, err
	}
	pot, err := potential(op)
	if err != nil {
		return nil, err
	}
	config := calc.Config{
		Params: calc.Merge(nil, op.Swaps),
		Charge: mol.Charge(),
		Multi:  mol.Multi(),
	}
	n, err := calc.NewNative(pot, config)
	if err != nil {
		return nil, err
	}
	settings := op.Settings.OrDefault()
	job, err := runner.Run(n, mol, settings)
	if err != nil {
		return nil, err
	}
	defer job.Clean()
	out, err := summarize.Calculation(mol, n, job.Dir, "Potential Static", op.Fields)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RelaxJob minimizes the geometry. When Settings.CheckConvergence is on, a
// relaxation that does not reach FMax within MaxSteps is an
// ErrCalculation. The optimization path can be recorded with TrajPath.
func RelaxJob(input any, o *Options) (*summarize.JobResult, error) {
	op := o.orEmpty()
	mol, err := summarize.FetchMolecule(input)
	if err != nil {
		return nil, err
	}
	pot, err := potential(op)
	if err != nil {
		return nil, err
	}
	r, err := opt.Relax(pot, mol, &opt.RelaxOptions{FMax: op.FMax, MaxSteps: op.MaxSteps})
	if err != nil {
		return nil, err
	}
	if op.Settings.OrDefault().CheckConvergence && !r.Converged {
		return nil, chem.NewError(chem.ErrCalculation, calc.NativeLabel, "",
			"relaxation did not converge")
	}
	if err := writePath(r.Path, mol.Symbols(), op); err != nil {
		return nil, err
	}
	return result(r.Mol, r.Res, "Potential Relax", op), nil
}

// FreqJob computes harmonic frequencies from the potential's Hessian at the
// input geometry, plus ideal-gas thermochemistry at Temperature and
// Pressure.
func FreqJob(input any, o *Options) (*summarize.JobResult, error) {
	op := o.orEmpty()
	mol, err := summarize.FetchMolecule(input)
	if err != nil {
		return nil, err
	}
	pot, err := potential(op)
	if err != nil {
		return nil, err
	}
	energy, err := pot.Energy(mol.Symbols(), mol.Coords())
	if err != nil {
		return nil, chem.NewError(chem.ErrCalculation, calc.NativeLabel, "", err.Error())
	}
	hess, err := calc.Hessian(pot, mol.Symbols(), mol.Coords())
	if err != nil {
		return nil, err
	}
	vib, err := summarize.Frequencies(mol, hess)
	if err != nil {
		return nil, err
	}
	thermo, err := summarize.IdealGasThermo(mol, vib, energy, op.Temperature, op.Pressure)
	if err != nil {
		return nil, err
	}
	out := result(mol.Copy(), &chem.Results{Energy: energy, Hessian: hess}, "Potential Frequencies", op)
	out.Vib = vib
	out.Thermo = thermo
	return out, nil
}

// TSJob refines the input geometry to the nearest stationary point by
// Newton steps and nests a full frequency job at the refined geometry.
// With useCustomHessian set, the potential must provide its own Hessian
// (calc.HessianProvider); finite differences otherwise.
func TSJob(input any, useCustomHessian bool, o *Options) (*summarize.JobResult, error) {
	op := o.orEmpty()
	mol, err := summarize.FetchMolecule(input)
	if err != nil {
		return nil, err
	}
	pot, err := potential(op)
	if err != nil {
		return nil, err
	}
	if useCustomHessian {
		if _, ok := pot.(calc.HessianProvider); !ok {
			return nil, chem.NewError(chem.ErrConfiguration, calc.NativeLabel, "",
				"potential does not provide its own Hessian")
		}
	}
	r, err := opt.Saddle(pot, mol, &opt.SaddleOptions{FMax: op.FMax, MaxSteps: op.MaxSteps})
	if err != nil {
		return nil, err
	}
	if op.Settings.OrDefault().CheckConvergence && !r.Converged {
		return nil, chem.NewError(chem.ErrCalculation, calc.NativeLabel, "",
			"saddle search did not converge")
	}
	out := result(r.Mol, r.Res, "Potential TS", op)
	freq, err := FreqJob(r.Mol, op)
	if err != nil {
		return nil, err
	}
	out.FreqJob = freq
	return out, nil
}

// IRCJob displaces the input transition state along its imaginary mode in
// the given direction ("forward" or "reverse") and follows the path
// downhill. A frequency job at the endpoint is nested in the result, and
// the path can be recorded with TrajPath.
func IRCJob(input any, direction string, o *Options) (*summarize.JobResult, error) {
	op := o.orEmpty()
	mol, err := summarize.FetchMolecule(input)
	if err != nil {
		return nil, err
	}
	pot, err := potential(op)
	if err != nil {
		return nil, err
	}
	r, err := opt.IRC(pot, mol, direction, &opt.IRCOptions{
		StepSize: 0, //defaults
		MaxSteps: op.MaxSteps,
		FMax:     op.FMax,
	})
	if err != nil {
		return nil, err
	}
	if err := writePath(r.Path, mol.Symbols(), op); err != nil {
		return nil, err
	}
	out := result(r.Mol, r.Res, "Potential IRC", op)
	freq, err := FreqJob(r.Mol, op)
	if err != nil {
		return nil, err
	}
	out.FreqJob = freq
	return out, nil
}

//quasiIRCSteps is the short initial descent of a quasi-IRC job.
const quasiIRCSteps = 10

// QuasiIRCJob approximates an IRC at a fraction of the cost: a short IRC
// run commits to one side of the barrier, a plain relaxation finds the
// nearest minimum from there, and a frequency job characterizes it. The
// short IRC and the frequency job are nested in the result.
func QuasiIRCJob(input any, direction string, o *Options) (*summarize.JobResult, error) {
	op := o.orEmpty()
	ircOp := *op
	ircOp.MaxSteps = quasiIRCSteps
	ircOp.TrajPath = "" //only the final relaxation path is recorded
	irc, err := IRCJob(input, direction, &ircOp)
	if err != nil {
		return nil, err
	}
	relaxed, err := RelaxJob(irc.Atoms, op)
	if err != nil {
		return nil, err
	}
	out := result(relaxed.Atoms, relaxed.Results, "Potential Quasi-IRC", op)
	out.IRCJob = irc
	freq, err := FreqJob(relaxed.Atoms, op)
	if err != nil {
		return nil, err
	}
	out.FreqJob = freq
	return out, nil
}
