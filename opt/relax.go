/*
 * relax.go, part of chemrun.
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

//Package opt moves atoms: geometry relaxation on top of gonum/optimize,
//Newton refinement of first-order saddle points, and (quasi-)IRC descent
//from a transition state. Everything here works on a copy of the input
//molecule; the caller's coordinates are never modified.
package opt

import (
	"log"

	chem "github.com/emoreno/chemrun"
	"github.com/emoreno/chemrun/calc"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// Step is one recorded point of an optimization or path calculation.
type Step struct {
	Coords *mat.Dense
	Energy float64
}

// Path is the sequence of recorded steps, first to last.
type Path []Step

// Energies returns the energy profile of the path.
func (p Path) Energies() []float64 {
	es := make([]float64, len(p))
	for i, s := range p {
		es[i] = s.Energy
	}
	return es
}

// RelaxOptions controls Relax. Zero values mean the defaults.
type RelaxOptions struct {
	FMax     float64 //largest per-atom force norm at convergence, default 0.01 eV/A
	MaxSteps int     //major iterations, default 200
}

func (o *RelaxOptions) defaults() RelaxOptions {
	d := RelaxOptions{FMax: 0.01, MaxSteps: 200}
	if o == nil {
		return d
	}
	if o.FMax > 0 {
		d.FMax = o.FMax
	}
	if o.MaxSteps > 0 {
		d.MaxSteps = o.MaxSteps
	}
	return d
}

// RelaxResult is the outcome of a relaxation.
type RelaxResult struct {
	Mol       *chem.Molecule
	Res       *chem.Results
	Path      Path
	Converged bool
}

//pathRecorder collects the geometry after every major iteration of a gonum
//minimization.
type pathRecorder struct {
	natoms int
	path   Path
}

func (r *pathRecorder) Init() error { return nil }

func (r *pathRecorder) Record(loc *optimize.Location, op optimize.Operation, _ *optimize.Stats) error {
	if op != optimize.MajorIteration || loc == nil {
		return nil
	}
	c := mat.NewDense(r.natoms, 3, append([]float64{}, loc.X...))
	r.path = append(r.path, Step{Coords: c, Energy: loc.F})
	return nil
}

// Relax minimizes the potential energy of mol with LBFGS, starting from a
// copy of its geometry. The returned molecule carries the relaxed
// coordinates; Res holds the final energy and forces. Convergence is judged
// by the largest per-atom force norm, not by the optimizer's own criterion.
func Relax(pot calc.Potential, mol *chem.Molecule, o *RelaxOptions) (*RelaxResult, error) {
	op := o.defaults()
	out := mol.Copy()
	symbols := out.Symbols()
	n := out.Len()
	x0 := make([]float64, 3*n)
	copy(x0, out.Coords().RawMatrix().Data)

	var evalErr error
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			e, err := pot.Energy(symbols, mat.NewDense(n, 3, x))
			if err != nil {
				evalErr = err
			}
			return e
		},
		Grad: func(grad, x []float64) {
			g, err := calc.Gradient(pot, symbols, mat.NewDense(n, 3, x))
			if err != nil {
				evalErr = err
				return
			}
			copy(grad, g.RawMatrix().Data)
		},
	}
	rec := &pathRecorder{natoms: n}
	settings := optimize.Settings{
		MajorIterations:   op.MaxSteps,
		GradientThreshold: op.FMax / 2,
		Recorder:          rec,
	}
	result, err := optimize.Minimize(problem, x0, &settings, &optimize.LBFGS{})
	if evalErr != nil {
		return nil, chem.NewError(chem.ErrCalculation, "relax", "", evalErr.Error())
	}
	if err != nil {
		if result == nil {
			return nil, chem.NewError(chem.ErrCalculation, "relax", "", err.Error())
		}
		//the optimizer gave up (iteration limit, flat surface) but still
		//produced a point; convergence is re-judged from real forces below.
		log.Printf("optimizer stopped early (%v), status %v", err, result.Status)
	}
	out.SetCoords(mat.NewDense(n, 3, append([]float64{}, result.X...)))
	forces, err := calc.Forces(pot, symbols, out.Coords())
	if err != nil {
		return nil, chem.NewError(chem.ErrCalculation, "relax", "", err.Error())
	}
	energy, err := pot.Energy(symbols, out.Coords())
	if err != nil {
		return nil, chem.NewError(chem.ErrCalculation, "relax", "", err.Error())
	}
	res := &chem.Results{Energy: energy, Forces: forces}
	return &RelaxResult{
		Mol:       out,
		Res:       res,
		Path:      append(rec.path, Step{Coords: mat.DenseCopyOf(out.Coords()), Energy: energy}),
		Converged: chem.MaxForce(forces) <= op.FMax,
	}, nil
}
