/*
 * summarize.go, part of chemrun.
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

//Package summarize turns the raw output of a calculation into a uniform,
//JSON-serializable JobResult. How the output is obtained depends on the
//calculator: calculators that leave a log file are summarized by parsing
//it, calculators that keep results in memory are summarized directly.
package summarize

import (
	"path/filepath"

	chem "github.com/emoreno/chemrun"
)

// JobResult is the uniform document every recipe returns. The fixed fields
// are always filled; the nested blocks only appear for the job kinds that
// produce them. Treat a returned JobResult as read-only.
type JobResult struct {
	Atoms            *chem.Molecule `json:"atoms"`
	Results          *chem.Results  `json:"results"`
	NAtoms           int            `json:"natoms"`
	Charge           int            `json:"charge"`
	SpinMultiplicity int            `json:"spin_multiplicity"`
	Name             string         `json:"name,omitempty"`
	Dir              string         `json:"dir_name,omitempty"`

	//extra caller-provided metadata, stored verbatim. Never overwrites
	//the computed fields above.
	Fields map[string]any `json:"additional_fields,omitempty"`

	Vib     *Vib       `json:"vib,omitempty"`
	Thermo  *Thermo    `json:"thermo,omitempty"`
	FreqJob *JobResult `json:"freq_job,omitempty"`
	IRCJob  *JobResult `json:"irc_job,omitempty"`
}

// FetchMolecule extracts a molecule from the values recipes accept as
// input: a *chem.Molecule is returned as-is (same pointer), a *JobResult
// yields its Atoms, and a map with an "atoms" key yields that entry.
// Anything else is an ErrStructure.
func FetchMolecule(v any) (*chem.Molecule, error) {
	switch m := v.(type) {
	case *chem.Molecule:
		if m == nil {
			return nil, chem.NewError(chem.ErrStructure, "summarize", "", "nil molecule")
		}
		return m, nil
	case *JobResult:
		if m == nil || m.Atoms == nil {
			return nil, chem.NewError(chem.ErrStructure, "summarize", "", "job result carries no atoms")
		}
		return m.Atoms, nil
	case map[string]any:
		atoms, ok := m["atoms"]
		if !ok {
			return nil, chem.NewError(chem.ErrStructure, "summarize", "", "map input has no \"atoms\" key")
		}
		return FetchMolecule(atoms)
	default:
		return nil, chem.NewError(chem.ErrStructure, "summarize", "",
			"cannot extract a molecule from the given value")
	}
}

// Calculation builds the JobResult for a finished calculator run in dir.
// The results come from the calculator's log file if it implements
// chem.LogProducer, or from memory if it implements chem.Resulter. For a
// log-producing calculator the geometry parsed from the log, if any,
// replaces the input geometry in Atoms.
func Calculation(mol *chem.Molecule, c chem.Calculator, dir, name string, fields map[string]any) (*JobResult, error) {
	out := mol.Copy()
	var res *chem.Results
	switch cc := c.(type) {
	case chem.LogProducer:
		parsed, err := ParseGaussianLog(filepath.Join(dir, cc.LogFile()))
		if err != nil {
			return nil, err
		}
		if parsed.Coords != nil {
			if parsed.Coords.RawMatrix().Rows != out.Len() {
				return nil, chem.NewError(chem.ErrParse, cc.Label(), name,
					"log geometry does not match the input molecule")
			}
			out.SetCoords(parsed.Coords)
		}
		res = parsed.Results()
	case chem.Resulter:
		r, err := cc.Results()
		if err != nil {
			return nil, err
		}
		res = r.Copy()
	default:
		return nil, chem.NewError(chem.ErrConfiguration, c.Label(), name,
			"calculator exposes neither a log file nor in-memory results")
	}
	return &JobResult{
		Atoms:            out,
		Results:          res,
		NAtoms:           out.Len(),
		Charge:           out.Charge(),
		SpinMultiplicity: out.Multi(),
		Name:             name,
		Dir:              dir,
		Fields:           copyFields(fields),
	}, nil
}

func copyFields(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
