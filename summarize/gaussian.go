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

package summarize

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	chem "github.com/emoreno/chemrun"
	"gonum.org/v1/gonum/mat"
)

// ParsedLog holds what could be extracted from a Gaussian output file.
// Energies are in eV, coordinates in Angstrom, forces in eV/Angstrom,
// dipole in Debye. Coords and the optional tables are nil when the log does
// not contain them.
type ParsedLog struct {
	Energy  float64
	Coords  *mat.Dense
	Numbers []int //atomic numbers from the geometry block
	Forces  *mat.Dense
	Dipole  []float64
	Charges []float64
}

// Results repackages the parsed values as a chem.Results.
func (p *ParsedLog) Results() *chem.Results {
	return &chem.Results{
		Energy:  p.Energy,
		Forces:  p.Forces,
		Dipole:  p.Dipole,
		Charges: p.Charges,
	}
}

//states of the line scanner
const (
	scanNone = iota
	scanGeom
	scanForces
	scanCharges
)

// ParseGaussianLog extracts energy, geometry, forces, dipole and Mulliken
// charges from a Gaussian output file. When a quantity appears more than
// once (each optimization step prints its own tables) the last occurrence
// wins. A log without the normal-termination line, or without any SCF
// energy, is an ErrParse.
func ParseGaussianLog(path string) (*ParsedLog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, chem.NewError(chem.ErrParse, "gaussian", path, err.Error())
	}
	defer f.Close()

	p := new(ParsedLog)
	var (
		haveEnergy bool
		terminated bool
		state      = scanNone
		skip       int
		geom       [][4]float64 //Z, x, y, z
		forces     [][3]float64
		charges    []float64
	)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if skip > 0 {
			skip--
			continue
		}
		switch state {
		case scanGeom:
			if strings.Contains(line, "-----") {
				state = scanNone
				continue
			}
			fields := strings.Fields(line)
			if len(fields) < 6 {
				return nil, chem.NewError(chem.ErrParse, "gaussian", path, "bad geometry row: "+line)
			}
			z, err1 := strconv.ParseFloat(fields[1], 64)
			x, err2 := strconv.ParseFloat(fields[3], 64)
			y, err3 := strconv.ParseFloat(fields[4], 64)
			zz, err4 := strconv.ParseFloat(fields[5], 64)
			if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
				return nil, chem.NewError(chem.ErrParse, "gaussian", path, "bad geometry row: "+line)
			}
			geom = append(geom, [4]float64{z, x, y, zz})
			continue
		case scanForces:
			if strings.Contains(line, "-----") {
				state = scanNone
				continue
			}
			fields := strings.Fields(line)
			if len(fields) < 5 {
				return nil, chem.NewError(chem.ErrParse, "gaussian", path, "bad forces row: "+line)
			}
			var row [3]float64
			for j := 0; j < 3; j++ {
				v, err := strconv.ParseFloat(fields[j+2], 64)
				if err != nil {
					return nil, chem.NewError(chem.ErrParse, "gaussian", path, "bad forces row: "+line)
				}
				//Hartree/Bohr to eV/A
				row[j] = v * chem.H2eV * chem.A2Bohr
			}
			forces = append(forces, row)
			continue
		case scanCharges:
			if strings.Contains(line, "Sum of") {
				state = scanNone
				continue
			}
			fields := strings.Fields(line)
			if len(fields) < 3 {
				return nil, chem.NewError(chem.ErrParse, "gaussian", path, "bad charges row: "+line)
			}
			q, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, chem.NewError(chem.ErrParse, "gaussian", path, "bad charges row: "+line)
			}
			charges = append(charges, q)
			continue
		}
		switch {
		case strings.Contains(line, "SCF Done:"):
			fields := strings.Fields(line)
			//SCF Done:  E(xx) =  <value>  A.U. after ...
			for i, f := range fields {
				if f == "=" && i+1 < len(fields) {
					e, err := strconv.ParseFloat(fields[i+1], 64)
					if err != nil {
						return nil, chem.NewError(chem.ErrParse, "gaussian", path, "bad SCF energy line: "+line)
					}
					p.Energy = e * chem.H2eV
					haveEnergy = true
					break
				}
			}
		case strings.Contains(line, "Standard orientation:") || strings.Contains(line, "Input orientation:"):
			skip = 4
			state = scanGeom
			geom = nil
		case strings.Contains(line, "Forces (Hartrees/Bohr)"):
			skip = 2
			state = scanForces
			forces = nil
		case strings.Contains(line, "Mulliken charges"):
			skip = 1
			state = scanCharges
			charges = nil
		case strings.Contains(line, "Dipole moment"):
			if scanner.Scan() {
				d, err := parseDipole(scanner.Text())
				if err != nil {
					return nil, chem.NewError(chem.ErrParse, "gaussian", path, err.Error())
				}
				p.Dipole = d
			}
		case strings.Contains(line, "Normal termination of Gaussian"):
			terminated = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, chem.NewError(chem.ErrParse, "gaussian", path, err.Error())
	}
	if !terminated {
		return nil, chem.NewError(chem.ErrParse, "gaussian", path, "no normal termination: calculation failed or log truncated")
	}
	if !haveEnergy {
		return nil, chem.NewError(chem.ErrParse, "gaussian", path, "no SCF energy found")
	}
	if geom != nil {
		p.Coords = mat.NewDense(len(geom), 3, nil)
		p.Numbers = make([]int, len(geom))
		for i, g := range geom {
			p.Numbers[i] = int(g[0])
			p.Coords.Set(i, 0, g[1])
			p.Coords.Set(i, 1, g[2])
			p.Coords.Set(i, 2, g[3])
		}
	}
	if forces != nil {
		p.Forces = mat.NewDense(len(forces), 3, nil)
		for i, row := range forces {
			for j := 0; j < 3; j++ {
				p.Forces.Set(i, j, row[j])
			}
		}
	}
	p.Charges = charges
	return p, nil
}

//parseDipole reads the "X= ... Y= ... Z= ... Tot= ..." line that follows
//the dipole moment header.
func parseDipole(line string) ([]float64, error) {
	fields := strings.Fields(line)
	d := make([]float64, 0, 3)
	for i, f := range fields {
		switch f {
		case "X=", "Y=", "Z=":
			if i+1 >= len(fields) {
				return nil, chem.NewError(chem.ErrParse, "gaussian", "", "truncated dipole line: "+line)
			}
			v, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return nil, chem.NewError(chem.ErrParse, "gaussian", "", "bad dipole line: "+line)
			}
			d = append(d, v)
		}
	}
	if len(d) != 3 {
		return nil, chem.NewError(chem.ErrParse, "gaussian", "", "bad dipole line: "+line)
	}
	return d, nil
}
