/*
 * symmetry.go, part of chemrun.
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
	"fmt"
	"math"

	chem "github.com/emoreno/chemrun"
	"gonum.org/v1/gonum/mat"
)

//geometry match tolerance in Angstrom for symmetry operations
const symTol = 5e-2

//principal moment below this fraction of the largest one means linear
const linearTol = 1e-3

// Symmetry describes the rotational symmetry of a geometry. PointGroup is a
// best-effort label from axis and mirror detection; geometries it cannot
// classify get the label of the largest family it could confirm.
type Symmetry struct {
	Linear         bool      `json:"linear"`
	RotationNumber int       `json:"rotation_number"`
	PointGroup     string    `json:"point_group"`
	Moments        []float64 `json:"moments"` //principal moments, amu A^2, ascending
}

//centered returns coordinates relative to the center of mass.
func centered(mol *chem.Molecule) (*mat.Dense, []float64, error) {
	masses := mol.Masses()
	n := mol.Len()
	c := mol.Coords()
	var com [3]float64
	var mtot float64
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			com[j] += masses[i] * c.At(i, j)
		}
		mtot += masses[i]
	}
	out := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			out.Set(i, j, c.At(i, j)-com[j]/mtot)
		}
	}
	return out, masses, nil
}

//inertia builds the moment-of-inertia tensor (amu A^2) for COM-centered
//coordinates and returns the principal moments ascending with their axes as
//the columns of the returned matrix.
func inertia(coords *mat.Dense, masses []float64) ([]float64, *mat.Dense, error) {
	t := mat.NewSymDense(3, nil)
	n, _ := coords.Dims()
	for i := 0; i < n; i++ {
		x, y, z := coords.At(i, 0), coords.At(i, 1), coords.At(i, 2)
		m := masses[i]
		t.SetSym(0, 0, t.At(0, 0)+m*(y*y+z*z))
		t.SetSym(1, 1, t.At(1, 1)+m*(x*x+z*z))
		t.SetSym(2, 2, t.At(2, 2)+m*(x*x+y*y))
		t.SetSym(0, 1, t.At(0, 1)-m*x*y)
		t.SetSym(0, 2, t.At(0, 2)-m*x*z)
		t.SetSym(1, 2, t.At(1, 2)-m*y*z)
	}
	var eig mat.EigenSym
	if !eig.Factorize(t, true) {
		return nil, nil, chem.NewError(chem.ErrCalculation, "symmetry", "", "inertia tensor eigendecomposition failed")
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	return vals, &vecs, nil
}

//sameGeometry reports whether the transformed coordinates map onto the
//original, atom species respected, within symTol.
func sameGeometry(symbols []string, orig, moved *mat.Dense) bool {
	n := len(symbols)
	used := make([]bool, n)
	for i := 0; i < n; i++ {
		found := false
		for k := 0; k < n; k++ {
			if used[k] || symbols[k] != symbols[i] {
				continue
			}
			d := 0.0
			for j := 0; j < 3; j++ {
				diff := moved.At(i, j) - orig.At(k, j)
				d += diff * diff
			}
			if math.Sqrt(d) < symTol {
				used[k] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

//rotate applies a rotation of angle radians about the unit axis to coords.
func rotate(coords *mat.Dense, axis [3]float64, angle float64) *mat.Dense {
	c, s := math.Cos(angle), math.Sin(angle)
	ux, uy, uz := axis[0], axis[1], axis[2]
	//Rodrigues rotation matrix
	r := [3][3]float64{
		{c + ux*ux*(1-c), ux*uy*(1-c) - uz*s, ux*uz*(1-c) + uy*s},
		{uy*ux*(1-c) + uz*s, c + uy*uy*(1-c), uy*uz*(1-c) - ux*s},
		{uz*ux*(1-c) - uy*s, uz*uy*(1-c) + ux*s, c + uz*uz*(1-c)},
	}
	n, _ := coords.Dims()
	out := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			out.Set(i, j, r[j][0]*coords.At(i, 0)+r[j][1]*coords.At(i, 1)+r[j][2]*coords.At(i, 2))
		}
	}
	return out
}

//reflect mirrors coords through the plane normal to the unit axis.
func reflect(coords *mat.Dense, axis [3]float64) *mat.Dense {
	n, _ := coords.Dims()
	out := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		dot := 0.0
		for j := 0; j < 3; j++ {
			dot += coords.At(i, j) * axis[j]
		}
		for j := 0; j < 3; j++ {
			out.Set(i, j, coords.At(i, j)-2*dot*axis[j])
		}
	}
	return out
}

//invert negates all coordinates.
func invert(coords *mat.Dense) *mat.Dense {
	n, _ := coords.Dims()
	out := mat.NewDense(n, 3, nil)
	out.Scale(-1, coords)
	return out
}

//axisOrder returns the largest n in [2,8] for which rotation by 2pi/n about
//axis maps the geometry onto itself, or 1 if none does.
func axisOrder(symbols []string, coords *mat.Dense, axis [3]float64) int {
	order := 1
	for n := 2; n <= 8; n++ {
		if sameGeometry(symbols, coords, rotate(coords, axis, 2*math.Pi/float64(n))) {
			order = n
		}
	}
	return order
}

func normalize(v [3]float64) ([3]float64, bool) {
	n := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if n < 1e-6 {
		return v, false
	}
	return [3]float64{v[0] / n, v[1] / n, v[2] / n}, true
}

//perpC2Count counts distinct C2 axes perpendicular to the main axis.
//Candidates are the directions from the center of mass to each atom and to
//midpoints of same-species atom pairs, projected onto the plane normal to
//the main axis.
func perpC2Count(symbols []string, coords *mat.Dense, main [3]float64) int {
	n := len(symbols)
	var candidates [][3]float64
	project := func(v [3]float64) ([3]float64, bool) {
		dot := v[0]*main[0] + v[1]*main[1] + v[2]*main[2]
		return normalize([3]float64{v[0] - dot*main[0], v[1] - dot*main[1], v[2] - dot*main[2]})
	}
	for i := 0; i < n; i++ {
		if p, ok := project([3]float64{coords.At(i, 0), coords.At(i, 1), coords.At(i, 2)}); ok {
			candidates = append(candidates, p)
		}
		for k := i + 1; k < n; k++ {
			if symbols[i] != symbols[k] {
				continue
			}
			mid := [3]float64{
				(coords.At(i, 0) + coords.At(k, 0)) / 2,
				(coords.At(i, 1) + coords.At(k, 1)) / 2,
				(coords.At(i, 2) + coords.At(k, 2)) / 2,
			}
			if p, ok := project(mid); ok {
				candidates = append(candidates, p)
			}
		}
	}
	var axes [][3]float64
	for _, cand := range candidates {
		dup := false
		for _, a := range axes {
			dot := math.Abs(cand[0]*a[0] + cand[1]*a[1] + cand[2]*a[2])
			if dot > 1-1e-3 {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		if sameGeometry(symbols, coords, rotate(coords, cand, math.Pi)) {
			axes = append(axes, cand)
		}
	}
	return len(axes)
}

// Analyze classifies the rotational symmetry of a molecule: linearity from
// the principal moments of inertia, the main rotation axis by direct
// testing, and a point-group label with the matching rotation number.
func Analyze(mol *chem.Molecule) (*Symmetry, error) {
	coords, masses, err := centered(mol)
	if err != nil {
		return nil, err
	}
	moments, axes, err := inertia(coords, masses)
	if err != nil {
		return nil, err
	}
	sym := &Symmetry{Moments: moments}
	symbols := mol.Symbols()

	if mol.Len() == 1 {
		sym.PointGroup = "K"
		sym.RotationNumber = 1
		return sym, nil
	}
	if moments[0] < linearTol*moments[2] {
		sym.Linear = true
		if sameGeometry(symbols, coords, invert(coords)) {
			sym.PointGroup = "D*h"
			sym.RotationNumber = 2
		} else {
			sym.PointGroup = "C*v"
			sym.RotationNumber = 1
		}
		return sym, nil
	}

	//main axis: the principal axis with the highest rotation order
	best := 1
	var main [3]float64
	for col := 0; col < 3; col++ {
		axis := [3]float64{axes.At(0, col), axes.At(1, col), axes.At(2, col)}
		if o := axisOrder(symbols, coords, axis); o > best {
			best = o
			main = axis
		}
	}
	if best == 1 {
		sym.PointGroup = "C1"
		sym.RotationNumber = 1
		return sym, nil
	}
	nC2 := perpC2Count(symbols, coords, main)
	sigmaH := sameGeometry(symbols, coords, reflect(coords, main))
	switch {
	case nC2 >= best && sigmaH:
		sym.PointGroup = fmt.Sprintf("D%dh", best)
		sym.RotationNumber = 2 * best
	case nC2 >= best:
		sym.PointGroup = fmt.Sprintf("D%d", best)
		sym.RotationNumber = 2 * best
	case sigmaH:
		sym.PointGroup = fmt.Sprintf("C%dh", best)
		sym.RotationNumber = best
	default:
		//assume the vertical-mirror variant, which covers the common
		//Cnv cases without a full mirror search
		sym.PointGroup = fmt.Sprintf("C%dv", best)
		sym.RotationNumber = best
	}
	return sym, nil
}
