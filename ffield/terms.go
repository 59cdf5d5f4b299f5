/*
 * terms.go, part of chemrun.
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
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Term is one additive contribution to a force-field energy. All terms are
// functions of interatomic geometry only, so the total energy is invariant
// under rigid translation and rotation.
type Term interface {
	Energy(coords *mat.Dense) float64

	//MaxAtom returns the largest atom index the term references, for
	//validation against the molecule size.
	MaxAtom() int
}

func row(c *mat.Dense, i int) [3]float64 {
	return [3]float64{c.At(i, 0), c.At(i, 1), c.At(i, 2)}
}

func sub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func norm(a [3]float64) float64 {
	return math.Sqrt(dot(a, a))
}

// Distance returns the distance between atoms i and j in coords.
func Distance(coords *mat.Dense, i, j int) float64 {
	return norm(sub(row(coords, i), row(coords, j)))
}

// AngleBetween returns the i-j-k angle (vertex j) in radians.
func AngleBetween(coords *mat.Dense, i, j, k int) float64 {
	u := sub(row(coords, i), row(coords, j))
	v := sub(row(coords, k), row(coords, j))
	c := dot(u, v) / (norm(u) * norm(v))
	//clamp against roundoff outside [-1,1]
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c)
}

// PlaneDistance returns the signed distance of atom c from the plane through
// atoms p1, p2, p3.
func PlaneDistance(coords *mat.Dense, c, p1, p2, p3 int) float64 {
	a := row(coords, p1)
	n := cross(sub(row(coords, p2), a), sub(row(coords, p3), a))
	nn := norm(n)
	if nn == 0 {
		return 0
	}
	d := sub(row(coords, c), a)
	return dot(d, n) / nn
}

// Bond is a harmonic stretch between atoms I and J: E = K/2 (r - R0)^2.
// K in eV/A^2, R0 in A.
type Bond struct {
	I, J  int
	K, R0 float64
}

func (b Bond) Energy(coords *mat.Dense) float64 {
	dr := Distance(coords, b.I, b.J) - b.R0
	return 0.5 * b.K * dr * dr
}

func (b Bond) MaxAtom() int { return maxInt(b.I, b.J) }

// Morse is an anharmonic stretch: E = De (1 - exp(-A(r-R0)))^2.
type Morse struct {
	I, J      int
	De, A, R0 float64
}

func (m Morse) Energy(coords *mat.Dense) float64 {
	e := 1 - math.Exp(-m.A*(Distance(coords, m.I, m.J)-m.R0))
	return m.De * e * e
}

func (m Morse) MaxAtom() int { return maxInt(m.I, m.J) }

// Angle is a harmonic bend for the I-J-K angle (vertex J):
// E = K/2 (theta - Theta0)^2, K in eV/rad^2, Theta0 in radians.
type Angle struct {
	I, J, K   int
	KTheta    float64
	Theta0Rad float64
}

func (a Angle) Energy(coords *mat.Dense) float64 {
	dt := AngleBetween(coords, a.I, a.J, a.K) - a.Theta0Rad
	return 0.5 * a.KTheta * dt * dt
}

func (a Angle) MaxAtom() int { return maxInt(a.I, maxInt(a.J, a.K)) }

// OutOfPlane is a quadratic-plus-quartic umbrella term on the distance d of
// atom C from the plane of P1, P2, P3: E = K2 d^2 + K4 d^4. A negative K2
// with positive K4 makes the planar arrangement a saddle point between two
// pyramidal minima.
type OutOfPlane struct {
	C, P1, P2, P3 int
	K2, K4        float64
}

func (o OutOfPlane) Energy(coords *mat.Dense) float64 {
	d := PlaneDistance(coords, o.C, o.P1, o.P2, o.P3)
	return o.K2*d*d + o.K4*d*d*d*d
}

func (o OutOfPlane) MaxAtom() int {
	return maxInt(o.C, maxInt(o.P1, maxInt(o.P2, o.P3)))
}

// DoubleWell is a quartic two-minimum stretch with an optional linear tilt
// that makes the two wells inequivalent:
// E = A (r-R1)^2 (r-R2)^2 + Tilt (r - R1).
// It models a one-dimensional reaction path with a barrier between two
// products of different energy.
type DoubleWell struct {
	I, J            int
	A, R1, R2, Tilt float64
}

func (d DoubleWell) Energy(coords *mat.Dense) float64 {
	r := Distance(coords, d.I, d.J)
	u, v := r-d.R1, r-d.R2
	return d.A*u*u*v*v + d.Tilt*(r-d.R1)
}

func (d DoubleWell) MaxAtom() int { return maxInt(d.I, d.J) }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

//termFromSpec builds a Term from its YAML representation.
func termFromSpec(s termSpec) (Term, error) {
	switch s.Type {
	case "bond":
		if len(s.Atoms) != 2 {
			return nil, fmt.Errorf("bond term needs 2 atoms, got %d", len(s.Atoms))
		}
		return Bond{I: s.Atoms[0], J: s.Atoms[1], K: s.K, R0: s.R0}, nil
	case "morse":
		if len(s.Atoms) != 2 {
			return nil, fmt.Errorf("morse term needs 2 atoms, got %d", len(s.Atoms))
		}
		return Morse{I: s.Atoms[0], J: s.Atoms[1], De: s.De, A: s.A, R0: s.R0}, nil
	case "angle":
		if len(s.Atoms) != 3 {
			return nil, fmt.Errorf("angle term needs 3 atoms, got %d", len(s.Atoms))
		}
		return Angle{I: s.Atoms[0], J: s.Atoms[1], K: s.Atoms[2],
			KTheta: s.K, Theta0Rad: s.Theta0 * math.Pi / 180}, nil
	case "oop":
		if len(s.Atoms) != 4 {
			return nil, fmt.Errorf("oop term needs 4 atoms, got %d", len(s.Atoms))
		}
		return OutOfPlane{C: s.Atoms[0], P1: s.Atoms[1], P2: s.Atoms[2], P3: s.Atoms[3],
			K2: s.K2, K4: s.K4}, nil
	case "doublewell":
		if len(s.Atoms) != 2 {
			return nil, fmt.Errorf("doublewell term needs 2 atoms, got %d", len(s.Atoms))
		}
		return DoubleWell{I: s.Atoms[0], J: s.Atoms[1],
			A: s.A, R1: s.R1, R2: s.R2, Tilt: s.Tilt}, nil
	default:
		return nil, fmt.Errorf("unknown force-field term type %q", s.Type)
	}
}
