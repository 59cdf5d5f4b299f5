/*
 * chemplot.go, part of chemrun.
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

//Package chemplot renders quick-look figures for calculation results: the
//energy profile of a reaction path and a stick spectrum of harmonic
//frequencies.
package chemplot

import (
	"image/color"

	chem "github.com/emoreno/chemrun"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// IRCProfile plots energies along a reaction path, relative to the first
// point, and saves the figure to name (format from file extension).
func IRCProfile(energies []float64, title, name string) error {
	if len(energies) < 2 {
		return chem.NewError(chem.ErrStructure, "chemplot", name, "need at least two path points")
	}
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "Step"
	p.Y.Label.Text = "Relative energy (eV)"
	p.Add(plotter.NewGrid())
	pts := make(plotter.XYs, len(energies))
	for i, e := range energies {
		pts[i].X = float64(i)
		pts[i].Y = e - energies[0]
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return chem.NewError(chem.ErrCalculation, "chemplot", name, err.Error())
	}
	line.Color = color.RGBA{B: 180, A: 255}
	points.Color = color.RGBA{R: 180, A: 255}
	p.Add(line, points)
	if err := p.Save(14*vg.Centimeter, 10*vg.Centimeter, name); err != nil {
		return chem.NewError(chem.ErrCalculation, "chemplot", name, err.Error())
	}
	return nil
}

// Spectrum draws harmonic frequencies as vertical sticks of unit height.
// Imaginary modes (negative wavenumbers) are drawn in red on the negative
// axis so a transition state is obvious at a glance.
func Spectrum(freqs []float64, title, name string) error {
	if len(freqs) == 0 {
		return chem.NewError(chem.ErrStructure, "chemplot", name, "no frequencies to plot")
	}
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "Wavenumber (1/cm)"
	p.Y.Label.Text = "Intensity (arb.)"
	p.Add(plotter.NewGrid())
	for _, f := range freqs {
		stick := plotter.XYs{{X: f, Y: 0}, {X: f, Y: 1}}
		line, err := plotter.NewLine(stick)
		if err != nil {
			return chem.NewError(chem.ErrCalculation, "chemplot", name, err.Error())
		}
		if f < 0 {
			line.Color = color.RGBA{R: 200, A: 255}
		} else {
			line.Color = color.RGBA{B: 130, A: 255}
		}
		p.Add(line)
	}
	p.Y.Min = 0
	p.Y.Max = 1.2
	if err := p.Save(14*vg.Centimeter, 10*vg.Centimeter, name); err != nil {
		return chem.NewError(chem.ErrCalculation, "chemplot", name, err.Error())
	}
	return nil
}
