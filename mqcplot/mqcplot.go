/*
 * mqcplot.go, part of gomqc.
 *
 * Copyright 2021 The gomqc developers
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

//Package mqcplot plots surface-hopping observables (state populations and
//energy components against time) to PNG files.
package mqcplot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//a small fixed palette; states beyond its length cycle through it.
var palette = []color.RGBA{
	{R: 215, G: 48, B: 39, A: 255},
	{R: 69, G: 117, B: 180, A: 255},
	{R: 27, G: 158, B: 119, A: 255},
	{R: 217, G: 95, B: 2, A: 255},
	{R: 117, G: 112, B: 179, A: 255},
}

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

func line(time, y []float64) (*plotter.Line, error) {
	pts := make(plotter.XYs, len(y))
	for i, v := range y {
		pts[i].X = time[i]
		pts[i].Y = v
	}
	return plotter.NewLine(pts)
}

//Populations plots one curve per electronic state, pops[i] being the
//population trace of state i. All traces must have the same length as
//time. The plot is saved as plotname.png.
func Populations(time []float64, pops [][]float64, title, plotname string) error {
	if time == nil || pops == nil {
		panic("Given nil data")
	}
	p := basicPlot(title, "t (a.u.)", "population")
	p.Y.Min = 0
	p.Y.Max = 1
	for i, trace := range pops {
		if len(trace) != len(time) {
			return fmt.Errorf("mqcplot: trace %d has %d points, time axis has %d", i, len(trace), len(time))
		}
		l, err := line(time, trace)
		if err != nil {
			return err
		}
		l.Color = palette[i%len(palette)]
		p.Add(l)
		p.Legend.Add(fmt.Sprintf("state %d", i), l)
	}
	return p.Save(14*vg.Centimeter, 10*vg.Centimeter, fmt.Sprintf("%s.png", plotname))
}

//Energies plots the kinetic, potential and total energy traces against
//time. The plot is saved as plotname.png.
func Energies(time, ekin, epot, etot []float64, title, plotname string) error {
	if time == nil {
		panic("Given nil data")
	}
	p := basicPlot(title, "t (a.u.)", "E (a.u.)")
	names := []string{"kinetic", "potential", "total"}
	for i, trace := range [][]float64{ekin, epot, etot} {
		if len(trace) != len(time) {
			return fmt.Errorf("mqcplot: trace %d has %d points, time axis has %d", i, len(trace), len(time))
		}
		l, err := line(time, trace)
		if err != nil {
			return err
		}
		l.Color = palette[i%len(palette)]
		p.Add(l)
		p.Legend.Add(names[i], l)
	}
	return p.Save(14*vg.Centimeter, 10*vg.Centimeter, fmt.Sprintf("%s.png", plotname))
}
