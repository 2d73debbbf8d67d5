// seehuhn.de/go/plot - a device-independent 2D plotting library
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package testcases

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/plot"
)

var dashCases = []TestCase{
	// pattern lengths
	{Name: "dash_single_element", Path: horizontalLine(5, 32, 59), Op: dashed(0, 10)},
	{Name: "dash_three_element", Path: horizontalLine(5, 32, 59), Op: dashed(0, 5, 3, 8)},
	{Name: "dash_long_short", Path: horizontalLine(5, 32, 59), Op: dashed(0, 20, 2)},
	{Name: "dash_short_long", Path: horizontalLine(5, 32, 59), Op: dashed(0, 2, 20)},
	{Name: "dash_many_elements", Path: horizontalLine(5, 32, 59), Op: dashed(0, 2, 2, 6, 2, 2, 10)},

	// phase
	{Name: "dash_phase_half", Path: horizontalLine(5, 32, 59), Op: dashed(5, 10, 5)},
	{Name: "dash_phase_pattern_len", Path: horizontalLine(5, 32, 59), Op: dashed(15, 10, 5)},
	{Name: "dash_phase_negative", Path: horizontalLine(5, 32, 59), Op: dashed(-5, 10, 5)},

	// zero-length dashes only show with round or square caps
	{
		Name: "dash_zero_round",
		Path: horizontalLine(8, 32, 56),
		Op: Stroke{
			Width: 6, Cap: graphics.LineCapRound, Join: graphics.LineJoinRound,
			Dash: []float64{0, 12},
		},
	},

	// corners and closed paths
	{Name: "dash_corner_in_dash", Path: corner(10, 50, 32, 14, 54, 50), Op: dashed(0, 30, 6)},
	{Name: "dash_corner_in_gap", Path: corner(10, 50, 32, 14, 54, 50), Op: dashed(0, 40, 12)},
	{Name: "dash_closed_square", Path: rectangle(14, 14, 50, 50), Op: dashed(0, 12, 6)},
	{Name: "dash_curve", Path: wave(6, 32, 58, 16), Op: dashed(0, 6, 3)},

	// the named line modes
	{Name: "line_modes", Draw: lineModes},
}

// dashed returns a butt-capped stroke with the given dash pattern.
func dashed(phase float64, dash ...float64) Stroke {
	return Stroke{
		Width:      4,
		Cap:        graphics.LineCapButt,
		Join:       graphics.LineJoinMiter,
		MiterLimit: 10,
		Dash:       dash,
		DashPhase:  phase,
	}
}

// wave builds an open curve made of two cubic arcs.
func wave(x1, y, x2, amplitude float64) *path.Data {
	w := (x2 - x1) / 2
	return (&path.Data{}).
		MoveTo(pt(x1, y)).
		CubeTo(pt(x1+w/3, y-amplitude), pt(x1+2*w/3, y-amplitude), pt(x1+w, y)).
		CubeTo(pt(x1+4*w/3, y+amplitude), pt(x1+5*w/3, y+amplitude), pt(x2, y))
}

func lineModes(p *plot.Plotter) error {
	modes := []string{"solid", "dotted", "dotdashed", "shortdashed", "longdashed", "dotdotdashed", "dotdotdotdashed"}
	p.SetLineWidth(1.5)
	for i, mode := range modes {
		if err := p.SetLineModeName(mode); err != nil {
			return err
		}
		y := 6 + float64(i)*8.5
		if err := p.Segment(4, y, 60, y); err != nil {
			return err
		}
	}
	return nil
}
