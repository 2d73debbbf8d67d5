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

import "seehuhn.de/go/plot"

// The label cases use a y axis which points up, so that text is upright.
var labelCases = []TestCase{
	{
		Name: "label_fonts",
		Draw: func(p *plot.Plotter) error {
			p.Space(0, 0, CanvasSize, CanvasSize)
			p.SetFontSize(5)
			fonts := []string{"Helvetica", "Times-Roman", "Courier-Bold", "Stick"}
			for i, name := range fonts {
				p.SetFontName(name)
				p.Move(4, 54-float64(i)*14)
				if err := p.Label(name); err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		Name: "label_rotated",
		Draw: func(p *plot.Plotter) error {
			p.Space(0, 0, CanvasSize, CanvasSize)
			p.SetFontSize(6)
			p.Translate(32, 32)
			for range 4 {
				p.Move(4, 0)
				if err := p.Label("plot"); err != nil {
					return err
				}
				p.Rotate(90)
			}
			return nil
		},
	},
	{
		Name: "label_escapes",
		Draw: func(p *plot.Plotter) error {
			p.Space(0, 0, CanvasSize, CanvasSize)
			p.SetFontSize(6)
			p.Move(4, 30)
			return p.Label("(a<b) & \\é")
		},
	},
}
