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
	"math"

	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/plot"
)

var fillCases = []TestCase{
	{
		Name: "triangle_nonzero",
		Path: triangle(10, 50, 32, 10, 54, 50),
		Op:   Fill{Rule: plot.NonZero},
	},
	{
		Name: "triangle_evenodd",
		Path: triangle(10, 50, 32, 10, 54, 50),
		Op:   Fill{Rule: plot.EvenOdd},
	},
	{
		Name: "star_nonzero",
		Path: fivePointStar(32, 32, 25),
		Op:   Fill{Rule: plot.NonZero},
	},
	{
		Name: "star_evenodd",
		Path: fivePointStar(32, 32, 25),
		Op:   Fill{Rule: plot.EvenOdd},
	},
	{
		Name: "rectangle",
		Path: rectangle(10, 10, 54, 54),
		Op:   Fill{Rule: plot.NonZero},
	},
	{
		Name: "box",
		Op:   Fill{Rule: plot.NonZero},
		Draw: func(p *plot.Plotter) error {
			return p.Box(10, 10, 54, 54)
		},
	},
	{
		Name: "fill_and_stroke",
		Draw: func(p *plot.Plotter) error {
			p.SetFillColorName("gold")
			p.SetPenColorName("dark blue")
			p.SetFillType(1)
			p.SetLineWidth(3)
			p.SetJoinName("round")
			return p.Box(12, 12, 52, 52)
		},
	},
	{
		Name: "fill_levels",
		Draw: func(p *plot.Plotter) error {
			p.SetPenType(0)
			p.SetFillColorName("blue")
			for i := range 4 {
				p.SetFillType(1 + i*0x4000)
				x := 4 + float64(i)*15
				if err := p.Box(x, 10, x+11, 54); err != nil {
					return err
				}
			}
			return nil
		},
	},
}

// triangle builds a triangular path.
func triangle(x1, y1, x2, y2, x3, y3 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x3, y3)).
		Close()
}

// fivePointStar builds a five-pointed star (self-intersecting).
func fivePointStar(cx, cy, r float64) *path.Data {
	// connect every second of five points on a circle
	d := &path.Data{}
	for k, i := range []int{0, 2, 4, 1, 3} {
		angle := float64(i)*2*math.Pi/5 - math.Pi/2
		q := pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle))
		if k == 0 {
			d = d.MoveTo(q)
		} else {
			d = d.LineTo(q)
		}
	}
	return d.Close()
}

// rectangle builds a rectangular path.
func rectangle(x1, y1, x2, y2 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x1, y2)).
		Close()
}
