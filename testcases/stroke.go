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
	"seehuhn.de/go/plot/outbuf"
)

var strokeCases = []TestCase{
	{
		Name: "line_butt",
		Path: horizontalLine(10, 32, 54),
		Op:   Stroke{Width: 8, Cap: graphics.LineCapButt, Join: graphics.LineJoinMiter, MiterLimit: 10},
	},
	{
		Name: "line_round",
		Path: horizontalLine(10, 32, 54),
		Op:   Stroke{Width: 8, Cap: graphics.LineCapRound, Join: graphics.LineJoinMiter, MiterLimit: 10},
	},
	{
		Name: "line_square",
		Path: horizontalLine(10, 32, 54),
		Op:   Stroke{Width: 8, Cap: graphics.LineCapSquare, Join: graphics.LineJoinMiter, MiterLimit: 10},
	},
	{
		Name: "line_triangular",
		Path: horizontalLine(10, 32, 54),
		Op:   Stroke{Width: 8, Cap: outbuf.LineCapTriangular, Join: graphics.LineJoinMiter, MiterLimit: 10},
	},
	{
		Name: "corner_miter",
		Path: corner(10, 50, 32, 14, 54, 50),
		Op:   Stroke{Width: 6, Cap: graphics.LineCapButt, Join: graphics.LineJoinMiter, MiterLimit: 10},
	},
	{
		Name: "corner_miter_clipped",
		Path: corner(10, 50, 32, 14, 54, 50),
		Op:   Stroke{Width: 6, Cap: graphics.LineCapButt, Join: graphics.LineJoinMiter, MiterLimit: 1.2},
	},
	{
		Name: "corner_round",
		Path: corner(10, 50, 32, 14, 54, 50),
		Op:   Stroke{Width: 6, Cap: graphics.LineCapButt, Join: graphics.LineJoinRound, MiterLimit: 10},
	},
	{
		Name: "corner_bevel",
		Path: corner(10, 50, 32, 14, 54, 50),
		Op:   Stroke{Width: 6, Cap: graphics.LineCapButt, Join: graphics.LineJoinBevel, MiterLimit: 10},
	},
	{
		Name: "corner_triangular",
		Path: corner(10, 50, 32, 14, 54, 50),
		Op:   Stroke{Width: 6, Cap: graphics.LineCapButt, Join: outbuf.LineJoinTriangular, MiterLimit: 10},
	},
	{
		Name: "closed_square",
		Path: rectangle(14, 14, 50, 50),
		Op:   Stroke{Width: 6, Cap: graphics.LineCapButt, Join: graphics.LineJoinMiter, MiterLimit: 10},
	},
	{
		Name: "disconnected",
		Draw: func(p *plot.Plotter) error {
			p.SetLineWidth(4)
			p.SetLineModeName("disconnected")
			return Trace(p, corner(10, 50, 32, 14, 54, 50))
		},
	},
	{
		Name: "pen_colors",
		Draw: func(p *plot.Plotter) error {
			p.SetLineWidth(4)
			for i, name := range []string{"red", "green", "blue", "#ff00ff"} {
				p.SetPenColorName(name)
				y := 14 + float64(i)*12
				if err := p.Segment(10, y, 54, y); err != nil {
					return err
				}
			}
			return nil
		},
	},
}

// horizontalLine builds a horizontal line segment.
func horizontalLine(x1, y, x2 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y)).
		LineTo(pt(x2, y))
}

// corner builds a path with two line segments meeting at a corner.
func corner(x1, y1, x2, y2, x3, y3 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x3, y3))
}
