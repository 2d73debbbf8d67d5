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

var roundStroke = Stroke{
	Width:      4,
	Cap:        graphics.LineCapRound,
	Join:       graphics.LineJoinRound,
	MiterLimit: 10,
}

var curveCases = []TestCase{
	// Bézier curves traced from path data
	{
		Name: "quadratic",
		Path: quadraticCurve(10, 50, 32, 10, 54, 50),
		Op:   Fill{Rule: plot.NonZero},
	},
	{
		Name: "quadratic_shallow",
		Path: quadraticCurve(10, 32, 32, 28, 54, 32), // control point near chord
		Op:   Fill{Rule: plot.NonZero},
	},
	{
		Name: "quadratic_s_shape",
		Path: sCurveQuadratic(10, 32, 54, 32),
		Op:   Fill{Rule: plot.NonZero},
	},
	{
		Name: "quadratic_stroked",
		Path: quadraticCurveOpen(10, 50, 32, 10, 54, 50),
		Op:   roundStroke,
	},
	{
		Name: "cubic",
		Path: cubicCurve(10, 50, 20, 10, 44, 10, 54, 50),
		Op:   Fill{Rule: plot.NonZero},
	},
	{
		Name: "cubic_scurve",
		Path: cubicCurve(10, 50, 10, 10, 54, 54, 54, 14), // S-curve with inflection
		Op:   Fill{Rule: plot.NonZero},
	},
	{
		Name: "cubic_loop",
		Path: cubicCurve(10, 32, 60, 5, 4, 59, 54, 32), // self-intersecting loop
		Op:   Fill{Rule: plot.EvenOdd},
	},
	{
		Name: "cubic_cusp",
		Path: cubicCurve(10, 50, 54, 10, 10, 10, 54, 50),
		Op:   Fill{Rule: plot.NonZero},
	},
	{
		Name: "cubic_stroked",
		Path: cubicCurveOpen(10, 50, 20, 10, 44, 10, 54, 50),
		Op:   roundStroke,
	},
	{
		Name: "cubic_degenerate",
		Path: cubicCurveOpen(10, 32, 10, 32, 54, 32, 54, 32),
		Op:   roundStroke,
	},

	// circular and elliptic primitives
	{
		Name: "circle",
		Op:   Fill{Rule: plot.NonZero},
		Draw: func(p *plot.Plotter) error {
			return p.Circle(32, 32, 25)
		},
	},
	{
		Name: "circle_stroked",
		Op:   roundStroke,
		Draw: func(p *plot.Plotter) error {
			return p.Circle(32, 32, 25)
		},
	},
	{
		Name: "circle_small",
		Op:   Fill{Rule: plot.NonZero},
		Draw: func(p *plot.Plotter) error {
			return p.Circle(32, 32, 1.5)
		},
	},
	{
		Name: "ellipse",
		Op:   Fill{Rule: plot.NonZero},
		Draw: func(p *plot.Plotter) error {
			return p.Ellipse(32, 32, 28, 14, 0)
		},
	},
	{
		Name: "ellipse_rotated",
		Op:   roundStroke,
		Draw: func(p *plot.Plotter) error {
			return p.Ellipse(32, 32, 28, 14, 30)
		},
	},
	{
		Name: "arc",
		Op:   Fill{Rule: plot.NonZero},
		Draw: pieSlice,
	},
	{
		Name: "arc_stroked",
		Op:   roundStroke,
		Draw: func(p *plot.Plotter) error {
			// the y axis points down, so the arc turns clockwise on the page
			return p.Arc(32, 32, 57, 32, 32, 7)
		},
	},
	{
		Name: "elliptic_arc",
		Op:   roundStroke,
		Draw: func(p *plot.Plotter) error {
			p.Move(60, 32)
			return p.EllArc(32, 32, 60, 32, 32, 56)
		},
	},
	{
		Name: "elliptic_arc_three_quarters",
		Op:   roundStroke,
		Draw: func(p *plot.Plotter) error {
			return p.EllArc(32, 32, 60, 32, 32, 8)
		},
	},
	{
		Name: "mixed_segments",
		Op:   roundStroke,
		Draw: func(p *plot.Plotter) error {
			p.Move(8, 56)
			p.Line(8, 32)
			p.Arc(20, 32, 8, 32, 20, 20)
			p.Bezier2(20, 20, 32, 8, 44, 20)
			return p.Bezier3(44, 20, 56, 32, 44, 44, 56, 56)
		},
	},
}

func pieSlice(p *plot.Plotter) error {
	p.Move(32, 32)
	p.Line(57, 32)
	if err := p.Arc(32, 32, 57, 32, 32, 7); err != nil {
		return err
	}
	return p.ClosePath()
}

// quadraticCurve builds a closed shape with a quadratic Bezier curve.
func quadraticCurve(x1, y1, cx, cy, x2, y2 float64) *path.Data {
	return quadraticCurveOpen(x1, y1, cx, cy, x2, y2).Close()
}

// quadraticCurveOpen builds an open path with a quadratic Bezier curve.
func quadraticCurveOpen(x1, y1, cx, cy, x2, y2 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		QuadTo(pt(cx, cy), pt(x2, y2))
}

// cubicCurve builds a closed shape with a cubic Bezier curve.
func cubicCurve(x1, y1, c1x, c1y, c2x, c2y, x2, y2 float64) *path.Data {
	return cubicCurveOpen(x1, y1, c1x, c1y, c2x, c2y, x2, y2).Close()
}

// cubicCurveOpen builds an open path with a cubic Bezier curve.
func cubicCurveOpen(x1, y1, c1x, c1y, c2x, c2y, x2, y2 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		CubeTo(pt(c1x, c1y), pt(c2x, c2y), pt(x2, y2))
}

// sCurveQuadratic builds a closed S-shaped path from two quadratic Bezier curves.
func sCurveQuadratic(x1, y1, x2, y2 float64) *path.Data {
	midX := (x1 + x2) / 2
	midY := (y1 + y2) / 2

	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		QuadTo(pt((x1+midX)/2, y1-20), pt(midX, midY)).
		QuadTo(pt((midX+x2)/2, y2+20), pt(x2, y2)).
		Close()
}
