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

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/plot"
)

var ctmCases = []TestCase{
	// uniform scaling
	{
		Name: "scale_2x",
		Path: rectangle(0, 0, 10, 10),
		Op:   Fill{Rule: plot.NonZero},
		CTM:  matrix.Scale(2, 2).Mul(matrix.Translate(22, 22)),
	},
	{
		Name: "scale_half",
		Path: rectangle(0, 0, 80, 80),
		Op:   Fill{Rule: plot.NonZero},
		CTM:  matrix.Scale(0.5, 0.5).Mul(matrix.Translate(12, 12)),
	},

	// rotation
	{
		Name: "rotate_45deg",
		Path: rectangle(-10, -10, 10, 10),
		Op:   Fill{Rule: plot.NonZero},
		CTM:  matrix.RotateDeg(45).Mul(matrix.Translate(32, 32)),
	},
	{
		Name: "rotate_5deg",
		Path: rectangle(-20, -10, 20, 10),
		Op:   Fill{Rule: plot.NonZero},
		CTM:  matrix.RotateDeg(5).Mul(matrix.Translate(32, 32)),
	},

	// non-uniform scaling and shear
	{
		Name: "scale_2x_1y",
		Path: rectangle(-10, -10, 10, 10),
		Op:   Fill{Rule: plot.NonZero},
		CTM:  matrix.Scale(2, 1).Mul(matrix.Translate(32, 32)),
	},
	{
		Name: "circle_to_ellipse",
		Op:   Fill{Rule: plot.NonZero},
		CTM:  matrix.Scale(1.5, 0.75).Mul(matrix.Translate(32, 32)),
		Draw: func(p *plot.Plotter) error {
			return p.Circle(0, 0, 18)
		},
	},
	{
		Name: "arc_sheared",
		Op:   roundStroke,
		CTM:  matrix.Matrix{1, 0, 0.5, 1, 0, 0}.Mul(matrix.Translate(32, 32)),
		Draw: func(p *plot.Plotter) error {
			return p.Arc(0, 0, 20, 0, 0, 20)
		},
	},
	{
		Name: "shear_and_rotate",
		Path: rectangle(-20, -10, 20, 10),
		Op:   Fill{Rule: plot.NonZero},
		CTM:  matrix.Matrix{1, 0, 0.3, 1, 0, 0}.Mul(matrix.RotateDeg(30)).Mul(matrix.Translate(32, 32)),
	},
	{
		Name: "reflected",
		Op:   roundStroke,
		CTM:  matrix.Scale(-1, 1).Mul(matrix.Translate(32, 32)),
		Draw: func(p *plot.Plotter) error {
			p.Move(0, 0)
			p.Line(20, 0)
			return p.Arc(0, 0, 20, 0, 0, -20)
		},
	},

	// strokes under transformation
	{
		Name: "round_cap_nonuniform",
		Path: horizontalLine(-12, 0, 12),
		Op:   Stroke{Width: 8, Cap: graphics.LineCapRound, Join: graphics.LineJoinRound, MiterLimit: 10},
		CTM:  matrix.Scale(2, 1).Mul(matrix.Translate(32, 32)),
	},
	{
		Name: "round_join_rotated",
		Path: cornerCentered(0, 0, math.Pi/3),
		Op:   Stroke{Width: 6, Cap: graphics.LineCapButt, Join: graphics.LineJoinRound, MiterLimit: 10},
		CTM:  matrix.RotateDeg(30).Mul(matrix.Translate(32, 32)),
	},
	{
		Name: "dash_scaled",
		Path: horizontalLine(-12, 0, 12),
		Op:   dashed(0, 5, 3),
		CTM:  matrix.Scale(2, 1).Mul(matrix.Translate(32, 32)),
	},

	// user space set up with the plotter's own transformation calls
	{
		Name: "rotated_boxes",
		Draw: rotatedBoxes,
	},
}

// cornerCentered creates a corner path at (cx, cy) with the given
// opening angle.
func cornerCentered(cx, cy float64, angle float64) *path.Data {
	length := 20.0
	halfAngle := angle / 2
	dx := length * math.Cos(halfAngle)
	dy := length * math.Sin(halfAngle)
	return (&path.Data{}).
		MoveTo(pt(cx-dx, cy-dy)).
		LineTo(pt(cx, cy)).
		LineTo(pt(cx+dx, cy-dy))
}

func rotatedBoxes(p *plot.Plotter) error {
	p.SetFillType(1)
	p.SetFillColorName("orange")
	p.Translate(32, 32)
	for range 6 {
		if err := p.SaveState(); err != nil {
			return err
		}
		p.Translate(18, 0)
		p.Box(-4, -4, 4, 4)
		if err := p.RestoreState(); err != nil {
			return err
		}
		p.Rotate(60)
	}
	return nil
}
