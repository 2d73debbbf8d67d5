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
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/plot"
)

// CanvasSize is the side length of the user coordinate square used by the
// test cases.  The y axis points down.
const CanvasSize = 64

// TestCase defines a single drawing.
type TestCase struct {
	Name string        // lowercase a-z and _ only
	Path *path.Data    // geometry to trace, may be nil
	Op   Operation     // fill or stroke for Path
	CTM  matrix.Matrix // applied before the canvas map (zero-value means no transform)

	// Draw, if set, is called after Path has been traced, with the
	// canvas coordinates and CTM in effect.
	Draw func(p *plot.Plotter) error
}

// Operation is the painting operation to apply to the path.
type Operation interface {
	apply(p *plot.Plotter) error
}

// Fill specifies a fill operation.
type Fill struct {
	Rule plot.FillRule
}

func (f Fill) apply(p *plot.Plotter) error {
	p.SetPenType(0)
	p.SetFillType(1)
	return p.SetFillRule(f.Rule)
}

// Stroke specifies a stroke operation.
type Stroke struct {
	Width      float64                // line width in canvas units (>0)
	Cap        graphics.LineCapStyle  // LineCapButt, LineCapRound, LineCapSquare
	Join       graphics.LineJoinStyle // LineJoinMiter, LineJoinRound, LineJoinBevel
	MiterLimit float64                // miter limit
	Dash       []float64              // dash pattern (nil for solid)
	DashPhase  float64                // dash phase offset
}

func (s Stroke) apply(p *plot.Plotter) error {
	p.SetFillType(0)
	p.SetPenType(1)
	p.SetLineWidth(s.Width)
	p.SetCap(s.Cap)
	p.SetJoin(s.Join)
	if s.MiterLimit >= 1 {
		p.SetMiterLimit(s.MiterLimit)
	}
	if s.Dash != nil {
		return p.SetLineDash(s.Dash, s.DashPhase)
	}
	return p.SetLineModeName("solid")
}

// Render draws tc using p.  The drawing state of p is restored
// afterwards.
func (tc *TestCase) Render(p *plot.Plotter) error {
	if err := p.SaveState(); err != nil {
		return err
	}
	err := tc.render(p)
	if err2 := p.RestoreState(); err == nil {
		err = err2
	}
	return err
}

func (tc *TestCase) render(p *plot.Plotter) error {
	if err := p.Space(0, CanvasSize, CanvasSize, 0); err != nil {
		return err
	}
	if tc.CTM != (matrix.Matrix{}) {
		if err := p.Concat(tc.CTM); err != nil {
			return err
		}
	}
	if tc.Op != nil {
		if err := tc.Op.apply(p); err != nil {
			return err
		}
	}
	if tc.Path != nil {
		if err := Trace(p, tc.Path); err != nil {
			return err
		}
	}
	if tc.Draw != nil {
		if err := tc.Draw(p); err != nil {
			return err
		}
	}
	return p.EndPath()
}

// Trace replays d using the path construction operations of p.  Each
// subpath becomes a separate plotter path.
func Trace(p *plot.Plotter, d *path.Data) error {
	var current, start vec.Vec2
	for cmd, pts := range d.Iter() {
		var err error
		switch cmd {
		case path.CmdMoveTo:
			if err = p.EndPath(); err == nil {
				err = p.Move(pts[0].X, pts[0].Y)
			}
			current = pts[0]
			start = current
		case path.CmdLineTo:
			err = p.Line(pts[0].X, pts[0].Y)
			current = pts[0]
		case path.CmdQuadTo:
			err = p.Bezier2(current.X, current.Y, pts[0].X, pts[0].Y, pts[1].X, pts[1].Y)
			current = pts[1]
		case path.CmdCubeTo:
			err = p.Bezier3(current.X, current.Y,
				pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
			current = pts[2]
		case path.CmdClose:
			err = p.ClosePath()
			current = start
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
