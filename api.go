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

package plot

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/vec"
)

// appendSegment adds a segment to the path in progress, starting a new
// path at the current position if necessary.  Long unfilled polylines
// are painted early on devices which ask for it.
func (p *Plotter) appendSegment(gp GeneralizedPoint) error {
	p.addSegment(gp)

	st := p.state
	if p.caps.FlushLongPolylines && !st.Filled() && !p.suppressFlush &&
		st.path.Len() >= p.maxLine {
		return p.endPath()
	}
	return nil
}

// addSegment is like appendSegment, but never paints the path.
func (p *Plotter) addSegment(gp GeneralizedPoint) {
	st := p.state
	if st.path.Len() == 0 {
		st.path.Append(GeneralizedPoint{Kind: Line, P: st.Pos})
	}
	st.path.Append(gp)
	st.Pos = gp.P
}

// startAt makes sure the next segment starts at p0.  If the current
// position differs, the path in progress is ended and p0 becomes the
// current position.
func (p *Plotter) startAt(p0 vec.Vec2) error {
	st := p.state
	if st.Pos == p0 {
		return nil
	}
	if err := p.endPath(); err != nil {
		return err
	}
	st.Pos = p0
	return nil
}

// degenerate reports a degenerate primitive.  Nothing is drawn.
func (p *Plotter) degenerate(op string) error {
	err := fmt.Errorf("%s: %w", op, ErrDegenerate)
	p.warn("%v", err)
	return err
}

// Move sets the current position.  The path in progress is ended.
func (p *Plotter) Move(x, y float64) error {
	if err := p.check(); err != nil {
		return err
	}
	if err := p.endPath(); err != nil {
		return err
	}
	p.state.Pos = vec.Vec2{X: x, Y: y}
	return nil
}

// MoveRel moves the current position by (dx, dy).
func (p *Plotter) MoveRel(dx, dy float64) error {
	if err := p.check(); err != nil {
		return err
	}
	pos := p.state.Pos
	return p.Move(pos.X+dx, pos.Y+dy)
}

// Line continues the path with a line segment to (x, y).
func (p *Plotter) Line(x, y float64) error {
	if err := p.check(); err != nil {
		return err
	}
	return p.appendSegment(GeneralizedPoint{Kind: Line, P: vec.Vec2{X: x, Y: y}})
}

// LineRel continues the path with a line segment by (dx, dy).
func (p *Plotter) LineRel(dx, dy float64) error {
	if err := p.check(); err != nil {
		return err
	}
	pos := p.state.Pos
	return p.Line(pos.X+dx, pos.Y+dy)
}

// Segment draws a line from (x0, y0) to (x1, y1).  If (x0, y0) is the
// current position, the path in progress is continued.
func (p *Plotter) Segment(x0, y0, x1, y1 float64) error {
	if err := p.check(); err != nil {
		return err
	}
	if err := p.startAt(vec.Vec2{X: x0, Y: y0}); err != nil {
		return err
	}
	return p.appendSegment(GeneralizedPoint{Kind: Line, P: vec.Vec2{X: x1, Y: y1}})
}

// SegmentRel is like Segment, with all coordinates relative to the
// current position.
func (p *Plotter) SegmentRel(dx0, dy0, dx1, dy1 float64) error {
	if err := p.check(); err != nil {
		return err
	}
	pos := p.state.Pos
	return p.Segment(pos.X+dx0, pos.Y+dy0, pos.X+dx1, pos.Y+dy1)
}

// Arc draws the circular arc of less than 180° from (x0, y0) to (x1, y1)
// around the centre (xc, yc).  The arc runs counterclockwise if
// (x1, y1) lies to the left of the radius through (x0, y0), otherwise
// clockwise.  The radius is the distance of (x0, y0) from the centre.
// If (x1, y1) is at a different distance, the arc ends where the ray from
// the centre through (x1, y1) meets the circle, and this point becomes
// the current position.
//
// If the start point coincides with the end point, the centre or the
// line through the other two points, nothing is drawn and the error
// wraps ErrDegenerate.
func (p *Plotter) Arc(xc, yc, x0, y0, x1, y1 float64) error {
	if err := p.check(); err != nil {
		return err
	}
	c := vec.Vec2{X: xc, Y: yc}
	p0 := vec.Vec2{X: x0, Y: y0}
	p1 := vec.Vec2{X: x1, Y: y1}
	if arcDegenerate(p0, p1, c) {
		return p.degenerate("arc")
	}
	if err := p.startAt(p0); err != nil {
		return err
	}
	p1 = onCircle(p1, c, p0.Sub(c).Length())
	return p.appendSegment(GeneralizedPoint{Kind: Arc, P: p1, C: c})
}

// ArcRel is like Arc, with all coordinates relative to the current
// position.
func (p *Plotter) ArcRel(dxc, dyc, dx0, dy0, dx1, dy1 float64) error {
	if err := p.check(); err != nil {
		return err
	}
	pos := p.state.Pos
	return p.Arc(pos.X+dxc, pos.Y+dyc, pos.X+dx0, pos.Y+dy0, pos.X+dx1, pos.Y+dy1)
}

// EllArc draws a counterclockwise elliptic arc from (x0, y0) to (x1, y1)
// around the centre (xc, yc).  The vectors from the centre to the two
// points are conjugate semi-diameters of the ellipse.  The arc is a
// quarter of the ellipse if the end point lies to the left of the first
// semi-diameter and three quarters of it otherwise.
func (p *Plotter) EllArc(xc, yc, x0, y0, x1, y1 float64) error {
	if err := p.check(); err != nil {
		return err
	}
	c := vec.Vec2{X: xc, Y: yc}
	p0 := vec.Vec2{X: x0, Y: y0}
	p1 := vec.Vec2{X: x1, Y: y1}
	if arcDegenerate(p0, p1, c) {
		return p.degenerate("elliptic arc")
	}
	if err := p.startAt(p0); err != nil {
		return err
	}
	return p.appendSegment(GeneralizedPoint{Kind: EllipticArc, P: p1, C: c})
}

// EllArcRel is like EllArc, with all coordinates relative to the current
// position.
func (p *Plotter) EllArcRel(dxc, dyc, dx0, dy0, dx1, dy1 float64) error {
	if err := p.check(); err != nil {
		return err
	}
	pos := p.state.Pos
	return p.EllArc(pos.X+dxc, pos.Y+dyc, pos.X+dx0, pos.Y+dy0, pos.X+dx1, pos.Y+dy1)
}

// arcDegenerate reports whether the arc from p0 to p1 around c is not
// well defined.
func arcDegenerate(p0, p1, c vec.Vec2) bool {
	v0 := p0.Sub(c)
	v1 := p1.Sub(c)
	if p0 == p1 || v0 == (vec.Vec2{}) || v1 == (vec.Vec2{}) {
		return true
	}
	cross := v0.X*v1.Y - v0.Y*v1.X
	return math.Abs(cross) <= 1e-12*v0.Length()*v1.Length()
}

// onCircle returns the point where the ray from c through p meets the
// circle of radius r around c.  Points within rounding error of the
// circle are returned unchanged, so that chained arcs stay connected.
func onCircle(p, c vec.Vec2, r float64) vec.Vec2 {
	v := p.Sub(c)
	l := v.Length()
	if math.Abs(l-r) <= 1e-9*r {
		return p
	}
	return c.Add(v.Mul(r / l))
}

// Bezier2 draws the quadratic Bézier curve from (x0, y0) to (x2, y2)
// with control point (x1, y1).
func (p *Plotter) Bezier2(x0, y0, x1, y1, x2, y2 float64) error {
	if err := p.check(); err != nil {
		return err
	}
	if err := p.startAt(vec.Vec2{X: x0, Y: y0}); err != nil {
		return err
	}
	return p.appendSegment(GeneralizedPoint{
		Kind: Quadratic,
		P:    vec.Vec2{X: x2, Y: y2},
		C:    vec.Vec2{X: x1, Y: y1},
	})
}

// Bezier2Rel is like Bezier2, with all coordinates relative to the
// current position.
func (p *Plotter) Bezier2Rel(dx0, dy0, dx1, dy1, dx2, dy2 float64) error {
	if err := p.check(); err != nil {
		return err
	}
	pos := p.state.Pos
	return p.Bezier2(pos.X+dx0, pos.Y+dy0, pos.X+dx1, pos.Y+dy1, pos.X+dx2, pos.Y+dy2)
}

// Bezier3 draws the cubic Bézier curve from (x0, y0) to (x3, y3) with
// control points (x1, y1) and (x2, y2).
func (p *Plotter) Bezier3(x0, y0, x1, y1, x2, y2, x3, y3 float64) error {
	if err := p.check(); err != nil {
		return err
	}
	if err := p.startAt(vec.Vec2{X: x0, Y: y0}); err != nil {
		return err
	}
	return p.appendSegment(GeneralizedPoint{
		Kind: Cubic,
		P:    vec.Vec2{X: x3, Y: y3},
		C:    vec.Vec2{X: x1, Y: y1},
		D:    vec.Vec2{X: x2, Y: y2},
	})
}

// Bezier3Rel is like Bezier3, with all coordinates relative to the
// current position.
func (p *Plotter) Bezier3Rel(dx0, dy0, dx1, dy1, dx2, dy2, dx3, dy3 float64) error {
	if err := p.check(); err != nil {
		return err
	}
	pos := p.state.Pos
	return p.Bezier3(pos.X+dx0, pos.Y+dy0, pos.X+dx1, pos.Y+dy1,
		pos.X+dx2, pos.Y+dy2, pos.X+dx3, pos.Y+dy3)
}

// closedPrimitive paints a closed path made of the given segments, as a
// path of its own.  Afterwards the current position is at centre.
func (p *Plotter) closedPrimitive(start vec.Vec2, segs []GeneralizedPoint, centre vec.Vec2) error {
	if err := p.endPath(); err != nil {
		return err
	}
	p.state.Pos = start
	for _, s := range segs {
		p.addSegment(s)
	}

	err := p.endPath()
	p.state.Pos = centre
	return err
}

// Box draws a rectangle with opposite corners (x0, y0) and (x1, y1).
// The current position is moved to the centre of the box.
func (p *Plotter) Box(x0, y0, x1, y1 float64) error {
	if err := p.check(); err != nil {
		return err
	}
	start := vec.Vec2{X: x0, Y: y0}
	segs := []GeneralizedPoint{
		{Kind: Line, P: vec.Vec2{X: x1, Y: y0}},
		{Kind: Line, P: vec.Vec2{X: x1, Y: y1}},
		{Kind: Line, P: vec.Vec2{X: x0, Y: y1}},
		{Kind: Line, P: start},
	}
	return p.closedPrimitive(start, segs, vec.Vec2{X: (x0 + x1) / 2, Y: (y0 + y1) / 2})
}

// BoxRel is like Box, with the corners relative to the current position.
func (p *Plotter) BoxRel(dx0, dy0, dx1, dy1 float64) error {
	if err := p.check(); err != nil {
		return err
	}
	pos := p.state.Pos
	return p.Box(pos.X+dx0, pos.Y+dy0, pos.X+dx1, pos.Y+dy1)
}

// Circle draws a circle.  The current position is moved to the centre.
func (p *Plotter) Circle(xc, yc, r float64) error {
	if err := p.check(); err != nil {
		return err
	}
	c := vec.Vec2{X: xc, Y: yc}
	if r == 0 {
		return p.degenerate("circle")
	}
	segs := circlePath(c, math.Abs(r))
	return p.closedPrimitive(segs[0].P, segs[1:], c)
}

// CircleRel is like Circle, with the centre relative to the current
// position.
func (p *Plotter) CircleRel(dxc, dyc, r float64) error {
	if err := p.check(); err != nil {
		return err
	}
	pos := p.state.Pos
	return p.Circle(pos.X+dxc, pos.Y+dyc, r)
}

// Ellipse draws an ellipse with semi-axes rx and ry, the first of which
// is rotated counterclockwise by angle degrees.  The current position is
// moved to the centre.
func (p *Plotter) Ellipse(xc, yc, rx, ry, angle float64) error {
	if err := p.check(); err != nil {
		return err
	}
	if rx == 0 || ry == 0 {
		return p.degenerate("ellipse")
	}
	c := vec.Vec2{X: xc, Y: yc}
	sin, cos := math.Sincos(angle * math.Pi / 180)
	rx, ry = math.Abs(rx), math.Abs(ry)
	u := vec.Vec2{X: rx * cos, Y: rx * sin}
	w := vec.Vec2{X: -ry * sin, Y: ry * cos}

	start := c.Add(u)
	segs := []GeneralizedPoint{
		{Kind: EllipticArc, P: c.Add(w), C: c},
		{Kind: EllipticArc, P: c.Sub(u), C: c},
		{Kind: EllipticArc, P: c.Sub(w), C: c},
		{Kind: EllipticArc, P: start, C: c},
	}
	return p.closedPrimitive(start, segs, c)
}

// EllipseRel is like Ellipse, with the centre relative to the current
// position.
func (p *Plotter) EllipseRel(dxc, dyc, rx, ry, angle float64) error {
	if err := p.check(); err != nil {
		return err
	}
	pos := p.state.Pos
	return p.Ellipse(pos.X+dxc, pos.Y+dyc, rx, ry, angle)
}

// ClosePath closes the path in progress with a line back to its start
// and paints it.
func (p *Plotter) ClosePath() error {
	if err := p.check(); err != nil {
		return err
	}
	st := p.state
	if st.path.Len() >= 2 {
		first := st.path.Segments()[0].P
		if st.path.Last() != first {
			p.addSegment(GeneralizedPoint{Kind: Line, P: first})
		}
	}
	return p.endPath()
}

// EndPath paints the path in progress.  Further segments start a new
// path at the current position.
func (p *Plotter) EndPath() error {
	if err := p.check(); err != nil {
		return err
	}
	return p.endPath()
}

// Position returns the current position in user coordinates.
func (p *Plotter) Position() (x, y float64) {
	if p.state == nil {
		return 0, 0
	}
	return p.state.Pos.X, p.state.Pos.Y
}

// PathLen returns the number of points in the path in progress,
// including the initial move.
func (p *Plotter) PathLen() int {
	if p.state == nil {
		return 0
	}
	return p.state.path.Len()
}
