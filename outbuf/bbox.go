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

package outbuf

import (
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Cap and join styles beyond the three PDF ones.
const (
	// LineCapTriangular ends a line in a triangle whose tip lies half
	// a line width beyond the end point.
	LineCapTriangular graphics.LineCapStyle = 3

	// LineJoinTriangular fills the outside of a corner with a triangle
	// whose tip lies half a line width from the vertex.
	LineJoinTriangular graphics.LineJoinStyle = 3
)

// The functions in this file compute conservative device-space bounding
// boxes for pieces of stroked geometry.  All of them are pure.

// LineEnd returns a box which contains the cap drawn at the end point p of
// a line.  dir points from the line towards p, i.e. away from the line.
// A zero dir stands for a zero-length line.
func LineEnd(p, dir vec.Vec2, halfWidth float64, capStyle graphics.LineCapStyle) rect.Rect {
	r := pointBox(p)
	if halfWidth <= 0 {
		return r
	}

	l := dir.Length()
	if l == 0 {
		if capStyle == graphics.LineCapButt {
			return r
		}
		return squareBox(p, halfWidth)
	}
	t := dir.Mul(1 / l)
	n := vec.Vec2{X: -t.Y, Y: t.X}
	left := p.Add(n.Mul(halfWidth))
	right := p.Sub(n.Mul(halfWidth))
	r = extend(r, left)
	r = extend(r, right)

	switch capStyle {
	case graphics.LineCapRound:
		r = union(r, squareBox(p, halfWidth))
	case graphics.LineCapSquare:
		ext := t.Mul(halfWidth)
		r = extend(r, left.Add(ext))
		r = extend(r, right.Add(ext))
	case LineCapTriangular:
		r = extend(r, p.Add(t.Mul(halfWidth)))
	}
	return r
}

// LineJoin returns a box which contains the join drawn at vertex p.
// in is the direction of the segment arriving at p, out the direction of
// the segment leaving p.  For a miter join whose miter length ratio
// 1/sin(φ/2) exceeds miterLimit, where φ is the angle between the two
// segments, the bevel box is returned.
func LineJoin(p, in, out vec.Vec2, halfWidth float64, join graphics.LineJoinStyle, miterLimit float64) rect.Rect {
	r := pointBox(p)
	if halfWidth <= 0 {
		return r
	}

	li := in.Length()
	lo := out.Length()
	for _, d := range [2]vec.Vec2{in, out} {
		l := d.Length()
		if l == 0 {
			continue
		}
		n := vec.Vec2{X: -d.Y / l, Y: d.X / l}
		r = extend(r, p.Add(n.Mul(halfWidth)))
		r = extend(r, p.Sub(n.Mul(halfWidth)))
	}
	if li == 0 || lo == 0 {
		return r
	}
	ti := in.Mul(1 / li)
	to := out.Mul(1 / lo)

	switch join {
	case graphics.LineJoinRound:
		return union(r, squareBox(p, halfWidth))
	case graphics.LineJoinBevel:
		return r
	}

	bisector := ti.Sub(to)
	bl := bisector.Length()
	if bl < 1e-12 {
		// straight continuation, no corner
		return r
	}
	bisector = bisector.Mul(1 / bl)

	if join == LineJoinTriangular {
		return extend(r, p.Add(bisector.Mul(halfWidth)))
	}

	// miter join
	sinHalf := math.Sqrt(max(0, (1+ti.X*to.X+ti.Y*to.Y)/2))
	const miterEpsilon = 1e-10
	if sinHalf == 0 || 1/sinHalf > miterLimit+miterEpsilon {
		return r
	}
	return extend(r, p.Add(bisector.Mul(halfWidth/sinHalf)))
}

// Bezier2 returns the bounding box of the quadratic Bézier curve with
// control points p0, p1, p2, inflated by halfWidth.
func Bezier2(p0, p1, p2 vec.Vec2, halfWidth float64) rect.Rect {
	r := extend(pointBox(p0), p2)
	for _, t := range [2]float64{
		quadExtremum(p0.X, p1.X, p2.X),
		quadExtremum(p0.Y, p1.Y, p2.Y),
	} {
		if t > 0 && t < 1 {
			s := 1 - t
			r = extend(r, p0.Mul(s*s).Add(p1.Mul(2*s*t)).Add(p2.Mul(t*t)))
		}
	}
	return inflate(r, halfWidth)
}

func quadExtremum(a, b, c float64) float64 {
	den := a - 2*b + c
	if den == 0 {
		return -1
	}
	return (a - b) / den
}

// Bezier3 returns the bounding box of the cubic Bézier curve with control
// points p0, p1, p2, p3, inflated by halfWidth.
func Bezier3(p0, p1, p2, p3 vec.Vec2, halfWidth float64) rect.Rect {
	r := extend(pointBox(p0), p3)
	var ts [4]float64
	n := cubicExtrema(ts[:0], p0.X, p1.X, p2.X, p3.X)
	n = cubicExtrema(n, p0.Y, p1.Y, p2.Y, p3.Y)
	for _, t := range n {
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		r = extend(r, pt)
	}
	return inflate(r, halfWidth)
}

// cubicExtrema appends the parameters in (0,1) where the derivative of the
// one-dimensional cubic Bézier function with coefficients x0..x3 vanishes.
func cubicExtrema(ts []float64, x0, x1, x2, x3 float64) []float64 {
	a := -x0 + 3*x1 - 3*x2 + x3
	b := 2 * (x0 - 2*x1 + x2)
	c := x1 - x0

	add := func(t float64) {
		if t > 0 && t < 1 {
			ts = append(ts, t)
		}
	}

	const eps = 1e-12
	if math.Abs(a) < eps {
		if math.Abs(b) >= eps {
			add(-c / b)
		}
		return ts
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return ts
	}
	sq := math.Sqrt(disc)
	add((-b + sq) / (2 * a))
	add((-b - sq) / (2 * a))
	return ts
}

// Ellipse returns the bounding box of the full ellipse with centre c and
// conjugate semi-diameters u and w, inflated by halfWidth.  For an ellipse
// with semi-axes rx, ry rotated by θ, use u = rx·(cos θ, sin θ) and
// w = ry·(−sin θ, cos θ).
func Ellipse(c, u, w vec.Vec2, halfWidth float64) rect.Rect {
	dx := math.Hypot(u.X, w.X) + halfWidth
	dy := math.Hypot(u.Y, w.Y) + halfWidth
	return rect.Rect{LLx: c.X - dx, LLy: c.Y - dy, URx: c.X + dx, URy: c.Y + dy}
}

func pointBox(p vec.Vec2) rect.Rect {
	return rect.Rect{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y}
}

func squareBox(p vec.Vec2, d float64) rect.Rect {
	return rect.Rect{LLx: p.X - d, LLy: p.Y - d, URx: p.X + d, URy: p.Y + d}
}

func extend(r rect.Rect, p vec.Vec2) rect.Rect {
	r.LLx = min(r.LLx, p.X)
	r.LLy = min(r.LLy, p.Y)
	r.URx = max(r.URx, p.X)
	r.URy = max(r.URy, p.Y)
	return r
}

func union(a, b rect.Rect) rect.Rect {
	return rect.Rect{
		LLx: min(a.LLx, b.LLx),
		LLy: min(a.LLy, b.LLy),
		URx: max(a.URx, b.URx),
		URy: max(a.URy, b.URy),
	}
}

func inflate(r rect.Rect, d float64) rect.Rect {
	if d <= 0 {
		return r
	}
	return rect.Rect{LLx: r.LLx - d, LLy: r.LLy - d, URx: r.URx + d, URy: r.URy + d}
}
