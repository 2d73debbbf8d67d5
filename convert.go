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
	"math"

	"seehuhn.de/go/geom/vec"
)

// Kappa is the relative distance of the control points of the cubic
// Bézier curve which approximates a quarter circle: 4/3·(√2−1).
const Kappa = 0.552284749825

// arcKappa returns the control point factor of the cubic approximating a
// circular arc with half angle h.
func arcKappa(h float64) float64 {
	return 4.0 / 3.0 * (1 - math.Cos(h)) / math.Sin(h)
}

// arcToCubics appends one or two cubic segments which approximate the
// minor circular arc from p0 to p1 around c.  Arcs of more than 90° are
// split in the middle.
func arcToCubics(dst []GeneralizedPoint, p0, p1, c vec.Vec2) []GeneralizedPoint {
	v0 := p0.Sub(c)
	v1 := p1.Sub(c)
	theta := math.Atan2(v0.X*v1.Y-v0.Y*v1.X, v0.X*v1.X+v0.Y*v1.Y)

	if math.Abs(theta) <= math.Pi/2 {
		return append(dst, arcPieceToCubic(p0, p1, c, theta))
	}

	sin, cos := math.Sincos(theta / 2)
	mid := c.Add(vec.Vec2{X: cos*v0.X - sin*v0.Y, Y: sin*v0.X + cos*v0.Y})
	dst = append(dst, arcPieceToCubic(p0, mid, c, theta/2))
	return append(dst, arcPieceToCubic(mid, p1, c, theta/2))
}

// arcPieceToCubic approximates the arc from p0 to p1 around c, which
// spans the signed angle theta, by a single cubic.
func arcPieceToCubic(p0, p1, c vec.Vec2, theta float64) GeneralizedPoint {
	k := arcKappa(math.Abs(theta) / 2)
	if theta < 0 {
		k = -k
	}
	t0 := perp(p0.Sub(c))
	t1 := perp(p1.Sub(c))
	return GeneralizedPoint{
		Kind: Cubic,
		P:    p1,
		C:    p0.Add(t0.Mul(k)),
		D:    p1.Sub(t1.Mul(k)),
	}
}

// ellipticArcToCubics appends cubics for the counterclockwise elliptic arc
// from p0 to p1 around c: one for a quarter ellipse, three for a
// three-quarter ellipse.
func ellipticArcToCubics(dst []GeneralizedPoint, p0, p1, c vec.Vec2) []GeneralizedPoint {
	u := p0.Sub(c)
	w := p1.Sub(c)
	if u.X*w.Y-u.Y*w.X > 0 {
		return append(dst, quarterToCubic(p0, p1, c))
	}

	q1 := c.Sub(w)
	q2 := c.Sub(u)
	dst = append(dst, quarterToCubic(p0, q1, c))
	dst = append(dst, quarterToCubic(q1, q2, c))
	return append(dst, quarterToCubic(q2, p1, c))
}

// quarterToCubic approximates the quarter ellipse from p0 to p1 around c,
// where p0−c and p1−c are conjugate semi-diameters.
func quarterToCubic(p0, p1, c vec.Vec2) GeneralizedPoint {
	return GeneralizedPoint{
		Kind: Cubic,
		P:    p1,
		C:    p0.Add(p1.Sub(c).Mul(Kappa)),
		D:    p1.Add(p0.Sub(c).Mul(Kappa)),
	}
}

// quadraticToCubic raises the degree of a quadratic Bézier curve.
// The result traces exactly the same curve.
func quadraticToCubic(p0 vec.Vec2, s GeneralizedPoint) GeneralizedPoint {
	return GeneralizedPoint{
		Kind: Cubic,
		P:    s.P,
		C:    p0.Add(s.C.Sub(p0).Mul(2.0 / 3)),
		D:    s.P.Add(s.C.Sub(s.P).Mul(2.0 / 3)),
	}
}

// perp rotates v by 90° counterclockwise.
func perp(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: -v.Y, Y: v.X}
}
