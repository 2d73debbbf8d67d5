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
	"testing"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

func closeRect(a, b rect.Rect) bool {
	const eps = 1e-9
	return math.Abs(a.LLx-b.LLx) < eps && math.Abs(a.LLy-b.LLy) < eps &&
		math.Abs(a.URx-b.URx) < eps && math.Abs(a.URy-b.URy) < eps
}

func TestLineEnd(t *testing.T) {
	p := vec.Vec2{X: 10, Y: 0}
	dir := vec.Vec2{X: 1, Y: 0}
	cases := []struct {
		cap  graphics.LineCapStyle
		want rect.Rect
	}{
		{graphics.LineCapButt, rect.Rect{LLx: 10, LLy: -1, URx: 10, URy: 1}},
		{graphics.LineCapRound, rect.Rect{LLx: 9, LLy: -1, URx: 11, URy: 1}},
		{graphics.LineCapSquare, rect.Rect{LLx: 10, LLy: -1, URx: 11, URy: 1}},
		{LineCapTriangular, rect.Rect{LLx: 10, LLy: -1, URx: 11, URy: 1}},
	}
	for _, c := range cases {
		got := LineEnd(p, dir, 1, c.cap)
		if !closeRect(got, c.want) {
			t.Errorf("cap %d: got %v, want %v", c.cap, got, c.want)
		}
	}
}

func TestLineJoinMiterLimit(t *testing.T) {
	p := vec.Vec2{}
	in := vec.Vec2{X: 1, Y: 0}
	out := vec.Vec2{X: 0, Y: 1}

	// right angle: miter ratio is sqrt(2)
	got := LineJoin(p, in, out, 1, graphics.LineJoinMiter, 10)
	want := rect.Rect{LLx: -1, LLy: -1, URx: 1, URy: 1}
	if !closeRect(got, want) {
		t.Errorf("miter: got %v, want %v", got, want)
	}

	// the same corner with a miter limit below sqrt(2) is beveled
	got = LineJoin(p, in, out, 1, graphics.LineJoinMiter, 1.4)
	bevel := LineJoin(p, in, out, 1, graphics.LineJoinBevel, 10)
	if got != bevel {
		t.Errorf("limited miter %v differs from bevel %v", got, bevel)
	}

	// 150° turn: the miter point lies at (2+sqrt(3), -1), far outside
	// the bevel corners
	out = vec.Vec2{X: -math.Sqrt(3) / 2, Y: 0.5}
	miter := LineJoin(p, in, out, 1, graphics.LineJoinMiter, 10)
	bevel = LineJoin(p, in, out, 1, graphics.LineJoinBevel, 10)
	if math.Abs(miter.URx-(2+math.Sqrt(3))) > 1e-9 {
		t.Errorf("miter box %v, want URx = %g", miter, 2+math.Sqrt(3))
	}
	if bevel.URx > 0.5+1e-9 {
		t.Errorf("bevel box %v too large", bevel)
	}
}

func TestLineJoinSharp(t *testing.T) {
	// a very sharp corner: the miter is long and must be cut off
	p := vec.Vec2{}
	in := vec.Vec2{X: 1, Y: 0}
	out := vec.Vec2{X: -1, Y: 0.01}
	got := LineJoin(p, in, out, 1, graphics.LineJoinMiter, 10)
	if got.URx > 1.01 {
		t.Errorf("miter limit ignored: %v", got)
	}
	round := LineJoin(p, in, out, 1, graphics.LineJoinRound, 10)
	if !closeRect(round, rect.Rect{LLx: -1, LLy: -1, URx: 1, URy: 1}) {
		t.Errorf("round join: %v", round)
	}
}

func TestBezier3(t *testing.T) {
	// symmetric arch: the maximum y is 0.75 at t=0.5
	p0 := vec.Vec2{X: 0, Y: 0}
	p1 := vec.Vec2{X: 0, Y: 1}
	p2 := vec.Vec2{X: 1, Y: 1}
	p3 := vec.Vec2{X: 1, Y: 0}
	got := Bezier3(p0, p1, p2, p3, 0)
	want := rect.Rect{LLx: 0, LLy: 0, URx: 1, URy: 0.75}
	if !closeRect(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	// the box must contain sampled curve points
	for i := range 101 {
		tt := float64(i) / 100
		s := 1 - tt
		pt := p0.Mul(s * s * s).Add(p1.Mul(3 * s * s * tt)).Add(p2.Mul(3 * s * tt * tt)).Add(p3.Mul(tt * tt * tt))
		if pt.X < got.LLx-1e-12 || pt.X > got.URx+1e-12 || pt.Y < got.LLy-1e-12 || pt.Y > got.URy+1e-12 {
			t.Errorf("point %v outside %v", pt, got)
		}
	}
}

func TestBezier2(t *testing.T) {
	got := Bezier2(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 1, Y: 2}, vec.Vec2{X: 2, Y: 0}, 0.5)
	want := rect.Rect{LLx: -0.5, LLy: -0.5, URx: 2.5, URy: 1.5}
	if !closeRect(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEllipse(t *testing.T) {
	c := vec.Vec2{X: 1, Y: 1}
	theta := math.Pi / 2
	rx, ry := 3.0, 1.0
	u := vec.Vec2{X: rx * math.Cos(theta), Y: rx * math.Sin(theta)}
	w := vec.Vec2{X: -ry * math.Sin(theta), Y: ry * math.Cos(theta)}
	got := Ellipse(c, u, w, 0)
	want := rect.Rect{LLx: 0, LLy: -2, URx: 2, URy: 4}
	if !closeRect(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
