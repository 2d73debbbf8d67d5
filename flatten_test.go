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
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

func TestChordTableDepth(t *testing.T) {
	// an arc of almost 360°
	tab := newChordTable(1.999999)
	if s := tab.s[MaxArcSubdivisions]; s >= 1e-4 {
		t.Errorf("relative deviation after %d subdivisions is %g", MaxArcSubdivisions, s)
	}
}

func TestChordTableValues(t *testing.T) {
	tab := quarterArcTable
	for depth := 0; depth <= MaxArcSubdivisions; depth++ {
		alpha := math.Pi / 4 / math.Pow(2, float64(depth))
		if s := 1 - math.Cos(alpha); math.Abs(tab.s[depth]-s) > 1e-15 {
			t.Errorf("depth %d: s=%g, want %g", depth, tab.s[depth], s)
		}
		if h := math.Tan(alpha/2) / 2; math.Abs(tab.h[depth]-h) > 1e-12 {
			t.Errorf("depth %d: h=%g, want %g", depth, tab.h[depth], h)
		}
	}
}

func flattenOne(ctm matrix.Matrix, raster bool, p0 vec.Vec2, s GeneralizedPoint) []GeneralizedPoint {
	f := &flattener{ctm: ctm, flatness: 0.25, raster: raster}
	f.segment(p0, s)
	return f.out
}

func TestFlattenQuarterCircle(t *testing.T) {
	c := vec.Vec2{}
	p0 := vec.Vec2{X: 100}
	p1 := vec.Vec2{Y: 100}
	out := flattenOne(matrix.Identity, false, p0, GeneralizedPoint{Kind: Arc, P: p1, C: c})

	// 100·(1−cos(45°/8)) > 0.25 ≥ 100·(1−cos(45°/16))
	if len(out) != 16 {
		t.Fatalf("got %d segments, want 16", len(out))
	}
	if out[len(out)-1].P != p1 {
		t.Errorf("last point %v, want %v", out[len(out)-1].P, p1)
	}
	mid := out[7].P
	if math.Abs(mid.X-100/math.Sqrt2) > 1e-9 || math.Abs(mid.Y-100/math.Sqrt2) > 1e-9 {
		t.Errorf("midpoint %v is not at 45°", mid)
	}

	prev := p0
	for i, s := range out {
		if s.Kind != Line {
			t.Fatalf("segment %d has kind %v", i, s.Kind)
		}
		if r := s.P.Length(); math.Abs(r-100) > 1e-9 {
			t.Errorf("point %d at radius %g", i, r)
		}
		half := s.P.Sub(prev).Length() / 2
		if sagitta := 100 - math.Sqrt(100*100-half*half); sagitta > 0.25 {
			t.Errorf("segment %d deviates by %g", i, sagitta)
		}
		prev = s.P
	}
}

func TestFlattenClockwiseArc(t *testing.T) {
	p0 := vec.Vec2{X: 100}
	p1 := vec.Vec2{Y: -100}
	out := flattenOne(matrix.Identity, false, p0, GeneralizedPoint{Kind: Arc, P: p1, C: vec.Vec2{}})
	for i, s := range out {
		if s.P.X < -1e-9 || s.P.Y > 1e-9 {
			t.Errorf("point %d at %v is not in the fourth quadrant", i, s.P)
		}
	}
}

func TestFlattenEllipticArc(t *testing.T) {
	c := vec.Vec2{X: 10, Y: 20}
	onEllipse := func(p vec.Vec2) bool {
		d := p.Sub(c)
		return math.Abs(d.X*d.X/(100*100)+d.Y*d.Y/(50*50)-1) < 1e-9
	}

	// quarter ellipse through the first quadrant
	p0 := c.Add(vec.Vec2{X: 100})
	p1 := c.Add(vec.Vec2{Y: 50})
	out := flattenOne(matrix.Identity, false, p0, GeneralizedPoint{Kind: EllipticArc, P: p1, C: c})
	for i, s := range out {
		d := s.P.Sub(c)
		if !onEllipse(s.P) || d.X < -1e-9 || d.Y < -1e-9 {
			t.Errorf("quarter: point %d at %v", i, d)
		}
	}
	if out[len(out)-1].P != p1 {
		t.Errorf("quarter ends at %v, want %v", out[len(out)-1].P, p1)
	}

	// three quarters, counterclockwise through the top
	p1 = c.Add(vec.Vec2{Y: -50})
	out = flattenOne(matrix.Identity, false, p0, GeneralizedPoint{Kind: EllipticArc, P: p1, C: c})
	top := false
	for i, s := range out {
		d := s.P.Sub(c)
		if !onEllipse(s.P) {
			t.Errorf("three quarters: point %d at %v is off the ellipse", i, d)
		}
		if d.X > 1e-9 && d.Y < -1e-9 {
			t.Errorf("three quarters: point %d at %v is in the fourth quadrant", i, d)
		}
		if d.Y > 49.9 {
			top = true
		}
	}
	if !top {
		t.Error("three quarters: arc does not pass near the top of the ellipse")
	}
	if out[len(out)-1].P != p1 {
		t.Errorf("three quarters ends at %v, want %v", out[len(out)-1].P, p1)
	}
}

func TestFlattenMaxDepth(t *testing.T) {
	r := 1e9
	out := flattenOne(matrix.Identity, false, vec.Vec2{X: r},
		GeneralizedPoint{Kind: Arc, P: vec.Vec2{Y: r}, C: vec.Vec2{}})
	if len(out) != 1<<MaxArcSubdivisions {
		t.Errorf("got %d segments, want %d", len(out), 1<<MaxArcSubdivisions)
	}
}

func TestFlattenRasterSamePixel(t *testing.T) {
	p0 := vec.Vec2{X: 10.1, Y: 10}
	p1 := vec.Vec2{X: 10, Y: 10.1}
	c := vec.Vec2{X: 10, Y: 10}

	for _, s := range []GeneralizedPoint{
		{Kind: Arc, P: p1, C: c},
		{Kind: Cubic, P: p1, C: vec.Vec2{X: 10.2, Y: 10.2}, D: vec.Vec2{X: 9.9, Y: 10.1}},
	} {
		out := flattenOne(matrix.Identity, true, p0, s)
		if len(out) != 1 || out[0].P != p1 {
			t.Errorf("%v: got %v, want a single line to %v", s.Kind, out, p1)
		}
	}
}

func TestFlattenCubic(t *testing.T) {
	p0 := vec.Vec2{}
	s := GeneralizedPoint{
		Kind: Cubic,
		P:    vec.Vec2{X: 100},
		C:    vec.Vec2{Y: 100},
		D:    vec.Vec2{X: 100, Y: 100},
	}
	out := flattenOne(matrix.Identity, false, p0, s)
	if len(out) < 2 || len(out) > 1<<MaxArcSubdivisions {
		t.Fatalf("got %d segments", len(out))
	}
	if out[len(out)-1].P != s.P {
		t.Errorf("last point %v, want %v", out[len(out)-1].P, s.P)
	}

	// the curve is symmetric, its highest point is (50, 75)
	maxY := 0.0
	for _, seg := range out {
		maxY = max(maxY, seg.P.Y)
	}
	if maxY > 75+1e-9 || maxY < 75-0.25 {
		t.Errorf("highest point at y=%g, want 75", maxY)
	}
}

func TestFlattenQuadraticScaled(t *testing.T) {
	// a curve which is tiny in user space but large in device space
	p0 := vec.Vec2{}
	s := GeneralizedPoint{Kind: Quadratic, P: vec.Vec2{X: 1}, C: vec.Vec2{X: 0.5, Y: 0.4}}
	small := flattenOne(matrix.Identity, false, p0, s)
	large := flattenOne(matrix.Scale(1000, 1000), false, p0, s)
	if len(small) != 1 {
		t.Errorf("unscaled: got %d segments, want 1", len(small))
	}
	if len(large) <= len(small) {
		t.Errorf("scaled: got %d segments, want more than %d", len(large), len(small))
	}
}

func TestMaxRadius(t *testing.T) {
	u := vec.Vec2{X: 3}
	w := vec.Vec2{Y: 2}
	if r := maxRadius(matrix.Identity, u, w); math.Abs(r-3) > 1e-12 {
		t.Errorf("got %g, want 3", r)
	}
	if r := maxRadius(matrix.Scale(1, 4), u, w); math.Abs(r-8) > 1e-12 {
		t.Errorf("got %g, want 8", r)
	}
}
