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

package raster

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/outbuf"
)

// grid collects the coverage emitted by a Rasterizer.
type grid struct {
	w, h int
	cov  []float32
}

func newGrid(w, h int) *grid {
	return &grid{w: w, h: h, cov: make([]float32, w*h)}
}

func (g *grid) emit(y, xMin int, coverage []float32) {
	copy(g.cov[y*g.w+xMin:], coverage)
}

func (g *grid) at(x, y int) float32 {
	return g.cov[y*g.w+x]
}

// approaches lists the thresholds which force either of the two scan
// conversion methods.
var approaches = []struct {
	name string
	area int
}{
	{"buffer", 1 << 30},
	{"active edges", 0},
}

func TestTriangleCoverage(t *testing.T) {
	// the diagonal edge y = x/10 gives pixel x a coverage of (2x+1)/20
	triangle := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 1}).
		Close()

	for _, a := range approaches {
		t.Run(a.name, func(t *testing.T) {
			r := NewRasterizer(rect.Rect{URx: 10, URy: 1})
			r.smallArea = a.area
			g := newGrid(10, 1)
			r.Fill(triangle, plot.NonZero, g.emit)

			for x := range 10 {
				want := float32(2*x+1) / 20
				if got := g.at(x, 0); math.Abs(float64(got-want)) > 1e-6 {
					t.Errorf("pixel %d: coverage %.4f, want %.4f", x, got, want)
				}
			}
		})
	}
}

func square(d *path.Data, x0, y0, x1, y1 float64) *path.Data {
	return d.MoveTo(vec.Vec2{X: x0, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y1}).
		LineTo(vec.Vec2{X: x0, Y: y1}).
		Close()
}

func TestFillRules(t *testing.T) {
	nested := square(&path.Data{}, 0, 0, 10, 10)
	nested = square(nested, 3, 3, 7, 7)

	type testCase struct {
		rule plot.FillRule
		want float32
	}
	for _, a := range approaches {
		for _, tc := range []testCase{{plot.NonZero, 1}, {plot.EvenOdd, 0}} {
			r := NewRasterizer(rect.Rect{URx: 10, URy: 10})
			r.smallArea = a.area
			g := newGrid(10, 10)
			r.Fill(nested, tc.rule, g.emit)
			if got := g.at(5, 5); got != tc.want {
				t.Errorf("%s, rule %d: centre coverage %g, want %g", a.name, tc.rule, got, tc.want)
			}
			if got := g.at(1, 1); got != 1 {
				t.Errorf("%s, rule %d: ring coverage %g, want 1", a.name, tc.rule, got)
			}
		}
	}
}

func TestFillClip(t *testing.T) {
	r := NewRasterizer(rect.Rect{URx: 4, URy: 4})
	g := newGrid(4, 4)
	r.Fill(square(&path.Data{}, -10, -10, 2, 20), plot.NonZero, g.emit)
	for y := range 4 {
		for x := range 4 {
			want := float32(0)
			if x < 2 {
				want = 1
			}
			if got := g.at(x, y); got != want {
				t.Errorf("pixel (%d, %d): coverage %g, want %g", x, y, got, want)
			}
		}
	}
}

func horizontalLine() *path.Data {
	return (&path.Data{}).MoveTo(vec.Vec2{X: 2, Y: 5}).LineTo(vec.Vec2{X: 8, Y: 5})
}

func strokeRow(r *Rasterizer, p *path.Data, y int) []float32 {
	g := newGrid(10, 10)
	r.Stroke(p, g.emit)
	return g.cov[y*10 : y*10+10]
}

func TestStrokeCaps(t *testing.T) {
	type testCase struct {
		name     string
		capStyle graphics.LineCapStyle
		want     []float32 // coverage of row 4; nil entries are checked as partial
	}
	cases := []testCase{
		{"butt", graphics.LineCapButt, []float32{0, 0, 1, 1, 1, 1, 1, 1, 0, 0}},
		{"square", graphics.LineCapSquare, []float32{0, 1, 1, 1, 1, 1, 1, 1, 1, 0}},
		{"triangular", outbuf.LineCapTriangular, []float32{0, 0.5, 1, 1, 1, 1, 1, 1, 0.5, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRasterizer(rect.Rect{URx: 10, URy: 10})
			r.Width = 2
			r.Cap = tc.capStyle
			row := strokeRow(r, horizontalLine(), 4)
			for x, want := range tc.want {
				if math.Abs(float64(row[x]-want)) > 1e-5 {
					t.Errorf("pixel %d: coverage %g, want %g", x, row[x], want)
				}
			}
		})
	}

	// round caps cover part of the pixels beyond the end points
	r := NewRasterizer(rect.Rect{URx: 10, URy: 10})
	r.Width = 2
	r.Cap = graphics.LineCapRound
	row := strokeRow(r, horizontalLine(), 4)
	if row[1] <= 0 || row[1] >= 1 || row[8] <= 0 || row[8] >= 1 {
		t.Errorf("round caps: coverage %g and %g", row[1], row[8])
	}
}

func TestStrokeDash(t *testing.T) {
	r := NewRasterizer(rect.Rect{URx: 10, URy: 10})
	r.Width = 2
	r.Dash = []float64{2, 2}
	row := strokeRow(r, horizontalLine(), 4)
	want := []float32{0, 0, 1, 1, 0, 0, 1, 1, 0, 0}
	for x := range want {
		if math.Abs(float64(row[x]-want[x])) > 1e-5 {
			t.Errorf("pixel %d: coverage %g, want %g", x, row[x], want[x])
		}
	}
}

func TestStrokeClosedSquare(t *testing.T) {
	r := NewRasterizer(rect.Rect{URx: 10, URy: 10})
	r.Width = 2
	g := newGrid(10, 10)
	r.Stroke(square(&path.Data{}, 2, 2, 8, 8), g.emit)

	// the outline is a ring from 1 to 9, the inside stays empty
	for _, pt := range [][2]int{{1, 1}, {8, 8}, {1, 5}, {5, 8}} {
		if got := g.at(pt[0], pt[1]); math.Abs(float64(got-1)) > 1e-5 {
			t.Errorf("pixel %v: coverage %g, want 1", pt, got)
		}
	}
	for _, pt := range [][2]int{{0, 0}, {5, 5}, {3, 3}, {9, 9}} {
		if got := g.at(pt[0], pt[1]); got > 1e-5 {
			t.Errorf("pixel %v: coverage %g, want 0", pt, got)
		}
	}
}

func TestStrokeDot(t *testing.T) {
	dot := (&path.Data{}).MoveTo(vec.Vec2{X: 5, Y: 5}).LineTo(vec.Vec2{X: 5, Y: 5})

	r := NewRasterizer(rect.Rect{URx: 10, URy: 10})
	r.Width = 4
	g := newGrid(10, 10)
	r.Stroke(dot, g.emit)
	if g.at(5, 5) != 0 {
		t.Error("zero length subpath with butt caps was drawn")
	}

	r.Cap = graphics.LineCapRound
	r.Stroke(dot, g.emit)
	if got := g.at(4, 4); math.Abs(float64(got-1)) > 1e-5 {
		t.Errorf("round dot: coverage %g, want 1", got)
	}
}
