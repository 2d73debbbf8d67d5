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
	"fmt"
	"image"
	"image/color"
	"math"
	"testing"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot"
)

// circlePoints returns a polygon with n vertices approximating a circle.
func circlePoints(cx, cy, r float64, n int, clockwise bool) []vec.Vec2 {
	pts := make([]vec.Vec2, n)
	for i := range pts {
		phi := 2 * math.Pi * float64(i) / float64(n)
		if clockwise {
			phi = -phi
		}
		pts[i] = vec.Vec2{X: cx + r*math.Cos(phi), Y: cy + r*math.Sin(phi)}
	}
	return pts
}

// oRings returns the letter "O" as two polygons: the outer ring
// counterclockwise, the inner ring clockwise.
func oRings(size int) [][]vec.Vec2 {
	c := float64(size) / 2
	return [][]vec.Vec2{
		circlePoints(c, c, float64(size)*0.45, 128, false),
		circlePoints(c, c, float64(size)*0.30, 128, true),
	}
}

func makeOPath(size int) *path.Data {
	p := &path.Data{}
	for _, ring := range oRings(size) {
		p.MoveTo(ring[0])
		for _, pt := range ring[1:] {
			p.LineTo(pt)
		}
		p.Close()
	}
	return p
}

func addRingsToVector(r *vector.Rasterizer, rings [][]vec.Vec2) {
	for _, ring := range rings {
		r.MoveTo(float32(ring[0].X), float32(ring[0].Y))
		for _, pt := range ring[1:] {
			r.LineTo(float32(pt.X), float32(pt.Y))
		}
		r.ClosePath()
	}
}

func TestAgainstVector(t *testing.T) {
	const size = 200

	dst := image.NewAlpha(image.Rect(0, 0, size, size))
	r := NewRasterizer(rect.Rect{URx: size, URy: size})
	r.Fill(makeOPath(size), plot.EvenOdd, func(y, xMin int, coverage []float32) {
		row := dst.Pix[y*dst.Stride+xMin:]
		for i, c := range coverage {
			row[i] = uint8(c*255 + 0.5)
		}
	})

	ref := image.NewAlpha(dst.Rect)
	v := vector.NewRasterizer(size, size)
	addRingsToVector(v, oRings(size))
	v.Draw(ref, ref.Bounds(), image.NewUniform(color.Alpha{255}), image.Point{})

	maxDiff := 0
	for i := range dst.Pix {
		d := int(dst.Pix[i]) - int(ref.Pix[i])
		maxDiff = max(maxDiff, d, -d)
	}
	if maxDiff > 3 {
		t.Errorf("coverage differs from x/image/vector by up to %d/255", maxDiff)
	}
}

func BenchmarkRasterizerO(b *testing.B) {
	for _, size := range []int{20, 200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := NewRasterizer(rect.Rect{URx: float64(size), URy: float64(size)})
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			p := makeOPath(size)

			b.ReportAllocs()
			for b.Loop() {
				r.Fill(p, plot.EvenOdd, func(y, xMin int, coverage []float32) {
					row := dst.Pix[y*dst.Stride+xMin:]
					for i, c := range coverage {
						row[i] = uint8(c * 255)
					}
				})
			}
		})
	}
}

func BenchmarkVectorO(b *testing.B) {
	for _, size := range []int{20, 200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := vector.NewRasterizer(size, size)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{255})
			rings := oRings(size)

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(size, size)
				addRingsToVector(r, rings)
				r.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

func BenchmarkStrokeDashed(b *testing.B) {
	const size = 200
	r := NewRasterizer(rect.Rect{URx: size, URy: size})
	r.Width = 4
	r.Dash = []float64{10, 5}
	p := makeOPath(size)

	b.ReportAllocs()
	for b.Loop() {
		r.Stroke(p, func(y, xMin int, coverage []float32) {})
	}
}
