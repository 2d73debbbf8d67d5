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
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/plot"
)

// edge is a non-horizontal line segment in pixel coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // inverse slope
}

func (e *edge) yMin() float64 { return min(e.y0, e.y1) }
func (e *edge) yMax() float64 { return max(e.y0, e.y1) }

// xAt returns the x coordinate of the edge's supporting line at height y.
func (e *edge) xAt(y float64) float64 { return e.x0 + e.dxdy*(y-e.y0) }

// Rasterizer computes anti-aliased pixel coverage for filled and stroked
// polygons given in pixel coordinates, with y growing downwards.  The
// coverage of a pixel is the fraction of its area inside the shape.
//
// Paths are expected to consist of straight line segments only.  Curve
// commands are replaced by the chord to their end point.
//
// The internal buffers grow as needed and are kept between calls, so a
// Rasterizer should be reused.  It is not safe for concurrent use.
type Rasterizer struct {
	// Clip restricts the output to an integer-aligned rectangle.
	Clip rect.Rect

	// Flatness is the tolerance used to approximate round caps and joins,
	// in pixels.
	Flatness float64

	// Stroke parameters, in pixels.
	Width      float64
	Cap        graphics.LineCapStyle
	Join       graphics.LineJoinStyle
	MiterLimit float64
	Dash       []float64
	DashPhase  float64

	// smallArea is the largest bounding box area, in pixels, which is
	// rasterised with a full 2D accumulation buffer.
	smallArea int

	cover     []float32
	area      []float32
	edges     []edge
	active    []int
	rowUsed   []bool
	bboxEmpty bool
	bbox      rect.Rect

	stroke        []vec.Vec2
	strokeOffsets []int

	segs          []strokeSegment
	segsOffsets   []int
	subpathClosed []bool
	dots          []vec.Vec2

	dashedSegs        []strokeSegment
	dashedSegsOffsets []int
}

// Emitter receives the coverage of one row of pixels, starting at xMin.
// The slice is only valid during the call.
type Emitter func(y, xMin int, coverage []float32)

const (
	defaultFlatness   = 0.25
	defaultMiterLimit = 10.0

	horizontalEdgeThreshold = 1e-10
	smallAreaThreshold      = 65536
	zeroLengthThreshold     = 1e-10
	collinearityThreshold   = 1e-6

	// cuspCosineThreshold detects segments which double back on
	// themselves, cos(179.43°).
	cuspCosineThreshold = -0.9999
)

// NewRasterizer returns a Rasterizer for the given clip rectangle, with a
// stroke width of one pixel.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		Clip:       clip,
		Flatness:   defaultFlatness,
		Width:      1,
		Cap:        graphics.LineCapButt,
		Join:       graphics.LineJoinMiter,
		MiterLimit: defaultMiterLimit,
		smallArea:  smallAreaThreshold,
	}
}

// Fill computes the coverage of the interior of p.  Open subpaths are
// closed implicitly.
func (r *Rasterizer) Fill(p *path.Data, rule plot.FillRule, emit Emitter) {
	r.resetEdges()
	var current, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if current != start {
				r.addEdge(current, start)
			}
			current = p.Coords[k]
			start = current
			k++
		case path.CmdLineTo:
			r.addEdge(current, p.Coords[k])
			current = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.addEdge(current, p.Coords[k+1])
			current = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.addEdge(current, p.Coords[k+2])
			current = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if current != start {
				r.addEdge(current, start)
			}
			current = start
		}
	}
	if current != start {
		r.addEdge(current, start)
	}
	r.rasterise(rule, emit)
}

func (r *Rasterizer) resetEdges() {
	r.edges = r.edges[:0]
	r.bboxEmpty = true
}

// addEdge records the segment from p0 to p1.  Horizontal segments do not
// contribute to the coverage and are dropped.
func (r *Rasterizer) addEdge(p0, p1 vec.Vec2) {
	dy := p1.Y - p0.Y
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{
		x0: p0.X, y0: p0.Y,
		x1: p1.X, y1: p1.Y,
		dxdy: (p1.X - p0.X) / dy,
	})

	box := rect.Rect{
		LLx: min(p0.X, p1.X), LLy: min(p0.Y, p1.Y),
		URx: max(p0.X, p1.X), URy: max(p0.Y, p1.Y),
	}
	if r.bboxEmpty {
		r.bbox = box
		r.bboxEmpty = false
		return
	}
	r.bbox.LLx = min(r.bbox.LLx, box.LLx)
	r.bbox.LLy = min(r.bbox.LLy, box.LLy)
	r.bbox.URx = max(r.bbox.URx, box.URx)
	r.bbox.URy = max(r.bbox.URy, box.URy)
}

// pixelBounds returns the range of pixels touched by the edges, clipped.
func (r *Rasterizer) pixelBounds() (xMin, xMax, yMin, yMax int, ok bool) {
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}
	xMin = max(int(math.Floor(r.bbox.LLx)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.bbox.URx))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.bbox.LLy)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.bbox.URy))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// rasterise turns the collected edges into coverage rows.
func (r *Rasterizer) rasterise(rule plot.FillRule, emit Emitter) {
	xMin, xMax, yMin, yMax, ok := r.pixelBounds()
	if !ok {
		return
	}
	if (xMax-xMin)*(yMax-yMin) < r.smallArea {
		r.scanSmall(xMin, xMax, yMin, yMax, rule, emit)
	} else {
		r.scanLarge(xMin, xMax, yMin, yMax, rule, emit)
	}
}

// Each edge adds two quantities to the pixels it crosses within a row:
//
//	cover: the signed height of the part of the edge inside the pixel
//	area:  cover, weighted by the fraction of the pixel right of the edge
//
// Summing cover from the left and adding area gives the signed area
// covered in each pixel.  Edges left of the clip region only contribute
// to the first column.

// accumulate adds the part of e within row y to cover and area, which are
// indexed relative to xMin.
func accumulate(e *edge, y int, cover, area []float32, xMin, xMax int) {
	top := max(float64(y), e.yMin())
	bot := min(float64(y+1), e.yMax())
	if bot <= top {
		return
	}
	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xl, xr := e.xAt(top), e.xAt(bot)
	if xl > xr {
		xl, xr = xr, xl
	}
	pixL := int(math.Floor(xl))
	pixR := int(math.Floor(xr))

	switch {
	case pixR < xMin:
		c := sign * float32(bot-top)
		cover[0] += c
		area[0] += c
		return
	case pixL >= xMax:
		return
	case pixL == pixR:
		addSpan(e, top, bot, sign, pixL, cover, area, xMin, xMax)
		return
	}

	dydx := 1 / e.dxdy
	for pix := pixL; pix <= pixR; pix++ {
		ya := e.y0 + dydx*(float64(pix)-e.x0)
		yb := e.y0 + dydx*(float64(pix+1)-e.x0)
		lo := max(min(ya, yb), top)
		hi := min(max(ya, yb), bot)
		if hi <= lo {
			continue
		}
		addSpan(e, lo, hi, sign, pix, cover, area, xMin, xMax)
	}
}

// addSpan adds the part of e between heights top and bot, which lies in
// pixel column pix.
func addSpan(e *edge, top, bot float64, sign float32, pix int, cover, area []float32, xMin, xMax int) {
	c := sign * float32(bot-top)
	if pix < xMin {
		cover[0] += c
		area[0] += c
		return
	}
	if pix >= xMax {
		return
	}
	frac := e.xAt((top+bot)/2) - float64(pix)
	i := pix - xMin
	cover[i] += c
	area[i] += c * float32(1-frac)
}

// integrate converts one row of accumulated values into coverage, in
// place.
func integrate(cover, area []float32, rule plot.FillRule) {
	var sum float32
	for i := range cover {
		raw := sum + area[i]
		sum += cover[i]
		if raw < 0 {
			raw = -raw
		}
		if rule == plot.EvenOdd {
			raw -= 2 * float32(int(raw/2))
			if raw > 1 {
				raw = 2 - raw
			}
		} else if raw > 1 {
			raw = 1
		}
		cover[i] = raw
	}
}

// trimZeros strips zero coverage from both ends of a row.
func trimZeros(row []float32) ([]float32, int) {
	lo, hi := 0, len(row)
	for lo < hi && row[lo] == 0 {
		lo++
	}
	for hi > lo && row[hi-1] == 0 {
		hi--
	}
	if lo == hi {
		return nil, 0
	}
	return row[lo:hi], lo
}

// scanSmall accumulates all rows at once in a 2D buffer.
func (r *Rasterizer) scanSmall(xMin, xMax, yMin, yMax int, rule plot.FillRule, emit Emitter) {
	width := xMax - xMin
	height := yMax - yMin
	n := width * height
	r.cover = slices.Grow(r.cover[:0], n)[:n]
	r.area = slices.Grow(r.area[:0], n)[:n]
	r.rowUsed = slices.Grow(r.rowUsed[:0], height)[:height]
	clear(r.cover)
	clear(r.area)
	clear(r.rowUsed)

	for i := range r.edges {
		e := &r.edges[i]
		y0 := max(int(math.Floor(e.yMin())), yMin)
		y1 := min(int(math.Floor(e.yMax()))+1, yMax)
		for y := y0; y < y1; y++ {
			row := y - yMin
			off := row * width
			accumulate(e, y, r.cover[off:off+width], r.area[off:off+width], xMin, xMax)
			r.rowUsed[row] = true
		}
	}

	for row := range height {
		if !r.rowUsed[row] {
			continue
		}
		off := row * width
		cov := r.cover[off : off+width]
		integrate(cov, r.area[off:off+width], rule)
		if trimmed, dx := trimZeros(cov); trimmed != nil {
			emit(yMin+row, xMin+dx, trimmed)
		}
	}
}

// scanLarge processes one row at a time, using an active edge list.
func (r *Rasterizer) scanLarge(xMin, xMax, yMin, yMax int, rule plot.FillRule, emit Emitter) {
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.yMin(), b.yMin())
	})
	r.active = r.active[:0]
	next := 0

	for y := yMin; y < yMax; y++ {
		top, bot := float64(y), float64(y+1)
		for next < len(r.edges) && r.edges[next].yMin() < bot {
			r.active = append(r.active, next)
			next++
		}
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if e.yMax() <= top {
				last := len(r.active) - 1
				r.active[i] = r.active[last]
				r.active = r.active[:last]
				continue
			}
			accumulate(e, y, r.cover, r.area, xMin, xMax)
			touched = true
			i++
		}
		if !touched {
			continue
		}

		integrate(r.cover, r.area, rule)
		if trimmed, dx := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+dx, trimmed)
		}
	}
}
