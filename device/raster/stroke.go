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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/outbuf"
)

// strokeSegment is a non-degenerate line segment of a stroked path.
type strokeSegment struct {
	A, B vec.Vec2
	T    vec.Vec2 // unit tangent from A to B
	N    vec.Vec2 // T rotated by 90° counterclockwise
}

func newStrokeSegment(a, b vec.Vec2) (strokeSegment, bool) {
	d := b.Sub(a)
	l := d.Length()
	if l < zeroLengthThreshold {
		return strokeSegment{}, false
	}
	t := d.Mul(1 / l)
	return strokeSegment{A: a, B: b, T: t, N: normal(t)}, true
}

func normal(t vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: -t.Y, Y: t.X}
}

// Stroke computes the coverage of the outline of p, using the stroke
// parameters of r.
func (r *Rasterizer) Stroke(p *path.Data, emit Emitter) {
	r.splitSubpaths(p)
	if len(r.segsOffsets) == 0 && len(r.dots) == 0 {
		return
	}

	r.stroke = r.stroke[:0]
	r.strokeOffsets = r.strokeOffsets[:0]

	// subpaths without a direction only show up with round caps
	if r.Cap == graphics.LineCapRound {
		for _, pt := range r.dots {
			r.beginPolygon()
			r.addArc(pt, r.Width/2, vec.Vec2{X: 1}, 2*math.Pi, true)
		}
	}

	if len(r.Dash) > 0 {
		r.applyDashPattern()
		for i := range r.dashedSegsOffsets {
			r.strokeDash(part(r.dashedSegs, r.dashedSegsOffsets, i))
		}
	} else {
		for i := range r.segsOffsets {
			r.strokePolygon(part(r.segs, r.segsOffsets, i), r.subpathClosed[i])
		}
	}

	r.resetEdges()
	for i, start := range r.strokeOffsets {
		end := len(r.stroke)
		if i+1 < len(r.strokeOffsets) {
			end = r.strokeOffsets[i+1]
		}
		poly := r.stroke[start:end]
		for j := range poly {
			r.addEdge(poly[j], poly[(j+1)%len(poly)])
		}
	}
	r.rasterise(plot.NonZero, emit)
}

// part returns the i-th run of segs, where offsets gives the start of
// each run.
func part(segs []strokeSegment, offsets []int, i int) []strokeSegment {
	end := len(segs)
	if i+1 < len(offsets) {
		end = offsets[i+1]
	}
	return segs[offsets[i]:end]
}

func (r *Rasterizer) beginPolygon() {
	r.strokeOffsets = append(r.strokeOffsets, len(r.stroke))
}

// strokePolygon outlines one subpath.  Outlines with fewer than three
// vertices are discarded.
func (r *Rasterizer) strokePolygon(segs []strokeSegment, closed bool) {
	start := len(r.stroke)
	r.strokeSubpath(segs, closed)
	if len(r.stroke)-start >= 3 {
		r.strokeOffsets = append(r.strokeOffsets, start)
	} else {
		r.stroke = r.stroke[:start]
	}
}

// strokeDash outlines one dash.  A dash of length zero keeps the direction
// of the underlying path, so that square and triangular caps can be
// oriented.
func (r *Rasterizer) strokeDash(segs []strokeSegment) {
	if len(segs) != 1 || segs[0].A != segs[0].B {
		r.strokePolygon(segs, false)
		return
	}
	s := segs[0]
	d := r.Width / 2
	switch r.Cap {
	case graphics.LineCapRound:
		r.beginPolygon()
		r.addArc(s.A, d, vec.Vec2{X: 1}, 2*math.Pi, true)
	case graphics.LineCapSquare:
		r.beginPolygon()
		r.stroke = append(r.stroke,
			s.A.Add(s.T.Mul(d)).Add(s.N.Mul(d)),
			s.A.Add(s.T.Mul(d)).Sub(s.N.Mul(d)),
			s.A.Sub(s.T.Mul(d)).Sub(s.N.Mul(d)),
			s.A.Sub(s.T.Mul(d)).Add(s.N.Mul(d)))
	case outbuf.LineCapTriangular:
		r.beginPolygon()
		r.stroke = append(r.stroke,
			s.A.Add(s.T.Mul(d)),
			s.A.Sub(s.N.Mul(d)),
			s.A.Sub(s.T.Mul(d)),
			s.A.Add(s.N.Mul(d)))
	}
}

// splitSubpaths breaks p into runs of stroke segments.  Subpaths which
// have drawing commands but no extent are collected in r.dots.
func (r *Rasterizer) splitSubpaths(p *path.Data) {
	r.segs = r.segs[:0]
	r.segsOffsets = r.segsOffsets[:0]
	r.subpathClosed = r.subpathClosed[:0]
	r.dots = r.dots[:0]

	var current, start vec.Vec2
	first := 0
	open := false
	drawn := false

	finish := func(closed bool) {
		switch {
		case len(r.segs) > first:
			r.segsOffsets = append(r.segsOffsets, first)
			r.subpathClosed = append(r.subpathClosed, closed)
		case drawn || closed:
			r.dots = append(r.dots, start)
		}
		first = len(r.segs)
		open = false
		drawn = false
	}
	lineTo := func(to vec.Vec2) {
		if s, ok := newStrokeSegment(current, to); ok {
			r.segs = append(r.segs, s)
		}
		current = to
		drawn = true
	}

	for cmd, pts := range p.Iter() {
		switch cmd {
		case path.CmdMoveTo:
			if open {
				finish(false)
			}
			current = pts[0]
			start = current
			open = true
		case path.CmdLineTo, path.CmdQuadTo, path.CmdCubeTo:
			if open {
				lineTo(pts[len(pts)-1])
			}
		case path.CmdClose:
			if open {
				if current != start {
					lineTo(start)
				}
				finish(true)
				current = start
			}
		}
	}
	if open {
		finish(false)
	}
}

// strokeSubpath appends the outline of one subpath to r.stroke.  The
// outline runs forward along the +N side and back along the −N side.
// Joins are added on the outer side of each corner, the inner side uses
// the intersection of the offset lines.
func (r *Rasterizer) strokeSubpath(segs []strokeSegment, closed bool) {
	if len(segs) == 0 {
		return
	}
	d := r.Width / 2
	first := &segs[0]
	last := &segs[len(segs)-1]

	if closed {
		// forward along +N, including the corner at the start
		r.stroke = append(r.stroke, first.A.Add(first.N.Mul(d)))
		for i := range segs {
			seg := &segs[i]
			next := first
			if i+1 < len(segs) {
				next = &segs[i+1]
			}
			r.corner(seg, next, d, true, true)
		}

		// backward along −N
		r.corner(last, first, d, false, true)
		for i := len(segs) - 1; i > 0; i-- {
			r.corner(&segs[i-1], &segs[i], d, false, true)
		}
		r.stroke = append(r.stroke, first.A.Sub(first.N.Mul(d)))
		return
	}

	r.addCap(first.A, first.T.Mul(-1), d)
	skip := false
	for i := range segs {
		seg := &segs[i]
		if !skip {
			r.stroke = append(r.stroke, seg.A.Add(seg.N.Mul(d)))
		}
		skip = false
		if i+1 < len(segs) {
			skip = r.corner(seg, &segs[i+1], d, true, false)
		} else {
			r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)))
		}
	}

	r.addCap(last.B, last.T, d)
	skip = false
	for i := len(segs) - 1; i >= 0; i-- {
		seg := &segs[i]
		if !skip {
			r.stroke = append(r.stroke, seg.B.Sub(seg.N.Mul(d)))
		}
		skip = false
		if i > 0 {
			skip = r.corner(&segs[i-1], seg, d, false, false)
		} else {
			r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)))
		}
	}
}

// corner adds the outline vertices at the point where seg ends and next
// begins, on the +N side (forward pass) or the −N side (backward pass).
//
// In closed mode both offset points around the corner are emitted, in
// the order of the pass.  In open mode only the points after the end of
// the incoming offset line are emitted, and the result tells the caller
// to skip the start of the following offset line because the inner
// intersection replaced it.
func (r *Rasterizer) corner(seg, next *strokeSegment, d float64, forward, closed bool) bool {
	P := seg.B
	sin := seg.T.X*next.T.Y - seg.T.Y*next.T.X
	side := 1.0
	if !forward {
		side = -1
	}
	in := P.Add(seg.N.Mul(side * d))
	out := P.Add(next.N.Mul(side * d))
	if !forward {
		in, out = out, in
	}

	switch {
	case math.Abs(sin) < collinearityThreshold:
		r.stroke = append(r.stroke, in)
		if closed {
			r.stroke = append(r.stroke, out)
		}
		return false

	case (sin > 0) == forward:
		// inner side of the corner
		if pt, ok := innerIntersection(P, seg.T, next.T, d, forward); ok {
			r.stroke = append(r.stroke, pt)
			return true
		}
		r.stroke = append(r.stroke, in, out)
		return false

	default:
		r.stroke = append(r.stroke, in)
		r.addJoin(P, seg.T, next.T, d, forward)
		if closed {
			r.stroke = append(r.stroke, out)
		}
		return false
	}
}

// addCap adds the cap at the end point P of an open subpath.  T points
// away from the line.
func (r *Rasterizer) addCap(P, T vec.Vec2, d float64) {
	N := normal(T)
	switch r.Cap {
	case graphics.LineCapSquare:
		ext := P.Add(T.Mul(d))
		r.stroke = append(r.stroke, ext.Add(N.Mul(d)), ext.Sub(N.Mul(d)))
	case graphics.LineCapRound:
		r.addArc(P, d, N, -math.Pi, true)
	case outbuf.LineCapTriangular:
		r.stroke = append(r.stroke, P.Add(T.Mul(d)))
	}
}

// innerIntersection returns the point where the offset lines on the inner
// side of a corner meet.  The result is false for almost straight
// corners and for cusps.
func innerIntersection(P, T1, T2 vec.Vec2, d float64, positive bool) (vec.Vec2, bool) {
	cos := T1.Dot(T2)
	if cos > 1-1e-9 {
		return vec.Vec2{}, false
	}
	half := math.Sqrt((1 + cos) / 2) // cos(θ/2)
	if half < 1e-9 {
		return vec.Vec2{}, false
	}
	dir := normal(T1).Add(normal(T2))
	if !positive {
		dir = dir.Mul(-1)
	}
	l := dir.Length()
	if l < 1e-9 {
		return vec.Vec2{}, false
	}
	return P.Add(dir.Mul(d / (half * l))), true
}

// addJoin adds the outer part of the join at P, where the direction
// changes from T1 to T2.
func (r *Rasterizer) addJoin(P, T1, T2 vec.Vec2, d float64, positive bool) {
	cos := T1.Dot(T2)
	sin := T1.X*T2.Y - T1.Y*T2.X
	if math.Abs(sin) < collinearityThreshold {
		return
	}
	if cos < cuspCosineThreshold {
		r.addCap(P, T1, d)
		r.addCap(P, T2.Mul(-1), d)
		return
	}

	bisector := normal(T1).Add(normal(T2))
	if !positive {
		bisector = bisector.Mul(-1)
	}
	if l := bisector.Length(); l > zeroLengthThreshold {
		bisector = bisector.Mul(1 / l)
	} else {
		return
	}

	switch r.Join {
	case graphics.LineJoinMiter:
		// the miter length relative to the line width is 1/sin(φ/2),
		// where φ is the angle between the two segments
		sinHalf := math.Sqrt((1 + cos) / 2)
		if sinHalf > 0 && 1/sinHalf <= r.MiterLimit+1e-10 {
			r.stroke = append(r.stroke, P.Add(bisector.Mul(d/sinHalf)))
		}
	case outbuf.LineJoinTriangular:
		r.stroke = append(r.stroke, P.Add(bisector.Mul(d)))
	case graphics.LineJoinRound:
		angle := math.Acos(max(-1, min(1, cos)))
		if positive {
			if sin < 0 {
				angle = -angle
			}
			r.addArc(P, d, normal(T1), angle, false)
		} else {
			if sin > 0 {
				angle = -angle
			}
			r.addArc(P, d, normal(T2).Mul(-1), angle, false)
		}
	}
}

// addArc appends points on the circle of the given radius around center,
// starting in direction startDir and sweeping the given angle
// (counterclockwise for positive angles).
func (r *Rasterizer) addArc(center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64, includeStart bool) {
	at := func(angle float64) vec.Vec2 {
		c, s := math.Cos(angle), math.Sin(angle)
		dir := vec.Vec2{
			X: startDir.X*c - startDir.Y*s,
			Y: startDir.X*s + startDir.Y*c,
		}
		return center.Add(dir.Mul(radius))
	}

	n := 1
	if radius > r.Flatness {
		// a chord spanning the angle α deviates by radius·(1−cos(α/2))
		step := 2 * math.Acos(1-r.Flatness/radius)
		if step > 0 && !math.IsNaN(step) {
			n = max(int(math.Ceil(math.Abs(sweep)/step)), 1)
		} else {
			n = int(math.Ceil(math.Abs(sweep) / (math.Pi / 4)))
		}
	}

	i0 := 1
	if includeStart {
		i0 = 0
	}
	for i := i0; i <= n; i++ {
		r.stroke = append(r.stroke, at(sweep*float64(i)/float64(n)))
	}
}

// applyDashPattern cuts the subpaths in r.segs into dashes, which are
// stored in r.dashedSegs.
func (r *Rasterizer) applyDashPattern() {
	r.dashedSegs = r.dashedSegs[:0]
	r.dashedSegsOffsets = r.dashedSegsOffsets[:0]

	dash := r.Dash
	n := len(dash)
	period := 0.0
	for _, d := range dash {
		period += d
	}
	if n%2 == 1 {
		period *= 2
	}
	if period <= 0 {
		return
	}
	phase := math.Mod(r.DashPhase, period)
	if phase < 0 {
		phase += period
	}

	for k := range r.segsOffsets {
		segments := part(r.segs, r.segsOffsets, k)
		closed := r.subpathClosed[k]

		idx := 0
		dist := phase
		for dist >= dash[idx%n] && dash[idx%n] > 0 {
			dist -= dash[idx%n]
			idx++
		}
		remaining := dash[idx%n] - dist
		on := idx%2 == 0

		if on && remaining == 0 {
			s := segments[0]
			r.dashedSegsOffsets = append(r.dashedSegsOffsets, len(r.dashedSegs))
			r.dashedSegs = append(r.dashedSegs, strokeSegment{A: s.A, B: s.A, T: s.T, N: s.N})
			idx++
			remaining = dash[idx%n]
			on = idx%2 == 0
		}

		startedOn := on
		firstIdx, firstStart, firstEnd := -1, -1, -1
		dashStart := len(r.dashedSegs)

		emitDash := func() {
			if firstStart < 0 {
				firstIdx = len(r.dashedSegsOffsets)
				firstStart, firstEnd = dashStart, len(r.dashedSegs)
			}
			r.dashedSegsOffsets = append(r.dashedSegsOffsets, dashStart)
			dashStart = len(r.dashedSegs)
		}

		i := 0
		pos := 0.0 // distance along segments[i]
		for i < len(segments) {
			s := segments[i]
			l := s.B.Sub(s.A).Length()
			at := func(t float64) vec.Vec2 {
				return s.A.Add(s.B.Sub(s.A).Mul(t / l))
			}

			if remaining >= l-pos {
				if on {
					piece := s
					piece.A = at(pos)
					r.dashedSegs = append(r.dashedSegs, piece)
				}
				remaining -= l - pos
				i++
				pos = 0
				continue
			}

			end := pos + remaining
			if on {
				a, b := at(pos), at(end)
				if piece, ok := newStrokeSegment(a, b); ok {
					r.dashedSegs = append(r.dashedSegs, piece)
				} else if len(r.dashedSegs) == dashStart {
					r.dashedSegs = append(r.dashedSegs, strokeSegment{A: a, B: a, T: s.T, N: s.N})
				}
				if len(r.dashedSegs) > dashStart {
					emitDash()
				}
			}
			pos = end
			idx++
			remaining = dash[idx%n]
			on = idx%2 == 0
		}

		if len(r.dashedSegs) > dashStart {
			// on closed paths, the last dash continues into the first one
			if closed && startedOn && on && firstStart >= 0 {
				r.dashedSegs = append(r.dashedSegs, r.dashedSegs[firstStart:firstEnd]...)
				// the first dash becomes an empty run
				r.dashedSegsOffsets[firstIdx] = firstEnd
			}
			r.dashedSegsOffsets = append(r.dashedSegsOffsets, dashStart)
		}
	}
}
