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

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// smoothEps bounds the squared sine of the angle between the incoming and
// outgoing tangent at a join which counts as smooth.
const smoothEps = 1e-8

// endPath converts the path in progress into a form the device can draw,
// hands it to the device and clears it.  Paths with fewer than two points
// are discarded.
func (p *Plotter) endPath() error {
	st := p.state
	if st.path.Len() < 2 {
		st.path.Reset()
		return nil
	}

	saved := p.suppressFlush
	p.suppressFlush = true
	defer func() { p.suppressFlush = saved }()

	segs := p.convertPath(st.path.Segments(), st.Transform)
	st.path.Reset()

	if st.LineMode == LineDisconnected && st.Stroked() {
		return p.paintDots(segs, st)
	}
	return p.paint(segs, st)
}

// paint hands a user space path to the device.  segs is modified.
func (p *Plotter) paint(segs []GeneralizedPoint, st *DrawingState) error {
	p.assertCapabilities(segs, st.Transform)
	for i := range segs {
		segs[i].P = apply(st.Transform, segs[i].P)
		segs[i].C = apply(st.Transform, segs[i].C)
		segs[i].D = apply(st.Transform, segs[i].D)
	}
	markSmooth(segs)

	p.renderer.SetPenColor(p.page, st)
	p.renderer.SetFillColor(p.page, st)
	err := p.renderer.PaintPath(p.page, segs, st)
	if err == nil {
		err = p.page.Err()
	}
	if err != nil {
		return p.fail(fmt.Errorf("paint path: %w", err))
	}
	p.log.Debug("paint path",
		"device", p.caps.Name,
		"points", len(segs),
		"closed", isClosed(segs))
	return p.drain()
}

// paintDots draws a filled dot in the pen colour at every vertex of a
// path.  This implements the "disconnected" line mode.
func (p *Plotter) paintDots(segs []GeneralizedPoint, st *DrawingState) error {
	dot := *st
	dot.FillLevel = 1
	dot.FillColor = st.PenColor
	dot.FillRule = NonZero
	dot.PenType = 0
	dot.LineMode = LineSolid
	dot.Dash = nil

	r := st.LineWidth / 2
	if r <= 0 {
		r = st.ndcToUser(defaultLineWidthNDC) / 2
	}

	n := len(segs)
	if isClosed(segs) {
		n--
	}
	vertices := make([]vec.Vec2, n)
	for i := range vertices {
		vertices[i] = segs[i].P
	}

	for _, c := range vertices {
		circle := circlePath(c, r)
		if err := p.paint(p.convertPath(circle, dot.Transform), &dot); err != nil {
			return err
		}
	}
	return nil
}

// circlePath returns a closed path of four quarter arcs.
func circlePath(c vec.Vec2, r float64) []GeneralizedPoint {
	pts := []vec.Vec2{
		{X: c.X + r, Y: c.Y},
		{X: c.X, Y: c.Y + r},
		{X: c.X - r, Y: c.Y},
		{X: c.X, Y: c.Y - r},
		{X: c.X + r, Y: c.Y},
	}
	segs := make([]GeneralizedPoint, len(pts))
	segs[0] = GeneralizedPoint{P: pts[0]}
	for i := 1; i < len(pts); i++ {
		segs[i] = GeneralizedPoint{Kind: Arc, P: pts[i], C: c}
	}
	return segs
}

// convertPath rewrites a user space path so that every segment is either
// native to the device under m, or a cubic the device accepts, or a line.
// If the device cannot handle paths made of different segment kinds and
// the result mixes kinds, the whole path is flattened.
func (p *Plotter) convertPath(segs []GeneralizedPoint, m matrix.Matrix) []GeneralizedPoint {
	res := p.convert(segs, m, false)
	if !p.caps.MixedPaths && mixedKinds(res) {
		res = p.convert(segs, m, true)
	}
	return res
}

func (p *Plotter) convert(segs []GeneralizedPoint, m matrix.Matrix, flattenAll bool) []GeneralizedPoint {
	out := make([]GeneralizedPoint, 1, len(segs))
	out[0] = GeneralizedPoint{Kind: Line, P: segs[0].P}

	f := flattener{
		ctm:      m,
		flatness: p.caps.Flatness,
		raster:   p.caps.Raster,
	}
	toCubic := !flattenAll && p.caps.native(Cubic, m)

	cur := segs[0].P
	for _, s := range segs[1:] {
		s.Smooth = false
		switch {
		case s.Kind == Line:
			out = append(out, s)
		case !flattenAll && p.caps.native(s.Kind, m):
			out = append(out, s)
		case toCubic && s.Kind == Arc:
			out = arcToCubics(out, cur, s.P, s.C)
		case toCubic && s.Kind == EllipticArc:
			out = ellipticArcToCubics(out, cur, s.P, s.C)
		case toCubic && s.Kind == Quadratic:
			out = append(out, quadraticToCubic(cur, s))
		default:
			f.out = out
			f.segment(cur, s)
			out = f.out
		}
		cur = s.P
	}
	return out
}

// mixedKinds reports whether the path contains more than one kind of
// drawing segment.
func mixedKinds(segs []GeneralizedPoint) bool {
	if len(segs) < 3 {
		return false
	}
	k := segs[1].Kind
	for _, s := range segs[2:] {
		if s.Kind != k {
			return true
		}
	}
	return false
}

// assertCapabilities panics if the converted path still contains
// something the device cannot draw.
func (p *Plotter) assertCapabilities(segs []GeneralizedPoint, m matrix.Matrix) {
	for _, s := range segs[1:] {
		if !p.caps.native(s.Kind, m) {
			panic(&CapabilityError{Device: p.caps.Name, Kind: s.Kind})
		}
	}
	if !p.caps.MixedPaths && mixedKinds(segs) {
		panic(&CapabilityError{Device: p.caps.Name, Kind: segs[len(segs)-1].Kind})
	}
}

// markSmooth sets the Smooth flags of a device space path.  A join is
// smooth if the tangents on both sides point in the same direction.
// For closed paths the join at the start point is considered as well,
// and the first point shares the flag of the last one.
func markSmooth(segs []GeneralizedPoint) {
	n := len(segs)
	closed := isClosed(segs)
	for i := 1; i < n; i++ {
		next := i + 1
		if next == n {
			if !closed {
				segs[i].Smooth = false
				continue
			}
			next = 1
		}
		in := endTangent(segs[i-1].P, segs[i])
		out := startTangent(segs[i].P, segs[next])
		segs[i].Smooth = smoothJoin(in, out)
	}
	segs[0].Smooth = closed && segs[n-1].Smooth
}

func smoothJoin(in, out vec.Vec2) bool {
	cross := in.X*out.Y - in.Y*out.X
	dot := in.X*out.X + in.Y*out.Y
	norm := (in.X*in.X + in.Y*in.Y) * (out.X*out.X + out.Y*out.Y)
	if norm == 0 || dot <= 0 {
		return false
	}
	return cross*cross <= smoothEps*norm
}

// startTangent returns the direction in which segment s leaves its start
// point p0.
func startTangent(p0 vec.Vec2, s GeneralizedPoint) vec.Vec2 {
	switch s.Kind {
	case Arc:
		v0 := p0.Sub(s.C)
		v1 := s.P.Sub(s.C)
		return orient(perp(v0), v0, v1)
	case EllipticArc:
		u := p0.Sub(s.C)
		w := s.P.Sub(s.C)
		if u.X*w.Y-u.Y*w.X > 0 {
			return w
		}
		return w.Mul(-1)
	case Quadratic:
		return firstNonZero(s.C.Sub(p0), s.P.Sub(p0))
	case Cubic:
		return firstNonZero(s.C.Sub(p0), s.D.Sub(p0), s.P.Sub(p0))
	default:
		return s.P.Sub(p0)
	}
}

// endTangent returns the direction in which segment s, starting at p0,
// arrives at its end point.
func endTangent(p0 vec.Vec2, s GeneralizedPoint) vec.Vec2 {
	switch s.Kind {
	case Arc:
		v0 := p0.Sub(s.C)
		v1 := s.P.Sub(s.C)
		return orient(perp(v1), v0, v1)
	case EllipticArc:
		u := p0.Sub(s.C)
		w := s.P.Sub(s.C)
		if u.X*w.Y-u.Y*w.X > 0 {
			return u.Mul(-1)
		}
		return u
	case Quadratic:
		return firstNonZero(s.P.Sub(s.C), s.P.Sub(p0))
	case Cubic:
		return firstNonZero(s.P.Sub(s.D), s.P.Sub(s.C), s.P.Sub(p0))
	default:
		return s.P.Sub(p0)
	}
}

// orient returns t for counterclockwise arcs from v0 to v1 and −t for
// clockwise ones.
func orient(t, v0, v1 vec.Vec2) vec.Vec2 {
	if v0.X*v1.Y-v0.Y*v1.X < 0 {
		return t.Mul(-1)
	}
	return t
}

func firstNonZero(vs ...vec.Vec2) vec.Vec2 {
	for _, v := range vs {
		if v.X != 0 || v.Y != 0 {
			return v
		}
	}
	return vec.Vec2{}
}
