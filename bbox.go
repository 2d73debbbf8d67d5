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
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/plot/outbuf"
)

// UpdateBBox extends the bounding box of page by everything painting the
// device space path segs with the attributes in st can touch.  Devices
// call this from PaintPath.
func UpdateBBox(page *outbuf.Buffer, segs []GeneralizedPoint, st *DrawingState) {
	if len(segs) == 0 {
		return
	}
	hw := 0.0
	if st.Stroked() {
		hw = st.DeviceLineWidth() / 2
	}

	if c, u, w, ok := fullEllipse(segs); ok {
		page.ExtendRect(outbuf.Ellipse(c, u, w, hw))
		return
	}

	page.Extend(segs[0].P)
	var cubics []GeneralizedPoint
	for i := 1; i < len(segs); i++ {
		p0 := segs[i-1].P
		s := segs[i]
		switch s.Kind {
		case Quadratic:
			page.ExtendRect(outbuf.Bezier2(p0, s.C, s.P, hw))
		case Cubic:
			page.ExtendRect(outbuf.Bezier3(p0, s.C, s.D, s.P, hw))
		case Arc, EllipticArc:
			if s.Kind == Arc {
				cubics = arcToCubics(cubics[:0], p0, s.P, s.C)
			} else {
				cubics = ellipticArcToCubics(cubics[:0], p0, s.P, s.C)
			}
			q := p0
			for _, c := range cubics {
				page.ExtendRect(outbuf.Bezier3(q, c.C, c.D, c.P, hw))
				q = c.P
			}
		default:
			d := s.P.Sub(p0)
			page.ExtendRect(outbuf.LineEnd(p0, d.Mul(-1), hw, graphics.LineCapButt))
			page.ExtendRect(outbuf.LineEnd(s.P, d, hw, graphics.LineCapButt))
		}
	}
	if hw == 0 {
		return
	}

	n := len(segs)
	closed := isClosed(segs)
	for i := 1; i < n; i++ {
		if segs[i].Smooth {
			continue
		}
		var next int
		switch {
		case i+1 < n:
			next = i + 1
		case closed:
			next = 1
		default:
			continue
		}
		in := endTangent(segs[i-1].P, segs[i])
		out := startTangent(segs[i].P, segs[next])
		page.ExtendRect(outbuf.LineJoin(segs[i].P, in, out, hw, st.Join, st.MiterLimit))
	}
	if closed {
		return
	}

	start := startTangent(segs[0].P, segs[1])
	page.ExtendRect(outbuf.LineEnd(segs[0].P, start.Mul(-1), hw, st.Cap))
	end := endTangent(segs[n-2].P, segs[n-1])
	page.ExtendRect(outbuf.LineEnd(segs[n-1].P, end, hw, st.Cap))
}

// fullEllipse reports whether segs is a closed path of four quarter arcs
// around a common centre, as drawn by Circle and Ellipse.  If so, it
// returns the centre and a pair of conjugate semi-diameters.
func fullEllipse(segs []GeneralizedPoint) (c, u, w vec.Vec2, ok bool) {
	if len(segs) != 5 || !isClosed(segs) {
		return
	}
	kind := segs[1].Kind
	if kind != Arc && kind != EllipticArc {
		return
	}
	c = segs[1].C
	for _, s := range segs[2:] {
		if s.Kind != kind || s.C != c {
			return
		}
	}

	var v [4]vec.Vec2
	for i := range v {
		v[i] = segs[i].P.Sub(c)
	}
	eps := 1e-9 * v[0].Length()
	if v[2].Add(v[0]).Length() > eps || v[3].Add(v[1]).Length() > eps {
		return
	}
	cross := v[0].X*v[1].Y - v[0].Y*v[1].X
	if math.Abs(cross) <= eps*v[1].Length() {
		return
	}

	u = v[0]
	w = v[1]
	if kind == Arc {
		if math.Abs(v[1].Length()-v[0].Length()) > eps {
			return
		}
		w = perp(u)
	} else if cross < 0 {
		// three-quarter arcs
		return
	}
	return c, u, w, true
}
