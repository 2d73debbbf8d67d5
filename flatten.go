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

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// MaxArcSubdivisions is the maximal recursion depth when curves are
// approximated by line segments.  After this many halvings, the chordal
// deviation of an arc of radius r is below 1e-4·r, whatever the angle.
const MaxArcSubdivisions = 8

// Arc subdivision
//
// A circular arc with half angle α and radius r deviates from its chord by
// the sagitta r·s with s = 1 − cos α.  Halving the arc gives pieces with
// relative sagitta
//
//	s' = 1 − cos(α/2) = 1 − sqrt(1 − s/2),
//
// so the deviation for every depth can be tabulated in advance.  The
// midpoint of the arc lies at distance h·|chord| from the chord midpoint,
// with the chord factor h = tan(α/2)/2 = sqrt(s/(2−s))/2.
//
// Elliptic arcs are images of circular arcs under the affine map A whose
// columns are two conjugate semi-diameters.  Since affine maps preserve
// midpoints, the arc midpoint is obtained from the chord d as
//
//	mid = (p0+p1)/2 + h·A·R·A⁻¹·d,
//
// where R is a rotation by −90° for arcs traversed with increasing
// parameter and by +90° otherwise.

// chordTable gives the relative sagitta s and the chord factor h of the
// arc pieces at every subdivision depth.
type chordTable struct {
	s [MaxArcSubdivisions + 1]float64
	h [MaxArcSubdivisions + 1]float64
}

// newChordTable tabulates the subdivision of an arc whose relative sagitta
// is s0.  s0 ranges from 0 (no arc) to 2 (full circle).
func newChordTable(s0 float64) *chordTable {
	t := &chordTable{}
	t.s[0] = s0
	for i := range t.s {
		if i > 0 {
			// 1 − sqrt(1 − s/2), rewritten to avoid cancellation
			s := t.s[i-1] / 2
			t.s[i] = s / (1 + math.Sqrt(1-s))
		}
		t.h[i] = 0.5 * math.Sqrt(t.s[i]/(2-t.s[i]))
	}
	return t
}

var (
	// quarterArcTable is used for quarter ellipses (half angle 45°).
	quarterArcTable = newChordTable(1 - math.Sqrt2/2)

	// threeQuarterArcTable is used for three-quarter ellipses
	// (half angle 135°).
	threeQuarterArcTable = newChordTable(1 + math.Sqrt2/2)
)

// offsetMatrix is a 2×2 matrix in row-major order.
type offsetMatrix [4]float64

var (
	rotMinus90 = offsetMatrix{0, 1, -1, 0}
	rotPlus90  = offsetMatrix{0, -1, 1, 0}
)

func (m offsetMatrix) apply(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: m[0]*v.X + m[1]*v.Y, Y: m[2]*v.X + m[3]*v.Y}
}

// conjugate returns A·r·A⁻¹ where A has the columns u and w.
func conjugate(r offsetMatrix, u, w vec.Vec2) offsetMatrix {
	det := u.X*w.Y - w.X*u.Y
	a := offsetMatrix{u.X, w.X, u.Y, w.Y}
	aInv := offsetMatrix{w.Y / det, -w.X / det, -u.Y / det, u.X / det}
	return mul2(mul2(a, r), aInv)
}

func mul2(a, b offsetMatrix) offsetMatrix {
	return offsetMatrix{
		a[0]*b[0] + a[1]*b[2], a[0]*b[1] + a[1]*b[3],
		a[2]*b[0] + a[3]*b[2], a[2]*b[1] + a[3]*b[3],
	}
}

// flattener approximates curves by line segments.  All points are in
// user space; tolerances are measured in device space.
type flattener struct {
	ctm      matrix.Matrix
	flatness float64
	raster   bool

	out  []GeneralizedPoint
	last vec.Vec2 // last point emitted
}

func (f *flattener) lineTo(p vec.Vec2) {
	f.out = append(f.out, GeneralizedPoint{Kind: Line, P: p})
	f.last = p
}

// samePixel reports whether all points map to the same device pixel.
func (f *flattener) samePixel(a vec.Vec2, pts ...vec.Vec2) bool {
	da := apply(f.ctm, a)
	x, y := math.Round(da.X), math.Round(da.Y)
	for _, p := range pts {
		dp := apply(f.ctm, p)
		if math.Round(dp.X) != x || math.Round(dp.Y) != y {
			return false
		}
	}
	return true
}

// leaf emits a line to p.  On raster devices, lines which stay within
// one pixel are skipped.
func (f *flattener) leaf(p vec.Vec2) {
	if f.raster && f.samePixel(f.last, p) {
		return
	}
	f.lineTo(p)
}

// segment flattens the curve s, which starts at p0, and appends the line
// segments to f.out.  At least one segment is appended, and the last one
// ends exactly at s.P.
func (f *flattener) segment(p0 vec.Vec2, s GeneralizedPoint) {
	n0 := len(f.out)
	f.last = p0

	switch s.Kind {
	case Arc:
		f.circularArc(p0, s.P, s.C)
	case EllipticArc:
		f.ellipticArc(p0, s.P, s.C)
	case Quadratic:
		f.quadratic(p0, s.C, s.P, 0)
	case Cubic:
		f.cubic(p0, s.C, s.D, s.P, 0)
	}

	if len(f.out) == n0 || f.last != s.P {
		f.lineTo(s.P)
	}
}

// circularArc flattens the minor arc from p0 to p1 around c.
func (f *flattener) circularArc(p0, p1, c vec.Vec2) {
	v0 := p0.Sub(c)
	v1 := p1.Sub(c)
	cross := v0.X*v1.Y - v0.Y*v1.X
	dot := v0.X*v1.X + v0.Y*v1.Y
	theta := math.Atan2(math.Abs(cross), dot)

	tab := newChordTable(1 - math.Cos(theta/2))
	rot := rotMinus90
	if cross < 0 {
		rot = rotPlus90
	}
	r := v0.Length()
	devRadius := r * maxRadius(f.ctm, vec.Vec2{X: 1}, vec.Vec2{Y: 1})
	f.arc(p0, p1, rot, tab, devRadius, 0)
}

// ellipticArc flattens the counterclockwise arc from p0 to p1 on the
// ellipse with conjugate semi-diameters p0−c and p1−c.
func (f *flattener) ellipticArc(p0, p1, c vec.Vec2) {
	u := p0.Sub(c)
	w := p1.Sub(c)
	cross := u.X*w.Y - u.Y*w.X

	var tab *chordTable
	var rot offsetMatrix
	if cross > 0 {
		tab = quarterArcTable
		rot = conjugate(rotMinus90, u, w)
	} else {
		tab = threeQuarterArcTable
		rot = conjugate(rotPlus90, u, w)
	}
	devRadius := maxRadius(f.ctm, u, w)
	f.arc(p0, p1, rot, tab, devRadius, 0)
}

// arc recursively bisects the arc piece from p0 to p1.  devRadius bounds
// the radius of the arc in device space.
func (f *flattener) arc(p0, p1 vec.Vec2, rot offsetMatrix, tab *chordTable, devRadius float64, depth int) {
	if depth < MaxArcSubdivisions &&
		devRadius*tab.s[depth] > f.flatness &&
		!(f.raster && f.samePixel(p0, p1)) {
		d := p1.Sub(p0)
		mid := p0.Add(p1).Mul(0.5).Add(rot.apply(d).Mul(tab.h[depth]))
		f.arc(p0, mid, rot, tab, devRadius, depth+1)
		f.arc(mid, p1, rot, tab, devRadius, depth+1)
		return
	}
	f.leaf(p1)
}

// quadratic flattens a quadratic Bézier curve by de Casteljau subdivision.
func (f *flattener) quadratic(p0, p1, p2 vec.Vec2, depth int) {
	if depth < MaxArcSubdivisions &&
		!(f.raster && f.samePixel(p0, p1, p2)) &&
		f.deviation(p0, p2, p1)/2 > f.flatness {
		q0 := p0.Add(p1).Mul(0.5)
		q1 := p1.Add(p2).Mul(0.5)
		m := q0.Add(q1).Mul(0.5)
		f.quadratic(p0, q0, m, depth+1)
		f.quadratic(m, q1, p2, depth+1)
		return
	}
	f.leaf(p2)
}

// cubic flattens a cubic Bézier curve by de Casteljau subdivision.
func (f *flattener) cubic(p0, p1, p2, p3 vec.Vec2, depth int) {
	if depth < MaxArcSubdivisions &&
		!(f.raster && f.samePixel(p0, p1, p2, p3)) &&
		0.75*max(f.deviation(p0, p3, p1), f.deviation(p0, p3, p2)) > f.flatness {
		q0 := p0.Add(p1).Mul(0.5)
		q1 := p1.Add(p2).Mul(0.5)
		q2 := p2.Add(p3).Mul(0.5)
		r0 := q0.Add(q1).Mul(0.5)
		r1 := q1.Add(q2).Mul(0.5)
		m := r0.Add(r1).Mul(0.5)
		f.cubic(p0, q0, r0, m, depth+1)
		f.cubic(m, r1, q2, p3, depth+1)
		return
	}
	f.leaf(p3)
}

// deviation returns the device space distance of the point q from the
// line through a and b.
func (f *flattener) deviation(a, b, q vec.Vec2) float64 {
	chord := applyLinear(f.ctm, b.Sub(a))
	d := applyLinear(f.ctm, q.Sub(a))
	l := chord.Length()
	if l == 0 {
		return d.Length()
	}
	return math.Abs(chord.X*d.Y-chord.Y*d.X) / l
}

// maxRadius returns the largest radius of the device space image of the
// ellipse with conjugate semi-diameters u and w.  This is the largest
// singular value of L·[u w], where L is the linear part of m.
func maxRadius(m matrix.Matrix, u, w vec.Vec2) float64 {
	mu := applyLinear(m, u)
	mw := applyLinear(m, w)
	f := mu.X*mu.X + mu.Y*mu.Y + mw.X*mw.X + mw.Y*mw.Y
	det := mu.X*mw.Y - mu.Y*mw.X
	return math.Sqrt((f + math.Sqrt(max(0, f*f-4*det*det))) / 2)
}
