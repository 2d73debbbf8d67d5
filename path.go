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
	"seehuhn.de/go/geom/vec"
)

// SegmentKind identifies the type of a path segment.
type SegmentKind uint8

// These are the segment kinds.
const (
	Line SegmentKind = iota

	// Arc is the circular arc of less than 180° from the previous point
	// to P, centred at C.
	Arc

	// EllipticArc is the counterclockwise arc from the previous point to
	// P on the ellipse centred at C which has the conjugate semi-diameters
	// prev−C and P−C.  If (prev−C)×(P−C) is positive the arc is a quarter
	// of the ellipse, otherwise it is three quarters of it.
	EllipticArc

	// Quadratic is a quadratic Bézier curve with control point C.
	Quadratic

	// Cubic is a cubic Bézier curve with control points C and D.
	Cubic
)

func (k SegmentKind) String() string {
	switch k {
	case Line:
		return "line"
	case Arc:
		return "arc"
	case EllipticArc:
		return "elliptic arc"
	case Quadratic:
		return "quadratic"
	case Cubic:
		return "cubic"
	default:
		return "invalid"
	}
}

// GeneralizedPoint is one segment of a path.  The first point of a path
// only gives the starting position, its Kind is ignored.
type GeneralizedPoint struct {
	Kind SegmentKind
	P    vec.Vec2 // end point
	C, D vec.Vec2 // centre (arcs) or control points (Bézier curves)

	// Smooth is set by the Plotter before a path is painted.  It is true
	// if the path continues through P without a corner.
	Smooth bool
}

const initialPathCapacity = 16

// Path is a sequence of segments under construction.
type Path struct {
	segs []GeneralizedPoint
}

// Len returns the number of points in the path, including the initial move.
func (p *Path) Len() int {
	return len(p.segs)
}

// Cap returns the number of points the path can hold before it must grow.
func (p *Path) Cap() int {
	return cap(p.segs)
}

// Append adds a point to the path.  The storage is allocated on first use
// and doubled whenever it is full.
func (p *Path) Append(gp GeneralizedPoint) {
	if len(p.segs) == cap(p.segs) {
		newCap := max(2*cap(p.segs), initialPathCapacity)
		segs := make([]GeneralizedPoint, len(p.segs), newCap)
		copy(segs, p.segs)
		p.segs = segs
	}
	p.segs = append(p.segs, gp)
}

// Segments returns the points of the path.  The slice is valid until the
// path is modified.
func (p *Path) Segments() []GeneralizedPoint {
	return p.segs
}

// Last returns the end point of the last segment.
// The path must not be empty.
func (p *Path) Last() vec.Vec2 {
	return p.segs[len(p.segs)-1].P
}

// IsClosed reports whether the path has at least three points and ends
// exactly where it started.
func (p *Path) IsClosed() bool {
	return isClosed(p.segs)
}

func isClosed(segs []GeneralizedPoint) bool {
	return len(segs) >= 3 && segs[0].P == segs[len(segs)-1].P
}

// Reset empties the path and releases its storage.
func (p *Path) Reset() {
	p.segs = nil
}
