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
)

// Support describes whether a device implements an optional feature.
type Support uint8

// These are the possible values for Support.
const (
	Unsupported Support = iota
	Supported

	// BestEffort means that the device attempts the feature but may
	// substitute something simpler.
	BestEffort
)

func (s Support) String() string {
	switch s {
	case Unsupported:
		return "unsupported"
	case Supported:
		return "supported"
	case BestEffort:
		return "best effort"
	default:
		return "invalid"
	}
}

// Available reports whether the feature can be used at all.
func (s Support) Available() bool {
	return s == Supported || s == BestEffort
}

// Scaling describes under which user-to-device transformations a device
// can draw a curve kind natively.
type Scaling uint8

// These are the possible values for Scaling.
const (
	// ScalingNone means the device never draws the curve kind natively.
	ScalingNone Scaling = iota

	// ScalingUniform allows transformations which preserve angles:
	// rotations, reflections and uniform scaling.
	ScalingUniform

	// ScalingAxesPreserved allows transformations which map the
	// coordinate axes to themselves.
	ScalingAxesPreserved

	// ScalingAny allows all non-singular transformations.
	ScalingAny
)

// Permits reports whether a curve can be passed to the device unchanged
// when the user-to-device transformation is m.
func (s Scaling) Permits(m matrix.Matrix) bool {
	switch s {
	case ScalingAny:
		return true
	case ScalingUniform:
		return isConformal(m)
	case ScalingAxesPreserved:
		return m[1] == 0 && m[2] == 0
	default:
		return false
	}
}

// isConformal reports whether the linear part of m is a multiple of an
// orthogonal matrix.
func isConformal(m matrix.Matrix) bool {
	scale := math.Abs(m[0]) + math.Abs(m[1]) + math.Abs(m[2]) + math.Abs(m[3])
	if scale == 0 {
		return false
	}
	eps := 1e-10 * scale
	rotation := math.Abs(m[0]-m[3]) <= eps && math.Abs(m[1]+m[2]) <= eps
	reflection := math.Abs(m[0]+m[3]) <= eps && math.Abs(m[1]-m[2]) <= eps
	return rotation || reflection
}

// OutputModel describes when a device's output reaches the output stream.
type OutputModel uint8

// These are the possible values for OutputModel.
const (
	// OutputNone devices produce no output.
	OutputNone OutputModel = iota

	// OutputStreamed devices write their output as they draw.
	OutputStreamed

	// OutputOnePage devices write the first page when it is closed.
	// Later pages are drawn but discarded.
	OutputOnePage

	// OutputPageAtATime devices write each page when it is closed.
	OutputPageAtATime

	// OutputAllPages devices write all pages together when the Plotter
	// is terminated.
	OutputAllPages
)

// Capabilities describes what a device can draw.  A device reports its
// capabilities once, when the Plotter is created, and the Plotter never
// changes them afterwards.
type Capabilities struct {
	// Name identifies the device in diagnostics.
	Name string

	WideLines          Support
	DashArray          Support
	SolidFill          Support
	EvenOddFill        Support
	NonzeroFill        Support
	SettableBackground Support

	PSFonts    Support
	StickFonts Support
	OtherFonts Support

	// Arc, EllipticArc, Quadratic and Cubic give the transformations under
	// which the corresponding curve kinds can be drawn natively.  Line
	// segments are always accepted.
	Arc         Scaling
	EllipticArc Scaling
	Quadratic   Scaling
	Cubic       Scaling

	// MixedPaths indicates that a single path may contain segments of
	// different kinds.  Without it, such paths are flattened.
	MixedPaths bool

	// FlushLongPolylines makes the Plotter end unfilled paths once they
	// reach MaxPolylineLength points.
	FlushLongPolylines bool
	MaxPolylineLength  int

	// Raster indicates an integer pixel grid.  Curve subdivision stops
	// once both ends of a piece fall into the same pixel.
	Raster bool

	// Flatness is the maximal deviation between a curve and its
	// polygonal approximation, in device units.
	Flatness float64

	// DeviceTransform maps normalized device coordinates, where the
	// unit square is the drawing area, to device space.
	DeviceTransform matrix.Matrix

	Output OutputModel

	DefaultFont string
}

// scaling returns the Scaling which applies to segments of kind k.
func (c *Capabilities) scaling(k SegmentKind) Scaling {
	switch k {
	case Line:
		return ScalingAny
	case Arc:
		return c.Arc
	case EllipticArc:
		return c.EllipticArc
	case Quadratic:
		return c.Quadratic
	case Cubic:
		return c.Cubic
	default:
		return ScalingNone
	}
}

// native reports whether a segment of kind k can be given to the device
// unchanged under the transformation m.  Elliptic arcs are described by
// their orientation, so they are only passed on under transformations
// with positive determinant.
func (c *Capabilities) native(k SegmentKind, m matrix.Matrix) bool {
	if !c.scaling(k).Permits(m) {
		return false
	}
	if k == EllipticArc && m[0]*m[3]-m[1]*m[2] <= 0 {
		return false
	}
	return true
}
