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
	"image/color"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// FillRule selects how the interior of a self-intersecting path is
// determined.
type FillRule uint8

// These are the supported fill rules.
const (
	EvenOdd FillRule = iota
	NonZero
)

// LineMode selects one of the predefined line styles.
type LineMode uint8

// These are the predefined line styles.
const (
	LineSolid LineMode = iota
	LineDotted
	LineDotDashed
	LineShortDashed
	LineLongDashed
	LineDotDotDashed
	LineDotDotDotDashed

	// LineDisconnected draws a dot at every vertex of a path instead of
	// connecting the vertices.
	LineDisconnected
)

var lineModeNames = []string{
	LineSolid:           "solid",
	LineDotted:          "dotted",
	LineDotDashed:       "dotdashed",
	LineShortDashed:     "shortdashed",
	LineLongDashed:      "longdashed",
	LineDotDotDashed:    "dotdotdashed",
	LineDotDotDotDashed: "dotdotdotdashed",
	LineDisconnected:    "disconnected",
}

// dashPatterns gives the dash patterns of the line modes, in units of
// the line width.
var dashPatterns = [][]float64{
	LineDotted:          {1, 3},
	LineDotDashed:       {4, 3, 1, 3},
	LineShortDashed:     {4, 4},
	LineLongDashed:      {7, 4},
	LineDotDotDashed:    {4, 3, 1, 3, 1, 3},
	LineDotDotDotDashed: {4, 3, 1, 3, 1, 3, 1, 3},
	LineDisconnected:    nil,
}

func (m LineMode) String() string {
	if int(m) < len(lineModeNames) {
		return lineModeNames[m]
	}
	return "invalid"
}

// Sizes of the default line width, font size and minimal dash unit, as
// fractions of the drawing area.
const (
	defaultLineWidthNDC = 1.0 / 850
	defaultFontSizeNDC  = 1.0 / 50
	minDashUnitNDC      = 1.0 / 576
)

const defaultMiterLimit = 10.43

// FontMetrics describes the font selected in a drawing state.
// All lengths are in user units.
type FontMetrics struct {
	Name      string
	Size      float64
	Ascent    float64
	Descent   float64
	CapHeight float64
	AvgWidth  float64

	// Substituted is set if the device could not provide the requested
	// font and used Name instead.
	Substituted bool
}

// DrawingState holds all modal drawing attributes.  The states form a
// stack; SaveState pushes a copy of the current state and RestoreState
// returns to the previous one.
type DrawingState struct {
	// Transform maps user space to device space.
	Transform matrix.Matrix

	// Pos is the current point, in user space.
	Pos vec.Vec2

	FillRule   FillRule
	LineMode   LineMode
	Cap        graphics.LineCapStyle
	Join       graphics.LineJoinStyle
	MiterLimit float64

	// LineWidth is the stroke width in user units.
	LineWidth float64

	// Dash, if non-nil, overrides the dash pattern of LineMode.
	// Lengths are in user units.
	Dash       []float64
	DashOffset float64

	FontName string
	FontSize float64
	Font     FontMetrics

	PenColor  color.RGBA64
	FillColor color.RGBA64
	BgColor   color.RGBA64

	// FillLevel is 0 for unfilled paths.  Level 1 fills with FillColor,
	// higher levels desaturate the fill colour up to white at 0xffff.
	FillLevel int

	// PenType is 0 if paths are not stroked.
	PenType int

	userMatrix       matrix.Matrix // user space to NDC
	deviceMatrix     matrix.Matrix // NDC to device space
	defaultLineWidth bool
	defaultFontSize  bool

	path     Path
	previous *DrawingState
}

// newDrawingState returns the bottom-of-stack state with the default
// attributes for a device.
func newDrawingState(caps *Capabilities, bg color.RGBA64) *DrawingState {
	s := &DrawingState{
		FillRule:         EvenOdd,
		LineMode:         LineSolid,
		Cap:              graphics.LineCapButt,
		Join:             graphics.LineJoinMiter,
		MiterLimit:       defaultMiterLimit,
		FontName:         caps.DefaultFont,
		PenColor:         black,
		FillColor:        black,
		BgColor:          bg,
		PenType:          1,
		deviceMatrix:     caps.DeviceTransform,
		defaultLineWidth: true,
		defaultFontSize:  true,
	}
	s.setUserMatrix(matrix.Identity)
	return s
}

// clone returns a deep copy of s with an empty path, linked to s as its
// previous state.
func (s *DrawingState) clone() *DrawingState {
	c := *s
	c.Dash = slices.Clone(s.Dash)
	c.path = Path{}
	c.previous = s
	return &c
}

// setUserMatrix sets the map from user space to NDC.  Line width and font
// size which were never set explicitly follow the change of scale.
func (s *DrawingState) setUserMatrix(m matrix.Matrix) {
	s.userMatrix = m
	s.Transform = m.Mul(s.deviceMatrix)
	if s.defaultLineWidth {
		s.LineWidth = s.ndcToUser(defaultLineWidthNDC)
	}
	if s.defaultFontSize {
		s.FontSize = s.ndcToUser(defaultFontSizeNDC)
	}
}

// ndcToUser converts a length in NDC units to user units.
func (s *DrawingState) ndcToUser(d float64) float64 {
	det := math.Abs(s.userMatrix[0]*s.userMatrix[3] - s.userMatrix[1]*s.userMatrix[2])
	if det == 0 {
		return d
	}
	return d / math.Sqrt(det)
}

// deviceScale returns the factor by which the transform scales lengths,
// on average.
func (s *DrawingState) deviceScale() float64 {
	m := s.Transform
	return math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))
}

// Filled reports whether paths are filled.
func (s *DrawingState) Filled() bool {
	return s.FillLevel > 0
}

// Stroked reports whether paths are stroked.
func (s *DrawingState) Stroked() bool {
	return s.PenType != 0
}

// DeviceLineWidth returns the line width in device units.
func (s *DrawingState) DeviceLineWidth() float64 {
	return s.LineWidth * s.deviceScale()
}

// FillRGBA returns the colour used to fill paths, taking the fill level
// into account.
func (s *DrawingState) FillRGBA() color.RGBA64 {
	if s.FillLevel <= 1 {
		return s.FillColor
	}
	level := min(s.FillLevel, 0xffff)
	t := float64(level-1) / float64(0xffff-1)
	mix := func(c uint16) uint16 {
		return uint16(math.Round(float64(c) + t*float64(0xffff-int(c))))
	}
	c := s.FillColor
	return color.RGBA64{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: 0xffff}
}

// DashArray returns the dash pattern in user units, or nil for solid lines.
func (s *DrawingState) DashArray() []float64 {
	if s.Dash != nil {
		return s.Dash
	}
	if int(s.LineMode) >= len(dashPatterns) {
		return nil
	}
	pattern := dashPatterns[s.LineMode]
	if pattern == nil {
		return nil
	}
	unit := max(s.LineWidth, s.ndcToUser(minDashUnitNDC))
	res := make([]float64, len(pattern))
	for i, d := range pattern {
		res[i] = d * unit
	}
	return res
}

// DeviceDash returns the dash pattern and offset in device units.
// The pattern is nil for solid lines.
func (s *DrawingState) DeviceDash() ([]float64, float64) {
	dash := s.DashArray()
	if dash == nil {
		return nil, 0
	}
	scale := s.deviceScale()
	res := make([]float64, len(dash))
	for i, d := range dash {
		res[i] = d * scale
	}
	return res, s.DashOffset * scale
}

// toDevice maps a user space point to device space.
func (s *DrawingState) toDevice(p vec.Vec2) vec.Vec2 {
	return apply(s.Transform, p)
}

func apply(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

func applyLinear(m matrix.Matrix, v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*v.X + m[2]*v.Y,
		Y: m[1]*v.X + m[3]*v.Y,
	}
}

// SaveState pushes a copy of the current drawing state.  The path in
// progress is ended first.
func (p *Plotter) SaveState() error {
	if err := p.check(); err != nil {
		return err
	}
	if err := p.endPath(); err != nil {
		return err
	}
	p.state = p.state.clone()
	p.depth++
	return nil
}

// RestoreState ends the current path and returns to the drawing state
// which was current before the matching SaveState.
func (p *Plotter) RestoreState() error {
	if err := p.check(); err != nil {
		return err
	}
	if p.state.previous == nil {
		p.warn("restorestate: no saved drawing state")
		return p.fail(ErrStateUnderflow)
	}
	if err := p.endPath(); err != nil {
		return err
	}
	top := p.state
	p.state = top.previous
	top.previous = nil
	p.depth--
	return nil
}

// State returns a copy of the current drawing state.
// The copy does not include the path in progress.
func (p *Plotter) State() (DrawingState, error) {
	if err := p.check(); err != nil {
		return DrawingState{}, err
	}
	s := *p.state
	s.Dash = slices.Clone(s.Dash)
	s.path = Path{}
	s.previous = nil
	return s, nil
}
