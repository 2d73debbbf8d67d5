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

// Package meta implements a device which records the drawing operations
// in a metafile.  All curve kinds are recorded natively.  A metafile can
// be drawn on any other device using [Replay].
//
// Records use either a compact binary encoding or, if the parameter
// META_PORTABLE is set, a human-readable encoding with one record per
// line.
package meta

import (
	"image/color"
	"math"
	"slices"
	"unicode/utf8"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/device/internal/stdfont"
	"seehuhn.de/go/plot/outbuf"
)

// attributes are the drawing attributes last written to the output.
type attributes struct {
	pen, fill, bg color.RGBA64
	fillLevel     int
	fillRule      plot.FillRule
	penType       int
	width         float64
	capStyle      graphics.LineCapStyle
	join          graphics.LineJoinStyle
	miterLimit    float64
	dash          []float64
	dashOffset    float64
	fontName      string
	fontSize      float64
}

// Device writes a metafile.
type Device struct {
	enc encoder

	last attributes

	// fresh is set at the start of each page, so that the first path of
	// a page records all attributes.
	fresh bool
}

// New creates a metafile device.
func New(params plot.Params) *Device {
	return &Device{
		enc: encoder{portable: params.Bool("META_PORTABLE")},
	}
}

// Capabilities implements the [plot.Renderer] interface.
func (d *Device) Capabilities() plot.Capabilities {
	return plot.Capabilities{
		Name:               "meta",
		WideLines:          plot.Supported,
		DashArray:          plot.Supported,
		SolidFill:          plot.Supported,
		EvenOddFill:        plot.Supported,
		NonzeroFill:        plot.Supported,
		SettableBackground: plot.Supported,
		PSFonts:            plot.Supported,
		Arc:                plot.ScalingUniform,
		EllipticArc:        plot.ScalingAny,
		Quadratic:          plot.ScalingAny,
		Cubic:              plot.ScalingAny,
		MixedPaths:         true,
		Flatness:           1e-4,
		DeviceTransform:    matrix.Identity,
		Output:             plot.OutputStreamed,
		DefaultFont:        string(stdfont.Fallback),
	}
}

func (d *Device) record(page *outbuf.Buffer, op Op, args ...float64) {
	d.enc.w = page
	d.enc.record(op, args, "")
}

func (d *Device) text(page *outbuf.Buffer, op Op, s string) {
	d.enc.w = page
	d.enc.record(op, nil, s)
}

func rgba(c color.RGBA64) []float64 {
	return []float64{float64(c.R), float64(c.G), float64(c.B), float64(c.A)}
}

// OpenDevice implements the [plot.Renderer] interface.
func (d *Device) OpenDevice(page *outbuf.Buffer, pageNum int) error {
	if pageNum == 1 {
		if d.enc.portable {
			page.WriteString(magicPortable)
		} else {
			page.WriteString(magicBinary)
		}
	}
	d.record(page, OpOpen, float64(pageNum))
	d.fresh = true
	return nil
}

// CloseDevice implements the [plot.Renderer] interface.
func (d *Device) CloseDevice(page *outbuf.Buffer) error {
	d.record(page, OpClose)
	return nil
}

// EraseDevice implements the [plot.Renderer] interface.
func (d *Device) EraseDevice(page *outbuf.Buffer) error {
	d.record(page, OpErase)
	return nil
}

// SetPenColor implements the [plot.Renderer] interface.
func (d *Device) SetPenColor(page *outbuf.Buffer, st *plot.DrawingState) {
	d.setPen(page, st.PenColor)
}

// SetFillColor implements the [plot.Renderer] interface.
func (d *Device) SetFillColor(page *outbuf.Buffer, st *plot.DrawingState) {
	if d.fresh || d.last.fill != st.FillColor {
		d.record(page, OpFillColor, rgba(st.FillColor)...)
		d.last.fill = st.FillColor
	}
}

// SetBgColor implements the [plot.Renderer] interface.
func (d *Device) SetBgColor(page *outbuf.Buffer, st *plot.DrawingState) {
	d.record(page, OpBgColor, rgba(st.BgColor)...)
	d.last.bg = st.BgColor
}

func (d *Device) setPen(page *outbuf.Buffer, c color.RGBA64) {
	if d.fresh || d.last.pen != c {
		d.record(page, OpPenColor, rgba(c)...)
		d.last.pen = c
	}
}

// RetrieveFont implements the [plot.Renderer] interface.
func (d *Device) RetrieveFont(st *plot.DrawingState) plot.FontMetrics {
	_, m := stdfont.Retrieve(st.FontName, st.FontSize)
	return m
}

// writeAttributes records all path attributes which changed since the
// last path.
func (d *Device) writeAttributes(page *outbuf.Buffer, st *plot.DrawingState) {
	last := &d.last
	all := d.fresh
	if all || st.FillLevel != last.fillLevel {
		d.record(page, OpFillLevel, float64(st.FillLevel))
		last.fillLevel = st.FillLevel
	}
	if all || st.FillRule != last.fillRule {
		d.record(page, OpFillRule, float64(st.FillRule))
		last.fillRule = st.FillRule
	}
	if all || st.PenType != last.penType {
		d.record(page, OpPenType, float64(st.PenType))
		last.penType = st.PenType
	}
	if w := st.DeviceLineWidth(); all || w != last.width {
		d.record(page, OpLineWidth, w)
		last.width = w
	}
	if all || st.Cap != last.capStyle {
		d.record(page, OpCap, float64(st.Cap))
		last.capStyle = st.Cap
	}
	if all || st.Join != last.join {
		d.record(page, OpJoin, float64(st.Join))
		last.join = st.Join
	}
	if all || st.MiterLimit != last.miterLimit {
		d.record(page, OpMiterLimit, st.MiterLimit)
		last.miterLimit = st.MiterLimit
	}
	dash, offset := st.DeviceDash()
	if all || !slices.Equal(dash, last.dash) || offset != last.dashOffset {
		args := make([]float64, 0, len(dash)+2)
		args = append(args, float64(len(dash)))
		args = append(args, dash...)
		args = append(args, offset)
		d.record(page, OpDash, args...)
		last.dash = dash
		last.dashOffset = offset
	}
	d.fresh = false
}

// PaintPath implements the [plot.Renderer] interface.
func (d *Device) PaintPath(page *outbuf.Buffer, segs []plot.GeneralizedPoint, st *plot.DrawingState) error {
	if len(segs) < 2 {
		return nil
	}
	plot.UpdateBBox(page, segs, st)
	d.writeAttributes(page, st)

	d.record(page, OpMove, segs[0].P.X, segs[0].P.Y)
	for _, s := range segs[1:] {
		switch s.Kind {
		case plot.Line:
			d.record(page, OpLine, s.P.X, s.P.Y)
		case plot.Arc:
			d.record(page, OpArc, s.C.X, s.C.Y, s.P.X, s.P.Y)
		case plot.EllipticArc:
			d.record(page, OpEllArc, s.C.X, s.C.Y, s.P.X, s.P.Y)
		case plot.Quadratic:
			d.record(page, OpBezier2, s.C.X, s.C.Y, s.P.X, s.P.Y)
		case plot.Cubic:
			d.record(page, OpBezier3, s.C.X, s.C.Y, s.D.X, s.D.Y, s.P.X, s.P.Y)
		}
	}
	d.record(page, OpEndPath)
	return nil
}

// PaintText implements the [plot.TextPainter] interface.
func (d *Device) PaintText(page *outbuf.Buffer, text string, st *plot.DrawingState) error {
	d.setPen(page, st.PenColor)
	f, m := stdfont.Retrieve(st.FontName, st.FontSize)
	if d.fresh || string(f) != d.last.fontName {
		d.text(page, OpFontName, string(f))
		d.last.fontName = string(f)
	}
	scale := deviceScale(st.Transform)
	if size := st.FontSize * scale; d.fresh || size != d.last.fontSize {
		d.record(page, OpFontSize, size)
		d.last.fontSize = size
	}

	m0 := st.Transform
	pos := vec.Vec2{
		X: m0[0]*st.Pos.X + m0[2]*st.Pos.Y + m0[4],
		Y: m0[1]*st.Pos.X + m0[3]*st.Pos.Y + m0[5],
	}
	d.record(page, OpMove, pos.X, pos.Y)
	d.text(page, OpLabel, text)

	width := m.AvgWidth * scale * float64(utf8.RuneCountInString(text))
	page.Extend(pos)
	page.Extend(pos.Add(vec.Vec2{X: width, Y: m.Ascent * scale}))
	page.Fonts.Add(stdfont.Index(f))
	return nil
}

func deviceScale(m matrix.Matrix) float64 {
	return math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))
}
