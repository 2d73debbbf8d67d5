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

// Package hpgl implements a device which writes HP-GL and HP-GL/2 plotter
// instructions.
//
// The HPGL_VERSION parameter selects the dialect.  Version "1" is plain
// HP-GL, "1.5" adds circular arcs, and "2" adds Bézier curves, polygon
// fills, pen widths and colours, dash patterns and line end styles.
// Coordinates are in plotter units of 1/1016 inch.
package hpgl

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/device/internal/num"
	"seehuhn.de/go/plot/outbuf"
)

// Version is an HP-GL dialect.
type Version int

// These are the supported dialects.
const (
	V1 Version = iota
	V15
	V2
)

func (v Version) String() string {
	switch v {
	case V1:
		return "1"
	case V15:
		return "1.5"
	case V2:
		return "2"
	default:
		return "invalid"
	}
}

// ParseVersion converts the value of the HPGL_VERSION parameter.
func ParseVersion(s string) (Version, error) {
	switch s {
	case "1":
		return V1, nil
	case "1.5":
		return V15, nil
	case "2":
		return V2, nil
	}
	return 0, fmt.Errorf("invalid HP-GL version %q", s)
}

const (
	unitsPerPoint = 1016.0 / 72
	mmPerUnit     = 0.025

	strokePen = 1
	fillPen   = 2
)

// Device writes HP-GL.
type Device struct {
	version Version
	side    float64
	x0, y0  float64

	// Attributes last sent to the plotter.  They are reset at the start
	// of every page.
	pens      [3]color.RGBA64
	penKnown  [3]bool
	pen       int
	lineAttrs string
	textAttrs string

	buf []byte
}

// New creates an HP-GL device for the paper size and dialect given in
// params.
func New(params plot.Params) (*Device, error) {
	v, err := ParseVersion(params.Get("HPGL_VERSION"))
	if err != nil {
		return nil, err
	}
	w, h, err := params.PageSize()
	if err != nil {
		return nil, err
	}
	side := min(w, h)
	return &Device{
		version: v,
		side:    side * unitsPerPoint,
		x0:      (w - side) / 2 * unitsPerPoint,
		y0:      (h - side) / 2 * unitsPerPoint,
	}, nil
}

// Capabilities implements the [plot.Renderer] interface.
func (d *Device) Capabilities() plot.Capabilities {
	caps := plot.Capabilities{
		Name:               "hpgl",
		StickFonts:         plot.Supported,
		FlushLongPolylines: true,
		MaxPolylineLength:  500,
		Flatness:           1,
		DeviceTransform:    matrix.Matrix{d.side, 0, 0, d.side, d.x0, d.y0},
		Output:             plot.OutputStreamed,
		DefaultFont:        stickFont,
	}
	if d.version >= V15 {
		caps.Arc = plot.ScalingUniform
	}
	if d.version >= V2 {
		caps.WideLines = plot.Supported
		caps.DashArray = plot.BestEffort
		caps.SolidFill = plot.Supported
		caps.EvenOddFill = plot.Supported
		caps.NonzeroFill = plot.Supported
		caps.Cubic = plot.ScalingAny
	}
	return caps
}

// OpenDevice implements the [plot.Renderer] interface.
func (d *Device) OpenDevice(page *outbuf.Buffer, pageNum int) error {
	if d.version >= V2 && pageNum == 1 {
		// reset and enter HP-GL/2 mode
		page.WriteString("\x1bE\x1b%0B")
	}
	page.WriteString("IN;")
	if d.version >= V2 {
		page.WriteString("CR0,255,0,255,0,255;NP2;")
	}
	page.WriteString("SP1;\n")

	d.penKnown = [3]bool{}
	d.pen = strokePen
	d.lineAttrs = ""
	d.textAttrs = ""
	return nil
}

// CloseDevice implements the [plot.Renderer] interface.
func (d *Device) CloseDevice(page *outbuf.Buffer) error {
	page.WriteString("PU;SP0;PG;\n")
	return nil
}

// EraseDevice implements the [plot.Renderer] interface.  Ink on paper
// cannot be erased, so this does nothing.
func (d *Device) EraseDevice(page *outbuf.Buffer) error {
	return nil
}

// SetPenColor implements the [plot.Renderer] interface.
func (d *Device) SetPenColor(page *outbuf.Buffer, st *plot.DrawingState) {}

// SetFillColor implements the [plot.Renderer] interface.
func (d *Device) SetFillColor(page *outbuf.Buffer, st *plot.DrawingState) {}

// SetBgColor implements the [plot.Renderer] interface.  The background is
// the colour of the paper.
func (d *Device) SetBgColor(page *outbuf.Buffer, st *plot.DrawingState) {}

// selectPen makes pen i the current pen and gives it colour c.
func (d *Device) selectPen(i int, c color.RGBA64) {
	if d.pen != i {
		d.buf = fmt.Appendf(d.buf, "SP%d;", i)
		d.pen = i
	}
	if d.version < V2 || d.penKnown[i] && d.pens[i] == c {
		return
	}
	d.buf = fmt.Appendf(d.buf, "PC%d,%d,%d,%d;", i, c.R>>8, c.G>>8, c.B>>8)
	d.pens[i] = c
	d.penKnown[i] = true
}

func coord(x float64) int {
	return int(math.Round(x))
}

func (d *Device) point(p vec.Vec2) {
	d.buf = strconv.AppendInt(d.buf, int64(coord(p.X)), 10)
	d.buf = append(d.buf, ',')
	d.buf = strconv.AppendInt(d.buf, int64(coord(p.Y)), 10)
}

// path appends the pen movements for segs.  All segments after the first
// point have the same kind.
func (d *Device) path(segs []plot.GeneralizedPoint) {
	d.buf = append(d.buf, "PU"...)
	d.point(segs[0].P)
	d.buf = append(d.buf, ';')

	switch segs[1].Kind {
	case plot.Arc:
		d.buf = append(d.buf, "PD;"...)
		for i := 1; i < len(segs); i++ {
			s := segs[i]
			a := segs[i-1].P.Sub(s.C)
			b := s.P.Sub(s.C)
			angle := math.Atan2(a.X*b.Y-a.Y*b.X, a.X*b.X+a.Y*b.Y) * 180 / math.Pi
			d.buf = append(d.buf, "AA"...)
			d.point(s.C)
			d.buf = append(d.buf, ',')
			d.buf = num.Append(d.buf, angle, 3)
			d.buf = append(d.buf, ';')
		}
	case plot.Cubic:
		d.buf = append(d.buf, "PD;BZ"...)
		for i := 1; i < len(segs); i++ {
			s := segs[i]
			if i > 1 {
				d.buf = append(d.buf, ',')
			}
			d.point(s.C)
			d.buf = append(d.buf, ',')
			d.point(s.D)
			d.buf = append(d.buf, ',')
			d.point(s.P)
		}
		d.buf = append(d.buf, ';')
	default:
		d.buf = append(d.buf, "PD"...)
		for i := 1; i < len(segs); i++ {
			if i > 1 {
				d.buf = append(d.buf, ',')
			}
			d.point(segs[i].P)
		}
		d.buf = append(d.buf, ';')
	}
}

var capCodes = map[graphics.LineCapStyle]int{
	graphics.LineCapButt:     1,
	graphics.LineCapSquare:   2,
	outbuf.LineCapTriangular: 3,
	graphics.LineCapRound:    4,
}

var joinCodes = map[graphics.LineJoinStyle]int{
	graphics.LineJoinMiter:    1,
	outbuf.LineJoinTriangular: 3,
	graphics.LineJoinRound:    4,
	graphics.LineJoinBevel:    5,
}

// lineAttributes returns the HP-GL/2 instructions which set pen width,
// line ends and dash pattern for st.
func lineAttributes(st *plot.DrawingState) string {
	buf := []byte("PW")
	buf = num.Append(buf, st.DeviceLineWidth()*mmPerUnit, 3)
	buf = fmt.Appendf(buf, ";LA1,%d,2,%d,3,", capCodes[st.Cap], joinCodes[st.Join])
	buf = num.Append(buf, max(st.MiterLimit, 1), 3)
	buf = append(buf, ';')

	dash, _ := st.DeviceDash()
	if len(dash)%2 == 1 {
		dash = append(dash, dash...)
	}
	total := 0.0
	for _, x := range dash {
		total += x
	}
	if total <= 0 {
		return string(append(buf, "LT;"...))
	}
	// The pattern is given in percent of its total length.
	buf = append(buf, "UL8"...)
	for _, x := range dash {
		buf = append(buf, ',')
		buf = num.Append(buf, x/total*100, 2)
	}
	buf = append(buf, ";LT8,"...)
	buf = num.Append(buf, total*mmPerUnit, 3)
	return string(append(buf, ",1;"...))
}

// PaintPath implements the [plot.Renderer] interface.
func (d *Device) PaintPath(page *outbuf.Buffer, segs []plot.GeneralizedPoint, st *plot.DrawingState) error {
	if len(segs) < 2 || !st.Stroked() && !st.Filled() {
		return nil
	}
	plot.UpdateBBox(page, segs, st)
	d.buf = d.buf[:0]

	filled := st.Filled() && d.version >= V2
	if d.version >= V2 && st.Stroked() {
		if a := lineAttributes(st); a != d.lineAttrs {
			d.buf = append(d.buf, a...)
			d.lineAttrs = a
		}
	}

	if filled {
		d.selectPen(fillPen, st.FillRGBA())
		d.buf = append(d.buf, "PM0;"...)
		d.path(segs)
		d.buf = append(d.buf, "PM2;FT1;"...)
		if st.FillRule == plot.EvenOdd {
			d.buf = append(d.buf, "FP0;"...)
		} else {
			d.buf = append(d.buf, "FP1;"...)
		}
		if st.Stroked() {
			d.selectPen(strokePen, st.PenColor)
			d.buf = append(d.buf, "EP;"...)
		}
	} else {
		// Without fills, the outline of a filled path is drawn.
		d.selectPen(strokePen, st.PenColor)
		d.path(segs)
	}
	d.buf = append(d.buf, '\n')
	page.Write(d.buf)
	return nil
}
