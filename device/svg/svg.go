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

// Package svg implements a device which writes SVG images.
//
// The drawing area is the largest square which fits on the page selected
// by the PAGESIZE parameter, centred on the page.  Only the first page
// drawn appears in the output.
package svg

import (
	"encoding/xml"
	"fmt"
	"image/color"
	"math"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/font/standard"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/device/internal/num"
	"seehuhn.de/go/plot/device/internal/stdfont"
	"seehuhn.de/go/plot/outbuf"
)

// places is the number of decimal places used for coordinates.
const places = 3

// Device writes SVG.
type Device struct {
	width, height float64 // page size in points
	side          float64 // size of the drawing area

	bg    color.RGBA64
	blank bool

	buf []byte
}

// New creates an SVG device.
func New(params plot.Params) (*Device, error) {
	w, h, err := params.PageSize()
	if err != nil {
		return nil, err
	}
	return &Device{width: w, height: h, side: min(w, h)}, nil
}

// Capabilities implements the [plot.Renderer] interface.
func (d *Device) Capabilities() plot.Capabilities {
	x0 := (d.width - d.side) / 2
	y0 := (d.height - d.side) / 2
	return plot.Capabilities{
		Name:               "svg",
		WideLines:          plot.Supported,
		DashArray:          plot.Supported,
		SolidFill:          plot.Supported,
		EvenOddFill:        plot.Supported,
		NonzeroFill:        plot.Supported,
		SettableBackground: plot.Supported,
		PSFonts:            plot.BestEffort,
		Arc:                plot.ScalingUniform,
		Quadratic:          plot.ScalingAny,
		Cubic:              plot.ScalingAny,
		MixedPaths:         true,
		Flatness:           0.1,
		DeviceTransform:    matrix.Matrix{d.side, 0, 0, -d.side, x0, y0 + d.side},
		Output:             plot.OutputOnePage,
		DefaultFont:        string(standard.Helvetica),
	}
}

// OpenDevice implements the [plot.Renderer] interface.
func (d *Device) OpenDevice(page *outbuf.Buffer, pageNum int) error {
	w := num.Format(d.width, places)
	h := num.Format(d.height, places)
	fmt.Fprintf(page, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%spt" height="%spt" viewBox="0 0 %s %s">
`, w, h, w, h)
	page.Freeze()
	d.blank = true // the background is written by SetBgColor
	return nil
}

// background discards the page contents and paints the background.
func (d *Device) background(page *outbuf.Buffer) {
	page.ResetToFrozen()
	fmt.Fprintf(page, "<rect width=\"100%%\" height=\"100%%\" fill=\"%s\"/>\n", hex(d.bg))
	d.blank = true
}

// EraseDevice implements the [plot.Renderer] interface.
func (d *Device) EraseDevice(page *outbuf.Buffer) error {
	d.background(page)
	return nil
}

// CloseDevice implements the [plot.Renderer] interface.
func (d *Device) CloseDevice(page *outbuf.Buffer) error {
	page.WriteString("</svg>\n")
	return nil
}

// SetPenColor implements the [plot.Renderer] interface.
// Colours are written as attributes of each path.
func (d *Device) SetPenColor(page *outbuf.Buffer, st *plot.DrawingState) {}

// SetFillColor implements the [plot.Renderer] interface.
func (d *Device) SetFillColor(page *outbuf.Buffer, st *plot.DrawingState) {}

// SetBgColor implements the [plot.Renderer] interface.  If nothing has
// been drawn yet, the background is repainted at once.
func (d *Device) SetBgColor(page *outbuf.Buffer, st *plot.DrawingState) {
	d.bg = st.BgColor
	if d.blank {
		d.background(page)
	}
}

// RetrieveFont implements the [plot.Renderer] interface.
func (d *Device) RetrieveFont(st *plot.DrawingState) plot.FontMetrics {
	_, m := stdfont.Retrieve(st.FontName, st.FontSize)
	return m
}

// hex formats the colour as #rrggbb.  Colours are opaque.
func hex(c color.RGBA64) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R>>8, c.G>>8, c.B>>8)
}

var capNames = map[graphics.LineCapStyle]string{
	graphics.LineCapButt:   "butt",
	graphics.LineCapRound:  "round",
	graphics.LineCapSquare: "square",
}

var joinNames = map[graphics.LineJoinStyle]string{
	graphics.LineJoinMiter: "miter",
	graphics.LineJoinRound: "round",
	graphics.LineJoinBevel: "bevel",
}

func (d *Device) point(p vec.Vec2) {
	d.buf = num.Append(d.buf, p.X, places)
	d.buf = append(d.buf, ' ')
	d.buf = num.Append(d.buf, p.Y, places)
}

// pathData converts a device space path to SVG path syntax.
func (d *Device) pathData(segs []plot.GeneralizedPoint) {
	d.buf = append(d.buf, 'M')
	d.point(segs[0].P)
	for i := 1; i < len(segs); i++ {
		s := segs[i]
		switch s.Kind {
		case plot.Arc:
			p0 := segs[i-1].P
			r := p0.Sub(s.C).Length()
			a, b := p0.Sub(s.C), s.P.Sub(s.C)
			sweep := "0"
			if a.X*b.Y-a.Y*b.X > 0 {
				sweep = "1"
			}
			d.buf = append(d.buf, 'A')
			d.buf = num.Append(d.buf, r, places)
			d.buf = append(d.buf, ' ')
			d.buf = num.Append(d.buf, r, places)
			d.buf = append(d.buf, " 0 0 "...)
			d.buf = append(d.buf, sweep...)
			d.buf = append(d.buf, ' ')
			d.point(s.P)
		case plot.Quadratic:
			d.buf = append(d.buf, 'Q')
			d.point(s.C)
			d.buf = append(d.buf, ' ')
			d.point(s.P)
		case plot.Cubic:
			d.buf = append(d.buf, 'C')
			d.point(s.C)
			d.buf = append(d.buf, ' ')
			d.point(s.D)
			d.buf = append(d.buf, ' ')
			d.point(s.P)
		default:
			d.buf = append(d.buf, 'L')
			d.point(s.P)
		}
	}
	if len(segs) >= 3 && segs[0].P == segs[len(segs)-1].P {
		d.buf = append(d.buf, 'Z')
	}
}

// PaintPath implements the [plot.Renderer] interface.
func (d *Device) PaintPath(page *outbuf.Buffer, segs []plot.GeneralizedPoint, st *plot.DrawingState) error {
	if len(segs) < 2 {
		return nil
	}
	plot.UpdateBBox(page, segs, st)
	d.blank = false

	d.buf = append(d.buf[:0], `<path d="`...)
	d.pathData(segs)
	d.buf = append(d.buf, '"')

	if st.Filled() {
		c := st.FillRGBA()
		d.buf = fmt.Appendf(d.buf, ` fill="%s"`, hex(c))
		if st.FillRule == plot.EvenOdd {
			d.buf = append(d.buf, ` fill-rule="evenodd"`...)
		}
	} else {
		d.buf = append(d.buf, ` fill="none"`...)
	}

	if st.Stroked() {
		d.buf = fmt.Appendf(d.buf, ` stroke="%s" stroke-width="%s"`,
			hex(st.PenColor), num.Format(st.DeviceLineWidth(), places))
		if name, ok := capNames[st.Cap]; ok && st.Cap != graphics.LineCapButt {
			d.buf = fmt.Appendf(d.buf, ` stroke-linecap="%s"`, name)
		} else if !ok {
			// triangular caps are drawn round
			d.buf = append(d.buf, ` stroke-linecap="round"`...)
		}
		if name, ok := joinNames[st.Join]; ok && st.Join != graphics.LineJoinMiter {
			d.buf = fmt.Appendf(d.buf, ` stroke-linejoin="%s"`, name)
		} else if !ok {
			d.buf = append(d.buf, ` stroke-linejoin="round"`...)
		}
		if st.Join == graphics.LineJoinMiter && st.MiterLimit != 4 {
			d.buf = fmt.Appendf(d.buf, ` stroke-miterlimit="%s"`, num.Format(st.MiterLimit, places))
		}
		if dash, offset := st.DeviceDash(); dash != nil {
			parts := make([]string, len(dash))
			for i, x := range dash {
				parts[i] = num.Format(x, places)
			}
			d.buf = fmt.Appendf(d.buf, ` stroke-dasharray="%s"`, strings.Join(parts, " "))
			if offset != 0 {
				d.buf = fmt.Appendf(d.buf, ` stroke-dashoffset="%s"`, num.Format(offset, places))
			}
		}
	}
	d.buf = append(d.buf, "/>\n"...)
	page.Write(d.buf)
	return nil
}

// fontAttributes maps a standard font to the CSS font properties.
func fontAttributes(f standard.Font) string {
	name := string(f)
	family := "Helvetica,Arial,sans-serif"
	switch {
	case strings.HasPrefix(name, "Courier"):
		family = "Courier,monospace"
	case strings.HasPrefix(name, "Times"):
		family = "Times,serif"
	case f == standard.Symbol:
		family = "Symbol"
	case f == standard.ZapfDingbats:
		family = "ZapfDingbats"
	}
	res := fmt.Sprintf(`font-family="%s"`, family)
	if strings.Contains(name, "Bold") {
		res += ` font-weight="bold"`
	}
	switch {
	case strings.Contains(name, "Italic"):
		res += ` font-style="italic"`
	case strings.Contains(name, "Oblique"):
		res += ` font-style="oblique"`
	}
	return res
}

// PaintText implements the [plot.TextPainter] interface.  The text is
// rotated and scaled with the user coordinate system.
func (d *Device) PaintText(page *outbuf.Buffer, text string, st *plot.DrawingState) error {
	f, m := stdfont.Retrieve(st.FontName, st.FontSize)
	page.Fonts.Add(stdfont.Index(f))
	d.blank = false

	// The text matrix maps SVG text space, with the y-axis pointing down,
	// to device space.  It is scaled so that the font size is given in
	// device units.
	t := st.Transform
	s := math.Sqrt(math.Abs(t[0]*t[3] - t[1]*t[2]))
	if s == 0 {
		return nil
	}
	tm := matrix.Scale(1/s, -1/s).Mul(matrix.Translate(st.Pos.X, st.Pos.Y)).Mul(t)

	var esc strings.Builder
	xml.EscapeText(&esc, []byte(text))

	d.buf = append(d.buf[:0], `<text transform="matrix(`...)
	for i, x := range tm {
		if i > 0 {
			d.buf = append(d.buf, ' ')
		}
		d.buf = num.Append(d.buf, x, 6)
	}
	d.buf = fmt.Appendf(d.buf, `)" %s font-size="%s" fill="%s">%s</text>`+"\n",
		fontAttributes(f), num.Format(st.FontSize*s, places), hex(st.PenColor), esc.String())
	page.Write(d.buf)

	width := m.AvgWidth * float64(len([]rune(text)))
	for _, p := range []vec.Vec2{
		{X: st.Pos.X, Y: st.Pos.Y + m.Descent},
		{X: st.Pos.X + width, Y: st.Pos.Y + m.Descent},
		{X: st.Pos.X, Y: st.Pos.Y + m.Ascent},
		{X: st.Pos.X + width, Y: st.Pos.Y + m.Ascent},
	} {
		page.Extend(vec.Vec2{
			X: t[0]*p.X + t[2]*p.Y + t[4],
			Y: t[1]*p.X + t[3]*p.Y + t[5],
		})
	}
	return nil
}
