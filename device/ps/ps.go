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

// Package ps implements a device which writes PostScript documents.
//
// All pages are kept in memory until the plotter is terminated, since the
// document header lists the bounding box of the whole document and the
// fonts it uses.
package ps

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/font/standard"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/device/internal/num"
	"seehuhn.de/go/plot/device/internal/stdfont"
	"seehuhn.de/go/plot/outbuf"
)

const places = 4

// Device writes PostScript.
type Device struct {
	width, height float64
	side          float64

	bg    color.RGBA64
	blank bool

	buf []byte
}

// New creates a PostScript device.  The drawing area is the largest
// square which fits on the page selected by the PAGESIZE parameter.
func New(params plot.Params) (*Device, error) {
	w, h, err := params.PageSize()
	if err != nil {
		return nil, err
	}
	return &Device{width: w, height: h, side: min(w, h)}, nil
}

// Capabilities implements the [plot.Renderer] interface.
func (d *Device) Capabilities() plot.Capabilities {
	return plot.Capabilities{
		Name:               "ps",
		WideLines:          plot.Supported,
		DashArray:          plot.Supported,
		SolidFill:          plot.Supported,
		EvenOddFill:        plot.Supported,
		NonzeroFill:        plot.Supported,
		SettableBackground: plot.Supported,
		PSFonts:            plot.Supported,
		Arc:                plot.ScalingUniform,
		Cubic:              plot.ScalingAny,
		MixedPaths:         true,
		Flatness:           0.1,
		DeviceTransform: matrix.Matrix{
			d.side, 0, 0, d.side, (d.width - d.side) / 2, (d.height - d.side) / 2,
		},
		Output:      plot.OutputAllPages,
		DefaultFont: string(stdfont.Fallback),
	}
}

// OpenDevice implements the [plot.Renderer] interface.
func (d *Device) OpenDevice(page *outbuf.Buffer, pageNum int) error {
	fmt.Fprintf(page, "%%%%Page: %d %d\nsave\n", pageNum, pageNum)
	page.Freeze()
	d.blank = true
	return nil
}

// CloseDevice implements the [plot.Renderer] interface.
func (d *Device) CloseDevice(page *outbuf.Buffer) error {
	page.WriteString("restore\nshowpage\n")
	return nil
}

// EraseDevice implements the [plot.Renderer] interface.
func (d *Device) EraseDevice(page *outbuf.Buffer) error {
	d.background(page)
	return nil
}

func (d *Device) background(page *outbuf.Buffer) {
	page.ResetToFrozen()
	d.buf = appendColor(d.buf[:0], d.bg)
	d.buf = fmt.Appendf(d.buf, "0 0 %s %s rectfill\n",
		num.Format(d.width, places), num.Format(d.height, places))
	page.Write(d.buf)
	d.blank = true
}

// SetPenColor implements the [plot.Renderer] interface.
func (d *Device) SetPenColor(page *outbuf.Buffer, st *plot.DrawingState) {}

// SetFillColor implements the [plot.Renderer] interface.
func (d *Device) SetFillColor(page *outbuf.Buffer, st *plot.DrawingState) {}

// SetBgColor implements the [plot.Renderer] interface.  The background
// of a page can only be changed before anything is drawn.
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

func appendColor(buf []byte, c color.RGBA64) []byte {
	for _, x := range []uint16{c.R, c.G, c.B} {
		buf = num.Append(buf, float64(x)/0xffff, places)
		buf = append(buf, ' ')
	}
	return append(buf, "setrgbcolor\n"...)
}

func (d *Device) point(p vec.Vec2) {
	d.buf = num.Append(d.buf, p.X, places)
	d.buf = append(d.buf, ' ')
	d.buf = num.Append(d.buf, p.Y, places)
}

// path appends the PostScript path construction operators for segs.
func (d *Device) path(segs []plot.GeneralizedPoint) {
	d.buf = append(d.buf, "newpath "...)
	d.point(segs[0].P)
	d.buf = append(d.buf, " moveto\n"...)
	for i := 1; i < len(segs); i++ {
		s := segs[i]
		switch s.Kind {
		case plot.Arc:
			a := segs[i-1].P.Sub(s.C)
			b := s.P.Sub(s.C)
			phi0 := math.Atan2(a.Y, a.X) * 180 / math.Pi
			phi1 := math.Atan2(b.Y, b.X) * 180 / math.Pi
			d.point(s.C)
			d.buf = append(d.buf, ' ')
			d.buf = num.Append(d.buf, a.Length(), places)
			d.buf = append(d.buf, ' ')
			d.buf = num.Append(d.buf, phi0, places)
			d.buf = append(d.buf, ' ')
			d.buf = num.Append(d.buf, phi1, places)
			if a.X*b.Y-a.Y*b.X > 0 {
				d.buf = append(d.buf, " arc\n"...)
			} else {
				d.buf = append(d.buf, " arcn\n"...)
			}
		case plot.Cubic:
			d.point(s.C)
			d.buf = append(d.buf, ' ')
			d.point(s.D)
			d.buf = append(d.buf, ' ')
			d.point(s.P)
			d.buf = append(d.buf, " curveto\n"...)
		default:
			d.point(s.P)
			d.buf = append(d.buf, " lineto\n"...)
		}
	}
	if len(segs) >= 3 && segs[0].P == segs[len(segs)-1].P {
		d.buf = append(d.buf, "closepath\n"...)
	}
}

// PaintPath implements the [plot.Renderer] interface.
func (d *Device) PaintPath(page *outbuf.Buffer, segs []plot.GeneralizedPoint, st *plot.DrawingState) error {
	if len(segs) < 2 {
		return nil
	}
	plot.UpdateBBox(page, segs, st)
	d.blank = false

	d.buf = d.buf[:0]
	d.path(segs)
	stroked := st.Stroked()
	if st.Filled() {
		if stroked {
			d.buf = append(d.buf, "gsave\n"...)
		}
		d.buf = appendColor(d.buf, st.FillRGBA())
		if st.FillRule == plot.EvenOdd {
			d.buf = append(d.buf, "eofill\n"...)
		} else {
			d.buf = append(d.buf, "fill\n"...)
		}
		if stroked {
			d.buf = append(d.buf, "grestore\n"...)
		}
	}
	if stroked {
		d.buf = appendColor(d.buf, st.PenColor)
		d.buf = num.Append(d.buf, st.DeviceLineWidth(), places)
		d.buf = fmt.Appendf(d.buf, " setlinewidth %d setlinecap %d setlinejoin ",
			capCode(st.Cap), joinCode(st.Join))
		d.buf = num.Append(d.buf, max(st.MiterLimit, 1), places)
		d.buf = append(d.buf, " setmiterlimit\n["...)
		dash, offset := st.DeviceDash()
		for i, x := range dash {
			if i > 0 {
				d.buf = append(d.buf, ' ')
			}
			d.buf = num.Append(d.buf, x, places)
		}
		d.buf = append(d.buf, "] "...)
		d.buf = num.Append(d.buf, offset, places)
		d.buf = append(d.buf, " setdash\nstroke\n"...)
	}
	page.Write(d.buf)
	return nil
}

// capCode returns the PostScript line cap code.  Triangular caps are
// drawn round.
func capCode(c graphics.LineCapStyle) int {
	switch c {
	case graphics.LineCapButt, graphics.LineCapRound, graphics.LineCapSquare:
		return int(c)
	default:
		return int(graphics.LineCapRound)
	}
}

func joinCode(j graphics.LineJoinStyle) int {
	switch j {
	case graphics.LineJoinMiter, graphics.LineJoinRound, graphics.LineJoinBevel:
		return int(j)
	default:
		return int(graphics.LineJoinRound)
	}
}

// fontKey returns the PostScript name under which f is used.  Text fonts
// are re-encoded to ISO Latin-1 in the document prolog.
func fontKey(f standard.Font) string {
	if f == standard.Symbol || f == standard.ZapfDingbats {
		return string(f)
	}
	return string(f) + "-Latin1"
}

// appendString appends a PostScript string literal.
func appendString(buf []byte, text string, f standard.Font) []byte {
	latin1 := fontKey(f) != string(f)
	buf = append(buf, '(')
	for _, r := range text {
		c, ok := byte(r), r < 256
		if latin1 {
			c, ok = charmap.ISO8859_1.EncodeRune(r)
		}
		if !ok {
			c = '?'
		}
		switch {
		case c == '(' || c == ')' || c == '\\':
			buf = append(buf, '\\', c)
		case c < 32 || c > 126:
			buf = fmt.Appendf(buf, "\\%03o", c)
		default:
			buf = append(buf, c)
		}
	}
	return append(buf, ')')
}

// PaintText implements the [plot.TextPainter] interface.
func (d *Device) PaintText(page *outbuf.Buffer, text string, st *plot.DrawingState) error {
	f, m := stdfont.Retrieve(st.FontName, st.FontSize)
	page.Fonts.Add(stdfont.Index(f))
	d.blank = false

	t := st.Transform
	s := math.Sqrt(math.Abs(t[0]*t[3] - t[1]*t[2]))
	if s == 0 {
		return nil
	}
	origin := vec.Vec2{
		X: t[0]*st.Pos.X + t[2]*st.Pos.Y + t[4],
		Y: t[1]*st.Pos.X + t[3]*st.Pos.Y + t[5],
	}

	d.buf = append(d.buf[:0], "gsave\n"...)
	d.buf = appendColor(d.buf, st.PenColor)
	d.point(origin)
	d.buf = append(d.buf, " translate ["...)
	for i := range 4 {
		d.buf = num.Append(d.buf, t[i]/s, 6)
		d.buf = append(d.buf, ' ')
	}
	d.buf = fmt.Appendf(d.buf, "0 0] concat\n/%s findfont ", fontKey(f))
	d.buf = num.Append(d.buf, st.FontSize*s, places)
	d.buf = append(d.buf, " scalefont setfont\n0 0 moveto "...)
	d.buf = appendString(d.buf, text, f)
	d.buf = append(d.buf, " show\ngrestore\n"...)
	page.Write(d.buf)

	width := m.AvgWidth * float64(len([]rune(text)))
	for _, p := range []vec.Vec2{
		{X: 0, Y: m.Descent},
		{X: width, Y: m.Descent},
		{X: 0, Y: m.Ascent},
		{X: width, Y: m.Ascent},
	} {
		page.Extend(vec.Vec2{
			X: origin.X + (t[0]*p.X+t[2]*p.Y),
			Y: origin.Y + (t[1]*p.X+t[3]*p.Y),
		})
	}
	return nil
}

const prolog = `/reencode {
  findfont dup length dict begin
  { 1 index /FID ne { def } { pop pop } ifelse } forall
  /Encoding ISOLatin1Encoding def
  currentdict end definefont pop
} bind def
`

// WriteDocument implements the [plot.DocumentWriter] interface.
func (d *Device) WriteDocument(w io.Writer, pages []*outbuf.Buffer) error {
	var bbox rect.Rect
	haveBBox := false
	var fonts outbuf.FontSet
	for _, page := range pages {
		if r, ok := page.BBox(); ok {
			if haveBBox {
				bbox.Extend(&r)
			} else {
				bbox = r
				haveBBox = true
			}
		}
		fonts |= page.Fonts
	}

	var used []standard.Font
	for i, f := range standard.All {
		if fonts.Has(i) {
			used = append(used, f)
		}
	}

	hdr := &strings.Builder{}
	hdr.WriteString("%!PS-Adobe-3.0\n%%Creator: seehuhn.de/go/plot\n")
	if haveBBox {
		fmt.Fprintf(hdr, "%%%%BoundingBox: %d %d %d %d\n",
			int(math.Floor(bbox.LLx)), int(math.Floor(bbox.LLy)),
			int(math.Ceil(bbox.URx)), int(math.Ceil(bbox.URy)))
	} else {
		hdr.WriteString("%%BoundingBox: 0 0 0 0\n")
	}
	fmt.Fprintf(hdr, "%%%%Pages: %d\n", len(pages))
	if len(used) > 0 {
		hdr.WriteString("%%DocumentFonts:")
		for _, f := range used {
			hdr.WriteString(" " + string(f))
		}
		hdr.WriteString("\n")
	}
	hdr.WriteString("%%EndComments\n%%BeginProlog\n")
	hdr.WriteString(prolog)
	for _, f := range used {
		if key := fontKey(f); key != string(f) {
			fmt.Fprintf(hdr, "/%s /%s reencode\n", key, f)
		}
	}
	hdr.WriteString("%%EndProlog\n")

	if _, err := io.WriteString(w, hdr.String()); err != nil {
		return err
	}
	for _, page := range pages {
		if _, err := w.Write(page.Bytes()); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "%%Trailer\n%%EOF\n")
	return err
}
