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

package hpgl

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/device/internal/num"
	"seehuhn.de/go/plot/outbuf"
)

// stickFont is the name of the built-in vector font of the plotter.
const stickFont = "Stick"

// Proportions of the stick font, relative to the font size.
const (
	stickAscent    = 0.75
	stickDescent   = -0.25
	stickCapHeight = 0.7
	stickWidth     = 0.6 // character pitch
)

// RetrieveFont implements the [plot.Renderer] interface.  All text is
// drawn in the stick font.
func (d *Device) RetrieveFont(st *plot.DrawingState) plot.FontMetrics {
	size := st.FontSize
	return plot.FontMetrics{
		Name:        stickFont,
		Size:        size,
		Ascent:      stickAscent * size,
		Descent:     stickDescent * size,
		CapHeight:   stickCapHeight * size,
		AvgWidth:    stickWidth * size,
		Substituted: st.FontName != "" && cases.Fold().String(st.FontName) != cases.Fold().String(stickFont),
	}
}

// labelText returns the text in a form which can be sent to the plotter.
// Characters outside printable ASCII are replaced.
func labelText(text string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r > 126 {
			return '?'
		}
		return r
	}, text)
}

// PaintText implements the [plot.TextPainter] interface.
func (d *Device) PaintText(page *outbuf.Buffer, text string, st *plot.DrawingState) error {
	t := st.Transform
	s := math.Sqrt(math.Abs(t[0]*t[3] - t[1]*t[2]))
	if s == 0 {
		return nil
	}
	m := d.RetrieveFont(st)

	toDevice := func(p vec.Vec2) vec.Vec2 {
		return vec.Vec2{X: t[0]*p.X + t[2]*p.Y + t[4], Y: t[1]*p.X + t[3]*p.Y + t[5]}
	}
	origin := toDevice(st.Pos)

	// SI takes the character width and cap height in cm.  The character
	// pitch is 1.5 times the width.
	cm := mmPerUnit / 10
	var attrs []byte
	attrs = append(attrs, "DI"...)
	attrs = num.Append(attrs, t[0]/s, 4)
	attrs = append(attrs, ',')
	attrs = num.Append(attrs, t[1]/s, 4)
	attrs = append(attrs, ";SI"...)
	attrs = num.Append(attrs, m.AvgWidth/1.5*s*cm, 4)
	attrs = append(attrs, ',')
	attrs = num.Append(attrs, m.CapHeight*s*cm, 4)
	attrs = append(attrs, ';')

	d.buf = d.buf[:0]
	d.selectPen(strokePen, st.PenColor)
	if a := string(attrs); a != d.textAttrs {
		d.buf = append(d.buf, a...)
		d.textAttrs = a
	}
	d.buf = fmt.Appendf(d.buf, "PU%d,%d;LB%s\x03\n",
		coord(origin.X), coord(origin.Y), labelText(text))
	page.Write(d.buf)

	width := m.AvgWidth * float64(len([]rune(text)))
	for _, p := range []vec.Vec2{
		{X: 0, Y: m.Descent}, {X: width, Y: m.Descent},
		{X: 0, Y: m.Ascent}, {X: width, Y: m.Ascent},
	} {
		page.Extend(toDevice(st.Pos.Add(p)))
	}
	return nil
}
