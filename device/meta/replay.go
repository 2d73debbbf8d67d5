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

package meta

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/plot"
)

// Replay reads a metafile from r and draws its contents on p.  Pages are
// opened and closed as recorded in the file.  The user coordinate system
// of p must be the default one.
func Replay(r io.Reader, p *plot.Plotter) error {
	mr, err := NewReader(r)
	if err != nil {
		return err
	}
	for {
		rec, err := mr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}
		if err := apply(p, rec); err != nil {
			return fmt.Errorf("replay %q record: %w", rec.Op, err)
		}
	}
}

func toColor(a []float64) color.RGBA64 {
	return color.RGBA64{R: uint16(a[0]), G: uint16(a[1]), B: uint16(a[2]), A: uint16(a[3])}
}

func apply(p *plot.Plotter, rec *Record) error {
	a := rec.Args
	switch rec.Op {
	case OpOpen:
		return p.Open()
	case OpClose:
		return p.Close()
	case OpErase:
		return p.Erase()
	case OpMove:
		return p.Move(a[0], a[1])
	case OpLine:
		return p.Line(a[0], a[1])
	case OpArc:
		x, y := p.Position()
		return p.Arc(a[0], a[1], x, y, a[2], a[3])
	case OpEllArc:
		x, y := p.Position()
		return p.EllArc(a[0], a[1], x, y, a[2], a[3])
	case OpBezier2:
		x, y := p.Position()
		return p.Bezier2(x, y, a[0], a[1], a[2], a[3])
	case OpBezier3:
		x, y := p.Position()
		return p.Bezier3(x, y, a[0], a[1], a[2], a[3], a[4], a[5])
	case OpEndPath:
		return p.EndPath()
	case OpPenColor:
		return p.SetPenColor(toColor(a))
	case OpFillColor:
		return p.SetFillColor(toColor(a))
	case OpBgColor:
		return p.SetBgColor(toColor(a))
	case OpFillLevel:
		return p.SetFillType(int(a[0]))
	case OpFillRule:
		return p.SetFillRule(plot.FillRule(a[0]))
	case OpPenType:
		return p.SetPenType(int(a[0]))
	case OpLineWidth:
		return p.SetLineWidth(a[0])
	case OpCap:
		return p.SetCap(graphics.LineCapStyle(a[0]))
	case OpJoin:
		return p.SetJoin(graphics.LineJoinStyle(a[0]))
	case OpMiterLimit:
		return p.SetMiterLimit(a[0])
	case OpDash:
		n := int(a[0])
		return p.SetLineDash(a[1:1+n], a[1+n])
	case OpFontName:
		return p.SetFontName(rec.Text)
	case OpFontSize:
		return p.SetFontSize(a[0])
	case OpLabel:
		return p.Label(rec.Text)
	}
	return nil
}
