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

// Package pdfpage implements a device which writes single-page PDF files.
//
// Paths are recorded while a page is open and the PDF file is assembled
// when the page is closed.  Labels are not drawn.
package pdfpage

import (
	imgcolor "image/color"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/device/internal/stdfont"
	"seehuhn.de/go/plot/outbuf"
)

// Device writes PDF.
type Device struct {
	width, height float64
	side          float64

	bg    imgcolor.RGBA64
	paths []path
}

// path is a recorded PaintPath call.
type path struct {
	segs []plot.GeneralizedPoint

	fill, stroke bool
	evenOdd      bool
	fillColor    imgcolor.RGBA64
	penColor     imgcolor.RGBA64
	width        float64
	capStyle     graphics.LineCapStyle
	join         graphics.LineJoinStyle
	miterLimit   float64
	dash         []float64
	dashOffset   float64
}

// New creates a PDF device.  The drawing area is the largest square which
// fits on the page selected by the PAGESIZE parameter.
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
		Name:               "pdf",
		WideLines:          plot.Supported,
		DashArray:          plot.Supported,
		SolidFill:          plot.Supported,
		EvenOddFill:        plot.Supported,
		NonzeroFill:        plot.Supported,
		SettableBackground: plot.Supported,
		Cubic:              plot.ScalingAny,
		MixedPaths:         true,
		Flatness:           0.1,
		DeviceTransform: matrix.Matrix{
			d.side, 0, 0, d.side, (d.width - d.side) / 2, (d.height - d.side) / 2,
		},
		Output:      plot.OutputOnePage,
		DefaultFont: string(stdfont.Fallback),
	}
}

// OpenDevice implements the [plot.Renderer] interface.
func (d *Device) OpenDevice(page *outbuf.Buffer, pageNum int) error {
	d.paths = d.paths[:0]
	return nil
}

// EraseDevice implements the [plot.Renderer] interface.
func (d *Device) EraseDevice(page *outbuf.Buffer) error {
	clear(d.paths)
	d.paths = d.paths[:0]
	return nil
}

// SetPenColor implements the [plot.Renderer] interface.
func (d *Device) SetPenColor(page *outbuf.Buffer, st *plot.DrawingState) {}

// SetFillColor implements the [plot.Renderer] interface.
func (d *Device) SetFillColor(page *outbuf.Buffer, st *plot.DrawingState) {}

// SetBgColor implements the [plot.Renderer] interface.
func (d *Device) SetBgColor(page *outbuf.Buffer, st *plot.DrawingState) {
	d.bg = st.BgColor
}

// RetrieveFont implements the [plot.Renderer] interface.
func (d *Device) RetrieveFont(st *plot.DrawingState) plot.FontMetrics {
	_, m := stdfont.Retrieve(st.FontName, st.FontSize)
	return m
}

// PaintPath implements the [plot.Renderer] interface.
func (d *Device) PaintPath(page *outbuf.Buffer, segs []plot.GeneralizedPoint, st *plot.DrawingState) error {
	if len(segs) < 2 || !st.Filled() && !st.Stroked() {
		return nil
	}
	plot.UpdateBBox(page, segs, st)

	dash, offset := st.DeviceDash()
	d.paths = append(d.paths, path{
		segs:       slices.Clone(segs),
		fill:       st.Filled(),
		stroke:     st.Stroked(),
		evenOdd:    st.FillRule == plot.EvenOdd,
		fillColor:  st.FillRGBA(),
		penColor:   st.PenColor,
		width:      st.DeviceLineWidth(),
		capStyle:   st.Cap,
		join:       st.Join,
		miterLimit: st.MiterLimit,
		dash:       dash,
		dashOffset: offset,
	})
	return nil
}

func rgb(c imgcolor.RGBA64) color.Color {
	return color.DeviceRGB(float64(c.R)/0xffff, float64(c.G)/0xffff, float64(c.B)/0xffff)
}

// CloseDevice implements the [plot.Renderer] interface.  The complete PDF
// file is written to the page buffer.
func (d *Device) CloseDevice(page *outbuf.Buffer) error {
	paper := &pdf.Rectangle{URx: d.width, URy: d.height}
	doc, err := document.WriteSinglePage(page, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	doc.SetFillColor(rgb(d.bg))
	doc.Rectangle(0, 0, d.width, d.height)
	doc.Fill()

	for i := range d.paths {
		p := &d.paths[i]
		doc.PushGraphicsState()
		if p.stroke {
			doc.SetStrokeColor(rgb(p.penColor))
			doc.SetLineWidth(p.width)
			doc.SetLineCap(pdfCap(p.capStyle))
			doc.SetLineJoin(pdfJoin(p.join))
			if p.join == graphics.LineJoinMiter {
				doc.SetMiterLimit(max(p.miterLimit, 1))
			}
			if p.dash != nil {
				doc.SetLineDash(p.dash, p.dashOffset)
			}
		}
		if p.fill {
			doc.SetFillColor(rgb(p.fillColor))
		}

		doc.MoveTo(p.segs[0].P.X, p.segs[0].P.Y)
		for _, s := range p.segs[1:] {
			switch s.Kind {
			case plot.Cubic:
				doc.CurveTo(s.C.X, s.C.Y, s.D.X, s.D.Y, s.P.X, s.P.Y)
			default:
				doc.LineTo(s.P.X, s.P.Y)
			}
		}
		if isClosed(p.segs) {
			doc.ClosePath()
		}

		switch {
		case p.fill && p.stroke && p.evenOdd:
			doc.FillAndStrokeEvenOdd()
		case p.fill && p.stroke:
			doc.FillAndStroke()
		case p.fill && p.evenOdd:
			doc.FillEvenOdd()
		case p.fill:
			doc.Fill()
		default:
			doc.Stroke()
		}
		doc.PopGraphicsState()
	}
	return doc.Close()
}

func isClosed(segs []plot.GeneralizedPoint) bool {
	return len(segs) >= 3 && segs[0].P == segs[len(segs)-1].P
}

// pdfCap maps line caps which PDF lacks to round caps.
func pdfCap(c graphics.LineCapStyle) graphics.LineCapStyle {
	switch c {
	case graphics.LineCapButt, graphics.LineCapRound, graphics.LineCapSquare:
		return c
	default:
		return graphics.LineCapRound
	}
}

func pdfJoin(j graphics.LineJoinStyle) graphics.LineJoinStyle {
	switch j {
	case graphics.LineJoinMiter, graphics.LineJoinRound, graphics.LineJoinBevel:
		return j
	default:
		return graphics.LineJoinRound
	}
}
