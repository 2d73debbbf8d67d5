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

// Package raster implements the bitmap output devices.  Paths are
// flattened by the Plotter, with subdivision stopping at pixel
// resolution, and are then filled and stroked by an anti-aliasing
// scanline rasteriser.
//
// Two formats are supported: PNM (portable pixmap) images, of which only
// the first page is written, and GIF images, where every page becomes a
// frame of an animation.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/font/standard"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/outbuf"
)

// Format selects the image file format.
type Format int

// These are the supported formats.
const (
	PNM Format = iota
	GIF
)

func (f Format) String() string {
	switch f {
	case PNM:
		return "pnm"
	case GIF:
		return "gif"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Device draws into an RGBA image.
type Device struct {
	format        Format
	width, height int

	// portable selects the ASCII variant of PNM.
	portable bool

	transparent    color.RGBA64
	hasTransparent bool

	img   *image.RGBA
	bg    color.RGBA64
	blank bool

	ras    *Rasterizer
	data   path.Data
	parsed map[standard.Font]*opentype.Font
	faces  map[faceKey]font.Face
}

// New creates a bitmap device.  The image size is taken from the
// BITMAPSIZE parameter.  PNM_PORTABLE selects ASCII output for PNM
// images, TRANSPARENT_COLOR names a colour which is made transparent in
// GIF images.
func New(format Format, params plot.Params) (*Device, error) {
	w, h, err := params.BitmapSize()
	if err != nil {
		return nil, err
	}
	d := &Device{
		format:   format,
		width:    w,
		height:   h,
		portable: params.Bool("PNM_PORTABLE"),
		bg:       color.RGBA64{R: 0xffff, G: 0xffff, B: 0xffff, A: 0xffff},
		ras:      NewRasterizer(rect.Rect{URx: float64(w), URy: float64(h)}),
		parsed:   make(map[standard.Font]*opentype.Font),
		faces:    make(map[faceKey]font.Face),
	}
	if name := params.Get("TRANSPARENT_COLOR"); name != "" {
		c, ok := plot.ParseColor(name)
		if !ok {
			return nil, fmt.Errorf("transparent color %q not recognized", name)
		}
		d.transparent = c
		d.hasTransparent = true
	}
	return d, nil
}

// Capabilities implements the [plot.Renderer] interface.
func (d *Device) Capabilities() plot.Capabilities {
	output := plot.OutputOnePage
	if d.format == GIF {
		output = plot.OutputAllPages
	}
	return plot.Capabilities{
		Name:               d.format.String(),
		WideLines:          plot.Supported,
		DashArray:          plot.Supported,
		SolidFill:          plot.Supported,
		EvenOddFill:        plot.Supported,
		NonzeroFill:        plot.Supported,
		SettableBackground: plot.Supported,
		PSFonts:            plot.BestEffort,
		MixedPaths:         true,
		Raster:             true,
		Flatness:           0.5,
		DeviceTransform: matrix.Matrix{
			float64(d.width), 0,
			0, -float64(d.height),
			0, float64(d.height),
		},
		Output:      output,
		DefaultFont: "Helvetica",
	}
}

// Image returns the image of the current page.
func (d *Device) Image() *image.RGBA {
	return d.img
}

// OpenDevice implements the [plot.Renderer] interface.
func (d *Device) OpenDevice(page *outbuf.Buffer, pageNum int) error {
	if d.img == nil {
		d.img = image.NewRGBA(image.Rect(0, 0, d.width, d.height))
	}
	d.clear()
	return nil
}

func (d *Device) clear() {
	draw.Draw(d.img, d.img.Bounds(), image.NewUniform(d.bg), image.Point{}, draw.Src)
	d.blank = true
}

// EraseDevice implements the [plot.Renderer] interface.
func (d *Device) EraseDevice(page *outbuf.Buffer) error {
	page.ResetToFrozen()
	d.clear()
	return nil
}

// CloseDevice implements the [plot.Renderer] interface.  The finished
// image is encoded into the page buffer.
func (d *Device) CloseDevice(page *outbuf.Buffer) error {
	if d.format == GIF {
		return d.writeFrame(page)
	}
	return d.writePNM(page)
}

// SetPenColor implements the [plot.Renderer] interface.
// Colours are taken from the drawing state when a path is painted.
func (d *Device) SetPenColor(page *outbuf.Buffer, st *plot.DrawingState) {}

// SetFillColor implements the [plot.Renderer] interface.
func (d *Device) SetFillColor(page *outbuf.Buffer, st *plot.DrawingState) {}

// SetBgColor implements the [plot.Renderer] interface.  The new colour
// is used by the next erase, or immediately if nothing has been drawn
// on the page yet.
func (d *Device) SetBgColor(page *outbuf.Buffer, st *plot.DrawingState) {
	d.bg = st.BgColor
	if d.blank && d.img != nil {
		d.clear()
	}
}

// PaintPath implements the [plot.Renderer] interface.
func (d *Device) PaintPath(page *outbuf.Buffer, segs []plot.GeneralizedPoint, st *plot.DrawingState) error {
	if len(segs) < 2 {
		return nil
	}
	plot.UpdateBBox(page, segs, st)
	d.blank = false

	d.data.Cmds = d.data.Cmds[:0]
	d.data.Coords = d.data.Coords[:0]
	d.data.MoveTo(segs[0].P)
	for _, s := range segs[1:] {
		if s.Kind != plot.Line {
			return &plot.CapabilityError{Device: d.format.String(), Kind: s.Kind}
		}
		d.data.LineTo(s.P)
	}
	closed := len(segs) >= 3 && segs[0].P == segs[len(segs)-1].P
	if closed {
		d.data.Close()
	}

	if st.Filled() {
		c := st.FillRGBA()
		d.ras.Fill(&d.data, st.FillRule, func(y, xMin int, cov []float32) {
			d.composite(y, xMin, cov, c)
		})
	}
	if st.Stroked() {
		r := d.ras
		r.Width = max(st.DeviceLineWidth(), 1)
		r.Cap = st.Cap
		r.Join = st.Join
		r.MiterLimit = st.MiterLimit
		r.Dash, r.DashPhase = st.DeviceDash()
		c := st.PenColor
		r.Stroke(&d.data, func(y, xMin int, cov []float32) {
			d.composite(y, xMin, cov, c)
		})
	}
	return nil
}

// composite blends colour c into one row of the image, using the
// coverage values as opacity.
func (d *Device) composite(y, xMin int, cov []float32, c color.RGBA64) {
	alpha := float32(c.A) / 0xffff
	src := [3]float32{
		float32(c.R >> 8),
		float32(c.G >> 8),
		float32(c.B >> 8),
	}
	off := d.img.PixOffset(xMin, y)
	pix := d.img.Pix[off : off+4*len(cov)]
	for i, a := range cov {
		a *= alpha
		if a <= 0 {
			continue
		}
		p := pix[4*i : 4*i+4 : 4*i+4]
		for k := range 3 {
			v := float32(p[k])
			p[k] = uint8(v + (src[k]-v)*a + 0.5)
		}
		p[3] = 0xff
	}
}

// deviceScale returns the factor by which the drawing state's transform
// scales lengths.
func deviceScale(st *plot.DrawingState) float64 {
	m := st.Transform
	return math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))
}

func toDevice(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}
