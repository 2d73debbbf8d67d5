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

package raster

import (
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/font/standard"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/device/internal/stdfont"
	"seehuhn.de/go/plot/outbuf"
)

// The standard fonts are drawn using the Go fonts of the same style.
// The sans-serif faces stand in for both Helvetica and Times.
var goFonts = map[standard.Font][]byte{
	standard.Courier:              gomono.TTF,
	standard.CourierBold:          gomonobold.TTF,
	standard.CourierOblique:       gomonoitalic.TTF,
	standard.CourierBoldOblique:   gomonobolditalic.TTF,
	standard.Helvetica:            goregular.TTF,
	standard.HelveticaBold:        gobold.TTF,
	standard.HelveticaOblique:     goitalic.TTF,
	standard.HelveticaBoldOblique: gobolditalic.TTF,
	standard.TimesRoman:           goregular.TTF,
	standard.TimesBold:            gobold.TTF,
	standard.TimesItalic:          goitalic.TTF,
	standard.TimesBoldItalic:      gobolditalic.TTF,
}

type faceKey struct {
	font standard.Font
	ppem int
}

// resolveFont maps a font name to one of the fonts in goFonts.
func resolveFont(name string) (standard.Font, bool) {
	f, ok := stdfont.Lookup(name)
	if _, have := goFonts[f]; !ok || !have {
		return stdfont.Fallback, name == ""
	}
	return f, true
}

// face returns the face for font f at the given size in pixels.
func (d *Device) face(f standard.Font, ppem int) (font.Face, error) {
	key := faceKey{f, max(ppem, 1)}
	if face, ok := d.faces[key]; ok {
		return face, nil
	}
	otf, ok := d.parsed[f]
	if !ok {
		var err error
		otf, err = opentype.Parse(goFonts[f])
		if err != nil {
			return nil, err
		}
		d.parsed[f] = otf
	}
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    float64(key.ppem),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	d.faces[key] = face
	return face, nil
}

func fixedToFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64
}

// RetrieveFont implements the [plot.Renderer] interface.
func (d *Device) RetrieveFont(st *plot.DrawingState) plot.FontMetrics {
	f, ok := resolveFont(st.FontName)
	scale := deviceScale(st)
	m := plot.FontMetrics{
		Name:        string(f),
		Size:        st.FontSize,
		Substituted: !ok,
	}
	if scale == 0 {
		return m
	}

	face, err := d.face(f, int(math.Round(st.FontSize*scale)))
	if err != nil {
		// the embedded fonts always parse, fall back to the table
		_, m2 := stdfont.Retrieve(string(f), st.FontSize)
		m2.Substituted = !ok
		return m2
	}
	fm := face.Metrics()
	m.Ascent = fixedToFloat(fm.Ascent) / scale
	m.Descent = -fixedToFloat(fm.Descent) / scale
	m.CapHeight = fixedToFloat(fm.CapHeight) / scale
	m.AvgWidth = fixedToFloat(font.MeasureString(face, "0")) / scale
	return m
}

// PaintText implements the [plot.TextPainter] interface.  The text is
// drawn horizontally with its baseline starting at the current point.
func (d *Device) PaintText(page *outbuf.Buffer, text string, st *plot.DrawingState) error {
	f, _ := resolveFont(st.FontName)
	face, err := d.face(f, int(math.Round(st.FontSize*deviceScale(st))))
	if err != nil {
		return err
	}
	pos := toDevice(st.Transform, st.Pos)
	dr := &font.Drawer{
		Dst:  d.img,
		Src:  image.NewUniform(st.PenColor),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(pos.X * 64), Y: fixed.Int26_6(pos.Y * 64)},
	}
	bounds, _ := dr.BoundString(text)
	dr.DrawString(text)
	d.blank = false

	page.Extend(vec.Vec2{X: fixedToFloat(bounds.Min.X), Y: fixedToFloat(bounds.Min.Y)})
	page.Extend(vec.Vec2{X: fixedToFloat(bounds.Max.X), Y: fixedToFloat(bounds.Max.Y)})
	return nil
}
