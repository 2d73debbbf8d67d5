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
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"
	"slices"

	"golang.org/x/image/draw"

	"seehuhn.de/go/plot/outbuf"
)

// writeFrame stores the image, reduced to the web palette, in the page
// buffer as one byte per pixel.
func (d *Device) writeFrame(page *outbuf.Buffer) error {
	frame := image.NewPaletted(d.img.Bounds(), palette.Plan9)
	draw.Draw(frame, frame.Bounds(), d.img, image.Point{}, draw.Src)
	page.Write(frame.Pix)
	return page.Err()
}

// WriteDocument implements the [plot.DocumentWriter] interface.  Every
// page becomes one frame of the GIF file.
func (d *Device) WriteDocument(w io.Writer, pages []*outbuf.Buffer) error {
	pal := color.Palette(slices.Clone(palette.Plan9))
	if d.hasTransparent {
		pal[pal.Index(d.transparent)] = color.RGBA{}
	}

	bounds := image.Rect(0, 0, d.width, d.height)
	g := &gif.GIF{
		Config: image.Config{
			ColorModel: pal,
			Width:      d.width,
			Height:     d.height,
		},
	}
	for i, page := range pages {
		pix := page.Bytes()
		if len(pix) != d.width*d.height {
			return fmt.Errorf("gif: page %d has %d pixels, want %d", i+1, len(pix), d.width*d.height)
		}
		g.Image = append(g.Image, &image.Paletted{
			Pix:     pix,
			Stride:  d.width,
			Rect:    bounds,
			Palette: pal,
		})
		g.Delay = append(g.Delay, 0)
	}
	return gif.EncodeAll(w, g)
}
