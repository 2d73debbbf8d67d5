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
	"strconv"

	"seehuhn.de/go/plot/outbuf"
)

// pnmLineWidth limits the line length of ASCII images.
const pnmLineWidth = 70

// writePNM encodes the image as a PPM file, binary (P6) or ASCII (P3).
func (d *Device) writePNM(page *outbuf.Buffer) error {
	magic := "P6"
	if d.portable {
		magic = "P3"
	}
	fmt.Fprintf(page, "%s\n# seehuhn.de/go/plot\n%d %d\n255\n", magic, d.width, d.height)

	if !d.portable {
		row := make([]byte, 3*d.width)
		for y := range d.height {
			off := d.img.PixOffset(0, y)
			for x := range d.width {
				copy(row[3*x:3*x+3], d.img.Pix[off+4*x:off+4*x+3])
			}
			page.Write(row)
		}
		return page.Err()
	}

	line := make([]byte, 0, pnmLineWidth+4)
	for y := range d.height {
		off := d.img.PixOffset(0, y)
		for i, v := range d.img.Pix[off : off+4*d.width] {
			if i%4 == 3 {
				continue // alpha
			}
			if len(line)+4 > pnmLineWidth {
				line = append(line, '\n')
				page.Write(line)
				line = line[:0]
			}
			if len(line) > 0 {
				line = append(line, ' ')
			}
			line = strconv.AppendInt(line, int64(v), 10)
		}
	}
	if len(line) > 0 {
		line = append(line, '\n')
		page.Write(line)
	}
	return page.Err()
}
