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

package plot

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/text/cases"
)

var (
	black = color.RGBA64{A: 0xffff}
	white = color.RGBA64{R: 0xffff, G: 0xffff, B: 0xffff, A: 0xffff}
)

// ParseColor converts a colour name to a colour.  Names are matched
// case-insensitively against the SVG colour keywords, ignoring spaces, so
// that "Light Blue" and "lightblue" are the same colour.  Hexadecimal
// specifications "#rrggbb" and "#rrrrggggbbbb" are also accepted.
func ParseColor(name string) (color.RGBA64, bool) {
	s := strings.TrimSpace(name)
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		return parseHexColor(hex)
	}

	key := strings.ReplaceAll(cases.Fold().String(s), " ", "")
	key = strings.ReplaceAll(key, "grey", "gray")
	c, ok := colornames.Map[key]
	if !ok {
		return color.RGBA64{}, false
	}
	return color.RGBA64{
		R: uint16(c.R) * 0x101,
		G: uint16(c.G) * 0x101,
		B: uint16(c.B) * 0x101,
		A: 0xffff,
	}, true
}

func parseHexColor(hex string) (color.RGBA64, bool) {
	var digits int
	switch len(hex) {
	case 6:
		digits = 2
	case 12:
		digits = 4
	default:
		return color.RGBA64{}, false
	}

	var rgb [3]uint16
	for i := range rgb {
		v, err := strconv.ParseUint(hex[i*digits:(i+1)*digits], 16, 16)
		if err != nil {
			return color.RGBA64{}, false
		}
		if digits == 2 {
			v *= 0x101
		}
		rgb[i] = uint16(v)
	}
	return color.RGBA64{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xffff}, true
}

// namedColor looks up a colour name, substituting black with a warning
// if the name is unknown.
func (p *Plotter) namedColor(name string) color.RGBA64 {
	c, ok := ParseColor(name)
	if !ok {
		p.warn("color name %q not recognized, substituting black", name)
		return black
	}
	return c
}
