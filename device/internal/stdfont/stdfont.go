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

// Package stdfont provides the metrics of the 14 standard PostScript fonts
// to the devices which can draw text in these fonts.
package stdfont

import (
	"slices"

	"golang.org/x/text/cases"
	"seehuhn.de/go/pdf/font/standard"

	"seehuhn.de/go/plot"
)

// Fallback is used in place of fonts which are not available.
const Fallback = standard.Helvetica

// Metrics gives the vertical metrics and the average glyph width of a
// font, in units of 1/1000 of the font size.
type Metrics struct {
	Ascent    float64
	Descent   float64 // negative
	CapHeight float64
	AvgWidth  float64
}

var metrics = map[standard.Font]Metrics{
	standard.Courier:              {629, -157, 562, 600},
	standard.CourierBold:          {629, -157, 562, 600},
	standard.CourierBoldOblique:   {629, -157, 562, 600},
	standard.CourierOblique:       {629, -157, 562, 600},
	standard.Helvetica:            {718, -207, 718, 556},
	standard.HelveticaBold:        {718, -207, 718, 584},
	standard.HelveticaBoldOblique: {718, -207, 718, 584},
	standard.HelveticaOblique:     {718, -207, 718, 556},
	standard.TimesRoman:           {683, -217, 662, 500},
	standard.TimesBold:            {676, -205, 676, 520},
	standard.TimesBoldItalic:      {699, -205, 669, 510},
	standard.TimesItalic:          {683, -205, 653, 490},
	standard.Symbol:               {1010, -293, 673, 600},
	standard.ZapfDingbats:         {820, -143, 692, 788},
}

var folder = cases.Fold()

// Lookup finds a standard font by name.  Names are compared without
// regard to case.
func Lookup(name string) (standard.Font, bool) {
	key := folder.String(name)
	for _, f := range standard.All {
		if folder.String(string(f)) == key {
			return f, true
		}
	}
	return "", false
}

// Index returns the position of f in standard.All, or -1.
// Devices use the index to record font usage in an outbuf.FontSet.
func Index(f standard.Font) int {
	return slices.Index(standard.All, f)
}

// Get returns the metrics of a standard font.
func Get(f standard.Font) Metrics {
	if m, ok := metrics[f]; ok {
		return m
	}
	return metrics[Fallback]
}

// Retrieve resolves a font name to a standard font and scales its
// metrics to the given size.  Unknown names are replaced by [Fallback].
// An empty name selects the fallback font without reporting a
// substitution.
func Retrieve(name string, size float64) (standard.Font, plot.FontMetrics) {
	f, ok := Lookup(name)
	if !ok {
		f = Fallback
	}
	m := Get(f)
	s := size / 1000
	return f, plot.FontMetrics{
		Name:        string(f),
		Size:        size,
		Ascent:      m.Ascent * s,
		Descent:     m.Descent * s,
		CapHeight:   m.CapHeight * s,
		AvgWidth:    m.AvgWidth * s,
		Substituted: !ok && name != "",
	}
}
