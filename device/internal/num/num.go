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

// Package num formats coordinates for the text based output formats.
package num

import (
	"math"
	"strconv"
)

// Append appends x to buf, rounded to the given number of decimal places.
// Trailing zeros are omitted and negative zero is written as 0.
func Append(buf []byte, x float64, places int) []byte {
	scale := math.Pow10(places)
	x = math.Round(x*scale) / scale
	if x == 0 {
		x = 0 // avoid "-0"
	}
	return strconv.AppendFloat(buf, x, 'f', -1, 64)
}

// Format returns x rounded to the given number of decimal places.
func Format(x float64, places int) string {
	var buf [24]byte
	return string(Append(buf[:0], x, places))
}
