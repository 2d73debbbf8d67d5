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

package testcases

import (
	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/plot"
)

// Every subpath is painted as a separate path, so the fill rule only
// matters within one subpath.
var subpathCases = []TestCase{
	{
		Name: "two_triangles",
		Path: twoTriangles(16, 32, 48, 32, 12),
		Op:   Fill{Rule: plot.NonZero},
	},
	{
		Name: "overlapping_rectangles",
		Path: join(rectangle(10, 10, 40, 40), rectangle(24, 24, 54, 54)),
		Op:   Fill{Rule: plot.EvenOdd},
	},
	{
		Name: "ring_nonzero",
		Path: ringShape(32, 32, 25, 12),
		Op:   Fill{Rule: plot.NonZero},
	},
	{
		Name: "ring_evenodd",
		Path: ringShape(32, 32, 25, 12),
		Op:   Fill{Rule: plot.EvenOdd},
	},
	{
		Name: "many_small_shapes",
		Path: manySmallShapes(4, 4),
		Op:   Fill{Rule: plot.NonZero},
	},
}

// twoTriangles builds two separate, disjoint triangles.
func twoTriangles(cx1, cy1, cx2, cy2 float64, size float64) *path.Data {
	return join(
		triangle(cx1, cy1-size, cx1+size, cy1+size, cx1-size, cy1+size),
		triangle(cx2, cy2-size, cx2+size, cy2+size, cx2-size, cy2+size))
}

// ringShape builds a square ring as a single subpath.  The inner square
// is reached along a cut, and has the same orientation as the outer one.
func ringShape(cx, cy, outerSize, innerSize float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(cx-outerSize, cy-outerSize)).
		LineTo(pt(cx+outerSize, cy-outerSize)).
		LineTo(pt(cx+outerSize, cy+outerSize)).
		LineTo(pt(cx-outerSize, cy+outerSize)).
		LineTo(pt(cx-outerSize, cy-outerSize)).
		LineTo(pt(cx-innerSize, cy-innerSize)).
		LineTo(pt(cx+innerSize, cy-innerSize)).
		LineTo(pt(cx+innerSize, cy+innerSize)).
		LineTo(pt(cx-innerSize, cy+innerSize)).
		LineTo(pt(cx-innerSize, cy-innerSize)).
		Close()
}

// manySmallShapes builds a grid of small triangles.
func manySmallShapes(rows, cols int) *path.Data {
	const size, spacing = 5.0, 14.0
	var shapes []*path.Data
	for row := range rows {
		for col := range cols {
			cx := 11 + float64(col)*spacing
			cy := 11 + float64(row)*spacing
			shapes = append(shapes, triangle(cx, cy-size, cx+size, cy+size, cx-size, cy+size))
		}
	}
	return join(shapes...)
}

// join concatenates the subpaths of several paths.
func join(parts ...*path.Data) *path.Data {
	res := &path.Data{}
	for _, d := range parts {
		res.Cmds = append(res.Cmds, d.Cmds...)
		res.Coords = append(res.Coords, d.Coords...)
	}
	return res
}
