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
	"seehuhn.de/go/geom/matrix"
)

// The user coordinate system is given by a matrix which maps user space
// to normalized device coordinates (NDC), in which the drawing area of
// the device is the unit square.  Initially the user space coincides
// with NDC.

// SetMatrix replaces the map from user space to NDC.
func (p *Plotter) SetMatrix(m matrix.Matrix) error {
	if err := p.check(); err != nil {
		return err
	}
	if m[0]*m[3]-m[1]*m[2] == 0 {
		return p.degenerate("set matrix")
	}
	if err := p.endPath(); err != nil {
		return err
	}
	st := p.state
	st.setUserMatrix(m)
	st.Font = p.renderer.RetrieveFont(st)
	return nil
}

// Concat applies m to user space before the current user transformation.
func (p *Plotter) Concat(m matrix.Matrix) error {
	if err := p.check(); err != nil {
		return err
	}
	return p.SetMatrix(m.Mul(p.state.userMatrix))
}

// Space sets up user coordinates so that the rectangle with lower left
// corner (x0, y0) and upper right corner (x1, y1) fills the drawing area.
func (p *Plotter) Space(x0, y0, x1, y1 float64) error {
	if err := p.check(); err != nil {
		return err
	}
	if x0 == x1 || y0 == y1 {
		return p.degenerate("space")
	}
	sx := 1 / (x1 - x0)
	sy := 1 / (y1 - y0)
	return p.SetMatrix(matrix.Matrix{sx, 0, 0, sy, -x0 * sx, -y0 * sy})
}

// Translate moves the origin of user space to (x, y).
func (p *Plotter) Translate(x, y float64) error {
	return p.Concat(matrix.Translate(x, y))
}

// Rotate rotates user space counterclockwise by angle degrees.
func (p *Plotter) Rotate(angle float64) error {
	return p.Concat(matrix.RotateDeg(angle))
}

// Scale scales user space by sx horizontally and sy vertically.
func (p *Plotter) Scale(sx, sy float64) error {
	return p.Concat(matrix.Scale(sx, sy))
}

// UserMatrix returns the map from user space to NDC.
func (p *Plotter) UserMatrix() matrix.Matrix {
	if p.state == nil {
		return matrix.Identity
	}
	return p.state.userMatrix
}
