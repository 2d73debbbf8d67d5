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
	"fmt"
	"io"
)

// PlotterID identifies a Plotter within an Arena.
type PlotterID int

// Arena owns a set of Plotters and hands out small integer handles for
// them.  Freed slots are reused.  An Arena is not safe for concurrent use.
type Arena struct {
	slots []*Plotter
	live  int
}

// New creates a Plotter in the arena.
func (a *Arena) New(r Renderer, w io.Writer, opts ...Option) (PlotterID, error) {
	p, err := New(r, w, opts...)
	if err != nil {
		return -1, err
	}

	id := -1
	for i, s := range a.slots {
		if s == nil {
			id = i
			break
		}
	}
	if id < 0 {
		if len(a.slots) == cap(a.slots) {
			slots := make([]*Plotter, len(a.slots), max(2*cap(a.slots), 4))
			copy(slots, a.slots)
			a.slots = slots
		}
		id = len(a.slots)
		a.slots = append(a.slots, nil)
	}
	a.slots[id] = p
	a.live++
	return PlotterID(id), nil
}

// Get returns the Plotter with the given handle, or nil if there is none.
func (a *Arena) Get(id PlotterID) *Plotter {
	if id < 0 || int(id) >= len(a.slots) {
		return nil
	}
	return a.slots[id]
}

// Delete terminates the Plotter and frees its slot.
func (a *Arena) Delete(id PlotterID) error {
	p := a.Get(id)
	if p == nil {
		return fmt.Errorf("plotter %d: no such plotter", id)
	}
	a.slots[id] = nil
	a.live--
	return p.Terminate()
}

// Len returns the number of live Plotters.
func (a *Arena) Len() int {
	return a.live
}
