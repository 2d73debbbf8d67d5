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
	"testing"
)

func TestArena(t *testing.T) {
	var a Arena
	var ids []PlotterID
	for range 5 {
		id, err := a.New(&recorder{caps: lineCaps()}, nil)
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}
	if a.Len() != 5 {
		t.Errorf("%d live plotters, want 5", a.Len())
	}
	for i, id := range ids {
		if int(id) != i {
			t.Errorf("plotter %d has id %d", i, id)
		}
	}

	p := a.Get(ids[2])
	if err := p.Open(); err != nil {
		t.Fatal(err)
	}
	if err := a.Delete(ids[2]); err != nil {
		t.Fatal(err)
	}
	if p.IsOpen() {
		t.Error("deleted plotter still open")
	}
	if a.Get(ids[2]) != nil {
		t.Error("deleted slot still occupied")
	}
	if err := a.Delete(ids[2]); err == nil {
		t.Error("double delete succeeded")
	}

	id, err := a.New(&recorder{caps: lineCaps()}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if id != ids[2] {
		t.Errorf("freed slot not reused, got id %d", id)
	}
	if a.Len() != 5 {
		t.Errorf("%d live plotters, want 5", a.Len())
	}
	if a.Get(-1) != nil || a.Get(100) != nil {
		t.Error("invalid ids resolved")
	}
}
