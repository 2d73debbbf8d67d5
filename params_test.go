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
	"errors"
	"testing"
)

func TestParseParam(t *testing.T) {
	name, value, err := ParseParam("pagesize = a4")
	if err != nil {
		t.Fatal(err)
	}
	if name != "PAGESIZE" || value != "a4" {
		t.Errorf("got %q=%q", name, value)
	}

	if _, _, err := ParseParam("PAGESIZE"); err == nil {
		t.Error("missing value accepted")
	}
	if _, _, err := ParseParam("COLOUR=red"); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("unknown name: got %v", err)
	}
}

func TestParamDefaults(t *testing.T) {
	var ps Params
	if got := ps.Get("BG_COLOR"); got != "white" {
		t.Errorf("default BG_COLOR %q", got)
	}
	if n, err := ps.Int("MAX_LINE_LENGTH"); err != nil || n != 500 {
		t.Errorf("default MAX_LINE_LENGTH %d, %v", n, err)
	}
	if ps.Bool("PNM_PORTABLE") {
		t.Error("PNM_PORTABLE defaults to yes")
	}
	ps = Params{"PNM_PORTABLE": "Yes"}
	if !ps.Bool("PNM_PORTABLE") {
		t.Error("PNM_PORTABLE=Yes not recognised")
	}
}

func TestPageSize(t *testing.T) {
	type testCase struct {
		in   string
		w, h float64
		ok   bool
	}
	cases := []testCase{
		{"letter", 612, 792, true},
		{"A4", 595.28, 841.89, true},
		{"ledger", 1224, 792, true},
		{"napkin", 0, 0, false},
	}
	for _, tc := range cases {
		w, h, err := Params{"PAGESIZE": tc.in}.PageSize()
		if (err == nil) != tc.ok || w != tc.w || h != tc.h {
			t.Errorf("%s: got %g×%g, %v", tc.in, w, h, err)
		}
	}
}

func TestBitmapSize(t *testing.T) {
	type testCase struct {
		in   string
		w, h int
		ok   bool
	}
	cases := []testCase{
		{"", 570, 570, true},
		{"640x480", 640, 480, true},
		{"300", 300, 300, true},
		{"640X480", 640, 480, true},
		{"0x10", 0, 0, false},
		{"axb", 0, 0, false},
	}
	for _, tc := range cases {
		ps := Params{}
		if tc.in != "" {
			ps["BITMAPSIZE"] = tc.in
		}
		w, h, err := ps.BitmapSize()
		if (err == nil) != tc.ok || w != tc.w || h != tc.h {
			t.Errorf("%q: got %d×%d, %v", tc.in, w, h, err)
		}
	}
}
