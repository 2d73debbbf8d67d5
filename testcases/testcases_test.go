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

package testcases_test

import (
	"io"
	"maps"
	"regexp"
	"slices"
	"testing"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/device"
	"seehuhn.de/go/plot/testcases"
)

var validName = regexp.MustCompile(`^[a-z0-9_]+$`)

func TestNames(t *testing.T) {
	seen := map[string]bool{}
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			full := category + "/" + tc.Name
			if !validName.MatchString(tc.Name) {
				t.Errorf("invalid name %q", full)
			}
			if seen[full] {
				t.Errorf("duplicate name %q", full)
			}
			seen[full] = true

			found, ok := testcases.Find(full)
			if !ok || found.Name != tc.Name {
				t.Errorf("Find(%q) failed", full)
			}
		}
	}
	if _, ok := testcases.Find("fill/no_such_case"); ok {
		t.Error("found a case which does not exist")
	}
}

func TestRenderAll(t *testing.T) {
	params := plot.Params{"BITMAPSIZE": "64x64"}
	for _, kind := range device.Kinds() {
		t.Run(kind, func(t *testing.T) {
			r, err := device.New(kind, params)
			if err != nil {
				t.Fatal(err)
			}
			p, err := plot.New(r, io.Discard,
				plot.WithParams(params),
				plot.WithWarningHandler(func(string) {}))
			if err != nil {
				t.Fatal(err)
			}
			for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
				for _, tc := range testcases.All[category] {
					if err := p.Open(); err != nil {
						t.Fatal(err)
					}
					if err := tc.Render(p); err != nil {
						t.Errorf("%s/%s: %v", category, tc.Name, err)
					}
					if err := p.Close(); err != nil {
						t.Fatal(err)
					}
				}
			}
			if err := p.Terminate(); err != nil {
				t.Fatal(err)
			}
		})
	}
}
