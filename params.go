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
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Params holds device parameters, indexed by upper-case parameter name.
// Missing entries take their default value.
type Params map[string]string

// paramDefaults lists all recognised parameters.
var paramDefaults = map[string]string{
	"PAGESIZE":          "letter",
	"BITMAPSIZE":        "570x570",
	"BG_COLOR":          "white",
	"MAX_LINE_LENGTH":   "500",
	"TRANSPARENT_COLOR": "",
	"PNM_PORTABLE":      "no",
	"HPGL_VERSION":      "2",
	"META_PORTABLE":     "no",
}

// ParamNames returns the names of all recognised parameters in
// alphabetical order.
func ParamNames() []string {
	names := make([]string, 0, len(paramDefaults))
	for name := range paramDefaults {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ParseParam splits a "NAME=value" string.
func ParseParam(s string) (string, string, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return "", "", fmt.Errorf("malformed parameter %q, want NAME=value", s)
	}
	name = strings.ToUpper(strings.TrimSpace(name))
	if _, known := paramDefaults[name]; !known {
		return "", "", fmt.Errorf("%w %q", ErrUnknownParam, name)
	}
	return name, strings.TrimSpace(value), nil
}

// Validate checks that all parameter names are recognised.
func (ps Params) Validate() error {
	for name := range ps {
		if _, ok := paramDefaults[name]; !ok {
			return fmt.Errorf("%w %q", ErrUnknownParam, name)
		}
	}
	return nil
}

// Get returns the value of a parameter, or its default.
func (ps Params) Get(name string) string {
	if v, ok := ps[name]; ok {
		return v
	}
	return paramDefaults[name]
}

// Bool interprets a parameter as a yes/no value.
func (ps Params) Bool(name string) bool {
	switch cases.Fold().String(ps.Get(name)) {
	case "yes", "y", "true", "on", "1":
		return true
	}
	return false
}

// Int interprets a parameter as an integer.
func (ps Params) Int(name string) (int, error) {
	v := ps.Get(name)
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parameter %s: %w", name, err)
	}
	return n, nil
}

// pageSizes gives the paper dimensions in PostScript points.
var pageSizes = map[string][2]float64{
	"letter":  {612, 792},
	"legal":   {612, 1008},
	"tabloid": {792, 1224},
	"ledger":  {1224, 792},
	"a3":      {841.89, 1190.55},
	"a4":      {595.28, 841.89},
	"a5":      {419.53, 595.28},
	"b5":      {498.9, 708.66},
}

// PageSize returns the paper size selected by the PAGESIZE parameter,
// in PostScript points.
func (ps Params) PageSize() (width, height float64, err error) {
	name := cases.Fold().String(strings.TrimSpace(ps.Get("PAGESIZE")))
	size, ok := pageSizes[name]
	if !ok {
		return 0, 0, fmt.Errorf("unknown page size %q", ps.Get("PAGESIZE"))
	}
	return size[0], size[1], nil
}

// BitmapSize returns the image size selected by the BITMAPSIZE parameter,
// in pixels.  The value has the form "WIDTHxHEIGHT" or a single number
// for square images.
func (ps Params) BitmapSize() (width, height int, err error) {
	v := cases.Fold().String(strings.TrimSpace(ps.Get("BITMAPSIZE")))
	ws, hs, found := strings.Cut(v, "x")
	if !found {
		hs = ws
	}
	width, err = strconv.Atoi(ws)
	if err == nil {
		height, err = strconv.Atoi(hs)
	}
	if err != nil || width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid bitmap size %q", ps.Get("BITMAPSIZE"))
	}
	return width, height, nil
}
