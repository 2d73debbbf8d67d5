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

// Package device gives access to the output devices by name.
package device

import (
	"fmt"
	"slices"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/device/hpgl"
	"seehuhn.de/go/plot/device/meta"
	"seehuhn.de/go/plot/device/pdfpage"
	"seehuhn.de/go/plot/device/ps"
	"seehuhn.de/go/plot/device/raster"
	"seehuhn.de/go/plot/device/svg"
)

var constructors = map[string]func(plot.Params) (plot.Renderer, error){
	"meta": func(params plot.Params) (plot.Renderer, error) {
		return meta.New(params), nil
	},
	"svg": func(params plot.Params) (plot.Renderer, error) {
		return svg.New(params)
	},
	"ps": func(params plot.Params) (plot.Renderer, error) {
		return ps.New(params)
	},
	"hpgl": func(params plot.Params) (plot.Renderer, error) {
		return hpgl.New(params)
	},
	"pdf": func(params plot.Params) (plot.Renderer, error) {
		return pdfpage.New(params)
	},
	"pnm": func(params plot.Params) (plot.Renderer, error) {
		return raster.New(raster.PNM, params)
	},
	"gif": func(params plot.Params) (plot.Renderer, error) {
		return raster.New(raster.GIF, params)
	},
}

// Kinds returns the names of all devices, in alphabetical order.
func Kinds() []string {
	kinds := make([]string, 0, len(constructors))
	for kind := range constructors {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}

// IsBinary reports whether the output of a device is binary data.
func IsBinary(kind string) bool {
	switch kind {
	case "meta", "pdf", "gif", "pnm":
		return true
	}
	return false
}

// New creates the device with the given name.
func New(kind string, params plot.Params) (plot.Renderer, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	newDevice, ok := constructors[kind]
	if !ok {
		return nil, fmt.Errorf("unknown device %q", kind)
	}
	r, err := newDevice(params)
	if err != nil {
		return nil, fmt.Errorf("device %s: %w", kind, err)
	}
	return r, nil
}
