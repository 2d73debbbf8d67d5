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

// Command plotdemo draws the plotter test cases, or replays a metafile,
// on any of the output devices.
//
// Usage:
//
//	plotdemo [-T device] [-o file] [-p KEY=VALUE]... [-case category/name]
//	plotdemo -T device -replay file.meta
//	plotdemo -T device -all dir
//	plotdemo -list
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/term"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/device"
	"seehuhn.de/go/plot/device/meta"
	"seehuhn.de/go/plot/testcases"
)

func main() {
	params := plot.Params{}
	kind := flag.String("T", "svg", "output device ("+strings.Join(device.Kinds(), ", ")+")")
	outName := flag.String("o", "", "output file (default standard output)")
	caseName := flag.String("case", "", "draw only the named test case")
	list := flag.Bool("list", false, "list the test cases and devices")
	replay := flag.String("replay", "", "replay a metafile instead of drawing the test cases")
	allDir := flag.String("all", "", "write every test case to a separate file in `dir`")
	verbose := flag.Bool("v", false, "log debugging information")
	flag.Func("p", "set a device parameter, as `KEY=VALUE`", func(s string) error {
		key, value, err := plot.ParseParam(s)
		if err != nil {
			return err
		}
		params[key] = value
		return nil
	})
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [options]\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(flag.CommandLine.Output(), "\nparameters: %s\n", strings.Join(plot.ParamNames(), ", "))
	}
	flag.Parse()
	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(2)
	}

	opts := []plot.Option{plot.WithParams(params)}
	if *verbose {
		opts = append(opts, plot.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))))
	}

	var err error
	switch {
	case *list:
		listAll(os.Stdout)
	case *allDir != "":
		err = writeAll(*kind, params, opts, *allDir)
	default:
		err = run(*kind, params, opts, *outName, *caseName, *replay)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "plotdemo:", err)
		os.Exit(1)
	}
}

func listAll(w io.Writer) {
	fmt.Fprintln(w, "devices:")
	for _, kind := range device.Kinds() {
		fmt.Fprintln(w, "  "+kind)
	}
	fmt.Fprintln(w, "test cases:")
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			fmt.Fprintf(w, "  %s/%s\n", category, tc.Name)
		}
	}
}

func run(kind string, params plot.Params, opts []plot.Option, outName, caseName, replay string) (err error) {
	var cases []*testcases.TestCase
	if caseName != "" {
		tc, ok := testcases.Find(caseName)
		if !ok {
			return fmt.Errorf("unknown test case %q", caseName)
		}
		cases = append(cases, tc)
	}

	var w io.Writer = os.Stdout
	if outName != "" {
		f, createErr := os.Create(outName)
		if createErr != nil {
			return createErr
		}
		defer func() {
			if err2 := f.Close(); err == nil {
				err = err2
			}
		}()
		w = f
	} else if device.IsBinary(kind) && term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("refusing to write binary output to a terminal, use -o")
	}

	r, err := device.New(kind, params)
	if err != nil {
		return err
	}
	p, err := plot.New(r, w, opts...)
	if err != nil {
		return err
	}

	if replay != "" {
		in, err := os.Open(replay)
		if err != nil {
			return err
		}
		defer in.Close()
		if err := meta.Replay(in, p); err != nil {
			return err
		}
		return p.Terminate()
	}

	if cases == nil {
		for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
			for i := range testcases.All[category] {
				cases = append(cases, &testcases.All[category][i])
			}
		}
	}
	for _, tc := range cases {
		if err := drawPage(p, tc); err != nil {
			return err
		}
	}
	return p.Terminate()
}

// writeAll writes every test case to its own file in dir.
func writeAll(kind string, params plot.Params, opts []plot.Option, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for i := range testcases.All[category] {
			tc := &testcases.All[category][i]
			name := filepath.Join(dir, category+"_"+tc.Name+"."+kind)
			if err := writeOne(kind, params, opts, name, tc); err != nil {
				return fmt.Errorf("%s/%s: %w", category, tc.Name, err)
			}
		}
	}
	return nil
}

func writeOne(kind string, params plot.Params, opts []plot.Option, name string, tc *testcases.TestCase) (err error) {
	r, err := device.New(kind, params)
	if err != nil {
		return err
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if err2 := f.Close(); err == nil {
			err = err2
		}
	}()

	p, err := plot.New(r, f, opts...)
	if err != nil {
		return err
	}
	if err := drawPage(p, tc); err != nil {
		return err
	}
	return p.Terminate()
}

func drawPage(p *plot.Plotter, tc *testcases.TestCase) error {
	if err := p.Open(); err != nil {
		return err
	}
	if err := tc.Render(p); err != nil {
		return err
	}
	return p.Close()
}
