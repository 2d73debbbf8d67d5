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
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestSaveRestoreRoundTrip(t *testing.T) {
	env := newTestEnv(t, lineCaps())
	p := env.p

	p.Space(0, 0, 100, 100)
	p.SetLineWidth(3)
	p.SetPenColorName("red")
	p.SetLineDash([]float64{2, 1}, 0.5)
	before, err := p.State()
	if err != nil {
		t.Fatal(err)
	}

	if err := p.SaveState(); err != nil {
		t.Fatal(err)
	}
	p.SetLineWidth(7)
	p.SetLineDash([]float64{5, 5, 1}, 0)
	p.SetFillType(1)
	p.Rotate(30)
	p.SetCapName("round")
	if err := p.RestoreState(); err != nil {
		t.Fatal(err)
	}

	after, err := p.State()
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(before, after, cmpopts.IgnoreUnexported(DrawingState{})); d != "" {
		t.Errorf("state changed (-before +after):\n%s", d)
	}
}

func TestSaveStateDeepCopiesDash(t *testing.T) {
	env := newTestEnv(t, lineCaps())
	p := env.p

	dash := []float64{1, 2}
	p.SetLineDash(dash, 0)
	p.SaveState()
	p.state.Dash[0] = 99
	p.RestoreState()

	if p.state.Dash[0] != 1 {
		t.Errorf("saved dash pattern was modified: %v", p.state.Dash)
	}
	if dash[0] != 1 {
		t.Errorf("caller's slice was modified: %v", dash)
	}
}

func TestRestoreUnderflow(t *testing.T) {
	env := newTestEnv(t, lineCaps())
	err := env.p.RestoreState()
	if !errors.Is(err, ErrStateUnderflow) {
		t.Fatalf("got %v, want ErrStateUnderflow", err)
	}
	if len(env.warnings) != 1 {
		t.Errorf("got %d warnings, want 1", len(env.warnings))
	}
	if !env.p.IsOpen() {
		t.Error("plotter closed after state underflow")
	}
	if err := env.p.Line(0.5, 0.5); err != nil {
		t.Errorf("drawing after underflow: %v", err)
	}
}

func TestSaveStateEndsPath(t *testing.T) {
	env := newTestEnv(t, lineCaps())
	env.p.Line(0.5, 0)
	env.p.Line(0.5, 0.5)
	if err := env.p.SaveState(); err != nil {
		t.Fatal(err)
	}
	if len(env.rec.paths) != 1 {
		t.Fatalf("%d paths painted, want 1", len(env.rec.paths))
	}
	if env.p.PathLen() != 0 {
		t.Errorf("new state has a path of length %d", env.p.PathLen())
	}
}

func TestCloseUnwindsStack(t *testing.T) {
	env := newTestEnv(t, lineCaps())
	p := env.p
	p.SaveState()
	p.SaveState()
	p.Line(0.5, 0.5)
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if len(env.rec.paths) != 1 {
		t.Errorf("%d paths painted, want 1", len(env.rec.paths))
	}
	if p.depth != 0 {
		t.Errorf("stack depth %d after close", p.depth)
	}
}

func TestDefaultLineWidthFollowsSpace(t *testing.T) {
	env := newTestEnv(t, lineCaps())
	p := env.p

	p.Space(0, 0, 100, 100)
	st, _ := p.State()
	if want := 100.0 / 850; math.Abs(st.LineWidth-want) > 1e-12 {
		t.Errorf("default line width %g, want %g", st.LineWidth, want)
	}
	if want := 100.0 / 50; math.Abs(st.FontSize-want) > 1e-12 {
		t.Errorf("default font size %g, want %g", st.FontSize, want)
	}

	p.SetLineWidth(2)
	p.Space(0, 0, 10, 10)
	st, _ = p.State()
	if st.LineWidth != 2 {
		t.Errorf("explicit line width changed to %g", st.LineWidth)
	}

	p.SetLineWidth(-1)
	st, _ = p.State()
	if want := 10.0 / 850; math.Abs(st.LineWidth-want) > 1e-12 {
		t.Errorf("restored default line width %g, want %g", st.LineWidth, want)
	}
}

func TestDeviceLineWidth(t *testing.T) {
	env := newTestEnv(t, lineCaps())
	p := env.p
	p.Space(0, 0, 100, 100)
	p.SetLineWidth(2)
	st, _ := p.State()
	// 100 user units map to 1000 device units
	if got := st.DeviceLineWidth(); math.Abs(got-20) > 1e-9 {
		t.Errorf("device line width %g, want 20", got)
	}
}

func TestFillRGBA(t *testing.T) {
	st := DrawingState{FillColor: color.RGBA64{R: 0xffff, A: 0xffff}}

	st.FillLevel = 1
	if got := st.FillRGBA(); got != st.FillColor {
		t.Errorf("level 1: got %v", got)
	}
	st.FillLevel = 0xffff
	if got := st.FillRGBA(); got != white {
		t.Errorf("level 0xffff: got %v, want white", got)
	}
	st.FillLevel = 0x8000
	got := st.FillRGBA()
	if got.R != 0xffff || got.G < 0x7000 || got.G > 0x9000 || got.G != got.B {
		t.Errorf("level 0x8000: got %v", got)
	}
}

func TestDashArray(t *testing.T) {
	env := newTestEnv(t, lineCaps())
	p := env.p
	p.Space(0, 0, 1000, 1000)
	p.SetLineWidth(2)

	p.SetLineModeName("dotted")
	st, _ := p.State()
	if d := cmp.Diff([]float64{2, 6}, st.DashArray()); d != "" {
		t.Errorf("dotted (-want +got):\n%s", d)
	}

	p.SetLineWidth(0)
	st, _ = p.State()
	unit := 1000.0 / 576
	if d := cmp.Diff([]float64{4 * unit, 3 * unit, unit, 3 * unit}, withMode(st, LineDotDashed).DashArray(),
		cmpopts.EquateApprox(0, 1e-12)); d != "" {
		t.Errorf("thin dotdashed (-want +got):\n%s", d)
	}

	p.SetLineModeName("solid")
	st, _ = p.State()
	if st.DashArray() != nil {
		t.Errorf("solid lines have dash pattern %v", st.DashArray())
	}

	p.SetLineDash([]float64{0, 0}, 1)
	st, _ = p.State()
	if st.Dash != nil {
		t.Errorf("all-zero dash pattern kept: %v", st.Dash)
	}
}

func withMode(st DrawingState, mode LineMode) *DrawingState {
	st.LineMode = mode
	return &st
}

func TestUnknownLineMode(t *testing.T) {
	env := newTestEnv(t, lineCaps())
	env.p.SetLineModeName("wiggly")
	st, _ := env.p.State()
	if st.LineMode != LineSolid {
		t.Errorf("line mode %v, want solid", st.LineMode)
	}
	if len(env.warnings) != 1 {
		t.Errorf("got %d warnings, want 1", len(env.warnings))
	}
}

func TestFontSubstitution(t *testing.T) {
	env := newTestEnv(t, lineCaps())
	env.p.SetFontName("missing")
	st, _ := env.p.State()
	if st.FontName != "Helvetica" || !st.Font.Substituted {
		t.Errorf("font %q (substituted=%t), want Helvetica", st.FontName, st.Font.Substituted)
	}
	if len(env.warnings) != 1 {
		t.Errorf("got %d warnings, want 1", len(env.warnings))
	}
}
