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

package hpgl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/plot"
)

func newPlotter(t *testing.T, params plot.Params, buf *bytes.Buffer) *plot.Plotter {
	t.Helper()
	dev, err := New(params)
	if err != nil {
		t.Fatal(err)
	}
	p, err := plot.New(dev, buf, plot.WithParams(params))
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func render(t *testing.T, params plot.Params, draw func(p *plot.Plotter)) string {
	t.Helper()
	buf := &bytes.Buffer{}
	p := newPlotter(t, params, buf)
	if err := p.Open(); err != nil {
		t.Fatal(err)
	}
	draw(p)
	if err := p.Terminate(); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func expect(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("missing %q in\n%q", w, out)
		}
	}
}

func TestLine(t *testing.T) {
	// letter paper: the drawing area has side 8636 and starts at y=1270
	out := render(t, nil, func(p *plot.Plotter) {
		p.Segment(0, 0, 1, 1)
	})
	want := "\x1bE\x1b%0BIN;CR0,255,0,255,0,255;NP2;SP1;\n" +
		"PW0.254;LA1,1,2,1,3,10.43;LT;PC1,0,0,0;PU0,1270;PD8636,9906;\n" +
		"PU;SP0;PG;\n"
	if d := cmp.Diff(want, out); d != "" {
		t.Errorf("output (-want +got):\n%s", d)
	}
}

func TestArcs(t *testing.T) {
	out := render(t, nil, func(p *plot.Plotter) {
		p.Circle(0.5, 0.5, 0.25)
	})
	expect(t, out, "PU6477,5588;PD;AA4318,5588,90;AA4318,5588,90;AA4318,5588,90;AA4318,5588,90;\n")

	out = render(t, plot.Params{"HPGL_VERSION": "1"}, func(p *plot.Plotter) {
		p.Circle(0.5, 0.5, 0.25)
	})
	if !strings.HasPrefix(out, "IN;SP1;\n") {
		t.Errorf("unexpected HP-GL/1 preamble in %q", out)
	}
	for _, bad := range []string{"AA", "BZ", "PW", "PC", "LA"} {
		if strings.Contains(out, bad) {
			t.Errorf("HP-GL/1 output contains %s", bad)
		}
	}
	if !strings.Contains(out, "PU6477,5588;PD") {
		t.Errorf("circle not drawn as polyline: %q", out)
	}
}

func TestCubic(t *testing.T) {
	out := render(t, nil, func(p *plot.Plotter) {
		p.Bezier3(0, 0, 0, 0.5, 1, 0.5, 1, 0)
	})
	expect(t, out, "PU0,1270;PD;BZ0,5588,8636,5588,8636,1270;\n")

	out = render(t, plot.Params{"HPGL_VERSION": "1.5"}, func(p *plot.Plotter) {
		p.Bezier3(0, 0, 0, 0.5, 1, 0.5, 1, 0)
	})
	if strings.Contains(out, "BZ") {
		t.Errorf("HP-GL 1.5 output contains BZ")
	}
}

func TestFill(t *testing.T) {
	out := render(t, nil, func(p *plot.Plotter) {
		p.SetFillType(1)
		p.SetFillColorName("red")
		p.SetPenType(0)
		p.Box(0.25, 0.25, 0.75, 0.75)

		p.SetFillRuleName("nonzero")
		p.SetPenType(1)
		p.Box(0.25, 0.25, 0.75, 0.75)
	})
	expect(t, out,
		"SP2;PC2,255,0,0;PM0;PU2159,3429;PD6477,3429,6477,7747,2159,7747,2159,3429;PM2;FT1;FP0;\n",
		"PM2;FT1;FP1;SP1;PC1,0,0,0;EP;\n",
	)

	// without polygon mode, only the outline is drawn
	out = render(t, plot.Params{"HPGL_VERSION": "1"}, func(p *plot.Plotter) {
		p.SetFillType(1)
		p.SetPenType(0)
		p.Box(0.25, 0.25, 0.75, 0.75)
	})
	expect(t, out, "PU2159,3429;PD6477,3429,6477,7747,2159,7747,2159,3429;\n")
	if strings.Contains(out, "PM") {
		t.Error("polygon mode used in HP-GL/1")
	}
}

func TestLineAttributes(t *testing.T) {
	out := render(t, nil, func(p *plot.Plotter) {
		p.SetCapName("round")
		p.SetLineDash([]float64{0.1, 0.05}, 0)
		p.Segment(0, 0, 1, 0)
		p.EndPath()
		p.Segment(0, 0.5, 1, 0.5)
		p.EndPath()
		p.SetCapName("triangular")
		p.SetJoinName("triangular")
		p.Segment(0, 0, 1, 0)
	})
	expect(t, out,
		"LA1,4,2,1,3,10.43;UL8,66.67,33.33;LT8,32.385,1;",
		"LA1,3,2,3,3,10.43;",
	)
	if n := strings.Count(out, "UL8"); n != 2 {
		t.Errorf("dash pattern sent %d times, want 2", n)
	}
}

func TestAutoFlush(t *testing.T) {
	out := render(t, nil, func(p *plot.Plotter) {
		p.Move(0, 0)
		for i := 1; i <= 600; i++ {
			p.Line(float64(i)/600, float64(i%2)/100)
		}
	})
	if n := strings.Count(out, ";PD"); n != 2 {
		t.Errorf("polyline split into %d pieces, want 2", n)
	}
}

func TestText(t *testing.T) {
	buf := &bytes.Buffer{}
	p := newPlotter(t, nil, buf)
	p.Open()
	p.SetFontSize(0.05)
	p.Move(0.5, 0.5)
	p.Label("Hé")
	st, err := p.State()
	if err != nil {
		t.Fatal(err)
	}
	if st.Font.Name != stickFont || st.Font.Substituted {
		t.Errorf("got font %+v", st.Font)
	}
	p.SetFontName("Helvetica")
	st, _ = p.State()
	if !st.Font.Substituted {
		t.Error("substitution of Helvetica not reported")
	}
	p.Terminate()

	expect(t, buf.String(), "DI1,0;SI0.4318,", "PU4318,5588;LBH?\x03\n")
}

func TestPages(t *testing.T) {
	buf := &bytes.Buffer{}
	p := newPlotter(t, nil, buf)
	for range 2 {
		p.Open()
		p.Segment(0, 0, 1, 1)
		p.Close()
	}
	p.Terminate()

	out := buf.String()
	if n := strings.Count(out, "\x1bE"); n != 1 {
		t.Errorf("device reset %d times", n)
	}
	if n := strings.Count(out, "IN;"); n != 2 {
		t.Errorf("%d initialisations, want 2", n)
	}
	if n := strings.Count(out, "PG;"); n != 2 {
		t.Errorf("%d page feeds, want 2", n)
	}
	// pen colours are set again on the new page
	if n := strings.Count(out, "PC1,0,0,0;"); n != 2 {
		t.Errorf("pen colour sent %d times, want 2", n)
	}
}

func TestParseVersion(t *testing.T) {
	for _, v := range []Version{V1, V15, V2} {
		got, err := ParseVersion(v.String())
		if err != nil || got != v {
			t.Errorf("%s: got %v, %v", v, got, err)
		}
	}
	if _, err := New(plot.Params{"HPGL_VERSION": "3"}); err == nil {
		t.Error("version 3 accepted")
	}
}
