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

package meta

import (
	"bytes"
	"errors"
	"io"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"seehuhn.de/go/plot"
)

func record(t *testing.T, params plot.Params, draw func(p *plot.Plotter)) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	p, err := plot.New(New(params), buf, plot.WithParams(params))
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Open(); err != nil {
		t.Fatal(err)
	}
	draw(p)
	if err := p.Terminate(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func decode(t *testing.T, data []byte) []*Record {
	t.Helper()
	r, err := NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	var res []*Record
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return res
		} else if err != nil {
			t.Fatal(err)
		}
		res = append(res, rec)
	}
}

func ops(recs []*Record) string {
	var b strings.Builder
	for _, r := range recs {
		b.WriteByte(byte(r.Op))
	}
	return b.String()
}

func drawing(p *plot.Plotter) {
	p.SetLineModeName("dotdashed")
	p.Circle(0.5, 0.5, 0.25)
	p.SetFillType(1)
	p.SetFillColorName("light blue")
	p.Bezier3(0.1, 0.1, 0.2, 0.4, 0.3, 0.4, 0.4, 0.1)
	p.Bezier2(0.4, 0.1, 0.5, 0.3, 0.6, 0.1)
	p.EllArc(0.5, 0.1, 0.6, 0.1, 0.5, 0.15)
	p.EndPath()
	p.SetFontSize(0.05)
	p.Move(0.1, 0.9)
	p.Label("hello, world")
}

func TestSimplePath(t *testing.T) {
	params := plot.Params{"META_PORTABLE": "yes"}
	data := record(t, params, func(p *plot.Plotter) {
		p.Move(0.1, 0.2)
		p.Line(0.3, 0.4)
		p.EndPath()

		// unchanged attributes are not repeated
		p.Line(0.5, 0.6)
		p.EndPath()
	})
	if !bytes.HasPrefix(data, []byte(magicPortable)) {
		t.Fatalf("missing header in %q", data)
	}

	recs := decode(t, data)
	if got, want := ops(recs), "oBPFfRpwcjMdmnEmnEx"; got != want {
		t.Errorf("got records %q, want %q", got, want)
	}
	if d := cmp.Diff([]float64{0.1, 0.2}, recs[12].Args); d != "" {
		t.Errorf("move (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]float64{0.3, 0.4}, recs[13].Args); d != "" {
		t.Errorf("line (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]float64{0}, recs[11].Args[:1]); d != "" {
		t.Errorf("solid lines have a dash record %v", recs[11].Args)
	}
	if !bytes.Contains(data, []byte("\nm 0.1 0.2\nn 0.3 0.4\nE\n")) {
		t.Errorf("unexpected encoding:\n%s", data)
	}
}

func TestEncodingsAgree(t *testing.T) {
	binary := record(t, plot.Params{}, drawing)
	portable := record(t, plot.Params{"META_PORTABLE": "yes"}, drawing)
	if !bytes.HasPrefix(binary, []byte(magicBinary)) {
		t.Fatal("missing binary header")
	}
	if len(binary) == len(portable) {
		t.Error("binary and portable encodings have the same length")
	}

	a := decode(t, binary)
	b := decode(t, portable)
	if d := cmp.Diff(a, b); d != "" {
		t.Errorf("records differ (-binary +portable):\n%s", d)
	}

	kinds := ops(a)
	for _, op := range []Op{OpArc, OpBezier3, OpBezier2, OpEllArc, OpDash, OpFontName, OpFontSize, OpLabel} {
		if !strings.ContainsRune(kinds, rune(op)) {
			t.Errorf("no %q record in %q", op, kinds)
		}
	}
	label := a[slices.IndexFunc(a, func(r *Record) bool { return r.Op == OpLabel })]
	if label.Text != "hello, world" {
		t.Errorf("label %q", label.Text)
	}
}

func TestPages(t *testing.T) {
	data := record(t, plot.Params{"META_PORTABLE": "yes"}, func(p *plot.Plotter) {
		p.Box(0.1, 0.1, 0.2, 0.2)
		p.Erase()
		p.Close()
		p.Open()
		p.Box(0.1, 0.1, 0.2, 0.2)
	})
	recs := decode(t, data)
	var pages []float64
	erased := false
	for _, r := range recs {
		switch r.Op {
		case OpOpen:
			pages = append(pages, r.Args[0])
		case OpErase:
			erased = true
		}
	}
	if d := cmp.Diff([]float64{1, 2}, pages); d != "" {
		t.Errorf("page numbers (-want +got):\n%s", d)
	}
	if !erased {
		t.Error("no erase record")
	}
	if n := bytes.Count(data, []byte(magicPortable)); n != 1 {
		t.Errorf("%d headers", n)
	}
}

func TestReplay(t *testing.T) {
	data := record(t, plot.Params{}, drawing)

	params := plot.Params{"META_PORTABLE": "yes"}
	buf := &bytes.Buffer{}
	p, err := plot.New(New(params), buf, plot.WithParams(params))
	if err != nil {
		t.Fatal(err)
	}
	if err := Replay(bytes.NewReader(data), p); err != nil {
		t.Fatal(err)
	}
	if err := p.Terminate(); err != nil {
		t.Fatal(err)
	}

	geometry := func(recs []*Record) []*Record {
		return slices.DeleteFunc(recs, func(r *Record) bool {
			return !strings.ContainsRune("mnaq?rEt", rune(r.Op))
		})
	}
	want := geometry(decode(t, data))
	got := geometry(decode(t, buf.Bytes()))
	if d := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); d != "" {
		t.Errorf("replayed geometry (-want +got):\n%s", d)
	}
}

func TestArcUnderNonUniformScaling(t *testing.T) {
	data := record(t, plot.Params{"META_PORTABLE": "yes"}, func(p *plot.Plotter) {
		p.Scale(2, 1)
		p.Arc(0.2, 0.2, 0.4, 0.2, 0.2, 0.4)
		p.EndPath()
	})
	recs := decode(t, data)
	if kinds := ops(recs); strings.ContainsRune(kinds, rune(OpArc)) {
		t.Fatalf("circular arc recorded under non-uniform scaling: %q", kinds)
	}

	// The image of the arc lies on the ellipse with centre (0.4, 0.2)
	// and semi-axes 0.4 and 0.2.
	ellipse := func(x, y float64) float64 {
		dx := (x - 0.4) / 0.4
		dy := (y - 0.2) / 0.2
		return math.Sqrt(dx*dx + dy*dy)
	}

	var x0, y0 float64
	curves := 0
	for _, r := range recs {
		a := r.Args
		switch r.Op {
		case OpMove, OpLine:
			x0, y0 = a[0], a[1]
		case OpBezier3:
			for _, u := range []float64{0.25, 0.5, 0.75, 1} {
				s := 1 - u
				x := s*s*s*x0 + 3*s*s*u*a[0] + 3*s*u*u*a[2] + u*u*u*a[4]
				y := s*s*s*y0 + 3*s*s*u*a[1] + 3*s*u*u*a[3] + u*u*u*a[5]
				if e := ellipse(x, y); math.Abs(e-1) > 1e-3 {
					t.Errorf("point (%g, %g) is off the ellipse by %g", x, y, e-1)
				}
			}
			x0, y0 = a[4], a[5]
			curves++
		}
	}
	if curves == 0 {
		t.Fatal("no curve recorded")
	}
	if math.Abs(x0-0.4) > 1e-9 || math.Abs(y0-0.4) > 1e-9 {
		t.Errorf("arc ends at (%g, %g), want (0.4, 0.4)", x0, y0)
	}
}

func TestBadInput(t *testing.T) {
	cases := []string{
		"",
		"#PLOT 9\n",
		magicPortable + "Z 1 2\n",
		magicPortable + "m 1\n",
		magicPortable + "d 2 1 0\n",
		magicBinary + "m\x00\x00",
	}
	for _, in := range cases {
		r, err := NewReader(strings.NewReader(in))
		for err == nil {
			_, err = r.Next()
		}
		if errors.Is(err, io.EOF) || !errors.Is(err, ErrFormat) {
			t.Errorf("%q: got %v, want ErrFormat", in, err)
		}
	}
}
