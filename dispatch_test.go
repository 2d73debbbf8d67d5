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

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

func kinds(path []GeneralizedPoint) map[SegmentKind]int {
	res := map[SegmentKind]int{}
	for _, s := range path[1:] {
		res[s.Kind]++
	}
	return res
}

func TestCubicFlattenedWithoutSupport(t *testing.T) {
	env := newTestEnv(t, lineCaps())
	p := env.p
	p.Bezier3(0, 0, 0, 0.1, 0.1, 0.1, 0.1, 0)
	p.EndPath()

	if len(env.rec.paths) != 1 {
		t.Fatalf("%d paths painted, want 1", len(env.rec.paths))
	}
	path := env.rec.paths[0]
	k := kinds(path)
	if len(k) != 1 || k[Line] < 2 {
		t.Errorf("got segment kinds %v, want only lines", k)
	}
	if end := path[len(path)-1].P; end != (vec.Vec2{X: 100}) {
		t.Errorf("path ends at %v, want (100, 0)", end)
	}
}

func TestCubicNative(t *testing.T) {
	caps := lineCaps()
	caps.Cubic = ScalingAny
	env := newTestEnv(t, caps)
	env.p.Bezier3(0, 0, 0, 0.1, 0.1, 0.1, 0.1, 0)
	env.p.EndPath()

	path := env.rec.paths[0]
	if len(path) != 2 || path[1].Kind != Cubic {
		t.Fatalf("got %v, want a single cubic", path)
	}
	want := GeneralizedPoint{
		Kind: Cubic,
		P:    vec.Vec2{X: 100},
		C:    vec.Vec2{Y: 100},
		D:    vec.Vec2{X: 100, Y: 100},
	}
	if path[1] != want {
		t.Errorf("got %v, want %v", path[1], want)
	}
}

func TestArcConversion(t *testing.T) {
	type testCase struct {
		name   string
		arc    Scaling
		cubic  Scaling
		matrix matrix.Matrix
		want   SegmentKind
	}
	cases := []testCase{
		{"native", ScalingAny, ScalingNone, matrix.Identity, Arc},
		{"uniform", ScalingUniform, ScalingNone, matrix.RotateDeg(30), Arc},
		{"reflected", ScalingUniform, ScalingNone, matrix.Scale(-1, 1), Arc},
		{"stretched to cubics", ScalingUniform, ScalingAny, matrix.Scale(2, 1), Cubic},
		{"stretched to lines", ScalingUniform, ScalingNone, matrix.Scale(2, 1), Line},
		{"cubics", ScalingNone, ScalingAny, matrix.Identity, Cubic},
		{"axes preserved", ScalingAxesPreserved, ScalingNone, matrix.Scale(2, 1), Arc},
		{"axes rotated", ScalingAxesPreserved, ScalingAny, matrix.RotateDeg(10), Cubic},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			caps := lineCaps()
			caps.Arc = tc.arc
			caps.Cubic = tc.cubic
			env := newTestEnv(t, caps)
			env.p.SetMatrix(tc.matrix)
			env.p.Arc(0, 0, 0.1, 0, -0.05, 0.08)
			env.p.EndPath()

			k := kinds(env.rec.paths[0])
			if len(k) != 1 || k[tc.want] == 0 {
				t.Errorf("got segment kinds %v, want %v", k, tc.want)
			}
			if tc.want == Cubic && k[Cubic] != 2 {
				t.Errorf("got %d cubics for a 122° arc, want 2", k[Cubic])
			}
		})
	}
}

func TestEllipticArcNeedsPositiveDeterminant(t *testing.T) {
	caps := lineCaps()
	caps.EllipticArc = ScalingAny
	env := newTestEnv(t, caps)

	env.p.EllArc(0, 0, 0.1, 0, 0, 0.05)
	env.p.EndPath()
	if k := kinds(env.rec.paths[0]); k[EllipticArc] != 1 {
		t.Errorf("identity: got %v, want a native elliptic arc", k)
	}

	env.p.SetMatrix(matrix.Scale(1, -1))
	env.p.EllArc(0, 0, 0.1, 0, 0, 0.05)
	env.p.EndPath()
	if k := kinds(env.rec.paths[1]); len(k) != 1 || k[Line] == 0 {
		t.Errorf("reflection: got %v, want lines", k)
	}
}

func TestMixedPathsFlattened(t *testing.T) {
	caps := lineCaps()
	caps.Cubic = ScalingAny
	caps.MixedPaths = false
	env := newTestEnv(t, caps)

	env.p.Bezier3(0, 0, 0, 0.1, 0.1, 0.1, 0.1, 0)
	env.p.EndPath()
	if k := kinds(env.rec.paths[0]); k[Cubic] != 1 {
		t.Errorf("pure cubic path: got %v", k)
	}

	env.p.Line(0.2, 0)
	env.p.Bezier3(0.2, 0, 0.2, 0.1, 0.3, 0.1, 0.3, 0)
	env.p.EndPath()
	if k := kinds(env.rec.paths[1]); len(k) != 1 || k[Line] < 3 {
		t.Errorf("mixed path: got %v, want only lines", k)
	}
}

func TestCapabilityAssertion(t *testing.T) {
	env := newTestEnv(t, lineCaps())
	segs := []GeneralizedPoint{
		{P: vec.Vec2{}},
		{Kind: Cubic, P: vec.Vec2{X: 1}},
	}
	defer func() {
		var capErr *CapabilityError
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.As(err, &capErr) || capErr.Kind != Cubic {
			t.Errorf("recovered %v, want *CapabilityError for cubics", r)
		}
	}()
	env.p.assertCapabilities(segs, matrix.Identity)
	t.Error("no panic")
}

func TestSmoothFlags(t *testing.T) {
	caps := lineCaps()
	caps.Arc = ScalingAny
	env := newTestEnv(t, caps)

	env.p.Circle(0.5, 0.5, 0.25)
	circle := env.rec.paths[0]
	for i, s := range circle {
		if !s.Smooth {
			t.Errorf("circle: point %d not smooth", i)
		}
	}

	env.p.Box(0, 0, 0.5, 0.5)
	box := env.rec.paths[1]
	for i, s := range box {
		if s.Smooth {
			t.Errorf("box: point %d marked smooth", i)
		}
	}

	// a straight line through a vertex is smooth, the end point is not
	env.p.Move(0, 0)
	env.p.Line(0.1, 0)
	env.p.Line(0.2, 0)
	env.p.EndPath()
	line := env.rec.paths[2]
	if line[0].Smooth || !line[1].Smooth || line[2].Smooth {
		t.Errorf("straight line: smooth flags %t %t %t", line[0].Smooth, line[1].Smooth, line[2].Smooth)
	}
}

func TestEndPathShort(t *testing.T) {
	env := newTestEnv(t, lineCaps())
	env.p.Move(0.5, 0.5)
	if err := env.p.EndPath(); err != nil {
		t.Fatal(err)
	}
	if len(env.rec.paths) != 0 {
		t.Errorf("%d paths painted, want 0", len(env.rec.paths))
	}
	if c := env.p.state.path.Cap(); c != 0 {
		t.Errorf("path storage not released, capacity %d", c)
	}
}

func TestAutoFlush(t *testing.T) {
	caps := lineCaps()
	caps.FlushLongPolylines = true
	caps.MaxPolylineLength = 5
	env := newTestEnv(t, caps)

	for i := 1; i <= 10; i++ {
		env.p.Line(float64(i)/100, float64(i%2)/100)
	}
	env.p.EndPath()

	paths := env.rec.paths
	if len(paths) != 3 {
		t.Fatalf("%d paths painted, want 3", len(paths))
	}
	lens := []int{len(paths[0]), len(paths[1]), len(paths[2])}
	if lens[0] != 5 || lens[1] != 5 || lens[2] != 3 {
		t.Errorf("path lengths %v, want [5 5 3]", lens)
	}
	for i := 1; i < len(paths); i++ {
		if paths[i][0].P != paths[i-1][len(paths[i-1])-1].P {
			t.Errorf("path %d does not continue path %d", i, i-1)
		}
	}
}

func TestAutoFlushFilled(t *testing.T) {
	caps := lineCaps()
	caps.FlushLongPolylines = true
	caps.MaxPolylineLength = 5
	env := newTestEnv(t, caps)

	env.p.SetFillType(1)
	for i := 1; i <= 10; i++ {
		env.p.Line(float64(i)/100, float64(i%2)/100)
	}
	env.p.EndPath()
	if len(env.rec.paths) != 1 || len(env.rec.paths[0]) != 11 {
		t.Errorf("filled path was split")
	}
}

func TestAutoFlushParam(t *testing.T) {
	caps := lineCaps()
	caps.FlushLongPolylines = true
	caps.MaxPolylineLength = 100
	env := newTestEnv(t, caps, WithParams(Params{"MAX_LINE_LENGTH": "3"}))
	for i := 1; i <= 4; i++ {
		env.p.Line(float64(i)/100, 0)
	}
	if len(env.rec.paths) != 2 {
		t.Errorf("%d paths painted, want 2", len(env.rec.paths))
	}
}

func TestCompoundPrimitivesAreNotFlushed(t *testing.T) {
	caps := lineCaps()
	caps.FlushLongPolylines = true
	caps.MaxPolylineLength = 3
	env := newTestEnv(t, caps)

	env.p.Box(0, 0, 0.5, 0.5)
	if len(env.rec.paths) != 1 || len(env.rec.paths[0]) != 5 {
		t.Errorf("box was split")
	}
}

func TestClosePathIsNotFlushed(t *testing.T) {
	caps := lineCaps()
	caps.FlushLongPolylines = true
	caps.MaxPolylineLength = 4
	env := newTestEnv(t, caps)

	env.p.Move(0.1, 0.1)
	env.p.Line(0.5, 0.1)
	env.p.Line(0.5, 0.5)
	if err := env.p.ClosePath(); err != nil {
		t.Fatal(err)
	}
	if len(env.rec.paths) != 1 {
		t.Fatalf("%d paths painted, want 1", len(env.rec.paths))
	}
	if path := env.rec.paths[0]; len(path) != 4 || !isClosed(path) {
		t.Errorf("got %v, want a closed triangle", path)
	}
}

func TestDisconnected(t *testing.T) {
	env := newTestEnv(t, lineCaps())
	env.p.SetLineWidth(0.01)
	env.p.SetLineModeName("disconnected")
	env.p.Move(0.1, 0.1)
	env.p.Line(0.5, 0.1)
	env.p.Line(0.5, 0.5)
	env.p.EndPath()

	if len(env.rec.paths) != 3 {
		t.Fatalf("%d paths painted, want 3 dots", len(env.rec.paths))
	}
	for i, path := range env.rec.paths {
		st := env.rec.states[i]
		if !isClosed(path) || st.FillLevel != 1 || st.Stroked() {
			t.Errorf("dot %d: closed=%t fill=%d stroked=%t", i, isClosed(path), st.FillLevel, st.Stroked())
		}
	}
	// device space centre of the second dot
	var sum vec.Vec2
	dot := env.rec.paths[1]
	for _, s := range dot[1:] {
		sum = sum.Add(s.P)
	}
	centre := sum.Mul(1 / float64(len(dot)-1))
	if centre.Sub(vec.Vec2{X: 500, Y: 100}).Length() > 1e-6 {
		t.Errorf("second dot centred at %v, want (500, 100)", centre)
	}
}
