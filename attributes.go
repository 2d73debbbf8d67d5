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
	"image/color"
	"slices"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/plot/outbuf"
)

// modify ends the path in progress and then applies fn to the current
// drawing state.  All attribute setters go through here.
func (p *Plotter) modify(fn func(st *DrawingState)) error {
	if err := p.check(); err != nil {
		return err
	}
	if err := p.endPath(); err != nil {
		return err
	}
	fn(p.state)
	return nil
}

func toRGBA64(c color.Color) color.RGBA64 {
	return color.RGBA64Model.Convert(c).(color.RGBA64)
}

// SetPenColor sets the colour used for stroking.
func (p *Plotter) SetPenColor(c color.Color) error {
	return p.modify(func(st *DrawingState) {
		st.PenColor = toRGBA64(c)
	})
}

// SetPenColorName sets the stroke colour by name.  Unknown names select
// black.
func (p *Plotter) SetPenColorName(name string) error {
	if err := p.check(); err != nil {
		return err
	}
	return p.SetPenColor(p.namedColor(name))
}

// SetFillColor sets the colour used for filling.
func (p *Plotter) SetFillColor(c color.Color) error {
	return p.modify(func(st *DrawingState) {
		st.FillColor = toRGBA64(c)
	})
}

// SetFillColorName sets the fill colour by name.  Unknown names select
// black.
func (p *Plotter) SetFillColorName(name string) error {
	if err := p.check(); err != nil {
		return err
	}
	return p.SetFillColor(p.namedColor(name))
}

// SetColor sets both the pen and the fill colour.
func (p *Plotter) SetColor(c color.Color) error {
	return p.modify(func(st *DrawingState) {
		st.PenColor = toRGBA64(c)
		st.FillColor = st.PenColor
	})
}

// SetColorName sets both the pen and the fill colour by name.
func (p *Plotter) SetColorName(name string) error {
	if err := p.check(); err != nil {
		return err
	}
	return p.SetColor(p.namedColor(name))
}

// SetBgColor sets the background colour, which is used by the next Erase.
func (p *Plotter) SetBgColor(c color.Color) error {
	err := p.modify(func(st *DrawingState) {
		st.BgColor = toRGBA64(c)
	})
	if err != nil {
		return err
	}
	p.renderer.SetBgColor(p.page, p.state)
	return p.drain()
}

// SetBgColorName sets the background colour by name.  Unknown names
// select white.
func (p *Plotter) SetBgColorName(name string) error {
	if err := p.check(); err != nil {
		return err
	}
	c, ok := ParseColor(name)
	if !ok {
		p.warn("background color %q not recognized, using white", name)
		c = white
	}
	return p.SetBgColor(c)
}

// SetFillType sets the fill level.  Level 0 disables filling, level 1
// fills with the fill colour and higher levels, up to 0xffff, mix the
// fill colour with increasing amounts of white.
func (p *Plotter) SetFillType(level int) error {
	if level < 0 || level > 0xffff {
		if err := p.check(); err != nil {
			return err
		}
		p.warn("fill level %d out of range, filling disabled", level)
		level = 0
	}
	return p.modify(func(st *DrawingState) {
		st.FillLevel = level
	})
}

// SetFillRule selects the rule which decides which parts of a
// self-intersecting path are filled.
func (p *Plotter) SetFillRule(rule FillRule) error {
	return p.modify(func(st *DrawingState) {
		st.FillRule = rule
	})
}

// SetFillRuleName selects the fill rule by name: "even-odd" (also
// "alternate") or "nonzero-winding" (also "winding").
func (p *Plotter) SetFillRuleName(name string) error {
	if err := p.check(); err != nil {
		return err
	}
	var rule FillRule
	switch cases.Fold().String(name) {
	case "even-odd", "alternate":
		rule = EvenOdd
	case "nonzero-winding", "winding":
		rule = NonZero
	default:
		p.warn("fill rule %q not recognized, using even-odd", name)
		rule = EvenOdd
	}
	return p.SetFillRule(rule)
}

// SetLineMode selects one of the predefined line styles.  Any dash
// pattern set by SetLineDash is removed.
func (p *Plotter) SetLineMode(mode LineMode) error {
	if mode > LineDisconnected {
		if err := p.check(); err != nil {
			return err
		}
		p.warn("invalid line mode %d, using solid lines", mode)
		mode = LineSolid
	}
	return p.modify(func(st *DrawingState) {
		st.LineMode = mode
		st.Dash = nil
		st.DashOffset = 0
	})
}

// SetLineModeName selects a line style by name, for example "dotted".
func (p *Plotter) SetLineModeName(name string) error {
	if err := p.check(); err != nil {
		return err
	}
	key := cases.Fold().String(name)
	mode := slices.Index(lineModeNames, key)
	if mode < 0 {
		p.warn("line mode %q not recognized, using solid lines", name)
		mode = int(LineSolid)
	}
	return p.SetLineMode(LineMode(mode))
}

var capNames = map[string]graphics.LineCapStyle{
	"butt":       graphics.LineCapButt,
	"round":      graphics.LineCapRound,
	"projecting": graphics.LineCapSquare,
	"triangular": outbuf.LineCapTriangular,
}

var joinNames = map[string]graphics.LineJoinStyle{
	"miter":      graphics.LineJoinMiter,
	"mitre":      graphics.LineJoinMiter,
	"round":      graphics.LineJoinRound,
	"bevel":      graphics.LineJoinBevel,
	"triangular": outbuf.LineJoinTriangular,
}

// SetCap sets the line cap style.
func (p *Plotter) SetCap(capStyle graphics.LineCapStyle) error {
	return p.modify(func(st *DrawingState) {
		st.Cap = capStyle
	})
}

// SetCapName sets the line cap style by name: "butt", "round",
// "projecting" or "triangular".
func (p *Plotter) SetCapName(name string) error {
	if err := p.check(); err != nil {
		return err
	}
	c, ok := capNames[cases.Fold().String(name)]
	if !ok {
		p.warn("cap style %q not recognized, using butt", name)
	}
	return p.SetCap(c)
}

// SetJoin sets the line join style.
func (p *Plotter) SetJoin(join graphics.LineJoinStyle) error {
	return p.modify(func(st *DrawingState) {
		st.Join = join
	})
}

// SetJoinName sets the line join style by name: "miter", "round",
// "bevel" or "triangular".
func (p *Plotter) SetJoinName(name string) error {
	if err := p.check(); err != nil {
		return err
	}
	j, ok := joinNames[cases.Fold().String(name)]
	if !ok {
		p.warn("join style %q not recognized, using miter", name)
	}
	return p.SetJoin(j)
}

// SetMiterLimit sets the limit for the ratio of miter length to line
// width, above which miter joins are drawn beveled.  Values below 1 are
// replaced by 1.
func (p *Plotter) SetMiterLimit(limit float64) error {
	if limit < 1 {
		if err := p.check(); err != nil {
			return err
		}
		p.warn("miter limit %g is less than 1, using 1", limit)
		limit = 1
	}
	return p.modify(func(st *DrawingState) {
		st.MiterLimit = limit
	})
}

// SetLineWidth sets the line width in user units.  A negative width
// restores the default width.
func (p *Plotter) SetLineWidth(width float64) error {
	return p.modify(func(st *DrawingState) {
		if width < 0 {
			st.defaultLineWidth = true
			st.LineWidth = st.ndcToUser(defaultLineWidthNDC)
			return
		}
		st.defaultLineWidth = false
		st.LineWidth = width
	})
}

// SetLineDash sets an explicit dash pattern in user units, overriding the
// line mode.  An empty pattern, or one with only zero entries, selects
// solid lines.
func (p *Plotter) SetLineDash(dashes []float64, offset float64) error {
	if err := p.check(); err != nil {
		return err
	}
	allZero := true
	for _, d := range dashes {
		if d < 0 {
			return p.fail(fmt.Errorf("line dash: negative length %g", d))
		}
		if d != 0 {
			allZero = false
		}
	}
	return p.modify(func(st *DrawingState) {
		st.LineMode = LineSolid
		if allZero {
			st.Dash = nil
			st.DashOffset = 0
			return
		}
		st.Dash = slices.Clone(dashes)
		st.DashOffset = offset
	})
}

// SetPenType selects whether paths are stroked.  Type 0 disables
// stroking.
func (p *Plotter) SetPenType(penType int) error {
	return p.modify(func(st *DrawingState) {
		st.PenType = penType
	})
}

// SetFontName selects a font.  If the device does not have the font,
// a similar one is used and a warning is issued.
func (p *Plotter) SetFontName(name string) error {
	return p.modify(func(st *DrawingState) {
		st.FontName = name
		p.retrieveFont(st)
	})
}

// SetFontSize sets the font size in user units.  A negative size
// restores the default size.
func (p *Plotter) SetFontSize(size float64) error {
	return p.modify(func(st *DrawingState) {
		if size < 0 {
			st.defaultFontSize = true
			st.FontSize = st.ndcToUser(defaultFontSizeNDC)
		} else {
			st.defaultFontSize = false
			st.FontSize = size
		}
		p.retrieveFont(st)
	})
}

func (p *Plotter) retrieveFont(st *DrawingState) {
	m := p.renderer.RetrieveFont(st)
	if m.Substituted {
		p.warn("font %q not available, using %q", st.FontName, m.Name)
		st.FontName = m.Name
	}
	st.Font = m
}

// Label draws text at the current position and advances the position by
// the estimated width of the text.  Devices which cannot draw text issue
// a warning instead.
func (p *Plotter) Label(text string) error {
	if err := p.check(); err != nil {
		return err
	}
	if err := p.endPath(); err != nil {
		return err
	}
	st := p.state
	tp, ok := p.renderer.(TextPainter)
	if !ok {
		p.warn("device %q cannot draw text, label %q omitted", p.caps.Name, text)
	} else {
		err := tp.PaintText(p.page, text, st)
		if err == nil {
			err = p.page.Err()
		}
		if err != nil {
			return p.fail(fmt.Errorf("label: %w", err))
		}
	}
	st.Pos.X += st.Font.AvgWidth * float64(utf8.RuneCountInString(text))
	return p.drain()
}
