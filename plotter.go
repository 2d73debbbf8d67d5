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

// Package plot implements a device-independent 2D vector plotting engine.
//
// A [Plotter] accepts drawing commands in user coordinates: lines, circular
// and elliptic arcs, Bézier curves and closed primitives such as boxes and
// circles.  Commands are collected into a path, which is handed to a
// device ([Renderer]) when the path ends.  Before that, every curve the
// device cannot draw under the current transformation is converted into
// cubic Bézier curves or approximated by line segments, so that devices
// only ever see what they declared in their [Capabilities].
//
// Drawing attributes are kept in a stack of [DrawingState] values, which
// can be pushed and popped with [Plotter.SaveState] and
// [Plotter.RestoreState].
//
// A Plotter is not safe for concurrent use.  Independent Plotters may be
// used from different goroutines.
package plot

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/plot/outbuf"
)

// Renderer is the interface implemented by output devices.
//
// All paths passed to PaintPath are in device space.  They only contain
// segment kinds which the device declared in Capabilities as native for
// the current transformation, and if the device does not support mixed
// paths, they contain only one kind of segment besides the initial move.
type Renderer interface {
	// Capabilities is called once, when the Plotter is created.
	Capabilities() Capabilities

	// OpenDevice starts page number pageNum (starting from 1).
	OpenDevice(page *outbuf.Buffer, pageNum int) error

	// CloseDevice finishes the page.
	CloseDevice(page *outbuf.Buffer) error

	// EraseDevice clears the page to the background colour.
	EraseDevice(page *outbuf.Buffer) error

	// PaintPath draws a path.  The slice is only valid during the call.
	PaintPath(page *outbuf.Buffer, path []GeneralizedPoint, st *DrawingState) error

	SetPenColor(page *outbuf.Buffer, st *DrawingState)
	SetFillColor(page *outbuf.Buffer, st *DrawingState)
	SetBgColor(page *outbuf.Buffer, st *DrawingState)

	// RetrieveFont returns the metrics of the font best matching
	// st.FontName and st.FontSize.
	RetrieveFont(st *DrawingState) FontMetrics
}

// DocumentWriter can be implemented by devices with the OutputAllPages
// model to assemble the final document from the individual pages.
// Without it, the page contents are concatenated.
type DocumentWriter interface {
	WriteDocument(w io.Writer, pages []*outbuf.Buffer) error
}

// TextPainter can be implemented by devices which are able to draw text
// labels.  The label is placed at st.Pos.
type TextPainter interface {
	PaintText(page *outbuf.Buffer, text string, st *DrawingState) error
}

// ErrTerminated is returned by operations on a terminated Plotter.
var ErrTerminated = errors.New("plotter terminated")

const defaultFlatness = 0.25

// Plotter is a drawing session on one output device.
type Plotter struct {
	renderer Renderer
	caps     Capabilities
	w        io.Writer
	params   Params
	log      *slog.Logger
	bg       color.RGBA64
	maxBuf   int
	maxLine  int

	warningHandler WarningHandler
	errorHandler   ErrorHandler

	isOpen     bool
	aborted    bool
	terminated bool

	state *DrawingState
	depth int

	page    *outbuf.Buffer
	pages   []*outbuf.Buffer
	pageNum int

	suppressFlush bool
}

// New creates a Plotter which draws on r and writes the output to w.
// If w is nil, the output is discarded.
func New(r Renderer, w io.Writer, opts ...Option) (*Plotter, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.params.Validate(); err != nil {
		return nil, err
	}
	if w == nil {
		w = io.Discard
	}

	p := &Plotter{
		renderer:       r,
		caps:           r.Capabilities(),
		w:              w,
		params:         cfg.params,
		log:            cfg.logger,
		maxBuf:         cfg.maxBufferSize,
		warningHandler: cfg.warningHandler,
		errorHandler:   cfg.errorHandler,
	}
	if p.log == nil {
		p.log = discardLogger()
	}
	if p.caps.Flatness <= 0 {
		p.caps.Flatness = defaultFlatness
	}
	if p.caps.DeviceTransform == (matrix.Matrix{}) {
		p.caps.DeviceTransform = matrix.Identity
	}

	p.maxLine = p.caps.MaxPolylineLength
	if _, set := cfg.params["MAX_LINE_LENGTH"]; set || p.maxLine <= 0 {
		n, err := cfg.params.Int("MAX_LINE_LENGTH")
		if err != nil {
			return nil, err
		}
		if n < 2 {
			return nil, fmt.Errorf("parameter MAX_LINE_LENGTH: %d is too small", n)
		}
		p.maxLine = n
	}

	bgName := cfg.params.Get("BG_COLOR")
	bg, ok := ParseColor(bgName)
	if !ok {
		p.warn("background color %q not recognized, using white", bgName)
		bg = white
	}
	p.bg = bg

	return p, nil
}

// Capabilities returns the capabilities of the device.
func (p *Plotter) Capabilities() Capabilities {
	return p.caps
}

// Params returns the parameters the Plotter was created with.
func (p *Plotter) Params() Params {
	return p.params
}

// IsOpen reports whether a page is open for drawing.
func (p *Plotter) IsOpen() bool {
	return p.isOpen
}

// Open starts a new page.
func (p *Plotter) Open() error {
	switch {
	case p.aborted:
		return ErrAborted
	case p.terminated:
		return p.fail(ErrTerminated)
	case p.isOpen:
		return p.fail(ErrAlreadyOpen)
	}

	if p.page == nil || !p.streamed() {
		p.page = outbuf.New()
	}
	p.page.MaxSize = p.maxBuf
	p.pageNum++

	p.state = newDrawingState(&p.caps, p.bg)
	p.state.Font = p.renderer.RetrieveFont(p.state)
	p.depth = 0
	p.isOpen = true

	err := p.renderer.OpenDevice(p.page, p.pageNum)
	if err == nil {
		p.renderer.SetBgColor(p.page, p.state)
		err = p.page.Err()
	}
	if err != nil {
		return p.fail(fmt.Errorf("open page %d: %w", p.pageNum, err))
	}
	p.log.Debug("open page", "device", p.caps.Name, "page", p.pageNum)
	return p.drain()
}

// Close finishes the current page.  All saved drawing states are
// discarded and the path in progress is painted.  Depending on the
// device, the page is written to the output now or when the Plotter is
// terminated.
func (p *Plotter) Close() error {
	if err := p.check(); err != nil {
		return err
	}
	for p.state.previous != nil {
		if err := p.RestoreState(); err != nil {
			return err
		}
	}
	if err := p.endPath(); err != nil {
		return err
	}

	err := p.renderer.CloseDevice(p.page)
	if err == nil {
		err = p.page.Err()
	}
	if err != nil {
		return p.fail(fmt.Errorf("close page %d: %w", p.pageNum, err))
	}
	p.isOpen = false
	p.state = nil
	p.log.Debug("close page", "device", p.caps.Name, "page", p.pageNum, "bytes", p.page.Len())

	switch p.caps.Output {
	case OutputStreamed:
		return p.drain()
	case OutputOnePage:
		if p.pageNum == 1 {
			return p.write(p.page.Bytes())
		}
	case OutputPageAtATime:
		return p.write(p.page.Bytes())
	case OutputAllPages:
		p.pages = append(p.pages, p.page)
	}
	return nil
}

// Erase clears the current page.
func (p *Plotter) Erase() error {
	if err := p.check(); err != nil {
		return err
	}
	if err := p.endPath(); err != nil {
		return err
	}
	err := p.renderer.EraseDevice(p.page)
	if err == nil {
		err = p.page.Err()
	}
	if err != nil {
		return p.fail(fmt.Errorf("erase: %w", err))
	}
	return p.drain()
}

// Flush paints the path in progress and, for streaming devices, sends
// all pending output to the writer.
func (p *Plotter) Flush() error {
	if err := p.check(); err != nil {
		return err
	}
	if err := p.endPath(); err != nil {
		return err
	}
	if err := p.drain(); err != nil {
		return err
	}
	if f, ok := p.w.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return p.fail(fmt.Errorf("flush: %w", err))
		}
	}
	return nil
}

// Terminate closes any open page and writes the pages kept by devices
// which output the whole document at the end.  The Plotter cannot be
// used afterwards.
func (p *Plotter) Terminate() error {
	if p.terminated {
		return nil
	}
	var err error
	if p.isOpen {
		err = p.Close()
	}
	p.terminated = true

	pages := p.pages
	p.pages = nil
	if p.aborted || len(pages) == 0 {
		return err
	}

	if dw, ok := p.renderer.(DocumentWriter); ok {
		if err2 := dw.WriteDocument(p.w, pages); err2 != nil {
			return errors.Join(err, p.fail(fmt.Errorf("write document: %w", err2)))
		}
		return err
	}
	for _, page := range pages {
		if err2 := p.write(page.Bytes()); err2 != nil {
			return errors.Join(err, err2)
		}
	}
	return err
}

func (p *Plotter) streamed() bool {
	return p.caps.Output == OutputStreamed
}

// drain sends the page buffer of a streaming device to the writer.
func (p *Plotter) drain() error {
	if !p.streamed() || p.page.Len() == 0 {
		return nil
	}
	if _, err := p.page.WriteTo(p.w); err != nil {
		return p.fail(fmt.Errorf("write output: %w", err))
	}
	return nil
}

func (p *Plotter) write(data []byte) error {
	if _, err := p.w.Write(data); err != nil {
		return p.fail(fmt.Errorf("write output: %w", err))
	}
	return nil
}
