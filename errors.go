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
	"fmt"

	"seehuhn.de/go/plot/outbuf"
)

var (
	// ErrNotOpen is returned by drawing operations on a closed Plotter.
	ErrNotOpen = errors.New("plotter not open")

	// ErrAlreadyOpen is returned by Open if the Plotter is open.
	ErrAlreadyOpen = errors.New("plotter already open")

	// ErrStateUnderflow is returned by RestoreState if only the bottom
	// drawing state is left.
	ErrStateUnderflow = errors.New("drawing state stack underflow")

	// ErrDegenerate indicates geometry which does not determine a unique
	// curve, for example an arc with collinear radius vectors.
	ErrDegenerate = errors.New("degenerate geometry")

	// ErrAllocation indicates that an output buffer could not grow.
	// This error is fatal: the Plotter is aborted.
	ErrAllocation = outbuf.ErrAllocation

	// ErrAborted is returned by all operations after a fatal error.
	ErrAborted = errors.New("plotter aborted after fatal error")

	// ErrUnknownParam is returned for parameter names which are not
	// recognised.
	ErrUnknownParam = errors.New("unknown parameter")
)

// CapabilityError is the panic value used when a path about to be handed
// to a device contains a segment the device declared it cannot draw.
// This indicates a bug in the conversion code, not a user error.
type CapabilityError struct {
	Device string
	Kind   SegmentKind
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("plot: device %q cannot draw %s segments under the current transformation", e.Device, e.Kind)
}

// WarningHandler receives non-fatal diagnostics, for example about font
// substitution or unknown colour names.
type WarningHandler func(msg string)

// ErrorHandler receives errors before they are returned to the caller.
type ErrorHandler func(err error)

// isFatal reports whether err belongs to the error classes which
// terminate a drawing session.
func isFatal(err error) bool {
	return errors.Is(err, ErrAllocation)
}

// warn reports a warning through the configured handler.
func (p *Plotter) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.warningHandler != nil {
		p.warningHandler(msg)
		return
	}
	p.log.Warn(msg)
}

// fail reports err through the error handler and returns it.
// Fatal errors abort the Plotter.
func (p *Plotter) fail(err error) error {
	if err == nil {
		return nil
	}
	fatal := isFatal(err)
	if fatal {
		p.aborted = true
		p.isOpen = false
	}
	if p.errorHandler != nil {
		p.errorHandler(err)
		return err
	}
	p.log.Error("plot error", "error", err)
	if fatal {
		panic(err)
	}
	return err
}

// check verifies that drawing operations are allowed.
func (p *Plotter) check() error {
	if p.aborted {
		return ErrAborted
	}
	if !p.isOpen {
		return p.fail(ErrNotOpen)
	}
	return nil
}
