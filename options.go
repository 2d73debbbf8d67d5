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

import "log/slog"

// Option configures a Plotter.
type Option func(*config)

type config struct {
	params         Params
	logger         *slog.Logger
	warningHandler WarningHandler
	errorHandler   ErrorHandler
	maxBufferSize  int
}

// WithParams sets device parameters such as PAGESIZE or BG_COLOR.
func WithParams(params Params) Option {
	return func(c *config) {
		c.params = params
	}
}

// WithWarningHandler installs a function which receives all warnings.
// Without a handler, warnings are logged.
func WithWarningHandler(h WarningHandler) Option {
	return func(c *config) {
		c.warningHandler = h
	}
}

// WithErrorHandler installs a function which receives all errors before
// they are returned.  Without a handler, errors are logged and fatal
// errors cause a panic.
func WithErrorHandler(h ErrorHandler) Option {
	return func(c *config) {
		c.errorHandler = h
	}
}

// WithMaxBufferSize limits the size of each page buffer.
func WithMaxBufferSize(n int) Option {
	return func(c *config) {
		c.maxBufferSize = n
	}
}
