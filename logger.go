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

// WithLogger sets the logger for this Plotter.  Without this option
// nothing is logged.
//
// Log levels used by this package:
//   - [slog.LevelDebug]: page open/close and paths handed to the device
//   - [slog.LevelWarn]: warnings, unless a WarningHandler is installed
//   - [slog.LevelError]: errors, unless an ErrorHandler is installed
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
