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

// Package outbuf implements the growable byte buffers which output devices
// write into, together with the device-space bounding box of everything
// drawn into a buffer.
//
// A Buffer holds one page of output.  Devices which pre-commit header bytes
// call [Buffer.Freeze] after writing the header; [Buffer.ResetToFrozen] then
// discards everything drawn since, which is how a page is erased.
package outbuf

import (
	"errors"
	"fmt"
	"io"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// ErrAllocation is returned when a buffer would have to grow beyond its
// size limit.
var ErrAllocation = errors.New("output buffer allocation failed")

const (
	// initialSize is the capacity allocated by the first write.
	initialSize = 8192

	// DefaultMaxSize is the size limit used when Buffer.MaxSize is zero.
	DefaultMaxSize = 1 << 30
)

// Buffer accumulates the output of one page.
//
// Write errors are sticky: after the first failed write all further
// writes fail with the same error, and [Buffer.Err] reports it.
type Buffer struct {
	// MaxSize limits the number of bytes the buffer may hold.
	// Zero means DefaultMaxSize.
	MaxSize int

	// Fonts records which fonts were used on this page.
	Fonts FontSet

	data   []byte
	frozen int
	err    error

	bbox    rect.Rect
	hasBBox bool
}

// New allocates an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// Write appends p to the buffer.  It implements [io.Writer].
func (b *Buffer) Write(p []byte) (int, error) {
	if err := b.grow(len(p)); err != nil {
		return 0, err
	}
	b.data = append(b.data, p...)
	return len(p), nil
}

// WriteString appends s to the buffer.  It implements [io.StringWriter].
func (b *Buffer) WriteString(s string) (int, error) {
	if err := b.grow(len(s)); err != nil {
		return 0, err
	}
	b.data = append(b.data, s...)
	return len(s), nil
}

// WriteByte appends c to the buffer.  It implements [io.ByteWriter].
func (b *Buffer) WriteByte(c byte) error {
	if err := b.grow(1); err != nil {
		return err
	}
	b.data = append(b.data, c)
	return nil
}

// grow makes room for n more bytes.  The capacity is doubled until the
// data fits, but never beyond the size limit.
func (b *Buffer) grow(n int) error {
	if b.err != nil {
		return b.err
	}
	need := len(b.data) + n
	if need <= cap(b.data) {
		return nil
	}

	limit := b.MaxSize
	if limit <= 0 {
		limit = DefaultMaxSize
	}
	if need > limit {
		b.err = fmt.Errorf("%w: %d bytes needed, limit is %d", ErrAllocation, need, limit)
		return b.err
	}

	newCap := max(2*cap(b.data), initialSize)
	for newCap < need {
		newCap *= 2
	}
	newCap = min(newCap, limit)

	data := make([]byte, len(b.data), newCap)
	copy(data, b.data)
	b.data = data
	return nil
}

// Err returns the first error encountered while writing, if any.
func (b *Buffer) Err() error {
	return b.err
}

// Bytes returns the buffer contents.  The slice is valid until the next
// modification of the buffer.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Cap returns the number of bytes the buffer can hold before it needs to grow.
func (b *Buffer) Cap() int {
	return cap(b.data)
}

// Freeze marks the current contents as committed.
func (b *Buffer) Freeze() {
	b.frozen = len(b.data)
}

// Frozen returns the length of the committed prefix.
func (b *Buffer) Frozen() int {
	return b.frozen
}

// ResetToFrozen discards everything written after the last call to Freeze.
// The bounding box and the font usage record are cleared as well.
func (b *Buffer) ResetToFrozen() {
	b.data = b.data[:b.frozen]
	b.hasBBox = false
	b.bbox = rect.Rect{}
	b.Fonts = 0
}

// Reset empties the buffer completely, including the committed prefix.
// The allocated memory is kept for reuse.
func (b *Buffer) Reset() {
	b.frozen = 0
	b.ResetToFrozen()
	b.err = nil
}

// WriteTo writes the buffer contents to w and empties the buffer.
// This is used by devices which stream their output.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.data)
	b.data = b.data[:0]
	b.frozen = 0
	return int64(n), err
}

// Extend grows the bounding box to include the device-space point p.
func (b *Buffer) Extend(p vec.Vec2) {
	if !b.hasBBox {
		b.bbox = rect.Rect{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y}
		b.hasBBox = true
		return
	}
	b.bbox.LLx = min(b.bbox.LLx, p.X)
	b.bbox.LLy = min(b.bbox.LLy, p.Y)
	b.bbox.URx = max(b.bbox.URx, p.X)
	b.bbox.URy = max(b.bbox.URy, p.Y)
}

// ExtendRect grows the bounding box to include r.
func (b *Buffer) ExtendRect(r rect.Rect) {
	b.Extend(vec.Vec2{X: r.LLx, Y: r.LLy})
	b.Extend(vec.Vec2{X: r.URx, Y: r.URy})
}

// BBox returns the bounding box of everything drawn into the buffer.
// The second return value is false if nothing has been drawn yet.
func (b *Buffer) BBox() (rect.Rect, bool) {
	return b.bbox, b.hasBBox
}

// FontSet is a set of font indices in the range 0-63.
// Devices use it to record which of their built-in fonts a page uses.
type FontSet uint64

// Add includes font i in the set.
func (s *FontSet) Add(i int) {
	if i < 0 || i >= 64 {
		return
	}
	*s |= 1 << uint(i)
}

// Has reports whether font i is in the set.
func (s FontSet) Has(i int) bool {
	if i < 0 || i >= 64 {
		return false
	}
	return s&(1<<uint(i)) != 0
}
