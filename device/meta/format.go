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
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Metafiles start with one of these lines.
const (
	magicBinary   = "#PLOT 1\n"
	magicPortable = "#PLOT 2\n"
)

// Op identifies the type of a metafile record.
type Op byte

// These are the record types of a metafile.  Coordinates and lengths are
// in normalized device coordinates, colours are 16 bit per channel.
const (
	OpOpen       Op = 'o' // page number
	OpClose      Op = 'x'
	OpErase      Op = 'e'
	OpMove       Op = 'm' // x y
	OpLine       Op = 'n' // x y
	OpArc        Op = 'a' // xc yc x y
	OpEllArc     Op = '?' // xc yc x y
	OpBezier2    Op = 'q' // xc yc x y
	OpBezier3    Op = 'r' // xc yc xd yd x y
	OpEndPath    Op = 'E'
	OpPenColor   Op = 'P' // r g b a
	OpFillColor  Op = 'F' // r g b a
	OpBgColor    Op = 'B' // r g b a
	OpFillLevel  Op = 'f'
	OpFillRule   Op = 'R'
	OpPenType    Op = 'p'
	OpLineWidth  Op = 'w'
	OpCap        Op = 'c'
	OpJoin       Op = 'j'
	OpMiterLimit Op = 'M'
	OpDash       Op = 'd' // n d1 ... dn offset
	OpFontName   Op = 'N'
	OpFontSize   Op = 'S'
	OpLabel      Op = 't'
)

// layouts gives the arguments of each record type: 'i' is an integer,
// 'f' a number, 's' a string which extends to the end of the line and
// 'd' a count n followed by n+1 numbers.
var layouts = map[Op]string{
	OpOpen:       "i",
	OpClose:      "",
	OpErase:      "",
	OpMove:       "ff",
	OpLine:       "ff",
	OpArc:        "ffff",
	OpEllArc:     "ffff",
	OpBezier2:    "ffff",
	OpBezier3:    "ffffff",
	OpEndPath:    "",
	OpPenColor:   "iiii",
	OpFillColor:  "iiii",
	OpBgColor:    "iiii",
	OpFillLevel:  "i",
	OpFillRule:   "i",
	OpPenType:    "i",
	OpLineWidth:  "f",
	OpCap:        "i",
	OpJoin:       "i",
	OpMiterLimit: "f",
	OpDash:       "d",
	OpFontName:   "s",
	OpFontSize:   "f",
	OpLabel:      "s",
}

// Record is one decoded metafile record.  Integer arguments are stored
// in Args as well.
type Record struct {
	Op   Op
	Args []float64
	Text string
}

// ErrFormat is returned when a metafile cannot be decoded.
var ErrFormat = errors.New("invalid metafile")

// encoder writes records in the binary or the portable encoding.
type encoder struct {
	w        io.Writer
	portable bool
	buf      []byte
}

func (e *encoder) record(op Op, args []float64, text string) {
	layout, ok := layouts[op]
	if !ok {
		panic(fmt.Sprintf("meta: unknown op %q", op))
	}
	e.buf = append(e.buf[:0], byte(op))
	k := 0
	for _, kind := range []byte(layout) {
		switch kind {
		case 'i':
			e.int(args[k])
			k++
		case 'f':
			e.float(args[k])
			k++
		case 'd':
			n := int(args[k])
			e.int(args[k])
			k++
			for range n + 1 {
				e.float(args[k])
				k++
			}
		case 's':
			if e.portable {
				e.buf = append(e.buf, ' ')
			}
			e.buf = append(e.buf, strings.ReplaceAll(text, "\n", " ")...)
			e.buf = append(e.buf, '\n')
		}
	}
	if e.portable && !strings.HasSuffix(layout, "s") {
		e.buf = append(e.buf, '\n')
	}
	e.w.Write(e.buf)
}

func (e *encoder) int(x float64) {
	if e.portable {
		e.buf = append(e.buf, ' ')
		e.buf = strconv.AppendInt(e.buf, int64(x), 10)
		return
	}
	e.buf = binary.LittleEndian.AppendUint32(e.buf, uint32(int32(x)))
}

func (e *encoder) float(x float64) {
	if e.portable {
		e.buf = append(e.buf, ' ')
		e.buf = strconv.AppendFloat(e.buf, x, 'g', -1, 64)
		return
	}
	e.buf = binary.LittleEndian.AppendUint64(e.buf, math.Float64bits(x))
}

// Reader decodes a metafile.
type Reader struct {
	r        *bufio.Reader
	portable bool
}

// NewReader checks the metafile header and returns a Reader for the
// records which follow.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	header, err := br.ReadString('\n')
	if err != nil && header == "" {
		return nil, fmt.Errorf("%w: missing header", ErrFormat)
	}
	res := &Reader{r: br}
	switch header {
	case magicBinary:
	case magicPortable:
		res.portable = true
	default:
		return nil, fmt.Errorf("%w: unknown header %q", ErrFormat, strings.TrimSpace(header))
	}
	return res, nil
}

// Next returns the next record.  At the end of the file, the error is
// io.EOF.
func (r *Reader) Next() (*Record, error) {
	if r.portable {
		return r.nextPortable()
	}
	return r.nextBinary()
}

func (r *Reader) nextPortable() (*Record, error) {
	var line string
	for line == "" {
		l, err := r.r.ReadString('\n')
		if err != nil && l == "" {
			return nil, err
		}
		line = strings.TrimSuffix(l, "\n")
	}

	op := Op(line[0])
	layout, ok := layouts[op]
	if !ok {
		return nil, fmt.Errorf("%w: unknown op %q", ErrFormat, line[0])
	}
	rec := &Record{Op: op}
	if layout == "s" {
		rec.Text = strings.TrimPrefix(line[1:], " ")
		return rec, nil
	}

	fields := strings.Fields(line[1:])
	for _, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q record: %v", ErrFormat, op, err)
		}
		rec.Args = append(rec.Args, x)
	}
	if !argsMatch(layout, rec.Args) {
		return nil, fmt.Errorf("%w: %q record has %d arguments", ErrFormat, op, len(rec.Args))
	}
	return rec, nil
}

// argsMatch checks the number of arguments of a portable record.
func argsMatch(layout string, args []float64) bool {
	if layout == "d" {
		return len(args) >= 2 && int(args[0]) >= 0 && len(args) == int(args[0])+2
	}
	return len(args) == len(layout)
}

func (r *Reader) nextBinary() (*Record, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return nil, err
	}
	op := Op(b)
	layout, ok := layouts[op]
	if !ok {
		return nil, fmt.Errorf("%w: unknown op %q", ErrFormat, b)
	}

	rec := &Record{Op: op}
	var buf [8]byte
	readInt := func() error {
		if _, err := io.ReadFull(r.r, buf[:4]); err != nil {
			return err
		}
		rec.Args = append(rec.Args, float64(int32(binary.LittleEndian.Uint32(buf[:4]))))
		return nil
	}
	readFloat := func() error {
		if _, err := io.ReadFull(r.r, buf[:8]); err != nil {
			return err
		}
		rec.Args = append(rec.Args, math.Float64frombits(binary.LittleEndian.Uint64(buf[:8])))
		return nil
	}

	for _, kind := range []byte(layout) {
		switch kind {
		case 'i':
			err = readInt()
		case 'f':
			err = readFloat()
		case 'd':
			if err = readInt(); err != nil {
				break
			}
			n := int(rec.Args[len(rec.Args)-1])
			if n < 0 {
				err = errors.New("negative count")
			}
			for i := 0; err == nil && i <= n; i++ {
				err = readFloat()
			}
		case 's':
			var s string
			s, err = r.r.ReadString('\n')
			rec.Text = strings.TrimSuffix(s, "\n")
		}
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("%w: %q record: %w", ErrFormat, op, err)
		}
	}
	return rec, nil
}
