// Package spec implements the on-disk layout of Terraria world files:
// the versioned header with its section pointer table and the
// RLE-compressed tile stream.
package spec

import (
	"bufio"
	"encoding/binary"
	"io"
	"strings"
	"unicode/utf8"
)

// Cursor is a sequential little-endian reader over a world file.
// Reads are buffered; a Seek may jump in either direction and resets
// the buffer.
type Cursor struct {
	src io.ReadSeeker
	buf *bufio.Reader
	pos int64
}

// NewCursor wraps a source positioned at its start.
func NewCursor(src io.ReadSeeker) *Cursor {
	return &Cursor{src: src, buf: bufio.NewReader(src)}
}

// Position returns the absolute offset of the next byte to be read.
func (c *Cursor) Position() int64 { return c.pos }

// Seek moves the cursor to an absolute offset.
func (c *Cursor) Seek(offset int64) error {
	if _, err := c.src.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	c.buf.Reset(c.src)
	c.pos = offset
	return nil
}

func (c *Cursor) fill(buf []byte) error {
	start := c.pos
	n, err := io.ReadFull(c.buf, buf)
	c.pos += int64(n)
	if err != nil {
		return &TruncatedError{Offset: start, Width: len(buf)}
	}
	return nil
}

// ReadBytes reads exactly n bytes.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := c.fill(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (c *Cursor) ReadU8() (uint8, error) {
	var b [1]byte
	if err := c.fill(b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadBool reads one byte; any nonzero value is true.
func (c *Cursor) ReadBool() (bool, error) {
	b, err := c.ReadU8()
	return b != 0, err
}

func (c *Cursor) ReadU16() (uint16, error) {
	var b [2]byte
	if err := c.fill(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

func (c *Cursor) ReadI16() (int16, error) {
	v, err := c.ReadU16()
	return int16(v), err
}

func (c *Cursor) ReadI32() (int32, error) {
	var b [4]byte
	if err := c.fill(b[:]); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b[:])), nil
}

func (c *Cursor) ReadU64() (uint64, error) {
	var b [8]byte
	if err := c.fill(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func (c *Cursor) ReadI64() (int64, error) {
	v, err := c.ReadU64()
	return int64(v), err
}

// ReadString reads a string with a one-byte length prefix. Invalid UTF-8
// sequences are replaced, never fatal.
func (c *Cursor) ReadString() (string, error) {
	length, err := c.ReadU8()
	if err != nil {
		return "", err
	}
	if length == 0 {
		return "", nil
	}
	raw, err := c.ReadBytes(int(length))
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(raw), string(utf8.RuneError)), nil
}

// Skip discards n bytes.
func (c *Cursor) Skip(n int) error {
	start := c.pos
	discarded, err := c.buf.Discard(n)
	c.pos += int64(discarded)
	if err != nil {
		return &TruncatedError{Offset: start, Width: n}
	}
	return nil
}
