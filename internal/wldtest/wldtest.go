// Package wldtest builds synthetic world files for tests.
package wldtest

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// CurrentVersion is the world format revision the fixtures default to
// (Terraria 1.4.4.9).
const CurrentVersion = 279

// Run is one RLE record to encode: Rows consecutive cells of a column
// sharing the same attributes. Negative Block/Wall/color values mean
// "absent".
type Run struct {
	Rows int

	Block      int   // block type, or -1
	Wall       int   // wall type, or -1
	LiquidKind int   // 0 none, 1 water, 2 lava, 3 honey
	Liquid     int   // liquid amount, stored when LiquidKind != 0
	BlockColor int   // paint, or -1
	WallColor  int   // paint, or -1
	U, V       int16 // frame coordinates, written for frame-important blocks
}

// Empty returns a run of rows cells with no block.
func Empty(rows int) Run {
	return Run{Rows: rows, Block: -1, Wall: -1, BlockColor: -1, WallColor: -1}
}

// Blocks returns a run of rows cells of the given block type.
func Blocks(rows, block int) Run {
	r := Empty(rows)
	r.Block = block
	return r
}

// World describes a synthetic world to encode.
type World struct {
	Version        int32 // zero means CurrentVersion
	Name           string
	Seed           string
	FrameImportant []uint16
	ExtraSections  int // section pointers beyond header and tiles
	Width, Height  int32

	// Columns holds one run list per column. Runs normally cover
	// exactly Height rows; a deliberately overshooting run encodes its
	// full length so decoder clamping can be exercised.
	Columns [][]Run
}

// Encode serializes the world in the on-disk layout: file header,
// section pointer table, frame-important list, world header section,
// tile stream.
func (w World) Encode() []byte {
	version := w.Version
	if version == 0 {
		version = CurrentVersion
	}

	worldHeader := w.encodeWorldHeader(version)
	tiles := w.encodeTiles()

	sections := 2 + w.ExtraSections
	prefixLen := 4
	if version >= 135 {
		prefixLen += 7 + 1 + 4 + 8
	}
	prefixLen += 2 + 4*sections + 2 + 2*len(w.FrameImportant)

	headerOffset := int32(prefixLen)
	tilesOffset := headerOffset + int32(len(worldHeader))
	end := tilesOffset + int32(len(tiles))

	var buf []byte
	buf = binary.LittleEndian.AppendUint32(buf, uint32(version))
	if version >= 135 {
		buf = append(buf, "relogic"...)
		buf = append(buf, 2)                           // file type: world
		buf = binary.LittleEndian.AppendUint32(buf, 1) // revision
		buf = binary.LittleEndian.AppendUint64(buf, 0) // favorites
	}
	buf = binary.LittleEndian.AppendUint16(buf, uint16(sections))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(headerOffset))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(tilesOffset))
	for range w.ExtraSections {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(end))
	}
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(w.FrameImportant)))
	for _, id := range w.FrameImportant {
		buf = binary.LittleEndian.AppendUint16(buf, id)
	}
	buf = append(buf, worldHeader...)
	buf = append(buf, tiles...)
	return buf
}

func (w World) encodeWorldHeader(version int32) []byte {
	var buf []byte
	buf = appendString(buf, w.Name)
	buf = appendString(buf, w.Seed)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(version)) // generator version
	if version >= 179 {
		buf = append(buf, make([]byte, 16)...) // guid
	}
	// World id, bounds in pixels, then height before width.
	for _, v := range []int32{1, 0, w.Width * 16, 0, w.Height * 16, w.Height, w.Width} {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(v))
	}
	return buf
}

func appendString(buf []byte, s string) []byte {
	buf = append(buf, byte(len(s)))
	return append(buf, s...)
}

func (w World) encodeTiles() []byte {
	frame := make(map[uint16]bool, len(w.FrameImportant))
	for _, id := range w.FrameImportant {
		frame[id] = true
	}

	var buf []byte
	for _, column := range w.Columns {
		for _, run := range column {
			buf = appendRun(buf, run, frame)
		}
	}
	return buf
}

func appendRun(buf []byte, r Run, frame map[uint16]bool) []byte {
	var active, flags, flags2 byte

	if r.Block >= 0 {
		active |= 1 << 1
		if r.Block > 0xFF {
			flags |= 1 << 5
		}
	}
	if r.Wall >= 0 {
		active |= 1 << 2
		if r.Wall > 0xFF {
			flags |= 1 << 6
		}
	}
	if r.LiquidKind != 0 {
		active |= byte(r.LiquidKind&0x03) << 3
	}
	if r.BlockColor >= 0 {
		flags2 |= 1 << 3
	}
	if r.WallColor >= 0 {
		flags2 |= 1 << 4
	}

	rle := r.Rows - 1
	var rleMode byte
	switch {
	case rle <= 0:
		rleMode = 0
	case rle <= 0xFF:
		rleMode = 1
	default:
		rleMode = 2
	}
	active |= rleMode << 6

	if flags2 != 0 {
		flags |= 1 << 0
	}
	if flags != 0 {
		active |= 1 << 0
	}

	buf = append(buf, active)
	if flags != 0 {
		buf = append(buf, flags)
	}
	if flags2 != 0 {
		buf = append(buf, flags2)
	}
	if r.Block >= 0 {
		buf = append(buf, byte(r.Block))
		if r.Block > 0xFF {
			buf = append(buf, byte(r.Block>>8))
		}
		if frame[uint16(r.Block)] {
			buf = binary.LittleEndian.AppendUint16(buf, uint16(r.U))
			buf = binary.LittleEndian.AppendUint16(buf, uint16(r.V))
		}
	}
	if r.Wall >= 0 {
		buf = append(buf, byte(r.Wall))
		if r.Wall > 0xFF {
			buf = append(buf, byte(r.Wall>>8))
		}
	}
	if r.LiquidKind != 0 {
		buf = append(buf, byte(r.Liquid))
	}
	if r.BlockColor >= 0 {
		buf = append(buf, byte(r.BlockColor))
	}
	if r.WallColor >= 0 {
		buf = append(buf, byte(r.WallColor))
	}
	switch rleMode {
	case 1:
		buf = append(buf, byte(rle))
	case 2:
		buf = binary.LittleEndian.AppendUint16(buf, uint16(rle))
	}
	return buf
}

// WriteFile encodes the world into dir under the given file name and
// returns the full path.
func WriteFile(t *testing.T, dir, name string, w World) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, w.Encode(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
