// Package wld reads Terraria world files and answers block scan queries:
// every coordinate holding a given block type, and the highest such point.
package wld

import (
	"errors"
	"io"
	"iter"
	"os"

	"github.com/Nitori-Lab/Terraria-Pyramid-tools/wld/spec"
)

// SandstoneBrick is the block type the pyramid tooling searches for;
// a world containing it has a desert pyramid.
const SandstoneBrick uint16 = 151

// Reader decodes a single world file. The header is parsed once at open;
// every walk over the tile stream gets its own cursor, so walks are
// restartable and may run concurrently.
type Reader struct {
	file   *os.File
	size   int64
	header *spec.Header
}

// NewFileReader opens a world file and parses its header.
//
// The returned Reader must be closed after use.
func NewFileReader(filePath string) (*Reader, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	cursor := spec.NewCursor(io.NewSectionReader(file, 0, info.Size()))
	header, err := spec.ParseHeader(cursor, info.Size())
	if err != nil {
		file.Close()
		return nil, err
	}
	return &Reader{file: file, size: info.Size(), header: header}, nil
}

func (r *Reader) Close() error {
	return r.file.Close()
}

// Header returns the parsed world header. It must not be modified.
func (r *Reader) Header() *spec.Header { return r.header }

// tileCursor returns a fresh cursor positioned at the tile stream.
func (r *Reader) tileCursor() (*spec.Cursor, error) {
	cursor := spec.NewCursor(io.NewSectionReader(r.file, 0, r.size))
	if err := cursor.Seek(int64(r.header.SectionOffsets[1])); err != nil {
		return nil, err
	}
	return cursor, nil
}

// VisitCells walks the tile stream in column-major order, calling visitor
// once per RLE record.
func (r *Reader) VisitCells(visitor func(spec.Cell) error) error {
	cursor, err := r.tileCursor()
	if err != nil {
		return err
	}
	return spec.VisitCells(cursor, r.header, visitor)
}

var errVisitCancelled = errors.New("cancelled")

// Cells returns an iterator over the tile stream in the visit order of
// VisitCells. A decode error ends iteration and is reported by a final
// yield with the zero Cell.
func (r *Reader) Cells() iter.Seq2[spec.Cell, error] {
	return func(yield func(spec.Cell, error) bool) {
		err := r.VisitCells(func(cell spec.Cell) error {
			if !yield(cell, nil) {
				return errVisitCancelled
			}
			return nil
		})
		if err != nil && err != errVisitCancelled {
			yield(spec.Cell{}, err)
		}
	}
}
