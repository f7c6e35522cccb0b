package spec

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedVersion reports a world saved before the oldest
	// format revision this parser understands.
	ErrUnsupportedVersion = errors.New("wld: unsupported world version")

	// ErrMalformedHeader reports a structurally invalid file header.
	ErrMalformedHeader = errors.New("wld: malformed header")

	// ErrUnexpectedEOF reports a read past the end of the byte stream.
	ErrUnexpectedEOF = errors.New("wld: unexpected end of stream")
)

// TruncatedError is the concrete form of ErrUnexpectedEOF, recording where
// the stream ran out and how many bytes the failed read wanted.
type TruncatedError struct {
	Offset int64
	Width  int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("wld: unexpected end of stream at offset %d (want %d bytes)", e.Offset, e.Width)
}

func (e *TruncatedError) Unwrap() error { return ErrUnexpectedEOF }
