package spec

import "fmt"

const (
	// MinSupportedVersion is the oldest world format revision carrying
	// the section pointer table this parser depends on.
	MinSupportedVersion = 88

	// magicVersion is the first revision carrying the "relogic" magic block.
	magicVersion = 135

	// guidVersion is the first revision carrying a world GUID.
	guidVersion = 179
)

const magicTag = "relogic"

// Header holds everything the tile-stream decoder needs from the two
// leading sections of a world file: format version, section pointers,
// the frame-important table and the grid dimensions. It is immutable
// after ParseHeader returns it.
type Header struct {
	Version   int32
	FileType  uint8
	Revision  int32
	Favorites uint64

	// SectionOffsets are absolute byte offsets; index 0 is the world
	// header section, index 1 the tile stream.
	SectionOffsets []int32

	// FrameImportant lists the block types whose tile records carry two
	// extra frame-coordinate shorts. It is stored on disk as an explicit
	// list of 16-bit ids here; other revisions of the format pack the
	// same information as a bitmask over all block types. The two
	// layouts are not interchangeable, so files using the bitmask form
	// will desynchronize the cursor.
	FrameImportant map[uint16]bool

	Name       string
	Seed       string
	GenVersion int64
	GUID       [16]byte

	WorldID                  int32
	Left, Right, Top, Bottom int32
	Width, Height            int32
}

// ParseHeader decodes the file header and the world-header section.
// On success the cursor is left at the first byte of the tile stream.
// fileSize bounds-checks the section pointer table.
func ParseHeader(c *Cursor, fileSize int64) (*Header, error) {
	h := &Header{}

	version, err := c.ReadI32()
	if err != nil {
		return nil, err
	}
	if version < MinSupportedVersion {
		return nil, fmt.Errorf("%w: %d (oldest supported is %d)", ErrUnsupportedVersion, version, MinSupportedVersion)
	}
	h.Version = version

	if version >= magicVersion {
		tag, err := c.ReadBytes(len(magicTag))
		if err != nil {
			return nil, err
		}
		if string(tag) != magicTag {
			return nil, fmt.Errorf("%w: bad magic tag %q", ErrMalformedHeader, tag)
		}
		if h.FileType, err = c.ReadU8(); err != nil {
			return nil, err
		}
		if h.Revision, err = c.ReadI32(); err != nil {
			return nil, err
		}
		if h.Favorites, err = c.ReadU64(); err != nil {
			return nil, err
		}
	}

	sectionCount, err := c.ReadI16()
	if err != nil {
		return nil, err
	}
	if sectionCount < 2 {
		return nil, fmt.Errorf("%w: %d section pointers (want at least header and tiles)", ErrMalformedHeader, sectionCount)
	}
	h.SectionOffsets = make([]int32, sectionCount)
	for i := range h.SectionOffsets {
		offset, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		if offset < 0 || int64(offset) > fileSize {
			return nil, fmt.Errorf("%w: section %d points at %d, file is %d bytes", ErrMalformedHeader, i, offset, fileSize)
		}
		h.SectionOffsets[i] = offset
	}

	frameCount, err := c.ReadI16()
	if err != nil {
		return nil, err
	}
	if frameCount < 0 {
		return nil, fmt.Errorf("%w: negative frame-important count %d", ErrMalformedHeader, frameCount)
	}
	h.FrameImportant = make(map[uint16]bool, frameCount)
	for range frameCount {
		id, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		h.FrameImportant[id] = true
	}

	if err := c.Seek(int64(h.SectionOffsets[0])); err != nil {
		return nil, err
	}
	if h.Name, err = c.ReadString(); err != nil {
		return nil, err
	}
	if h.Seed, err = c.ReadString(); err != nil {
		return nil, err
	}
	if h.GenVersion, err = c.ReadI64(); err != nil {
		return nil, err
	}
	if version >= guidVersion {
		guid, err := c.ReadBytes(len(h.GUID))
		if err != nil {
			return nil, err
		}
		copy(h.GUID[:], guid)
	}
	// World id, bounds, then height before width.
	for _, dst := range []*int32{&h.WorldID, &h.Left, &h.Right, &h.Top, &h.Bottom, &h.Height, &h.Width} {
		if *dst, err = c.ReadI32(); err != nil {
			return nil, err
		}
	}
	if h.Width <= 0 || h.Height <= 0 {
		return nil, fmt.Errorf("%w: world size %dx%d", ErrMalformedHeader, h.Width, h.Height)
	}

	if err := c.Seek(int64(h.SectionOffsets[1])); err != nil {
		return nil, err
	}
	return h, nil
}
