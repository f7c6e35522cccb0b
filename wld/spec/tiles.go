package spec

// Flag-byte layout of a tile record. Each flag byte is present only when
// bit 0 of the previous one is set; absent bytes read as zero for every
// later bit test.
const (
	activeMoreFlags = 1 << 0 // tileFlags byte follows
	activeBlock     = 1 << 1 // block id follows
	activeWall      = 1 << 2 // wall id follows

	tileMoreFlags = 1 << 0 // tileFlags2 byte follows
	tileBlockHigh = 1 << 5 // block id has a high byte
	tileWallHigh  = 1 << 6 // wall id has a high byte

	tile2MoreFlags  = 1 << 0 // tileFlags3 byte follows
	tile2BlockColor = 1 << 3
	tile2WallColor  = 1 << 4
)

// Cell is one decoded tile record. It stands for Run consecutive rows of
// the same column sharing the same attributes, starting at (Column, Row).
type Cell struct {
	Column   int
	Row      int
	Block    uint16 // valid only when HasBlock
	HasBlock bool
	Run      int // >= 1, never crosses the column boundary
}

// readCell decodes the record at (column, row). Record widths are driven
// by the flag cascade, so a record's extent is unknowable without reading
// it; any short read aborts with the cursor's truncation error.
func readCell(c *Cursor, h *Header, column, row int) (Cell, error) {
	cell := Cell{Column: column, Row: row}

	active, err := c.ReadU8()
	if err != nil {
		return Cell{}, err
	}

	var flags, flags2 uint8
	if active&activeMoreFlags != 0 {
		if flags, err = c.ReadU8(); err != nil {
			return Cell{}, err
		}
		if flags&tileMoreFlags != 0 {
			if flags2, err = c.ReadU8(); err != nil {
				return Cell{}, err
			}
			if flags2&tile2MoreFlags != 0 {
				// tileFlags3: wires, actuators. Nothing here needs it.
				if _, err = c.ReadU8(); err != nil {
					return Cell{}, err
				}
			}
		}
	}

	if active&activeBlock != 0 {
		low, err := c.ReadU8()
		if err != nil {
			return Cell{}, err
		}
		block := uint16(low)
		if flags&tileBlockHigh != 0 {
			high, err := c.ReadU8()
			if err != nil {
				return Cell{}, err
			}
			block |= uint16(high) << 8
		}
		cell.Block = block
		cell.HasBlock = true

		// Frame coordinates only keep the cursor aligned; the values are
		// not needed for scanning.
		if h.FrameImportant[block] {
			if err := c.Skip(4); err != nil {
				return Cell{}, err
			}
		}
	}

	if active&activeWall != 0 {
		if err := c.Skip(1); err != nil {
			return Cell{}, err
		}
		if flags&tileWallHigh != 0 {
			if err := c.Skip(1); err != nil {
				return Cell{}, err
			}
		}
	}

	if liquid := (active >> 3) & 0x03; liquid != 0 {
		if err := c.Skip(1); err != nil {
			return Cell{}, err
		}
	}

	if flags2&tile2BlockColor != 0 {
		if err := c.Skip(1); err != nil {
			return Cell{}, err
		}
	}
	if flags2&tile2WallColor != 0 {
		if err := c.Skip(1); err != nil {
			return Cell{}, err
		}
	}

	run := 0
	switch (active >> 6) & 0x03 {
	case 1:
		n, err := c.ReadU8()
		if err != nil {
			return Cell{}, err
		}
		run = int(n)
	case 2:
		n, err := c.ReadU16()
		if err != nil {
			return Cell{}, err
		}
		run = int(n)
		// mode 3 is reserved and reads as run 0
	}
	cell.Run = run + 1

	// A run overshooting the column is truncated at the column boundary;
	// no extra file bytes belong to this record either way.
	if rest := int(h.Height) - row; cell.Run > rest {
		cell.Run = rest
	}
	return cell, nil
}

// VisitCells decodes the whole tile stream in column-major order, calling
// visit once per RLE record. The cursor must be positioned at the first
// tile byte, where ParseHeader leaves it.
func VisitCells(c *Cursor, h *Header, visit func(Cell) error) error {
	return VisitCellRange(c, h, 0, int(h.Width), visit)
}

// VisitCellRange decodes count consecutive columns starting at column
// first. The cursor must be positioned at that column's first record,
// as recorded by VisitColumns.
func VisitCellRange(c *Cursor, h *Header, first, count int, visit func(Cell) error) error {
	for column := first; column < first+count; column++ {
		for row := 0; row < int(h.Height); {
			cell, err := readCell(c, h, column, row)
			if err != nil {
				return err
			}
			if err := visit(cell); err != nil {
				return err
			}
			row += cell.Run
		}
	}
	return nil
}

// VisitColumns decodes the whole stream, reporting the byte offset at
// which each column's first record begins. Offsets are only knowable by
// decoding every prior record, so this is a full sequential pass.
func VisitColumns(c *Cursor, h *Header, visit func(column int, offset int64) error) error {
	for column := range int(h.Width) {
		if err := visit(column, c.Position()); err != nil {
			return err
		}
		for row := 0; row < int(h.Height); {
			cell, err := readCell(c, h, column, row)
			if err != nil {
				return err
			}
			row += cell.Run
		}
	}
	return nil
}
