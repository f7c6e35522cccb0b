// Package index provides a column-offset index for world tile streams.
// An index is built by one full sequential decode and enables a second,
// parallel re-scan partitioned by column.
package index

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Item records where a column's first tile record begins in the file.
// The on-disk layout is fixed-width little-endian so indexes stay
// portable to other utilities.
type Item struct {
	Column uint32
	Offset uint64
}

func WriteAll(items []Item, writer io.Writer) error {
	return binary.Write(writer, binary.LittleEndian, items)
}

func ReadAll(indexData []byte) ([]Item, error) {
	count := len(indexData) / binary.Size(Item{})
	items := make([]Item, count)

	err := binary.Read(bytes.NewReader(indexData), binary.LittleEndian, items)
	if err != nil {
		return nil, err
	}

	return items, nil
}
