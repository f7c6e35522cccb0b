package spec_test

import (
	"bytes"
	"testing"

	"github.com/Nitori-Lab/Terraria-Pyramid-tools/internal/wldtest"
	"github.com/Nitori-Lab/Terraria-Pyramid-tools/wld/spec"
	"github.com/stretchr/testify/require"
)

// decodeAll parses the fixture and collects every decoded record.
func decodeAll(t *testing.T, w wldtest.World) ([]spec.Cell, *spec.Cursor, int) {
	t.Helper()
	data := w.Encode()
	c := spec.NewCursor(bytes.NewReader(data))
	h, err := spec.ParseHeader(c, int64(len(data)))
	require.NoError(t, err)

	var cells []spec.Cell
	err = spec.VisitCells(c, h, func(cell spec.Cell) error {
		cells = append(cells, cell)
		return nil
	})
	require.NoError(t, err)
	return cells, c, len(data)
}

func TestVisitCellsMixedFeatures(t *testing.T) {
	w := wldtest.World{
		Name:           "Mixed",
		Seed:           "1",
		FrameImportant: []uint16{21},
		Width:          4,
		Height:         5,
	}
	withWall := wldtest.Blocks(2, 30)
	withWall.Wall = 4
	painted := wldtest.Blocks(1, 9)
	painted.BlockColor = 13
	painted.WallColor = 25
	painted.Wall = 1
	lava := wldtest.Empty(3)
	lava.LiquidKind = 2
	lava.Liquid = 255
	chest := wldtest.Blocks(1, 21)
	chest.U, chest.V = 36, 18

	w.Columns = [][]wldtest.Run{
		{withWall, wldtest.Empty(3)},
		{painted, lava, wldtest.Blocks(1, 2)},
		{chest, wldtest.Blocks(4, 7)},
		{wldtest.Empty(5)},
	}

	cells, c, size := decodeAll(t, w)

	// Every record accounted for and the whole stream consumed.
	require.Equal(t, int64(size), c.Position())

	rows := make(map[int]int)
	for _, cell := range cells {
		require.GreaterOrEqual(t, cell.Run, 1)
		rows[cell.Column] += cell.Run
	}
	for column := range int(w.Width) {
		require.Equal(t, int(w.Height), rows[column], "column %d", column)
	}

	want := []spec.Cell{
		{Column: 0, Row: 0, Block: 30, HasBlock: true, Run: 2},
		{Column: 0, Row: 2, Run: 3},
		{Column: 1, Row: 0, Block: 9, HasBlock: true, Run: 1},
		{Column: 1, Row: 1, Run: 3},
		{Column: 1, Row: 4, Block: 2, HasBlock: true, Run: 1},
		{Column: 2, Row: 0, Block: 21, HasBlock: true, Run: 1},
		{Column: 2, Row: 1, Block: 7, HasBlock: true, Run: 4},
		{Column: 3, Row: 0, Run: 5},
	}
	require.Equal(t, want, cells)
}

func TestVisitCellsExtendedIDs(t *testing.T) {
	wall := wldtest.Blocks(1, 413)
	wall.Wall = 300
	wall.LiquidKind = 1
	wall.Liquid = 128
	wall.BlockColor = 2

	w := wldtest.World{
		Name:   "Extended",
		Seed:   "1",
		Width:  1,
		Height: 3,
		Columns: [][]wldtest.Run{
			{wall, wldtest.Blocks(2, 500)},
		},
	}

	cells, c, size := decodeAll(t, w)
	require.Equal(t, int64(size), c.Position())
	require.Equal(t, []spec.Cell{
		{Column: 0, Row: 0, Block: 413, HasBlock: true, Run: 1},
		{Column: 0, Row: 1, Block: 500, HasBlock: true, Run: 2},
	}, cells)
}

func TestVisitCellsRunClamp(t *testing.T) {
	// The first column's run claims 5 rows in a 3-row world. The run is
	// clamped and the next record still belongs to column 1.
	w := wldtest.World{
		Name:   "Clamp",
		Seed:   "1",
		Width:  2,
		Height: 3,
		Columns: [][]wldtest.Run{
			{wldtest.Blocks(5, 10)},
			{wldtest.Blocks(3, 11)},
		},
	}

	cells, c, size := decodeAll(t, w)
	require.Equal(t, int64(size), c.Position())
	require.Equal(t, []spec.Cell{
		{Column: 0, Row: 0, Block: 10, HasBlock: true, Run: 3},
		{Column: 1, Row: 0, Block: 11, HasBlock: true, Run: 3},
	}, cells)
}

func TestVisitCellsTruncated(t *testing.T) {
	w := wldtest.World{
		Name:   "Short",
		Seed:   "1",
		Width:  2,
		Height: 4,
		Columns: [][]wldtest.Run{
			{wldtest.Blocks(4, 10)},
			{wldtest.Blocks(4, 11)},
		},
	}
	data := w.Encode()
	data = data[:len(data)-2]

	c := spec.NewCursor(bytes.NewReader(data))
	h, err := spec.ParseHeader(c, int64(len(data)))
	require.NoError(t, err)

	err = spec.VisitCells(c, h, func(spec.Cell) error { return nil })
	require.ErrorIs(t, err, spec.ErrUnexpectedEOF)
}

func TestVisitColumns(t *testing.T) {
	w := wldtest.World{
		Name:   "Offsets",
		Seed:   "1",
		Width:  3,
		Height: 2,
		Columns: [][]wldtest.Run{
			{wldtest.Blocks(2, 42)},
			{wldtest.Blocks(1, 151), wldtest.Blocks(1, 7)},
			{wldtest.Empty(2)},
		},
	}
	data := w.Encode()
	c := spec.NewCursor(bytes.NewReader(data))
	h, err := spec.ParseHeader(c, int64(len(data)))
	require.NoError(t, err)

	var columns []int
	var offsets []int64
	err = spec.VisitColumns(c, h, func(column int, offset int64) error {
		columns = append(columns, column)
		offsets = append(offsets, offset)
		return nil
	})
	require.NoError(t, err)

	require.Equal(t, []int{0, 1, 2}, columns)
	require.Equal(t, int64(h.SectionOffsets[1]), offsets[0])
	require.IsIncreasing(t, offsets)
	require.Equal(t, int64(len(data)), c.Position())

	// Re-decoding one column from its recorded offset yields the same
	// records as the full pass.
	require.NoError(t, c.Seek(offsets[1]))
	var cells []spec.Cell
	err = spec.VisitCellRange(c, h, 1, 1, func(cell spec.Cell) error {
		cells = append(cells, cell)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []spec.Cell{
		{Column: 1, Row: 0, Block: 151, HasBlock: true, Run: 1},
		{Column: 1, Row: 1, Block: 7, HasBlock: true, Run: 1},
	}, cells)
}
