package wld

import (
	"iter"

	"github.com/Nitori-Lab/Terraria-Pyramid-tools/wld/spec"
)

// Point is a grid coordinate: X is the column, Y the row. Lower Y is
// higher in the world.
type Point struct {
	X int
	Y int
}

// ScanResult lists every coordinate holding the target block, in the
// order the decoder discovered them: column-major, rows ascending within
// a column.
type ScanResult struct {
	Matches []Point

	// Extremal is the match with the smallest Y. Among equal rows the
	// first match in discovery order wins. Valid only when Found.
	Extremal Point
	Found    bool
}

func (s ScanResult) Count() int { return len(s.Matches) }

// Collector accumulates a ScanResult from a stream of decoded cells. It
// lets callers that drive their own visit loop (e.g. to report progress)
// share the query logic of Scan.
type Collector struct {
	target uint16
	result ScanResult
}

func NewCollector(target uint16) *Collector {
	return &Collector{target: target}
}

// Collect folds one record into the result, expanding its run into
// individual coordinates.
func (c *Collector) Collect(cell spec.Cell) {
	if !cell.HasBlock || cell.Block != c.target {
		return
	}
	for i := range cell.Run {
		p := Point{X: cell.Column, Y: cell.Row + i}
		if !c.result.Found || p.Y < c.result.Extremal.Y {
			c.result.Extremal = p
			c.result.Found = true
		}
		c.result.Matches = append(c.result.Matches, p)
	}
}

// Result returns the result accumulated so far.
func (c *Collector) Result() ScanResult { return c.result }

// Scan filters a cell sequence on the target block type.
func Scan(cells iter.Seq[spec.Cell], target uint16) ScanResult {
	collector := NewCollector(target)
	for cell := range cells {
		collector.Collect(cell)
	}
	return collector.Result()
}

// Scan decodes the whole tile stream and reports every cell holding the
// target block type. On a decode error the result is empty: there is no
// partial-result contract.
func (r *Reader) Scan(target uint16) (ScanResult, error) {
	collector := NewCollector(target)
	err := r.VisitCells(func(cell spec.Cell) error {
		collector.Collect(cell)
		return nil
	})
	if err != nil {
		return ScanResult{}, err
	}
	return collector.Result(), nil
}

// FindTiles opens a world file and scans it for the target block type.
func FindTiles(filePath string, target uint16) (ScanResult, error) {
	reader, err := NewFileReader(filePath)
	if err != nil {
		return ScanResult{}, err
	}
	defer reader.Close()
	return reader.Scan(target)
}
