package wld

import (
	"io"
	"runtime"
	"sync"

	"github.com/Nitori-Lab/Terraria-Pyramid-tools/index"
	"github.com/Nitori-Lab/Terraria-Pyramid-tools/wld/spec"
)

// ColumnIndex decodes the whole tile stream once, recording the byte
// offset at which every column starts. The pass is inherently sequential:
// record widths depend on earlier flag bytes, so no column offset is
// knowable without decoding everything before it.
func (r *Reader) ColumnIndex() ([]index.Item, error) {
	cursor, err := r.tileCursor()
	if err != nil {
		return nil, err
	}
	items := make([]index.Item, 0, r.header.Width)
	err = spec.VisitColumns(cursor, r.header, func(column int, offset int64) error {
		items = append(items, index.Item{Column: uint32(column), Offset: uint64(offset)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ScanParallel re-scans using a previously built column index, decoding
// contiguous column chunks on worker goroutines. workers <= 0 means one
// per CPU. The merged result is identical to Scan: same match order,
// same tie-break. An index that does not cover every column falls back
// to the sequential scan.
func (r *Reader) ScanParallel(target uint16, items []index.Item, workers int) (ScanResult, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(items) {
		workers = len(items)
	}
	if workers <= 1 || len(items) != int(r.header.Width) {
		return r.Scan(target)
	}
	for i, item := range items {
		if int(item.Column) != i {
			return r.Scan(target)
		}
	}

	type chunk struct {
		first, count int
		offset       int64
	}
	per := (len(items) + workers - 1) / workers
	chunks := make([]chunk, 0, workers)
	for start := 0; start < len(items); start += per {
		count := min(per, len(items)-start)
		chunks = append(chunks, chunk{
			first:  int(items[start].Column),
			count:  count,
			offset: int64(items[start].Offset),
		})
	}

	results := make([]ScanResult, len(chunks))
	errs := make([]error, len(chunks))

	var wg sync.WaitGroup
	for i, ch := range chunks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cursor := spec.NewCursor(io.NewSectionReader(r.file, 0, r.size))
			if err := cursor.Seek(ch.offset); err != nil {
				errs[i] = err
				return
			}
			collector := NewCollector(target)
			errs[i] = spec.VisitCellRange(cursor, r.header, ch.first, ch.count, func(cell spec.Cell) error {
				collector.Collect(cell)
				return nil
			})
			results[i] = collector.Result()
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return ScanResult{}, err
		}
	}

	// Chunks are in column order, so concatenation preserves discovery
	// order and the first-encountered tie-break carries over.
	var merged ScanResult
	for _, res := range results {
		merged.Matches = append(merged.Matches, res.Matches...)
		if res.Found && (!merged.Found || res.Extremal.Y < merged.Extremal.Y) {
			merged.Extremal = res.Extremal
			merged.Found = true
		}
	}
	return merged, nil
}
