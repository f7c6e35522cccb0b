package worldgen

import (
	"context"
	"path/filepath"
	"time"

	"github.com/Nitori-Lab/Terraria-Pyramid-tools/catalog"
	"github.com/Nitori-Lab/Terraria-Pyramid-tools/wld"
)

// Batch generates worlds in a loop, scans each for the target block and
// applies the configured side effects: worlds with a hit are renamed with
// the pyramid prefix, misses are optionally deleted.
type Batch struct {
	Generator *Generator

	// Target is the block type to scan for, e.g. wld.SandstoneBrick.
	Target uint16

	// DeleteMisses removes worlds in which no target block was found.
	DeleteMisses bool

	// Catalog, when set, records every scanned world.
	Catalog *catalog.Catalog

	// Logf, when set, receives progress lines.
	Logf func(format string, args ...any)
}

// Stats summarizes a batch run.
type Stats struct {
	Generated int
	Hits      int
	Deleted   int
	Failed    int
	Elapsed   time.Duration

	// HitWorlds are the file names of worlds containing the target.
	HitWorlds []string
}

func (b *Batch) logf(format string, args ...any) {
	if b.Logf != nil {
		b.Logf(format, args...)
	}
}

// Run generates exactly count worlds (failed generations count as
// attempts).
func (b *Batch) Run(ctx context.Context, base Params, count int) (Stats, error) {
	return b.run(ctx, base, func(s *Stats) bool {
		return s.Generated+s.Failed < count
	})
}

// RunUntil generates worlds until hits worlds containing the target have
// been found, giving up after maxAttempts generations.
func (b *Batch) RunUntil(ctx context.Context, base Params, hits, maxAttempts int) (Stats, error) {
	return b.run(ctx, base, func(s *Stats) bool {
		return s.Hits < hits && s.Generated+s.Failed < maxAttempts
	})
}

func (b *Batch) run(ctx context.Context, base Params, more func(*Stats) bool) (Stats, error) {
	start := time.Now()
	var stats Stats

	for seq := 1; more(&stats); seq++ {
		if err := ctx.Err(); err != nil {
			stats.Elapsed = time.Since(start)
			return stats, err
		}

		params := base
		params.WorldName = UniqueWorldName(base, seq, time.Now())

		b.logf("[%d] generating %q (%v, %v, %v)...", seq, params.WorldName, params.Size, params.Difficulty, params.Evil)
		worldPath, err := b.Generator.Generate(ctx, params)
		if err != nil {
			if ctx.Err() != nil {
				stats.Elapsed = time.Since(start)
				return stats, err
			}
			stats.Failed++
			b.logf("[%d] generation failed: %v", seq, err)
			continue
		}
		stats.Generated++

		result, err := wld.FindTiles(worldPath, b.Target)
		if err != nil {
			b.logf("[%d] scan failed: %v", seq, err)
			continue
		}

		finalPath := worldPath
		deleted := false
		if result.Found {
			stats.Hits++
			b.logf("[%d] found %d matching blocks, highest at (%d, %d)",
				seq, result.Count(), result.Extremal.X, result.Extremal.Y)
			if marked, err := MarkWorld(worldPath); err != nil {
				b.logf("[%d] rename failed: %v", seq, err)
			} else {
				finalPath = marked
			}
			stats.HitWorlds = append(stats.HitWorlds, filepath.Base(finalPath))
		} else {
			b.logf("[%d] no match", seq)
			if b.DeleteMisses {
				if err := DeleteWorld(worldPath); err != nil {
					b.logf("[%d] delete failed: %v", seq, err)
				} else {
					deleted = true
					stats.Deleted++
				}
			}
		}

		if b.Catalog != nil {
			entry := catalog.Entry{
				WorldName: params.WorldName,
				WorldPath: finalPath,
				Matches:   result.Count(),
				Found:     result.Found,
				Deleted:   deleted,
				CheckedAt: time.Now(),
			}
			if result.Found {
				entry.ExtremalX = result.Extremal.X
				entry.ExtremalY = result.Extremal.Y
			}
			if err := b.Catalog.Record(entry); err != nil {
				b.logf("[%d] catalog: %v", seq, err)
			}
		}
	}

	stats.Elapsed = time.Since(start)
	return stats, nil
}
