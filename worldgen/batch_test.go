package worldgen_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/Nitori-Lab/Terraria-Pyramid-tools/catalog"
	"github.com/Nitori-Lab/Terraria-Pyramid-tools/internal/wldtest"
	"github.com/Nitori-Lab/Terraria-Pyramid-tools/wld"
	"github.com/Nitori-Lab/Terraria-Pyramid-tools/worldgen"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

// copyServer writes a shell script that answers the world creation menu
// by copying a fixture file into place as the new world.
func copyServer(t *testing.T, worldDir, fixture string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake server script needs a POSIX shell")
	}
	script := fmt.Sprintf(`#!/bin/sh
read action
read size
read difficulty
read evil
read name
read seed
cp "%s" "%s/$name.wld"
read cmd
`, fixture, worldDir)
	path := filepath.Join(t.TempDir(), "server.sh")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func fixture(t *testing.T, block int) string {
	t.Helper()
	return wldtest.WriteFile(t, t.TempDir(), "fixture.wld", wldtest.World{
		Name:   "Fixture",
		Seed:   "1",
		Width:  2,
		Height: 2,
		Columns: [][]wldtest.Run{
			{wldtest.Blocks(2, block)},
			{wldtest.Empty(2)},
		},
	})
}

func baseParams() worldgen.Params {
	return worldgen.Params{
		Size:       worldgen.SizeSmall,
		Difficulty: worldgen.DifficultyNormal,
		Evil:       worldgen.EvilRandom,
	}
}

func TestBatchRunHits(t *testing.T) {
	worldDir := t.TempDir()
	catalogPath := filepath.Join(t.TempDir(), "worlds.db")
	cat, err := catalog.Open(catalogPath)
	require.NoError(t, err)
	defer cat.Close()

	batch := &worldgen.Batch{
		Generator: &worldgen.Generator{
			ServerPath:   copyServer(t, worldDir, fixture(t, int(wld.SandstoneBrick))),
			WorldDir:     worldDir,
			PollInterval: 10 * time.Millisecond,
		},
		Target:  wld.SandstoneBrick,
		Catalog: cat,
		Logf:    t.Logf,
	}

	stats, err := batch.Run(context.Background(), baseParams(), 2)
	require.NoError(t, err)
	require.Equal(t, 2, stats.Generated)
	require.Equal(t, 2, stats.Hits)
	require.Equal(t, 0, stats.Deleted)
	require.Equal(t, 0, stats.Failed)
	require.Len(t, stats.HitWorlds, 2)

	// Hit worlds carry the pyramid prefix on disk.
	for _, name := range stats.HitWorlds {
		require.True(t, strings.HasPrefix(name, "1 "), "world %q not marked", name)
		require.FileExists(t, filepath.Join(worldDir, name))
	}

	entries, err := cat.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		require.True(t, e.Found)
		require.Equal(t, 2, e.Matches)
		require.False(t, e.Deleted)
	}
}

func TestBatchRunDeletesMisses(t *testing.T) {
	worldDir := t.TempDir()

	batch := &worldgen.Batch{
		Generator: &worldgen.Generator{
			ServerPath:   copyServer(t, worldDir, fixture(t, 7)),
			WorldDir:     worldDir,
			PollInterval: 10 * time.Millisecond,
		},
		Target:       wld.SandstoneBrick,
		DeleteMisses: true,
		Logf:         t.Logf,
	}

	stats, err := batch.Run(context.Background(), baseParams(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Generated)
	require.Equal(t, 0, stats.Hits)
	require.Equal(t, 1, stats.Deleted)
	require.Empty(t, stats.HitWorlds)

	left, err := os.ReadDir(worldDir)
	require.NoError(t, err)
	require.Empty(t, left)
}

func TestBatchRunUntilStopsAtLimit(t *testing.T) {
	worldDir := t.TempDir()

	batch := &worldgen.Batch{
		Generator: &worldgen.Generator{
			ServerPath:   copyServer(t, worldDir, fixture(t, 7)),
			WorldDir:     worldDir,
			PollInterval: 10 * time.Millisecond,
		},
		Target: wld.SandstoneBrick,
		Logf:   t.Logf,
	}

	stats, err := batch.RunUntil(context.Background(), baseParams(), 1, 3)
	require.NoError(t, err)
	require.Equal(t, 3, stats.Generated)
	require.Equal(t, 0, stats.Hits)
}
