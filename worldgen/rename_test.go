package worldgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestMarkWorld(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "desert.wld")
	touch(t, path)

	require.False(t, Marked(path))

	marked, err := MarkWorld(path)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "1 desert.wld"), marked)
	require.True(t, Marked(marked))
	require.NoFileExists(t, path)
	require.FileExists(t, marked)

	// Marking again is a no-op.
	again, err := MarkWorld(marked)
	require.NoError(t, err)
	require.Equal(t, marked, again)
}

func TestDeleteWorld(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "miss.wld")
	twld := filepath.Join(dir, "miss.twld")
	touch(t, path)
	touch(t, twld)

	require.NoError(t, DeleteWorld(path))
	require.NoFileExists(t, path)
	require.NoFileExists(t, twld)
}

func TestDeleteWorldWithoutCompanion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "miss.wld")
	touch(t, path)

	require.NoError(t, DeleteWorld(path))
	require.NoFileExists(t, path)
}

func TestDeleteWorldMissing(t *testing.T) {
	err := DeleteWorld(filepath.Join(t.TempDir(), "absent.wld"))
	require.Error(t, err)
}
