package worldgen

import (
	"os"
	"path/filepath"
	"strings"
)

// markPrefix flags world files found to contain a pyramid.
const markPrefix = "1 "

// Marked reports whether a world file already carries the pyramid prefix.
func Marked(worldPath string) bool {
	return strings.HasPrefix(filepath.Base(worldPath), markPrefix)
}

// MarkWorld renames a world file with the pyramid prefix and returns the
// new path. Marking an already marked world is a no-op.
func MarkWorld(worldPath string) (string, error) {
	if Marked(worldPath) {
		return worldPath, nil
	}
	dir, name := filepath.Split(worldPath)
	marked := filepath.Join(dir, markPrefix+name)
	if err := os.Rename(worldPath, marked); err != nil {
		return "", err
	}
	return marked, nil
}

// DeleteWorld removes a generated world file, along with the .twld
// companion the game keeps next to it, if one exists.
func DeleteWorld(worldPath string) error {
	if err := os.Remove(worldPath); err != nil {
		return err
	}
	twld := strings.TrimSuffix(worldPath, filepath.Ext(worldPath)) + ".twld"
	if err := os.Remove(twld); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
