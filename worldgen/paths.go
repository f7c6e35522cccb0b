package worldgen

import (
	"errors"
	"os"
	"path/filepath"
)

var (
	ErrServerNotFound = errors.New("worldgen: TerrariaServer executable not found")
	ErrNoWorldDir     = errors.New("worldgen: world directory not known for this platform")
)

// FindServer locates the TerrariaServer executable: the
// TERRARIA_SERVER_PATH environment variable wins, then the platform's
// usual Steam install locations.
func FindServer() (string, error) {
	if path := os.Getenv("TERRARIA_SERVER_PATH"); path != "" {
		if isFile(path) {
			return path, nil
		}
	}
	for _, path := range serverCandidates() {
		if isFile(path) {
			return path, nil
		}
	}
	return "", ErrServerNotFound
}

// DefaultWorldDir returns the directory Terraria saves worlds to,
// honoring the TERRARIA_WORLD_DIR environment variable.
func DefaultWorldDir() (string, error) {
	if dir := os.Getenv("TERRARIA_WORLD_DIR"); dir != "" {
		return dir, nil
	}
	dir := defaultWorldDir()
	if dir == "" {
		return "", ErrNoWorldDir
	}
	return dir, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func home(parts ...string) string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{dir}, parts...)...)
}
