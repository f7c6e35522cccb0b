package worldgen

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Generator runs the TerrariaServer executable to create new worlds.
type Generator struct {
	// ServerPath is the TerrariaServer executable; see FindServer.
	ServerPath string

	// WorldDir is where world files land; see DefaultWorldDir.
	WorldDir string

	// PollInterval is how often to look for the world file after the
	// server exits. Zero means one second.
	PollInterval time.Duration
}

// menuScript is the server's interactive world creation menu, answered
// line by line: new world, size, difficulty, evil, name, blank seed for
// a random one, then exit once generation is done.
func menuScript(p Params) string {
	lines := []string{
		"n",
		strconv.Itoa(int(p.Size)),
		strconv.Itoa(int(p.Difficulty)),
		strconv.Itoa(int(p.Evil)),
		p.WorldName,
		"",
		"exit",
	}
	return strings.Join(lines, "\n") + "\n"
}

// Generate creates one world and returns the path of its .wld file.
// Generation is aborted when ctx is done.
func (g *Generator) Generate(ctx context.Context, p Params) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	if strings.TrimSpace(p.WorldName) == "" {
		return "", fmt.Errorf("%w: world name is empty", ErrInvalidParams)
	}
	if err := os.MkdirAll(g.WorldDir, 0o755); err != nil {
		return "", err
	}
	worldPath := filepath.Join(g.WorldDir, p.WorldName+".wld")
	if _, err := os.Stat(worldPath); err == nil {
		return "", fmt.Errorf("worldgen: world %q already exists", worldPath)
	}

	cmd := exec.CommandContext(ctx, g.ServerPath)
	cmd.Stdin = strings.NewReader(menuScript(p))
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("worldgen: server failed: %w", err)
	}

	// Some server builds flush the file shortly after accepting the exit
	// command, so give it a moment to land.
	poll := g.PollInterval
	if poll <= 0 {
		poll = time.Second
	}
	deadline := time.Now().Add(30 * time.Second)
	for {
		if _, err := os.Stat(worldPath); err == nil {
			return worldPath, nil
		}
		if time.Now().After(deadline) {
			return "", fmt.Errorf("worldgen: server exited but %q never appeared", worldPath)
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(poll):
		}
	}
}
