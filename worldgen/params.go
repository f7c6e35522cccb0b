// Package worldgen drives the TerrariaServer executable to generate new
// worlds and applies scan-driven side effects (rename, delete) to them.
package worldgen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidParams = errors.New("worldgen: invalid generation parameters")

// Size selects the world dimensions, using the server's menu numbering.
type Size int

const (
	SizeSmall  Size = 1
	SizeMedium Size = 2
	SizeLarge  Size = 3
)

func (s Size) String() string {
	switch s {
	case SizeSmall:
		return "Small"
	case SizeMedium:
		return "Medium"
	case SizeLarge:
		return "Large"
	}
	return fmt.Sprintf("Unknown (%d)", int(s))
}

// Difficulty selects the world game mode.
type Difficulty int

const (
	DifficultyNormal Difficulty = 1
	DifficultyExpert Difficulty = 2
	DifficultyMaster Difficulty = 3
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyNormal:
		return "Normal"
	case DifficultyExpert:
		return "Expert"
	case DifficultyMaster:
		return "Master"
	}
	return fmt.Sprintf("Unknown (%d)", int(d))
}

// Evil selects the world's evil biome.
type Evil int

const (
	EvilRandom     Evil = 1
	EvilCorruption Evil = 2
	EvilCrimson    Evil = 3
)

func (e Evil) String() string {
	switch e {
	case EvilRandom:
		return "Random"
	case EvilCorruption:
		return "Corruption"
	case EvilCrimson:
		return "Crimson"
	}
	return fmt.Sprintf("Unknown (%d)", int(e))
}

// Params describes one world to generate.
type Params struct {
	Size       Size
	Difficulty Difficulty
	Evil       Evil
	WorldName  string
}

// Validate checks the setting ranges. The world name is checked by
// Generator.Generate, since batch runs fill it in per world.
func (p Params) Validate() error {
	if p.Size < SizeSmall || p.Size > SizeLarge {
		return fmt.Errorf("%w: size must be 1 (Small) to 3 (Large), got %d", ErrInvalidParams, int(p.Size))
	}
	if p.Difficulty < DifficultyNormal || p.Difficulty > DifficultyMaster {
		return fmt.Errorf("%w: difficulty must be 1 (Normal) to 3 (Master), got %d", ErrInvalidParams, int(p.Difficulty))
	}
	if p.Evil < EvilRandom || p.Evil > EvilCrimson {
		return fmt.Errorf("%w: evil must be 1 (Random) to 3 (Crimson), got %d", ErrInvalidParams, int(p.Evil))
	}
	return nil
}

var (
	sizeAbbrs       = map[Size]string{SizeSmall: "s", SizeMedium: "m", SizeLarge: "l"}
	difficultyAbbrs = map[Difficulty]string{DifficultyNormal: "", DifficultyExpert: "e", DifficultyMaster: "m"}
	evilAbbrs       = map[Evil]string{EvilRandom: "rand", EvilCorruption: "corruption", EvilCrimson: "crimson"}
)

// UniqueWorldName builds a batch world name encoding the settings, a
// timestamp and a sequence number:
// {size}[_{difficulty}]_{evil}_{timestamp}_{seq}. The difficulty part is
// omitted for Normal.
func UniqueWorldName(p Params, seq int, now time.Time) string {
	parts := []string{sizeAbbrs[p.Size]}
	if abbr := difficultyAbbrs[p.Difficulty]; abbr != "" {
		parts = append(parts, abbr)
	}
	parts = append(parts, evilAbbrs[p.Evil], now.Format("20060102_150405"), strconv.Itoa(seq))
	return strings.Join(parts, "_")
}
