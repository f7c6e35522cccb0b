//go:build !darwin && !linux

package worldgen

func serverCandidates() []string { return nil }

func defaultWorldDir() string { return "" }
