package worldgen

func serverCandidates() []string {
	return []string{
		home("Library", "Application Support", "Steam", "steamapps", "common",
			"Terraria", "Terraria.app", "Contents", "MacOS", "TerrariaServer"),
		"/Applications/Terraria.app/Contents/MacOS/TerrariaServer",
	}
}

func defaultWorldDir() string {
	return home("Library", "Application Support", "Terraria", "Worlds")
}
