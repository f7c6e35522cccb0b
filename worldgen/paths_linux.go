package worldgen

func serverCandidates() []string {
	return []string{
		home(".local", "share", "Steam", "steamapps", "common", "Terraria", "TerrariaServer.bin.x86_64"),
		home(".steam", "steam", "steamapps", "common", "Terraria", "TerrariaServer.bin.x86_64"),
	}
}

func defaultWorldDir() string {
	return home(".local", "share", "Terraria", "Worlds")
}
