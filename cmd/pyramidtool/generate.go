package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/Nitori-Lab/Terraria-Pyramid-tools/catalog"
	"github.com/Nitori-Lab/Terraria-Pyramid-tools/wld"
	"github.com/Nitori-Lab/Terraria-Pyramid-tools/worldgen"
	"github.com/google/subcommands"
)

type generateCmd struct {
	count       int
	size        int
	difficulty  int
	evil        int
	target      uint
	deleteMiss  bool
	pyramids    int
	maxAttempts int
	serverPath  string
	worldDir    string
	catalogPath string
}

func (c *generateCmd) Name() string     { return "generate" }
func (c *generateCmd) Synopsis() string { return "generate worlds and scan each for pyramids" }
func (c *generateCmd) Usage() string {
	return "pyramidtool generate [-n <count> | -pyramids <hits>] [-size 1..3] [-difficulty 1..3] [-evil 1..3] [-delete] [-catalog <path>]\n"
}
func (c *generateCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.count, "n", 1, "Number of worlds to generate")
	f.IntVar(&c.size, "size", int(worldgen.SizeMedium), "World size (1=Small, 2=Medium, 3=Large)")
	f.IntVar(&c.difficulty, "difficulty", int(worldgen.DifficultyNormal), "Difficulty (1=Normal, 2=Expert, 3=Master)")
	f.IntVar(&c.evil, "evil", int(worldgen.EvilRandom), "Evil biome (1=Random, 2=Corruption, 3=Crimson)")
	f.UintVar(&c.target, "t", uint(wld.SandstoneBrick), "Block id to search for")
	f.BoolVar(&c.deleteMiss, "delete", false, "Delete worlds without a match")
	f.IntVar(&c.pyramids, "pyramids", 0, "Keep generating until this many pyramid worlds are found (0 = fixed count)")
	f.IntVar(&c.maxAttempts, "max-attempts", 100, "Attempt limit when -pyramids is set")
	f.StringVar(&c.serverPath, "server", "", "TerrariaServer executable (default: auto-detect)")
	f.StringVar(&c.worldDir, "worlds", "", "World directory (default: auto-detect)")
	f.StringVar(&c.catalogPath, "catalog", "", "Record results in this sqlite catalog")
}

func (c *generateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	base := worldgen.Params{
		Size:       worldgen.Size(c.size),
		Difficulty: worldgen.Difficulty(c.difficulty),
		Evil:       worldgen.Evil(c.evil),
	}
	if err := base.Validate(); err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}

	serverPath := c.serverPath
	if serverPath == "" {
		var err error
		if serverPath, err = worldgen.FindServer(); err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
	}
	worldDir := c.worldDir
	if worldDir == "" {
		var err error
		if worldDir, err = worldgen.DefaultWorldDir(); err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
	}

	batch := &worldgen.Batch{
		Generator:    &worldgen.Generator{ServerPath: serverPath, WorldDir: worldDir},
		Target:       uint16(c.target),
		DeleteMisses: c.deleteMiss,
		Logf:         log.Printf,
	}

	if c.catalogPath != "" {
		cat, err := catalog.Open(c.catalogPath)
		if err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
		defer cat.Close()
		batch.Catalog = cat
	}

	var stats worldgen.Stats
	var err error
	if c.pyramids > 0 {
		stats, err = batch.RunUntil(ctx, base, c.pyramids, c.maxAttempts)
	} else {
		stats, err = batch.Run(ctx, base, c.count)
	}
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Generated %d worlds in %v: %d with pyramids, %d deleted, %d failed.\n",
		stats.Generated, stats.Elapsed.Round(time.Second), stats.Hits, stats.Deleted, stats.Failed)
	if len(stats.HitWorlds) > 0 {
		fmt.Println("Worlds with pyramids:")
		for _, name := range stats.HitWorlds {
			fmt.Printf("  - %s\n", name)
		}
	}
	fmt.Printf("World directory: %s\n", worldDir)
	return subcommands.ExitSuccess
}
