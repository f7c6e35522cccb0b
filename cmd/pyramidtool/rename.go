package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"github.com/Nitori-Lab/Terraria-Pyramid-tools/wld"
	"github.com/Nitori-Lab/Terraria-Pyramid-tools/worldgen"
	"github.com/google/subcommands"
)

type renameCmd struct {
	worldPath string
	target    uint
}

func (c *renameCmd) Name() string { return "rename" }
func (c *renameCmd) Synopsis() string {
	return "scan a world and mark its file name when the block is found"
}
func (c *renameCmd) Usage() string {
	return "pyramidtool rename -i <world.wld> [-t <block id>]\n"
}
func (c *renameCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.worldPath, "i", "", "World file path")
	f.UintVar(&c.target, "t", uint(wld.SandstoneBrick), "Block id to search for")
}

// Exit status reflects the scan: success when the block was found.
func (c *renameCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	result, err := wld.FindTiles(c.worldPath, uint16(c.target))
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	if !result.Found {
		fmt.Printf("No block %d found; leaving %s untouched.\n", c.target, filepath.Base(c.worldPath))
		return subcommands.ExitFailure
	}

	fmt.Printf("Found %d matching blocks, highest at (%d, %d).\n",
		result.Count(), result.Extremal.X, result.Extremal.Y)

	if worldgen.Marked(c.worldPath) {
		fmt.Println("World is already marked.")
		return subcommands.ExitSuccess
	}
	marked, err := worldgen.MarkWorld(c.worldPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Renamed to: %s\n", filepath.Base(marked))
	return subcommands.ExitSuccess
}
