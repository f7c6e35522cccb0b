package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/Nitori-Lab/Terraria-Pyramid-tools/wld"
	"github.com/Nitori-Lab/Terraria-Pyramid-tools/wld/spec"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type scanCmd struct {
	worldPath string
	target    uint
}

func (c *scanCmd) Name() string     { return "scan" }
func (c *scanCmd) Synopsis() string { return "scan a world file for a block type" }
func (c *scanCmd) Usage() string {
	return "pyramidtool scan -i <world.wld> [-t <block id>]\n"
}
func (c *scanCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.worldPath, "i", "", "World file path")
	f.UintVar(&c.target, "t", uint(wld.SandstoneBrick), "Block id to search for")
}

func (c *scanCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	reader, err := wld.NewFileReader(c.worldPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	defer reader.Close()

	header := reader.Header()
	fmt.Printf("World: %s (%dx%d, version %d)\n", header.Name, header.Width, header.Height, header.Version)

	bar := progressbar.NewOptions(int(header.Width), progressbar.OptionSetDescription("columns"))
	collector := wld.NewCollector(uint16(c.target))
	lastColumn := -1

	err = reader.VisitCells(func(cell spec.Cell) error {
		collector.Collect(cell)
		if cell.Column != lastColumn {
			lastColumn = cell.Column
			bar.Add(1)
		}
		return nil
	})

	bar.Finish()
	fmt.Println()

	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	result := collector.Result()
	if !result.Found {
		fmt.Printf("No block %d found in the world.\n", c.target)
		return subcommands.ExitSuccess
	}
	fmt.Printf("Found %d matching blocks.\n", result.Count())
	fmt.Printf("Highest point: X=%d, Y=%d\n", result.Extremal.X, result.Extremal.Y)
	return subcommands.ExitSuccess
}
