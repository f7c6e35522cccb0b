package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Nitori-Lab/Terraria-Pyramid-tools/index"
	"github.com/Nitori-Lab/Terraria-Pyramid-tools/wld"
	"github.com/google/subcommands"
)

type indexCmd struct {
	worldPath string
	outPath   string
}

func (c *indexCmd) Name() string     { return "index" }
func (c *indexCmd) Synopsis() string { return "write a column-offset index for a world file" }
func (c *indexCmd) Usage() string {
	return "pyramidtool index -i <world.wld> -o <world.colidx>\n"
}
func (c *indexCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.worldPath, "i", "", "World file path")
	f.StringVar(&c.outPath, "o", "", "Output index file path")
}

func (c *indexCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	reader, err := wld.NewFileReader(c.worldPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	defer reader.Close()

	items, err := reader.ColumnIndex()
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	file, err := os.Create(c.outPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if err := index.WriteAll(items, writer); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if err := writer.Flush(); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Wrote %d column offsets to %s\n", len(items), c.outPath)
	return subcommands.ExitSuccess
}
