package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/Nitori-Lab/Terraria-Pyramid-tools/catalog"
	"github.com/google/subcommands"
)

type historyCmd struct {
	catalogPath string
}

func (c *historyCmd) Name() string     { return "history" }
func (c *historyCmd) Synopsis() string { return "list scanned worlds from a catalog" }
func (c *historyCmd) Usage() string {
	return "pyramidtool history -catalog <path>\n"
}
func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.catalogPath, "catalog", "", "Catalog database path")
}

func (c *historyCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	cat, err := catalog.Open(c.catalogPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	defer cat.Close()

	entries, err := cat.Entries()
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	for _, e := range entries {
		status := "no pyramid"
		if e.Found {
			status = fmt.Sprintf("%d blocks, highest (%d, %d)", e.Matches, e.ExtremalX, e.ExtremalY)
		}
		if e.Deleted {
			status += ", deleted"
		}
		fmt.Printf("%s  %-40s %s\n", e.CheckedAt.Local().Format(time.DateTime), e.WorldName, status)
	}
	return subcommands.ExitSuccess
}
