package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(&scanCmd{}, "")
	subcommands.Register(&renameCmd{}, "")
	subcommands.Register(&generateCmd{}, "")
	subcommands.Register(&indexCmd{}, "")
	subcommands.Register(&historyCmd{}, "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
