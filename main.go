//go:build !(js && wasm)

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/google/subcommands"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&generateCmd{}, "")
	subcommands.Register(&inspectCmd{}, "")
	subcommands.Register(&glbCmd{}, "")
	subcommands.Register(&bundleCmd{}, "")
	subcommands.Register(&unbundleCmd{}, "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
