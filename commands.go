//go:build !(js && wasm)

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/subcommands"

	"github.com/greatgamegal/mazematic/config"
	"github.com/greatgamegal/mazematic/mazepack"
	"github.com/greatgamegal/mazematic/utils"
)

type generateCmd struct {
	configPath string
	verbose    bool
	progress   bool
	cfg        config.Config
}

func (c *generateCmd) Name() string     { return "generate" }
func (c *generateCmd) Synopsis() string { return "generate a batch of maze schematics" }
func (c *generateCmd) Usage() string {
	return "mazematic generate [-config <file>] [-width <n>] [-length <n>] [-count <n>] [-out <dir>]\n"
}
func (c *generateCmd) SetFlags(f *flag.FlagSet) {
	d := config.Default()
	f.StringVar(&c.configPath, "config", "", "YAML config file; flags override it")
	f.BoolVar(&c.verbose, "v", false, "Verbose logging")
	f.BoolVar(&c.progress, "progress", false, "Show a progress bar")
	f.IntVar(&c.cfg.Width, "width", d.Width, "Maze width in cells")
	f.IntVar(&c.cfg.Length, "length", d.Length, "Maze length in cells")
	f.IntVar(&c.cfg.Layers, "layers", d.Layers, "Schematic height in blocks")
	f.IntVar(&c.cfg.StartX, "start-x", d.StartX, "Start cell column")
	f.IntVar(&c.cfg.StartY, "start-y", d.StartY, "Start cell row")
	f.IntVar(&c.cfg.BitsPerEntry, "bits", d.BitsPerEntry, "Bits per packed block entry (must match the palette width)")
	f.IntVar(&c.cfg.Count, "count", d.Count, "Number of mazes")
	f.Int64Var(&c.cfg.Seed, "seed", d.Seed, "Random seed, 0 for time based")
	f.StringVar(&c.cfg.OutputDir, "out", d.OutputDir, "Output directory")
	f.BoolVar(&c.cfg.Print, "print", d.Print, "Print each maze as text")
	f.BoolVar(&c.cfg.GLB, "glb", d.GLB, "Write a .glb preview next to each schematic")
	f.StringVar(&c.cfg.Bundle, "bundle", d.Bundle, "Also write the batch into this archive")
	f.StringVar(&c.cfg.BundleCompression, "bundle-compression", d.BundleCompression, "Archive compression (none, zlib, zstd)")
}

// overrides copies the flags given on the command line over cfg.
func (c *generateCmd) overrides(f *flag.FlagSet, cfg *config.Config) {
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "width":
			cfg.Width = c.cfg.Width
		case "length":
			cfg.Length = c.cfg.Length
		case "layers":
			cfg.Layers = c.cfg.Layers
		case "start-x":
			cfg.StartX = c.cfg.StartX
		case "start-y":
			cfg.StartY = c.cfg.StartY
		case "bits":
			cfg.BitsPerEntry = c.cfg.BitsPerEntry
		case "count":
			cfg.Count = c.cfg.Count
		case "seed":
			cfg.Seed = c.cfg.Seed
		case "out":
			cfg.OutputDir = c.cfg.OutputDir
		case "print":
			cfg.Print = c.cfg.Print
		case "glb":
			cfg.GLB = c.cfg.GLB
		case "bundle":
			cfg.Bundle = c.cfg.Bundle
		case "bundle-compression":
			cfg.BundleCompression = c.cfg.BundleCompression
		}
	})
}

func (c *generateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	cfg := config.Default()
	if c.configPath != "" {
		loaded, err := config.Load(c.configPath)
		if err != nil {
			logger.Error("failed to load config", "path", c.configPath, "err", err)
			return subcommands.ExitFailure
		}
		cfg = loaded
	}
	c.overrides(f, &cfg)

	log := logger
	if c.verbose {
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	params := utils.GenerateParams{Logger: log, Stdout: os.Stdout}
	if c.progress {
		params.Progress = os.Stderr
	}
	paths, err := utils.RunGenerate(cfg, params)
	if err != nil {
		log.Error("generation failed", "written", len(paths), "err", err)
		return subcommands.ExitFailure
	}
	log.Info("done", "written", len(paths), "dir", cfg.OutputDir)
	return subcommands.ExitSuccess
}

type inspectCmd struct{}

func (*inspectCmd) Name() string             { return "inspect" }
func (*inspectCmd) Synopsis() string         { return "print the contents of a schematic" }
func (*inspectCmd) Usage() string            { return "mazematic inspect <file.litematic>\n" }
func (*inspectCmd) SetFlags(_ *flag.FlagSet) {}

func (*inspectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	if err := utils.RunInspect(f.Arg(0), os.Stdout); err != nil {
		logger.Error("inspect failed", "err", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type glbCmd struct{}

func (*glbCmd) Name() string             { return "litematic2glb" }
func (*glbCmd) Synopsis() string         { return "convert a schematic into a binary glTF preview" }
func (*glbCmd) Usage() string            { return "mazematic litematic2glb <input.litematic> <output.glb>\n" }
func (*glbCmd) SetFlags(_ *flag.FlagSet) {}

func (*glbCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 2 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	if err := utils.RunLitematic2GLB(f.Arg(0), f.Arg(1)); err != nil {
		logger.Error("conversion failed", "err", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type bundleCmd struct {
	compression string
}

func (*bundleCmd) Name() string     { return "bundle" }
func (*bundleCmd) Synopsis() string { return "pack schematics into one archive" }
func (*bundleCmd) Usage() string {
	return "mazematic bundle [-c none|zlib|zstd] <output.mazepack> <input.litematic>...\n"
}
func (c *bundleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.compression, "c", "zstd", "Compression (none, zlib, zstd)")
}

func (c *bundleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() < 2 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	comp, err := mazepack.ParseCompression(c.compression)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if err := utils.CreateBundle(f.Args()[1:], f.Arg(0), comp); err != nil {
		logger.Error("bundle failed", "err", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type unbundleCmd struct{}

func (*unbundleCmd) Name() string             { return "unbundle" }
func (*unbundleCmd) Synopsis() string         { return "unpack an archive into a directory" }
func (*unbundleCmd) Usage() string            { return "mazematic unbundle <input.mazepack> <output_dir>\n" }
func (*unbundleCmd) SetFlags(_ *flag.FlagSet) {}

func (*unbundleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 2 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	if err := utils.UnpackBundle(f.Arg(0), f.Arg(1)); err != nil {
		logger.Error("unbundle failed", "err", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
