// Package config holds the batch generation settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/greatgamegal/mazematic/litematic"
	"github.com/greatgamegal/mazematic/voxel"
)

var ErrInvalidArgument = errors.New("config: invalid argument")

type Config struct {
	// Width and Length are in maze cells; Length runs along z.
	Width  int `yaml:"width"`
	Length int `yaml:"length"`
	// Layers is the schematic height: one floor layer plus walls.
	Layers       int `yaml:"layers"`
	StartX       int `yaml:"start_x"`
	StartY       int `yaml:"start_y"`
	// BitsPerEntry must equal litematic.EntryBits of the block palette;
	// readers size entries from the palette, not from this setting.
	BitsPerEntry int `yaml:"bits_per_entry"`

	Count     int           `yaml:"count"`
	Delay     time.Duration `yaml:"delay"`
	Seed      int64         `yaml:"seed"` // 0 picks a time based seed
	OutputDir string        `yaml:"output_dir"`

	Author      string `yaml:"author"`
	Description string `yaml:"description"`

	Print  bool   `yaml:"print"`
	GLB    bool   `yaml:"glb"`
	Bundle string `yaml:"bundle"`
	// BundleCompression is one of none, zlib, zstd.
	BundleCompression string `yaml:"bundle_compression"`
}

func Default() Config {
	return Config{
		Width:             17,
		Length:            17,
		Layers:            4,
		BitsPerEntry:      2,
		Count:             8,
		Delay:             time.Millisecond,
		OutputDir:         "./litematics",
		Author:            "GreatGameGal",
		Description:       "An auto-generated maze.",
		BundleCompression: "zstd",
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Width < 1 || c.Length < 1:
		return fmt.Errorf("%w: maze size %dx%d", ErrInvalidArgument, c.Width, c.Length)
	case c.StartX < 0 || c.StartX >= c.Width || c.StartY < 0 || c.StartY >= c.Length:
		return fmt.Errorf("%w: start (%d,%d) outside %dx%d", ErrInvalidArgument, c.StartX, c.StartY, c.Width, c.Length)
	case c.Layers < 1:
		return fmt.Errorf("%w: layers %d", ErrInvalidArgument, c.Layers)
	case c.BitsPerEntry != litematic.EntryBits(len(voxel.Palette)):
		return fmt.Errorf("%w: bits per entry %d, schematic readers expect %d for %d blocks",
			ErrInvalidArgument, c.BitsPerEntry, litematic.EntryBits(len(voxel.Palette)), len(voxel.Palette))
	case c.Count < 1:
		return fmt.Errorf("%w: count %d", ErrInvalidArgument, c.Count)
	case c.Delay < 0:
		return fmt.Errorf("%w: delay %v", ErrInvalidArgument, c.Delay)
	}
	switch c.BundleCompression {
	case "", "none", "zlib", "zstd":
	default:
		return fmt.Errorf("%w: bundle compression %q", ErrInvalidArgument, c.BundleCompression)
	}
	return nil
}
