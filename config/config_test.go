package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/greatgamegal/mazematic/config"
)

func TestDefaultIsValid(t *testing.T) {
	if err := config.Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.yaml")
	yml := "width: 5\nlength: 7\ncount: 2\ndelay: 250ms\nseed: 99\nglb: true\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := config.Default()
	want.Width, want.Length, want.Count = 5, 7, 2
	want.Delay = 250 * time.Millisecond
	want.Seed = 99
	want.GLB = true
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Load(missing) succeeded")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("width: [1, 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Errorf("Load(bad yaml) succeeded")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"ZeroWidth", func(c *config.Config) { c.Width = 0 }},
		{"ZeroLength", func(c *config.Config) { c.Length = 0 }},
		{"StartOutside", func(c *config.Config) { c.StartX = c.Width }},
		{"NegativeStart", func(c *config.Config) { c.StartY = -1 }},
		{"NoLayers", func(c *config.Config) { c.Layers = 0 }},
		{"ZeroBits", func(c *config.Config) { c.BitsPerEntry = 0 }},
		{"OneBit", func(c *config.Config) { c.BitsPerEntry = 1 }},
		{"WiderThanReaders", func(c *config.Config) { c.BitsPerEntry = 3 }},
		{"NoMazes", func(c *config.Config) { c.Count = 0 }},
		{"NegativeDelay", func(c *config.Config) { c.Delay = -time.Second }},
		{"UnknownCodec", func(c *config.Config) { c.BundleCompression = "lz4" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := config.Default()
			tc.mutate(&c)
			if err := c.Validate(); !errors.Is(err, config.ErrInvalidArgument) {
				t.Errorf("Validate() = %v, want ErrInvalidArgument", err)
			}
		})
	}
}
