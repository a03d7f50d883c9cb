package utils

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/greatgamegal/mazematic/api"
	"github.com/greatgamegal/mazematic/config"
	"github.com/greatgamegal/mazematic/litematic"
	"github.com/greatgamegal/mazematic/mazepack"
)

// GenerateParams are the side channels of a batch run. Zero values are
// usable: no logging, no printing, real clock.
type GenerateParams struct {
	Logger *slog.Logger
	// Stdout receives the ASCII view of each maze when cfg.Print is set.
	Stdout io.Writer
	// Progress receives a progress bar; nil disables it.
	Progress io.Writer

	Now   func() time.Time
	Sleep func(time.Duration)
}

// RunGenerate writes cfg.Count maze schematics into cfg.OutputDir and
// returns their paths. Optional GLB previews are written next to them and
// an optional bundle collects the whole batch.
func RunGenerate(cfg config.Config, params GenerateParams) ([]string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := params.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	sleep := params.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewSource(seed))
	logger.Info("generating mazes", "count", cfg.Count, "width", cfg.Width, "length", cfg.Length, "seed", seed)

	var bar *progressbar.ProgressBar
	if params.Progress != nil {
		bar = progressbar.NewOptions(cfg.Count,
			progressbar.OptionSetWriter(params.Progress),
			progressbar.OptionSetDescription("generating"),
			progressbar.OptionClearOnFinish(),
		)
	}

	var bundle mazepack.Archive
	seen := make(map[uint64]int, cfg.Count)
	paths := make([]string, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		if i > 0 && cfg.Delay > 0 {
			sleep(cfg.Delay)
		}
		stamp := now()
		p := api.FromConfig(cfg)
		p.Stamp(stamp, i)
		p.Source = r

		res, err := api.Run(p)
		if err != nil {
			return paths, fmt.Errorf("maze %d: %w", i, err)
		}
		hash := res.Maze.Fingerprint()
		if prev, ok := seen[hash]; ok {
			logger.Warn("duplicate maze layout", "index", i, "same_as", prev)
		} else {
			seen[hash] = i
		}

		data, err := litematic.Marshal(res.Document)
		if err != nil {
			return paths, fmt.Errorf("maze %d: %w", i, err)
		}
		name := litematic.FileName(stamp, i)
		path := filepath.Join(cfg.OutputDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, err
		}
		paths = append(paths, path)
		logger.Debug("wrote maze", "index", i, "file", path, "bytes", len(data), "hash", fmt.Sprintf("%016x", hash))

		if cfg.GLB {
			glb, err := api.VolumeToGLB(res.Volume)
			if err != nil {
				return paths, fmt.Errorf("maze %d preview: %w", i, err)
			}
			glbPath := strings.TrimSuffix(path, ".litematic") + ".glb"
			if err := os.WriteFile(glbPath, glb, 0o644); err != nil {
				return paths, err
			}
		}
		if cfg.Print && params.Stdout != nil {
			fmt.Fprintln(params.Stdout, res.Grid.String())
		}
		if cfg.Bundle != "" {
			bundle.Add(name, data)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if cfg.Bundle != "" {
		comp, err := mazepack.ParseCompression(cfg.BundleCompression)
		if err != nil {
			return paths, err
		}
		start := time.Now()
		data, err := bundle.Marshal(comp)
		if err != nil {
			return paths, err
		}
		if err := os.WriteFile(cfg.Bundle, data, 0o644); err != nil {
			return paths, err
		}
		logger.Info("wrote bundle", "file", cfg.Bundle, "entries", len(bundle.Entries), "bytes", len(data), "took", time.Since(start))
	}
	return paths, nil
}
