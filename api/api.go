package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/greatgamegal/mazematic/bitpack"
	"github.com/greatgamegal/mazematic/config"
	"github.com/greatgamegal/mazematic/litematic"
	"github.com/greatgamegal/mazematic/maze"
	"github.com/greatgamegal/mazematic/voxel"
)

// ErrInvalidArgument is wrapped by every error Run returns for rejected
// parameters, alongside the sentinel of the package that rejected them
// (maze, voxel or bitpack).
var ErrInvalidArgument = errors.New("api: invalid argument")

func invalid(err error) error {
	if errors.Is(err, maze.ErrInvalidArgument) || errors.Is(err, voxel.ErrInvalidArgument) || errors.Is(err, bitpack.ErrInvalidArgument) {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return err
}

// Params drives one run of the generate, rasterize, pack, build pipeline.
type Params struct {
	Width        int
	Height       int
	StartX       int
	StartY       int
	Layers       int
	BitsPerEntry int

	Meta litematic.Meta
	Now  time.Time
	// Source picks carving directions; nil uses math/rand.
	Source maze.Source
}

// DefaultParams returns a 17x17 maze, four layers high, packed with two
// bits per block.
func DefaultParams() Params {
	return FromConfig(config.Default())
}

// FromConfig copies the per-maze settings of cfg.
func FromConfig(cfg config.Config) Params {
	return Params{
		Width:        cfg.Width,
		Height:       cfg.Length,
		StartX:       cfg.StartX,
		StartY:       cfg.StartY,
		Layers:       cfg.Layers,
		BitsPerEntry: cfg.BitsPerEntry,
		Meta:         litematic.Meta{Author: cfg.Author, Description: cfg.Description},
	}
}

// Stamp dates p at now and names it as the n-th maze of a batch.
func (p *Params) Stamp(now time.Time, n int) {
	p.Now = now
	p.Meta.Name = "Maze " + litematic.TimeName(now, n)
}

// Result keeps every intermediate stage of a run.
type Result struct {
	Maze     *maze.Maze
	Grid     *voxel.Grid
	Volume   *voxel.Volume
	Packed   *bitpack.Array
	Document *litematic.Document
}

// Run executes the whole pipeline. Invalid sizes, start cells, layer
// counts or entry widths fail before anything is built.
func Run(p Params) (*Result, error) {
	m, err := maze.Generate(p.Width, p.Height, p.StartX, p.StartY, p.Source)
	if err != nil {
		return nil, invalid(err)
	}
	grid := voxel.Rasterize(m)
	vol, err := voxel.Extrude(grid, p.Layers)
	if err != nil {
		return nil, invalid(err)
	}
	packed, err := bitpack.PackVolume(vol, p.BitsPerEntry)
	if err != nil {
		return nil, invalid(err)
	}
	now := p.Now
	if now.IsZero() {
		now = time.Now()
	}
	return &Result{
		Maze:     m,
		Grid:     grid,
		Volume:   vol,
		Packed:   packed,
		Document: litematic.Build(m, packed, now, p.Meta),
	}, nil
}

// GenerateMazeSchematic returns only the finished document of Run.
func GenerateMazeSchematic(p Params) (*litematic.Document, error) {
	r, err := Run(p)
	if err != nil {
		return nil, err
	}
	return r.Document, nil
}

// MazeToLitematicBytes runs the pipeline and returns the encoded file.
func MazeToLitematicBytes(p Params) ([]byte, error) {
	doc, err := GenerateMazeSchematic(p)
	if err != nil {
		return nil, err
	}
	return litematic.Marshal(doc)
}
