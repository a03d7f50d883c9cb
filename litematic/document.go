// Package litematic builds and reads .litematic schematics: a gzipped,
// big-endian NBT tree holding one or more packed block regions.
package litematic

import (
	"fmt"
	"math/bits"
	"time"

	"github.com/greatgamegal/mazematic/bitpack"
	"github.com/greatgamegal/mazematic/maze"
	"github.com/greatgamegal/mazematic/voxel"
)

const (
	// DataVersion is the game data version the block ids belong to.
	DataVersion = 2586
	// FormatVersion is the schematic layout version.
	FormatVersion = 5
	// RegionName names the single region a maze schematic holds.
	RegionName = "Maze"
)

type Vec3 struct {
	X int32 `nbt:"x"`
	Y int32 `nbt:"y"`
	Z int32 `nbt:"z"`
}

type Metadata struct {
	Name          string `nbt:"Name"`
	Author        string `nbt:"Author"`
	Description   string `nbt:"Description"`
	RegionCount   int32  `nbt:"RegionCount"`
	TimeCreated   int64  `nbt:"TimeCreated"`
	TimeModified  int64  `nbt:"TimeModified"`
	EnclosingSize Vec3   `nbt:"EnclosingSize"`
	TotalBlocks   int32  `nbt:"TotalBlocks"`
	TotalVolume   int32  `nbt:"TotalVolume"`
}

type BlockState struct {
	Name string `nbt:"Name"`
}

// Region is one placed box of blocks. BlockStates holds palette indices
// packed with bitpack and paired into longs.
type Region struct {
	Position          Vec3         `nbt:"Position"`
	Size              Vec3         `nbt:"Size"`
	BlockStatePalette []BlockState `nbt:"BlockStatePalette"`
	BlockStates       []int64      `nbt:"BlockStates"`
	PendingBlockTicks []struct{}   `nbt:"PendingBlockTicks"`
	PendingFluidTicks []struct{}   `nbt:"PendingFluidTicks"`
	TileEntities      []struct{}   `nbt:"TileEntities"`
	Entities          []struct{}   `nbt:"Entities"`
}

type Document struct {
	MinecraftDataVersion int32             `nbt:"MinecraftDataVersion"`
	Version              int32             `nbt:"Version"`
	Metadata             Metadata          `nbt:"Metadata"`
	Regions              map[string]Region `nbt:"Regions"`
}

// Meta carries the free-text fields of a schematic.
type Meta struct {
	Name        string
	Author      string
	Description string
}

// TimeName formats the batch-unique stamp used in names and file names.
func TimeName(t time.Time, n int) string {
	return fmt.Sprintf("%s-%d", t.Format("2006.01.02.15.04.05"), n)
}

// FileName is the file a maze generated at t as the n-th of its batch is
// written to.
func FileName(t time.Time, n int) string {
	return "maze." + TimeName(t, n) + ".litematic"
}

// Palette returns the block states in palette index order.
func Palette() []BlockState {
	out := make([]BlockState, len(voxel.Palette))
	for i, b := range voxel.Palette {
		out[i] = BlockState{Name: b.Name}
	}
	return out
}

// Build assembles the schematic for m from its packed block states. The
// layer count is taken from the packed length.
func Build(m *maze.Maze, packed *bitpack.Array, now time.Time, meta Meta) *Document {
	grid := voxel.Rasterize(m)
	base := grid.Width * grid.Height
	layers := packed.Len / base
	size := Vec3{X: int32(grid.Width), Y: int32(layers), Z: int32(grid.Height)}
	stamp := now.UnixMilli()

	return &Document{
		MinecraftDataVersion: DataVersion,
		Version:              FormatVersion,
		Metadata: Metadata{
			Name:          meta.Name,
			Author:        meta.Author,
			Description:   meta.Description,
			RegionCount:   1,
			TimeCreated:   stamp,
			TimeModified:  stamp,
			EnclosingSize: size,
			TotalBlocks:   int32(base + grid.Solid()*(layers-1)),
			TotalVolume:   int32(base * layers),
		},
		Regions: map[string]Region{
			RegionName: {
				Size:              size,
				BlockStatePalette: Palette(),
				BlockStates:       packed.Longs(),
				PendingBlockTicks: []struct{}{},
				PendingFluidTicks: []struct{}{},
				TileEntities:      []struct{}{},
				Entities:          []struct{}{},
			},
		},
	}
}

func abs32(v int32) int {
	if v < 0 {
		return int(-v)
	}
	return int(v)
}

// EntryBits is the entry width schematic readers derive from a palette of
// paletteLen block states: at least two bits, widened until every index
// fits.
func EntryBits(paletteLen int) int {
	return max(2, bits.Len(uint(paletteLen-1)))
}

// entryBits starts from EntryBits and accepts a wider array when its long
// count says so.
func entryBits(paletteLen, entries, longs int) int {
	b := EntryBits(paletteLen)
	for w := b; w <= 32; w++ {
		if (entries*w+63)/64 == longs {
			return w
		}
	}
	return b
}

// Volume unpacks the named region into palette indices of voxel.Palette.
func (d *Document) Volume(name string) (*voxel.Volume, error) {
	r, ok := d.Regions[name]
	if !ok {
		return nil, fmt.Errorf("litematic: no region %q", name)
	}
	w, h, l := abs32(r.Size.X), abs32(r.Size.Y), abs32(r.Size.Z)
	n := w * h * l
	if n == 0 || len(r.BlockStatePalette) == 0 {
		return nil, fmt.Errorf("litematic: region %q is empty", name)
	}

	remap := make([]uint32, len(r.BlockStatePalette))
	for i, bs := range r.BlockStatePalette {
		found := false
		for j, b := range voxel.Palette {
			if b.Name == bs.Name {
				remap[i] = uint32(j)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("litematic: region %q uses unknown block %q", name, bs.Name)
		}
	}

	packed, err := bitpack.FromLongs(r.BlockStates, entryBits(len(remap), n, len(r.BlockStates)), n)
	if err != nil {
		return nil, fmt.Errorf("litematic: region %q: %w", name, err)
	}
	indices := packed.Entries()
	for i, idx := range indices {
		if int(idx) >= len(remap) {
			return nil, fmt.Errorf("litematic: region %q: palette index %d out of range at %d", name, idx, i)
		}
		indices[i] = remap[idx]
	}
	return voxel.FromIndices(w, h, l, indices)
}
