package voxel

import (
	"fmt"
	"strconv"
)

// Block is a palette index. The order is part of the file format: indices
// already packed into a schematic refer to these positions.
type Block uint8

const (
	Air Block = iota
	Stone
	StoneBricks
)

// BlockType describes one palette entry.
type BlockType struct {
	Name  string // namespaced block id
	Color string // preview colour, #rrggbb or #rrggbbaa; empty for air
}

// Palette is indexed by Block.
var Palette = []BlockType{
	Air:         {Name: "minecraft:air"},
	Stone:       {Name: "minecraft:stone", Color: "#7d7d7d"},
	StoneBricks: {Name: "minecraft:stone_bricks", Color: "#5a5a5a"},
}

// MaxBlock is the largest palette index in use.
func MaxBlock() Block { return Block(len(Palette) - 1) }

// ParseHexColor turns #rrggbb or #rrggbbaa into linear 0..1 RGBA.
func ParseHexColor(hex string) ([4]float32, error) {
	if len(hex) == 0 || hex[0] != '#' {
		return [4]float32{}, fmt.Errorf("invalid hex colour %q", hex)
	}
	h := hex[1:]
	if len(h) != 6 && len(h) != 8 {
		return [4]float32{}, fmt.Errorf("invalid hex colour length %q", hex)
	}
	out := [4]float32{0, 0, 0, 1}
	for i := 0; i < len(h)/2; i++ {
		c, err := strconv.ParseUint(h[2*i:2*i+2], 16, 8)
		if err != nil {
			return [4]float32{}, fmt.Errorf("invalid hex colour %q: %w", hex, err)
		}
		out[i] = float32(c) / 255
	}
	return out, nil
}
