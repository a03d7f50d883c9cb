package voxel

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is wrapped by rejected layer counts and dimensions.
var ErrInvalidArgument = errors.New("voxel: invalid argument")

// Volume is a 3D block array indexed layer first, then row, then column:
// Blocks[y*Width*Depth + z*Width + x]. Width and Depth match the 2D grid
// the volume was extruded from.
type Volume struct {
	Width  int
	Height int
	Depth  int
	Blocks []Block
}

func (v *Volume) index(x, y, z int) int { return y*v.Width*v.Depth + z*v.Width + x }

// At returns the block at (x, y, z), Air outside the volume.
func (v *Volume) At(x, y, z int) Block {
	if x < 0 || x >= v.Width || y < 0 || y >= v.Height || z < 0 || z >= v.Depth {
		return Air
	}
	return v.Blocks[v.index(x, y, z)]
}

// Extrude stacks layers copies of g: layer 0 is a stone brick floor under
// the whole footprint, every layer above is stone where g is solid.
func Extrude(g *Grid, layers int) (*Volume, error) {
	if layers < 1 {
		return nil, fmt.Errorf("%w: layer count %d", ErrInvalidArgument, layers)
	}
	v := &Volume{Width: g.Width, Height: layers, Depth: g.Height}
	v.Blocks = make([]Block, g.Width*g.Height*layers)
	for y := 0; y < layers; y++ {
		for z := 0; z < g.Height; z++ {
			for x := 0; x < g.Width; x++ {
				b := Air
				switch {
				case y == 0:
					b = StoneBricks
				case g.At(x, z):
					b = Stone
				}
				v.Blocks[v.index(x, y, z)] = b
			}
		}
	}
	return v, nil
}

// FromIndices rebuilds a volume from a flat palette index sequence in the
// same order Extrude lays blocks out.
func FromIndices(width, height, depth int, indices []uint32) (*Volume, error) {
	if width < 1 || height < 1 || depth < 1 {
		return nil, fmt.Errorf("%w: volume %dx%dx%d", ErrInvalidArgument, width, height, depth)
	}
	if len(indices) != width*height*depth {
		return nil, fmt.Errorf("%w: %d indices for volume %dx%dx%d", ErrInvalidArgument, len(indices), width, height, depth)
	}
	v := &Volume{Width: width, Height: height, Depth: depth, Blocks: make([]Block, len(indices))}
	for i, idx := range indices {
		if idx > uint32(MaxBlock()) {
			return nil, fmt.Errorf("%w: palette index %d at %d", ErrInvalidArgument, idx, i)
		}
		v.Blocks[i] = Block(idx)
	}
	return v, nil
}

// Layer returns the footprint of layer y: solid wherever a block is not air.
func (v *Volume) Layer(y int) *Grid {
	g := NewGrid(v.Width, v.Depth)
	for z := 0; z < v.Depth; z++ {
		for x := 0; x < v.Width; x++ {
			g.Set(x, z, v.At(x, y, z) != Air)
		}
	}
	return g
}

// Indices flattens the volume into palette indices.
func (v *Volume) Indices() []uint32 {
	out := make([]uint32, len(v.Blocks))
	for i, b := range v.Blocks {
		out[i] = uint32(b)
	}
	return out
}
