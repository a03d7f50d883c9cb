package bitpack

import (
	"fmt"

	"github.com/greatgamegal/mazematic/voxel"
)

// PackVolume packs the palette indices of v in layer, row, column order.
func PackVolume(v *voxel.Volume, bitsPerEntry int) (*Array, error) {
	if err := checkWidth(bitsPerEntry); err != nil {
		return nil, err
	}
	if uint32(voxel.MaxBlock()) > MaxValue(bitsPerEntry) {
		return nil, fmt.Errorf("%w: palette of %d blocks needs more than %d bits", ErrInvalidArgument, len(voxel.Palette), bitsPerEntry)
	}
	return Pack(v.Indices(), bitsPerEntry)
}

// PackGrid extrudes g to layers and packs the result.
func PackGrid(g *voxel.Grid, layers, bitsPerEntry int) (*Array, error) {
	v, err := voxel.Extrude(g, layers)
	if err != nil {
		return nil, err
	}
	return PackVolume(v, bitsPerEntry)
}
