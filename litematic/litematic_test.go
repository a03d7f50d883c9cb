package litematic_test

import (
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/greatgamegal/mazematic/bitpack"
	"github.com/greatgamegal/mazematic/litematic"
	"github.com/greatgamegal/mazematic/maze"
	"github.com/greatgamegal/mazematic/voxel"
)

var stamp = time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

func buildDoc(t *testing.T, w, h, layers int) (*litematic.Document, *voxel.Grid) {
	t.Helper()
	m, err := maze.Generate(w, h, 0, 0, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	g := voxel.Rasterize(m)
	packed, err := bitpack.PackGrid(g, layers, 2)
	if err != nil {
		t.Fatalf("PackGrid failed: %v", err)
	}
	meta := litematic.Meta{Name: "Maze test", Author: "tester", Description: "An auto-generated maze."}
	return litematic.Build(m, packed, stamp, meta), g
}

func TestBuild(t *testing.T) {
	doc, g := buildDoc(t, 5, 4, 4)

	wantSize := litematic.Vec3{X: 16, Y: 4, Z: 13}
	md := doc.Metadata
	if md.EnclosingSize != wantSize {
		t.Errorf("EnclosingSize = %+v, want %+v", md.EnclosingSize, wantSize)
	}
	if want := int32(16*13 + 3*g.Solid()); md.TotalBlocks != want {
		t.Errorf("TotalBlocks = %d, want %d", md.TotalBlocks, want)
	}
	if md.TotalVolume != 16*13*4 {
		t.Errorf("TotalVolume = %d, want %d", md.TotalVolume, 16*13*4)
	}
	if md.TimeCreated != stamp.UnixMilli() || md.TimeModified != stamp.UnixMilli() {
		t.Errorf("timestamps = %d/%d, want %d", md.TimeCreated, md.TimeModified, stamp.UnixMilli())
	}
	if md.RegionCount != 1 || len(doc.Regions) != 1 {
		t.Errorf("got %d regions (RegionCount %d), want 1", len(doc.Regions), md.RegionCount)
	}

	region, ok := doc.Regions[litematic.RegionName]
	if !ok {
		t.Fatalf("region %q missing", litematic.RegionName)
	}
	if region.Size != wantSize {
		t.Errorf("Size = %+v, want %+v", region.Size, wantSize)
	}
	wantPalette := []litematic.BlockState{
		{Name: "minecraft:air"},
		{Name: "minecraft:stone"},
		{Name: "minecraft:stone_bricks"},
	}
	if diff := cmp.Diff(wantPalette, region.BlockStatePalette); diff != "" {
		t.Errorf("palette mismatch (-want +got):\n%s", diff)
	}
	if got, want := len(region.BlockStates), (16*13*4*2+63)/64; got != want {
		t.Errorf("len(BlockStates) = %d, want %d", got, want)
	}
}

func TestEncodeDecode(t *testing.T) {
	doc, _ := buildDoc(t, 6, 3, 4)
	data, err := litematic.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if len(data) < 2 || data[0] != 0x1f || data[1] != 0x8b {
		t.Fatalf("output is not gzip")
	}
	got, err := litematic.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if diff := cmp.Diff(doc, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteReadFile(t *testing.T) {
	doc, _ := buildDoc(t, 2, 2, 4)
	path := filepath.Join(t.TempDir(), litematic.FileName(stamp, 0))
	if err := litematic.WriteFile(path, doc); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	got, err := litematic.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if diff := cmp.Diff(doc, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestVolume(t *testing.T) {
	doc, g := buildDoc(t, 4, 4, 4)
	v, err := doc.Volume(litematic.RegionName)
	if err != nil {
		t.Fatalf("Volume failed: %v", err)
	}
	want, err := voxel.Extrude(g, 4)
	if err != nil {
		t.Fatalf("Extrude failed: %v", err)
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("volume mismatch (-want +got):\n%s", diff)
	}
	if _, err := doc.Volume("Other"); err == nil {
		t.Errorf("Volume(missing region) succeeded")
	}
}

func TestVolumeRemapsPalette(t *testing.T) {
	// Same blocks, palette stored in a different order.
	packed, err := bitpack.Pack([]uint32{0, 1, 2}, 2)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	doc := &litematic.Document{Regions: map[string]litematic.Region{
		"R": {
			Size: litematic.Vec3{X: 3, Y: 1, Z: 1},
			BlockStatePalette: []litematic.BlockState{
				{Name: "minecraft:stone_bricks"},
				{Name: "minecraft:air"},
				{Name: "minecraft:stone"},
			},
			BlockStates: packed.Longs(),
		},
	}}
	v, err := doc.Volume("R")
	if err != nil {
		t.Fatalf("Volume failed: %v", err)
	}
	want := []voxel.Block{voxel.StoneBricks, voxel.Air, voxel.Stone}
	if diff := cmp.Diff(want, v.Blocks); diff != "" {
		t.Errorf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestFileName(t *testing.T) {
	if got, want := litematic.FileName(stamp, 3), "maze.2024.03.05.14.07.09-3.litematic"; got != want {
		t.Errorf("FileName = %q, want %q", got, want)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := litematic.Unmarshal([]byte("not a schematic")); err == nil {
		t.Errorf("Unmarshal accepted garbage")
	}
}

func TestEntryBits(t *testing.T) {
	for _, tc := range []struct{ palette, want int }{
		{1, 2}, {2, 2}, {3, 2}, {4, 2}, {5, 3}, {8, 3}, {9, 4}, {17, 5},
	} {
		if got := litematic.EntryBits(tc.palette); got != tc.want {
			t.Errorf("EntryBits(%d) = %d, want %d", tc.palette, got, tc.want)
		}
	}
}
