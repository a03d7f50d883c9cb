package api_test

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/qmuntal/gltf"

	"github.com/greatgamegal/mazematic/api"
	"github.com/greatgamegal/mazematic/bitpack"
	"github.com/greatgamegal/mazematic/litematic"
	"github.com/greatgamegal/mazematic/maze"
	"github.com/greatgamegal/mazematic/mazepack"
	"github.com/greatgamegal/mazematic/voxel"
)

func params(seed int64) api.Params {
	p := api.DefaultParams()
	p.Source = rand.New(rand.NewSource(seed))
	p.Now = time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC)
	p.Meta.Name = "Maze " + litematic.TimeName(p.Now, 0)
	return p
}

func TestRunDefault(t *testing.T) {
	r, err := api.Run(params(1))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := r.Maze.Passages(); got != 17*17-1 {
		t.Errorf("Passages() = %d, want %d", got, 17*17-1)
	}
	if r.Grid.Width != 52 || r.Grid.Height != 52 {
		t.Errorf("grid is %dx%d, want 52x52", r.Grid.Width, r.Grid.Height)
	}
	if r.Packed.Len != 52*52*4 {
		t.Errorf("packed %d entries, want %d", r.Packed.Len, 52*52*4)
	}
	md := r.Document.Metadata
	if md.EnclosingSize != (litematic.Vec3{X: 52, Y: 4, Z: 52}) {
		t.Errorf("EnclosingSize = %+v", md.EnclosingSize)
	}
	if md.Author != "GreatGameGal" || md.Description != "An auto-generated maze." {
		t.Errorf("metadata text = %q/%q", md.Author, md.Description)
	}
	if md.Name != "Maze 2025.01.02.03.04.05-0" {
		t.Errorf("Name = %q", md.Name)
	}
}

func TestRunIsReproducible(t *testing.T) {
	a, err := api.GenerateMazeSchematic(params(5))
	if err != nil {
		t.Fatalf("GenerateMazeSchematic failed: %v", err)
	}
	b, err := api.GenerateMazeSchematic(params(5))
	if err != nil {
		t.Fatalf("GenerateMazeSchematic failed: %v", err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed, different documents (-a +b):\n%s", diff)
	}
}

func TestLitematicBytesRoundTrip(t *testing.T) {
	p := params(9)
	p.Width, p.Height = 6, 4
	r, err := api.Run(p)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	p.Source = rand.New(rand.NewSource(9))
	data, err := api.MazeToLitematicBytes(p)
	if err != nil {
		t.Fatalf("MazeToLitematicBytes failed: %v", err)
	}
	doc, err := litematic.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	v, err := doc.Volume(litematic.RegionName)
	if err != nil {
		t.Fatalf("Volume failed: %v", err)
	}
	if diff := cmp.Diff(r.Volume, v); diff != "" {
		t.Errorf("volume mismatch (-want +got):\n%s", diff)
	}
}

func TestRunInvalidArgument(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*api.Params)
		want   error
	}{
		{"ZeroWidth", func(p *api.Params) { p.Width = 0 }, maze.ErrInvalidArgument},
		{"StartOutside", func(p *api.Params) { p.StartY = p.Height }, maze.ErrInvalidArgument},
		{"NoLayers", func(p *api.Params) { p.Layers = 0 }, voxel.ErrInvalidArgument},
		{"ZeroBits", func(p *api.Params) { p.BitsPerEntry = 0 }, bitpack.ErrInvalidArgument},
		{"PaletteTooWide", func(p *api.Params) { p.BitsPerEntry = 1 }, bitpack.ErrInvalidArgument},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := params(1)
			tc.mutate(&p)
			r, err := api.Run(p)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if !errors.Is(err, api.ErrInvalidArgument) {
				t.Errorf("err = %v does not wrap api.ErrInvalidArgument", err)
			}
			if r != nil {
				t.Errorf("partial result returned on error")
			}
		})
	}
}

func TestGLB(t *testing.T) {
	p := params(2)
	p.Width, p.Height = 3, 3
	r, err := api.Run(p)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	glb, err := api.VolumeToGLB(r.Volume)
	if err != nil {
		t.Fatalf("VolumeToGLB failed: %v", err)
	}
	if !bytes.HasPrefix(glb, []byte("glTF")) {
		t.Errorf("output is not binary glTF")
	}

	data, err := litematic.Marshal(r.Document)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	fromFile, err := api.LitematicToGLB(data)
	if err != nil {
		t.Fatalf("LitematicToGLB failed: %v", err)
	}
	if !bytes.Equal(glb, fromFile) {
		t.Errorf("preview from file differs from preview of the built volume")
	}
}

func TestPackLitematics(t *testing.T) {
	files := map[string][]byte{}
	for i, name := range []string{"b.litematic", "a.litematic"} {
		data, err := api.MazeToLitematicBytes(params(int64(i + 1)))
		if err != nil {
			t.Fatalf("MazeToLitematicBytes failed: %v", err)
		}
		files[name] = data
	}
	packed, err := api.PackLitematics(files, mazepack.CompZstd)
	if err != nil {
		t.Fatalf("PackLitematics failed: %v", err)
	}
	got, err := api.UnpackToMemory(packed)
	if err != nil {
		t.Fatalf("UnpackToMemory failed: %v", err)
	}
	if diff := cmp.Diff(files, got); diff != "" {
		t.Errorf("unpacked files mismatch (-want +got):\n%s", diff)
	}

	files["bad.litematic"] = []byte("not a schematic")
	if _, err := api.PackLitematics(files, mazepack.CompNone); err == nil {
		t.Errorf("PackLitematics accepted an invalid schematic")
	}
	if _, err := api.UnpackToMemory([]byte("MAZEPACK")); !errors.Is(err, mazepack.ErrFormat) {
		t.Errorf("UnpackToMemory(truncated) err = %v, want ErrFormat", err)
	}
}

func TestGLBStructure(t *testing.T) {
	v, err := voxel.FromIndices(2, 1, 1, []uint32{uint32(voxel.StoneBricks), uint32(voxel.Stone)})
	if err != nil {
		t.Fatalf("FromIndices failed: %v", err)
	}
	glb, err := api.VolumeToGLB(v)
	if err != nil {
		t.Fatalf("VolumeToGLB failed: %v", err)
	}
	var doc gltf.Document
	if err := gltf.NewDecoder(bytes.NewReader(glb)).Decode(&doc); err != nil {
		t.Fatalf("decoding the preview failed: %v", err)
	}
	if len(doc.Meshes) != 1 || len(doc.Nodes) != 1 || len(doc.Scenes[0].Nodes) != 1 {
		t.Fatalf("got %d meshes, %d nodes, %d scene nodes; want 1 each", len(doc.Meshes), len(doc.Nodes), len(doc.Scenes[0].Nodes))
	}
	prim := doc.Meshes[0].Primitives[0]
	verts := len(voxel.GenerateMesh(v).Vertices)
	for _, attr := range []string{gltf.POSITION, gltf.NORMAL, gltf.COLOR_0} {
		idx, ok := prim.Attributes[attr]
		if !ok {
			t.Fatalf("primitive lacks %s", attr)
		}
		if got := doc.Accessors[idx].Count; got != verts {
			t.Errorf("%s has %d elements, want %d", attr, got, verts)
		}
	}
	if prim.Indices == nil || prim.Material == nil {
		t.Fatalf("primitive lacks indices or material")
	}
	if got := doc.Materials[*prim.Material].AlphaMode; got != gltf.AlphaOpaque {
		t.Errorf("AlphaMode = %v, want opaque", got)
	}
}

func TestStamp(t *testing.T) {
	p := api.DefaultParams()
	now := time.Date(2026, time.March, 4, 5, 6, 7, 0, time.UTC)
	p.Stamp(now, 2)
	doc, err := api.GenerateMazeSchematic(p)
	if err != nil {
		t.Fatalf("GenerateMazeSchematic failed: %v", err)
	}
	if got, want := doc.Metadata.Name, "Maze 2026.03.04.05.06.07-2"; got != want {
		t.Errorf("Name = %q, want %q", got, want)
	}
	if got := doc.Metadata.TimeCreated; got != now.UnixMilli() {
		t.Errorf("TimeCreated = %d, want %d", got, now.UnixMilli())
	}
}
