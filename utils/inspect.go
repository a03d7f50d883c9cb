package utils

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/greatgamegal/mazematic/api"
	"github.com/greatgamegal/mazematic/litematic"
)

// RunInspect prints the metadata and regions of a schematic, with an
// ASCII view of the first wall layer of every region.
func RunInspect(path string, w io.Writer) error {
	doc, err := litematic.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	md := doc.Metadata
	fmt.Fprintf(w, "Name:        %s\n", md.Name)
	fmt.Fprintf(w, "Author:      %s\n", md.Author)
	fmt.Fprintf(w, "Description: %s\n", md.Description)
	fmt.Fprintf(w, "Size:        %d x %d x %d\n", md.EnclosingSize.X, md.EnclosingSize.Y, md.EnclosingSize.Z)
	fmt.Fprintf(w, "Blocks:      %d of %d\n", md.TotalBlocks, md.TotalVolume)
	fmt.Fprintf(w, "Versions:    data %d, format %d\n", doc.MinecraftDataVersion, doc.Version)

	names := make([]string, 0, len(doc.Regions))
	for name := range doc.Regions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		region := doc.Regions[name]
		fmt.Fprintf(w, "\nRegion %s: %d x %d x %d, %d longs\n", name, region.Size.X, region.Size.Y, region.Size.Z, len(region.BlockStates))
		for i, bs := range region.BlockStatePalette {
			fmt.Fprintf(w, "  %d: %s\n", i, bs.Name)
		}
		v, err := doc.Volume(name)
		if err != nil {
			return err
		}
		layer := 0
		if v.Height > 1 {
			layer = 1
		}
		fmt.Fprintln(w, v.Layer(layer).String())
	}
	return nil
}

// RunLitematic2GLB converts a schematic into a binary glTF preview.
func RunLitematic2GLB(inPath, outPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	glb, err := api.LitematicToGLB(data)
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, glb, 0o644)
}
