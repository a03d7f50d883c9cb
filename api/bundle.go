package api

import (
	"fmt"
	"sort"

	"github.com/greatgamegal/mazematic/litematic"
	"github.com/greatgamegal/mazematic/mazepack"
)

// PackLitematics bundles in-memory schematics by name. Every file must
// decode as a schematic.
func PackLitematics(files map[string][]byte, comp mazepack.Compression) ([]byte, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var archive mazepack.Archive
	for _, name := range names {
		if _, err := litematic.Unmarshal(files[name]); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		archive.Add(name, files[name])
	}
	return archive.Marshal(comp)
}

// UnpackToMemory returns the files of an archive keyed by name.
func UnpackToMemory(data []byte) (map[string][]byte, error) {
	archive, _, err := mazepack.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(archive.Entries))
	for _, e := range archive.Entries {
		out[e.Name] = e.Data
	}
	return out, nil
}
