package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/greatgamegal/mazematic/litematic"
	"github.com/greatgamegal/mazematic/mazepack"
)

// CreateBundle reads schematic files and writes them into one archive.
// Every input must decode as a schematic.
func CreateBundle(inputFiles []string, outputFile string, comp mazepack.Compression) error {
	if len(inputFiles) == 0 {
		return fmt.Errorf("no .litematic files provided")
	}
	type item struct {
		data []byte
		err  error
	}
	items := make([]item, len(inputFiles))

	var wg sync.WaitGroup
	for i, path := range inputFiles {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			b, err := os.ReadFile(path)
			if err != nil {
				items[i].err = err
				return
			}
			if _, err := litematic.Unmarshal(b); err != nil {
				items[i].err = fmt.Errorf("%s: %w", path, err)
				return
			}
			items[i].data = b
		}(i, path)
	}
	wg.Wait()

	var archive mazepack.Archive
	for i, it := range items {
		if it.err != nil {
			return it.err
		}
		name := filepath.Base(inputFiles[i])
		if _, dup := archive.Find(name); dup {
			return fmt.Errorf("duplicate entry name %q", name)
		}
		archive.Add(name, it.data)
	}
	data, err := archive.Marshal(comp)
	if err != nil {
		return err
	}
	return os.WriteFile(outputFile, data, 0o644)
}

// UnpackBundle writes every file of an archive into outputDir.
func UnpackBundle(packFile, outputDir string) error {
	data, err := os.ReadFile(packFile)
	if err != nil {
		return err
	}
	archive, _, err := mazepack.Unmarshal(data)
	if err != nil {
		return err
	}
	names := make(map[string]bool, len(archive.Entries))
	for _, e := range archive.Entries {
		if e.Name == "" || e.Name == "." || e.Name == ".." || e.Name != filepath.Base(e.Name) {
			return fmt.Errorf("refusing entry name %q", e.Name)
		}
		if names[e.Name] {
			return fmt.Errorf("duplicate entry name %q", e.Name)
		}
		names[e.Name] = true
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	var wg sync.WaitGroup
	errCh := make(chan error, len(archive.Entries))
	for _, e := range archive.Entries {
		wg.Add(1)
		go func(e mazepack.Entry) {
			defer wg.Done()
			if err := os.WriteFile(filepath.Join(outputDir, e.Name), e.Data, 0o644); err != nil {
				errCh <- err
			}
		}(e)
	}
	wg.Wait()
	close(errCh)
	if err, ok := <-errCh; ok {
		return err
	}
	return nil
}
