package litematic

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"
)

// Encode writes doc as gzipped NBT with an unnamed root compound.
func Encode(w io.Writer, doc *Document) error {
	zw, err := gzip.NewWriterLevel(w, gzip.BestCompression)
	if err != nil {
		return err
	}
	if err := nbt.NewEncoder(zw).Encode(doc, ""); err != nil {
		zw.Close()
		return fmt.Errorf("failed to encode nbt: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to compress: %w", err)
	}
	return nil
}

// Decode reads a gzipped NBT schematic.
func Decode(r io.Reader) (*Document, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	defer zr.Close()

	var doc Document
	if _, err := nbt.NewDecoder(zr).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode nbt: %w", err)
	}
	return &doc, nil
}

// Marshal returns the encoded file contents of doc.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal parses encoded file contents.
func Unmarshal(data []byte) (*Document, error) {
	return Decode(bytes.NewReader(data))
}

// WriteFile encodes doc into path.
func WriteFile(path string, doc *Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile loads the schematic stored at path.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}
