// Package mazepack bundles a batch of generated schematics into one file.
// Identical payloads are stored once and every entry points at its blob.
package mazepack

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// Compression selects the codec applied to the content section.
type Compression uint8

const (
	CompNone Compression = 0
	CompZlib Compression = 1
	CompZstd Compression = 2
)

const (
	magic   = "MAZEPACK"
	version = 1
)

var ErrFormat = errors.New("mazepack: malformed archive")

func (c Compression) String() string {
	switch c {
	case CompNone:
		return "none"
	case CompZlib:
		return "zlib"
	case CompZstd:
		return "zstd"
	}
	return fmt.Sprintf("Compression(%d)", uint8(c))
}

// ParseCompression maps a codec name to its Compression.
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "none", "":
		return CompNone, nil
	case "zlib":
		return CompZlib, nil
	case "zstd":
		return CompZstd, nil
	}
	return 0, fmt.Errorf("unknown compression %q", s)
}

// Entry is one named file in the archive.
type Entry struct {
	Name string
	Data []byte
}

type Archive struct {
	Entries []Entry
}

// Add appends a file.
func (a *Archive) Add(name string, data []byte) {
	a.Entries = append(a.Entries, Entry{Name: name, Data: data})
}

// Find returns the data stored under name.
func (a *Archive) Find(name string) ([]byte, bool) {
	for _, e := range a.Entries {
		if e.Name == name {
			return e.Data, true
		}
	}
	return nil, false
}

// dedupe returns the unique payloads and, per entry, the index of its blob.
func (a *Archive) dedupe() ([][]byte, []uint32) {
	blobs := make([][]byte, 0, len(a.Entries))
	refs := make([]uint32, len(a.Entries))
	index := make(map[uint64][]int, len(a.Entries))
	for i, e := range a.Entries {
		h := xxhash.Sum64(e.Data)
		found := -1
		for _, bi := range index[h] {
			if bytes.Equal(blobs[bi], e.Data) {
				found = bi
				break
			}
		}
		if found < 0 {
			found = len(blobs)
			blobs = append(blobs, e.Data)
			index[h] = append(index[h], found)
		}
		refs[i] = uint32(found)
	}
	return blobs, refs
}

// Marshal encodes the archive with the given content compression.
func (a *Archive) Marshal(comp Compression) ([]byte, error) {
	blobs, refs := a.dedupe()

	var content bytes.Buffer
	_ = binary.Write(&content, binary.LittleEndian, uint32(len(blobs)))
	for _, b := range blobs {
		_ = binary.Write(&content, binary.LittleEndian, xxhash.Sum64(b))
		_ = binary.Write(&content, binary.LittleEndian, uint32(len(b)))
		content.Write(b)
	}
	_ = binary.Write(&content, binary.LittleEndian, uint32(len(a.Entries)))
	for i, e := range a.Entries {
		if len(e.Name) > 0xFFFF {
			return nil, fmt.Errorf("name too long: %s", e.Name)
		}
		_ = binary.Write(&content, binary.LittleEndian, uint16(len(e.Name)))
		content.WriteString(e.Name)
		_ = binary.Write(&content, binary.LittleEndian, refs[i])
	}

	body, err := compress(content.Bytes(), comp)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	out.WriteString(magic)
	out.WriteByte(version)
	out.WriteByte(byte(comp))
	out.Write(body)
	return out.Bytes(), nil
}

// Unmarshal decodes an archive and reports the compression it used.
func Unmarshal(data []byte) (*Archive, Compression, error) {
	if len(data) < len(magic)+2 || string(data[:len(magic)]) != magic {
		return nil, 0, fmt.Errorf("%w: bad magic", ErrFormat)
	}
	if v := data[len(magic)]; v != version {
		return nil, 0, fmt.Errorf("%w: unsupported version %d", ErrFormat, v)
	}
	comp := Compression(data[len(magic)+1])
	content, err := decompress(data[len(magic)+2:], comp)
	if err != nil {
		return nil, 0, err
	}

	r := bytes.NewReader(content)
	var nBlobs uint32
	if err := binary.Read(r, binary.LittleEndian, &nBlobs); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	blobs := make([][]byte, 0, min(int(nBlobs), 1024))
	for i := uint32(0); i < nBlobs; i++ {
		var sum uint64
		var n uint32
		if err := binary.Read(r, binary.LittleEndian, &sum); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		if int64(n) > int64(r.Len()) {
			return nil, 0, fmt.Errorf("%w: blob %d truncated", ErrFormat, i)
		}
		b := make([]byte, n)
		if _, err := io.ReadFull(r, b); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		if xxhash.Sum64(b) != sum {
			return nil, 0, fmt.Errorf("%w: blob %d checksum mismatch", ErrFormat, i)
		}
		blobs = append(blobs, b)
	}

	var nEntries uint32
	if err := binary.Read(r, binary.LittleEndian, &nEntries); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	a := &Archive{Entries: make([]Entry, 0, min(int(nEntries), 1024))}
	for i := uint32(0); i < nEntries; i++ {
		var nameLen uint16
		if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		name := make([]byte, nameLen)
		if _, err := io.ReadFull(r, name); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		var ref uint32
		if err := binary.Read(r, binary.LittleEndian, &ref); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		if ref >= uint32(len(blobs)) {
			return nil, 0, fmt.Errorf("%w: entry %q refers to blob %d", ErrFormat, name, ref)
		}
		a.Entries = append(a.Entries, Entry{Name: string(name), Data: blobs[ref]})
	}
	return a, comp, nil
}

func compress(b []byte, comp Compression) ([]byte, error) {
	switch comp {
	case CompNone:
		return b, nil
	case CompZlib:
		var buf bytes.Buffer
		zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
		if err != nil {
			return nil, err
		}
		if _, err := zw.Write(b); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(b, nil), nil
	}
	return nil, fmt.Errorf("unsupported compression: %v", comp)
}

func decompress(b []byte, comp Compression) ([]byte, error) {
	switch comp {
	case CompNone:
		return b, nil
	case CompZlib:
		zr, err := zlib.NewReader(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case CompZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		out, err := dec.DecodeAll(b, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: unsupported compression %v", ErrFormat, comp)
}
