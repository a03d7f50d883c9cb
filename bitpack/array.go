// Package bitpack stores fixed-width unsigned entries densely in 32-bit
// words. Entry i occupies bits [i*b, i*b+b) of a little-endian bitstream
// and may straddle two words.
package bitpack

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is wrapped by rejected widths, lengths and values.
var ErrInvalidArgument = errors.New("bitpack: invalid argument")

// Array is a word-packed sequence of Len entries of BitsPerEntry bits each.
type Array struct {
	BitsPerEntry int
	Len          int
	Words        []uint32
}

// WordCount is the number of 32-bit words needed for n entries.
func WordCount(bitsPerEntry, n int) int {
	return (n*bitsPerEntry + 31) / 32
}

// MaxValue is the largest entry that fits in bitsPerEntry bits.
func MaxValue(bitsPerEntry int) uint32 {
	return uint32(uint64(1)<<bitsPerEntry - 1)
}

func checkWidth(bitsPerEntry int) error {
	if bitsPerEntry < 1 || bitsPerEntry > 32 {
		return fmt.Errorf("%w: %d bits per entry", ErrInvalidArgument, bitsPerEntry)
	}
	return nil
}

// NewArray returns a zeroed array for n entries.
func NewArray(bitsPerEntry, n int) (*Array, error) {
	if err := checkWidth(bitsPerEntry); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: length %d", ErrInvalidArgument, n)
	}
	return &Array{
		BitsPerEntry: bitsPerEntry,
		Len:          n,
		Words:        make([]uint32, WordCount(bitsPerEntry, n)),
	}, nil
}

// Set stores the low BitsPerEntry bits of v at index i. Only the bits of
// entry i change; neighbours sharing its words are preserved.
func (a *Array) Set(i int, v uint32) {
	mask := MaxValue(a.BitsPerEntry)
	off := i * a.BitsPerEntry
	wi, bit := off>>5, uint(off&31)
	v &= mask
	a.Words[wi] = a.Words[wi]&^(mask<<bit) | v<<bit
	if bit+uint(a.BitsPerEntry) > 32 {
		low := 32 - bit
		high := uint(a.BitsPerEntry) - low
		a.Words[wi+1] = a.Words[wi+1]&^(1<<high-1) | v>>low
	}
}

// Get returns entry i.
func (a *Array) Get(i int) uint32 {
	off := i * a.BitsPerEntry
	wi, bit := off>>5, uint(off&31)
	v := a.Words[wi] >> bit
	if bit+uint(a.BitsPerEntry) > 32 {
		v |= a.Words[wi+1] << (32 - bit)
	}
	return v & MaxValue(a.BitsPerEntry)
}

// Entries returns every entry in index order.
func (a *Array) Entries() []uint32 {
	out := make([]uint32, a.Len)
	for i := range out {
		out[i] = a.Get(i)
	}
	return out
}

// Pack stores entries in a new array, rejecting values wider than
// bitsPerEntry.
func Pack(entries []uint32, bitsPerEntry int) (*Array, error) {
	a, err := NewArray(bitsPerEntry, len(entries))
	if err != nil {
		return nil, err
	}
	limit := MaxValue(bitsPerEntry)
	for i, v := range entries {
		if v > limit {
			return nil, fmt.Errorf("%w: entry %d value %d exceeds %d bits", ErrInvalidArgument, i, v, bitsPerEntry)
		}
		a.Set(i, v)
	}
	return a, nil
}

// Unpack reads n entries of bitsPerEntry bits back out of words by
// streaming them as bytes.
func Unpack(words []uint32, bitsPerEntry, n int) ([]uint32, error) {
	if err := checkWidth(bitsPerEntry); err != nil {
		return nil, err
	}
	if n < 0 || WordCount(bitsPerEntry, n) > len(words) {
		return nil, fmt.Errorf("%w: %d words cannot hold %d entries of %d bits", ErrInvalidArgument, len(words), n, bitsPerEntry)
	}
	br := newBitReader(wordBytes(words))
	out := make([]uint32, n)
	for i := range out {
		v, err := br.readBits(uint8(bitsPerEntry))
		if err != nil {
			return nil, fmt.Errorf("unpack entry %d: %w", i, err)
		}
		out[i] = uint32(v)
	}
	return out, nil
}
