package bitpack

import "fmt"

// PairWords regroups 32-bit words into 64-bit values, low word first:
// value k is word[2k+1]<<32 | word[2k]. An odd trailing word gets a zero
// high half. This is the long-array layout schematic readers expect.
func PairWords(words []uint32) []int64 {
	out := make([]int64, (len(words)+1)/2)
	for k := range out {
		lo := uint64(words[2*k])
		var hi uint64
		if 2*k+1 < len(words) {
			hi = uint64(words[2*k+1])
		}
		out[k] = int64(hi<<32 | lo)
	}
	return out
}

// SplitLongs is the inverse of PairWords.
func SplitLongs(longs []int64) []uint32 {
	out := make([]uint32, 2*len(longs))
	for k, l := range longs {
		out[2*k] = uint32(uint64(l))
		out[2*k+1] = uint32(uint64(l) >> 32)
	}
	return out
}

// Longs returns the array in its 64-bit form.
func (a *Array) Longs() []int64 { return PairWords(a.Words) }

// FromLongs rebuilds an n-entry array from its 64-bit form.
func FromLongs(longs []int64, bitsPerEntry, n int) (*Array, error) {
	a, err := NewArray(bitsPerEntry, n)
	if err != nil {
		return nil, err
	}
	words := SplitLongs(longs)
	if len(words) < len(a.Words) {
		return nil, fmt.Errorf("%w: %d longs cannot hold %d entries of %d bits", ErrInvalidArgument, len(longs), n, bitsPerEntry)
	}
	copy(a.Words, words)
	return a, nil
}
