package roaring

import "math/bits"

// popcount64 returns the number of set bits in v.
//
// Bitmap weights are recomputed from word popcounts by popcountSlice (see
// bitmapBucket.recount); array and run weights are counted from keys and
// run lengths instead.
func popcount64(v uint64) int {
	return bits.OnesCount64(v)
}

// popcountSlice sums the popcount of every word in words.
func popcountSlice(words []uint64) int {
	n := 0
	for _, w := range words {
		n += bits.OnesCount64(w)
	}

	return n
}
