package roaring

import "errors"

// Capacity and representation constants.
const (
	// blockCapacity is the number of values a single Block can hold: the
	// full range of a 16-bit low key.
	blockCapacity = 1 << 16

	// arrayThreshold is the cardinality above which an array bucket must
	// be promoted to a bitmap bucket, and at or below which a bitmap
	// bucket must be demoted back to an array.
	arrayThreshold = 4096

	// bitmapWords is the fixed word count of a dense bitmap bucket:
	// 1024 uint64 words = 65536 bits.
	bitmapWords = blockCapacity / 64

	// bitmapBytes is the encoded size in bytes of a bitmap container.
	bitmapBytes = bitmapWords * 8
)

// Malformed-input errors returned by the codec. All of them wrap
// ErrMalformedInput, so callers can test broadly with
// errors.Is(err, ErrMalformedInput) or narrowly for the specific cause.
var (
	// ErrMalformedInput is the umbrella sentinel every codec parse error wraps.
	ErrMalformedInput = errors.New("roaring: malformed input")

	errBadCookie        = errors.New("roaring: cookie matches neither 0x3BC0 nor low16 0x3B30")
	errSizeOverflow     = errors.New("roaring: size exceeds 65536 containers")
	errShortPayload     = errors.New("roaring: payload truncated")
	errKeysNotAscending = errors.New("roaring: descriptor or array block keys are not strictly ascending")
	errRunsInvalid      = errors.New("roaring: run block violates ordering or adjacency invariant")
)

// ErrNotFound reports an absent key. No function in this module currently
// returns it. It is not part of the codec's malformed-input taxonomy.
var ErrNotFound = errors.New("roaring: key not found")
