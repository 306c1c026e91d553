// Package roaring implements a compressed bitset over the 32-bit unsigned
// integer domain, using the Roaring Bitmap representation: a container per
// 16-bit high key, each holding a sorted array, a dense bitmap, or a
// run-length encoding of the low 16 bits that share that key.
//
// The zero value is not usable; construct a [Map] with [New]. A [Map] is a
// single-writer value: concurrent mutation is not supported, but read-only
// operations (Contains, Count, Bits, WriteTo) may run concurrently against a
// [Map] that no goroutine is mutating.
//
// Binary serialization ([ReadFrom], [*Map.WriteTo]) is byte-exact compatible
// with the Roaring Bitmap wire format (both the "bitmapwithruns" and
// "bitmapwithoutruns" cookie variants); see the RoaringFormatSpec.
package roaring
