package roaring

import (
	"iter"
	"sort"
)

// entry pairs a high-key with the Block holding its low 16 bits.
type entry struct {
	hi  uint16
	blk *Block
}

// Map is the 32-bit bitset: a sorted collection of Blocks keyed by the
// high 16 bits of each member. The zero value is not usable; construct
// one with New.
type Map struct {
	entries []entry
}

// New returns an empty Map.
func New() *Map {
	return &Map{}
}

// search returns the index of the entry for hi, or the insertion point
// that keeps entries sorted by hi, and whether hi is present.
func (m *Map) search(hi uint16) (int, bool) {
	i := sort.Search(len(m.entries), func(i int) bool { return m.entries[i].hi >= hi })
	return i, i < len(m.entries) && m.entries[i].hi == hi
}

func split(x uint32) (hi, lo uint16) {
	return uint16(x >> 16), uint16(x)
}

func join(hi, lo uint16) uint32 {
	return uint32(hi)<<16 | uint32(lo)
}

// Insert reports whether x was newly added.
func (m *Map) Insert(x uint32) bool {
	hi, lo := split(x)

	i, found := m.search(hi)
	if !found {
		m.entries = append(m.entries, entry{})
		copy(m.entries[i+1:], m.entries[i:])
		m.entries[i] = entry{hi: hi, blk: newBlock()}
	}

	return m.entries[i].blk.Insert(lo)
}

// Remove reports whether x was present and removed. An emptied Block is
// dropped from the Map immediately — no entry is ever kept at weight 0.
func (m *Map) Remove(x uint32) bool {
	hi, lo := split(x)

	i, found := m.search(hi)
	if !found {
		return false
	}

	removed := m.entries[i].blk.Remove(lo)
	if removed && m.entries[i].blk.Len() == 0 {
		m.entries = append(m.entries[:i], m.entries[i+1:]...)
	}

	return removed
}

// Contains reports whether x is a member.
func (m *Map) Contains(x uint32) bool {
	hi, lo := split(x)

	i, found := m.search(hi)
	if !found {
		return false
	}

	return m.entries[i].blk.Contains(lo)
}

// Count returns the bitset's cardinality.
func (m *Map) Count() uint64 {
	var n uint64
	for _, e := range m.entries {
		n += uint64(e.blk.Len())
	}

	return n
}

// Count0 returns the number of unset bits in the full 2^32 universe.
func (m *Map) Count0() uint64 {
	return (1 << 32) - m.Count()
}

// Bits returns an ascending, restartable sequence of every set bit.
// Mutating the Map while a Bits iteration is paused mid-range is unsafe:
// iterators borrow the Map read-only for the duration of the range.
func (m *Map) Bits() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for _, e := range m.entries {
			stop := false

			e.blk.Iterate(func(lo uint16) bool {
				if !yield(join(e.hi, lo)) {
					stop = true
					return false
				}

				return true
			})

			if stop {
				return
			}
		}
	}
}

// Optimize calls Optimize on every Block, selecting each one's smallest
// encoding.
func (m *Map) Optimize() {
	for _, e := range m.entries {
		e.blk.Optimize()
	}
}

// Clone returns an independent deep copy.
func (m *Map) Clone() *Map {
	out := &Map{entries: make([]entry, len(m.entries))}
	for i, e := range m.entries {
		out.entries[i] = entry{hi: e.hi, blk: e.blk.Clone()}
	}

	return out
}

// mapOp computes a Map-level set operation as a merge-join over both
// Maps' sorted high-keys: each overlapping high-key dispatches to the
// corresponding Block operation; a high-key present on one side only is
// copied as a clone (from both sides for union and symmetric difference,
// from a only for difference, from neither for intersection). The result
// is a fresh Map; neither operand is mutated.
func mapOp(op setOp, a, b *Map) *Map {
	out := &Map{}

	i, j := 0, 0
	for i < len(a.entries) && j < len(b.entries) {
		ea, eb := a.entries[i], b.entries[j]

		switch {
		case ea.hi < eb.hi:
			if op != opIntersection {
				out.entries = append(out.entries, entry{hi: ea.hi, blk: ea.blk.Clone()})
			}

			i++
		case ea.hi > eb.hi:
			if op == opUnion || op == opSymmetricDifference {
				out.entries = append(out.entries, entry{hi: eb.hi, blk: eb.blk.Clone()})
			}

			j++
		default:
			merged := blockOp(op, ea.blk, eb.blk)
			if merged.Len() > 0 {
				out.entries = append(out.entries, entry{hi: ea.hi, blk: merged})
			}

			i++
			j++
		}
	}

	switch op {
	case opUnion, opSymmetricDifference:
		for ; i < len(a.entries); i++ {
			out.entries = append(out.entries, entry{hi: a.entries[i].hi, blk: a.entries[i].blk.Clone()})
		}

		for ; j < len(b.entries); j++ {
			out.entries = append(out.entries, entry{hi: b.entries[j].hi, blk: b.entries[j].blk.Clone()})
		}
	case opDifference:
		for ; i < len(a.entries); i++ {
			out.entries = append(out.entries, entry{hi: a.entries[i].hi, blk: a.entries[i].blk.Clone()})
		}
	}

	return out
}

// Union returns a new Map holding m ∪ other.
func (m *Map) Union(other *Map) *Map { return mapOp(opUnion, m, other) }

// Intersect returns a new Map holding m ∩ other.
func (m *Map) Intersect(other *Map) *Map { return mapOp(opIntersection, m, other) }

// Difference returns a new Map holding m \ other.
func (m *Map) Difference(other *Map) *Map { return mapOp(opDifference, m, other) }

// SymmetricDifference returns a new Map holding m △ other.
func (m *Map) SymmetricDifference(other *Map) *Map { return mapOp(opSymmetricDifference, m, other) }
