// Package pairwise implements the reference set-algebra combinators over
// two ascending finite sequences of uint32 values. These are deliberately
// the simplest possible correct implementation — a plain two-pointer merge
// with no representation-specific tricks — so that property tests can
// compare the optimized Block/Map operations against an obviously-correct
// oracle. Do not optimize this package for speed.
package pairwise

import "iter"

// Intersection yields values present in both a and b, in ascending order.
func Intersection(a, b iter.Seq[uint32]) iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		next, stop := iter.Pull(a)
		defer stop()

		nextB, stopB := iter.Pull(b)
		defer stopB()

		av, aok := next()
		bv, bok := nextB()

		for aok && bok {
			switch {
			case av < bv:
				av, aok = next()
			case av > bv:
				bv, bok = nextB()
			default:
				if !yield(av) {
					return
				}

				av, aok = next()
				bv, bok = nextB()
			}
		}
	}
}

// Union yields every value present in a or b, in ascending order.
func Union(a, b iter.Seq[uint32]) iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		next, stop := iter.Pull(a)
		defer stop()

		nextB, stopB := iter.Pull(b)
		defer stopB()

		av, aok := next()
		bv, bok := nextB()

		for aok || bok {
			switch {
			case !bok || (aok && av < bv):
				if !yield(av) {
					return
				}

				av, aok = next()
			case !aok || (bok && bv < av):
				if !yield(bv) {
					return
				}

				bv, bok = nextB()
			default:
				if !yield(av) {
					return
				}

				av, aok = next()
				bv, bok = nextB()
			}
		}
	}
}

// Difference yields values present in a but not in b, in ascending order.
func Difference(a, b iter.Seq[uint32]) iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		next, stop := iter.Pull(a)
		defer stop()

		nextB, stopB := iter.Pull(b)
		defer stopB()

		av, aok := next()
		bv, bok := nextB()

		for aok {
			switch {
			case !bok || av < bv:
				if !yield(av) {
					return
				}

				av, aok = next()
			case av > bv:
				bv, bok = nextB()
			default:
				av, aok = next()
				bv, bok = nextB()
			}
		}
	}
}

// SymmetricDifference yields values present in exactly one of a, b, in
// ascending order.
func SymmetricDifference(a, b iter.Seq[uint32]) iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		next, stop := iter.Pull(a)
		defer stop()

		nextB, stopB := iter.Pull(b)
		defer stopB()

		av, aok := next()
		bv, bok := nextB()

		for aok || bok {
			switch {
			case !bok || (aok && av < bv):
				if !yield(av) {
					return
				}

				av, aok = next()
			case !aok || (bok && bv < av):
				if !yield(bv) {
					return
				}

				bv, bok = nextB()
			default:
				av, aok = next()
				bv, bok = nextB()
			}
		}
	}
}

// Count consumes seq and returns how many values it yielded, without
// materializing a slice.
func Count(seq iter.Seq[uint32]) int {
	n := 0

	seq(func(uint32) bool {
		n++
		return true
	})

	return n
}
