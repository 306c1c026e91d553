package roaring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockStartsAsArrayAndPromotesToBitmap(t *testing.T) {
	t.Parallel()

	b := newBlock()
	require.Equal(t, kindArray, b.kind)

	for k := 0; k <= arrayThreshold; k++ {
		b.Insert(uint16(k))
	}

	require.Equal(t, kindBitmap, b.kind, "exceeding arrayThreshold promotes to bitmap")
	require.Equal(t, arrayThreshold+1, b.Len())
}

func TestBlockDemotesBitmapToArray(t *testing.T) {
	t.Parallel()

	b := newBlock()
	for k := 0; k <= arrayThreshold+10; k++ {
		b.Insert(uint16(k))
	}

	require.Equal(t, kindBitmap, b.kind)

	for k := arrayThreshold + 10; k >= arrayThreshold; k-- {
		b.Remove(uint16(k))
	}

	require.Equal(t, kindArray, b.kind, "dropping back to arrayThreshold or below demotes to array")
}

func TestBlockMutationMaterializesRun(t *testing.T) {
	t.Parallel()

	b := newBlock()
	for k := uint16(0); k < 100; k++ {
		b.Insert(k)
	}

	b.Optimize()
	require.Equal(t, kindRun, b.kind, "100 contiguous keys encode smaller as a single run")

	require.True(t, b.Insert(200))
	require.NotEqual(t, kindRun, b.kind, "any mutation materializes a run block first")
	require.True(t, b.Contains(50))
	require.True(t, b.Contains(200))
	require.Equal(t, 101, b.Len())
}

func TestBlockCloneIsIndependent(t *testing.T) {
	t.Parallel()

	b := newBlock()
	b.Insert(1)
	b.Insert(2)

	clone := b.Clone()
	clone.Insert(3)

	require.Equal(t, 2, b.Len())
	require.Equal(t, 3, clone.Len())
}

func TestBlockOptimizePicksSmallestRepresentation(t *testing.T) {
	t.Parallel()

	sparse := newBlock()
	sparse.Insert(1)
	sparse.Insert(1000)
	sparse.Optimize()
	require.Equal(t, kindArray, sparse.kind, "two isolated keys encode smaller as an array")

	contiguous := newBlock()
	for k := uint16(0); k < 5000; k++ {
		contiguous.Insert(k)
	}
	contiguous.Optimize()
	require.Equal(t, kindRun, contiguous.kind, "one long run beats both array and bitmap encoding")
}

func TestBlockOptimizeIsNoopOnEmptyBlock(t *testing.T) {
	t.Parallel()

	b := newBlock()
	b.Optimize()
	require.Equal(t, kindArray, b.kind)
	require.Equal(t, 0, b.Len())
}

func collectBlock(b *Block) []uint16 {
	var out []uint16
	b.Iterate(func(k uint16) bool {
		out = append(out, k)
		return true
	})

	return out
}

func TestBlockSetOpsAgreeAcrossRepresentations(t *testing.T) {
	t.Parallel()

	buildArray := func(keys ...uint16) *Block {
		b := newBlock()
		for _, k := range keys {
			b.Insert(k)
		}

		return b
	}

	buildRun := func(keys ...uint16) *Block {
		b := buildArray(keys...)
		b.Optimize()

		return b
	}

	left := []uint16{1, 2, 3, 4, 5, 100}
	right := []uint16{3, 4, 5, 6, 7, 200}

	wantUnion := []uint16{1, 2, 3, 4, 5, 6, 7, 100, 200}
	wantInter := []uint16{3, 4, 5}
	wantDiff := []uint16{1, 2, 100}
	wantSymdiff := []uint16{1, 2, 6, 7, 100, 200}

	for _, tc := range []struct {
		name string
		a, b *Block
	}{
		{"array-array", buildArray(left...), buildArray(right...)},
		{"run-run", buildRun(left...), buildRun(right...)},
		{"array-run", buildArray(left...), buildRun(right...)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, wantUnion, collectBlock(blockOp(opUnion, tc.a, tc.b)))
			require.Equal(t, wantInter, collectBlock(blockOp(opIntersection, tc.a, tc.b)))
			require.Equal(t, wantDiff, collectBlock(blockOp(opDifference, tc.a, tc.b)))
			require.Equal(t, wantSymdiff, collectBlock(blockOp(opSymmetricDifference, tc.a, tc.b)))
		})
	}
}

// rangeSlice returns lo..hi inclusive, ascending.
func rangeSlice(lo, hi uint16) []uint16 {
	out := make([]uint16, 0, int(hi)-int(lo)+1)
	for k := lo; ; k++ {
		out = append(out, k)

		if k == hi {
			break
		}
	}

	return out
}

func TestBlockSetOpsWithBitmapOperands(t *testing.T) {
	t.Parallel()

	buildArray := func(keys ...uint16) *Block {
		b := newBlock()
		for _, k := range keys {
			b.Insert(k)
		}

		return b
	}

	buildRun := func(keys ...uint16) *Block {
		b := buildArray(keys...)
		b.Optimize()

		return b
	}

	// big has 5002 keys, well past arrayThreshold, so building it via plain
	// Insert calls promotes it to a Bitmap block exactly the way ordinary
	// mutation would in production.
	bigKeys := append(rangeSlice(0, 4999), 10000, 10001)
	big := buildArray(bigKeys...)
	require.Equal(t, kindBitmap, big.kind, "5002 keys must promote past arrayThreshold")

	// small sits entirely inside big's dense range except for one outlier
	// (6000), giving both a partial overlap and a difference in each
	// direction to exercise.
	smallKeys := []uint16{3, 4, 5, 6, 7, 6000}

	t.Run("bitmap-array", func(t *testing.T) {
		t.Parallel()

		small := buildArray(smallKeys...)
		require.Equal(t, kindArray, small.kind)

		require.Equal(t, append(rangeSlice(0, 4999), 6000, 10000, 10001),
			collectBlock(blockOp(opUnion, big, small)))
		require.Equal(t, []uint16{3, 4, 5, 6, 7},
			collectBlock(blockOp(opIntersection, big, small)))
		require.Equal(t, append(append(rangeSlice(0, 2), rangeSlice(8, 4999)...), 10000, 10001),
			collectBlock(blockOp(opDifference, big, small)), "big \\ small")
		require.Equal(t, []uint16{6000},
			collectBlock(blockOp(opDifference, small, big)), "small \\ big")
		require.Equal(t,
			append(append(rangeSlice(0, 2), rangeSlice(8, 4999)...), 6000, 10000, 10001),
			collectBlock(blockOp(opSymmetricDifference, big, small)))
	})

	t.Run("array-bitmap", func(t *testing.T) {
		t.Parallel()

		small := buildArray(smallKeys...)

		// Same pairing, operands swapped: checks the dispatch table's other
		// cell and that a non-commutative op (difference) still orients on
		// self, not on which operand happens to be the Bitmap.
		require.Equal(t, append(rangeSlice(0, 4999), 6000, 10000, 10001),
			collectBlock(blockOp(opUnion, small, big)))
		require.Equal(t, []uint16{3, 4, 5, 6, 7},
			collectBlock(blockOp(opIntersection, small, big)))
		require.Equal(t, []uint16{6000},
			collectBlock(blockOp(opDifference, small, big)))
		require.Equal(t, append(append(rangeSlice(0, 2), rangeSlice(8, 4999)...), 10000, 10001),
			collectBlock(blockOp(opDifference, big, small)))
	})

	t.Run("bitmap-run", func(t *testing.T) {
		t.Parallel()

		run := buildRun(smallKeys...)
		require.Equal(t, kindRun, run.kind, "one 5-key run plus one isolated key encodes smaller as a run")

		require.Equal(t, append(rangeSlice(0, 4999), 6000, 10000, 10001),
			collectBlock(blockOp(opUnion, big, run)))
		require.Equal(t, []uint16{3, 4, 5, 6, 7},
			collectBlock(blockOp(opIntersection, big, run)))
		require.Equal(t, append(append(rangeSlice(0, 2), rangeSlice(8, 4999)...), 10000, 10001),
			collectBlock(blockOp(opDifference, big, run)))
		require.Equal(t,
			append(append(rangeSlice(0, 2), rangeSlice(8, 4999)...), 6000, 10000, 10001),
			collectBlock(blockOp(opSymmetricDifference, big, run)))
	})

	t.Run("bitmap-bitmap", func(t *testing.T) {
		t.Parallel()

		leftBig := buildArray(append(rangeSlice(0, 4999), 10000, 10001)...)
		rightBig := buildArray(append(rangeSlice(2500, 7499), 10001, 10002)...)
		require.Equal(t, kindBitmap, leftBig.kind)
		require.Equal(t, kindBitmap, rightBig.kind)

		require.Equal(t, append(rangeSlice(0, 7499), 10000, 10001, 10002),
			collectBlock(blockOp(opUnion, leftBig, rightBig)))
		require.Equal(t, append(rangeSlice(2500, 4999), 10001),
			collectBlock(blockOp(opIntersection, leftBig, rightBig)))
		require.Equal(t, append(rangeSlice(0, 2499), 10000),
			collectBlock(blockOp(opDifference, leftBig, rightBig)))
		require.Equal(t,
			append(append(rangeSlice(0, 2499), rangeSlice(5000, 7499)...), 10000, 10002),
			collectBlock(blockOp(opSymmetricDifference, leftBig, rightBig)))
	})
}

func TestBlockInPlaceSetOps(t *testing.T) {
	t.Parallel()

	a := newBlock()
	a.Insert(1)
	a.Insert(2)

	b := newBlock()
	b.Insert(2)
	b.Insert(3)

	a.UnionWith(b)
	require.Equal(t, []uint16{1, 2, 3}, collectBlock(a))
}
