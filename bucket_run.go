package roaring

import "sort"

// runSpan is an inclusive [start, end] range of consecutive set bits.
type runSpan struct {
	start, end uint16
}

func (s runSpan) length() int {
	return int(s.end) - int(s.start) + 1
}

// runBucket is a sorted, non-overlapping, non-adjacent list of runSpans.
// Two runs [a,b] and [c,d] with a<=b<c<=d must satisfy c > b+1, i.e. they
// are never touching: a single insert/remove keeps every pair of
// neighbors at least one bit apart.
type runBucket struct {
	runs   []runSpan
	weight int
}

func newRunBucket() *runBucket {
	return &runBucket{}
}

func (r *runBucket) len() int {
	return r.weight
}

func (r *runBucket) numRuns() int {
	return len(r.runs)
}

// runIndex returns the index of the run containing k (found=true), or the
// index of the first run whose start is > k (found=false; the insertion
// point).
func (r *runBucket) runIndex(k uint16) (idx int, found bool) {
	i := sort.Search(len(r.runs), func(i int) bool { return r.runs[i].end >= k })
	if i < len(r.runs) && r.runs[i].start <= k && k <= r.runs[i].end {
		return i, true
	}

	return i, false
}

func (r *runBucket) contains(k uint16) bool {
	_, ok := r.runIndex(k)
	return ok
}

// insert reports whether k was newly added. Locates k via binary search;
// if it already falls inside a run, it's a no-op; otherwise a singleton
// run is created and merged with whichever neighbor(s) become adjacent.
func (r *runBucket) insert(k uint16) bool {
	i, found := r.runIndex(k)
	if found {
		return false
	}

	// Try extending the run immediately before the insertion point.
	mergedLeft := i > 0 && r.runs[i-1].end+1 == k
	// Try extending the run immediately after (only meaningful if k is not
	// the max uint16, which would overflow k+1).
	mergedRight := i < len(r.runs) && k != 0xFFFF && k+1 == r.runs[i].start

	switch {
	case mergedLeft && mergedRight:
		r.runs[i-1].end = r.runs[i].end
		r.runs = append(r.runs[:i], r.runs[i+1:]...)
	case mergedLeft:
		r.runs[i-1].end = k
	case mergedRight:
		r.runs[i].start = k
	default:
		r.runs = append(r.runs, runSpan{})
		copy(r.runs[i+1:], r.runs[i:])
		r.runs[i] = runSpan{start: k, end: k}
	}

	r.weight++

	return true
}

// remove reports whether k was present. May split one run into two.
func (r *runBucket) remove(k uint16) bool {
	i, found := r.runIndex(k)
	if !found {
		return false
	}

	run := r.runs[i]

	switch {
	case run.start == k && run.end == k:
		r.runs = append(r.runs[:i], r.runs[i+1:]...)
	case run.start == k:
		r.runs[i].start = k + 1
	case run.end == k:
		r.runs[i].end = k - 1
	default:
		left := runSpan{start: run.start, end: k - 1}
		right := runSpan{start: k + 1, end: run.end}
		r.runs = append(r.runs, runSpan{})
		copy(r.runs[i+2:], r.runs[i+1:])
		r.runs[i] = left
		r.runs[i+1] = right
	}

	r.weight--

	return true
}

func (r *runBucket) clone() *runBucket {
	out := &runBucket{runs: make([]runSpan, len(r.runs)), weight: r.weight}
	copy(out.runs, r.runs)

	return out
}

// iterate flattens the runs into individual ascending keys.
func (r *runBucket) iterate(fn func(uint16) bool) {
	for _, run := range r.runs {
		for v := int(run.start); v <= int(run.end); v++ {
			if !fn(uint16(v)) {
				return
			}
		}
	}
}

// toArray materializes the runs as a sorted arrayBucket.
func (r *runBucket) toArray() *arrayBucket {
	out := &arrayBucket{keys: make([]uint16, 0, r.weight)}
	r.iterate(func(k uint16) bool {
		out.keys = append(out.keys, k)
		return true
	})

	return out
}

// toBitmap materializes the runs as a bitmapBucket.
func (r *runBucket) toBitmap() *bitmapBucket {
	bm := newBitmapBucket()

	for _, run := range r.runs {
		for v := int(run.start); v <= int(run.end); v++ {
			k := uint16(v)
			bm.words[k>>6] |= 1 << (k & 63)
		}
	}

	bm.weight = r.weight

	return bm
}

// runBucketFromArray builds a run-encoded bucket from a sorted arrayBucket,
// coalescing consecutive keys into runs.
func runBucketFromArray(a *arrayBucket) *runBucket {
	out := newRunBucket()

	for _, k := range a.keys {
		if n := len(out.runs); n > 0 && out.runs[n-1].end+1 == k {
			out.runs[n-1].end = k
		} else {
			out.runs = append(out.runs, runSpan{start: k, end: k})
		}
	}

	out.weight = len(a.keys)

	return out
}

// --- Set operations: range-merge algorithms over two sorted, coalesced
// run lists, re-coalescing the output so adjacent output runs never
// touch. ---

func runWeight(runs []runSpan) int {
	n := 0
	for _, r := range runs {
		n += r.length()
	}

	return n
}

func runIntersection(a, b []runSpan) []runSpan {
	out := make([]runSpan, 0, min(len(a), len(b)))

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		start := maxU16(a[i].start, b[j].start)
		end := minU16(a[i].end, b[j].end)

		if start <= end {
			out = append(out, runSpan{start: start, end: end})
		}

		if a[i].end < b[j].end {
			i++
		} else {
			j++
		}
	}

	return out
}

func runUnion(a, b []runSpan) []runSpan {
	merged := mergeSortedRuns(a, b)
	return coalesceRuns(merged)
}

func runDifference(a, b []runSpan) []runSpan {
	out := make([]runSpan, 0, len(a))

	j := 0

	for i := 0; i < len(a); i++ {
		cur := a[i].start

		for cur <= a[i].end {
			// Advance j past ranges in b that end before cur.
			for j < len(b) && b[j].end < cur {
				j++
			}

			if j >= len(b) || b[j].start > a[i].end {
				out = append(out, runSpan{start: cur, end: a[i].end})
				break
			}

			if b[j].start > cur {
				out = append(out, runSpan{start: cur, end: b[j].start - 1})
			}

			if b[j].end == 0xFFFF {
				break
			}

			cur = b[j].end + 1
		}
	}

	return coalesceRuns(out)
}

func runSymmetricDifference(a, b []runSpan) []runSpan {
	inter := runIntersection(a, b)
	union := runUnion(a, b)

	return runDifference(union, inter)
}

// mergeSortedRuns merges two sorted run slices into one sorted (but not
// yet coalesced) slice.
func mergeSortedRuns(a, b []runSpan) []runSpan {
	out := make([]runSpan, 0, len(a)+len(b))

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].start <= b[j].start {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}

	out = append(out, a[i:]...)
	out = append(out, b[j:]...)

	return out
}

// coalesceRuns merges overlapping or adjacent runs in a start-sorted slice.
func coalesceRuns(runs []runSpan) []runSpan {
	if len(runs) == 0 {
		return runs
	}

	out := make([]runSpan, 0, len(runs))
	cur := runs[0]

	for _, r := range runs[1:] {
		if r.start <= cur.end || (cur.end != 0xFFFF && r.start == cur.end+1) {
			if r.end > cur.end {
				cur.end = r.end
			}

			continue
		}

		out = append(out, cur)
		cur = r
	}

	out = append(out, cur)

	return out
}

func maxU16(a, b uint16) uint16 {
	if a > b {
		return a
	}

	return b
}

func minU16(a, b uint16) uint16 {
	if a < b {
		return a
	}

	return b
}
