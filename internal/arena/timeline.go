package arena

import (
	"fmt"
	"sort"

	"github.com/google/btree"
)

// liveSpan is one buffer's byte range together with the last execution step
// it stays live for, tracked while the sweep in verifyDisjoint below walks
// buffers in ascending start-time order.
type liveSpan struct {
	offset Range
	last   int
	idx    int
}

func byOffsetLess(a, b liveSpan) bool {
	if a.offset.Start != b.offset.Start {
		return a.offset.Start < b.offset.Start
	}
	return a.idx < b.idx
}

func byExpiryLess(a, b liveSpan) bool {
	if a.last != b.last {
		return a.last < b.last
	}
	return a.idx < b.idx
}

// verifyDisjoint checks that no two buffers whose live intervals
// [first[i], last[i]] overlap were placed into overlapping byte ranges. It
// is a sweep over buffers in ascending start-time order: a byOffset index
// answers "does anything currently live collide with this buffer's bytes",
// and a byExpiry index lets already-finished buffers be dropped from the
// live set before the next one is checked, so two buffers with disjoint
// lifetimes are free to share the same bytes.
func verifyDisjoint(spans []Range, firsts, lasts []int) error {
	order := make([]int, len(spans))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return firsts[order[i]] < firsts[order[j]] })

	live := btree.NewG[liveSpan](32, byOffsetLess)
	expiry := btree.NewG[liveSpan](32, byExpiryLess)

	for _, i := range order {
		first, last := firsts[i], lasts[i]

		for {
			oldest, ok := expiry.Min()
			if !ok || oldest.last >= first {
				break
			}
			expiry.Delete(oldest)
			live.Delete(oldest)
		}

		span := liveSpan{offset: spans[i], last: last, idx: i}
		if other, ok := findLiveOverlap(live, span); ok {
			return fmt.Errorf("%w: buffer %d %v (live [%d,%d]) collides with buffer %d %v (live until %d)",
				ErrConflictingAllocation, i, span.offset, first, last, other.idx, other.offset, other.last)
		}

		live.ReplaceOrInsert(span)
		expiry.ReplaceOrInsert(span)
	}
	return nil
}

// findLiveOverlap returns the currently live span whose bytes overlap
// span's, if any. Only the immediate predecessor and successor by offset
// need checking: the live set is itself always non-overlapping, so nothing
// further away can reach into span's range.
func findLiveOverlap(live *btree.BTreeG[liveSpan], span liveSpan) (liveSpan, bool) {
	var found liveSpan
	hit := false

	live.AscendGreaterOrEqual(liveSpan{offset: Range{Start: span.offset.Start}}, func(item liveSpan) bool {
		if item.offset.Start >= span.offset.End {
			return false
		}
		found, hit = item, true
		return false
	})
	if hit {
		return found, true
	}

	live.DescendLessOrEqual(liveSpan{offset: Range{Start: span.offset.Start}}, func(item liveSpan) bool {
		if item.offset.End <= span.offset.Start {
			return false
		}
		found, hit = item, true
		return false
	})
	return found, hit
}
