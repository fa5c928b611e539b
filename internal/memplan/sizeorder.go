package memplan

import "sort"

// sizeOrder returns buffer ids 0..len(reqs)-1 ordered by descending size,
// with a stable tie-break on original insertion order: buffers of equal
// size keep the relative order they were added in, which keeps the
// resulting layout deterministic across runs given the same input order.
func sizeOrder(reqs []BufferRequirements) []int {
	ids := make([]int, len(reqs))
	for i := range ids {
		ids[i] = i
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return reqs[ids[i]].Size > reqs[ids[j]].Size
	})
	return ids
}
