package memplan

// noNext marks a listEntry with no successor.
const noNext = -1

// listEntry is one node of the offset-ordered placement list.
type listEntry struct {
	offset            int
	requirementsIndex int
	next              int // index into placementList.pool, or noNext
}

// placementList is the singly-linked, offset-ordered list of placed
// buffers, threaded through a fixed-capacity pool of listEntry nodes. Node
// index 0 is always the list head once any buffer has been placed.
// Recomputed from scratch on every layout pass: reset rewinds a bump
// cursor into the pool instead of freeing nodes individually, so a
// capacity-sized pool is reused across passes without further allocation.
type placementList struct {
	pool []listEntry
}

// reset empties the list, keeping the pool's backing array when it already
// has room for capacityHint nodes.
func (l *placementList) reset(capacityHint int) {
	if cap(l.pool) < capacityHint {
		l.pool = make([]listEntry, 0, capacityHint)
		return
	}
	l.pool = l.pool[:0]
}

// alloc bump-allocates a new node carrying (offset, requirementsIndex) and
// returns its pool index. The caller is responsible for linking it in.
func (l *placementList) alloc(offset, requirementsIndex int) int {
	idx := len(l.pool)
	l.pool = append(l.pool, listEntry{offset: offset, requirementsIndex: requirementsIndex, next: noNext})
	return idx
}

// findNextConflicting walks forward from the node at index from and returns
// the first successor whose requirements overlap [first, last], or ok=false
// if no such successor exists. The starting node itself is never considered.
func (l *placementList) findNextConflicting(from, first, last int, reqs []BufferRequirements) (int, bool) {
	cur := l.pool[from].next
	for cur != noNext {
		entry := l.pool[cur]
		if reqs[entry.requirementsIndex].overlaps(first, last) {
			return cur, true
		}
		cur = entry.next
	}
	return 0, false
}

// insertInOffsetOrder allocates a node for (offset, requirementsIndex) and
// links it into the list immediately before the first existing node whose
// offset is strictly greater, or at the tail if none is. Ties (equal
// offsets) place the new node after existing entries with the same offset.
func (l *placementList) insertInOffsetOrder(offset, requirementsIndex int) int {
	newIdx := l.alloc(offset, requirementsIndex)
	if newIdx == 0 {
		// The list was empty: this node is now the head with no successor.
		return newIdx
	}

	current := 0
	for {
		nextIdx := l.pool[current].next
		if nextIdx == noNext {
			l.pool[current].next = newIdx
			break
		}
		if l.pool[nextIdx].offset > offset {
			l.pool[newIdx].next = nextIdx
			l.pool[current].next = newIdx
			break
		}
		current = nextIdx
	}
	return newIdx
}
