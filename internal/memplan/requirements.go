package memplan

// BufferRequirements records the client-provided size and live interval for
// one buffer. Immutable once added to a Planner; see Planner.AddBuffer.
//
// First and Last are abstract execution-step indices; only their ordering
// and overlap with other buffers' intervals matter to the planner.
type BufferRequirements struct {
	Size  int
	First int
	Last  int
}

// overlaps reports whether this buffer's live interval overlaps [first, last].
func (r BufferRequirements) overlaps(first, last int) bool {
	if r.First > last {
		return false
	}
	if first > r.Last {
		return false
	}
	return true
}
