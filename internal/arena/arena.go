package arena

import (
	"fmt"

	"github.com/nnarena/memplanner/internal/memplan"
)

// Plan is the minimal surface Realize needs from a memplan.Planner: enough
// to walk every buffer's placement and lifetime without importing memplan's
// Sink or option machinery into this package.
type Plan interface {
	GetBufferCount() int
	GetOffsetForBuffer(index int) (int, error)
	GetBufferLifetime(index int) (first, last int, err error)
	GetMaximumMemorySize() int
}

var _ Plan = (*memplan.Planner)(nil)

// Arena is a concrete byte-addressable backing store sized and carved up
// according to a finished plan. Realize double-checks the plan's own
// invariant — no two buffers whose live intervals overlap share bytes, while
// buffers with disjoint lifetimes are free to share the same bytes — by
// replaying every buffer's (range, lifetime) pair through verifyDisjoint.
type Arena struct {
	data  []byte
	spans []Range
}

// Realize allocates a single contiguous backing array sized to the plan's
// high-water mark and validates every buffer's placement against its
// lifetime, using sizes indexed the same way the buffers were added to plan
// (Planner does not expose per-buffer sizes after AddBuffer). It returns
// ErrConflictingAllocation if two buffers with overlapping lifetimes claim
// overlapping bytes, which would mean the plan itself is inconsistent.
func Realize(plan Plan, sizes []int) (*Arena, error) {
	count := plan.GetBufferCount()
	if len(sizes) != count {
		return nil, fmt.Errorf("arena: got %d sizes for a plan with %d buffers", len(sizes), count)
	}

	spans := make([]Range, count)
	firsts := make([]int, count)
	lasts := make([]int, count)

	for i, size := range sizes {
		offset, err := plan.GetOffsetForBuffer(i)
		if err != nil {
			return nil, fmt.Errorf("arena: reading offset for buffer %d: %w", i, err)
		}
		first, last, err := plan.GetBufferLifetime(i)
		if err != nil {
			return nil, fmt.Errorf("arena: reading lifetime for buffer %d: %w", i, err)
		}
		spans[i] = Range{Start: uint64(offset), End: uint64(offset + size)}
		firsts[i], lasts[i] = first, last
	}

	if err := verifyDisjoint(spans, firsts, lasts); err != nil {
		return nil, fmt.Errorf("arena: %w", err)
	}

	total := plan.GetMaximumMemorySize()
	return &Arena{
		data:  make([]byte, total),
		spans: spans,
	}, nil
}

// Bytes returns the slice of the backing array assigned to bufferIndex.
func (a *Arena) Bytes(bufferIndex int) []byte {
	r := a.spans[bufferIndex]
	return a.data[r.Start:r.End]
}

// Size returns the total size of the arena's backing array.
func (a *Arena) Size() int {
	return len(a.data)
}
