// Package memplan implements a static memory layout planner for embedded
// neural-network inference. Given a set of buffers, each with a byte size
// and a live interval of execution steps, the Planner assigns each buffer
// a non-negative byte offset into a single contiguous arena such that no
// two buffers whose live intervals overlap occupy overlapping byte ranges.
//
// The placement algorithm is a deterministic greedy heuristic: buffers are
// sorted by descending size, and each is placed into the first
// sufficiently large gap among already-placed, temporally-conflicting
// buffers. It does not guarantee a minimal arena (that is NP-hard in
// general) — only that the layout is valid and reproducible.
package memplan

// DefaultCapacity is the embedded-friendly ceiling on the number of
// buffers a Planner constructed without WithCapacity/WithUnboundedCapacity
// will accept.
const DefaultCapacity = 1024

// Planner is a single-threaded, single-owner memory layout planner. None of
// its methods are safe to call concurrently on the same instance; callers
// that share a Planner across goroutines must serialize externally (see
// internal/planbatch for an orchestration layer that instead runs many
// independent Planner instances concurrently).
type Planner struct {
	capacity  int
	unbounded bool
	sink      Sink

	requirements []BufferRequirements
	offsets      []int
	dirty        bool

	list placementList
}

// Option configures a Planner at construction time.
type Option func(*Planner)

// WithCapacity sets the maximum number of buffers the Planner will accept,
// overriding DefaultCapacity. AddBuffer fails with ErrCapacityExceeded once
// this many buffers have been added.
func WithCapacity(capacity int) Option {
	return func(p *Planner) {
		p.capacity = capacity
		p.unbounded = false
	}
}

// WithUnboundedCapacity removes the capacity check entirely; AddBuffer
// never fails due to capacity. Use this for targets that size their own
// buffer store dynamically instead of over a fixed-capacity array.
func WithUnboundedCapacity() Option {
	return func(p *Planner) {
		p.unbounded = true
	}
}

// WithSink sets the diagnostic collaborator the Planner reports
// capacity-exceeded, out-of-range, and ASCII-plan messages to. Defaults to
// NoopSink.
func WithSink(sink Sink) Option {
	return func(p *Planner) {
		p.sink = sink
	}
}

// NewPlanner constructs an empty Planner with DefaultCapacity and a NoopSink
// unless overridden by opts.
func NewPlanner(opts ...Option) *Planner {
	p := &Planner{
		capacity: DefaultCapacity,
		sink:     NoopSink{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AddBuffer appends one buffer's requirements and marks the plan dirty.
// Returns the buffer's id (its insertion index) and ErrCapacityExceeded if
// the store is already at capacity, in which case planner state is
// unchanged. AddBuffer does not validate size >= 0 or first <= last;
// callers are expected to supply well-formed inputs.
func (p *Planner) AddBuffer(size, first, last int) (int, error) {
	if !p.unbounded && len(p.requirements) >= p.capacity {
		err := capacityExceededf(p.capacity)
		p.sink.Reportf("%s", err.Error())
		return -1, err
	}

	id := len(p.requirements)
	p.requirements = append(p.requirements, BufferRequirements{Size: size, First: first, Last: last})
	p.offsets = append(p.offsets, 0)
	p.dirty = true
	return id, nil
}

// GetBufferCount returns the number of buffers added so far.
func (p *Planner) GetBufferCount() int {
	return len(p.requirements)
}

// GetOffsetForBuffer triggers layout if the plan is stale and returns the
// byte offset assigned to the buffer at index. Returns ErrIndexOutOfRange
// if index is outside [0, GetBufferCount()).
func (p *Planner) GetOffsetForBuffer(index int) (int, error) {
	p.layoutIfNeeded()

	if index < 0 || index >= len(p.requirements) {
		err := indexOutOfRangef(index, len(p.requirements))
		p.sink.Reportf("%s", err.Error())
		return 0, err
	}
	return p.offsets[index], nil
}

// GetBufferLifetime returns the [first, last] execution-step interval the
// buffer at index is live for, as given to AddBuffer. Returns
// ErrIndexOutOfRange if index is outside [0, GetBufferCount()).
func (p *Planner) GetBufferLifetime(index int) (first, last int, err error) {
	if index < 0 || index >= len(p.requirements) {
		err := indexOutOfRangef(index, len(p.requirements))
		p.sink.Reportf("%s", err.Error())
		return 0, 0, err
	}
	req := p.requirements[index]
	return req.First, req.Last, nil
}

// GetMaximumMemorySize triggers layout if the plan is stale and returns the
// arena high-water mark: the maximum of (offset + size) over all placed
// buffers, or 0 if no buffers have been added.
func (p *Planner) GetMaximumMemorySize() int {
	p.layoutIfNeeded()

	if len(p.requirements) == 0 {
		return 0
	}

	maxSize := 0
	cur := 0
	for {
		entry := p.list.pool[cur]
		size := entry.offset + p.requirements[entry.requirementsIndex].Size
		if size > maxSize {
			maxSize = size
		}
		if entry.next == noNext {
			break
		}
		cur = entry.next
	}
	return maxSize
}

func (p *Planner) layoutIfNeeded() {
	if !p.dirty {
		return
	}
	p.layout()
	p.dirty = false
}

// layout is the greedy placement loop: sort buffers by descending size,
// seed the offset-ordered list with the largest buffer at offset 0, then
// for every remaining buffer (in descending-size order) scan forward
// through its temporally-conflicting predecessors for the first gap it
// fits into.
func (p *Planner) layout() {
	count := len(p.requirements)
	p.list.reset(count)
	if count == 0 {
		return
	}

	order := sizeOrder(p.requirements)

	// Seed: the largest buffer goes at offset 0, as the sole list node.
	firstID := order[0]
	p.list.alloc(0, firstID)
	p.offsets[firstID] = 0

	for i := 1; i < count; i++ {
		id := order[i]
		req := p.requirements[id]

		candidate, hasCandidate := 0, true
		if !p.requirements[p.list.pool[0].requirementsIndex].overlaps(req.First, req.Last) {
			candidate, hasCandidate = p.list.findNextConflicting(0, req.First, req.Last, p.requirements)
		}

		// end is the furthest byte reached by any conflicting buffer scanned so
		// far: two of them need not conflict with each other, so a later one in
		// offset order can end before an earlier one does.
		end := 0
		for hasCandidate {
			candEntry := p.list.pool[candidate]
			if candEnd := candEntry.offset + p.requirements[candEntry.requirementsIndex].Size; candEnd > end {
				end = candEnd
			}
			next, hasNext := p.list.findNextConflicting(candidate, req.First, req.Last, p.requirements)
			if !hasNext {
				break
			}
			gap := p.list.pool[next].offset - end
			if gap >= req.Size {
				break
			}
			candidate = next
		}

		// 0 when nothing conflicts.
		offset := end

		p.offsets[id] = offset
		p.list.insertInOffsetOrder(offset, id)
	}
}
