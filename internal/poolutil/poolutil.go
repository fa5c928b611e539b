// Package poolutil provides a small generic object pool that planbatch uses
// to hand memplan.Planner instances to the many independent jobs a run lays
// out concurrently. Whether an item's internal storage is reused depends on
// the reset function: planbatch's rebuilds every Planner on Put.
package poolutil

// Pool hands out items of type T, reusing ones previously returned via Put
// instead of always calling New. It is not a sync.Pool: capacity is fixed
// at construction and Get never blocks, falling back to New once the pool
// is drained.
type Pool[T any] struct {
	new   func() T
	reset func(T) T
	pool  chan T
}

// NewPool builds a Pool of the given capacity. new constructs a fresh item
// when the pool is empty; reset, if non-nil, is applied to an item before
// it re-enters the pool via Put (e.g. rebuilding a Planner rather than
// trying to clear its slices in place).
func NewPool[T any](new func() T, reset func(T) T, capacity int) *Pool[T] {
	return &Pool[T]{
		new:   new,
		reset: reset,
		pool:  make(chan T, capacity),
	}
}

// Get returns a pooled item, or a freshly constructed one if the pool is
// currently empty.
func (p *Pool[T]) Get() T {
	select {
	case item := <-p.pool:
		return item
	default:
		return p.new()
	}
}

// Put returns item to the pool after applying reset, if configured. If the
// pool is at capacity, item is dropped rather than blocking the caller.
func (p *Pool[T]) Put(item T) {
	if p.reset != nil {
		item = p.reset(item)
	}
	select {
	case p.pool <- item:
	default:
	}
}
