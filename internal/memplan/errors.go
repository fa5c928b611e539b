package memplan

import "fmt"

// PlannerError is the typed error surfaced by Planner operations that fail:
// a plain struct carrying a message, matched with errors.Is by comparing
// the (stable) message text.
type PlannerError struct {
	Msg string
}

func (e *PlannerError) Error() string {
	return e.Msg
}

func (e *PlannerError) Is(target error) bool {
	if targetErr, ok := target.(*PlannerError); ok {
		return e.Msg == targetErr.Msg
	}
	return false
}

var (
	// ErrCapacityExceeded is returned by AddBuffer when the requirements
	// store is full. The add is rejected; planner state is unchanged.
	ErrCapacityExceeded = &PlannerError{"no capacity available to add another buffer"}

	// ErrIndexOutOfRange is returned by GetOffsetForBuffer when the given
	// index is outside [0, GetBufferCount()). The output offset is not written.
	ErrIndexOutOfRange = &PlannerError{"buffer index is outside the valid range"}
)

func capacityExceededf(capacity int) error {
	return fmt.Errorf("%w: capacity is %d", ErrCapacityExceeded, capacity)
}

func indexOutOfRangef(index, count int) error {
	return fmt.Errorf("%w: index %d is outside range [0, %d)", ErrIndexOutOfRange, index, count)
}
