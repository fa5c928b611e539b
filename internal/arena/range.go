package arena

import "fmt"

// Range is a half-open byte range [Start, End) within an Arena's backing
// array.
type Range struct {
	Start uint64
	End   uint64
}

func (r Range) Size() uint64 {
	return r.End - r.Start
}

func (r Range) Overlaps(other Range) bool {
	return r.Start < r.End && other.Start < other.End &&
		r.Start < other.End && other.Start < r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}
