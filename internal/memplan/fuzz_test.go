package memplan

import (
	"testing"
)

// FuzzNoTemporalSpatialOverlap feeds arbitrary (size, first, last) triples
// into a Planner and checks the core placement invariant: any two buffers
// whose live intervals overlap must get disjoint byte ranges.
func FuzzNoTemporalSpatialOverlap(f *testing.F) {
	f.Add(100, 0, 5, 40, 0, 5)
	f.Add(100, 0, 9, 40, 0, 9)
	f.Add(1, 0, 0, 1, 0, 0)
	f.Add(0, 0, 0, 0, 0, 0)

	f.Fuzz(func(t *testing.T, size1, first1, last1, size2, first2, last2 int) {
		// Constrain to well-formed, boundedly-sized inputs: the contract
		// assumes size >= 0 and first <= last.
		size1, size2 = boundSize(size1), boundSize(size2)
		first1, last1 = orderPair(boundTime(first1), boundTime(last1))
		first2, last2 = orderPair(boundTime(first2), boundTime(last2))

		p := NewPlanner()
		_, err := p.AddBuffer(size1, first1, last1)
		if err != nil {
			t.Fatalf("unexpected capacity error: %v", err)
		}
		_, err = p.AddBuffer(size2, first2, last2)
		if err != nil {
			t.Fatalf("unexpected capacity error: %v", err)
		}

		off1, err := p.GetOffsetForBuffer(0)
		if err != nil {
			t.Fatalf("unexpected out-of-range error: %v", err)
		}
		off2, err := p.GetOffsetForBuffer(1)
		if err != nil {
			t.Fatalf("unexpected out-of-range error: %v", err)
		}

		r1 := BufferRequirements{Size: size1, First: first1, Last: last1}
		r2 := BufferRequirements{Size: size2, First: first2, Last: last2}
		if !r1.overlaps(first2, last2) {
			return
		}

		s1, e1 := off1, off1+size1
		s2, e2 := off2, off2+size2
		if e1 > s2 && e2 > s1 {
			t.Fatalf("overlapping-in-time buffers got overlapping ranges: [%d,%d) vs [%d,%d) (reqs %+v, %+v)", s1, e1, s2, e2, r1, r2)
		}
	})
}

func boundSize(v int) int {
	if v < 0 {
		v = -v
	}
	return v % 10000
}

func boundTime(v int) int {
	if v < 0 {
		v = -v
	}
	return v % 1000
}

func orderPair(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
