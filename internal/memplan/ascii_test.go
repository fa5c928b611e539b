package memplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintMemoryPlan_LineWidthAndCount(t *testing.T) {
	sink := &CollectingSink{}
	p := NewPlanner(WithSink(sink))
	_, _ = p.AddBuffer(100, 0, 2)
	_, _ = p.AddBuffer(40, 1, 3)

	p.PrintMemoryPlan()

	require.Len(t, sink.Lines, 4) // t = 0..3
	for _, line := range sink.Lines {
		assert.Len(t, line, lineWidth)
	}
}

func TestPrintMemoryPlan_NoCollisionMarkForTimeDisjointBuffers(t *testing.T) {
	sink := &CollectingSink{}
	p := NewPlanner(WithSink(sink))
	// Two temporally-disjoint buffers that the heuristic places at the
	// same offset (a genuine spatial collision only because they never
	// coexist in time): PrintMemoryPlan renders each one's own columns
	// without a '!', since the two are never live on the same line.
	_, _ = p.AddBuffer(40, 0, 1)
	_, _ = p.AddBuffer(40, 2, 3)

	p.PrintMemoryPlan()
	require.Len(t, sink.Lines, 4)
	for _, line := range sink.Lines {
		assert.NotContains(t, line, "!")
	}
}

func TestPrintMemoryPlan_EmptyPlannerPrintsOneBlankLine(t *testing.T) {
	sink := &CollectingSink{}
	p := NewPlanner(WithSink(sink))

	p.PrintMemoryPlan()

	require.Len(t, sink.Lines, 1)
	for _, c := range sink.Lines[0] {
		assert.Equal(t, byte('.'), byte(c))
	}
}
