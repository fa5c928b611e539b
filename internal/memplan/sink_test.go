package memplan

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriterSink_OneLinePerReportf(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)
	sink.Reportf("hello %d", 1)
	sink.Reportf("world")

	assert.Equal(t, "hello 1\nworld\n", buf.String())
}

func TestCollectingSink_RecordsInOrder(t *testing.T) {
	sink := &CollectingSink{}
	sink.Reportf("a")
	sink.Reportf("b %d", 2)

	assert.Equal(t, []string{"a", "b 2"}, sink.Lines)
}

func TestNoopSink_DoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		NoopSink{}.Reportf("anything %d", 1)
	})
}
