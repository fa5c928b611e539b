package store

import (
	"bytes"
	"io"
)

type inMemoryTraceFactory struct{}

func NewInMemoryTraceFactory() TraceFactory {
	return &inMemoryTraceFactory{}
}

func (p *inMemoryTraceFactory) New() (TraceHandle, error) {
	return &inMemoryTrace{}, nil
}

func (p *inMemoryTraceFactory) Release() error {
	return nil
}

// inMemoryTrace holds a trace record entirely in a byte slice; never
// outlives the process, so it's what diagtrace reaches for in tests and
// other short-lived runs.
type inMemoryTrace struct {
	data []byte
}

var _ io.WriteCloser = (*inMemoryTrace)(nil)
var _ RawTraceHandle = (*inMemoryTrace)(nil)

func (b *inMemoryTrace) Name() string {
	return "inmemory"
}

func (b *inMemoryTrace) GetReader() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.data)), nil
}

func (b *inMemoryTrace) GetWriter() (io.WriteCloser, error) {
	b.data = b.data[:0]
	return b, nil
}

func (b *inMemoryTrace) Write(p []byte) (n int, err error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

func (b *inMemoryTrace) Close() error {
	return nil
}
