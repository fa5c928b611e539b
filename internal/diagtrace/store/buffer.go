// Package store provides durable backing for planner diagnostic traces:
// each TraceHandle is one append-then-read record (an in-memory buffer, a
// file on disk, or either wrapped in zstd compression), and a
// TraceFactoryFactory is how internal/diagtrace picks a backend without
// internal/diagtrace itself knowing which one it got.
package store

import (
	"io"
	"os"
	"path/filepath"
)

// TraceHandle is a single diagnostic trace record that can be written once
// and read back any number of times.
type TraceHandle interface {
	GetReader() (io.ReadCloser, error)
	GetWriter() (io.WriteCloser, error)
	Name() string
}

// TraceFactory mints TraceHandles sharing a backend and releases whatever
// resources that backend holds (temp files, directories) when done.
type TraceFactory interface {
	New() (TraceHandle, error)
	Release() error
}

// RawTraceHandle is implemented by TraceHandle backends that are directly
// writable without a separate GetWriter call, such as inMemoryTrace. The
// compressed wrapper does not use it; it always writes through GetWriter.
type RawTraceHandle interface {
	io.Writer
	io.Closer
	Name() string
}

// TraceFactoryFactory defers backend selection (in-memory vs. on-disk,
// compressed or not) to call time, so Recorder construction doesn't need
// to know which storage a caller wants until it actually runs.
type TraceFactoryFactory func() (TraceFactory, error)

// NewCompressedInMemoryTraceFactoryFactory backs diagnostic trace records
// with in-memory, zstd-compressed buffers. Used by tests and short-lived
// runs that never need the trace to outlive the process.
func NewCompressedInMemoryTraceFactoryFactory() TraceFactoryFactory {
	return func() (TraceFactory, error) {
		return NewCompressedTraceFactory(NewInMemoryTraceFactory()), nil
	}
}

// NewCompressedDirTraceFactoryFactory backs diagnostic trace records with
// zstd-compressed files in dir, for offline review of a planner's output
// after the process that produced it has exited.
func NewCompressedDirTraceFactoryFactory(dir string) TraceFactoryFactory {
	return func() (TraceFactory, error) {
		if dir == "" {
			dir = filepath.Join(os.TempDir(), "memplanner-diagtrace")
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		dirFactory, err := NewDirTraceFactory(dir)
		if err != nil {
			return nil, err
		}
		return NewCompressedTraceFactory(dirFactory), nil
	}
}
