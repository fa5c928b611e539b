package ioutil

import (
	"bufio"
	"io"
)

// DefaultTraceBufferSize is how much a diagnostic trace writer buffers
// before flushing to its underlying sink (a file, a pipe to another
// fan-out leg, etc). Chosen to absorb a burst of Planner.Reportf calls
// without a syscall per line.
const DefaultTraceBufferSize = 64 * 1024

// WithBufferedWrites wraps w so writes are batched into
// DefaultTraceBufferSize chunks. Close flushes the buffer; it does not
// close w itself.
func WithBufferedWrites(w io.Writer) io.WriteCloser {
	bufw := bufio.NewWriterSize(w, DefaultTraceBufferSize)
	return WriterWithCloser(bufw, CloserFunc(bufw.Flush))
}
