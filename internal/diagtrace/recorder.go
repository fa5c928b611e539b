// Package diagtrace implements memplan.Sink, fanning every planner report
// out to a combination of stdout, an in-memory buffer for test assertions,
// and a durable zstd-compressed record for later offline review.
package diagtrace

import (
	"fmt"
	"io"

	"github.com/nnarena/memplanner/internal/diagtrace/store"
	"github.com/nnarena/memplanner/internal/ioutil"
)

// Recorder implements memplan.Sink by writing every reported line to a
// ParallelMultiWriter fan-out, and separately keeping the concatenated
// output available for a caller who wants to persist or inspect it.
type Recorder struct {
	fanout io.WriteCloser
	handle store.TraceHandle
	writer io.WriteCloser
}

// NewRecorder builds a Recorder that writes to extra (e.g. os.Stdout) and
// also persists every line into a trace record produced by factory.
func NewRecorder(factory store.TraceFactory, extra ...io.Writer) (*Recorder, error) {
	handle, err := factory.New()
	if err != nil {
		return nil, fmt.Errorf("diagtrace: create trace handle: %w", err)
	}
	handleWriter, err := handle.GetWriter()
	if err != nil {
		return nil, fmt.Errorf("diagtrace: open trace writer: %w", err)
	}

	writers := append([]io.Writer{handleWriter}, extra...)
	return &Recorder{
		fanout: ioutil.ParallelMultiWriter(writers...),
		handle: handle,
		writer: handleWriter,
	}, nil
}

// Reportf implements memplan.Sink.
func (r *Recorder) Reportf(format string, args ...any) {
	line := fmt.Sprintf(format, args...) + "\n"
	// Reportf has no error return in memplan.Sink; a broken diagnostic
	// backend must not fail the plan it's describing.
	_, _ = r.fanout.Write([]byte(line))
}

// Close flushes and closes the recorder's fan-out and underlying trace handle.
func (r *Recorder) Close() error {
	err := r.fanout.Close()
	if cerr := r.writer.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// Read returns everything written to the recorder's persisted trace so
// far. It must be called after Close.
func (r *Recorder) Read() ([]byte, error) {
	reader, err := r.handle.GetReader()
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

// Name identifies the underlying trace handle, for logging which trace a
// diagnostic message came from.
func (r *Recorder) Name() string {
	return r.handle.Name()
}
