package memplan

import "fmt"

// Sink is the diagnostic collaborator the Planner writes human-readable
// messages to: capacity-exceeded and out-of-range errors, and one call per
// line of the ASCII memory plan. The Planner takes no ownership of the sink
// and assumes it outlives the Planner. This mirrors the capability-typed
// collaborators used elsewhere in this module (see internal/progress):
// a single narrow method, no lifecycle the Planner has to manage.
type Sink interface {
	Reportf(format string, args ...any)
}

// NoopSink discards every message. Useful as a default when a caller only
// wants the boolean/error return values and has no diagnostic surface.
type NoopSink struct{}

var _ Sink = NoopSink{}

func (NoopSink) Reportf(format string, args ...any) {}

// WriterSink reports each message as one line to an underlying io.Writer.
type WriterSink struct {
	w interface{ Write([]byte) (int, error) }
}

var _ Sink = (*WriterSink)(nil)

// NewWriterSink wraps w so every Reportf call becomes one newline-terminated line.
func NewWriterSink(w interface{ Write([]byte) (int, error) }) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Reportf(format string, args ...any) {
	fmt.Fprintf(s.w, format+"\n", args...)
}

// CollectingSink records every message it receives, in order. Intended for
// tests that want to assert on the exact diagnostics a Planner produced.
type CollectingSink struct {
	Lines []string
}

var _ Sink = (*CollectingSink)(nil)

func (s *CollectingSink) Reportf(format string, args ...any) {
	s.Lines = append(s.Lines, fmt.Sprintf(format, args...))
}
