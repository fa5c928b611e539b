// Package progress defines the progress-reporting seam planbatch.Run uses
// to tell a caller how a batch of memory-layout jobs is proceeding, without
// planbatch itself depending on any particular terminal UI library.
package progress

// BarProgressTracker reports the progress of a batch with a known total job
// count, driven by planbatch.Run as jobs finish laying out.
type BarProgressTracker interface {
	SetMessage(msg string)
	SetTotal(total int64)
	SetDone(n int)
	SetError(err error)
	MarkFinished()
}

// NoopBarProgressTracker is the default used by planbatch.Run when the
// caller doesn't supply a WithProgress option.
type NoopBarProgressTracker struct{}

var _ BarProgressTracker = NoopBarProgressTracker{}

func (NoopBarProgressTracker) SetMessage(msg string) {}
func (NoopBarProgressTracker) SetTotal(total int64)  {}
func (NoopBarProgressTracker) SetDone(n int)         {}
func (NoopBarProgressTracker) SetError(err error)    {}
func (NoopBarProgressTracker) MarkFinished()         {}
