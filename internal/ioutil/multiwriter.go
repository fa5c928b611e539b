package ioutil

import (
	"io"

	"golang.org/x/sync/errgroup"
)

// ParallelMultiWriter fans a single diagnostic-trace write out to every
// writer concurrently instead of sequentially, so a slow trace handle
// (e.g. a zstd-compressed file) doesn't stall the caller's stdout leg.
// Each writer gets its own goroutine fed over an io.Pipe.
//
// With two or more writers, Close flushes the buffered data to every
// writer, waits for the pipe goroutines to finish and returns the first
// error a writer reported; it does not close the writers themselves. A
// writer that fails receives nothing more, but its pipe keeps being
// drained so the other writers are not blocked. A Recorder that forgets
// to Close leaks the goroutines.
func ParallelMultiWriter(writers ...io.Writer) io.WriteCloser {
	if len(writers) == 0 {
		return WriterWithCloser(io.Discard, NewMultiCloser())
	}
	if len(writers) == 1 {
		return WriterWithCloser(writers[0], NewMultiCloser())
	}

	var eg errgroup.Group
	var pipeWriters []io.Writer
	var pipeClosers []io.Closer

	for _, w := range writers {
		pr, pw := io.Pipe()
		pipeWriters = append(pipeWriters, pw)
		pipeClosers = append(pipeClosers, pw)
		eg.Go(func(w io.Writer, r io.Reader) func() error {
			return func() error {
				buffer := make([]byte, DefaultTraceBufferSize) // matches WithBufferedWrites' chunk size
				_, err := io.CopyBuffer(w, r, buffer)
				if err != nil {
					_, _ = io.Copy(io.Discard, r)
				}
				return err
			}
		}(w, pr))
	}

	multiwriter := WithBufferedWrites(io.MultiWriter(pipeWriters...))
	// Flush before closing the pipes, then wait for every leg to drain.
	closers := append([]io.Closer{multiwriter}, pipeClosers...)
	closers = append(closers, CloserFunc(eg.Wait))
	return WriterWithCloser(multiwriter, NewMultiCloser(closers...))
}
