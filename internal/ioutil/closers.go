package ioutil

import "io"

// CloserFunc adapts a plain func() error to an io.Closer.
type CloserFunc func() error

func (f CloserFunc) Close() error { return f() }

// WriterWithCloser pairs an io.Writer with a closer, producing an
// io.WriteCloser without requiring w itself to implement Close.
func WriterWithCloser(w io.Writer, closer io.Closer) io.WriteCloser {
	return &writeCloser{
		Writer: w,
		closer: closer,
	}
}

type writeCloser struct {
	io.Writer
	closer io.Closer
}

var _ io.WriteCloser = (*writeCloser)(nil)

func (wc *writeCloser) Close() error {
	return wc.closer.Close()
}

func WithReaderCloser(r io.Reader, closer func() error) io.ReadCloser {
	return &readCloser{
		Reader: r,
		closer: closer,
	}
}

type readCloser struct {
	io.Reader
	closer func() error
}

var _ io.ReadCloser = (*readCloser)(nil)

func (rc *readCloser) Close() error {
	return rc.closer()
}

// multiCloser closes every closer it holds, returning the first error
// encountered (if any) after attempting to close all of them.
type multiCloser struct {
	closers []io.Closer
}

// NewMultiCloser returns an io.Closer that closes every closer given to it,
// even if an earlier one fails, and reports the first failure.
func NewMultiCloser(closers ...io.Closer) io.Closer {
	return &multiCloser{closers: closers}
}

func (m *multiCloser) Close() error {
	var first error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
