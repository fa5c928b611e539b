package store

import "io"

// readerCloseForwarder runs every closer in order when Close is called,
// so a decompressing reader can close both its own zstd stream and the
// underlying trace handle's reader with a single Close.
type readerCloseForwarder struct {
	closers []func() error
	io.Reader
}

func (c *readerCloseForwarder) Close() error {
	var err error
	for _, closer := range c.closers {
		if e := closer(); e != nil {
			err = e
		}
	}
	return err
}

// writerCloseForwarder does the same for a compressing writer: flushing
// the zstd encoder and the buffered writer before closing the underlying
// trace handle's writer.
type writerCloseForwarder struct {
	closers []func() error
	io.WriteCloser
}

func (c *writerCloseForwarder) Close() error {
	var err error
	for _, closer := range c.closers {
		if e := closer(); e != nil {
			err = e
		}
	}
	return err
}
