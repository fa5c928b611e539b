package store

import (
	"bufio"
	"io"

	"github.com/klauspost/compress/zstd"
)

// compressedTraceFactory wraps another TraceFactory's handles in zstd
// compression, so a trace that would otherwise grow unbounded over a long
// planning run stays cheap to keep around.
type compressedTraceFactory struct {
	baseFactory TraceFactory
}

func NewCompressedTraceFactory(baseFactory TraceFactory) TraceFactory {
	return &compressedTraceFactory{baseFactory: baseFactory}
}

var _ TraceFactory = (*compressedTraceFactory)(nil)

func (f *compressedTraceFactory) New() (TraceHandle, error) {
	baseHandle, err := f.baseFactory.New()
	if err != nil {
		return nil, err
	}
	return &compressedTraceHandle{base: baseHandle}, nil
}

func (f *compressedTraceFactory) Release() error {
	return f.baseFactory.Release()
}

// compressedTraceHandle transparently zstd-encodes everything written
// through it and decodes on read.
type compressedTraceHandle struct {
	base TraceHandle
}

func (h *compressedTraceHandle) Name() string {
	return "zstd+" + h.base.Name()
}

func (h *compressedTraceHandle) GetReader() (io.ReadCloser, error) {
	baseReader, err := h.base.GetReader()
	if err != nil {
		return nil, err
	}
	zstdReader, err := zstd.NewReader(baseReader)
	if err != nil {
		return nil, err
	}
	bufioReader := bufio.NewReaderSize(zstdReader, 64*1024)
	return &readerCloseForwarder{
		closers: []func() error{func() error {
			zstdReader.Close()
			return nil
		}, baseReader.Close},
		Reader: bufioReader,
	}, nil
}

func (h *compressedTraceHandle) GetWriter() (io.WriteCloser, error) {
	baseWriter, err := h.base.GetWriter()
	if err != nil {
		return nil, err
	}
	bufioWriter := bufio.NewWriterSize(baseWriter, 64*1024)

	// Fastest level, small concurrency cap: trace writes can happen on the
	// hot path of a planner running inside planbatch's own worker pool, so
	// compression should not itself become the bottleneck.
	zstdWriter, err := zstd.NewWriter(
		bufioWriter,
		zstd.WithEncoderCRC(true),
		zstd.WithEncoderConcurrency(2),
		zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, err
	}
	return &writerCloseForwarder{
		closers:     []func() error{zstdWriter.Close, bufioWriter.Flush, baseWriter.Close},
		WriteCloser: zstdWriter,
	}, nil
}
