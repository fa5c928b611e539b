package ioutil

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelMultiWriter(t *testing.T) {
	line := []byte("plan trace line\n")

	t.Run("no writers discards silently", func(t *testing.T) {
		wc := ParallelMultiWriter()
		n, err := wc.Write(line)
		assert.NoError(t, err)
		assert.Equal(t, len(line), n)
		assert.NoError(t, wc.Close())
	})

	t.Run("one writer", func(t *testing.T) {
		var buf bytes.Buffer
		wc := ParallelMultiWriter(&buf)
		n, err := wc.Write(line)
		require.NoError(t, err)
		require.Equal(t, len(line), n)
		require.NoError(t, wc.Close())
		assert.Equal(t, string(line), buf.String())
	})

	t.Run("fans out to every leg", func(t *testing.T) {
		var stdoutLeg, traceLeg, extraLeg bytes.Buffer
		wc := ParallelMultiWriter(&stdoutLeg, &traceLeg, &extraLeg)
		n, err := wc.Write(line)
		require.NoError(t, err)
		require.Equal(t, len(line), n)
		require.NoError(t, wc.Close())
		assert.Equal(t, string(line), stdoutLeg.String())
		assert.Equal(t, string(line), traceLeg.String())
		assert.Equal(t, string(line), extraLeg.String())
	})

	t.Run("one broken leg does not block the healthy ones", func(t *testing.T) {
		var stdoutLeg bytes.Buffer
		brokenTraceLeg := &failingWriter{}
		var extraLeg bytes.Buffer
		wc := ParallelMultiWriter(&stdoutLeg, brokenTraceLeg, &extraLeg)
		n, err := wc.Write(line)
		require.NoError(t, err)
		require.Equal(t, len(line), n)

		// Close reports the broken leg's failure, but the healthy legs
		// still received every byte.
		err = wc.Close()
		assert.Error(t, err)

		assert.Equal(t, string(line), stdoutLeg.String())
		assert.Equal(t, string(line), extraLeg.String())
	})
}

// failingWriter simulates a trace backend (e.g. a full disk) that rejects
// every write.
type failingWriter struct{}

func (fw *failingWriter) Write(p []byte) (n int, err error) {
	return 0, io.ErrShortWrite
}
