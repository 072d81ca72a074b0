package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinkStdout(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewSink(buf, "", false).Write([]byte("42\n")))
	assert.Equal(t, "42\n", buf.String())
}

func TestSinkReplacesFile(t *testing.T) {
	buf := &bytes.Buffer{}
	path := filepath.Join(t.TempDir(), "time.txt")

	sink := NewSink(buf, path, false)
	require.NoError(t, sink.Write([]byte("1\n")))
	require.NoError(t, sink.Write([]byte("2\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2\n", string(data))
	assert.Empty(t, buf.String())
}

func TestSinkAppendsToFile(t *testing.T) {
	buf := &bytes.Buffer{}
	path := filepath.Join(t.TempDir(), "times.txt")

	sink := NewSink(buf, path, true)
	require.NoError(t, sink.Write([]byte("1\n")))
	require.NoError(t, sink.Write([]byte("2\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n", string(data))
	assert.Empty(t, buf.String())
}
