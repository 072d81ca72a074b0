//go:build unix

package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func writeFD(t *testing.T, fd uintptr, s string) {
	t.Helper()
	_, err := unix.Write(int(fd), []byte(s))
	require.NoError(t, err)
}

func TestSuppressOutputDiscardsUntilRestored(t *testing.T) {
	out := tempStream(t, "stdout")
	errStream := tempStream(t, "stderr")

	childOut, childErr, restore, err := suppressOutput(out, errStream)
	require.NoError(t, err)
	assert.Same(t, out, childOut)
	assert.Same(t, errStream, childErr)

	writeFD(t, out.Fd(), "hidden\n")
	writeFD(t, errStream.Fd(), "hidden\n")

	require.NoError(t, restore())

	writeFD(t, out.Fd(), "shown\n")
	assert.Equal(t, "shown\n", readStream(t, out))
	assert.Empty(t, readStream(t, errStream))
}

func TestSuppressOutputRestoreIsIdempotent(t *testing.T) {
	out := tempStream(t, "stdout")

	_, _, restore, err := suppressOutput(out, nil)
	require.NoError(t, err)

	require.NoError(t, restore())
	require.NoError(t, restore())

	writeFD(t, out.Fd(), "ok\n")
	assert.Equal(t, "ok\n", readStream(t, out))
}

func TestSuppressOutputSameFileForBothStreams(t *testing.T) {
	out := tempStream(t, "combined")

	_, _, restore, err := suppressOutput(out, out)
	require.NoError(t, err)

	writeFD(t, out.Fd(), "hidden\n")
	require.NoError(t, restore())

	writeFD(t, out.Fd(), "shown\n")
	assert.Equal(t, "shown\n", readStream(t, out))
}

func TestSuppressOutputNilStreams(t *testing.T) {
	childOut, childErr, restore, err := suppressOutput(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, childOut)
	assert.Nil(t, childErr)
	assert.NoError(t, restore())
}
