package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsStdinArg(t *testing.T) {
	require.True(t, isStdinArg("-"))
	require.True(t, isStdinArg("/dev/stdin"))
	require.False(t, isStdinArg("/tmp/some/file"))
}

func TestOpenRandomAccessFileRejectsStdin(t *testing.T) {
	_, err := openRandomAccessFile("-", false)
	require.Error(t, err)
}

func TestOpenRandomAccessFileOpensRealPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dest.bin")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	f, err := openRandomAccessFile(path, true)
	require.NoError(t, err)
	defer f.Close()

	buf := make([]byte, 5)
	_, err = f.ReadAt(buf, 0)
	require.NoError(t, err)
	require.Equal(t, "hello", string(buf))
}
