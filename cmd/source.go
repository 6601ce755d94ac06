package cmd

import (
	"io"
	"os"

	"github.com/blockcopy/blockcopy/internal/logging"
)

// isStdinArg reports whether path names the process's standard input, the
// way checksum's FILE argument is allowed to (§6).
func isStdinArg(path string) bool {
	return path == "-" || path == "/dev/stdin"
}

// openSourceArg opens path for checksum, which alone among the three
// subcommands may read from stdin instead of a real object. seekable is
// false only for stdin, since there the byte position checksum tracks is
// just a running count, not something the OS can independently confirm.
func openSourceArg(path string) (r io.Reader, closer io.Closer, seekable bool, err error) {
	if isStdinArg(path) {
		return os.Stdin, nil, false, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, false, logging.WrapIO("open", path, err)
	}
	return f, f, true, nil
}

// openRandomAccessFile opens path for retrieve/save, both of which require
// random access (ReadAt/WriteAt) to a real local object and therefore
// reject stdin outright (§6).
func openRandomAccessFile(path string, write bool) (*os.File, error) {
	if isStdinArg(path) {
		return nil, logging.NewUsageError("refusing standard input; a real file path is required here")
	}
	flag := os.O_RDONLY
	if write {
		flag = os.O_RDWR
	}
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, logging.WrapIO("open", path, err)
	}
	return f, nil
}
