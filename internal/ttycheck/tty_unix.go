//go:build linux || darwin || freebsd

package ttycheck

import (
	"os"

	"golang.org/x/sys/unix"
)

// IsTerminal reports whether f is connected to a terminal, the way the
// teacher's platform-split files (getProxy_unix.go / getProxy_windows.go)
// keep OS-specific syscalls out of the portable code paths.
func IsTerminal(f *os.File) bool {
	_, err := unix.IoctlGetTermios(int(f.Fd()), ioctlGetTermios)
	return err == nil
}
