//go:build darwin || freebsd

package ttycheck

import "golang.org/x/sys/unix"

const ioctlGetTermios = unix.TIOCGETA
