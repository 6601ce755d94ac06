//go:build linux

package ttycheck

import "golang.org/x/sys/unix"

const ioctlGetTermios = unix.TCGETS
