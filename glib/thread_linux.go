//go:build linux

package glib

import "golang.org/x/sys/unix"

const threadIDsSupported = true

func currentThreadID() int {
	return unix.Gettid()
}
