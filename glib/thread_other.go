//go:build !linux && !darwin && !windows

package glib

const threadIDsSupported = false

func currentThreadID() int {
	return -1
}
