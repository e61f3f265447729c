//go:build windows

package glib

import "golang.org/x/sys/windows"

const threadIDsSupported = true

func currentThreadID() int {
	return int(windows.GetCurrentThreadId())
}
