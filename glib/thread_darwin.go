//go:build darwin

package glib

import (
	"sync"

	"github.com/ebitengine/purego"
)

const threadIDsSupported = true

var (
	threadIDOnce sync.Once
	// pthread_threadid_np(NULL, &id) reports the calling thread.
	pthreadThreadIDNP func(thread uintptr, id *uint64) int32
)

func currentThreadID() int {
	threadIDOnce.Do(func() {
		lib, err := purego.Dlopen("/usr/lib/libSystem.B.dylib", purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			panic("glib: open libSystem: " + err.Error())
		}
		purego.RegisterLibFunc(&pthreadThreadIDNP, lib, "pthread_threadid_np")
	})
	var id uint64
	if pthreadThreadIDNP(0, &id) != 0 {
		return -1
	}
	return int(id)
}
