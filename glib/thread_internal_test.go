package glib

import (
	"runtime"
	"testing"
)

func TestCurrentThreadID(t *testing.T) {
	if !threadIDsSupported {
		t.Skip("thread ids unavailable on " + runtime.GOOS)
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	id := currentThreadID()
	if id <= 0 {
		t.Fatalf("currentThreadID = %d", id)
	}
	if again := currentThreadID(); again != id {
		t.Fatalf("thread id changed from %d to %d on a locked thread", id, again)
	}

	other := make(chan int, 1)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		other <- currentThreadID()
	}()
	if got := <-other; got == id || got <= 0 {
		t.Fatalf("other thread id = %d, this thread %d", got, id)
	}
}
