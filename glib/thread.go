package glib

import (
	"github.com/wippyai/gobject-bridge/errors"
	"go.uber.org/zap"
)

// BindMainThread records the calling OS thread as the one allowed to use
// main-thread-only types. The calling goroutine must hold
// runtime.LockOSThread for as long as the binding matters. Binding twice
// from the same thread is a no-op.
func (rt *Runtime) BindMainThread() error {
	tid := int64(currentThreadID())
	if rt.mainThread.CompareAndSwap(0, tid) {
		rt.log.Debug("main thread bound", zap.Int64("thread", tid))
		return nil
	}
	if owner := rt.mainThread.Load(); owner != tid {
		return errors.New(errors.PhaseThread, errors.KindAlreadyBound).
			Detail("main thread already bound to thread %d", owner).
			Build()
	}
	return nil
}

// MainThreadBound reports whether BindMainThread has succeeded.
func (rt *Runtime) MainThreadBound() bool {
	return rt.mainThread.Load() != 0
}

// IsMainThread reports whether the caller runs on the bound main thread.
// Platforms without thread ids treat every thread as the main thread.
func (rt *Runtime) IsMainThread() bool {
	owner := rt.mainThread.Load()
	if owner == 0 {
		return false
	}
	if !threadIDsSupported {
		return true
	}
	return owner == int64(currentThreadID())
}

// AssertMainThread panics unless the caller is on the bound main thread.
// what names the type or subsystem in the panic value.
func (rt *Runtime) AssertMainThread(what string) {
	if !rt.cfg.CheckThreads {
		return
	}
	owner := rt.mainThread.Load()
	if owner == 0 {
		errors.Panic(errors.NotInitialized(errors.PhaseThread, what))
	}
	if !threadIDsSupported {
		return
	}
	if cur := currentThreadID(); int64(cur) != owner {
		errors.Panic(errors.WrongThread(what, int(owner), cur))
	}
}
