package glib

import (
	"math"
	"time"

	gobridge "github.com/wippyai/gobject-bridge"
	"github.com/wippyai/gobject-bridge/registry"
)

// Source priorities, as in GLib.
const (
	PriorityHigh        int32 = -100
	PriorityDefault     int32 = 0
	PriorityHighIdle    int32 = 100
	PriorityDefaultIdle int32 = 200
	PriorityLow         int32 = 300
)

// SourceID is the tag of a main-loop source.
type SourceID uint32

// IdleAdd runs fn from the default main context whenever it is idle,
// until fn returns false.
func (rt *Runtime) IdleAdd(fn func() bool) SourceID {
	return rt.IdleAddPriority(PriorityDefaultIdle, fn)
}

// IdleAddPriority is IdleAdd with an explicit priority.
func (rt *Runtime) IdleAddPriority(priority int32, fn func() bool) SourceID {
	h, ok := rt.register(registry.KindSource, &closure{name: "idle", source: fn})
	if !ok {
		return 0
	}
	return SourceID(rt.abi.IdleAdd(priority, uintptr(h)))
}

// IdleAddOnce runs fn once from the default main context. Safe to call
// from any goroutine.
func (rt *Runtime) IdleAddOnce(fn func()) SourceID {
	h, ok := rt.register(registry.KindOnce, &closure{name: "idle-once", source: func() bool {
		fn()
		return false
	}})
	if !ok {
		return 0
	}
	return SourceID(rt.abi.IdleAdd(PriorityDefaultIdle, uintptr(h)))
}

// TimeoutAdd runs fn every interval until it returns false. Intervals
// are truncated to milliseconds; negative ones run as soon as possible
// and ones past the native limit of about 49.7 days are capped to it.
func (rt *Runtime) TimeoutAdd(interval time.Duration, fn func() bool) SourceID {
	h, ok := rt.register(registry.KindSource, &closure{name: "timeout", source: fn})
	if !ok {
		return 0
	}
	return SourceID(rt.abi.TimeoutAdd(PriorityDefault, timeoutMillis(interval), uintptr(h)))
}

func timeoutMillis(d time.Duration) uint32 {
	ms := d / time.Millisecond
	switch {
	case ms < 0:
		return 0
	case ms > math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(ms)
}

// SourceRemove removes a source. Its closure is released by the native
// destroy notification.
func (rt *Runtime) SourceRemove(id SourceID) bool {
	return rt.abi.SourceRemove(uint32(id))
}

// Iterate runs one iteration of the default main context and reports
// whether any source was dispatched.
func (rt *Runtime) Iterate(mayBlock bool) bool {
	return rt.abi.MainContextIteration(mayBlock)
}

// MainLoop is a GMainLoop on the default context.
type MainLoop struct {
	Shared
}

var _ = RegisterShared(SharedInfo[*MainLoop]{
	Name: "GMainLoop",
	Ref: func(rt *Runtime, p gobridge.Ptr) gobridge.Ptr {
		return rt.abi.MainLoopRef(p)
	},
	Unref: func(rt *Runtime, p gobridge.Ptr) {
		rt.abi.MainLoopUnref(p)
	},
	Wrap: func(s Shared) *MainLoop { return &MainLoop{Shared: s} },
})

// NewMainLoop creates a main loop that is not running.
func NewMainLoop(rt *Runtime) *MainLoop {
	return Take[*MainLoop](rt, rt.abi.MainLoopNew())
}

// Run dispatches sources until Quit is called.
func (l *MainLoop) Run() {
	l.h.rt.abi.MainLoopRun(l.Native())
}

// Quit stops a running loop. Safe to call from any goroutine or closure.
func (l *MainLoop) Quit() {
	l.h.rt.abi.MainLoopQuit(l.Native())
}

// IsRunning reports whether Run is in progress.
func (l *MainLoop) IsRunning() bool {
	return l.h.rt.abi.MainLoopIsRunning(l.Native())
}
