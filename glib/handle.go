package glib

import (
	"fmt"
	"runtime"
	"sync/atomic"

	gobridge "github.com/wippyai/gobject-bridge"
	"github.com/wippyai/gobject-bridge/errors"
)

// Ownership is how a wrapper relates to its native resource.
type Ownership uint8

const (
	// OwnershipOwned wrappers took over a reference and release it once.
	OwnershipOwned Ownership = iota
	// OwnershipShared wrappers acquired their own reference on wrap.
	OwnershipShared
	// OwnershipBorrowed wrappers never release and expire with their scope.
	OwnershipBorrowed
)

func (o Ownership) String() string {
	switch o {
	case OwnershipOwned:
		return "owned"
	case OwnershipShared:
		return "shared"
	case OwnershipBorrowed:
		return "borrowed"
	default:
		return "unknown"
	}
}

const (
	stateLive uint32 = iota
	stateReleased
	stateExpired
)

// handle is the ownership cell shared by every copy of a wrapper value.
type handle struct {
	rt      *Runtime
	info    *TypeInfo
	ptr     gobridge.Ptr
	own     Ownership
	state   atomic.Uint32
	cleanup runtime.Cleanup
	tracked bool
	// parent is the borrowed handle a borrowed view was derived from.
	parent *handle
}

type collectArg struct {
	rt   *Runtime
	info *TypeInfo
	ptr  gobridge.Ptr
}

func newHandle(rt *Runtime, info *TypeInfo, p gobridge.Ptr, own Ownership) *handle {
	h := &handle{rt: rt, info: info, ptr: p, own: own}
	if own != OwnershipBorrowed {
		h.cleanup = runtime.AddCleanup(h, collect, collectArg{rt: rt, info: info, ptr: p})
		h.tracked = true
	}
	return h
}

func collect(a collectArg) {
	a.rt.collect(a.info, a.ptr)
}

// use returns the native pointer after checking liveness and thread affinity.
func (h *handle) use() gobridge.Ptr {
	if h == nil {
		errors.Panic(errors.NullHandle(errors.PhaseConvert, "wrapper"))
	}
	switch h.state.Load() {
	case stateReleased:
		errors.Panic(errors.Released(errors.PhaseConvert, h.info.Name))
	case stateExpired:
		errors.Panic(errors.BorrowExpired(errors.PhaseConvert, h.info.Name))
	}
	if h.parent != nil && h.parent.state.Load() != stateLive {
		errors.Panic(errors.BorrowExpired(errors.PhaseConvert, h.info.Name))
	}
	if h.info.MainThreadOnly {
		h.rt.AssertMainThread(h.info.Name)
	}
	return h.ptr
}

func (h *handle) release() {
	if h == nil || h.state.Load() != stateLive {
		return
	}
	if h.info.MainThreadOnly && h.own != OwnershipBorrowed {
		h.rt.AssertMainThread(h.info.Name)
	}
	if !h.state.CompareAndSwap(stateLive, stateReleased) {
		return
	}
	if h.tracked {
		h.cleanup.Stop()
	}
	if h.own != OwnershipBorrowed {
		h.info.release(h.rt, h.ptr)
	}
}

func (h *handle) expire() {
	h.state.CompareAndSwap(stateLive, stateExpired)
}

// view derives a handle typed as info. Borrowed handles stay borrowed
// and expire with h; others acquire a reference of their own.
func (h *handle) view(info *TypeInfo) *handle {
	p := h.use()
	if h.own == OwnershipBorrowed {
		v := newHandle(h.rt, info, p, OwnershipBorrowed)
		v.parent = h
		return v
	}
	return newHandle(h.rt, info, info.acquire(h.rt, p), OwnershipShared)
}

func (h *handle) acquire() *handle {
	p := h.use()
	return newHandle(h.rt, h.info, h.info.acquire(h.rt, p), OwnershipShared)
}

// ref carries the methods common to every wrapper kind.
type ref struct {
	h *handle
}

func (r ref) cell() *handle {
	return r.h
}

// Native returns the native pointer. It panics if the wrapper was
// released, if a borrowed wrapper outlived its scope, or if a
// main-thread-only type is used from another thread.
func (r ref) Native() gobridge.Ptr {
	return r.h.use()
}

// Release gives up the wrapper's native reference. Releasing more than
// once, or releasing a borrowed wrapper, does nothing to the native side.
func (r ref) Release() {
	r.h.release()
}

// IsReleased reports whether the wrapper can no longer be used.
func (r ref) IsReleased() bool {
	return r.h == nil || r.h.state.Load() != stateLive
}

// Ownership reports how the wrapper holds its native resource.
func (r ref) Ownership() Ownership {
	return r.h.own
}

// Runtime returns the runtime the wrapper belongs to.
func (r ref) Runtime() *Runtime {
	return r.h.rt
}

// Info returns the registered type of the wrapper.
func (r ref) Info() *TypeInfo {
	return r.h.info
}

func (r ref) String() string {
	if r.h == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s(%#x, %s)", r.h.info.Name, uintptr(r.h.ptr), r.h.own)
}

// Wrapper is implemented by every wrapper type through embedding
// Object, Shared or Boxed.
type Wrapper interface {
	Native() gobridge.Ptr
	Release()
	cell() *handle
}

// Object wraps a GObject instance.
type Object struct {
	ref
}

// Type returns the runtime type of the instance.
func (o Object) Type() gobridge.GType {
	return o.h.rt.abi.InstanceType(o.h.use())
}

// TypeName returns the native name of the instance's runtime type.
func (o Object) TypeName() string {
	return o.h.rt.TypeName(o.Type())
}

// RefCount returns the native reference count. Diagnostic only.
func (o Object) RefCount() uint32 {
	return o.h.rt.abi.ObjectRefCount(o.h.use())
}

// Shared wraps a reference-counted record that is not a GObject.
type Shared struct {
	ref
}

// Boxed wraps a copy/free record.
type Boxed struct {
	ref
}

var objectInfo = RegisterObject(ObjectInfo[*Object]{
	Name:    "GObject",
	GetType: "g_object_get_type",
	Wrap:    func(o Object) *Object { return &o },
})
