package system

import (
	"sync"

	"github.com/ebitengine/purego"
	gobridge "github.com/wippyai/gobject-bridge"
	"github.com/wippyai/gobject-bridge/registry"
)

// Callback user data packs the dispatcher handle into the high 32 bits
// and the closure id into the low 32 bits, so several runtimes can
// share the process-wide trampolines.
var (
	callbacksOnce sync.Once
	dispatchers   = registry.NewTable[gobridge.Dispatcher]()

	marshalCallback  uintptr // GClosureMarshal
	finalizeCallback uintptr // GClosureNotify
	sourceCallback   uintptr // GSourceFunc
	destroyCallback  uintptr // GDestroyNotify
)

func ensureCallbacks() {
	callbacksOnce.Do(func() {
		marshalCallback = purego.NewCallback(onMarshal)
		finalizeCallback = purego.NewCallback(onFinalize)
		sourceCallback = purego.NewCallback(onSource)
		destroyCallback = purego.NewCallback(onDestroy)
	})
}

func pack(d registry.Handle, id uintptr) uintptr {
	return uintptr(d)<<32 | uintptr(uint32(id))
}

func unpack(data uintptr) (gobridge.Dispatcher, uintptr, bool) {
	d, ok := dispatchers.Get(registry.Handle(data >> 32))
	return d, data & 0xffffffff, ok
}

func onMarshal(closure, ret, n, params, hint, data uintptr) {
	d, id, ok := unpack(data)
	if !ok {
		return
	}
	values := make([]ptr, uint32(n))
	for i := range values {
		values[i] = ptr(params + uintptr(i)*gobridge.ValueSize)
	}
	d.Marshal(id, ptr(ret), values)
}

func onFinalize(data, closure uintptr) {
	if d, id, ok := unpack(data); ok {
		d.Release(id)
	}
}

func onSource(data uintptr) uintptr {
	d, id, ok := unpack(data)
	if ok && d.Invoke(id) {
		return 1
	}
	return 0
}

func onDestroy(data uintptr) {
	if d, id, ok := unpack(data); ok {
		d.Release(id)
	}
}

// SetDispatcher routes callbacks for closures connected afterwards to d.
func (b *Backend) SetDispatcher(d gobridge.Dispatcher) {
	b.dispMu.Lock()
	defer b.dispMu.Unlock()
	b.disp = dispatchers.Insert(registry.KindDispatcher, d)
}

func (b *Backend) data(id uintptr) uintptr {
	b.dispMu.Lock()
	defer b.dispMu.Unlock()
	return pack(b.disp, id)
}

func (b *Backend) SignalParseName(detailedSignal ptr, itype gobridge.GType) bool {
	out := b.Alloc(16)
	defer b.Free(out)
	return b.gobject.SignalParseName(detailedSignal, itype, out, out+8, false)
}

// SignalConnectClosure connects a closure whose meta marshal enters the
// dispatcher. The finalize notifier is added only once the connection
// exists, so a failed connect never reports a release.
func (b *Backend) SignalConnectClosure(instance, detailedSignal ptr, id uintptr, after bool) uint64 {
	data := b.data(id)
	c := b.gobject.ClosureNewSimple(closureSize, data)
	b.gobject.ClosureSetMetaMarshal(c, data, marshalCallback)
	h := b.gobject.SignalConnectClosure(instance, detailedSignal, c, after)
	if h == 0 {
		b.gobject.ClosureSink(c)
		return 0
	}
	b.gobject.ClosureAddFinalizeNotifier(c, data, finalizeCallback)
	return h
}

func (b *Backend) SignalHandlerDisconnect(instance ptr, handler uint64) {
	b.gobject.SignalHandlerDisconnect(instance, handler)
}

func (b *Backend) SignalHandlerIsConnected(instance ptr, handler uint64) bool {
	return b.gobject.SignalHandlerIsConnected(instance, handler)
}

func (b *Backend) SignalHandlerBlock(instance ptr, handler uint64) {
	b.gobject.SignalHandlerBlock(instance, handler)
}

func (b *Backend) SignalHandlerUnblock(instance ptr, handler uint64) {
	b.gobject.SignalHandlerUnblock(instance, handler)
}

func (b *Backend) QuarkToString(q uint32) ptr   { return b.glib.QuarkToString(q) }
func (b *Backend) QuarkFromString(s ptr) uint32 { return b.glib.QuarkFromString(s) }

func (b *Backend) IdleAdd(priority int32, id uintptr) uint32 {
	return b.glib.IdleAddFull(priority, sourceCallback, b.data(id), destroyCallback)
}

func (b *Backend) TimeoutAdd(priority int32, intervalMs uint32, id uintptr) uint32 {
	return b.glib.TimeoutAddFull(priority, intervalMs, sourceCallback, b.data(id), destroyCallback)
}

func (b *Backend) SourceRemove(tag uint32) bool { return b.glib.SourceRemove(tag) }
func (b *Backend) MainContextIteration(mayBlock bool) bool {
	return b.glib.MainContextIteration(0, mayBlock)
}
func (b *Backend) MainLoopNew() ptr             { return b.glib.MainLoopNew(0, false) }
func (b *Backend) MainLoopRef(l ptr) ptr        { return b.glib.MainLoopRef(l) }
func (b *Backend) MainLoopUnref(l ptr)          { b.glib.MainLoopUnref(l) }
func (b *Backend) MainLoopRun(l ptr)            { b.glib.MainLoopRun(l) }
func (b *Backend) MainLoopQuit(l ptr)           { b.glib.MainLoopQuit(l) }
func (b *Backend) MainLoopIsRunning(l ptr) bool { return b.glib.MainLoopIsRunning(l) }
