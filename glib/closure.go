package glib

import (
	"fmt"

	gobridge "github.com/wippyai/gobject-bridge"
	"github.com/wippyai/gobject-bridge/registry"
	"go.uber.org/zap"
)

// Trampoline is the Go side of a signal closure. args are valid only
// for the duration of the call.
type Trampoline func(args *Args, ret *Return)

type closure struct {
	name   string
	signal Trampoline
	source func() bool
}

// Drop clears the Go functions once the registry releases the closure,
// so values they capture do not outlive the native connection.
func (c *closure) Drop() {
	c.signal = nil
	c.source = nil
}

// dispatcher receives native invocations for a runtime.
type dispatcher struct {
	rt *Runtime
}

func (d dispatcher) Marshal(id uintptr, ret gobridge.Ptr, params []gobridge.Ptr) {
	rt := d.rt
	h := registry.Handle(id)
	c, ok := rt.closures.Pin(h)
	if !ok {
		rt.log.Error("signal dispatched to unknown closure", zap.Uintptr("id", id))
		return
	}
	defer rt.closures.Unpin(h)

	args := &Args{rt: rt, params: params}
	defer args.scope.Close()
	defer rt.recoverClosure(c)

	c.signal(args, &Return{rt: rt, ptr: ret})
}

func (d dispatcher) Invoke(id uintptr) bool {
	rt := d.rt
	h := registry.Handle(id)
	c, ok := rt.closures.Pin(h)
	if !ok {
		rt.log.Error("source dispatched to unknown closure", zap.Uintptr("id", id))
		return false
	}
	defer rt.closures.Unpin(h)
	defer rt.recoverClosure(c)

	return c.source()
}

func (d dispatcher) Release(id uintptr) {
	h := registry.Handle(id)
	if d.rt.closures.Pinned(h) {
		d.rt.log.Debug("closure released during dispatch, dropping after return", zap.Uintptr("id", id))
	}
	if !d.rt.closures.Remove(h) {
		d.rt.log.Warn("release of unknown closure", zap.Uintptr("id", id))
	}
}

// recoverClosure logs a panic escaping a closure and re-raises it.
func (rt *Runtime) recoverClosure(c *closure) {
	if r := recover(); r != nil {
		rt.log.Error("panic in closure",
			zap.String("name", c.name),
			zap.String("panic", fmt.Sprint(r)))
		panic(r)
	}
}

func (rt *Runtime) register(kind registry.Kind, c *closure) (registry.Handle, bool) {
	h := rt.closures.Insert(kind, c)
	return h, h != 0
}
