package sim

import (
	"fmt"
	"strings"

	gobridge "github.com/wippyai/gobject-bridge"
)

type signalDef struct {
	name     string
	owner    *typeInfo
	detailed bool
	params   []gobridge.GType
	ret      gobridge.GType
	// trueHandled stops the emission once a handler returns TRUE.
	trueHandled bool
	// class is the default handler, run after the handlers connected
	// without after. It is called without the lock held.
	class func(b *Backend, inst ptr, detail string, args []gvalue) bool
}

type handler struct {
	id      uint64
	inst    ptr
	sig     *signalDef
	detail  string
	closure uintptr
	after   bool
	blocked int
}

func (b *Backend) addSignal(t *typeInfo, def signalDef) *signalDef {
	s := def
	s.owner = t
	if t.signals == nil {
		t.signals = make(map[string]*signalDef)
	}
	t.signals[s.name] = &s
	return &s
}

func (b *Backend) lookupSignal(t *typeInfo, name string) *signalDef {
	for cur := t; cur != nil; cur = cur.parent {
		if s, ok := cur.signals[name]; ok {
			return s
		}
		for _, i := range cur.ifaces {
			if s, ok := b.types[i].signals[name]; ok {
				return s
			}
		}
	}
	return nil
}

// splitDetailed parses "name" or "name::detail". An empty detail after
// the separator is invalid.
func splitDetailed(s string) (name, detail string, ok bool) {
	name, detail, found := strings.Cut(s, "::")
	if name == "" || found && detail == "" {
		return "", "", false
	}
	return canonicalName(name), detail, true
}

func (b *Backend) parseSignal(t *typeInfo, detailed string) (*signalDef, string, bool) {
	name, detail, ok := splitDetailed(detailed)
	if !ok {
		return nil, "", false
	}
	sig := b.lookupSignal(t, name)
	if sig == nil || detail != "" && !sig.detailed {
		return nil, "", false
	}
	return sig, detail, true
}

// SignalParseName implements g_signal_parse_name.
func (b *Backend) SignalParseName(detailedSignal ptr, itype gobridge.GType) bool {
	b.mu.Lock()
	defer b.unlock()
	t := b.typeOf(itype)
	if t == nil {
		return false
	}
	_, _, ok := b.parseSignal(t, b.cstring(detailedSignal))
	return ok
}

// SignalConnectClosure connects closure id. Invalid names are warned
// about and yield 0, as in GLib.
func (b *Backend) SignalConnectClosure(instance, detailedSignal ptr, id uintptr, after bool) uint64 {
	b.mu.Lock()
	defer b.unlock()
	o := b.object(instance, "g_signal_connect_closure")
	if o == nil {
		return 0
	}
	name := b.cstring(detailedSignal)
	sig, detail, ok := b.parseSignal(o.typ, name)
	if !ok {
		b.log.Warn(fmt.Sprintf("signal '%s' is invalid for instance '%#x' of type '%s'", name, uintptr(instance), o.typ.name))
		return 0
	}
	h := &handler{
		id:      b.nextHandler,
		inst:    instance,
		sig:     sig,
		detail:  detail,
		closure: id,
		after:   after,
	}
	b.nextHandler++
	b.handlers[h.id] = h
	o.handlers = append(o.handlers, h)
	return h.id
}

func (b *Backend) handler(instance ptr, id uint64, fn string) *handler {
	h, ok := b.handlers[id]
	if !ok || h.inst != instance {
		b.critical("%s: instance '%#x' has no handler with id '%d'", fn, uintptr(instance), id)
		return nil
	}
	return h
}

// SignalHandlerDisconnect implements g_signal_handler_disconnect. The
// closure is released once the lock is dropped; an emission already
// running skips the handler.
func (b *Backend) SignalHandlerDisconnect(instance ptr, id uint64) {
	b.mu.Lock()
	defer b.unlock()
	h := b.handler(instance, id, "g_signal_handler_disconnect")
	if h == nil {
		return
	}
	delete(b.handlers, id)
	if o, ok := b.objects[instance]; ok {
		for i, x := range o.handlers {
			if x == h {
				o.handlers = append(o.handlers[:i], o.handlers[i+1:]...)
				break
			}
		}
	}
	b.releaseClosure(h.closure)
}

// SignalHandlerIsConnected implements g_signal_handler_is_connected.
func (b *Backend) SignalHandlerIsConnected(instance ptr, id uint64) bool {
	b.mu.Lock()
	defer b.unlock()
	h, ok := b.handlers[id]
	return ok && h.inst == instance
}

// SignalHandlerBlock implements g_signal_handler_block.
func (b *Backend) SignalHandlerBlock(instance ptr, id uint64) {
	b.mu.Lock()
	defer b.unlock()
	if h := b.handler(instance, id, "g_signal_handler_block"); h != nil {
		h.blocked++
	}
}

// SignalHandlerUnblock implements g_signal_handler_unblock.
func (b *Backend) SignalHandlerUnblock(instance ptr, id uint64) {
	b.mu.Lock()
	defer b.unlock()
	h := b.handler(instance, id, "g_signal_handler_unblock")
	if h == nil {
		return
	}
	if h.blocked == 0 {
		b.critical("g_signal_handler_unblock: handler '%d' of instance '%#x' is not blocked", id, uintptr(instance))
		return
	}
	h.blocked--
}

// emit runs one emission. It must be called without the lock held,
// takes ownership of args and returns the owned result.
func (b *Backend) emit(inst ptr, sig *signalDef, detail string, args []gvalue) gvalue {
	b.mu.Lock()
	o, ok := b.objects[inst]
	if !ok {
		for i := range args {
			b.valueClear(&args[i])
		}
		b.unlock()
		return gvalue{}
	}
	o.refs++
	base := b.alloc(uintptr(len(args)+1)*gobridge.ValueSize, "GValue[]")
	params := make([]ptr, len(args)+1)
	params[0] = base
	b.bindValue(base, &gvalue{typ: o.typ.id, p: inst})
	for i := range args {
		params[i+1] = base + ptr((i+1)*gobridge.ValueSize)
		b.bindValue(params[i+1], &args[i])
	}
	var ret ptr
	if sig.ret != 0 && sig.ret != gobridge.TypeNone {
		ret = b.alloc(gobridge.ValueSize, "GValue")
		b.bindValue(ret, &gvalue{typ: sig.ret})
	}
	var first, last []uint64
	for _, h := range o.handlers {
		if h.sig != sig || h.detail != "" && h.detail != detail {
			continue
		}
		if h.after {
			last = append(last, h.id)
		} else {
			first = append(first, h.id)
		}
	}
	d := b.disp
	b.unlock()

	stopped := b.runHandlers(d, sig, first, ret, params)
	if !stopped && sig.class != nil {
		if sig.class(b, inst, detail, args) && sig.trueHandled && ret != 0 {
			b.ValueSetBoolean(ret, true)
			stopped = true
		}
	}
	if !stopped {
		b.runHandlers(d, sig, last, ret, params)
	}

	b.mu.Lock()
	defer b.unlock()
	var result gvalue
	if ret != 0 {
		result = *b.values[ret]
		delete(b.values, ret)
		b.free(ret)
	}
	for _, p := range params {
		b.unbindValue(p)
	}
	b.free(base)
	return result
}

func (b *Backend) runHandlers(d gobridge.Dispatcher, sig *signalDef, ids []uint64, ret ptr, params []ptr) bool {
	for _, id := range ids {
		b.mu.Lock()
		h, ok := b.handlers[id]
		live := ok && h.blocked == 0
		var closure uintptr
		if live {
			closure = h.closure
		}
		b.unlock()
		if !live || d == nil {
			continue
		}
		d.Marshal(closure, ret, params)
		if sig.trueHandled && ret != 0 && b.ValueGetBoolean(ret) {
			return true
		}
	}
	return false
}

// queueEmit schedules an emission for when the lock is released.
func (b *Backend) queueEmit(o *object, name, detail string, args ...gvalue) {
	sig := b.lookupSignal(o.typ, name)
	if sig == nil {
		panic("sim: " + o.typ.name + " has no signal " + name)
	}
	inst := o.ptr
	b.after(func() { b.discard(b.emit(inst, sig, detail, args)) })
}

func (b *Backend) discard(v gvalue) {
	if v.p == 0 {
		return
	}
	b.mu.Lock()
	defer b.unlock()
	b.valueClear(&v)
}

// Emit emits a signal on instance the way native code would. Arguments
// are converted to the signal's parameter types: bool, integers,
// float64, string, and pointers to objects, boxed records or variants
// (which are referenced or copied). A gboolean result is returned as
// bool; other results as nil.
func (b *Backend) Emit(instance ptr, detailedSignal string, args ...any) any {
	b.mu.Lock()
	var sig *signalDef
	var detail string
	if o := b.object(instance, "g_signal_emit"); o != nil {
		sig, detail, _ = b.parseSignal(o.typ, detailedSignal)
	}
	if sig == nil || len(args) != len(sig.params) {
		b.unlock()
		panic(fmt.Sprintf("sim: cannot emit %q with %d arguments", detailedSignal, len(args)))
	}
	vals := make([]gvalue, len(args))
	for i, a := range args {
		vals[i] = b.toGValue(sig.params[i], a)
	}
	b.unlock()

	r := b.emit(instance, sig, detail, vals)
	defer b.discard(r)
	if r.typ == gobridge.TypeBoolean {
		return r.b
	}
	return nil
}

func (b *Backend) toGValue(t gobridge.GType, a any) gvalue {
	v := gvalue{typ: t}
	switch x := a.(type) {
	case bool:
		v.b = x
	case int:
		v.i, v.u = int64(x), uint64(x)
	case int32:
		v.i, v.u = int64(x), uint64(x)
	case int64:
		v.i, v.u = x, uint64(x)
	case uint:
		v.i, v.u = int64(x), uint64(x)
	case uint32:
		v.i, v.u = int64(x), uint64(x)
	case uint64:
		v.i, v.u = int64(x), x
	case float64:
		v.d = x
	case string:
		v.p = b.strdup(x)
	case ptr:
		if x == 0 {
			break
		}
		switch b.fundamental(t) {
		case gobridge.TypeObject, gobridge.TypeInterface:
			b.refObject(x)
			v.p = x
		case gobridge.TypeBoxed:
			v.p = b.boxedCopy(t, x)
		case gobridge.TypeVariant:
			b.refVariant(x)
			v.p = x
		default:
			v.p = x
		}
	case nil:
	default:
		panic(fmt.Sprintf("sim: cannot pass %T as %s", a, b.typeName(t)))
	}
	return v
}
