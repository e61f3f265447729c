package glib

import (
	gobridge "github.com/wippyai/gobject-bridge"
	"github.com/wippyai/gobject-bridge/errors"
	"github.com/wippyai/gobject-bridge/registry"
)

// DetailSeparator joins a signal name and its detail.
const DetailSeparator = "::"

// SignalHandlerID identifies a connected handler on one instance.
type SignalHandlerID uint64

// Signal names a signal, optionally restricted to a detail such as a
// settings key or a property name.
type Signal struct {
	Name   string
	Detail string
}

// String returns the detailed signal name passed to the native side.
func (s Signal) String() string {
	if s.Detail == "" {
		return s.Name
	}
	return s.Name + DetailSeparator + s.Detail
}

// Connect registers fn for sig on w's instance. Unknown signals are
// reported as a not_found error.
func Connect(w Wrapper, sig Signal, fn Trampoline) (SignalHandlerID, error) {
	return connect(w, sig, fn, false)
}

// ConnectAfter is Connect for handlers that run after the class handler.
func ConnectAfter(w Wrapper, sig Signal, fn Trampoline) (SignalHandlerID, error) {
	return connect(w, sig, fn, true)
}

// MustConnect is Connect for signals a wrapper declares itself; an
// unknown signal is a programmer error.
func MustConnect(w Wrapper, sig Signal, fn Trampoline) SignalHandlerID {
	id, err := Connect(w, sig, fn)
	if err != nil {
		panic(err)
	}
	return id
}

func connect(w Wrapper, sig Signal, fn Trampoline, after bool) (SignalHandlerID, error) {
	cell := w.cell()
	inst := cell.use()
	rt := cell.rt
	name := sig.String()

	st := NewStash(rt)
	defer st.Free()
	cname := st.CString(name)

	if !rt.abi.SignalParseName(cname, rt.abi.InstanceType(inst)) {
		return 0, errors.New(errors.PhaseSignal, errors.KindNotFound).
			Path(cell.info.Name, name).
			Detail("no such signal").
			Build()
	}

	h, ok := rt.register(registry.KindSignal, &closure{name: name, signal: fn})
	if !ok {
		return 0, errors.NotInitialized(errors.PhaseClosure, "runtime")
	}
	id := rt.abi.SignalConnectClosure(inst, cname, uintptr(h), after)
	if id == 0 {
		rt.closures.Remove(h)
		return 0, errors.New(errors.PhaseSignal, errors.KindNative).
			Path(cell.info.Name, name).
			Detail("connect failed").
			Build()
	}
	return SignalHandlerID(id), nil
}

// Disconnect removes a handler. The closure is released when the native
// side finalizes it, after any emission in progress has returned.
func Disconnect(w Wrapper, id SignalHandlerID) {
	cell := w.cell()
	cell.rt.abi.SignalHandlerDisconnect(cell.use(), uint64(id))
}

// HandlerIsConnected reports whether id is still connected on w.
func HandlerIsConnected(w Wrapper, id SignalHandlerID) bool {
	cell := w.cell()
	return cell.rt.abi.SignalHandlerIsConnected(cell.use(), uint64(id))
}

// BlockHandler suspends a handler until UnblockHandler.
func BlockHandler(w Wrapper, id SignalHandlerID) {
	cell := w.cell()
	cell.rt.abi.SignalHandlerBlock(cell.use(), uint64(id))
}

// UnblockHandler undoes one BlockHandler.
func UnblockHandler(w Wrapper, id SignalHandlerID) {
	cell := w.cell()
	cell.rt.abi.SignalHandlerUnblock(cell.use(), uint64(id))
}

// ConnectNotify runs fn whenever property changes on w.
func ConnectNotify(w Wrapper, property string, fn func()) SignalHandlerID {
	return MustConnect(w, Signal{Name: "notify", Detail: property}, func(*Args, *Return) {
		fn()
	})
}

// Args are the borrowed parameters of a signal emission. Index 0 is the
// emitting instance.
type Args struct {
	rt     *Runtime
	params []gobridge.Ptr
	scope  Scope
}

// Len returns the number of parameters including the instance.
func (a *Args) Len() int {
	return len(a.params)
}

// Runtime returns the runtime dispatching the emission.
func (a *Args) Runtime() *Runtime {
	return a.rt
}

// Value returns parameter i as a borrowed GValue.
func (a *Args) Value(i int) *Value {
	if i < 0 || i >= len(a.params) {
		errors.Panic(errors.New(errors.PhaseSignal, errors.KindInvalidInput).
			Detail("argument %d out of range (%d arguments)", i, len(a.params)).
			Build())
	}
	return BorrowValue(a.rt, a.params[i])
}

// Bool reads a gboolean parameter.
func (a *Args) Bool(i int) bool {
	return a.rt.abi.ValueGetBoolean(a.Value(i).Native())
}

// Int reads a gint parameter.
func (a *Args) Int(i int) int32 {
	return a.rt.abi.ValueGetInt(a.Value(i).Native())
}

// Uint reads a guint parameter.
func (a *Args) Uint(i int) uint32 {
	return a.rt.abi.ValueGetUint(a.Value(i).Native())
}

// Int64 reads a gint64 parameter.
func (a *Args) Int64(i int) int64 {
	return a.rt.abi.ValueGetInt64(a.Value(i).Native())
}

// Double reads a gdouble parameter.
func (a *Args) Double(i int) float64 {
	return a.rt.abi.ValueGetDouble(a.Value(i).Native())
}

// String copies a string parameter. A null string reads as "".
func (a *Args) String(i int) string {
	p := a.rt.abi.ValueGetString(a.Value(i).Native())
	if p == 0 {
		return ""
	}
	return GoStringNone(a.rt, p)
}

// Pointer returns a gpointer parameter, borrowed.
func (a *Args) Pointer(i int) gobridge.Ptr {
	return a.rt.abi.ValueGetPointer(a.Value(i).Native())
}

// Boxed returns a boxed parameter, borrowed.
func (a *Args) Boxed(i int) gobridge.Ptr {
	return a.rt.abi.ValueGetBoxed(a.Value(i).Native())
}

// ArgObject borrows object parameter i for the duration of the emission.
func ArgObject[T Wrapper](a *Args, i int) T {
	return BorrowIn[T](&a.scope, a.rt, a.rt.abi.ValueGetObject(a.Value(i).Native()))
}

// ArgBoxed borrows boxed parameter i for the duration of the emission.
func ArgBoxed[T Wrapper](a *Args, i int) T {
	return BorrowIn[T](&a.scope, a.rt, a.Boxed(i))
}

// Return is the native return slot of an emission. Writes are ignored
// for signals without a return value.
type Return struct {
	rt  *Runtime
	ptr gobridge.Ptr
}

// SetBool stores a gboolean result.
func (r *Return) SetBool(b bool) {
	if r.ptr != 0 {
		r.rt.abi.ValueSetBoolean(r.ptr, b)
	}
}

// Set stores a result of any supported type.
func (r *Return) Set(x any) error {
	if r.ptr == 0 {
		return nil
	}
	return BorrowValue(r.rt, r.ptr).Set(x)
}
