package glib

import (
	gobridge "github.com/wippyai/gobject-bridge"
	"github.com/wippyai/gobject-bridge/errors"
)

// Nullable is a native pointer that may legitimately be null. Only the
// Opt conversions accept it, so a nullable result cannot reach a
// conversion that assumes presence without an explicit cast.
type Nullable gobridge.Ptr

// Take wraps p, taking over the reference the native call transferred
// (transfer full). Panics on null, on a floating object, or when p is
// not an instance of T's native type.
func Take[T Wrapper](rt *Runtime, p gobridge.Ptr) T {
	info := infoFor[T]()
	rt.checkNative(info, p)
	if info.floating != nil && info.floating(rt, p) {
		errors.Panic(errors.New(errors.PhaseConvert, errors.KindInvalidInput).
			NativeType(info.Name).
			Detail("floating reference passed to Take, use TakeFloating").
			Build())
	}
	return wrapAs[T](info, newHandle(rt, info, p, OwnershipOwned))
}

// TakeOpt is Take for nullable results.
func TakeOpt[T Wrapper](rt *Runtime, p Nullable) (T, bool) {
	if p == 0 {
		var zero T
		return zero, false
	}
	return Take[T](rt, gobridge.Ptr(p)), true
}

// TakeFloating sinks a floating reference and owns the result. A
// reference that is not floating gains one reference instead.
func TakeFloating[T Wrapper](rt *Runtime, p gobridge.Ptr) T {
	info := infoFor[T]()
	rt.checkNative(info, p)
	if info.sink == nil {
		errors.Panic(errors.Unsupported(errors.PhaseConvert, info.Name+" has no floating references"))
	}
	return wrapAs[T](info, newHandle(rt, info, info.sink(rt, p), OwnershipOwned))
}

// FromNone wraps p, acquiring a new reference (or copy, for boxed
// records) because the native side keeps its own (transfer none).
func FromNone[T Wrapper](rt *Runtime, p gobridge.Ptr) T {
	info := infoFor[T]()
	rt.checkNative(info, p)
	return wrapAs[T](info, newHandle(rt, info, info.acquire(rt, p), OwnershipShared))
}

// FromNoneOpt is FromNone for nullable results.
func FromNoneOpt[T Wrapper](rt *Runtime, p Nullable) (T, bool) {
	if p == 0 {
		var zero T
		return zero, false
	}
	return FromNone[T](rt, gobridge.Ptr(p)), true
}

// Borrow wraps p without acquiring anything. The wrapper is valid only
// while the native side guarantees p; it never releases.
func Borrow[T Wrapper](rt *Runtime, p gobridge.Ptr) T {
	info := infoFor[T]()
	rt.checkNative(info, p)
	return wrapAs[T](info, newHandle(rt, info, p, OwnershipBorrowed))
}

// BorrowOpt is Borrow for nullable pointers.
func BorrowOpt[T Wrapper](rt *Runtime, p Nullable) (T, bool) {
	if p == 0 {
		var zero T
		return zero, false
	}
	return Borrow[T](rt, gobridge.Ptr(p)), true
}

// Scope expires borrowed wrappers when closed. Later use of an expired
// wrapper panics.
type Scope struct {
	handles []*handle
}

// Close expires every wrapper borrowed in the scope.
func (s *Scope) Close() {
	for _, h := range s.handles {
		h.expire()
	}
	s.handles = nil
}

// BorrowIn borrows p for the lifetime of s.
func BorrowIn[T Wrapper](s *Scope, rt *Runtime, p gobridge.Ptr) T {
	w := Borrow[T](rt, p)
	s.handles = append(s.handles, w.cell())
	return w
}

// WithBorrowed calls fn with a wrapper borrowed for the duration of the call.
func WithBorrowed[T Wrapper](rt *Runtime, p gobridge.Ptr, fn func(T)) {
	var s Scope
	defer s.Close()
	fn(BorrowIn[T](&s, rt, p))
}

// Clone returns a new wrapper holding its own reference (a copy, for
// boxed records). Cloning a borrowed wrapper produces a shared one that
// survives the borrow scope.
func Clone[T Wrapper](w T) T {
	h := w.cell().acquire()
	return wrapAs[T](infoFor[T](), h)
}

// Release releases w. See Object.Release.
func Release(w Wrapper) {
	w.Release()
}

func wrapAs[T Wrapper](info *TypeInfo, h *handle) T {
	return info.wrap(h).(T)
}

func (rt *Runtime) checkNative(info *TypeInfo, p gobridge.Ptr) {
	if p == 0 {
		errors.Panic(errors.NullHandle(errors.PhaseConvert, info.Name))
	}
	if info.category != categoryObject {
		return
	}
	want := rt.TypeOf(info)
	if want == 0 {
		errors.Panic(errors.NotFound(errors.PhaseConvert, "type", info.Name))
	}
	if got := rt.abi.InstanceType(p); !rt.abi.TypeIsA(got, want) {
		errors.Panic(errors.New(errors.PhaseConvert, errors.KindTypeMismatch).
			GoType(info.goType.String()).
			NativeType(rt.TypeName(got)).
			Detail("instance is not a %s", info.Name).
			Build())
	}
}

// Downcast returns w as T after checking the native runtime type. An
// owned or shared w yields a wrapper with its own reference; a borrowed
// w yields a borrowed wrapper that expires with it. A type that does
// not match is an ordinary error, not a panic.
func Downcast[T Wrapper](w Wrapper) (T, error) {
	var zero T
	target := infoFor[T]()
	h, err := checkCast(w, target)
	if err != nil {
		return zero, err
	}
	return wrapAs[T](target, h.view(target)), nil
}

// IsA reports whether w's runtime type is T's native type or derives from it.
func IsA[T Wrapper](w Wrapper) bool {
	_, err := checkCast(w, infoFor[T]())
	return err == nil
}

func checkCast(w Wrapper, target *TypeInfo) (*handle, error) {
	h := w.cell()
	p := h.use()
	if h.info == target {
		return h, nil
	}
	if h.info.category != categoryObject || target.category != categoryObject {
		return nil, errors.New(errors.PhaseConvert, errors.KindTypeMismatch).
			GoType(target.goType.String()).
			NativeType(h.info.Name).
			Detail("%s records cannot be cast", h.info.category).
			Build()
	}
	rt := h.rt
	got := rt.abi.InstanceType(p)
	want := rt.TypeOf(target)
	if want == 0 || !rt.abi.TypeIsA(got, want) {
		return nil, errors.New(errors.PhaseConvert, errors.KindTypeMismatch).
			GoType(target.goType.String()).
			NativeType(rt.TypeName(got)).
			Detail("instance is not a %s", target.Name).
			Build()
	}
	return h, nil
}
