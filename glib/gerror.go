package glib

import (
	gobridge "github.com/wippyai/gobject-bridge"
	"github.com/wippyai/gobject-bridge/errors"
)

// TakeError converts an owned GError into *errors.NativeError and frees
// it. A null pointer means success and yields nil.
func TakeError(rt *Runtime, p gobridge.Ptr) error {
	if p == 0 {
		return nil
	}
	defer rt.abi.ErrorFree(p)
	msg := ""
	if m := rt.abi.ErrorMessage(p); m != 0 {
		msg = rt.abi.GoString(m)
	}
	return &errors.NativeError{
		Domain:  rt.Quark(rt.abi.ErrorDomain(p)),
		Code:    rt.abi.ErrorCode(p),
		Message: msg,
	}
}

// ErrorSlot is a GError** out-parameter.
type ErrorSlot struct {
	rt  *Runtime
	ptr gobridge.Ptr
}

// NewErrorSlot allocates a slot initialized to null.
func NewErrorSlot(rt *Runtime) *ErrorSlot {
	return &ErrorSlot{rt: rt, ptr: rt.abi.Alloc(gobridge.PtrSize)}
}

// Native returns the GError** to pass to the native call.
func (s *ErrorSlot) Native() gobridge.Ptr {
	return s.ptr
}

// Take converts the error the call stored, if any, and frees the slot.
func (s *ErrorSlot) Take() error {
	if s.ptr == 0 {
		return nil
	}
	err := TakeError(s.rt, s.rt.abi.ReadPtr(s.ptr))
	s.rt.abi.Free(s.ptr)
	s.ptr = 0
	return err
}
