package glib

import (
	gobridge "github.com/wippyai/gobject-bridge"
	"github.com/wippyai/gobject-bridge/errors"
)

// Stash owns temporary native copies of Go values for the duration of
// a call. Free releases everything it allocated.
type Stash struct {
	rt     *Runtime
	allocs []gobridge.Ptr
}

// NewStash creates an empty stash.
func NewStash(rt *Runtime) *Stash {
	return &Stash{rt: rt}
}

// CString returns a NUL-terminated copy of s.
func (s *Stash) CString(str string) gobridge.Ptr {
	p := s.rt.abi.Strdup(str)
	s.allocs = append(s.allocs, p)
	return p
}

// OptCString is CString with the empty string passed as null.
func (s *Stash) OptCString(str string) gobridge.Ptr {
	if str == "" {
		return 0
	}
	return s.CString(str)
}

// Strv returns a NULL-terminated array of C strings.
func (s *Stash) Strv(list []string) gobridge.Ptr {
	arr := s.Alloc(uintptr(len(list)+1) * gobridge.PtrSize)
	for i, str := range list {
		s.rt.abi.WritePtr(arr+gobridge.Ptr(i*gobridge.PtrSize), s.CString(str))
	}
	return arr
}

// Alloc returns zeroed native memory of n bytes.
func (s *Stash) Alloc(n uintptr) gobridge.Ptr {
	p := s.rt.abi.Alloc(n)
	s.allocs = append(s.allocs, p)
	return p
}

// Bytes returns a native copy of data.
func (s *Stash) Bytes(data []byte) gobridge.Ptr {
	p := s.Alloc(uintptr(len(data)))
	s.rt.abi.Write(p, data)
	return p
}

// Free releases every allocation in reverse order. The stash can be
// reused afterwards.
func (s *Stash) Free() {
	for i := len(s.allocs) - 1; i >= 0; i-- {
		s.rt.abi.Free(s.allocs[i])
	}
	s.allocs = s.allocs[:0]
}

// GoStringFull copies a string the caller owns and frees it.
func GoStringFull(rt *Runtime, p gobridge.Ptr) string {
	if p == 0 {
		errors.Panic(errors.NullHandle(errors.PhaseConvert, "gchar*"))
	}
	s := rt.abi.GoString(p)
	rt.abi.Free(p)
	return s
}

// GoStringNone copies a string the native side keeps.
func GoStringNone(rt *Runtime, p gobridge.Ptr) string {
	if p == 0 {
		errors.Panic(errors.NullHandle(errors.PhaseConvert, "gchar*"))
	}
	return rt.abi.GoString(p)
}

// OptStringFull is GoStringFull for nullable results.
func OptStringFull(rt *Runtime, p Nullable) (string, bool) {
	if p == 0 {
		return "", false
	}
	return GoStringFull(rt, gobridge.Ptr(p)), true
}

// OptStringNone is GoStringNone for nullable results.
func OptStringNone(rt *Runtime, p Nullable) (string, bool) {
	if p == 0 {
		return "", false
	}
	return GoStringNone(rt, gobridge.Ptr(p)), true
}

// StrvNone copies a NULL-terminated string array the native side keeps.
// A null array is empty.
func StrvNone(rt *Runtime, p gobridge.Ptr) []string {
	if p == 0 {
		return nil
	}
	var out []string
	for i := 0; ; i++ {
		e := rt.abi.ReadPtr(p + gobridge.Ptr(i*gobridge.PtrSize))
		if e == 0 {
			break
		}
		out = append(out, rt.abi.GoString(e))
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// StrvFull copies an owned string array and frees it with g_strfreev.
func StrvFull(rt *Runtime, p gobridge.Ptr) []string {
	out := StrvNone(rt, p)
	if p != 0 {
		rt.abi.StrvFree(p)
	}
	return out
}

// StrvContainer copies an array whose container the caller owns but
// whose strings it does not, and frees the container only.
func StrvContainer(rt *Runtime, p gobridge.Ptr) []string {
	out := StrvNone(rt, p)
	if p != 0 {
		rt.abi.Free(p)
	}
	return out
}
