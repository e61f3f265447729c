package system

import (
	"encoding/binary"
	"unsafe"

	"github.com/ebitengine/purego"
	gobridge "github.com/wippyai/gobject-bridge"
)

// Struct offsets on 64-bit targets.
const (
	offObjectRefCount    = 8  // GObject.ref_count
	offParamSpecFlags    = 16 // GParamSpec.flags
	offParamSpecValueTyp = 24 // GParamSpec.value_type
	offErrorCode         = 4  // GError.code
	offErrorMessage      = 8  // GError.message
	closureSize          = 32 // sizeof(GClosure)
)

func at(p ptr) unsafe.Pointer {
	return unsafe.Pointer(uintptr(p)) //nolint:govet // p addresses native memory
}

func (b *Backend) Alloc(size uintptr) ptr { return b.glib.Malloc0(size) }

func (b *Backend) Free(p ptr) {
	if p != 0 {
		b.glib.Free(p)
	}
}

func (b *Backend) Strdup(s string) ptr { return b.glib.Strdup(s) }

func (b *Backend) GoString(p ptr) string {
	if p == 0 {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(at(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(at(p)), n))
}

func (b *Backend) StrvFree(p ptr) { b.glib.Strfreev(p) }

func (b *Backend) ReadPtr(p ptr) ptr { return *(*ptr)(at(p)) }

func (b *Backend) WritePtr(p ptr, v ptr) { *(*ptr)(at(p)) = v }

func (b *Backend) Read(p ptr, n uintptr) []byte {
	out := make([]byte, n)
	if n > 0 {
		copy(out, unsafe.Slice((*byte)(at(p)), n))
	}
	return out
}

func (b *Backend) Write(p ptr, data []byte) {
	if len(data) > 0 {
		copy(unsafe.Slice((*byte)(at(p)), len(data)), data)
	}
}

func (b *Backend) readUint32(p ptr) uint32 {
	return binary.NativeEndian.Uint32(b.Read(p, 4))
}

// TypeFromGetter calls symbol from any opened library. Results are
// cached; an unknown symbol yields 0.
func (b *Backend) TypeFromGetter(symbol string) gobridge.GType {
	if t, ok := b.getters.Load(symbol); ok {
		return t.(gobridge.GType)
	}
	addr, ok := b.lookup(symbol)
	if !ok {
		return 0
	}
	r, _, _ := purego.SyscallN(addr)
	t := gobridge.GType(r)
	b.getters.Store(symbol, t)
	return t
}

func (b *Backend) TypeFromName(name ptr) gobridge.GType { return b.gobject.TypeFromName(name) }

func (b *Backend) TypeName(t gobridge.GType) ptr { return b.gobject.TypeName(t) }

func (b *Backend) TypeIsA(t, isA gobridge.GType) bool { return b.gobject.TypeIsA(t, isA) }

func (b *Backend) TypeFundamental(t gobridge.GType) gobridge.GType {
	return b.gobject.TypeFundamental(t)
}

func (b *Backend) TypeParent(t gobridge.GType) gobridge.GType { return b.gobject.TypeParent(t) }

// InstanceType reads instance->g_class->g_type.
func (b *Backend) InstanceType(instance ptr) gobridge.GType {
	if instance == 0 {
		return 0
	}
	return gobridge.GType(b.ReadPtr(b.ReadPtr(instance)))
}

func (b *Backend) StrvType() gobridge.GType { return b.gobject.StrvGetType() }

func (b *Backend) ErrorDomain(e ptr) uint32 { return b.readUint32(e) }

func (b *Backend) ErrorCode(e ptr) int32 { return int32(b.readUint32(e + offErrorCode)) }

func (b *Backend) ErrorMessage(e ptr) ptr { return b.ReadPtr(e + offErrorMessage) }

func (b *Backend) ErrorFree(e ptr) { b.glib.ErrorFree(e) }
