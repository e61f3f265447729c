package system

import gobridge "github.com/wippyai/gobject-bridge"

func (b *Backend) ObjectRef(p ptr) ptr           { return b.gobject.ObjectRef(p) }
func (b *Backend) ObjectUnref(p ptr)             { b.gobject.ObjectUnref(p) }
func (b *Backend) ObjectRefSink(p ptr) ptr       { return b.gobject.ObjectRefSink(p) }
func (b *Backend) ObjectIsFloating(p ptr) bool   { return b.gobject.ObjectIsFloating(p) }
func (b *Backend) ObjectRefCount(p ptr) uint32   { return b.readUint32(p + offObjectRefCount) }
func (b *Backend) ParamSpecName(pspec ptr) ptr   { return b.gobject.ParamSpecGetName(pspec) }
func (b *Backend) ObjectGetProperty(o, n, v ptr) { b.gobject.ObjectGetProperty(o, n, v) }
func (b *Backend) ObjectSetProperty(o, n, v ptr) { b.gobject.ObjectSetProperty(o, n, v) }

// ObjectFindProperty looks name up on the class of obj.
func (b *Backend) ObjectFindProperty(obj ptr, name ptr) ptr {
	return b.gobject.ObjectClassFindProperty(b.ReadPtr(obj), name)
}

func (b *Backend) ParamSpecFlags(pspec ptr) gobridge.ParamFlags {
	return gobridge.ParamFlags(b.readUint32(pspec + offParamSpecFlags))
}

func (b *Backend) ParamSpecValueType(pspec ptr) gobridge.GType {
	return gobridge.GType(b.ReadPtr(pspec + offParamSpecValueTyp))
}

func (b *Backend) BoxedCopy(t gobridge.GType, p ptr) ptr { return b.gobject.BoxedCopy(t, p) }
func (b *Backend) BoxedFree(t gobridge.GType, p ptr)     { b.gobject.BoxedFree(t, p) }

func (b *Backend) ValueInit(v ptr, t gobridge.GType) { b.gobject.ValueInit(v, t) }
func (b *Backend) ValueUnset(v ptr)                  { b.gobject.ValueUnset(v) }

// ValueType reads GValue.g_type.
func (b *Backend) ValueType(v ptr) gobridge.GType { return gobridge.GType(b.ReadPtr(v)) }

func (b *Backend) ValueGetBoolean(v ptr) bool      { return b.gobject.ValueGetBoolean(v) }
func (b *Backend) ValueSetBoolean(v ptr, x bool)   { b.gobject.ValueSetBoolean(v, x) }
func (b *Backend) ValueGetInt(v ptr) int32         { return b.gobject.ValueGetInt(v) }
func (b *Backend) ValueSetInt(v ptr, x int32)      { b.gobject.ValueSetInt(v, x) }
func (b *Backend) ValueGetUint(v ptr) uint32       { return b.gobject.ValueGetUint(v) }
func (b *Backend) ValueSetUint(v ptr, x uint32)    { b.gobject.ValueSetUint(v, x) }
func (b *Backend) ValueGetInt64(v ptr) int64       { return b.gobject.ValueGetInt64(v) }
func (b *Backend) ValueSetInt64(v ptr, x int64)    { b.gobject.ValueSetInt64(v, x) }
func (b *Backend) ValueGetUint64(v ptr) uint64     { return b.gobject.ValueGetUint64(v) }
func (b *Backend) ValueSetUint64(v ptr, x uint64)  { b.gobject.ValueSetUint64(v, x) }
func (b *Backend) ValueGetDouble(v ptr) float64    { return b.gobject.ValueGetDouble(v) }
func (b *Backend) ValueSetDouble(v ptr, x float64) { b.gobject.ValueSetDouble(v, x) }
func (b *Backend) ValueGetEnum(v ptr) int32        { return b.gobject.ValueGetEnum(v) }
func (b *Backend) ValueSetEnum(v ptr, x int32)     { b.gobject.ValueSetEnum(v, x) }
func (b *Backend) ValueGetFlags(v ptr) uint32      { return b.gobject.ValueGetFlags(v) }
func (b *Backend) ValueSetFlags(v ptr, x uint32)   { b.gobject.ValueSetFlags(v, x) }
func (b *Backend) ValueGetString(v ptr) ptr        { return b.gobject.ValueGetString(v) }
func (b *Backend) ValueSetString(v ptr, s ptr)     { b.gobject.ValueSetString(v, s) }
func (b *Backend) ValueGetBoxed(v ptr) ptr         { return b.gobject.ValueGetBoxed(v) }
func (b *Backend) ValueSetBoxed(v ptr, p ptr)      { b.gobject.ValueSetBoxed(v, p) }
func (b *Backend) ValueGetObject(v ptr) ptr        { return b.gobject.ValueGetObject(v) }
func (b *Backend) ValueSetObject(v ptr, p ptr)     { b.gobject.ValueSetObject(v, p) }
func (b *Backend) ValueGetVariant(v ptr) ptr       { return b.gobject.ValueGetVariant(v) }
func (b *Backend) ValueSetVariant(v ptr, p ptr)    { b.gobject.ValueSetVariant(v, p) }

// ValueGetPointer also serves GParamSpec values, which GObject keeps
// apart from G_TYPE_POINTER.
func (b *Backend) ValueGetPointer(v ptr) ptr {
	if b.gobject.TypeFundamental(b.ValueType(v)) == gobridge.TypeParam {
		return b.gobject.ValueGetParam(v)
	}
	return b.gobject.ValueGetPointer(v)
}
