package sim

import (
	"encoding/binary"

	gobridge "github.com/wippyai/gobject-bridge"
)

// gvalue is the simulator's view of a GValue. p owns what it points
// to: a string copy, an object or variant reference, or a boxed copy.
// Pointer and param values do not own p.
type gvalue struct {
	typ gobridge.GType
	b   bool
	i   int64
	u   uint64
	d   float64
	p   ptr
}

func (b *Backend) fundamental(t gobridge.GType) gobridge.GType {
	if ti, ok := b.types[t]; ok {
		return ti.fundamental
	}
	return 0
}

func (b *Backend) valueClear(v *gvalue) {
	if v.p != 0 {
		switch b.fundamental(v.typ) {
		case gobridge.TypeString:
			b.free(v.p)
		case gobridge.TypeObject, gobridge.TypeInterface:
			b.unrefObject(v.p)
		case gobridge.TypeVariant:
			b.unrefVariant(v.p)
		case gobridge.TypeBoxed:
			b.boxedFree(v.typ, v.p)
		}
	}
	*v = gvalue{typ: v.typ}
}

func (b *Backend) valueCopy(src *gvalue) gvalue {
	dst := *src
	if src.p == 0 {
		return dst
	}
	switch b.fundamental(src.typ) {
	case gobridge.TypeString:
		dst.p = b.strdup(b.cstring(src.p))
	case gobridge.TypeObject, gobridge.TypeInterface:
		b.refObject(src.p)
	case gobridge.TypeVariant:
		b.refVariant(src.p)
	case gobridge.TypeBoxed:
		dst.p = b.boxedCopy(src.typ, src.p)
	}
	return dst
}

// valueEqual compares contents, not identity, for strings and variants.
func (b *Backend) valueEqual(x, y *gvalue) bool {
	if b.fundamental(x.typ) != b.fundamental(y.typ) {
		return false
	}
	switch b.fundamental(x.typ) {
	case gobridge.TypeString:
		if x.p == 0 || y.p == 0 {
			return x.p == y.p
		}
		return b.cstring(x.p) == b.cstring(y.p)
	case gobridge.TypeVariant:
		if x.p == 0 || y.p == 0 {
			return x.p == y.p
		}
		return b.variantEqual(b.variants[x.p], b.variants[y.p])
	case gobridge.TypeBoxed:
		if x.typ == b.t.strv.id && x.p != 0 && y.p != 0 {
			return equalStrings(b.strv(x.p, -1), b.strv(y.p, -1))
		}
		return x.p == y.p
	}
	return *x == *y
}

func equalStrings(a, c []string) bool {
	if len(a) != len(c) {
		return false
	}
	for i := range a {
		if a[i] != c[i] {
			return false
		}
	}
	return true
}

func (b *Backend) stringValue(s string) gvalue {
	return gvalue{typ: gobridge.TypeString, p: b.strdup(s)}
}

// slot returns the GValue stored at v, checking its fundamental type.
func (b *Backend) slot(v ptr, want gobridge.GType, fn string) *gvalue {
	gv, ok := b.values[v]
	if !ok {
		b.critical("%s: %#x is not an initialized GValue", fn, uintptr(v))
		return &gvalue{}
	}
	if want != 0 && b.fundamental(gv.typ) != want {
		b.critical("%s: value holds %s", fn, b.typeName(gv.typ))
	}
	return gv
}

// bindValue registers gv as the contents of the GValue at v and mirrors
// its type into the first word, where G_VALUE_TYPE reads it.
func (b *Backend) bindValue(v ptr, gv *gvalue) {
	b.values[v] = gv
	binary.NativeEndian.PutUint64(b.bytes(v, 8), uint64(gv.typ))
}

func (b *Backend) unbindValue(v ptr) {
	if gv, ok := b.values[v]; ok {
		b.valueClear(gv)
		delete(b.values, v)
		clear(b.bytes(v, gobridge.ValueSize))
	}
}

// ValueInit implements g_value_init.
func (b *Backend) ValueInit(v ptr, t gobridge.GType) {
	b.mu.Lock()
	defer b.unlock()
	if _, ok := b.values[v]; ok {
		b.critical("g_value_init: value at %#x is already initialized", uintptr(v))
		return
	}
	if b.typeOf(t) == nil {
		return
	}
	b.bindValue(v, &gvalue{typ: t})
}

// ValueUnset implements g_value_unset.
func (b *Backend) ValueUnset(v ptr) {
	b.mu.Lock()
	defer b.unlock()
	if _, ok := b.values[v]; !ok {
		b.critical("g_value_unset: %#x is not an initialized GValue", uintptr(v))
		return
	}
	b.unbindValue(v)
}

// ValueType implements G_VALUE_TYPE. Zeroed memory reads as invalid.
func (b *Backend) ValueType(v ptr) gobridge.GType {
	b.mu.Lock()
	defer b.unlock()
	return gobridge.GType(binary.NativeEndian.Uint64(b.bytes(v, 8)))
}

func (b *Backend) ValueGetBoolean(v ptr) bool {
	b.mu.Lock()
	defer b.unlock()
	return b.slot(v, gobridge.TypeBoolean, "g_value_get_boolean").b
}

func (b *Backend) ValueSetBoolean(v ptr, x bool) {
	b.mu.Lock()
	defer b.unlock()
	b.slot(v, gobridge.TypeBoolean, "g_value_set_boolean").b = x
}

func (b *Backend) ValueGetInt(v ptr) int32 {
	b.mu.Lock()
	defer b.unlock()
	return int32(b.slot(v, gobridge.TypeInt, "g_value_get_int").i)
}

func (b *Backend) ValueSetInt(v ptr, x int32) {
	b.mu.Lock()
	defer b.unlock()
	b.slot(v, gobridge.TypeInt, "g_value_set_int").i = int64(x)
}

func (b *Backend) ValueGetUint(v ptr) uint32 {
	b.mu.Lock()
	defer b.unlock()
	return uint32(b.slot(v, gobridge.TypeUint, "g_value_get_uint").u)
}

func (b *Backend) ValueSetUint(v ptr, x uint32) {
	b.mu.Lock()
	defer b.unlock()
	b.slot(v, gobridge.TypeUint, "g_value_set_uint").u = uint64(x)
}

func (b *Backend) ValueGetInt64(v ptr) int64 {
	b.mu.Lock()
	defer b.unlock()
	return b.slot(v, gobridge.TypeInt64, "g_value_get_int64").i
}

func (b *Backend) ValueSetInt64(v ptr, x int64) {
	b.mu.Lock()
	defer b.unlock()
	b.slot(v, gobridge.TypeInt64, "g_value_set_int64").i = x
}

func (b *Backend) ValueGetUint64(v ptr) uint64 {
	b.mu.Lock()
	defer b.unlock()
	return b.slot(v, gobridge.TypeUint64, "g_value_get_uint64").u
}

func (b *Backend) ValueSetUint64(v ptr, x uint64) {
	b.mu.Lock()
	defer b.unlock()
	b.slot(v, gobridge.TypeUint64, "g_value_set_uint64").u = x
}

func (b *Backend) ValueGetDouble(v ptr) float64 {
	b.mu.Lock()
	defer b.unlock()
	return b.slot(v, gobridge.TypeDouble, "g_value_get_double").d
}

func (b *Backend) ValueSetDouble(v ptr, x float64) {
	b.mu.Lock()
	defer b.unlock()
	b.slot(v, gobridge.TypeDouble, "g_value_set_double").d = x
}

func (b *Backend) ValueGetEnum(v ptr) int32 {
	b.mu.Lock()
	defer b.unlock()
	return int32(b.slot(v, gobridge.TypeEnum, "g_value_get_enum").i)
}

func (b *Backend) ValueSetEnum(v ptr, x int32) {
	b.mu.Lock()
	defer b.unlock()
	b.slot(v, gobridge.TypeEnum, "g_value_set_enum").i = int64(x)
}

func (b *Backend) ValueGetFlags(v ptr) uint32 {
	b.mu.Lock()
	defer b.unlock()
	return uint32(b.slot(v, gobridge.TypeFlags, "g_value_get_flags").u)
}

func (b *Backend) ValueSetFlags(v ptr, x uint32) {
	b.mu.Lock()
	defer b.unlock()
	b.slot(v, gobridge.TypeFlags, "g_value_set_flags").u = uint64(x)
}

// ValueGetString returns the string the value owns.
func (b *Backend) ValueGetString(v ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	return b.slot(v, gobridge.TypeString, "g_value_get_string").p
}

// ValueSetString stores a copy of s.
func (b *Backend) ValueSetString(v ptr, s ptr) {
	b.mu.Lock()
	defer b.unlock()
	gv := b.slot(v, gobridge.TypeString, "g_value_set_string")
	b.valueClear(gv)
	if s != 0 {
		gv.p = b.strdup(b.cstring(s))
	}
}

// ValueGetBoxed returns the record the value owns.
func (b *Backend) ValueGetBoxed(v ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	return b.slot(v, gobridge.TypeBoxed, "g_value_get_boxed").p
}

// ValueSetBoxed stores a copy of p.
func (b *Backend) ValueSetBoxed(v ptr, p ptr) {
	b.mu.Lock()
	defer b.unlock()
	gv := b.slot(v, gobridge.TypeBoxed, "g_value_set_boxed")
	b.valueClear(gv)
	if p != 0 {
		gv.p = b.boxedCopy(gv.typ, p)
	}
}

// ValueGetObject returns the object the value references.
func (b *Backend) ValueGetObject(v ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	gv := b.slot(v, 0, "g_value_get_object")
	if f := b.fundamental(gv.typ); f != gobridge.TypeObject && f != gobridge.TypeInterface {
		b.critical("g_value_get_object: value holds %s", b.typeName(gv.typ))
	}
	return gv.p
}

// ValueSetObject stores a new reference to p.
func (b *Backend) ValueSetObject(v ptr, p ptr) {
	b.mu.Lock()
	defer b.unlock()
	gv := b.slot(v, 0, "g_value_set_object")
	if p != 0 {
		o, ok := b.objects[p]
		if !ok {
			b.critical("g_value_set_object: %#x is not an object", uintptr(p))
			return
		}
		if !b.isA(o.typ.id, gv.typ) {
			b.critical("g_value_set_object: %s is not a %s", o.typ.name, b.typeName(gv.typ))
			return
		}
		o.refs++
	}
	b.valueClear(gv)
	gv.p = p
}

// ValueGetVariant returns the variant the value references.
func (b *Backend) ValueGetVariant(v ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	return b.slot(v, gobridge.TypeVariant, "g_value_get_variant").p
}

// ValueSetVariant sinks or references p.
func (b *Backend) ValueSetVariant(v ptr, p ptr) {
	b.mu.Lock()
	defer b.unlock()
	gv := b.slot(v, gobridge.TypeVariant, "g_value_set_variant")
	if p != 0 {
		b.sinkVariant(p)
	}
	b.valueClear(gv)
	gv.p = p
}

// ValueGetPointer reads a pointer or param value.
func (b *Backend) ValueGetPointer(v ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	gv := b.slot(v, 0, "g_value_get_pointer")
	if f := b.fundamental(gv.typ); f != gobridge.TypePointer && f != gobridge.TypeParam {
		b.critical("g_value_get_pointer: value holds %s", b.typeName(gv.typ))
	}
	return gv.p
}
