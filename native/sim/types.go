package sim

import (
	"strings"

	gobridge "github.com/wippyai/gobject-bridge"
)

type typeInfo struct {
	id          gobridge.GType
	name        string
	nameP       ptr
	parent      *typeInfo
	fundamental gobridge.GType
	ifaces      []gobridge.GType
	abstract    bool
	size        uintptr

	props   []*pspec
	signals map[string]*signalDef

	// boxed records
	copy func(b *Backend, p ptr) ptr
	free func(b *Backend, p ptr)

	// objects, run root to leaf on creation and leaf to root on finalize
	init     func(b *Backend, o *object)
	finalize func(b *Backend, o *object)
}

// builtinTypes caches the types the simulator itself instantiates.
type builtinTypes struct {
	object, initiallyUnowned *typeInfo
	strv                     *typeInfo

	settings, settingsBackend, memoryBackend, nullBackend   *typeInfo
	settingsSchema, settingsSchemaKey, settingsSchemaSource *typeInfo
	action, settingsAction                                  *typeInfo

	cellRenderer, cellRendererText, cellRendererCombo *typeInfo
	treeModel, listStore, treePath, treeIter          *typeInfo

	rectangle, rectangleInt *typeInfo
}

func (b *Backend) registerFundamentals() {
	for _, f := range []struct {
		id   gobridge.GType
		name string
	}{
		{gobridge.TypeNone, "void"},
		{gobridge.TypeInterface, "GInterface"},
		{gobridge.TypeChar, "gchar"},
		{gobridge.TypeUChar, "guchar"},
		{gobridge.TypeBoolean, "gboolean"},
		{gobridge.TypeInt, "gint"},
		{gobridge.TypeUint, "guint"},
		{gobridge.TypeLong, "glong"},
		{gobridge.TypeUlong, "gulong"},
		{gobridge.TypeInt64, "gint64"},
		{gobridge.TypeUint64, "guint64"},
		{gobridge.TypeEnum, "GEnum"},
		{gobridge.TypeFlags, "GFlags"},
		{gobridge.TypeFloat, "gfloat"},
		{gobridge.TypeDouble, "gdouble"},
		{gobridge.TypeString, "gchararray"},
		{gobridge.TypePointer, "gpointer"},
		{gobridge.TypeBoxed, "GBoxed"},
		{gobridge.TypeParam, "GParam"},
		{gobridge.TypeObject, "GObject"},
		{gobridge.TypeVariant, "GVariant"},
	} {
		t := &typeInfo{id: f.id, name: f.name, nameP: b.staticString(f.name), fundamental: f.id}
		b.types[t.id] = t
		b.byName[t.name] = t
	}
	b.t.object = b.types[gobridge.TypeObject]
	b.t.object.size = 24
	b.getters["g_object_get_type"] = gobridge.TypeObject

	b.t.strv = b.newType("GStrv", gobridge.TypeBoxed, "g_strv_get_type")
	b.t.strv.copy = func(b *Backend, p ptr) ptr { return b.newStrv(b.strv(p, -1)) }
	b.t.strv.free = func(b *Backend, p ptr) { b.strvFree(p) }
}

// newType registers a derived type. getter may be empty.
func (b *Backend) newType(name string, parent gobridge.GType, getter string) *typeInfo {
	pt, ok := b.types[parent]
	if !ok {
		panic("sim: unknown parent type for " + name)
	}
	t := &typeInfo{
		id:          b.nextType,
		name:        name,
		nameP:       b.staticString(name),
		parent:      pt,
		fundamental: pt.fundamental,
		size:        pt.size,
		copy:        pt.copy,
		free:        pt.free,
	}
	b.nextType += 0x10
	b.types[t.id] = t
	b.byName[name] = t
	if getter != "" {
		b.getters[getter] = t.id
	}
	return t
}

func (b *Backend) typeOf(t gobridge.GType) *typeInfo {
	ti, ok := b.types[t]
	if !ok {
		b.critical("invalid type id %#x", uintptr(t))
		return nil
	}
	return ti
}

func (b *Backend) isA(t, want gobridge.GType) bool {
	if t == want {
		return true
	}
	for cur := b.types[t]; cur != nil; cur = cur.parent {
		if cur.id == want {
			return true
		}
		for _, i := range cur.ifaces {
			if i == want {
				return true
			}
		}
	}
	return false
}

func canonicalName(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

// TypeFromGetter resolves a *_get_type symbol. Unknown symbols yield 0.
func (b *Backend) TypeFromGetter(symbol string) gobridge.GType {
	b.mu.Lock()
	defer b.unlock()
	return b.getters[symbol]
}

// TypeFromName implements g_type_from_name.
func (b *Backend) TypeFromName(name ptr) gobridge.GType {
	b.mu.Lock()
	defer b.unlock()
	if t, ok := b.byName[b.cstring(name)]; ok {
		return t.id
	}
	return 0
}

// TypeName implements g_type_name.
func (b *Backend) TypeName(t gobridge.GType) ptr {
	b.mu.Lock()
	defer b.unlock()
	if ti, ok := b.types[t]; ok {
		return ti.nameP
	}
	return 0
}

// TypeIsA implements g_type_is_a.
func (b *Backend) TypeIsA(t, isA gobridge.GType) bool {
	b.mu.Lock()
	defer b.unlock()
	return b.isA(t, isA)
}

// TypeFundamental implements G_TYPE_FUNDAMENTAL.
func (b *Backend) TypeFundamental(t gobridge.GType) gobridge.GType {
	b.mu.Lock()
	defer b.unlock()
	if ti, ok := b.types[t]; ok {
		return ti.fundamental
	}
	return 0
}

// TypeParent implements g_type_parent.
func (b *Backend) TypeParent(t gobridge.GType) gobridge.GType {
	b.mu.Lock()
	defer b.unlock()
	if ti, ok := b.types[t]; ok && ti.parent != nil {
		return ti.parent.id
	}
	return 0
}

// InstanceType implements G_TYPE_FROM_INSTANCE.
func (b *Backend) InstanceType(instance ptr) gobridge.GType {
	b.mu.Lock()
	defer b.unlock()
	o, ok := b.objects[instance]
	if !ok {
		b.critical("%#x is not an instance", uintptr(instance))
		return 0
	}
	return o.typ.id
}

// StrvType implements G_TYPE_STRV.
func (b *Backend) StrvType() gobridge.GType {
	return b.t.strv.id
}

// BoxedCopy implements g_boxed_copy.
func (b *Backend) BoxedCopy(t gobridge.GType, p ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	return b.boxedCopy(t, p)
}

// BoxedFree implements g_boxed_free.
func (b *Backend) BoxedFree(t gobridge.GType, p ptr) {
	b.mu.Lock()
	defer b.unlock()
	b.boxedFree(t, p)
}

func (b *Backend) boxedCopy(t gobridge.GType, p ptr) ptr {
	ti := b.typeOf(t)
	if ti == nil || ti.copy == nil {
		b.critical("g_boxed_copy: type %#x is not boxed", uintptr(t))
		return 0
	}
	if p == 0 {
		b.critical("g_boxed_copy: null pointer")
		return 0
	}
	return ti.copy(b, p)
}

func (b *Backend) boxedFree(t gobridge.GType, p ptr) {
	ti := b.typeOf(t)
	if ti == nil || ti.free == nil {
		b.critical("g_boxed_free: type %#x is not boxed", uintptr(t))
		return
	}
	if p == 0 {
		b.critical("g_boxed_free: null pointer")
		return
	}
	ti.free(b, p)
}

// plainBoxed gives t a bytewise copy and free, for fixed-size structs.
func (b *Backend) plainBoxed(t *typeInfo) {
	t.copy = func(b *Backend, p ptr) ptr {
		bl, off, ok := b.heap.find(p)
		if !ok || off != 0 {
			b.critical("copy of %s at unmapped address %#x", t.name, uintptr(p))
			return 0
		}
		cp := b.heap.alloc(uintptr(len(bl.data)), t.name)
		copy(cp.data, bl.data)
		return cp.base
	}
	t.free = func(b *Backend, p ptr) { b.free(p) }
}

func (b *Backend) typeName(t gobridge.GType) string {
	if ti, ok := b.types[t]; ok {
		return ti.name
	}
	return "(invalid)"
}
