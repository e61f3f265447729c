package sim

import (
	"sort"

	gobridge "github.com/wippyai/gobject-bridge"
)

type object struct {
	ptr      ptr
	typ      *typeInfo
	refs     uint32
	floating bool
	props    map[*pspec]*gvalue
	handlers []*handler
	data     any
}

type pspec struct {
	ptr       ptr
	name      string
	nameP     ptr
	valueType gobridge.GType
	flags     gobridge.ParamFlags
	owner     *typeInfo
	def       gvalue

	ranged   bool
	min, max int64

	// get and set replace plain storage for computed properties.
	get func(b *Backend, o *object) gvalue
	set func(b *Backend, o *object, v *gvalue)
}

const (
	readWrite     = gobridge.ParamReadable | gobridge.ParamWritable
	constructOnly = readWrite | gobridge.ParamConstructOnly
)

func (b *Backend) registerGObject() {
	b.addSignal(b.t.object, signalDef{
		name:     "notify",
		detailed: true,
		params:   []gobridge.GType{gobridge.TypeParam},
	})
	b.t.initiallyUnowned = b.newType("GInitiallyUnowned", gobridge.TypeObject, "g_initially_unowned_get_type")
}

func (b *Backend) addProperty(t *typeInfo, name string, vt gobridge.GType, flags gobridge.ParamFlags, def gvalue) *pspec {
	bl := b.heap.alloc(72, "GParamSpec")
	bl.static = true
	def.typ = vt
	ps := &pspec{
		ptr:       bl.base,
		name:      name,
		nameP:     b.staticString(name),
		valueType: vt,
		flags:     flags,
		owner:     t,
		def:       def,
	}
	t.props = append(t.props, ps)
	b.pspecs[ps.ptr] = ps
	return ps
}

func (b *Backend) findProperty(t *typeInfo, name string) *pspec {
	name = canonicalName(name)
	for cur := t; cur != nil; cur = cur.parent {
		for _, ps := range cur.props {
			if ps.name == name {
				return ps
			}
		}
	}
	return nil
}

func (b *Backend) newObject(t *typeInfo) *object {
	if t.abstract || t.fundamental != gobridge.TypeObject {
		b.critical("cannot instantiate %s", t.name)
		return nil
	}
	size := t.size
	if size < 24 {
		size = 24
	}
	o := &object{
		ptr:      b.alloc(size, t.name),
		typ:      t,
		refs:     1,
		floating: b.isA(t.id, b.t.initiallyUnowned.id),
		props:    make(map[*pspec]*gvalue),
	}
	b.objects[o.ptr] = o
	var chain []*typeInfo
	for cur := t; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for _, ps := range chain[i].props {
			if ps.get == nil && ps.set == nil {
				v := b.valueCopy(&ps.def)
				o.props[ps] = &v
			}
		}
		if chain[i].init != nil {
			chain[i].init(b, o)
		}
	}
	return o
}

func (b *Backend) object(p ptr, fn string) *object {
	o, ok := b.objects[p]
	if !ok {
		b.critical("%s: %#x is not a live object", fn, uintptr(p))
		return nil
	}
	return o
}

func (b *Backend) refObject(p ptr) {
	if o := b.object(p, "g_object_ref"); o != nil {
		o.refs++
	}
}

func (b *Backend) unrefObject(p ptr) {
	o := b.object(p, "g_object_unref")
	if o == nil {
		return
	}
	o.refs--
	if o.refs == 0 {
		b.finalizeObject(o)
	}
}

func (b *Backend) finalizeObject(o *object) {
	for _, h := range o.handlers {
		delete(b.handlers, h.id)
		b.releaseClosure(h.closure)
	}
	o.handlers = nil
	b.dropBindings(o)
	for t := o.typ; t != nil; t = t.parent {
		if t.finalize != nil {
			t.finalize(b, o)
		}
	}
	delete(b.objects, o.ptr)
	for _, v := range o.props {
		b.valueClear(v)
	}
	b.heap.release(o.ptr)
}

// liveObjects returns the objects of type t in address order.
func (b *Backend) liveObjects(t *typeInfo) []*object {
	var out []*object
	for _, o := range b.objects {
		if b.isA(o.typ.id, t.id) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ptr < out[j].ptr })
	return out
}

// ObjectRef implements g_object_ref.
func (b *Backend) ObjectRef(p ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	b.refObject(p)
	return p
}

// ObjectUnref implements g_object_unref.
func (b *Backend) ObjectUnref(p ptr) {
	b.mu.Lock()
	defer b.unlock()
	b.unrefObject(p)
}

// ObjectRefSink implements g_object_ref_sink.
func (b *Backend) ObjectRefSink(p ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	o := b.object(p, "g_object_ref_sink")
	if o == nil {
		return p
	}
	if o.floating {
		o.floating = false
	} else {
		o.refs++
	}
	return p
}

// ObjectIsFloating implements g_object_is_floating.
func (b *Backend) ObjectIsFloating(p ptr) bool {
	b.mu.Lock()
	defer b.unlock()
	o := b.object(p, "g_object_is_floating")
	return o != nil && o.floating
}

// ObjectRefCount reads the reference count field.
func (b *Backend) ObjectRefCount(p ptr) uint32 {
	b.mu.Lock()
	defer b.unlock()
	if o := b.object(p, "ref_count"); o != nil {
		return o.refs
	}
	return 0
}

// ObjectFindProperty implements g_object_class_find_property on the
// instance's class.
func (b *Backend) ObjectFindProperty(obj ptr, name ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	o := b.object(obj, "g_object_class_find_property")
	if o == nil {
		return 0
	}
	if ps := b.findProperty(o.typ, b.cstring(name)); ps != nil {
		return ps.ptr
	}
	return 0
}

func (b *Backend) pspec(p ptr) *pspec {
	ps, ok := b.pspecs[p]
	if !ok {
		b.critical("%#x is not a GParamSpec", uintptr(p))
		return &pspec{}
	}
	return ps
}

// ParamSpecName returns the canonical property name.
func (b *Backend) ParamSpecName(p ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	return b.pspec(p).nameP
}

// ParamSpecFlags returns the GParamFlags of a property.
func (b *Backend) ParamSpecFlags(p ptr) gobridge.ParamFlags {
	b.mu.Lock()
	defer b.unlock()
	return b.pspec(p).flags
}

// ParamSpecValueType returns the value type of a property.
func (b *Backend) ParamSpecValueType(p ptr) gobridge.GType {
	b.mu.Lock()
	defer b.unlock()
	return b.pspec(p).valueType
}

// ObjectGetProperty implements g_object_get_property.
func (b *Backend) ObjectGetProperty(obj, name, value ptr) {
	b.mu.Lock()
	defer b.unlock()
	o := b.object(obj, "g_object_get_property")
	if o == nil {
		return
	}
	pname := b.cstring(name)
	ps := b.findProperty(o.typ, pname)
	if ps == nil {
		b.critical("g_object_get_property: object class '%s' has no property named '%s'", o.typ.name, pname)
		return
	}
	if ps.flags&gobridge.ParamReadable == 0 {
		b.critical("g_object_get_property: property '%s' of object class '%s' is not readable", pname, o.typ.name)
		return
	}
	dst := b.slot(value, 0, "g_object_get_property")
	if !b.isA(ps.valueType, dst.typ) {
		b.critical("g_object_get_property: can't retrieve property '%s' of type '%s' as value of type '%s'",
			pname, b.typeName(ps.valueType), b.typeName(dst.typ))
		return
	}
	v := b.propertyValue(o, ps)
	t := dst.typ
	b.valueClear(dst)
	*dst = v
	dst.typ = t
}

// propertyValue returns an owned copy of the current value.
func (b *Backend) propertyValue(o *object, ps *pspec) gvalue {
	if ps.get != nil {
		return ps.get(b, o)
	}
	return b.valueCopy(o.props[ps])
}

// ObjectSetProperty implements g_object_set_property.
func (b *Backend) ObjectSetProperty(obj, name, value ptr) {
	b.mu.Lock()
	defer b.unlock()
	o := b.object(obj, "g_object_set_property")
	if o == nil {
		return
	}
	pname := b.cstring(name)
	ps := b.findProperty(o.typ, pname)
	if ps == nil {
		b.critical("g_object_set_property: object class '%s' has no property named '%s'", o.typ.name, pname)
		return
	}
	if ps.flags&gobridge.ParamWritable == 0 || ps.flags&gobridge.ParamConstructOnly != 0 {
		b.critical("g_object_set_property: property '%s' of object class '%s' is not writable", pname, o.typ.name)
		return
	}
	src := b.slot(value, 0, "g_object_set_property")
	if !b.isA(src.typ, ps.valueType) {
		b.critical("g_object_set_property: unable to set property '%s' of type '%s' from value of type '%s'",
			pname, b.typeName(ps.valueType), b.typeName(src.typ))
		return
	}
	if f := b.fundamental(ps.valueType); src.p != 0 && (f == gobridge.TypeObject || f == gobridge.TypeInterface) {
		if v, ok := b.objects[src.p]; !ok || !b.isA(v.typ.id, ps.valueType) {
			b.critical("g_object_set_property: value for '%s' is not a %s", pname, b.typeName(ps.valueType))
			return
		}
	}
	v := b.valueCopy(src)
	v.typ = ps.valueType
	b.setProperty(o, ps, &v)
}

// setProperty stores v, which it takes ownership of, and queues the
// notify emission.
func (b *Backend) setProperty(o *object, ps *pspec, v *gvalue) {
	if ps.ranged && (v.i < ps.min || v.i > ps.max) {
		b.critical("value %d of type '%s' is invalid or out of range for property '%s' of type '%s'",
			v.i, o.typ.name, ps.name, b.typeName(ps.valueType))
		b.valueClear(v)
		return
	}
	if ps.set != nil {
		ps.set(b, o, v)
	} else {
		old := o.props[ps]
		o.props[ps] = v
		if old != nil {
			b.valueClear(old)
		}
	}
	b.notify(o, ps)
	b.propertyChanged(o, ps)
}

// notify queues "notify::name" on o.
func (b *Backend) notify(o *object, ps *pspec) {
	b.queueEmit(o, "notify", ps.name, gvalue{typ: gobridge.TypeParam, p: ps.ptr})
}
