package sim

import (
	"slices"
	"sort"
	"strings"

	gobridge "github.com/wippyai/gobject-bridge"
)

// GSettingsBindFlags.
const (
	BindGet           uint32 = 1 << 0
	BindSet           uint32 = 1 << 1
	BindNoSensitivity uint32 = 1 << 2
	BindGetNoChanges  uint32 = 1 << 3
	BindInvertBoolean uint32 = 1 << 4
)

type gioState struct {
	defaultSource  *schemaSource
	defaultBackend *object
	sources        map[ptr]*schemaSource
	schemas        map[ptr]*schemaRec
	keys           map[ptr]*keyRec
	bindings       []*binding

	delayApply, hasUnapplied *pspec
}

func (g *gioState) record(p ptr) *int32 {
	if s, ok := g.sources[p]; ok {
		return &s.refs
	}
	if s, ok := g.schemas[p]; ok {
		return &s.refs
	}
	if k, ok := g.keys[p]; ok {
		return &k.refs
	}
	return nil
}

type schemaSource struct {
	ptr     ptr
	refs    int32
	parent  *schemaSource
	schemas map[string]*schemaRec
}

type schemaRec struct {
	ptr    ptr
	refs   int32
	source *schemaSource
	spec   SchemaSpec
	idP    ptr
	pathP  ptr
	keys   []*keyRec
	byName map[string]*keyRec
}

type keyRec struct {
	ptr      ptr
	refs     int32
	schema   *schemaRec
	spec     KeySpec
	nameP    ptr
	summaryP ptr
	descP    ptr
	typeP    ptr
	def      *variant
	min, max any
}

type settingsState struct {
	schema  *schemaRec
	path    string
	backend *object
	delay   bool
	pending map[string]*variant
	order   []string
}

type backendState struct {
	null   bool
	values map[string]*variant
	locked map[string]bool
}

type actionState struct {
	settings *object
	key      *keyRec
	nameP    ptr
}

type binding struct {
	settings *object
	key      *keyRec
	target   *object
	prop     *pspec
	flags    uint32
	writable bool
	inverted bool
}

func (b *Backend) registerGIO() {
	g := &b.gio
	g.sources = make(map[ptr]*schemaSource)
	g.schemas = make(map[ptr]*schemaRec)
	g.keys = make(map[ptr]*keyRec)

	t := &b.t
	t.settingsSchemaSource = b.newType("GSettingsSchemaSource", gobridge.TypeBoxed, "g_settings_schema_source_get_type")
	t.settingsSchemaSource.copy = func(b *Backend, p ptr) ptr { b.source(p, "ref").refs++; return p }
	t.settingsSchemaSource.free = func(b *Backend, p ptr) { b.unrefSource(p) }
	t.settingsSchema = b.newType("GSettingsSchema", gobridge.TypeBoxed, "g_settings_schema_get_type")
	t.settingsSchema.copy = func(b *Backend, p ptr) ptr { b.schema(p, "ref").refs++; return p }
	t.settingsSchema.free = func(b *Backend, p ptr) { b.unrefSchema(b.schema(p, "unref")) }
	t.settingsSchemaKey = b.newType("GSettingsSchemaKey", gobridge.TypeBoxed, "g_settings_schema_key_get_type")
	t.settingsSchemaKey.copy = func(b *Backend, p ptr) ptr { b.refKey(b.key(p, "ref")); return p }
	t.settingsSchemaKey.free = func(b *Backend, p ptr) { b.unrefKey(b.key(p, "unref")) }

	g.defaultSource = b.newSource(nil)

	t.settingsBackend = b.newType("GSettingsBackend", gobridge.TypeObject, "g_settings_backend_get_type")
	t.settingsBackend.abstract = true
	t.settingsBackend.init = func(b *Backend, o *object) {
		o.data = &backendState{values: make(map[string]*variant), locked: make(map[string]bool)}
	}
	t.settingsBackend.finalize = func(b *Backend, o *object) {
		for _, v := range o.data.(*backendState).values {
			b.unrefVariant(v.ptr)
		}
	}
	t.memoryBackend = b.newType("GMemorySettingsBackend", t.settingsBackend.id, "g_memory_settings_backend_get_type")
	t.nullBackend = b.newType("GNullSettingsBackend", t.settingsBackend.id, "g_null_settings_backend_get_type")
	t.nullBackend.init = func(b *Backend, o *object) {
		o.data.(*backendState).null = true
	}

	s := b.newType("GSettings", gobridge.TypeObject, "g_settings_get_type")
	t.settings = s
	s.finalize = func(b *Backend, o *object) {
		st := o.data.(*settingsState)
		for _, v := range st.pending {
			if v != nil {
				b.unrefVariant(v.ptr)
			}
		}
		b.unrefSchema(st.schema)
		b.unrefObject(st.backend.ptr)
	}
	b.addProperty(s, "backend", t.settingsBackend.id, constructOnly, gvalue{}).get = func(b *Backend, o *object) gvalue {
		be := o.data.(*settingsState).backend
		be.refs++
		return gvalue{typ: t.settingsBackend.id, p: be.ptr}
	}
	g.delayApply = b.addProperty(s, "delay-apply", gobridge.TypeBoolean, gobridge.ParamReadable, gvalue{})
	g.delayApply.get = func(b *Backend, o *object) gvalue {
		return gvalue{typ: gobridge.TypeBoolean, b: o.data.(*settingsState).delay}
	}
	g.hasUnapplied = b.addProperty(s, "has-unapplied", gobridge.TypeBoolean, gobridge.ParamReadable, gvalue{})
	g.hasUnapplied.get = func(b *Backend, o *object) gvalue {
		return gvalue{typ: gobridge.TypeBoolean, b: len(o.data.(*settingsState).pending) > 0}
	}
	b.addProperty(s, "path", gobridge.TypeString, constructOnly, gvalue{}).get = func(b *Backend, o *object) gvalue {
		return b.stringValue(o.data.(*settingsState).path)
	}
	b.addProperty(s, "schema-id", gobridge.TypeString, constructOnly, gvalue{}).get = func(b *Backend, o *object) gvalue {
		return b.stringValue(o.data.(*settingsState).schema.spec.ID)
	}
	b.addProperty(s, "settings-schema", t.settingsSchema.id, constructOnly, gvalue{}).get = func(b *Backend, o *object) gvalue {
		sc := o.data.(*settingsState).schema
		sc.refs++
		return gvalue{typ: t.settingsSchema.id, p: sc.ptr}
	}

	b.addSignal(s, signalDef{
		name:     "changed",
		detailed: true,
		params:   []gobridge.GType{gobridge.TypeString},
		class:    (*Backend).changedClass,
	})
	b.addSignal(s, signalDef{
		name:        "change-event",
		params:      []gobridge.GType{gobridge.TypePointer, gobridge.TypeInt},
		ret:         gobridge.TypeBoolean,
		trueHandled: true,
		class:       (*Backend).changeEventClass,
	})
	b.addSignal(s, signalDef{
		name:     "writable-changed",
		detailed: true,
		params:   []gobridge.GType{gobridge.TypeString},
		class:    (*Backend).writableChangedClass,
	})
	b.addSignal(s, signalDef{
		name:        "writable-change-event",
		params:      []gobridge.GType{gobridge.TypeUint},
		ret:         gobridge.TypeBoolean,
		trueHandled: true,
		class:       (*Backend).writableChangeEventClass,
	})

	t.action = b.newType("GAction", gobridge.TypeInterface, "g_action_get_type")
	t.settingsAction = b.newType("GSettingsAction", gobridge.TypeObject, "")
	t.settingsAction.ifaces = []gobridge.GType{t.action.id}
	t.settingsAction.finalize = func(b *Backend, o *object) {
		a := o.data.(*actionState)
		b.free(a.nameP)
		b.unrefObject(a.settings.ptr)
	}
}

// Schema records.

func (b *Backend) newSource(parent *schemaSource) *schemaSource {
	src := &schemaSource{
		ptr:     b.alloc(16, "GSettingsSchemaSource"),
		refs:    1,
		parent:  parent,
		schemas: make(map[string]*schemaRec),
	}
	if parent != nil {
		parent.refs++
	}
	b.gio.sources[src.ptr] = src
	return src
}

func (b *Backend) source(p ptr, fn string) *schemaSource {
	src, ok := b.gio.sources[p]
	if !ok {
		b.critical("g_settings_schema_source_%s: %#x is not a schema source", fn, uintptr(p))
		return &schemaSource{schemas: map[string]*schemaRec{}, refs: 2}
	}
	return src
}

func (b *Backend) unrefSource(p ptr) {
	src := b.source(p, "unref")
	src.refs--
	if src.refs > 0 || src.ptr == 0 {
		return
	}
	for _, sc := range src.schemas {
		b.unrefSchema(sc)
	}
	delete(b.gio.sources, p)
	b.free(p)
	if src.parent != nil {
		b.unrefSource(src.parent.ptr)
	}
}

func (src *schemaSource) lookup(id string, recursive bool) *schemaRec {
	for cur := src; cur != nil; cur = cur.parent {
		if sc, ok := cur.schemas[id]; ok {
			return sc
		}
		if !recursive {
			break
		}
	}
	return nil
}

func (b *Backend) newSchema(src *schemaSource, spec SchemaSpec) *schemaRec {
	sc := &schemaRec{
		ptr:    b.alloc(16, "GSettingsSchema"),
		refs:   1,
		source: src,
		spec:   spec,
		idP:    b.strdup(spec.ID),
		byName: make(map[string]*keyRec),
	}
	if spec.Path != "" {
		sc.pathP = b.strdup(spec.Path)
	}
	for _, ks := range spec.Keys {
		k := &keyRec{
			ptr:    b.alloc(16, "GSettingsSchemaKey"),
			schema: sc,
			spec:   ks,
			nameP:  b.strdup(ks.Name),
			typeP:  b.strdup(ks.Type),
		}
		if ks.Summary != "" {
			k.summaryP = b.strdup(ks.Summary)
		}
		if ks.Description != "" {
			k.descP = b.strdup(ks.Description)
		}
		typ, val, _ := ParseVariantText(ks.Type, ks.Default)
		k.def = b.newVariant(typ, val)
		k.def.floating = false
		if ks.Range != nil {
			_, k.min, _ = ParseVariantText(ks.Type, ks.Range.Min)
			_, k.max, _ = ParseVariantText(ks.Type, ks.Range.Max)
		}
		sc.keys = append(sc.keys, k)
		sc.byName[ks.Name] = k
		b.gio.keys[k.ptr] = k
	}
	b.gio.schemas[sc.ptr] = sc
	return sc
}

func (b *Backend) schema(p ptr, fn string) *schemaRec {
	sc, ok := b.gio.schemas[p]
	if !ok {
		b.critical("g_settings_schema_%s: %#x is not a schema", fn, uintptr(p))
		return nil
	}
	return sc
}

func (b *Backend) unrefSchema(sc *schemaRec) {
	if sc == nil {
		return
	}
	sc.refs--
	if sc.refs > 0 {
		return
	}
	for _, k := range sc.keys {
		delete(b.gio.keys, k.ptr)
		b.free(k.nameP)
		b.free(k.typeP)
		b.free(k.summaryP)
		b.free(k.descP)
		b.unrefVariant(k.def.ptr)
		b.free(k.ptr)
	}
	delete(b.gio.schemas, sc.ptr)
	b.free(sc.idP)
	b.free(sc.pathP)
	b.free(sc.ptr)
}

func (b *Backend) key(p ptr, fn string) *keyRec {
	k, ok := b.gio.keys[p]
	if !ok {
		b.critical("g_settings_schema_key_%s: %#x is not a schema key", fn, uintptr(p))
		return nil
	}
	return k
}

// An outside reference to a key also keeps its schema alive.
func (b *Backend) refKey(k *keyRec) {
	if k != nil {
		k.refs++
		k.schema.refs++
	}
}

func (b *Backend) unrefKey(k *keyRec) {
	if k != nil {
		k.refs--
		b.unrefSchema(k.schema)
	}
}

// rangeCheck implements g_settings_schema_key_range_check.
func (b *Backend) rangeCheck(k *keyRec, v *variant) bool {
	if v == nil || v.typ != k.spec.Type {
		return false
	}
	if k.min != nil && (compare(v.val, k.min) < 0 || compare(v.val, k.max) > 0) {
		return false
	}
	if len(k.spec.Enum) > 0 && enumValue(k.spec.Enum, v.val.(string)) == nil {
		return false
	}
	if len(k.spec.Flags) > 0 {
		for _, nick := range v.val.([]string) {
			if enumValue(k.spec.Flags, nick) == nil {
				return false
			}
		}
	}
	return true
}

func enumValue(values []EnumValue, nick string) *EnumValue {
	for i := range values {
		if values[i].Nick == nick {
			return &values[i]
		}
	}
	return nil
}

func compare(a, c any) int {
	switch x := a.(type) {
	case int32:
		return cmp3(int64(x), int64(c.(int32)))
	case int64:
		return cmp3(x, c.(int64))
	case uint32:
		return cmp3(uint64(x), uint64(c.(uint32)))
	case uint64:
		return cmp3(x, c.(uint64))
	case float64:
		return cmp3(x, c.(float64))
	}
	return 0
}

func cmp3[T int64 | uint64 | float64](a, c T) int {
	switch {
	case a < c:
		return -1
	case a > c:
		return 1
	}
	return 0
}

// Settings.

func (b *Backend) settings(p ptr, fn string) (*object, *settingsState) {
	o := b.object(p, fn)
	if o == nil || !b.isA(o.typ.id, b.t.settings.id) {
		if o != nil {
			b.critical("%s: %s is not a GSettings", fn, o.typ.name)
		}
		return nil, nil
	}
	return o, o.data.(*settingsState)
}

func (b *Backend) settingsKey(st *settingsState, name, fn string) *keyRec {
	k, ok := st.schema.byName[name]
	if !ok {
		b.critical("%s: settings schema '%s' does not contain a key named '%s'", fn, st.schema.spec.ID, name)
		return nil
	}
	return k
}

func (b *Backend) defaultBackend() *object {
	if b.gio.defaultBackend == nil {
		b.gio.defaultBackend = b.newObject(b.t.memoryBackend)
	}
	return b.gio.defaultBackend
}

func validPath(p string) bool {
	return strings.HasPrefix(p, "/") && strings.HasSuffix(p, "/") && !strings.Contains(p, "//")
}

// newSettings implements the GSettings constructors. backend may be
// nil for the default backend and path empty for the schema's own.
func (b *Backend) newSettings(sc *schemaRec, backend *object, path, fn string) ptr {
	if sc == nil {
		return 0
	}
	if path == "" {
		if sc.spec.Path == "" {
			b.critical("%s: attempting to create schema '%s' without a path", fn, sc.spec.ID)
			return 0
		}
		path = sc.spec.Path
	}
	if !validPath(path) {
		b.critical("%s: invalid path '%s'", fn, path)
		return 0
	}
	if sc.spec.Path != "" && sc.spec.Path != path {
		b.critical("%s: settings object created with schema '%s' and path '%s', but path '%s' is specified by schema",
			fn, sc.spec.ID, path, sc.spec.Path)
		return 0
	}
	if backend == nil {
		backend = b.defaultBackend()
	}
	o := b.newObject(b.t.settings)
	sc.refs++
	backend.refs++
	o.data = &settingsState{schema: sc, path: path, backend: backend, pending: make(map[string]*variant)}
	return o.ptr
}

func (b *Backend) lookupDefault(id ptr, fn string) *schemaRec {
	name := b.cstring(id)
	sc := b.gio.defaultSource.lookup(name, true)
	if sc == nil {
		b.critical("%s: Settings schema '%s' is not installed", fn, name)
	}
	return sc
}

func (b *Backend) backendArg(p ptr, fn string) *object {
	if p == 0 {
		return nil
	}
	o := b.object(p, fn)
	if o != nil && !b.isA(o.typ.id, b.t.settingsBackend.id) {
		b.critical("%s: %s is not a GSettingsBackend", fn, o.typ.name)
		return nil
	}
	return o
}

func (b *Backend) SettingsNew(schemaID ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	return b.newSettings(b.lookupDefault(schemaID, "g_settings_new"), nil, "", "g_settings_new")
}

func (b *Backend) SettingsNewWithPath(schemaID, path ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	const fn = "g_settings_new_with_path"
	return b.newSettings(b.lookupDefault(schemaID, fn), nil, b.cstring(path), fn)
}

func (b *Backend) SettingsNewWithBackend(schemaID, backend ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	const fn = "g_settings_new_with_backend"
	return b.newSettings(b.lookupDefault(schemaID, fn), b.backendArg(backend, fn), "", fn)
}

func (b *Backend) SettingsNewWithBackendAndPath(schemaID, backend, path ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	const fn = "g_settings_new_with_backend_and_path"
	return b.newSettings(b.lookupDefault(schemaID, fn), b.backendArg(backend, fn), b.cstring(path), fn)
}

func (b *Backend) SettingsNewFull(schema, backend, path ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	const fn = "g_settings_new_full"
	p := ""
	if path != 0 {
		p = b.cstring(path)
	}
	return b.newSettings(b.schema(schema, "new_full"), b.backendArg(backend, fn), p, fn)
}

// SettingsSync implements g_settings_sync. Writes are synchronous.
func (b *Backend) SettingsSync() {}

// current returns the effective value of k, borrowed.
func (b *Backend) current(st *settingsState, k *keyRec) *variant {
	if st.delay {
		if v, ok := st.pending[k.spec.Name]; ok {
			if v == nil {
				return k.def
			}
			return v
		}
	}
	if v, ok := st.backend.data.(*backendState).values[st.path+k.spec.Name]; ok {
		return v
	}
	return k.def
}

func (b *Backend) writable(st *settingsState, k *keyRec) bool {
	bs := st.backend.data.(*backendState)
	return !k.spec.Locked && !bs.null && !bs.locked[st.path+k.spec.Name]
}

// write stores v, which stays owned by the caller, and queues the
// change notifications.
func (b *Backend) write(o *object, st *settingsState, k *keyRec, v *variant) bool {
	if !b.writable(st, k) {
		return false
	}
	name := k.spec.Name
	if st.delay {
		b.setPending(o, st, name, v)
		return true
	}
	bs := st.backend.data.(*backendState)
	full := st.path + name
	if v != nil {
		v.refs++
	}
	if old, ok := bs.values[full]; ok {
		b.unrefVariant(old.ptr)
	}
	if v == nil {
		delete(bs.values, full)
	} else {
		bs.values[full] = v
	}
	b.backendChanged(st.backend, st.path, name, nil)
	return true
}

// setPending records a delayed write; nil records a reset.
func (b *Backend) setPending(o *object, st *settingsState, name string, v *variant) {
	wasEmpty := len(st.pending) == 0
	if old, ok := st.pending[name]; ok {
		if old != nil {
			b.unrefVariant(old.ptr)
		}
	} else {
		st.order = append(st.order, name)
	}
	if v != nil {
		v.refs++
	}
	st.pending[name] = v
	b.queueChangeEvent(o, []string{name})
	if wasEmpty {
		b.notify(o, b.gio.hasUnapplied)
	}
}

// backendChanged notifies every settings object that sees path+key on
// backend, except skip.
func (b *Backend) backendChanged(backend *object, path, key string, skip *object) {
	for _, o := range b.liveObjects(b.t.settings) {
		st := o.data.(*settingsState)
		if o == skip || st.backend != backend || st.path != path || st.schema.byName[key] == nil {
			continue
		}
		if _, shadowed := st.pending[key]; st.delay && shadowed {
			continue
		}
		b.queueChangeEvent(o, []string{key})
	}
}

func (b *Backend) queueChangeEvent(o *object, keys []string) {
	arr := b.alloc(uintptr(4*max(len(keys), 1)), "GQuark[]")
	for i, k := range keys {
		b.writeU32(arr+ptr(4*i), b.quark(k))
	}
	sig := b.lookupSignal(o.typ, "change-event")
	inst := o.ptr
	args := []gvalue{{typ: gobridge.TypePointer, p: arr}, {typ: gobridge.TypeInt, i: int64(len(keys))}}
	b.after(func() {
		b.discard(b.emit(inst, sig, "", args))
		b.mu.Lock()
		defer b.unlock()
		b.free(arr)
	})
}

func (b *Backend) changeEventClass(inst ptr, _ string, args []gvalue) bool {
	b.mu.Lock()
	var keys []string
	for i := range int(args[1].i) {
		q := b.readU32(args[0].p + ptr(4*i))
		keys = append(keys, b.cstring(b.quarkNames[q]))
	}
	sig := b.lookupSignal(b.t.settings, "changed")
	b.unlock()
	for _, k := range keys {
		b.mu.Lock()
		arg := b.stringValue(k)
		b.unlock()
		b.discard(b.emit(inst, sig, k, []gvalue{arg}))
	}
	return false
}

func (b *Backend) changedClass(inst ptr, key string, _ []gvalue) bool {
	b.mu.Lock()
	defer b.unlock()
	for _, bd := range slices.Clone(b.gio.bindings) {
		if bd.settings.ptr == inst && !bd.writable && bd.key.spec.Name == key &&
			bd.flags&BindGet != 0 && bd.flags&BindGetNoChanges == 0 {
			b.applyBinding(bd)
		}
	}
	return false
}

func (b *Backend) queueWritableChangeEvent(o *object, key string) {
	sig := b.lookupSignal(o.typ, "writable-change-event")
	inst := o.ptr
	args := []gvalue{{typ: gobridge.TypeUint, u: uint64(b.quark(key)), i: int64(b.quark(key))}}
	b.after(func() { b.discard(b.emit(inst, sig, "", args)) })
}

func (b *Backend) writableChangeEventClass(inst ptr, _ string, args []gvalue) bool {
	b.mu.Lock()
	key := b.cstring(b.quarkNames[args[0].u])
	sig := b.lookupSignal(b.t.settings, "writable-changed")
	arg := b.stringValue(key)
	b.unlock()
	b.discard(b.emit(inst, sig, key, []gvalue{arg}))
	return false
}

func (b *Backend) writableChangedClass(inst ptr, key string, _ []gvalue) bool {
	b.mu.Lock()
	defer b.unlock()
	for _, bd := range slices.Clone(b.gio.bindings) {
		if bd.settings.ptr == inst && bd.writable && bd.key.spec.Name == key {
			b.applyBinding(bd)
		}
	}
	return false
}

func (b *Backend) SettingsIsWritable(settings, key ptr) bool {
	b.mu.Lock()
	defer b.unlock()
	_, st := b.settings(settings, "g_settings_is_writable")
	if st == nil {
		return false
	}
	k := b.settingsKey(st, b.cstring(key), "g_settings_is_writable")
	return k != nil && b.writable(st, k)
}

func (b *Backend) SettingsGetHasUnapplied(settings ptr) bool {
	b.mu.Lock()
	defer b.unlock()
	_, st := b.settings(settings, "g_settings_get_has_unapplied")
	return st != nil && len(st.pending) > 0
}

func (b *Backend) SettingsDelay(settings ptr) {
	b.mu.Lock()
	defer b.unlock()
	o, st := b.settings(settings, "g_settings_delay")
	if st == nil || st.delay {
		return
	}
	st.delay = true
	b.notify(o, b.gio.delayApply)
}

func (b *Backend) SettingsApply(settings ptr) {
	b.mu.Lock()
	defer b.unlock()
	o, st := b.settings(settings, "g_settings_apply")
	if st == nil || len(st.pending) == 0 {
		return
	}
	bs := st.backend.data.(*backendState)
	for _, name := range st.order {
		v := st.pending[name]
		full := st.path + name
		if old, ok := bs.values[full]; ok {
			b.unrefVariant(old.ptr)
			delete(bs.values, full)
		}
		if v != nil {
			bs.values[full] = v
		}
		b.backendChanged(st.backend, st.path, name, o)
	}
	clear(st.pending)
	st.order = nil
	b.notify(o, b.gio.hasUnapplied)
}

func (b *Backend) SettingsRevert(settings ptr) {
	b.mu.Lock()
	defer b.unlock()
	o, st := b.settings(settings, "g_settings_revert")
	if st == nil || len(st.pending) == 0 {
		return
	}
	keys := st.order
	for _, v := range st.pending {
		if v != nil {
			b.unrefVariant(v.ptr)
		}
	}
	clear(st.pending)
	st.order = nil
	b.queueChangeEvent(o, keys)
	b.notify(o, b.gio.hasUnapplied)
}

func (b *Backend) SettingsReset(settings, key ptr) {
	b.mu.Lock()
	defer b.unlock()
	o, st := b.settings(settings, "g_settings_reset")
	if st == nil {
		return
	}
	if k := b.settingsKey(st, b.cstring(key), "g_settings_reset"); k != nil {
		b.write(o, st, k, nil)
	}
}

func (b *Backend) SettingsGetValue(settings, key ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	_, st := b.settings(settings, "g_settings_get_value")
	if st == nil {
		return 0
	}
	k := b.settingsKey(st, b.cstring(key), "g_settings_get_value")
	if k == nil {
		return 0
	}
	v := b.current(st, k)
	v.refs++
	return v.ptr
}

func (b *Backend) SettingsGetUserValue(settings, key ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	_, st := b.settings(settings, "g_settings_get_user_value")
	if st == nil {
		return 0
	}
	k := b.settingsKey(st, b.cstring(key), "g_settings_get_user_value")
	if k == nil {
		return 0
	}
	v, ok := st.pending[k.spec.Name]
	if !st.delay || !ok {
		v = st.backend.data.(*backendState).values[st.path+k.spec.Name]
	}
	if v == nil {
		return 0
	}
	v.refs++
	return v.ptr
}

func (b *Backend) SettingsGetDefaultValue(settings, key ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	_, st := b.settings(settings, "g_settings_get_default_value")
	if st == nil {
		return 0
	}
	k := b.settingsKey(st, b.cstring(key), "g_settings_get_default_value")
	if k == nil {
		return 0
	}
	k.def.refs++
	return k.def.ptr
}

// SettingsSetValue implements g_settings_set_value. A floating value
// is consumed.
func (b *Backend) SettingsSetValue(settings, key, value ptr) bool {
	b.mu.Lock()
	defer b.unlock()
	const fn = "g_settings_set_value"
	o, st := b.settings(settings, fn)
	v := b.variant(value, fn)
	if st == nil || v == nil {
		return false
	}
	b.sinkVariant(value)
	defer b.unrefVariant(value)
	k := b.settingsKey(st, b.cstring(key), fn)
	if k == nil {
		return false
	}
	return b.checkedWrite(o, st, k, v, fn)
}

func (b *Backend) checkedWrite(o *object, st *settingsState, k *keyRec, v *variant, fn string) bool {
	if v.typ != k.spec.Type {
		b.critical("%s: key '%s' in '%s' expects type '%s', but a GVariant of type '%s' was given",
			fn, k.spec.Name, st.schema.spec.ID, k.spec.Type, v.typ)
		return false
	}
	if !b.rangeCheck(k, v) {
		b.critical("%s: value for key '%s' in schema '%s' is outside of valid range", fn, k.spec.Name, st.schema.spec.ID)
		return false
	}
	return b.write(o, st, k, v)
}

// typed returns the settings, key and current value for a typed getter.
func (b *Backend) typed(settings, key ptr, typ, fn string) (*object, *settingsState, *keyRec) {
	o, st := b.settings(settings, fn)
	if st == nil {
		return nil, nil, nil
	}
	k := b.settingsKey(st, b.cstring(key), fn)
	if k == nil {
		return nil, nil, nil
	}
	if k.spec.Type != typ {
		b.critical("%s: the type of key '%s' in schema '%s' is '%s' which is not '%s'",
			fn, k.spec.Name, st.schema.spec.ID, k.spec.Type, typ)
		return nil, nil, nil
	}
	return o, st, k
}

func (b *Backend) getTyped(settings, key ptr, typ, fn string) any {
	b.mu.Lock()
	defer b.unlock()
	_, st, k := b.typed(settings, key, typ, fn)
	if k == nil {
		return nil
	}
	return b.current(st, k).val
}

func (b *Backend) setTyped(settings, key ptr, typ string, val any, fn string) bool {
	b.mu.Lock()
	defer b.unlock()
	o, st, k := b.typed(settings, key, typ, fn)
	if k == nil {
		return false
	}
	v := b.newVariant(typ, val)
	v.floating = false
	defer b.unrefVariant(v.ptr)
	return b.checkedWrite(o, st, k, v, fn)
}

func (b *Backend) SettingsGetBoolean(settings, key ptr) bool {
	x, _ := b.getTyped(settings, key, "b", "g_settings_get_boolean").(bool)
	return x
}

func (b *Backend) SettingsSetBoolean(settings, key ptr, value bool) bool {
	return b.setTyped(settings, key, "b", value, "g_settings_set_boolean")
}

func (b *Backend) SettingsGetInt(settings, key ptr) int32 {
	x, _ := b.getTyped(settings, key, "i", "g_settings_get_int").(int32)
	return x
}

func (b *Backend) SettingsSetInt(settings, key ptr, value int32) bool {
	return b.setTyped(settings, key, "i", value, "g_settings_set_int")
}

func (b *Backend) SettingsGetInt64(settings, key ptr) int64 {
	x, _ := b.getTyped(settings, key, "x", "g_settings_get_int64").(int64)
	return x
}

func (b *Backend) SettingsSetInt64(settings, key ptr, value int64) bool {
	return b.setTyped(settings, key, "x", value, "g_settings_set_int64")
}

func (b *Backend) SettingsGetUint(settings, key ptr) uint32 {
	x, _ := b.getTyped(settings, key, "u", "g_settings_get_uint").(uint32)
	return x
}

func (b *Backend) SettingsSetUint(settings, key ptr, value uint32) bool {
	return b.setTyped(settings, key, "u", value, "g_settings_set_uint")
}

func (b *Backend) SettingsGetUint64(settings, key ptr) uint64 {
	x, _ := b.getTyped(settings, key, "t", "g_settings_get_uint64").(uint64)
	return x
}

func (b *Backend) SettingsSetUint64(settings, key ptr, value uint64) bool {
	return b.setTyped(settings, key, "t", value, "g_settings_set_uint64")
}

func (b *Backend) SettingsGetDouble(settings, key ptr) float64 {
	x, _ := b.getTyped(settings, key, "d", "g_settings_get_double").(float64)
	return x
}

func (b *Backend) SettingsSetDouble(settings, key ptr, value float64) bool {
	return b.setTyped(settings, key, "d", value, "g_settings_set_double")
}

// SettingsGetString returns a newly allocated string.
func (b *Backend) SettingsGetString(settings, key ptr) ptr {
	x, ok := b.getTyped(settings, key, "s", "g_settings_get_string").(string)
	if !ok {
		return 0
	}
	return b.Strdup(x)
}

func (b *Backend) SettingsSetString(settings, key, value ptr) bool {
	return b.setTyped(settings, key, "s", b.GoString(value), "g_settings_set_string")
}

func (b *Backend) readStrv(p ptr) []string {
	b.mu.Lock()
	defer b.unlock()
	return b.strv(p, -1)
}

// SettingsGetStrv returns a newly allocated string array.
func (b *Backend) SettingsGetStrv(settings, key ptr) ptr {
	x, ok := b.getTyped(settings, key, "as", "g_settings_get_strv").([]string)
	if !ok {
		return 0
	}
	b.mu.Lock()
	defer b.unlock()
	return b.newStrv(x)
}

func (b *Backend) SettingsSetStrv(settings, key, value ptr) bool {
	list := b.readStrv(value)
	if list == nil {
		list = []string{}
	}
	return b.setTyped(settings, key, "as", list, "g_settings_set_strv")
}

func (b *Backend) SettingsGetEnum(settings, key ptr) int32 {
	b.mu.Lock()
	defer b.unlock()
	const fn = "g_settings_get_enum"
	_, st, k := b.typed(settings, key, "s", fn)
	if k == nil {
		return 0
	}
	if len(k.spec.Enum) == 0 {
		b.critical("%s: the key '%s' in schema '%s' is not an enum", fn, k.spec.Name, st.schema.spec.ID)
		return 0
	}
	if e := enumValue(k.spec.Enum, b.current(st, k).val.(string)); e != nil {
		return int32(e.Value)
	}
	return 0
}

func (b *Backend) SettingsSetEnum(settings, key ptr, value int32) bool {
	const fn = "g_settings_set_enum"
	nick, ok := b.enumNick(settings, key, value, fn)
	return ok && b.setTyped(settings, key, "s", nick, fn)
}

func (b *Backend) enumNick(settings, key ptr, value int32, fn string) (string, bool) {
	b.mu.Lock()
	defer b.unlock()
	_, st, k := b.typed(settings, key, "s", fn)
	if k == nil {
		return "", false
	}
	for _, e := range k.spec.Enum {
		if e.Value == int64(value) {
			return e.Nick, true
		}
	}
	b.rejected("%s: invalid enum value %d for key '%s' in schema '%s'", fn, value, k.spec.Name, st.schema.spec.ID)
	return "", false
}

func (b *Backend) SettingsGetFlags(settings, key ptr) uint32 {
	b.mu.Lock()
	defer b.unlock()
	const fn = "g_settings_get_flags"
	_, st, k := b.typed(settings, key, "as", fn)
	if k == nil {
		return 0
	}
	if len(k.spec.Flags) == 0 {
		b.critical("%s: the key '%s' in schema '%s' is not a flags type", fn, k.spec.Name, st.schema.spec.ID)
		return 0
	}
	var out uint32
	for _, nick := range b.current(st, k).val.([]string) {
		if f := enumValue(k.spec.Flags, nick); f != nil {
			out |= uint32(f.Value)
		}
	}
	return out
}

func (b *Backend) SettingsSetFlags(settings, key ptr, value uint32) bool {
	const fn = "g_settings_set_flags"
	nicks, ok := b.flagNicks(settings, key, value, fn)
	return ok && b.setTyped(settings, key, "as", nicks, fn)
}

func (b *Backend) flagNicks(settings, key ptr, value uint32, fn string) ([]string, bool) {
	b.mu.Lock()
	defer b.unlock()
	_, st, k := b.typed(settings, key, "as", fn)
	if k == nil {
		return nil, false
	}
	nicks := []string{}
	rest := value
	for _, f := range k.spec.Flags {
		if f.Value != 0 && uint32(f.Value)&value == uint32(f.Value) {
			nicks = append(nicks, f.Nick)
			rest &^= uint32(f.Value)
		}
	}
	if rest != 0 {
		b.rejected("%s: invalid flags value 0x%08x for key '%s' in schema '%s'", fn, value, k.spec.Name, st.schema.spec.ID)
		return nil, false
	}
	return nicks, true
}

func (b *Backend) SettingsGetChild(settings, name ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	const fn = "g_settings_get_child"
	_, st := b.settings(settings, fn)
	if st == nil {
		return 0
	}
	n := b.cstring(name)
	for _, c := range st.schema.spec.Children {
		if c.Name != n {
			continue
		}
		sc := st.schema.source.lookup(c.Schema, true)
		if sc == nil {
			b.critical("%s: child schema '%s' is not installed", fn, c.Schema)
			return 0
		}
		path := sc.spec.Path
		if path == "" {
			path = st.path + n + "/"
		}
		return b.newSettings(sc, st.backend, path, fn)
	}
	b.critical("%s: the schema '%s' has no child schema with name '%s'", fn, st.schema.spec.ID, n)
	return 0
}

func (b *Backend) SettingsListChildren(settings ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	_, st := b.settings(settings, "g_settings_list_children")
	if st == nil {
		return 0
	}
	return b.newStrv(childNames(st.schema))
}

func childNames(sc *schemaRec) []string {
	names := []string{}
	for _, c := range sc.spec.Children {
		names = append(names, c.Name)
	}
	return names
}

// Bindings.

func (b *Backend) SettingsBind(settings, key, object, property ptr, flags uint32) {
	b.mu.Lock()
	defer b.unlock()
	const fn = "g_settings_bind"
	o, st := b.settings(settings, fn)
	target := b.object(object, fn)
	if st == nil || target == nil {
		return
	}
	k := b.settingsKey(st, b.cstring(key), fn)
	pname := b.cstring(property)
	ps := b.findProperty(target.typ, pname)
	if k == nil {
		return
	}
	if ps == nil {
		b.critical("%s: no property '%s' on class '%s'", fn, pname, target.typ.name)
		return
	}
	if flags&(BindGet|BindSet) == 0 {
		flags |= BindGet | BindSet
	}
	invert := flags&BindInvertBoolean != 0
	if invert && (k.spec.Type != "b" || ps.valueType != gobridge.TypeBoolean) {
		b.critical("%s: G_SETTINGS_BIND_INVERT_BOOLEAN requires boolean key and property", fn)
		return
	}
	if !b.compatible(k, ps.valueType) {
		b.critical("%s: property '%s' on class '%s' has type '%s' which is not compatible with type '%s' of key '%s' on schema '%s'",
			fn, ps.name, target.typ.name, b.typeName(ps.valueType), k.spec.Type, k.spec.Name, st.schema.spec.ID)
		return
	}
	if flags&BindSet != 0 && ps.flags&gobridge.ParamReadable == 0 {
		b.critical("%s: property '%s' on class '%s' is not readable", fn, ps.name, target.typ.name)
		return
	}
	if flags&BindGet != 0 && (ps.flags&gobridge.ParamWritable == 0 || ps.flags&gobridge.ParamConstructOnly != 0) {
		b.critical("%s: property '%s' on class '%s' is not writable", fn, ps.name, target.typ.name)
		return
	}
	b.removeBindings(target, ps)
	bd := &binding{settings: o, key: k, target: target, prop: ps, flags: flags, inverted: invert}
	o.refs++
	b.gio.bindings = append(b.gio.bindings, bd)
	if flags&BindGet != 0 {
		b.applyBinding(bd)
	} else {
		b.propertyChanged(target, ps)
	}
	if flags&BindNoSensitivity == 0 {
		if sens := b.findProperty(target.typ, "sensitive"); sens != nil && sens != ps &&
			sens.valueType == gobridge.TypeBoolean && sens.flags&gobridge.ParamWritable != 0 {
			b.bindWritable(o, k, target, sens, false)
		}
	}
}

func (b *Backend) SettingsBindWritable(settings, key, object, property ptr, inverted bool) {
	b.mu.Lock()
	defer b.unlock()
	const fn = "g_settings_bind_writable"
	o, st := b.settings(settings, fn)
	target := b.object(object, fn)
	if st == nil || target == nil {
		return
	}
	k := b.settingsKey(st, b.cstring(key), fn)
	pname := b.cstring(property)
	ps := b.findProperty(target.typ, pname)
	if k == nil {
		return
	}
	if ps == nil || ps.valueType != gobridge.TypeBoolean || ps.flags&gobridge.ParamWritable == 0 {
		b.critical("%s: property '%s' on class '%s' is not a writable boolean", fn, pname, target.typ.name)
		return
	}
	b.bindWritable(o, k, target, ps, inverted)
}

func (b *Backend) bindWritable(o *object, k *keyRec, target *object, ps *pspec, inverted bool) {
	b.removeBindings(target, ps)
	bd := &binding{settings: o, key: k, target: target, prop: ps, writable: true, inverted: inverted}
	o.refs++
	b.gio.bindings = append(b.gio.bindings, bd)
	b.applyBinding(bd)
}

func (b *Backend) SettingsUnbind(object, property ptr) {
	b.mu.Lock()
	defer b.unlock()
	target := b.object(object, "g_settings_unbind")
	if target == nil {
		return
	}
	pname := b.cstring(property)
	ps := b.findProperty(target.typ, pname)
	if ps == nil || !b.removeBindings(target, ps) {
		b.critical("g_settings_unbind: no binding for property '%s' on object of type '%s'", pname, target.typ.name)
	}
}

func (b *Backend) removeBindings(target *object, ps *pspec) bool {
	var drop []*binding
	b.gio.bindings = slices.DeleteFunc(b.gio.bindings, func(bd *binding) bool {
		if bd.target == target && (ps == nil || bd.prop == ps) {
			drop = append(drop, bd)
			return true
		}
		return false
	})
	for _, bd := range drop {
		b.unrefObject(bd.settings.ptr)
	}
	return len(drop) > 0
}

// dropBindings forgets bindings targeting a finalized object.
func (b *Backend) dropBindings(o *object) {
	b.removeBindings(o, nil)
}

func (b *Backend) compatible(k *keyRec, t gobridge.GType) bool {
	switch b.fundamental(t) {
	case gobridge.TypeBoolean:
		return k.spec.Type == "b"
	case gobridge.TypeInt:
		return k.spec.Type == "i"
	case gobridge.TypeUint:
		return k.spec.Type == "u"
	case gobridge.TypeInt64:
		return k.spec.Type == "x"
	case gobridge.TypeUint64:
		return k.spec.Type == "t"
	case gobridge.TypeDouble:
		return k.spec.Type == "d"
	case gobridge.TypeString:
		return k.spec.Type == "s"
	case gobridge.TypeEnum:
		return len(k.spec.Enum) > 0
	case gobridge.TypeBoxed:
		return t == b.t.strv.id && k.spec.Type == "as"
	}
	return false
}

// keyToGValue converts a key value to a property value of type t.
func (b *Backend) keyToGValue(k *keyRec, v *variant, t gobridge.GType, invert bool) gvalue {
	gv := gvalue{typ: t}
	switch x := v.val.(type) {
	case bool:
		gv.b = x != invert
	case int32:
		gv.i = int64(x)
	case int64:
		gv.i = x
	case uint32:
		gv.u = uint64(x)
	case uint64:
		gv.u = x
	case float64:
		gv.d = x
	case string:
		if b.fundamental(t) == gobridge.TypeEnum {
			if e := enumValue(k.spec.Enum, x); e != nil {
				gv.i = e.Value
			}
		} else {
			gv.p = b.strdup(x)
		}
	case []string:
		gv.p = b.newStrv(x)
	}
	return gv
}

// gvalueToKey converts a property value to an owned key value, or nil.
func (b *Backend) gvalueToKey(k *keyRec, gv *gvalue, invert bool) *variant {
	var val any
	switch k.spec.Type {
	case "b":
		val = gv.b != invert
	case "i":
		val = int32(gv.i)
	case "x":
		val = gv.i
	case "u":
		val = uint32(gv.u)
	case "t":
		val = gv.u
	case "d":
		val = gv.d
	case "s":
		switch {
		case b.fundamental(gv.typ) == gobridge.TypeEnum:
			for _, e := range k.spec.Enum {
				if e.Value == gv.i {
					val = e.Nick
				}
			}
		case gv.p != 0:
			val = b.cstring(gv.p)
		}
	case "as":
		list := b.strv(gv.p, -1)
		if list == nil {
			list = []string{}
		}
		val = list
	}
	if val == nil {
		return nil
	}
	v := b.newVariant(k.spec.Type, val)
	v.floating = false
	return v
}

func (b *Backend) applyBinding(bd *binding) {
	st := bd.settings.data.(*settingsState)
	var gv gvalue
	if bd.writable {
		gv = gvalue{typ: gobridge.TypeBoolean, b: b.writable(st, bd.key) != bd.inverted}
	} else {
		gv = b.keyToGValue(bd.key, b.current(st, bd.key), bd.prop.valueType, bd.inverted)
	}
	old := b.propertyValue(bd.target, bd.prop)
	same := b.valueEqual(&old, &gv)
	b.valueClear(&old)
	if same {
		b.valueClear(&gv)
		return
	}
	b.setProperty(bd.target, bd.prop, &gv)
}

// propertyChanged writes a bound property back to its key.
func (b *Backend) propertyChanged(o *object, ps *pspec) {
	for _, bd := range slices.Clone(b.gio.bindings) {
		if bd.target != o || bd.prop != ps || bd.writable || bd.flags&BindSet == 0 {
			continue
		}
		st := bd.settings.data.(*settingsState)
		gv := b.propertyValue(o, ps)
		v := b.gvalueToKey(bd.key, &gv, bd.inverted)
		b.valueClear(&gv)
		if v == nil {
			continue
		}
		if !b.variantEqual(v, b.current(st, bd.key)) && b.rangeCheck(bd.key, v) {
			b.write(bd.settings, st, bd.key, v)
		}
		b.unrefVariant(v.ptr)
	}
}

// Actions.

func (b *Backend) SettingsCreateAction(settings, key ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	const fn = "g_settings_create_action"
	o, st := b.settings(settings, fn)
	if st == nil {
		return 0
	}
	k := b.settingsKey(st, b.cstring(key), fn)
	if k == nil {
		return 0
	}
	a := b.newObject(b.t.settingsAction)
	o.refs++
	a.data = &actionState{settings: o, key: k, nameP: b.strdup(k.spec.Name)}
	return a.ptr
}

func (b *Backend) action(p ptr, fn string) *actionState {
	o := b.object(p, fn)
	if o == nil || !b.isA(o.typ.id, b.t.action.id) {
		if o != nil {
			b.critical("%s: %s is not a GAction", fn, o.typ.name)
		}
		return nil
	}
	return o.data.(*actionState)
}

func (b *Backend) ActionGetName(action ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	if a := b.action(action, "g_action_get_name"); a != nil {
		return a.nameP
	}
	return 0
}

func (b *Backend) ActionGetEnabled(action ptr) bool {
	b.mu.Lock()
	defer b.unlock()
	a := b.action(action, "g_action_get_enabled")
	return a != nil && b.writable(a.settings.data.(*settingsState), a.key)
}

func (b *Backend) ActionGetState(action ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	a := b.action(action, "g_action_get_state")
	if a == nil {
		return 0
	}
	v := b.current(a.settings.data.(*settingsState), a.key)
	v.refs++
	return v.ptr
}

// ActionActivate toggles boolean keys when parameter is null and sets
// the key to parameter otherwise.
func (b *Backend) ActionActivate(action, parameter ptr) {
	b.mu.Lock()
	defer b.unlock()
	const fn = "g_action_activate"
	a := b.action(action, fn)
	if a == nil {
		return
	}
	st := a.settings.data.(*settingsState)
	if parameter == 0 {
		if a.key.spec.Type != "b" {
			b.critical("%s: action '%s' expects a parameter", fn, a.key.spec.Name)
			return
		}
		v := b.newVariant("b", !b.current(st, a.key).val.(bool))
		v.floating = false
		b.write(a.settings, st, a.key, v)
		b.unrefVariant(v.ptr)
		return
	}
	v := b.variant(parameter, fn)
	if v == nil {
		return
	}
	b.sinkVariant(parameter)
	defer b.unrefVariant(parameter)
	if b.rangeCheck(a.key, v) {
		b.write(a.settings, st, a.key, v)
	}
}

// ActionChangeState sets the key when value is in range.
func (b *Backend) ActionChangeState(action, value ptr) {
	b.mu.Lock()
	defer b.unlock()
	const fn = "g_action_change_state"
	a := b.action(action, fn)
	v := b.variant(value, fn)
	if a == nil || v == nil {
		return
	}
	b.sinkVariant(value)
	defer b.unrefVariant(value)
	if b.rangeCheck(a.key, v) {
		b.write(a.settings, a.settings.data.(*settingsState), a.key, v)
	}
}

// Backends.

func (b *Backend) MemorySettingsBackendNew() ptr {
	b.mu.Lock()
	defer b.unlock()
	return b.newObject(b.t.memoryBackend).ptr
}

func (b *Backend) NullSettingsBackendNew() ptr {
	b.mu.Lock()
	defer b.unlock()
	return b.newObject(b.t.nullBackend).ptr
}

// SettingsBackendGetDefault returns a new reference to the default
// backend, a memory backend.
func (b *Backend) SettingsBackendGetDefault() ptr {
	b.mu.Lock()
	defer b.unlock()
	be := b.defaultBackend()
	be.refs++
	return be.ptr
}

func (b *Backend) resolveBackend(p ptr) *object {
	if p == 0 {
		return b.defaultBackend()
	}
	return b.backendArg(p, "sim")
}

// Lockdown changes the writability of path+key on backend (0 for the
// default backend), as an administrator lock would.
func (b *Backend) Lockdown(backend ptr, path, key string, locked bool) {
	b.mu.Lock()
	defer b.unlock()
	be := b.resolveBackend(backend)
	if be == nil {
		return
	}
	be.data.(*backendState).locked[path+key] = locked
	for _, o := range b.liveObjects(b.t.settings) {
		st := o.data.(*settingsState)
		if st.backend == be && st.path == path && st.schema.byName[key] != nil {
			b.queueWritableChangeEvent(o, key)
		}
	}
}

// ExternalWrite changes path+key on backend (0 for the default) the
// way another process would, bypassing every GSettings object.
func (b *Backend) ExternalWrite(backend ptr, path, key, typ, text string) error {
	t, val, err := ParseVariantText(typ, text)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.unlock()
	be := b.resolveBackend(backend)
	if be == nil {
		return nil
	}
	bs := be.data.(*backendState)
	v := b.newVariant(t, val)
	v.floating = false
	if old, ok := bs.values[path+key]; ok {
		b.unrefVariant(old.ptr)
	}
	bs.values[path+key] = v
	b.backendChanged(be, path, key, nil)
	return nil
}

// Schema sources.

func (b *Backend) SettingsSchemaSourceGetDefault() ptr {
	return b.gio.defaultSource.ptr
}

// SettingsSchemaSourceNewFromDirectory reads the *.yaml schema files of
// dir in place of gschemas.compiled.
func (b *Backend) SettingsSchemaSourceNewFromDirectory(dir, parent ptr, trusted bool, errp ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	path := b.cstring(dir)
	var par *schemaSource
	if parent != 0 {
		par = b.source(parent, "new_from_directory")
	}
	specs, code, err := schemaDir(path)
	if err != nil {
		b.setError(errp, DomainFile, code, err.Error())
		return 0
	}
	src := b.newSource(par)
	if err := b.install(src, specs); err != nil {
		b.unrefSource(src.ptr)
		b.setError(errp, DomainFile, FileErrorInval, err.Error())
		return 0
	}
	return src.ptr
}

func (b *Backend) SettingsSchemaSourceRef(source ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	b.source(source, "ref").refs++
	return source
}

func (b *Backend) SettingsSchemaSourceUnref(source ptr) {
	b.mu.Lock()
	defer b.unlock()
	b.unrefSource(source)
}

func (b *Backend) SettingsSchemaSourceLookup(source, schemaID ptr, recursive bool) ptr {
	b.mu.Lock()
	defer b.unlock()
	sc := b.source(source, "lookup").lookup(b.cstring(schemaID), recursive)
	if sc == nil {
		return 0
	}
	sc.refs++
	return sc.ptr
}

func (b *Backend) SettingsSchemaSourceListSchemas(source ptr, recursive bool, nonRelocatable, relocatable ptr) {
	b.mu.Lock()
	defer b.unlock()
	seen := map[string]bool{}
	var fixed, reloc []string
	for cur := b.source(source, "list_schemas"); cur != nil; cur = cur.parent {
		for id, sc := range cur.schemas {
			if seen[id] {
				continue
			}
			seen[id] = true
			if sc.spec.Path == "" {
				reloc = append(reloc, id)
			} else {
				fixed = append(fixed, id)
			}
		}
		if !recursive {
			break
		}
	}
	sort.Strings(fixed)
	sort.Strings(reloc)
	if nonRelocatable != 0 {
		b.writePtr(nonRelocatable, b.newStrv(fixed))
	}
	if relocatable != 0 {
		b.writePtr(relocatable, b.newStrv(reloc))
	}
}

func (b *Backend) SettingsSchemaRef(schema ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	if sc := b.schema(schema, "ref"); sc != nil {
		sc.refs++
	}
	return schema
}

func (b *Backend) SettingsSchemaUnref(schema ptr) {
	b.mu.Lock()
	defer b.unlock()
	b.unrefSchema(b.schema(schema, "unref"))
}

func (b *Backend) SettingsSchemaGetID(schema ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	if sc := b.schema(schema, "get_id"); sc != nil {
		return sc.idP
	}
	return 0
}

func (b *Backend) SettingsSchemaGetPath(schema ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	if sc := b.schema(schema, "get_path"); sc != nil {
		return sc.pathP
	}
	return 0
}

func (b *Backend) SettingsSchemaHasKey(schema, name ptr) bool {
	b.mu.Lock()
	defer b.unlock()
	sc := b.schema(schema, "has_key")
	return sc != nil && sc.byName[b.cstring(name)] != nil
}

func (b *Backend) SettingsSchemaGetKey(schema, name ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	sc := b.schema(schema, "get_key")
	if sc == nil {
		return 0
	}
	k := sc.byName[b.cstring(name)]
	if k == nil {
		b.critical("g_settings_schema_get_key: assertion 'g_settings_schema_has_key (schema, name)' failed")
		return 0
	}
	b.refKey(k)
	return k.ptr
}

func (b *Backend) SettingsSchemaListKeys(schema ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	sc := b.schema(schema, "list_keys")
	if sc == nil {
		return 0
	}
	names := []string{}
	for _, k := range sc.keys {
		names = append(names, k.spec.Name)
	}
	return b.newStrv(names)
}

func (b *Backend) SettingsSchemaListChildren(schema ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	sc := b.schema(schema, "list_children")
	if sc == nil {
		return 0
	}
	return b.newStrv(childNames(sc))
}

func (b *Backend) SettingsSchemaKeyRef(key ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	b.refKey(b.key(key, "ref"))
	return key
}

func (b *Backend) SettingsSchemaKeyUnref(key ptr) {
	b.mu.Lock()
	defer b.unlock()
	b.unrefKey(b.key(key, "unref"))
}

func (b *Backend) keyField(key ptr, fn string, field func(*keyRec) ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	if k := b.key(key, fn); k != nil {
		return field(k)
	}
	return 0
}

func (b *Backend) SettingsSchemaKeyGetName(key ptr) ptr {
	return b.keyField(key, "get_name", func(k *keyRec) ptr { return k.nameP })
}

func (b *Backend) SettingsSchemaKeyGetSummary(key ptr) ptr {
	return b.keyField(key, "get_summary", func(k *keyRec) ptr { return k.summaryP })
}

func (b *Backend) SettingsSchemaKeyGetDescription(key ptr) ptr {
	return b.keyField(key, "get_description", func(k *keyRec) ptr { return k.descP })
}

// SettingsSchemaKeyGetValueType returns a borrowed GVariantType; the
// simulator represents it by its type string.
func (b *Backend) SettingsSchemaKeyGetValueType(key ptr) ptr {
	return b.keyField(key, "get_value_type", func(k *keyRec) ptr { return k.typeP })
}

func (b *Backend) SettingsSchemaKeyGetDefaultValue(key ptr) ptr {
	return b.keyField(key, "get_default_value", func(k *keyRec) ptr {
		k.def.refs++
		return k.def.ptr
	})
}

func (b *Backend) SettingsSchemaKeyRangeCheck(key, value ptr) bool {
	b.mu.Lock()
	defer b.unlock()
	k := b.key(key, "range_check")
	v := b.variant(value, "g_settings_schema_key_range_check")
	return k != nil && v != nil && b.rangeCheck(k, v)
}

// VariantTypeDupString implements g_variant_type_dup_string.
func (b *Backend) VariantTypeDupString(t ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	return b.strdup(b.cstring(t))
}
