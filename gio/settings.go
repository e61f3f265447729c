package gio

import (
	"encoding/binary"
	"slices"
	"strings"

	gobridge "github.com/wippyai/gobject-bridge"
	"github.com/wippyai/gobject-bridge/errors"
	"github.com/wippyai/gobject-bridge/glib"
)

// Settings is a GSettings object: typed access to the keys of one
// schema at one path of a backend.
type Settings struct {
	glib.Object
}

var _ = glib.RegisterObject(glib.ObjectInfo[*Settings]{
	Name:    "GSettings",
	GetType: "g_settings_get_type",
	Wrap:    func(o glib.Object) *Settings { return &Settings{Object: o} },
})

// SettingsBindFlags mirrors GSettingsBindFlags.
type SettingsBindFlags uint32

const (
	// SettingsBindDefault is SettingsBindGet|SettingsBindSet.
	SettingsBindDefault       SettingsBindFlags = 0
	SettingsBindGet           SettingsBindFlags = 1 << 0
	SettingsBindSet           SettingsBindFlags = 1 << 1
	SettingsBindNoSensitivity SettingsBindFlags = 1 << 2
	SettingsBindGetNoChanges  SettingsBindFlags = 1 << 3
	SettingsBindInvertBoolean SettingsBindFlags = 1 << 4
)

// NewSettings creates a settings object for an installed schema with a
// fixed path, on the default backend.
func NewSettings(rt *glib.Runtime, schemaID string) (*Settings, error) {
	if err := checkSchema(rt, schemaID, ""); err != nil {
		return nil, err
	}
	st := glib.NewStash(rt)
	defer st.Free()
	return glib.Take[*Settings](rt, abiOf(rt).SettingsNew(st.CString(schemaID))), nil
}

// NewSettingsWithPath creates a settings object for a relocatable schema
// at path, which must start and end with a slash.
func NewSettingsWithPath(rt *glib.Runtime, schemaID, path string) (*Settings, error) {
	if err := checkSchema(rt, schemaID, path); err != nil {
		return nil, err
	}
	st := glib.NewStash(rt)
	defer st.Free()
	return glib.Take[*Settings](rt, abiOf(rt).SettingsNewWithPath(st.CString(schemaID), st.CString(path))), nil
}

// NewSettingsWithBackend is NewSettings on backend; nil means the
// default backend.
func NewSettingsWithBackend(rt *glib.Runtime, schemaID string, backend *SettingsBackend) (*Settings, error) {
	if err := checkSchema(rt, schemaID, ""); err != nil {
		return nil, err
	}
	st := glib.NewStash(rt)
	defer st.Free()
	return glib.Take[*Settings](rt, abiOf(rt).SettingsNewWithBackend(st.CString(schemaID), backendPtr(backend))), nil
}

// NewSettingsWithBackendAndPath is NewSettingsWithPath on backend.
func NewSettingsWithBackendAndPath(rt *glib.Runtime, schemaID string, backend *SettingsBackend, path string) (*Settings, error) {
	if err := checkSchema(rt, schemaID, path); err != nil {
		return nil, err
	}
	st := glib.NewStash(rt)
	defer st.Free()
	p := abiOf(rt).SettingsNewWithBackendAndPath(st.CString(schemaID), backendPtr(backend), st.CString(path))
	return glib.Take[*Settings](rt, p), nil
}

// NewSettingsFull creates a settings object from a schema that need not
// be installed. backend may be nil for the default one and path empty
// for the schema's own.
func NewSettingsFull(schema *SettingsSchema, backend *SettingsBackend, path string) (*Settings, error) {
	if err := checkPath(schema, path); err != nil {
		return nil, err
	}
	rt := schema.Runtime()
	st := glib.NewStash(rt)
	defer st.Free()
	p := abiOf(rt).SettingsNewFull(schema.Native(), backendPtr(backend), st.OptCString(path))
	return glib.Take[*Settings](rt, p), nil
}

func checkSchema(rt *glib.Runtime, id, path string) error {
	src, ok := DefaultSchemaSource(rt)
	if !ok {
		return errors.NotFound(errors.PhaseSettings, "settings schema", id)
	}
	defer src.Release()
	schema, ok := src.Lookup(id, true)
	if !ok {
		return errors.NotFound(errors.PhaseSettings, "settings schema", id)
	}
	defer schema.Release()
	return checkPath(schema, path)
}

func backendPtr(b *SettingsBackend) ptr {
	if b == nil {
		return 0
	}
	return b.Native()
}

func checkPath(schema *SettingsSchema, path string) error {
	fixed, hasFixed := schema.Path()
	switch {
	case path == "" && !hasFixed:
		return errors.New(errors.PhaseSettings, errors.KindInvalidInput).
			Path(schema.ID()).
			Detail("relocatable schema needs a path").
			Build()
	case path == "":
		return nil
	case !strings.HasPrefix(path, "/") || !strings.HasSuffix(path, "/") || strings.Contains(path, "//"):
		return errors.New(errors.PhaseSettings, errors.KindInvalidInput).
			Path(schema.ID()).
			Value(path).
			Detail("invalid path %q", path).
			Build()
	case hasFixed && fixed != path:
		return errors.New(errors.PhaseSettings, errors.KindInvalidInput).
			Path(schema.ID()).
			Value(path).
			Detail("schema has the fixed path %q", fixed).
			Build()
	}
	return nil
}

// SettingsSync blocks until pending writes reach the backends.
func SettingsSync(rt *glib.Runtime) {
	abiOf(rt).SettingsSync()
}

// SettingsUnbind removes a binding made by Bind or BindWritable.
func SettingsUnbind(object Bindable, property string) {
	rt := object.Runtime()
	st := glib.NewStash(rt)
	defer st.Free()
	abiOf(rt).SettingsUnbind(object.Native(), st.CString(property))
}

// Bindable is an object wrapper whose properties settings can drive.
type Bindable interface {
	glib.Wrapper
	Runtime() *glib.Runtime
	FindProperty(name string) (glib.ParamSpec, bool)
}

// Bind connects key to property of object. Changes flow in the
// directions flags select.
func (s *Settings) Bind(key string, object Bindable, property string, flags SettingsBindFlags) error {
	k, err := s.schemaKey(key, "")
	if err != nil {
		return err
	}
	defer k.Release()
	spec, err := s.bindTarget(object, property)
	if err != nil {
		return err
	}
	typ := k.ValueType()
	if flags&(SettingsBindGet|SettingsBindSet) == 0 {
		flags |= SettingsBindGet | SettingsBindSet
	}
	if flags&SettingsBindInvertBoolean != 0 && (typ != "b" || spec.ValueType != gobridge.TypeBoolean) {
		return errors.New(errors.PhaseSettings, errors.KindTypeMismatch).
			Path(key, property).
			Detail("inverted bindings need a boolean key and property").
			Build()
	}
	if !s.compatible(typ, spec) {
		return errors.New(errors.PhaseSettings, errors.KindTypeMismatch).
			Path(key, property).
			NativeType(s.Runtime().TypeName(spec.ValueType)).
			Detail("key type %q does not fit the property", typ).
			Build()
	}
	if flags&SettingsBindSet != 0 && !spec.Readable() {
		return errors.New(errors.PhaseSettings, errors.KindNotReadable).Path(key, property).Build()
	}
	if flags&SettingsBindGet != 0 && !spec.Writable() {
		return errors.ReadOnly(errors.PhaseSettings, []string{key, property}, "property is not writable")
	}
	rt := s.Runtime()
	st := glib.NewStash(rt)
	defer st.Free()
	abiOf(rt).SettingsBind(s.Native(), st.CString(key), object.Native(), st.CString(property), uint32(flags))
	return nil
}

// BindWritable makes a boolean property follow the writability of key.
func (s *Settings) BindWritable(key string, object Bindable, property string, inverted bool) error {
	k, err := s.schemaKey(key, "")
	if err != nil {
		return err
	}
	k.Release()
	spec, err := s.bindTarget(object, property)
	if err != nil {
		return err
	}
	if spec.ValueType != gobridge.TypeBoolean || !spec.Writable() {
		return errors.New(errors.PhaseSettings, errors.KindTypeMismatch).
			Path(key, property).
			Detail("writability binds to a writable boolean property").
			Build()
	}
	rt := s.Runtime()
	st := glib.NewStash(rt)
	defer st.Free()
	abiOf(rt).SettingsBindWritable(s.Native(), st.CString(key), object.Native(), st.CString(property), inverted)
	return nil
}

func (s *Settings) bindTarget(object Bindable, property string) (glib.ParamSpec, error) {
	spec, ok := object.FindProperty(property)
	if !ok {
		return spec, errors.NotFound(errors.PhaseProperty, "property", property)
	}
	return spec, nil
}

func (s *Settings) compatible(keyType string, spec glib.ParamSpec) bool {
	a := abiOf(s.Runtime())
	switch a.TypeFundamental(spec.ValueType) {
	case gobridge.TypeBoolean:
		return keyType == "b"
	case gobridge.TypeInt:
		return keyType == "i"
	case gobridge.TypeUint:
		return keyType == "u"
	case gobridge.TypeInt64:
		return keyType == "x"
	case gobridge.TypeUint64:
		return keyType == "t"
	case gobridge.TypeDouble:
		return keyType == "d"
	case gobridge.TypeString, gobridge.TypeEnum:
		return keyType == "s"
	case gobridge.TypeBoxed:
		return keyType == "as" && spec.ValueType == a.StrvType()
	}
	return false
}

// CreateAction returns a stateful action whose state is key.
func (s *Settings) CreateAction(key string) (*Action, error) {
	k, err := s.schemaKey(key, "")
	if err != nil {
		return nil, err
	}
	k.Release()
	rt := s.Runtime()
	st := glib.NewStash(rt)
	defer st.Free()
	return glib.Take[*Action](rt, abiOf(rt).SettingsCreateAction(s.Native(), st.CString(key))), nil
}

// Delay switches to delay-apply mode: writes stay pending until Apply.
func (s *Settings) Delay() {
	abiOf(s.Runtime()).SettingsDelay(s.Native())
}

// Apply writes the pending changes of delay-apply mode.
func (s *Settings) Apply() {
	abiOf(s.Runtime()).SettingsApply(s.Native())
}

// Revert drops the pending changes of delay-apply mode.
func (s *Settings) Revert() {
	abiOf(s.Runtime()).SettingsRevert(s.Native())
}

// HasUnapplied reports whether delay-apply mode holds changes that
// Apply would write.
func (s *Settings) HasUnapplied() bool {
	return abiOf(s.Runtime()).SettingsGetHasUnapplied(s.Native())
}

// Reset removes the user value of key so it reads as its default.
func (s *Settings) Reset(key string) error {
	k, err := s.schemaKey(key, "")
	if err != nil {
		return err
	}
	k.Release()
	rt := s.Runtime()
	st := glib.NewStash(rt)
	defer st.Free()
	abiOf(rt).SettingsReset(s.Native(), st.CString(key))
	return nil
}

// IsWritable reports whether key can be changed. Unknown keys are not.
func (s *Settings) IsWritable(key string) bool {
	schema := s.SettingsSchema()
	defer schema.Release()
	if !schema.HasKey(key) {
		return false
	}
	rt := s.Runtime()
	st := glib.NewStash(rt)
	defer st.Free()
	return abiOf(rt).SettingsIsWritable(s.Native(), st.CString(key))
}

// Child returns the settings object of child schema name, on the same
// backend.
func (s *Settings) Child(name string) (*Settings, error) {
	if !slices.Contains(s.ListChildren(), name) {
		return nil, errors.NotFound(errors.PhaseSettings, "child schema", name)
	}
	rt := s.Runtime()
	st := glib.NewStash(rt)
	defer st.Free()
	return glib.Take[*Settings](rt, abiOf(rt).SettingsGetChild(s.Native(), st.CString(name))), nil
}

// ListChildren returns the names accepted by Child.
func (s *Settings) ListChildren() []string {
	rt := s.Runtime()
	return glib.StrvFull(rt, abiOf(rt).SettingsListChildren(s.Native()))
}

// Backend returns the backend the object reads and writes.
func (s *Settings) Backend() *SettingsBackend {
	return glib.MustProperty[*SettingsBackend](s, "backend")
}

// IsDelayApply reports whether Delay was called.
func (s *Settings) IsDelayApply() bool {
	return glib.MustProperty[bool](s, "delay-apply")
}

// Path returns the path the object reads its keys from.
func (s *Settings) Path() string {
	return glib.MustProperty[string](s, "path")
}

// SchemaID returns the id of the object's schema.
func (s *Settings) SchemaID() string {
	return glib.MustProperty[string](s, "schema-id")
}

// SettingsSchema returns the schema the object was created with.
func (s *Settings) SettingsSchema() *SettingsSchema {
	return glib.MustProperty[*SettingsSchema](s, "settings-schema")
}

// ConnectChanged calls fn after a key changes. A non-empty detail
// restricts fn to that key.
func (s *Settings) ConnectChanged(detail string, fn func(s *Settings, key string)) glib.SignalHandlerID {
	return glib.MustConnect(s, glib.Signal{Name: "changed", Detail: detail}, func(args *glib.Args, _ *glib.Return) {
		fn(glib.ArgObject[*Settings](args, 0), args.String(1))
	})
}

// ConnectChangeEvent calls fn once per batch of changes, before any
// "changed" emission. Returning true stops the batch from reaching the
// "changed" handlers. A nil keys slice means every key may have changed.
func (s *Settings) ConnectChangeEvent(fn func(s *Settings, keys []string) bool) glib.SignalHandlerID {
	return glib.MustConnect(s, glib.Signal{Name: "change-event"}, func(args *glib.Args, ret *glib.Return) {
		rt := args.Runtime()
		var keys []string
		if arr, n := args.Pointer(1), args.Int(2); arr != 0 && n > 0 {
			raw := abiOf(rt).Read(arr, uintptr(4*n))
			keys = make([]string, n)
			for i := range keys {
				keys[i] = rt.Quark(binary.NativeEndian.Uint32(raw[4*i:]))
			}
		}
		ret.SetBool(fn(glib.ArgObject[*Settings](args, 0), keys))
	})
}

// ConnectWritableChanged calls fn after the writability of a key
// changes. A non-empty detail restricts fn to that key.
func (s *Settings) ConnectWritableChanged(detail string, fn func(s *Settings, key string)) glib.SignalHandlerID {
	return glib.MustConnect(s, glib.Signal{Name: "writable-changed", Detail: detail}, func(args *glib.Args, _ *glib.Return) {
		fn(glib.ArgObject[*Settings](args, 0), args.String(1))
	})
}

// ConnectWritableChangeEvent calls fn before "writable-changed".
// Returning true stops the emission.
func (s *Settings) ConnectWritableChangeEvent(fn func(s *Settings, key string) bool) glib.SignalHandlerID {
	return glib.MustConnect(s, glib.Signal{Name: "writable-change-event"}, func(args *glib.Args, ret *glib.Return) {
		key := args.Runtime().Quark(args.Uint(1))
		ret.SetBool(fn(glib.ArgObject[*Settings](args, 0), key))
	})
}

// ConnectDelayApplyNotify runs fn when the delay-apply property changes.
func (s *Settings) ConnectDelayApplyNotify(fn func()) glib.SignalHandlerID {
	return glib.ConnectNotify(s, "delay-apply", fn)
}

// ConnectHasUnappliedNotify runs fn when has-unapplied changes.
func (s *Settings) ConnectHasUnappliedNotify(fn func()) glib.SignalHandlerID {
	return glib.ConnectNotify(s, "has-unapplied", fn)
}
