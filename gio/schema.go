package gio

import (
	gobridge "github.com/wippyai/gobject-bridge"
	"github.com/wippyai/gobject-bridge/errors"
	"github.com/wippyai/gobject-bridge/glib"
)

// SettingsSchemaSource is a set of installed schemas, possibly chained
// to a parent source.
type SettingsSchemaSource struct {
	glib.Shared
}

// SettingsSchema describes the keys and children of one schema.
type SettingsSchema struct {
	glib.Shared
}

// SettingsSchemaKey describes one key of a schema.
type SettingsSchemaKey struct {
	glib.Shared
}

var (
	_ = glib.RegisterShared(glib.SharedInfo[*SettingsSchemaSource]{
		Name:    "GSettingsSchemaSource",
		GetType: "g_settings_schema_source_get_type",
		Ref: func(rt *glib.Runtime, p ptr) ptr {
			return abiOf(rt).SettingsSchemaSourceRef(p)
		},
		Unref: func(rt *glib.Runtime, p ptr) {
			abiOf(rt).SettingsSchemaSourceUnref(p)
		},
		Wrap: func(s glib.Shared) *SettingsSchemaSource { return &SettingsSchemaSource{Shared: s} },
	})
	_ = glib.RegisterShared(glib.SharedInfo[*SettingsSchema]{
		Name:    "GSettingsSchema",
		GetType: "g_settings_schema_get_type",
		Ref: func(rt *glib.Runtime, p ptr) ptr {
			return abiOf(rt).SettingsSchemaRef(p)
		},
		Unref: func(rt *glib.Runtime, p ptr) {
			abiOf(rt).SettingsSchemaUnref(p)
		},
		Wrap: func(s glib.Shared) *SettingsSchema { return &SettingsSchema{Shared: s} },
	})
	_ = glib.RegisterShared(glib.SharedInfo[*SettingsSchemaKey]{
		Name:    "GSettingsSchemaKey",
		GetType: "g_settings_schema_key_get_type",
		Ref: func(rt *glib.Runtime, p ptr) ptr {
			return abiOf(rt).SettingsSchemaKeyRef(p)
		},
		Unref: func(rt *glib.Runtime, p ptr) {
			abiOf(rt).SettingsSchemaKeyUnref(p)
		},
		Wrap: func(s glib.Shared) *SettingsSchemaKey { return &SettingsSchemaKey{Shared: s} },
	})
)

// DefaultSchemaSource returns the source of the installed schemas, or
// false when no schemas are installed at all.
func DefaultSchemaSource(rt *glib.Runtime) (*SettingsSchemaSource, bool) {
	return glib.FromNoneOpt[*SettingsSchemaSource](rt, glib.Nullable(abiOf(rt).SettingsSchemaSourceGetDefault()))
}

// NewSchemaSourceFromDirectory loads the compiled schemas in dir. Lookups
// that miss fall through to parent when it is non-nil.
func NewSchemaSourceFromDirectory(rt *glib.Runtime, dir string, parent *SettingsSchemaSource, trusted bool) (*SettingsSchemaSource, error) {
	var pp ptr
	if parent != nil {
		pp = parent.Native()
	}
	st := glib.NewStash(rt)
	defer st.Free()
	slot := glib.NewErrorSlot(rt)
	p := abiOf(rt).SettingsSchemaSourceNewFromDirectory(st.CString(dir), pp, trusted, slot.Native())
	if err := slot.Take(); err != nil {
		return nil, err
	}
	return glib.Take[*SettingsSchemaSource](rt, p), nil
}

// Lookup finds a schema by id, searching parent sources when recursive.
func (s *SettingsSchemaSource) Lookup(id string, recursive bool) (*SettingsSchema, bool) {
	rt := s.Runtime()
	st := glib.NewStash(rt)
	defer st.Free()
	p := abiOf(rt).SettingsSchemaSourceLookup(s.Native(), st.CString(id), recursive)
	return glib.TakeOpt[*SettingsSchema](rt, glib.Nullable(p))
}

// ListSchemas returns the ids of the schemas with a fixed path and of
// the relocatable ones, each sorted.
func (s *SettingsSchemaSource) ListSchemas(recursive bool) (nonRelocatable, relocatable []string) {
	rt := s.Runtime()
	a := abiOf(rt)
	st := glib.NewStash(rt)
	defer st.Free()
	out := st.Alloc(2 * gobridge.PtrSize)
	a.SettingsSchemaSourceListSchemas(s.Native(), recursive, out, out+gobridge.PtrSize)
	return glib.StrvFull(rt, a.ReadPtr(out)), glib.StrvFull(rt, a.ReadPtr(out+gobridge.PtrSize))
}

// ID returns the schema id.
func (s *SettingsSchema) ID() string {
	rt := s.Runtime()
	return glib.GoStringNone(rt, abiOf(rt).SettingsSchemaGetID(s.Native()))
}

// Path returns the schema's fixed path, or false for a relocatable schema.
func (s *SettingsSchema) Path() (string, bool) {
	rt := s.Runtime()
	return glib.OptStringNone(rt, glib.Nullable(abiOf(rt).SettingsSchemaGetPath(s.Native())))
}

// HasKey reports whether the schema declares name.
func (s *SettingsSchema) HasKey(name string) bool {
	rt := s.Runtime()
	st := glib.NewStash(rt)
	defer st.Free()
	return abiOf(rt).SettingsSchemaHasKey(s.Native(), st.CString(name))
}

// Key returns the description of key name.
func (s *SettingsSchema) Key(name string) (*SettingsSchemaKey, error) {
	if !s.HasKey(name) {
		return nil, errors.New(errors.PhaseSettings, errors.KindNotFound).
			Path(s.ID(), name).
			Detail("schema %q does not contain a key named %q", s.ID(), name).
			Build()
	}
	rt := s.Runtime()
	st := glib.NewStash(rt)
	defer st.Free()
	return glib.Take[*SettingsSchemaKey](rt, abiOf(rt).SettingsSchemaGetKey(s.Native(), st.CString(name))), nil
}

// ListKeys returns the names of the schema's keys in declaration order.
func (s *SettingsSchema) ListKeys() []string {
	rt := s.Runtime()
	return glib.StrvFull(rt, abiOf(rt).SettingsSchemaListKeys(s.Native()))
}

// ListChildren returns the names of the schema's child schemas.
func (s *SettingsSchema) ListChildren() []string {
	rt := s.Runtime()
	return glib.StrvFull(rt, abiOf(rt).SettingsSchemaListChildren(s.Native()))
}

// Name returns the key name.
func (k *SettingsSchemaKey) Name() string {
	rt := k.Runtime()
	return glib.GoStringNone(rt, abiOf(rt).SettingsSchemaKeyGetName(k.Native()))
}

// Summary returns the translated one-line summary, if the schema has one.
func (k *SettingsSchemaKey) Summary() (string, bool) {
	rt := k.Runtime()
	return glib.OptStringNone(rt, glib.Nullable(abiOf(rt).SettingsSchemaKeyGetSummary(k.Native())))
}

// Description returns the translated long description, if any.
func (k *SettingsSchemaKey) Description() (string, bool) {
	rt := k.Runtime()
	return glib.OptStringNone(rt, glib.Nullable(abiOf(rt).SettingsSchemaKeyGetDescription(k.Native())))
}

// ValueType returns the GVariant type string of the key's values.
func (k *SettingsSchemaKey) ValueType() string {
	rt := k.Runtime()
	a := abiOf(rt)
	return glib.GoStringFull(rt, a.VariantTypeDupString(a.SettingsSchemaKeyGetValueType(k.Native())))
}

// DefaultValue returns the default from the schema, ignoring any user
// value.
func (k *SettingsSchemaKey) DefaultValue() *glib.Variant {
	rt := k.Runtime()
	return glib.Take[*glib.Variant](rt, abiOf(rt).SettingsSchemaKeyGetDefaultValue(k.Native()))
}

// RangeCheck reports whether v has the key's type and lies inside its
// range, enumeration or flag set.
func (k *SettingsSchemaKey) RangeCheck(v *glib.Variant) bool {
	return abiOf(k.Runtime()).SettingsSchemaKeyRangeCheck(k.Native(), v.Native())
}
