package gio

import (
	"github.com/wippyai/gobject-bridge/errors"
	"github.com/wippyai/gobject-bridge/glib"
)

// schemaKey looks key up in the object's schema and, when typ is not
// empty, checks that its values have that GVariant type.
func (s *Settings) schemaKey(key, typ string) (*SettingsSchemaKey, error) {
	schema := s.SettingsSchema()
	defer schema.Release()
	if !schema.HasKey(key) {
		return nil, errors.New(errors.PhaseSettings, errors.KindNotFound).
			Path(schema.ID(), key).
			Detail("settings schema %q does not contain a key named %q", schema.ID(), key).
			Build()
	}
	k, err := schema.Key(key)
	if err != nil {
		return nil, err
	}
	if got := k.ValueType(); typ != "" && got != typ {
		k.Release()
		return nil, errors.New(errors.PhaseSettings, errors.KindTypeMismatch).
			Path(schema.ID(), key).
			NativeType(got).
			Detail("key has type %q, not %q", got, typ).
			Build()
	}
	return k, nil
}

// get runs a getter after checking key and its type.
func get[T any](s *Settings, key, typ string, fn func(a ABI, settings, key ptr) T) (T, error) {
	k, err := s.schemaKey(key, typ)
	if err != nil {
		var zero T
		return zero, err
	}
	k.Release()
	rt := s.Runtime()
	st := glib.NewStash(rt)
	defer st.Free()
	return fn(abiOf(rt), s.Native(), st.CString(key)), nil
}

type setter func(a ABI, settings, key ptr, st *glib.Stash) bool

// set checks key, its type and, when x is not nil, that x is inside
// the key's range before running the setter.
func (s *Settings) set(key, typ string, x any, fn setter) error {
	k, err := s.schemaKey(key, typ)
	if err != nil {
		return err
	}
	defer k.Release()
	if x != nil {
		v, err := glib.NewVariant(s.Runtime(), x)
		if err != nil {
			return err
		}
		ok := k.RangeCheck(v)
		v.Release()
		if !ok {
			return errors.OutOfRange(errors.PhaseSettings, []string{s.SchemaID(), key}, x)
		}
	}
	return s.write(key, x, fn)
}

// write runs a setter. A setter that fails on a writable key rejected
// value; on any other key the failure means the key is locked.
func (s *Settings) write(key string, value any, fn setter) error {
	rt := s.Runtime()
	st := glib.NewStash(rt)
	defer st.Free()
	a := abiOf(rt)
	ckey := st.CString(key)
	if fn(a, s.Native(), ckey, st) {
		return nil
	}
	if a.SettingsIsWritable(s.Native(), ckey) {
		return errors.OutOfRange(errors.PhaseSettings, []string{s.SchemaID(), key}, value)
	}
	return errors.ReadOnly(errors.PhaseSettings, []string{s.SchemaID(), key}, "Can't set readonly key")
}

// Value returns the effective value of key.
func (s *Settings) Value(key string) (*glib.Variant, error) {
	p, err := get(s, key, "", ABI.SettingsGetValue)
	if err != nil {
		return nil, err
	}
	return glib.Take[*glib.Variant](s.Runtime(), p), nil
}

// UserValue returns the value the user set for key, or false when key
// has its default. In delay-apply mode a pending reset reads as unset.
func (s *Settings) UserValue(key string) (*glib.Variant, bool, error) {
	p, err := get(s, key, "", ABI.SettingsGetUserValue)
	if err != nil {
		return nil, false, err
	}
	v, ok := glib.TakeOpt[*glib.Variant](s.Runtime(), glib.Nullable(p))
	return v, ok, nil
}

// DefaultValue returns the schema default of key.
func (s *Settings) DefaultValue(key string) (*glib.Variant, error) {
	p, err := get(s, key, "", ABI.SettingsGetDefaultValue)
	if err != nil {
		return nil, err
	}
	return glib.Take[*glib.Variant](s.Runtime(), p), nil
}

// SetValue writes v, which must have the key's type and lie in its range.
func (s *Settings) SetValue(key string, v *glib.Variant) error {
	k, err := s.schemaKey(key, v.TypeString())
	if err != nil {
		return err
	}
	ok := k.RangeCheck(v)
	k.Release()
	if !ok {
		return errors.OutOfRange(errors.PhaseSettings, []string{s.SchemaID(), key}, v.String())
	}
	return s.write(key, v.String(), func(a ABI, settings, key ptr, _ *glib.Stash) bool {
		return a.SettingsSetValue(settings, key, v.Native())
	})
}

// Boolean returns the value of a "b" key.
func (s *Settings) Boolean(key string) (bool, error) {
	return get(s, key, "b", ABI.SettingsGetBoolean)
}

// SetBoolean writes a "b" key.
func (s *Settings) SetBoolean(key string, value bool) error {
	return s.set(key, "b", value, func(a ABI, settings, key ptr, _ *glib.Stash) bool {
		return a.SettingsSetBoolean(settings, key, value)
	})
}

// Int returns the value of an "i" key.
func (s *Settings) Int(key string) (int32, error) {
	return get(s, key, "i", ABI.SettingsGetInt)
}

// SetInt writes an "i" key. Values outside the schema range are
// rejected before reaching the native side.
func (s *Settings) SetInt(key string, value int32) error {
	return s.set(key, "i", value, func(a ABI, settings, key ptr, _ *glib.Stash) bool {
		return a.SettingsSetInt(settings, key, value)
	})
}

// Int64 returns the value of an "x" key.
func (s *Settings) Int64(key string) (int64, error) {
	return get(s, key, "x", ABI.SettingsGetInt64)
}

// SetInt64 writes an "x" key.
func (s *Settings) SetInt64(key string, value int64) error {
	return s.set(key, "x", value, func(a ABI, settings, key ptr, _ *glib.Stash) bool {
		return a.SettingsSetInt64(settings, key, value)
	})
}

// Uint returns the value of a "u" key.
func (s *Settings) Uint(key string) (uint32, error) {
	return get(s, key, "u", ABI.SettingsGetUint)
}

// SetUint writes a "u" key.
func (s *Settings) SetUint(key string, value uint32) error {
	return s.set(key, "u", value, func(a ABI, settings, key ptr, _ *glib.Stash) bool {
		return a.SettingsSetUint(settings, key, value)
	})
}

// Uint64 returns the value of a "t" key.
func (s *Settings) Uint64(key string) (uint64, error) {
	return get(s, key, "t", ABI.SettingsGetUint64)
}

// SetUint64 writes a "t" key.
func (s *Settings) SetUint64(key string, value uint64) error {
	return s.set(key, "t", value, func(a ABI, settings, key ptr, _ *glib.Stash) bool {
		return a.SettingsSetUint64(settings, key, value)
	})
}

// Double returns the value of a "d" key.
func (s *Settings) Double(key string) (float64, error) {
	return get(s, key, "d", ABI.SettingsGetDouble)
}

// SetDouble writes a "d" key.
func (s *Settings) SetDouble(key string, value float64) error {
	return s.set(key, "d", value, func(a ABI, settings, key ptr, _ *glib.Stash) bool {
		return a.SettingsSetDouble(settings, key, value)
	})
}

// String returns the value of an "s" key. Enumerated keys read as
// their nick.
func (s *Settings) String(key string) (string, error) {
	p, err := get(s, key, "s", ABI.SettingsGetString)
	if err != nil {
		return "", err
	}
	return glib.GoStringFull(s.Runtime(), p), nil
}

// SetString writes an "s" key. For enumerated keys value must be one
// of the declared nicks.
func (s *Settings) SetString(key, value string) error {
	return s.set(key, "s", value, func(a ABI, settings, key ptr, st *glib.Stash) bool {
		return a.SettingsSetString(settings, key, st.CString(value))
	})
}

// Strv returns the value of an "as" key.
func (s *Settings) Strv(key string) ([]string, error) {
	p, err := get(s, key, "as", ABI.SettingsGetStrv)
	if err != nil {
		return nil, err
	}
	return glib.StrvFull(s.Runtime(), p), nil
}

// SetStrv writes an "as" key. A nil slice writes the empty list.
func (s *Settings) SetStrv(key string, value []string) error {
	if value == nil {
		value = []string{}
	}
	return s.set(key, "as", value, func(a ABI, settings, key ptr, st *glib.Stash) bool {
		return a.SettingsSetStrv(settings, key, st.Strv(value))
	})
}

// Enum returns the value of an enumerated string key.
func (s *Settings) Enum(key string) (int32, error) {
	return get(s, key, "s", ABI.SettingsGetEnum)
}

// SetEnum writes an enumerated key by value. A value the schema does not
// declare is an out_of_range error.
func (s *Settings) SetEnum(key string, value int32) error {
	k, err := s.schemaKey(key, "s")
	if err != nil {
		return err
	}
	k.Release()
	return s.write(key, value, func(a ABI, settings, key ptr, _ *glib.Stash) bool {
		return a.SettingsSetEnum(settings, key, value)
	})
}

// Flags returns the value of a flags key as a bit set.
func (s *Settings) Flags(key string) (uint32, error) {
	return get(s, key, "as", ABI.SettingsGetFlags)
}

// SetFlags writes a flags key. Every set bit must belong to a declared
// flag, or the write is an out_of_range error.
func (s *Settings) SetFlags(key string, value uint32) error {
	k, err := s.schemaKey(key, "as")
	if err != nil {
		return err
	}
	k.Release()
	return s.write(key, value, func(a ABI, settings, key ptr, _ *glib.Stash) bool {
		return a.SettingsSetFlags(settings, key, value)
	})
}
