package system

import "github.com/wippyai/gobject-bridge/gio"

var _ gio.ABI = (*Backend)(nil)

func (b *Backend) SettingsNew(id ptr) ptr { return b.gio.SettingsNew(id) }

func (b *Backend) SettingsNewFull(schema, backend, path ptr) ptr {
	return b.gio.SettingsNewFull(schema, backend, path)
}

func (b *Backend) SettingsNewWithBackend(id, backend ptr) ptr {
	return b.gio.SettingsNewWithBackend(id, backend)
}

func (b *Backend) SettingsNewWithBackendAndPath(id, backend, path ptr) ptr {
	return b.gio.SettingsNewWithBackendAndPath(id, backend, path)
}

func (b *Backend) SettingsNewWithPath(id, path ptr) ptr { return b.gio.SettingsNewWithPath(id, path) }

func (b *Backend) SettingsSync() { b.gio.SettingsSync() }

func (b *Backend) SettingsBind(s, key, obj, prop ptr, flags uint32) {
	b.gio.SettingsBind(s, key, obj, prop, flags)
}

func (b *Backend) SettingsBindWritable(s, key, obj, prop ptr, inverted bool) {
	b.gio.SettingsBindWritable(s, key, obj, prop, inverted)
}

func (b *Backend) SettingsUnbind(obj, prop ptr)        { b.gio.SettingsUnbind(obj, prop) }
func (b *Backend) SettingsApply(s ptr)                 { b.gio.SettingsApply(s) }
func (b *Backend) SettingsDelay(s ptr)                 { b.gio.SettingsDelay(s) }
func (b *Backend) SettingsRevert(s ptr)                { b.gio.SettingsRevert(s) }
func (b *Backend) SettingsReset(s, key ptr)            { b.gio.SettingsReset(s, key) }
func (b *Backend) SettingsCreateAction(s, key ptr) ptr { return b.gio.SettingsCreateAction(s, key) }
func (b *Backend) SettingsGetChild(s, name ptr) ptr    { return b.gio.SettingsGetChild(s, name) }
func (b *Backend) SettingsListChildren(s ptr) ptr      { return b.gio.SettingsListChildren(s) }
func (b *Backend) SettingsGetHasUnapplied(s ptr) bool  { return b.gio.SettingsGetHasUnapplied(s) }
func (b *Backend) SettingsIsWritable(s, key ptr) bool  { return b.gio.SettingsIsWritable(s, key) }
func (b *Backend) SettingsGetValue(s, key ptr) ptr     { return b.gio.SettingsGetValue(s, key) }
func (b *Backend) SettingsGetUserValue(s, key ptr) ptr { return b.gio.SettingsGetUserValue(s, key) }
func (b *Backend) SettingsGetDefaultValue(s, key ptr) ptr {
	return b.gio.SettingsGetDefaultValue(s, key)
}
func (b *Backend) SettingsSetValue(s, key, v ptr) bool { return b.gio.SettingsSetValue(s, key, v) }
func (b *Backend) SettingsGetBoolean(s, key ptr) bool  { return b.gio.SettingsGetBoolean(s, key) }
func (b *Backend) SettingsSetBoolean(s, key ptr, v bool) bool {
	return b.gio.SettingsSetBoolean(s, key, v)
}
func (b *Backend) SettingsGetInt(s, key ptr) int32 { return b.gio.SettingsGetInt(s, key) }
func (b *Backend) SettingsSetInt(s, key ptr, v int32) bool {
	return b.gio.SettingsSetInt(s, key, v)
}
func (b *Backend) SettingsGetInt64(s, key ptr) int64 { return b.gio.SettingsGetInt64(s, key) }
func (b *Backend) SettingsSetInt64(s, key ptr, v int64) bool {
	return b.gio.SettingsSetInt64(s, key, v)
}
func (b *Backend) SettingsGetUint(s, key ptr) uint32 { return b.gio.SettingsGetUint(s, key) }
func (b *Backend) SettingsSetUint(s, key ptr, v uint32) bool {
	return b.gio.SettingsSetUint(s, key, v)
}
func (b *Backend) SettingsGetUint64(s, key ptr) uint64 { return b.gio.SettingsGetUint64(s, key) }
func (b *Backend) SettingsSetUint64(s, key ptr, v uint64) bool {
	return b.gio.SettingsSetUint64(s, key, v)
}
func (b *Backend) SettingsGetDouble(s, key ptr) float64 { return b.gio.SettingsGetDouble(s, key) }
func (b *Backend) SettingsSetDouble(s, key ptr, v float64) bool {
	return b.gio.SettingsSetDouble(s, key, v)
}
func (b *Backend) SettingsGetString(s, key ptr) ptr     { return b.gio.SettingsGetString(s, key) }
func (b *Backend) SettingsSetString(s, key, v ptr) bool { return b.gio.SettingsSetString(s, key, v) }
func (b *Backend) SettingsGetStrv(s, key ptr) ptr       { return b.gio.SettingsGetStrv(s, key) }
func (b *Backend) SettingsSetStrv(s, key, v ptr) bool   { return b.gio.SettingsSetStrv(s, key, v) }
func (b *Backend) SettingsGetEnum(s, key ptr) int32     { return b.gio.SettingsGetEnum(s, key) }
func (b *Backend) SettingsSetEnum(s, key ptr, v int32) bool {
	return b.gio.SettingsSetEnum(s, key, v)
}
func (b *Backend) SettingsGetFlags(s, key ptr) uint32 { return b.gio.SettingsGetFlags(s, key) }
func (b *Backend) SettingsSetFlags(s, key ptr, v uint32) bool {
	return b.gio.SettingsSetFlags(s, key, v)
}

func (b *Backend) SettingsSchemaSourceGetDefault() ptr { return b.gio.SchemaSourceGetDefault() }

func (b *Backend) SettingsSchemaSourceNewFromDirectory(dir, parent ptr, trusted bool, errp ptr) ptr {
	return b.gio.SchemaSourceNewFromDirectory(dir, parent, trusted, errp)
}

func (b *Backend) SettingsSchemaSourceRef(src ptr) ptr { return b.gio.SchemaSourceRef(src) }
func (b *Backend) SettingsSchemaSourceUnref(src ptr)   { b.gio.SchemaSourceUnref(src) }

func (b *Backend) SettingsSchemaSourceLookup(src, id ptr, recursive bool) ptr {
	return b.gio.SchemaSourceLookup(src, id, recursive)
}

func (b *Backend) SettingsSchemaSourceListSchemas(src ptr, recursive bool, fixed, reloc ptr) {
	b.gio.SchemaSourceListSchemas(src, recursive, fixed, reloc)
}

func (b *Backend) SettingsSchemaRef(s ptr) ptr               { return b.gio.SchemaRef(s) }
func (b *Backend) SettingsSchemaUnref(s ptr)                 { b.gio.SchemaUnref(s) }
func (b *Backend) SettingsSchemaGetID(s ptr) ptr             { return b.gio.SchemaGetID(s) }
func (b *Backend) SettingsSchemaGetPath(s ptr) ptr           { return b.gio.SchemaGetPath(s) }
func (b *Backend) SettingsSchemaHasKey(s, name ptr) bool     { return b.gio.SchemaHasKey(s, name) }
func (b *Backend) SettingsSchemaGetKey(s, name ptr) ptr      { return b.gio.SchemaGetKey(s, name) }
func (b *Backend) SettingsSchemaListKeys(s ptr) ptr          { return b.gio.SchemaListKeys(s) }
func (b *Backend) SettingsSchemaListChildren(s ptr) ptr      { return b.gio.SchemaListChildren(s) }
func (b *Backend) SettingsSchemaKeyRef(k ptr) ptr            { return b.gio.SchemaKeyRef(k) }
func (b *Backend) SettingsSchemaKeyUnref(k ptr)              { b.gio.SchemaKeyUnref(k) }
func (b *Backend) SettingsSchemaKeyGetName(k ptr) ptr        { return b.gio.SchemaKeyGetName(k) }
func (b *Backend) SettingsSchemaKeyGetSummary(k ptr) ptr     { return b.gio.SchemaKeyGetSummary(k) }
func (b *Backend) SettingsSchemaKeyGetDescription(k ptr) ptr { return b.gio.SchemaKeyGetDescription(k) }
func (b *Backend) SettingsSchemaKeyGetValueType(k ptr) ptr   { return b.gio.SchemaKeyGetValueType(k) }
func (b *Backend) SettingsSchemaKeyGetDefaultValue(k ptr) ptr {
	return b.gio.SchemaKeyGetDefault(k)
}
func (b *Backend) SettingsSchemaKeyRangeCheck(k, v ptr) bool { return b.gio.SchemaKeyRangeCheck(k, v) }
func (b *Backend) VariantTypeDupString(t ptr) ptr            { return b.glib.VariantTypeDupString(t) }

func (b *Backend) MemorySettingsBackendNew() ptr  { return b.gio.MemoryBackendNew() }
func (b *Backend) NullSettingsBackendNew() ptr    { return b.gio.NullBackendNew() }
func (b *Backend) SettingsBackendGetDefault() ptr { return b.gio.BackendGetDefault() }

func (b *Backend) ActionGetName(a ptr) ptr     { return b.gio.ActionGetName(a) }
func (b *Backend) ActionGetEnabled(a ptr) bool { return b.gio.ActionGetEnabled(a) }
func (b *Backend) ActionGetState(a ptr) ptr    { return b.gio.ActionGetState(a) }
func (b *Backend) ActionActivate(a, param ptr) { b.gio.ActionActivate(a, param) }
func (b *Backend) ActionChangeState(a, v ptr)  { b.gio.ActionChangeState(a, v) }
