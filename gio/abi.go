package gio

import (
	gobridge "github.com/wippyai/gobject-bridge"
	"github.com/wippyai/gobject-bridge/errors"
	"github.com/wippyai/gobject-bridge/glib"
)

type ptr = gobridge.Ptr

// ABI is the GIO function table: GSettings, its schemas and backends,
// and the GAction interface. Getters follow GIO's transfer annotations;
// see the wrapper that calls each one.
type ABI interface {
	gobridge.ABI

	SettingsNew(schemaID ptr) ptr
	SettingsNewFull(schema, backend, path ptr) ptr
	SettingsNewWithBackend(schemaID, backend ptr) ptr
	SettingsNewWithBackendAndPath(schemaID, backend, path ptr) ptr
	SettingsNewWithPath(schemaID, path ptr) ptr
	SettingsSync()
	SettingsBind(settings, key, object, property ptr, flags uint32)
	SettingsBindWritable(settings, key, object, property ptr, inverted bool)
	SettingsUnbind(object, property ptr)
	SettingsApply(settings ptr)
	SettingsDelay(settings ptr)
	SettingsRevert(settings ptr)
	SettingsReset(settings, key ptr)
	SettingsCreateAction(settings, key ptr) ptr
	SettingsGetChild(settings, name ptr) ptr
	SettingsListChildren(settings ptr) ptr
	SettingsGetHasUnapplied(settings ptr) bool
	SettingsIsWritable(settings, key ptr) bool

	SettingsGetValue(settings, key ptr) ptr
	SettingsGetUserValue(settings, key ptr) ptr
	SettingsGetDefaultValue(settings, key ptr) ptr
	SettingsSetValue(settings, key, value ptr) bool
	SettingsGetBoolean(settings, key ptr) bool
	SettingsSetBoolean(settings, key ptr, value bool) bool
	SettingsGetInt(settings, key ptr) int32
	SettingsSetInt(settings, key ptr, value int32) bool
	SettingsGetInt64(settings, key ptr) int64
	SettingsSetInt64(settings, key ptr, value int64) bool
	SettingsGetUint(settings, key ptr) uint32
	SettingsSetUint(settings, key ptr, value uint32) bool
	SettingsGetUint64(settings, key ptr) uint64
	SettingsSetUint64(settings, key ptr, value uint64) bool
	SettingsGetDouble(settings, key ptr) float64
	SettingsSetDouble(settings, key ptr, value float64) bool
	SettingsGetString(settings, key ptr) ptr
	SettingsSetString(settings, key, value ptr) bool
	SettingsGetStrv(settings, key ptr) ptr
	SettingsSetStrv(settings, key, value ptr) bool
	SettingsGetEnum(settings, key ptr) int32
	SettingsSetEnum(settings, key ptr, value int32) bool
	SettingsGetFlags(settings, key ptr) uint32
	SettingsSetFlags(settings, key ptr, value uint32) bool

	SettingsSchemaSourceGetDefault() ptr
	SettingsSchemaSourceNewFromDirectory(dir, parent ptr, trusted bool, errp ptr) ptr
	SettingsSchemaSourceRef(source ptr) ptr
	SettingsSchemaSourceUnref(source ptr)
	SettingsSchemaSourceLookup(source, schemaID ptr, recursive bool) ptr
	SettingsSchemaSourceListSchemas(source ptr, recursive bool, nonRelocatable, relocatable ptr)

	SettingsSchemaRef(schema ptr) ptr
	SettingsSchemaUnref(schema ptr)
	SettingsSchemaGetID(schema ptr) ptr
	SettingsSchemaGetPath(schema ptr) ptr
	SettingsSchemaHasKey(schema, name ptr) bool
	SettingsSchemaGetKey(schema, name ptr) ptr
	SettingsSchemaListKeys(schema ptr) ptr
	SettingsSchemaListChildren(schema ptr) ptr

	SettingsSchemaKeyRef(key ptr) ptr
	SettingsSchemaKeyUnref(key ptr)
	SettingsSchemaKeyGetName(key ptr) ptr
	SettingsSchemaKeyGetSummary(key ptr) ptr
	SettingsSchemaKeyGetDescription(key ptr) ptr
	SettingsSchemaKeyGetValueType(key ptr) ptr
	SettingsSchemaKeyGetDefaultValue(key ptr) ptr
	SettingsSchemaKeyRangeCheck(key, value ptr) bool
	VariantTypeDupString(t ptr) ptr

	MemorySettingsBackendNew() ptr
	NullSettingsBackendNew() ptr
	SettingsBackendGetDefault() ptr

	ActionGetName(action ptr) ptr
	ActionGetEnabled(action ptr) bool
	ActionGetState(action ptr) ptr
	ActionActivate(action, parameter ptr)
	ActionChangeState(action, value ptr)
}

func abiOf(rt *glib.Runtime) ABI {
	a, ok := rt.ABI().(ABI)
	if !ok {
		errors.Panic(errors.Unsupported(errors.PhaseLoad, "native backend does not provide GIO"))
	}
	return a
}
