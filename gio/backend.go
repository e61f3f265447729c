package gio

import (
	"github.com/wippyai/gobject-bridge/glib"
)

// SettingsBackend stores the values of settings objects.
type SettingsBackend struct {
	glib.Object
}

var _ = glib.RegisterObject(glib.ObjectInfo[*SettingsBackend]{
	Name:    "GSettingsBackend",
	GetType: "g_settings_backend_get_type",
	Wrap:    func(o glib.Object) *SettingsBackend { return &SettingsBackend{Object: o} },
})

// NewMemorySettingsBackend returns a backend that keeps values in
// memory for the life of the process.
func NewMemorySettingsBackend(rt *glib.Runtime) *SettingsBackend {
	return glib.Take[*SettingsBackend](rt, abiOf(rt).MemorySettingsBackendNew())
}

// NewNullSettingsBackend returns a backend that reports every key as
// unwritable and always yields defaults.
func NewNullSettingsBackend(rt *glib.Runtime) *SettingsBackend {
	return glib.Take[*SettingsBackend](rt, abiOf(rt).NullSettingsBackendNew())
}

// DefaultSettingsBackend returns the backend settings objects use when
// none is given.
func DefaultSettingsBackend(rt *glib.Runtime) *SettingsBackend {
	return glib.Take[*SettingsBackend](rt, abiOf(rt).SettingsBackendGetDefault())
}
