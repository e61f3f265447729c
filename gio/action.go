package gio

import (
	"github.com/wippyai/gobject-bridge/glib"
)

// Action is a GAction, such as the one Settings.CreateAction returns.
type Action struct {
	glib.Object
}

var _ = glib.RegisterObject(glib.ObjectInfo[*Action]{
	Name:    "GAction",
	GetType: "g_action_get_type",
	Wrap:    func(o glib.Object) *Action { return &Action{Object: o} },
})

// Name returns the action name, which is the key it was created for.
func (a *Action) Name() string {
	rt := a.Runtime()
	return glib.GoStringNone(rt, abiOf(rt).ActionGetName(a.Native()))
}

// IsEnabled reports whether the action can be activated.
func (a *Action) IsEnabled() bool {
	return abiOf(a.Runtime()).ActionGetEnabled(a.Native())
}

// State returns the current state, or false for a stateless action.
func (a *Action) State() (*glib.Variant, bool) {
	rt := a.Runtime()
	return glib.TakeOpt[*glib.Variant](rt, glib.Nullable(abiOf(rt).ActionGetState(a.Native())))
}

// Activate activates the action. parameter may be nil for actions that
// take none; a boolean settings action toggles its key.
func (a *Action) Activate(parameter *glib.Variant) {
	var p ptr
	if parameter != nil {
		p = parameter.Native()
	}
	abiOf(a.Runtime()).ActionActivate(a.Native(), p)
}

// ChangeState requests a new state. Out-of-range values are ignored.
func (a *Action) ChangeState(value *glib.Variant) {
	abiOf(a.Runtime()).ActionChangeState(a.Native(), value.Native())
}
