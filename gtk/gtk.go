// Package gtk wraps the GTK 3 cell renderers used to edit a value from
// a list of choices, together with the tree model types they read.
//
// Every GTK type is main-thread-only: call Init from the goroutine that
// will run the main loop, after runtime.LockOSThread, and use the
// wrappers only from that goroutine.
package gtk

import (
	"github.com/wippyai/gobject-bridge/errors"
	"github.com/wippyai/gobject-bridge/glib"
)

// Init binds the calling OS thread as the main thread of rt and
// initializes GTK. Calling it again from the same thread is a no-op.
func Init(rt *glib.Runtime) error {
	if err := rt.BindMainThread(); err != nil {
		return err
	}
	if !abiOf(rt).InitCheck() {
		return errors.New(errors.PhaseLoad, errors.KindNotInitialized).
			Detail("gtk_init_check failed; is a display available?").
			Build()
	}
	rt.Log().Debug("gtk initialized")
	return nil
}

// mainThread checks the caller before a constructor reaches native code.
func mainThread(rt *glib.Runtime, what string) ABI {
	rt.AssertMainThread(what)
	return abiOf(rt)
}
