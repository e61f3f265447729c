package glib_test

import (
	stderrors "errors"
	"testing"

	gobridge "github.com/wippyai/gobject-bridge"
	"github.com/wippyai/gobject-bridge/errors"
	"github.com/wippyai/gobject-bridge/glib"
	"github.com/wippyai/gobject-bridge/native/sim"
)

type cellRenderer struct{ glib.Object }
type textRenderer struct{ glib.Object }
type comboRenderer struct{ glib.Object }
type settings struct{ glib.Object }
type listStore struct{ glib.Object }

func init() {
	glib.RegisterObject(glib.ObjectInfo[*cellRenderer]{
		Name:    "GtkCellRenderer",
		GetType: "gtk_cell_renderer_get_type",
		Wrap:    func(o glib.Object) *cellRenderer { return &cellRenderer{o} },
	})
	glib.RegisterObject(glib.ObjectInfo[*textRenderer]{
		Name:    "GtkCellRendererText",
		GetType: "gtk_cell_renderer_text_get_type",
		Wrap:    func(o glib.Object) *textRenderer { return &textRenderer{o} },
	})
	glib.RegisterObject(glib.ObjectInfo[*comboRenderer]{
		Name:    "GtkCellRendererCombo",
		GetType: "gtk_cell_renderer_combo_get_type",
		Wrap:    func(o glib.Object) *comboRenderer { return &comboRenderer{o} },
	})
	glib.RegisterObject(glib.ObjectInfo[*settings]{
		Name:    "GSettings",
		GetType: "g_settings_get_type",
		Wrap:    func(o glib.Object) *settings { return &settings{o} },
	})
	glib.RegisterObject(glib.ObjectInfo[*listStore]{
		Name:           "GtkListStore",
		GetType:        "gtk_list_store_get_type",
		MainThreadOnly: true,
		Wrap:           func(o glib.Object) *listStore { return &listStore{o} },
	})
}

func newRuntime(t *testing.T) (*glib.Runtime, *sim.Backend) {
	t.Helper()
	b := sim.New()
	if err := b.LoadSchemas(sim.ExampleSchemas); err != nil {
		t.Fatalf("LoadSchemas: %v", err)
	}
	b.InitCheck()
	rt, err := glib.New(b)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { rt.Close() })
	return rt, b
}

func cstr(t *testing.T, b *sim.Backend, s string) gobridge.Ptr {
	t.Helper()
	p := b.Strdup(s)
	t.Cleanup(func() { b.Free(p) })
	return p
}

func newSettings(t *testing.T, rt *glib.Runtime, b *sim.Backend) *settings {
	t.Helper()
	return glib.Take[*settings](rt, b.SettingsNew(cstr(t, b, "org.example.editor")))
}

// expectPanic runs fn and checks it panics with an *errors.Error of kind.
func expectPanic(t *testing.T, kind errors.Kind, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected a %s panic", kind)
		}
		e, ok := r.(*errors.Error)
		if !ok {
			t.Fatalf("panic value %T (%v), want *errors.Error", r, r)
		}
		if e.Kind != kind {
			t.Fatalf("panic kind = %s, want %s (%v)", e.Kind, kind, e)
		}
	}()
	fn()
}

func errorKind(err error) errors.Kind {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}
