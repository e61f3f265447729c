package gio_test

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/gobject-bridge/errors"
	"github.com/wippyai/gobject-bridge/gio"
	"github.com/wippyai/gobject-bridge/glib"
	"github.com/wippyai/gobject-bridge/native/sim"
)

// textCell stands in for a widget whose properties settings drive.
type textCell struct{ glib.Object }

func init() {
	glib.RegisterObject(glib.ObjectInfo[*textCell]{
		Name:    "GtkCellRendererText",
		GetType: "gtk_cell_renderer_text_get_type",
		Wrap:    func(o glib.Object) *textCell { return &textCell{o} },
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

func newEditor(t *testing.T, rt *glib.Runtime) *gio.Settings {
	t.Helper()
	s, err := gio.NewSettings(rt, "org.example.editor")
	if err != nil {
		t.Fatalf("NewSettings: %v", err)
	}
	t.Cleanup(s.Release)
	return s
}

func newTextCell(t *testing.T, rt *glib.Runtime, b *sim.Backend) *textCell {
	t.Helper()
	c := glib.TakeFloating[*textCell](rt, b.CellRendererTextNew())
	t.Cleanup(c.Release)
	return c
}

func asError(err error) *errors.Error {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e
	}
	return nil
}

func errorKind(err error) errors.Kind {
	if e := asError(err); e != nil {
		return e.Kind
	}
	return ""
}
