package glib_test

import (
	stderrors "errors"
	"testing"

	gobridge "github.com/wippyai/gobject-bridge"
	"github.com/wippyai/gobject-bridge/errors"
	"github.com/wippyai/gobject-bridge/glib"
)

func TestProperty_RoundTrip(t *testing.T) {
	rt, b := newRuntime(t)
	r := glib.TakeFloating[*textRenderer](rt, b.CellRendererTextNew())
	defer r.Release()

	if text, err := glib.Property[string](r, "text"); err != nil || text != "" {
		t.Fatalf("unset text = %q, %v", text, err)
	}
	if err := glib.SetProperty(r, "text", "hello"); err != nil {
		t.Fatalf("SetProperty: %v", err)
	}
	if got := glib.MustProperty[string](r, "text"); got != "hello" {
		t.Fatalf("text = %q", got)
	}
	if got := glib.MustProperty[uint32](r, "xpad"); got != 2 {
		t.Fatalf("xpad = %d", got)
	}
	glib.MustSetProperty(r, "xpad", 7)
	if v, err := r.Property("xpad"); err != nil || v != uint32(7) {
		t.Fatalf("xpad = %v, %v", v, err)
	}
	if !glib.MustProperty[bool](r, "visible") {
		t.Fatal("visible should default to true")
	}
}

func TestProperty_Errors(t *testing.T) {
	rt, b := newRuntime(t)
	r := glib.TakeFloating[*textRenderer](rt, b.CellRendererTextNew())
	defer r.Release()
	s := newSettings(t, rt, b)
	defer s.Release()

	tests := []struct {
		name  string
		w     glib.Wrapper
		prop  string
		value any
		phase errors.Phase
		kind  errors.Kind
	}{
		{"unknown", r, "no-such-property", 1, errors.PhaseProperty, errors.KindNotFound},
		{"wrong type", r, "editable", "yes", errors.PhaseProperty, errors.KindTypeMismatch},
		{"negative to uint", r, "xpad", -1, errors.PhaseProperty, errors.KindOverflow},
		{"too large for uint", r, "xpad", uint64(1) << 40, errors.PhaseProperty, errors.KindOverflow},
		{"construct only", s, "path", "/other/", errors.PhaseProperty, errors.KindReadOnly},
		{"read only", s, "has-unapplied", true, errors.PhaseProperty, errors.KindReadOnly},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := glib.SetProperty(tt.w, tt.prop, tt.value)
			if !stderrors.Is(err, errors.New(tt.phase, tt.kind).Build()) {
				t.Fatalf("SetProperty(%s, %v) = %v, want %s/%s", tt.prop, tt.value, err, tt.phase, tt.kind)
			}
		})
	}

	err := glib.SetProperty(s, "has-unapplied", true)
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Detail != "property is not writable" || e.Path[1] != "has-unapplied" {
		t.Fatalf("read-only property error = %#v", err)
	}
	if _, err := glib.Property[bool](r, "no-such-property"); !stderrors.As(err, &e) || e.Detail != "no such property" {
		t.Fatalf("unknown property error = %#v", err)
	}

	if got := glib.MustProperty[uint32](r, "xpad"); got != 2 {
		t.Fatalf("failed sets changed xpad to %d", got)
	}
	glib.MustSetProperty(r, "text", "x")
	if _, err := glib.Property[int32](r, "text"); errorKind(err) != errors.KindTypeMismatch {
		t.Fatalf("reading a string as int32: %v", err)
	}
}

func TestProperty_ComputedAndFlags(t *testing.T) {
	rt, b := newRuntime(t)
	s := newSettings(t, rt, b)
	defer s.Release()

	if got := glib.MustProperty[string](s, "schema-id"); got != "org.example.editor" {
		t.Fatalf("schema-id = %q", got)
	}
	if got := glib.MustProperty[string](s, "path"); got != "/org/example/editor/" {
		t.Fatalf("path = %q", got)
	}
	spec, ok := s.FindProperty("delay_apply")
	if !ok || spec.Name != "delay-apply" || spec.ValueType != gobridge.TypeBoolean {
		t.Fatalf("FindProperty = %+v, %v", spec, ok)
	}
	if !spec.Readable() || spec.Writable() {
		t.Fatalf("delay-apply flags = %v", spec.Flags)
	}
	if _, ok := s.FindProperty("nope"); ok {
		t.Fatal("FindProperty found an unknown property")
	}
}

func TestConnectNotify(t *testing.T) {
	rt, b := newRuntime(t)
	r := glib.TakeFloating[*textRenderer](rt, b.CellRendererTextNew())
	defer r.Release()

	notified := 0
	id := glib.ConnectNotify(r, "text", func() { notified++ })
	glib.MustSetProperty(r, "text", "a")
	glib.MustSetProperty(r, "editable", true)
	glib.MustSetProperty(r, "text", "b")
	if notified != 2 {
		t.Fatalf("notified = %d, want 2", notified)
	}
	glib.Disconnect(r, id)
	glib.MustSetProperty(r, "text", "c")
	if notified != 2 {
		t.Fatal("notify after disconnect")
	}
}

func TestProperty_RequiresObject(t *testing.T) {
	rt, _ := newRuntime(t)
	v, err := glib.NewVariant(rt, int32(1))
	if err != nil {
		t.Fatal(err)
	}
	defer v.Release()
	if err := glib.SetProperty(v, "x", 1); errorKind(err) != errors.KindUnsupported {
		t.Fatalf("SetProperty on a variant: %v", err)
	}
}
