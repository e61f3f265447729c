package gio_test

import (
	"reflect"
	"testing"

	"github.com/wippyai/gobject-bridge/errors"
	"github.com/wippyai/gobject-bridge/gio"
	"github.com/wippyai/gobject-bridge/glib"
)

func TestNewSettings_Checks(t *testing.T) {
	rt, _ := newRuntime(t)

	tests := []struct {
		name string
		new  func() (*gio.Settings, error)
		kind errors.Kind
	}{
		{"missing schema", func() (*gio.Settings, error) {
			return gio.NewSettings(rt, "org.example.missing")
		}, errors.KindNotFound},
		{"relocatable without path", func() (*gio.Settings, error) {
			return gio.NewSettings(rt, "org.example.profile")
		}, errors.KindInvalidInput},
		{"malformed path", func() (*gio.Settings, error) {
			return gio.NewSettingsWithPath(rt, "org.example.profile", "profiles/a")
		}, errors.KindInvalidInput},
		{"double slash", func() (*gio.Settings, error) {
			return gio.NewSettingsWithPath(rt, "org.example.profile", "/profiles//a/")
		}, errors.KindInvalidInput},
		{"fixed path mismatch", func() (*gio.Settings, error) {
			return gio.NewSettingsWithPath(rt, "org.example.editor", "/other/")
		}, errors.KindInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.new()
			if s != nil || errorKind(err) != tt.kind {
				t.Fatalf("got %v, %v, want kind %s", s, err, tt.kind)
			}
			if e := asError(err); e.Phase != errors.PhaseSettings {
				t.Fatalf("phase = %s", e.Phase)
			}
		})
	}

	s, err := gio.NewSettingsWithPath(rt, "org.example.profile", "/profiles/a/")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Release()
	if s.Path() != "/profiles/a/" || s.SchemaID() != "org.example.profile" {
		t.Fatalf("path = %q, schema = %q", s.Path(), s.SchemaID())
	}
}

func TestSettings_TypedRoundTrip(t *testing.T) {
	rt, _ := newRuntime(t)
	s := newEditor(t, rt)

	tests := []struct {
		key  string
		def  any
		set  func() error
		get  func() (any, error)
		want any
	}{
		{"show-line-numbers", true,
			func() error { return s.SetBoolean("show-line-numbers", false) },
			func() (any, error) { return s.Boolean("show-line-numbers") }, false},
		{"font-size", int32(12),
			func() error { return s.SetInt("font-size", 18) },
			func() (any, error) { return s.Int("font-size") }, int32(18)},
		{"tab-width", uint32(4),
			func() error { return s.SetUint("tab-width", 8) },
			func() (any, error) { return s.Uint("tab-width") }, uint32(8)},
		{"max-undo", int64(1000),
			func() error { return s.SetInt64("max-undo", -1) },
			func() (any, error) { return s.Int64("max-undo") }, int64(-1)},
		{"size-limit", uint64(1048576),
			func() error { return s.SetUint64("size-limit", 1<<40) },
			func() (any, error) { return s.Uint64("size-limit") }, uint64(1 << 40)},
		{"autosave-interval", 30.0,
			func() error { return s.SetDouble("autosave-interval", 2.5) },
			func() (any, error) { return s.Double("autosave-interval") }, 2.5},
		{"title", "Untitled",
			func() error { return s.SetString("title", "Notes") },
			func() (any, error) { return s.String("title") }, "Notes"},
		{"recent-files", []string{},
			func() error { return s.SetStrv("recent-files", []string{"/a", "/b"}) },
			func() (any, error) { return s.Strv("recent-files") }, []string{"/a", "/b"}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got, err := tt.get(); err != nil || !reflect.DeepEqual(got, tt.def) {
				t.Fatalf("default = %#v, %v, want %#v", got, err, tt.def)
			}
			if err := tt.set(); err != nil {
				t.Fatalf("set: %v", err)
			}
			if got, err := tt.get(); err != nil || !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("after set = %#v, %v, want %#v", got, err, tt.want)
			}
		})
	}
}

func TestSettings_EnumAndFlags(t *testing.T) {
	rt, _ := newRuntime(t)
	s := newEditor(t, rt)

	if v, err := s.Enum("theme"); err != nil || v != 2 {
		t.Fatalf("theme = %d, %v", v, err)
	}
	if err := s.SetEnum("theme", 1); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.String("theme"); v != "dark" {
		t.Fatalf("theme nick = %q", v)
	}
	if err := s.SetFlags("window-state", 1|4); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Strv("window-state"); !reflect.DeepEqual(v, []string{"maximized", "tiled"}) {
		t.Fatalf("window-state nicks = %v", v)
	}
	if v, err := s.Flags("window-state"); err != nil || v != 5 {
		t.Fatalf("window-state = %d, %v", v, err)
	}
}

func TestSettings_SetErrors(t *testing.T) {
	rt, _ := newRuntime(t)
	s := newEditor(t, rt)

	tests := []struct {
		name string
		set  func() error
		kind errors.Kind
	}{
		{"unknown key", func() error { return s.SetInt("no-such-key", 1) }, errors.KindNotFound},
		{"wrong type", func() error { return s.SetString("font-size", "big") }, errors.KindTypeMismatch},
		{"below range", func() error { return s.SetInt("font-size", 2) }, errors.KindOutOfRange},
		{"above range", func() error { return s.SetUint("tab-width", 64) }, errors.KindOutOfRange},
		{"not an enum nick", func() error { return s.SetString("theme", "sepia") }, errors.KindOutOfRange},
		{"unknown flag", func() error { return s.SetStrv("window-state", []string{"hidden"}) }, errors.KindOutOfRange},
		{"undeclared enum value", func() error { return s.SetEnum("theme", 99) }, errors.KindOutOfRange},
		{"undeclared flag bit", func() error { return s.SetFlags("window-state", 8) }, errors.KindOutOfRange},
		{"enum on a number key", func() error { return s.SetEnum("font-size", 1) }, errors.KindTypeMismatch},
		{"locked key", func() error { return s.SetString("vendor", "Other") }, errors.KindReadOnly},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.set(); errorKind(err) != tt.kind {
				t.Fatalf("error = %v, want kind %s", err, tt.kind)
			}
		})
	}

	err := s.SetString("vendor", "Other")
	if e := asError(err); e.Detail != "Can't set readonly key" || e.Phase != errors.PhaseSettings {
		t.Fatalf("locked key error = %+v", e)
	}
	if _, err := s.Int("title"); errorKind(err) != errors.KindTypeMismatch {
		t.Fatalf("Int on a string key: %v", err)
	}
	if v, _ := s.Int("font-size"); v != 12 {
		t.Fatalf("rejected writes changed font-size to %d", v)
	}
	if v, _ := s.Enum("theme"); v != 2 {
		t.Fatalf("rejected writes changed theme to %d", v)
	}
}

func TestSettings_SetEnumLocked(t *testing.T) {
	rt, b := newRuntime(t)
	s := newEditor(t, rt)
	b.Lockdown(0, "/org/example/editor/", "theme", true)

	if err := s.SetEnum("theme", 1); errorKind(err) != errors.KindReadOnly {
		t.Fatalf("SetEnum on a locked key: %v", err)
	}
	if err := s.SetEnum("theme", 99); errorKind(err) != errors.KindReadOnly {
		t.Fatalf("SetEnum with a bad value on a locked key: %v", err)
	}
}

func TestSettings_UserAndDefaultValues(t *testing.T) {
	rt, b := newRuntime(t)
	s := newEditor(t, rt)
	base := b.Stats()

	if _, ok, err := s.UserValue("title"); ok || err != nil {
		t.Fatalf("fresh key has a user value (%v)", err)
	}
	if err := s.SetString("title", "Notes"); err != nil {
		t.Fatal(err)
	}
	v, ok, err := s.UserValue("title")
	if !ok || err != nil {
		t.Fatalf("UserValue = %v, %v", ok, err)
	}
	if got, _ := v.Str(); got != "Notes" {
		t.Fatalf("user value = %q", got)
	}
	v.Release()

	if err := s.Reset("title"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.UserValue("title"); ok {
		t.Fatal("reset kept the user value")
	}
	cur, err := s.Value("title")
	if err != nil {
		t.Fatal(err)
	}
	def, err := s.DefaultValue("title")
	if err != nil {
		t.Fatal(err)
	}
	if !cur.Equal(def) || cur.String() != "'Untitled'" {
		t.Fatalf("value after reset = %s, default %s", cur, def)
	}
	cur.Release()
	def.Release()

	if _, err := s.Value("nope"); errorKind(err) != errors.KindNotFound {
		t.Fatalf("Value(nope) = %v", err)
	}
	if err := s.Reset("nope"); errorKind(err) != errors.KindNotFound {
		t.Fatalf("Reset(nope) = %v", err)
	}
	if got := b.Stats(); got.Variants != base.Variants || got.Objects != base.Objects {
		t.Fatalf("stats = %+v, want %+v", got, base)
	}
}

func TestSettings_SetValue(t *testing.T) {
	rt, b := newRuntime(t)
	s := newEditor(t, rt)

	v, err := glib.ParseVariant(rt, "i", "24")
	if err != nil {
		t.Fatal(err)
	}
	defer v.Release()
	if err := s.SetValue("font-size", v); err != nil {
		t.Fatal(err)
	}
	if b.RefCount(v.Native()) != 2 {
		t.Fatalf("backend should hold the value, refcount = %d", b.RefCount(v.Native()))
	}
	if got, _ := s.Int("font-size"); got != 24 {
		t.Fatalf("font-size = %d", got)
	}

	wrong, _ := glib.NewVariant(rt, "24")
	defer wrong.Release()
	if err := s.SetValue("font-size", wrong); errorKind(err) != errors.KindTypeMismatch {
		t.Fatalf("SetValue(string) = %v", err)
	}
	big, _ := glib.NewVariant(rt, int32(200))
	defer big.Release()
	if err := s.SetValue("font-size", big); errorKind(err) != errors.KindOutOfRange {
		t.Fatalf("SetValue(200) = %v", err)
	}
}

func TestSettings_DelayApply(t *testing.T) {
	rt, _ := newRuntime(t)
	s := newEditor(t, rt)
	other := newEditor(t, rt)

	delayed, unapplied := 0, 0
	s.ConnectDelayApplyNotify(func() { delayed++ })
	s.ConnectHasUnappliedNotify(func() { unapplied++ })

	s.Delay()
	if !s.IsDelayApply() || delayed != 1 {
		t.Fatalf("delay-apply = %v, notified %d", s.IsDelayApply(), delayed)
	}
	if err := s.SetUint("tab-width", 8); err != nil {
		t.Fatal(err)
	}
	if !s.HasUnapplied() || unapplied != 1 {
		t.Fatalf("has-unapplied = %v, notified %d", s.HasUnapplied(), unapplied)
	}
	if a, _ := s.Uint("tab-width"); a != 8 {
		t.Fatalf("own pending value = %d", a)
	}
	if o, _ := other.Uint("tab-width"); o != 4 {
		t.Fatalf("pending value reached the backend: %d", o)
	}

	s.Revert()
	if s.HasUnapplied() || unapplied != 2 {
		t.Fatalf("revert: has-unapplied = %v, notified %d", s.HasUnapplied(), unapplied)
	}
	if a, _ := s.Uint("tab-width"); a != 4 {
		t.Fatalf("value after revert = %d", a)
	}

	if err := s.SetUint("tab-width", 2); err != nil {
		t.Fatal(err)
	}
	s.Apply()
	if o, _ := other.Uint("tab-width"); o != 2 || s.HasUnapplied() {
		t.Fatalf("apply: other sees %d", o)
	}
	if unapplied != 4 {
		t.Fatalf("has-unapplied notified %d times, want 4", unapplied)
	}
}

func TestSettings_Changed(t *testing.T) {
	rt, _ := newRuntime(t)
	s := newEditor(t, rt)

	var all []string
	fontSize := 0
	s.ConnectChanged("", func(_ *gio.Settings, key string) { all = append(all, key) })
	id := s.ConnectChanged("font-size", func(got *gio.Settings, key string) {
		if got.Native() != s.Native() || key != "font-size" {
			t.Errorf("changed(%s) on %v", key, got)
		}
		fontSize++
	})

	_ = s.SetInt("font-size", 14)
	_ = s.SetString("title", "Notes")
	glib.Disconnect(s, id)
	_ = s.SetInt("font-size", 15)

	if fontSize != 1 {
		t.Fatalf("detailed handler ran %d times", fontSize)
	}
	if !reflect.DeepEqual(all, []string{"font-size", "title", "font-size"}) {
		t.Fatalf("changed keys = %v", all)
	}
}

func TestSettings_ChangeEventHandled(t *testing.T) {
	rt, _ := newRuntime(t)
	s := newEditor(t, rt)

	var batches [][]string
	s.ConnectChangeEvent(func(_ *gio.Settings, keys []string) bool {
		batches = append(batches, keys)
		return len(keys) == 1 && keys[0] == "title"
	})
	var changed []string
	s.ConnectChanged("", func(_ *gio.Settings, key string) { changed = append(changed, key) })

	_ = s.SetString("title", "Draft")
	_ = s.SetInt("font-size", 10)

	if !reflect.DeepEqual(batches, [][]string{{"title"}, {"font-size"}}) {
		t.Fatalf("change-event batches = %v", batches)
	}
	if !reflect.DeepEqual(changed, []string{"font-size"}) {
		t.Fatalf("changed = %v, handled batch should be suppressed", changed)
	}
}

func TestSettings_Writability(t *testing.T) {
	rt, b := newRuntime(t)
	s := newEditor(t, rt)

	var events, changed []string
	s.ConnectWritableChangeEvent(func(_ *gio.Settings, key string) bool {
		events = append(events, key)
		return false
	})
	s.ConnectWritableChanged("title", func(_ *gio.Settings, key string) { changed = append(changed, key) })

	if !s.IsWritable("title") || s.IsWritable("vendor") || s.IsWritable("no-such-key") {
		t.Fatal("unexpected initial writability")
	}
	b.Lockdown(0, "/org/example/editor/", "title", true)
	b.Lockdown(0, "/org/example/editor/", "font-size", true)

	if !reflect.DeepEqual(events, []string{"title", "font-size"}) {
		t.Fatalf("writable-change-event keys = %v", events)
	}
	if !reflect.DeepEqual(changed, []string{"title"}) {
		t.Fatalf("writable-changed::title keys = %v", changed)
	}
	if s.IsWritable("title") {
		t.Fatal("locked key still writable")
	}
	if err := s.SetString("title", "x"); errorKind(err) != errors.KindReadOnly {
		t.Fatalf("write to locked key = %v", err)
	}
}

func TestSettings_Bind(t *testing.T) {
	rt, b := newRuntime(t)
	s := newEditor(t, rt)
	cell := newTextCell(t, rt, b)

	if err := s.Bind("title", cell, "text", gio.SettingsBindDefault); err != nil {
		t.Fatal(err)
	}
	if got := glib.MustProperty[string](cell, "text"); got != "Untitled" {
		t.Fatalf("bound text = %q", got)
	}
	_ = s.SetString("title", "Notes")
	if got := glib.MustProperty[string](cell, "text"); got != "Notes" {
		t.Fatalf("text after key change = %q", got)
	}
	glib.MustSetProperty(cell, "text", "Edited")
	if got, _ := s.String("title"); got != "Edited" {
		t.Fatalf("key after property change = %q", got)
	}

	gio.SettingsUnbind(cell, "text")
	_ = s.SetString("title", "Later")
	if got := glib.MustProperty[string](cell, "text"); got != "Edited" {
		t.Fatalf("unbound property followed the key: %q", got)
	}

	tests := []struct {
		name  string
		key   string
		prop  string
		flags gio.SettingsBindFlags
		kind  errors.Kind
	}{
		{"unknown key", "no-such-key", "text", 0, errors.KindNotFound},
		{"unknown property", "title", "no-such-property", 0, errors.KindNotFound},
		{"incompatible", "font-size", "text", 0, errors.KindTypeMismatch},
		{"invert non-boolean", "title", "text", gio.SettingsBindInvertBoolean, errors.KindTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Bind(tt.key, cell, tt.prop, tt.flags); errorKind(err) != tt.kind {
				t.Fatalf("Bind = %v, want kind %s", err, tt.kind)
			}
		})
	}
}

func TestSettings_BindWritable(t *testing.T) {
	rt, b := newRuntime(t)
	s := newEditor(t, rt)
	cell := newTextCell(t, rt, b)

	if err := s.BindWritable("title", cell, "editable", false); err != nil {
		t.Fatal(err)
	}
	if !glib.MustProperty[bool](cell, "editable") {
		t.Fatal("writable key should make the cell editable")
	}
	b.Lockdown(0, "/org/example/editor/", "title", true)
	if glib.MustProperty[bool](cell, "editable") {
		t.Fatal("lockdown did not reach the bound property")
	}
	if err := s.BindWritable("title", cell, "text", false); errorKind(err) != errors.KindTypeMismatch {
		t.Fatalf("BindWritable to a string property = %v", err)
	}
}

func TestSettings_CreateAction(t *testing.T) {
	rt, _ := newRuntime(t)
	s := newEditor(t, rt)

	a, err := s.CreateAction("show-line-numbers")
	if err != nil {
		t.Fatal(err)
	}
	defer a.Release()
	if a.Name() != "show-line-numbers" || !a.IsEnabled() {
		t.Fatalf("action %q enabled=%v", a.Name(), a.IsEnabled())
	}

	a.Activate(nil)
	if on, _ := s.Boolean("show-line-numbers"); on {
		t.Fatal("activate did not toggle the key")
	}
	on, _ := glib.NewVariant(rt, true)
	a.ChangeState(on)
	on.Release()
	state, ok := a.State()
	if !ok {
		t.Fatal("settings action has no state")
	}
	if v, _ := state.Bool(); !v {
		t.Fatal("change_state did not set the key")
	}
	state.Release()

	locked, err := s.CreateAction("vendor")
	if err != nil {
		t.Fatal(err)
	}
	defer locked.Release()
	if locked.IsEnabled() {
		t.Fatal("action on a locked key is enabled")
	}
	if _, err := s.CreateAction("nope"); errorKind(err) != errors.KindNotFound {
		t.Fatalf("CreateAction(nope) = %v", err)
	}
}

func TestSettings_Child(t *testing.T) {
	rt, _ := newRuntime(t)
	s := newEditor(t, rt)

	if got := s.ListChildren(); !reflect.DeepEqual(got, []string{"spelling"}) {
		t.Fatalf("children = %v", got)
	}
	child, err := s.Child("spelling")
	if err != nil {
		t.Fatal(err)
	}
	defer child.Release()
	if child.SchemaID() != "org.example.editor.spelling" || child.Path() != "/org/example/editor/spelling/" {
		t.Fatalf("child %s at %s", child.SchemaID(), child.Path())
	}
	if lang, _ := child.String("language"); lang != "en" {
		t.Fatalf("language = %q", lang)
	}
	if _, err := s.Child("grammar"); errorKind(err) != errors.KindNotFound {
		t.Fatalf("Child(grammar) = %v", err)
	}
}

func TestSettings_Properties(t *testing.T) {
	rt, b := newRuntime(t)
	s := newEditor(t, rt)

	be := s.Backend()
	if be.TypeName() != "GMemorySettingsBackend" || be.Ownership() != glib.OwnershipShared {
		t.Fatalf("backend = %v", be)
	}
	def := gio.DefaultSettingsBackend(rt)
	if def.Native() != be.Native() {
		t.Fatal("settings without a backend should use the default one")
	}
	refs := b.RefCount(be.Native())
	be.Release()
	def.Release()
	again := s.Backend()
	defer again.Release()
	if b.RefCount(again.Native()) != refs-1 {
		t.Fatal("backend wrappers leaked references")
	}

	schema := s.SettingsSchema()
	defer schema.Release()
	if schema.ID() != "org.example.editor" {
		t.Fatalf("schema = %s", schema.ID())
	}
	if s.IsDelayApply() {
		t.Fatal("new settings should not delay")
	}
}

func TestBackends(t *testing.T) {
	rt, _ := newRuntime(t)
	shared := newEditor(t, rt)

	mem := gio.NewMemorySettingsBackend(rt)
	defer mem.Release()
	private, err := gio.NewSettingsWithBackend(rt, "org.example.editor", mem)
	if err != nil {
		t.Fatal(err)
	}
	defer private.Release()
	_ = private.SetInt("font-size", 20)
	if v, _ := shared.Int("font-size"); v != 12 {
		t.Fatalf("write leaked across backends: %d", v)
	}

	profile, err := gio.NewSettingsWithBackendAndPath(rt, "org.example.profile", mem, "/profiles/work/")
	if err != nil {
		t.Fatal(err)
	}
	defer profile.Release()
	if err := profile.SetString("name", "Work"); err != nil {
		t.Fatal(err)
	}

	null := gio.NewNullSettingsBackend(rt)
	defer null.Release()
	ro, err := gio.NewSettingsWithBackend(rt, "org.example.editor", null)
	if err != nil {
		t.Fatal(err)
	}
	defer ro.Release()
	if ro.IsWritable("font-size") {
		t.Fatal("null backend key is writable")
	}
	if err := ro.SetBoolean("show-line-numbers", false); errorKind(err) != errors.KindReadOnly {
		t.Fatalf("write to null backend = %v", err)
	}
	if v, _ := ro.Boolean("show-line-numbers"); !v {
		t.Fatal("null backend should read defaults")
	}
}

func TestSettingsSync(t *testing.T) {
	rt, _ := newRuntime(t)
	s := newEditor(t, rt)
	_ = s.SetInt("font-size", 9)
	gio.SettingsSync(rt)
	if v, _ := s.Int("font-size"); v != 9 {
		t.Fatalf("font-size = %d after sync", v)
	}
}
