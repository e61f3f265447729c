package sim

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gobridge "github.com/wippyai/gobject-bridge"
)

// recorder is a Dispatcher that calls test hooks by closure id.
type recorder struct {
	marshal  map[uintptr]func(ret ptr, params []ptr)
	invoke   map[uintptr]func() bool
	released []uintptr
}

func newRecorder() *recorder {
	return &recorder{
		marshal: make(map[uintptr]func(ptr, []ptr)),
		invoke:  make(map[uintptr]func() bool),
	}
}

func (r *recorder) Marshal(id uintptr, ret ptr, params []ptr) {
	if fn := r.marshal[id]; fn != nil {
		fn(ret, params)
	}
}

func (r *recorder) Invoke(id uintptr) bool {
	if fn := r.invoke[id]; fn != nil {
		return fn()
	}
	return false
}

func (r *recorder) Release(id uintptr) {
	r.released = append(r.released, id)
}

func newTestBackend(t *testing.T) (*Backend, *recorder) {
	t.Helper()
	b := New()
	if err := b.LoadSchemas(ExampleSchemas); err != nil {
		t.Fatalf("LoadSchemas: %v", err)
	}
	r := newRecorder()
	b.SetDispatcher(r)
	return b, r
}

func cstr(t *testing.T, b *Backend, s string) ptr {
	t.Helper()
	p := b.Strdup(s)
	t.Cleanup(func() { b.Free(p) })
	return p
}

func expectCritical(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a critical")
		}
		if s, ok := r.(string); !ok || !strings.HasPrefix(s, "sim: ") {
			t.Fatalf("unexpected panic %v", r)
		}
	}()
	fn()
}

func TestHeap_AllocFree(t *testing.T) {
	b := New()
	base := b.Stats().Allocations

	p := b.Alloc(10)
	b.Write(p, []byte("abc\x00"))
	if got := b.GoString(p); got != "abc" {
		t.Fatalf("GoString = %q", got)
	}
	if b.Stats().Allocations != base+1 {
		t.Fatal("allocation not counted")
	}
	b.Free(p)
	if b.Stats().Allocations != base {
		t.Fatal("allocation not released")
	}
	expectCritical(t, func() { b.Free(p) })
}

func TestHeap_Strv(t *testing.T) {
	b := New()
	base := b.Stats().Allocations
	b.mu.Lock()
	p := b.newStrv([]string{"a", "bc"})
	got := b.strv(p, -1)
	b.unlock()
	if len(got) != 2 || got[0] != "a" || got[1] != "bc" {
		t.Fatalf("strv = %v", got)
	}
	b.StrvFree(p)
	if b.Stats().Allocations != base {
		t.Fatal("strv leaked")
	}
}

func TestObject_FloatingLifecycle(t *testing.T) {
	b, r := newTestBackend(t)
	expectCritical(t, func() { b.CellRendererTextNew() })

	b.InitCheck()
	edited := cstr(t, b, "edited")
	base := b.Stats()
	p := b.CellRendererTextNew()
	if !b.ObjectIsFloating(p) || b.RefCount(p) != 1 {
		t.Fatal("new renderer should hold one floating reference")
	}
	b.ObjectRefSink(p)
	if b.ObjectIsFloating(p) || b.RefCount(p) != 1 {
		t.Fatal("ref_sink should convert the floating reference")
	}
	id := b.SignalConnectClosure(p, edited, 7, false)
	if id == 0 {
		t.Fatal("connect failed")
	}
	b.ObjectUnref(p)
	if b.IsAlive(p) {
		t.Fatal("object should be finalized")
	}
	if len(r.released) != 1 || r.released[0] != 7 {
		t.Fatalf("released = %v", r.released)
	}
	if s := b.Stats(); s.Objects != base.Objects || s.Handlers != base.Handlers || s.Allocations != base.Allocations {
		t.Fatalf("stats after finalize: %+v, want %+v", s, base)
	}
}

func TestSignal_HandlerOrder(t *testing.T) {
	b, r := newTestBackend(t)
	s := b.SettingsNew(cstr(t, b, "org.example.editor"))
	defer b.ObjectUnref(s)

	var order []string
	record := func(tag string) func(ptr, []ptr) {
		return func(_ ptr, params []ptr) {
			order = append(order, tag+":"+b.GoString(b.ValueGetString(params[1])))
		}
	}
	r.marshal[1] = record("after")
	r.marshal[2] = record("first")
	r.marshal[3] = record("title")
	b.SignalConnectClosure(s, cstr(t, b, "changed"), 1, true)
	b.SignalConnectClosure(s, cstr(t, b, "changed"), 2, false)
	b.SignalConnectClosure(s, cstr(t, b, "changed::title"), 3, false)

	if !b.SettingsSetInt(s, cstr(t, b, "font-size"), 14) {
		t.Fatal("SetInt failed")
	}
	want := []string{"first:font-size", "after:font-size"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Fatalf("order = %v, want %v", order, want)
	}
	if got := b.SettingsGetInt(s, cstr(t, b, "font-size")); got != 14 {
		t.Fatalf("font-size = %d", got)
	}
}

func TestSignal_BlockAndDisconnect(t *testing.T) {
	b, r := newTestBackend(t)
	s := b.SettingsNew(cstr(t, b, "org.example.editor"))
	defer b.ObjectUnref(s)

	calls := 0
	r.marshal[1] = func(ptr, []ptr) { calls++ }
	id := b.SignalConnectClosure(s, cstr(t, b, "changed::font-size"), 1, false)
	key := cstr(t, b, "font-size")

	b.SettingsSetInt(s, key, 10)
	b.SignalHandlerBlock(s, id)
	b.SettingsSetInt(s, key, 11)
	b.SignalHandlerUnblock(s, id)
	b.SettingsSetInt(s, key, 12)
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
	expectCritical(t, func() { b.SignalHandlerUnblock(s, id) })

	b.SignalHandlerDisconnect(s, id)
	b.SettingsSetInt(s, key, 13)
	if calls != 2 || b.SignalHandlerIsConnected(s, id) {
		t.Fatal("disconnected handler still active")
	}
	if len(r.released) != 1 {
		t.Fatalf("released = %v", r.released)
	}
}

func TestSignal_ParseName(t *testing.T) {
	b := New()
	tests := []struct {
		name string
		want bool
	}{
		{"changed", true},
		{"changed::font-size", true},
		{"changed::", false},
		{"change-event", true},
		{"change-event::x", false},
		{"notify::path", true},
		{"missing", false},
	}
	for _, tt := range tests {
		p := b.Strdup(tt.name)
		if got := b.SignalParseName(p, b.t.settings.id); got != tt.want {
			t.Errorf("SignalParseName(%q) = %v, want %v", tt.name, got, tt.want)
		}
		b.Free(p)
	}
}

func TestSettings_ValuesAndRange(t *testing.T) {
	b, _ := newTestBackend(t)
	s := b.SettingsNew(cstr(t, b, "org.example.editor"))
	defer b.ObjectUnref(s)

	if got := b.SettingsGetInt(s, cstr(t, b, "font-size")); got != 12 {
		t.Fatalf("default font-size = %d", got)
	}
	expectCritical(t, func() { b.SettingsSetInt(s, cstr(t, b, "font-size"), 100) })
	expectCritical(t, func() { b.SettingsGetBoolean(s, cstr(t, b, "font-size")) })
	expectCritical(t, func() { b.SettingsGetInt(s, cstr(t, b, "no-such-key")) })

	if b.SettingsSetString(s, cstr(t, b, "vendor"), cstr(t, b, "Other")) {
		t.Fatal("locked key accepted a write")
	}
	if b.SettingsIsWritable(s, cstr(t, b, "vendor")) {
		t.Fatal("locked key reported writable")
	}

	if b.SettingsGetEnum(s, cstr(t, b, "theme")) != 2 {
		t.Fatal("default theme should be system")
	}
	b.SettingsSetEnum(s, cstr(t, b, "theme"), 1)
	str := b.SettingsGetString(s, cstr(t, b, "theme"))
	if got := b.GoString(str); got != "dark" {
		t.Fatalf("theme = %q", got)
	}
	b.Free(str)

	b.SettingsSetFlags(s, cstr(t, b, "window-state"), 5)
	if got := b.SettingsGetFlags(s, cstr(t, b, "window-state")); got != 5 {
		t.Fatalf("flags = %d", got)
	}
	if b.SettingsSetFlags(s, cstr(t, b, "window-state"), 8) {
		t.Fatal("undeclared flag bit accepted")
	}
	if b.SettingsSetEnum(s, cstr(t, b, "theme"), 99) {
		t.Fatal("undeclared enum value accepted")
	}
	if got := b.SettingsGetFlags(s, cstr(t, b, "window-state")); got != 5 {
		t.Fatalf("rejected write changed flags to %d", got)
	}

	uv := b.SettingsGetUserValue(s, cstr(t, b, "max-undo"))
	if uv != 0 {
		t.Fatal("unset key has a user value")
	}
	b.SettingsSetInt64(s, cstr(t, b, "max-undo"), 5)
	b.SettingsReset(s, cstr(t, b, "max-undo"))
	if got := b.SettingsGetInt64(s, cstr(t, b, "max-undo")); got != 1000 {
		t.Fatalf("reset max-undo = %d", got)
	}
}

func TestSettings_ConstructorChecks(t *testing.T) {
	b, _ := newTestBackend(t)
	expectCritical(t, func() { b.SettingsNew(cstr(t, b, "org.example.missing")) })
	expectCritical(t, func() { b.SettingsNew(cstr(t, b, "org.example.profile")) })
	expectCritical(t, func() {
		b.SettingsNewWithPath(cstr(t, b, "org.example.profile"), cstr(t, b, "bad"))
	})
	expectCritical(t, func() {
		b.SettingsNewWithPath(cstr(t, b, "org.example.editor"), cstr(t, b, "/other/"))
	})

	p := b.SettingsNewWithPath(cstr(t, b, "org.example.profile"), cstr(t, b, "/profiles/a/"))
	defer b.ObjectUnref(p)
	child := b.SettingsGetChild(b.SettingsNew(cstr(t, b, "org.example.editor")), cstr(t, b, "spelling"))
	if child == 0 {
		t.Fatal("GetChild failed")
	}
	if got := b.objects[child].data.(*settingsState).path; got != "/org/example/editor/spelling/" {
		t.Fatalf("child path = %q", got)
	}
}

func TestSettings_SharedBackend(t *testing.T) {
	b, r := newTestBackend(t)
	id := cstr(t, b, "org.example.editor")
	s1 := b.SettingsNew(id)
	s2 := b.SettingsNew(id)
	defer b.ObjectUnref(s1)
	defer b.ObjectUnref(s2)

	seen := 0
	r.marshal[1] = func(ptr, []ptr) { seen++ }
	b.SignalConnectClosure(s2, cstr(t, b, "changed::title"), 1, false)

	b.SettingsSetString(s1, cstr(t, b, "title"), cstr(t, b, "Doc"))
	if seen != 1 {
		t.Fatalf("s2 saw %d changes", seen)
	}
	if err := b.ExternalWrite(0, "/org/example/editor/", "title", "s", "'Ext'"); err != nil {
		t.Fatal(err)
	}
	if seen != 2 {
		t.Fatalf("external write not seen, %d", seen)
	}
	str := b.SettingsGetString(s2, cstr(t, b, "title"))
	defer b.Free(str)
	if b.GoString(str) != "Ext" {
		t.Fatalf("title = %q", b.GoString(str))
	}
}

func TestSettings_DelayApply(t *testing.T) {
	b, _ := newTestBackend(t)
	id := cstr(t, b, "org.example.editor")
	s := b.SettingsNew(id)
	other := b.SettingsNew(id)
	defer b.ObjectUnref(s)
	defer b.ObjectUnref(other)
	key := cstr(t, b, "tab-width")

	b.SettingsDelay(s)
	b.SettingsSetUint(s, key, 8)
	if !b.SettingsGetHasUnapplied(s) {
		t.Fatal("expected unapplied changes")
	}
	if b.SettingsGetUint(s, key) != 8 || b.SettingsGetUint(other, key) != 4 {
		t.Fatal("delayed write leaked to the backend")
	}
	b.SettingsRevert(s)
	if b.SettingsGetHasUnapplied(s) || b.SettingsGetUint(s, key) != 4 {
		t.Fatal("revert did not drop the change")
	}
	b.SettingsSetUint(s, key, 2)
	b.SettingsApply(s)
	if b.SettingsGetUint(other, key) != 2 {
		t.Fatal("apply did not reach the backend")
	}
}

func TestSettings_Bind(t *testing.T) {
	b, _ := newTestBackend(t)
	b.InitCheck()
	s := b.SettingsNew(cstr(t, b, "org.example.editor"))
	defer b.ObjectUnref(s)
	r := b.ObjectRefSink(b.CellRendererTextNew())
	defer b.ObjectUnref(r)

	b.SettingsBind(s, cstr(t, b, "title"), r, cstr(t, b, "text"), 0)
	o := b.objects[r]
	text := func() string {
		b.mu.Lock()
		defer b.unlock()
		v := b.propertyValue(o, b.findProperty(o.typ, "text"))
		defer b.valueClear(&v)
		return b.cstring(v.p)
	}
	if got := text(); got != "Untitled" {
		t.Fatalf("bound text = %q", got)
	}
	b.SettingsSetString(s, cstr(t, b, "title"), cstr(t, b, "Notes"))
	if got := text(); got != "Notes" {
		t.Fatalf("text after key change = %q", got)
	}

	b.mu.Lock()
	v := b.stringValue("Edited")
	b.setProperty(o, b.findProperty(o.typ, "text"), &v)
	b.unlock()
	str := b.SettingsGetString(s, cstr(t, b, "title"))
	defer b.Free(str)
	if b.GoString(str) != "Edited" {
		t.Fatalf("key after property change = %q", b.GoString(str))
	}

	b.SettingsUnbind(r, cstr(t, b, "text"))
	expectCritical(t, func() { b.SettingsUnbind(r, cstr(t, b, "text")) })
}

func TestSettings_LockdownUpdatesSensitivity(t *testing.T) {
	b, r := newTestBackend(t)
	b.InitCheck()
	s := b.SettingsNew(cstr(t, b, "org.example.editor"))
	defer b.ObjectUnref(s)
	cell := b.ObjectRefSink(b.CellRendererTextNew())
	defer b.ObjectUnref(cell)

	changes := 0
	r.marshal[1] = func(ptr, []ptr) { changes++ }
	b.SignalConnectClosure(s, cstr(t, b, "writable-changed::title"), 1, false)
	b.SettingsBind(s, cstr(t, b, "title"), cell, cstr(t, b, "text"), BindGet)

	o := b.objects[cell]
	sensitive := func() bool {
		b.mu.Lock()
		defer b.unlock()
		return b.propertyValue(o, b.findProperty(o.typ, "sensitive")).b
	}
	if !sensitive() {
		t.Fatal("writable key should leave the cell sensitive")
	}
	b.Lockdown(0, "/org/example/editor/", "title", true)
	if changes != 1 || sensitive() {
		t.Fatalf("lockdown: changes=%d sensitive=%v", changes, sensitive())
	}
	if b.SettingsSetString(s, cstr(t, b, "title"), cstr(t, b, "x")) {
		t.Fatal("locked key accepted a write")
	}
	b.Lockdown(0, "/org/example/editor/", "title", false)
	if !sensitive() {
		t.Fatal("unlock did not restore sensitivity")
	}
}

func TestSettings_Action(t *testing.T) {
	b, _ := newTestBackend(t)
	s := b.SettingsNew(cstr(t, b, "org.example.editor"))
	defer b.ObjectUnref(s)
	a := b.SettingsCreateAction(s, cstr(t, b, "show-line-numbers"))
	defer b.ObjectUnref(a)

	if b.GoString(b.ActionGetName(a)) != "show-line-numbers" || !b.ActionGetEnabled(a) {
		t.Fatal("unexpected action metadata")
	}
	b.ActionActivate(a, 0)
	if b.SettingsGetBoolean(s, cstr(t, b, "show-line-numbers")) {
		t.Fatal("activate did not toggle")
	}
	b.ActionChangeState(a, b.VariantNewBoolean(true))
	st := b.ActionGetState(a)
	defer b.VariantUnref(st)
	if !b.VariantGetBoolean(st) {
		t.Fatal("change_state did not set the key")
	}
}

func TestSettings_FinalizeReleasesEverything(t *testing.T) {
	b, _ := newTestBackend(t)
	b.SettingsBackendGetDefault()
	base := b.Stats()

	be := b.MemorySettingsBackendNew()
	s := b.SettingsNewWithBackend(cstr(t, b, "org.example.editor"), be)
	b.SettingsSetStrv(s, cstr(t, b, "recent-files"), 0)
	b.SettingsDelay(s)
	b.SettingsSetDouble(s, cstr(t, b, "autosave-interval"), 5)
	b.ObjectUnref(s)
	b.ObjectUnref(be)

	if got := b.Stats(); got.Objects != base.Objects || got.Variants != base.Variants {
		t.Fatalf("stats = %+v, want %+v", got, base)
	}
}

func TestNullBackendIsReadOnly(t *testing.T) {
	b, _ := newTestBackend(t)
	be := b.NullSettingsBackendNew()
	defer b.ObjectUnref(be)
	s := b.SettingsNewWithBackend(cstr(t, b, "org.example.editor"), be)
	defer b.ObjectUnref(s)
	if b.SettingsSetBoolean(s, cstr(t, b, "show-line-numbers"), false) {
		t.Fatal("null backend accepted a write")
	}
}

func TestSchemaSource_FromDirectory(t *testing.T) {
	b := New()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "editor.yaml"), ExampleSchemas, 0o644); err != nil {
		t.Fatal(err)
	}
	dirP := cstr(t, b, dir)
	missingP := cstr(t, b, filepath.Join(dir, "none"))
	idP := cstr(t, b, "org.example.editor")
	keyP := cstr(t, b, "font-size")
	errp := b.Alloc(8)
	defer b.Free(errp)
	base := b.Stats().Allocations

	src := b.SettingsSchemaSourceNewFromDirectory(dirP, b.SettingsSchemaSourceGetDefault(), true, errp)
	if src == 0 {
		t.Fatal("NewFromDirectory failed")
	}
	sc := b.SettingsSchemaSourceLookup(src, idP, false)
	if sc == 0 || b.GoString(b.SettingsSchemaGetPath(sc)) != "/org/example/editor/" {
		t.Fatal("lookup failed")
	}
	key := b.SettingsSchemaGetKey(sc, keyP)
	if b.GoString(b.SettingsSchemaKeyGetSummary(key)) != "Font size" {
		t.Fatal("wrong summary")
	}
	b.SettingsSchemaSourceUnref(src)
	b.SettingsSchemaUnref(sc)
	if b.RefCount(sc) != 1 {
		t.Fatalf("key should keep its schema alive, refs=%d", b.RefCount(sc))
	}
	b.SettingsSchemaKeyUnref(key)
	if got := b.Stats().Allocations; got != base {
		t.Fatalf("allocations = %d, want %d", got, base)
	}

	missing := b.SettingsSchemaSourceNewFromDirectory(missingP, 0, true, errp)
	e := b.ReadPtr(errp)
	if missing != 0 || e == 0 {
		t.Fatal("expected an error")
	}
	if b.ErrorCode(e) != FileErrorNoEnt || b.GoString(b.QuarkToString(b.ErrorDomain(e))) != DomainFile {
		t.Fatal("wrong error domain or code")
	}
	b.ErrorFree(e)
}

func TestParseSchemas_Rejects(t *testing.T) {
	tests := []struct {
		name, doc string
	}{
		{"unknown field", "schemas: [{id: a, bogus: 1}]"},
		{"bad type", "schemas: [{id: a, keys: [{name: k, type: q, default: '1'}]}]"},
		{"bad default", "schemas: [{id: a, keys: [{name: k, type: i, default: \"'x'\"}]}]"},
		{"range on string", "schemas: [{id: a, keys: [{name: k, type: s, default: \"''\", range: {min: '1', max: '2'}}]}]"},
		{"bad path", "schemas: [{id: a, path: nope}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSchemas([]byte(tt.doc)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestVariant_ParseAndPrint(t *testing.T) {
	tests := []struct {
		typ, text, want string
	}{
		{"", "true", "true"},
		{"", "42", "42"},
		{"u", "7", "uint32 7"},
		{"", "int64 -3", "int64 -3"},
		{"d", "2", "2.0"},
		{"", "'it''s'", ""},
		{"", "\"it's\"", "\"it's\""},
		{"", "['a', 'b']", "['a', 'b']"},
		{"as", "[]", "@as []"},
	}
	b := New()
	for _, tt := range tests {
		var tp ptr
		if tt.typ != "" {
			tp = b.Strdup(tt.typ)
		}
		text := b.Strdup(tt.text)
		v := b.VariantParse(tp, text, 0)
		if tt.want == "" {
			if v != 0 {
				t.Errorf("parse %q should fail", tt.text)
			}
		} else {
			out := b.VariantPrint(v, true)
			if got := b.GoString(out); got != tt.want {
				t.Errorf("print(parse(%q)) = %q, want %q", tt.text, got, tt.want)
			}
			b.Free(out)
			b.VariantUnref(v)
		}
		b.Free(text)
		b.Free(tp)
	}
	if n := b.Stats().Variants; n != 0 {
		t.Fatalf("%d variants leaked", n)
	}
}

func TestVariant_ParseErrorLayout(t *testing.T) {
	b := New()
	errp := b.Alloc(8)
	defer b.Free(errp)
	text := cstr(t, b, "[]")
	if b.VariantParse(0, text, errp) != 0 {
		t.Fatal("expected failure")
	}
	e := b.ReadPtr(errp)
	raw := b.Read(e, 16)
	if code := int32(binary.NativeEndian.Uint32(raw[4:])); code != ParseErrorCannotInferType || b.ErrorCode(e) != ParseErrorCannotInferType {
		t.Fatalf("code = %d", code)
	}
	if b.GoString(b.ErrorMessage(e)) != "0-2:unable to infer type" {
		t.Fatalf("message = %q", b.GoString(b.ErrorMessage(e)))
	}
	b.ErrorFree(e)
}

func TestMainLoop_Sources(t *testing.T) {
	b, r := newTestBackend(t)
	runs := 0
	r.invoke[1] = func() bool { runs++; return runs < 3 }
	b.IdleAdd(200, 1)
	for b.MainContextIteration(false) {
	}
	if runs != 3 || len(r.released) != 1 || r.released[0] != 1 {
		t.Fatalf("runs=%d released=%v", runs, r.released)
	}

	loop := b.MainLoopNew()
	r.invoke[2] = func() bool { b.MainLoopQuit(loop); return false }
	b.TimeoutAdd(0, 1, 2)
	b.MainLoopRun(loop)
	if b.MainLoopIsRunning(loop) {
		t.Fatal("loop still running")
	}
	b.MainLoopUnref(loop)
	if b.Stats().Sources != 0 {
		t.Fatal("source leaked")
	}
	if b.SourceRemove(99) {
		t.Fatal("removing an unknown source should fail")
	}
}

func TestListStore(t *testing.T) {
	b := New()
	types := b.Alloc(8)
	defer b.Free(types)
	b.Write(types, gtypeBytes(gobridge.TypeString))
	store := b.ListStoreNewv(1, types)
	defer b.ObjectUnref(store)

	iter := b.Alloc(32)
	defer b.Free(iter)
	b.ListStoreAppend(store, iter)
	val := b.Alloc(gobridge.ValueSize)
	defer b.Free(val)
	b.ValueInit(val, gobridge.TypeString)
	b.ValueSetString(val, cstr(t, b, "first"))
	b.ListStoreSetValue(store, iter, 0, val)
	b.ValueUnset(val)

	if b.TreeModelIterNChildren(store, 0) != 1 {
		t.Fatal("expected one row")
	}
	path := b.TreePathNewFromString(cstr(t, b, "0"))
	defer b.TreePathFree(path)
	other := b.Alloc(32)
	defer b.Free(other)
	if !b.TreeModelGetIter(store, other, path) {
		t.Fatal("GetIter failed")
	}
	b.TreeModelGetValue(store, other, 0, val)
	if b.GoString(b.ValueGetString(val)) != "first" {
		t.Fatal("wrong cell value")
	}
	b.ValueUnset(val)

	b.ListStoreClear(store)
	expectCritical(t, func() { b.TreeModelGetValue(store, other, 0, val) })
}

func gtypeBytes(t gobridge.GType) []byte {
	return binary.NativeEndian.AppendUint64(nil, uint64(t))
}
