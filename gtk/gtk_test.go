package gtk_test

import (
	stderrors "errors"
	"reflect"
	"runtime"
	"testing"

	gobridge "github.com/wippyai/gobject-bridge"
	"github.com/wippyai/gobject-bridge/errors"
	"github.com/wippyai/gobject-bridge/glib"
	"github.com/wippyai/gobject-bridge/gtk"
	"github.com/wippyai/gobject-bridge/native/sim"
)

// newRuntime locks the test goroutine to its thread and initializes GTK on it.
func newRuntime(t *testing.T) (*glib.Runtime, *sim.Backend) {
	t.Helper()
	runtime.LockOSThread()
	t.Cleanup(runtime.UnlockOSThread)
	b := sim.New()
	rt, err := glib.New(b)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { rt.Close() })
	if err := gtk.Init(rt); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return rt, b
}

func expectPanic(t *testing.T, kind errors.Kind, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		e, ok := r.(*errors.Error)
		if !ok || e.Kind != kind {
			t.Fatalf("panic = %v, want %s", r, kind)
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

func onOtherThread(fn func()) any {
	out := make(chan any, 1)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer func() { out <- recover() }()
		fn()
	}()
	return <-out
}

func newChoices(t *testing.T, rt *glib.Runtime, choices ...string) *gtk.ListStore {
	t.Helper()
	store, err := gtk.NewListStore(rt, gobridge.TypeString)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range choices {
		it, err := store.AppendRow(c)
		if err != nil {
			t.Fatal(err)
		}
		it.Release()
	}
	return store
}

func TestInit(t *testing.T) {
	rt, _ := newRuntime(t)
	if !rt.IsMainThread() {
		t.Fatal("Init did not bind the main thread")
	}
	if err := gtk.Init(rt); err != nil {
		t.Fatalf("second Init: %v", err)
	}
	r := onOtherThread(func() {
		if err := gtk.Init(rt); errorKind(err) != errors.KindAlreadyBound {
			panic(err)
		}
	})
	if r != nil {
		t.Fatalf("Init from another thread: %v", r)
	}
}

func TestConstructors_BeforeInit(t *testing.T) {
	b := sim.New()
	rt, err := glib.New(b)
	if err != nil {
		t.Fatal(err)
	}
	defer rt.Close()
	objects := b.Stats().Objects
	expectPanic(t, errors.KindNotInitialized, func() { gtk.NewCellRendererText(rt) })
	expectPanic(t, errors.KindNotInitialized, func() { gtk.NewListStore(rt, gobridge.TypeString) })
	if b.Stats().Objects != objects {
		t.Fatal("constructor reached native code")
	}
}

func TestCellRendererText(t *testing.T) {
	rt, b := newRuntime(t)
	r := gtk.NewCellRendererText(rt)
	defer r.Release()

	if b.ObjectIsFloating(r.Native()) || r.RefCount() != 1 {
		t.Fatalf("renderer should be sunk and owned, refs=%d", r.RefCount())
	}
	if !r.IsVisible() || !r.IsSensitive() || r.Xpad() != 2 || r.IsEditable() {
		t.Fatal("unexpected defaults")
	}
	if _, ok := r.Text(); ok {
		t.Fatal("text should start unset")
	}

	r.SetText("hello")
	if s, ok := r.Text(); !ok || s != "hello" {
		t.Fatalf("Text() = %q, %v", s, ok)
	}
	r.UnsetText()
	if _, ok := r.Text(); ok {
		t.Fatal("UnsetText left a value")
	}
	r.SetVisible(false)
	r.SetSensitive(false)
	r.SetXpad(6)
	r.SetEditable(true)
	if r.IsVisible() || r.IsSensitive() || r.Xpad() != 6 || !r.IsEditable() {
		t.Fatal("setters did not stick")
	}
}

func TestCellRendererText_Edited(t *testing.T) {
	rt, b := newRuntime(t)
	r := gtk.NewCellRendererText(rt)
	defer r.Release()

	var indices []int32
	var text string
	var kept *gtk.TreePath
	r.ConnectEdited(func(got *gtk.CellRendererText, path *gtk.TreePath, newText string) {
		if got.Native() != r.Native() {
			t.Error("handler got another instance")
		}
		indices, text = path.Indices(), newText
		kept = glib.Clone(path)
	})

	base := b.Stats().Allocations
	b.EditText(r.Native(), "0:2", "renamed")
	if !reflect.DeepEqual(indices, []int32{0, 2}) || text != "renamed" {
		t.Fatalf("edited(%v, %q)", indices, text)
	}
	if kept.String() != "0:2" {
		t.Fatalf("cloned path = %q", kept.String())
	}
	kept.Release()
	if got := b.Stats().Allocations; got != base {
		t.Fatalf("allocations %d -> %d", base, got)
	}
}

func TestCellRendererCombo_Properties(t *testing.T) {
	rt, _ := newRuntime(t)
	c := gtk.NewCellRendererCombo(rt)
	defer c.Release()

	if !c.HasEntry() || c.TextColumn() != -1 {
		t.Fatal("unexpected defaults")
	}
	if _, ok := c.Model(); ok {
		t.Fatal("model should start unset")
	}
	if err := c.SetTextColumn(-2); errorKind(err) != errors.KindOutOfRange {
		t.Fatalf("SetTextColumn(-2) = %v", err)
	}
	if c.TextColumn() != -1 {
		t.Fatal("rejected column was stored")
	}
	if err := c.SetTextColumn(0); err != nil {
		t.Fatal(err)
	}
	c.SetHasEntry(false)
	if c.HasEntry() || c.TextColumn() != 0 {
		t.Fatal("setters did not stick")
	}

	store := newChoices(t, rt, "light", "dark")
	defer store.Release()
	c.SetModel(store)
	if store.RefCount() != 2 {
		t.Fatalf("combo should hold the model, refs=%d", store.RefCount())
	}
	m, ok := c.Model()
	if !ok || m.Native() != store.Native() || m.IterNChildren(nil) != 2 {
		t.Fatal("Model() did not return the store")
	}
	m.Release()
	c.SetModel(nil)
	if store.RefCount() != 1 {
		t.Fatalf("unset model still referenced, refs=%d", store.RefCount())
	}

	text, err := glib.Downcast[*gtk.CellRendererText](c)
	if err != nil {
		t.Fatal(err)
	}
	text.SetText("dark")
	text.Release()
	if s, _ := c.Text(); s != "dark" {
		t.Fatalf("combo text = %q", s)
	}
	plain := gtk.NewCellRendererText(rt)
	defer plain.Release()
	if glib.IsA[*gtk.CellRendererCombo](plain) {
		t.Fatal("a text renderer is not a combo")
	}
}

func TestCellRendererCombo_Changed(t *testing.T) {
	rt, b := newRuntime(t)
	c := gtk.NewCellRendererCombo(rt)
	defer c.Release()
	store := newChoices(t, rt, "light", "dark", "system")
	defer store.Release()
	c.SetModel(store)

	var picked []string
	var borrowed, kept *gtk.TreeIter
	c.ConnectChanged(func(got *gtk.CellRendererCombo, path *gtk.TreePath, iter *gtk.TreeIter) {
		v, err := store.Value(iter, 0)
		if err != nil {
			t.Error(err)
			return
		}
		picked = append(picked, path.String()+"="+v.(string))
		if got.Native() != c.Native() || iter.Ownership() != glib.OwnershipBorrowed {
			t.Error("unexpected handler arguments")
		}
		borrowed = iter
		if kept == nil {
			kept = glib.Clone(iter)
		}
	})

	base := b.Stats().Allocations
	if !b.SelectComboItem(c.Native(), "1") || !b.SelectComboItem(c.Native(), "2") {
		t.Fatal("selection failed")
	}
	if b.SelectComboItem(c.Native(), "7") {
		t.Fatal("selected a missing row")
	}
	if want := []string{"1=dark", "2=system"}; !reflect.DeepEqual(picked, want) {
		t.Fatalf("picked = %v, want %v", picked, want)
	}

	expectPanic(t, errors.KindBorrowExpired, func() { borrowed.Native() })
	if v, _ := store.Value(kept, 0); v != "dark" {
		t.Fatalf("cloned iter reads %v", v)
	}
	kept.Release()
	if got := b.Stats().Allocations; got != base {
		t.Fatalf("allocations %d -> %d", base, got)
	}
}

func TestTreePath(t *testing.T) {
	rt, b := newRuntime(t)
	base := b.Stats().Allocations

	p, ok := gtk.NewTreePath(rt, 1, 0, 2)
	if !ok {
		t.Fatal("NewTreePath failed")
	}
	if p.String() != "1:0:2" || p.Depth() != 3 || !reflect.DeepEqual(p.Indices(), []int32{1, 0, 2}) {
		t.Fatalf("path %q depth %d indices %v", p.String(), p.Depth(), p.Indices())
	}
	cp := glib.Clone(p)
	p.Release()
	if cp.String() != "1:0:2" {
		t.Fatal("clone did not survive the original")
	}
	cp.Release()

	for _, s := range []string{"", "x", "1:-2", "1::2"} {
		if _, ok := gtk.NewTreePathFromString(rt, s); ok {
			t.Errorf("parsed malformed path %q", s)
		}
	}
	if _, ok := gtk.NewTreePath(rt, -1); ok {
		t.Fatal("negative index accepted")
	}
	if got := b.Stats().Allocations; got != base {
		t.Fatalf("allocations %d -> %d", base, got)
	}
}

func TestListStore(t *testing.T) {
	rt, _ := newRuntime(t)

	if _, err := gtk.NewListStore(rt); errorKind(err) != errors.KindInvalidInput {
		t.Fatalf("no columns: %v", err)
	}
	if _, err := gtk.NewListStore(rt, gobridge.GType(0xdead0)); errorKind(err) != errors.KindInvalidInput {
		t.Fatalf("bad column type: %v", err)
	}

	store, err := gtk.NewListStore(rt, gobridge.TypeString, gobridge.TypeInt, gobridge.TypeBoolean)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Release()
	if store.NColumns() != 3 || store.ColumnType(1) != gobridge.TypeInt || store.ColumnType(3) != 0 {
		t.Fatal("column metadata")
	}

	a, err := store.AppendRow("a", 1, true)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Release()
	bIter, err := store.AppendRow("b", int32(2))
	if err != nil {
		t.Fatal(err)
	}
	bIter.Release()
	if _, err := store.AppendRow("c", 3, false, "extra"); errorKind(err) != errors.KindOutOfRange {
		t.Fatalf("too many values: %v", err)
	}
	if n := store.IterNChildren(nil); n != 2 {
		t.Fatalf("rows = %d", n)
	}
	if store.IterNChildren(a) != 0 {
		t.Fatal("list rows have no children")
	}

	it, ok := store.IterFromString("1")
	if !ok {
		t.Fatal("IterFromString(1) failed")
	}
	defer it.Release()
	tests := []struct {
		column int
		want   any
	}{
		{0, "b"},
		{1, int32(2)},
		{2, false},
	}
	for _, tt := range tests {
		got, err := store.Value(it, tt.column)
		if err != nil || got != tt.want {
			t.Errorf("Value(1, %d) = %v, %v; want %v", tt.column, got, err, tt.want)
		}
	}
	if _, err := store.Value(it, 3); errorKind(err) != errors.KindOutOfRange {
		t.Fatalf("column 3: %v", err)
	}
	if err := store.SetValue(it, 1, "x"); errorKind(err) != errors.KindTypeMismatch {
		t.Fatalf("SetValue(string into int) = %v", err)
	}
	if err := store.SetValue(it, 0, "renamed"); err != nil {
		t.Fatal(err)
	}
	if v, _ := store.Value(it, 0); v != "renamed" {
		t.Fatalf("cell = %v", v)
	}

	path := store.Path(it)
	if path.String() != "1" {
		t.Fatalf("Path = %q", path.String())
	}
	path.Release()
	if _, ok := store.IterFromString("5"); ok {
		t.Fatal("iter for a missing row")
	}
	if _, ok := store.IterFromString("nope"); ok {
		t.Fatal("iter for a malformed path")
	}

	store.Clear()
	if store.IterNChildren(nil) != 0 {
		t.Fatal("Clear left rows")
	}
}

func TestWrongThread(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("thread ids are not available")
	}
	rt, _ := newRuntime(t)
	r := gtk.NewCellRendererText(rt)
	defer r.Release()

	for name, fn := range map[string]func(){
		"property":    func() { r.IsVisible() },
		"constructor": func() { gtk.NewCellRendererCombo(rt) },
		"release":     func() { r.Release() },
	} {
		got := onOtherThread(fn)
		if e, ok := got.(*errors.Error); !ok || e.Kind != errors.KindWrongThread {
			t.Errorf("%s from another thread: %v", name, got)
		}
	}
	if r.IsReleased() {
		t.Fatal("release from another thread took effect")
	}
}
