package system

import (
	"testing"

	"github.com/ebitengine/purego"
	"github.com/wippyai/gobject-bridge/errors"
	"github.com/wippyai/gobject-bridge/glib"
	"github.com/wippyai/gobject-bridge/registry"
)

// newBackend skips when the host has no GLib/GIO.
func newBackend(t *testing.T) *Backend {
	t.Helper()
	b, err := New()
	if err != nil {
		t.Skipf("native libraries unavailable: %v", err)
	}
	return b
}

type nopDispatcher struct{ released []uintptr }

func (d *nopDispatcher) Marshal(uintptr, ptr, []ptr) {}
func (d *nopDispatcher) Invoke(uintptr) bool         { return false }
func (d *nopDispatcher) Release(id uintptr)          { d.released = append(d.released, id) }

func TestPackUnpack(t *testing.T) {
	d := &nopDispatcher{}
	h := dispatchers.Insert(registry.KindDispatcher, d)
	defer dispatchers.Remove(h)

	for _, id := range []uintptr{1, 42, 0xffffffff} {
		got, gotID, ok := unpack(pack(h, id))
		if !ok || got != d || gotID != id {
			t.Errorf("unpack(pack(%d, %d)) = %v, %d, %v", h, id, got, gotID, ok)
		}
	}
	if _, _, ok := unpack(pack(0, 7)); ok {
		t.Error("handle 0 resolved to a dispatcher")
	}
}

func TestNewWithConfig_MissingLibrary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GLib = "libdoes-not-exist-2.0.so.0"
	_, err := NewWithConfig(cfg)
	e, ok := err.(*errors.Error)
	if !ok || e.Phase != errors.PhaseLoad {
		t.Fatalf("error = %T %v", err, err)
	}
}

func TestBind_MissingSymbols(t *testing.T) {
	name := DefaultConfig().GLib
	h, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		t.Skipf("%s unavailable: %v", name, err)
	}
	var table struct {
		Free    func(p ptr) `ffi:"g_free"`
		Missing func()      `ffi:"g_no_such_symbol"`
		Skipped func()
	}
	missing := bind(library{name: name, handle: h}, &table)
	if len(missing) != 1 || missing[0] != name+"#g_no_such_symbol" {
		t.Fatalf("missing = %v", missing)
	}
	if table.Free == nil || table.Missing != nil || table.Skipped != nil {
		t.Fatal("only tagged, resolved fields should be bound")
	}

	merr := errors.NewMissingSymbolsError(missing)
	if merr.Symbols[0].Library != name || merr.Symbols[0].Symbol != "g_no_such_symbol" {
		t.Fatalf("symbols = %+v", merr.Symbols)
	}
}

func TestNewWithConfig_WrongLibrary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GIO = cfg.GLib
	_, err := NewWithConfig(cfg)
	if err == nil {
		t.Fatal("GIO table bound against GLib")
	}
	merr, ok := err.(*errors.MissingSymbolsError)
	if !ok {
		t.Skipf("native libraries unavailable: %v", err)
	}
	found := false
	for _, s := range merr.Symbols {
		if s.Library != cfg.GLib {
			t.Errorf("symbol %s attributed to %s", s.Symbol, s.Library)
		}
		if s.Symbol == "g_settings_new" {
			found = true
		}
	}
	if !found {
		t.Fatalf("g_settings_new not reported: %v", merr)
	}
}

func TestBackend_Memory(t *testing.T) {
	b := newBackend(t)

	p := b.Strdup("héllo")
	defer b.Free(p)
	if got := b.GoString(p); got != "héllo" {
		t.Fatalf("GoString = %q", got)
	}

	block := b.Alloc(16)
	defer b.Free(block)
	b.Write(block+8, []byte{1, 2, 3})
	if got := b.Read(block+7, 5); string(got) != "\x00\x01\x02\x03\x00" {
		t.Fatalf("Read = %v", got)
	}
	b.WritePtr(block, p)
	if b.ReadPtr(block) != p {
		t.Fatal("ReadPtr")
	}
}

func TestBackend_Variants(t *testing.T) {
	b := newBackend(t)
	rt, err := glib.New(b)
	if err != nil {
		t.Fatal(err)
	}

	v, err := glib.NewVariant(rt, []string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	defer v.Release()
	if v.TypeString() != "as" || v.Print(false) != "['a', 'b']" {
		t.Fatalf("variant %s = %s", v.TypeString(), v.Print(false))
	}

	n, err := glib.ParseVariant(rt, "i", "42")
	if err != nil {
		t.Fatal(err)
	}
	defer n.Release()
	if x, _ := n.Int32(); x != 42 {
		t.Fatalf("parsed %d", x)
	}

	_, err = glib.ParseVariant(rt, "i", "forty-two")
	nerr, ok := err.(*errors.NativeError)
	if !ok || nerr.Domain != "g-variant-parse-error-quark" {
		t.Fatalf("parse error = %T %v", err, err)
	}
}

func TestBackend_IdleSource(t *testing.T) {
	b := newBackend(t)
	rt, err := glib.New(b)
	if err != nil {
		t.Fatal(err)
	}

	calls := 0
	rt.IdleAdd(func() bool {
		calls++
		return calls < 3
	})
	for i := 0; i < 10 && calls < 3; i++ {
		rt.Iterate(false)
	}
	if calls != 3 {
		t.Fatalf("idle ran %d times", calls)
	}
}
