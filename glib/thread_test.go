package glib_test

import (
	"encoding/binary"
	"runtime"
	"testing"
	"time"

	gobridge "github.com/wippyai/gobject-bridge"
	"github.com/wippyai/gobject-bridge/errors"
	"github.com/wippyai/gobject-bridge/glib"
	"github.com/wippyai/gobject-bridge/native/sim"
)

func newStore(t *testing.T, b *sim.Backend) gobridge.Ptr {
	t.Helper()
	types := b.Alloc(8)
	defer b.Free(types)
	b.Write(types, binary.NativeEndian.AppendUint64(nil, uint64(gobridge.TypeString)))
	return b.ListStoreNewv(1, types)
}

// onOtherThread runs fn on a fresh OS thread and returns what it panicked with.
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

func TestAssertMainThread_Unbound(t *testing.T) {
	rt, b := newRuntime(t)
	store := glib.Take[*listStore](rt, newStore(t, b))

	if rt.MainThreadBound() || rt.IsMainThread() {
		t.Fatal("fresh runtime should have no main thread")
	}
	expectPanic(t, errors.KindNotInitialized, func() { rt.AssertMainThread("test") })
	expectPanic(t, errors.KindNotInitialized, func() { store.Native() })
}

func TestAssertMainThread(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	rt, b := newRuntime(t)
	if err := rt.BindMainThread(); err != nil {
		t.Fatalf("BindMainThread: %v", err)
	}
	if err := rt.BindMainThread(); err != nil {
		t.Fatalf("rebinding from the same thread: %v", err)
	}
	if !rt.IsMainThread() {
		t.Fatal("IsMainThread = false on the bound thread")
	}

	store := glib.Take[*listStore](rt, newStore(t, b))
	defer store.Release()
	p := store.Native()

	if runtime.GOOS != "linux" {
		t.Skip("thread ids are not available")
	}
	r := onOtherThread(func() { store.Native() })
	if e, ok := r.(*errors.Error); !ok || e.Kind != errors.KindWrongThread {
		t.Fatalf("use from another thread: %v", r)
	}
	r = onOtherThread(func() { store.Release() })
	if e, ok := r.(*errors.Error); !ok || e.Kind != errors.KindWrongThread {
		t.Fatalf("release from another thread: %v", r)
	}
	if store.IsReleased() || b.RefCount(p) != 1 {
		t.Fatal("failed release changed the wrapper")
	}
	r = onOtherThread(func() {
		if err := rt.BindMainThread(); errorKind(err) != errors.KindAlreadyBound {
			panic(err)
		}
	})
	if r != nil {
		t.Fatalf("binding a second thread: %v", r)
	}

	settings := newSettings(t, rt, b)
	defer settings.Release()
	if r := onOtherThread(func() { settings.Native() }); r != nil {
		t.Fatalf("unrestricted type used from another thread: %v", r)
	}
}

func TestCheckThreadsDisabled(t *testing.T) {
	b := sim.New()
	rt, err := glib.NewWithConfig(b, &glib.Config{CheckThreads: false})
	if err != nil {
		t.Fatal(err)
	}
	defer rt.Close()

	store := glib.Take[*listStore](rt, newStore(t, b))
	defer store.Release()
	if r := onOtherThread(func() { store.Native() }); r != nil {
		t.Fatalf("thread checks disabled but use panicked: %v", r)
	}
}

func TestCollect_DefersMainThreadRelease(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("thread ids are not available")
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	rt, b := newRuntime(t)
	if err := rt.BindMainThread(); err != nil {
		t.Fatal(err)
	}
	p := newStore(t, b)
	b.ObjectRef(p)
	defer b.ObjectUnref(p)

	func() {
		glib.Take[*listStore](rt, p)
	}()
	deadline := time.Now().Add(2 * time.Second)
	for rt.Closures() == 0 && time.Now().Before(deadline) {
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}
	if rt.Closures() != 1 {
		t.Fatal("collected wrapper did not queue its release")
	}
	if b.RefCount(p) != 2 {
		t.Fatal("release ran off the main thread")
	}
	for rt.Iterate(false) {
	}
	if b.RefCount(p) != 1 {
		t.Fatalf("refcount after main loop = %d, want 1", b.RefCount(p))
	}
}

func TestNew_NilABI(t *testing.T) {
	if _, err := glib.New(nil); errorKind(err) != errors.KindInvalidInput {
		t.Fatalf("New(nil) = %v", err)
	}
}
