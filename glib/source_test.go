package glib_test

import (
	"testing"
	"time"

	"github.com/wippyai/gobject-bridge/glib"
)

func TestIdleAdd_RunsUntilFalse(t *testing.T) {
	rt, b := newRuntime(t)

	runs := 0
	rt.IdleAdd(func() bool {
		runs++
		return runs < 3
	})
	once := 0
	rt.IdleAddOnce(func() { once++ })
	if rt.Closures() != 2 {
		t.Fatalf("closures = %d, want 2", rt.Closures())
	}
	for rt.Iterate(false) {
	}
	if runs != 3 || once != 1 {
		t.Fatalf("runs = %d, once = %d", runs, once)
	}
	if rt.Closures() != 0 || b.Stats().Sources != 0 {
		t.Fatal("finished sources were not released")
	}
}

func TestIdleAdd_Priority(t *testing.T) {
	rt, _ := newRuntime(t)

	var order []string
	rt.IdleAddPriority(glib.PriorityLow, func() bool {
		order = append(order, "low")
		return false
	})
	rt.IdleAddPriority(glib.PriorityHigh, func() bool {
		order = append(order, "high")
		return false
	})
	for rt.Iterate(false) {
	}
	if len(order) != 2 || order[0] != "high" || order[1] != "low" {
		t.Fatalf("order = %v", order)
	}
}

func TestSourceRemove(t *testing.T) {
	rt, _ := newRuntime(t)

	ran := false
	id := rt.IdleAdd(func() bool {
		ran = true
		return true
	})
	if !rt.SourceRemove(id) {
		t.Fatal("SourceRemove failed")
	}
	if rt.Closures() != 0 {
		t.Fatal("removed source kept its closure")
	}
	rt.Iterate(false)
	if ran {
		t.Fatal("removed source ran")
	}
	if rt.SourceRemove(id) {
		t.Fatal("second SourceRemove succeeded")
	}
}

func TestSourceRemove_FromOwnCallback(t *testing.T) {
	rt, _ := newRuntime(t)

	var id glib.SourceID
	runs := 0
	id = rt.IdleAdd(func() bool {
		runs++
		rt.SourceRemove(id)
		return true
	})
	for rt.Iterate(false) {
	}
	if runs != 1 || rt.Closures() != 0 {
		t.Fatalf("runs = %d, closures = %d", runs, rt.Closures())
	}
}

func TestMainLoop(t *testing.T) {
	rt, b := newRuntime(t)

	loop := glib.NewMainLoop(rt)
	defer loop.Release()

	ticks := 0
	rt.TimeoutAdd(time.Millisecond, func() bool {
		ticks++
		if ticks == 3 {
			loop.Quit()
			return false
		}
		if !loop.IsRunning() {
			t.Error("loop not running inside a callback")
		}
		return true
	})
	loop.Run()

	if ticks != 3 || loop.IsRunning() {
		t.Fatalf("ticks = %d, running = %v", ticks, loop.IsRunning())
	}
	if b.RefCount(loop.Native()) != 1 {
		t.Fatalf("loop refcount = %d", b.RefCount(loop.Native()))
	}
}

func TestMainLoop_QuitFromGoroutine(t *testing.T) {
	rt, _ := newRuntime(t)
	loop := glib.NewMainLoop(rt)
	defer loop.Release()

	go func() {
		time.Sleep(5 * time.Millisecond)
		rt.IdleAddOnce(loop.Quit)
	}()
	done := make(chan struct{})
	go func() {
		loop.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not quit")
	}
}
