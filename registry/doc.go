// Package registry is the handle table behind native callbacks.
//
// Native code cannot hold Go pointers, so every Go closure handed to the
// native side is stored here and represented by an integer Handle that
// travels as callback user data. The native side later gives the handle
// back on each invocation and once more in its destroy notification.
//
// # Lifecycle
//
//	h := table.Insert(KindSignal, closure)   // before connecting
//	v, ok := table.Pin(h)                    // on each native invocation
//	table.Unpin(h)                           // when the invocation returns
//	table.Remove(h)                          // from the destroy notification
//
// An entry removed while pinned is not dropped immediately. It is marked
// and dropped by the Unpin that brings its pin count to zero, so a closure
// that disconnects itself finishes running before its value is released.
// Handle 0 is never issued.
//
// # Observers
//
// Observers see every lifecycle transition:
//
//	table.Subscribe(registry.ObserverFunc(func(e registry.Event) {
//	    if e.Type == registry.EventDropped {
//	        log.Printf("closure %d released", e.Handle)
//	    }
//	}))
//
// Values implementing Dropper have Drop called exactly once, when the
// entry is finally removed or the table is closed.
package registry
