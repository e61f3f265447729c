// Package glib is the boundary layer between Go and the GObject ABI.
//
// Every native pointer enters Go through a conversion that names its
// ownership convention:
//
//	Take[T]          transfer full: the wrapper takes over the reference
//	TakeFloating[T]  floating reference: sunk, then owned
//	FromNone[T]      transfer none: the wrapper acquires its own reference
//	Borrow[T]        borrowed: valid only while the native side guarantees it
//
// The Opt variants accept a Nullable pointer and report absence instead
// of panicking. Owned and shared wrappers release their reference once,
// on Release or, failing that, when the garbage collector finds the
// wrapper unreachable.
//
// Go closures handed to native code live in a registry keyed by integer
// ids. The native side calls back through the runtime's dispatcher with
// the id; the entry is pinned while the closure runs and dropped when
// the native destroy notification arrives.
//
//	id := glib.MustConnect(settings, glib.Signal{Name: "changed", Detail: "volume"},
//	    func(args *glib.Args, _ *glib.Return) {
//	        fmt.Println("changed:", args.String(1))
//	    })
//	defer glib.Disconnect(settings, id)
//
// Misuse that indicates a bug (wrong runtime type, null where a value is
// required, use after release, wrong thread) panics with an
// *errors.Error. Conditions a caller can handle (unknown property,
// read-only property, value of the wrong type) are returned.
package glib
