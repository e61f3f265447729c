// Package gobridge is the boundary between Go and the GObject type
// system: GLib, GObject, GIO and GTK 3 reached through a native ABI
// table instead of cgo.
//
// # Architecture Overview
//
// The module is organized into several packages with distinct responsibilities:
//
//	gobridge/            Root package with the ABI interfaces, Ptr and GType
//	├── glib/            Ownership conversions, values, properties, signals,
//	│                    closures, variants, main loop and thread affinity
//	├── gio/             GSettings, schemas, backends and actions
//	├── gtk/             Cell renderers, tree models, paths and iterators
//	├── cairo/           Rectangle value types
//	├── registry/        Handle table for closures handed to native code
//	├── errors/          Structured error types for debugging
//	├── native/system/   The host libraries, loaded with purego
//	├── native/sim/      An in-process simulation used by tests
//	└── cmd/settingsctl/ Command line settings editor
//
// # Quick Start
//
// Read and change a setting:
//
//	abi, err := system.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rt, err := glib.New(abi)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.Close()
//
//	s, err := gio.NewSettings(rt, "org.gnome.desktop.interface")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Release()
//
//	s.ConnectChanged("font-name", func(s *gio.Settings, key string) {
//	    name, _ := s.String(key)
//	    fmt.Println("font is now", name)
//	})
//	if err := s.SetString("font-name", "Cantarell 11"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Ownership
//
// Every native pointer becomes a wrapper through a conversion named at
// the call site: Take for full transfer, FromNone for borrowed results
// the wrapper must keep, TakeFloating for constructors returning a
// floating reference, and Borrow for values valid only inside a scope
// such as a signal handler. Release drops an owned wrapper exactly once;
// a GC cleanup is the fallback.
//
// # Thread Safety
//
// GTK types are main-thread-only: bind the main thread with
// Runtime.BindMainThread (gtk.Init does) and use them from that OS
// thread only. A release collected on another thread is deferred to the
// main loop. GSettings, GVariant and the schema types may be used from
// any goroutine.
package gobridge
