// Package system implements the native ABI tables over the GLib,
// GObject, GIO, GTK 3 and cairo-gobject shared libraries installed on
// the host. Libraries are opened with purego, so the package needs no
// C toolchain.
//
// Native callbacks (signal marshals, source functions and destroy
// notifications) re-enter Go through a fixed set of purego callbacks
// created once per process. A panic escaping a closure cannot unwind
// through the C frames below it and terminates the process.
package system

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"
	gobridge "github.com/wippyai/gobject-bridge"
	"github.com/wippyai/gobject-bridge/errors"
	"github.com/wippyai/gobject-bridge/registry"
	"go.uber.org/zap"
)

type ptr = gobridge.Ptr

// Config names the libraries to open. Each entry is a file name
// resolved by the dynamic loader or an absolute path.
type Config struct {
	GLib         string
	GObject      string
	GIO          string
	GTK          string
	CairoGObject string

	// RequireGTK fails New when GTK or cairo-gobject cannot be opened.
	// Otherwise the GTK table stays empty and InitCheck reports false.
	RequireGTK bool

	Logger *zap.Logger
}

// DefaultConfig returns the sonames of the host platform.
func DefaultConfig() *Config {
	if runtime.GOOS == "darwin" {
		return &Config{
			GLib:         "libglib-2.0.0.dylib",
			GObject:      "libgobject-2.0.0.dylib",
			GIO:          "libgio-2.0.0.dylib",
			GTK:          "libgtk-3.0.dylib",
			CairoGObject: "libcairo-gobject.2.dylib",
		}
	}
	return &Config{
		GLib:         "libglib-2.0.so.0",
		GObject:      "libgobject-2.0.so.0",
		GIO:          "libgio-2.0.so.0",
		GTK:          "libgtk-3.so.0",
		CairoGObject: "libcairo-gobject.so.2",
	}
}

// Backend calls into the host libraries. It holds no state of its own
// beyond the function tables, so all methods are as thread safe as the
// native functions they wrap.
type Backend struct {
	cfg  Config
	log  *zap.Logger
	libs []library

	glib    glibFuncs
	gobject gobjectFuncs
	gio     gioFuncs
	gtk     gtkFuncs
	hasGTK  bool

	getters sync.Map // symbol -> gobridge.GType

	dispMu sync.Mutex
	disp   registry.Handle
}

type library struct {
	name   string
	handle uintptr
}

// New opens the default libraries.
func New() (*Backend, error) {
	return NewWithConfig(nil)
}

// NewWithConfig opens the configured libraries and resolves every
// symbol the wrappers use. Unresolved symbols are reported together as
// an *errors.MissingSymbolsError.
func NewWithConfig(cfg *Config) (*Backend, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	b := &Backend{cfg: *cfg, log: log}

	var missing []string
	core := []struct {
		name  string
		table any
	}{
		{cfg.GLib, &b.glib},
		{cfg.GObject, &b.gobject},
		{cfg.GIO, &b.gio},
	}
	for _, c := range core {
		lib, err := b.open(c.name)
		if err != nil {
			return nil, err
		}
		missing = append(missing, bind(lib, c.table)...)
	}

	gtk, gerr := b.open(cfg.GTK)
	if gerr == nil {
		_, gerr = b.open(cfg.CairoGObject)
	}
	switch {
	case gerr == nil:
		missing = append(missing, bind(gtk, &b.gtk)...)
		b.hasGTK = true
	case cfg.RequireGTK:
		return nil, gerr
	default:
		log.Debug("gtk unavailable", zap.Error(gerr))
	}

	if len(missing) > 0 {
		return nil, errors.NewMissingSymbolsError(missing)
	}
	ensureCallbacks()
	log.Debug("native libraries loaded", zap.Int("libraries", len(b.libs)), zap.Bool("gtk", b.hasGTK))
	return b, nil
}

func (b *Backend) open(name string) (library, error) {
	if name == "" {
		return library{}, errors.Load("empty library name", nil)
	}
	h, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return library{}, errors.Load(fmt.Sprintf("open %s", name), err)
	}
	lib := library{name: name, handle: h}
	b.libs = append(b.libs, lib)
	return lib, nil
}

// HasGTK reports whether the GTK table was loaded.
func (b *Backend) HasGTK() bool {
	return b.hasGTK
}

// Libraries returns the names of the opened libraries in load order.
func (b *Backend) Libraries() []string {
	names := make([]string, len(b.libs))
	for i, l := range b.libs {
		names[i] = l.name
	}
	return names
}

// lookup resolves symbol in any opened library.
func (b *Backend) lookup(symbol string) (uintptr, bool) {
	for _, l := range b.libs {
		if addr, err := purego.Dlsym(l.handle, symbol); err == nil && addr != 0 {
			return addr, true
		}
	}
	return 0, false
}
