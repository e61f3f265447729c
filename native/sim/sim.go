// Package sim is an in-process stand-in for GLib, GObject, GIO and
// GTK. It implements the native ABI tables over a checked heap and
// counts every reference, so tests can assert that wrappers release
// exactly what they acquire and that closures are released exactly once.
package sim

import (
	"fmt"
	"sync"

	gobridge "github.com/wippyai/gobject-bridge"
	"go.uber.org/zap"
)

type ptr = gobridge.Ptr

// Config configures a Backend.
type Config struct {
	// Strict panics on misuse a real library reports with g_critical or
	// survives by luck: double frees, unknown pointers, wrong types.
	Strict bool
	// Logger receives non-fatal diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger
}

// DefaultConfig returns a strict configuration.
func DefaultConfig() *Config {
	return &Config{Strict: true}
}

// Stats counts live native resources.
type Stats struct {
	// Allocations counts heap blocks that are not static data.
	Allocations int
	Objects     int
	Variants    int
	Values      int
	Handlers    int
	Sources     int
	Errors      int
}

// Backend is one simulated native process. All methods are safe for
// concurrent use; closures are always dispatched without internal
// locks held.
type Backend struct {
	cfg Config
	log *zap.Logger

	mu      sync.Mutex
	pending []func()
	disp    gobridge.Dispatcher

	heap     heap
	types    map[gobridge.GType]*typeInfo
	byName   map[string]*typeInfo
	getters  map[string]gobridge.GType
	nextType gobridge.GType
	pspecs   map[ptr]*pspec

	quarks     map[string]uint32
	quarkNames []ptr

	objects  map[ptr]*object
	values   map[ptr]*gvalue
	variants map[ptr]*variant
	gerrors  map[ptr]bool

	handlers    map[uint64]*handler
	nextHandler uint64

	sources   map[uint32]*source
	nextTag   uint32
	loops     map[ptr]*mainLoop
	wake      chan struct{}
	iterating bool

	gio gioState
	gtk gtkState
	t   builtinTypes
}

// New creates a backend with the default configuration.
func New() *Backend {
	return NewWithConfig(nil)
}

// NewWithConfig creates a backend with GLib, GIO, GTK and cairo types
// registered and an empty default schema source.
func NewWithConfig(cfg *Config) *Backend {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	b := &Backend{
		cfg:         *cfg,
		log:         log,
		heap:        newHeap(),
		types:       make(map[gobridge.GType]*typeInfo),
		byName:      make(map[string]*typeInfo),
		getters:     make(map[string]gobridge.GType),
		nextType:    0x1000,
		pspecs:      make(map[ptr]*pspec),
		quarks:      make(map[string]uint32),
		quarkNames:  []ptr{0},
		objects:     make(map[ptr]*object),
		values:      make(map[ptr]*gvalue),
		variants:    make(map[ptr]*variant),
		gerrors:     make(map[ptr]bool),
		handlers:    make(map[uint64]*handler),
		nextHandler: 1,
		sources:     make(map[uint32]*source),
		nextTag:     1,
		loops:       make(map[ptr]*mainLoop),
		wake:        make(chan struct{}, 1),
	}
	b.mu.Lock()
	b.registerFundamentals()
	b.registerGObject()
	b.registerGIO()
	b.registerGTK()
	b.registerCairo()
	b.unlock()
	return b
}

// unlock releases the backend lock and then runs the work queued while
// it was held: signal emissions and closure releases.
func (b *Backend) unlock() {
	work := b.pending
	b.pending = nil
	b.mu.Unlock()
	for _, fn := range work {
		fn()
	}
}

// after queues fn to run once the lock is released.
func (b *Backend) after(fn func()) {
	b.pending = append(b.pending, fn)
}

// critical reports misuse. Strict backends panic, others log.
func (b *Backend) critical(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if b.cfg.Strict {
		panic("sim: " + msg)
	}
	b.log.Warn(msg)
}

// rejected reports a value the native side refuses and then ignores,
// returning FALSE to the caller. It never panics.
func (b *Backend) rejected(format string, args ...any) {
	b.log.Warn(fmt.Sprintf(format, args...))
}

// SetDispatcher installs the receiver of closure invocations.
func (b *Backend) SetDispatcher(d gobridge.Dispatcher) {
	b.mu.Lock()
	defer b.unlock()
	b.disp = d
}

func (b *Backend) dispatcher() gobridge.Dispatcher {
	b.mu.Lock()
	defer b.unlock()
	return b.disp
}

// releaseClosure queues the destroy notification for a closure id.
func (b *Backend) releaseClosure(id uintptr) {
	d := b.disp
	if d == nil {
		return
	}
	b.after(func() { d.Release(id) })
}

// Stats returns counts of live resources.
func (b *Backend) Stats() Stats {
	b.mu.Lock()
	defer b.unlock()
	return Stats{
		Allocations: b.heap.live(),
		Objects:     len(b.objects),
		Variants:    len(b.variants),
		Values:      len(b.values),
		Handlers:    len(b.handlers),
		Sources:     len(b.sources),
		Errors:      len(b.gerrors),
	}
}

// RefCount returns the reference count of an object, variant, main
// loop or schema record, or 0 when p is not alive.
func (b *Backend) RefCount(p ptr) uint32 {
	b.mu.Lock()
	defer b.unlock()
	if o, ok := b.objects[p]; ok {
		return o.refs
	}
	if v, ok := b.variants[p]; ok {
		return uint32(v.refs)
	}
	if l, ok := b.loops[p]; ok {
		return uint32(l.refs)
	}
	if r := b.gio.record(p); r != nil {
		return uint32(*r)
	}
	return 0
}

// IsAlive reports whether p is a live object or variant.
func (b *Backend) IsAlive(p ptr) bool {
	b.mu.Lock()
	defer b.unlock()
	_, obj := b.objects[p]
	_, v := b.variants[p]
	return obj || v
}

// HandlerCount returns the number of handlers connected to instance.
func (b *Backend) HandlerCount(instance ptr) int {
	b.mu.Lock()
	defer b.unlock()
	if o, ok := b.objects[instance]; ok {
		return len(o.handlers)
	}
	return 0
}
