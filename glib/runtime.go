package glib

import (
	"sync"
	"sync/atomic"

	gobridge "github.com/wippyai/gobject-bridge"
	"github.com/wippyai/gobject-bridge/errors"
	"github.com/wippyai/gobject-bridge/registry"
	"go.uber.org/zap"
)

// Config configures a Runtime.
type Config struct {
	// Logger overrides the package logger.
	Logger *zap.Logger
	// CheckThreads enables main-thread assertions for MainThreadOnly types.
	CheckThreads bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{CheckThreads: true}
}

// Runtime binds wrappers to one native ABI. It owns the closure
// registry that native callbacks dispatch through and the main-thread
// binding. Create one Runtime per ABI.
type Runtime struct {
	abi        gobridge.ABI
	cfg        Config
	log        *zap.Logger
	closures   *registry.Table[*closure]
	gtypes     sync.Map // *TypeInfo -> gobridge.GType
	mainThread atomic.Int64
	closed     atomic.Bool
}

// New creates a runtime with the default configuration.
func New(abi gobridge.ABI) (*Runtime, error) {
	return NewWithConfig(abi, nil)
}

// NewWithConfig creates a runtime and installs its dispatcher on abi.
func NewWithConfig(abi gobridge.ABI, cfg *Config) (*Runtime, error) {
	if abi == nil {
		return nil, errors.InvalidInput(errors.PhaseLoad, "nil ABI")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	log := cfg.Logger
	if log == nil {
		log = Logger()
	}

	rt := &Runtime{
		abi:      abi,
		cfg:      *cfg,
		log:      log,
		closures: registry.NewTable[*closure](),
	}
	if log.Core().Enabled(zap.DebugLevel) {
		rt.closures.Subscribe(registry.ObserverFunc(func(e registry.Event) {
			c, _ := e.Value.(*closure)
			fields := []zap.Field{
				zap.Stringer("event", e.Type),
				zap.Uint32("id", uint32(e.Handle)),
				zap.Stringer("kind", e.Kind),
			}
			if c != nil {
				fields = append(fields, zap.String("name", c.name))
			}
			log.Debug("closure", fields...)
		}))
	}
	abi.SetDispatcher(dispatcher{rt})
	return rt, nil
}

// ABI returns the native function table.
func (rt *Runtime) ABI() gobridge.ABI {
	return rt.abi
}

// Log returns the runtime's logger.
func (rt *Runtime) Log() *zap.Logger {
	return rt.log
}

// Closures returns the number of live closure registrations.
func (rt *Runtime) Closures() int {
	return rt.closures.Len()
}

// Close detaches the dispatcher and drops every closure still
// registered. Native objects must not emit signals afterwards.
func (rt *Runtime) Close() error {
	if !rt.closed.CompareAndSwap(false, true) {
		return nil
	}
	rt.closures.Each(func(h registry.Handle, c *closure) bool {
		rt.log.Debug("closing runtime with live closure",
			zap.Uint32("id", uint32(h)),
			zap.String("name", c.name))
		return true
	})
	rt.abi.SetDispatcher(nil)
	return rt.closures.Close()
}

// Quark returns the string a quark stands for.
func (rt *Runtime) Quark(q uint32) string {
	p := rt.abi.QuarkToString(q)
	if p == 0 {
		return ""
	}
	return rt.abi.GoString(p)
}

// QuarkFromString interns s.
func (rt *Runtime) QuarkFromString(s string) uint32 {
	st := NewStash(rt)
	defer st.Free()
	return rt.abi.QuarkFromString(st.CString(s))
}

// collect releases a wrapper's native resource after the Go wrapper was
// garbage collected. Main-thread-only resources collected elsewhere are
// handed to the main loop, as are all of them where thread ids are
// unavailable.
func (rt *Runtime) collect(info *TypeInfo, p gobridge.Ptr) {
	if rt.closed.Load() {
		return
	}
	if info.MainThreadOnly && rt.cfg.CheckThreads && (!threadIDsSupported || !rt.IsMainThread()) {
		rt.log.Debug("deferring release to main thread",
			zap.String("type", info.Name), zap.Uintptr("ptr", uintptr(p)))
		rt.IdleAddOnce(func() { info.release(rt, p) })
		return
	}
	info.release(rt, p)
}
