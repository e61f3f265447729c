package glib

import (
	"reflect"
	"sync"

	gobridge "github.com/wippyai/gobject-bridge"
	"github.com/wippyai/gobject-bridge/errors"
)

type category uint8

const (
	categoryObject category = iota
	categoryShared
	categoryBoxed
)

func (c category) String() string {
	switch c {
	case categoryObject:
		return "object"
	case categoryShared:
		return "shared"
	default:
		return "boxed"
	}
}

// TypeInfo describes a registered wrapper type: how to acquire and
// release its native resource and how to build the Go wrapper.
type TypeInfo struct {
	// Name is the native type name, e.g. "GSettings".
	Name string
	// GetType is the *_get_type symbol, empty for records without a GType.
	GetType string
	// MainThreadOnly restricts every use to the bound main thread.
	MainThreadOnly bool

	category category
	goType   reflect.Type
	acquire  func(rt *Runtime, p gobridge.Ptr) gobridge.Ptr
	release  func(rt *Runtime, p gobridge.Ptr)
	sink     func(rt *Runtime, p gobridge.Ptr) gobridge.Ptr
	floating func(rt *Runtime, p gobridge.Ptr) bool
	wrap     func(h *handle) Wrapper
}

// GoType returns the wrapper's Go type.
func (i *TypeInfo) GoType() reflect.Type {
	return i.goType
}

// ObjectInfo registers a GObject class wrapper.
type ObjectInfo[T Wrapper] struct {
	Name           string
	GetType        string
	MainThreadOnly bool
	Wrap           func(Object) T
}

// SharedInfo registers a reference-counted record that is not a GObject.
type SharedInfo[T Wrapper] struct {
	Name    string
	GetType string
	Ref     func(rt *Runtime, p gobridge.Ptr) gobridge.Ptr
	Unref   func(rt *Runtime, p gobridge.Ptr)
	// Sink converts a floating reference; nil when the type never floats.
	Sink       func(rt *Runtime, p gobridge.Ptr) gobridge.Ptr
	IsFloating func(rt *Runtime, p gobridge.Ptr) bool
	Wrap       func(Shared) T
}

// BoxedInfo registers a copy/free record. Copy and Free default to
// g_boxed_copy and g_boxed_free for GetType.
type BoxedInfo[T Wrapper] struct {
	Name           string
	GetType        string
	MainThreadOnly bool
	Copy           func(rt *Runtime, p gobridge.Ptr) gobridge.Ptr
	Free           func(rt *Runtime, p gobridge.Ptr)
	Wrap           func(Boxed) T
}

var types = struct {
	sync.RWMutex
	byGo map[reflect.Type]*TypeInfo
	all  []*TypeInfo
}{byGo: make(map[reflect.Type]*TypeInfo)}

func register(info *TypeInfo) *TypeInfo {
	types.Lock()
	defer types.Unlock()
	if prev, ok := types.byGo[info.goType]; ok {
		errors.Panic(errors.New(errors.PhaseConvert, errors.KindRegistration).
			GoType(info.goType.String()).
			Detail("already registered as %s", prev.Name).
			Build())
	}
	types.byGo[info.goType] = info
	types.all = append(types.all, info)
	return info
}

// RegisterObject registers the wrapper T for a GObject class.
func RegisterObject[T Wrapper](o ObjectInfo[T]) *TypeInfo {
	wrap := o.Wrap
	info := &TypeInfo{
		Name:           o.Name,
		GetType:        o.GetType,
		MainThreadOnly: o.MainThreadOnly,
		category:       categoryObject,
		goType:         reflect.TypeFor[T](),
		acquire: func(rt *Runtime, p gobridge.Ptr) gobridge.Ptr {
			return rt.abi.ObjectRef(p)
		},
		release: func(rt *Runtime, p gobridge.Ptr) {
			rt.abi.ObjectUnref(p)
		},
		sink: func(rt *Runtime, p gobridge.Ptr) gobridge.Ptr {
			return rt.abi.ObjectRefSink(p)
		},
		floating: func(rt *Runtime, p gobridge.Ptr) bool {
			return rt.abi.ObjectIsFloating(p)
		},
	}
	info.wrap = func(h *handle) Wrapper { return wrap(Object{ref{h}}) }
	return register(info)
}

// RegisterShared registers the wrapper T for a refcounted record.
func RegisterShared[T Wrapper](s SharedInfo[T]) *TypeInfo {
	wrap := s.Wrap
	info := &TypeInfo{
		Name:     s.Name,
		GetType:  s.GetType,
		category: categoryShared,
		goType:   reflect.TypeFor[T](),
		acquire:  s.Ref,
		release:  s.Unref,
		sink:     s.Sink,
		floating: s.IsFloating,
	}
	info.wrap = func(h *handle) Wrapper { return wrap(Shared{ref{h}}) }
	return register(info)
}

// RegisterBoxed registers the wrapper T for a boxed record.
func RegisterBoxed[T Wrapper](b BoxedInfo[T]) *TypeInfo {
	wrap := b.Wrap
	info := &TypeInfo{
		Name:           b.Name,
		GetType:        b.GetType,
		MainThreadOnly: b.MainThreadOnly,
		category:       categoryBoxed,
		goType:         reflect.TypeFor[T](),
		acquire:        b.Copy,
		release:        b.Free,
	}
	if info.acquire == nil {
		info.acquire = func(rt *Runtime, p gobridge.Ptr) gobridge.Ptr {
			return rt.abi.BoxedCopy(rt.TypeOf(info), p)
		}
	}
	if info.release == nil {
		info.release = func(rt *Runtime, p gobridge.Ptr) {
			rt.abi.BoxedFree(rt.TypeOf(info), p)
		}
	}
	info.wrap = func(h *handle) Wrapper { return wrap(Boxed{ref{h}}) }
	return register(info)
}

func lookupGo(t reflect.Type) (*TypeInfo, bool) {
	types.RLock()
	defer types.RUnlock()
	info, ok := types.byGo[t]
	return info, ok
}

func infoFor[T Wrapper]() *TypeInfo {
	t := reflect.TypeFor[T]()
	info, ok := lookupGo(t)
	if !ok {
		errors.Panic(errors.New(errors.PhaseConvert, errors.KindRegistration).
			GoType(t.String()).
			Detail("wrapper type is not registered").
			Build())
	}
	return info
}

func registered() []*TypeInfo {
	types.RLock()
	defer types.RUnlock()
	return append([]*TypeInfo(nil), types.all...)
}

// TypeOf resolves the native GType of a registered wrapper type,
// caching the result per runtime. Returns 0 when the type has no
// getter or the native library does not provide it.
func (rt *Runtime) TypeOf(info *TypeInfo) gobridge.GType {
	if info.GetType == "" {
		return 0
	}
	if t, ok := rt.gtypes.Load(info); ok {
		return t.(gobridge.GType)
	}
	t := rt.abi.TypeFromGetter(info.GetType)
	if t != 0 {
		rt.gtypes.Store(info, t)
	}
	return t
}

// infoForGType finds the registered wrapper for t, walking up the
// parent chain for objects. Returns nil when nothing matches.
func (rt *Runtime) infoForGType(t gobridge.GType) *TypeInfo {
	all := registered()
	for cur := t; cur != 0; cur = rt.abi.TypeParent(cur) {
		for _, info := range all {
			if info.GetType != "" && rt.TypeOf(info) == cur {
				return info
			}
		}
	}
	return nil
}

// TypeName returns the native name of t.
func (rt *Runtime) TypeName(t gobridge.GType) string {
	if t == 0 {
		return "(invalid)"
	}
	p := rt.abi.TypeName(t)
	if p == 0 {
		return "(unknown)"
	}
	return rt.abi.GoString(p)
}
