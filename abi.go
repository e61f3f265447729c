package gobridge

// Ptr is an opaque native address. Wrapper code never dereferences it;
// it only hands it back to ABI functions.
type Ptr uintptr

// GType identifies a registered native type.
type GType uintptr

// PtrSize is the width of a native pointer.
const PtrSize = 8

// ValueSize is sizeof(GValue) on 64-bit targets.
const ValueSize = 24

// Fundamental type ids, fixed by the GObject ABI (G_TYPE_MAKE_FUNDAMENTAL).
const (
	TypeInvalid   GType = 0 << 2
	TypeNone      GType = 1 << 2
	TypeInterface GType = 2 << 2
	TypeChar      GType = 3 << 2
	TypeUChar     GType = 4 << 2
	TypeBoolean   GType = 5 << 2
	TypeInt       GType = 6 << 2
	TypeUint      GType = 7 << 2
	TypeLong      GType = 8 << 2
	TypeUlong     GType = 9 << 2
	TypeInt64     GType = 10 << 2
	TypeUint64    GType = 11 << 2
	TypeEnum      GType = 12 << 2
	TypeFlags     GType = 13 << 2
	TypeFloat     GType = 14 << 2
	TypeDouble    GType = 15 << 2
	TypeString    GType = 16 << 2
	TypePointer   GType = 17 << 2
	TypeBoxed     GType = 18 << 2
	TypeParam     GType = 19 << 2
	TypeObject    GType = 20 << 2
	TypeVariant   GType = 21 << 2
)

// ParamFlags mirrors GParamFlags.
type ParamFlags uint32

const (
	ParamReadable      ParamFlags = 1 << 0
	ParamWritable      ParamFlags = 1 << 1
	ParamConstruct     ParamFlags = 1 << 2
	ParamConstructOnly ParamFlags = 1 << 3
)

// Memory is the native allocator plus raw access to value structs
// whose layout is part of the ABI.
type Memory interface {
	Alloc(size uintptr) Ptr // g_malloc0
	Free(p Ptr)             // g_free, null is a no-op
	Strdup(s string) Ptr    // NUL-terminated copy owned by the caller
	GoString(p Ptr) string  // copy of a NUL-terminated string
	StrvFree(p Ptr)         // g_strfreev
	ReadPtr(p Ptr) Ptr
	WritePtr(p Ptr, v Ptr)
	Read(p Ptr, n uintptr) []byte
	Write(p Ptr, data []byte)
}

// TypeSystem resolves and compares native types.
type TypeSystem interface {
	// TypeFromGetter calls a *_get_type symbol, registering the type if needed.
	TypeFromGetter(symbol string) GType
	TypeFromName(name Ptr) GType
	TypeName(t GType) Ptr // static string
	TypeIsA(t, isA GType) bool
	TypeFundamental(t GType) GType
	TypeParent(t GType) GType
	InstanceType(instance Ptr) GType
	StrvType() GType
}

// Objects covers GObject reference counting, properties and boxed copies.
type Objects interface {
	ObjectRef(p Ptr) Ptr
	ObjectUnref(p Ptr)
	ObjectRefSink(p Ptr) Ptr
	ObjectIsFloating(p Ptr) bool
	ObjectRefCount(p Ptr) uint32

	// ObjectFindProperty returns a borrowed GParamSpec or 0.
	ObjectFindProperty(obj Ptr, name Ptr) Ptr
	ParamSpecName(pspec Ptr) Ptr
	ParamSpecFlags(pspec Ptr) ParamFlags
	ParamSpecValueType(pspec Ptr) GType
	ObjectGetProperty(obj, name, value Ptr)
	ObjectSetProperty(obj, name, value Ptr)

	BoxedCopy(t GType, p Ptr) Ptr
	BoxedFree(t GType, p Ptr)
}

// Values manipulates GValue containers. Getters for strings, boxed
// records, objects and variants return borrowed pointers; setters copy
// or take a new reference.
type Values interface {
	ValueInit(v Ptr, t GType)
	ValueUnset(v Ptr)
	ValueType(v Ptr) GType

	ValueGetBoolean(v Ptr) bool
	ValueSetBoolean(v Ptr, b bool)
	ValueGetInt(v Ptr) int32
	ValueSetInt(v Ptr, i int32)
	ValueGetUint(v Ptr) uint32
	ValueSetUint(v Ptr, u uint32)
	ValueGetInt64(v Ptr) int64
	ValueSetInt64(v Ptr, i int64)
	ValueGetUint64(v Ptr) uint64
	ValueSetUint64(v Ptr, u uint64)
	ValueGetDouble(v Ptr) float64
	ValueSetDouble(v Ptr, d float64)
	ValueGetEnum(v Ptr) int32
	ValueSetEnum(v Ptr, e int32)
	ValueGetFlags(v Ptr) uint32
	ValueSetFlags(v Ptr, f uint32)
	ValueGetString(v Ptr) Ptr
	ValueSetString(v Ptr, s Ptr)
	ValueGetBoxed(v Ptr) Ptr
	ValueSetBoxed(v Ptr, p Ptr)
	ValueGetObject(v Ptr) Ptr
	ValueSetObject(v Ptr, p Ptr)
	ValueGetVariant(v Ptr) Ptr
	ValueSetVariant(v Ptr, p Ptr)
	ValueGetPointer(v Ptr) Ptr
}

// Dispatcher receives native invocations of registered closures. The id
// is the user data given at connect time.
type Dispatcher interface {
	// Marshal runs a signal closure. params are borrowed GValues, the
	// first being the emitting instance; ret is 0 for void signals.
	Marshal(id uintptr, ret Ptr, params []Ptr)
	// Invoke runs a main-loop source callback and reports whether the
	// source stays installed.
	Invoke(id uintptr) bool
	// Release is the native destroy notification for id.
	Release(id uintptr)
}

// Signals connects closures and manages handler ids.
type Signals interface {
	SetDispatcher(d Dispatcher)
	// SignalParseName validates a detailed signal name for an instance type.
	SignalParseName(detailedSignal Ptr, itype GType) bool
	SignalConnectClosure(instance, detailedSignal Ptr, id uintptr, after bool) uint64
	SignalHandlerDisconnect(instance Ptr, handler uint64)
	SignalHandlerIsConnected(instance Ptr, handler uint64) bool
	SignalHandlerBlock(instance Ptr, handler uint64)
	SignalHandlerUnblock(instance Ptr, handler uint64)
	QuarkToString(q uint32) Ptr // static string
	QuarkFromString(s Ptr) uint32
}

// MainLoop covers the default main context and its sources.
type MainLoop interface {
	IdleAdd(priority int32, id uintptr) uint32
	TimeoutAdd(priority int32, intervalMs uint32, id uintptr) uint32
	SourceRemove(tag uint32) bool
	MainContextIteration(mayBlock bool) bool
	MainLoopNew() Ptr
	MainLoopRef(l Ptr) Ptr
	MainLoopUnref(l Ptr)
	MainLoopRun(l Ptr)
	MainLoopQuit(l Ptr)
	MainLoopIsRunning(l Ptr) bool
}

// Variants covers GVariant. Constructors return floating references.
type Variants interface {
	VariantRef(v Ptr) Ptr
	VariantUnref(v Ptr)
	VariantRefSink(v Ptr) Ptr
	VariantIsFloating(v Ptr) bool

	VariantNewBoolean(b bool) Ptr
	VariantNewInt32(i int32) Ptr
	VariantNewUint32(u uint32) Ptr
	VariantNewInt64(i int64) Ptr
	VariantNewUint64(u uint64) Ptr
	VariantNewDouble(d float64) Ptr
	VariantNewString(s Ptr) Ptr
	VariantNewStrv(strv Ptr, n int) Ptr

	VariantTypeString(v Ptr) Ptr // borrowed
	VariantGetBoolean(v Ptr) bool
	VariantGetInt32(v Ptr) int32
	VariantGetUint32(v Ptr) uint32
	VariantGetInt64(v Ptr) int64
	VariantGetUint64(v Ptr) uint64
	VariantGetDouble(v Ptr) float64
	VariantGetString(v Ptr) Ptr // borrowed
	VariantGetStrv(v Ptr) Ptr   // container transfer: free the array only
	VariantPrint(v Ptr, annotate bool) Ptr
	VariantParse(typeString, text, errp Ptr) Ptr
	VariantEqual(a, b Ptr) bool
}

// Errors reads GError records.
type Errors interface {
	ErrorDomain(e Ptr) uint32
	ErrorCode(e Ptr) int32
	ErrorMessage(e Ptr) Ptr // borrowed
	ErrorFree(e Ptr)
}

// ABI is the GLib/GObject function table every wrapper package builds on.
// Library specific tables (gio.ABI, gtk.ABI) extend it.
type ABI interface {
	Memory
	TypeSystem
	Objects
	Values
	Signals
	MainLoop
	Variants
	Errors
}
