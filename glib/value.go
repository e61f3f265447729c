package glib

import (
	"fmt"
	"math"
	"reflect"
	"sync"

	gobridge "github.com/wippyai/gobject-bridge"
	"github.com/wippyai/gobject-bridge/errors"
)

// Enum is the Go form of an enum-typed GValue.
type Enum int32

// Flags is the Go form of a flags-typed GValue.
type Flags uint32

// BoxedValue is implemented by plain Go value types that cross the
// boundary as boxed records, such as cairo rectangles.
type BoxedValue interface {
	// BoxedGetType names the *_get_type symbol of the record.
	BoxedGetType() string
	// ToNative writes the value into memory owned by s.
	ToNative(s *Stash) gobridge.Ptr
}

var boxedDecoders sync.Map // getter symbol -> func(*Runtime, gobridge.Ptr) any

// RegisterBoxedValue installs the decoder used when a GValue holding the
// boxed type named by getType is read. p is borrowed.
func RegisterBoxedValue(getType string, decode func(rt *Runtime, p gobridge.Ptr) any) {
	boxedDecoders.Store(getType, decode)
}

// Value is a GValue container. Values created by NewValue or ValueOf
// are owned and must be freed; values handed to a closure are borrowed.
type Value struct {
	rt    *Runtime
	ptr   gobridge.Ptr
	owned bool
}

// NewValue allocates and initializes a GValue of type t.
func NewValue(rt *Runtime, t gobridge.GType) *Value {
	p := rt.abi.Alloc(gobridge.ValueSize)
	rt.abi.ValueInit(p, t)
	return &Value{rt: rt, ptr: p, owned: true}
}

// NewValueSlot allocates a zero-filled GValue for native calls that
// initialize their output themselves, such as gtk_tree_model_get_value.
func NewValueSlot(rt *Runtime) *Value {
	return &Value{rt: rt, ptr: rt.abi.Alloc(gobridge.ValueSize), owned: true}
}

// BorrowValue wraps a GValue the native side owns.
func BorrowValue(rt *Runtime, p gobridge.Ptr) *Value {
	return &Value{rt: rt, ptr: p}
}

// ValueOf creates an owned GValue holding x, typed after x's Go type.
func ValueOf(rt *Runtime, x any) (*Value, error) {
	t, err := rt.valueTypeOf(x)
	if err != nil {
		return nil, err
	}
	v := NewValue(rt, t)
	if err := v.Set(x); err != nil {
		v.Free()
		return nil, err
	}
	return v, nil
}

// Free unsets and frees an owned value. Borrowed values are left alone.
func (v *Value) Free() {
	if !v.owned || v.ptr == 0 {
		return
	}
	if v.rt.abi.ValueType(v.ptr) != 0 {
		v.rt.abi.ValueUnset(v.ptr)
	}
	v.rt.abi.Free(v.ptr)
	v.ptr = 0
}

// Native returns the GValue pointer.
func (v *Value) Native() gobridge.Ptr {
	if v.ptr == 0 {
		errors.Panic(errors.Released(errors.PhaseValue, "GValue"))
	}
	return v.ptr
}

// Type returns the value's GType.
func (v *Value) Type() gobridge.GType {
	return v.rt.abi.ValueType(v.Native())
}

func (v *Value) mismatch(x any) *errors.Error {
	return errors.TypeMismatch(errors.PhaseValue, nil, fmt.Sprintf("%T", x), v.rt.TypeName(v.Type()))
}

// Set stores x, converting it to the value's type.
func (v *Value) Set(x any) error {
	rt, p := v.rt, v.Native()
	t := v.Type()
	switch rt.abi.TypeFundamental(t) {
	case gobridge.TypeBoolean:
		b, ok := x.(bool)
		if !ok {
			return v.mismatch(x)
		}
		rt.abi.ValueSetBoolean(p, b)
	case gobridge.TypeInt:
		i, err := v.signed(x, math.MinInt32, math.MaxInt32)
		if err != nil {
			return err
		}
		rt.abi.ValueSetInt(p, int32(i))
	case gobridge.TypeInt64:
		i, err := v.signed(x, math.MinInt64, math.MaxInt64)
		if err != nil {
			return err
		}
		rt.abi.ValueSetInt64(p, i)
	case gobridge.TypeUint:
		u, err := v.unsigned(x, math.MaxUint32)
		if err != nil {
			return err
		}
		rt.abi.ValueSetUint(p, uint32(u))
	case gobridge.TypeUint64:
		u, err := v.unsigned(x, math.MaxUint64)
		if err != nil {
			return err
		}
		rt.abi.ValueSetUint64(p, u)
	case gobridge.TypeDouble:
		switch f := x.(type) {
		case float64:
			rt.abi.ValueSetDouble(p, f)
		case float32:
			rt.abi.ValueSetDouble(p, float64(f))
		default:
			return v.mismatch(x)
		}
	case gobridge.TypeEnum:
		i, err := v.signed(x, math.MinInt32, math.MaxInt32)
		if err != nil {
			return err
		}
		rt.abi.ValueSetEnum(p, int32(i))
	case gobridge.TypeFlags:
		u, err := v.unsigned(x, math.MaxUint32)
		if err != nil {
			return err
		}
		rt.abi.ValueSetFlags(p, uint32(u))
	case gobridge.TypeString:
		if x == nil {
			rt.abi.ValueSetString(p, 0)
			return nil
		}
		s, ok := x.(string)
		if !ok {
			return v.mismatch(x)
		}
		st := NewStash(rt)
		defer st.Free()
		rt.abi.ValueSetString(p, st.CString(s))
	case gobridge.TypeBoxed:
		return v.setBoxed(t, x)
	case gobridge.TypeObject, gobridge.TypeInterface:
		if isNil(x) {
			rt.abi.ValueSetObject(p, 0)
			return nil
		}
		w, ok := x.(Wrapper)
		if !ok || w.cell().info.category != categoryObject {
			return v.mismatch(x)
		}
		obj := w.Native()
		if !rt.abi.TypeIsA(rt.abi.InstanceType(obj), t) {
			return v.mismatch(x)
		}
		rt.abi.ValueSetObject(p, obj)
	case gobridge.TypeVariant:
		if isNil(x) {
			rt.abi.ValueSetVariant(p, 0)
			return nil
		}
		vr, ok := x.(*Variant)
		if !ok {
			return v.mismatch(x)
		}
		rt.abi.ValueSetVariant(p, vr.Native())
	default:
		return errors.Unsupported(errors.PhaseValue, "values of type "+rt.TypeName(t))
	}
	return nil
}

func (v *Value) setBoxed(t gobridge.GType, x any) error {
	rt, p := v.rt, v.Native()
	if isNil(x) {
		rt.abi.ValueSetBoxed(p, 0)
		return nil
	}
	st := NewStash(rt)
	defer st.Free()
	switch b := x.(type) {
	case []string:
		if t != rt.abi.StrvType() {
			return v.mismatch(x)
		}
		rt.abi.ValueSetBoxed(p, st.Strv(b))
	case BoxedValue:
		if rt.abi.TypeFromGetter(b.BoxedGetType()) != t {
			return v.mismatch(x)
		}
		rt.abi.ValueSetBoxed(p, b.ToNative(st))
	case Wrapper:
		info := b.cell().info
		if info.category == categoryObject || rt.TypeOf(info) != t {
			return v.mismatch(x)
		}
		rt.abi.ValueSetBoxed(p, b.Native())
	default:
		return v.mismatch(x)
	}
	return nil
}

func (v *Value) signed(x any, lo, hi int64) (int64, error) {
	rv := reflect.ValueOf(x)
	var i int64
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i = rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, errors.Overflow(errors.PhaseValue, nil, x, v.rt.TypeName(v.Type()))
		}
		i = int64(u)
	default:
		return 0, v.mismatch(x)
	}
	if i < lo || i > hi {
		return 0, errors.Overflow(errors.PhaseValue, nil, x, v.rt.TypeName(v.Type()))
	}
	return i, nil
}

func (v *Value) unsigned(x any, hi uint64) (uint64, error) {
	rv := reflect.ValueOf(x)
	var u uint64
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u = rv.Uint()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		if i < 0 {
			return 0, errors.Overflow(errors.PhaseValue, nil, x, v.rt.TypeName(v.Type()))
		}
		u = uint64(i)
	default:
		return 0, v.mismatch(x)
	}
	if u > hi {
		return 0, errors.Overflow(errors.PhaseValue, nil, x, v.rt.TypeName(v.Type()))
	}
	return u, nil
}

// Get converts the stored value to Go. Absent strings, objects,
// variants and boxed records come back as nil. Objects, variants and
// registered records come back as shared wrappers of the most derived
// registered Go type.
func (v *Value) Get() (any, error) {
	rt, p := v.rt, v.Native()
	t := v.Type()
	switch rt.abi.TypeFundamental(t) {
	case gobridge.TypeBoolean:
		return rt.abi.ValueGetBoolean(p), nil
	case gobridge.TypeInt:
		return rt.abi.ValueGetInt(p), nil
	case gobridge.TypeUint:
		return rt.abi.ValueGetUint(p), nil
	case gobridge.TypeInt64:
		return rt.abi.ValueGetInt64(p), nil
	case gobridge.TypeUint64:
		return rt.abi.ValueGetUint64(p), nil
	case gobridge.TypeDouble:
		return rt.abi.ValueGetDouble(p), nil
	case gobridge.TypeEnum:
		return Enum(rt.abi.ValueGetEnum(p)), nil
	case gobridge.TypeFlags:
		return Flags(rt.abi.ValueGetFlags(p)), nil
	case gobridge.TypeString:
		s := rt.abi.ValueGetString(p)
		if s == 0 {
			return nil, nil
		}
		return GoStringNone(rt, s), nil
	case gobridge.TypeBoxed:
		return v.getBoxed(t)
	case gobridge.TypeObject, gobridge.TypeInterface:
		obj := rt.abi.ValueGetObject(p)
		if obj == 0 {
			return nil, nil
		}
		info := rt.infoForGType(rt.abi.InstanceType(obj))
		if info == nil || info.category != categoryObject {
			info = objectInfo
		}
		return info.wrap(newHandle(rt, info, info.acquire(rt, obj), OwnershipShared)), nil
	case gobridge.TypeVariant:
		vp := rt.abi.ValueGetVariant(p)
		if vp == 0 {
			return nil, nil
		}
		return FromNone[*Variant](rt, vp), nil
	case gobridge.TypePointer, gobridge.TypeParam:
		return rt.abi.ValueGetPointer(p), nil
	default:
		return nil, errors.Unsupported(errors.PhaseValue, "values of type "+rt.TypeName(t))
	}
}

func (v *Value) getBoxed(t gobridge.GType) (any, error) {
	rt, p := v.rt, v.Native()
	bp := rt.abi.ValueGetBoxed(p)
	if t == rt.abi.StrvType() {
		if bp == 0 {
			return nil, nil
		}
		return StrvNone(rt, bp), nil
	}
	if bp == 0 {
		return nil, nil
	}
	var decoded any
	boxedDecoders.Range(func(k, d any) bool {
		if rt.abi.TypeFromGetter(k.(string)) == t {
			decoded = d.(func(*Runtime, gobridge.Ptr) any)(rt, bp)
			return false
		}
		return true
	})
	if decoded != nil {
		return decoded, nil
	}
	info := rt.infoForGType(t)
	if info == nil || info.category == categoryObject {
		return nil, errors.Unsupported(errors.PhaseValue, "boxed type "+rt.TypeName(t)+" has no registered wrapper")
	}
	return info.wrap(newHandle(rt, info, info.acquire(rt, bp), OwnershipShared)), nil
}

// ValueAs reads v as T. Wrapper targets are checked against the native
// runtime type; anything else must match the Go form Get returns.
func ValueAs[T any](v *Value) (T, error) {
	var zero T
	raw, err := v.Get()
	if err != nil || raw == nil {
		return zero, err
	}
	if out, ok := raw.(T); ok {
		return out, nil
	}
	if w, ok := raw.(Wrapper); ok {
		defer w.Release()
		if info, ok := lookupGo(reflect.TypeFor[T]()); ok {
			h, err := checkCast(w, info)
			if err != nil {
				return zero, err
			}
			return info.wrap(h.view(info)).(T), nil
		}
	}
	return zero, errors.TypeMismatch(errors.PhaseValue, nil, reflect.TypeFor[T]().String(), v.rt.TypeName(v.Type()))
}

func (rt *Runtime) valueTypeOf(x any) (gobridge.GType, error) {
	switch b := x.(type) {
	case bool:
		return gobridge.TypeBoolean, nil
	case int, int32:
		return gobridge.TypeInt, nil
	case uint, uint32:
		return gobridge.TypeUint, nil
	case int64:
		return gobridge.TypeInt64, nil
	case uint64:
		return gobridge.TypeUint64, nil
	case float32, float64:
		return gobridge.TypeDouble, nil
	case string:
		return gobridge.TypeString, nil
	case []string:
		return rt.abi.StrvType(), nil
	case *Variant:
		return gobridge.TypeVariant, nil
	case BoxedValue:
		return rt.abi.TypeFromGetter(b.BoxedGetType()), nil
	case Wrapper:
		if isNil(x) {
			break
		}
		info := b.cell().info
		if info.category == categoryObject {
			return rt.abi.InstanceType(b.Native()), nil
		}
		if t := rt.TypeOf(info); t != 0 {
			return t, nil
		}
	}
	return 0, errors.New(errors.PhaseValue, errors.KindUnsupported).
		GoType(fmt.Sprintf("%T", x)).
		Detail("no GValue type for Go value").
		Build()
}

func isNil(x any) bool {
	if x == nil {
		return true
	}
	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return rv.IsNil()
	}
	return false
}
