package glib

import (
	"fmt"

	gobridge "github.com/wippyai/gobject-bridge"
	"github.com/wippyai/gobject-bridge/errors"
)

// Variant is an immutable GVariant. Constructors sink the native
// floating reference, so every Variant owns one reference.
type Variant struct {
	Shared
}

var _ = RegisterShared(SharedInfo[*Variant]{
	Name: "GVariant",
	Ref: func(rt *Runtime, p gobridge.Ptr) gobridge.Ptr {
		return rt.abi.VariantRef(p)
	},
	Unref: func(rt *Runtime, p gobridge.Ptr) {
		rt.abi.VariantUnref(p)
	},
	Sink: func(rt *Runtime, p gobridge.Ptr) gobridge.Ptr {
		return rt.abi.VariantRefSink(p)
	},
	IsFloating: func(rt *Runtime, p gobridge.Ptr) bool {
		return rt.abi.VariantIsFloating(p)
	},
	Wrap: func(s Shared) *Variant { return &Variant{Shared: s} },
})

// NewVariant builds a variant from bool, int32, uint32, int64, uint64,
// float64, string or []string.
func NewVariant(rt *Runtime, x any) (*Variant, error) {
	var p gobridge.Ptr
	switch v := x.(type) {
	case bool:
		p = rt.abi.VariantNewBoolean(v)
	case int32:
		p = rt.abi.VariantNewInt32(v)
	case uint32:
		p = rt.abi.VariantNewUint32(v)
	case int64:
		p = rt.abi.VariantNewInt64(v)
	case uint64:
		p = rt.abi.VariantNewUint64(v)
	case float64:
		p = rt.abi.VariantNewDouble(v)
	case string:
		st := NewStash(rt)
		defer st.Free()
		p = rt.abi.VariantNewString(st.CString(v))
	case []string:
		st := NewStash(rt)
		defer st.Free()
		p = rt.abi.VariantNewStrv(st.Strv(v), len(v))
	default:
		return nil, errors.New(errors.PhaseValue, errors.KindUnsupported).
			GoType(fmt.Sprintf("%T", x)).
			Detail("no variant form").
			Build()
	}
	return TakeFloating[*Variant](rt, p), nil
}

// ParseVariant parses GVariant text format. typeString may be empty to
// let the parser infer the type.
func ParseVariant(rt *Runtime, typeString, text string) (*Variant, error) {
	st := NewStash(rt)
	defer st.Free()
	slot := NewErrorSlot(rt)
	p := rt.abi.VariantParse(st.OptCString(typeString), st.CString(text), slot.Native())
	if err := slot.Take(); err != nil {
		return nil, err
	}
	return Take[*Variant](rt, p), nil
}

// TypeString returns the variant's type, such as "s" or "as".
func (v *Variant) TypeString() string {
	return GoStringNone(v.h.rt, v.h.rt.abi.VariantTypeString(v.Native()))
}

func (v *Variant) expect(want string, goType string) error {
	if got := v.TypeString(); got != want {
		return errors.TypeMismatch(errors.PhaseValue, nil, goType, got)
	}
	return nil
}

// Bool returns the value of a "b" variant.
func (v *Variant) Bool() (bool, error) {
	if err := v.expect("b", "bool"); err != nil {
		return false, err
	}
	return v.h.rt.abi.VariantGetBoolean(v.Native()), nil
}

// Int32 returns the value of an "i" variant.
func (v *Variant) Int32() (int32, error) {
	if err := v.expect("i", "int32"); err != nil {
		return 0, err
	}
	return v.h.rt.abi.VariantGetInt32(v.Native()), nil
}

// Uint32 returns the value of a "u" variant.
func (v *Variant) Uint32() (uint32, error) {
	if err := v.expect("u", "uint32"); err != nil {
		return 0, err
	}
	return v.h.rt.abi.VariantGetUint32(v.Native()), nil
}

// Int64 returns the value of an "x" variant.
func (v *Variant) Int64() (int64, error) {
	if err := v.expect("x", "int64"); err != nil {
		return 0, err
	}
	return v.h.rt.abi.VariantGetInt64(v.Native()), nil
}

// Uint64 returns the value of a "t" variant.
func (v *Variant) Uint64() (uint64, error) {
	if err := v.expect("t", "uint64"); err != nil {
		return 0, err
	}
	return v.h.rt.abi.VariantGetUint64(v.Native()), nil
}

// Double returns the value of a "d" variant.
func (v *Variant) Double() (float64, error) {
	if err := v.expect("d", "float64"); err != nil {
		return 0, err
	}
	return v.h.rt.abi.VariantGetDouble(v.Native()), nil
}

// Str returns the value of an "s" variant.
func (v *Variant) Str() (string, error) {
	if err := v.expect("s", "string"); err != nil {
		return "", err
	}
	return GoStringNone(v.h.rt, v.h.rt.abi.VariantGetString(v.Native())), nil
}

// Strv returns the value of an "as" variant.
func (v *Variant) Strv() ([]string, error) {
	if err := v.expect("as", "[]string"); err != nil {
		return nil, err
	}
	return StrvContainer(v.h.rt, v.h.rt.abi.VariantGetStrv(v.Native())), nil
}

// Any returns the Go form of the variant's value.
func (v *Variant) Any() (any, error) {
	switch t := v.TypeString(); t {
	case "b":
		return v.Bool()
	case "i":
		return v.Int32()
	case "u":
		return v.Uint32()
	case "x":
		return v.Int64()
	case "t":
		return v.Uint64()
	case "d":
		return v.Double()
	case "s":
		return v.Str()
	case "as":
		return v.Strv()
	default:
		return nil, errors.Unsupported(errors.PhaseValue, "variant type "+t)
	}
}

// Print formats the variant in GVariant text format.
func (v *Variant) Print(annotate bool) string {
	return GoStringFull(v.h.rt, v.h.rt.abi.VariantPrint(v.Native(), annotate))
}

// String is Print without type annotations.
func (v *Variant) String() string {
	if v.IsReleased() {
		return "<released GVariant>"
	}
	return v.Print(false)
}

// Equal reports whether both variants have the same type and value.
func (v *Variant) Equal(other *Variant) bool {
	return v.h.rt.abi.VariantEqual(v.Native(), other.Native())
}
