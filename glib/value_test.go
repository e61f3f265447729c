package glib_test

import (
	"reflect"
	"testing"

	gobridge "github.com/wippyai/gobject-bridge"
	"github.com/wippyai/gobject-bridge/errors"
	"github.com/wippyai/gobject-bridge/glib"
	"github.com/wippyai/gobject-bridge/native/sim"
)

func TestValueOf_RoundTrip(t *testing.T) {
	rt, b := newRuntime(t)
	base := b.Stats()

	tests := []struct {
		in   any
		typ  gobridge.GType
		want any
	}{
		{true, gobridge.TypeBoolean, true},
		{int32(-5), gobridge.TypeInt, int32(-5)},
		{7, gobridge.TypeInt, int32(7)},
		{uint32(9), gobridge.TypeUint, uint32(9)},
		{int64(-1) << 40, gobridge.TypeInt64, int64(-1) << 40},
		{uint64(1) << 50, gobridge.TypeUint64, uint64(1) << 50},
		{2.5, gobridge.TypeDouble, 2.5},
		{"text", gobridge.TypeString, "text"},
		{[]string{"a", "b"}, b.StrvType(), []string{"a", "b"}},
	}
	for _, tt := range tests {
		v, err := glib.ValueOf(rt, tt.in)
		if err != nil {
			t.Fatalf("ValueOf(%v): %v", tt.in, err)
		}
		if v.Type() != tt.typ {
			t.Errorf("ValueOf(%v) type = %s", tt.in, rt.TypeName(v.Type()))
		}
		got, err := v.Get()
		if err != nil || !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Get() = %#v, %v, want %#v", got, err, tt.want)
		}
		v.Free()
		v.Free()
	}
	if s := b.Stats(); s.Allocations != base.Allocations || s.Values != base.Values {
		t.Fatalf("values leaked: %+v, want %+v", s, base)
	}
}

func TestValue_SetRejects(t *testing.T) {
	rt, _ := newRuntime(t)

	tests := []struct {
		typ  gobridge.GType
		in   any
		kind errors.Kind
	}{
		{gobridge.TypeBoolean, 1, errors.KindTypeMismatch},
		{gobridge.TypeInt, int64(1) << 33, errors.KindOverflow},
		{gobridge.TypeInt, "1", errors.KindTypeMismatch},
		{gobridge.TypeUint, -3, errors.KindOverflow},
		{gobridge.TypeUint64, uint(1), ""},
		{gobridge.TypeDouble, 1, errors.KindTypeMismatch},
		{gobridge.TypeString, 3, errors.KindTypeMismatch},
		{gobridge.TypeString, nil, ""},
		{gobridge.TypeVariant, "s", errors.KindTypeMismatch},
		{gobridge.TypePointer, 1, errors.KindUnsupported},
	}
	for _, tt := range tests {
		v := glib.NewValue(rt, tt.typ)
		err := v.Set(tt.in)
		if errorKind(err) != tt.kind {
			t.Errorf("Set(%s, %#v) = %v, want kind %q", rt.TypeName(tt.typ), tt.in, err, tt.kind)
		}
		v.Free()
	}
}

func TestValue_ObjectKeepsReference(t *testing.T) {
	rt, b := newRuntime(t)
	s := newSettings(t, rt, b)
	defer s.Release()

	v, err := glib.ValueOf(rt, s)
	if err != nil {
		t.Fatal(err)
	}
	if s.RefCount() != 2 {
		t.Fatalf("refcount with value = %d, want 2", s.RefCount())
	}

	got, err := glib.ValueAs[*settings](v)
	if err != nil || got.Native() != s.Native() {
		t.Fatalf("ValueAs = %v, %v", got, err)
	}
	if got.Ownership() != glib.OwnershipShared || s.RefCount() != 3 {
		t.Fatalf("ValueAs should return a shared wrapper, refcount = %d", s.RefCount())
	}
	got.Release()

	if _, err := glib.ValueAs[*textRenderer](v); errorKind(err) != errors.KindTypeMismatch {
		t.Fatalf("ValueAs wrong wrapper: %v", err)
	}
	v.Free()
	if s.RefCount() != 1 {
		t.Fatalf("refcount after free = %d, want 1", s.RefCount())
	}
}

func TestVariant_Constructors(t *testing.T) {
	rt, b := newRuntime(t)
	base := b.Stats()

	tests := []struct {
		in   any
		typ  string
		text string
	}{
		{true, "b", "true"},
		{int32(-4), "i", "-4"},
		{uint32(4), "u", "uint32 4"},
		{int64(5), "x", "int64 5"},
		{uint64(6), "t", "uint64 6"},
		{1.5, "d", "1.5"},
		{"it's", "s", `"it's"`},
		{[]string{"x"}, "as", "['x']"},
	}
	for _, tt := range tests {
		v, err := glib.NewVariant(rt, tt.in)
		if err != nil {
			t.Fatalf("NewVariant(%v): %v", tt.in, err)
		}
		if b.VariantIsFloating(v.Native()) || b.RefCount(v.Native()) != 1 {
			t.Fatalf("NewVariant(%v) should own a sunk reference", tt.in)
		}
		if v.TypeString() != tt.typ {
			t.Errorf("type = %q, want %q", v.TypeString(), tt.typ)
		}
		if got := v.Print(true); got != tt.text {
			t.Errorf("Print = %q, want %q", got, tt.text)
		}
		got, err := v.Any()
		if err != nil || !reflect.DeepEqual(got, tt.in) {
			t.Errorf("Any = %#v, %v", got, err)
		}
		v.Release()
	}
	if _, err := glib.NewVariant(rt, 3); errorKind(err) != errors.KindUnsupported {
		t.Fatalf("NewVariant(int): %v", err)
	}
	if n := b.Stats().Variants - base.Variants; n != 0 {
		t.Fatalf("%d variants leaked", n)
	}
}

func TestVariant_TypedGetters(t *testing.T) {
	rt, _ := newRuntime(t)
	v, err := glib.NewVariant(rt, "name")
	if err != nil {
		t.Fatal(err)
	}
	defer v.Release()

	if s, err := v.Str(); err != nil || s != "name" {
		t.Fatalf("Str = %q, %v", s, err)
	}
	if _, err := v.Int32(); errorKind(err) != errors.KindTypeMismatch {
		t.Fatalf("Int32 on a string: %v", err)
	}
	if _, err := v.Strv(); errorKind(err) != errors.KindTypeMismatch {
		t.Fatalf("Strv on a string: %v", err)
	}
	if v.String() != "'name'" {
		t.Fatalf("String = %q", v.String())
	}

	same, _ := glib.NewVariant(rt, "name")
	other, _ := glib.NewVariant(rt, "other")
	if !v.Equal(same) || v.Equal(other) {
		t.Fatal("Equal compares values")
	}
	same.Release()
	other.Release()
	if other.String() != "<released GVariant>" {
		t.Fatalf("released String = %q", other.String())
	}
}

func TestParseVariant(t *testing.T) {
	rt, b := newRuntime(t)
	base := b.Stats()

	v, err := glib.ParseVariant(rt, "as", "['a', 'b']")
	if err != nil {
		t.Fatalf("ParseVariant: %v", err)
	}
	if got, _ := v.Strv(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("Strv = %v", got)
	}
	v.Release()

	_, err = glib.ParseVariant(rt, "", "[]")
	nerr, ok := err.(*errors.NativeError)
	if !ok {
		t.Fatalf("error = %T %v, want *errors.NativeError", err, err)
	}
	if nerr.Domain != sim.DomainVariantParse || nerr.Code != sim.ParseErrorCannotInferType {
		t.Fatalf("error = %+v", nerr)
	}
	if s := b.Stats(); s.Errors != 0 || s.Allocations != base.Allocations || s.Variants != base.Variants {
		t.Fatalf("parse failure leaked: %+v", s)
	}
}

func TestTakeError_Null(t *testing.T) {
	rt, _ := newRuntime(t)
	if err := glib.TakeError(rt, 0); err != nil {
		t.Fatalf("TakeError(0) = %v", err)
	}
	slot := glib.NewErrorSlot(rt)
	if err := slot.Take(); err != nil {
		t.Fatalf("empty slot = %v", err)
	}
	if err := slot.Take(); err != nil {
		t.Fatal("second Take should be a no-op")
	}
}

func TestStrings(t *testing.T) {
	rt, b := newRuntime(t)
	base := b.Stats().Allocations

	st := glib.NewStash(rt)
	arr := st.Strv([]string{"one", "two"})
	if got := glib.StrvNone(rt, arr); !reflect.DeepEqual(got, []string{"one", "two"}) {
		t.Fatalf("StrvNone = %v", got)
	}
	if st.OptCString("") != 0 {
		t.Fatal("OptCString(\"\") should be null")
	}
	data := st.Bytes([]byte("raw\x00"))
	if glib.GoStringNone(rt, data) != "raw" {
		t.Fatal("Bytes round trip failed")
	}
	st.Free()

	if got := glib.GoStringFull(rt, b.Strdup("owned")); got != "owned" {
		t.Fatalf("GoStringFull = %q", got)
	}
	if s, ok := glib.OptStringFull(rt, glib.Nullable(b.Strdup("x"))); !ok || s != "x" {
		t.Fatal("OptStringFull failed")
	}
	if got := glib.StrvNone(rt, 0); got != nil {
		t.Fatalf("StrvNone(0) = %v", got)
	}
	if b.Stats().Allocations != base {
		t.Fatal("string conversions leaked")
	}
	expectPanic(t, errors.KindNullHandle, func() { glib.GoStringNone(rt, 0) })
}

func TestQuark(t *testing.T) {
	rt, _ := newRuntime(t)
	q := rt.QuarkFromString("font-size")
	if q == 0 || rt.QuarkFromString("font-size") != q {
		t.Fatal("quarks should be stable and non-zero")
	}
	if rt.Quark(q) != "font-size" {
		t.Fatalf("Quark = %q", rt.Quark(q))
	}
	if rt.Quark(0) != "" {
		t.Fatal("quark 0 should be empty")
	}
}
