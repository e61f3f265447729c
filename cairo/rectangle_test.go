package cairo_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/wippyai/gobject-bridge/cairo"
	"github.com/wippyai/gobject-bridge/glib"
	"github.com/wippyai/gobject-bridge/native/sim"
)

func newRuntime(t *testing.T) (*glib.Runtime, *sim.Backend) {
	t.Helper()
	b := sim.New()
	rt, err := glib.New(b)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { rt.Close() })
	return rt, b
}

func TestRectangle_Layout(t *testing.T) {
	rt, b := newRuntime(t)
	st := glib.NewStash(rt)
	defer st.Free()

	r := cairo.Rectangle{X: 1.5, Y: -2, Width: 3, Height: 4.25}
	p := r.ToNative(st)
	buf := b.Read(p, cairo.RectangleSize)
	for i, want := range []float64{1.5, -2, 3, 4.25} {
		if got := math.Float64frombits(binary.NativeEndian.Uint64(buf[8*i:])); got != want {
			t.Errorf("field %d = %g, want %g", i, got, want)
		}
	}
	if got := cairo.RectangleFromNativeNone(rt, p); got != r {
		t.Fatalf("round trip = %v", got)
	}

	ri := cairo.RectangleInt{X: -1, Y: 2, Width: 30, Height: 40}
	pi := ri.ToNative(st)
	if got := int32(binary.NativeEndian.Uint32(b.Read(pi, cairo.RectangleIntSize))); got != -1 {
		t.Fatalf("x = %d", got)
	}
	if got := cairo.RectangleIntFromNativeNone(rt, pi); got != ri {
		t.Fatalf("round trip = %v", got)
	}
}

func TestRectangle_GValue(t *testing.T) {
	rt, b := newRuntime(t)
	base := b.Stats().Allocations

	tests := []struct {
		name string
		in   glib.BoxedValue
	}{
		{"rectangle", cairo.Rectangle{X: 1, Y: 2, Width: 3, Height: 4}},
		{"rectangle int", cairo.RectangleInt{X: 5, Y: 6, Width: 7, Height: 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := glib.ValueOf(rt, tt.in)
			if err != nil {
				t.Fatal(err)
			}
			defer v.Free()
			if got, want := v.Type(), rt.ABI().TypeFromGetter(tt.in.BoxedGetType()); got != want {
				t.Fatalf("GValue type = %s, want %s", rt.TypeName(got), rt.TypeName(want))
			}
			got, err := v.Get()
			if err != nil || got != any(tt.in) {
				t.Fatalf("Get() = %v, %v", got, err)
			}
		})
	}

	v, err := glib.ValueOf(rt, cairo.Rectangle{Width: 3})
	if err != nil {
		t.Fatal(err)
	}
	if r, err := glib.ValueAs[cairo.Rectangle](v); err != nil || r.Width != 3 {
		t.Fatalf("ValueAs = %v, %v", r, err)
	}
	if _, err := glib.ValueAs[cairo.RectangleInt](v); err == nil {
		t.Fatal("read a rectangle as an int rectangle")
	}
	if err := v.Set(cairo.RectangleInt{}); err == nil {
		t.Fatal("stored an int rectangle in a rectangle value")
	}
	v.Free()

	empty := glib.NewValue(rt, rt.ABI().TypeFromGetter(cairo.RectangleInt{}.BoxedGetType()))
	if got, err := empty.Get(); got != nil || err != nil {
		t.Fatalf("unset boxed value = %v, %v", got, err)
	}
	empty.Free()

	if got := b.Stats().Allocations; got != base {
		t.Fatalf("allocations %d -> %d", base, got)
	}
}

func TestRectangleInt_Geometry(t *testing.T) {
	r := cairo.RectangleInt{X: 10, Y: 10, Width: 5, Height: 2}
	tests := []struct {
		x, y int32
		want bool
	}{
		{10, 10, true},
		{14, 11, true},
		{15, 11, false},
		{12, 12, false},
		{9, 10, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v", tt.x, tt.y, got)
		}
	}
	if r.Empty() || !(cairo.RectangleInt{Width: 3}).Empty() {
		t.Fatal("Empty")
	}
	if s := r.String(); s != "RectangleInt{x: 10, y: 10, width: 5, height: 2}" {
		t.Fatalf("String() = %q", s)
	}
	if s := (cairo.Rectangle{X: 0.5, Width: 2}).String(); s != "Rectangle{x: 0.5, y: 0, width: 2, height: 0}" {
		t.Fatalf("String() = %q", s)
	}
}
