// Package cairo exposes the cairo rectangle records that cross GObject
// APIs as boxed values.
package cairo

import (
	"encoding/binary"
	"fmt"
	"math"

	gobridge "github.com/wippyai/gobject-bridge"
	"github.com/wippyai/gobject-bridge/glib"
)

const (
	rectangleGetType    = "cairo_gobject_rectangle_get_type"
	rectangleIntGetType = "cairo_gobject_rectangle_int_get_type"

	// RectangleSize is sizeof(cairo_rectangle_t).
	RectangleSize = 32
	// RectangleIntSize is sizeof(cairo_rectangle_int_t).
	RectangleIntSize = 16
)

func init() {
	glib.RegisterBoxedValue(rectangleGetType, func(rt *glib.Runtime, p gobridge.Ptr) any {
		return RectangleFromNativeNone(rt, p)
	})
	glib.RegisterBoxedValue(rectangleIntGetType, func(rt *glib.Runtime, p gobridge.Ptr) any {
		return RectangleIntFromNativeNone(rt, p)
	})
}

// Rectangle is cairo_rectangle_t, a rectangle in user-space coordinates.
// It is a plain value: converting from native memory copies it.
type Rectangle struct {
	X, Y, Width, Height float64
}

// RectangleFromNativeNone copies the cairo_rectangle_t at p, which the
// native side keeps.
func RectangleFromNativeNone(rt *glib.Runtime, p gobridge.Ptr) Rectangle {
	buf := rt.ABI().Read(p, RectangleSize)
	f := func(i int) float64 { return math.Float64frombits(binary.NativeEndian.Uint64(buf[8*i:])) }
	return Rectangle{X: f(0), Y: f(1), Width: f(2), Height: f(3)}
}

// BoxedGetType implements glib.BoxedValue.
func (r Rectangle) BoxedGetType() string { return rectangleGetType }

// ToNative writes r into memory owned by s.
func (r Rectangle) ToNative(s *glib.Stash) gobridge.Ptr {
	buf := make([]byte, 0, RectangleSize)
	for _, f := range []float64{r.X, r.Y, r.Width, r.Height} {
		buf = binary.NativeEndian.AppendUint64(buf, math.Float64bits(f))
	}
	return s.Bytes(buf)
}

func (r Rectangle) String() string {
	return fmt.Sprintf("Rectangle{x: %g, y: %g, width: %g, height: %g}", r.X, r.Y, r.Width, r.Height)
}

// RectangleInt is cairo_rectangle_int_t, a rectangle in device pixels.
type RectangleInt struct {
	X, Y, Width, Height int32
}

// RectangleIntFromNativeNone copies the cairo_rectangle_int_t at p.
func RectangleIntFromNativeNone(rt *glib.Runtime, p gobridge.Ptr) RectangleInt {
	buf := rt.ABI().Read(p, RectangleIntSize)
	i := func(n int) int32 { return int32(binary.NativeEndian.Uint32(buf[4*n:])) }
	return RectangleInt{X: i(0), Y: i(1), Width: i(2), Height: i(3)}
}

// BoxedGetType implements glib.BoxedValue.
func (r RectangleInt) BoxedGetType() string { return rectangleIntGetType }

// ToNative writes r into memory owned by s.
func (r RectangleInt) ToNative(s *glib.Stash) gobridge.Ptr {
	buf := make([]byte, 0, RectangleIntSize)
	for _, v := range []int32{r.X, r.Y, r.Width, r.Height} {
		buf = binary.NativeEndian.AppendUint32(buf, uint32(v))
	}
	return s.Bytes(buf)
}

// Empty reports whether r covers no pixels.
func (r RectangleInt) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the pixel at x, y lies inside r.
func (r RectangleInt) Contains(x, y int32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

func (r RectangleInt) String() string {
	return fmt.Sprintf("RectangleInt{x: %d, y: %d, width: %d, height: %d}", r.X, r.Y, r.Width, r.Height)
}
