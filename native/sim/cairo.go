package sim

import gobridge "github.com/wippyai/gobject-bridge"

func (b *Backend) registerCairo() {
	r := b.newType("CairoRectangle", gobridge.TypeBoxed, "cairo_gobject_rectangle_get_type")
	r.size = 32
	b.plainBoxed(r)
	b.t.rectangle = r

	ri := b.newType("CairoRectangleInt", gobridge.TypeBoxed, "cairo_gobject_rectangle_int_get_type")
	ri.size = 16
	b.plainBoxed(ri)
	b.t.rectangleInt = ri
}
