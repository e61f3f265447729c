package system

func (b *Backend) VariantRef(v ptr) ptr         { return b.glib.VariantRef(v) }
func (b *Backend) VariantUnref(v ptr)           { b.glib.VariantUnref(v) }
func (b *Backend) VariantRefSink(v ptr) ptr     { return b.glib.VariantRefSink(v) }
func (b *Backend) VariantIsFloating(v ptr) bool { return b.glib.VariantIsFloating(v) }

func (b *Backend) VariantNewBoolean(x bool) ptr       { return b.glib.VariantNewBoolean(x) }
func (b *Backend) VariantNewInt32(x int32) ptr        { return b.glib.VariantNewInt32(x) }
func (b *Backend) VariantNewUint32(x uint32) ptr      { return b.glib.VariantNewUint32(x) }
func (b *Backend) VariantNewInt64(x int64) ptr        { return b.glib.VariantNewInt64(x) }
func (b *Backend) VariantNewUint64(x uint64) ptr      { return b.glib.VariantNewUint64(x) }
func (b *Backend) VariantNewDouble(x float64) ptr     { return b.glib.VariantNewDouble(x) }
func (b *Backend) VariantNewString(s ptr) ptr         { return b.glib.VariantNewString(s) }
func (b *Backend) VariantNewStrv(strv ptr, n int) ptr { return b.glib.VariantNewStrv(strv, n) }

func (b *Backend) VariantTypeString(v ptr) ptr    { return b.glib.VariantGetTypeString(v) }
func (b *Backend) VariantGetBoolean(v ptr) bool   { return b.glib.VariantGetBoolean(v) }
func (b *Backend) VariantGetInt32(v ptr) int32    { return b.glib.VariantGetInt32(v) }
func (b *Backend) VariantGetUint32(v ptr) uint32  { return b.glib.VariantGetUint32(v) }
func (b *Backend) VariantGetInt64(v ptr) int64    { return b.glib.VariantGetInt64(v) }
func (b *Backend) VariantGetUint64(v ptr) uint64  { return b.glib.VariantGetUint64(v) }
func (b *Backend) VariantGetDouble(v ptr) float64 { return b.glib.VariantGetDouble(v) }
func (b *Backend) VariantGetString(v ptr) ptr     { return b.glib.VariantGetString(v, 0) }
func (b *Backend) VariantGetStrv(v ptr) ptr       { return b.glib.VariantGetStrv(v, 0) }

func (b *Backend) VariantPrint(v ptr, annotate bool) ptr { return b.glib.VariantPrint(v, annotate) }

// VariantParse passes typeString straight through: a definite type
// string is a valid GVariantType pointer.
func (b *Backend) VariantParse(typeString, text, errp ptr) ptr {
	return b.glib.VariantParse(typeString, text, 0, 0, errp)
}

func (b *Backend) VariantEqual(x, y ptr) bool { return b.glib.VariantEqual(x, y) }
