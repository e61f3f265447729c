package sim

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	gobridge "github.com/wippyai/gobject-bridge"
)

type gtkState struct {
	initialized bool
	stamp       int32
	paths       map[ptr]*treePath
}

type listState struct {
	columns []gobridge.GType
	rows    [][]gvalue
	stamp   int32
}

type treePath struct {
	indices []int32
	idxP    ptr
}

func (b *Backend) registerGTK() {
	b.gtk.paths = make(map[ptr]*treePath)
	t := &b.t

	t.treeModel = b.newType("GtkTreeModel", gobridge.TypeInterface, "gtk_tree_model_get_type")
	t.treeIter = b.newType("GtkTreeIter", gobridge.TypeBoxed, "gtk_tree_iter_get_type")
	t.treeIter.size = 32
	b.plainBoxed(t.treeIter)
	t.treePath = b.newType("GtkTreePath", gobridge.TypeBoxed, "gtk_tree_path_get_type")
	t.treePath.copy = func(b *Backend, p ptr) ptr { return b.newPath(b.path(p, "copy").indices) }
	t.treePath.free = func(b *Backend, p ptr) { b.freePath(p) }

	r := b.newType("GtkCellRenderer", t.initiallyUnowned.id, "gtk_cell_renderer_get_type")
	r.abstract = true
	t.cellRenderer = r
	b.addProperty(r, "visible", gobridge.TypeBoolean, readWrite, gvalue{b: true})
	b.addProperty(r, "sensitive", gobridge.TypeBoolean, readWrite, gvalue{b: true})
	b.addProperty(r, "xpad", gobridge.TypeUint, readWrite, gvalue{u: 2})

	txt := b.newType("GtkCellRendererText", r.id, "gtk_cell_renderer_text_get_type")
	t.cellRendererText = txt
	b.addProperty(txt, "text", gobridge.TypeString, readWrite, gvalue{})
	b.addProperty(txt, "editable", gobridge.TypeBoolean, readWrite, gvalue{})
	b.addSignal(txt, signalDef{
		name:   "edited",
		params: []gobridge.GType{gobridge.TypeString, gobridge.TypeString},
	})

	combo := b.newType("GtkCellRendererCombo", txt.id, "gtk_cell_renderer_combo_get_type")
	t.cellRendererCombo = combo
	b.addProperty(combo, "has-entry", gobridge.TypeBoolean, readWrite, gvalue{b: true})
	b.addProperty(combo, "model", t.treeModel.id, readWrite, gvalue{})
	col := b.addProperty(combo, "text-column", gobridge.TypeInt, readWrite, gvalue{i: -1})
	col.ranged, col.min, col.max = true, -1, math.MaxInt32
	b.addSignal(combo, signalDef{
		name:   "changed",
		params: []gobridge.GType{gobridge.TypeString, t.treeIter.id},
	})

	ls := b.newType("GtkListStore", gobridge.TypeObject, "gtk_list_store_get_type")
	ls.ifaces = []gobridge.GType{t.treeModel.id}
	ls.init = func(b *Backend, o *object) { o.data = &listState{} }
	ls.finalize = func(b *Backend, o *object) { b.clearRows(o.data.(*listState)) }
	t.listStore = ls
}

// InitCheck implements gtk_init_check. It always succeeds.
func (b *Backend) InitCheck() bool {
	b.mu.Lock()
	defer b.unlock()
	b.gtk.initialized = true
	return true
}

func (b *Backend) newRenderer(t *typeInfo, fn string) ptr {
	if !b.gtk.initialized {
		b.critical("%s: GTK is not initialized", fn)
		return 0
	}
	return b.newObject(t).ptr
}

// CellRendererTextNew returns a floating reference.
func (b *Backend) CellRendererTextNew() ptr {
	b.mu.Lock()
	defer b.unlock()
	return b.newRenderer(b.t.cellRendererText, "gtk_cell_renderer_text_new")
}

// CellRendererComboNew returns a floating reference.
func (b *Backend) CellRendererComboNew() ptr {
	b.mu.Lock()
	defer b.unlock()
	return b.newRenderer(b.t.cellRendererCombo, "gtk_cell_renderer_combo_new")
}

// Tree paths.

func (b *Backend) newPath(indices []int32) ptr {
	p := b.alloc(16, "GtkTreePath")
	tp := &treePath{indices: append([]int32(nil), indices...)}
	if len(indices) > 0 {
		tp.idxP = b.alloc(uintptr(4*len(indices)), "gint[]")
		buf := b.bytes(tp.idxP, 4*len(indices))
		for i, x := range indices {
			binary.NativeEndian.PutUint32(buf[4*i:], uint32(x))
		}
	}
	b.gtk.paths[p] = tp
	return p
}

func (b *Backend) path(p ptr, fn string) *treePath {
	tp, ok := b.gtk.paths[p]
	if !ok {
		b.critical("gtk_tree_path_%s: %#x is not a GtkTreePath", fn, uintptr(p))
		return &treePath{}
	}
	return tp
}

func (b *Backend) freePath(p ptr) {
	tp, ok := b.gtk.paths[p]
	if !ok {
		b.critical("gtk_tree_path_free: %#x is not a GtkTreePath", uintptr(p))
		return
	}
	delete(b.gtk.paths, p)
	b.free(tp.idxP)
	b.free(p)
}

func parsePath(s string) ([]int32, bool) {
	if s == "" {
		return nil, false
	}
	var out []int32
	for _, part := range strings.Split(s, ":") {
		n, err := strconv.ParseInt(part, 10, 32)
		if err != nil || n < 0 {
			return nil, false
		}
		out = append(out, int32(n))
	}
	return out, true
}

// TreePathNewFromString returns 0 for malformed paths.
func (b *Backend) TreePathNewFromString(s ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	indices, ok := parsePath(b.cstring(s))
	if !ok {
		return 0
	}
	return b.newPath(indices)
}

func (b *Backend) TreePathToString(p ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	tp := b.path(p, "to_string")
	if len(tp.indices) == 0 {
		return 0
	}
	parts := make([]string, len(tp.indices))
	for i, x := range tp.indices {
		parts[i] = strconv.Itoa(int(x))
	}
	return b.strdup(strings.Join(parts, ":"))
}

func (b *Backend) TreePathGetDepth(p ptr) int32 {
	b.mu.Lock()
	defer b.unlock()
	return int32(len(b.path(p, "get_depth").indices))
}

// TreePathGetIndices returns the path's own index array.
func (b *Backend) TreePathGetIndices(p ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	return b.path(p, "get_indices").idxP
}

func (b *Backend) TreePathCopy(p ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	return b.newPath(b.path(p, "copy").indices)
}

func (b *Backend) TreePathFree(p ptr) {
	b.mu.Lock()
	defer b.unlock()
	if p != 0 {
		b.freePath(p)
	}
}

func (b *Backend) TreeIterCopy(iter ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	return b.boxedCopy(b.t.treeIter.id, iter)
}

func (b *Backend) TreeIterFree(iter ptr) {
	b.mu.Lock()
	defer b.unlock()
	if iter != 0 {
		b.boxedFree(b.t.treeIter.id, iter)
	}
}

// List stores.

func (b *Backend) clearRows(ls *listState) {
	for _, row := range ls.rows {
		for i := range row {
			b.valueClear(&row[i])
		}
	}
	ls.rows = nil
}

func (b *Backend) ListStoreNewv(nColumns int32, types ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	if nColumns <= 0 {
		b.critical("gtk_list_store_newv: assertion 'n_columns > 0' failed")
		return 0
	}
	buf := b.bytes(types, 8*int(nColumns))
	cols := make([]gobridge.GType, nColumns)
	for i := range cols {
		cols[i] = gobridge.GType(binary.NativeEndian.Uint64(buf[8*i:]))
		if _, ok := b.types[cols[i]]; !ok {
			b.critical("gtk_list_store_newv: invalid type %#x for column %d", uintptr(cols[i]), i)
			return 0
		}
	}
	o := b.newObject(b.t.listStore)
	b.gtk.stamp++
	ls := o.data.(*listState)
	ls.columns = cols
	ls.stamp = b.gtk.stamp
	return o.ptr
}

func (b *Backend) model(p ptr, fn string) *listState {
	o := b.object(p, fn)
	if o == nil || !b.isA(o.typ.id, b.t.treeModel.id) {
		if o != nil {
			b.critical("%s: %s is not a GtkTreeModel", fn, o.typ.name)
		}
		return nil
	}
	return o.data.(*listState)
}

func (b *Backend) writeIter(ls *listState, iter ptr, row int) {
	buf := b.bytes(iter, 32)
	clear(buf)
	binary.NativeEndian.PutUint32(buf, uint32(ls.stamp))
	binary.NativeEndian.PutUint64(buf[8:], uint64(row))
}

// iterRow validates iter against ls and returns its row.
func (b *Backend) iterRow(ls *listState, iter ptr, fn string) (int, bool) {
	buf := b.bytes(iter, 32)
	stamp := int32(binary.NativeEndian.Uint32(buf))
	row := int(binary.NativeEndian.Uint64(buf[8:]))
	if stamp != ls.stamp || row < 0 || row >= len(ls.rows) {
		b.critical("%s: invalid iter", fn)
		return 0, false
	}
	return row, true
}

func (b *Backend) ListStoreAppend(store, iter ptr) {
	b.mu.Lock()
	defer b.unlock()
	ls := b.model(store, "gtk_list_store_append")
	if ls == nil {
		return
	}
	row := make([]gvalue, len(ls.columns))
	for i, t := range ls.columns {
		row[i] = gvalue{typ: t}
	}
	ls.rows = append(ls.rows, row)
	b.writeIter(ls, iter, len(ls.rows)-1)
}

func (b *Backend) ListStoreSetValue(store, iter ptr, column int32, value ptr) {
	b.mu.Lock()
	defer b.unlock()
	const fn = "gtk_list_store_set_value"
	ls := b.model(store, fn)
	if ls == nil {
		return
	}
	row, ok := b.iterRow(ls, iter, fn)
	if !ok {
		return
	}
	if column < 0 || int(column) >= len(ls.columns) {
		b.critical("%s: assertion 'column >= 0 && column < priv->n_columns' failed", fn)
		return
	}
	src := b.slot(value, 0, fn)
	if !b.isA(src.typ, ls.columns[column]) {
		b.critical("%s: unable to convert from %s to %s", fn, b.typeName(src.typ), b.typeName(ls.columns[column]))
		return
	}
	v := b.valueCopy(src)
	v.typ = ls.columns[column]
	b.valueClear(&ls.rows[row][column])
	ls.rows[row][column] = v
}

func (b *Backend) ListStoreClear(store ptr) {
	b.mu.Lock()
	defer b.unlock()
	if ls := b.model(store, "gtk_list_store_clear"); ls != nil {
		b.clearRows(ls)
		b.gtk.stamp++
		ls.stamp = b.gtk.stamp
	}
}

func (b *Backend) TreeModelGetNColumns(model ptr) int32 {
	b.mu.Lock()
	defer b.unlock()
	if ls := b.model(model, "gtk_tree_model_get_n_columns"); ls != nil {
		return int32(len(ls.columns))
	}
	return 0
}

func (b *Backend) TreeModelGetColumnType(model ptr, column int32) gobridge.GType {
	b.mu.Lock()
	defer b.unlock()
	ls := b.model(model, "gtk_tree_model_get_column_type")
	if ls == nil || column < 0 || int(column) >= len(ls.columns) {
		return 0
	}
	return ls.columns[column]
}

// TreeModelGetValue initializes the zero-filled GValue at value with a
// copy of the cell.
func (b *Backend) TreeModelGetValue(model, iter ptr, column int32, value ptr) {
	b.mu.Lock()
	defer b.unlock()
	const fn = "gtk_tree_model_get_value"
	ls := b.model(model, fn)
	if ls == nil {
		return
	}
	row, ok := b.iterRow(ls, iter, fn)
	if !ok {
		return
	}
	if column < 0 || int(column) >= len(ls.columns) {
		b.critical("%s: assertion 'column < priv->n_columns' failed", fn)
		return
	}
	if _, used := b.values[value]; used {
		b.critical("%s: value is already initialized", fn)
		return
	}
	v := b.valueCopy(&ls.rows[row][column])
	b.bindValue(value, &v)
}

func (b *Backend) TreeModelIterNChildren(model, iter ptr) int32 {
	b.mu.Lock()
	defer b.unlock()
	ls := b.model(model, "gtk_tree_model_iter_n_children")
	if ls == nil || iter != 0 {
		return 0
	}
	return int32(len(ls.rows))
}

func (b *Backend) TreeModelGetIter(model, iter, path ptr) bool {
	b.mu.Lock()
	defer b.unlock()
	ls := b.model(model, "gtk_tree_model_get_iter")
	if ls == nil {
		return false
	}
	tp := b.path(path, "get_iter")
	if len(tp.indices) != 1 || int(tp.indices[0]) >= len(ls.rows) {
		return false
	}
	b.writeIter(ls, iter, int(tp.indices[0]))
	return true
}

func (b *Backend) TreeModelGetPath(model, iter ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	const fn = "gtk_tree_model_get_path"
	ls := b.model(model, fn)
	if ls == nil {
		return 0
	}
	row, ok := b.iterRow(ls, iter, fn)
	if !ok {
		return 0
	}
	return b.newPath([]int32{int32(row)})
}

// SelectComboItem emits "changed" on combo for the row at path of its
// model, the way the combo's popup does when the user picks a row.
func (b *Backend) SelectComboItem(combo ptr, path string) bool {
	sig, args := b.comboSelection(combo, path)
	if sig == nil {
		return false
	}
	b.discard(b.emit(combo, sig, "", args))
	return true
}

func (b *Backend) comboSelection(combo ptr, path string) (*signalDef, []gvalue) {
	b.mu.Lock()
	defer b.unlock()
	o := b.object(combo, "select")
	if o == nil || !b.isA(o.typ.id, b.t.cellRendererCombo.id) {
		return nil, nil
	}
	mv := b.propertyValue(o, b.findProperty(o.typ, "model"))
	defer b.valueClear(&mv)
	indices, ok := parsePath(path)
	if mv.p == 0 || !ok || len(indices) != 1 {
		return nil, nil
	}
	ls := b.objects[mv.p].data.(*listState)
	if int(indices[0]) >= len(ls.rows) {
		return nil, nil
	}
	iter := b.alloc(32, "GtkTreeIter")
	defer b.free(iter)
	b.writeIter(ls, iter, int(indices[0]))
	return b.lookupSignal(o.typ, "changed"), []gvalue{b.stringValue(path), b.toGValue(b.t.treeIter.id, iter)}
}

// EditText emits "edited" on a text renderer as an in-place edit does.
func (b *Backend) EditText(renderer ptr, path, text string) {
	sig, args := b.edit(renderer, path, text)
	if sig != nil {
		b.discard(b.emit(renderer, sig, "", args))
	}
}

func (b *Backend) edit(renderer ptr, path, text string) (*signalDef, []gvalue) {
	b.mu.Lock()
	defer b.unlock()
	o := b.object(renderer, "edit")
	if o == nil || !b.isA(o.typ.id, b.t.cellRendererText.id) {
		return nil, nil
	}
	return b.lookupSignal(o.typ, "edited"), []gvalue{b.stringValue(path), b.stringValue(text)}
}
