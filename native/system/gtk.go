package system

import (
	gobridge "github.com/wippyai/gobject-bridge"
	"github.com/wippyai/gobject-bridge/gtk"
)

var _ gtk.ABI = (*Backend)(nil)

// InitCheck reports false without GTK. The other GTK functions must
// not be called unless it succeeded.
func (b *Backend) InitCheck() bool {
	if !b.hasGTK {
		return false
	}
	return b.gtk.InitCheck(0, 0)
}

func (b *Backend) CellRendererTextNew() ptr  { return b.gtk.CellRendererTextNew() }
func (b *Backend) CellRendererComboNew() ptr { return b.gtk.CellRendererComboNew() }

func (b *Backend) ListStoreNewv(n int32, types ptr) ptr { return b.gtk.ListStoreNewv(n, types) }
func (b *Backend) ListStoreAppend(store, iter ptr)      { b.gtk.ListStoreAppend(store, iter) }
func (b *Backend) ListStoreClear(store ptr)             { b.gtk.ListStoreClear(store) }

func (b *Backend) ListStoreSetValue(store, iter ptr, column int32, value ptr) {
	b.gtk.ListStoreSetValue(store, iter, column, value)
}

func (b *Backend) TreeModelGetNColumns(m ptr) int32 { return b.gtk.TreeModelGetNColumns(m) }

func (b *Backend) TreeModelGetColumnType(m ptr, column int32) gobridge.GType {
	return b.gtk.TreeModelGetColumnType(m, column)
}

func (b *Backend) TreeModelGetValue(m, iter ptr, column int32, value ptr) {
	b.gtk.TreeModelGetValue(m, iter, column, value)
}

func (b *Backend) TreeModelIterNChildren(m, iter ptr) int32 {
	return b.gtk.TreeModelIterNChildren(m, iter)
}
func (b *Backend) TreeModelGetIter(m, iter, path ptr) bool {
	return b.gtk.TreeModelGetIter(m, iter, path)
}
func (b *Backend) TreeModelGetPath(m, iter ptr) ptr { return b.gtk.TreeModelGetPath(m, iter) }

func (b *Backend) TreePathNewFromString(s ptr) ptr { return b.gtk.TreePathNewFromString(s) }
func (b *Backend) TreePathToString(p ptr) ptr      { return b.gtk.TreePathToString(p) }
func (b *Backend) TreePathGetDepth(p ptr) int32    { return b.gtk.TreePathGetDepth(p) }
func (b *Backend) TreePathGetIndices(p ptr) ptr    { return b.gtk.TreePathGetIndices(p) }
func (b *Backend) TreePathCopy(p ptr) ptr          { return b.gtk.TreePathCopy(p) }
func (b *Backend) TreePathFree(p ptr)              { b.gtk.TreePathFree(p) }

func (b *Backend) TreeIterCopy(it ptr) ptr { return b.gtk.TreeIterCopy(it) }
func (b *Backend) TreeIterFree(it ptr)     { b.gtk.TreeIterFree(it) }
