package gtk

import (
	gobridge "github.com/wippyai/gobject-bridge"
	"github.com/wippyai/gobject-bridge/errors"
	"github.com/wippyai/gobject-bridge/glib"
)

type ptr = gobridge.Ptr

// ABI is the GTK 3 function table used by the cell renderer and tree
// model wrappers.
type ABI interface {
	gobridge.ABI

	InitCheck() bool

	CellRendererTextNew() ptr
	CellRendererComboNew() ptr

	ListStoreNewv(nColumns int32, types ptr) ptr
	ListStoreAppend(store, iter ptr)
	ListStoreSetValue(store, iter ptr, column int32, value ptr)
	ListStoreClear(store ptr)

	TreeModelGetNColumns(model ptr) int32
	TreeModelGetColumnType(model ptr, column int32) gobridge.GType
	TreeModelGetValue(model, iter ptr, column int32, value ptr)
	TreeModelIterNChildren(model, iter ptr) int32
	TreeModelGetIter(model, iter, path ptr) bool
	TreeModelGetPath(model, iter ptr) ptr

	TreePathNewFromString(path ptr) ptr
	TreePathToString(path ptr) ptr
	TreePathGetDepth(path ptr) int32
	TreePathGetIndices(path ptr) ptr
	TreePathCopy(path ptr) ptr
	TreePathFree(path ptr)

	TreeIterCopy(iter ptr) ptr
	TreeIterFree(iter ptr)
}

// TreeIterSize is sizeof(GtkTreeIter).
const TreeIterSize = 32

func abiOf(rt *glib.Runtime) ABI {
	a, ok := rt.ABI().(ABI)
	if !ok {
		errors.Panic(errors.Unsupported(errors.PhaseLoad, "native backend does not provide GTK"))
	}
	return a
}
