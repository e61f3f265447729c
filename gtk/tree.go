package gtk

import (
	"encoding/binary"
	"strconv"
	"strings"

	gobridge "github.com/wippyai/gobject-bridge"
	"github.com/wippyai/gobject-bridge/errors"
	"github.com/wippyai/gobject-bridge/glib"
)

// TreePath addresses a row as a list of indices, one per tree level.
type TreePath struct{ glib.Boxed }

var _ = glib.RegisterBoxed(glib.BoxedInfo[*TreePath]{
	Name:    "GtkTreePath",
	GetType: "gtk_tree_path_get_type",
	Copy:    func(rt *glib.Runtime, p gobridge.Ptr) gobridge.Ptr { return abiOf(rt).TreePathCopy(p) },
	Free:    func(rt *glib.Runtime, p gobridge.Ptr) { abiOf(rt).TreePathFree(p) },
	Wrap:    func(b glib.Boxed) *TreePath { return &TreePath{b} },
})

// NewTreePathFromString parses a path such as "3" or "1:0:2". It
// returns false for malformed paths.
func NewTreePathFromString(rt *glib.Runtime, path string) (*TreePath, bool) {
	st := glib.NewStash(rt)
	defer st.Free()
	p := abiOf(rt).TreePathNewFromString(st.CString(path))
	return glib.TakeOpt[*TreePath](rt, glib.Nullable(p))
}

// NewTreePath builds a path from row indices.
func NewTreePath(rt *glib.Runtime, indices ...int32) (*TreePath, bool) {
	parts := make([]string, len(indices))
	for i, x := range indices {
		if x < 0 {
			return nil, false
		}
		parts[i] = strconv.Itoa(int(x))
	}
	return NewTreePathFromString(rt, strings.Join(parts, ":"))
}

// String returns the path in its colon separated form, "" for an empty path.
func (p *TreePath) String() string {
	s, _ := glib.OptStringFull(p.Runtime(), glib.Nullable(abiOf(p.Runtime()).TreePathToString(p.Native())))
	return s
}

// Depth returns the number of indices.
func (p *TreePath) Depth() int {
	return int(abiOf(p.Runtime()).TreePathGetDepth(p.Native()))
}

// Indices copies the row indices.
func (p *TreePath) Indices() []int32 {
	a := abiOf(p.Runtime())
	n := p.Depth()
	out := make([]int32, n)
	if n == 0 {
		return out
	}
	buf := a.Read(a.TreePathGetIndices(p.Native()), uintptr(4*n))
	for i := range out {
		out[i] = int32(binary.NativeEndian.Uint32(buf[4*i:]))
	}
	return out
}

// TreeIter points at a row of one model. It stays valid until the model
// changes in a way that invalidates iterators, such as ListStore.Clear.
type TreeIter struct{ glib.Boxed }

var _ = glib.RegisterBoxed(glib.BoxedInfo[*TreeIter]{
	Name:    "GtkTreeIter",
	GetType: "gtk_tree_iter_get_type",
	Copy:    func(rt *glib.Runtime, p gobridge.Ptr) gobridge.Ptr { return abiOf(rt).TreeIterCopy(p) },
	Free:    func(rt *glib.Runtime, p gobridge.Ptr) { abiOf(rt).TreeIterFree(p) },
	Wrap:    func(b glib.Boxed) *TreeIter { return &TreeIter{b} },
})

// iterOut runs fill on a stack-style GtkTreeIter and, when it reports
// success, returns an owned copy.
func iterOut(rt *glib.Runtime, fill func(iter gobridge.Ptr) bool) (*TreeIter, bool) {
	st := glib.NewStash(rt)
	defer st.Free()
	raw := st.Alloc(TreeIterSize)
	if !fill(raw) {
		return nil, false
	}
	return glib.Take[*TreeIter](rt, abiOf(rt).TreeIterCopy(raw)), true
}

// Model is implemented by every tree model wrapper.
type Model interface {
	glib.Wrapper
	treeModel() *TreeModel
}

// TreeModel is the GtkTreeModel interface of a model object.
type TreeModel struct{ glib.Object }

var _ = glib.RegisterObject(glib.ObjectInfo[*TreeModel]{
	Name:           "GtkTreeModel",
	GetType:        "gtk_tree_model_get_type",
	MainThreadOnly: true,
	Wrap:           func(o glib.Object) *TreeModel { return &TreeModel{o} },
})

func (m *TreeModel) treeModel() *TreeModel { return m }

func (m *TreeModel) abi() ABI { return abiOf(m.Runtime()) }

// NColumns returns the number of columns.
func (m *TreeModel) NColumns() int {
	return int(m.abi().TreeModelGetNColumns(m.Native()))
}

// ColumnType returns the GType stored in column, 0 when there is no
// such column.
func (m *TreeModel) ColumnType(column int) gobridge.GType {
	if column < 0 || column >= m.NColumns() {
		return 0
	}
	return m.abi().TreeModelGetColumnType(m.Native(), int32(column))
}

func (m *TreeModel) checkColumn(column int) error {
	if column < 0 || column >= m.NColumns() {
		return errors.OutOfRange(errors.PhaseValue, []string{m.TypeName(), "column"}, column)
	}
	return nil
}

// IterNChildren returns the number of children of iter, or of the top
// level when iter is nil.
func (m *TreeModel) IterNChildren(iter *TreeIter) int {
	var it gobridge.Ptr
	if iter != nil {
		it = iter.Native()
	}
	return int(m.abi().TreeModelIterNChildren(m.Native(), it))
}

// Iter returns an iterator for path, or false when no row has that path.
func (m *TreeModel) Iter(path *TreePath) (*TreeIter, bool) {
	return iterOut(m.Runtime(), func(iter gobridge.Ptr) bool {
		return m.abi().TreeModelGetIter(m.Native(), iter, path.Native())
	})
}

// IterFromString is Iter for a path in string form.
func (m *TreeModel) IterFromString(path string) (*TreeIter, bool) {
	p, ok := NewTreePathFromString(m.Runtime(), path)
	if !ok {
		return nil, false
	}
	defer p.Release()
	return m.Iter(p)
}

// Path returns the path of the row iter points at.
func (m *TreeModel) Path(iter *TreeIter) *TreePath {
	return glib.Take[*TreePath](m.Runtime(), m.abi().TreeModelGetPath(m.Native(), iter.Native()))
}

// Value reads one cell in its Go form (see glib.Value.Get).
func (m *TreeModel) Value(iter *TreeIter, column int) (any, error) {
	if err := m.checkColumn(column); err != nil {
		return nil, err
	}
	v := glib.NewValueSlot(m.Runtime())
	defer v.Free()
	m.abi().TreeModelGetValue(m.Native(), iter.Native(), int32(column), v.Native())
	return v.Get()
}

// ListStore is a flat list model.
type ListStore struct{ TreeModel }

var _ = glib.RegisterObject(glib.ObjectInfo[*ListStore]{
	Name:           "GtkListStore",
	GetType:        "gtk_list_store_get_type",
	MainThreadOnly: true,
	Wrap:           func(o glib.Object) *ListStore { return &ListStore{TreeModel{o}} },
})

// NewListStore creates a list with one column per type.
func NewListStore(rt *glib.Runtime, columns ...gobridge.GType) (*ListStore, error) {
	a := mainThread(rt, "GtkListStore")
	if len(columns) == 0 {
		return nil, errors.InvalidInput(errors.PhaseValue, "a list store needs at least one column")
	}
	buf := make([]byte, 0, 8*len(columns))
	for i, t := range columns {
		if t == 0 || a.TypeName(t) == 0 {
			return nil, errors.New(errors.PhaseValue, errors.KindInvalidInput).
				Path("GtkListStore", strconv.Itoa(i)).
				Detail("invalid column type %#x", uintptr(t)).
				Build()
		}
		buf = binary.NativeEndian.AppendUint64(buf, uint64(t))
	}
	st := glib.NewStash(rt)
	defer st.Free()
	return glib.Take[*ListStore](rt, a.ListStoreNewv(int32(len(columns)), st.Bytes(buf))), nil
}

// Append adds an empty row at the end.
func (s *ListStore) Append() *TreeIter {
	it, _ := iterOut(s.Runtime(), func(iter gobridge.Ptr) bool {
		s.abi().ListStoreAppend(s.Native(), iter)
		return true
	})
	return it
}

// SetValue stores value in one cell, converting it to the column type.
func (s *ListStore) SetValue(iter *TreeIter, column int, value any) error {
	if err := s.checkColumn(column); err != nil {
		return err
	}
	v := glib.NewValue(s.Runtime(), s.ColumnType(column))
	defer v.Free()
	if err := v.Set(value); err != nil {
		if e, ok := err.(*errors.Error); ok {
			e.Path = []string{s.TypeName(), strconv.Itoa(column)}
		}
		return err
	}
	s.abi().ListStoreSetValue(s.Native(), iter.Native(), int32(column), v.Native())
	return nil
}

// AppendRow appends a row and fills its first len(values) columns. On
// error the row stays, with the cells before the failing one set.
func (s *ListStore) AppendRow(values ...any) (*TreeIter, error) {
	if len(values) > s.NColumns() {
		return nil, errors.OutOfRange(errors.PhaseValue, []string{s.TypeName(), "column"}, len(values)-1)
	}
	iter := s.Append()
	for i, v := range values {
		if err := s.SetValue(iter, i, v); err != nil {
			iter.Release()
			return nil, err
		}
	}
	return iter, nil
}

// Clear removes every row. Iterators obtained before are invalid.
func (s *ListStore) Clear() {
	s.abi().ListStoreClear(s.Native())
}
