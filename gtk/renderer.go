package gtk

import (
	"github.com/wippyai/gobject-bridge/errors"
	"github.com/wippyai/gobject-bridge/glib"
)

// CellRenderer is the base class of the renderers.
type CellRenderer struct{ glib.Object }

var _ = glib.RegisterObject(glib.ObjectInfo[*CellRenderer]{
	Name:           "GtkCellRenderer",
	GetType:        "gtk_cell_renderer_get_type",
	MainThreadOnly: true,
	Wrap:           func(o glib.Object) *CellRenderer { return &CellRenderer{o} },
})

// IsVisible reports whether the cell is drawn.
func (r *CellRenderer) IsVisible() bool {
	return glib.MustProperty[bool](r, "visible")
}

// SetVisible shows or hides the cell.
func (r *CellRenderer) SetVisible(visible bool) {
	glib.MustSetProperty(r, "visible", visible)
}

// IsSensitive reports whether the cell is drawn as sensitive.
func (r *CellRenderer) IsSensitive() bool {
	return glib.MustProperty[bool](r, "sensitive")
}

// SetSensitive sets the sensitive property.
func (r *CellRenderer) SetSensitive(sensitive bool) {
	glib.MustSetProperty(r, "sensitive", sensitive)
}

// Xpad is the horizontal padding in pixels.
func (r *CellRenderer) Xpad() uint32 {
	return glib.MustProperty[uint32](r, "xpad")
}

// SetXpad sets the horizontal padding.
func (r *CellRenderer) SetXpad(xpad uint32) {
	glib.MustSetProperty(r, "xpad", xpad)
}

// CellRendererText renders, and optionally edits, a line of text.
type CellRendererText struct{ CellRenderer }

var _ = glib.RegisterObject(glib.ObjectInfo[*CellRendererText]{
	Name:           "GtkCellRendererText",
	GetType:        "gtk_cell_renderer_text_get_type",
	MainThreadOnly: true,
	Wrap:           func(o glib.Object) *CellRendererText { return &CellRendererText{CellRenderer{o}} },
})

// NewCellRendererText creates a renderer. The floating reference the
// constructor returns is sunk, so the caller owns the result.
func NewCellRendererText(rt *glib.Runtime) *CellRendererText {
	a := mainThread(rt, "GtkCellRendererText")
	return glib.TakeFloating[*CellRendererText](rt, a.CellRendererTextNew())
}

// Text returns the rendered text, or false when none is set.
func (r *CellRendererText) Text() (string, bool) {
	v, err := r.Property("text")
	if err != nil {
		panic(err)
	}
	s, ok := v.(string)
	return s, ok
}

// SetText sets the rendered text.
func (r *CellRendererText) SetText(text string) {
	glib.MustSetProperty(r, "text", text)
}

// UnsetText clears the text property.
func (r *CellRendererText) UnsetText() {
	glib.MustSetProperty(r, "text", nil)
}

// IsEditable reports whether the user may edit the text.
func (r *CellRendererText) IsEditable() bool {
	return glib.MustProperty[bool](r, "editable")
}

// SetEditable allows or forbids editing.
func (r *CellRendererText) SetEditable(editable bool) {
	glib.MustSetProperty(r, "editable", editable)
}

// pathArg converts a signal's path string into an owned TreePath.
func pathArg(a *glib.Args, i int) (*TreePath, bool) {
	return NewTreePathFromString(a.Runtime(), a.String(i))
}

// ConnectEdited runs fn after the user edits the cell of the row at
// path. path is released when fn returns; Clone it to keep it. A
// malformed path from the native side reaches fn as nil.
func (r *CellRendererText) ConnectEdited(fn func(r *CellRendererText, path *TreePath, newText string)) glib.SignalHandlerID {
	return glib.MustConnect(r, glib.Signal{Name: "edited"}, func(a *glib.Args, _ *glib.Return) {
		path, ok := pathArg(a, 1)
		if ok {
			defer path.Release()
		}
		fn(glib.ArgObject[*CellRendererText](a, 0), path, a.String(2))
	})
}

// CellRendererCombo edits a cell by picking from the rows of a model,
// or by typing when HasEntry is set.
type CellRendererCombo struct{ CellRendererText }

var _ = glib.RegisterObject(glib.ObjectInfo[*CellRendererCombo]{
	Name:           "GtkCellRendererCombo",
	GetType:        "gtk_cell_renderer_combo_get_type",
	MainThreadOnly: true,
	Wrap: func(o glib.Object) *CellRendererCombo {
		return &CellRendererCombo{CellRendererText{CellRenderer{o}}}
	},
})

// NewCellRendererCombo creates a combo renderer owned by the caller.
func NewCellRendererCombo(rt *glib.Runtime) *CellRendererCombo {
	a := mainThread(rt, "GtkCellRendererCombo")
	return glib.TakeFloating[*CellRendererCombo](rt, a.CellRendererComboNew())
}

// HasEntry reports whether the user may type values that are not in
// the model.
func (c *CellRendererCombo) HasEntry() bool {
	return glib.MustProperty[bool](c, "has-entry")
}

// SetHasEntry allows or forbids typed values.
func (c *CellRendererCombo) SetHasEntry(hasEntry bool) {
	glib.MustSetProperty(c, "has-entry", hasEntry)
}

// Model returns the model holding the choices, or false when none is set.
func (c *CellRendererCombo) Model() (*TreeModel, bool) {
	m := glib.MustProperty[*TreeModel](c, "model")
	return m, m != nil
}

// SetModel sets the model holding the choices; nil unsets it. The combo
// keeps its own reference.
func (c *CellRendererCombo) SetModel(model Model) {
	glib.MustSetProperty(c, "model", model)
}

// TextColumn is the model column the choices are read from, -1 when unset.
func (c *CellRendererCombo) TextColumn() int32 {
	return glib.MustProperty[int32](c, "text-column")
}

// SetTextColumn sets the model column read for choices. Columns below
// -1 are out of range.
func (c *CellRendererCombo) SetTextColumn(column int32) error {
	if column < -1 {
		return errors.OutOfRange(errors.PhaseProperty, []string{"GtkCellRendererCombo", "text-column"}, column)
	}
	glib.MustSetProperty(c, "text-column", column)
	return nil
}

// ConnectChanged runs fn when the user picks a row. path is released
// when fn returns and iter is only valid during fn; Clone either to
// keep it.
func (c *CellRendererCombo) ConnectChanged(fn func(c *CellRendererCombo, path *TreePath, iter *TreeIter)) glib.SignalHandlerID {
	return glib.MustConnect(c, glib.Signal{Name: "changed"}, func(a *glib.Args, _ *glib.Return) {
		path, ok := pathArg(a, 1)
		if ok {
			defer path.Release()
		}
		fn(glib.ArgObject[*CellRendererCombo](a, 0), path, glib.ArgBoxed[*TreeIter](a, 2))
	})
}
