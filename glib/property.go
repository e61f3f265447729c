package glib

import (
	gobridge "github.com/wippyai/gobject-bridge"
	"github.com/wippyai/gobject-bridge/errors"
)

// ParamSpec describes a property as the native class declares it.
type ParamSpec struct {
	Name      string
	ValueType gobridge.GType
	Flags     gobridge.ParamFlags
}

// Readable reports whether the property can be read.
func (p ParamSpec) Readable() bool {
	return p.Flags&gobridge.ParamReadable != 0
}

// Writable reports whether the property can be set after construction.
func (p ParamSpec) Writable() bool {
	return p.Flags&gobridge.ParamWritable != 0 && p.Flags&gobridge.ParamConstructOnly == 0
}

func (o Object) findProperty(st *Stash, name string) (gobridge.Ptr, ParamSpec, bool) {
	rt := o.h.rt
	obj := o.h.use()
	cname := st.CString(name)
	pspec := rt.abi.ObjectFindProperty(obj, cname)
	if pspec == 0 {
		return cname, ParamSpec{}, false
	}
	return cname, ParamSpec{
		Name:      GoStringNone(rt, rt.abi.ParamSpecName(pspec)),
		ValueType: rt.abi.ParamSpecValueType(pspec),
		Flags:     rt.abi.ParamSpecFlags(pspec),
	}, true
}

// FindProperty looks up a property of the instance's class.
func (o Object) FindProperty(name string) (ParamSpec, bool) {
	st := NewStash(o.h.rt)
	defer st.Free()
	_, spec, ok := o.findProperty(st, name)
	return spec, ok
}

// Property reads a property into its Go form (see Value.Get).
func (o Object) Property(name string) (any, error) {
	v, err := o.propertyValue(name)
	if err != nil {
		return nil, err
	}
	defer v.Free()
	return v.Get()
}

func (o Object) propertyValue(name string) (*Value, error) {
	rt := o.h.rt
	st := NewStash(rt)
	defer st.Free()

	cname, spec, ok := o.findProperty(st, name)
	if !ok {
		return nil, o.propertyError(errors.KindNotFound, name, "no such property")
	}
	if !spec.Readable() {
		return nil, o.propertyError(errors.KindNotReadable, name, "property is not readable")
	}
	v := NewValue(rt, spec.ValueType)
	rt.abi.ObjectGetProperty(o.h.use(), cname, v.Native())
	return v, nil
}

// SetProperty converts value to the property's type and sets it.
// Unknown properties, properties that cannot be written after
// construction and values of the wrong type are reported as errors;
// the native property is left unchanged.
func (o Object) SetProperty(name string, value any) error {
	rt := o.h.rt
	st := NewStash(rt)
	defer st.Free()

	cname, spec, ok := o.findProperty(st, name)
	if !ok {
		return o.propertyError(errors.KindNotFound, name, "no such property")
	}
	if !spec.Writable() {
		return o.propertyError(errors.KindReadOnly, name, "property is not writable")
	}
	v := NewValue(rt, spec.ValueType)
	defer v.Free()
	if err := v.Set(value); err != nil {
		if e, ok := err.(*errors.Error); ok {
			e.Phase = errors.PhaseProperty
			e.Path = []string{o.TypeName(), name}
		}
		return err
	}
	rt.abi.ObjectSetProperty(o.h.use(), cname, v.Native())
	return nil
}

func (o Object) propertyError(kind errors.Kind, name, detail string) error {
	return errors.New(errors.PhaseProperty, kind).
		Path(o.TypeName(), name).
		Detail("%s", detail).
		Build()
}

// Property reads a property of w as T. Object-valued properties are
// checked against T's native type.
func Property[T any](w Wrapper, name string) (T, error) {
	var zero T
	o, err := asObject(w)
	if err != nil {
		return zero, err
	}
	v, err := o.propertyValue(name)
	if err != nil {
		return zero, err
	}
	defer v.Free()
	out, err := ValueAs[T](v)
	if e, ok := err.(*errors.Error); ok {
		e.Phase = errors.PhaseProperty
		e.Path = []string{o.TypeName(), name}
	}
	return out, err
}

// SetProperty sets a property of w.
func SetProperty(w Wrapper, name string, value any) error {
	o, err := asObject(w)
	if err != nil {
		return err
	}
	return o.SetProperty(name, value)
}

// MustProperty is Property for properties a wrapper declares itself;
// failure is a programmer error.
func MustProperty[T any](w Wrapper, name string) T {
	v, err := Property[T](w, name)
	if err != nil {
		panic(err)
	}
	return v
}

// MustSetProperty is SetProperty for properties a wrapper declares itself.
func MustSetProperty(w Wrapper, name string, value any) {
	if err := SetProperty(w, name, value); err != nil {
		panic(err)
	}
}

func asObject(w Wrapper) (Object, error) {
	h := w.cell()
	if h == nil || h.info.category != categoryObject {
		return Object{}, errors.Unsupported(errors.PhaseProperty, "properties require an object wrapper")
	}
	return Object{ref{h}}, nil
}
