package registry

import (
	"sync"
)

// Table is a typed handle table with observer support.
type Table[T any] struct {
	backend   *LocalBackend
	observers []Observer
	obsMu     sync.RWMutex
}

// NewTable creates an empty table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{
		backend: NewLocalBackend(),
	}
}

// Insert adds a value and returns its handle, or 0 once the table is closed.
func (t *Table[T]) Insert(kind Kind, value T) Handle {
	handle, err := t.backend.Create(kind, value)
	if err != nil {
		return 0
	}

	t.notify(Event{
		Type:   EventCreated,
		Handle: handle,
		Kind:   kind,
		Value:  value,
	})

	return handle
}

// Get retrieves a value by handle.
func (t *Table[T]) Get(handle Handle) (T, bool) {
	v, _, ok := t.backend.Get(handle)
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// Pin retrieves a value and keeps it alive until the matching Unpin.
func (t *Table[T]) Pin(handle Handle) (T, bool) {
	v, kind, ok := t.backend.Pin(handle)
	if !ok {
		var zero T
		return zero, false
	}
	t.notify(Event{Type: EventPinned, Handle: handle, Kind: kind, Value: v})
	return v.(T), true
}

// Unpin ends a Pin. It completes a Remove that arrived while pinned.
func (t *Table[T]) Unpin(handle Handle) {
	v, kind, released, ok := t.backend.Unpin(handle)
	if !ok {
		return
	}
	t.notify(Event{Type: EventUnpinned, Handle: handle, Kind: kind, Value: v})
	if released {
		t.dropped(handle, kind, v)
	}
}

// Remove drops an entry. A pinned entry is dropped by its last Unpin.
// Returns false if the handle is unknown or already removed.
func (t *Table[T]) Remove(handle Handle) bool {
	v, kind, res := t.backend.Drop(handle)
	switch res {
	case dropNow:
		t.dropped(handle, kind, v)
	case dropDeferred:
		t.notify(Event{Type: EventDropDeferred, Handle: handle, Kind: kind, Value: v})
	default:
		return false
	}
	return true
}

func (t *Table[T]) dropped(handle Handle, kind Kind, v any) {
	if d, ok := v.(Dropper); ok {
		d.Drop()
	}
	t.notify(Event{Type: EventDropped, Handle: handle, Kind: kind, Value: v})
}

// Pinned reports whether handle is inside a Pin/Unpin pair.
func (t *Table[T]) Pinned(handle Handle) bool {
	return t.backend.Pinned(handle)
}

// Subscribe adds an observer for lifecycle events.
func (t *Table[T]) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Len returns the number of live entries.
func (t *Table[T]) Len() int {
	return t.backend.Len()
}

// Each iterates over all live entries.
func (t *Table[T]) Each(fn func(Handle, T) bool) {
	t.backend.Each(func(h Handle, _ Kind, v any) bool {
		return fn(h, v.(T))
	})
}

// Close drops every entry and stops accepting inserts.
func (t *Table[T]) Close() error {
	for _, e := range t.backend.Close() {
		t.dropped(e.Handle, e.Kind, e.Value)
	}
	return nil
}

func (t *Table[T]) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnRegistryEvent(e)
	}
}
