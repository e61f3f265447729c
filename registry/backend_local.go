package registry

import (
	"errors"
	"sync"
)

var ErrClosed = errors.New("registry closed")

// LocalBackend is the in-memory store behind Table: a slice of entries
// indexed by handle-1 with a free list and per-entry pin counts.
type LocalBackend struct {
	entries  []entry
	freeList []Handle
	mu       sync.RWMutex
	closed   bool
}

type entry struct {
	value  any
	kind   Kind
	pins   uint32
	valid  bool
	doomed bool
}

// NewLocalBackend creates a new in-memory backend.
func NewLocalBackend() *LocalBackend {
	return &LocalBackend{
		entries:  make([]entry, 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

// Create stores a value and returns a handle.
func (b *LocalBackend) Create(kind Kind, value any) (Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, ErrClosed
	}

	e := entry{
		kind:  kind,
		value: value,
		valid: true,
	}

	if len(b.freeList) > 0 {
		handle := b.freeList[len(b.freeList)-1]
		b.freeList = b.freeList[:len(b.freeList)-1]
		b.entries[handle-1] = e
		return handle, nil
	}

	b.entries = append(b.entries, e)
	return Handle(len(b.entries)), nil
}

func (b *LocalBackend) lookup(handle Handle) *entry {
	if handle == 0 {
		return nil
	}
	idx := handle - 1
	if int(idx) >= len(b.entries) {
		return nil
	}
	e := &b.entries[idx]
	if !e.valid {
		return nil
	}
	return e
}

// Get retrieves a value by handle. Entries awaiting a deferred drop are
// still returned.
func (b *LocalBackend) Get(handle Handle) (any, Kind, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e := b.lookup(handle)
	if e == nil {
		return nil, 0, false
	}
	return e.value, e.kind, true
}

// Pin increments the pin count and returns the value. Doomed entries
// cannot be pinned again.
func (b *LocalBackend) Pin(handle Handle) (any, Kind, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e := b.lookup(handle)
	if e == nil || e.doomed {
		return nil, 0, false
	}
	e.pins++
	return e.value, e.kind, true
}

// Unpin decrements the pin count. When it reaches zero on a doomed entry
// the entry is freed and its value returned with released set.
func (b *LocalBackend) Unpin(handle Handle) (value any, kind Kind, released bool, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e := b.lookup(handle)
	if e == nil || e.pins == 0 {
		return nil, 0, false, false
	}
	e.pins--
	if e.pins == 0 && e.doomed {
		value, kind = b.free(handle, e)
		return value, kind, true, true
	}
	return e.value, e.kind, false, true
}

// Drop removes an entry, or marks it for removal if it is pinned.
func (b *LocalBackend) Drop(handle Handle) (any, Kind, dropResult) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e := b.lookup(handle)
	if e == nil || e.doomed {
		return nil, 0, dropNone
	}
	if e.pins > 0 {
		e.doomed = true
		return e.value, e.kind, dropDeferred
	}
	value, kind := b.free(handle, e)
	return value, kind, dropNow
}

func (b *LocalBackend) free(handle Handle, e *entry) (any, Kind) {
	value, kind := e.value, e.kind
	*e = entry{}
	b.freeList = append(b.freeList, handle)
	return value, kind
}

// Close releases all entries regardless of pins.
func (b *LocalBackend) Close() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	var dropped []Event
	for i := range b.entries {
		if b.entries[i].valid {
			dropped = append(dropped, Event{
				Type:   EventDropped,
				Handle: Handle(i + 1),
				Kind:   b.entries[i].kind,
				Value:  b.entries[i].value,
			})
		}
	}

	b.entries = nil
	b.freeList = nil
	return dropped
}

// Len returns the number of live entries, including doomed ones.
func (b *LocalBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, e := range b.entries {
		if e.valid {
			count++
		}
	}
	return count
}

// Pinned reports whether handle is currently pinned.
func (b *LocalBackend) Pinned(handle Handle) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e := b.lookup(handle)
	return e != nil && e.pins > 0
}

// Each iterates over all live entries.
func (b *LocalBackend) Each(fn func(Handle, Kind, any) bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for i, e := range b.entries {
		if e.valid {
			if !fn(Handle(i+1), e.kind, e.value) {
				break
			}
		}
	}
}
