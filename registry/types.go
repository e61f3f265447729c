package registry

// Handle is an opaque reference to an entry in a table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Kind distinguishes entry categories sharing one table.
type Kind uint32

const (
	KindSignal Kind = iota + 1
	KindSource
	KindOnce
	KindDispatcher
)

func (k Kind) String() string {
	switch k {
	case KindSignal:
		return "signal"
	case KindSource:
		return "source"
	case KindOnce:
		return "once"
	case KindDispatcher:
		return "dispatcher"
	default:
		return "unknown"
	}
}

// EventType identifies a lifecycle transition.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
	EventPinned
	EventUnpinned
	EventDropDeferred
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventDropped:
		return "dropped"
	case EventPinned:
		return "pinned"
	case EventUnpinned:
		return "unpinned"
	case EventDropDeferred:
		return "drop_deferred"
	default:
		return "unknown"
	}
}

// Event represents an entry lifecycle event.
type Event struct {
	Value  any
	Handle Handle
	Kind   Kind
	Type   EventType
}

// Observer receives notifications about entry lifecycle events.
type Observer interface {
	OnRegistryEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// OnRegistryEvent calls f(e).
func (f ObserverFunc) OnRegistryEvent(e Event) {
	f(e)
}

// Dropper is optionally implemented by values that need cleanup.
type Dropper interface {
	Drop()
}

// dropResult describes what Drop did with an entry.
type dropResult uint8

const (
	dropNone dropResult = iota
	dropNow
	dropDeferred
)
