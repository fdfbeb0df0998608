package window

import "sync"

// EventType identifies the kind of input event a listener is registered for.
type EventType int

const (
	EventPointerDown EventType = iota
	EventPointerUp
	EventPointerMove
	EventContextMenu
	EventKeyDown
	EventKeyUp
)

func (t EventType) String() string {
	switch t {
	case EventPointerDown:
		return "pointerdown"
	case EventPointerUp:
		return "pointerup"
	case EventPointerMove:
		return "pointermove"
	case EventContextMenu:
		return "contextmenu"
	case EventKeyDown:
		return "keydown"
	case EventKeyUp:
		return "keyup"
	default:
		return "unknown"
	}
}

// Button identifies a pointer button using DOM "which" numbering.
type Button int

const (
	ButtonNone      Button = 0
	ButtonPrimary   Button = 1
	ButtonMiddle    Button = 2
	ButtonSecondary Button = 3
)

// Event is a single input event delivered to surface listeners.
type Event struct {
	// Type is the kind of event.
	Type EventType
	// Button is the pointer button for pointer down/up events.
	Button Button
	// X, Y is the pointer position in surface pixels (page coordinates for browser hosts).
	X, Y float64
	// Key is the virtual key code for key events (see common.Key*).
	Key int

	stopped bool
}

// Stop suppresses the host's default handling of the event (context menu, text
// selection, page scroll) and stops its propagation.
func (e *Event) Stop() {
	e.stopped = true
}

// Stopped reports whether a listener suppressed the event.
func (e *Event) Stopped() bool {
	return e.stopped
}

// Listener receives dispatched events.
type Listener func(e *Event)

// ListenerID identifies a registered listener for removal.
type ListenerID uint64

type listenerEntry struct {
	id       ListenerID
	listener Listener
}

// dispatcher is the listener registry shared by all Surface implementations.
type dispatcher struct {
	mu        sync.Mutex
	nextID    ListenerID
	listeners map[EventType][]listenerEntry
}

func (d *dispatcher) AddListener(t EventType, l Listener) ListenerID {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.listeners == nil {
		d.listeners = make(map[EventType][]listenerEntry)
	}
	d.nextID++
	d.listeners[t] = append(d.listeners[t], listenerEntry{id: d.nextID, listener: l})
	return d.nextID
}

func (d *dispatcher) RemoveListener(id ListenerID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for t, entries := range d.listeners {
		for i, e := range entries {
			if e.id == id {
				d.listeners[t] = append(entries[:i:i], entries[i+1:]...)
				return true
			}
		}
	}
	return false
}

func (d *dispatcher) ListenerCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, entries := range d.listeners {
		n += len(entries)
	}
	return n
}

// Dispatch delivers e to the listeners registered for its type, in registration order.
// Listeners run without the registry lock held so they may add or remove listeners.
func (d *dispatcher) Dispatch(e *Event) {
	if e == nil {
		return
	}
	d.mu.Lock()
	entries := make([]listenerEntry, len(d.listeners[e.Type]))
	copy(entries, d.listeners[e.Type])
	d.mu.Unlock()

	for _, entry := range entries {
		entry.listener(e)
	}
}
