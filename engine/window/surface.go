package window

import "sync"

// Surface is an input surface a navigation controller binds to: one per visible 3D view.
type Surface interface {
	// AddListener registers a listener for one event type.
	//
	// Parameters:
	//   - t: the event type
	//   - l: the listener
	//
	// Returns:
	//   - ListenerID: handle for RemoveListener
	AddListener(t EventType, l Listener) ListenerID

	// RemoveListener unregisters a listener.
	//
	// Parameters:
	//   - id: the handle returned by AddListener
	//
	// Returns:
	//   - bool: true if a listener was removed
	RemoveListener(id ListenerID) bool

	// ListenerCount returns the number of registered listeners.
	//
	// Returns:
	//   - int: the listener count
	ListenerCount() int

	// Dispatch delivers an event to the registered listeners.
	//
	// Parameters:
	//   - e: the event
	Dispatch(e *Event)

	// Width returns the surface width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the surface height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// HeadlessSurface is a Surface without a platform window.
// Events are injected with Dispatch; used by tests, script replay and remote hosts.
type HeadlessSurface interface {
	Surface

	// SetSize changes the surface dimensions.
	//
	// Parameters:
	//   - width, height: new size in pixels
	SetSize(width, height int)
}

type headlessSurface struct {
	dispatcher

	sizeMu sync.RWMutex
	width  int
	height int
}

var _ HeadlessSurface = &headlessSurface{}

// NewHeadlessSurface creates a surface of the given size.
//
// Parameters:
//   - width, height: size in pixels
//
// Returns:
//   - HeadlessSurface: the surface
func NewHeadlessSurface(width, height int) HeadlessSurface {
	return &headlessSurface{width: width, height: height}
}

func (s *headlessSurface) SetSize(width, height int) {
	s.sizeMu.Lock()
	defer s.sizeMu.Unlock()
	s.width = width
	s.height = height
}

func (s *headlessSurface) Width() int {
	s.sizeMu.RLock()
	defer s.sizeMu.RUnlock()
	return s.width
}

func (s *headlessSurface) Height() int {
	s.sizeMu.RLock()
	defer s.sizeMu.RUnlock()
	return s.height
}
