package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeadlessSurface_Size(t *testing.T) {
	s := NewHeadlessSurface(640, 480)
	assert.Equal(t, 640, s.Width())
	assert.Equal(t, 480, s.Height())

	s.SetSize(320, 200)
	assert.Equal(t, 320, s.Width())
	assert.Equal(t, 200, s.Height())
}

func TestDispatch_ByType(t *testing.T) {
	s := NewHeadlessSurface(10, 10)
	var downs, moves int
	s.AddListener(EventPointerDown, func(e *Event) { downs++ })
	s.AddListener(EventPointerMove, func(e *Event) { moves++ })

	s.Dispatch(&Event{Type: EventPointerDown})
	s.Dispatch(&Event{Type: EventPointerMove})
	s.Dispatch(&Event{Type: EventPointerMove})
	s.Dispatch(&Event{Type: EventKeyDown})
	s.Dispatch(nil)

	assert.Equal(t, 1, downs)
	assert.Equal(t, 2, moves)
}

func TestDispatch_RegistrationOrderAndStop(t *testing.T) {
	s := NewHeadlessSurface(10, 10)
	var order []int
	s.AddListener(EventKeyDown, func(e *Event) { order = append(order, 1) })
	s.AddListener(EventKeyDown, func(e *Event) {
		order = append(order, 2)
		e.Stop()
	})

	e := &Event{Type: EventKeyDown}
	s.Dispatch(e)

	assert.Equal(t, []int{1, 2}, order)
	assert.True(t, e.Stopped())
}

func TestRemoveListener(t *testing.T) {
	s := NewHeadlessSurface(10, 10)
	calls := 0
	id := s.AddListener(EventPointerUp, func(e *Event) { calls++ })
	assert.Equal(t, 1, s.ListenerCount())

	assert.True(t, s.RemoveListener(id))
	assert.False(t, s.RemoveListener(id))
	assert.Equal(t, 0, s.ListenerCount())

	s.Dispatch(&Event{Type: EventPointerUp})
	assert.Equal(t, 0, calls)
}

func TestDispatch_ListenerMayRemoveItself(t *testing.T) {
	s := NewHeadlessSurface(10, 10)
	calls := 0
	var id ListenerID
	id = s.AddListener(EventPointerMove, func(e *Event) {
		calls++
		s.RemoveListener(id)
	})

	s.Dispatch(&Event{Type: EventPointerMove})
	s.Dispatch(&Event{Type: EventPointerMove})
	assert.Equal(t, 1, calls)
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "pointerdown", EventPointerDown.String())
	assert.Equal(t, "keyup", EventKeyUp.String())
	assert.Equal(t, "unknown", EventType(99).String())
}
