package remote

import (
	"fmt"
	"time"

	"github.com/ksons/xml3d-blender-exporter/common"
	"github.com/ksons/xml3d-blender-exporter/engine/navigation"
	"github.com/ksons/xml3d-blender-exporter/engine/view"
	"github.com/ksons/xml3d-blender-exporter/engine/window"
	"github.com/ksons/xml3d-blender-exporter/internal/log"
)

// SessionInfo is the public snapshot of a session returned by the REST API.
type SessionInfo struct {
	ID          string    `json:"id"`
	Created     time.Time `json:"created"`
	Mode        string    `json:"mode"`
	Attached    bool      `json:"attached"`
	View        string    `json:"view"`
	Position    string    `json:"position"`
	Orientation string    `json:"orientation"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
}

// Session mirrors one preview page: its canvas, its view element and the
// navigation controller driving them.
type Session struct {
	id      string
	created time.Time

	surface    window.HeadlessSurface
	view       view.View
	host       *remoteHost
	controller navigation.Controller
}

// newSession builds the server side of a page from its hello message. The
// page's own <navigation> element wins over the server default descriptor.
// Attribute writes and redraw requests are delivered through send.
func newSession(id string, hello InboundMessage, defaults navigation.Descriptor, send func(OutboundMessage)) (*Session, error) {
	if hello.View == nil || hello.View.ID == "" {
		return nil, fmt.Errorf("session %s: %w", id, navigation.ErrNoView)
	}

	opts := []view.NodeOption{
		view.WithChangeCallback(func(name, value string) {
			send(OutboundMessage{Type: MsgAttribute, Name: name, Value: value})
		}),
	}
	if hello.View.Position != "" {
		if p, err := common.ParseVec3(hello.View.Position); err == nil {
			opts = append(opts, view.WithPosition(p))
		} else {
			log.Warn("ignoring view attribute", "session", id, "attribute", view.AttrPosition, "error", err)
		}
	}
	if hello.View.Orientation != "" {
		if q, err := common.ParseAxisAngle(hello.View.Orientation); err == nil {
			opts = append(opts, view.WithOrientation(q))
		} else {
			log.Warn("ignoring view attribute", "session", id, "attribute", view.AttrOrientation, "error", err)
		}
	}
	if hello.View.FieldOfView > 0 {
		opts = append(opts, view.WithFieldOfView(hello.View.FieldOfView))
	}

	v := view.NewNode(hello.View.ID, opts...)
	host := newRemoteHost(v, send)
	surface := window.NewHeadlessSurface(hello.Width, hello.Height)

	descriptor := defaults
	if hello.Navigation != nil {
		descriptor = *hello.Navigation
	}
	controller, err := navigation.NewController(host, surface, navigation.WithDescriptor(descriptor))
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}

	return &Session{
		id:         id,
		created:    time.Now(),
		surface:    surface,
		view:       v,
		host:       host,
		controller: controller,
	}, nil
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Controller returns the navigation controller of the session.
func (s *Session) Controller() navigation.Controller {
	return s.controller
}

// Handle applies one inbound message. DOM events are dispatched to the
// controller through the session surface; the returned flag reports whether
// the controller consumed the event.
func (s *Session) Handle(msg InboundMessage) (bool, error) {
	switch msg.Type {
	case MsgHello:
		log.Debug("duplicate hello ignored", "session", s.id)
		return false, nil
	case MsgResize:
		if msg.Width > 0 && msg.Height > 0 {
			s.surface.SetSize(msg.Width, msg.Height)
		}
		return false, nil
	}

	e, ok := ToEvent(msg)
	if !ok {
		return false, fmt.Errorf("%w: unknown type %q", ErrBadMessage, msg.Type)
	}
	if e.Type == window.EventPointerDown {
		s.host.setPendingHit(toHit(msg.Hit))
	}
	s.surface.Dispatch(e)
	return e.Stopped(), nil
}

// Info returns a snapshot of the session state.
func (s *Session) Info() SessionInfo {
	return SessionInfo{
		ID:          s.id,
		Created:     s.created,
		Mode:        s.controller.Mode().String(),
		Attached:    s.controller.Attached(),
		View:        s.view.ID(),
		Position:    s.view.Attribute(view.AttrPosition),
		Orientation: s.view.Attribute(view.AttrOrientation),
		Width:       s.surface.Width(),
		Height:      s.surface.Height(),
	}
}
