package remote

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ksons/xml3d-blender-exporter/common"
	"github.com/ksons/xml3d-blender-exporter/engine/navigation"
	"github.com/ksons/xml3d-blender-exporter/engine/window"
)

// Inbound message types sent by the preview page.
const (
	MsgHello       = "hello"
	MsgResize      = "resize"
	MsgPointerDown = "mousedown"
	MsgPointerUp   = "mouseup"
	MsgPointerMove = "mousemove"
	MsgContextMenu = "contextmenu"
	MsgKeyDown     = "keydown"
	MsgKeyUp       = "keyup"
)

// Outbound message types sent to the preview page.
const (
	MsgAttribute = "attribute"
	MsgRedraw    = "redraw"
	MsgSession   = "session"
	MsgError     = "error"
)

// ErrBadMessage is returned for inbound messages that cannot be decoded.
var ErrBadMessage = errors.New("bad message")

// ViewState is the initial state of the page's <view> element.
// Vectors and rotations use the XML3D attribute syntax.
type ViewState struct {
	ID          string  `json:"id"`
	Position    string  `json:"position,omitempty"`
	Orientation string  `json:"orientation,omitempty"`
	FieldOfView float64 `json:"fieldOfView,omitempty"`
}

// HitState is the result of the page's getElementByRay for an alt-click.
type HitState struct {
	Point  [3]float64 `json:"point"`
	Normal [3]float64 `json:"normal"`
}

// InboundMessage is a DOM event or lifecycle message from the preview page.
type InboundMessage struct {
	Type string `json:"type"`

	// Pointer events: DOM "which" button numbering and page coordinates.
	Which int     `json:"which,omitempty"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`

	// Key events: DOM keyCode; which is consulted when keyCode is 0.
	KeyCode int `json:"keyCode,omitempty"`

	// Alt-click picks carry the hit the page computed, nil on a miss.
	Hit *HitState `json:"hit,omitempty"`

	// Hello and resize carry the canvas size.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// Hello carries the view element and the <navigation> element of the page.
	View       *ViewState             `json:"view,omitempty"`
	Navigation *navigation.Descriptor `json:"navigation,omitempty"`
}

// OutboundMessage is an attribute write, redraw request or session notice.
type OutboundMessage struct {
	Type    string `json:"type"`
	Name    string `json:"name,omitempty"`
	Value   string `json:"value,omitempty"`
	Session string `json:"session,omitempty"`
	Error   string `json:"error,omitempty"`
}

// DecodeInbound parses a websocket text frame.
//
// Parameters:
//   - data: the raw JSON frame
//
// Returns:
//   - InboundMessage: the decoded message
//   - error: wraps ErrBadMessage
func DecodeInbound(data []byte) (InboundMessage, error) {
	var msg InboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, fmt.Errorf("%w: %v", ErrBadMessage, err)
	}
	if msg.Type == "" {
		return msg, fmt.Errorf("%w: missing type", ErrBadMessage)
	}
	return msg, nil
}

// ToEvent converts a DOM event message into a surface event.
//
// Parameters:
//   - msg: the inbound message
//
// Returns:
//   - *window.Event: the event
//   - bool: false for lifecycle messages and unknown types
func ToEvent(msg InboundMessage) (*window.Event, bool) {
	switch msg.Type {
	case MsgPointerDown:
		return &window.Event{Type: window.EventPointerDown, Button: window.Button(msg.Which), X: msg.X, Y: msg.Y}, true
	case MsgPointerUp:
		return &window.Event{Type: window.EventPointerUp, Button: window.Button(msg.Which), X: msg.X, Y: msg.Y}, true
	case MsgPointerMove:
		return &window.Event{Type: window.EventPointerMove, X: msg.X, Y: msg.Y}, true
	case MsgContextMenu:
		return &window.Event{Type: window.EventContextMenu, X: msg.X, Y: msg.Y}, true
	case MsgKeyDown:
		return &window.Event{Type: window.EventKeyDown, Key: common.FromDOMKeyCode(msg.KeyCode, msg.Which)}, true
	case MsgKeyUp:
		return &window.Event{Type: window.EventKeyUp, Key: common.FromDOMKeyCode(msg.KeyCode, msg.Which)}, true
	default:
		return nil, false
	}
}

// toHit converts the page's pick result; nil is a miss.
func toHit(h *HitState) common.Hit {
	if h == nil {
		return missHit()
	}
	return common.Hit{Point: mgl64.Vec3(h.Point), Normal: mgl64.Vec3(h.Normal)}
}
