package navigation

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/ksons/xml3d-blender-exporter/engine/camera"
	"github.com/ksons/xml3d-blender-exporter/engine/view"
	"github.com/ksons/xml3d-blender-exporter/engine/window"
)

// Controller drives one host view from the pointer and keyboard events of an input surface.
// It holds the navigation state machine: the mode selected at construction (or by the
// mode keys), the gesture started by the last pointer press and the revolve point
// that orbiting gestures pivot around.
type Controller interface {
	// Host returns the scene host the controller navigates.
	//
	// Returns:
	//   - view.Host: the host
	Host() view.Host

	// Surface returns the input surface the controller binds to.
	//
	// Returns:
	//   - window.Surface: the surface
	Surface() window.Surface

	// Camera returns the facade over the view the controller drives.
	//
	// Returns:
	//   - camera.Camera: the camera facade
	Camera() camera.Camera

	// SetCamera points the controller at another view node of the host and takes
	// its current up vector as the world up. A nil view is ignored.
	//
	// Parameters:
	//   - v: the view node to drive
	SetCamera(v view.View)

	// Mode returns the current navigation mode.
	//
	// Returns:
	//   - Mode: the mode
	Mode() Mode

	// SetMode switches the navigation mode and cancels the gesture in progress.
	// It never touches the camera; listeners stay as they are.
	//
	// Parameters:
	//   - m: the new mode
	SetMode(m Mode)

	// Action returns the gesture in progress.
	//
	// Returns:
	//   - Action: the current action, ActionNone when idle
	Action() Action

	// RevolvePoint returns the pivot used by rotate and trackball gestures.
	//
	// Returns:
	//   - mgl64.Vec3: the revolve point in world space
	RevolvePoint() mgl64.Vec3

	// SetRevolvePoint replaces the pivot used by rotate and trackball gestures.
	// Non-finite points are ignored.
	//
	// Parameters:
	//   - p: the revolve point in world space
	SetRevolvePoint(p mgl64.Vec3)

	// RotateSpeed returns the rotation sensitivity.
	//
	// Returns:
	//   - float64: the rotate speed
	RotateSpeed() float64

	// ZoomSpeed returns the dolly and keyboard movement sensitivity.
	//
	// Returns:
	//   - float64: the zoom speed
	ZoomSpeed() float64

	// AltDown reports whether the pick modifier is held.
	//
	// Returns:
	//   - bool: true while Alt is held
	AltDown() bool

	// LookAt re-orients the camera toward a world-space point without moving it.
	// Degenerate configurations (point at the camera position, point straight
	// above or below) leave the orientation unchanged.
	//
	// Parameters:
	//   - point: the world-space target
	//
	// Returns:
	//   - bool: true if the camera was re-oriented
	LookAt(point mgl64.Vec3) bool

	// Attach registers the controller's listeners on its surface.
	// It is a no-op when already attached or in ModeNone.
	Attach()

	// Detach removes every listener Attach registered. It is a no-op when not attached.
	Detach()

	// Attached reports whether the controller's listeners are registered.
	//
	// Returns:
	//   - bool: true if attached
	Attached() bool

	// NeedsUpdate reports whether the view changed since the last Update.
	//
	// Returns:
	//   - bool: true if a redraw is pending
	NeedsUpdate() bool

	// Update asks the host to redraw if the view changed since the last call and the
	// controller is attached, then clears the pending flag.
	//
	// Returns:
	//   - bool: true if a redraw was requested
	Update() bool
}
