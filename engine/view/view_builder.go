package view

import "github.com/go-gl/mathgl/mgl64"

// NodeOption is a functional option for configuring a view node.
type NodeOption func(*node)

// WithPosition sets the initial world-space position of the view.
//
// Parameters:
//   - p: the position
//
// Returns:
//   - NodeOption: functional option to set the position
func WithPosition(p mgl64.Vec3) NodeOption {
	return func(n *node) {
		n.position = p
	}
}

// WithOrientation sets the initial orientation of the view.
//
// Parameters:
//   - q: the orientation (normalized on apply)
//
// Returns:
//   - NodeOption: functional option to set the orientation
func WithOrientation(q mgl64.Quat) NodeOption {
	return func(n *node) {
		n.orientation = q.Normalize()
	}
}

// WithFieldOfView sets the vertical field of view.
//
// Parameters:
//   - fov: field of view in radians, ignored if not positive
//
// Returns:
//   - NodeOption: functional option to set the field of view
func WithFieldOfView(fov float64) NodeOption {
	return func(n *node) {
		if fov > 0 {
			n.fieldOfView = fov
		}
	}
}

// WithChangeCallback registers a callback invoked after every attribute write.
// Transports use it to mirror the node onto a remote document.
//
// Parameters:
//   - callback: receives the attribute name and its new string value
//
// Returns:
//   - NodeOption: functional option to set the callback
func WithChangeCallback(callback func(name, value string)) NodeOption {
	return func(n *node) {
		n.onChange = callback
	}
}
