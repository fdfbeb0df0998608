package navigation

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/ksons/xml3d-blender-exporter/common"
)

// ControllerOption configures a controller at construction.
type ControllerOption func(*controllerImpl)

// WithDescriptor applies a <navigation> element descriptor: its mode, its revolve
// point and its speed factor. Options given after it override the descriptor.
//
// Parameters:
//   - d: the descriptor
//
// Returns:
//   - ControllerOption: function that applies the descriptor
func WithDescriptor(d Descriptor) ControllerOption {
	return func(c *controllerImpl) {
		s := d.resolve()
		c.mode = s.mode
		if s.hasPivot {
			c.revolvePoint = s.pivot
		}
		c.zoomSpeed *= s.speedFactor
	}
}

// WithMode sets the initial navigation mode.
//
// Parameters:
//   - m: the mode
//
// Returns:
//   - ControllerOption: function that sets the mode
func WithMode(m Mode) ControllerOption {
	return func(c *controllerImpl) {
		c.mode = m
	}
}

// WithRevolvePoint sets the initial revolve point. Non-finite points are ignored.
//
// Parameters:
//   - p: the revolve point in world space
//
// Returns:
//   - ControllerOption: function that sets the revolve point
func WithRevolvePoint(p mgl64.Vec3) ControllerOption {
	return func(c *controllerImpl) {
		if common.IsFiniteVec3(p) {
			c.revolvePoint = p
		}
	}
}

// WithRotateSpeed sets the rotation sensitivity. Non-positive values are ignored.
//
// Parameters:
//   - speed: the rotate speed
//
// Returns:
//   - ControllerOption: function that sets the rotate speed
func WithRotateSpeed(speed float64) ControllerOption {
	return func(c *controllerImpl) {
		if speed > 0 {
			c.rotateSpeed = speed
		}
	}
}

// WithZoomSpeed sets the dolly and keyboard movement sensitivity. Non-positive values are ignored.
//
// Parameters:
//   - speed: the zoom speed
//
// Returns:
//   - ControllerOption: function that sets the zoom speed
func WithZoomSpeed(speed float64) ControllerOption {
	return func(c *controllerImpl) {
		if speed > 0 {
			c.zoomSpeed = speed
		}
	}
}

// WithKeyboard enables or disables keyboard navigation.
//
// Parameters:
//   - enabled: true to register key listeners on Attach
//
// Returns:
//   - ControllerOption: function that sets keyboard navigation
func WithKeyboard(enabled bool) ControllerOption {
	return func(c *controllerImpl) {
		c.useKeys = enabled
	}
}
