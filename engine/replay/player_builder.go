package replay

import "github.com/ksons/xml3d-blender-exporter/engine/navigation"

// PlayerOption configures a player at construction.
type PlayerOption func(*player)

// WithRegistry sets the registry ticked after every step, e.g. the one an
// engine frame loop also ticks.
//
// Parameters:
//   - r: the registry
//
// Returns:
//   - PlayerOption: function that sets the registry
func WithRegistry(r navigation.Registry) PlayerOption {
	return func(p *player) {
		p.registry = r
	}
}

// WithStepCallback sets a function called before each step is played.
//
// Parameters:
//   - callback: function receiving the zero-based step index and the step
//
// Returns:
//   - PlayerOption: function that sets the callback
func WithStepCallback(callback func(index int, step Step)) PlayerOption {
	return func(p *player) {
		p.onStep = callback
	}
}

// WithResizeCallback sets the function called after a resize step or a
// script-level size has resized the surface. It replaces the default of
// resizing the controller's host.
//
// Parameters:
//   - callback: function receiving the new width and height in pixels
//
// Returns:
//   - PlayerOption: function that sets the callback
func WithResizeCallback(callback func(width, height int)) PlayerOption {
	return func(p *player) {
		p.onResize = callback
	}
}
