package navigation

import "errors"

var (
	// ErrNoView is returned when the host has no view node to navigate.
	ErrNoView = errors.New("navigation: no view found")
	// ErrNilSurface is returned when a controller is created without an input surface.
	ErrNilSurface = errors.New("navigation: nil input surface")
)
