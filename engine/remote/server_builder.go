package remote

import "github.com/ksons/xml3d-blender-exporter/engine/navigation"

// ServerOption configures a server at construction.
type ServerOption func(*serverImpl)

// WithAddr sets the listen address.
//
// Parameters:
//   - addr: the address, e.g. ":8047"
//
// Returns:
//   - ServerOption: function that sets the address
func WithAddr(addr string) ServerOption {
	return func(s *serverImpl) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithRegistry sets the registry session controllers are registered with, so a
// frame loop ticking that registry redraws every connected page.
//
// Parameters:
//   - r: the registry
//
// Returns:
//   - ServerOption: function that sets the registry
func WithRegistry(r navigation.Registry) ServerOption {
	return func(s *serverImpl) {
		s.registry = r
	}
}

// WithDescriptor sets the navigation descriptor for pages that send none.
//
// Parameters:
//   - d: the descriptor
//
// Returns:
//   - ServerOption: function that sets the descriptor
func WithDescriptor(d navigation.Descriptor) ServerOption {
	return func(s *serverImpl) {
		s.descriptor = d
	}
}

// WithStaticDir serves the preview page assets from dir at "/".
//
// Parameters:
//   - dir: the asset directory
//
// Returns:
//   - ServerOption: function that sets the static directory
func WithStaticDir(dir string) ServerOption {
	return func(s *serverImpl) {
		s.staticDir = dir
	}
}
