package view

import (
	"strings"

	"github.com/ksons/xml3d-blender-exporter/common"
	"github.com/ksons/xml3d-blender-exporter/internal/log"
)

// Host is the 3D scene host a navigation controller drives (the XML3D element).
// Rendering is entirely the host's concern; navigation only reads and writes view
// nodes, asks for picking rays and requests redraws.
type Host interface {
	// ActiveView returns the reference to the active view ("#id", "id" or "").
	//
	// Returns:
	//   - string: the active view reference
	ActiveView() string

	// ViewByID resolves a view node by element id.
	//
	// Parameters:
	//   - id: the element id (without '#')
	//
	// Returns:
	//   - View: the view, or nil if no such view exists
	ViewByID(id string) View

	// FirstView returns the first view node in document order.
	//
	// Returns:
	//   - View: the first view, or nil if the host has none
	FirstView() View

	// GenerateRay builds a world-space picking ray through a surface coordinate.
	//
	// Parameters:
	//   - x, y: surface coordinates in pixels
	//
	// Returns:
	//   - common.Ray: the picking ray
	GenerateRay(x, y float64) common.Ray

	// Pick intersects a ray with the scene geometry.
	//
	// Parameters:
	//   - ray: the ray to cast
	//
	// Returns:
	//   - common.Hit: the nearest hit; a non-finite point reports a miss
	Pick(ray common.Ray) common.Hit

	// Update asks the host to redraw.
	Update()
}

// ResolveView finds the view a controller should drive.
// The active view reference is resolved first; if it is empty or dangling the
// first view of the host is used. Returns nil if the host has no view at all.
//
// Parameters:
//   - host: the scene host
//
// Returns:
//   - View: the resolved view, or nil
func ResolveView(host Host) View {
	if host == nil {
		return nil
	}

	var active View
	if ref := host.ActiveView(); ref != "" {
		id := strings.TrimPrefix(ref, "#")
		log.Debug("resolving active view", "view", id)
		active = host.ViewByID(id)
	}

	if active == nil {
		log.Warn("no view referenced, trying to use first view")
		active = host.FirstView()
	}
	return active
}
