package scene

import (
	"github.com/ksons/xml3d-blender-exporter/engine/game_object"
	"github.com/ksons/xml3d-blender-exporter/engine/view"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithViews adds initial view nodes to the scene, in document order.
//
// Parameters:
//   - views: the view nodes
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithViews(views ...view.View) SceneBuilderOption {
	return func(s *scene) {
		for _, v := range views {
			if v != nil {
				s.views = append(s.views, v)
			}
		}
	}
}

// WithActiveView sets the reference to the active view ("#id" or "id").
//
// Parameters:
//   - ref: the view reference
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActiveView(ref string) SceneBuilderOption {
	return func(s *scene) {
		s.activeView = ref
	}
}

// WithSize sets the viewport size used for ray generation.
//
// Parameters:
//   - width, height: viewport size in pixels
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSize(width, height int) SceneBuilderOption {
	return func(s *scene) {
		s.width = width
		s.height = height
	}
}

// WithObjects adds initial objects to the scene.
// Objects without IDs will be assigned new IDs.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			if obj == nil {
				continue
			}
			if obj.ID() == 0 {
				obj.SetID(s.nextID)
				s.nextID++
			} else if obj.ID() >= s.nextID {
				s.nextID = obj.ID() + 1
			}
			s.objects = append(s.objects, obj)
		}
	}
}

// WithPickWorkers sets the number of worker goroutines intersecting object chunks
// during Pick. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of pick workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPickWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.pickWorkers = n
	}
}

// WithPickChunkSize sets how many objects one pick task intersects.
//
// Parameters:
//   - n: objects per task (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPickChunkSize(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.pickChunkSize = n
	}
}
