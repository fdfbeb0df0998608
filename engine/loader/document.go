package loader

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ksons/xml3d-blender-exporter/common"
	"github.com/ksons/xml3d-blender-exporter/engine/game_object"
	"github.com/ksons/xml3d-blender-exporter/engine/model"
	"github.com/ksons/xml3d-blender-exporter/engine/navigation"
	"github.com/ksons/xml3d-blender-exporter/engine/scene"
	"github.com/ksons/xml3d-blender-exporter/engine/view"
)

// ErrInvalidDocument is returned when a scene document is structurally wrong.
var ErrInvalidDocument = errors.New("invalid scene document")

// Document is a scene description: the exported XML3D views and a coarse stand-in
// of the geometry for picking. Vectors and rotations use the XML3D attribute syntax.
type Document struct {
	Name       string                `yaml:"name" toml:"name"`
	ActiveView string                `yaml:"activeView" toml:"activeView"`
	Width      int                   `yaml:"width" toml:"width"`
	Height     int                   `yaml:"height" toml:"height"`
	Navigation navigation.Descriptor `yaml:"navigation" toml:"navigation"`
	Views      []ViewSpec            `yaml:"views" toml:"views"`
	Objects    []ObjectSpec          `yaml:"objects" toml:"objects"`
}

// ViewSpec describes a <view> element.
type ViewSpec struct {
	ID          string  `yaml:"id" toml:"id"`
	Position    string  `yaml:"position" toml:"position"`
	Orientation string  `yaml:"orientation" toml:"orientation"`
	FieldOfView float64 `yaml:"fieldOfView" toml:"fieldOfView"`
}

// ObjectSpec describes one pickable object.
// Type selects which fields apply: sphere (center, radius), box (min, max),
// triangle (vertices, exactly three) or mesh (vertices, a multiple of three).
type ObjectSpec struct {
	Name     string   `yaml:"name" toml:"name"`
	Type     string   `yaml:"type" toml:"type"`
	Position string   `yaml:"position" toml:"position"`
	Center   string   `yaml:"center" toml:"center"`
	Radius   float64  `yaml:"radius" toml:"radius"`
	Min      string   `yaml:"min" toml:"min"`
	Max      string   `yaml:"max" toml:"max"`
	Vertices []string `yaml:"vertices" toml:"vertices"`
	Disabled bool     `yaml:"disabled" toml:"disabled"`
}

// Build creates a scene from the document.
//
// Parameters:
//   - options: extra scene options applied after the document's own settings
//
// Returns:
//   - scene.Scene: the populated scene
//   - error: wraps ErrInvalidDocument or common.ErrMalformedAttribute
func (d *Document) Build(options ...scene.SceneBuilderOption) (scene.Scene, error) {
	if len(d.Views) == 0 {
		return nil, fmt.Errorf("%w: %q has no views", ErrInvalidDocument, d.Name)
	}

	views := make([]view.View, 0, len(d.Views))
	for i, vs := range d.Views {
		v, err := vs.build()
		if err != nil {
			return nil, fmt.Errorf("view %d: %w", i, err)
		}
		views = append(views, v)
	}

	objects := make([]game_object.GameObject, 0, len(d.Objects))
	for i, spec := range d.Objects {
		obj, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, spec.Name, err)
		}
		objects = append(objects, obj)
	}

	opts := []scene.SceneBuilderOption{
		scene.WithViews(views...),
		scene.WithActiveView(d.ActiveView),
		scene.WithObjects(objects...),
	}
	if d.Width > 0 && d.Height > 0 {
		opts = append(opts, scene.WithSize(d.Width, d.Height))
	}
	return scene.NewScene(d.Name, append(opts, options...)...), nil
}

func (vs ViewSpec) build() (view.View, error) {
	if vs.ID == "" {
		return nil, fmt.Errorf("%w: view without id", ErrInvalidDocument)
	}
	var opts []view.NodeOption
	if vs.Position != "" {
		p, err := common.ParseVec3(vs.Position)
		if err != nil {
			return nil, err
		}
		opts = append(opts, view.WithPosition(p))
	}
	if vs.Orientation != "" {
		q, err := common.ParseAxisAngle(vs.Orientation)
		if err != nil {
			return nil, err
		}
		opts = append(opts, view.WithOrientation(q))
	}
	if vs.FieldOfView > 0 {
		opts = append(opts, view.WithFieldOfView(vs.FieldOfView))
	}
	return view.NewNode(vs.ID, opts...), nil
}

func (spec ObjectSpec) build() (game_object.GameObject, error) {
	opts := []game_object.GameObjectBuilderOption{
		game_object.WithName(spec.Name),
		game_object.WithEnabled(!spec.Disabled),
	}
	if spec.Position != "" {
		p, err := common.ParseVec3(spec.Position)
		if err != nil {
			return nil, err
		}
		opts = append(opts, game_object.WithPosition(p))
	}

	m, err := spec.model()
	if err != nil {
		return nil, err
	}
	return game_object.NewGameObject(append(opts, game_object.WithModel(m))...), nil
}

func (spec ObjectSpec) model() (model.Model, error) {
	switch spec.Type {
	case "sphere":
		center := mgl64.Vec3{}
		if spec.Center != "" {
			c, err := common.ParseVec3(spec.Center)
			if err != nil {
				return nil, err
			}
			center = c
		}
		if spec.Radius <= 0 {
			return nil, fmt.Errorf("%w: sphere radius must be positive", ErrInvalidDocument)
		}
		return model.NewSphere(center, spec.Radius, model.WithName(spec.Name)), nil
	case "box":
		lo, err := common.ParseVec3(spec.Min)
		if err != nil {
			return nil, err
		}
		hi, err := common.ParseVec3(spec.Max)
		if err != nil {
			return nil, err
		}
		return model.NewBox(lo, hi, model.WithName(spec.Name)), nil
	case "triangle", "mesh":
		if len(spec.Vertices) == 0 || len(spec.Vertices)%3 != 0 || (spec.Type == "triangle" && len(spec.Vertices) != 3) {
			return nil, fmt.Errorf("%w: %s needs vertices in groups of three, got %d", ErrInvalidDocument, spec.Type, len(spec.Vertices))
		}
		tris := make([]model.Triangle, 0, len(spec.Vertices)/3)
		for i := 0; i < len(spec.Vertices); i += 3 {
			var corners [3]mgl64.Vec3
			for j := range corners {
				v, err := common.ParseVec3(spec.Vertices[i+j])
				if err != nil {
					return nil, err
				}
				corners[j] = v
			}
			tris = append(tris, model.Triangle{A: corners[0], B: corners[1], C: corners[2]})
		}
		return model.NewMesh(tris, model.WithName(spec.Name)), nil
	default:
		return nil, fmt.Errorf("%w: unknown object type %q", ErrInvalidDocument, spec.Type)
	}
}
