package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ksons/xml3d-blender-exporter/common"
	"github.com/ksons/xml3d-blender-exporter/engine/model"
)

type gameObject struct {
	mu *sync.RWMutex

	id        uint64
	name      string
	enabled   atomic.Bool
	ephemeral bool
	mdl       model.Model
	position  mgl64.Vec3
}

// GameObject is a scene entity placing a Model at a world-space position.
// Disabled objects and objects without a model are invisible to picking.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// Name returns the object's name, the model name if none was given.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Enabled returns whether this object takes part in drawing and picking.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object takes part in drawing and picking.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Ephemeral returns whether this object is ephemeral.
	// Ephemeral objects are picked but not persisted in the scene's registry.
	//
	// Returns:
	//   - bool: true if ephemeral
	Ephemeral() bool

	// Model returns the Model associated with this object, or nil if not set.
	//
	// Returns:
	//   - model.Model: the associated model or nil
	Model() model.Model

	// SetModel assigns a Model to this object.
	//
	// Parameters:
	//   - m: the Model to associate
	SetModel(m model.Model)

	// Position returns the world-space offset of the model.
	//
	// Returns:
	//   - mgl64.Vec3: the position
	Position() mgl64.Vec3

	// SetPosition moves the object.
	//
	// Parameters:
	//   - p: the new world-space position
	SetPosition(p mgl64.Vec3)

	// Intersect casts a world-space ray against the object's model.
	//
	// Parameters:
	//   - ray: the world-space ray
	//
	// Returns:
	//   - float64: the ray parameter of the nearest hit
	//   - common.Hit: the world-space hit
	//   - bool: false if the object is disabled, has no model or is missed
	Intersect(ray common.Ray) (float64, common.Hit, bool)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu: &sync.RWMutex{},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.id
}

func (g *gameObject) SetID(id uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.id = id
}

func (g *gameObject) Name() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.name == "" && g.mdl != nil {
		return g.mdl.Name()
	}
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Ephemeral() bool {
	return g.ephemeral
}

func (g *gameObject) Model() model.Model {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.mdl
}

func (g *gameObject) SetModel(m model.Model) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mdl = m
}

func (g *gameObject) Position() mgl64.Vec3 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.position
}

func (g *gameObject) SetPosition(p mgl64.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = p
}

func (g *gameObject) Intersect(ray common.Ray) (float64, common.Hit, bool) {
	if !g.Enabled() {
		return 0, common.Hit{}, false
	}
	g.mu.RLock()
	mdl, pos := g.mdl, g.position
	g.mu.RUnlock()
	if mdl == nil {
		return 0, common.Hit{}, false
	}

	local := common.Ray{Origin: ray.Origin.Sub(pos), Direction: ray.Direction}
	t, n, ok := mdl.Intersect(local)
	if !ok {
		return 0, common.Hit{}, false
	}
	return t, common.Hit{Point: ray.At(t), Normal: n}, true
}
