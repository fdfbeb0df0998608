package navigation

import (
	"sync"

	"github.com/ksons/xml3d-blender-exporter/engine/view"
)

// Registry tracks the controllers of every visible 3D view so page-level lifecycle
// (attach on load, detach on unload, one redraw tick for all views) can address them together.
type Registry interface {
	// Register adds a controller. Registering the same controller twice is a no-op.
	//
	// Parameters:
	//   - c: the controller
	Register(c Controller)

	// Unregister detaches and removes a controller.
	//
	// Parameters:
	//   - c: the controller
	//
	// Returns:
	//   - bool: true if the controller was registered
	Unregister(c Controller) bool

	// Controllers returns the registered controllers in registration order.
	//
	// Returns:
	//   - []Controller: a copy of the registered controllers
	Controllers() []Controller

	// ControllerFor returns the controller registered for a host.
	//
	// Parameters:
	//   - host: the scene host
	//
	// Returns:
	//   - Controller: the controller, or nil if none is registered for host
	ControllerFor(host view.Host) Controller

	// AttachAll attaches every registered controller.
	AttachAll()

	// DetachAll detaches every registered controller.
	DetachAll()

	// UpdateAll runs one redraw tick over every registered controller.
	//
	// Returns:
	//   - int: the number of controllers that requested a redraw
	UpdateAll() int
}

type registryImpl struct {
	mu *sync.Mutex

	controllers []Controller
}

var _ Registry = &registryImpl{}

// NewRegistry creates an empty controller registry.
//
// Returns:
//   - Registry: the registry
func NewRegistry() Registry {
	return &registryImpl{
		mu: &sync.Mutex{},
	}
}

func (r *registryImpl) Register(c Controller) {
	if c == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.controllers {
		if existing == c {
			return
		}
	}
	r.controllers = append(r.controllers, c)
}

func (r *registryImpl) Unregister(c Controller) bool {
	r.mu.Lock()
	idx := -1
	for i, existing := range r.controllers {
		if existing == c {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return false
	}
	r.controllers = append(r.controllers[:idx:idx], r.controllers[idx+1:]...)
	r.mu.Unlock()

	c.Detach()
	return true
}

func (r *registryImpl) Controllers() []Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Controller, len(r.controllers))
	copy(out, r.controllers)
	return out
}

func (r *registryImpl) ControllerFor(host view.Host) Controller {
	for _, c := range r.Controllers() {
		if c.Host() == host {
			return c
		}
	}
	return nil
}

func (r *registryImpl) AttachAll() {
	for _, c := range r.Controllers() {
		c.Attach()
	}
}

func (r *registryImpl) DetachAll() {
	for _, c := range r.Controllers() {
		c.Detach()
	}
}

func (r *registryImpl) UpdateAll() int {
	n := 0
	for _, c := range r.Controllers() {
		if c.Update() {
			n++
		}
	}
	return n
}
