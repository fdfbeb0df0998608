package navigation

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ksons/xml3d-blender-exporter/common"
	"github.com/ksons/xml3d-blender-exporter/engine/camera"
	"github.com/ksons/xml3d-blender-exporter/engine/view"
	"github.com/ksons/xml3d-blender-exporter/engine/window"
	"github.com/ksons/xml3d-blender-exporter/internal/log"
)

// DefaultRevolvePoint is the pivot of a controller constructed without one.
var DefaultRevolvePoint = mgl64.Vec3{0, 0, -1}

const (
	DefaultRotateSpeed = 1.0
	DefaultZoomSpeed   = 1.0
)

type controllerImpl struct {
	mu *sync.Mutex

	host    view.Host
	surface window.Surface
	camera  camera.Camera

	mode         Mode
	action       Action
	revolvePoint mgl64.Vec3
	upVector     mgl64.Vec3
	rotateSpeed  float64
	zoomSpeed    float64
	useKeys      bool
	altDown      bool
	needUpdate   bool

	prevPos   mgl64.Vec2
	keymap    map[int]keyCommand
	listeners []window.ListenerID
	attached  bool
}

var _ Controller = &controllerImpl{}

// NewController creates a navigation controller for the active view of host, bound to surface.
// When the host has no view node the controller is not created: a warning is logged,
// the host is asked to redraw once and ErrNoView is returned. The controller starts
// detached; call Attach (or Registry.AttachAll) to start receiving input.
//
// Parameters:
//   - host: the scene host
//   - surface: the input surface to bind to
//   - options: functional options for controller configuration
//
// Returns:
//   - Controller: the new controller
//   - error: ErrNilSurface or ErrNoView
func NewController(host view.Host, surface window.Surface, options ...ControllerOption) (Controller, error) {
	if surface == nil {
		return nil, ErrNilSurface
	}

	v := view.ResolveView(host)
	if v == nil {
		log.Warn("No view found, rendering disabled!")
		if host != nil {
			host.Update()
		}
		log.Error("Could not initialize Camera Controller.")
		return nil, ErrNoView
	}

	cam := camera.NewCamera(v)
	c := &controllerImpl{
		mu:           &sync.Mutex{},
		host:         host,
		surface:      surface,
		camera:       cam,
		mode:         ModeEgo,
		action:       ActionNone,
		revolvePoint: DefaultRevolvePoint,
		upVector:     cam.UpVector(),
		rotateSpeed:  DefaultRotateSpeed,
		zoomSpeed:    DefaultZoomSpeed,
		useKeys:      true,
		keymap:       defaultKeymap(),
	}

	for _, opt := range options {
		opt(c)
	}

	log.Debug("navigation controller created", "view", v.ID(), "mode", c.mode.String())
	return c, nil
}

func (c *controllerImpl) Host() view.Host {
	return c.host
}

func (c *controllerImpl) Surface() window.Surface {
	return c.surface
}

func (c *controllerImpl) Camera() camera.Camera {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.camera
}

func (c *controllerImpl) SetCamera(v view.View) {
	if v == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.camera = camera.NewCamera(v)
	c.upVector = c.camera.UpVector()
	c.needUpdate = true
}

func (c *controllerImpl) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *controllerImpl) SetMode(m Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = m
	c.action = ActionNone
}

func (c *controllerImpl) Action() Action {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.action
}

func (c *controllerImpl) RevolvePoint() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.revolvePoint
}

func (c *controllerImpl) SetRevolvePoint(p mgl64.Vec3) {
	if !common.IsFiniteVec3(p) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.revolvePoint = p
}

func (c *controllerImpl) RotateSpeed() float64 {
	return c.rotateSpeed
}

func (c *controllerImpl) ZoomSpeed() float64 {
	return c.zoomSpeed
}

func (c *controllerImpl) AltDown() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.altDown
}

func (c *controllerImpl) LookAt(point mgl64.Vec3) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.lookAt(point) {
		return false
	}
	c.needUpdate = true
	return true
}

func (c *controllerImpl) Attach() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.attached {
		return
	}
	if c.mode == ModeNone {
		log.Debug("navigation disabled, not attaching", "view", c.camera.View().ID())
		return
	}

	c.listeners = append(c.listeners,
		c.surface.AddListener(window.EventPointerDown, c.onPointerDown),
		c.surface.AddListener(window.EventPointerUp, c.onPointerUp),
		c.surface.AddListener(window.EventPointerMove, c.onPointerMove),
		c.surface.AddListener(window.EventContextMenu, c.onContextMenu),
	)
	if c.useKeys {
		c.listeners = append(c.listeners,
			c.surface.AddListener(window.EventKeyDown, c.onKeyDown),
			c.surface.AddListener(window.EventKeyUp, c.onKeyUp),
		)
	}
	c.attached = true
}

func (c *controllerImpl) Detach() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.attached {
		return
	}
	for _, id := range c.listeners {
		c.surface.RemoveListener(id)
	}
	c.listeners = nil
	c.attached = false
	c.action = ActionNone
	c.altDown = false
}

func (c *controllerImpl) Attached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attached
}

func (c *controllerImpl) NeedsUpdate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.needUpdate
}

func (c *controllerImpl) Update() bool {
	c.mu.Lock()
	redraw := c.needUpdate && c.attached
	if redraw {
		c.needUpdate = false
	}
	c.mu.Unlock()

	if redraw {
		c.host.Update()
	}
	return redraw
}
