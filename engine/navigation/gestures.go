package navigation

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ksons/xml3d-blender-exporter/common"
	"github.com/ksons/xml3d-blender-exporter/engine/window"
)

// lookAroundDamping scales the look-around gesture relative to rotate.
const lookAroundDamping = 0.1

var (
	axisX = mgl64.Vec3{1, 0, 0}
	axisY = mgl64.Vec3{0, 1, 0}
)

func (c *controllerImpl) onPointerDown(e *window.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch e.Button {
	case window.ButtonPrimary:
		if c.altDown {
			c.action = ActionNone
			c.pick(e.X, e.Y)
		} else {
			c.action = primaryAction(c.mode)
		}
	case window.ButtonMiddle:
		c.action = ActionTranslate
	case window.ButtonSecondary:
		c.action = ActionDolly
	default:
		c.action = ActionNone
	}

	c.prevPos = mgl64.Vec2{e.X, e.Y}
	e.Stop()
}

func (c *controllerImpl) onPointerUp(e *window.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.action = ActionNone
	e.Stop()
}

func (c *controllerImpl) onContextMenu(e *window.Event) {
	e.Stop()
}

func (c *controllerImpl) onPointerMove(e *window.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.action == ActionNone {
		return
	}

	cur := mgl64.Vec2{e.X, e.Y}
	width, height := float64(c.surface.Width()), float64(c.surface.Height())
	if width > 0 && height > 0 {
		switch c.action {
		case ActionTranslate:
			c.translate(cur, height)
		case ActionDolly:
			c.dolly(cur, height)
		case ActionRotate:
			c.rotate(cur, width, height, c.rotateSpeed, c.revolvePoint)
		case ActionLookAround:
			c.rotate(cur, width, height, c.rotateSpeed*lookAroundDamping, c.camera.Position())
		case ActionTrackball:
			c.trackball(cur, width, height)
		}
		c.needUpdate = true
	}

	c.prevPos = cur
	e.Stop()
}

// pick casts a ray through the pointer and, on a hit, makes the hit point the new
// revolve point and turns the camera toward it. Requires c.mu to be held.
func (c *controllerImpl) pick(x, y float64) {
	ray := c.host.GenerateRay(x, y)
	hit := c.host.Pick(ray)
	if !hit.Valid() {
		return
	}
	c.revolvePoint = hit.Point
	c.lookAt(hit.Point)
	c.needUpdate = true
}

// translate pans the camera in its view plane so the scene follows the pointer.
// The revolve point moves along with the camera.
func (c *controllerImpl) translate(cur mgl64.Vec2, height float64) {
	f := 2 * math.Tan(c.camera.FieldOfView()/2) / height
	dx := f * (cur.X() - c.prevPos.X())
	dy := f * (cur.Y() - c.prevPos.Y())

	t := c.camera.InverseTransformOf(mgl64.Vec3{-dx, dy, 0})
	c.camera.Translate(t)
	if common.IsFiniteVec3(t) {
		c.revolvePoint = c.revolvePoint.Add(t)
	}
}

// dolly moves the camera along its view axis; dragging down moves it backward.
func (c *controllerImpl) dolly(cur mgl64.Vec2, height float64) {
	dy := c.zoomSpeed * (cur.Y() - c.prevPos.Y()) / height

	t := c.camera.InverseTransformOf(mgl64.Vec3{0, 0, dy})
	c.camera.Translate(t)
	if common.IsFiniteVec3(t) {
		c.revolvePoint = c.revolvePoint.Add(t)
	}
}

// rotate yaws around the camera Y axis by the horizontal drag and pitches around
// the camera X axis by the vertical drag, orbiting pivot. A full surface width of
// drag is one turn at speed 1.
func (c *controllerImpl) rotate(cur mgl64.Vec2, width, height, speed float64, pivot mgl64.Vec3) {
	dx := -speed * (cur.X() - c.prevPos.X()) * 2 * math.Pi / width
	dy := -speed * (cur.Y() - c.prevPos.Y()) * 2 * math.Pi / height

	mx := common.AxisAngle(axisY, dx)
	my := common.AxisAngle(axisX, dy)
	c.camera.RotateAroundPoint(mx.Mul(my), pivot)
}

// trackball rotates around the revolve point by the arc between the previous and
// current pointer positions projected on a virtual sphere.
func (c *controllerImpl) trackball(cur mgl64.Vec2, width, height float64) {
	p1, ok1 := trackballPoint(c.prevPos, width, height)
	p2, ok2 := trackballPoint(cur, width, height)
	if !ok1 || !ok2 {
		return
	}

	angle, ok := common.SafeAcos(p1.Dot(p2))
	if !ok || angle == 0 {
		return
	}
	axis := p1.Cross(p2)
	axis[1] = -axis[1]
	if _, ok := common.SafeNormalize(axis); !ok {
		return
	}

	c.camera.RotateAroundPoint(common.AxisAngle(axis, angle), c.revolvePoint)
}

// trackballPoint projects a surface coordinate onto a sphere of radius height/2
// centered on the surface. Points outside the sphere land on its rim.
func trackballPoint(p mgl64.Vec2, width, height float64) (mgl64.Vec3, bool) {
	r := height / 2
	x := common.Clamp(p.X(), 0, width) - width/2
	y := common.Clamp(p.Y(), 0, height) - height/2
	z := math.Sqrt(math.Max(r*r-x*x-y*y, 0))
	return common.SafeNormalize(mgl64.Vec3{x, y, z})
}
