package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ksons/xml3d-blender-exporter/common"
	"github.com/ksons/xml3d-blender-exporter/engine/view"
)

// gimbalThreshold is the |cos| between the world up vector and the tilted forward
// vector above which LookAround drops the pitch component.
const gimbalThreshold = 0.95

// Camera is the orientation/position facade over a host view node.
// Accessors are pass-through reads and writes of the node; the composite
// operations combine them the way every navigation gesture needs.
type Camera interface {
	// View returns the wrapped view node.
	//
	// Returns:
	//   - view.View: the view node
	View() view.View

	// Orientation returns the view orientation.
	//
	// Returns:
	//   - mgl64.Quat: the orientation
	Orientation() mgl64.Quat

	// SetOrientation writes the view orientation. The facade does not normalize;
	// callers pass unit quaternions.
	//
	// Parameters:
	//   - q: the new orientation
	SetOrientation(q mgl64.Quat)

	// Position returns the view position.
	//
	// Returns:
	//   - mgl64.Vec3: world-space position
	Position() mgl64.Vec3

	// SetPosition writes the view position.
	//
	// Parameters:
	//   - p: world-space position
	SetPosition(p mgl64.Vec3)

	// Direction returns the host-derived forward vector.
	//
	// Returns:
	//   - mgl64.Vec3: the forward vector
	Direction() mgl64.Vec3

	// UpVector returns the host-derived up vector.
	//
	// Returns:
	//   - mgl64.Vec3: the up vector
	UpVector() mgl64.Vec3

	// FieldOfView returns the vertical field of view.
	//
	// Returns:
	//   - float64: field of view in radians
	FieldOfView() float64

	// InverseTransformOf maps a camera-local vector into world space.
	//
	// Parameters:
	//   - v: camera-local vector
	//
	// Returns:
	//   - mgl64.Vec3: the world-space vector
	InverseTransformOf(v mgl64.Vec3) mgl64.Vec3

	// Rotate post-multiplies the orientation by q and re-normalizes.
	//
	// Parameters:
	//   - q: camera-local rotation
	Rotate(q mgl64.Quat)

	// RotateAroundPoint rotates the camera by q around the world-space point p0.
	// The orientation becomes normalize(orientation*q); the position is rotated
	// around p0 by the same rotation expressed in world space.
	//
	// Parameters:
	//   - q: camera-local rotation
	//   - p0: world-space pivot
	RotateAroundPoint(q mgl64.Quat, p0 mgl64.Vec3)

	// LookAround re-orients the camera in place by a world-space side rotation and
	// an up/down rotation. The up/down part is dropped when it would align the view
	// direction with worldUp.
	//
	// Parameters:
	//   - rotSide: rotation around the up axis
	//   - rotUp: rotation around the right axis
	//   - worldUp: the reference up vector
	LookAround(rotSide, rotUp mgl64.Quat, worldUp mgl64.Vec3)

	// Translate moves the camera by t.
	//
	// Parameters:
	//   - t: world-space offset
	Translate(t mgl64.Vec3)

	// TranslateAbsolute moves the camera to p.
	//
	// Parameters:
	//   - p: world-space position
	TranslateAbsolute(p mgl64.Vec3)
}

type cameraImpl struct {
	mu *sync.Mutex

	view view.View
}

var _ Camera = &cameraImpl{}

// NewCamera creates a facade over the given view node.
//
// Parameters:
//   - v: the host view node
//
// Returns:
//   - Camera: the facade, or nil if v is nil
func NewCamera(v view.View) Camera {
	if v == nil {
		return nil
	}
	return &cameraImpl{
		mu:   &sync.Mutex{},
		view: v,
	}
}

func (c *cameraImpl) View() view.View {
	return c.view
}

func (c *cameraImpl) Orientation() mgl64.Quat {
	return c.view.Orientation()
}

func (c *cameraImpl) SetOrientation(q mgl64.Quat) {
	c.view.SetOrientation(q)
}

func (c *cameraImpl) Position() mgl64.Vec3 {
	return c.view.Position()
}

func (c *cameraImpl) SetPosition(p mgl64.Vec3) {
	c.view.SetPosition(p)
}

func (c *cameraImpl) Direction() mgl64.Vec3 {
	return c.view.Direction()
}

func (c *cameraImpl) UpVector() mgl64.Vec3 {
	return c.view.UpVector()
}

func (c *cameraImpl) FieldOfView() float64 {
	return c.view.FieldOfView()
}

func (c *cameraImpl) InverseTransformOf(v mgl64.Vec3) mgl64.Vec3 {
	return c.view.Orientation().Rotate(v)
}

func (c *cameraImpl) Rotate(q mgl64.Quat) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.view.Orientation().Mul(q).Normalize()
	if !common.IsFiniteQuat(next) {
		return
	}
	c.view.SetOrientation(next)
}

func (c *cameraImpl) RotateAroundPoint(q mgl64.Quat, p0 mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !common.IsFiniteQuat(q) || !common.IsFiniteVec3(p0) {
		return
	}
	q = q.Normalize()
	orientation := c.view.Orientation().Mul(q).Normalize()
	c.view.SetOrientation(orientation)

	// Same rotation with its axis taken from the camera frame into world space.
	world := mgl64.Quat{W: q.W, V: orientation.Rotate(q.V)}.Normalize()
	position := c.view.Position()
	c.view.SetPosition(p0.Add(world.Rotate(position.Sub(p0))))
}

func (c *cameraImpl) LookAround(rotSide, rotUp mgl64.Quat, worldUp mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()

	orientation := c.view.Orientation()
	check := rotUp.Mul(orientation)

	var tmp mgl64.Quat
	if math.Abs(worldUp.Dot(check.Rotate(mgl64.Vec3{0, 0, -1}))) > gimbalThreshold {
		tmp = rotSide
	} else {
		tmp = rotSide.Mul(rotUp)
	}
	tmp = tmp.Normalize().Mul(orientation).Normalize()
	if !common.IsFiniteQuat(tmp) {
		return
	}
	c.view.SetOrientation(tmp)
}

func (c *cameraImpl) Translate(t mgl64.Vec3) {
	if !common.IsFiniteVec3(t) {
		return
	}
	c.view.SetPosition(c.view.Position().Add(t))
}

func (c *cameraImpl) TranslateAbsolute(p mgl64.Vec3) {
	if !common.IsFiniteVec3(p) {
		return
	}
	c.view.SetPosition(p)
}
