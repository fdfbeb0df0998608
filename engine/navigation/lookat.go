package navigation

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/ksons/xml3d-blender-exporter/common"
)

// lookAt turns the camera toward point in place.
// The target direction is split into a horizontal angle (around the camera up axis)
// and a vertical angle (around the camera side axis), measured against the current
// direction. The signs are picked per quadrant from the relative placement of camera
// and point. The result is exact for targets offset along a single camera axis;
// diagonal targets are only approximated, and targets behind the camera more so.
// Requires c.mu to be held.
func (c *controllerImpl) lookAt(point mgl64.Vec3) bool {
	pos := c.camera.Position()
	dir := c.camera.Direction()
	up := c.camera.UpVector()

	target, ok := common.SafeNormalize(point.Sub(pos))
	if !ok {
		return false
	}
	side, ok := common.SafeNormalize(up.Cross(dir))
	if !ok {
		return false
	}
	projX, ok := common.SafeNormalize(target.Sub(up.Mul(target.Dot(up))))
	if !ok {
		return false
	}
	projY, ok := common.SafeNormalize(target.Sub(side.Mul(target.Dot(side))))
	if !ok {
		return false
	}

	angleX, okX := common.SafeAcos(dir.Dot(projX))
	angleY, okY := common.SafeAcos(dir.Dot(projY))
	if !okX || !okY {
		return false
	}

	if up.Y() < 0 {
		angleX, angleY = -angleX, -angleY
	}
	if pos.Z() >= point.Z() {
		if dir.X() < projX.X() {
			angleX = -angleX
		}
	} else if dir.X() > projX.X() {
		angleX = -angleX
	}
	if dir.Y() < projY.Y() {
		angleY = -angleY
	}

	c.camera.LookAround(common.AxisAngle(up, angleX), common.AxisAngle(side, angleY), c.upVector)
	return true
}
