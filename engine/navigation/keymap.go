package navigation

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/ksons/xml3d-blender-exporter/common"
	"github.com/ksons/xml3d-blender-exporter/engine/window"
)

// keyCommand is a keyboard navigation command.
type keyCommand int

const (
	keyForward keyCommand = iota
	keyBackward
	keyStrafeLeft
	keyStrafeRight
	keyRise
	keySink
	keyModeEgo
	keyModeTrackball
	keyPick
)

// defaultKeymap maps virtual key codes to commands. Arrow keys mirror WASD.
func defaultKeymap() map[int]keyCommand {
	return map[int]keyCommand{
		common.KeyW:        keyForward,
		common.KeyUp:       keyForward,
		common.KeyS:        keyBackward,
		common.KeyDown:     keyBackward,
		common.KeyA:        keyStrafeLeft,
		common.KeyLeft:     keyStrafeLeft,
		common.KeyD:        keyStrafeRight,
		common.KeyRight:    keyStrafeRight,
		common.KeyR:        keyRise,
		common.KeyF:        keySink,
		common.Key1:        keyModeEgo,
		common.Key2:        keyModeTrackball,
		common.KeyLeftAlt:  keyPick,
		common.KeyRightAlt: keyPick,
	}
}

func (c *controllerImpl) onKeyDown(e *window.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cmd, ok := c.keymap[e.Key]
	if !ok {
		return
	}

	switch cmd {
	case keyForward:
		c.move(c.camera.Direction().Mul(c.zoomSpeed), false)
	case keyBackward:
		c.move(c.camera.Direction().Mul(-c.zoomSpeed), false)
	case keyStrafeLeft, keyStrafeRight:
		up := c.camera.UpVector()
		side, ok := common.SafeNormalize(up.Cross(c.camera.Direction()))
		if ok {
			if cmd == keyStrafeRight {
				side = side.Mul(-1)
			}
			c.move(side, true)
		}
	case keyRise, keySink:
		up, ok := common.SafeNormalize(c.camera.UpVector())
		if ok {
			if cmd == keySink {
				up = up.Mul(-1)
			}
			c.move(up, true)
		}
	case keyModeEgo:
		c.mode = ModeEgo
	case keyModeTrackball:
		c.mode = ModeTrackball
		c.lookAt(c.revolvePoint)
	case keyPick:
		c.altDown = true
	}

	c.needUpdate = true
	e.Stop()
}

func (c *controllerImpl) onKeyUp(e *window.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cmd, ok := c.keymap[e.Key]; ok && cmd == keyPick {
		c.altDown = false
	}
}

// move translates the camera by t; withPivot moves the revolve point along.
// Requires c.mu to be held.
func (c *controllerImpl) move(t mgl64.Vec3, withPivot bool) {
	if !common.IsFiniteVec3(t) {
		return
	}
	c.camera.Translate(t)
	if withPivot {
		c.revolvePoint = c.revolvePoint.Add(t)
	}
}
