package navigation

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ksons/xml3d-blender-exporter/common"
	"github.com/ksons/xml3d-blender-exporter/engine/view"
	"github.com/ksons/xml3d-blender-exporter/engine/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewController_Defaults(t *testing.T) {
	host := newFakeHost(view.NewNode("v"))
	ctrl, err := NewController(host, window.NewHeadlessSurface(testWidth, testHeight))
	require.NoError(t, err)

	assert.Equal(t, ModeEgo, ctrl.Mode())
	assert.Equal(t, ActionNone, ctrl.Action())
	assert.Equal(t, mgl64.Vec3{0, 0, -1}, ctrl.RevolvePoint())
	assert.Equal(t, 1.0, ctrl.RotateSpeed())
	assert.Equal(t, 1.0, ctrl.ZoomSpeed())
	assert.False(t, ctrl.Attached())
	assert.False(t, ctrl.NeedsUpdate())
	assert.Equal(t, "v", ctrl.Camera().View().ID())
}

func TestNewController_NoView(t *testing.T) {
	host := newFakeHost()
	ctrl, err := NewController(host, window.NewHeadlessSurface(testWidth, testHeight))

	assert.ErrorIs(t, err, ErrNoView)
	assert.Nil(t, ctrl)
	assert.Equal(t, 1, host.updateCount())
}

func TestNewController_NilSurface(t *testing.T) {
	_, err := NewController(newFakeHost(view.NewNode("v")), nil)
	assert.ErrorIs(t, err, ErrNilSurface)
}

func TestNewController_ActiveView(t *testing.T) {
	host := newFakeHost(view.NewNode("first"), view.NewNode("second"))
	host.active = "#second"

	ctrl, err := NewController(host, window.NewHeadlessSurface(testWidth, testHeight))
	require.NoError(t, err)
	assert.Equal(t, "second", ctrl.Camera().View().ID())

	host.active = "#missing"
	ctrl, err = NewController(host, window.NewHeadlessSurface(testWidth, testHeight))
	require.NoError(t, err)
	assert.Equal(t, "first", ctrl.Camera().View().ID())
}

func TestNewController_Descriptor(t *testing.T) {
	tests := []struct {
		name      string
		desc      Descriptor
		mode      Mode
		revolve   mgl64.Vec3
		zoomSpeed float64
	}{
		{name: "walk is ego", desc: Descriptor{Mode: "walk"}, mode: ModeEgo, revolve: DefaultRevolvePoint, zoomSpeed: 1},
		{name: "unknown mode falls back to examine", desc: Descriptor{Mode: "fly"}, mode: ModeExamine, revolve: DefaultRevolvePoint, zoomSpeed: 1},
		{name: "empty mode falls back to examine", desc: Descriptor{}, mode: ModeExamine, revolve: DefaultRevolvePoint, zoomSpeed: 1},
		{name: "trackball", desc: Descriptor{Mode: "Trackball"}, mode: ModeTrackball, revolve: DefaultRevolvePoint, zoomSpeed: 1},
		{
			name:      "legacy pivot",
			desc:      Descriptor{Mode: "examine", ResolveAround: "1 2 3"},
			mode:      ModeExamine,
			revolve:   mgl64.Vec3{1, 2, 3},
			zoomSpeed: 1,
		},
		{
			name:      "revolveAround wins over resolveAround",
			desc:      Descriptor{Mode: "examine", ResolveAround: "1 2 3", RevolveAround: "4 5 6"},
			mode:      ModeExamine,
			revolve:   mgl64.Vec3{4, 5, 6},
			zoomSpeed: 1,
		},
		{
			name:      "malformed pivot is ignored",
			desc:      Descriptor{Mode: "examine", RevolveAround: "1 two"},
			mode:      ModeExamine,
			revolve:   DefaultRevolvePoint,
			zoomSpeed: 1,
		},
		{name: "speed scales zoom", desc: Descriptor{Mode: "examine", Speed: 2.5}, mode: ModeExamine, revolve: DefaultRevolvePoint, zoomSpeed: 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := newFakeHost(view.NewNode("v"))
			ctrl, err := NewController(host, window.NewHeadlessSurface(testWidth, testHeight), WithDescriptor(tt.desc))
			require.NoError(t, err)

			assert.Equal(t, tt.mode, ctrl.Mode())
			assert.Equal(t, tt.revolve, ctrl.RevolvePoint())
			assert.Equal(t, tt.zoomSpeed, ctrl.ZoomSpeed())
		})
	}
}

func TestAttachDetach(t *testing.T) {
	host := newFakeHost(view.NewNode("v"))
	surface := window.NewHeadlessSurface(testWidth, testHeight)
	ctrl, err := NewController(host, surface)
	require.NoError(t, err)

	ctrl.Attach()
	assert.True(t, ctrl.Attached())
	assert.Equal(t, 6, surface.ListenerCount())

	ctrl.Attach()
	assert.Equal(t, 6, surface.ListenerCount(), "attach must be idempotent")

	ctrl.Detach()
	assert.False(t, ctrl.Attached())
	assert.Equal(t, 0, surface.ListenerCount())

	assert.NotPanics(t, ctrl.Detach)
	assert.Equal(t, 0, surface.ListenerCount())
}

func TestAttach_WithoutKeyboard(t *testing.T) {
	surface := window.NewHeadlessSurface(testWidth, testHeight)
	ctrl, err := NewController(newFakeHost(view.NewNode("v")), surface, WithKeyboard(false))
	require.NoError(t, err)

	ctrl.Attach()
	assert.Equal(t, 4, surface.ListenerCount())

	e := &window.Event{Type: window.EventKeyDown, Key: common.KeyW}
	surface.Dispatch(e)
	assert.Equal(t, mgl64.Vec3{}, ctrl.Camera().Position())
}

func TestAttach_ModeNone(t *testing.T) {
	surface := window.NewHeadlessSurface(testWidth, testHeight)
	ctrl, err := NewController(newFakeHost(view.NewNode("v")), surface, WithDescriptor(Descriptor{Mode: "none"}))
	require.NoError(t, err)

	ctrl.Attach()
	assert.False(t, ctrl.Attached())
	assert.Equal(t, 0, surface.ListenerCount())
}

func TestDetach_LeavesForeignListeners(t *testing.T) {
	f := newFixture(t, nil)
	f.surface.AddListener(window.EventPointerDown, func(e *window.Event) {})

	f.ctrl.Detach()
	assert.Equal(t, 1, f.surface.ListenerCount())
}

func TestSetMode_IsPure(t *testing.T) {
	f := newFixture(t, []view.NodeOption{view.WithPosition(mgl64.Vec3{1, 2, 3})},
		WithMode(ModeExamine), WithRevolvePoint(mgl64.Vec3{4, 0, -2}))
	orientation := f.ctrl.Camera().Orientation()

	f.ctrl.SetMode(ModeTrackball)
	assert.Equal(t, ModeTrackball, f.ctrl.Mode())
	f.ctrl.SetMode(ModeExamine)

	assert.Equal(t, ModeExamine, f.ctrl.Mode())
	assert.Equal(t, orientation, f.ctrl.Camera().Orientation())
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, f.ctrl.Camera().Position())
	assert.True(t, f.ctrl.Attached())
}

func TestSetMode_CancelsGesture(t *testing.T) {
	f := newFixture(t, nil, WithMode(ModeExamine))
	f.press(window.ButtonPrimary, 10, 10)
	require.Equal(t, ActionRotate, f.ctrl.Action())

	f.ctrl.SetMode(ModeTrackball)
	assert.Equal(t, ActionNone, f.ctrl.Action())
}

func TestUpdate(t *testing.T) {
	f := newFixture(t, nil, WithMode(ModeExamine))
	assert.False(t, f.ctrl.Update(), "no redraw without a change")

	f.press(window.ButtonPrimary, 100, 100)
	f.move(120, 100)
	assert.True(t, f.ctrl.NeedsUpdate())

	assert.True(t, f.ctrl.Update())
	assert.Equal(t, 1, f.host.updateCount())
	assert.False(t, f.ctrl.Update())
	assert.Equal(t, 1, f.host.updateCount())
}

func TestUpdate_DetachedDoesNotRedraw(t *testing.T) {
	f := newFixture(t, nil, WithMode(ModeExamine))
	f.press(window.ButtonPrimary, 100, 100)
	f.move(120, 100)
	f.ctrl.Detach()

	assert.False(t, f.ctrl.Update())
	assert.Equal(t, 0, f.host.updateCount())
}

func TestPointerDown_ActionPerButton(t *testing.T) {
	tests := []struct {
		name   string
		mode   Mode
		button window.Button
		action Action
	}{
		{name: "examine primary rotates", mode: ModeExamine, button: window.ButtonPrimary, action: ActionRotate},
		{name: "trackball primary", mode: ModeTrackball, button: window.ButtonPrimary, action: ActionTrackball},
		{name: "ego primary looks around", mode: ModeEgo, button: window.ButtonPrimary, action: ActionLookAround},
		{name: "middle translates", mode: ModeExamine, button: window.ButtonMiddle, action: ActionTranslate},
		{name: "secondary dollies", mode: ModeEgo, button: window.ButtonSecondary, action: ActionDolly},
		{name: "unknown button", mode: ModeExamine, button: window.Button(7), action: ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil, WithMode(tt.mode))
			e := f.press(tt.button, 10, 10)

			assert.Equal(t, tt.action, f.ctrl.Action())
			assert.True(t, e.Stopped())

			f.release(10, 10)
			assert.Equal(t, ActionNone, f.ctrl.Action())
		})
	}
}

func TestPointerMove_WithoutActionIsIgnored(t *testing.T) {
	f := newFixture(t, nil, WithMode(ModeExamine))
	e := f.move(300, 200)

	assert.False(t, e.Stopped())
	assert.False(t, f.ctrl.NeedsUpdate())
	assert.Equal(t, mgl64.QuatIdent(), f.ctrl.Camera().Orientation())
}

func TestContextMenuSuppressed(t *testing.T) {
	f := newFixture(t, nil)
	e := f.dispatch(window.Event{Type: window.EventContextMenu})
	assert.True(t, e.Stopped())
}

func TestKeyboard_Movement(t *testing.T) {
	tests := []struct {
		name     string
		key      int
		position mgl64.Vec3
		revolve  mgl64.Vec3
	}{
		{name: "W forward", key: common.KeyW, position: mgl64.Vec3{0, 0, -2}, revolve: DefaultRevolvePoint},
		{name: "up arrow forward", key: common.KeyUp, position: mgl64.Vec3{0, 0, -2}, revolve: DefaultRevolvePoint},
		{name: "S backward", key: common.KeyS, position: mgl64.Vec3{0, 0, 2}, revolve: DefaultRevolvePoint},
		{name: "down arrow backward", key: common.KeyDown, position: mgl64.Vec3{0, 0, 2}, revolve: DefaultRevolvePoint},
		{name: "D strafes right", key: common.KeyD, position: mgl64.Vec3{1, 0, 0}, revolve: mgl64.Vec3{1, 0, -1}},
		{name: "right arrow strafes right", key: common.KeyRight, position: mgl64.Vec3{1, 0, 0}, revolve: mgl64.Vec3{1, 0, -1}},
		{name: "A strafes left", key: common.KeyA, position: mgl64.Vec3{-1, 0, 0}, revolve: mgl64.Vec3{-1, 0, -1}},
		{name: "left arrow strafes left", key: common.KeyLeft, position: mgl64.Vec3{-1, 0, 0}, revolve: mgl64.Vec3{-1, 0, -1}},
		{name: "R rises", key: common.KeyR, position: mgl64.Vec3{0, 1, 0}, revolve: mgl64.Vec3{0, 1, -1}},
		{name: "F sinks", key: common.KeyF, position: mgl64.Vec3{0, -1, 0}, revolve: mgl64.Vec3{0, -1, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Forward/backward scale with zoom speed, strafing does not.
			opts := []ControllerOption{}
			if tt.key == common.KeyW || tt.key == common.KeyUp || tt.key == common.KeyS || tt.key == common.KeyDown {
				opts = append(opts, WithZoomSpeed(2))
			}
			f := newFixture(t, nil, opts...)
			e := f.key(tt.key)

			assert.True(t, e.Stopped())
			assert.True(t, f.ctrl.NeedsUpdate())
			assertVec3InDelta(t, tt.position, f.ctrl.Camera().Position(), epsilon)
			assertVec3InDelta(t, tt.revolve, f.ctrl.RevolvePoint(), epsilon)
		})
	}
}

func TestKeyboard_UnknownKeyIgnored(t *testing.T) {
	f := newFixture(t, nil)
	e := f.key(common.KeyLeftShift)

	assert.False(t, e.Stopped())
	assert.False(t, f.ctrl.NeedsUpdate())
	assert.Equal(t, mgl64.Vec3{}, f.ctrl.Camera().Position())
}

func TestKeyboard_ModeKeys(t *testing.T) {
	f := newFixture(t, nil, WithMode(ModeExamine))

	f.key(common.Key2)
	assert.Equal(t, ModeTrackball, f.ctrl.Mode())
	// Default revolve point is straight ahead, so the trackball switch keeps the orientation.
	assertVec3InDelta(t, mgl64.Vec3{0, 0, -1}, f.ctrl.Camera().Direction(), 1e-6)

	f.key(common.Key1)
	assert.Equal(t, ModeEgo, f.ctrl.Mode())
}

func TestKeyboard_TrackballKeyLooksAtRevolvePoint(t *testing.T) {
	f := newFixture(t, nil, WithMode(ModeExamine), WithRevolvePoint(mgl64.Vec3{1, 0, -1}))

	f.key(common.Key2)
	expected := mgl64.Vec3{1, 0, -1}.Normalize()
	assertVec3InDelta(t, expected, f.ctrl.Camera().Direction(), 1e-6)
}

func TestAltPick(t *testing.T) {
	f := newFixture(t, nil, WithMode(ModeExamine))
	f.host.hit = common.Hit{Point: mgl64.Vec3{1, 0, -1}, Normal: mgl64.Vec3{0, 0, 1}}

	f.key(common.KeyLeftAlt)
	assert.True(t, f.ctrl.AltDown())

	e := f.press(window.ButtonPrimary, 420, 300)
	assert.True(t, e.Stopped())
	assert.Equal(t, ActionNone, f.ctrl.Action())
	require.Len(t, f.host.rays, 1)
	assert.Equal(t, mgl64.Vec3{420, 300, 0}, f.host.rays[0].Origin)
	assert.Equal(t, mgl64.Vec3{1, 0, -1}, f.ctrl.RevolvePoint())
	assertVec3InDelta(t, mgl64.Vec3{1, 0, -1}.Normalize(), f.ctrl.Camera().Direction(), 1e-6)
	assertVec3InDelta(t, mgl64.Vec3{}, f.ctrl.Camera().Position(), 0)

	f.keyUp(common.KeyLeftAlt)
	assert.False(t, f.ctrl.AltDown())

	f.press(window.ButtonPrimary, 420, 300)
	assert.Equal(t, ActionRotate, f.ctrl.Action())
}

func TestAltPick_Miss(t *testing.T) {
	f := newFixture(t, nil, WithMode(ModeExamine))

	f.key(common.KeyRightAlt)
	f.press(window.ButtonPrimary, 10, 10)

	assert.Equal(t, DefaultRevolvePoint, f.ctrl.RevolvePoint())
	assert.Equal(t, mgl64.QuatIdent(), f.ctrl.Camera().Orientation())
}

func TestSetRevolvePoint_RejectsNonFinite(t *testing.T) {
	f := newFixture(t, nil)
	f.ctrl.SetRevolvePoint(mgl64.Vec3{1, 2, 3})
	f.ctrl.SetRevolvePoint(mgl64.Vec3{1, 2, math.Inf(1)})

	assert.Equal(t, mgl64.Vec3{1, 2, 3}, f.ctrl.RevolvePoint())
}

func TestSetCamera(t *testing.T) {
	f := newFixture(t, nil)
	other := view.NewNode("other", view.WithPosition(mgl64.Vec3{0, 0, 10}))

	f.ctrl.SetCamera(other)
	f.ctrl.SetCamera(nil)

	assert.Equal(t, "other", f.ctrl.Camera().View().ID())
	f.key(common.KeyW)
	assertVec3InDelta(t, mgl64.Vec3{0, 0, 9}, other.Position(), epsilon)
	assert.Equal(t, mgl64.Vec3{}, f.view.Position())
}
