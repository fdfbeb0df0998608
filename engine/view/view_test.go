package view

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ksons/xml3d-blender-exporter/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNode_Defaults(t *testing.T) {
	v := NewNode("cam")

	assert.Equal(t, "cam", v.ID())
	assert.Equal(t, mgl64.QuatIdent(), v.Orientation())
	assert.Equal(t, mgl64.Vec3{}, v.Position())
	assert.Equal(t, DefaultFieldOfView, v.FieldOfView())
	assert.Equal(t, mgl64.Vec3{0, 0, -1}, v.Direction())
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, v.UpVector())
	assert.Equal(t, "0 0 1 0", v.Attribute(AttrOrientation))
	assert.Equal(t, "0 0 0", v.Attribute(AttrPosition))
}

func TestNode_WritesUpdateAttributes(t *testing.T) {
	var changes []string
	v := NewNode("cam", WithChangeCallback(func(name, value string) {
		changes = append(changes, name+"="+value)
	}))

	v.SetPosition(mgl64.Vec3{1, 2, 3})
	v.SetOrientation(mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0}))

	assert.Equal(t, "1 2 3", v.Attribute(AttrPosition))
	require.Len(t, changes, 2)
	assert.Equal(t, "position=1 2 3", changes[0])

	axis, angle := common.ToAxisAngle(v.Orientation())
	assert.InDelta(t, 1.0, axis.Y(), 1e-12)
	assert.InDelta(t, math.Pi/2, angle, 1e-12)

	dir := v.Direction()
	assert.InDelta(t, -1.0, dir.X(), 1e-12)
	assert.InDelta(t, 0.0, dir.Z(), 1e-12)
}

func TestNode_SetAttribute(t *testing.T) {
	v := NewNode("cam")

	require.NoError(t, v.SetAttribute(AttrPosition, "0 1.5 10"))
	assert.Equal(t, mgl64.Vec3{0, 1.5, 10}, v.Position())

	require.NoError(t, v.SetAttribute(AttrOrientation, "1 0 0 0.5"))
	axis, angle := common.ToAxisAngle(v.Orientation())
	assert.InDelta(t, 1.0, axis.X(), 1e-12)
	assert.InDelta(t, 0.5, angle, 1e-12)

	require.NoError(t, v.SetAttribute(AttrFieldOfView, "0.9"))
	assert.Equal(t, 0.9, v.FieldOfView())

	require.NoError(t, v.SetAttribute("class", "main"))
	assert.Equal(t, "main", v.Attribute("class"))
}

func TestNode_SetAttributeMalformed(t *testing.T) {
	v := NewNode("cam", WithPosition(mgl64.Vec3{1, 1, 1}))

	assert.ErrorIs(t, v.SetAttribute(AttrPosition, "1 1"), common.ErrMalformedAttribute)
	assert.ErrorIs(t, v.SetAttribute(AttrOrientation, "x y z w"), common.ErrMalformedAttribute)
	assert.ErrorIs(t, v.SetAttribute(AttrFieldOfView, "-1"), common.ErrMalformedAttribute)
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, v.Position())
}

type stubHost struct {
	active string
	views  []View
}

func (h *stubHost) ActiveView() string { return h.active }

func (h *stubHost) ViewByID(id string) View {
	for _, v := range h.views {
		if v.ID() == id {
			return v
		}
	}
	return nil
}

func (h *stubHost) FirstView() View {
	if len(h.views) == 0 {
		return nil
	}
	return h.views[0]
}

func (h *stubHost) GenerateRay(x, y float64) common.Ray { return common.Ray{} }

func (h *stubHost) Pick(ray common.Ray) common.Hit { return common.Hit{} }

func (h *stubHost) Update() {}

func TestResolveView(t *testing.T) {
	a, b := NewNode("a"), NewNode("b")

	assert.Same(t, b, ResolveView(&stubHost{active: "#b", views: []View{a, b}}))
	assert.Same(t, b, ResolveView(&stubHost{active: "b", views: []View{a, b}}))
	assert.Same(t, a, ResolveView(&stubHost{active: "#missing", views: []View{a, b}}))
	assert.Same(t, a, ResolveView(&stubHost{views: []View{a, b}}))
	assert.Nil(t, ResolveView(&stubHost{}))
	assert.Nil(t, ResolveView(nil))
}
