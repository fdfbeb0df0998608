package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestAxisAngle(t *testing.T) {
	q := AxisAngle(mgl64.Vec3{0, 2, 0}, math.Pi/2)
	v := q.Rotate(mgl64.Vec3{0, 0, -1})

	assert.InDelta(t, -1.0, v.X(), 1e-12)
	assert.InDelta(t, 0.0, v.Z(), 1e-12)
	assert.InDelta(t, 1.0, q.Len(), 1e-12)
}

func TestAxisAngle_Degenerate(t *testing.T) {
	assert.Equal(t, mgl64.QuatIdent(), AxisAngle(mgl64.Vec3{}, 1))
	assert.Equal(t, mgl64.QuatIdent(), AxisAngle(mgl64.Vec3{1, 0, 0}, math.NaN()))
	assert.Equal(t, mgl64.QuatIdent(), AxisAngle(mgl64.Vec3{math.Inf(1), 0, 0}, 1))
}

func TestToAxisAngle(t *testing.T) {
	axis, angle := ToAxisAngle(mgl64.QuatRotate(0.75, mgl64.Vec3{1, 0, 0}))
	assert.InDelta(t, 0.75, angle, 1e-12)
	assert.InDelta(t, 1.0, axis.X(), 1e-12)

	axis, angle = ToAxisAngle(mgl64.QuatIdent())
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, axis)
	assert.Equal(t, 0.0, angle)
}

func TestSafeNormalize(t *testing.T) {
	n, ok := SafeNormalize(mgl64.Vec3{3, 0, 4})
	assert.True(t, ok)
	assert.InDelta(t, 1.0, n.Len(), 1e-12)

	_, ok = SafeNormalize(mgl64.Vec3{})
	assert.False(t, ok)

	_, ok = SafeNormalize(mgl64.Vec3{math.NaN(), 1, 0})
	assert.False(t, ok)
}

func TestSafeAcos(t *testing.T) {
	a, ok := SafeAcos(1 + 1e-15)
	assert.True(t, ok)
	assert.Equal(t, 0.0, a)

	a, ok = SafeAcos(-1 - 1e-15)
	assert.True(t, ok)
	assert.Equal(t, math.Pi, a)

	_, ok = SafeAcos(1.5)
	assert.False(t, ok)

	_, ok = SafeAcos(math.NaN())
	assert.False(t, ok)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-3, 0, 10))
	assert.Equal(t, 10.0, Clamp(12, 0, 10))
	assert.Equal(t, 4.0, Clamp(4, 0, 10))
}
