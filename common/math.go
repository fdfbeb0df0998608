package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// degenerateEpsilon is the squared length under which a vector is treated as zero.
const degenerateEpsilon = 1e-24

// acosTolerance is the drift past ±1 SafeAcos accepts as rounding error.
const acosTolerance = 1e-9

// AxisAngle builds a unit quaternion rotating by angle radians around axis.
// The axis does not need to be normalized. A zero-length or non-finite axis, or a
// non-finite angle, yields the identity rotation.
//
// Parameters:
//   - axis: rotation axis in world or local space
//   - angle: rotation angle in radians
//
// Returns:
//   - mgl64.Quat: the unit rotation quaternion
func AxisAngle(axis mgl64.Vec3, angle float64) mgl64.Quat {
	n, ok := SafeNormalize(axis)
	if !ok || math.IsNaN(angle) || math.IsInf(angle, 0) {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatRotate(angle, n)
}

// ToAxisAngle decomposes a rotation quaternion into a unit axis and an angle in radians.
// The identity rotation (and any quaternion too close to it to recover an axis)
// reports the axis (0, 0, 1) with angle 0, matching the XML3D default orientation.
//
// Parameters:
//   - q: the rotation quaternion (normalized internally)
//
// Returns:
//   - mgl64.Vec3: unit rotation axis
//   - float64: rotation angle in radians, in [0, 2π]
func ToAxisAngle(q mgl64.Quat) (mgl64.Vec3, float64) {
	q = q.Normalize()
	w := Clamp(q.W, -1, 1)
	angle := 2 * math.Acos(w)
	s := math.Sqrt(1 - w*w)
	if s < 1e-12 {
		return mgl64.Vec3{0, 0, 1}, 0
	}
	return q.V.Mul(1 / s), angle
}

// SafeNormalize returns the unit vector of v.
// Zero-length and non-finite vectors report ok=false and return v unchanged so
// callers can skip the operation instead of propagating NaN.
//
// Parameters:
//   - v: the vector to normalize
//
// Returns:
//   - mgl64.Vec3: the normalized vector (or v when degenerate)
//   - bool: false if v could not be normalized
func SafeNormalize(v mgl64.Vec3) (mgl64.Vec3, bool) {
	if !IsFiniteVec3(v) {
		return v, false
	}
	l2 := v.Dot(v)
	if l2 < degenerateEpsilon {
		return v, false
	}
	return v.Mul(1 / math.Sqrt(l2)), true
}

// SafeAcos returns acos(x) and whether the result is usable.
// Arguments within acosTolerance outside [-1, 1] are floating point drift on dot
// products of unit vectors and are clamped. NaN and larger arguments report
// ok=false; the returned angle is then 0.
//
// Parameters:
//   - x: the cosine value
//
// Returns:
//   - float64: the angle in radians, or 0 when not ok
//   - bool: false when acos would be NaN
func SafeAcos(x float64) (float64, bool) {
	if math.IsNaN(x) || math.Abs(x) > 1+acosTolerance {
		return 0, false
	}
	return math.Acos(Clamp(x, -1, 1)), true
}

// IsFiniteVec3 reports whether all components of v are finite numbers.
func IsFiniteVec3(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// IsFiniteQuat reports whether all components of q are finite numbers.
func IsFiniteQuat(q mgl64.Quat) bool {
	if math.IsNaN(q.W) || math.IsInf(q.W, 0) {
		return false
	}
	return IsFiniteVec3(q.V)
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
