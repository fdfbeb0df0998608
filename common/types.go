// package common contains plain value types and helpers shared by the navigation engine. They are not interface-wrapped
// structs, just plain structs that express commonly used data-types.
package common

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half-line in world space used for picking.
type Ray struct {
	// Origin is the world-space start point of the ray, normally the camera position.
	Origin mgl64.Vec3
	// Direction is the unit direction of the ray.
	Direction mgl64.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Hit is the result of a ray query against the scene.
// A miss is reported the way the XML3D host does it: with a non-finite point.
type Hit struct {
	// Point is the world-space intersection point.
	Point mgl64.Vec3
	// Normal is the world-space surface normal at Point.
	Normal mgl64.Vec3
}

// Valid reports whether the hit refers to actual geometry.
func (h Hit) Valid() bool {
	return IsFiniteVec3(h.Point)
}

// FrameStats is the payload of a frame-drawn notification.
type FrameStats struct {
	// Primitives is the number of primitives drawn in the frame.
	Primitives int `json:"primitives"`
	// Objects is the number of objects drawn in the frame.
	Objects int `json:"objects"`
}
