package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ksons/xml3d-blender-exporter/common"
)

// Kind identifies the geometry behind a Model.
type Kind int

const (
	KindSphere Kind = iota
	KindBox
	KindMesh
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindBox:
		return "box"
	case KindMesh:
		return "mesh"
	default:
		return "unknown"
	}
}

// hitEpsilon is the minimum ray distance accepted as a hit, so rays starting on a
// surface do not report it.
const hitEpsilon = 1e-9

// Model is pickable geometry in object space.
// Models carry no transform; a game object places them in the scene.
type Model interface {
	// Name returns the model's name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Kind returns the geometry type of the model.
	//
	// Returns:
	//   - Kind: the geometry type
	Kind() Kind

	// Intersect casts a ray against the model.
	//
	// Parameters:
	//   - ray: the ray in object space; its direction does not need to be normalized
	//
	// Returns:
	//   - float64: the ray parameter of the nearest hit in front of the origin
	//   - mgl64.Vec3: the unit surface normal at the hit
	//   - bool: false if the ray misses
	Intersect(ray common.Ray) (float64, mgl64.Vec3, bool)

	// PrimitiveCount returns the number of primitives the model is drawn with.
	//
	// Returns:
	//   - int: the primitive (triangle) count
	PrimitiveCount() int

	// BoundingRadius returns the radius of a sphere around the object-space origin
	// that contains the model.
	//
	// Returns:
	//   - float64: the bounding radius
	BoundingRadius() float64
}

type base struct {
	name string
}

func (b *base) Name() string {
	return b.name
}

type sphere struct {
	base
	center mgl64.Vec3
	radius float64
}

type box struct {
	base
	min, max mgl64.Vec3
}

type mesh struct {
	base
	triangles []Triangle
	radius    float64
}

// Triangle is a single mesh face with counter-clockwise winding.
type Triangle struct {
	A, B, C mgl64.Vec3
}

var (
	_ Model = &sphere{}
	_ Model = &box{}
	_ Model = &mesh{}
)

// sphereSegments is the tessellation the host uses when it draws a sphere.
const sphereSegments = 32

// NewSphere creates a sphere model.
//
// Parameters:
//   - center: the object-space center
//   - radius: the radius (absolute value is used)
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the sphere
func NewSphere(center mgl64.Vec3, radius float64, options ...ModelBuilderOption) Model {
	s := &sphere{base: base{name: "sphere"}, center: center, radius: math.Abs(radius)}
	for _, option := range options {
		option(&s.base)
	}
	return s
}

// NewBox creates an axis-aligned box model from two opposite corners.
//
// Parameters:
//   - a, b: opposite corners in object space, in any order
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the box
func NewBox(a, b mgl64.Vec3, options ...ModelBuilderOption) Model {
	bx := &box{base: base{name: "box"}}
	for i := range 3 {
		bx.min[i] = math.Min(a[i], b[i])
		bx.max[i] = math.Max(a[i], b[i])
	}
	for _, option := range options {
		option(&bx.base)
	}
	return bx
}

// NewMesh creates a triangle mesh model.
//
// Parameters:
//   - triangles: the faces; the slice is copied
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the mesh
func NewMesh(triangles []Triangle, options ...ModelBuilderOption) Model {
	m := &mesh{base: base{name: "mesh"}, triangles: make([]Triangle, len(triangles))}
	copy(m.triangles, triangles)
	for _, t := range m.triangles {
		for _, v := range []mgl64.Vec3{t.A, t.B, t.C} {
			m.radius = math.Max(m.radius, v.Len())
		}
	}
	for _, option := range options {
		option(&m.base)
	}
	return m
}

func (s *sphere) Kind() Kind {
	return KindSphere
}

func (s *sphere) Intersect(ray common.Ray) (float64, mgl64.Vec3, bool) {
	d := ray.Direction
	oc := ray.Origin.Sub(s.center)
	a := d.Dot(d)
	if a == 0 {
		return 0, mgl64.Vec3{}, false
	}
	halfB := oc.Dot(d)
	c := oc.Dot(oc) - s.radius*s.radius
	disc := halfB*halfB - a*c
	if disc < 0 {
		return 0, mgl64.Vec3{}, false
	}

	sq := math.Sqrt(disc)
	t := (-halfB - sq) / a
	if t < hitEpsilon {
		t = (-halfB + sq) / a
		if t < hitEpsilon {
			return 0, mgl64.Vec3{}, false
		}
	}
	n, ok := common.SafeNormalize(ray.At(t).Sub(s.center))
	if !ok {
		return 0, mgl64.Vec3{}, false
	}
	return t, n, true
}

func (s *sphere) PrimitiveCount() int {
	return 2 * sphereSegments * (sphereSegments - 1)
}

func (s *sphere) BoundingRadius() float64 {
	return s.center.Len() + s.radius
}

func (b *box) Kind() Kind {
	return KindBox
}

// Intersect uses the slab method; the normal is the face of the entering slab.
func (b *box) Intersect(ray common.Ray) (float64, mgl64.Vec3, bool) {
	tNear, tFar := math.Inf(-1), math.Inf(1)
	nearAxis, farAxis := -1, -1

	for i := range 3 {
		o, d := ray.Origin[i], ray.Direction[i]
		if d == 0 {
			if o < b.min[i] || o > b.max[i] {
				return 0, mgl64.Vec3{}, false
			}
			continue
		}
		t1 := (b.min[i] - o) / d
		t2 := (b.max[i] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tNear {
			tNear, nearAxis = t1, i
		}
		if t2 < tFar {
			tFar, farAxis = t2, i
		}
		if tNear > tFar {
			return 0, mgl64.Vec3{}, false
		}
	}

	t, axis, inside := tNear, nearAxis, false
	if t < hitEpsilon {
		// Origin inside the box: report the exit face.
		t, axis, inside = tFar, farAxis, true
	}
	if t < hitEpsilon || axis < 0 {
		return 0, mgl64.Vec3{}, false
	}

	var n mgl64.Vec3
	n[axis] = -math.Copysign(1, ray.Direction[axis])
	if inside {
		n[axis] = -n[axis]
	}
	return t, n, true
}

func (b *box) PrimitiveCount() int {
	return 12
}

func (b *box) BoundingRadius() float64 {
	r := 0.0
	for _, corner := range []mgl64.Vec3{
		{b.min[0], b.min[1], b.min[2]}, {b.max[0], b.max[1], b.max[2]},
		{b.min[0], b.max[1], b.min[2]}, {b.max[0], b.min[1], b.max[2]},
		{b.min[0], b.min[1], b.max[2]}, {b.max[0], b.max[1], b.min[2]},
		{b.max[0], b.min[1], b.min[2]}, {b.min[0], b.max[1], b.max[2]},
	} {
		r = math.Max(r, corner.Len())
	}
	return r
}

func (m *mesh) Kind() Kind {
	return KindMesh
}

func (m *mesh) Intersect(ray common.Ray) (float64, mgl64.Vec3, bool) {
	best := math.Inf(1)
	var normal mgl64.Vec3
	for _, tri := range m.triangles {
		if t, n, ok := tri.Intersect(ray); ok && t < best {
			best, normal = t, n
		}
	}
	if math.IsInf(best, 1) {
		return 0, mgl64.Vec3{}, false
	}
	return best, normal, true
}

func (m *mesh) PrimitiveCount() int {
	return len(m.triangles)
}

func (m *mesh) BoundingRadius() float64 {
	return m.radius
}

// Intersect casts a ray against the triangle (Möller-Trumbore). Both faces are hit;
// the normal follows the winding order.
//
// Parameters:
//   - ray: the ray in object space
//
// Returns:
//   - float64: the ray parameter of the hit
//   - mgl64.Vec3: the unit face normal
//   - bool: false if the ray misses or the triangle is degenerate
func (tri Triangle) Intersect(ray common.Ray) (float64, mgl64.Vec3, bool) {
	e1 := tri.B.Sub(tri.A)
	e2 := tri.C.Sub(tri.A)
	p := ray.Direction.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < 1e-12 {
		return 0, mgl64.Vec3{}, false
	}
	inv := 1 / det

	s := ray.Origin.Sub(tri.A)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, mgl64.Vec3{}, false
	}
	q := s.Cross(e1)
	v := ray.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, mgl64.Vec3{}, false
	}
	t := e2.Dot(q) * inv
	if t < hitEpsilon {
		return 0, mgl64.Vec3{}, false
	}

	n, ok := common.SafeNormalize(e1.Cross(e2))
	if !ok {
		return 0, mgl64.Vec3{}, false
	}
	return t, n, true
}
