package view

import (
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ksons/xml3d-blender-exporter/common"
)

// Attribute names understood by a view node.
const (
	AttrOrientation = "orientation"
	AttrPosition    = "position"
	AttrFieldOfView = "fieldOfView"
)

// DefaultFieldOfView is the vertical field of view of a view node without an explicit value (radians).
const DefaultFieldOfView = math.Pi / 4

// View is a camera node of the host scene.
// All accessors are direct reads/writes of the node; writes become visible to the host
// renderer on its next frame.
type View interface {
	// ID returns the element id of the view node.
	//
	// Returns:
	//   - string: the id (without leading '#')
	ID() string

	// Orientation returns the current orientation of the node.
	//
	// Returns:
	//   - mgl64.Quat: the orientation as a unit quaternion
	Orientation() mgl64.Quat

	// SetOrientation writes a new orientation. The value is stored as given;
	// normalizing it is the caller's responsibility.
	//
	// Parameters:
	//   - q: the new orientation
	SetOrientation(q mgl64.Quat)

	// Position returns the world-space position of the node.
	//
	// Returns:
	//   - mgl64.Vec3: the position
	Position() mgl64.Vec3

	// SetPosition writes a new world-space position.
	//
	// Parameters:
	//   - p: the new position
	SetPosition(p mgl64.Vec3)

	// Direction returns the forward vector derived from the orientation (-Z rotated).
	//
	// Returns:
	//   - mgl64.Vec3: the unit forward vector
	Direction() mgl64.Vec3

	// UpVector returns the up vector derived from the orientation (+Y rotated).
	//
	// Returns:
	//   - mgl64.Vec3: the unit up vector
	UpVector() mgl64.Vec3

	// FieldOfView returns the vertical field of view.
	//
	// Returns:
	//   - float64: field of view in radians
	FieldOfView() float64

	// Attribute returns the string form of a node attribute, or "" if unset.
	//
	// Parameters:
	//   - name: the attribute name
	//
	// Returns:
	//   - string: the attribute value
	Attribute(name string) string

	// SetAttribute sets a node attribute from its string form.
	// Known attributes (orientation, position, fieldOfView) are parsed and applied.
	//
	// Parameters:
	//   - name: the attribute name
	//   - value: the attribute value
	//
	// Returns:
	//   - error: wraps common.ErrMalformedAttribute if a known attribute cannot be parsed
	SetAttribute(name, value string) error
}

// node is the in-process View implementation.
type node struct {
	mu *sync.RWMutex

	id          string
	orientation mgl64.Quat
	position    mgl64.Vec3
	fieldOfView float64
	attributes  map[string]string

	onChange func(name, value string)
}

var _ View = &node{}

// NewNode creates a view node with the given id.
// Defaults: identity orientation, origin position and DefaultFieldOfView.
//
// Parameters:
//   - id: the element id of the view
//   - options: functional options to configure the node
//
// Returns:
//   - View: the newly created view node
func NewNode(id string, options ...NodeOption) View {
	n := &node{
		mu:          &sync.RWMutex{},
		id:          id,
		orientation: mgl64.QuatIdent(),
		fieldOfView: DefaultFieldOfView,
		attributes:  make(map[string]string),
	}
	for _, option := range options {
		option(n)
	}
	n.attributes[AttrOrientation] = common.FormatAxisAngle(n.orientation)
	n.attributes[AttrPosition] = common.FormatVec3(n.position)
	n.attributes[AttrFieldOfView] = formatFloat(n.fieldOfView)
	return n
}

func (n *node) ID() string {
	return n.id
}

func (n *node) Orientation() mgl64.Quat {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.orientation
}

func (n *node) SetOrientation(q mgl64.Quat) {
	n.mu.Lock()
	n.orientation = q
	value := common.FormatAxisAngle(q)
	n.attributes[AttrOrientation] = value
	cb := n.onChange
	n.mu.Unlock()

	if cb != nil {
		cb(AttrOrientation, value)
	}
}

func (n *node) Position() mgl64.Vec3 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.position
}

func (n *node) SetPosition(p mgl64.Vec3) {
	n.mu.Lock()
	n.position = p
	value := common.FormatVec3(p)
	n.attributes[AttrPosition] = value
	cb := n.onChange
	n.mu.Unlock()

	if cb != nil {
		cb(AttrPosition, value)
	}
}

func (n *node) Direction() mgl64.Vec3 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.orientation.Rotate(mgl64.Vec3{0, 0, -1})
}

func (n *node) UpVector() mgl64.Vec3 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.orientation.Rotate(mgl64.Vec3{0, 1, 0})
}

func (n *node) FieldOfView() float64 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.fieldOfView
}

func (n *node) Attribute(name string) string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.attributes[name]
}

func (n *node) SetAttribute(name, value string) error {
	switch name {
	case AttrOrientation:
		q, err := common.ParseAxisAngle(value)
		if err != nil {
			return fmt.Errorf("view %s: %s: %w", n.id, name, err)
		}
		n.SetOrientation(q)
		return nil
	case AttrPosition:
		p, err := common.ParseVec3(value)
		if err != nil {
			return fmt.Errorf("view %s: %s: %w", n.id, name, err)
		}
		n.SetPosition(p)
		return nil
	case AttrFieldOfView:
		fov, err := strconv.ParseFloat(value, 64)
		if err != nil || fov <= 0 || math.IsInf(fov, 0) {
			return fmt.Errorf("view %s: %s: %w: %q", n.id, name, common.ErrMalformedAttribute, value)
		}
		n.mu.Lock()
		n.fieldOfView = fov
		n.attributes[name] = value
		n.mu.Unlock()
		return nil
	}

	n.mu.Lock()
	n.attributes[name] = value
	cb := n.onChange
	n.mu.Unlock()
	if cb != nil {
		cb(name, value)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
