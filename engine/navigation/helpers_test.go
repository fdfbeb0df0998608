package navigation

import (
	"math"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ksons/xml3d-blender-exporter/common"
	"github.com/ksons/xml3d-blender-exporter/engine/view"
	"github.com/ksons/xml3d-blender-exporter/engine/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testWidth  = 800
	testHeight = 600
	epsilon    = 1e-9
)

// fakeHost records redraw requests and answers picks with a canned hit.
type fakeHost struct {
	mu      sync.Mutex
	active  string
	views   []view.View
	hit     common.Hit
	rays    []common.Ray
	updates int
}

var _ view.Host = &fakeHost{}

func newFakeHost(views ...view.View) *fakeHost {
	nan := math.NaN()
	return &fakeHost{
		views: views,
		hit:   common.Hit{Point: mgl64.Vec3{nan, nan, nan}},
	}
}

func (h *fakeHost) ActiveView() string {
	return h.active
}

func (h *fakeHost) ViewByID(id string) view.View {
	for _, v := range h.views {
		if v.ID() == id {
			return v
		}
	}
	return nil
}

func (h *fakeHost) FirstView() view.View {
	if len(h.views) == 0 {
		return nil
	}
	return h.views[0]
}

func (h *fakeHost) GenerateRay(x, y float64) common.Ray {
	h.mu.Lock()
	defer h.mu.Unlock()
	r := common.Ray{Origin: mgl64.Vec3{x, y, 0}, Direction: mgl64.Vec3{0, 0, -1}}
	h.rays = append(h.rays, r)
	return r
}

func (h *fakeHost) Pick(ray common.Ray) common.Hit {
	return h.hit
}

func (h *fakeHost) Update() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.updates++
}

func (h *fakeHost) updateCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.updates
}

type fixture struct {
	ctrl    Controller
	host    *fakeHost
	surface window.HeadlessSurface
	view    view.View
}

func newFixture(t *testing.T, nodeOpts []view.NodeOption, opts ...ControllerOption) *fixture {
	t.Helper()
	v := view.NewNode("defaultView", nodeOpts...)
	host := newFakeHost(v)
	surface := window.NewHeadlessSurface(testWidth, testHeight)

	ctrl, err := NewController(host, surface, opts...)
	require.NoError(t, err)
	ctrl.Attach()
	return &fixture{ctrl: ctrl, host: host, surface: surface, view: v}
}

func (f *fixture) dispatch(e window.Event) *window.Event {
	f.surface.Dispatch(&e)
	return &e
}

func (f *fixture) press(button window.Button, x, y float64) *window.Event {
	return f.dispatch(window.Event{Type: window.EventPointerDown, Button: button, X: x, Y: y})
}

func (f *fixture) move(x, y float64) *window.Event {
	return f.dispatch(window.Event{Type: window.EventPointerMove, X: x, Y: y})
}

func (f *fixture) release(x, y float64) *window.Event {
	return f.dispatch(window.Event{Type: window.EventPointerUp, X: x, Y: y})
}

func (f *fixture) key(code int) *window.Event {
	return f.dispatch(window.Event{Type: window.EventKeyDown, Key: code})
}

func (f *fixture) keyUp(code int) *window.Event {
	return f.dispatch(window.Event{Type: window.EventKeyUp, Key: code})
}

func assertVec3InDelta(t *testing.T, expected, actual mgl64.Vec3, delta float64) {
	t.Helper()
	for i := range expected {
		assert.InDeltaf(t, expected[i], actual[i], delta, "component %d: expected %v, got %v", i, expected, actual)
	}
}

func assertUnitQuat(t *testing.T, q mgl64.Quat) {
	t.Helper()
	assert.InDelta(t, 1.0, q.Len(), 1e-9)
}
