package remote

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ksons/xml3d-blender-exporter/common"
	"github.com/ksons/xml3d-blender-exporter/engine/view"
)

// remoteHost is the server-side stand-in of the page's <xml3d> element.
// Picking already happened in the browser: the page sends the hit with the
// alt-click, and Pick hands it back to the controller.
type remoteHost struct {
	mu *sync.Mutex

	view view.View
	hit  common.Hit
	send func(OutboundMessage)
}

var _ view.Host = &remoteHost{}

func newRemoteHost(v view.View, send func(OutboundMessage)) *remoteHost {
	return &remoteHost{
		mu:   &sync.Mutex{},
		view: v,
		hit:  missHit(),
		send: send,
	}
}

func (h *remoteHost) ActiveView() string {
	return "#" + h.view.ID()
}

func (h *remoteHost) ViewByID(id string) view.View {
	if id == h.view.ID() {
		return h.view
	}
	return nil
}

func (h *remoteHost) FirstView() view.View {
	return h.view
}

// GenerateRay returns a ray from the camera along its view direction; the page
// generated the real picking ray already.
func (h *remoteHost) GenerateRay(x, y float64) common.Ray {
	return common.Ray{Origin: h.view.Position(), Direction: h.view.Direction()}
}

func (h *remoteHost) Pick(ray common.Ray) common.Hit {
	h.mu.Lock()
	defer h.mu.Unlock()
	hit := h.hit
	h.hit = missHit()
	return hit
}

func (h *remoteHost) Update() {
	h.send(OutboundMessage{Type: MsgRedraw})
}

// setPendingHit stores the pick result for the next Pick call.
func (h *remoteHost) setPendingHit(hit common.Hit) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hit = hit
}

func missHit() common.Hit {
	nan := math.NaN()
	return common.Hit{Point: mgl64.Vec3{nan, nan, nan}, Normal: mgl64.Vec3{nan, nan, nan}}
}
