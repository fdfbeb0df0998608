package remote

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ksons/xml3d-blender-exporter/common"
	"github.com/ksons/xml3d-blender-exporter/engine/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInbound(t *testing.T) {
	msg, err := DecodeInbound([]byte(`{"type":"mousedown","which":3,"x":12.5,"y":40}`))
	require.NoError(t, err)
	assert.Equal(t, MsgPointerDown, msg.Type)
	assert.Equal(t, 3, msg.Which)
	assert.Equal(t, 12.5, msg.X)
	assert.Equal(t, 40.0, msg.Y)
	assert.Nil(t, msg.Hit)
}

func TestDecodeInbound_Hello(t *testing.T) {
	data := `{"type":"hello","width":640,"height":480,
		"view":{"id":"defaultView","position":"0 0 5","orientation":"0 1 0 0.5","fieldOfView":0.8},
		"navigation":{"mode":"walk","revolveAround":"1 2 3","speed":2}}`

	msg, err := DecodeInbound([]byte(data))
	require.NoError(t, err)
	require.NotNil(t, msg.View)
	require.NotNil(t, msg.Navigation)
	assert.Equal(t, "defaultView", msg.View.ID)
	assert.Equal(t, "0 1 0 0.5", msg.View.Orientation)
	assert.Equal(t, 0.8, msg.View.FieldOfView)
	assert.Equal(t, "walk", msg.Navigation.Mode)
	assert.Equal(t, "1 2 3", msg.Navigation.RevolveAround)
	assert.Equal(t, 2.0, msg.Navigation.Speed)
	assert.Equal(t, 640, msg.Width)
	assert.Equal(t, 480, msg.Height)
}

func TestDecodeInbound_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `mousedown`},
		{"missing type", `{"x":1,"y":2}`},
		{"wrong field type", `{"type":"mousemove","x":"left"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeInbound([]byte(tt.data))
			assert.ErrorIs(t, err, ErrBadMessage)
		})
	}
}

func TestToEvent(t *testing.T) {
	tests := []struct {
		name   string
		msg    InboundMessage
		expect window.Event
	}{
		{
			name:   "pointer down",
			msg:    InboundMessage{Type: MsgPointerDown, Which: 2, X: 3, Y: 4},
			expect: window.Event{Type: window.EventPointerDown, Button: window.ButtonMiddle, X: 3, Y: 4},
		},
		{
			name:   "pointer up",
			msg:    InboundMessage{Type: MsgPointerUp, Which: 1, X: 5, Y: 6},
			expect: window.Event{Type: window.EventPointerUp, Button: window.ButtonPrimary, X: 5, Y: 6},
		},
		{
			name:   "pointer move",
			msg:    InboundMessage{Type: MsgPointerMove, X: 7, Y: 8},
			expect: window.Event{Type: window.EventPointerMove, X: 7, Y: 8},
		},
		{
			name:   "context menu",
			msg:    InboundMessage{Type: MsgContextMenu, X: 1, Y: 1},
			expect: window.Event{Type: window.EventContextMenu, X: 1, Y: 1},
		},
		{
			name:   "key down",
			msg:    InboundMessage{Type: MsgKeyDown, KeyCode: 87},
			expect: window.Event{Type: window.EventKeyDown, Key: common.KeyW},
		},
		{
			name:   "key down legacy which",
			msg:    InboundMessage{Type: MsgKeyDown, Which: 'a'},
			expect: window.Event{Type: window.EventKeyDown, Key: common.KeyA},
		},
		{
			name:   "alt up",
			msg:    InboundMessage{Type: MsgKeyUp, KeyCode: 18},
			expect: window.Event{Type: window.EventKeyUp, Key: common.KeyLeftAlt},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := ToEvent(tt.msg)
			require.True(t, ok)
			assert.Equal(t, tt.expect, *e)
		})
	}
}

func TestToEvent_Lifecycle(t *testing.T) {
	for _, typ := range []string{MsgHello, MsgResize, "wheel"} {
		e, ok := ToEvent(InboundMessage{Type: typ})
		assert.False(t, ok, typ)
		assert.Nil(t, e, typ)
	}
}

func TestToHit(t *testing.T) {
	assert.False(t, toHit(nil).Valid())

	hit := toHit(&HitState{Point: [3]float64{1, 2, 3}, Normal: [3]float64{0, 1, 0}})
	assert.True(t, hit.Valid())
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, hit.Point)
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, hit.Normal)
}
