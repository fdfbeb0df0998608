package remote

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/ksons/xml3d-blender-exporter/engine/navigation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getJSON(t *testing.T, s Server, path string, v any) int {
	t.Helper()
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	if v != nil && resp.StatusCode == fiber.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp.StatusCode
}

func TestNewServer_Defaults(t *testing.T) {
	s := NewServer()
	assert.Equal(t, DefaultAddr, s.Addr())
	assert.NotNil(t, s.Registry())
	assert.Equal(t, navigation.Descriptor{}, s.Descriptor())
	assert.Empty(t, s.Sessions())
}

func TestNewServer_Options(t *testing.T) {
	reg := navigation.NewRegistry()
	s := NewServer(
		WithAddr("127.0.0.1:9000"),
		WithRegistry(reg),
		WithDescriptor(navigation.Descriptor{Mode: "trackball"}),
	)
	assert.Equal(t, "127.0.0.1:9000", s.Addr())
	assert.Same(t, reg, s.Registry())
	assert.Equal(t, "trackball", s.Descriptor().Mode)

	assert.Equal(t, DefaultAddr, NewServer(WithAddr("")).Addr())
}

func TestServer_Health(t *testing.T) {
	s := NewServer()
	var body map[string]any
	require.Equal(t, fiber.StatusOK, getJSON(t, s, "/api/health", &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, 0.0, body["sessions"])
}

func TestServer_WebSocketRequiresUpgrade(t *testing.T) {
	s := NewServer()
	assert.Equal(t, fiber.StatusUpgradeRequired, getJSON(t, s, "/ws/navigation", nil))
}

func TestServer_OpenCloseSession(t *testing.T) {
	s := NewServer()
	rec := &recorder{}

	sess, err := s.OpenSession("abc", testHello(), rec.send)
	require.NoError(t, err)
	assert.True(t, sess.Controller().Attached())
	assert.Same(t, sess.Controller(), s.Registry().ControllerFor(sess.host))

	var infos []SessionInfo
	require.Equal(t, fiber.StatusOK, getJSON(t, s, "/api/sessions", &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, "abc", infos[0].ID)

	var info SessionInfo
	require.Equal(t, fiber.StatusOK, getJSON(t, s, "/api/sessions/abc", &info))
	assert.Equal(t, "defaultView", info.View)
	assert.Equal(t, fiber.StatusNotFound, getJSON(t, s, "/api/sessions/nope", nil))

	assert.True(t, s.CloseSession("abc"))
	assert.False(t, sess.Controller().Attached())
	assert.Empty(t, s.Registry().Controllers())
	assert.False(t, s.CloseSession("abc"))
}

func TestServer_OpenSessionWithoutView(t *testing.T) {
	s := NewServer()
	hello := testHello()
	hello.View = nil

	_, err := s.OpenSession("abc", hello, (&recorder{}).send)
	assert.ErrorIs(t, err, navigation.ErrNoView)
	assert.Empty(t, s.Sessions())
	assert.Empty(t, s.Registry().Controllers())
}

func TestServer_SetDescriptor(t *testing.T) {
	s := NewServer()
	first, err := s.OpenSession("a", testHello(), (&recorder{}).send)
	require.NoError(t, err)

	s.SetDescriptor(navigation.Descriptor{Mode: "trackball"})
	second, err := s.OpenSession("b", testHello(), (&recorder{}).send)
	require.NoError(t, err)

	assert.Equal(t, navigation.ModeExamine, first.Controller().Mode())
	assert.Equal(t, navigation.ModeTrackball, second.Controller().Mode())

	var d navigation.Descriptor
	require.Equal(t, fiber.StatusOK, getJSON(t, s, "/api/navigation", &d))
	assert.Equal(t, "trackball", d.Mode)
}

func TestServer_RegistryTickRedraws(t *testing.T) {
	s := NewServer()
	rec := &recorder{}
	sess, err := s.OpenSession("a", testHello(), rec.send)
	require.NoError(t, err)

	assert.Equal(t, 0, s.Registry().UpdateAll())

	_, err = sess.Handle(InboundMessage{Type: MsgKeyDown, KeyCode: 83})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Registry().UpdateAll())
	assert.Len(t, rec.ofType(MsgRedraw), 1)
	assert.Equal(t, 0, s.Registry().UpdateAll())
}

func TestServer_Shutdown(t *testing.T) {
	s := NewServer()
	_, err := s.OpenSession("a", testHello(), (&recorder{}).send)
	require.NoError(t, err)

	_ = s.Shutdown()
	assert.Empty(t, s.Sessions())
	assert.Empty(t, s.Registry().Controllers())
}
