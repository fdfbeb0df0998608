package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ksons/xml3d-blender-exporter/common"
	"github.com/ksons/xml3d-blender-exporter/engine/game_object"
	"github.com/ksons/xml3d-blender-exporter/engine/model"
	"github.com/ksons/xml3d-blender-exporter/engine/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScene_Views(t *testing.T) {
	a := view.NewNode("a")
	b := view.NewNode("b")
	s := NewScene("test", WithViews(a, b), WithActiveView("#b"))

	assert.Equal(t, "#b", s.ActiveView())
	assert.Same(t, a, s.FirstView())
	assert.Same(t, b, s.ViewByID("b"))
	assert.Nil(t, s.ViewByID("c"))
	assert.Same(t, b, view.ResolveView(s))

	replacement := view.NewNode("a", view.WithPosition(mgl64.Vec3{1, 0, 0}))
	s.AddView(replacement)
	require.Len(t, s.Views(), 2)
	assert.Same(t, replacement, s.FirstView())
}

func TestScene_GenerateRay(t *testing.T) {
	cam := view.NewNode("cam", view.WithPosition(mgl64.Vec3{1, 2, 3}))
	s := NewScene("test", WithViews(cam), WithSize(800, 600))

	center := s.GenerateRay(400, 300)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, center.Origin)
	assert.InDelta(t, -1.0, center.Direction.Z(), 1e-12)

	tanHalf := math.Tan(view.DefaultFieldOfView / 2)
	corner := s.GenerateRay(800, 0)
	expected := mgl64.Vec3{tanHalf * 800 / 600, tanHalf, -1}.Normalize()
	for i := range expected {
		assert.InDelta(t, expected[i], corner.Direction[i], 1e-12)
	}
}

func TestScene_GenerateRayFollowsOrientation(t *testing.T) {
	cam := view.NewNode("cam", view.WithOrientation(mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})))
	s := NewScene("test", WithViews(cam))

	ray := s.GenerateRay(DefaultWidth/2, DefaultHeight/2)
	assert.InDelta(t, -1.0, ray.Direction.X(), 1e-12)
	assert.InDelta(t, 0.0, ray.Direction.Z(), 1e-12)
}

func TestScene_PickNearest(t *testing.T) {
	s := NewScene("test", WithPickWorkers(2), WithPickChunkSize(1))
	s.AddSphere(mgl64.Vec3{0, 0, -10}, 1)
	near := s.AddBox(mgl64.Vec3{-1, -1, -4}, mgl64.Vec3{1, 1, -3})
	s.AddTriangle(mgl64.Vec3{-1, -1, -6}, mgl64.Vec3{1, -1, -6}, mgl64.Vec3{0, 1, -6})
	require.Equal(t, 3, s.Count())

	hit := s.Pick(common.Ray{Direction: mgl64.Vec3{0, 0, -1}})
	require.True(t, hit.Valid())
	assert.InDelta(t, -3.0, hit.Point.Z(), 1e-12)
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, hit.Normal)

	s.Remove(near)
	hit = s.Pick(common.Ray{Direction: mgl64.Vec3{0, 0, -1}})
	require.True(t, hit.Valid())
	assert.InDelta(t, -6.0, hit.Point.Z(), 1e-12)
}

func TestScene_PickManyChunks(t *testing.T) {
	s := NewScene("test", WithPickWorkers(4), WithPickChunkSize(8))
	for i := 0; i < 100; i++ {
		s.AddSphere(mgl64.Vec3{float64(i) * 3, 0, -20}, 1)
	}
	s.AddSphere(mgl64.Vec3{0, 0, -5}, 1)

	hit := s.Pick(common.Ray{Direction: mgl64.Vec3{0, 0, -1}})
	require.True(t, hit.Valid())
	assert.InDelta(t, -4.0, hit.Point.Z(), 1e-12)
}

func TestScene_PickMiss(t *testing.T) {
	s := NewScene("test")
	assert.False(t, s.Pick(common.Ray{Direction: mgl64.Vec3{0, 0, -1}}).Valid())

	s.AddSphere(mgl64.Vec3{0, 0, 5}, 1)
	assert.False(t, s.Pick(common.Ray{Direction: mgl64.Vec3{0, 0, -1}}).Valid())
}

func TestScene_UpdateReportsFrameStats(t *testing.T) {
	s := NewScene("test")
	s.AddBox(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
	s.AddTriangle(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0})
	s.Add(game_object.NewGameObject(
		game_object.WithModel(model.NewBox(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})),
		game_object.WithEnabled(false),
	))

	var frames []common.FrameStats
	s.OnFrameDrawn(func(stats common.FrameStats) {
		frames = append(frames, stats)
	})

	s.Update()
	s.Update()

	assert.Equal(t, 2, s.Redraws())
	require.Len(t, frames, 2)
	assert.Equal(t, common.FrameStats{Primitives: 13, Objects: 2}, frames[0])
}

func TestScene_AddAssignsIDs(t *testing.T) {
	s := NewScene("test", WithObjects(game_object.NewGameObject(game_object.WithID(10))))

	id := s.AddSphere(mgl64.Vec3{}, 1)
	assert.Equal(t, uint64(11), id)
	assert.NotNil(t, s.Get(10))

	eph := game_object.NewGameObject(game_object.WithEphemeral(true))
	ephID := s.Add(eph)
	assert.Nil(t, s.Get(ephID), "ephemeral objects are not looked up")
	assert.Equal(t, 3, s.Count())

	s.Clear()
	assert.Equal(t, 0, s.Count())
}
