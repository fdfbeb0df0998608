package scene

import (
	"math"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/ksons/xml3d-blender-exporter/common"
	"github.com/ksons/xml3d-blender-exporter/engine/game_object"
	"github.com/ksons/xml3d-blender-exporter/engine/model"
	"github.com/ksons/xml3d-blender-exporter/engine/view"
	"github.com/ksons/xml3d-blender-exporter/internal/log"
)

// Scene is an in-process XML3D host: a set of view nodes and pickable objects.
// It answers picking rays and counts redraw requests the way the browser element
// would, so navigation controllers can run headless or in a native window.
// Thread-safe for concurrent access.
type Scene interface {
	view.Host

	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// SetActiveView sets the reference to the active view ("#id" or "id").
	//
	// Parameters:
	//   - ref: the view reference
	SetActiveView(ref string)

	// AddView adds a view node. A view with the same id replaces the existing one
	// in place.
	//
	// Parameters:
	//   - v: the view node
	AddView(v view.View)

	// Views returns the view nodes in document order.
	//
	// Returns:
	//   - []view.View: a copy of the view list
	Views() []view.View

	// SetSize sets the viewport size used for ray generation.
	//
	// Parameters:
	//   - width, height: viewport size in pixels
	SetSize(width, height int)

	// Size returns the viewport size.
	//
	// Returns:
	//   - int, int: width and height in pixels
	Size() (int, int)

	// Add adds a GameObject to the scene. Objects without an ID get the next free
	// one. Non-ephemeral objects are persisted in the registry for lookup and removal.
	//
	// Parameters:
	//   - obj: the GameObject to add
	//
	// Returns:
	//   - uint64: the assigned object ID
	Add(obj game_object.GameObject) uint64

	// AddSphere adds a sphere object.
	//
	// Parameters:
	//   - center: world-space center
	//   - radius: the radius
	//
	// Returns:
	//   - uint64: the assigned object ID
	AddSphere(center mgl64.Vec3, radius float64) uint64

	// AddBox adds an axis-aligned box object.
	//
	// Parameters:
	//   - a, b: opposite world-space corners
	//
	// Returns:
	//   - uint64: the assigned object ID
	AddBox(a, b mgl64.Vec3) uint64

	// AddTriangle adds a single-triangle object.
	//
	// Parameters:
	//   - a, b, c: world-space corners with counter-clockwise winding
	//
	// Returns:
	//   - uint64: the assigned object ID
	AddTriangle(a, b, c mgl64.Vec3) uint64

	// Get retrieves a GameObject by its ID. Returns nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove removes a GameObject by ID.
	//
	// Parameters:
	//   - id: the object's unique ID
	Remove(id uint64)

	// Count returns the number of objects in the scene.
	//
	// Returns:
	//   - int: the object count
	Count() int

	// Clear removes all objects. Views are kept.
	Clear()

	// OnFrameDrawn registers a callback receiving the statistics of every drawn frame.
	//
	// Parameters:
	//   - callback: the frame-drawn callback
	OnFrameDrawn(callback func(stats common.FrameStats))

	// Redraws returns the number of frames drawn so far.
	//
	// Returns:
	//   - int: the redraw count
	Redraws() int
}

type scene struct {
	mu *sync.RWMutex

	name       string
	activeView string
	views      []view.View
	width      int
	height     int

	objects []game_object.GameObject
	nextID  uint64

	frameDrawn []func(stats common.FrameStats)
	redraws    int

	// pickPool runs the per-chunk ray tests of Pick. Workers idle-exit between
	// picks, so a scene needs no explicit shutdown.
	pickPool      worker.DynamicWorkerPool
	pickWorkers   int
	pickChunkSize int
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// Defaults for NewScene.
const (
	DefaultWidth         = 800
	DefaultHeight        = 600
	DefaultPickChunkSize = 64
)

// NewScene creates an empty scene.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:            &sync.RWMutex{},
		name:          name,
		width:         DefaultWidth,
		height:        DefaultHeight,
		nextID:        1,
		pickWorkers:   max(runtime.NumCPU()-1, 1),
		pickChunkSize: DefaultPickChunkSize,
	}

	for _, option := range options {
		option(s)
	}

	// Initialize the pool after options so WithPickWorkers can override the default.
	s.pickPool = worker.NewDynamicWorkerPool(s.pickWorkers, 256, 1*time.Second)
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) ActiveView() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeView
}

func (s *scene) SetActiveView(ref string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeView = ref
}

func (s *scene) AddView(v view.View) {
	if v == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.views {
		if existing.ID() == v.ID() {
			s.views[i] = v
			return
		}
	}
	s.views = append(s.views, v)
}

func (s *scene) Views() []view.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]view.View, len(s.views))
	copy(out, s.views)
	return out
}

func (s *scene) ViewByID(id string) view.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.views {
		if v.ID() == id {
			return v
		}
	}
	return nil
}

func (s *scene) FirstView() view.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.views) == 0 {
		return nil
	}
	return s.views[0]
}

func (s *scene) SetSize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *scene) Size() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height
}

// currentView resolves the active view without logging; ray generation runs per click.
func (s *scene) currentView() view.View {
	if v := s.ViewByID(strings.TrimPrefix(s.ActiveView(), "#")); v != nil {
		return v
	}
	return s.FirstView()
}

// GenerateRay unprojects a viewport coordinate through the active view's
// perspective frustum. Without a view the ray starts at the origin looking down -Z.
func (s *scene) GenerateRay(x, y float64) common.Ray {
	width, height := s.Size()
	w, h := float64(max(width, 1)), float64(max(height, 1))

	origin := mgl64.Vec3{}
	orientation := mgl64.QuatIdent()
	fov := view.DefaultFieldOfView
	if v := s.currentView(); v != nil {
		origin, orientation, fov = v.Position(), v.Orientation(), v.FieldOfView()
	}

	tanHalf := math.Tan(fov / 2)
	ndcX := (2*x/w - 1) * tanHalf * w / h
	ndcY := (1 - 2*y/h) * tanHalf

	dir, ok := common.SafeNormalize(orientation.Rotate(mgl64.Vec3{ndcX, ndcY, -1}))
	if !ok {
		dir = mgl64.Vec3{0, 0, -1}
	}
	return common.Ray{Origin: origin, Direction: dir}
}

// pickResult is the nearest hit of one chunk.
type pickResult struct {
	t   float64
	hit common.Hit
	ok  bool
}

func (s *scene) Pick(ray common.Ray) common.Hit {
	objects := s.snapshot()

	chunkSize := max(s.pickChunkSize, 1)
	chunks := (len(objects) + chunkSize - 1) / chunkSize
	results := make([]pickResult, chunks)

	// A WaitGroup provides the barrier; the pool only bounds concurrency.
	var wg sync.WaitGroup
	for i := range chunks {
		lo := i * chunkSize
		hi := min(lo+chunkSize, len(objects))
		chunk := objects[lo:hi]
		idx := i

		wg.Add(1)
		s.pickPool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				results[idx] = nearest(chunk, ray)
				return nil, nil
			},
		})
	}
	wg.Wait()

	best := pickResult{t: math.Inf(1)}
	for _, r := range results {
		if r.ok && r.t < best.t {
			best = r
		}
	}
	if !best.ok {
		nan := math.NaN()
		return common.Hit{Point: mgl64.Vec3{nan, nan, nan}, Normal: mgl64.Vec3{nan, nan, nan}}
	}
	return best.hit
}

func nearest(objects []game_object.GameObject, ray common.Ray) pickResult {
	best := pickResult{t: math.Inf(1)}
	for _, obj := range objects {
		if t, hit, ok := obj.Intersect(ray); ok && t < best.t {
			best = pickResult{t: t, hit: hit, ok: true}
		}
	}
	return best
}

func (s *scene) snapshot() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]game_object.GameObject, len(s.objects))
	copy(out, s.objects)
	return out
}

// Update draws a frame: it counts the redraw and reports the frame statistics.
func (s *scene) Update() {
	stats := common.FrameStats{}
	for _, obj := range s.snapshot() {
		if !obj.Enabled() || obj.Model() == nil {
			continue
		}
		stats.Objects++
		stats.Primitives += obj.Model().PrimitiveCount()
	}

	s.mu.Lock()
	s.redraws++
	callbacks := make([]func(common.FrameStats), len(s.frameDrawn))
	copy(callbacks, s.frameDrawn)
	s.mu.Unlock()

	for _, cb := range callbacks {
		cb(stats)
	}
}

func (s *scene) OnFrameDrawn(callback func(stats common.FrameStats)) {
	if callback == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frameDrawn = append(s.frameDrawn, callback)
}

func (s *scene) Redraws() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.redraws
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	if obj == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if obj.ID() == 0 {
		obj.SetID(s.nextID)
		s.nextID++
	} else if obj.ID() >= s.nextID {
		s.nextID = obj.ID() + 1
	}
	s.objects = append(s.objects, obj)
	log.Debug("object added", "scene", s.name, "id", obj.ID(), "name", obj.Name())
	return obj.ID()
}

func (s *scene) AddSphere(center mgl64.Vec3, radius float64) uint64 {
	return s.Add(game_object.NewGameObject(
		game_object.WithModel(model.NewSphere(mgl64.Vec3{}, radius)),
		game_object.WithPosition(center),
	))
}

func (s *scene) AddBox(a, b mgl64.Vec3) uint64 {
	return s.Add(game_object.NewGameObject(game_object.WithModel(model.NewBox(a, b))))
}

func (s *scene) AddTriangle(a, b, c mgl64.Vec3) uint64 {
	return s.Add(game_object.NewGameObject(
		game_object.WithModel(model.NewMesh([]model.Triangle{{A: a, B: b, C: c}}, model.WithName("triangle"))),
	))
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, obj := range s.objects {
		if obj.ID() == id && !obj.Ephemeral() {
			return obj
		}
	}
	return nil
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, obj := range s.objects {
		if obj.ID() == id {
			s.objects = append(s.objects[:i:i], s.objects[i+1:]...)
			return
		}
	}
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = nil
}
