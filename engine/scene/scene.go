package scene

import (
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
)

// DefaultBackgroundHex is the clear color of a new scene.
const DefaultBackgroundHex uint32 = 0xffffff

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.RWMutex

	name       string
	background [3]float32
	cam        camera.Camera

	sun      light.Light
	hemi     light.Light
	sunPos   light.SunPosition
	ground   game_object.GameObject
	registry map[uint64]game_object.GameObject
	order    []uint64
	nextID   uint64

	helperVisible bool
}

// Scene is the set of things drawn each frame: a background color, a camera, a
// directional sun with a hemisphere fill, the ground plane and any added objects.
//
// A Scene holds no GPU state. The renderer reads it once per frame.
type Scene interface {
	// Name retrieves the scene name.
	//
	// Returns:
	//   - string: the name of the scene
	Name() string

	// Background returns the clear color.
	//
	// Returns:
	//   - [3]float32: RGB in [0, 1]
	Background() [3]float32

	// SetBackgroundHex sets the clear color from a packed 0xRRGGBB value.
	//
	// Parameters:
	//   - hex: the packed color
	SetBackgroundHex(hex uint32)

	// Camera retrieves the camera the scene is viewed through.
	//
	// Returns:
	//   - camera.Camera: the camera, or nil if none is attached
	Camera() camera.Camera

	// SetCamera attaches the camera the scene is viewed through.
	//
	// Parameters:
	//   - cam: the camera
	SetCamera(cam camera.Camera)

	// Sun retrieves the shadow-casting directional light.
	//
	// Returns:
	//   - light.Light: the sun
	Sun() light.Light

	// Hemisphere retrieves the sky/ground fill light.
	//
	// Returns:
	//   - light.Light: the hemisphere light
	Hemisphere() light.Light

	// Lights returns every light in the scene, sun first.
	//
	// Returns:
	//   - []light.Light: the lights
	Lights() []light.Light

	// SunPosition returns the angular sun position last applied.
	//
	// Returns:
	//   - light.SunPosition: azimuth and elevation in degrees
	SunPosition() light.SunPosition

	// SetSunPosition clamps p, moves the sun onto the radius-100 sphere it describes,
	// and aims it at the origin.
	//
	// Parameters:
	//   - p: the requested sun position
	//
	// Returns:
	//   - light.SunPosition: the clamped position that was applied
	SetSunPosition(p light.SunPosition) light.SunPosition

	// Ground returns the ground plane object.
	//
	// Returns:
	//   - game_object.GameObject: the ground
	Ground() game_object.GameObject

	// Add inserts an object. Objects without an ID are assigned the next free one.
	// Adding an object that is already present is a no-op.
	//
	// Parameters:
	//   - obj: the object to insert
	Add(obj game_object.GameObject)

	// Remove deletes an object by its ID. Removing the ground or an unknown object is a no-op.
	//
	// Parameters:
	//   - obj: the object to delete
	Remove(obj game_object.GameObject)

	// Get looks an object up by ID.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - game_object.GameObject: the object, or nil if not present
	Get(id uint64) game_object.GameObject

	// Objects returns every enabled object in draw order: the ground first, then objects in insertion order.
	//
	// Returns:
	//   - []game_object.GameObject: the drawable objects
	Objects() []game_object.GameObject

	// Count returns the number of added objects, excluding the ground.
	//
	// Returns:
	//   - int: the object count
	Count() int

	// HelperVisible reports whether the sun's shadow-frustum helper is drawn.
	//
	// Returns:
	//   - bool: true if the helper is visible
	HelperVisible() bool

	// SetHelperVisible shows or hides the shadow-frustum helper.
	//
	// Parameters:
	//   - visible: true to draw the helper
	SetHelperVisible(visible bool)

	// HelperLines returns the line-list vertices of the sun's shadow frustum, or nil when the helper is hidden.
	//
	// Returns:
	//   - [][3]float32: pairs of world-space endpoints
	HelperLines() [][3]float32
}

var _ Scene = &scene{}

// NewScene creates a Scene with the default lighting rig and ground plane, then applies options.
// The sun starts at light.DefaultSunPosition.
//
// Parameters:
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:         &sync.RWMutex{},
		name:       "main",
		background: common.HexToRGB(DefaultBackgroundHex),
		sun:        light.NewSunLight(),
		hemi:       light.NewHemisphereLight(),
		sunPos:     light.DefaultSunPosition(),
		registry:   make(map[uint64]game_object.GameObject),
		nextID:     1,
	}

	for _, option := range options {
		option(s)
	}

	if s.ground == nil {
		s.ground = NewGround()
	}
	if s.ground.ID() == 0 {
		s.ground.SetID(s.nextID)
		s.nextID++
	}
	s.sunPos = s.sunPos.Clamp()
	light.ApplySun(s.sun, s.sunPos)
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Background() [3]float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

func (s *scene) SetBackgroundHex(hex uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = common.HexToRGB(hex)
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Sun() light.Light {
	return s.sun
}

func (s *scene) Hemisphere() light.Light {
	return s.hemi
}

func (s *scene) Lights() []light.Light {
	return []light.Light{s.sun, s.hemi}
}

func (s *scene) SunPosition() light.SunPosition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sunPos
}

func (s *scene) SetSunPosition(p light.SunPosition) light.SunPosition {
	p = p.Clamp()

	s.mu.Lock()
	s.sunPos = p
	s.mu.Unlock()

	light.ApplySun(s.sun, p)
	return p
}

func (s *scene) Ground() game_object.GameObject {
	return s.ground
}

func (s *scene) Add(obj game_object.GameObject) {
	if obj == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if obj.ID() == 0 {
		obj.SetID(s.nextID)
		s.nextID++
	}
	if _, exists := s.registry[obj.ID()]; exists || obj.ID() == s.ground.ID() {
		return
	}
	s.registry[obj.ID()] = obj
	s.order = append(s.order, obj.ID())
}

func (s *scene) Remove(obj game_object.GameObject) {
	if obj == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := obj.ID()
	if _, ok := s.registry[id]; !ok {
		return
	}
	delete(s.registry, id)
	s.order = slices.DeleteFunc(s.order, func(v uint64) bool { return v == id })
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id == s.ground.ID() {
		return s.ground
	}
	return s.registry[id]
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]game_object.GameObject, 0, len(s.order)+1)
	if s.ground.Enabled() {
		out = append(out, s.ground)
	}
	for _, id := range s.order {
		if obj := s.registry[id]; obj.Enabled() {
			out = append(out, obj)
		}
	}
	return out
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) HelperVisible() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.helperVisible
}

func (s *scene) SetHelperVisible(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.helperVisible = visible
}

func (s *scene) HelperLines() [][3]float32 {
	if !s.HelperVisible() {
		return nil
	}
	return s.sun.Shadow().HelperLines(s.sun.Position(), s.sun.Target())
}
