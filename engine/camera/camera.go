package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
)

type cameraImpl struct {
	mu *sync.Mutex

	up [3]float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32

	controller CameraController
}

// Camera defines the interface for the perspective viewer camera.
// The camera holds perspective settings and computes view/projection matrices
// from an attached CameraController each frame via Update(). It also carries the
// four framing presets so that a panel can invoke them by name.
type Camera interface {
	// Up returns the camera's up vector.
	//
	// Returns:
	//   - x, y, z: up vector components
	Up() (x, y, z float32)

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// Position returns the camera's world-space position as reported by the controller.
	//
	// Returns:
	//   - [3]float32: the camera position, or the zero vector without a controller
	Position() [3]float32

	// ViewMatrix returns the current 4x4 view matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the current combined view-projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// Controller returns the attached CameraController.
	// Returns nil if no controller is attached.
	//
	// Returns:
	//   - CameraController: the attached controller or nil
	Controller() CameraController

	// Update reads position/target from the controller and recomputes matrices.
	// If no controller is attached, this method does nothing.
	Update()

	// ApplyPreset jumps the camera to the preset's fixed position looking at the origin.
	// The jump is immediate and independent of the camera's prior state.
	//
	// Parameters:
	//   - p: the preset to apply
	ApplyPreset(p Preset)

	// Front frames the scene from (0, 0, 30).
	Front()

	// Top frames the scene from (0, 30, 0).
	Top()

	// Side frames the scene from (30, 0, 0).
	Side()

	// Isometric frames the scene from (30, 30, 30).
	Isometric()

	// SetUp sets the camera's up vector.
	//
	// Parameters:
	//   - x, y, z: up vector components
	SetUp(x, y, z float32)

	// SetFov sets the field of view in radians and recomputes matrices.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)

	// SetController attaches a CameraController to the camera.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with the viewer's perspective defaults
// (75° field of view, near 0.1, far 1000).
// A controller must be attached via SetController or WithController option
// before position/target data is available.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		up:     [3]float32{0, 1, 0},
		fov:    common.DegToRad(DefaultFovDegrees),
		aspect: 1.0,
		near:   DefaultNear,
		far:    DefaultFar,
	}
	common.Identity(c.viewMatrix[:])
	common.Identity(c.projectionMatrix[:])
	common.Identity(c.viewProjectionMatrix[:])

	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

// Perspective defaults for the viewer camera.
const (
	DefaultFovDegrees float32 = 75
	DefaultNear       float32 = 0.1
	DefaultFar        float32 = 1000
)

func (c *cameraImpl) Up() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up[0], c.up[1], c.up[2]
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Position() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return [3]float32{}
	}
	x, y, z := c.controller.Position()
	return [3]float32{x, y, z}
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateMatrices()
}

func (c *cameraImpl) ApplyPreset(p Preset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return
	}
	pos := p.Position()
	c.controller.LookAt(pos, [3]float32{})
	c.updateMatrices()
}

func (c *cameraImpl) Front()     { c.ApplyPreset(PresetFront) }
func (c *cameraImpl) Top()       { c.ApplyPreset(PresetTop) }
func (c *cameraImpl) Side()      { c.ApplyPreset(PresetSide) }
func (c *cameraImpl) Isometric() { c.ApplyPreset(PresetIsometric) }

func (c *cameraImpl) SetUp(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = [3]float32{x, y, z}
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
	c.updateMatrices()
}

// updateMatrices recalculates the view, projection and view-projection matrices.
// The projection is always refreshed; the view only when a controller is attached.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)

	if c.controller != nil {
		px, py, pz := c.controller.Position()
		tx, ty, tz := c.controller.Target()
		common.LookAt(c.viewMatrix[:], [3]float32{px, py, pz}, [3]float32{tx, ty, tz}, c.up)
	}

	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}
