package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/chewxy/math32"
	"github.com/rs/zerolog"
)

// cameraControllerImpl is the single implementation of CameraController.
// Orbit methods modify spherical coordinates and recompute position; planar methods
// translate both position and target along local camera axes, preserving the orbit
// relationship. Pointer input is buffered until Update.
type cameraControllerImpl struct {
	mu     *sync.Mutex
	logger zerolog.Logger

	position [3]float32
	target   [3]float32

	// Spherical coordinates (offset from target)
	radius    float32
	azimuth   float32 // Horizontal angle around Y axis
	elevation float32 // Vertical angle from horizontal plane

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	orbitSpeed       float32
	mouseSensitivity float32
	zoomSpeed        float32
	dollyScale       float32
	panSpeed         float32

	// Pointer input accumulated since the last Update
	pendingAzimuth   float32
	pendingElevation float32
	pendingDolly     float32
	pendingPan       [2]float32
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new orbit camera controller.
// The default framing matches the viewer's start position (0, 1, 30) looking at the origin.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:     &sync.Mutex{},
		logger: zerolog.Nop(),

		minRadius:    1.0,
		maxRadius:    500.0,
		minElevation: -math32.Pi/2 + 0.01,
		maxElevation: math32.Pi/2 - 0.01,

		orbitSpeed:       0.03,
		mouseSensitivity: 0.005,
		zoomSpeed:        1.0,
		dollyScale:       0.95,
		panSpeed:         1.0,
	}
	cc.deriveSpherical([3]float32{0, 1, 30})

	for _, option := range options {
		option(cc)
	}
	return cc
}

// --- internal helpers ---

// updatePosition recomputes the camera position from spherical coordinates.
// Must be called whenever radius, azimuth, elevation, or target changes.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	cosElev, sinElev := math32.Cos(cc.elevation), math32.Sin(cc.elevation)
	cosAzim, sinAzim := math32.Cos(cc.azimuth), math32.Sin(cc.azimuth)

	cc.position[0] = cc.target[0] + cc.radius*cosElev*sinAzim
	cc.position[1] = cc.target[1] + cc.radius*sinElev
	cc.position[2] = cc.target[2] + cc.radius*cosElev*cosAzim
}

// deriveSpherical sets position and recomputes radius, azimuth and elevation from
// its offset to the current target. Caller must hold the mutex.
func (cc *cameraControllerImpl) deriveSpherical(position [3]float32) {
	cc.position = position
	offset := common.Sub3(position, cc.target)
	cc.radius = common.Length3(offset)
	if cc.radius < 1e-8 {
		cc.azimuth, cc.elevation = 0, 0
		return
	}
	cc.elevation = math32.Asin(common.Clamp(offset[1]/cc.radius, -1, 1))
	cc.azimuth = math32.Atan2(offset[0], offset[2])
}

func (cc *cameraControllerImpl) clampRadius() {
	cc.radius = common.Clamp(cc.radius, cc.minRadius, cc.maxRadius)
}

func (cc *cameraControllerImpl) clampElevation() {
	cc.elevation = common.Clamp(cc.elevation, cc.minElevation, cc.maxElevation)
}

// localAxes computes the camera's local coordinate axes consistent with the LookAt matrix.
// If position and target coincide, all returned vectors are zero.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) localAxes() (right, up, forward [3]float32) {
	backward := common.Normalize3(common.Sub3(cc.position, cc.target))
	if backward == ([3]float32{}) {
		return
	}

	// right = normalize(cross(worldUp, backward)); looking straight down falls back like common.LookAt
	right = common.Cross3([3]float32{0, 1, 0}, backward)
	if common.Length3(right) < 1e-6 {
		right = common.Cross3([3]float32{0, 0, -1}, backward)
	}
	right = common.Normalize3(right)
	up = common.Cross3(backward, right)
	forward = common.Scale3(backward, -1)
	return
}

// translate moves position and target together. Caller must hold the mutex.
func (cc *cameraControllerImpl) translate(offset [3]float32) {
	cc.target = common.Add3(cc.target, offset)
	cc.position = common.Add3(cc.position, offset)
}

// --- CameraController shared methods ---

func (cc *cameraControllerImpl) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position[0], cc.position[1], cc.position[2]
}

func (cc *cameraControllerImpl) SetPosition(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.deriveSpherical([3]float32{x, y, z})
}

func (cc *cameraControllerImpl) Target() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target[0], cc.target[1], cc.target[2]
}

func (cc *cameraControllerImpl) SetTarget(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = [3]float32{x, y, z}
	cc.updatePosition()
}

func (cc *cameraControllerImpl) LookAt(position, target [3]float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = target
	cc.deriveSpherical(position)
	cc.pendingAzimuth, cc.pendingElevation, cc.pendingDolly = 0, 0, 0
	cc.pendingPan = [2]float32{}
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius -= delta * cc.zoomSpeed
	cc.clampRadius()
	cc.updatePosition()
}

// --- orbitCameraController implementation ---

func (cc *cameraControllerImpl) OrbitLeft() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth -= cc.orbitSpeed
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitRight() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth += cc.orbitSpeed
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitUp() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation += cc.orbitSpeed
	cc.clampElevation()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitDown() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation -= cc.orbitSpeed
	cc.clampElevation()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) SetRadius(radius float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = radius
	cc.clampRadius()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) SetAzimuth(azimuth float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth = azimuth
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) SetElevation(elevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = elevation
	cc.clampElevation()
	cc.updatePosition()
}

// --- planarCameraController implementation ---

func (cc *cameraControllerImpl) PanRight(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	right, _, _ := cc.localAxes()
	cc.translate(common.Scale3(right, delta*cc.panSpeed))
}

func (cc *cameraControllerImpl) PanUp(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	_, up, _ := cc.localAxes()
	cc.translate(common.Scale3(up, delta*cc.panSpeed))
}

func (cc *cameraControllerImpl) PanForward(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	_, _, forward := cc.localAxes()
	cc.translate(common.Scale3(forward, delta*cc.panSpeed))
}

// --- pointerCameraController implementation ---

func (cc *cameraControllerImpl) Rotate(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pendingAzimuth -= dx * cc.mouseSensitivity
	cc.pendingElevation += dy * cc.mouseSensitivity
}

func (cc *cameraControllerImpl) Pan(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pendingPan[0] += dx
	cc.pendingPan[1] += dy
}

func (cc *cameraControllerImpl) Dolly(steps float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pendingDolly += steps
}

func (cc *cameraControllerImpl) Update() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if cc.pendingAzimuth == 0 && cc.pendingElevation == 0 && cc.pendingDolly == 0 && cc.pendingPan == ([2]float32{}) {
		return false
	}

	if cc.pendingPan != ([2]float32{}) {
		// Pan distance scales with the orbit radius so drags feel the same at any zoom.
		right, up, _ := cc.localAxes()
		scale := cc.radius * cc.mouseSensitivity * cc.panSpeed
		offset := common.Add3(
			common.Scale3(right, -cc.pendingPan[0]*scale),
			common.Scale3(up, cc.pendingPan[1]*scale),
		)
		cc.translate(offset)
	}

	if cc.pendingAzimuth != 0 || cc.pendingElevation != 0 || cc.pendingDolly != 0 {
		cc.azimuth += cc.pendingAzimuth
		cc.elevation += cc.pendingElevation
		cc.clampElevation()
		cc.radius *= math32.Pow(cc.dollyScale, cc.pendingDolly)
		cc.clampRadius()
		cc.updatePosition()
	}

	cc.pendingAzimuth, cc.pendingElevation, cc.pendingDolly = 0, 0, 0
	cc.pendingPan = [2]float32{}

	cc.logger.Debug().
		Floats32("position", cc.position[:]).
		Floats32("target", cc.target[:]).
		Msg("camera change")
	return true
}
