package camera

// CameraController defines the union interface for camera control systems.
// Controllers own positional state (position, target). Camera reads from controller
// and computes view/projection matrices. Embeds orbitCameraController,
// planarCameraController and pointerCameraController so keyboard orbit, panning and
// accumulated mouse input all act on a single controller instance.
type CameraController interface {
	orbitCameraController
	planarCameraController
	pointerCameraController

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the look-at point.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// SetTarget sets the look-at/pivot point and recomputes position from spherical coordinates.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// SetPosition sets the camera's world-space position directly and re-derives
	// the spherical coordinates around the current target.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetPosition(x, y, z float32)

	// LookAt places the camera at position looking at target in one step.
	// The position is stored exactly as given; radius, azimuth and elevation are
	// re-derived from it without clamping so that later orbit input continues from
	// this framing. Pending pointer input is discarded.
	//
	// Parameters:
	//   - position: world-space camera position
	//   - target: world-space look-at point
	LookAt(position, target [3]float32)

	// Zoom adjusts the camera's distance by modifying orbit radius.
	// Positive delta zooms in (closer to target).
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float32)
}

// orbitCameraController defines orbit-specific control methods.
// Provides orbit controls using spherical coordinates (radius, azimuth, elevation)
// relative to the target/pivot point.
type orbitCameraController interface {
	// OrbitLeft rotates the camera left around the target by one orbit speed step.
	OrbitLeft()

	// OrbitRight rotates the camera right around the target by one orbit speed step.
	OrbitRight()

	// OrbitUp tilts the camera upward by one orbit speed step, clamped to max elevation.
	OrbitUp()

	// OrbitDown tilts the camera downward by one orbit speed step, clamped to min elevation.
	OrbitDown()

	// Radius returns the current orbit radius (distance from target).
	//
	// Returns:
	//   - float32: the orbit radius
	Radius() float32

	// SetRadius sets the orbit radius, clamped to [MinRadius, MaxRadius].
	//
	// Parameters:
	//   - radius: the desired distance from the target
	SetRadius(radius float32)

	// Azimuth returns the horizontal angle around the Y axis in radians (0 = +Z).
	//
	// Returns:
	//   - float32: the azimuth in radians
	Azimuth() float32

	// SetAzimuth sets the horizontal angle and recomputes position.
	//
	// Parameters:
	//   - azimuth: the horizontal angle in radians
	SetAzimuth(azimuth float32)

	// Elevation returns the vertical angle from the horizontal plane in radians.
	//
	// Returns:
	//   - float32: the elevation in radians
	Elevation() float32

	// SetElevation sets the vertical angle, clamped to [MinElevation, MaxElevation].
	//
	// Parameters:
	//   - elevation: the vertical angle in radians
	SetElevation(elevation float32)
}

// planarCameraController defines translation along the camera's local axes.
// Both position and target move, so the orbit relationship is preserved.
type planarCameraController interface {
	// PanRight moves the camera and target along the camera's right axis.
	//
	// Parameters:
	//   - delta: distance scaled by PanSpeed (negative moves left)
	PanRight(delta float32)

	// PanUp moves the camera and target along the camera's up axis.
	//
	// Parameters:
	//   - delta: distance scaled by PanSpeed (negative moves down)
	PanUp(delta float32)

	// PanForward moves the camera and target along the view direction.
	//
	// Parameters:
	//   - delta: distance scaled by PanSpeed (negative moves backward)
	PanForward(delta float32)
}

// pointerCameraController accumulates pointer input between frames.
// Input is recorded as it arrives from window callbacks and applied in one step by Update,
// which the render loop calls once per tick before drawing.
type pointerCameraController interface {
	// Rotate accumulates an orbit drag in window pixels. The scene follows the
	// pointer: dragging right swings the camera left, dragging down raises it.
	//
	// Parameters:
	//   - dx: horizontal drag distance
	//   - dy: vertical drag distance
	Rotate(dx, dy float32)

	// Pan accumulates a pan drag in window pixels.
	//
	// Parameters:
	//   - dx: horizontal drag distance
	//   - dy: vertical drag distance
	Pan(dx, dy float32)

	// Dolly accumulates scroll wheel input. Positive values move toward the target.
	//
	// Parameters:
	//   - steps: scroll wheel steps
	Dolly(steps float32)

	// Update applies the input accumulated since the previous call.
	//
	// Returns:
	//   - bool: true if the camera position or target changed
	Update() bool
}
