package camera

import "github.com/rs/zerolog"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithStartPosition places the camera at position and derives the orbit state
// around the current target.
//
// Parameters:
//   - position: the initial world-space camera position
//
// Returns:
//   - CameraControllerOption: functional option to set the start position
func WithStartPosition(position [3]float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.deriveSpherical(position)
	}
}

// WithTarget sets the orbit pivot. Apply before WithStartPosition when both are used.
//
// Parameters:
//   - target: the world-space look-at point
//
// Returns:
//   - CameraControllerOption: functional option to set the target
func WithTarget(target [3]float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = target
		cc.deriveSpherical(cc.position)
	}
}

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - minRadius: closest allowed distance to the target
//   - maxRadius: farthest allowed distance from the target
//
// Returns:
//   - CameraControllerOption: functional option to set the radius bounds
func WithRadiusBounds(minRadius, maxRadius float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minRadius = minRadius
		cc.maxRadius = maxRadius
	}
}

// WithElevationBounds sets the minimum and maximum elevation in radians.
//
// Parameters:
//   - minElevation: lowest allowed vertical angle
//   - maxElevation: highest allowed vertical angle
//
// Returns:
//   - CameraControllerOption: functional option to set the elevation bounds
func WithElevationBounds(minElevation, maxElevation float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minElevation = minElevation
		cc.maxElevation = maxElevation
	}
}

// WithOrbitSpeed sets the angle in radians applied per OrbitLeft/Right/Up/Down call.
func WithOrbitSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.orbitSpeed = speed
	}
}

// WithMouseSensitivity sets the radians per pixel applied to drag input.
func WithMouseSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.mouseSensitivity = sensitivity
	}
}

// WithZoomSpeed sets the distance per unit of Zoom delta.
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}

// WithDollyScale sets the radius multiplier applied per scroll step (0 < scale < 1).
func WithDollyScale(scale float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.dollyScale = scale
	}
}

// WithPanSpeed sets the multiplier applied to pan input.
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.panSpeed = speed
	}
}

// WithLogger sets the logger that receives "camera change" lines after each applied update.
//
// Parameters:
//   - logger: the zerolog logger to use
//
// Returns:
//   - CameraControllerOption: functional option to set the logger
func WithLogger(logger zerolog.Logger) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.logger = logger
	}
}
