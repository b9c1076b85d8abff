package camera

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/chewxy/math32"
)

// CameraBuilderOption configures a camera before its first matrix update.
type CameraBuilderOption func(*cameraImpl)

// WithUp overrides the world up direction used by the look-at matrix. The viewer keeps +Y.
//
// Parameters:
//   - x, y, z: up direction, not necessarily normalized
//
// Returns:
//   - CameraBuilderOption: the option
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if x == 0 && y == 0 && z == 0 {
			return
		}
		c.up = [3]float32{x, y, z}
	}
}

// WithFov sets the vertical field of view in radians. Values outside (0, π) are ignored.
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if fov <= 0 || fov >= math32.Pi {
			return
		}
		c.fov = fov
	}
}

// WithAspect sets the initial width / height ratio. The engine replaces it on every resize.
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if aspect > 0 {
			c.aspect = aspect
		}
	}
}

// WithNear sets the near clip distance. Non-positive distances are ignored.
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if near > 0 {
			c.near = near
		}
	}
}

// WithFar sets the far clip distance.
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if far > 0 {
			c.far = far
		}
	}
}

// WithPerspective sets the whole projection at once, taking the field of view in degrees
// the way it appears in the viewer configuration.
//
// Parameters:
//   - fovDegrees: vertical field of view in degrees
//   - aspect: width / height
//   - near: near clip distance
//   - far: far clip distance
//
// Returns:
//   - CameraBuilderOption: the option
func WithPerspective(fovDegrees, aspect, near, far float32) CameraBuilderOption {
	opts := []CameraBuilderOption{
		WithFov(common.DegToRad(fovDegrees)),
		WithAspect(aspect),
		WithNear(near),
		WithFar(far),
	}
	return func(c *cameraImpl) {
		for _, opt := range opts {
			opt(c)
		}
	}
}

// WithController attaches the orbit controller that owns position and target.
// NewCamera derives the view matrix from it once all options have run.
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}
