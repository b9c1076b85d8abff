package scene

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithName sets the scene name.
//
// Parameters:
//   - name: the scene name
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithName(name string) SceneBuilderOption {
	return func(s *scene) {
		s.name = name
	}
}

// WithBackgroundHex sets the clear color from a packed 0xRRGGBB value.
//
// Parameters:
//   - hex: the packed color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBackgroundHex(hex uint32) SceneBuilderOption {
	return func(s *scene) {
		s.background = common.HexToRGB(hex)
	}
}

// WithCamera attaches the camera the scene is viewed through.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.cam = cam
	}
}

// WithSunLight replaces the default directional light.
//
// Parameters:
//   - l: the directional light
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSunLight(l light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.sun = l
	}
}

// WithHemisphereLight replaces the default hemisphere light.
//
// Parameters:
//   - l: the hemisphere light
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithHemisphereLight(l light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.hemi = l
	}
}

// WithSunPosition sets the initial angular sun position. It is clamped when the scene is built.
//
// Parameters:
//   - p: the sun position in degrees
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSunPosition(p light.SunPosition) SceneBuilderOption {
	return func(s *scene) {
		s.sunPos = p
	}
}

// WithGround replaces the default ground plane.
//
// Parameters:
//   - ground: the ground object
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithGround(ground game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		s.ground = ground
	}
}

// WithObjects adds initial objects to the scene.
// Objects without IDs will be assigned new IDs.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			if obj.ID() == 0 {
				obj.SetID(s.nextID)
				s.nextID++
			}
			if _, exists := s.registry[obj.ID()]; exists {
				continue
			}
			s.registry[obj.ID()] = obj
			s.order = append(s.order, obj.ID())
		}
	}
}

// WithHelperVisible sets whether the shadow-frustum helper starts visible.
//
// Parameters:
//   - visible: true to draw the helper
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithHelperVisible(visible bool) SceneBuilderOption {
	return func(s *scene) {
		s.helperVisible = visible
	}
}
