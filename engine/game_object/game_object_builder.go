package game_object

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject via NewGameObject.
type GameObjectBuilderOption func(*gameObject)

// WithID is an option builder that sets the object's unique identifier.
//
// Parameters:
//   - id: the ID to assign
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the ID option
func WithID(id uint64) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.id = id
	}
}

// WithName is an option builder that sets the object's display name.
func WithName(name string) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.name = name
	}
}

// WithEnabled is an option builder that sets whether the object is enabled for rendering.
//
// Parameters:
//   - enabled: true to enable
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the enabled option
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.enabled.Store(enabled)
	}
}

// WithModel is an option builder that assigns a Model to the object.
//
// Parameters:
//   - m: the model to assign
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the model option
func WithModel(m model.Model) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.mdl = m
	}
}

// WithMaterial is an option builder that assigns the Material the object is drawn with.
//
// Parameters:
//   - m: the material to assign
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the material option
func WithMaterial(m material.Material) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.mat = m
	}
}

// WithPosition is an option builder that sets the object's world position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the position option
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.transform.Position = [3]float32{x, y, z}
	}
}

// WithScale is an option builder that sets the object's scale.
//
// Parameters:
//   - sx, sy, sz: scale components
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the scale option
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.transform.Scale = [3]float32{sx, sy, sz}
	}
}

// WithRotation is an option builder that sets the object's Euler rotation in radians.
//
// Parameters:
//   - rx, ry, rz: rotation angles
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the rotation option
func WithRotation(rx, ry, rz float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.transform.Rotation = [3]float32{rx, ry, rz}
	}
}

// WithCastShadows is an option builder that sets whether the object is drawn into the shadow map.
func WithCastShadows(cast bool) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.castShadows = cast
	}
}

// WithReceiveShadows is an option builder that sets whether the object samples the shadow map.
func WithReceiveShadows(receive bool) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.receiveShadows = receive
	}
}
