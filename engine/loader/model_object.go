package loader

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"

	"github.com/chewxy/math32"
)

// Presentation applied to every loaded model regardless of its own materials.
const (
	ModelColorHex    uint32  = 0xffc231
	ModelSpecularHex uint32  = 0x222222
	ModelShininess   float32 = 150
	ModelScale       float32 = 100
)

// ModelRotationX turns Z-up source data into the viewer's Y-up world.
const ModelRotationX = -math32.Pi / 2

// NewModelObject wraps a geometry in a scene-ready GameObject. The geometry is
// cloned and its normals recomputed, so the source asset is left untouched.
// The object gets the fixed Phong material, a uniform scale of ModelScale, a
// rotation of ModelRotationX about X, sits at the origin, and casts and receives shadows.
//
// Parameters:
//   - name: the object and model name
//   - geom: the source geometry
//
// Returns:
//   - game_object.GameObject: the configured object
func NewModelObject(name string, geom *model.Geometry) game_object.GameObject {
	g := geom.Clone()
	g.ComputeVertexNormals()

	mat := material.NewMaterial(
		material.WithName(name),
		material.WithColorHex(ModelColorHex),
		material.WithShininess(ModelShininess),
		material.WithSpecularHex(ModelSpecularHex),
	)

	return game_object.NewGameObject(
		game_object.WithName(name),
		game_object.WithModel(model.NewModel(model.WithName(name), model.WithGeometry(g))),
		game_object.WithMaterial(mat),
		game_object.WithScale(ModelScale, ModelScale, ModelScale),
		game_object.WithRotation(ModelRotationX, 0, 0),
		game_object.WithPosition(0, 0, 0),
		game_object.WithCastShadows(true),
		game_object.WithReceiveShadows(true),
	)
}
