package scene

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
)

// Ground plane presentation.
const (
	GroundSize     float32 = 1000
	GroundColorHex uint32  = 0xcbcbcb
)

// PlaneGeometry builds a width x height quad in the XY plane, centered on the origin
// and facing +Z.
//
// Parameters:
//   - width: extent along X
//   - height: extent along Y
//
// Returns:
//   - *model.Geometry: four vertices and two counter-clockwise triangles
func PlaneGeometry(width, height float32) *model.Geometry {
	hw, hh := width/2, height/2
	return &model.Geometry{
		Positions: [][3]float32{{-hw, -hh, 0}, {hw, -hh, 0}, {hw, hh, 0}, {-hw, hh, 0}},
		Normals:   [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
}

// NewGround creates the ground object: a GroundSize square laid flat by a -90 degree
// X rotation, matte gray, receiving shadows without casting them. It does not write depth,
// so it never occludes the model.
//
// Returns:
//   - game_object.GameObject: the ground plane
func NewGround() game_object.GameObject {
	mat := material.NewMaterial(
		material.WithName("ground"),
		material.WithColorHex(GroundColorHex),
		material.WithSpecularHex(0x000000),
		material.WithDepthWrite(false),
	)
	mdl := model.NewModel(
		model.WithName("ground"),
		model.WithGeometry(PlaneGeometry(GroundSize, GroundSize)),
	)

	return game_object.NewGameObject(
		game_object.WithName("ground"),
		game_object.WithModel(mdl),
		game_object.WithMaterial(mat),
		game_object.WithRotation(-common.DegToRad(90), 0, 0),
		game_object.WithCastShadows(false),
		game_object.WithReceiveShadows(true),
	)
}
