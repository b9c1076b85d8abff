package game_object

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameObject_Defaults(t *testing.T) {
	g := NewGameObject()
	assert.True(t, g.Enabled())
	assert.Equal(t, common.IdentityTransform(), g.Transform())
	assert.False(t, g.CastShadows())
	assert.False(t, g.ReceiveShadows())
	assert.Nil(t, g.Model())
	assert.Nil(t, g.Material())
}

func TestNewGameObject_Options(t *testing.T) {
	m := model.NewModel(model.WithName("m"))
	mat := material.NewMaterial()
	g := NewGameObject(
		WithID(7),
		WithName("obj"),
		WithModel(m),
		WithMaterial(mat),
		WithPosition(1, 2, 3),
		WithRotation(0.5, 0, 0),
		WithScale(100, 100, 100),
		WithCastShadows(true),
		WithReceiveShadows(true),
		WithEnabled(false),
	)

	assert.Equal(t, uint64(7), g.ID())
	assert.Equal(t, "obj", g.Name())
	assert.Same(t, m, g.Model())
	assert.Same(t, mat, g.Material())
	x, y, z := g.Position()
	assert.Equal(t, [3]float32{1, 2, 3}, [3]float32{x, y, z})
	sx, _, _ := g.Scale()
	assert.Equal(t, float32(100), sx)
	rx, _, _ := g.Rotation()
	assert.Equal(t, float32(0.5), rx)
	assert.True(t, g.CastShadows())
	assert.True(t, g.ReceiveShadows())
	assert.False(t, g.Enabled())
}

func TestGameObject_Setters(t *testing.T) {
	g := NewGameObject()
	g.SetID(3)
	g.SetPosition(4, 5, 6)
	g.SetScale(2, 2, 2)
	g.SetRotation(0, 1, 0)
	g.SetCastShadows(true)
	g.SetReceiveShadows(true)
	g.SetEnabled(false)

	tr := g.Transform()
	assert.Equal(t, uint64(3), g.ID())
	assert.Equal(t, [3]float32{4, 5, 6}, tr.Position)
	assert.Equal(t, [3]float32{2, 2, 2}, tr.Scale)
	assert.Equal(t, [3]float32{0, 1, 0}, tr.Rotation)
	assert.True(t, g.CastShadows())
	assert.True(t, g.ReceiveShadows())
	assert.False(t, g.Enabled())
}

func TestGPUObjectUniform_Layout(t *testing.T) {
	g := NewGameObject(
		WithScale(2, 2, 2),
		WithMaterial(material.NewMaterial(material.WithShininess(150))),
		WithReceiveShadows(true),
	)
	u := NewGPUObjectUniform(g)
	assert.Equal(t, 176, u.Size())

	buf := u.Marshal()
	require.Len(t, buf, 176)
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])))
	// Uniform scale 2 gives a normal matrix diagonal of 0.5.
	assert.InDelta(t, 0.5, math.Float32frombits(binary.LittleEndian.Uint32(buf[64:])), 1e-6)
	assert.Equal(t, float32(150), math.Float32frombits(binary.LittleEndian.Uint32(buf[140:])))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[160:]))
}

func TestNormalMatrix_SingularFallsBackToIdentity(t *testing.T) {
	var zero [16]float32
	n := normalMatrix(zero)
	var id [16]float32
	common.Identity(id[:])
	assert.Equal(t, id, n)
}
