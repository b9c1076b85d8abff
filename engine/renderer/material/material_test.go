package material

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMaterial_Defaults(t *testing.T) {
	m := NewMaterial()
	assert.Equal(t, [3]float32{1, 1, 1}, m.Color())
	assert.Equal(t, DefaultShininess, m.Shininess())
	assert.Equal(t, common.HexToRGB(DefaultSpecularHex), m.Specular())
	assert.True(t, m.DepthWrite())
}

func TestNewMaterial_Options(t *testing.T) {
	m := NewMaterial(
		WithName("model"),
		WithColorHex(0xffc231),
		WithSpecularHex(0x222222),
		WithShininess(150),
		WithDepthWrite(false),
	)
	assert.Equal(t, "model", m.Name())
	assert.Equal(t, common.HexToRGB(0xffc231), m.Color())
	assert.Equal(t, common.HexToRGB(0x222222), m.Specular())
	assert.Equal(t, float32(150), m.Shininess())
	assert.False(t, m.DepthWrite())
}

func TestGPUPhongParams_Marshal(t *testing.T) {
	m := NewMaterial(WithColorHex(0xff0000), WithSpecularHex(0x0000ff), WithShininess(150))
	p := NewGPUPhongParams(m)
	buf := p.Marshal()

	require.Len(t, buf, p.Size())
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])))
	assert.Equal(t, float32(150), math.Float32frombits(binary.LittleEndian.Uint32(buf[12:])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[24:])))
}
