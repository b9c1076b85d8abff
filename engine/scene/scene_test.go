package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScene_Defaults(t *testing.T) {
	s := NewScene()

	assert.Equal(t, [3]float32{1, 1, 1}, s.Background())
	assert.Equal(t, light.DefaultSunPosition(), s.SunPosition())
	assert.False(t, s.HelperVisible())
	assert.Nil(t, s.HelperLines())
	assert.Zero(t, s.Count())

	lights := s.Lights()
	require.Len(t, lights, 2)
	assert.Equal(t, light.LightTypeDirectional, lights[0].Type())
	assert.Equal(t, light.LightTypeHemisphere, lights[1].Type())

	pos := s.Sun().Position()
	assert.InDelta(t, 50, pos[0], 1e-3)
	assert.InDelta(t, 70.7107, pos[1], 1e-3)
	assert.InDelta(t, -50, pos[2], 1e-3)
}

func TestGround_Configuration(t *testing.T) {
	s := NewScene()
	g := s.Ground()
	require.NotNil(t, g)

	assert.NotZero(t, g.ID())
	assert.Same(t, g, s.Get(g.ID()))
	assert.False(t, g.CastShadows())
	assert.True(t, g.ReceiveShadows())
	assert.False(t, g.Material().DepthWrite())
	assert.Equal(t, common.HexToRGB(GroundColorHex), g.Material().Color())

	b := g.Model().Geometry().Bounds()
	assert.Equal(t, [3]float32{1000, 1000, 0}, b.Size())

	// Laid flat, the plane's normal points up.
	m := g.ModelMatrix()
	up := common.Sub3(common.TransformPoint(m[:], [3]float32{0, 0, 1}), common.TransformPoint(m[:], [3]float32{}))
	assert.InDelta(t, 0, up[0], 1e-5)
	assert.InDelta(t, 1, up[1], 1e-5)
	assert.InDelta(t, 0, up[2], 1e-5)
}

func TestScene_AddAssignsIDsAndKeepsOrder(t *testing.T) {
	s := NewScene()
	a := game_object.NewGameObject(game_object.WithName("a"))
	b := game_object.NewGameObject(game_object.WithName("b"))

	s.Add(a)
	s.Add(b)
	s.Add(a)

	assert.Equal(t, 2, s.Count())
	assert.NotZero(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.NotEqual(t, s.Ground().ID(), a.ID())

	objs := s.Objects()
	require.Len(t, objs, 3)
	assert.Same(t, s.Ground(), objs[0])
	assert.Same(t, a, objs[1])
	assert.Same(t, b, objs[2])
}

func TestScene_ObjectsSkipsDisabled(t *testing.T) {
	a := game_object.NewGameObject(game_object.WithEnabled(false))
	s := NewScene(WithObjects(a))

	assert.Equal(t, 1, s.Count())
	assert.Len(t, s.Objects(), 1)

	a.SetEnabled(true)
	assert.Len(t, s.Objects(), 2)
}

func TestScene_Remove(t *testing.T) {
	s := NewScene()
	a := game_object.NewGameObject()
	b := game_object.NewGameObject()
	s.Add(a)
	s.Add(b)

	s.Remove(a)
	assert.Equal(t, 1, s.Count())
	assert.Nil(t, s.Get(a.ID()))
	assert.Same(t, b, s.Get(b.ID()))

	s.Remove(a)
	s.Remove(nil)
	s.Remove(s.Ground())
	assert.Equal(t, 1, s.Count())
	assert.NotNil(t, s.Get(s.Ground().ID()))
}

func TestScene_SetSunPositionClamps(t *testing.T) {
	s := NewScene()

	got := s.SetSunPosition(light.SunPosition{Azimuth: 120, Elevation: -10})
	assert.Equal(t, light.SunPosition{Azimuth: 90, Elevation: 0}, got)
	assert.Equal(t, got, s.SunPosition())
	assert.Equal(t, light.SunVector(got), s.Sun().Position())
}

func TestScene_WithSunPositionIsClamped(t *testing.T) {
	s := NewScene(WithSunPosition(light.SunPosition{Azimuth: -200, Elevation: 200}))
	assert.Equal(t, light.SunPosition{Azimuth: -90, Elevation: 90}, s.SunPosition())
}

func TestScene_HelperLinesFollowVisibility(t *testing.T) {
	s := NewScene(WithBackgroundHex(0x000000))
	assert.Equal(t, [3]float32{}, s.Background())

	s.SetHelperVisible(true)
	lines := s.HelperLines()
	assert.Len(t, lines, 24)

	s.SetHelperVisible(false)
	assert.Nil(t, s.HelperLines())
}
