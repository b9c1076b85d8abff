package viewer

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/config"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow stops the loop once closeRequested is set or the deadline passes.
type fakeWindow struct {
	running        bool
	closed         bool
	closeRequested bool
	processed      int
	deadline       time.Time

	onKeyDown func(uint32)
	onResize  func(int, int)
}

func newFakeWindow() *fakeWindow {
	return &fakeWindow{running: true, deadline: time.Now().Add(3 * time.Second)}
}

func (w *fakeWindow) SetResizeCallback(cb func(width, height int))         { w.onResize = cb }
func (w *fakeWindow) SetScrollCallback(cb func(delta float32))             {}
func (w *fakeWindow) SetKeyDownCallback(cb func(keyCode uint32))           { w.onKeyDown = cb }
func (w *fakeWindow) SetKeyUpCallback(cb func(keyCode uint32))             {}
func (w *fakeWindow) SetMouseDownCallback(cb func(button int, x, y int32)) {}
func (w *fakeWindow) SetMouseUpCallback(cb func(button int, x, y int32))   {}
func (w *fakeWindow) SetMouseMoveCallback(cb func(x, y int32))             {}
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor           { return nil }
func (w *fakeWindow) IsRunning() bool                                      { return w.running }
func (w *fakeWindow) Width() int                                           { return 1280 }
func (w *fakeWindow) Height() int                                          { return 720 }

func (w *fakeWindow) Close() error {
	w.running = false
	w.closed = true
	return nil
}

func (w *fakeWindow) ProcessMessages() bool {
	w.processed++
	if w.closeRequested || time.Now().After(w.deadline) {
		w.running = false
	}
	return w.running
}

type fakeRenderer struct {
	renders  int
	released bool
	onRender func(s scene.Scene)
}

func (r *fakeRenderer) Resize(width, height int) error { return nil }

func (r *fakeRenderer) Render(s scene.Scene) error {
	r.renders++
	if r.onRender != nil {
		r.onRender(s)
	}
	return nil
}

func (r *fakeRenderer) Release() { r.released = true }

func defaultConfig(t *testing.T) config.Config {
	t.Helper()
	t.Cleanup(viper.Reset)
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func writeTriangleGLB(t *testing.T, dir string) string {
	t.Helper()
	doc := gltf.NewDocument()
	prim := &gltf.Primitive{
		Attributes: map[string]uint32{
			gltf.POSITION: uint32(modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})),
		},
	}
	doc.Meshes = []*gltf.Mesh{{Name: "Volumen", Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Name: "Volumen", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = []uint32{0}

	path := filepath.Join(dir, "model.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))
	return path
}

func TestCompose_AppliesConfig(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Sun = config.SunConfig{Azimuth: -30, Elevation: 60}
	cfg.Camera.Fov = 60
	cfg.Panel.SunStep = 10

	v := compose(cfg, zerolog.Nop(), newFakeWindow(), &fakeRenderer{}, nil)

	cam := v.Scene().Camera()
	require.NotNil(t, cam)
	assert.InDelta(t, common.DegToRad(60), cam.Fov(), 1e-5)
	assert.InDelta(t, 1280.0/720.0, cam.Aspect(), 1e-5)
	assert.Equal(t, [3]float32{0, 1, 30}, cam.Position())

	assert.Equal(t, light.SunPosition{Azimuth: -30, Elevation: 60}, v.Scene().SunPosition())
	sun := v.Scene().Sun().Position()
	want := light.SunVector(light.SunPosition{Azimuth: -30, Elevation: 60})
	for i := range 3 {
		assert.InDelta(t, want[i], sun[i], 1e-3)
	}

	v.Panel().HandleKey(common.KeyRight)
	assert.Equal(t, float32(-20), v.Scene().SunPosition().Azimuth)
	assert.Len(t, v.Panel().Buttons(), 4)
}

func TestRun_LoadsModelAndForcesRender(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Model.Path = writeTriangleGLB(t, t.TempDir())

	win := newFakeWindow()
	r := &fakeRenderer{}
	v := compose(cfg, zerolog.Nop(), win, r, r.Release)
	r.onRender = func(scene.Scene) {
		if v.Pipeline().State() == loader.PipelineStateReady {
			win.closeRequested = true
		}
	}

	require.NoError(t, v.Run())

	assert.Equal(t, loader.PipelineStateReady, v.Pipeline().State())
	assert.Len(t, v.Scene().Objects(), 2, "ground plus the loaded model")
	assert.Equal(t, win.processed, r.renders, "one extra frame is forced when the load completes")
	assert.True(t, win.closed)
	assert.True(t, r.released)
}

func TestRun_MissingModelKeepsRendering(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Model.Path = filepath.Join(t.TempDir(), "missing.glb")

	var buf bytes.Buffer
	win := newFakeWindow()
	r := &fakeRenderer{}
	v := compose(cfg, zerolog.New(&buf), win, r, nil)
	r.onRender = func(scene.Scene) {
		if v.Pipeline().State() == loader.PipelineStateFailed {
			win.closeRequested = true
		}
	}

	require.NoError(t, v.Run())

	assert.ErrorIs(t, v.Pipeline().Err(), loader.ErrAssetLoad)
	assert.Len(t, v.Scene().Objects(), 1, "only the ground")
	assert.Equal(t, 1, strings.Count(buf.String(), `"level":"error"`), "a failed load is reported once")
	assert.Contains(t, buf.String(), "model load failed")
}

func TestRun_WatchFailsForMissingDirectory(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Model.Path = filepath.Join(t.TempDir(), "nope", "model.glb")
	cfg.Model.Watch = true

	win := newFakeWindow()
	v := compose(cfg, zerolog.Nop(), win, &fakeRenderer{}, nil)

	err := v.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch model")
	assert.True(t, win.closed)
}

func TestClose_Idempotent(t *testing.T) {
	cfg := defaultConfig(t)
	r := &fakeRenderer{}
	v := compose(cfg, zerolog.Nop(), newFakeWindow(), r, r.Release)

	require.NoError(t, v.Close())
	require.NoError(t, v.Close())
	assert.True(t, r.released)
}
