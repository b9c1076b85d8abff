package engine

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/panel"
	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow is a window.Window whose events are triggered by the test.
type fakeWindow struct {
	running   bool
	processed int
	closeAt   int // ProcessMessages reports close on this call; 0 never

	onResize    func(int, int)
	onScroll    func(float32)
	onKeyDown   func(uint32)
	onKeyUp     func(uint32)
	onMouseDown func(int, int32, int32)
	onMouseUp   func(int, int32, int32)
	onMouseMove func(int32, int32)
}

func newFakeWindow() *fakeWindow {
	return &fakeWindow{running: true}
}

func (w *fakeWindow) SetResizeCallback(cb func(width, height int))         { w.onResize = cb }
func (w *fakeWindow) SetScrollCallback(cb func(delta float32))             { w.onScroll = cb }
func (w *fakeWindow) SetKeyDownCallback(cb func(keyCode uint32))           { w.onKeyDown = cb }
func (w *fakeWindow) SetKeyUpCallback(cb func(keyCode uint32))             { w.onKeyUp = cb }
func (w *fakeWindow) SetMouseDownCallback(cb func(button int, x, y int32)) { w.onMouseDown = cb }
func (w *fakeWindow) SetMouseUpCallback(cb func(button int, x, y int32))   { w.onMouseUp = cb }
func (w *fakeWindow) SetMouseMoveCallback(cb func(x, y int32))             { w.onMouseMove = cb }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor           { return nil }
func (w *fakeWindow) IsRunning() bool                                      { return w.running }
func (w *fakeWindow) Width() int                                           { return 800 }
func (w *fakeWindow) Height() int                                          { return 600 }

func (w *fakeWindow) Close() error {
	w.running = false
	return nil
}

func (w *fakeWindow) ProcessMessages() bool {
	w.processed++
	if w.closeAt > 0 && w.processed >= w.closeAt {
		w.running = false
	}
	return w.running
}

// fakeRenderer records sizes and the camera aspect seen by each frame.
type fakeRenderer struct {
	width, height int
	resizes       int
	renders       int
	aspects       []float32
	err           error
	onRender      func()
}

func (r *fakeRenderer) Resize(width, height int) error {
	r.width, r.height = width, height
	r.resizes++
	return nil
}

func (r *fakeRenderer) Render(s scene.Scene) error {
	r.renders++
	if cam := s.Camera(); cam != nil {
		r.aspects = append(r.aspects, cam.Aspect())
	}
	if r.onRender != nil {
		r.onRender()
	}
	return r.err
}

func newTestScene() scene.Scene {
	cam := camera.NewCamera(camera.WithController(camera.NewCameraController()))
	return scene.NewScene(scene.WithCamera(cam))
}

func newTestEngine(t *testing.T, opts ...EngineBuilderOption) (Engine, *fakeWindow, *fakeRenderer) {
	t.Helper()
	w := newFakeWindow()
	r := &fakeRenderer{}
	base := []EngineBuilderOption{WithWindow(w), WithRenderer(r), WithScene(newTestScene())}
	return NewEngine(append(base, opts...)...), w, r
}

func TestResize_AppliesAspectAndSizeSynchronously(t *testing.T) {
	e, w, r := newTestEngine(t)

	w.onResize(1000, 500)

	assert.InDelta(t, 2.0, e.Scene().Camera().Aspect(), 1e-6)
	assert.Equal(t, 1000, r.width)
	assert.Equal(t, 500, r.height)

	require.NoError(t, e.Tick())
	require.Len(t, r.aspects, 1)
	assert.InDelta(t, 2.0, r.aspects[0], 1e-6, "the next frame renders at the new aspect")
}

func TestResize_ZeroHeightKeepsAspect(t *testing.T) {
	e, w, r := newTestEngine(t)
	before := e.Scene().Camera().Aspect()

	w.onResize(640, 0)

	assert.Equal(t, before, e.Scene().Camera().Aspect())
	assert.Equal(t, 1, r.resizes)
	assert.Equal(t, 0, r.height)
}

func TestTick_RendersOncePerTick(t *testing.T) {
	e, w, r := newTestEngine(t)

	for range 3 {
		require.NoError(t, e.Tick())
	}
	assert.Equal(t, 3, w.processed)
	assert.Equal(t, 3, r.renders)
	assert.Equal(t, uint64(3), e.Frames())
}

func TestTick_ForcedRenderRunsOnce(t *testing.T) {
	e, _, r := newTestEngine(t)

	e.RequestRender()
	require.NoError(t, e.Tick())
	assert.Equal(t, 2, r.renders)

	require.NoError(t, e.Tick())
	assert.Equal(t, 3, r.renders)
}

func TestTick_ReturnsRenderError(t *testing.T) {
	e, _, r := newTestEngine(t)
	r.err = errors.New("device lost")

	err := e.Tick()
	require.Error(t, err)
	assert.ErrorIs(t, err, r.err)
	assert.Zero(t, e.Frames())
}

func TestTick_PollsPipeline(t *testing.T) {
	p := loader.NewPipeline()
	e, _, _ := newTestEngine(t, WithPipeline(p))

	require.NoError(t, p.Start("missing.glb"))
	require.Eventually(t, func() bool {
		_ = e.Tick()
		return p.State() == loader.PipelineStateFailed
	}, 2*time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, p.Err(), loader.ErrAssetLoad)
}

func TestRun_StopsWhenWindowCloses(t *testing.T) {
	e, w, r := newTestEngine(t)
	w.closeAt = 4

	require.NoError(t, e.Run())
	assert.Equal(t, 3, r.renders)
}

func TestRun_StopsOnQuit(t *testing.T) {
	e, _, r := newTestEngine(t)
	r.onRender = func() {
		if r.renders == 5 {
			e.Quit()
			e.Quit()
		}
	}

	require.NoError(t, e.Run())
	assert.Equal(t, 5, r.renders)
}

func TestRun_LogsFrameErrorsAndContinues(t *testing.T) {
	var buf bytes.Buffer
	e, _, r := newTestEngine(t, WithLogger(zerolog.New(&buf)))
	r.err = errors.New("surface lost")
	r.onRender = func() {
		if r.renders == 2 {
			e.Quit()
		}
	}

	require.NoError(t, e.Run())
	assert.Equal(t, 2, r.renders)
	assert.Contains(t, buf.String(), "frame failed")
	assert.Contains(t, buf.String(), "surface lost")
}

func TestRun_RequiresCollaborators(t *testing.T) {
	e := NewEngine(WithWindow(newFakeWindow()))
	assert.ErrorIs(t, e.Run(), errNotConfigured)
}

func TestKeyDown_RoutesToPanel(t *testing.T) {
	s := newTestScene()
	p := panel.NewPanel(s)
	w := newFakeWindow()
	NewEngine(WithWindow(w), WithRenderer(&fakeRenderer{}), WithScene(s), WithPanel(p))

	w.onKeyDown(common.Key2)
	assert.Equal(t, [3]float32{0, 30, 0}, s.Camera().Position())

	w.onKeyDown(common.KeyH)
	assert.True(t, s.HelperVisible())
}

func TestMouse_LeftDragOrbits(t *testing.T) {
	e, w, _ := newTestEngine(t)
	cam := e.Scene().Camera()
	before := cam.Position()
	radius := cam.Controller().Radius()

	w.onMouseDown(common.MouseButtonLeft, 100, 100)
	w.onMouseMove(140, 100)
	w.onMouseUp(common.MouseButtonLeft, 140, 100)
	require.NoError(t, e.Tick())

	assert.NotEqual(t, before, cam.Position())
	assert.InDelta(t, radius, cam.Controller().Radius(), 1e-3, "orbiting keeps the distance to the target")
}

func TestMouse_RightDragPans(t *testing.T) {
	e, w, _ := newTestEngine(t)
	ctrl := e.Scene().Camera().Controller()

	w.onMouseDown(common.MouseButtonRight, 0, 0)
	w.onMouseMove(30, 0)
	require.NoError(t, e.Tick())

	x, y, z := ctrl.Target()
	assert.NotEqual(t, [3]float32{}, [3]float32{x, y, z})
}

func TestMouse_MoveWithoutButtonIsIgnored(t *testing.T) {
	e, w, _ := newTestEngine(t)
	before := e.Scene().Camera().Position()

	w.onMouseMove(50, 50)
	w.onMouseMove(90, 10)
	require.NoError(t, e.Tick())

	assert.Equal(t, before, e.Scene().Camera().Position())
}

func TestScroll_Dollies(t *testing.T) {
	e, w, _ := newTestEngine(t)
	ctrl := e.Scene().Camera().Controller()
	before := ctrl.Radius()

	w.onScroll(2)
	require.NoError(t, e.Tick())

	assert.Less(t, ctrl.Radius(), before)
}

func TestProfiler_TicksOnlyWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	prof := profiler.NewProfiler(profiler.WithLogger(zerolog.New(&buf)), profiler.WithInterval(time.Millisecond))
	e, _, _ := newTestEngine(t, WithProfiler(prof))

	time.Sleep(2 * time.Millisecond)
	require.NoError(t, e.Tick())
	assert.Empty(t, buf.String())

	e.EnableProfiler()
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, e.Tick())
	assert.Contains(t, buf.String(), `"message":"profiler"`)
}
