package loader

import (
	"bytes"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

type pipelineHarness struct {
	p       Pipeline
	target  *recordingTarget
	logs    *bytes.Buffer
	onLoad  atomic.Int32
	onError atomic.Int32
}

func newHarness(t *testing.T, extra ...PipelineBuilderOption) *pipelineHarness {
	t.Helper()
	h := &pipelineHarness{target: &recordingTarget{}, logs: &bytes.Buffer{}}
	manager := NewLoadingManager(
		WithOnLoad(func() { h.onLoad.Add(1) }),
		WithOnError(func(string, error) { h.onError.Add(1) }),
	)
	opts := append([]PipelineBuilderOption{
		WithSceneTarget(h.target),
		WithLoadingManager(manager),
		WithLogger(zerolog.New(h.logs)),
	}, extra...)
	h.p = NewPipeline(opts...)
	return h
}

func (h *pipelineHarness) await(t *testing.T) {
	t.Helper()
	require.Eventually(t, h.p.Poll, waitFor, tick)
}

func TestPipeline_StartsIdle(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, PipelineStateIdle, h.p.State())
	assert.False(t, h.p.Poll())
	assert.Nil(t, h.p.Object())
}

func TestPipeline_InsertsFirstMeshConfigured(t *testing.T) {
	h := newHarness(t)
	path := twoMeshFixture().save(t)

	require.NoError(t, h.p.Start(path))
	assert.Equal(t, PipelineStateLoading, h.p.State())
	h.await(t)

	assert.Equal(t, PipelineStateReady, h.p.State())
	require.NoError(t, h.p.Err())

	added, removed := h.target.counts()
	require.Equal(t, 1, added)
	assert.Zero(t, removed)

	obj := h.target.added[0]
	assert.Same(t, obj, h.p.Object())

	tr := obj.Transform()
	assert.Equal(t, [3]float32{100, 100, 100}, tr.Scale)
	assert.Equal(t, [3]float32{ModelRotationX, 0, 0}, tr.Rotation)
	assert.Equal(t, [3]float32{}, tr.Position)
	assert.True(t, obj.CastShadows())
	assert.True(t, obj.ReceiveShadows())

	mat := obj.Material()
	require.NotNil(t, mat)
	assert.Equal(t, common.HexToRGB(0xffc231), mat.Color())
	assert.Equal(t, common.HexToRGB(0x222222), mat.Specular())
	assert.Equal(t, float32(150), mat.Shininess())

	// The first mesh in traversal order is the quad; the triangle is ignored.
	want := (&model.Geometry{Positions: quad, Indices: quadIdx}).Signature()
	geom := obj.Model().Geometry()
	assert.Equal(t, want, geom.Signature())
	require.Len(t, geom.Normals, len(quad))
	for _, n := range geom.Normals {
		assert.InDelta(t, 1, common.Length3(n), 1e-5)
	}

	assert.EqualValues(t, 1, h.onLoad.Load())
	assert.Contains(t, h.logs.String(), `"message":"model structure"`)
	assert.Equal(t, 3, strings.Count(h.logs.String(), `"message":"child"`))
	assert.Contains(t, h.logs.String(), `"center":[1,0,-1],"size":[2,0,2]`)
}

func TestPipeline_NoMeshFound(t *testing.T) {
	h := newHarness(t)
	f := newFixture()
	path := f.root(f.node("empty", -1, f.node("leaf", -1))).save(t)

	require.NoError(t, h.p.Start(path))
	h.await(t)

	assert.Equal(t, PipelineStateFailed, h.p.State())
	assert.ErrorIs(t, h.p.Err(), ErrNoMeshFound)
	assert.False(t, errors.Is(h.p.Err(), ErrAssetLoad))

	added, _ := h.target.counts()
	assert.Zero(t, added)
	assert.Nil(t, h.p.Object())
	assert.Equal(t, 1, strings.Count(h.logs.String(), "model load failed"))
	assert.EqualValues(t, 1, h.onLoad.Load())
	assert.Zero(t, h.onError.Load())

	// Terminal: nothing else arrives.
	assert.False(t, h.p.Poll())
	assert.Equal(t, 1, strings.Count(h.logs.String(), "model load failed"))
}

func TestPipeline_AssetLoadError(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "missing.glb")

	require.NoError(t, h.p.Start(path))
	h.await(t)

	assert.Equal(t, PipelineStateFailed, h.p.State())
	assert.ErrorIs(t, h.p.Err(), ErrAssetLoad)
	added, _ := h.target.counts()
	assert.Zero(t, added)
	assert.Equal(t, 1, strings.Count(h.logs.String(), "model load failed"))
	assert.EqualValues(t, 1, h.onError.Load())
	assert.EqualValues(t, 1, h.onLoad.Load())
}

func TestPipeline_MalformedAccessorFailsWithoutCrashing(t *testing.T) {
	positions := base64.StdEncoding.EncodeToString(make([]byte, 36))
	doc := `{
		"asset": {"version": "2.0"},
		"scene": 0,
		"scenes": [{"nodes": [0]}],
		"nodes": [{"name": "broken", "mesh": 0}],
		"meshes": [{"name": "broken", "primitives": [{"attributes": {"POSITION": 0}}]}],
		"buffers": [{"byteLength": 36, "uri": "data:;base64,` + positions + `"}],
		"bufferViews": [{"buffer": 0, "byteLength": 36}],
		"accessors": [{"bufferView": 0, "componentType": 5126, "count": -1, "type": "VEC3"}]
	}`
	path := filepath.Join(t.TempDir(), "broken.gltf")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	h := newHarness(t)
	require.NoError(t, h.p.Start(path))
	h.await(t)

	assert.Equal(t, PipelineStateFailed, h.p.State())
	assert.ErrorIs(t, h.p.Err(), ErrAssetLoad)
	assert.ErrorIs(t, h.p.Err(), errAccessorOutOfBounds)
	added, _ := h.target.counts()
	assert.Zero(t, added)
	assert.EqualValues(t, 1, h.onLoad.Load())
}

func TestPipeline_LoaderPanicEndsTheLoad(t *testing.T) {
	h := newHarness(t, WithLoader(panickingLoader{}))

	require.NoError(t, h.p.Start("model.glb"))
	h.await(t)

	assert.Equal(t, PipelineStateFailed, h.p.State())
	assert.ErrorIs(t, h.p.Err(), ErrAssetLoad)
	assert.ErrorIs(t, h.p.Err(), ErrLoaderPanic)
	assert.Contains(t, h.p.Err().Error(), "corrupt index table")
	assert.EqualValues(t, 1, h.onLoad.Load())
	assert.EqualValues(t, 1, h.onError.Load())

	// The pipeline accepts a new load afterwards.
	require.NoError(t, h.p.Start("model.glb"))
	h.await(t)
	assert.EqualValues(t, 2, h.onLoad.Load())
}

func TestPipeline_ReloadDuringLoadRunsAfterIt(t *testing.T) {
	gate := make(chan struct{})
	asset := &model.Asset{Name: "gated", Roots: []*model.Node{
		{Name: "m", Type: model.NodeTypeMesh, Geometry: &model.Geometry{Positions: quad, Indices: quadIdx}},
	}}
	h := newHarness(t, WithLoader(&gatedLoader{gate: gate, asset: asset}))

	require.NoError(t, h.p.Start("a.glb"))
	h.p.RequestReload()
	assert.False(t, h.p.Poll())
	assert.Equal(t, PipelineStateLoading, h.p.State())

	close(gate)
	h.await(t)
	assert.Equal(t, PipelineStateLoading, h.p.State(), "the pending reload starts once the first load completes")
	h.await(t)

	assert.Equal(t, PipelineStateReady, h.p.State())
	added, removed := h.target.counts()
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, removed)
	assert.EqualValues(t, 2, h.onLoad.Load())
	assert.NotContains(t, h.logs.String(), "model reload failed")
}

func TestPipeline_StartWhileLoading(t *testing.T) {
	gate := make(chan struct{})
	asset := &model.Asset{Name: "gated", Roots: []*model.Node{
		{Name: "m", Type: model.NodeTypeMesh, Geometry: &model.Geometry{Positions: quad, Indices: quadIdx}},
	}}
	h := newHarness(t, WithLoader(&gatedLoader{gate: gate, asset: asset}))

	require.NoError(t, h.p.Start("a.glb"))
	assert.ErrorIs(t, h.p.Start("b.glb"), ErrLoadInProgress)
	assert.False(t, h.p.Poll())
	assert.Equal(t, PipelineStateLoading, h.p.State())

	close(gate)
	h.await(t)
	assert.Equal(t, PipelineStateReady, h.p.State())
	assert.Equal(t, "a.glb", h.p.Path())
}

func TestPipeline_ReloadReplacesObject(t *testing.T) {
	h := newHarness(t)
	path := twoMeshFixture().save(t)

	require.NoError(t, h.p.Start(path))
	h.await(t)
	first := h.p.Object()

	h.p.RequestReload()
	h.await(t)

	added, removed := h.target.counts()
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, removed)
	assert.Same(t, first, h.target.removed[0])
	assert.NotSame(t, first, h.p.Object())
	assert.EqualValues(t, 2, h.onLoad.Load())
}

func TestPipelineState_String(t *testing.T) {
	assert.Equal(t, "idle", PipelineStateIdle.String())
	assert.Equal(t, "loading", PipelineStateLoading.String())
	assert.Equal(t, "ready", PipelineStateReady.String())
	assert.Equal(t, "failed", PipelineStateFailed.String())
}
