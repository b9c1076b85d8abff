package loader

import (
	"encoding/base64"
	"encoding/binary"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_RoundTripsEncodedGLB(t *testing.T) {
	f := newFixture()
	m := f.mesh("Quad", f.primitive(quad, quadIdx))
	path := f.root(f.node("quad", int(m))).save(t)

	p := newGLTFParser()
	require.NoError(t, p.Parse(path))

	doc := p.Document()
	require.Len(t, doc.Meshes, 1)
	prim := doc.Meshes[0].Primitives[0]

	positions, err := p.ReadVec3Accessor(prim.Attributes[gltfAttributePosition])
	require.NoError(t, err)
	assert.Equal(t, quad, positions)

	require.NotNil(t, prim.Indices)
	indices, err := p.ReadIndicesAccessor(*prim.Indices)
	require.NoError(t, err)
	assert.Equal(t, quadIdx, indices)
}

func TestParser_ParsesEmbeddedDataURI(t *testing.T) {
	var bin []byte
	for _, v := range triangle {
		for _, c := range v {
			bin = binary.LittleEndian.AppendUint32(bin, math.Float32bits(c))
		}
	}
	doc := `{
		"asset": {"version": "2.0"},
		"buffers": [{"byteLength": 36, "uri": "data:application/octet-stream;base64,` + base64.StdEncoding.EncodeToString(bin) + `"}],
		"bufferViews": [{"buffer": 0, "byteLength": 36}],
		"accessors": [{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"}]
	}`

	p := newGLTFParser()
	require.NoError(t, p.ParseBytes([]byte(doc), "."))
	got, err := p.ReadVec3Accessor(0)
	require.NoError(t, err)
	assert.Equal(t, triangle, got)
}

func TestParser_HonorsByteStride(t *testing.T) {
	// Two vec3 positions interleaved with a 4-byte pad each.
	var bin []byte
	for _, v := range triangle[:2] {
		for _, c := range v {
			bin = binary.LittleEndian.AppendUint32(bin, math.Float32bits(c))
		}
		bin = append(bin, 0xde, 0xad, 0xbe, 0xef)
	}
	doc := `{
		"asset": {"version": "2.0"},
		"buffers": [{"byteLength": 32, "uri": "data:;base64,` + base64.StdEncoding.EncodeToString(bin) + `"}],
		"bufferViews": [{"buffer": 0, "byteLength": 32, "byteStride": 16}],
		"accessors": [{"bufferView": 0, "componentType": 5126, "count": 2, "type": "VEC3"}]
	}`

	p := newGLTFParser()
	require.NoError(t, p.ParseBytes([]byte(doc), "."))
	got, err := p.ReadVec3Accessor(0)
	require.NoError(t, err)
	assert.Equal(t, triangle[:2], got)
}

func glbHeader(magic, version uint32) []byte {
	b := binary.LittleEndian.AppendUint32(nil, magic)
	b = binary.LittleEndian.AppendUint32(b, version)
	return binary.LittleEndian.AppendUint32(b, 12)
}

func TestParser_Errors(t *testing.T) {
	binOnly := glbHeader(gltfGLBMagic, 2)
	binOnly = binary.LittleEndian.AppendUint32(binOnly, 4)
	binOnly = binary.LittleEndian.AppendUint32(binOnly, gltfGLBChunkBIN)
	binOnly = append(binOnly, 0, 0, 0, 0)

	truncated := glbHeader(gltfGLBMagic, 2)
	truncated = binary.LittleEndian.AppendUint32(truncated, math.MaxUint32)
	truncated = binary.LittleEndian.AppendUint32(truncated, gltfGLBChunkJSON)
	truncated = append(truncated, '{', '}')

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"wrong magic", []byte("not a glb file at all"), errInvalidGLBMagic},
		{"wrong version", glbHeader(gltfGLBMagic, 1), errInvalidGLBVersion},
		{"missing json", binOnly, errMissingJSONChunk},
		{"chunk longer than file", truncated, io.ErrUnexpectedEOF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.glb")
			require.NoError(t, os.WriteFile(path, tt.data, 0o644))
			assert.ErrorIs(t, newGLTFParser().Parse(path), tt.want)
		})
	}
}

func TestParser_RejectsVersionOne(t *testing.T) {
	err := newGLTFParser().ParseBytes([]byte(`{"asset": {"version": "1.0"}}`), ".")
	assert.ErrorIs(t, err, errInvalidGLTFVersion)
}

func TestParser_BufferShorterThanDeclared(t *testing.T) {
	doc := `{
		"asset": {"version": "2.0"},
		"buffers": [{"byteLength": 64, "uri": "data:;base64,AAAA"}]
	}`
	err := newGLTFParser().ParseBytes([]byte(doc), ".")
	assert.ErrorIs(t, err, errBufferSizeMismatch)
}

func TestParser_AccessorPastBufferEnd(t *testing.T) {
	doc := `{
		"asset": {"version": "2.0"},
		"buffers": [{"byteLength": 3, "uri": "data:;base64,AAAA"}],
		"bufferViews": [{"buffer": 0, "byteLength": 3}],
		"accessors": [{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"}]
	}`
	p := newGLTFParser()
	require.NoError(t, p.ParseBytes([]byte(doc), "."))
	_, err := p.ReadVec3Accessor(0)
	assert.ErrorIs(t, err, errAccessorOutOfBounds)
}

func TestParser_RejectsMalformedAccessorLayout(t *testing.T) {
	// 36 bytes: one vec3 triangle worth of floats.
	data := base64.StdEncoding.EncodeToString(make([]byte, 36))

	tests := []struct {
		name       string
		bufferView string
		accessor   string
	}{
		{"negative count", `{"buffer": 0, "byteLength": 36}`, `"count": -1`},
		{"negative accessor offset", `{"buffer": 0, "byteLength": 36}`, `"count": 1, "byteOffset": -12`},
		{"negative view offset", `{"buffer": 0, "byteOffset": -12, "byteLength": 36}`, `"count": 1`},
		{"negative stride", `{"buffer": 0, "byteLength": 36, "byteStride": -12}`, `"count": 3`},
		{"stride below element size", `{"buffer": 0, "byteLength": 36, "byteStride": 4}`, `"count": 3`},
		{"view past buffer end", `{"buffer": 0, "byteOffset": 12, "byteLength": 36}`, `"count": 1`},
		{"accessor past view end", `{"buffer": 0, "byteLength": 24}`, `"count": 3`},
		{"offset past view end", `{"buffer": 0, "byteLength": 36}`, `"count": 1, "byteOffset": 48`},
		{"count overflows", `{"buffer": 0, "byteLength": 36}`, `"count": 4611686018427387904`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{
				"asset": {"version": "2.0"},
				"buffers": [{"byteLength": 36, "uri": "data:;base64,` + data + `"}],
				"bufferViews": [` + tt.bufferView + `],
				"accessors": [{"bufferView": 0, "componentType": 5126, "type": "VEC3", ` + tt.accessor + `}]
			}`
			p := newGLTFParser()
			require.NoError(t, p.ParseBytes([]byte(doc), "."))
			assert.NotPanics(t, func() {
				_, err := p.ReadVec3Accessor(0)
				assert.ErrorIs(t, err, errAccessorOutOfBounds)
			})
		})
	}
}

func TestImporter_BuildsSceneGraphInOrder(t *testing.T) {
	path := twoMeshFixture().save(t)

	asset, err := newGLTFImporter().Import(path)
	require.NoError(t, err)
	assert.Equal(t, "fixture", asset.Name)

	type visit struct {
		name  string
		typ   model.NodeType
		depth int
	}
	var visits []visit
	asset.Traverse(func(n *model.Node, depth int) bool {
		visits = append(visits, visit{n.Name, n.Type, depth})
		return true
	})
	assert.Equal(t, []visit{
		{"group", model.NodeTypeObject, 0},
		{"first", model.NodeTypeMesh, 1},
		{"second", model.NodeTypeMesh, 1},
	}, visits)

	geoms := asset.MeshGeometries()
	require.Len(t, geoms, 2)
	assert.Equal(t, quad, geoms[0].Positions)
	assert.Nil(t, geoms[1].Indices)
}

func TestImporter_MultiPrimitiveMeshBecomesGroup(t *testing.T) {
	f := newFixture()
	m := f.mesh("Parts", f.primitive(quad, quadIdx), f.primitive(triangle, nil))
	path := f.root(f.node("parts", int(m))).save(t)

	asset, err := newGLTFImporter().Import(path)
	require.NoError(t, err)
	require.Len(t, asset.Roots, 1)

	root := asset.Roots[0]
	assert.Equal(t, model.NodeTypeObject, root.Type)
	require.Len(t, root.Children, 2)
	assert.Equal(t, model.NodeTypeMesh, root.Children[0].Type)
	assert.Len(t, root.Children[0].Geometry.Positions, 4)
	assert.Len(t, root.Children[1].Geometry.Positions, 3)
}

func TestImporter_RejectsIndexPastVertexCount(t *testing.T) {
	f := newFixture()
	m := f.mesh("Broken", f.primitive(triangle, []uint32{0, 1, 7}))
	path := f.root(f.node("broken", int(m))).save(t)

	_, err := newGLTFImporter().Import(path)
	assert.Error(t, err)
}

func TestGLTFRootNodes_WithoutScenesUsesParentlessNodes(t *testing.T) {
	doc := &gltfDocument{Nodes: []gltfNode{
		{Name: "a", Children: []int{2}},
		{Name: "b"},
		{Name: "c"},
	}}
	assert.Equal(t, []int{0, 1}, gltfRootNodes(doc))
}

func TestGLTFExtractModelName_FallsBackToFileName(t *testing.T) {
	assert.Equal(t, "Volumenes", gltfExtractModelName(&gltfDocument{}, "models/Volumenes.glb"))
}

func TestLoader_RejectsUnknownExtension(t *testing.T) {
	_, err := NewLoader(BackendTypeGLTF).Load("model.obj")
	assert.Error(t, err)
}

func TestLoader_CachesByPath(t *testing.T) {
	path := twoMeshFixture().save(t)
	l := NewLoader(BackendTypeGLTF)

	asset, err := l.Load(path)
	require.NoError(t, err)
	assert.Same(t, asset, l.Get(path))
	assert.Nil(t, l.Get("missing.glb"))
}
