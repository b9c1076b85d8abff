package loader

// The subset of the glTF 2.0 JSON schema the viewer reads. Materials, textures,
// skins and animations are ignored: the viewer replaces the material and draws static geometry.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html

type gltfDocument struct {
	Asset gltfAsset `json:"asset"`

	// Scene is the index of the default scene. Nil means scene 0 when scenes exist.
	Scene *int `json:"scene,omitempty"`

	Scenes      []gltfScene      `json:"scenes,omitempty"`
	Nodes       []gltfNode       `json:"nodes,omitempty"`
	Meshes      []gltfMesh       `json:"meshes,omitempty"`
	Accessors   []gltfAccessor   `json:"accessors,omitempty"`
	BufferViews []gltfBufferView `json:"bufferViews,omitempty"`
	Buffers     []gltfBuffer     `json:"buffers,omitempty"`
}

type gltfAsset struct {
	Version   string `json:"version"`
	Generator string `json:"generator,omitempty"`
}

type gltfScene struct {
	Name  string `json:"name,omitempty"`
	Nodes []int  `json:"nodes,omitempty"`
}

// gltfNode is a scene graph node. Transforms are not read: the viewer applies its own.
type gltfNode struct {
	Name     string `json:"name,omitempty"`
	Children []int  `json:"children,omitempty"`
	Mesh     *int   `json:"mesh,omitempty"`
}

type gltfMesh struct {
	Name       string          `json:"name,omitempty"`
	Primitives []gltfPrimitive `json:"primitives"`
}

type gltfPrimitive struct {
	// Attributes maps semantic names (POSITION, NORMAL, ...) to accessor indices.
	Attributes map[string]int `json:"attributes"`
	Indices    *int           `json:"indices,omitempty"`

	// Mode defaults to triangles when absent.
	Mode *int `json:"mode,omitempty"`
}

const (
	gltfAttributePosition = "POSITION"
	gltfAttributeNormal   = "NORMAL"

	gltfPrimitiveModeTriangles = 4
)

type gltfAccessor struct {
	BufferView    *int                `json:"bufferView,omitempty"`
	ByteOffset    int                 `json:"byteOffset,omitempty"`
	ComponentType int                 `json:"componentType"`
	Count         int                 `json:"count"`
	Type          string              `json:"type"`
	Sparse        *gltfAccessorSparse `json:"sparse,omitempty"`
}

// gltfAccessorSparse only records that an accessor is sparse; sparse data is rejected.
type gltfAccessorSparse struct {
	Count int `json:"count"`
}

const (
	gltfComponentTypeByte          = 5120
	gltfComponentTypeUnsignedByte  = 5121
	gltfComponentTypeShort         = 5122
	gltfComponentTypeUnsignedShort = 5123
	gltfComponentTypeUnsignedInt   = 5125
	gltfComponentTypeFloat         = 5126
)

const (
	gltfAccessorTypeScalar = "SCALAR"
	gltfAccessorTypeVec2   = "VEC2"
	gltfAccessorTypeVec3   = "VEC3"
	gltfAccessorTypeVec4   = "VEC4"
	gltfAccessorTypeMat4   = "MAT4"
)

type gltfBufferView struct {
	Buffer     int  `json:"buffer"`
	ByteOffset int  `json:"byteOffset,omitempty"`
	ByteLength int  `json:"byteLength"`
	ByteStride *int `json:"byteStride,omitempty"`
}

type gltfBuffer struct {
	URI        string `json:"uri,omitempty"`
	ByteLength int    `json:"byteLength"`

	// Data is filled in by the parser from the GLB BIN chunk, a data URI or an external file.
	Data []byte `json:"-"`
}

// --- GLB container ---

type gltfGLBHeader struct {
	Magic   uint32
	Version uint32
	Length  uint32
}

type gltfGLBChunkHeader struct {
	ChunkLength uint32
	ChunkType   uint32
}

const (
	gltfGLBMagic     = 0x46546C67 // "glTF"
	gltfGLBVersion   = 2
	gltfGLBChunkJSON = 0x4E4F534A // "JSON"
	gltfGLBChunkBIN  = 0x004E4942 // "BIN\0"
)
