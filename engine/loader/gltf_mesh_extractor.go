package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
)

// gltfMeshExtractorImpl is the implementation of the gltfMeshExtractor interface.
type gltfMeshExtractorImpl struct {
	parser gltfParser
	cache  map[int][]*model.Geometry
}

// gltfMeshExtractor reads triangle geometry out of glTF mesh primitives.
// This is internal to the loader package.
type gltfMeshExtractor interface {
	// ExtractMesh reads every triangle primitive of a mesh as its own Geometry.
	// Results are cached per mesh index so instanced meshes share geometry.
	//
	// Parameters:
	//   - meshIndex: the index of the mesh in the document
	//
	// Returns:
	//   - []*model.Geometry: one geometry per triangle primitive, in primitive order
	//   - error: error if an accessor cannot be read
	ExtractMesh(meshIndex int) ([]*model.Geometry, error)
}

var _ gltfMeshExtractor = &gltfMeshExtractorImpl{}

func newGLTFMeshExtractor(parser gltfParser) gltfMeshExtractor {
	return &gltfMeshExtractorImpl{
		parser: parser,
		cache:  make(map[int][]*model.Geometry),
	}
}

func (e *gltfMeshExtractorImpl) ExtractMesh(meshIndex int) ([]*model.Geometry, error) {
	if cached, ok := e.cache[meshIndex]; ok {
		return cached, nil
	}

	doc := e.parser.Document()
	if meshIndex < 0 || meshIndex >= len(doc.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range", meshIndex)
	}

	mesh := &doc.Meshes[meshIndex]
	var out []*model.Geometry
	for primIdx := range mesh.Primitives {
		prim := &mesh.Primitives[primIdx]
		// Points and lines are not drawable by the lit pipeline.
		if prim.Mode != nil && *prim.Mode != gltfPrimitiveModeTriangles {
			continue
		}

		g, err := e.extractPrimitive(prim)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, primIdx, err)
		}
		out = append(out, g)
	}

	e.cache[meshIndex] = out
	return out, nil
}

func (e *gltfMeshExtractorImpl) extractPrimitive(prim *gltfPrimitive) (*model.Geometry, error) {
	posIdx, ok := prim.Attributes[gltfAttributePosition]
	if !ok {
		return nil, fmt.Errorf("primitive has no %s attribute", gltfAttributePosition)
	}

	positions, err := e.parser.ReadVec3Accessor(posIdx)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	g := &model.Geometry{Positions: positions}

	if nIdx, ok := prim.Attributes[gltfAttributeNormal]; ok {
		normals, err := e.parser.ReadVec3Accessor(nIdx)
		if err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
		if len(normals) == len(positions) {
			g.Normals = normals
		}
	}

	if prim.Indices != nil {
		indices, err := e.parser.ReadIndicesAccessor(*prim.Indices)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
		for _, idx := range indices {
			if int(idx) >= len(positions) {
				return nil, fmt.Errorf("index %d exceeds vertex count %d", idx, len(positions))
			}
		}
		g.Indices = indices
	}

	return g, nil
}
