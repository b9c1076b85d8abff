package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
)

// gltfImporterImpl is the implementation of the gltfImporter interface.
type gltfImporterImpl struct{}

// gltfImporter turns a parsed glTF document into a model.Asset node graph.
type gltfImporter interface {
	// Import loads a glTF/GLB file and builds its default scene graph.
	//
	// Parameters:
	//   - path: the file path to the glTF or GLB file
	//
	// Returns:
	//   - *model.Asset: the imported node graph
	//   - error: error if parsing or geometry extraction fails
	Import(path string) (*model.Asset, error)

	// ImportBytes builds a scene graph from an in-memory glTF or GLB document.
	//
	// Parameters:
	//   - name: fallback asset name when the default scene is unnamed
	//   - data: the file contents
	//
	// Returns:
	//   - *model.Asset: the imported node graph
	//   - error: error if parsing or geometry extraction fails
	ImportBytes(name string, data []byte) (*model.Asset, error)
}

var _ gltfImporter = &gltfImporterImpl{}

func newGLTFImporter() gltfImporter {
	return &gltfImporterImpl{}
}

func (imp *gltfImporterImpl) Import(path string) (*model.Asset, error) {
	parser := newGLTFParser()
	if err := parser.Parse(path); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return imp.importFromParser(parser, path)
}

func (imp *gltfImporterImpl) ImportBytes(name string, data []byte) (*model.Asset, error) {
	parser := newGLTFParser()
	if err := parser.ParseBytes(data, "."); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return imp.importFromParser(parser, name)
}

func (imp *gltfImporterImpl) importFromParser(parser gltfParser, path string) (*model.Asset, error) {
	doc := parser.Document()
	meshes := newGLTFMeshExtractor(parser)

	asset := &model.Asset{Name: gltfExtractModelName(doc, path)}
	visiting := make(map[int]bool)
	for _, idx := range gltfRootNodes(doc) {
		n, err := imp.buildNode(doc, meshes, idx, visiting)
		if err != nil {
			return nil, err
		}
		asset.Roots = append(asset.Roots, n)
	}
	return asset, nil
}

// buildNode converts a glTF node and its subtree. A node whose mesh has a single
// triangle primitive becomes a Mesh node; one with several becomes an Object3D
// group holding one Mesh child per primitive, ahead of the node's own children.
func (imp *gltfImporterImpl) buildNode(doc *gltfDocument, meshes gltfMeshExtractor, idx int, visiting map[int]bool) (*model.Node, error) {
	if idx < 0 || idx >= len(doc.Nodes) {
		return nil, fmt.Errorf("node index %d out of range", idx)
	}
	if visiting[idx] {
		return nil, fmt.Errorf("node %d is its own ancestor", idx)
	}
	visiting[idx] = true
	defer delete(visiting, idx)

	src := &doc.Nodes[idx]
	n := &model.Node{Name: src.Name, Type: model.NodeTypeObject}

	if src.Mesh != nil {
		geoms, err := meshes.ExtractMesh(*src.Mesh)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", src.Name, err)
		}
		switch len(geoms) {
		case 0:
		case 1:
			n.Type = model.NodeTypeMesh
			n.Geometry = geoms[0]
		default:
			meshName := doc.Meshes[*src.Mesh].Name
			for _, g := range geoms {
				n.Children = append(n.Children, &model.Node{Name: meshName, Type: model.NodeTypeMesh, Geometry: g})
			}
		}
	}

	for _, childIdx := range src.Children {
		child, err := imp.buildNode(doc, meshes, childIdx, visiting)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}

// gltfRootNodes returns the root node indices of the default scene. Documents
// without scenes fall back to every node that is nobody's child.
func gltfRootNodes(doc *gltfDocument) []int {
	if len(doc.Scenes) > 0 {
		scene := 0
		if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
			scene = *doc.Scene
		}
		return doc.Scenes[scene].Nodes
	}

	isChild := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(isChild) {
				isChild[c] = true
			}
		}
	}
	var roots []int
	for i, child := range isChild {
		if !child {
			roots = append(roots, i)
		}
	}
	return roots
}

// gltfExtractModelName prefers the default scene's name, then the file name without its extension.
func gltfExtractModelName(doc *gltfDocument, fallbackPath string) string {
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		if name := doc.Scenes[*doc.Scene].Name; name != "" {
			return name
		}
	}
	if fallbackPath != "" {
		base := filepath.Base(fallbackPath)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return "unnamed_model"
}
