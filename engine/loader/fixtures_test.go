package loader

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/require"
)

var (
	triangle = [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	quad     = [][3]float32{{0, 0, 0}, {2, 0, 0}, {2, 0, -2}, {0, 0, -2}}
	quadIdx  = []uint32{0, 1, 2, 0, 2, 3}
)

// fixture builds small glTF documents with the same modeler helpers used to export GLB assets.
type fixture struct {
	doc *gltf.Document
}

func newFixture() *fixture {
	doc := gltf.NewDocument()
	doc.Scenes[0].Name = "fixture"
	return &fixture{doc: doc}
}

func (f *fixture) primitive(positions [][3]float32, indices []uint32) *gltf.Primitive {
	prim := &gltf.Primitive{
		Attributes: map[string]uint32{
			gltf.POSITION: uint32(modeler.WritePosition(f.doc, positions)),
		},
	}
	if indices != nil {
		prim.Indices = gltf.Index(uint32(modeler.WriteIndices(f.doc, indices)))
	}
	return prim
}

// mesh adds a mesh with one triangle primitive per geometry and returns its index.
func (f *fixture) mesh(name string, prims ...*gltf.Primitive) uint32 {
	f.doc.Meshes = append(f.doc.Meshes, &gltf.Mesh{Name: name, Primitives: prims})
	return uint32(len(f.doc.Meshes) - 1)
}

// node adds a node and returns its index. mesh < 0 means no mesh.
func (f *fixture) node(name string, mesh int, children ...uint32) uint32 {
	n := &gltf.Node{Name: name, Children: children}
	if mesh >= 0 {
		n.Mesh = gltf.Index(uint32(mesh))
	}
	f.doc.Nodes = append(f.doc.Nodes, n)
	return uint32(len(f.doc.Nodes) - 1)
}

func (f *fixture) root(nodes ...uint32) *fixture {
	f.doc.Scenes[0].Nodes = append(f.doc.Scenes[0].Nodes, nodes...)
	return f
}

func (f *fixture) save(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.glb")
	require.NoError(t, gltf.SaveBinary(f.doc, path))
	return path
}

// twoMeshFixture is a root group holding a quad mesh followed by a triangle mesh.
func twoMeshFixture() *fixture {
	f := newFixture()
	q := f.mesh("Quad", f.primitive(quad, quadIdx))
	tri := f.mesh("Tri", f.primitive(triangle, nil))
	a := f.node("first", int(q))
	b := f.node("second", int(tri))
	return f.root(f.node("group", -1, a, b))
}

// --- fakes ---

type recordingTarget struct {
	mu      sync.Mutex
	added   []game_object.GameObject
	removed []game_object.GameObject
}

func (r *recordingTarget) Add(obj game_object.GameObject) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.added = append(r.added, obj)
}

func (r *recordingTarget) Remove(obj game_object.GameObject) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, obj)
}

func (r *recordingTarget) counts() (added, removed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.added), len(r.removed)
}

// gatedLoader blocks every Load until the gate channel yields.
type gatedLoader struct {
	gate  chan struct{}
	asset *model.Asset
}

func (g *gatedLoader) Load(string) (*model.Asset, error) {
	<-g.gate
	return g.asset, nil
}

func (g *gatedLoader) LoadBytes(string, []byte) (*model.Asset, error) {
	return g.asset, nil
}

func (g *gatedLoader) Get(string) *model.Asset {
	return g.asset
}

// panickingLoader fails every Load with a panic instead of an error.
type panickingLoader struct{}

func (panickingLoader) Load(string) (*model.Asset, error) {
	panic("corrupt index table")
}

func (panickingLoader) LoadBytes(string, []byte) (*model.Asset, error) {
	panic("corrupt index table")
}

func (panickingLoader) Get(string) *model.Asset {
	return nil
}
