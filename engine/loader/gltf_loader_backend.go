package loader

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
)

// gltfLoaderBackendImpl is the implementation of gltfLoaderBackend.
type gltfLoaderBackendImpl struct {
	importer gltfImporter
}

// gltfLoaderBackend is a loaderBackend implementation for glTF/GLB files.
// It delegates to the gltfImporter for parsing and graph construction.
type gltfLoaderBackend interface {
	loaderBackend
}

var _ gltfLoaderBackend = &gltfLoaderBackendImpl{}

func newGLTFLoaderBackend() gltfLoaderBackend {
	return &gltfLoaderBackendImpl{
		importer: newGLTFImporter(),
	}
}

func (b *gltfLoaderBackendImpl) Load(path string) (*model.Asset, error) {
	return b.importer.Import(path)
}

func (b *gltfLoaderBackendImpl) LoadBytes(name string, data []byte) (*model.Asset, error) {
	return b.importer.ImportBytes(name, data)
}
