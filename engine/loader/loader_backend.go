package loader

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
)

// loaderBackend defines the format-specific half of a Loader.
// Concrete implementations (e.g., gltfLoaderBackend) handle the container details.
type loaderBackend interface {
	// Load imports the asset graph at the given file path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *model.Asset: the imported asset
	//   - error: error if loading fails
	Load(path string) (*model.Asset, error)

	// LoadBytes imports an asset graph from in-memory file contents.
	//
	// Parameters:
	//   - name: the asset name used when the file does not carry one
	//   - data: the file contents
	//
	// Returns:
	//   - *model.Asset: the imported asset
	//   - error: error if loading fails
	LoadBytes(name string, data []byte) (*model.Asset, error)
}
