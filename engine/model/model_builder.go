package model

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithGeometry is an option builder that sets the source geometry of the Model.
// Vertex and index buffers and the bounding radius are derived from it.
//
// Parameters:
//   - g: the geometry to pack
//
// Returns:
//   - ModelBuilderOption: a function that applies the geometry option to a model
func WithGeometry(g *Geometry) ModelBuilderOption {
	return func(m *model) {
		m.geometry = g
	}
}
