package loader

import (
	"github.com/rs/zerolog"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithLoaderLogger is an option builder that sets the logger used for import diagnostics.
//
// Parameters:
//   - logger: the logger to write to
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger option to a loader
func WithLoaderLogger(logger zerolog.Logger) LoaderBuilderOption {
	return func(l *loader) {
		l.logger = logger
	}
}
