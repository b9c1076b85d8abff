package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShader_EmbeddedSources(t *testing.T) {
	for _, name := range []string{ShaderLit, ShaderShadow, ShaderLine} {
		src, err := Shader(name)
		require.NoError(t, err, name)
		assert.Contains(t, src, "@vertex", name)
	}
}

func TestShader_Missing(t *testing.T) {
	_, err := Shader("nope.wgsl")
	assert.Error(t, err)
}
