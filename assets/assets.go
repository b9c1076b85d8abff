// Package assets embeds the WGSL sources the renderer compiles at startup.
package assets

import (
	"embed"
	"fmt"
)

//go:embed shaders/*.wgsl
var shaders embed.FS

// Shader names.
const (
	ShaderLit    = "lit.wgsl"
	ShaderShadow = "shadow.wgsl"
	ShaderLine   = "line.wgsl"
)

// Shader returns the source of an embedded WGSL file.
//
// Parameters:
//   - name: the file name under shaders/
//
// Returns:
//   - string: the WGSL source
//   - error: an error if no such shader is embedded
func Shader(name string) (string, error) {
	src, err := shaders.ReadFile("shaders/" + name)
	if err != nil {
		return "", fmt.Errorf("assets: shader %q: %w", name, err)
	}
	return string(src), nil
}
