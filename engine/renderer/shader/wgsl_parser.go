package shader

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	// vertexEntryRegex matches @vertex functions and captures the entry point name
	vertexEntryRegex = regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`)

	// fragmentEntryRegex matches @fragment functions and captures the entry point name
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`)

	// bindingDeclRegex captures group, binding, optional address space, variable name, and type
	// from declarations like: @group(0) @binding(0) var<uniform> camera: Camera;
	bindingDeclRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)

	lineCommentRegex  = regexp.MustCompile(`//[^\n]*`)
	blockCommentRegex = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

// Binding is a resource declaration found in WGSL source.
type Binding struct {
	Group        int
	Binding      int
	AddressSpace string
	Name         string
	Type         string
}

// stripComments removes line and block comments so commented-out declarations are not parsed.
func stripComments(source string) string {
	return lineCommentRegex.ReplaceAllString(blockCommentRegex.ReplaceAllString(source, ""), "")
}

// parseEntryPoint extracts the entry point function name for the given shader type
// from WGSL source. Returns an empty string if no matching entry point attribute is found.
//
// Parameters:
//   - source: the raw WGSL source code string
//   - shaderType: the shader type to search for
//
// Returns:
//   - string: the entry point function name, or empty string if not found
func parseEntryPoint(source string, shaderType ShaderType) string {
	var re *regexp.Regexp
	switch shaderType {
	case ShaderTypeVertex:
		re = vertexEntryRegex
	case ShaderTypeFragment:
		re = fragmentEntryRegex
	default:
		return ""
	}

	if match := re.FindStringSubmatch(stripComments(source)); match != nil {
		return match[1]
	}
	return ""
}

// parseBindings lists every @group/@binding declaration in source, ordered by group then binding.
//
// Parameters:
//   - source: the raw WGSL source code string
//
// Returns:
//   - []Binding: the declarations found
func parseBindings(source string) []Binding {
	matches := bindingDeclRegex.FindAllStringSubmatch(stripComments(source), -1)
	out := make([]Binding, 0, len(matches))
	for _, m := range matches {
		group, _ := strconv.Atoi(m[1])
		binding, _ := strconv.Atoi(m[2])
		out = append(out, Binding{
			Group:        group,
			Binding:      binding,
			AddressSpace: strings.TrimSpace(m[3]),
			Name:         m[4],
			Type:         strings.TrimSpace(m[5]),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return out[i].Binding < out[j].Binding
	})
	return out
}
