package loader

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Common errors returned by the parser
var (
	errInvalidGLTFVersion  = errors.New("invalid glTF version: must be 2.0")
	errInvalidGLBMagic     = errors.New("invalid GLB magic number")
	errInvalidGLBVersion   = errors.New("invalid GLB version: must be 2")
	errGLBTooSmall         = errors.New("GLB file too small")
	errMissingJSONChunk    = errors.New("GLB file missing JSON chunk")
	errInvalidBufferURI    = errors.New("invalid buffer URI")
	errBufferSizeMismatch  = errors.New("buffer size mismatch")
	errAccessorOutOfBounds = errors.New("accessor reads past the end of its buffer")
	errNoDocument          = errors.New("no document loaded")
)

// gltfParserImpl is the implementation of the gltfParser interface.
type gltfParserImpl struct {
	baseDir        string
	document       *gltfDocument
	glbBinaryChunk []byte
}

// gltfParser loads glTF/GLB containers and reads typed accessor data out of them.
// This is internal to the loader package.
type gltfParser interface {
	// Parse loads and parses a glTF or GLB file from the given path.
	// The GLB container is detected by extension or by its magic number.
	//
	// Parameters:
	//   - path: path to the glTF or GLB file
	//
	// Returns:
	//   - error: error if reading or parsing fails
	Parse(path string) error

	// ParseBytes parses an in-memory glTF or GLB document.
	//
	// Parameters:
	//   - data: the file contents
	//   - baseDir: directory used to resolve relative buffer URIs
	//
	// Returns:
	//   - error: error if parsing fails
	ParseBytes(data []byte, baseDir string) error

	// Document returns the parsed glTF document, or nil before a successful parse.
	//
	// Returns:
	//   - *gltfDocument: the parsed document or nil
	Document() *gltfDocument

	// ReadVec3Accessor reads a VEC3 FLOAT accessor.
	//
	// Parameters:
	//   - accessorIndex: the index of the accessor
	//
	// Returns:
	//   - [][3]float32: the vec3 data
	//   - error: error if the accessor is missing, mistyped or out of bounds
	ReadVec3Accessor(accessorIndex int) ([][3]float32, error)

	// ReadIndicesAccessor reads a SCALAR index accessor of UNSIGNED_BYTE, UNSIGNED_SHORT or UNSIGNED_INT.
	//
	// Parameters:
	//   - accessorIndex: the index of the accessor
	//
	// Returns:
	//   - []uint32: the indices widened to uint32
	//   - error: error if the accessor is missing, mistyped or out of bounds
	ReadIndicesAccessor(accessorIndex int) ([]uint32, error)
}

var _ gltfParser = &gltfParserImpl{}

// newGLTFParser creates a new glTF parser instance.
func newGLTFParser() gltfParser {
	return &gltfParserImpl{}
}

func (p *gltfParserImpl) Document() *gltfDocument {
	return p.document
}

func (p *gltfParserImpl) Parse(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".glb") && !isGLB(data) {
		return errInvalidGLBMagic
	}
	return p.ParseBytes(data, filepath.Dir(path))
}

func (p *gltfParserImpl) ParseBytes(data []byte, baseDir string) error {
	p.baseDir = baseDir
	p.glbBinaryChunk = nil

	jsonData := data
	if isGLB(data) {
		var err error
		if jsonData, p.glbBinaryChunk, err = splitGLB(data); err != nil {
			return err
		}
	}

	var doc gltfDocument
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return fmt.Errorf("failed to parse glTF JSON: %w", err)
	}
	if !strings.HasPrefix(doc.Asset.Version, "2.") {
		return errInvalidGLTFVersion
	}
	if err := p.loadBuffers(&doc); err != nil {
		return fmt.Errorf("failed to load buffers: %w", err)
	}

	p.document = &doc
	return nil
}

func isGLB(data []byte) bool {
	return len(data) >= 4 && binary.LittleEndian.Uint32(data[:4]) == gltfGLBMagic
}

// splitGLB returns the JSON and BIN chunks of a GLB container.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#glb-file-format-specification
func splitGLB(data []byte) (jsonChunk, binChunk []byte, err error) {
	if len(data) < 12 {
		return nil, nil, errGLBTooSmall
	}

	r := bytes.NewReader(data)
	var header gltfGLBHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, nil, fmt.Errorf("failed to read GLB header: %w", err)
	}
	if header.Magic != gltfGLBMagic {
		return nil, nil, errInvalidGLBMagic
	}
	if header.Version != gltfGLBVersion {
		return nil, nil, errInvalidGLBVersion
	}

	for {
		var chunk gltfGLBChunkHeader
		if err := binary.Read(r, binary.LittleEndian, &chunk); err != nil {
			if err == io.EOF {
				break
			}
			return nil, nil, fmt.Errorf("failed to read chunk header: %w", err)
		}

		if int64(chunk.ChunkLength) > int64(r.Len()) {
			return nil, nil, fmt.Errorf("failed to read chunk data: %w", io.ErrUnexpectedEOF)
		}
		payload := make([]byte, chunk.ChunkLength)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, nil, fmt.Errorf("failed to read chunk data: %w", err)
		}

		switch chunk.ChunkType {
		case gltfGLBChunkJSON:
			jsonChunk = payload
		case gltfGLBChunkBIN:
			binChunk = payload
		}
	}

	if jsonChunk == nil {
		return nil, nil, errMissingJSONChunk
	}
	return jsonChunk, binChunk, nil
}

// loadBuffers fills Data for every buffer from the GLB binary chunk, a data URI or a sibling file.
func (p *gltfParserImpl) loadBuffers(doc *gltfDocument) error {
	for i := range doc.Buffers {
		buf := &doc.Buffers[i]

		switch {
		case buf.URI == "" && i == 0 && p.glbBinaryChunk != nil:
			buf.Data = p.glbBinaryChunk
		case buf.URI == "":
			return fmt.Errorf("buffer %d has no URI and no GLB binary chunk", i)
		default:
			data, err := p.loadBufferURI(buf.URI)
			if err != nil {
				return fmt.Errorf("buffer %d: %w", i, err)
			}
			buf.Data = data
		}

		if len(buf.Data) < buf.ByteLength {
			return fmt.Errorf("buffer %d: %w", i, errBufferSizeMismatch)
		}
	}
	return nil
}

func (p *gltfParserImpl) loadBufferURI(uri string) ([]byte, error) {
	if strings.HasPrefix(uri, "data:") {
		// data:[<mediatype>][;base64],<data>
		comma := strings.Index(uri, ",")
		if comma < 0 || !strings.Contains(uri[5:comma], "base64") {
			return nil, errInvalidBufferURI
		}
		data, err := base64.StdEncoding.DecodeString(uri[comma+1:])
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(filepath.Join(p.baseDir, uri))
	if err != nil {
		return nil, fmt.Errorf("failed to load buffer file %q: %w", uri, err)
	}
	return data, nil
}

// --- Accessor Data Reading ---

// readAccessorData copies an accessor's elements out of its buffer view, removing any byte stride.
func (p *gltfParserImpl) readAccessorData(accessorIndex int) (*gltfAccessor, []byte, error) {
	if p.document == nil {
		return nil, nil, errNoDocument
	}
	if accessorIndex < 0 || accessorIndex >= len(p.document.Accessors) {
		return nil, nil, fmt.Errorf("accessor index %d out of range", accessorIndex)
	}

	acc := &p.document.Accessors[accessorIndex]
	if acc.Sparse != nil {
		return nil, nil, errors.New("sparse accessors not supported")
	}
	if acc.BufferView == nil || *acc.BufferView < 0 || *acc.BufferView >= len(p.document.BufferViews) {
		return nil, nil, errors.New("accessor has no valid bufferView")
	}

	bv := &p.document.BufferViews[*acc.BufferView]
	if bv.Buffer < 0 || bv.Buffer >= len(p.document.Buffers) {
		return nil, nil, fmt.Errorf("bufferView references missing buffer %d", bv.Buffer)
	}
	buf := p.document.Buffers[bv.Buffer].Data

	elementSize := gltfComponentTypeSize(acc.ComponentType) * gltfAccessorTypeComponentCount(acc.Type)
	if elementSize == 0 {
		return nil, nil, fmt.Errorf("unsupported accessor layout: type=%s, componentType=%d", acc.Type, acc.ComponentType)
	}
	stride := elementSize
	if bv.ByteStride != nil && *bv.ByteStride != 0 {
		stride = *bv.ByteStride
	}
	if acc.Count < 0 || acc.ByteOffset < 0 || stride < elementSize {
		return nil, nil, errAccessorOutOfBounds
	}

	// Reads stay inside the buffer view, or the whole buffer when the view declares no length.
	limit := len(buf)
	if bv.ByteOffset < 0 || bv.ByteLength < 0 || bv.ByteOffset > limit || bv.ByteLength > limit-bv.ByteOffset {
		return nil, nil, errAccessorOutOfBounds
	}
	if bv.ByteLength > 0 {
		limit = bv.ByteOffset + bv.ByteLength
	}

	start := bv.ByteOffset + acc.ByteOffset
	if acc.Count > 0 {
		avail := limit - start
		if avail < elementSize || acc.Count-1 > (avail-elementSize)/stride {
			return nil, nil, errAccessorOutOfBounds
		}
	}

	out := make([]byte, acc.Count*elementSize)
	for i := range acc.Count {
		src := start + i*stride
		copy(out[i*elementSize:(i+1)*elementSize], buf[src:src+elementSize])
	}
	return acc, out, nil
}

func (p *gltfParserImpl) ReadVec3Accessor(accessorIndex int) ([][3]float32, error) {
	acc, data, err := p.readAccessorData(accessorIndex)
	if err != nil {
		return nil, err
	}
	if acc.Type != gltfAccessorTypeVec3 || acc.ComponentType != gltfComponentTypeFloat {
		return nil, fmt.Errorf("accessor is not VEC3 FLOAT: type=%s, componentType=%d", acc.Type, acc.ComponentType)
	}

	out := make([][3]float32, acc.Count)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *gltfParserImpl) ReadIndicesAccessor(accessorIndex int) ([]uint32, error) {
	acc, data, err := p.readAccessorData(accessorIndex)
	if err != nil {
		return nil, err
	}
	if acc.Type != gltfAccessorTypeScalar {
		return nil, fmt.Errorf("index accessor is not SCALAR: type=%s", acc.Type)
	}

	out := make([]uint32, acc.Count)
	switch acc.ComponentType {
	case gltfComponentTypeUnsignedByte:
		for i, v := range data {
			out[i] = uint32(v)
		}
	case gltfComponentTypeUnsignedShort:
		for i := range out {
			out[i] = uint32(binary.LittleEndian.Uint16(data[i*2:]))
		}
	case gltfComponentTypeUnsignedInt:
		for i := range out {
			out[i] = binary.LittleEndian.Uint32(data[i*4:])
		}
	default:
		return nil, fmt.Errorf("unsupported index component type: %d", acc.ComponentType)
	}
	return out, nil
}

// --- Helper Functions ---

func gltfComponentTypeSize(componentType int) int {
	switch componentType {
	case gltfComponentTypeByte, gltfComponentTypeUnsignedByte:
		return 1
	case gltfComponentTypeShort, gltfComponentTypeUnsignedShort:
		return 2
	case gltfComponentTypeUnsignedInt, gltfComponentTypeFloat:
		return 4
	default:
		return 0
	}
}

func gltfAccessorTypeComponentCount(accessorType string) int {
	switch accessorType {
	case gltfAccessorTypeScalar:
		return 1
	case gltfAccessorTypeVec2:
		return 2
	case gltfAccessorTypeVec3:
		return 3
	case gltfAccessorTypeVec4:
		return 4
	case gltfAccessorTypeMat4:
		return 16
	default:
		return 0
	}
}
