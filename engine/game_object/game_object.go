package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
)

type gameObject struct {
	mu *sync.Mutex

	id      uint64
	enabled atomic.Bool
	name    string
	mdl     model.Model
	mat     material.Material

	transform      common.Transform
	castShadows    bool
	receiveShadows bool
}

// GameObject defines the interface for a renderable scene entity: a Model drawn with
// a Material at a Transform, with independent shadow casting and receiving flags.
type GameObject interface {
	// ID returns the object's unique identifier. Zero until the scene assigns one.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's display name.
	//
	// Returns:
	//   - string: the object name
	Name() string

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Model returns the Model associated with this object, or nil if not set.
	//
	// Returns:
	//   - model.Model: the associated model or nil
	Model() model.Model

	// Material returns the Material the object is drawn with, or nil if not set.
	//
	// Returns:
	//   - material.Material: the material or nil
	Material() material.Material

	// Position returns the object's world position.
	//
	// Returns:
	//   - x, y, z: position components
	Position() (x, y, z float32)

	// Rotation returns the object's Euler rotation in radians.
	//
	// Returns:
	//   - rx, ry, rz: rotation angles
	Rotation() (rx, ry, rz float32)

	// Scale returns the object's scale.
	//
	// Returns:
	//   - sx, sy, sz: scale components
	Scale() (sx, sy, sz float32)

	// Transform returns a copy of the full transform.
	//
	// Returns:
	//   - common.Transform: position, rotation and scale
	Transform() common.Transform

	// ModelMatrix returns the column-major world matrix built from the transform.
	//
	// Returns:
	//   - [16]float32: the model matrix
	ModelMatrix() [16]float32

	// CastShadows reports whether the object is drawn into the shadow map.
	//
	// Returns:
	//   - bool: true if the object casts shadows
	CastShadows() bool

	// ReceiveShadows reports whether the lit pass samples the shadow map for this object.
	//
	// Returns:
	//   - bool: true if the object receives shadows
	ReceiveShadows() bool

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetEnabled sets whether the object is enabled for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetModel assigns a Model to this object.
	//
	// Parameters:
	//   - m: the model to assign
	SetModel(m model.Model)

	// SetMaterial assigns the Material the object is drawn with.
	//
	// Parameters:
	//   - m: the material to assign
	SetMaterial(m material.Material)

	// SetPosition sets the object's world position.
	SetPosition(x, y, z float32)

	// SetRotation sets the object's Euler rotation in radians.
	SetRotation(rx, ry, rz float32)

	// SetScale sets the object's scale.
	SetScale(sx, sy, sz float32)

	// SetCastShadows sets whether the object is drawn into the shadow map.
	SetCastShadows(cast bool)

	// SetReceiveShadows sets whether the object samples the shadow map.
	SetReceiveShadows(receive bool)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject with the given options applied.
// Objects start enabled with an identity transform and no shadow flags set.
//
// Parameters:
//   - options: a variadic list of GameObjectBuilderOption functions
//
// Returns:
//   - GameObject: the configured object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	g := &gameObject{
		mu:        &sync.Mutex{},
		transform: common.IdentityTransform(),
	}
	g.enabled.Store(true)

	for _, opt := range options {
		opt(g)
	}
	return g
}

func (g *gameObject) ID() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Model() model.Model {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mdl
}

func (g *gameObject) Material() material.Material {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mat
}

func (g *gameObject) Position() (x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p := g.transform.Position
	return p[0], p[1], p[2]
}

func (g *gameObject) Rotation() (rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r := g.transform.Rotation
	return r[0], r[1], r[2]
}

func (g *gameObject) Scale() (sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	s := g.transform.Scale
	return s[0], s[1], s[2]
}

func (g *gameObject) Transform() common.Transform {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.transform
}

func (g *gameObject) ModelMatrix() [16]float32 {
	return g.Transform().Matrix()
}

func (g *gameObject) CastShadows() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.castShadows
}

func (g *gameObject) ReceiveShadows() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.receiveShadows
}

func (g *gameObject) SetID(id uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetModel(m model.Model) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mdl = m
}

func (g *gameObject) SetMaterial(m material.Material) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mat = m
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.transform.Position = [3]float32{x, y, z}
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.transform.Rotation = [3]float32{rx, ry, rz}
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.transform.Scale = [3]float32{sx, sy, sz}
}

func (g *gameObject) SetCastShadows(cast bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.castShadows = cast
}

func (g *gameObject) SetReceiveShadows(receive bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.receiveShadows = receive
}
