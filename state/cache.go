// Package state tracks which GPU resources are currently bound on a device
// so that the draw path can skip redundant binds.
//
// The render command processor never binds anything; it only clears cache
// entries before the resource they might reference is replaced or
// destroyed. A cleared entry forces the next draw to rebind.
package state

import (
	"errors"
	"fmt"

	"github.com/gogpu/renderq/resource"
)

// Kind identifies a cached binding category.
type Kind uint8

const (
	KindShader Kind = iota
	KindTexture
	KindMesh
)

var kindNames = [...]string{"Shader", "Texture", "Mesh"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Cache errors.
var (
	// ErrKindMismatch is returned by Set when the handle does not match the kind.
	ErrKindMismatch = errors.New("state: handle does not match kind")

	// ErrTextureUnit is returned when a texture unit is out of range.
	ErrTextureUnit = errors.New("state: texture unit out of range")
)

// Cache is the record of currently bound resources: at most one shader,
// one texture per texture unit and one mesh. Entries are nil when nothing
// is known to be bound.
//
// Cache is not safe for concurrent use.
type Cache struct {
	shader   resource.ShaderHandle
	textures []resource.TextureHandle
	mesh     resource.MeshHandle
}

// NewCache creates an empty cache with the given number of texture units
// (at least 1).
func NewCache(textureUnits int) *Cache {
	return &Cache{textures: make([]resource.TextureHandle, max(1, textureUnits))}
}

// TextureUnits returns the number of texture units tracked.
func (c *Cache) TextureUnits() int { return len(c.textures) }

// Shader returns the bound shader, or nil.
func (c *Cache) Shader() resource.ShaderHandle { return c.shader }

// Texture returns the texture bound on unit, or nil.
func (c *Cache) Texture(unit int) resource.TextureHandle {
	if unit < 0 || unit >= len(c.textures) {
		return nil
	}
	return c.textures[unit]
}

// Mesh returns the bound mesh, or nil.
func (c *Cache) Mesh() resource.MeshHandle { return c.mesh }

// SetShader records h as the bound shader.
func (c *Cache) SetShader(h resource.ShaderHandle) { c.shader = h }

// SetMesh records h as the bound mesh.
func (c *Cache) SetMesh(h resource.MeshHandle) { c.mesh = h }

// SetTexture records h as bound on unit.
func (c *Cache) SetTexture(unit int, h resource.TextureHandle) error {
	if unit < 0 || unit >= len(c.textures) {
		return fmt.Errorf("%w: %d (units: %d)", ErrTextureUnit, unit, len(c.textures))
	}
	c.textures[unit] = h
	return nil
}

// Set records h as the bound resource of kind. Textures are bound on unit 0.
func (c *Cache) Set(kind Kind, h resource.Handle) error {
	switch kind {
	case KindShader:
		s, ok := h.(resource.ShaderHandle)
		if !ok {
			return fmt.Errorf("%w: %s", ErrKindMismatch, kind)
		}
		c.shader = s
	case KindTexture:
		t, ok := h.(resource.TextureHandle)
		if !ok {
			return fmt.Errorf("%w: %s", ErrKindMismatch, kind)
		}
		c.textures[0] = t
	case KindMesh:
		m, ok := h.(resource.MeshHandle)
		if !ok {
			return fmt.Errorf("%w: %s", ErrKindMismatch, kind)
		}
		c.mesh = m
	default:
		return fmt.Errorf("%w: %s", ErrKindMismatch, kind)
	}
	return nil
}

// Clear forgets the bound resource of kind. Clearing textures forgets every
// texture unit. Clearing an empty entry is a no-op.
func (c *Cache) Clear(kind Kind) {
	switch kind {
	case KindShader:
		c.shader = nil
	case KindTexture:
		clear(c.textures)
	case KindMesh:
		c.mesh = nil
	}
}

// ClearAll forgets every binding.
func (c *Cache) ClearAll() {
	c.Clear(KindShader)
	c.Clear(KindTexture)
	c.Clear(KindMesh)
}

// IsEmpty reports whether nothing is recorded as bound.
func (c *Cache) IsEmpty() bool {
	if c.shader != nil || c.mesh != nil {
		return false
	}
	for _, t := range c.textures {
		if t != nil {
			return false
		}
	}
	return true
}
