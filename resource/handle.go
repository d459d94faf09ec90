package resource

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Handle is a realized native GPU object owned by a descriptor slot.
// Destroy releases every native object the handle holds. It is called
// exactly once, by the processor, when the matching unload is executed.
type Handle interface {
	Destroy()
}

// ShaderHandle is the realized form of a RenderShader: a linked
// vertex/fragment program.
type ShaderHandle interface {
	Handle
	VertexModule() hal.ShaderModule
	FragmentModule() hal.ShaderModule
	VertexEntryPoint() string
	FragmentEntryPoint() string
}

// TextureHandle is the realized form of a RenderTexture.
type TextureHandle interface {
	Handle
	Width() uint32
	Height() uint32
	MipLevelCount() uint32
	Format() gputypes.TextureFormat
	View() hal.TextureView
	Sampler() hal.Sampler
}

// MeshHandle is the realized form of a RenderMesh.
type MeshHandle interface {
	Handle
	VertexBuffer() hal.Buffer
	IndexBuffer() hal.Buffer
	VertexCount() uint32
	IndexCount() uint32
	Topology() gputypes.PrimitiveTopology
	IndexFormat() gputypes.IndexFormat
	VertexLayout() gputypes.VertexBufferLayout
}

// Slot is an optional, single-owner holder for a realized handle.
// The zero value is an empty slot.
//
// Slot is not safe for concurrent use; it is mutated only on the goroutine
// that processes render commands.
type Slot[H Handle] struct {
	h   H
	set bool
}

// Get returns the stored handle and whether the slot is set.
func (s *Slot[H]) Get() (H, bool) {
	return s.h, s.set
}

// Set stores h, replacing any previous handle without destroying it.
func (s *Slot[H]) Set(h H) {
	s.h = h
	s.set = true
}

// Take returns the stored handle and leaves the slot empty.
func (s *Slot[H]) Take() (H, bool) {
	h, ok := s.h, s.set
	s.Clear()
	return h, ok
}

// Clear empties the slot without destroying the handle.
func (s *Slot[H]) Clear() {
	var zero H
	s.h = zero
	s.set = false
}

// IsSet reports whether the slot holds a handle.
func (s *Slot[H]) IsSet() bool {
	return s.set
}
