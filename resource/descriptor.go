package resource

import "github.com/go-gl/mathgl/mgl32"

// RenderShader is the logical description of a vertex/fragment program.
type RenderShader struct {
	label string
	extra Slot[ShaderHandle]
}

// NewRenderShader creates a shader descriptor.
func NewRenderShader(label string) *RenderShader {
	return &RenderShader{label: label}
}

// Label returns the debug name.
func (s *RenderShader) Label() string { return s.label }

// ExtraData returns the slot holding the realized program.
func (s *RenderShader) ExtraData() *Slot[ShaderHandle] { return &s.extra }

// TextureDesc carries the attributes of a texture descriptor.
type TextureDesc struct {
	Width, Height uint32
	Format        ImageFormat
	Compression   ImageCompression
	Filter        FilterMode
	WrapS, WrapT  WrapMode
	Mipmapped     bool
}

// RenderTexture is the logical description of a 2D texture.
type RenderTexture struct {
	label string
	desc  TextureDesc
	extra Slot[TextureHandle]
}

// NewRenderTexture creates a texture descriptor.
func NewRenderTexture(label string, desc TextureDesc) *RenderTexture {
	return &RenderTexture{label: label, desc: desc}
}

// Label returns the debug name.
func (t *RenderTexture) Label() string { return t.label }

// Desc returns a copy of the texture attributes.
func (t *RenderTexture) Desc() TextureDesc { return t.desc }

// Dimensions returns the width and height in pixels.
func (t *RenderTexture) Dimensions() (width, height uint32) { return t.desc.Width, t.desc.Height }

func (t *RenderTexture) ImageFormat() ImageFormat           { return t.desc.Format }
func (t *RenderTexture) ImageCompression() ImageCompression { return t.desc.Compression }
func (t *RenderTexture) FilterMode() FilterMode             { return t.desc.Filter }
func (t *RenderTexture) WrapModeS() WrapMode                { return t.desc.WrapS }
func (t *RenderTexture) WrapModeT() WrapMode                { return t.desc.WrapT }
func (t *RenderTexture) IsMipmapped() bool                  { return t.desc.Mipmapped }

// ExtraData returns the slot holding the realized texture.
func (t *RenderTexture) ExtraData() *Slot[TextureHandle] { return &t.extra }

// MeshDesc carries the attributes of a mesh descriptor.
type MeshDesc struct {
	Polygon      PolygonType
	VertexFormat VertexFormat
	IndexFormat  IndexFormat
	VertexCount  uint32
	IndexCount   uint32

	// Bounds is the bounding sphere of the vertex positions. It is
	// informational only; see ComputeBoundingSphere.
	Bounds Sphere
}

// Sphere is a bounding sphere.
type Sphere struct {
	Centre mgl32.Vec3
	Radius float32
}

// RenderMesh is the logical description of a vertex/index mesh.
type RenderMesh struct {
	label string
	desc  MeshDesc
	extra Slot[MeshHandle]
}

// NewRenderMesh creates a mesh descriptor.
func NewRenderMesh(label string, desc MeshDesc) *RenderMesh {
	return &RenderMesh{label: label, desc: desc}
}

// Label returns the debug name.
func (m *RenderMesh) Label() string { return m.label }

// Desc returns a copy of the mesh attributes.
func (m *RenderMesh) Desc() MeshDesc { return m.desc }

func (m *RenderMesh) PolygonType() PolygonType   { return m.desc.Polygon }
func (m *RenderMesh) VertexFormat() VertexFormat { return m.desc.VertexFormat }
func (m *RenderMesh) IndexFormat() IndexFormat   { return m.desc.IndexFormat }
func (m *RenderMesh) VertexCount() uint32        { return m.desc.VertexCount }
func (m *RenderMesh) IndexCount() uint32         { return m.desc.IndexCount }
func (m *RenderMesh) BoundingSphere() Sphere     { return m.desc.Bounds }

// ExtraData returns the slot holding the realized mesh.
func (m *RenderMesh) ExtraData() *Slot[MeshHandle] { return &m.extra }

// RenderMaterialGroup is a batch of materials sharing render state. It has
// no native representation at this tier.
type RenderMaterialGroup struct {
	label string
}

// NewRenderMaterialGroup creates a material group descriptor.
func NewRenderMaterialGroup(label string) *RenderMaterialGroup {
	return &RenderMaterialGroup{label: label}
}

// Label returns the debug name.
func (g *RenderMaterialGroup) Label() string { return g.label }
