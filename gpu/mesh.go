package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/renderq/resource"
	"github.com/gogpu/wgpu/hal"
)

// Mesh is a vertex buffer plus an optional index buffer.
// It implements resource.MeshHandle.
type Mesh struct {
	device hal.Device

	vertexBuf hal.Buffer
	indexBuf  hal.Buffer

	vertexCount uint32
	indexCount  uint32
	topology    gputypes.PrimitiveTopology
	indexFormat gputypes.IndexFormat
	layout      gputypes.VertexBufferLayout
}

// NewMesh uploads interleaved vertex data laid out as desc.VertexFormat and
// optional index data of desc.IndexFormat. Vertex data must be a whole
// number of vertices and index data a whole number of indices.
func NewMesh(ctx *Context, label string, desc resource.MeshDesc, vertexData, indexData []byte) (*Mesh, error) {
	if ctx == nil || ctx.device == nil {
		return nil, ErrNoDevice
	}
	switch {
	case !desc.VertexFormat.IsValid():
		return nil, fmt.Errorf("%w: mesh %q vertex format %v", ErrUnsupportedFormat, label, desc.VertexFormat)
	case !desc.Polygon.IsValid():
		return nil, fmt.Errorf("%w: mesh %q polygon type %d", ErrUnsupportedFormat, label, desc.Polygon)
	case !desc.IndexFormat.IsValid():
		return nil, fmt.Errorf("%w: mesh %q index format %d", ErrUnsupportedFormat, label, desc.IndexFormat)
	}
	stride := desc.VertexFormat.Size()
	if stride == 0 || len(vertexData) == 0 {
		return nil, fmt.Errorf("%w: mesh %q", ErrEmptyMesh, label)
	}
	if len(vertexData)%stride != 0 {
		return nil, fmt.Errorf("%w: mesh %q vertex data %d bytes is not a multiple of stride %d",
			ErrDataSize, label, len(vertexData), stride)
	}
	isize := desc.IndexFormat.Size()
	if len(indexData)%isize != 0 {
		return nil, fmt.Errorf("%w: mesh %q index data %d bytes is not a multiple of %d",
			ErrDataSize, label, len(indexData), isize)
	}

	m := &Mesh{
		device:      ctx.device,
		vertexCount: uint32(len(vertexData) / stride),
		indexCount:  uint32(len(indexData) / isize),
		topology:    primitiveTopology(desc.Polygon),
		indexFormat: indexFormat(desc.IndexFormat),
		layout:      vertexLayout(desc.VertexFormat),
	}

	var err error
	m.vertexBuf, err = createBufferWithData(ctx, label+"_vertices", gputypes.BufferUsageVertex, vertexData)
	if err != nil {
		return nil, fmt.Errorf("mesh %q: %w", label, err)
	}
	if len(indexData) > 0 {
		m.indexBuf, err = createBufferWithData(ctx, label+"_indices", gputypes.BufferUsageIndex, indexData)
		if err != nil {
			m.Destroy()
			return nil, fmt.Errorf("mesh %q: %w", label, err)
		}
	}

	slogger().Debug("gpu: mesh created",
		"label", label, "vertices", m.vertexCount, "indices", m.indexCount,
		"stride", stride, "polygon", desc.Polygon.String())
	return m, nil
}

// createBufferWithData creates a CopyDst buffer of the given usage and
// uploads data, padded to the 4-byte copy alignment.
func createBufferWithData(ctx *Context, label string, usage gputypes.BufferUsage, data []byte) (hal.Buffer, error) {
	padded := data
	if rem := len(data) % 4; rem != 0 {
		padded = make([]byte, len(data)+4-rem)
		copy(padded, data)
	}
	buf, err := ctx.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(padded)),
		Usage: usage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create buffer %s: %w", label, err)
	}
	ctx.queue.WriteBuffer(buf, 0, padded)
	return buf, nil
}

func (m *Mesh) VertexBuffer() hal.Buffer                  { return m.vertexBuf }
func (m *Mesh) IndexBuffer() hal.Buffer                   { return m.indexBuf }
func (m *Mesh) VertexCount() uint32                       { return m.vertexCount }
func (m *Mesh) IndexCount() uint32                        { return m.indexCount }
func (m *Mesh) Topology() gputypes.PrimitiveTopology      { return m.topology }
func (m *Mesh) IndexFormat() gputypes.IndexFormat         { return m.indexFormat }
func (m *Mesh) VertexLayout() gputypes.VertexBufferLayout { return m.layout }

// Destroy releases both buffers.
func (m *Mesh) Destroy() {
	if m.device == nil {
		return
	}
	if m.indexBuf != nil {
		m.device.DestroyBuffer(m.indexBuf)
		m.indexBuf = nil
	}
	if m.vertexBuf != nil {
		m.device.DestroyBuffer(m.vertexBuf)
		m.vertexBuf = nil
	}
	m.device = nil
}
