package gpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/renderq/resource"
)

// textureFormat maps a CPU image format to the GPU format it is stored as
// and the number of bytes per pixel of the uploaded data. RGB888, RGBA4444
// and RGB565 are expanded to RGBA8 before upload.
func textureFormat(f resource.ImageFormat) (gputypes.TextureFormat, int, bool) {
	switch f {
	case resource.ImageFormatRGBA8888, resource.ImageFormatRGB888,
		resource.ImageFormatRGBA4444, resource.ImageFormatRGB565:
		return gputypes.TextureFormatRGBA8Unorm, 4, true
	case resource.ImageFormatLumA88:
		return gputypes.TextureFormatRG8Unorm, 2, true
	case resource.ImageFormatLum8:
		return gputypes.TextureFormatR8Unorm, 1, true
	case resource.ImageFormatDepth16:
		return gputypes.TextureFormatDepth16Unorm, 2, true
	case resource.ImageFormatDepth32:
		return gputypes.TextureFormatDepth32Float, 4, true
	default:
		return gputypes.TextureFormatUndefined, 0, false
	}
}

func filterMode(m resource.FilterMode) gputypes.FilterMode {
	if m == resource.FilterNearest {
		return gputypes.FilterModeNearest
	}
	return gputypes.FilterModeLinear
}

func addressMode(m resource.WrapMode) gputypes.AddressMode {
	if m == resource.WrapRepeat {
		return gputypes.AddressModeRepeat
	}
	return gputypes.AddressModeClampToEdge
}

func primitiveTopology(p resource.PolygonType) gputypes.PrimitiveTopology {
	switch p {
	case resource.PolygonTriangleStrip:
		return gputypes.PrimitiveTopologyTriangleStrip
	case resource.PolygonLine:
		return gputypes.PrimitiveTopologyLineList
	default:
		return gputypes.PrimitiveTopologyTriangleList
	}
}

func indexFormat(f resource.IndexFormat) gputypes.IndexFormat {
	if f == resource.IndexFormatInt {
		return gputypes.IndexFormatUint32
	}
	return gputypes.IndexFormatUint16
}

func vertexFormat(e resource.ElementType) gputypes.VertexFormat {
	switch e {
	case resource.ElementNormal3:
		return gputypes.VertexFormatFloat32x3
	case resource.ElementUV2:
		return gputypes.VertexFormatFloat32x2
	case resource.ElementColour4:
		return gputypes.VertexFormatUnorm8x4
	case resource.ElementJointIndex4:
		return gputypes.VertexFormatUint8x4
	default:
		// Position4 and Weight4.
		return gputypes.VertexFormatFloat32x4
	}
}

// vertexLayout builds the buffer layout of an interleaved vertex format.
// Shader locations follow element order.
func vertexLayout(f resource.VertexFormat) gputypes.VertexBufferLayout {
	attrs := make([]gputypes.VertexAttribute, len(f))
	for i, e := range f {
		attrs[i] = gputypes.VertexAttribute{
			Format:         vertexFormat(e),
			Offset:         uint64(f.Offset(i)),
			ShaderLocation: uint32(i),
		}
	}
	return gputypes.VertexBufferLayout{
		ArrayStride: uint64(f.Size()),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  attrs,
	}
}
