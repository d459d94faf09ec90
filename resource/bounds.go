package resource

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ComputeBoundingSphere returns a sphere enclosing every vertex position in
// data, which holds interleaved little-endian vertices of the given format.
// The centre is the centre of the axis-aligned bounds. A format without a
// position element, or empty data, yields the zero sphere.
func ComputeBoundingSphere(format VertexFormat, data []byte) Sphere {
	idx := format.Index(ElementPosition4)
	stride := format.Size()
	if idx < 0 || stride == 0 || len(data) < stride {
		return Sphere{}
	}
	off := format.Offset(idx)
	n := len(data) / stride

	pos := func(i int) mgl32.Vec3 {
		base := i*stride + off
		return mgl32.Vec3{
			readFloat32(data[base:]),
			readFloat32(data[base+4:]),
			readFloat32(data[base+8:]),
		}
	}

	lo := pos(0)
	hi := lo
	for i := 1; i < n; i++ {
		p := pos(i)
		for c := 0; c < 3; c++ {
			lo[c] = min(lo[c], p[c])
			hi[c] = max(hi[c], p[c])
		}
	}
	centre := lo.Add(hi).Mul(0.5)

	var radius float32
	for i := 0; i < n; i++ {
		radius = max(radius, pos(i).Sub(centre).Len())
	}
	return Sphere{Centre: centre, Radius: radius}
}

func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
