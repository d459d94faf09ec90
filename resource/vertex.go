package resource

import "strings"

// PolygonType is the primitive assembly mode of a mesh.
type PolygonType uint8

const (
	PolygonTriangle PolygonType = iota
	PolygonTriangleStrip
	PolygonLine
)

var polygonTypeNames = [...]string{"Triangle", "TriangleStrip", "Line"}

func (p PolygonType) String() string {
	if int(p) < len(polygonTypeNames) {
		return polygonTypeNames[p]
	}
	return "Unknown"
}

// IsValid reports whether p is a known polygon type.
func (p PolygonType) IsValid() bool { return int(p) < len(polygonTypeNames) }

// ParsePolygonType maps a case-insensitive name to a PolygonType.
func ParsePolygonType(s string) (PolygonType, bool) {
	for i, name := range polygonTypeNames {
		if strings.EqualFold(name, s) {
			return PolygonType(i), true
		}
	}
	return 0, false
}

// IndexFormat is the width of mesh indices.
type IndexFormat uint8

const (
	// IndexFormatShort is 16 bit unsigned indices.
	IndexFormatShort IndexFormat = iota
	// IndexFormatInt is 32 bit unsigned indices.
	IndexFormatInt
)

// Size returns the index size in bytes.
func (f IndexFormat) Size() int {
	if f == IndexFormatInt {
		return 4
	}
	return 2
}

func (f IndexFormat) String() string {
	switch f {
	case IndexFormatShort:
		return "Short"
	case IndexFormatInt:
		return "Int"
	default:
		return "Unknown"
	}
}

// IsValid reports whether f is a known index format.
func (f IndexFormat) IsValid() bool { return f <= IndexFormatInt }

// ParseIndexFormat maps "short" or "int" to an IndexFormat.
func ParseIndexFormat(s string) (IndexFormat, bool) {
	switch strings.ToLower(s) {
	case "short", "":
		return IndexFormatShort, true
	case "int":
		return IndexFormatInt, true
	}
	return 0, false
}

// ElementType is one attribute of an interleaved vertex.
type ElementType uint8

const (
	// ElementPosition4 is a float32 x4 position.
	ElementPosition4 ElementType = iota
	// ElementNormal3 is a float32 x3 normal.
	ElementNormal3
	// ElementUV2 is a float32 x2 texture coordinate.
	ElementUV2
	// ElementColour4 is a normalized uint8 x4 colour.
	ElementColour4
	// ElementWeight4 is a float32 x4 skinning weight.
	ElementWeight4
	// ElementJointIndex4 is a uint8 x4 joint index.
	ElementJointIndex4

	elementTypeCount
)

var elementTypeNames = [...]string{
	"Position4", "Normal3", "UV2", "Colour4", "Weight4", "JointIndex4",
}

var elementTypeSizes = [...]int{16, 12, 8, 4, 16, 4}

func (e ElementType) String() string {
	if e < elementTypeCount {
		return elementTypeNames[e]
	}
	return "Unknown"
}

// IsValid reports whether e is a known element type.
func (e ElementType) IsValid() bool { return e < elementTypeCount }

// Size returns the element size in bytes.
func (e ElementType) Size() int {
	if e < elementTypeCount {
		return elementTypeSizes[e]
	}
	return 0
}

// VertexFormat is the ordered list of elements that make up one
// interleaved vertex.
type VertexFormat []ElementType

// Predefined vertex formats.
var (
	VertexFormatStatic   = VertexFormat{ElementPosition4, ElementNormal3, ElementUV2}
	VertexFormatAnimated = VertexFormat{ElementPosition4, ElementNormal3, ElementUV2, ElementWeight4, ElementJointIndex4}
	VertexFormatSprite   = VertexFormat{ElementPosition4, ElementUV2, ElementColour4}
)

// Size returns the vertex stride in bytes.
func (f VertexFormat) Size() int {
	n := 0
	for _, e := range f {
		n += e.Size()
	}
	return n
}

// IsValid reports whether every element of f is known.
func (f VertexFormat) IsValid() bool {
	for _, e := range f {
		if !e.IsValid() {
			return false
		}
	}
	return true
}

// Offset returns the byte offset of the i-th element.
func (f VertexFormat) Offset(i int) int {
	n := 0
	for _, e := range f[:i] {
		n += e.Size()
	}
	return n
}

// Contains reports whether the format has an element of type e.
func (f VertexFormat) Contains(e ElementType) bool {
	return f.Index(e) >= 0
}

// Index returns the position of e in the format, or -1.
func (f VertexFormat) Index(e ElementType) int {
	for i, el := range f {
		if el == e {
			return i
		}
	}
	return -1
}

// ParseVertexFormat maps "static", "animated" or "sprite" to a predefined
// vertex format.
func ParseVertexFormat(s string) (VertexFormat, bool) {
	switch strings.ToLower(s) {
	case "static", "":
		return VertexFormatStatic, true
	case "animated":
		return VertexFormatAnimated, true
	case "sprite":
		return VertexFormatSprite, true
	}
	return nil, false
}
