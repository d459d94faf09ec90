// Package command defines the render commands exchanged between the render
// preparation stage and the render command processor.
//
// Commands are typed structs carrying a reference to a logical resource
// descriptor (see package resource) and, for loads, the payload needed to
// realize it. Commands are grouped into ordered lists, and lists into a
// queue. Order is significant everywhere: the processor applies every list
// in queue order and every command in list order.
//
// # Example
//
//	list := command.NewList("frame 1")
//	list.AddLoadShader(shader, vertexWGSL, fragmentWGSL)
//	list.AddLoadTexture(texture, pixels)
//	list.AddUnloadMesh(oldMesh)
//
//	q := command.NewQueue(list)
//	err := processor.Process(q)
//
// Appending a list to a queue seals it: the list can no longer be modified,
// so a queue handed to the processor is immutable.
package command

import "github.com/gogpu/renderq/resource"

// Type identifies the kind of a render command.
type Type uint8

const (
	TypeLoadShader Type = iota
	TypeLoadTexture
	TypeLoadMaterialGroup
	TypeLoadMesh
	TypeUnloadShader
	TypeUnloadTexture
	TypeUnloadMaterialGroup
	TypeUnloadMesh

	typeCount
)

var typeNames = [...]string{
	TypeLoadShader:          "LoadShader",
	TypeLoadTexture:         "LoadTexture",
	TypeLoadMaterialGroup:   "LoadMaterialGroup",
	TypeLoadMesh:            "LoadMesh",
	TypeUnloadShader:        "UnloadShader",
	TypeUnloadTexture:       "UnloadTexture",
	TypeUnloadMaterialGroup: "UnloadMaterialGroup",
	TypeUnloadMesh:          "UnloadMesh",
}

// String returns the command type name.
func (t Type) String() string {
	if t < typeCount {
		return typeNames[t]
	}
	return "Unknown"
}

// IsValid reports whether t is one of the defined command types.
func (t Type) IsValid() bool {
	return t < typeCount
}

// IsLoad reports whether t is a load command type.
func (t Type) IsLoad() bool {
	return t <= TypeLoadMesh
}

// Command is a single render command. The processor dispatches on the
// value forms of the command structs below; List.Add converts pointers to
// them.
type Command interface {
	// Type returns the command type tag.
	Type() Type
}

// LoadShaderCommand realizes a shader program from WGSL sources.
type LoadShaderCommand struct {
	Shader         *resource.RenderShader
	VertexSource   string
	FragmentSource string
}

// Type implements Command.
func (LoadShaderCommand) Type() Type { return TypeLoadShader }

// LoadTextureCommand realizes a texture from raw pixel data. The data
// layout is described by the texture descriptor.
type LoadTextureCommand struct {
	Texture *resource.RenderTexture
	Data    []byte
}

// Type implements Command.
func (LoadTextureCommand) Type() Type { return TypeLoadTexture }

// LoadMeshCommand realizes a mesh from interleaved vertex data and
// optional index data.
type LoadMeshCommand struct {
	Mesh       *resource.RenderMesh
	VertexData []byte
	IndexData  []byte
}

// Type implements Command.
func (LoadMeshCommand) Type() Type { return TypeLoadMesh }

// LoadMaterialGroupCommand announces a material group.
type LoadMaterialGroupCommand struct {
	Group *resource.RenderMaterialGroup
}

// Type implements Command.
func (LoadMaterialGroupCommand) Type() Type { return TypeLoadMaterialGroup }

// UnloadShaderCommand releases a realized shader.
type UnloadShaderCommand struct {
	Shader *resource.RenderShader
}

// Type implements Command.
func (UnloadShaderCommand) Type() Type { return TypeUnloadShader }

// UnloadTextureCommand releases a realized texture.
type UnloadTextureCommand struct {
	Texture *resource.RenderTexture
}

// Type implements Command.
func (UnloadTextureCommand) Type() Type { return TypeUnloadTexture }

// UnloadMeshCommand releases a realized mesh.
type UnloadMeshCommand struct {
	Mesh *resource.RenderMesh
}

// Type implements Command.
func (UnloadMeshCommand) Type() Type { return TypeUnloadMesh }

// UnloadMaterialGroupCommand retires a material group.
type UnloadMaterialGroupCommand struct {
	Group *resource.RenderMaterialGroup
}

// Type implements Command.
func (UnloadMaterialGroupCommand) Type() Type { return TypeUnloadMaterialGroup }
