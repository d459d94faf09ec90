package command

import (
	"testing"

	"github.com/gogpu/renderq/resource"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{TypeLoadShader, "LoadShader"},
		{TypeLoadTexture, "LoadTexture"},
		{TypeLoadMaterialGroup, "LoadMaterialGroup"},
		{TypeLoadMesh, "LoadMesh"},
		{TypeUnloadShader, "UnloadShader"},
		{TypeUnloadTexture, "UnloadTexture"},
		{TypeUnloadMaterialGroup, "UnloadMaterialGroup"},
		{TypeUnloadMesh, "UnloadMesh"},
		{Type(255), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTypeClassification(t *testing.T) {
	if !TypeLoadMesh.IsLoad() || TypeUnloadShader.IsLoad() {
		t.Error("IsLoad misclassifies types")
	}
	if Type(8).IsValid() {
		t.Error("Type(8) should be invalid")
	}
}

func TestCommandTypes(t *testing.T) {
	tests := []struct {
		cmd  Command
		want Type
	}{
		{LoadShaderCommand{}, TypeLoadShader},
		{LoadTextureCommand{}, TypeLoadTexture},
		{LoadMeshCommand{}, TypeLoadMesh},
		{LoadMaterialGroupCommand{}, TypeLoadMaterialGroup},
		{UnloadShaderCommand{}, TypeUnloadShader},
		{UnloadTextureCommand{}, TypeUnloadTexture},
		{UnloadMeshCommand{}, TypeUnloadMesh},
		{UnloadMaterialGroupCommand{}, TypeUnloadMaterialGroup},
	}
	for _, tt := range tests {
		if got := tt.cmd.Type(); got != tt.want {
			t.Errorf("%T.Type() = %v, want %v", tt.cmd, got, tt.want)
		}
	}
}

func TestListPreservesOrder(t *testing.T) {
	shader := resource.NewRenderShader("s")
	tex := resource.NewRenderTexture("t", resource.TextureDesc{Width: 1, Height: 1})
	mesh := resource.NewRenderMesh("m", resource.MeshDesc{VertexFormat: resource.VertexFormatStatic})
	group := resource.NewRenderMaterialGroup("g")

	l := NewList("frame")
	l.AddLoadShader(shader, "vs", "fs")
	l.AddLoadTexture(tex, []byte{1, 2, 3, 4})
	l.AddLoadMaterialGroup(group)
	l.AddLoadMesh(mesh, []byte{0}, nil)
	l.Add(nil)
	l.AddUnloadMesh(mesh)
	l.AddUnloadMaterialGroup(group)
	l.AddUnloadTexture(tex)
	l.AddUnloadShader(shader)

	want := []Type{
		TypeLoadShader, TypeLoadTexture, TypeLoadMaterialGroup, TypeLoadMesh,
		TypeUnloadMesh, TypeUnloadMaterialGroup, TypeUnloadTexture, TypeUnloadShader,
	}
	if l.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", l.Len(), len(want))
	}
	for i, c := range l.Commands() {
		if c.Type() != want[i] {
			t.Errorf("command %d = %v, want %v", i, c.Type(), want[i])
		}
	}

	load := l.Commands()[0].(LoadShaderCommand)
	if load.Shader != shader || load.VertexSource != "vs" || load.FragmentSource != "fs" {
		t.Errorf("LoadShaderCommand fields = %+v", load)
	}
}

func TestAddStoresPointerCommandsAsValues(t *testing.T) {
	shader := resource.NewRenderShader("s")
	tex := resource.NewRenderTexture("t", resource.TextureDesc{Width: 1, Height: 1})
	mesh := resource.NewRenderMesh("m", resource.MeshDesc{VertexFormat: resource.VertexFormatStatic})
	group := resource.NewRenderMaterialGroup("g")

	l := NewList("pointers")
	l.Add(&LoadShaderCommand{Shader: shader, VertexSource: "vs", FragmentSource: "fs"})
	l.Add(&LoadTextureCommand{Texture: tex})
	l.Add(&LoadMaterialGroupCommand{Group: group})
	l.Add(&LoadMeshCommand{Mesh: mesh})
	l.Add(&UnloadShaderCommand{Shader: shader})
	l.Add(&UnloadTextureCommand{Texture: tex})
	l.Add(&UnloadMaterialGroupCommand{Group: group})
	l.Add(&UnloadMeshCommand{Mesh: mesh})
	l.Add((*LoadShaderCommand)(nil))
	l.Add((*UnloadMeshCommand)(nil))

	if l.Len() != 8 {
		t.Fatalf("Len() = %d, want 8 (nil pointers ignored)", l.Len())
	}
	cmds := l.Commands()
	load, ok := cmds[0].(LoadShaderCommand)
	if !ok || load.Shader != shader || load.VertexSource != "vs" {
		t.Errorf("command 0 = %#v, want LoadShaderCommand value", cmds[0])
	}
	for i, c := range cmds {
		if Type(i) != c.Type() {
			t.Errorf("command %d = %v, want %v", i, c.Type(), Type(i))
		}
	}
	if _, ok := cmds[7].(UnloadMeshCommand); !ok {
		t.Errorf("command 7 = %T, want UnloadMeshCommand", cmds[7])
	}
}

func TestQueueSealsLists(t *testing.T) {
	a := NewList("a")
	a.AddLoadMaterialGroup(resource.NewRenderMaterialGroup("g"))
	b := NewList("b")

	q := NewQueue(a, nil)
	q.Append(b)

	if q.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", q.Len())
	}
	if q.Lists()[0] != a || q.Lists()[1] != b {
		t.Error("lists out of order")
	}
	if !a.Sealed() || !b.Sealed() {
		t.Error("appended lists should be sealed")
	}
	if q.CommandCount() != 1 {
		t.Errorf("CommandCount() = %d, want 1", q.CommandCount())
	}

	defer func() {
		if recover() == nil {
			t.Error("Add on sealed list did not panic")
		}
	}()
	a.AddUnloadMaterialGroup(nil)
}

func TestCount(t *testing.T) {
	s := resource.NewRenderShader("s")
	l := NewList("x")
	l.AddLoadShader(s, "", "")
	l.AddUnloadShader(s)
	l.AddLoadShader(s, "", "")
	l.AddLoadMaterialGroup(nil)

	st := Count(NewQueue(l))
	if got := st.Get(TypeLoadShader); got != 2 {
		t.Errorf("LoadShader count = %d, want 2", got)
	}
	if st.Loads() != 3 || st.Unloads() != 1 {
		t.Errorf("Loads/Unloads = %d/%d, want 3/1", st.Loads(), st.Unloads())
	}
	if st.Get(Type(99)) != 0 {
		t.Error("invalid type should count 0")
	}
}
