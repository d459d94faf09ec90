package command

import "github.com/gogpu/renderq/resource"

// List is an ordered sequence of commands. A List is built by a single
// producer and becomes read-only once appended to a Queue.
type List struct {
	label    string
	commands []Command
	sealed   bool
}

// NewList creates an empty list. The label is used in diagnostics only.
func NewList(label string) *List {
	return &List{label: label}
}

// Label returns the list label.
func (l *List) Label() string { return l.label }

// Len returns the number of commands.
func (l *List) Len() int { return len(l.commands) }

// Sealed reports whether the list has been appended to a queue.
func (l *List) Sealed() bool { return l.sealed }

// Commands returns the commands in order. The returned slice must not be
// modified.
func (l *List) Commands() []Command { return l.commands }

// Add appends cmd. Pointers to the command structs of this package are
// stored as values, so &LoadShaderCommand{...} and LoadShaderCommand{...}
// are equivalent. A nil cmd or nil pointer is ignored. Add panics if the
// list is sealed.
func (l *List) Add(cmd Command) {
	if l.sealed {
		panic("command: Add on sealed list " + l.label)
	}
	cmd = deref(cmd)
	if cmd == nil {
		return
	}
	l.commands = append(l.commands, cmd)
}

// deref returns the value form of a pointer command, or nil for a nil
// pointer. Other commands are returned unchanged.
func deref(cmd Command) Command {
	switch c := cmd.(type) {
	case *LoadShaderCommand:
		if c != nil {
			return *c
		}
	case *LoadTextureCommand:
		if c != nil {
			return *c
		}
	case *LoadMeshCommand:
		if c != nil {
			return *c
		}
	case *LoadMaterialGroupCommand:
		if c != nil {
			return *c
		}
	case *UnloadShaderCommand:
		if c != nil {
			return *c
		}
	case *UnloadTextureCommand:
		if c != nil {
			return *c
		}
	case *UnloadMeshCommand:
		if c != nil {
			return *c
		}
	case *UnloadMaterialGroupCommand:
		if c != nil {
			return *c
		}
	default:
		return cmd
	}
	return nil
}

// AddLoadShader appends a LoadShaderCommand.
func (l *List) AddLoadShader(s *resource.RenderShader, vertexSource, fragmentSource string) {
	l.Add(LoadShaderCommand{Shader: s, VertexSource: vertexSource, FragmentSource: fragmentSource})
}

// AddLoadTexture appends a LoadTextureCommand.
func (l *List) AddLoadTexture(t *resource.RenderTexture, data []byte) {
	l.Add(LoadTextureCommand{Texture: t, Data: data})
}

// AddLoadMesh appends a LoadMeshCommand.
func (l *List) AddLoadMesh(m *resource.RenderMesh, vertexData, indexData []byte) {
	l.Add(LoadMeshCommand{Mesh: m, VertexData: vertexData, IndexData: indexData})
}

// AddLoadMaterialGroup appends a LoadMaterialGroupCommand.
func (l *List) AddLoadMaterialGroup(g *resource.RenderMaterialGroup) {
	l.Add(LoadMaterialGroupCommand{Group: g})
}

// AddUnloadShader appends an UnloadShaderCommand.
func (l *List) AddUnloadShader(s *resource.RenderShader) {
	l.Add(UnloadShaderCommand{Shader: s})
}

// AddUnloadTexture appends an UnloadTextureCommand.
func (l *List) AddUnloadTexture(t *resource.RenderTexture) {
	l.Add(UnloadTextureCommand{Texture: t})
}

// AddUnloadMesh appends an UnloadMeshCommand.
func (l *List) AddUnloadMesh(m *resource.RenderMesh) {
	l.Add(UnloadMeshCommand{Mesh: m})
}

// AddUnloadMaterialGroup appends an UnloadMaterialGroupCommand.
func (l *List) AddUnloadMaterialGroup(g *resource.RenderMaterialGroup) {
	l.Add(UnloadMaterialGroupCommand{Group: g})
}

// Queue is an ordered sequence of command lists handed to the processor
// as one unit.
type Queue struct {
	lists []*List
}

// NewQueue creates a queue from lists, sealing each of them.
func NewQueue(lists ...*List) *Queue {
	q := &Queue{}
	for _, l := range lists {
		q.Append(l)
	}
	return q
}

// Append seals l and adds it to the end of the queue. A nil list is ignored.
func (q *Queue) Append(l *List) {
	if l == nil {
		return
	}
	l.sealed = true
	q.lists = append(q.lists, l)
}

// Lists returns the lists in order. The returned slice must not be modified.
func (q *Queue) Lists() []*List { return q.lists }

// Len returns the number of lists.
func (q *Queue) Len() int { return len(q.lists) }

// CommandCount returns the total number of commands across all lists.
func (q *Queue) CommandCount() int {
	n := 0
	for _, l := range q.lists {
		n += l.Len()
	}
	return n
}

// Stats counts commands per type.
type Stats [typeCount]int

// Count returns per-type command counts for q. Commands with an invalid
// type are not counted.
func Count(q *Queue) Stats {
	var s Stats
	for _, l := range q.lists {
		for _, c := range l.commands {
			if t := c.Type(); t.IsValid() {
				s[t]++
			}
		}
	}
	return s
}

// Get returns the count for t.
func (s Stats) Get(t Type) int {
	if !t.IsValid() {
		return 0
	}
	return s[t]
}

// Loads returns the number of load commands.
func (s Stats) Loads() int {
	return s[TypeLoadShader] + s[TypeLoadTexture] + s[TypeLoadMaterialGroup] + s[TypeLoadMesh]
}

// Unloads returns the number of unload commands.
func (s Stats) Unloads() int {
	return s[TypeUnloadShader] + s[TypeUnloadTexture] + s[TypeUnloadMaterialGroup] + s[TypeUnloadMesh]
}
