package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/renderq/command"
	"github.com/gogpu/renderq/resource"
)

// Scene holds the descriptors built from a manifest together with the
// payloads their load commands carry.
type Scene struct {
	manifest *Manifest

	shaders  []*sceneShader
	textures []*sceneTexture
	meshes   []*sceneMesh
	groups   []*resource.RenderMaterialGroup
}

type sceneShader struct {
	desc         *resource.RenderShader
	vertexPath   string
	fragmentPath string
}

type sceneTexture struct {
	desc *resource.RenderTexture
	data []byte
}

type sceneMesh struct {
	desc     *resource.RenderMesh
	vertices []byte
	indices  []byte
}

// NewScene reads every payload named by m and builds the descriptors.
func NewScene(m *Manifest) (*Scene, error) {
	s := &Scene{manifest: m}

	for _, e := range m.Shaders {
		frag := e.Fragment
		if frag == "" {
			frag = e.Vertex
		}
		s.shaders = append(s.shaders, &sceneShader{
			desc:         resource.NewRenderShader(e.Name),
			vertexPath:   m.Path(e.Vertex),
			fragmentPath: m.Path(frag),
		})
	}

	for _, e := range m.Textures {
		t, err := s.buildTexture(e)
		if err != nil {
			return nil, fmt.Errorf("texture %q: %w", e.Name, err)
		}
		s.textures = append(s.textures, t)
	}

	for _, e := range m.Meshes {
		mesh, err := s.buildMesh(e)
		if err != nil {
			return nil, fmt.Errorf("mesh %q: %w", e.Name, err)
		}
		s.meshes = append(s.meshes, mesh)
	}

	for _, e := range m.MaterialGroups {
		s.groups = append(s.groups, resource.NewRenderMaterialGroup(e.Name))
	}
	return s, nil
}

func (s *Scene) buildTexture(e TextureEntry) (*sceneTexture, error) {
	data, err := s.manifest.ReadPayload(e.Image)
	if err != nil {
		return nil, err
	}
	desc := resource.TextureDesc{Width: e.Width, Height: e.Height, Mipmapped: e.Mipmap}

	pix, w, h, encoded, err := decodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", e.Image, err)
	}
	if encoded {
		data = pix
		desc.Width, desc.Height = w, h
		desc.Format = resource.ImageFormatRGBA8888
	} else {
		f, ok := resource.ParseImageFormat(e.Format)
		if !ok {
			return nil, fmt.Errorf("unknown format %q", e.Format)
		}
		desc.Format = f
	}

	var ok bool
	if desc.Filter, ok = resource.ParseFilterMode(e.Filter); !ok {
		return nil, fmt.Errorf("unknown filter %q", e.Filter)
	}
	if desc.WrapS, ok = resource.ParseWrapMode(e.WrapS); !ok {
		return nil, fmt.Errorf("unknown wrap_s %q", e.WrapS)
	}
	if desc.WrapT, ok = resource.ParseWrapMode(e.WrapT); !ok {
		return nil, fmt.Errorf("unknown wrap_t %q", e.WrapT)
	}
	return &sceneTexture{desc: resource.NewRenderTexture(e.Name, desc), data: data}, nil
}

func (s *Scene) buildMesh(e MeshEntry) (*sceneMesh, error) {
	var desc resource.MeshDesc
	var ok bool
	if desc.Polygon, ok = resource.ParsePolygonType(e.Polygon); !ok && e.Polygon != "" {
		return nil, fmt.Errorf("unknown polygon %q", e.Polygon)
	}
	if desc.VertexFormat, ok = resource.ParseVertexFormat(e.VertexFormat); !ok {
		return nil, fmt.Errorf("unknown vertex_format %q", e.VertexFormat)
	}
	if desc.IndexFormat, ok = resource.ParseIndexFormat(e.IndexFormat); !ok {
		return nil, fmt.Errorf("unknown index_format %q", e.IndexFormat)
	}

	vertices, err := s.manifest.ReadPayload(e.Vertices)
	if err != nil {
		return nil, err
	}
	var indices []byte
	if e.Indices != "" {
		if indices, err = s.manifest.ReadPayload(e.Indices); err != nil {
			return nil, err
		}
	}

	if stride := desc.VertexFormat.Size(); stride > 0 {
		desc.VertexCount = uint32(len(vertices) / stride)
	}
	desc.IndexCount = uint32(len(indices) / desc.IndexFormat.Size())
	desc.Bounds = resource.ComputeBoundingSphere(desc.VertexFormat, vertices)

	return &sceneMesh{
		desc:     resource.NewRenderMesh(e.Name, desc),
		vertices: vertices,
		indices:  indices,
	}, nil
}

// LoadList returns a list loading every resource of the scene. Shader
// sources are read from disk each time so that edits are picked up.
func (s *Scene) LoadList() (*command.List, error) {
	l := command.NewList("load scene")
	for _, g := range s.groups {
		l.AddLoadMaterialGroup(g)
	}
	for _, sh := range s.shaders {
		vs, fs, err := sh.sources()
		if err != nil {
			return nil, err
		}
		l.AddLoadShader(sh.desc, vs, fs)
	}
	for _, t := range s.textures {
		l.AddLoadTexture(t.desc, t.data)
	}
	for _, m := range s.meshes {
		l.AddLoadMesh(m.desc, m.vertices, m.indices)
	}
	return l, nil
}

// UnloadList returns a list unloading every resource, in reverse load order.
func (s *Scene) UnloadList() *command.List {
	l := command.NewList("unload scene")
	for i := len(s.meshes) - 1; i >= 0; i-- {
		l.AddUnloadMesh(s.meshes[i].desc)
	}
	for i := len(s.textures) - 1; i >= 0; i-- {
		l.AddUnloadTexture(s.textures[i].desc)
	}
	for i := len(s.shaders) - 1; i >= 0; i-- {
		l.AddUnloadShader(s.shaders[i].desc)
	}
	for i := len(s.groups) - 1; i >= 0; i-- {
		l.AddUnloadMaterialGroup(s.groups[i])
	}
	return l
}

// ReloadList returns an unload followed by a load for every shader that
// reads path. It returns nil if no shader uses path. check, when not nil,
// runs on each new source pair before any command is added; an error from
// it aborts the whole list so the loaded programs stay in place.
func (s *Scene) ReloadList(path string, check func(vs, fs string) error) (*command.List, error) {
	path = filepath.Clean(path)
	var l *command.List
	for _, sh := range s.shaders {
		if filepath.Clean(sh.vertexPath) != path && filepath.Clean(sh.fragmentPath) != path {
			continue
		}
		vs, fs, err := sh.sources()
		if err != nil {
			return nil, err
		}
		if check != nil {
			if err := check(vs, fs); err != nil {
				return nil, fmt.Errorf("shader %q: %w", sh.desc.Label(), err)
			}
		}
		if l == nil {
			l = command.NewList("reload " + filepath.Base(path))
		}
		l.AddUnloadShader(sh.desc)
		l.AddLoadShader(sh.desc, vs, fs)
	}
	return l, nil
}

// ShaderPaths returns every shader source file of the scene.
func (s *Scene) ShaderPaths() []string {
	seen := make(map[string]bool)
	var out []string
	for _, sh := range s.shaders {
		for _, p := range []string{sh.vertexPath, sh.fragmentPath} {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

func (sh *sceneShader) sources() (vs, fs string, err error) {
	v, err := os.ReadFile(filepath.Clean(sh.vertexPath))
	if err != nil {
		return "", "", fmt.Errorf("shader %q: %w", sh.desc.Label(), err)
	}
	if sh.fragmentPath == sh.vertexPath {
		return string(v), string(v), nil
	}
	f, err := os.ReadFile(filepath.Clean(sh.fragmentPath))
	if err != nil {
		return "", "", fmt.Errorf("shader %q: %w", sh.desc.Label(), err)
	}
	return string(v), string(f), nil
}
