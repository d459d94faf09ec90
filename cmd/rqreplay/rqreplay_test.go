package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pierrec/lz4"

	"github.com/gogpu/renderq"
	"github.com/gogpu/renderq/gpu"
	"github.com/gogpu/renderq/resource"
)

const sceneWGSL = `
@vertex
fn vs_main(@location(0) pos: vec4<f32>) -> @builtin(position) vec4<f32> {
    return pos;
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 1.0, 1.0, 1.0);
}
`

const sceneTOML = `
[[shader]]
name = "basic"
vertex = "basic.wgsl"

[[texture]]
name = "checker"
image = "checker.png"
filter = "nearest"
wrap_s = "repeat"
mipmap = true

[[texture]]
name = "mask"
image = "mask.raw.lz4"
format = "Lum8"
width = 4
height = 2

[[mesh]]
name = "tri"
polygon = "triangle"
vertex_format = "static"
index_format = "short"
vertices = "tri.vtx"
indices = "tri.idx"

[[material_group]]
name = "opaque"
`

const sceneYAML = `
shader:
  - name: basic
    vertex: basic.wgsl
texture:
  - name: checker
    image: checker.png
mesh:
  - name: tri
    vertex_format: static
    vertices: tri.vtx
material_group:
  - name: opaque
`

func writeFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func lz4Compress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("lz4 write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("lz4 close: %v", err)
	}
	return buf.Bytes()
}

func checkerPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.NRGBA{R: 255, A: 255})
			} else {
				img.Set(x, y, color.NRGBA{B: 255, A: 255})
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func triangleVertices() []byte {
	stride := resource.VertexFormatStatic.Size()
	data := make([]byte, 3*stride)
	pos := [][3]float32{{0, 1, 0}, {-1, -1, 0}, {1, -1, 0}}
	for i, p := range pos {
		for c, v := range p {
			binary.LittleEndian.PutUint32(data[i*stride+c*4:], math.Float32bits(v))
		}
		binary.LittleEndian.PutUint32(data[i*stride+12:], math.Float32bits(1))
	}
	return data
}

// writeScene lays out a complete scene in a temp dir and returns the
// manifest path.
func writeScene(t *testing.T, manifestName, manifest string) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, manifestName, []byte(manifest))
	writeFile(t, dir, "basic.wgsl", []byte(sceneWGSL))
	writeFile(t, dir, "checker.png", checkerPNG(t))
	writeFile(t, dir, "mask.raw.lz4", lz4Compress(t, []byte{0, 32, 64, 96, 128, 160, 192, 255}))
	writeFile(t, dir, "tri.vtx", triangleVertices())
	writeFile(t, dir, "tri.idx", []byte{0, 0, 1, 0, 2, 0})
	return filepath.Join(dir, manifestName)
}

func TestLoadManifestTOML(t *testing.T) {
	m, err := LoadManifest(writeScene(t, "scene.toml", sceneTOML))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if len(m.Shaders) != 1 || len(m.Textures) != 2 || len(m.Meshes) != 1 || len(m.MaterialGroups) != 1 {
		t.Fatalf("manifest = %+v", m)
	}
	tex := m.Textures[1]
	if tex.Format != "Lum8" || tex.Width != 4 || tex.Height != 2 {
		t.Errorf("raw texture entry = %+v", tex)
	}
	if !m.Textures[0].Mipmap || m.Textures[0].WrapS != "repeat" {
		t.Errorf("checker entry = %+v", m.Textures[0])
	}
}

func TestLoadManifestYAML(t *testing.T) {
	m, err := LoadManifest(writeScene(t, "scene.yaml", sceneYAML))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if len(m.Shaders) != 1 || m.Shaders[0].Vertex != "basic.wgsl" {
		t.Errorf("shaders = %+v", m.Shaders)
	}
	if len(m.Meshes) != 1 || m.Meshes[0].Indices != "" {
		t.Errorf("meshes = %+v", m.Meshes)
	}
}

func TestLoadManifestRejectsExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadManifest(path); err == nil || !strings.Contains(err.Error(), "manifest must be") {
		t.Errorf("LoadManifest(.json) = %v, want format error", err)
	}
}

func TestReadPayloadLZ4(t *testing.T) {
	m, err := LoadManifest(writeScene(t, "scene.toml", sceneTOML))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	data, err := m.ReadPayload("mask.raw.lz4")
	if err != nil {
		t.Fatalf("ReadPayload: %v", err)
	}
	want := []byte{0, 32, 64, 96, 128, 160, 192, 255}
	if !bytes.Equal(data, want) {
		t.Errorf("payload = %v, want %v", data, want)
	}
}

func TestNewScene(t *testing.T) {
	m, err := LoadManifest(writeScene(t, "scene.toml", sceneTOML))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	s, err := NewScene(m)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}

	checker := s.textures[0].desc
	if w, h := checker.Dimensions(); w != 8 || h != 8 {
		t.Errorf("checker size = %dx%d, want 8x8", w, h)
	}
	if checker.ImageFormat() != resource.ImageFormatRGBA8888 || checker.FilterMode() != resource.FilterNearest {
		t.Errorf("checker format/filter = %v/%v", checker.ImageFormat(), checker.FilterMode())
	}
	if got := s.textures[0].data[:4]; !bytes.Equal(got, []byte{255, 0, 0, 255}) {
		t.Errorf("first checker pixel = %v, want red", got)
	}

	mask := s.textures[1].desc
	if mask.ImageFormat() != resource.ImageFormatLum8 || len(s.textures[1].data) != 8 {
		t.Errorf("mask = %v, %d bytes", mask.ImageFormat(), len(s.textures[1].data))
	}

	tri := s.meshes[0].desc
	if tri.VertexCount() != 3 || tri.IndexCount() != 3 {
		t.Errorf("tri counts = %d/%d", tri.VertexCount(), tri.IndexCount())
	}
	if r := tri.BoundingSphere().Radius; r <= 0 {
		t.Errorf("tri bounding radius = %v, want > 0", r)
	}
}

func TestNewSceneUnknownFormat(t *testing.T) {
	bad := strings.Replace(sceneTOML, `format = "Lum8"`, `format = "ASTC"`, 1)
	m, err := LoadManifest(writeScene(t, "scene.toml", bad))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if _, err := NewScene(m); err == nil || !strings.Contains(err.Error(), "mask") {
		t.Errorf("NewScene = %v, want error naming the mask texture", err)
	}
}

func newNoopProcessor(t *testing.T) *renderq.Processor {
	t.Helper()
	ctx, err := gpu.OpenNoop()
	if err != nil {
		t.Fatalf("OpenNoop: %v", err)
	}
	t.Cleanup(ctx.Destroy)
	return renderq.NewProcessor(ctx)
}

func TestReplay(t *testing.T) {
	m, err := LoadManifest(writeScene(t, "scene.toml", sceneTOML))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	s, err := NewScene(m)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	p := newNoopProcessor(t)

	var loadedDuringHold bool
	hold := func() error {
		loadedDuringHold = s.shaders[0].desc.ExtraData().IsSet() &&
			s.textures[0].desc.ExtraData().IsSet() &&
			s.meshes[0].desc.ExtraData().IsSet()
		return nil
	}
	if err := replay(p, s, 4, hold); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !loadedDuringHold {
		t.Error("resources should be loaded between the load and unload frames")
	}

	st := p.Stats()
	if st.Queues != 4 {
		t.Errorf("Queues = %d, want 4", st.Queues)
	}
	if st.Live() != 0 {
		t.Errorf("Live = %d, want 0 after unload frame", st.Live())
	}
	if st.Textures.Loaded != 2 || st.Textures.Unloaded != 2 {
		t.Errorf("texture stats = %+v", st.Textures)
	}
	if st.MaterialGroupCommands != 2 {
		t.Errorf("MaterialGroupCommands = %d, want 2", st.MaterialGroupCommands)
	}

	var out bytes.Buffer
	printStats(&out, st)
	if !strings.Contains(out.String(), "textures loaded 2 unloaded 2 live 0") {
		t.Errorf("printStats output:\n%s", out.String())
	}
}

func TestReloadShader(t *testing.T) {
	path := writeScene(t, "scene.toml", sceneTOML)
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	s, err := NewScene(m)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	p := newNoopProcessor(t)

	if err := replay(p, s, 2, func() error {
		shaderPath := filepath.Join(filepath.Dir(path), "basic.wgsl")
		edited := strings.ReplaceAll(sceneWGSL, "vs_main", "vs_edited")
		if err := os.WriteFile(shaderPath, []byte(edited), 0o600); err != nil {
			return err
		}
		if err := reloadShader(p, s, shaderPath); err != nil {
			return err
		}
		h, ok := s.shaders[0].desc.ExtraData().Get()
		if !ok || h.VertexEntryPoint() != "vs_edited" {
			t.Errorf("reloaded shader entry = %v, want vs_edited", h)
		}
		return reloadShader(p, s, filepath.Join(filepath.Dir(path), "unrelated.txt"))
	}); err != nil {
		t.Fatalf("replay: %v", err)
	}

	st := p.Stats()
	if st.Shaders.Loaded != 2 || st.Shaders.Unloaded != 2 {
		t.Errorf("shader stats = %+v, want 2 loads and 2 unloads", st.Shaders)
	}
	if paths := s.ShaderPaths(); len(paths) != 1 {
		t.Errorf("ShaderPaths() = %v, want one path", paths)
	}
}

func TestReloadShaderSkipsBrokenSource(t *testing.T) {
	path := writeScene(t, "scene.toml", sceneTOML)
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	s, err := NewScene(m)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	p := newNoopProcessor(t)
	shaderPath := filepath.Join(filepath.Dir(path), "basic.wgsl")

	if err := replay(p, s, 2, func() error {
		before, _ := s.shaders[0].desc.ExtraData().Get()

		// Editors truncate before writing, and a save may be half done.
		for _, broken := range []string{"", sceneWGSL[:len(sceneWGSL)/2]} {
			if err := os.WriteFile(shaderPath, []byte(broken), 0o600); err != nil {
				return err
			}
			if err := reloadShader(p, s, shaderPath); err != nil {
				return err
			}
			if p.Err() != nil {
				t.Fatalf("processor stopped after broken reload: %v", p.Err())
			}
			if h, ok := s.shaders[0].desc.ExtraData().Get(); !ok || h != before {
				t.Errorf("broken source %q replaced the loaded shader", broken)
			}
		}

		edited := strings.ReplaceAll(sceneWGSL, "vs_main", "vs_edited")
		if err := os.WriteFile(shaderPath, []byte(edited), 0o600); err != nil {
			return err
		}
		if err := reloadShader(p, s, shaderPath); err != nil {
			return err
		}
		h, ok := s.shaders[0].desc.ExtraData().Get()
		if !ok || h.VertexEntryPoint() != "vs_edited" {
			t.Errorf("reloaded shader entry = %v, want vs_edited", h)
		}
		return nil
	}); err != nil {
		t.Fatalf("replay: %v", err)
	}

	st := p.Stats()
	if st.Shaders.Loaded != 2 || st.Shaders.Unloaded != 2 {
		t.Errorf("shader stats = %+v, want only the valid reload counted", st.Shaders)
	}
}

func TestReloadListCheckAbortsList(t *testing.T) {
	path := writeScene(t, "scene.toml", sceneTOML)
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	s, err := NewScene(m)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	shaderPath := filepath.Join(filepath.Dir(path), "basic.wgsl")

	errBad := errors.New("bad source")
	l, err := s.ReloadList(shaderPath, func(vs, fs string) error { return errBad })
	if !errors.Is(err, errBad) || l != nil {
		t.Errorf("ReloadList = %v, %v; want nil list and the check error", l, err)
	}

	l, err = s.ReloadList(shaderPath, nil)
	if err != nil || l == nil || l.Len() != 2 {
		t.Errorf("ReloadList without check = %v, %v; want unload and load", l, err)
	}
}

func TestWatchLoopReloadsEditedShader(t *testing.T) {
	path := writeScene(t, "scene.toml", sceneTOML)
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	s, err := NewScene(m)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	p := newNoopProcessor(t)
	shaderPath := filepath.Join(filepath.Dir(path), "basic.wgsl")

	if err := replay(p, s, 2, func() error {
		watcher, dirs, err := newShaderWatcher(s)
		if err != nil {
			return err
		}
		defer watcher.Close()
		if dirs != 1 {
			t.Errorf("watched directories = %d, want 1", dirs)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		entries := make(chan string, 16)
		done := make(chan error, 1)
		go func() {
			done <- watchLoop(ctx, watcher, func(name string) error {
				if err := reloadShader(p, s, name); err != nil {
					return err
				}
				if h, ok := s.shaders[0].desc.ExtraData().Get(); ok {
					select {
					case entries <- h.VertexEntryPoint():
					default:
					}
				}
				return nil
			})
		}()

		edited := strings.ReplaceAll(sceneWGSL, "vs_main", "vs_edited")
		if err := os.WriteFile(shaderPath, []byte(edited), 0o600); err != nil {
			return err
		}

		timeout := time.After(5 * time.Second)
	wait:
		for {
			select {
			case entry := <-entries:
				if entry == "vs_edited" {
					break wait
				}
			case err := <-done:
				t.Fatalf("watchLoop returned early: %v", err)
			case <-timeout:
				t.Fatal("timed out waiting for the shader reload")
			}
		}

		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("watchLoop = %v, want nil after cancel", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("watchLoop did not stop after cancel")
		}
		return nil
	}); err != nil {
		t.Fatalf("replay: %v", err)
	}

	if p.Err() != nil {
		t.Errorf("processor stopped: %v", p.Err())
	}
	if st := p.Stats(); st.Shaders.Loaded < 2 || st.Shaders.Live != 0 {
		t.Errorf("shader stats = %+v, want at least one reload and nothing live", st.Shaders)
	}
}
