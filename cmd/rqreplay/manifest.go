package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pierrec/lz4"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"gopkg.in/yaml.v3"
)

// Manifest lists the resources of a scene. Paths are relative to the
// manifest file.
type Manifest struct {
	Shaders        []ShaderEntry        `toml:"shader" yaml:"shader"`
	Textures       []TextureEntry       `toml:"texture" yaml:"texture"`
	Meshes         []MeshEntry          `toml:"mesh" yaml:"mesh"`
	MaterialGroups []MaterialGroupEntry `toml:"material_group" yaml:"material_group"`

	dir string
}

// ShaderEntry names WGSL sources. Fragment defaults to Vertex.
type ShaderEntry struct {
	Name     string `toml:"name" yaml:"name"`
	Vertex   string `toml:"vertex" yaml:"vertex"`
	Fragment string `toml:"fragment" yaml:"fragment"`
}

// TextureEntry names an image file. Encoded images (png, jpeg, bmp, tiff,
// webp) are decoded to RGBA8888; any other file is raw pixel data in
// Format and needs Width and Height.
type TextureEntry struct {
	Name   string `toml:"name" yaml:"name"`
	Image  string `toml:"image" yaml:"image"`
	Format string `toml:"format" yaml:"format"`
	Width  uint32 `toml:"width" yaml:"width"`
	Height uint32 `toml:"height" yaml:"height"`
	Filter string `toml:"filter" yaml:"filter"`
	WrapS  string `toml:"wrap_s" yaml:"wrap_s"`
	WrapT  string `toml:"wrap_t" yaml:"wrap_t"`
	Mipmap bool   `toml:"mipmap" yaml:"mipmap"`
}

// MeshEntry names raw little-endian vertex and index files.
type MeshEntry struct {
	Name         string `toml:"name" yaml:"name"`
	Polygon      string `toml:"polygon" yaml:"polygon"`
	VertexFormat string `toml:"vertex_format" yaml:"vertex_format"`
	IndexFormat  string `toml:"index_format" yaml:"index_format"`
	Vertices     string `toml:"vertices" yaml:"vertices"`
	Indices      string `toml:"indices" yaml:"indices"`
}

// MaterialGroupEntry names a material group.
type MaterialGroupEntry struct {
	Name string `toml:"name" yaml:"name"`
}

var errManifestFormat = errors.New("rqreplay: manifest must be .toml, .yaml or .yml")

// LoadManifest reads a TOML or YAML manifest, chosen by extension.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m := &Manifest{dir: filepath.Dir(path)}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, m)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, m)
	default:
		return nil, fmt.Errorf("%w: %s", errManifestFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return m, nil
}

// Path resolves a manifest-relative path.
func (m *Manifest) Path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.dir, p)
}

// ReadPayload reads a manifest-relative file, decompressing it when its
// name ends in .lz4.
func (m *Manifest) ReadPayload(p string) ([]byte, error) {
	full := m.Path(p)
	data, err := os.ReadFile(filepath.Clean(full))
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(filepath.Ext(full), ".lz4") {
		return data, nil
	}
	out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", p, err)
	}
	return out, nil
}

// decodeImage decodes an encoded image into tightly packed RGBA8888
// pixels. ok is false when data is not in a registered image format.
func decodeImage(data []byte) (pix []byte, width, height uint32, ok bool, err error) {
	_, _, cfgErr := image.DecodeConfig(bytes.NewReader(data))
	if cfgErr != nil {
		return nil, 0, 0, false, nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, true, err
	}
	b := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	return nrgba.Pix, uint32(b.Dx()), uint32(b.Dy()), true, nil
}
