package gpu

import "errors"

var (
	// ErrNoDevice is returned when a context has no usable device or queue.
	ErrNoDevice = errors.New("gpu: no device")

	// ErrBackendUnavailable is returned by OpenDefault when the requested
	// HAL backend is not compiled in or finds no adapter.
	ErrBackendUnavailable = errors.New("gpu: backend unavailable")

	// ErrShaderCompile is returned when WGSL fails to parse, lower or validate.
	ErrShaderCompile = errors.New("gpu: shader compilation failed")

	// ErrMissingEntryPoint is returned when a shader source lacks the
	// entry point for its stage.
	ErrMissingEntryPoint = errors.New("gpu: missing entry point")

	// ErrInvalidDimensions is returned for zero or oversized textures.
	ErrInvalidDimensions = errors.New("gpu: invalid texture dimensions")

	// ErrUnsupportedFormat is returned for unknown image formats and for
	// meshes with an unknown polygon type, index format or vertex element.
	ErrUnsupportedFormat = errors.New("gpu: unsupported image format")

	// ErrUnsupportedCompression is returned for block-compressed data.
	ErrUnsupportedCompression = errors.New("gpu: unsupported image compression")

	// ErrDepthUpload is returned when pixel data is supplied for a depth texture.
	ErrDepthUpload = errors.New("gpu: depth textures cannot be uploaded")

	// ErrDataSize is returned when texture or mesh data does not match its layout.
	ErrDataSize = errors.New("gpu: data size mismatch")

	// ErrEmptyMesh is returned when a mesh has no vertex data.
	ErrEmptyMesh = errors.New("gpu: empty mesh")
)
