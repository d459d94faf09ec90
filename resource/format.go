package resource

// ImageFormat is the CPU-side pixel layout of texture data.
type ImageFormat uint8

const (
	// ImageFormatRGBA8888 is 8 bits per channel RGBA (4 bytes per pixel).
	ImageFormatRGBA8888 ImageFormat = iota
	// ImageFormatRGB888 is 8 bits per channel RGB (3 bytes per pixel).
	ImageFormatRGB888
	// ImageFormatRGBA4444 is 4 bits per channel RGBA packed into a
	// little-endian uint16.
	ImageFormatRGBA4444
	// ImageFormatRGB565 is 5/6/5 bit RGB packed into a little-endian uint16.
	ImageFormatRGB565
	// ImageFormatLumA88 is 8 bit luminance plus 8 bit alpha.
	ImageFormatLumA88
	// ImageFormatLum8 is 8 bit luminance.
	ImageFormatLum8
	// ImageFormatDepth16 is a 16 bit depth attachment. Depth textures are
	// never uploaded from CPU data.
	ImageFormatDepth16
	// ImageFormatDepth32 is a 32 bit float depth attachment.
	ImageFormatDepth32

	imageFormatCount
)

var imageFormatNames = [...]string{
	"RGBA8888", "RGB888", "RGBA4444", "RGB565",
	"LumA88", "Lum8", "Depth16", "Depth32",
}

// String returns the format name.
func (f ImageFormat) String() string {
	if f < imageFormatCount {
		return imageFormatNames[f]
	}
	return "Unknown"
}

// BytesPerPixel returns the size of one pixel in CPU data, or 0 for
// unknown formats.
func (f ImageFormat) BytesPerPixel() int {
	switch f {
	case ImageFormatRGBA8888, ImageFormatDepth32:
		return 4
	case ImageFormatRGB888:
		return 3
	case ImageFormatRGBA4444, ImageFormatRGB565, ImageFormatLumA88, ImageFormatDepth16:
		return 2
	case ImageFormatLum8:
		return 1
	default:
		return 0
	}
}

// IsDepth reports whether f is a depth format.
func (f ImageFormat) IsDepth() bool {
	return f == ImageFormatDepth16 || f == ImageFormatDepth32
}

// ParseImageFormat maps a format name (as returned by String) to its value.
func ParseImageFormat(s string) (ImageFormat, bool) {
	for i, name := range imageFormatNames {
		if name == s {
			return ImageFormat(i), true
		}
	}
	return 0, false
}

// ImageCompression is the block compression of texture data.
type ImageCompression uint8

const (
	CompressionNone ImageCompression = iota
	CompressionETC1
	CompressionPVR2Bpp
	CompressionPVR4Bpp
)

var compressionNames = [...]string{"None", "ETC1", "PVR2Bpp", "PVR4Bpp"}

func (c ImageCompression) String() string {
	if int(c) < len(compressionNames) {
		return compressionNames[c]
	}
	return "Unknown"
}

// FilterMode selects texture sampling filter.
type FilterMode uint8

const (
	FilterNearest FilterMode = iota
	FilterBilinear
)

func (m FilterMode) String() string {
	switch m {
	case FilterNearest:
		return "Nearest"
	case FilterBilinear:
		return "Bilinear"
	default:
		return "Unknown"
	}
}

// ParseFilterMode maps "nearest" or "bilinear" to a FilterMode.
func ParseFilterMode(s string) (FilterMode, bool) {
	switch s {
	case "nearest", "Nearest":
		return FilterNearest, true
	case "bilinear", "Bilinear", "":
		return FilterBilinear, true
	}
	return 0, false
}

// WrapMode selects texture addressing outside [0, 1].
type WrapMode uint8

const (
	WrapClamp WrapMode = iota
	WrapRepeat
)

func (m WrapMode) String() string {
	switch m {
	case WrapClamp:
		return "Clamp"
	case WrapRepeat:
		return "Repeat"
	default:
		return "Unknown"
	}
}

// ParseWrapMode maps "clamp" or "repeat" to a WrapMode.
func ParseWrapMode(s string) (WrapMode, bool) {
	switch s {
	case "clamp", "Clamp", "":
		return WrapClamp, true
	case "repeat", "Repeat":
		return WrapRepeat, true
	}
	return 0, false
}
