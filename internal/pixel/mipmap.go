package pixel

import (
	"fmt"
	"image"
	"math/bits"

	"golang.org/x/image/draw"
)

// Level is one mip level of a texture.
type Level struct {
	Width, Height int
	Data          []byte
}

// MipLevelCount returns the length of a full mip chain for the given size:
// levels halve until the larger dimension reaches 1 pixel.
func MipLevelCount(width, height int) int {
	d := max(width, height)
	if d <= 0 {
		return 0
	}
	return bits.Len(uint(d))
}

// GenerateMipmaps downsamples level 0 into a full mip chain. Channels must
// be 1, 2 or 4 bytes per pixel at 8 bits per channel. The returned slice
// starts at level 1; level 0 is the caller's data.
//
// The smooth flag selects bilinear filtering; otherwise nearest-neighbor
// is used.
func GenerateMipmaps(data []byte, width, height, channels int, smooth bool) ([]Level, error) {
	if len(data) < width*height*channels {
		return nil, fmt.Errorf("%w: %dx%dx%d needs %d bytes, got %d",
			ErrDataSize, width, height, channels, width*height*channels, len(data))
	}
	src, err := toImage(data, width, height, channels)
	if err != nil {
		return nil, err
	}

	var scaler draw.Scaler = draw.NearestNeighbor
	if smooth {
		scaler = draw.ApproxBiLinear
	}

	n := MipLevelCount(width, height)
	levels := make([]Level, 0, max(0, n-1))
	w, h := width, height
	for i := 1; i < n; i++ {
		w, h = max(1, w/2), max(1, h/2)
		dst := newImage(w, h, channels)
		scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
		levels = append(levels, Level{Width: w, Height: h, Data: fromImage(dst, channels)})
		src = dst
	}
	return levels, nil
}

// toImage wraps or repacks raw pixels as an image.Image suitable for
// scaling. Two-channel data is packed into the red and green channels of
// an opaque NRGBA image so that premultiplication cannot alter it.
func toImage(data []byte, width, height, channels int) (draw.Image, error) {
	r := image.Rect(0, 0, width, height)
	switch channels {
	case 1:
		return &image.Gray{Pix: data[:width*height], Stride: width, Rect: r}, nil
	case 2:
		img := image.NewNRGBA(r)
		for i := 0; i < width*height; i++ {
			img.Pix[i*4+0] = data[i*2+0]
			img.Pix[i*4+1] = data[i*2+1]
			img.Pix[i*4+3] = 0xFF
		}
		return img, nil
	case 4:
		return &image.NRGBA{Pix: data[:width*height*4], Stride: width * 4, Rect: r}, nil
	default:
		return nil, fmt.Errorf("pixel: unsupported channel count %d", channels)
	}
}

func newImage(width, height, channels int) draw.Image {
	r := image.Rect(0, 0, width, height)
	if channels == 1 {
		return image.NewGray(r)
	}
	return image.NewNRGBA(r)
}

func fromImage(img draw.Image, channels int) []byte {
	switch m := img.(type) {
	case *image.Gray:
		return m.Pix
	case *image.NRGBA:
		if channels == 4 {
			return m.Pix
		}
		n := len(m.Pix) / 4
		out := make([]byte, n*2)
		for i := 0; i < n; i++ {
			out[i*2+0] = m.Pix[i*4+0]
			out[i*2+1] = m.Pix[i*4+1]
		}
		return out
	}
	return nil
}
